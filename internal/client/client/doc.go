// Package client talks to the LoveLab server and bootstraps the local
// database.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (Client) for the remote store: list,
//     submit, heart writes, the change stream, device registration, the
//     practice claim and share cards.
//  2. A gRPC implementation (GRPCClient) that attaches the device token via
//     an interceptor, re-registers the device when the token is rejected,
//     and maps gRPC status codes to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Transport failures are reported as ErrUnavailable (wrapped) and rejected
// tokens as ErrUnauthorized. Domain failures come back as the sentinels in
// internal/common, so callers match everything with errors.Is.
package client
