// Package wire describes the LoveLab gRPC service: request/response
// messages, the service descriptor, server registration and the client stub.
//
// The messages are plain Go structs (with protobuf well-known types for
// timestamps and empty payloads) carried by a JSON codec registered under
// the "json" content-subtype, so no generated code is involved. Clients must
// dial with CallOptions() so every call selects that codec.
//
// Methods that mutate state require a device token in the "device_token"
// metadata key; see internal/server/grpc for the interceptor.
package wire
