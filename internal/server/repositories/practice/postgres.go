// Package practice stores one-time proposal practice claims per device.
package practice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/lovelab/internal/common"
	"github.com/dmitrijs2005/lovelab/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Claim records the first practice for deviceHash and returns when it was
// claimed. A second claim for the same hash returns common.ErrPracticeUsed.
func (r *PostgresRepository) Claim(ctx context.Context, deviceHash string) (time.Time, error) {
	query := `
		INSERT INTO practice_claims (device_hash)
		VALUES ($1)
		ON CONFLICT (device_hash) DO NOTHING
		RETURNING claimed_at
	`
	var claimedAt time.Time
	if err := r.db.QueryRowContext(ctx, query, deviceHash).Scan(&claimedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, common.ErrPracticeUsed
		}
		return time.Time{}, fmt.Errorf("db error: %w", err)
	}
	return claimedAt, nil
}
