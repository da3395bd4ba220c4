// Package confessions stores the local snapshot of the confession wall.
package confessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/lovelab/internal/client/models"
	"github.com/dmitrijs2005/lovelab/internal/dbx"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// ReplaceAll swaps the whole snapshot in one transaction.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, items []models.Confession, fetchedAt time.Time) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM confessions`); err != nil {
			return fmt.Errorf("failed to clear snapshot: %w", err)
		}
		for _, c := range items {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO confessions (id, text, crush, hearts, created_at) VALUES (?, ?, ?, ?, ?)`,
				c.ID, c.Text, c.Crush, c.Hearts, c.CreatedAt.UnixNano(),
			); err != nil {
				return fmt.Errorf("failed to store confession %s: %w", c.ID, err)
			}
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO snapshot_meta (id, fetched_at) VALUES (1, ?)
			ON CONFLICT(id) DO UPDATE SET fetched_at = excluded.fetched_at
		`, fetchedAt.UnixNano()); err != nil {
			return fmt.Errorf("failed to store snapshot time: %w", err)
		}
		return nil
	})
}

// List returns the snapshot newest first and when it was fetched. An empty
// snapshot returns a zero time.
func (r *SQLiteRepository) List(ctx context.Context) ([]models.Confession, time.Time, error) {
	var fetchedAt time.Time
	var ns int64
	err := r.db.QueryRowContext(ctx, `SELECT fetched_at FROM snapshot_meta WHERE id = 1`).Scan(&ns)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, time.Time{}, fmt.Errorf("failed to read snapshot time: %w", err)
	default:
		fetchedAt = time.Unix(0, ns)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, text, crush, hearts, created_at
		FROM confessions
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to list snapshot: %w", err)
	}
	defer rows.Close()

	result := make([]models.Confession, 0)
	for rows.Next() {
		var c models.Confession
		var created int64
		if err := rows.Scan(&c.ID, &c.Text, &c.Crush, &c.Hearts, &created); err != nil {
			return nil, time.Time{}, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		c.CreatedAt = time.Unix(0, created)
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, err
	}
	return result, fetchedAt, nil
}

// SetHearts writes a confirmed heart count through to the snapshot. Unknown
// ids are ignored.
func (r *SQLiteRepository) SetHearts(ctx context.Context, id string, hearts int64) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE confessions SET hearts = ? WHERE id = ?`, hearts, id); err != nil {
		return fmt.Errorf("failed to update hearts: %w", err)
	}
	return nil
}
