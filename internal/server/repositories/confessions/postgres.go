// Package confessions provides the PostgreSQL-backed repository for the
// confession wall.
package confessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/lovelab/internal/common"
	"github.com/dmitrijs2005/lovelab/internal/dbx"
	"github.com/dmitrijs2005/lovelab/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns every confession, newest first. Ties on created_at are broken
// by id so repeated reads return the same order.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Confession, error) {
	query := `
		SELECT id, text, crush, hearts, created_at
		FROM confessions
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select confessions: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Confession, 0)
	for rows.Next() {
		var item models.Confession
		if err := rows.Scan(&item.ID, &item.Text, &item.Crush, &item.Hearts, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Insert stores c with zero hearts and fills c.CreatedAt and c.Hearts from
// the database.
func (r *PostgresRepository) Insert(ctx context.Context, c *models.Confession) error {
	query := `
		INSERT INTO confessions (id, text, crush, hearts)
		VALUES ($1, $2, $3, 0)
		RETURNING hearts, created_at
	`
	if err := r.db.QueryRowContext(ctx, query, c.ID, c.Text, c.Crush).Scan(&c.Hearts, &c.CreatedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// SetHearts overwrites the heart count. Returns common.ErrorNotFound when no
// row has the id.
func (r *PostgresRepository) SetHearts(ctx context.Context, id string, hearts int64) error {
	query := `UPDATE confessions SET hearts = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, hearts)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

// IncrementHearts adds one heart in a single statement and returns the new count.
func (r *PostgresRepository) IncrementHearts(ctx context.Context, id string) (int64, error) {
	query := `UPDATE confessions SET hearts = hearts + 1 WHERE id = $1 RETURNING hearts`
	var hearts int64
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&hearts); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return hearts, nil
}
