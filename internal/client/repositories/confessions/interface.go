package confessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/lovelab/internal/client/models"
)

// Repository keeps the last successfully fetched confession list so the
// wall can be shown while offline.
type Repository interface {
	ReplaceAll(ctx context.Context, items []models.Confession, fetchedAt time.Time) error
	List(ctx context.Context) ([]models.Confession, time.Time, error)
	SetHearts(ctx context.Context, id string, hearts int64) error
}
