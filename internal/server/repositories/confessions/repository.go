package confessions

import (
	"context"

	"github.com/dmitrijs2005/lovelab/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.Confession, error)
	Insert(ctx context.Context, c *models.Confession) error
	SetHearts(ctx context.Context, id string, hearts int64) error
	IncrementHearts(ctx context.Context, id string) (int64, error)
}
