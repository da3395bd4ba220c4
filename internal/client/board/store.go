package board

import (
	"context"
	"time"

	"github.com/dmitrijs2005/lovelab/internal/client/models"
)

// Invalidation says the remote collection changed. The payload is
// informational only; every invalidation triggers a full re-fetch.
type Invalidation struct {
	Op string
	ID string
}

// Subscription is a live registration for change notifications. Close
// unsubscribes, is idempotent, and closes the Events channel.
type Subscription interface {
	Events() <-chan Invalidation
	Close()
}

// Store is the remote confession collection.
type Store interface {
	// List returns every confession, newest first.
	List(ctx context.Context) ([]models.Confession, error)
	Insert(ctx context.Context, text, crush string) (models.Confession, error)
	// SetHearts writes an absolute value and returns what was stored.
	SetHearts(ctx context.Context, id string, hearts int64) (int64, error)
	// IncrementHearts adds one on the store side and returns the new value.
	IncrementHearts(ctx context.Context, id string) (int64, error)
	Subscribe(ctx context.Context) (Subscription, error)
}

// Cache persists the last good list for offline starts.
type Cache interface {
	ReplaceAll(ctx context.Context, items []models.Confession, fetchedAt time.Time) error
	List(ctx context.Context) ([]models.Confession, time.Time, error)
	SetHearts(ctx context.Context, id string, hearts int64) error
}
