package client

import (
	"context"
	"time"

	"github.com/dmitrijs2005/lovelab/internal/client/models"
)

// Event is one change notification from the server. Op is one of
// wire.OpInsert, wire.OpUpdate, wire.OpDelete or "RESYNC".
type Event struct {
	Op string
	ID string
	At time.Time
}

// EventStream yields change notifications until the watch context ends or
// the connection drops.
type EventStream interface {
	Recv() (Event, error)
}

type Client interface {
	Close() error
	Ping(ctx context.Context) error
	RegisterDevice(ctx context.Context) (deviceID, token string, expires time.Time, err error)
	SetDeviceToken(token string)
	ListConfessions(ctx context.Context) ([]models.Confession, error)
	SubmitConfession(ctx context.Context, text, crush string) (models.Confession, error)
	SetHearts(ctx context.Context, id string, hearts int64) (int64, error)
	IncrementHearts(ctx context.Context, id string) (int64, error)
	Watch(ctx context.Context) (EventStream, error)
	ClaimPractice(ctx context.Context) (time.Time, error)
	ShareCard(ctx context.Context, text string) (url string, expires time.Time, err error)
}
