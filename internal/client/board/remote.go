package board

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/lovelab/internal/client/client"
	"github.com/dmitrijs2005/lovelab/internal/client/models"
	"github.com/dmitrijs2005/lovelab/internal/logging"
	"github.com/sethvargo/go-retry"
)

// OpResync is emitted every time the change stream opens. Notifications
// sent before the stream was live are lost, so the board refetches.
const OpResync = "RESYNC"

// RemoteStore adapts the gRPC client to Store.
type RemoteStore struct {
	client      client.Client
	log         logging.Logger
	baseBackoff time.Duration
	maxBackoff  time.Duration
}

func NewRemoteStore(c client.Client, log logging.Logger) *RemoteStore {
	return &RemoteStore{
		client:      c,
		log:         log.With("module", "watch"),
		baseBackoff: 500 * time.Millisecond,
		maxBackoff:  30 * time.Second,
	}
}

func (r *RemoteStore) List(ctx context.Context) ([]models.Confession, error) {
	return r.client.ListConfessions(ctx)
}

func (r *RemoteStore) Insert(ctx context.Context, text, crush string) (models.Confession, error) {
	return r.client.SubmitConfession(ctx, text, crush)
}

func (r *RemoteStore) SetHearts(ctx context.Context, id string, hearts int64) (int64, error) {
	return r.client.SetHearts(ctx, id, hearts)
}

func (r *RemoteStore) IncrementHearts(ctx context.Context, id string) (int64, error) {
	return r.client.IncrementHearts(ctx, id)
}

// Subscribe starts watching in the background and returns immediately. The
// stream is re-opened with exponential backoff whenever it drops.
func (r *RemoteStore) Subscribe(ctx context.Context) (Subscription, error) {
	ctx, cancel := context.WithCancel(ctx)
	s := &watchSubscription{
		events: make(chan Invalidation, 16),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go r.run(ctx, s)
	return s, nil
}

func (r *RemoteStore) backoff() retry.Backoff {
	b := retry.NewExponential(r.baseBackoff)
	b = retry.WithCappedDuration(r.maxBackoff, b)
	return retry.WithJitterPercent(10, b)
}

func (r *RemoteStore) run(ctx context.Context, s *watchSubscription) {
	defer close(s.done)
	defer close(s.events)

	for {
		stream, err := retry.DoValue(ctx, r.backoff(), func(ctx context.Context) (client.EventStream, error) {
			st, err := r.client.Watch(ctx)
			if err != nil {
				r.log.Warn(ctx, "watch failed, retrying", "error", err)
				return nil, retry.RetryableError(err)
			}
			return st, nil
		})
		if err != nil {
			return
		}

		s.send(Invalidation{Op: OpResync})

		for {
			ev, err := stream.Recv()
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				r.log.Warn(ctx, "change stream lost", "error", err)
				break
			}
			s.send(Invalidation{Op: ev.Op, ID: ev.ID})
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(r.baseBackoff):
		}
	}
}

type watchSubscription struct {
	events chan Invalidation
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// send never blocks; a full buffer already holds a pending invalidation.
func (s *watchSubscription) send(ev Invalidation) {
	select {
	case s.events <- ev:
	default:
	}
}

func (s *watchSubscription) Events() <-chan Invalidation { return s.events }

func (s *watchSubscription) Close() {
	s.once.Do(func() {
		s.cancel()
		<-s.done
	})
}
