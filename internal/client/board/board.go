// Package board keeps a local, ordered copy of the confession wall in sync
// with the remote store.
//
// The board loads the full list on activation, then re-fetches the whole
// list whenever the store reports any change. Fetches are numbered; a
// response older than the last one applied is dropped, so a slow fetch can
// never overwrite a newer list. Re-fetches triggered by notifications run
// one at a time and bursts of notifications collapse into one fetch.
package board

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/lovelab/internal/client/models"
	"github.com/dmitrijs2005/lovelab/internal/common"
	"github.com/dmitrijs2005/lovelab/internal/logging"
)

// HeartMode selects how a heart is added.
type HeartMode string

const (
	// HeartModeCompat reads the cached count and writes count+1. Two clients
	// hearting the same confession inside one propagation window can lose an
	// increment (last writer wins).
	HeartModeCompat HeartMode = "compat"
	// HeartModeAtomic increments on the store side and never loses a heart.
	HeartModeAtomic HeartMode = "atomic"
)

// ErrClosed is returned by Activate after Close.
var ErrClosed = errors.New("board closed")

// FetchResult describes one re-fetch. Applied and Stale are exclusive;
// both are false when Err is set.
type FetchResult struct {
	Seq     uint64
	Applied bool
	Stale   bool
	Count   int
	Err     error
}

// Board keeps a local copy of the confession list in sync with a Store.
type Board struct {
	store   Store
	cache   Cache
	mode    HeartMode
	timeout time.Duration
	log     logging.Logger
	now     func() time.Time

	seq atomic.Uint64

	mu        sync.Mutex
	items     []models.Confession
	applied   uint64
	loading   bool
	offline   bool
	fetchedAt time.Time
	closed    bool
	updates   chan struct{}

	sub       Subscription
	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
}

// New returns an inactive board. cache may be nil. A zero timeout disables
// per-call deadlines.
func New(store Store, cache Cache, mode HeartMode, timeout time.Duration, log logging.Logger) *Board {
	if mode != HeartModeCompat {
		mode = HeartModeAtomic
	}
	return &Board{
		store:   store,
		cache:   cache,
		mode:    mode,
		timeout: timeout,
		log:     log.With("module", "board"),
		now:     time.Now,
		updates: make(chan struct{}, 1),
	}
}

func (b *Board) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, b.timeout)
}

func (b *Board) notify() {
	if b.closed {
		return
	}
	select {
	case b.updates <- struct{}{}:
	default:
	}
}

// Activate performs the initial load and subscribes to change
// notifications. When the initial load fails the persisted snapshot, if
// any, is shown and Offline reports true until a fetch succeeds.
func (b *Board) Activate(ctx context.Context) (FetchResult, error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return FetchResult{}, ErrClosed
	}
	if b.done != nil {
		b.mu.Unlock()
		return FetchResult{}, errors.New("board already active")
	}
	b.loading = true
	b.done = make(chan struct{})
	b.mu.Unlock()

	res := b.Refresh(ctx)
	if res.Err != nil {
		b.loadSnapshot(ctx)
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	sub, err := b.store.Subscribe(loopCtx)
	if err != nil {
		cancel()
		close(b.done)
		b.log.Warn(ctx, "subscribe failed", "error", err)
		return res, err
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		cancel()
		sub.Close()
		close(b.done)
		return res, ErrClosed
	}
	b.sub = sub
	b.cancel = cancel
	b.mu.Unlock()

	go b.loop(loopCtx, sub)
	return res, nil
}

func (b *Board) loadSnapshot(ctx context.Context) {
	defer func() {
		b.mu.Lock()
		b.loading = false
		b.notify()
		b.mu.Unlock()
	}()
	if b.cache == nil {
		return
	}

	items, fetchedAt, err := b.cache.List(ctx)
	if err != nil {
		b.log.Warn(ctx, "failed to read snapshot", "error", err)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.applied > 0 {
		return
	}
	models.SortNewestFirst(items)
	b.items = items
	b.fetchedAt = fetchedAt
	b.offline = true
}

func (b *Board) loop(ctx context.Context, sub Subscription) {
	defer close(b.done)
	events := sub.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			b.log.Debug(ctx, "invalidated", "op", ev.Op, "id", ev.ID)
		drain:
			for {
				select {
				case _, ok := <-events:
					if !ok {
						break drain
					}
				default:
					break drain
				}
			}
			b.Refresh(ctx)
		}
	}
}

// Refresh fetches the full list and replaces the local copy unless a newer
// fetch has already been applied. A failed fetch keeps the current list.
func (b *Board) Refresh(ctx context.Context) FetchResult {
	res := FetchResult{Seq: b.seq.Add(1)}

	callCtx, cancel := b.callCtx(ctx)
	items, err := b.store.List(callCtx)
	cancel()
	if err != nil {
		if ctx.Err() == nil {
			b.log.Warn(ctx, "fetch failed, keeping previous list", "seq", res.Seq, "error", err)
		}
		res.Err = err
		return res
	}

	models.SortNewestFirst(items)

	b.mu.Lock()
	defer b.mu.Unlock()
	if res.Seq <= b.applied {
		res.Stale = true
		b.log.Debug(ctx, "discarding stale fetch", "seq", res.Seq, "applied", b.applied)
		return res
	}
	b.items = items
	b.applied = res.Seq
	b.loading = false
	b.offline = false
	b.fetchedAt = b.now()
	res.Applied = true
	res.Count = len(items)

	if b.cache != nil {
		if err := b.cache.ReplaceAll(ctx, items, b.fetchedAt); err != nil {
			b.log.Warn(ctx, "failed to persist snapshot", "error", err)
		}
	}
	b.notify()
	return res
}

// Submit inserts a confession. Nothing is added locally; the new row shows
// up through the change notification.
func (b *Board) Submit(ctx context.Context, text, crush string) (models.Confession, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Confession{}, common.ErrEmptyConfession
	}

	callCtx, cancel := b.callCtx(ctx)
	defer cancel()
	c, err := b.store.Insert(callCtx, text, strings.TrimSpace(crush))
	if err != nil {
		b.log.Warn(ctx, "submit failed", "error", err)
		return models.Confession{}, err
	}
	return c, nil
}

// Heart adds one heart to confession id and returns the stored count.
func (b *Board) Heart(ctx context.Context, id string) (int64, error) {
	callCtx, cancel := b.callCtx(ctx)
	defer cancel()

	var hearts int64
	var err error
	switch b.mode {
	case HeartModeCompat:
		b.mu.Lock()
		i := b.indexOf(id)
		if i < 0 {
			b.mu.Unlock()
			return 0, common.ErrorNotFound
		}
		next := b.items[i].Hearts + 1
		b.mu.Unlock()
		hearts, err = b.store.SetHearts(callCtx, id, next)
	default:
		hearts, err = b.store.IncrementHearts(callCtx, id)
	}
	if err != nil {
		b.log.Warn(ctx, "heart failed", "id", id, "mode", string(b.mode), "error", err)
		return 0, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if i := b.indexOf(id); i >= 0 {
		b.items[i].Hearts = hearts
	}
	// fetches issued before this write may predate it
	b.applied = b.seq.Load()
	if b.cache != nil {
		if err := b.cache.SetHearts(ctx, id, hearts); err != nil {
			b.log.Warn(ctx, "failed to persist hearts", "id", id, "error", err)
		}
	}
	b.notify()
	return hearts, nil
}

func (b *Board) indexOf(id string) int {
	for i := range b.items {
		if b.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Snapshot returns a copy of the current list, newest first.
func (b *Board) Snapshot() []models.Confession {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Confession, len(b.items))
	copy(out, b.items)
	return out
}

// Loading is true while the initial load started by Activate is running.
func (b *Board) Loading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loading
}

// Offline reports whether the list comes from the persisted snapshot, and
// when that snapshot was fetched.
func (b *Board) Offline() (bool, time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.offline, b.fetchedAt
}

// Mode is the heart mode chosen in New.
func (b *Board) Mode() HeartMode { return b.mode }

// Updates signals after every change to the list. Signals coalesce. The
// channel is closed by Close.
func (b *Board) Updates() <-chan struct{} { return b.updates }

// Close unsubscribes and waits for the notification loop to exit. It is
// safe to call more than once, and before Activate.
func (b *Board) Close() {
	b.closeOnce.Do(func() {
		b.mu.Lock()
		b.closed = true
		sub, cancel, done := b.sub, b.cancel, b.done
		b.mu.Unlock()

		if cancel != nil {
			cancel()
		}
		if sub != nil {
			sub.Close()
		}
		if done != nil {
			<-done
		}

		b.mu.Lock()
		close(b.updates)
		b.mu.Unlock()
	})
}
