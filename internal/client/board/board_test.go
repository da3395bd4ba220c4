package board

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/lovelab/internal/client/models"
	"github.com/dmitrijs2005/lovelab/internal/common"
	"github.com/dmitrijs2005/lovelab/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(sec int64) time.Time { return time.Unix(sec, 0) }

func ids(items []models.Confession) []string {
	out := make([]string, len(items))
	for i, c := range items {
		out[i] = c.ID
	}
	return out
}

func newBoard(t *testing.T, store Store, cache Cache, mode HeartMode) *Board {
	t.Helper()
	b := New(store, cache, mode, time.Second, logging.Discard())
	t.Cleanup(b.Close)
	return b
}

func TestActivate_LoadsNewestFirstAndSubscribes(t *testing.T) {
	store := newFakeStore(
		models.Confession{ID: "old", Text: "1", CreatedAt: at(10)},
		models.Confession{ID: "new", Text: "3", CreatedAt: at(30)},
		models.Confession{ID: "mid", Text: "2", CreatedAt: at(20)},
	)
	b := newBoard(t, store, nil, HeartModeAtomic)

	res, err := b.Activate(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, 3, res.Count)
	assert.False(t, b.Loading())
	assert.Equal(t, []string{"new", "mid", "old"}, ids(b.Snapshot()))
	require.Len(t, store.subs, 1)

	_, err = b.Activate(context.Background())
	assert.Error(t, err)
}

func TestLoading_TrueUntilInitialLoadCompletes(t *testing.T) {
	store := newFakeStore()
	started := make(chan struct{})
	release := make(chan struct{})
	store.listHook = func(ctx context.Context, call int) error {
		if call == 1 {
			close(started)
			<-release
		}
		return nil
	}
	b := newBoard(t, store, nil, HeartModeAtomic)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = b.Activate(context.Background())
	}()

	<-started
	assert.True(t, b.Loading())
	close(release)
	<-done
	assert.False(t, b.Loading())
}

func TestInvalidation_RefetchesAndReplaces(t *testing.T) {
	store := newFakeStore(models.Confession{ID: "a", CreatedAt: at(1)})
	b := newBoard(t, store, nil, HeartModeAtomic)
	_, err := b.Activate(context.Background())
	require.NoError(t, err)
	<-b.Updates()

	store.put(models.Confession{ID: "b", CreatedAt: at(2)})
	store.subs[0].events <- Invalidation{Op: "INSERT", ID: "b"}

	select {
	case <-b.Updates():
	case <-time.After(2 * time.Second):
		t.Fatal("no redraw after invalidation")
	}
	assert.Equal(t, []string{"b", "a"}, ids(b.Snapshot()))
}

func TestInvalidation_BurstIsCoalesced(t *testing.T) {
	store := newFakeStore(models.Confession{ID: "a", CreatedAt: at(1)})
	gate := make(chan struct{})
	store.listHook = func(ctx context.Context, call int) error {
		if call == 2 {
			<-gate
		}
		return nil
	}
	b := newBoard(t, store, nil, HeartModeAtomic)
	_, err := b.Activate(context.Background())
	require.NoError(t, err)

	store.subs[0].events <- Invalidation{Op: "UPDATE"}
	require.Eventually(t, func() bool { l, _, _, _ := store.calls(); return l == 2 }, time.Second, time.Millisecond)

	// arrive while fetch #2 is in flight
	for range 5 {
		store.subs[0].events <- Invalidation{Op: "UPDATE"}
	}
	close(gate)

	require.Eventually(t, func() bool { l, _, _, _ := store.calls(); return l == 3 }, time.Second, time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	l, _, _, _ := store.calls()
	assert.Equal(t, 3, l)
}

func TestRefresh_SortedForAnyInsertOrder(t *testing.T) {
	for perm := range 4 {
		t.Run(fmt.Sprint(perm), func(t *testing.T) {
			store := newFakeStore()
			for i := range 6 {
				sec := int64((i*7 + perm*3) % 6)
				store.put(models.Confession{ID: fmt.Sprintf("c%d", sec), CreatedAt: at(sec)})
			}
			b := newBoard(t, store, nil, HeartModeAtomic)
			require.True(t, b.Refresh(context.Background()).Applied)

			snap := b.Snapshot()
			for i := 1; i < len(snap); i++ {
				assert.False(t, snap[i].CreatedAt.After(snap[i-1].CreatedAt))
			}
		})
	}
}

func TestRefresh_StaleResponseIsDiscarded(t *testing.T) {
	store := newFakeStore(models.Confession{ID: "a", CreatedAt: at(1)})
	started := make(chan struct{})
	release := make(chan struct{})
	store.listHook = func(ctx context.Context, call int) error {
		if call == 1 {
			close(started)
			<-release
		}
		return nil
	}
	b := newBoard(t, store, nil, HeartModeAtomic)

	slow := make(chan FetchResult, 1)
	go func() { slow <- b.Refresh(context.Background()) }()
	<-started

	store.put(models.Confession{ID: "b", CreatedAt: at(2)})
	fast := b.Refresh(context.Background())
	require.True(t, fast.Applied)
	assert.Equal(t, uint64(2), fast.Seq)

	close(release)
	old := <-slow
	assert.Equal(t, uint64(1), old.Seq)
	assert.True(t, old.Stale)
	assert.False(t, old.Applied)
	assert.Equal(t, []string{"b", "a"}, ids(b.Snapshot()))
}

func TestRefresh_FailureKeepsPreviousList(t *testing.T) {
	store := newFakeStore(models.Confession{ID: "a", CreatedAt: at(1)})
	b := newBoard(t, store, nil, HeartModeAtomic)
	require.True(t, b.Refresh(context.Background()).Applied)

	boom := errors.New("network down")
	store.mu.Lock()
	store.listErr = boom
	store.mu.Unlock()

	res := b.Refresh(context.Background())
	assert.ErrorIs(t, res.Err, boom)
	assert.False(t, res.Applied)
	assert.Equal(t, []string{"a"}, ids(b.Snapshot()))
}

func TestRefresh_TimesOut(t *testing.T) {
	store := newFakeStore()
	store.listHook = func(ctx context.Context, call int) error {
		<-ctx.Done()
		return ctx.Err()
	}
	b := New(store, nil, HeartModeAtomic, 20*time.Millisecond, logging.Discard())
	defer b.Close()

	res := b.Refresh(context.Background())
	assert.ErrorIs(t, res.Err, context.DeadlineExceeded)
}

func TestActivate_OfflineStartShowsSnapshot(t *testing.T) {
	store := newFakeStore()
	store.listErr = errors.New("offline")
	cache := &memCache{
		items:     []models.Confession{{ID: "x", CreatedAt: at(1)}, {ID: "y", CreatedAt: at(2)}},
		fetchedAt: at(99),
	}
	b := newBoard(t, store, cache, HeartModeAtomic)

	res, err := b.Activate(context.Background())
	require.NoError(t, err)
	assert.Error(t, res.Err)
	assert.False(t, b.Loading())
	assert.Equal(t, []string{"y", "x"}, ids(b.Snapshot()))

	offline, fetched := b.Offline()
	assert.True(t, offline)
	assert.Equal(t, at(99), fetched)

	store.mu.Lock()
	store.listErr = nil
	store.mu.Unlock()
	require.True(t, b.Refresh(context.Background()).Applied)
	offline, _ = b.Offline()
	assert.False(t, offline)
	assert.Empty(t, b.Snapshot())
}

func TestRefresh_PersistsSnapshot(t *testing.T) {
	store := newFakeStore(models.Confession{ID: "a", CreatedAt: at(1)}, models.Confession{ID: "b", CreatedAt: at(2)})
	cache := &memCache{}
	b := newBoard(t, store, cache, HeartModeAtomic)

	require.True(t, b.Refresh(context.Background()).Applied)
	items, fetchedAt, err := cache.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, ids(items))
	assert.False(t, fetchedAt.IsZero())
}

func TestSubmit_BlankTextNeverReachesStore(t *testing.T) {
	store := newFakeStore()
	b := newBoard(t, store, nil, HeartModeAtomic)

	for _, text := range []string{"", "   ", "\n\t "} {
		_, err := b.Submit(context.Background(), text, "Sam")
		assert.ErrorIs(t, err, common.ErrEmptyConfession)
	}
	_, insert, _, _ := store.calls()
	assert.Zero(t, insert)
}

func TestSubmit_NoOptimisticUpdate(t *testing.T) {
	store := newFakeStore()
	b := newBoard(t, store, nil, HeartModeAtomic)
	require.True(t, b.Refresh(context.Background()).Applied)

	c, err := b.Submit(context.Background(), "  I like you  ", " Sam ")
	require.NoError(t, err)
	assert.Equal(t, "I like you", c.Text)
	assert.Equal(t, "Sam", c.Crush)
	assert.Zero(t, c.Hearts)
	assert.Empty(t, b.Snapshot())
}

func TestHeart_SequentialCallsNeverLoseIncrements(t *testing.T) {
	for _, mode := range []HeartMode{HeartModeCompat, HeartModeAtomic} {
		t.Run(string(mode), func(t *testing.T) {
			store := newFakeStore(models.Confession{ID: "a", Hearts: 7, CreatedAt: at(1)})
			cache := &memCache{}
			b := newBoard(t, store, cache, mode)
			require.True(t, b.Refresh(context.Background()).Applied)

			const n = 5
			var last int64
			for range n {
				h, err := b.Heart(context.Background(), "a")
				require.NoError(t, err)
				last = h
			}
			assert.Equal(t, int64(7+n), last)
			assert.Equal(t, int64(7+n), store.hearts("a"))
			assert.Equal(t, int64(7+n), b.Snapshot()[0].Hearts)
			assert.Equal(t, int64(7+n), cache.items[0].Hearts)
		})
	}
}

func TestHeart_ModesUseDifferentStoreCalls(t *testing.T) {
	store := newFakeStore(models.Confession{ID: "a", CreatedAt: at(1)})
	compat := newBoard(t, store, nil, HeartModeCompat)
	atomic := newBoard(t, store, nil, "")
	require.True(t, compat.Refresh(context.Background()).Applied)

	_, err := compat.Heart(context.Background(), "a")
	require.NoError(t, err)
	_, err = atomic.Heart(context.Background(), "a")
	require.NoError(t, err)

	_, _, set, inc := store.calls()
	assert.Equal(t, 1, set)
	assert.Equal(t, 1, inc)
	assert.Equal(t, HeartModeAtomic, atomic.Mode())
}

func TestHeart_ConcurrentClients(t *testing.T) {
	tests := []struct {
		mode HeartMode
		want int64
	}{
		// both clients read 3 and write 4
		{HeartModeCompat, 4},
		{HeartModeAtomic, 5},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			store := newFakeStore(models.Confession{ID: "a", Hearts: 3, CreatedAt: at(1)})
			one := newBoard(t, store, nil, tt.mode)
			two := newBoard(t, store, nil, tt.mode)
			require.True(t, one.Refresh(context.Background()).Applied)
			require.True(t, two.Refresh(context.Background()).Applied)

			_, err := one.Heart(context.Background(), "a")
			require.NoError(t, err)
			_, err = two.Heart(context.Background(), "a")
			require.NoError(t, err)

			assert.Equal(t, tt.want, store.hearts("a"))
		})
	}
}

func TestHeart_CompatUnknownID(t *testing.T) {
	store := newFakeStore()
	b := newBoard(t, store, nil, HeartModeCompat)

	_, err := b.Heart(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, _, set, _ := store.calls()
	assert.Zero(t, set)
}

func TestHeart_InFlightFetchCannotRollBack(t *testing.T) {
	store := newFakeStore(models.Confession{ID: "a", Hearts: 1, CreatedAt: at(1)})
	b := newBoard(t, store, nil, HeartModeCompat)
	require.True(t, b.Refresh(context.Background()).Applied)

	started := make(chan struct{})
	release := make(chan struct{})
	store.listHook = func(ctx context.Context, call int) error {
		if call == 2 {
			close(started)
			<-release
		}
		return nil
	}

	slow := make(chan FetchResult, 1)
	go func() { slow <- b.Refresh(context.Background()) }()
	<-started

	h, err := b.Heart(context.Background(), "a")
	require.NoError(t, err)
	require.Equal(t, int64(2), h)

	close(release)
	assert.True(t, (<-slow).Stale)
	assert.Equal(t, int64(2), b.Snapshot()[0].Hearts)
}

func TestClose_UnsubscribesOnceAndIsIdempotent(t *testing.T) {
	store := newFakeStore()
	b := New(store, nil, HeartModeAtomic, time.Second, logging.Discard())

	_, err := b.Activate(context.Background())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 3 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Close()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, store.subs[0].closeCount())
	for range b.Updates() {
	}

	_, err = b.Activate(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestRepeatedActivationsDoNotLeakSubscriptions(t *testing.T) {
	store := newFakeStore()
	for range 10 {
		b := New(store, nil, HeartModeAtomic, time.Second, logging.Discard())
		_, err := b.Activate(context.Background())
		require.NoError(t, err)
		b.Close()
	}
	for _, s := range store.subs {
		assert.Equal(t, 1, s.closeCount())
	}
}

func TestActivate_SubscribeFailure(t *testing.T) {
	store := newFakeStore(models.Confession{ID: "a", CreatedAt: at(1)})
	store.subErr = errors.New("no stream")
	b := newBoard(t, store, nil, HeartModeAtomic)

	res, err := b.Activate(context.Background())
	assert.Error(t, err)
	assert.True(t, res.Applied)
	assert.Len(t, b.Snapshot(), 1)
}
