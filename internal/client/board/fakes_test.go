package board

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/lovelab/internal/client/models"
	"github.com/dmitrijs2005/lovelab/internal/common"
)

type fakeStore struct {
	mu       sync.Mutex
	items    map[string]models.Confession
	listErr  error
	listHook func(ctx context.Context, call int) error
	subErr   error

	listCalls   int
	insertCalls int
	setCalls    int
	incCalls    int
	subs        []*fakeSub
}

func newFakeStore(items ...models.Confession) *fakeStore {
	s := &fakeStore{items: map[string]models.Confession{}}
	for _, c := range items {
		s.items[c.ID] = c
	}
	return s
}

func (s *fakeStore) List(ctx context.Context) ([]models.Confession, error) {
	s.mu.Lock()
	s.listCalls++
	call := s.listCalls
	err := s.listErr
	out := make([]models.Confession, 0, len(s.items))
	for _, c := range s.items {
		out = append(out, c)
	}
	hook := s.listHook
	s.mu.Unlock()

	if hook != nil {
		if herr := hook(ctx, call); herr != nil {
			return nil, herr
		}
	}
	if err != nil {
		return nil, err
	}
	// map order is random; the board must sort
	slices.SortFunc(out, func(a, b models.Confession) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out, nil
}

func (s *fakeStore) Insert(ctx context.Context, text, crush string) (models.Confession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertCalls++
	c := models.Confession{ID: text, Text: text, Crush: crush, CreatedAt: time.Unix(int64(1000+s.insertCalls), 0)}
	s.items[c.ID] = c
	return c, nil
}

func (s *fakeStore) SetHearts(ctx context.Context, id string, hearts int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCalls++
	c, ok := s.items[id]
	if !ok {
		return 0, common.ErrorNotFound
	}
	c.Hearts = hearts
	s.items[id] = c
	return hearts, nil
}

func (s *fakeStore) IncrementHearts(ctx context.Context, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.incCalls++
	c, ok := s.items[id]
	if !ok {
		return 0, common.ErrorNotFound
	}
	c.Hearts++
	s.items[id] = c
	return c.Hearts, nil
}

func (s *fakeStore) Subscribe(ctx context.Context) (Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subErr != nil {
		return nil, s.subErr
	}
	sub := &fakeSub{events: make(chan Invalidation, 8)}
	s.subs = append(s.subs, sub)
	return sub, nil
}

func (s *fakeStore) hearts(id string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items[id].Hearts
}

func (s *fakeStore) put(c models.Confession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[c.ID] = c
}

func (s *fakeStore) calls() (list, insert, set, inc int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCalls, s.insertCalls, s.setCalls, s.incCalls
}

type fakeSub struct {
	mu     sync.Mutex
	events chan Invalidation
	closed int
}

func (f *fakeSub) Events() <-chan Invalidation { return f.events }

func (f *fakeSub) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed == 0 {
		close(f.events)
	}
	f.closed++
}

func (f *fakeSub) closeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

type memCache struct {
	mu        sync.Mutex
	items     []models.Confession
	fetchedAt time.Time
	listErr   error
}

func (m *memCache) ReplaceAll(ctx context.Context, items []models.Confession, fetchedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = slices.Clone(items)
	m.fetchedAt = fetchedAt
	return nil
}

func (m *memCache) List(ctx context.Context) ([]models.Confession, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.items), m.fetchedAt, m.listErr
}

func (m *memCache) SetHearts(ctx context.Context, id string, hearts int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].Hearts = hearts
		}
	}
	return nil
}
