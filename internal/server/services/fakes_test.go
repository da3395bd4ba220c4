package services

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/lovelab/internal/common"
	"github.com/dmitrijs2005/lovelab/internal/dbx"
	"github.com/dmitrijs2005/lovelab/internal/server/models"
	"github.com/dmitrijs2005/lovelab/internal/server/repositories/confessions"
	"github.com/dmitrijs2005/lovelab/internal/server/repositories/practice"
	"github.com/dmitrijs2005/lovelab/internal/server/repositories/repomanager"
)

type fakeConfessionsRepo struct {
	confessions.Repository

	mu        sync.Mutex
	inserted  []*models.Confession
	hearts    map[string]int64
	insertErr error
	listOut   []*models.Confession
	listErr   error
}

func (f *fakeConfessionsRepo) List(ctx context.Context) ([]*models.Confession, error) {
	return f.listOut, f.listErr
}

func (f *fakeConfessionsRepo) Insert(ctx context.Context, c *models.Confession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	c.CreatedAt = time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)
	f.inserted = append(f.inserted, c)
	return nil
}

func (f *fakeConfessionsRepo) SetHearts(ctx context.Context, id string, hearts int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.hearts[id]; !ok {
		return common.ErrorNotFound
	}
	f.hearts[id] = hearts
	return nil
}

func (f *fakeConfessionsRepo) IncrementHearts(ctx context.Context, id string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.hearts[id]; !ok {
		return 0, common.ErrorNotFound
	}
	f.hearts[id]++
	return f.hearts[id], nil
}

type fakePracticeRepo struct {
	practice.Repository
	claimed map[string]bool
}

func (f *fakePracticeRepo) Claim(ctx context.Context, hash string) (time.Time, error) {
	if f.claimed[hash] {
		return time.Time{}, common.ErrPracticeUsed
	}
	f.claimed[hash] = true
	return time.Unix(1700000000, 0), nil
}

type fakeRepoMgr struct {
	repomanager.RepositoryManager
	confessions *fakeConfessionsRepo
	practice    *fakePracticeRepo
}

func (m *fakeRepoMgr) Confessions(db dbx.DBTX) confessions.Repository { return m.confessions }
func (m *fakeRepoMgr) Practice(db dbx.DBTX) practice.Repository       { return m.practice }
