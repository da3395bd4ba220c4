// Package services contains the server-side business logic behind the gRPC
// handlers: confession validation and persistence, device tokens, practice
// claims and share cards.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/lovelab/internal/common"
	"github.com/dmitrijs2005/lovelab/internal/server/models"
	"github.com/dmitrijs2005/lovelab/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// ConfessionService owns the canonical confession rows. Ids and timestamps
// are always assigned here, never by clients.
type ConfessionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	limiter     *RateLimiter
	hasher      *DeviceHasher
	newID       func() string
}

func NewConfessionService(db *sql.DB, m repomanager.RepositoryManager, limiter *RateLimiter, hasher *DeviceHasher) *ConfessionService {
	return &ConfessionService{
		db:          db,
		repomanager: m,
		limiter:     limiter,
		hasher:      hasher,
		newID:       uuid.NewString,
	}
}

// List returns all confessions, newest first.
func (s *ConfessionService) List(ctx context.Context) ([]*models.Confession, error) {
	return s.repomanager.Confessions(s.db).List(ctx)
}

// Submit validates and stores a new confession from deviceID. Text is
// trimmed and must be non-empty; the crush name is optional.
func (s *ConfessionService) Submit(ctx context.Context, deviceID, text, crush string) (*models.Confession, error) {
	text = strings.TrimSpace(text)
	crush = strings.TrimSpace(crush)

	if text == "" {
		return nil, common.ErrEmptyConfession
	}
	if utf8.RuneCountInString(text) > common.MaxConfessionLength {
		return nil, fmt.Errorf("%w: confession exceeds %d characters", common.ErrTooLong, common.MaxConfessionLength)
	}
	if utf8.RuneCountInString(crush) > common.MaxCrushLength {
		return nil, fmt.Errorf("%w: crush exceeds %d characters", common.ErrTooLong, common.MaxCrushLength)
	}
	if !s.limiter.Allow(s.hasher.Hash(deviceID)) {
		return nil, common.ErrRateLimited
	}

	c := &models.Confession{ID: s.newID(), Text: text, Crush: crush}
	if err := s.repomanager.Confessions(s.db).Insert(ctx, c); err != nil {
		return nil, fmt.Errorf("error inserting confession: %w", err)
	}
	return c, nil
}

// SetHearts overwrites the heart count of one confession.
func (s *ConfessionService) SetHearts(ctx context.Context, id string, hearts int64) error {
	if err := validateID(id); err != nil {
		return err
	}
	if hearts < 0 {
		return common.ErrNegativeHearts
	}
	return s.repomanager.Confessions(s.db).SetHearts(ctx, id, hearts)
}

// IncrementHearts adds one heart atomically and returns the new count.
func (s *ConfessionService) IncrementHearts(ctx context.Context, id string) (int64, error) {
	if err := validateID(id); err != nil {
		return 0, err
	}
	return s.repomanager.Confessions(s.db).IncrementHearts(ctx, id)
}

// validateID rejects anything that is not a uuid. Unknown but well-formed
// ids are reported as not found by the repository.
func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.ErrorNotFound
	}
	return nil
}
