package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/lovelab/internal/server/config"
	"github.com/dmitrijs2005/lovelab/internal/server/repositories/repomanager"
)

// PracticeService enforces the one-time proposal practice. With the soft
// gate every claim succeeds and enforcement is left to the device; with the
// hard gate the first claim per device is recorded and later ones fail with
// common.ErrPracticeUsed.
type PracticeService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *DeviceHasher
	gate        string
	now         func() time.Time
}

func NewPracticeService(db *sql.DB, m repomanager.RepositoryManager, hasher *DeviceHasher, gate string) *PracticeService {
	return &PracticeService{db: db, repomanager: m, hasher: hasher, gate: gate, now: time.Now}
}

func (s *PracticeService) Claim(ctx context.Context, deviceID string) (time.Time, error) {
	if s.gate != config.GateHard {
		return s.now(), nil
	}
	return s.repomanager.Practice(s.db).Claim(ctx, s.hasher.Hash(deviceID))
}
