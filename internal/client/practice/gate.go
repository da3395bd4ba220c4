package practice

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/lovelab/internal/common"
)

// Flag is the device-local used-once marker.
type Flag interface {
	PracticeUsed(ctx context.Context) (bool, error)
	MarkPracticeUsed(ctx context.Context) error
}

// Claimer reserves the practice for this device on the server.
type Claimer interface {
	ClaimPractice(ctx context.Context) (time.Time, error)
}

// Gate enforces one practice per device. A soft gate only checks the local
// flag. A hard gate also claims the device on the server before recording,
// so clearing local storage does not unlock another attempt.
type Gate struct {
	flag    Flag
	claimer Claimer
}

func NewSoftGate(flag Flag) *Gate {
	return &Gate{flag: flag}
}

func NewHardGate(flag Flag, claimer Claimer) *Gate {
	return &Gate{flag: flag, claimer: claimer}
}

func (g *Gate) Hard() bool { return g.claimer != nil }

// Check returns common.ErrPracticeUsed when the local flag is set.
func (g *Gate) Check(ctx context.Context) error {
	used, err := g.flag.PracticeUsed(ctx)
	if err != nil {
		return err
	}
	if used {
		return common.ErrPracticeUsed
	}
	return nil
}

// Reserve runs before recording starts. For a hard gate it claims the
// device; a rejected claim also sets the local flag.
func (g *Gate) Reserve(ctx context.Context) error {
	if err := g.Check(ctx); err != nil {
		return err
	}
	if g.claimer == nil {
		return nil
	}
	if _, err := g.claimer.ClaimPractice(ctx); err != nil {
		if errors.Is(err, common.ErrPracticeUsed) {
			_ = g.flag.MarkPracticeUsed(ctx)
		}
		return err
	}
	return nil
}

// Consume marks the practice as used after a finished session.
func (g *Gate) Consume(ctx context.Context) error {
	return g.flag.MarkPracticeUsed(ctx)
}
