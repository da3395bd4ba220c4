// Package share hands results to the outside world: first as a published
// share card, then by copying to the clipboard.
package share

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/dmitrijs2005/lovelab/internal/common"
	"github.com/dmitrijs2005/lovelab/internal/logging"
)

var (
	// ErrCancelled means the user declined the card. It is not a failure.
	ErrCancelled   = errors.New("share cancelled")
	ErrShareFailed = errors.New("couldn't share, try copying manually")
)

// Method tells how the text was shared.
type Method string

const (
	MethodCard      Method = "card"
	MethodClipboard Method = "clipboard"
)

// Publisher stores a share card and returns its public link.
type Publisher interface {
	ShareCard(ctx context.Context, text string) (string, time.Time, error)
}

// Confirm asks the user whether to publish a card. Returning false cancels.
type Confirm func(text string) bool

var writeClipboard = clipboard.WriteAll

type Outcome struct {
	Method Method
	URL    string
	// Copied is what went to the clipboard.
	Copied string
}

type Service struct {
	publisher Publisher
	confirm   Confirm
	timeout   time.Duration
	log       logging.Logger
}

// NewService wires the two tiers. publisher may be nil (offline builds);
// a nil confirm always publishes.
func NewService(publisher Publisher, confirm Confirm, timeout time.Duration, log logging.Logger) *Service {
	return &Service{publisher: publisher, confirm: confirm, timeout: timeout, log: log.With("module", "share")}
}

// Share tries the card first. Cancellation and card errors fall through to
// the clipboard; ErrShareFailed is returned only when both tiers fail.
func (s *Service) Share(ctx context.Context, text string) (Outcome, error) {
	url, err := s.publish(ctx, text)
	if err == nil {
		return Outcome{Method: MethodCard, URL: url}, nil
	}
	if !errors.Is(err, ErrCancelled) {
		s.log.Warn(ctx, "share card failed, using clipboard", "error", err)
	}

	copied := fmt.Sprintf("%s\n%s", text, common.ShareURL)
	if err := writeClipboard(copied); err != nil {
		s.log.Warn(ctx, "clipboard unavailable", "error", err)
		return Outcome{}, fmt.Errorf("%w: %v", ErrShareFailed, err)
	}
	return Outcome{Method: MethodClipboard, URL: common.ShareURL, Copied: copied}, nil
}

func (s *Service) publish(ctx context.Context, text string) (string, error) {
	if s.publisher == nil {
		return "", errors.New("no publisher")
	}
	if s.confirm != nil && !s.confirm(text) {
		return "", ErrCancelled
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	url, _, err := s.publisher.ShareCard(ctx, text)
	if err != nil {
		return "", err
	}
	return url, nil
}
