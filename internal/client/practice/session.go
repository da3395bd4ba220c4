package practice

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/lovelab/internal/client/camera"
	"github.com/dmitrijs2005/lovelab/internal/logging"
)

var (
	ErrNotRecording     = errors.New("not recording")
	ErrAlreadyRecording = errors.New("already recording")
)

// Session owns the camera stream between Start and Finish or Close. Every
// track is stopped exactly once on every exit path.
type Session struct {
	device camera.Device
	gen    *Generator
	gate   *Gate
	log    logging.Logger
	limit  time.Duration
	now    func() time.Time

	mu       sync.Mutex
	stream   camera.Stream
	started  time.Time
	timer    *time.Timer
	autoDone chan struct{}
	result   *Result
}

func NewSession(device camera.Device, gen *Generator, gate *Gate, log logging.Logger) *Session {
	return &Session{
		device: device,
		gen:    gen,
		gate:   gate,
		log:    log.With("module", "practice"),
		limit:  MaxDuration,
		now:    time.Now,
	}
}

// Start checks the gate, opens the camera and arms the auto-finish timer.
// A camera.ErrPermissionDenied leaves the session idle so the caller can
// retry.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stream != nil {
		return ErrAlreadyRecording
	}
	if err := s.gate.Check(ctx); err != nil {
		return err
	}

	stream, err := s.device.Open(ctx)
	if err != nil {
		s.log.Warn(ctx, "camera unavailable", "error", err)
		return err
	}
	if err := s.gate.Reserve(ctx); err != nil {
		stopTracks(stream)
		return err
	}

	s.stream = stream
	s.started = s.now()
	s.result = nil
	s.autoDone = make(chan struct{})
	done := s.autoDone
	s.timer = time.AfterFunc(s.limit, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.stream != stream {
			return
		}
		s.finishLocked(context.Background())
		close(done)
	})
	return nil
}

// AutoFinished is closed when the time limit ended the recording. Nil
// before Start.
func (s *Session) AutoFinished() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.autoDone
}

// Recording reports whether the camera is held.
func (s *Session) Recording() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stream != nil
}

// Elapsed is the recording time so far, capped at the limit.
func (s *Session) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stream == nil {
		return 0
	}
	return min(s.now().Sub(s.started), s.limit)
}

// Finish stops recording, releases the camera, marks the practice used and
// returns the analysis. After an auto-finish it returns the stored result.
func (s *Session) Finish(ctx context.Context) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stream == nil {
		if s.result != nil {
			return *s.result, nil
		}
		return Result{}, ErrNotRecording
	}
	return s.finishLocked(ctx), nil
}

func (s *Session) finishLocked(ctx context.Context) Result {
	elapsed := s.now().Sub(s.started)
	if elapsed >= s.limit {
		elapsed = MaxDuration
	}
	s.releaseLocked()

	res := s.gen.Analyze(elapsed)
	s.result = &res
	if err := s.gate.Consume(ctx); err != nil {
		s.log.Warn(ctx, "failed to store practice flag", "error", err)
	}
	return res
}

// Close releases the camera without producing a result. Safe to call at
// any time and more than once.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releaseLocked()
}

func (s *Session) releaseLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.stream != nil {
		stopTracks(s.stream)
		s.stream = nil
	}
}

func stopTracks(stream camera.Stream) {
	for _, t := range stream.Tracks() {
		_ = t.Stop()
	}
}
