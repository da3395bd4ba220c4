// Package camera acquires video capture devices for proposal practice.
package camera

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
)

var (
	// ErrPermissionDenied is returned when the OS refuses access to the
	// device. The user can fix permissions and retry.
	ErrPermissionDenied = errors.New("camera permission denied")
	ErrNoDevice         = errors.New("no camera found")
)

// Track is one exclusively held capture source. Stop releases it.
type Track interface {
	Kind() string
	Stop() error
}

// Stream is a set of video tracks acquired together.
type Stream interface {
	Tracks() []Track
}

// Device hands out video-only streams.
type Device interface {
	Open(ctx context.Context) (Stream, error)
}

// FileDevice opens V4L2-style device nodes read-only, one track per node.
type FileDevice struct {
	Paths []string
}

func NewFileDevice(paths ...string) *FileDevice {
	return &FileDevice{Paths: paths}
}

var openFile = func(name string) (*os.File, error) {
	return os.OpenFile(name, os.O_RDONLY, 0)
}

func (d *FileDevice) Open(ctx context.Context) (Stream, error) {
	if len(d.Paths) == 0 {
		return nil, ErrNoDevice
	}

	s := &fileStream{}
	for _, p := range d.Paths {
		if err := ctx.Err(); err != nil {
			s.stopAll()
			return nil, err
		}
		f, err := openFile(p)
		if err != nil {
			s.stopAll()
			return nil, mapOpenError(p, err)
		}
		s.tracks = append(s.tracks, &fileTrack{f: f})
	}
	return s, nil
}

func mapOpenError(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s", ErrPermissionDenied, path)
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrNoDevice, path)
	default:
		return fmt.Errorf("open %s: %w", path, err)
	}
}

type fileStream struct {
	tracks []Track
}

func (s *fileStream) Tracks() []Track { return s.tracks }

func (s *fileStream) stopAll() {
	for _, t := range s.tracks {
		_ = t.Stop()
	}
}

type fileTrack struct {
	f    *os.File
	once sync.Once
	err  error
}

func (t *fileTrack) Kind() string { return "video" }

func (t *fileTrack) Stop() error {
	t.once.Do(func() { t.err = t.f.Close() })
	return t.err
}
