package share

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/lovelab/internal/common"
	"github.com/dmitrijs2005/lovelab/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	calls int
	url   string
	err   error
}

func (f *fakePublisher) ShareCard(ctx context.Context, text string) (string, time.Time, error) {
	f.calls++
	return f.url, time.Time{}, f.err
}

func stubClipboard(t *testing.T, err error) *[]string {
	t.Helper()
	var got []string
	orig := writeClipboard
	writeClipboard = func(s string) error {
		if err != nil {
			return err
		}
		got = append(got, s)
		return nil
	}
	t.Cleanup(func() { writeClipboard = orig })
	return &got
}

func TestShare_CardFirst(t *testing.T) {
	copied := stubClipboard(t, nil)
	pub := &fakePublisher{url: "https://cards/x"}
	s := NewService(pub, nil, time.Second, logging.Discard())

	out, err := s.Share(context.Background(), "Alex + Sam = 47%")
	require.NoError(t, err)
	assert.Equal(t, MethodCard, out.Method)
	assert.Equal(t, "https://cards/x", out.URL)
	assert.Empty(t, *copied)
}

func TestShare_CancelFallsThroughToClipboard(t *testing.T) {
	copied := stubClipboard(t, nil)
	pub := &fakePublisher{url: "https://cards/x"}
	s := NewService(pub, func(string) bool { return false }, time.Second, logging.Discard())

	out, err := s.Share(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, MethodClipboard, out.Method)
	assert.Equal(t, "hello\n"+common.ShareURL, out.Copied)
	assert.Equal(t, []string{"hello\n" + common.ShareURL}, *copied)
	assert.Zero(t, pub.calls)
}

func TestShare_CardErrorFallsThrough(t *testing.T) {
	copied := stubClipboard(t, nil)
	s := NewService(&fakePublisher{err: errors.New("unavailable")}, nil, time.Second, logging.Discard())

	out, err := s.Share(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, MethodClipboard, out.Method)
	assert.Len(t, *copied, 1)
}

func TestShare_BothTiersFail(t *testing.T) {
	stubClipboard(t, errors.New("no xclip"))
	s := NewService(nil, nil, 0, logging.Discard())

	_, err := s.Share(context.Background(), "x")
	assert.ErrorIs(t, err, ErrShareFailed)
}
