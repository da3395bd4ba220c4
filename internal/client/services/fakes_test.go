package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/lovelab/internal/client/client"
)

// memPrefs is an in-memory prefs.Repository.
type memPrefs struct {
	data   map[string][]byte
	getErr error
}

func newMemPrefs() *memPrefs { return &memPrefs{data: map[string][]byte{}} }

func (m *memPrefs) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.data[key], nil
}

func (m *memPrefs) Set(ctx context.Context, key string, value []byte) error {
	m.data[key] = value
	return nil
}

func (m *memPrefs) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *memPrefs) List(ctx context.Context) (map[string][]byte, error) { return m.data, nil }

func (m *memPrefs) Clear(ctx context.Context) error {
	m.data = map[string][]byte{}
	return nil
}

type fakeClient struct {
	client.Client

	registerCalls int
	registerToken string
	registerErr   error
	installed     string
}

func (f *fakeClient) RegisterDevice(ctx context.Context) (string, string, time.Time, error) {
	f.registerCalls++
	if f.registerErr != nil {
		return "", "", time.Time{}, f.registerErr
	}
	return "dev", f.registerToken, time.Time{}, nil
}

func (f *fakeClient) SetDeviceToken(token string) { f.installed = token }
