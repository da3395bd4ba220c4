package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/lovelab/internal/client/client"
	"github.com/dmitrijs2005/lovelab/internal/client/repositories/prefs"
	"github.com/dmitrijs2005/lovelab/internal/common"
)

// DeviceService keeps the anonymous device token in the preference store
// and hands it to the transport.
type DeviceService struct {
	client client.Client
	repo   prefs.Repository
}

func NewDeviceService(c client.Client, repo prefs.Repository) *DeviceService {
	return &DeviceService{client: c, repo: repo}
}

// EnsureToken loads the stored token or registers a new device. Either way
// the token is installed on the client.
func (d *DeviceService) EnsureToken(ctx context.Context) (string, error) {
	v, err := d.repo.Get(ctx, common.PrefDeviceToken)
	if err != nil {
		return "", err
	}
	if len(v) > 0 {
		d.client.SetDeviceToken(string(v))
		return string(v), nil
	}

	_, token, _, err := d.client.RegisterDevice(ctx)
	if err != nil {
		return "", fmt.Errorf("register device: %w", err)
	}
	if err := d.Remember(ctx, token); err != nil {
		return "", err
	}
	d.client.SetDeviceToken(token)
	return token, nil
}

// Remember persists a token issued outside EnsureToken, e.g. after the
// transport re-registered the device.
func (d *DeviceService) Remember(ctx context.Context, token string) error {
	return d.repo.Set(ctx, common.PrefDeviceToken, []byte(token))
}
