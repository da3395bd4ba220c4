package services

import (
	"time"

	"github.com/dmitrijs2005/lovelab/internal/server/auth"
	"github.com/dmitrijs2005/lovelab/internal/server/config"
	"github.com/google/uuid"
)

// DeviceService mints anonymous device identities. Nothing is stored; the
// signed token is the identity.
type DeviceService struct {
	secret   []byte
	validity time.Duration
}

func NewDeviceService(cfg *config.Config) *DeviceService {
	return &DeviceService{secret: []byte(cfg.SecretKey), validity: cfg.DeviceTokenValidityDuration}
}

// Register returns a fresh device id and its token.
func (s *DeviceService) Register() (deviceID, token string, expires time.Time, err error) {
	deviceID = uuid.NewString()
	token, expires, err = auth.GenerateToken(deviceID, s.secret, s.validity)
	if err != nil {
		return "", "", time.Time{}, err
	}
	return deviceID, token, expires, nil
}

// Authenticate returns the device id carried by token.
func (s *DeviceService) Authenticate(token string) (string, error) {
	return auth.GetDeviceIDFromToken(token, s.secret)
}
