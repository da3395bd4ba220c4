package services

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// DeviceHasher pseudonymizes device ids before they are stored or used as
// map keys. The hash is keyed with the server secret so ids cannot be
// recovered by brute force from a database dump.
type DeviceHasher struct {
	key []byte
}

func NewDeviceHasher(secret string) *DeviceHasher {
	sum := blake2b.Sum256([]byte(secret))
	return &DeviceHasher{key: sum[:]}
}

func (h *DeviceHasher) Hash(deviceID string) string {
	mac, err := blake2b.New256(h.key)
	if err != nil {
		// only possible with a key longer than 64 bytes
		panic(err)
	}
	mac.Write([]byte(deviceID))
	return hex.EncodeToString(mac.Sum(nil))
}
