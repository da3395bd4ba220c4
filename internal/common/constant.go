// Package common contains constants and sentinel errors shared by the
// LoveLab client and server.
package common

// DeviceTokenHeaderName is the gRPC metadata key that carries the anonymous
// device token on outbound requests.
const DeviceTokenHeaderName = "device_token"

// Device-scoped preference keys. The names match what the web build kept in
// localStorage so an exported profile stays readable.
const (
	PrefNickname     = "lovelab_nickname"
	PrefPracticeUsed = "lovelab_proposalUsed"
	PrefDeviceToken  = "lovelab_deviceToken"
)

// ShareURL is appended to every shared result.
const ShareURL = "https://lovelabfun.vercel.app"

// Limits enforced by the server and pre-checked by the client.
const (
	MaxConfessionLength = 1000
	MaxCrushLength      = 100
)
