// Package config loads the LoveLab client settings: built-in defaults, then
// an optional JSON file (-c/-config), then command-line flags.
package config

import (
	"time"

	"github.com/dmitrijs2005/lovelab/internal/filex"
)

// Heart increment modes.
const (
	HeartModeCompat = "compat"
	HeartModeAtomic = "atomic"
)

// Practice gate modes.
const (
	GateSoft = "soft"
	GateHard = "hard"
)

type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	DataPath            string
	HeartMode           string
	PracticeGate        string
	RequestTimeout      time.Duration
	VideoDevice         string
}

func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.DataPath = filex.DefaultDataPath("lovelab.db")
	c.HeartMode = HeartModeAtomic
	c.PracticeGate = GateSoft
	c.RequestTimeout = 5 * time.Second
	c.VideoDevice = "/dev/video0"
}

func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
