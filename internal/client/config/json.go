package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/lovelab/internal/flagx"
	"github.com/dmitrijs2005/lovelab/internal/timex"
)

// JsonConfig mirrors Config for the optional JSON file. Absent keys leave
// the current value alone.
type JsonConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	DataPath            string         `json:"data_path"`
	HeartMode           string         `json:"heart_mode"`
	PracticeGate        string         `json:"practice_gate"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	VideoDevice         string         `json:"video_device"`
}

func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.DataPath != "" {
		cfg.DataPath = jc.DataPath
	}
	if jc.HeartMode != "" {
		cfg.HeartMode = jc.HeartMode
	}
	if jc.PracticeGate != "" {
		cfg.PracticeGate = jc.PracticeGate
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.VideoDevice != "" {
		cfg.VideoDevice = jc.VideoDevice
	}
}
