package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	path := filepath.Join(dir, "client.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"server_endpoint_addr": "lovelab.example:443",
		"online_check_interval": "7s",
		"heart_mode": "compat",
		"request_timeout": 1500000000
	}`), 0o600))

	t.Run("overlays present keys", func(t *testing.T) {
		os.Args = []string{"client", "-c", path}
		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "lovelab.example:443", cfg.ServerEndpointAddr)
		assert.Equal(t, 7*time.Second, cfg.OnlineCheckInterval)
		assert.Equal(t, HeartModeCompat, cfg.HeartMode)
		assert.Equal(t, 1500*time.Millisecond, cfg.RequestTimeout)
		assert.Equal(t, GateSoft, cfg.PracticeGate)
		assert.Equal(t, "/dev/video0", cfg.VideoDevice)
	})

	t.Run("no file flag", func(t *testing.T) {
		os.Args = []string{"client"}
		cfg := &Config{ServerEndpointAddr: "x"}
		parseJson(cfg)
		assert.Equal(t, &Config{ServerEndpointAddr: "x"}, cfg)
	})

	t.Run("invalid json panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{`), 0o600))
		os.Args = []string{"client", "-config", bad}
		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
