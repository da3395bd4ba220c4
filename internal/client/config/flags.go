package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/lovelab/internal/flagx"
)

// parseFlags applies the client flags:
//
//	-a string   server address
//	-i int      online check interval, seconds
//	-f string   local database file
//	-m string   heart mode: compat | atomic
//	-g string   practice gate: soft | hard
//	-w int      per-request timeout, seconds
//	-v string   video device node
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-i", "-f", "-m", "-g", "-w", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.DataPath, "f", cfg.DataPath, "local database file")
	fs.StringVar(&cfg.HeartMode, "m", cfg.HeartMode, "heart mode (compat|atomic)")
	fs.StringVar(&cfg.PracticeGate, "g", cfg.PracticeGate, "practice gate (soft|hard)")
	requestTimeout := fs.Int("w", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.VideoDevice, "v", cfg.VideoDevice, "video device")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second

	if err := flagx.OneOf("m", cfg.HeartMode, HeartModeCompat, HeartModeAtomic); err != nil {
		panic(err)
	}
	if err := flagx.OneOf("g", cfg.PracticeGate, GateSoft, GateHard); err != nil {
		panic(err)
	}
}
