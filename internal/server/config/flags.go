package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/lovelab/internal/flagx"
)

var serverFlags = []string{"-a", "-d", "-s", "-t", "-g", "-l", "-u", "-p", "-b", "-r", "-e"}

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-d string   PostgreSQL DSN
//	-s string   device token HMAC secret
//	-t int      device token validity, hours
//	-g string   practice gate: soft | hard
//	-l int      confession submissions per device per minute (0 = unlimited)
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-r string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//
// Arguments not in the list above are dropped by flagx.FilterArgs before
// parsing, so -c/-config can coexist on the same command line.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], serverFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidity := fs.Int("t", int(config.DeviceTokenValidityDuration.Hours()), "device token validity (in hours)")

	fs.StringVar(&config.PracticeGate, "g", config.PracticeGate, "practice gate (soft|hard)")
	fs.IntVar(&config.SubmitRatePerMinute, "l", config.SubmitRatePerMinute, "confessions per device per minute")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "r", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.DeviceTokenValidityDuration = time.Duration(*tokenValidity) * time.Hour

	if err := flagx.OneOf("g", config.PracticeGate, GateSoft, GateHard); err != nil {
		panic(err)
	}
}
