package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/mealplanner/internal/flagx"
)

var knownFlags = []string{"-a", "-l", "-d", "-s", "-t", "-r", "-m", "-z", "-v", "-u", "-p", "-b", "-g", "-e"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC health endpoint bind address (e.g., ":50051")
//	-l string   HTTP API bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   server secret key
//	-t int      API access token validity, minutes
//	-r int      API refresh token validity, minutes
//	-m int      fallback cook time for unknown recipes, minutes
//	-z string   default IANA time zone for schedule requests
//	-v string   log level
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//
// Only recognized flags are parsed (see flagx.FilterArgs), so flags meant for
// other components do not break startup. Durations are given in whole minutes.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.GRPCAddr, "a", config.GRPCAddr, "address and port of the gRPC health endpoint")
	fs.StringVar(&config.HTTPAddr, "l", config.HTTPAddr, "address and port of the HTTP API")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	refreshTokenValidity := fs.Int("r", int(config.RefreshTokenValidityDuration.Minutes()), "refresh token validity (in minutes)")
	defaultCookTime := fs.Int("m", int(config.DefaultCookTime.Minutes()), "fallback cook time (in minutes)")

	fs.StringVar(&config.DefaultTimeZone, "z", config.DefaultTimeZone, "default time zone")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidity) * time.Minute
	config.RefreshTokenValidityDuration = time.Duration(*refreshTokenValidity) * time.Minute
	config.DefaultCookTime = time.Duration(*defaultCookTime) * time.Minute
}
