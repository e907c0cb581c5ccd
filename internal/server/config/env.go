package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// dotEnvFile is read, if present, before the process environment is
// consulted. Variables already set in the environment win.
var dotEnvFile = ".env"

type envString struct {
	key string
	dst func(*Config) *string
}

type envDuration struct {
	key string
	dst func(*Config) *time.Duration
}

var envStrings = []envString{
	{"MEALPLANNER_HTTP_ADDR", func(c *Config) *string { return &c.HTTPAddr }},
	{"MEALPLANNER_GRPC_ADDR", func(c *Config) *string { return &c.GRPCAddr }},
	{"MEALPLANNER_DATABASE_DSN", func(c *Config) *string { return &c.DatabaseDSN }},
	{"MEALPLANNER_SECRET_KEY", func(c *Config) *string { return &c.SecretKey }},
	{"MEALPLANNER_DEFAULT_TIME_ZONE", func(c *Config) *string { return &c.DefaultTimeZone }},
	{"MEALPLANNER_LOG_LEVEL", func(c *Config) *string { return &c.LogLevel }},
	{"GOOGLE_CLIENT_ID", func(c *Config) *string { return &c.GoogleClientID }},
	{"GOOGLE_CLIENT_SECRET", func(c *Config) *string { return &c.GoogleClientSecret }},
	{"GOOGLE_REDIRECT_URL", func(c *Config) *string { return &c.GoogleRedirectURL }},
	{"GOOGLE_AUTH_URL", func(c *Config) *string { return &c.GoogleAuthURL }},
	{"GOOGLE_TOKEN_URL", func(c *Config) *string { return &c.GoogleTokenURL }},
	{"GOOGLE_CALENDAR_ENDPOINT", func(c *Config) *string { return &c.CalendarEndpoint }},
	{"GOOGLE_CALENDAR_ID", func(c *Config) *string { return &c.CalendarID }},
	{"S3_ROOT_USER", func(c *Config) *string { return &c.S3RootUser }},
	{"S3_ROOT_PASSWORD", func(c *Config) *string { return &c.S3RootPassword }},
	{"S3_BUCKET", func(c *Config) *string { return &c.S3Bucket }},
	{"S3_REGION", func(c *Config) *string { return &c.S3Region }},
	{"S3_BASE_ENDPOINT", func(c *Config) *string { return &c.S3BaseEndpoint }},
}

var envDurations = []envDuration{
	{"MEALPLANNER_ACCESS_TOKEN_VALIDITY", func(c *Config) *time.Duration { return &c.AccessTokenValidityDuration }},
	{"MEALPLANNER_REFRESH_TOKEN_VALIDITY", func(c *Config) *time.Duration { return &c.RefreshTokenValidityDuration }},
	{"MEALPLANNER_DEFAULT_COOK_TIME", func(c *Config) *time.Duration { return &c.DefaultCookTime }},
	{"MEALPLANNER_OAUTH_STATE_TTL", func(c *Config) *time.Duration { return &c.OAuthStateTTL }},
}

// parseEnv overlays environment variables onto config. Durations use
// time.ParseDuration syntax; a malformed duration panics like a malformed
// JSON file does.
func parseEnv(config *Config) {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	for _, e := range envStrings {
		if v, ok := os.LookupEnv(e.key); ok && v != "" {
			*e.dst(config) = v
		}
	}

	for _, e := range envDurations {
		v, ok := os.LookupEnv(e.key)
		if !ok || v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		*e.dst(config) = d
	}
}
