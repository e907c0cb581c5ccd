package config

import (
	"encoding/json"
	"os"

	"github.com/adrg/xdg"
	"github.com/dmitrijs2005/mealplanner/internal/flagx"
	"github.com/dmitrijs2005/mealplanner/internal/timex"
)

// xdgConfigName is looked up in the XDG config directories when no file is
// passed on the command line.
const xdgConfigName = "mealplanner/config.json"

// JsonConfig mirrors Config for decoding JSON files. Durations are
// timex.Duration so both "10m" and integer nanoseconds are accepted.
type JsonConfig struct {
	HTTPAddr                     string         `json:"http_addr"`
	GRPCAddr                     string         `json:"grpc_addr"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`

	GoogleClientID     string `json:"google_client_id"`
	GoogleClientSecret string `json:"google_client_secret"`
	GoogleRedirectURL  string `json:"google_redirect_url"`
	GoogleAuthURL      string `json:"google_auth_url"`
	GoogleTokenURL     string `json:"google_token_url"`
	CalendarEndpoint   string `json:"calendar_endpoint"`
	CalendarID         string `json:"calendar_id"`

	DefaultCookTime timex.Duration `json:"default_cook_time"`
	DefaultTimeZone string         `json:"default_time_zone"`
	OAuthStateTTL   timex.Duration `json:"oauth_state_ttl"`

	S3RootUser     string `json:"s3_root_user"`
	S3RootPassword string `json:"s3_root_password"`
	S3Bucket       string `json:"s3_bucket"`
	S3Region       string `json:"s3_region"`
	S3BaseEndpoint string `json:"s3_base_endpoint"`

	LogLevel string `json:"log_level"`
}

func toJson(c *Config) *JsonConfig {
	return &JsonConfig{
		HTTPAddr:                     c.HTTPAddr,
		GRPCAddr:                     c.GRPCAddr,
		DatabaseDSN:                  c.DatabaseDSN,
		SecretKey:                    c.SecretKey,
		AccessTokenValidityDuration:  timex.Duration{Duration: c.AccessTokenValidityDuration},
		RefreshTokenValidityDuration: timex.Duration{Duration: c.RefreshTokenValidityDuration},
		GoogleClientID:               c.GoogleClientID,
		GoogleClientSecret:           c.GoogleClientSecret,
		GoogleRedirectURL:            c.GoogleRedirectURL,
		GoogleAuthURL:                c.GoogleAuthURL,
		GoogleTokenURL:               c.GoogleTokenURL,
		CalendarEndpoint:             c.CalendarEndpoint,
		CalendarID:                   c.CalendarID,
		DefaultCookTime:              timex.Duration{Duration: c.DefaultCookTime},
		DefaultTimeZone:              c.DefaultTimeZone,
		OAuthStateTTL:                timex.Duration{Duration: c.OAuthStateTTL},
		S3RootUser:                   c.S3RootUser,
		S3RootPassword:               c.S3RootPassword,
		S3Bucket:                     c.S3Bucket,
		S3Region:                     c.S3Region,
		S3BaseEndpoint:               c.S3BaseEndpoint,
		LogLevel:                     c.LogLevel,
	}
}

func (j *JsonConfig) apply(c *Config) {
	c.HTTPAddr = j.HTTPAddr
	c.GRPCAddr = j.GRPCAddr
	c.DatabaseDSN = j.DatabaseDSN
	c.SecretKey = j.SecretKey
	c.AccessTokenValidityDuration = j.AccessTokenValidityDuration.Duration
	c.RefreshTokenValidityDuration = j.RefreshTokenValidityDuration.Duration
	c.GoogleClientID = j.GoogleClientID
	c.GoogleClientSecret = j.GoogleClientSecret
	c.GoogleRedirectURL = j.GoogleRedirectURL
	c.GoogleAuthURL = j.GoogleAuthURL
	c.GoogleTokenURL = j.GoogleTokenURL
	c.CalendarEndpoint = j.CalendarEndpoint
	c.CalendarID = j.CalendarID
	c.DefaultCookTime = j.DefaultCookTime.Duration
	c.DefaultTimeZone = j.DefaultTimeZone
	c.OAuthStateTTL = j.OAuthStateTTL.Duration
	c.S3RootUser = j.S3RootUser
	c.S3RootPassword = j.S3RootPassword
	c.S3Bucket = j.S3Bucket
	c.S3Region = j.S3Region
	c.S3BaseEndpoint = j.S3BaseEndpoint
	c.LogLevel = j.LogLevel
}

// configFilePath returns the file named by -c/-config, or the first
// mealplanner/config.json found in the XDG config directories, or "".
func configFilePath() string {
	if p := flagx.ConfigFileFlag(); p != "" {
		return p
	}
	if p, err := xdg.SearchConfigFile(xdgConfigName); err == nil {
		return p
	}
	return ""
}

// parseJson overlays values from the JSON config file onto config. Keys
// missing from the file keep their current values. An unreadable or
// malformed file panics: the server must not start with a half-applied
// configuration.
func parseJson(config *Config) {
	path := configFilePath()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := toJson(config)
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}
	c.apply(config)
}
