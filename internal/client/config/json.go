package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/dmitrijs2005/mealplanner/internal/flagx"
	"github.com/dmitrijs2005/mealplanner/internal/timex"
)

const xdgConfigName = "mealplanner/client.json"

// JsonConfig is the on-disk form of Config. Absent keys keep their
// current values.
type JsonConfig struct {
	ServerURL           string         `json:"server_url,omitempty"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
}

func configFilePath() string {
	if p := flagx.ConfigFileFlag(); p != "" {
		return p
	}
	if p, err := xdg.SearchConfigFile(xdgConfigName); err == nil {
		return p
	}
	return ""
}

// parseJson overlays cfg with the JSON file, if any. It panics when the
// file cannot be read or parsed.
func parseJson(cfg *Config) {
	path := configFilePath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = time.Duration(jc.OnlineCheckInterval.Duration)
	}
}
