package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/essabriabdelghani/chatbot-gemini/internal/flagx"
	"github.com/essabriabdelghani/chatbot-gemini/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify timeouts either as strings like "30s"
// or as integer nanoseconds.
type JsonConfig struct {
	ServerURL      string         `json:"server_url"`
	DatabaseDSN    string         `json:"database_dsn"`
	AssistantURL   string         `json:"assistant_url"`
	AssistantKey   string         `json:"assistant_key"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// the -c or -config flags; when absent, nothing is loaded. Read or unmarshal
// errors panic, mirroring the server config loader.
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

	cfg.ServerURL = jc.ServerURL
	cfg.DatabaseDSN = jc.DatabaseDSN
	cfg.AssistantURL = jc.AssistantURL
	cfg.AssistantKey = jc.AssistantKey
	cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
}
