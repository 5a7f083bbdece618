package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/essabriabdelghani/chatbot-gemini/internal/flagx"
	"github.com/essabriabdelghani/chatbot-gemini/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the token lifetime either as a string
// like "24h" or as integer nanoseconds. After parsing, values are copied
// into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	EndpointAddr          string         `json:"endpoint_addr"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	MaxDBConns            int            `json:"max_db_conns"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path is taken from the -c or -config command-line flags via
// flagx.JsonConfigFlags(); when absent, no JSON is loaded. Read or unmarshal
// errors panic (caller should recover if desired). Intended usage is:
// defaults -> parseJson -> parseFlags, later stages overriding earlier ones.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.TokenValidityDuration = time.Duration(c.TokenValidityDuration.Duration)
	config.MaxDBConns = c.MaxDBConns
}
