package config

import (
	"flag"
	"os"
	"time"

	"github.com/essabriabdelghani/chatbot-gemini/internal/flagx"
)

// parseFlags populates selected client Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   server base URL
//	-f string   local database path
//	-g string   assistant endpoint URL
//	-k string   assistant API key
//	-t int      request timeout, seconds
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-f", "-g", "-k", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ServerURL, "a", config.ServerURL, "server base URL")
	fs.StringVar(&config.DatabaseDSN, "f", config.DatabaseDSN, "local database path")
	fs.StringVar(&config.AssistantURL, "g", config.AssistantURL, "assistant endpoint URL")
	fs.StringVar(&config.AssistantKey, "k", config.AssistantKey, "assistant API key")

	requestTimeout := fs.Int("t", int(config.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
