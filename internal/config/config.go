// Package config provides functionality for managing configuration options
// for the application using command-line flags, environment variables and
// an optional .env file.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// BaseURL is the address of the commerce API, including the version prefix.
	BaseURL string

	// StateDir is the directory where session and cart state is persisted.
	StateDir string

	// RequestTimeout bounds every outgoing API request.
	RequestTimeout time.Duration

	// Addr is the listen address of the development API server (ip:port).
	Addr string

	// JWTSecret signs access tokens issued by the development API server.
	JWTSecret string

	// LogLevel sets the zap logging level.
	LogLevel string

	// Config is the path to the Config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.BaseURL, "url", "http://localhost:8080/api/v1", "commerce API base URL")
	flag.StringVar(&options.StateDir, "state", ".storefront", "directory for persisted session and cart state")
	flag.DurationVar(&options.RequestTimeout, "timeout", 10*time.Second, "timeout for API requests")
	flag.StringVar(&options.Addr, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.JWTSecret, "secret", "dev-secret", "JWT signing secret for the dev server")
	flag.StringVar(&options.LogLevel, "level", "info", "log level")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags, the optional .env file and
// environment variables to set configuration values. It returns a pointer
// to the Options struct containing the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// Load a .env file when present; real environment variables win over it.
	_ = godotenv.Load()

	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	// Override flags with environment variables if set
	if baseURL := os.Getenv("API_URL"); baseURL != "" {
		options.BaseURL = baseURL
	}
	if stateDir := os.Getenv("STATE_DIR"); stateDir != "" {
		options.StateDir = stateDir
	}
	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Addr = serverAddress
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		options.JWTSecret = secret
	}
	if timeout := os.Getenv("REQUEST_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			options.RequestTimeout = d
		}
	}

	return options
}
