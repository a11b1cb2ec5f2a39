package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration for the client
type Config struct {
	APIBaseURL     string `koanf:"api_base_url"`
	SessionFile    string `koanf:"session_file"`
	RequestTimeout int    `koanf:"request_timeout"` // seconds
	Environment    string `koanf:"environment"`
}

// Load builds a Config by layering defaults, an optional YAML file, and
// environment variables. Order of precedence (low -> high):
//  1. defaults
//  2. file (YAML) if LAUNCHGATE_CONFIG is set
//  3. env (prefix LAUNCHGATE_)
//
// Outside production a .env file is loaded first so local runs can keep
// their settings out of the shell.
func Load() (*Config, error) {
	environment := os.Getenv("GO_ENV")
	if environment == "" {
		environment = "development"
	}

	// .env might not exist in production; we rely on system env vars there.
	if environment != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		APIBaseURL:     "http://localhost:8000",
		SessionFile:    defaultSessionFile(),
		RequestTimeout: 15,
		Environment:    environment,
	}

	k := koanf.New(".")

	if path := os.Getenv("LAUNCHGATE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// LAUNCHGATE_API_BASE_URL -> api_base_url, etc.
	envProvider := env.Provider("LAUNCHGATE_", ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), "launchgate_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load env config: %w", err)
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	u, err := url.Parse(cfg.APIBaseURL)
	if err != nil || !u.IsAbs() {
		return nil, fmt.Errorf("api_base_url must be an absolute URL, got %q", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("request_timeout must be positive, got %d", cfg.RequestTimeout)
	}

	return cfg, nil
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".launchgate", "session.json")
	}
	return filepath.Join(home, ".launchgate", "session.json")
}
