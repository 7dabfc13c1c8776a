// Package config loads the client options from an optional YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/atinyakov/FotoShop/internal/client/storage"
)

// Options holds the client configuration.
type Options struct {
	// ServerURL is the storefront API base URL.
	ServerURL string `yaml:"server_url"`
	// StorePath is where the local state is persisted.
	StorePath string `yaml:"store_path"`
	// Backend selects the persistence bridge: file, sqlite or memory.
	Backend string `yaml:"backend"`
	// CAFile, when set, is the only CA trusted for the server certificate.
	CAFile string `yaml:"ca_file"`
	// Timeout bounds every HTTP request.
	Timeout time.Duration `yaml:"timeout"`
	// LogLevel is a zap level name.
	LogLevel string `yaml:"log_level"`
}

// Default returns the options used when nothing else is configured.
func Default() Options {
	return Options{
		ServerURL: "http://localhost:8080",
		StorePath: defaultStorePath(),
		Backend:   storage.BackendFile,
		Timeout:   10 * time.Second,
		LogLevel:  "warn",
	}
}

func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "fotoshop.json"
	}
	return filepath.Join(dir, "fotoshop", "state.json")
}

// DefaultPath is the config file looked up when none is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "fotoshop.yaml"
	}
	return filepath.Join(dir, "fotoshop", "config.yaml")
}

// Load applies, in order, the defaults, the YAML file at path (a missing file
// is ignored) and the FOTOSHOP_* environment variables.
func Load(path string) (Options, error) {
	opts := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &opts); err != nil {
				return Options{}, fmt.Errorf("error while parsing config file: %w", err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return Options{}, fmt.Errorf("error while reading config file: %w", err)
		}
	}

	if v := os.Getenv("FOTOSHOP_URL"); v != "" {
		opts.ServerURL = v
	}
	if v := os.Getenv("FOTOSHOP_STORE"); v != "" {
		opts.StorePath = v
	}
	if v := os.Getenv("FOTOSHOP_BACKEND"); v != "" {
		opts.Backend = v
	}
	if v := os.Getenv("FOTOSHOP_CA"); v != "" {
		opts.CAFile = v
	}
	return opts, nil
}
