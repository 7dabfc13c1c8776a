// Package config provides the server options, read from command-line flags,
// an optional JSON config file, a .env file and environment variables.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the server.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string `json:"address"`

	// DatabaseDSN holds the PostgreSQL connection string.
	DatabaseDSN string `json:"database_dsn"`

	// TLSCert and TLSKey enable HTTPS when both are set.
	TLSCert string `json:"tls_cert"`
	TLSKey  string `json:"tls_key"`

	// TokenTTL is how long an issued bearer token stays valid.
	TokenTTL time.Duration `json:"-"`

	// CleanInterval is the period of the expired-session sweep.
	CleanInterval time.Duration `json:"-"`

	LogLevel string `json:"log_level"`

	// Config is the path to the JSON config file.
	Config string `json:"-"`
}

// Parse reads the server options from os.Args, the environment and the
// files they point to. It exits the process on invalid input.
func Parse() *Options {
	opts, err := ParseArgs(os.Args[1:])
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	return opts
}

// ParseArgs resolves options with precedence env > config file > flags.
// A .env file in the working directory is loaded first and never overrides
// variables already set.
func ParseArgs(args []string) (*Options, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	opts := &Options{}
	fset := flag.NewFlagSet("server", flag.ContinueOnError)
	fset.StringVar(&opts.Port, "a", "localhost:8080", "run on ip:port server")
	fset.StringVar(&opts.DatabaseDSN, "d", "", "db address")
	fset.StringVar(&opts.TLSCert, "tls-cert", "", "server TLS certificate (PEM)")
	fset.StringVar(&opts.TLSKey, "tls-key", "", "server TLS private key (PEM)")
	fset.DurationVar(&opts.TokenTTL, "token-ttl", 24*time.Hour, "bearer token lifetime")
	fset.DurationVar(&opts.CleanInterval, "clean-interval", time.Hour, "expired session sweep period")
	fset.StringVar(&opts.LogLevel, "log-level", "info", "log level")
	fset.StringVar(&opts.Config, "config", "config.json", "path to config file")
	fset.StringVar(&opts.Config, "c", "config.json", "path to config file (shorthand)")
	if err := fset.Parse(args); err != nil {
		return nil, err
	}

	if configPath := os.Getenv("CONFIG"); configPath != "" {
		opts.Config = configPath
	}

	if opts.Config != "" {
		data, err := os.ReadFile(opts.Config)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := json.Unmarshal(data, opts); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	if v := os.Getenv("SERVER_ADDRESS"); v != "" {
		opts.Port = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		opts.DatabaseDSN = v
	}
	if v := os.Getenv("TLS_CERT"); v != "" {
		opts.TLSCert = v
	}
	if v := os.Getenv("TLS_KEY"); v != "" {
		opts.TLSKey = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		opts.LogLevel = v
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("TOKEN_TTL: %w", err)
		}
		opts.TokenTTL = ttl
	}

	if opts.TokenTTL <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	if opts.CleanInterval <= 0 {
		return nil, errors.New("clean interval must be positive")
	}
	if (opts.TLSCert == "") != (opts.TLSKey == "") {
		return nil, errors.New("tls cert and key must be set together")
	}
	return opts, nil
}

// TLSEnabled reports whether the server should listen with HTTPS.
func (o *Options) TLSEnabled() bool {
	return o.TLSCert != "" && o.TLSKey != ""
}
