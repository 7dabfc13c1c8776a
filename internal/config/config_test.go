package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// chdir moves the test into an empty directory so no stray .env or
// config.json is picked up.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
	return dir
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"CONFIG", "SERVER_ADDRESS", "DATABASE_DSN", "TLS_CERT", "TLS_KEY", "LOG_LEVEL", "TOKEN_TTL"} {
		t.Setenv(k, "")
	}
}

func TestParseArgs_Defaults(t *testing.T) {
	chdir(t)
	clearEnv(t)

	opts, err := ParseArgs(nil)
	if err != nil {
		t.Fatalf("ParseArgs returned error: %v", err)
	}
	if opts.Port != "localhost:8080" || opts.TokenTTL != 24*time.Hour || opts.LogLevel != "info" {
		t.Errorf("unexpected defaults %+v", opts)
	}
	if opts.TLSEnabled() {
		t.Error("TLS must be off by default")
	}
}

func TestParseArgs_Precedence(t *testing.T) {
	dir := chdir(t)
	clearEnv(t)

	cfg := filepath.Join(dir, "server.json")
	if err := os.WriteFile(cfg, []byte(`{"address":":9000","database_dsn":"postgres://file"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DATABASE_DSN", "postgres://env")
	t.Setenv("TOKEN_TTL", "30m")

	opts, err := ParseArgs([]string{"-c", cfg, "-a", ":7000", "-d", "postgres://flag"})
	if err != nil {
		t.Fatalf("ParseArgs returned error: %v", err)
	}
	if opts.Port != ":9000" {
		t.Errorf("Port = %q; config file should override flag", opts.Port)
	}
	if opts.DatabaseDSN != "postgres://env" {
		t.Errorf("DatabaseDSN = %q; env should win", opts.DatabaseDSN)
	}
	if opts.TokenTTL != 30*time.Minute {
		t.Errorf("TokenTTL = %v", opts.TokenTTL)
	}
}

func TestParseArgs_DotEnv(t *testing.T) {
	dir := chdir(t)
	clearEnv(t)
	os.Unsetenv("SERVER_ADDRESS")

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("SERVER_ADDRESS=:6000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("SERVER_ADDRESS") })

	opts, err := ParseArgs(nil)
	if err != nil {
		t.Fatalf("ParseArgs returned error: %v", err)
	}
	if opts.Port != ":6000" {
		t.Errorf("Port = %q; want value from .env", opts.Port)
	}
}

func TestParseArgs_Invalid(t *testing.T) {
	chdir(t)
	clearEnv(t)

	if _, err := ParseArgs([]string{"-tls-cert", "server.crt"}); err == nil {
		t.Error("expected error for cert without key")
	}

	for _, interval := range []string{"0", "-1m"} {
		if _, err := ParseArgs([]string{"-clean-interval", interval}); err == nil {
			t.Errorf("expected error for clean interval %s", interval)
		}
	}

	t.Setenv("TOKEN_TTL", "soon")
	if _, err := ParseArgs(nil); err == nil {
		t.Error("expected error for bad TOKEN_TTL")
	}
}
