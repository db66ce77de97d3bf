package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Load()

	if cfg.CredentialsFile != "credentials.enc" {
		t.Errorf("credentials file = %q, want credentials.enc", cfg.CredentialsFile)
	}
	if cfg.DefaultRegion != "us-east-1" {
		t.Errorf("default region = %q, want us-east-1", cfg.DefaultRegion)
	}
	if cfg.Keychain.Service != "awsvault" || cfg.Keychain.Account != "master-key" {
		t.Errorf("keychain = %q/%q, want awsvault/master-key", cfg.Keychain.Service, cfg.Keychain.Account)
	}
	if cfg.Logging.Level != "info" || !cfg.Logging.Pretty {
		t.Errorf("logging = %q pretty=%v, want info pretty=true", cfg.Logging.Level, cfg.Logging.Pretty)
	}
	if cfg.IdentityTimeout() != 5*time.Second {
		t.Errorf("identity timeout = %v, want 5s", cfg.IdentityTimeout())
	}
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AWSVAULT_CONFIG_DIR", dir)
	t.Setenv("AWSVAULT_DEFAULT_REGION", "eu-west-1")
	t.Setenv("AWSVAULT_LOG_LEVEL", "debug")
	t.Setenv("AWSVAULT_LOG_PRETTY", "false")
	t.Setenv("AWSVAULT_IDENTITY_TIMEOUT", "30")

	cfg := Load()
	if cfg.ConfigDir != dir {
		t.Errorf("config dir = %q, want %q", cfg.ConfigDir, dir)
	}
	if cfg.DefaultRegion != "eu-west-1" {
		t.Errorf("default region = %q, want eu-west-1", cfg.DefaultRegion)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Logging.Pretty {
		t.Error("pretty logging still enabled after override")
	}
	if cfg.IdentityTimeout() != 30*time.Second {
		t.Errorf("identity timeout = %v, want 30s", cfg.IdentityTimeout())
	}
}

func TestInvalidTimeoutKeepsDefault(t *testing.T) {
	t.Setenv("AWSVAULT_IDENTITY_TIMEOUT", "not-a-number")
	cfg := Load()
	if cfg.IdentityTimeout() != 5*time.Second {
		t.Errorf("identity timeout = %v, want 5s", cfg.IdentityTimeout())
	}

	t.Setenv("AWSVAULT_IDENTITY_TIMEOUT", "-3")
	cfg = Load()
	if cfg.IdentityTimeout() != 5*time.Second {
		t.Errorf("identity timeout = %v, want 5s", cfg.IdentityTimeout())
	}
}

func TestYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "default_region: ap-southeast-2\nlogging:\n  level: warn\nidentity_timeout_seconds: 10\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("AWSVAULT_CONFIG", path)

	cfg := Load()
	if cfg.DefaultRegion != "ap-southeast-2" {
		t.Errorf("default region = %q, want ap-southeast-2", cfg.DefaultRegion)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("log level = %q, want warn", cfg.Logging.Level)
	}
	if cfg.IdentityTimeoutSeconds != 10 {
		t.Errorf("identity timeout seconds = %d, want 10", cfg.IdentityTimeoutSeconds)
	}
	// Fields the file leaves out keep their defaults
	if cfg.CredentialsFile != "credentials.enc" {
		t.Errorf("credentials file = %q, want credentials.enc", cfg.CredentialsFile)
	}
}

func TestEnvWinsOverYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("default_region: ap-southeast-2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("AWSVAULT_CONFIG", path)
	t.Setenv("AWSVAULT_DEFAULT_REGION", "eu-north-1")

	cfg := Load()
	if cfg.DefaultRegion != "eu-north-1" {
		t.Errorf("default region = %q, want eu-north-1", cfg.DefaultRegion)
	}
}

func TestPaths(t *testing.T) {
	var c Config
	c.ConfigDir = "/tmp/vault"
	c.CredentialsFile = "credentials.enc"
	c.BackupDir = "backups"
	if got := c.CredentialsPath(); got != filepath.Join("/tmp/vault", "credentials.enc") {
		t.Errorf("credentials path = %q", got)
	}
	if got := c.BackupPath(); got != filepath.Join("/tmp/vault", "backups") {
		t.Errorf("backup path = %q", got)
	}
}
