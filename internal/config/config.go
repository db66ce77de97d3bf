package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is built once at startup and handed to the store and
// coordinator constructors. There is no global instance.
type Config struct {
	ConfigDir       string `yaml:"config_dir"`
	CredentialsFile string `yaml:"credentials_file"`
	BackupDir       string `yaml:"backup_dir"`
	DefaultRegion   string `yaml:"default_region"`
	Keychain        struct {
		Service string `yaml:"service"`
		Account string `yaml:"account"`
	} `yaml:"keychain"`
	Logging struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"logging"`
	IdentityTimeoutSeconds int `yaml:"identity_timeout_seconds"`
}

func defaultConfig() Config {
	var c Config
	home, _ := os.UserHomeDir()
	c.ConfigDir = filepath.Join(home, ".awsvault")
	c.CredentialsFile = "credentials.enc"
	c.BackupDir = "backups"
	c.DefaultRegion = "us-east-1"
	c.Keychain.Service = "awsvault"
	c.Keychain.Account = "master-key"
	c.Logging.Level = "info"
	c.Logging.Pretty = true
	c.IdentityTimeoutSeconds = 5
	return c
}

// Load builds the configuration from defaults, an optional .env file,
// an optional YAML file (AWSVAULT_CONFIG), and AWSVAULT_* environment
// overrides, in that order.
func Load() Config {
	_ = godotenv.Load()

	c := defaultConfig()
	if path := os.Getenv("AWSVAULT_CONFIG"); path != "" {
		if b, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(b, &c)
		}
	}
	if v := os.Getenv("AWSVAULT_CONFIG_DIR"); v != "" {
		c.ConfigDir = v
	}
	if v := os.Getenv("AWSVAULT_DEFAULT_REGION"); v != "" {
		c.DefaultRegion = v
	}
	if v := os.Getenv("AWSVAULT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("AWSVAULT_LOG_PRETTY"); v == "0" || v == "false" {
		c.Logging.Pretty = false
	}
	if v := os.Getenv("AWSVAULT_IDENTITY_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.IdentityTimeoutSeconds = n
		}
	}
	return c
}

// CredentialsPath is the location of the encrypted credential store.
func (c Config) CredentialsPath() string {
	return filepath.Join(c.ConfigDir, c.CredentialsFile)
}

// BackupPath is the directory where store backups are written.
func (c Config) BackupPath() string {
	return filepath.Join(c.ConfigDir, c.BackupDir)
}

// IdentityTimeout bounds the remote identity check so connect cannot
// hang indefinitely.
func (c Config) IdentityTimeout() time.Duration {
	return time.Duration(c.IdentityTimeoutSeconds) * time.Second
}
