package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/existflow/ironboard/internal/storage"
)

// Config holds user preferences
type Config struct {
	ConfirmDelete bool `yaml:"confirm_delete" json:"confirm_delete"` // Require confirmation for delete

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging

	Storage StorageConfig `yaml:"storage" json:"storage"`
	Server  ServerConfig  `yaml:"server" json:"server"`
}

// StorageConfig selects the key-value backend
type StorageConfig struct {
	Driver        string        `yaml:"driver" json:"driver"` // sqlite, postgres, redis or memory
	Path          string        `yaml:"path" json:"path"`     // sqlite database file
	DSN           string        `yaml:"dsn" json:"dsn"`       // postgres connection string
	RedisAddr     string        `yaml:"redis_addr" json:"redis_addr"`
	RedisPassword string        `yaml:"redis_password,omitempty" json:"-"`
	RedisPrefix   string        `yaml:"redis_prefix" json:"redis_prefix"`
	RedisDB       int           `yaml:"redis_db" json:"redis_db"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

// Dir returns ~/.ironboard
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".ironboard"), nil
}

// Path returns ~/.ironboard/config.yaml
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	logPath := ""
	dbPath := ""
	if dir, err := Dir(); err == nil {
		logPath = filepath.Join(dir, "logs", "ironboard.log")
		dbPath = filepath.Join(dir, "board.db")
	}

	return &Config{
		ConfirmDelete: true,
		LogLevel:      "INFO",
		LogFile:       logPath,
		LogConsole:    false,
		Storage: StorageConfig{
			Driver:      storage.DriverSQLite,
			Path:        dbPath,
			RedisAddr:   "localhost:6379",
			RedisPrefix: storage.DefaultRedisPrefix,
			Timeout:     5 * time.Second,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// applyEnv lets IRONBOARD_* variables override file and default values
func (c *Config) applyEnv() {
	c.LogLevel = getEnv("IRONBOARD_LOG_LEVEL", c.LogLevel)
	c.LogFile = getEnv("IRONBOARD_LOG_FILE", c.LogFile)
	if v := os.Getenv("IRONBOARD_LOG_CONSOLE"); v != "" {
		c.LogConsole = v == "true"
	}

	c.Storage.Driver = getEnv("IRONBOARD_STORAGE_DRIVER", c.Storage.Driver)
	c.Storage.Path = getEnv("IRONBOARD_STORAGE_PATH", c.Storage.Path)
	c.Storage.DSN = getEnv("IRONBOARD_DATABASE_URL", c.Storage.DSN)
	c.Storage.RedisAddr = getEnv("IRONBOARD_REDIS_ADDR", c.Storage.RedisAddr)
	c.Storage.RedisPassword = getEnv("IRONBOARD_REDIS_PASSWORD", c.Storage.RedisPassword)
	c.Storage.RedisPrefix = getEnv("IRONBOARD_REDIS_PREFIX", c.Storage.RedisPrefix)
	if v := os.Getenv("IRONBOARD_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Storage.RedisDB = n
		}
	}

	c.Server.Addr = getEnv("IRONBOARD_SERVER_ADDR", c.Server.Addr)
}

// Load reads ~/.ironboard/config.yaml over the defaults, then applies
// IRONBOARD_* environment overrides
func Load() (*Config, error) {
	cfg, err := loadFile()
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return cfg, nil
}

// loadFile reads the config file over the defaults without environment
// overrides
func loadFile() (*Config, error) {
	configPath, err := Path()
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()

	// Check if exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Update applies fn to the saved config and writes it back. Environment
// overrides are not part of the saved file and never get written.
func Update(fn func(*Config)) error {
	cfg, err := loadFile()
	if err != nil {
		return err
	}
	fn(cfg)
	return cfg.Save()
}

// Save saves config to ~/.ironboard/config.yaml
func (c *Config) Save() error {
	configDir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	configPath := filepath.Join(configDir, "config.yaml")
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// StorageOptions converts the storage section for storage.Open
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Driver:        c.Storage.Driver,
		Path:          c.Storage.Path,
		DSN:           c.Storage.DSN,
		RedisAddr:     c.Storage.RedisAddr,
		RedisPassword: c.Storage.RedisPassword,
		RedisDB:       c.Storage.RedisDB,
		Prefix:        c.Storage.RedisPrefix,
		Timeout:       c.Storage.Timeout,
	}
}
