package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultEnvFile = "configs/.env"

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	AppEnv   string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	GameID                string        `mapstructure:"gamejolt_game_id"`
	PrivateKey            string        `mapstructure:"gamejolt_private_key"`
	APIRoot               string        `mapstructure:"gamejolt_api_root"`
	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`
	WaitTimeoutSeconds    int64         `mapstructure:"wait_timeout_seconds"`
	WaitTimeout           time.Duration `mapstructure:"-"`

	PublishersFile string `mapstructure:"publishers_file"`

	SessionStoreType       string        `mapstructure:"session_store_type"`
	BBoltPath              string        `mapstructure:"bbolt_path"`
	SessionTTLSeconds      int64         `mapstructure:"session_ttl_seconds"`
	SessionCleanupSeconds  int64         `mapstructure:"session_cleanup_interval_seconds"`
	SessionTTL             time.Duration `mapstructure:"-"`
	SessionCleanupInterval time.Duration `mapstructure:"-"`
}

// Load reads configuration from configs/.env and the environment.
func Load() (*Config, error) {
	return LoadFrom(defaultEnvFile)
}

// LoadFrom reads configuration from envFile (if it exists) and the
// environment. Environment variables win over the file.
func LoadFrom(envFile string) (*Config, error) {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	}

	v := viper.New()

	v.SetDefault("app_name", "gamejolt-go")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("gamejolt_game_id", "")
	v.SetDefault("gamejolt_private_key", "")
	v.SetDefault("gamejolt_api_root", "http://gamejolt.com/api/game/v1/")
	v.SetDefault("request_timeout_seconds", 15)
	v.SetDefault("wait_timeout_seconds", 30)
	v.SetDefault("publishers_file", "")
	v.SetDefault("session_store_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/sessions.db")
	v.SetDefault("session_ttl_seconds", int64((7*24*time.Hour)/time.Second))
	v.SetDefault("session_cleanup_interval_seconds", int64((12*time.Hour)/time.Second))

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) validate() error {
	cfg.GameID = strings.TrimSpace(cfg.GameID)
	cfg.PrivateKey = strings.TrimSpace(cfg.PrivateKey)
	if cfg.GameID == "" {
		return fmt.Errorf("gamejolt_game_id is required")
	}
	if cfg.PrivateKey == "" {
		return fmt.Errorf("gamejolt_private_key is required")
	}

	if cfg.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid request_timeout_seconds (must be positive seconds)")
	}
	if cfg.WaitTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid wait_timeout_seconds (must be positive seconds)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	cfg.WaitTimeout = time.Duration(cfg.WaitTimeoutSeconds) * time.Second

	cfg.SessionStoreType = strings.ToLower(strings.TrimSpace(cfg.SessionStoreType))
	if cfg.SessionTTLSeconds <= 0 {
		return fmt.Errorf("invalid session_ttl_seconds (must be positive seconds)")
	}
	if cfg.SessionCleanupSeconds <= 0 {
		return fmt.Errorf("invalid session_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.SessionTTL = time.Duration(cfg.SessionTTLSeconds) * time.Second
	cfg.SessionCleanupInterval = time.Duration(cfg.SessionCleanupSeconds) * time.Second

	return nil
}
