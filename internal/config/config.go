package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Backend  BackendConfig  `yaml:"backend"`
	Cache    CacheConfig    `yaml:"cache"`
	Alerts   AlertsConfig   `yaml:"alerts"`
	Jobs     JobsConfig     `yaml:"jobs"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port string `yaml:"port" default:"8080"`
	Host string `yaml:"host" default:"localhost"`
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	Driver string `yaml:"driver" default:"sqlite"`
	DSN    string `yaml:"dsn" default:"aifinverse.db"`
}

// BackendConfig represents the remote AIFinverse REST backend
type BackendConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds" default:"10"`
}

// CacheConfig selects the preference cache backend
type CacheConfig struct {
	Backend   string `yaml:"backend" default:"sqlite"` // sqlite, redis, memory
	RedisAddr string `yaml:"redis_addr,omitempty"`
}

// AlertsConfig represents alert presentation parameters
type AlertsConfig struct {
	RecentWindow          int `yaml:"recent_window" default:"10"`
	ArchivePageSize       int `yaml:"archive_page_size" default:"5"`
	MismatchBannerDelayMS int `yaml:"mismatch_banner_delay_ms" default:"1000"`
}

// JobsConfig represents background job schedules (cron spec syntax)
type JobsConfig struct {
	CompanyRefresh string `yaml:"company_refresh" default:"@every 6h"`
	ShareSweep     string `yaml:"share_sweep" default:"@every 1m"`
}

// LoadConfig loads configuration from a YAML file and applies environment
// overrides
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()
	config.applyEnv()

	return &config, nil
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.Host == "" {
		c.Server.Host = "localhost"
	}
	if c.Database.DSN == "" {
		c.Database.DSN = "aifinverse.db"
	}
	if c.Backend.TimeoutSeconds <= 0 {
		c.Backend.TimeoutSeconds = 10
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "sqlite"
	}
	if c.Alerts.RecentWindow <= 0 {
		c.Alerts.RecentWindow = 10
	}
	if c.Alerts.ArchivePageSize <= 0 {
		c.Alerts.ArchivePageSize = 5
	}
	if c.Alerts.MismatchBannerDelayMS <= 0 {
		c.Alerts.MismatchBannerDelayMS = 1000
	}
	if c.Jobs.CompanyRefresh == "" {
		c.Jobs.CompanyRefresh = "@every 6h"
	}
	if c.Jobs.ShareSweep == "" {
		c.Jobs.ShareSweep = "@every 1m"
	}
}

// applyEnv lets deployment environments override the remote endpoints without
// editing the config file. Values typically come from a .env loaded in main.
func (c *Config) applyEnv() {
	if v := os.Getenv("AIFINVERSE_BACKEND_URL"); v != "" {
		c.Backend.BaseURL = v
	}
	if v := os.Getenv("AIFINVERSE_REDIS_ADDR"); v != "" {
		c.Cache.RedisAddr = v
	}
}
