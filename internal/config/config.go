package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the server needs. Values come from the config
// file (careerpilot.yaml by default) with environment overrides bound in
// cmd.
type Config struct {
	Listen   string          `mapstructure:"listen"`
	Timezone string          `mapstructure:"timezone"`
	Database *DatabaseConfig `mapstructure:"database"`
	CORS     *CORSConfig     `mapstructure:"cors"`
	AI       *AIConfig       `mapstructure:"ai"`
	Email    *EmailConfig    `mapstructure:"email"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type CORSConfig struct {
	AllowAllOrigins bool     `mapstructure:"allow-all-origins"`
	AllowOrigins    []string `mapstructure:"allow-origins"`
}

type AIConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	APIKey  string `mapstructure:"api-key"`
	Model   string `mapstructure:"model"`
}

type EmailConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	CredentialsFile string        `mapstructure:"credentials-file"`
	TokenFile       string        `mapstructure:"token-file"`
	PollInterval    time.Duration `mapstructure:"poll-interval"`
}

// Load unmarshals the viper state into a Config and fills defaults.
func Load() (*Config, error) {
	var cfg *Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Listen == "" {
		c.Listen = ":8080"
	}
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	if c.Database == nil {
		c.Database = &DatabaseConfig{}
	}
	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.User == "" {
		c.Database.User = "postgres"
	}
	if c.Database.Name == "" {
		c.Database.Name = "careerpilot"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.CORS == nil {
		c.CORS = &CORSConfig{AllowAllOrigins: true}
	}
	if c.AI == nil {
		c.AI = &AIConfig{}
	}
	if c.AI.Model == "" {
		c.AI.Model = "gemini-2.5-flash"
	}
	if c.Email == nil {
		c.Email = &EmailConfig{}
	}
	if c.Email.CredentialsFile == "" {
		c.Email.CredentialsFile = "credentials.json"
	}
	if c.Email.TokenFile == "" {
		c.Email.TokenFile = "token.json"
	}
	if c.Email.PollInterval == 0 {
		c.Email.PollInterval = 15 * time.Minute
	}
}

// DSN renders the postgres connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

// Location resolves the configured timezone used for calendar date keys.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}
