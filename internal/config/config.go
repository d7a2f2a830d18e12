package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Client   ClientConfig   `yaml:"client"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type ServerConfig struct {
	Port     string `yaml:"port"`
	GinMode  string `yaml:"gin_mode"`
	LogLevel string `yaml:"log_level"`
	// Timezone decides which calendar day "today" is for derived views.
	Timezone string `yaml:"timezone"`
}

type DatabaseConfig struct {
	URL             string        `yaml:"url"`
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	SSLMode         string        `yaml:"sslmode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

type ClientConfig struct {
	APIURL          string        `yaml:"api_url"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
}

type MetricsConfig struct {
	Schedule string `yaml:"schedule"`
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:     "8080",
			GinMode:  "release",
			LogLevel: "info",
			Timezone: "Local",
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            "5432",
			User:            "taskboard",
			Name:            "taskboard",
			SSLMode:         "require",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Client: ClientConfig{
			APIURL:          "http://localhost:8080",
			RefreshInterval: 30 * time.Second,
		},
		Metrics: MetricsConfig{
			Schedule: "@every 1m",
		},
	}
}

// Load builds the configuration from defaults, then the optional YAML file at
// path, then .env, then the process environment. Later sources win.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Server.Port = getEnv("SERVER_PORT", getEnv("PORT", c.Server.Port))
	c.Server.GinMode = getEnv("GIN_MODE", c.Server.GinMode)
	c.Server.LogLevel = getEnv("LOG_LEVEL", c.Server.LogLevel)
	c.Server.Timezone = getEnv("TIMEZONE", c.Server.Timezone)

	c.Database.URL = getEnv("DATABASE_URL", getEnv("NETLIFY_DATABASE_URL", c.Database.URL))
	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Port = getEnv("DB_PORT", c.Database.Port)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.Name = getEnv("DB_NAME", c.Database.Name)
	c.Database.SSLMode = getEnv("DB_SSLMODE", c.Database.SSLMode)

	c.Client.APIURL = getEnv("TASKBOARD_API_URL", c.Client.APIURL)
	c.Metrics.Schedule = getEnv("METRICS_SCHEDULE", c.Metrics.Schedule)

	var err error
	if c.Database.MaxOpenConns, err = getEnvInt("DB_MAX_OPEN_CONNS", c.Database.MaxOpenConns); err != nil {
		return err
	}
	if c.Database.MaxIdleConns, err = getEnvInt("DB_MAX_IDLE_CONNS", c.Database.MaxIdleConns); err != nil {
		return err
	}
	if c.Database.ConnMaxLifetime, err = getEnvDuration("DB_CONN_MAX_LIFETIME", c.Database.ConnMaxLifetime); err != nil {
		return err
	}
	if c.Client.RefreshInterval, err = getEnvDuration("REFRESH_INTERVAL", c.Client.RefreshInterval); err != nil {
		return err
	}
	return nil
}

// DSN returns the connection string. A URL without an sslmode gets
// sslmode=require: traffic is encrypted but the server certificate is not
// verified.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		if strings.Contains(d.URL, "sslmode=") {
			return d.URL
		}
		sep := "?"
		if strings.Contains(d.URL, "?") {
			sep = "&"
		}
		return d.URL + sep + "sslmode=require"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// Location resolves the configured timezone, falling back to the local zone.
func (s ServerConfig) Location() *time.Location {
	if s.Timezone == "" || s.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		log.Printf("⚠️  Unknown timezone %q, using local time", s.Timezone)
		return time.Local
	}
	return loc
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
