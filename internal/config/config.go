package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database  DatabaseConfig `yaml:"database"`
	ClickUp   ClickUpConfig  `yaml:"clickup"`
	RabbitMQ  RabbitMQConfig `yaml:"rabbitmq"`
	Sync      SyncConfig     `yaml:"sync"`
	LogLevel  string         `yaml:"log_level"`
	LogFormat string         `yaml:"log_format"`
}

// RabbitMQConfig configures the optional run-report publisher. Publishing is
// disabled while URL is empty.
type RabbitMQConfig struct {
	URL        string `yaml:"url"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
	QueueName  string `yaml:"queue_name"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
	Schema   string `yaml:"schema"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, quoteDSNValue(d.Password), d.DBName, d.SSLMode,
	)
}

type ClickUpConfig struct {
	BaseURL string        `yaml:"base_url"`
	Token   string        `yaml:"token"`
	TeamID  string        `yaml:"team_id"`
	Timeout time.Duration `yaml:"timeout"`
}

type SyncConfig struct {
	// OrgID is stamped on every destination row.
	OrgID string `yaml:"org_id"`
	// Interval re-runs the sync on a ticker. Zero runs once and exits.
	Interval time.Duration `yaml:"interval"`
}

// Load reads .env, then the YAML file at path (which may be absent), then
// applies environment overrides and defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.setDefaults()

	return &cfg, nil
}

// Validate reports settings the sync cannot run without.
func (c *Config) Validate() error {
	var missing []string
	if c.ClickUp.Token == "" {
		missing = append(missing, "clickup.token")
	}
	if c.ClickUp.TeamID == "" {
		missing = append(missing, "clickup.team_id")
	}
	if c.Sync.OrgID == "" {
		missing = append(missing, "sync.org_id")
	}
	if c.Database.Host == "" {
		missing = append(missing, "database.host")
	}
	if c.Database.DBName == "" {
		missing = append(missing, "database.dbname")
	}
	if c.Database.User == "" {
		missing = append(missing, "database.user")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	if c.Sync.Interval < 0 {
		return fmt.Errorf("sync.interval must not be negative")
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.ClickUp.Token, "CLICKUP_API_TOKEN")
	setString(&c.ClickUp.BaseURL, "CLICKUP_API_BASE")
	setString(&c.ClickUp.TeamID, "TEAM_ID")
	setString(&c.Sync.OrgID, "ORG_ID")
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.DBName, "DB_NAME")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.SSLMode, "DB_SSLMODE")
	setString(&c.Database.Schema, "DB_SCHEMA")
	setString(&c.RabbitMQ.URL, "RABBITMQ_URL")
	setString(&c.LogLevel, "LOG_LEVEL")

	if v := os.Getenv("DB_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse DB_PORT: %w", err)
		}
		c.Database.Port = port
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.ClickUp.BaseURL == "" {
		c.ClickUp.BaseURL = "https://api.clickup.com/api/v2"
	}
	c.ClickUp.BaseURL = strings.TrimRight(c.ClickUp.BaseURL, "/")
	if c.ClickUp.Timeout == 0 {
		c.ClickUp.Timeout = 30 * time.Second
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "require"
	}
	if c.Database.Schema == "" {
		c.Database.Schema = "insightly_jira"
	}
	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "clickup_sync"
	}
	if c.RabbitMQ.RoutingKey == "" {
		c.RabbitMQ.RoutingKey = "sync_runs"
	}
	if c.RabbitMQ.QueueName == "" {
		c.RabbitMQ.QueueName = "clickup_sync_runs"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "json"
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// quoteDSNValue quotes a libpq keyword value when it is empty or contains
// spaces, quotes or backslashes.
func quoteDSNValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(v) + "'"
}
