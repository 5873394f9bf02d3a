package config

import (
	"bytes"
	"fmt"
	"net"
	neturl "net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort = 8000
	defaultEnv  = "development"

	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "pagesage"
	defaultDBCharset  = "utf8mb4"
	defaultDBLoc      = "Local"

	defaultRedisHost = "localhost"
	defaultRedisPort = 6379
	defaultRedisDB   = 0

	defaultAIType        = "openai-compatible"
	defaultAIModel       = "gpt-4o-mini"
	defaultAITemperature = 0.25
	defaultAIMaxTokens   = 1024
	defaultAITimeout     = 60 * time.Second

	defaultEncoding      = "cl100k_base"
	defaultMaxTokens     = 4096
	defaultRetention     = time.Hour
	defaultSweepInterval = 10 * time.Minute
)

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int
	Env            string // "development" | "production"
	Database       DatabaseConfig
	Redis          RedisConfig
	AllowedOrigins []string
	AI             AIConfig
	Content        ContentConfig
}

type DatabaseConfig struct {
	DSN       string
	Host      string
	Port      int
	User      string
	Password  string
	Name      string
	Charset   string
	ParseTime bool
	Loc       string
}

type RedisConfig struct {
	URL      string
	Host     string
	Port     int
	Username string
	Password string
	DB       int
}

// AIConfig configures the language-model backend.
type AIConfig struct {
	Type     string // openai | anthropic | openai-compatible
	Endpoint string
	APIKey   string
	Model    string
	// Temperature applies only to the openai-compatible HTTP path; the
	// openai/anthropic SDK path uses each provider's default sampling.
	Temperature     float64
	MaxOutputTokens int
	Timeout         time.Duration
}

// ContentConfig configures extraction budgets and the retention lifecycle.
type ContentConfig struct {
	Encoding      string
	MaxTokens     int
	Retention     time.Duration
	SweepInterval time.Duration
}

type rawAppConfig struct {
	Port           int               `yaml:"port"`
	Env            string            `yaml:"env"`
	Database       rawDatabaseConfig `yaml:"database"`
	Redis          rawRedisConfig    `yaml:"redis"`
	AllowedOrigins []string          `yaml:"allowed_origins"`
	AI             rawAIConfig       `yaml:"ai"`
	Content        rawContentConfig  `yaml:"content"`
}

type rawDatabaseConfig struct {
	DSN       string `yaml:"dsn"`
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	User      string `yaml:"user"`
	Password  string `yaml:"password"`
	Name      string `yaml:"name"`
	Charset   string `yaml:"charset"`
	ParseTime *bool  `yaml:"parse_time"`
	Loc       string `yaml:"loc"`
}

type rawRedisConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       *int   `yaml:"db"`
}

type rawAIConfig struct {
	Type            string   `yaml:"type"`
	Endpoint        string   `yaml:"endpoint"`
	APIKey          string   `yaml:"api_key"`
	Model           string   `yaml:"model"`
	Temperature     *float64 `yaml:"temperature"`
	MaxOutputTokens int      `yaml:"max_output_tokens"`
	Timeout         string   `yaml:"timeout"`
}

type rawContentConfig struct {
	Encoding      string `yaml:"encoding"`
	MaxTokens     int    `yaml:"max_tokens"`
	Retention     string `yaml:"retention"`
	SweepInterval string `yaml:"sweep_interval"`
}

// Load reads and validates the YAML config file, applying defaults for any
// omitted field.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	cfg := defaultAppConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	raw := rawAppConfig{}
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse config file %q: %w", path, err)
	}

	if err := applyRawAppConfig(&cfg, raw); err != nil {
		return nil, fmt.Errorf("config file %q: %w", path, err)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d in %q, expected 1-65535", cfg.Port, path)
	}
	if cfg.Database.Port < 1 || cfg.Database.Port > 65535 {
		return nil, fmt.Errorf("invalid database.port %d in %q, expected 1-65535", cfg.Database.Port, path)
	}
	if cfg.Redis.Port < 1 || cfg.Redis.Port > 65535 {
		return nil, fmt.Errorf("invalid redis.port %d in %q, expected 1-65535", cfg.Redis.Port, path)
	}
	if cfg.Content.MaxTokens < 1 {
		return nil, fmt.Errorf("invalid content.max_tokens %d in %q, expected >= 1", cfg.Content.MaxTokens, path)
	}
	if cfg.Content.Retention <= 0 {
		return nil, fmt.Errorf("invalid content.retention in %q, expected a positive duration", path)
	}
	if cfg.Content.SweepInterval <= 0 {
		return nil, fmt.Errorf("invalid content.sweep_interval in %q, expected a positive duration", path)
	}

	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Database: DatabaseConfig{
			Host:      defaultDBHost,
			Port:      defaultDBPort,
			User:      defaultDBUser,
			Password:  defaultDBPassword,
			Name:      defaultDBName,
			Charset:   defaultDBCharset,
			ParseTime: true,
			Loc:       defaultDBLoc,
		},
		Redis: RedisConfig{
			Host: defaultRedisHost,
			Port: defaultRedisPort,
			DB:   defaultRedisDB,
		},
		AI: AIConfig{
			Type:            defaultAIType,
			Model:           defaultAIModel,
			Temperature:     defaultAITemperature,
			MaxOutputTokens: defaultAIMaxTokens,
			Timeout:         defaultAITimeout,
		},
		Content: ContentConfig{
			Encoding:      defaultEncoding,
			MaxTokens:     defaultMaxTokens,
			Retention:     defaultRetention,
			SweepInterval: defaultSweepInterval,
		},
	}
}

func applyRawAppConfig(cfg *AppConfig, raw rawAppConfig) error {
	if raw.Port != 0 {
		cfg.Port = raw.Port
	}
	if v := strings.TrimSpace(raw.Env); v != "" {
		cfg.Env = strings.ToLower(v)
	}

	if v := strings.TrimSpace(raw.Database.DSN); v != "" {
		cfg.Database.DSN = v
	}
	if v := strings.TrimSpace(raw.Database.Host); v != "" {
		cfg.Database.Host = v
	}
	if raw.Database.Port != 0 {
		cfg.Database.Port = raw.Database.Port
	}
	if v := strings.TrimSpace(raw.Database.User); v != "" {
		cfg.Database.User = v
	}
	if v := strings.TrimSpace(raw.Database.Password); v != "" {
		cfg.Database.Password = v
	}
	if v := strings.TrimSpace(raw.Database.Name); v != "" {
		cfg.Database.Name = v
	}
	if v := strings.TrimSpace(raw.Database.Charset); v != "" {
		cfg.Database.Charset = v
	}
	if raw.Database.ParseTime != nil {
		cfg.Database.ParseTime = *raw.Database.ParseTime
	}
	if v := strings.TrimSpace(raw.Database.Loc); v != "" {
		cfg.Database.Loc = v
	}

	if v := strings.TrimSpace(raw.Redis.URL); v != "" {
		cfg.Redis.URL = v
	}
	if v := strings.TrimSpace(raw.Redis.Host); v != "" {
		cfg.Redis.Host = v
	}
	if raw.Redis.Port != 0 {
		cfg.Redis.Port = raw.Redis.Port
	}
	if v := strings.TrimSpace(raw.Redis.Username); v != "" {
		cfg.Redis.Username = v
	}
	if v := strings.TrimSpace(raw.Redis.Password); v != "" {
		cfg.Redis.Password = v
	}
	if raw.Redis.DB != nil {
		cfg.Redis.DB = *raw.Redis.DB
	}

	if raw.AllowedOrigins != nil {
		cfg.AllowedOrigins = normalizeOrigins(raw.AllowedOrigins)
	}

	if v := strings.TrimSpace(raw.AI.Type); v != "" {
		cfg.AI.Type = strings.ToLower(v)
	}
	if v := strings.TrimSpace(raw.AI.Endpoint); v != "" {
		cfg.AI.Endpoint = v
	}
	if v := strings.TrimSpace(raw.AI.APIKey); v != "" {
		cfg.AI.APIKey = v
	}
	if v := strings.TrimSpace(raw.AI.Model); v != "" {
		cfg.AI.Model = v
	}
	if raw.AI.Temperature != nil {
		cfg.AI.Temperature = *raw.AI.Temperature
	}
	if raw.AI.MaxOutputTokens != 0 {
		cfg.AI.MaxOutputTokens = raw.AI.MaxOutputTokens
	}
	if v := strings.TrimSpace(raw.AI.Timeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid ai.timeout %q: %w", v, err)
		}
		cfg.AI.Timeout = d
	}

	if v := strings.TrimSpace(raw.Content.Encoding); v != "" {
		cfg.Content.Encoding = v
	}
	if raw.Content.MaxTokens != 0 {
		cfg.Content.MaxTokens = raw.Content.MaxTokens
	}
	if v := strings.TrimSpace(raw.Content.Retention); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid content.retention %q: %w", v, err)
		}
		cfg.Content.Retention = d
	}
	if v := strings.TrimSpace(raw.Content.SweepInterval); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid content.sweep_interval %q: %w", v, err)
		}
		cfg.Content.SweepInterval = d
	}

	return nil
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// DSNValue assembles the MySQL DSN from discrete fields unless an explicit
// DSN was configured.
func (c DatabaseConfig) DSNValue() string {
	if v := strings.TrimSpace(c.DSN); v != "" {
		return v
	}

	params := neturl.Values{}
	params.Set("charset", c.Charset)
	params.Set("parseTime", strconv.FormatBool(c.ParseTime))
	params.Set("loc", c.Loc)

	return fmt.Sprintf("%s:%s@tcp(%s)/%s?%s",
		c.User, c.Password,
		net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		c.Name, params.Encode())
}

// URLValue assembles the redis URL from discrete fields unless an explicit
// URL was configured.
func (c RedisConfig) URLValue() string {
	if v := strings.TrimSpace(c.URL); v != "" {
		if strings.HasPrefix(v, "redis://") || strings.HasPrefix(v, "rediss://") {
			return v
		}
		return "redis://" + v
	}

	u := &neturl.URL{
		Scheme: "redis",
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + strconv.Itoa(c.DB),
	}
	if c.Username != "" {
		if c.Password != "" {
			u.User = neturl.UserPassword(c.Username, c.Password)
		} else {
			u.User = neturl.User(c.Username)
		}
	} else if c.Password != "" {
		u.User = neturl.UserPassword("", c.Password)
	}
	return u.String()
}

func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, defaultEnv)
}
