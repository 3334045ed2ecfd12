package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"fundboard/internal/log"
)

type Config struct {
	// HTTP Server
	Port string

	// Backend API
	APIURL     string
	APITimeout time.Duration

	// Sessions
	SessionCookieName string
	SessionIdleTTL    time.Duration
	SessionMax        int
	CookieSecure      bool

	// Logging
	LogLevel string
	AuditLog bool

	// AMQP session events, disabled when AMQPURL is empty
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// ConfigFile is the optional YAML file applied before the environment.
	ConfigFile string
}

// configFile mirrors the YAML schema of CONFIG_FILE.
type configFile struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	API struct {
		URL     string `yaml:"url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"api"`
	Session struct {
		Cookie  string `yaml:"cookie"`
		IdleTTL string `yaml:"idle_ttl"`
		Max     int    `yaml:"max"`
		Secure  *bool  `yaml:"secure"`
	} `yaml:"session"`
	Log struct {
		Level string `yaml:"level"`
		Audit *bool  `yaml:"audit"`
	} `yaml:"log"`
	AMQP struct {
		URL      string `yaml:"url"`
		Exchange string `yaml:"exchange"`
		Queue    string `yaml:"queue"`
	} `yaml:"amqp"`
}

func defaults() *Config {
	return &Config{
		Port:              "8080",
		APIURL:            "http://localhost:5000/api",
		APITimeout:        30 * time.Second,
		SessionCookieName: "fundboard_session",
		SessionIdleTTL:    30 * time.Minute,
		SessionMax:        10000,
		LogLevel:          "info",
		AuditLog:          true,
		AMQPExchange:      "fundboard",
		AMQPQueue:         "session_events",
	}
}

// Load resolves configuration in priority order: defaults, then CONFIG_FILE
// when set, then environment variables.
func Load() (*Config, error) {
	cfg := defaults()
	cfg.ConfigFile = getEnv("CONFIG_FILE", "")
	if cfg.ConfigFile != "" {
		if err := cfg.applyFile(cfg.ConfigFile); err != nil {
			return nil, err
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	// REACT_APP_API_URL is the name earlier deployments used.
	cfg.APIURL = getEnv("API_URL", getEnv("REACT_APP_API_URL", cfg.APIURL))
	cfg.APITimeout = getEnvDuration("API_TIMEOUT", cfg.APITimeout)
	cfg.SessionCookieName = getEnv("SESSION_COOKIE", cfg.SessionCookieName)
	cfg.SessionIdleTTL = getEnvDuration("SESSION_IDLE_TTL", cfg.SessionIdleTTL)
	cfg.SessionMax = getEnvInt("SESSION_MAX", cfg.SessionMax)
	cfg.CookieSecure = getEnvBool("COOKIE_SECURE", cfg.CookieSecure)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.AuditLog = getEnvBool("AUDIT_LOG", cfg.AuditLog)
	cfg.AMQPURL = getEnv("AMQP_URL", cfg.AMQPURL)
	cfg.AMQPExchange = getEnv("AMQP_EXCHANGE", cfg.AMQPExchange)
	cfg.AMQPQueue = getEnv("AMQP_QUEUE", cfg.AMQPQueue)

	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var f configFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if f.Server.Port != "" {
		c.Port = f.Server.Port
	}
	if f.API.URL != "" {
		c.APIURL = f.API.URL
	}
	if f.API.Timeout != "" {
		d, err := time.ParseDuration(f.API.Timeout)
		if err != nil {
			return fmt.Errorf("parse config file: api.timeout: %w", err)
		}
		c.APITimeout = d
	}
	if f.Session.Cookie != "" {
		c.SessionCookieName = f.Session.Cookie
	}
	if f.Session.IdleTTL != "" {
		d, err := time.ParseDuration(f.Session.IdleTTL)
		if err != nil {
			return fmt.Errorf("parse config file: session.idle_ttl: %w", err)
		}
		c.SessionIdleTTL = d
	}
	if f.Session.Max > 0 {
		c.SessionMax = f.Session.Max
	}
	if f.Session.Secure != nil {
		c.CookieSecure = *f.Session.Secure
	}
	if f.Log.Level != "" {
		c.LogLevel = f.Log.Level
	}
	if f.Log.Audit != nil {
		c.AuditLog = *f.Log.Audit
	}
	if f.AMQP.URL != "" {
		c.AMQPURL = f.AMQP.URL
	}
	if f.AMQP.Exchange != "" {
		c.AMQPExchange = f.AMQP.Exchange
	}
	if f.AMQP.Queue != "" {
		c.AMQPQueue = f.AMQP.Queue
	}
	return nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if parsedURL, err := url.Parse(c.APIURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid API URL '%s': %v", c.APIURL, err))
	} else if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		errors = append(errors, fmt.Sprintf("invalid API URL scheme '%s': must be 'http' or 'https'", parsedURL.Scheme))
	} else if parsedURL.Host == "" {
		errors = append(errors, fmt.Sprintf("invalid API URL '%s': missing host", c.APIURL))
	}

	if c.APITimeout < 0 {
		errors = append(errors, fmt.Sprintf("invalid API timeout %v: must not be negative", c.APITimeout))
	} else if c.APITimeout > 5*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid API timeout %v: must be at most 5 minutes", c.APITimeout))
	}

	if strings.TrimSpace(c.SessionCookieName) == "" || strings.ContainsAny(c.SessionCookieName, " ;,=\t") {
		errors = append(errors, fmt.Sprintf("invalid session cookie name '%s'", c.SessionCookieName))
	}
	if c.SessionIdleTTL < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid session idle TTL %v: must be at least 1 minute", c.SessionIdleTTL))
	} else if c.SessionIdleTTL > 7*24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid session idle TTL %v: must be at most 7 days", c.SessionIdleTTL))
	}
	if c.SessionMax < 1 {
		errors = append(errors, fmt.Sprintf("invalid session max %d: must be at least 1", c.SessionMax))
	}

	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

// LoggerConfig derives the logger settings.
func (c *Config) LoggerConfig() log.Config {
	lc := log.DefaultConfig()
	lc.Level = log.ParseLevel(c.LogLevel)
	return lc
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string { return ":" + c.Port }

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
