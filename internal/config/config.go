// Package config loads the service configuration from an optional YAML file
// and the environment. Environment values win over the file.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ortelius/cms-auth/util"
	"gopkg.in/yaml.v2"
)

// Defaults
const (
	DefaultPort       = "4000"
	DefaultBasePath   = "/cms/api/v1"
	DefaultDatabase   = "cms"
	DefaultBcryptCost = 12
	DefaultLogLevel   = "info"
	DefaultIssuer     = "cms-auth"
)

// Store drivers
const (
	DriverArango = "arangodb"
	DriverMemory = "memory"
)

// Errors returned by Load when a required value is missing
var (
	ErrMissingSecret = errors.New("JWT_SECRET is required")
	ErrMissingTTL    = errors.New("JWT_EXPIRES_IN is required")
)

// DatabaseConfig holds the ArangoDB connection settings
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	URL      string `yaml:"url"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// Config is the process-wide configuration, built once at startup
type Config struct {
	JWTSecret   string         `yaml:"jwt_secret"`
	JWTExpires  string         `yaml:"jwt_expires_in"`
	TokenTTL    time.Duration  `yaml:"-"`
	Issuer      string         `yaml:"issuer"`
	Port        string         `yaml:"port"`
	BasePath    string         `yaml:"base_path"`
	BcryptCost  int            `yaml:"bcrypt_cost"`
	LogLevel    string         `yaml:"log_level"`
	CORSOrigins []string       `yaml:"cors_origins"`
	Database    DatabaseConfig `yaml:"database"`
}

// Load builds the configuration: defaults, then the YAML file named by
// CONFIG_FILE (if any), then environment variables.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path) // #nosec G304
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := Parse(data, cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)

	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse overlays YAML content onto cfg
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Issuer:     DefaultIssuer,
		Port:       DefaultPort,
		BasePath:   DefaultBasePath,
		BcryptCost: DefaultBcryptCost,
		LogLevel:   DefaultLogLevel,
		CORSOrigins: []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
		},
		Database: DatabaseConfig{
			Driver:   DriverArango,
			User:     "root",
			Password: "",
			Name:     DefaultDatabase,
		},
	}
}

func applyEnv(cfg *Config) {
	cfg.JWTSecret = util.GetEnvDefault("JWT_SECRET", cfg.JWTSecret)
	cfg.JWTExpires = util.GetEnvDefault("JWT_EXPIRES_IN", cfg.JWTExpires)
	cfg.Issuer = util.GetEnvDefault("JWT_ISSUER", cfg.Issuer)
	cfg.Port = util.GetEnvDefault("MS_PORT", cfg.Port)
	cfg.BasePath = util.GetEnvDefault("BASE_PATH", cfg.BasePath)
	cfg.BcryptCost = util.GetEnvInt("BCRYPT_COST", cfg.BcryptCost)
	cfg.LogLevel = util.GetEnvDefault("LOG_LEVEL", cfg.LogLevel)

	if origins, ok := os.LookupEnv("CORS_ORIGINS"); ok {
		cfg.CORSOrigins = util.SplitList(origins)
	}

	db := &cfg.Database
	db.Driver = util.GetEnvDefault("STORE_DRIVER", db.Driver)
	if db.URL == "" {
		dbhost := util.GetEnvDefault("ARANGO_HOST", "localhost")
		dbport := util.GetEnvDefault("ARANGO_PORT", "8529")
		db.URL = "http://" + dbhost + ":" + dbport
	}
	db.URL = util.GetEnvDefault("ARANGO_URL", db.URL)
	db.User = util.GetEnvDefault("ARANGO_USER", db.User)
	db.Password = util.GetEnvDefault("ARANGO_PASS", db.Password)
	db.Name = util.GetEnvDefault("ARANGO_DB", db.Name)
}

func (c *Config) finish() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return ErrMissingSecret
	}
	if strings.TrimSpace(c.JWTExpires) == "" {
		return ErrMissingTTL
	}

	ttl, err := ParseTTL(c.JWTExpires)
	if err != nil {
		return err
	}
	c.TokenTTL = ttl

	if c.Port == "" {
		c.Port = DefaultPort
	}
	if c.BasePath == "" {
		c.BasePath = DefaultBasePath
	}
	c.BasePath = "/" + strings.Trim(c.BasePath, "/")

	switch c.Database.Driver {
	case DriverArango, DriverMemory:
	case "":
		c.Database.Driver = DriverArango
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Database.Driver)
	}
	return nil
}

// ParseTTL accepts a Go duration ("90m"), whole seconds ("3600") or days ("7d").
func ParseTTL(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)

	var d time.Duration
	switch {
	case strings.HasSuffix(s, "d"):
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return 0, fmt.Errorf("invalid JWT_EXPIRES_IN %q: %w", s, err)
		}
		if days <= 0 {
			return 0, fmt.Errorf("invalid JWT_EXPIRES_IN %q: must be positive", s)
		}
		if int64(days) > math.MaxInt64/int64(24*time.Hour) {
			return 0, fmt.Errorf("invalid JWT_EXPIRES_IN %q: too large", s)
		}
		d = time.Duration(days) * 24 * time.Hour
	default:
		if secs, err := strconv.Atoi(s); err == nil {
			if secs <= 0 {
				return 0, fmt.Errorf("invalid JWT_EXPIRES_IN %q: must be positive", s)
			}
			if int64(secs) > math.MaxInt64/int64(time.Second) {
				return 0, fmt.Errorf("invalid JWT_EXPIRES_IN %q: too large", s)
			}
			d = time.Duration(secs) * time.Second
			break
		}
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("invalid JWT_EXPIRES_IN %q: %w", s, err)
		}
		d = parsed
	}

	if d <= 0 {
		return 0, fmt.Errorf("invalid JWT_EXPIRES_IN %q: must be positive", s)
	}
	return d, nil
}
