package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

//go:embed defaults.yaml
var defaults []byte

// DefaultSessionSecret is rejected in release mode
const DefaultSessionSecret = "default-secret-key-change-me"

// Session backends. The cookie backend keeps no server-side record, so a
// copied cookie outlives logout until it expires. It is refused in release mode.
const (
	SessionBackendRedis  = "redis"
	SessionBackendCookie = "cookie"
)

type Config struct {
	Port            string        `koanf:"port"`
	GinMode         string        `koanf:"gin_mode"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	DBDriver   string `koanf:"db_driver"`
	DBHost     string `koanf:"db_host"`
	DBPort     string `koanf:"db_port"`
	DBUser     string `koanf:"db_user"`
	DBPassword string `koanf:"db_password"`
	DBName     string `koanf:"db_name"`
	DBPath     string `koanf:"db_path"`

	SessionBackend string `koanf:"session_backend"`
	SessionSecret  string `koanf:"session_secret"`
	RedisHost      string `koanf:"redis_host"`
	RedisPort      string `koanf:"redis_port"`
	RedisPassword  string `koanf:"redis_password"`

	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	CORSAllowedOrigins string `koanf:"cors_allowed_origins"`

	OpenAIAPIKey string `koanf:"openai_api_key"`
	OpenAIModel  string `koanf:"openai_model"`
}

// Load reads configuration with the following precedence (highest first):
//  1. Environment variables (DB_HOST, SESSION_SECRET, ...), including a .env file
//  2. The YAML file named by CONFIG_FILE, if set
//  3. Built-in defaults
func Load() (*Config, error) {
	// A missing .env file is normal outside local development
	_ = godotenv.Load()

	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaults), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	switch c.SessionBackend {
	case SessionBackendRedis, SessionBackendCookie:
	default:
		return fmt.Errorf("unsupported SESSION_BACKEND %q", c.SessionBackend)
	}

	if c.IsProduction() && c.SessionBackend == SessionBackendCookie {
		return fmt.Errorf("SESSION_BACKEND %q is not allowed in release mode", SessionBackendCookie)
	}

	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if c.IsProduction() && c.SessionSecret == DefaultSessionSecret {
		return fmt.Errorf("SESSION_SECRET must be changed in release mode")
	}

	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	return nil
}

// IsProduction reports whether gin runs in release mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// RedisAddr returns host:port of the Redis server
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
