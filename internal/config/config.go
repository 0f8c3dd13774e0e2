package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for the application
type Config struct {
	LogLevel       string     `yaml:"log_level" env:"BANKIST_LOG_LEVEL" env-default:"info"`
	SeedPath       string     `yaml:"seed_path" env:"BANKIST_SEED_PATH"`
	AllowedOrigins []string   `yaml:"allowed_origins" env:"BANKIST_ALLOWED_ORIGINS" env-default:"*"`
	HTTPServer     HTTPServer `yaml:"http_server"`
	Session        Session    `yaml:"session"`
}

// HTTPServer holds the listen address and timeouts
type HTTPServer struct {
	Address         string        `yaml:"address" env:"BANKIST_ADDRESS" env-default:":8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"BANKIST_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"BANKIST_WRITE_TIMEOUT" env-default:"10s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"BANKIST_SHUTDOWN_TIMEOUT" env-default:"30s"`
}

// Session holds session token and store settings
type Session struct {
	JWTSecret        string        `yaml:"jwt_secret" env:"BANKIST_JWT_SECRET" env-default:"dev-secret-change-in-production"`
	TokenExpiry      time.Duration `yaml:"token_expiry" env:"BANKIST_TOKEN_EXPIRY" env-default:"30m"`
	TTL              time.Duration `yaml:"ttl" env:"BANKIST_SESSION_TTL" env-default:"30m"`
	CleaningInterval time.Duration `yaml:"cleaning_interval" env:"BANKIST_SESSION_CLEANING_INTERVAL" env-default:"10m"`
}

// Parse reads configuration from an optional yaml file plus environment
// variables. An empty path means environment only.
func Parse(path string) (*Config, error) {
	c := &Config{}
	if path == "" {
		if err := cleanenv.ReadEnv(c); err != nil {
			return nil, err
		}
		return c, nil
	}
	if err := cleanenv.ReadConfig(path, c); err != nil {
		return nil, err
	}
	return c, nil
}
