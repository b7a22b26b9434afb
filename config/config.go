package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Config holds application configuration loaded from environment variables or config files.
type Config struct {
	AppEnv string `mapstructure:"APP_ENV" validate:"required,oneof=development staging production test"`
	Port   string `mapstructure:"PORT" validate:"required,numeric"`

	ReadTimeout     time.Duration `mapstructure:"READ_TIMEOUT" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"WRITE_TIMEOUT" validate:"gt=0"`
	IdleTimeout     time.Duration `mapstructure:"IDLE_TIMEOUT" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT" validate:"gt=0"`

	LogLevel  string `mapstructure:"LOG_LEVEL" validate:"required,oneof=trace debug info warn error fatal panic"`
	LogFormat string `mapstructure:"LOG_FORMAT" validate:"required,oneof=json console"`

	DBType              string        `mapstructure:"DB_TYPE" validate:"required,oneof=postgres sqlite"`
	DatabaseURL         string        `mapstructure:"DATABASE_URL" validate:"required_if=DBType postgres"`
	DatabaseReplicaURLs string        `mapstructure:"DATABASE_REPLICA_URLS"`
	SQLitePath          string        `mapstructure:"SQLITE_PATH" validate:"required_if=DBType sqlite"`
	DBSlowThreshold     time.Duration `mapstructure:"DB_SLOW_THRESHOLD"`

	APIKey             string `mapstructure:"API_KEY"`
	APIKeySSMParameter string `mapstructure:"API_KEY_SSM_PARAMETER"`

	AcceptedOrigins string `mapstructure:"ACCEPTED_ORIGINS"`

	ResumeStorage  string `mapstructure:"RESUME_STORAGE" validate:"required,oneof=local s3"`
	ResumeDir      string `mapstructure:"RESUME_DIR" validate:"required_if=ResumeStorage local"`
	ResumeS3Bucket string `mapstructure:"RESUME_S3_BUCKET" validate:"required_if=ResumeStorage s3"`
	ResumeS3Prefix string `mapstructure:"RESUME_S3_PREFIX"`
}

// Security is the write-access policy handed to the router.
type Security struct {
	// APIKey is the shared secret for mutating requests. Empty means unset.
	APIKey string
	// Production makes a missing APIKey fatal for writes instead of permissive.
	Production bool
}

var (
	cfg      *Config
	validate = validator.New(validator.WithRequiredStructEnabled())

	keys = []string{
		"APP_ENV",
		"PORT",
		"READ_TIMEOUT",
		"WRITE_TIMEOUT",
		"IDLE_TIMEOUT",
		"SHUTDOWN_TIMEOUT",
		"LOG_LEVEL",
		"LOG_FORMAT",
		"DB_TYPE",
		"DATABASE_URL",
		"DATABASE_REPLICA_URLS",
		"SQLITE_PATH",
		"DB_SLOW_THRESHOLD",
		"API_KEY",
		"API_KEY_SSM_PARAMETER",
		"ACCEPTED_ORIGINS",
		"RESUME_STORAGE",
		"RESUME_DIR",
		"RESUME_S3_BUCKET",
		"RESUME_S3_PREFIX",
	}
)

// Load initializes configuration using Viper. It loads from .env if present,
// applies defaults, binds env vars, and validates the result.
func Load() (*Config, error) {
	// Load .env if present (non-fatal)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	setDefaults(v)

	// Optional config file
	_ = v.ReadInConfig()

	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config unmarshal error: %w", err)
	}
	c.AppEnv = strings.ToLower(strings.TrimSpace(c.AppEnv))
	c.DBType = strings.ToLower(strings.TrimSpace(c.DBType))
	c.DatabaseURL = strings.TrimSpace(c.DatabaseURL)
	c.APIKey = strings.TrimSpace(c.APIKey)

	if err := validate.Struct(&c); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg = &c
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", EnvDevelopment)
	v.SetDefault("PORT", "8080")
	v.SetDefault("READ_TIMEOUT", "180s")
	v.SetDefault("WRITE_TIMEOUT", "180s")
	v.SetDefault("IDLE_TIMEOUT", "180s")
	v.SetDefault("SHUTDOWN_TIMEOUT", "30s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("DB_TYPE", "postgres")
	v.SetDefault("SQLITE_PATH", "portfolio.db")
	v.SetDefault("DB_SLOW_THRESHOLD", "2s")
	v.SetDefault("RESUME_STORAGE", "local")
	v.SetDefault("RESUME_DIR", "StaticFiles/Resumes")
	v.SetDefault("RESUME_S3_PREFIX", "resumes/")
}

// MustLoad loads configuration or exits the process on failure.
func MustLoad() *Config {
	c, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	return c
}

// Get returns the loaded configuration. Panics if not loaded.
func Get() *Config {
	if cfg == nil {
		panic("config not loaded: call config.Load or config.MustLoad first")
	}
	return cfg
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

func (c *Config) Security() Security {
	return Security{
		APIKey:     c.APIKey,
		Production: c.IsProduction(),
	}
}

// Addr binds to all interfaces for external access.
func (c *Config) Addr() string {
	return "0.0.0.0:" + c.Port
}

// Origins returns the CORS allow-list.
func (c *Config) Origins() []string {
	return splitList(c.AcceptedOrigins)
}

// ReplicaURLs returns the read-replica connection strings, if any.
func (c *Config) ReplicaURLs() []string {
	return splitList(c.DatabaseReplicaURLs)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
