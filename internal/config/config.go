package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"lingobridge/pkg/validator"

	"github.com/spf13/viper"
)

// Supported translation providers.
const (
	ProviderGoogle   = "google"
	ProviderGemini   = "gemini"
	ProviderMyMemory = "mymemory"
)

// Config holds all configuration for the application.
type Config struct {
	Env      string `validate:"oneof=development production"`
	Server   ServerConfig
	Provider ProviderConfig
	Database DatabaseConfig
	RabbitMQ RabbitMQConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `validate:"required"`
	Port int    `validate:"min=1,max=65535"`
}

// ProviderConfig selects and configures the outbound translation provider.
type ProviderConfig struct {
	Name    string        `validate:"oneof=google gemini mymemory"`
	Timeout time.Duration `validate:"min=0"`
	// RPS caps outbound calls per second; zero disables the limiter.
	RPS          float64 `validate:"min=0"`
	DetectSource bool
	Google       GoogleConfig
	Gemini       GeminiConfig
	MyMemory     MyMemoryConfig
}

// GoogleConfig holds Google Cloud Translation configuration.
type GoogleConfig struct {
	APIKey   string
	Endpoint string
}

// GeminiConfig holds Gemini API configuration.
type GeminiConfig struct {
	APIKey  string
	BaseURL string `validate:"required,url"`
	Model   string `validate:"required"`
}

// MyMemoryConfig holds MyMemory API configuration.
type MyMemoryConfig struct {
	BaseURL string `validate:"required,url"`
	Email   string `validate:"omitempty,email"`
}

// DatabaseConfig holds database configuration. History is disabled when Host is empty.
type DatabaseConfig struct {
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string
}

// RabbitMQConfig holds RabbitMQ configuration. Events are disabled when URL is empty.
type RabbitMQConfig struct {
	URL      string
	Exchange string
}

// Load loads configuration from environment variables and, when present, a
// config file. An empty configFile falls back to ./.env if it exists.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "production")
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 5000)
	v.SetDefault("TRANSLATE_PROVIDER", ProviderGoogle)
	v.SetDefault("PROVIDER_TIMEOUT", 30*time.Second)
	v.SetDefault("PROVIDER_RPS", 0)
	v.SetDefault("DETECT_SOURCE_LANGUAGE", false)
	v.SetDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("MYMEMORY_BASE_URL", "https://api.mymemory.translated.net")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_NAME", "lingobridge")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("RABBITMQ_EXCHANGE", "translation_events")

	if configFile == "" {
		if _, err := os.Stat(".env"); err == nil {
			configFile = ".env"
		}
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
	}

	cfg := &Config{
		Env: v.GetString("APP_ENV"),
		Server: ServerConfig{
			Host: v.GetString("API_HOST"),
			Port: v.GetInt("API_PORT"),
		},
		Provider: ProviderConfig{
			Name:         v.GetString("TRANSLATE_PROVIDER"),
			Timeout:      v.GetDuration("PROVIDER_TIMEOUT"),
			RPS:          v.GetFloat64("PROVIDER_RPS"),
			DetectSource: v.GetBool("DETECT_SOURCE_LANGUAGE"),
			Google: GoogleConfig{
				APIKey:   v.GetString("GOOGLE_TRANSLATE_API_KEY"),
				Endpoint: v.GetString("GOOGLE_TRANSLATE_ENDPOINT"),
			},
			Gemini: GeminiConfig{
				APIKey:  v.GetString("GEMINI_API_KEY"),
				BaseURL: v.GetString("GEMINI_BASE_URL"),
				Model:   v.GetString("GEMINI_MODEL"),
			},
			MyMemory: MyMemoryConfig{
				BaseURL: v.GetString("MYMEMORY_BASE_URL"),
				Email:   v.GetString("MYMEMORY_EMAIL"),
			},
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:      v.GetString("RABBITMQ_URL"),
			Exchange: v.GetString("RABBITMQ_EXCHANGE"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// validate validates the configuration.
func (c *Config) validate() error {
	if err := validator.ValidateStruct(c); err != nil {
		return err
	}

	switch c.Provider.Name {
	case ProviderGoogle:
		if c.Provider.Google.APIKey == "" {
			return errors.New("GOOGLE_TRANSLATE_API_KEY is required for the google provider")
		}
	case ProviderGemini:
		if c.Provider.Gemini.APIKey == "" {
			return errors.New("GEMINI_API_KEY is required for the gemini provider")
		}
	}

	if c.Database.Enabled() && c.Database.User == "" {
		return errors.New("DB_USER is required when DB_HOST is set")
	}
	if c.RabbitMQ.Enabled() && c.RabbitMQ.Exchange == "" {
		return errors.New("RABBITMQ_EXCHANGE is required when RABBITMQ_URL is set")
	}
	return nil
}

// Addr returns the listen address of the HTTP server.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Enabled reports whether translation history should be persisted.
func (c *DatabaseConfig) Enabled() bool {
	return c.Host != ""
}

// DSN returns the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Enabled reports whether translation events should be published.
func (c *RabbitMQConfig) Enabled() bool {
	return c.URL != ""
}
