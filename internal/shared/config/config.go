package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	API       APIConfig       `mapstructure:"api"`
	AI        AIConfig        `mapstructure:"ai"`
	Upload    UploadConfig    `mapstructure:"upload"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// APIConfig holds API surface configuration.
type APIConfig struct {
	Prefix  string `mapstructure:"prefix"`
	Version string `mapstructure:"version"`
}

// AIConfig holds remote generation client configuration.
type AIConfig struct {
	Text  TextConfig  `mapstructure:"text"`
	Image ImageConfig `mapstructure:"image"`
}

// TextConfig configures the OpenAI-compatible chat completion client.
type TextConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// ImageConfig configures the Gemini image generation client.
type ImageConfig struct {
	APIKey          string `mapstructure:"api_key"`
	Model           string `mapstructure:"model"`
	SafetyThreshold string `mapstructure:"safety_threshold"` // none, low, medium, high
}

// UploadConfig holds file storage configuration. Images are stored as
// flat files under Dir with no subdirectory structure.
type UploadConfig struct {
	Dir               string   `mapstructure:"dir"`
	MaxFileSize       int64    `mapstructure:"max_file_size"`
	AllowedExtensions []string `mapstructure:"allowed_extensions"`
	AllowedMIMETypes  []string `mapstructure:"allowed_mime_types"`
}

// RateLimitConfig holds per-client rate limit configuration.
type RateLimitConfig struct {
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads configuration from file and environment. Missing required
// keys fail here, at startup, not at first use.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("/etc/adcraft")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Config file not found, use defaults and env
	}

	v.SetEnvPrefix("ADCRAFT")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Override with environment variables for sensitive values
	if key := os.Getenv("ADCRAFT_TEXT_API_KEY"); key != "" {
		cfg.AI.Text.APIKey = key
	}
	if key := os.Getenv("ADCRAFT_GEMINI_API_KEY"); key != "" {
		cfg.AI.Image.APIKey = key
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that all required settings are present.
func (c *Config) Validate() error {
	if c.AI.Text.APIKey == "" {
		return fmt.Errorf("config: ai.text.api_key is required (ADCRAFT_TEXT_API_KEY)")
	}
	if c.AI.Image.APIKey == "" {
		return fmt.Errorf("config: ai.image.api_key is required (ADCRAFT_GEMINI_API_KEY)")
	}
	if c.Upload.Dir == "" {
		return fmt.Errorf("config: upload.dir is required")
	}
	if c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0 {
		return fmt.Errorf("config: rate_limit.requests and rate_limit.window must be positive")
	}
	return nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 0*time.Second) // streaming responses disable the write deadline
	v.SetDefault("server.idle_timeout", 120*time.Second)

	// API defaults
	v.SetDefault("api.prefix", "/api/v1")
	v.SetDefault("api.version", "1.0.0")

	// Text generation defaults
	v.SetDefault("ai.text.base_url", "https://api.lunos.tech/v1")
	v.SetDefault("ai.text.model", "google/gemma-3-12b-it")
	v.SetDefault("ai.text.max_tokens", 1000)
	v.SetDefault("ai.text.temperature", 1.0)
	v.SetDefault("ai.text.timeout", 300*time.Second)

	// Image generation defaults
	v.SetDefault("ai.image.model", "gemini-2.0-flash-preview-image-generation")
	v.SetDefault("ai.image.safety_threshold", "medium")

	// Upload defaults
	v.SetDefault("upload.dir", "uploads")
	v.SetDefault("upload.max_file_size", int64(5*1024*1024))
	v.SetDefault("upload.allowed_extensions", []string{".jpg", ".jpeg", ".png", ".webp"})
	v.SetDefault("upload.allowed_mime_types", []string{"image/jpeg", "image/png", "image/webp"})

	// Rate limit defaults
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", time.Hour)

	// CORS defaults
	v.SetDefault("cors.allow_origins", []string{"*"})

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}
