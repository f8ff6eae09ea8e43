package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/Dmetrikx/learnkeybot/internal/stream"
)

// Backend variants
const (
	BackendHosted = "hosted"
	BackendLocal  = "local"
)

// Defaults applied when neither the config file nor the environment sets a value
const (
	DefaultConfigFile            = "learnkey.toml"
	DefaultOpenRouterBaseURL     = "https://openrouter.ai/api/v1"
	DefaultOllamaURL             = "http://localhost:11434"
	DefaultHostedModel           = "deepseek/deepseek-r1:free"
	DefaultLocalModel            = "llama3.1"
	DefaultUpdateInterval        = 2 * time.Second
	DefaultPreviewLimit          = 1000
	DefaultMaxMessageLength      = 2000
	DefaultMaxConcurrentSessions = 8
	DefaultGenerationTimeout     = 3 * time.Minute
	DefaultTimeZone              = "Europe/Chisinau"
	DefaultLogFormat             = "json"
	DefaultLogLevel              = "info"

	MinUpdateInterval   = 1 * time.Second
	MaxUpdateInterval   = 2 * time.Second
	DiscordMessageLimit = 2000
)

// Config holds all configuration values
type Config struct {
	DiscordToken string

	Backend           string
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	OllamaURL         string
	Model             string

	UpdateInterval        time.Duration
	PreviewLimit          int
	MaxMessageLength      int
	MaxConcurrentSessions int64
	GenerationTimeout     time.Duration
	TimeZone              string

	LogFormat string
	LogLevel  string
	LogFile   string
}

// fileConfig mirrors the optional TOML file. Every key is optional.
type fileConfig struct {
	DiscordToken          string `toml:"discord_token"`
	Backend               string `toml:"backend"`
	OpenRouterAPIKey      string `toml:"openrouter_api_key"`
	OpenRouterBaseURL     string `toml:"openrouter_base_url"`
	OllamaURL             string `toml:"ollama_url"`
	Model                 string `toml:"model"`
	UpdateInterval        string `toml:"update_interval"`
	PreviewLimit          int    `toml:"preview_limit"`
	MaxMessageLength      int    `toml:"max_message_length"`
	MaxConcurrentSessions int64  `toml:"max_concurrent_sessions"`
	GenerationTimeout     string `toml:"generation_timeout"`
	TimeZone              string `toml:"time_zone"`
	LogFormat             string `toml:"log_format"`
	LogLevel              string `toml:"log_level"`
	LogFile               string `toml:"log_file"`
}

// LoadConfig loads the optional .env and TOML files, applies environment
// overrides and returns a validated Config struct
func LoadConfig() (*Config, error) {
	// Try to load .env file (optional - may not exist in production)
	_ = godotenv.Load(".env")

	config := defaults()

	// An explicitly named file must exist; the default one is optional.
	path := os.Getenv("LEARNKEY_CONFIG")
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	if err := config.loadFile(path, explicit); err != nil {
		return nil, err
	}

	if err := config.loadEnv(); err != nil {
		return nil, err
	}

	if config.Model == "" {
		config.Model = DefaultHostedModel
		if config.Backend == BackendLocal {
			config.Model = DefaultLocalModel
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func defaults() *Config {
	return &Config{
		Backend:               BackendHosted,
		OpenRouterBaseURL:     DefaultOpenRouterBaseURL,
		OllamaURL:             DefaultOllamaURL,
		UpdateInterval:        DefaultUpdateInterval,
		PreviewLimit:          DefaultPreviewLimit,
		MaxMessageLength:      DefaultMaxMessageLength,
		MaxConcurrentSessions: DefaultMaxConcurrentSessions,
		GenerationTimeout:     DefaultGenerationTimeout,
		TimeZone:              DefaultTimeZone,
		LogFormat:             DefaultLogFormat,
		LogLevel:              DefaultLogLevel,
	}
}

// loadFile applies the TOML file at path. A missing file is only an error
// when the path was named explicitly.
func (c *Config) loadFile(path string, required bool) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return &ConfigError{Field: "LEARNKEY_CONFIG", Message: fmt.Sprintf("config file %q not found", path), Err: err}
		}
		return &ConfigError{Field: path, Message: "invalid config file", Err: err}
	}

	setString(&c.DiscordToken, fc.DiscordToken)
	setString(&c.Backend, fc.Backend)
	setString(&c.OpenRouterAPIKey, fc.OpenRouterAPIKey)
	setString(&c.OpenRouterBaseURL, fc.OpenRouterBaseURL)
	setString(&c.OllamaURL, fc.OllamaURL)
	setString(&c.Model, fc.Model)
	setString(&c.TimeZone, fc.TimeZone)
	setString(&c.LogFormat, fc.LogFormat)
	setString(&c.LogLevel, fc.LogLevel)
	setString(&c.LogFile, fc.LogFile)

	if fc.PreviewLimit != 0 {
		c.PreviewLimit = fc.PreviewLimit
	}
	if fc.MaxMessageLength != 0 {
		c.MaxMessageLength = fc.MaxMessageLength
	}
	if fc.MaxConcurrentSessions != 0 {
		c.MaxConcurrentSessions = fc.MaxConcurrentSessions
	}

	var err error
	if fc.UpdateInterval != "" {
		if c.UpdateInterval, err = time.ParseDuration(fc.UpdateInterval); err != nil {
			return NewConfigError("update_interval", "must be a duration such as 2s")
		}
	}
	if fc.GenerationTimeout != "" {
		if c.GenerationTimeout, err = time.ParseDuration(fc.GenerationTimeout); err != nil {
			return NewConfigError("generation_timeout", "must be a duration such as 3m")
		}
	}

	return nil
}

func (c *Config) loadEnv() error {
	setString(&c.DiscordToken, os.Getenv("DISCORD_TOKEN"))
	setString(&c.Backend, strings.ToLower(os.Getenv("BACKEND")))
	setString(&c.OpenRouterAPIKey, os.Getenv("OPENROUTER_API_KEY"))
	setString(&c.OpenRouterBaseURL, os.Getenv("OPENROUTER_BASE_URL"))
	setString(&c.OllamaURL, os.Getenv("OLLAMA_URL"))
	setString(&c.Model, os.Getenv("MODEL"))
	setString(&c.TimeZone, os.Getenv("TIME_ZONE"))
	setString(&c.LogFormat, os.Getenv("LOG_FORMAT"))
	setString(&c.LogLevel, os.Getenv("LOG_LEVEL"))
	setString(&c.LogFile, os.Getenv("LOG_FILE"))

	if err := envDuration("UPDATE_INTERVAL", &c.UpdateInterval); err != nil {
		return err
	}
	if err := envDuration("GENERATION_TIMEOUT", &c.GenerationTimeout); err != nil {
		return err
	}
	if err := envInt("PREVIEW_LIMIT", &c.PreviewLimit); err != nil {
		return err
	}
	if err := envInt("MAX_MESSAGE_LENGTH", &c.MaxMessageLength); err != nil {
		return err
	}

	if v := os.Getenv("MAX_CONCURRENT_SESSIONS"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return NewConfigError("MAX_CONCURRENT_SESSIONS", "must be an integer")
		}
		c.MaxConcurrentSessions = n
	}

	return nil
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.DiscordToken == "" {
		return NewConfigError("DISCORD_TOKEN", "environment variable is required")
	}

	switch c.Backend {
	case BackendHosted:
		if c.OpenRouterAPIKey == "" {
			return NewConfigError("OPENROUTER_API_KEY", "required when BACKEND=hosted")
		}
		if c.OpenRouterBaseURL == "" {
			return NewConfigError("OPENROUTER_BASE_URL", "cannot be empty")
		}
	case BackendLocal:
		if c.OllamaURL == "" {
			return NewConfigError("OLLAMA_URL", "cannot be empty")
		}
	default:
		return NewConfigError("BACKEND", fmt.Sprintf("unknown backend %q, want %q or %q", c.Backend, BackendHosted, BackendLocal))
	}

	if c.Model == "" {
		return NewConfigError("MODEL", "cannot be empty")
	}

	if c.UpdateInterval < MinUpdateInterval || c.UpdateInterval > MaxUpdateInterval {
		return NewConfigError("UPDATE_INTERVAL", fmt.Sprintf("must be between %s and %s", MinUpdateInterval, MaxUpdateInterval))
	}

	if c.MaxMessageLength <= 0 || c.MaxMessageLength > DiscordMessageLimit {
		return NewConfigError("MAX_MESSAGE_LENGTH", fmt.Sprintf("must be between 1 and %d", DiscordMessageLimit))
	}

	// the preview edit carries a header and an ellipsis on top of the limit
	if c.PreviewLimit <= 0 || c.PreviewLimit+stream.PreviewOverhead > c.MaxMessageLength {
		return NewConfigError("PREVIEW_LIMIT", fmt.Sprintf("must be positive and at most MAX_MESSAGE_LENGTH minus %d", stream.PreviewOverhead))
	}

	if c.MaxConcurrentSessions < 1 {
		return NewConfigError("MAX_CONCURRENT_SESSIONS", "must be at least 1")
	}

	if c.GenerationTimeout <= 0 {
		return NewConfigError("GENERATION_TIMEOUT", "must be positive")
	}

	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return NewConfigError("TIME_ZONE", fmt.Sprintf("unknown time zone %q", c.TimeZone))
	}

	return nil
}

// Location returns the configured time zone, falling back to UTC
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return NewConfigError(key, "must be an integer")
	}
	*dst = n
	return nil
}

func envDuration(key string, dst *time.Duration) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return NewConfigError(key, "must be a duration such as 2s")
	}
	*dst = d
	return nil
}
