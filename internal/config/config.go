package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	LLM        LLMConfig        `mapstructure:"llm"`
	Generation GenerationConfig `mapstructure:"generation"`
	Breaker    BreakerConfig    `mapstructure:"breaker"`
	Events     EventsConfig     `mapstructure:"events"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	Environment  string `mapstructure:"environment"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
}

type LLMConfig struct {
	APIEndpoint     string `mapstructure:"api_endpoint"`
	APIKey          string `mapstructure:"api_key"`
	Model           string `mapstructure:"model"`
	TimeoutMs       int    `mapstructure:"timeout_ms"`
	MaxRetries      int    `mapstructure:"max_retries"`
	RetryIntervalMs int    `mapstructure:"retry_interval_ms"`
}

type GenerationConfig struct {
	Dialect              string `mapstructure:"dialect"`
	Extractor            string `mapstructure:"extractor"`
	FailFastOnExtraction bool   `mapstructure:"fail_fast_on_extraction"`
	SchemaFile           string `mapstructure:"schema_file"`
}

type BreakerConfig struct {
	Enabled          bool   `mapstructure:"enabled"`
	MaxRequests      uint32 `mapstructure:"max_requests"`
	IntervalSec      int    `mapstructure:"interval"`
	TimeoutSec       int    `mapstructure:"timeout"`
	FailureThreshold uint32 `mapstructure:"failure_threshold"`
}

type EventsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Extractor names accepted in generation.extractor
var knownExtractors = []string{"default", "plain", "strict"}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Enable environment variable support
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 60)

	v.SetDefault("llm.api_endpoint", "https://api.openai.com/v1/chat/completions")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.timeout_ms", 5000)
	v.SetDefault("llm.max_retries", 1)
	v.SetDefault("llm.retry_interval_ms", 0)

	v.SetDefault("generation.dialect", "MySql")
	v.SetDefault("generation.extractor", "default")
	v.SetDefault("generation.fail_fast_on_extraction", false)
	v.SetDefault("generation.schema_file", "")

	v.SetDefault("breaker.enabled", false)
	v.SetDefault("breaker.max_requests", 1)
	v.SetDefault("breaker.interval", 60)
	v.SetDefault("breaker.timeout", 30)
	v.SetDefault("breaker.failure_threshold", 5)

	v.SetDefault("events.enabled", true)

	v.SetDefault("log.level", "info")
}

// Validate rejects settings the generator cannot run with
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port: %d", c.Server.Port)
	}
	if c.LLM.MaxRetries < 0 {
		return fmt.Errorf("invalid llm.max_retries: %d must not be negative", c.LLM.MaxRetries)
	}
	if c.LLM.TimeoutMs <= 0 {
		return fmt.Errorf("invalid llm.timeout_ms: %d must be positive", c.LLM.TimeoutMs)
	}
	if c.LLM.RetryIntervalMs < 0 {
		return fmt.Errorf("invalid llm.retry_interval_ms: %d must not be negative", c.LLM.RetryIntervalMs)
	}

	extractor := strings.ToLower(strings.TrimSpace(c.Generation.Extractor))
	known := extractor == ""
	for _, name := range knownExtractors {
		if extractor == name {
			known = true
		}
	}
	if !known {
		return fmt.Errorf("invalid generation.extractor: %q (use one of %s)",
			c.Generation.Extractor, strings.Join(knownExtractors, ", "))
	}

	return nil
}
