// Package config holds the application configuration, loaded through viper
// from defaults, an optional YAML file, and environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration for the fill engine.
type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	Browser  BrowserConfig  `mapstructure:"browser" yaml:"browser"`
	Executor ExecutorConfig `mapstructure:"executor" yaml:"executor"`
	Cookbook CookbookConfig `mapstructure:"cookbook" yaml:"cookbook"`
	Agent    AgentConfig    `mapstructure:"agent" yaml:"agent"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// BrowserConfig holds settings for the headless browser instance.
type BrowserConfig struct {
	Headless     bool   `mapstructure:"headless" yaml:"headless"`
	WindowWidth  int    `mapstructure:"window_width" yaml:"window_width"`
	WindowHeight int    `mapstructure:"window_height" yaml:"window_height"`
	UserAgent    string `mapstructure:"user_agent" yaml:"user_agent"`
}

// ExecutorConfig tunes the DOM action executor.
type ExecutorConfig struct {
	SettleDelay time.Duration `mapstructure:"settle_delay" yaml:"settle_delay"`
	MaxRetries  int           `mapstructure:"max_retries" yaml:"max_retries"`
}

// CookbookConfig configures the learned-action replay store and its gates.
type CookbookConfig struct {
	Path                   string  `mapstructure:"path" yaml:"path"`
	MinHealth              float64 `mapstructure:"min_health" yaml:"min_health"`
	MaxConsecutiveFailures int     `mapstructure:"max_consecutive_failures" yaml:"max_consecutive_failures"`
}

// AgentConfig configures the optional LLM fallback tier.
type AgentConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Model   string `mapstructure:"model" yaml:"model"`
	APIKey  string `mapstructure:"api_key" yaml:"-"`
}

// SetDefaults initializes default values for every configuration parameter.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "fillengine")
	v.SetDefault("logger.log_file", "fillengine.log")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.window_width", 1440)
	v.SetDefault("browser.window_height", 1080)
	v.SetDefault("browser.user_agent", "")

	v.SetDefault("executor.settle_delay", "300ms")
	v.SetDefault("executor.max_retries", 2)

	v.SetDefault("cookbook.path", "cookbook.db")
	v.SetDefault("cookbook.min_health", 0.3)
	v.SetDefault("cookbook.max_consecutive_failures", 3)

	v.SetDefault("agent.enabled", false)
	v.SetDefault("agent.model", "gemini-2.5-flash")
}

// NewDefaultConfig returns a configuration populated with defaults only.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// NewConfigFromViper builds and validates a configuration from a viper
// instance that has already read defaults, file, and flags.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix("FILLENGINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("agent.api_key", "FILLENGINE_AGENT_API_KEY", "GEMINI_API_KEY")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if cfg.Agent.Enabled && cfg.Agent.APIKey == "" {
		cfg.Agent.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	if c.Executor.SettleDelay < 0 {
		return fmt.Errorf("executor.settle_delay must not be negative")
	}
	if c.Executor.MaxRetries < 0 {
		return fmt.Errorf("executor.max_retries must not be negative")
	}
	if c.Cookbook.MinHealth < 0.0 || c.Cookbook.MinHealth > 1.0 {
		return fmt.Errorf("cookbook.min_health must be between 0.0 and 1.0")
	}
	if c.Cookbook.MaxConsecutiveFailures <= 0 {
		return fmt.Errorf("cookbook.max_consecutive_failures must be greater than 0")
	}
	if c.Agent.Enabled {
		if c.Agent.Model == "" {
			return fmt.Errorf("agent.model is required when the agent is enabled")
		}
		if c.Agent.APIKey == "" {
			return fmt.Errorf("agent API key is required but not found. Ensure FILLENGINE_AGENT_API_KEY or GEMINI_API_KEY is set")
		}
	}
	return nil
}
