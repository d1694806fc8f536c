package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort           = "8080"
	defaultRateLimitRPS   = 25.0
	defaultRateLimitBurst = 50
	defaultLogLevel       = "info"
)

// ErrInvalidConfig is wrapped by every validation failure of the final configuration.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Config struct {
	Port                 string
	ShutdownGracePeriod  time.Duration
	ReadHeaderTimeout    time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	EnableRequestLogging bool
	RateLimitRPS         float64
	RateLimitBurst       int
	LogLevel             string

	// PropertiesFile seeds the property store from a flat YAML file instead
	// of the process environment.
	PropertiesFile string
	// EnvPrefix is prepended to setting names when reading them from the environment.
	EnvPrefix string
	// Settings is the base configuration the property overlay is merged onto.
	Settings map[string]string
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	Port                 string            `yaml:"port"`
	ShutdownGracePeriod  string            `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    string            `yaml:"read_header_timeout"`
	WriteTimeout         string            `yaml:"write_timeout"`
	IdleTimeout          string            `yaml:"idle_timeout"`
	EnableRequestLogging *bool             `yaml:"enable_request_logging"`
	RateLimit            yamlRateLimit     `yaml:"rate_limit"`
	LogLevel             string            `yaml:"log_level"`
	PropertiesFile       string            `yaml:"properties_file"`
	EnvPrefix            *string           `yaml:"env_prefix"`
	Settings             map[string]string `yaml:"settings"`
}

// yamlRateLimit represents the rate limit section in YAML.
type yamlRateLimit struct {
	RPS   *float64 `yaml:"rps"`
	Burst *int     `yaml:"burst"`
}

// envConfig lists the environment variables understood by the service.
// Unset variables leave their field nil.
type envConfig struct {
	Port           *string  `env:"PORT"`
	RateLimitRPS   *float64 `env:"RATE_LIMIT_RPS"`
	RateLimitBurst *int     `env:"RATE_LIMIT_BURST"`
	LogLevel       *string  `env:"LOG_LEVEL"`
	PropertiesFile *string  `env:"PROPERTIES_FILE"`
	EnvPrefix      *string  `env:"PROPERTY_ENV_PREFIX"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile     string
	Port           *string
	RateLimitRPS   *float64
	RateLimitBurst *int
	LogLevel       *string
	PropertiesFile *string
	EnvPrefix      *string
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	if err := applyEnvConfig(&cfg); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		applyYAMLConfig(&cfg, yamlCfg)
	}

	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		Port:                 defaultPort,
		ShutdownGracePeriod:  10 * time.Second,
		ReadHeaderTimeout:    5 * time.Second,
		WriteTimeout:         15 * time.Second,
		IdleTimeout:          60 * time.Second,
		EnableRequestLogging: true,
		RateLimitRPS:         defaultRateLimitRPS,
		RateLimitBurst:       defaultRateLimitBurst,
		LogLevel:             defaultLogLevel,
		Settings:             map[string]string{},
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) {
	if yamlCfg.Port != "" {
		cfg.Port = yamlCfg.Port
	}

	applyDuration(&cfg.ShutdownGracePeriod, yamlCfg.ShutdownGracePeriod)
	applyDuration(&cfg.ReadHeaderTimeout, yamlCfg.ReadHeaderTimeout)
	applyDuration(&cfg.WriteTimeout, yamlCfg.WriteTimeout)
	applyDuration(&cfg.IdleTimeout, yamlCfg.IdleTimeout)

	if yamlCfg.EnableRequestLogging != nil {
		cfg.EnableRequestLogging = *yamlCfg.EnableRequestLogging
	}

	if yamlCfg.RateLimit.RPS != nil && *yamlCfg.RateLimit.RPS >= 0 {
		cfg.RateLimitRPS = *yamlCfg.RateLimit.RPS
	}

	if yamlCfg.RateLimit.Burst != nil && *yamlCfg.RateLimit.Burst >= 0 {
		cfg.RateLimitBurst = *yamlCfg.RateLimit.Burst
	}

	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}

	if yamlCfg.PropertiesFile != "" {
		cfg.PropertiesFile = yamlCfg.PropertiesFile
	}

	if yamlCfg.EnvPrefix != nil {
		cfg.EnvPrefix = *yamlCfg.EnvPrefix
	}

	for name, value := range yamlCfg.Settings {
		cfg.Settings[name] = value
	}
}

func applyDuration(dst *time.Duration, raw string) {
	if raw == "" {
		return
	}
	if d, err := time.ParseDuration(raw); err == nil {
		*dst = d
	}
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) error {
	var envCfg envConfig
	if err := env.Parse(&envCfg); err != nil {
		return err
	}

	if v := trimmed(envCfg.Port); v != "" {
		cfg.Port = v
	}

	if envCfg.RateLimitRPS != nil && *envCfg.RateLimitRPS >= 0 {
		cfg.RateLimitRPS = *envCfg.RateLimitRPS
	}

	if envCfg.RateLimitBurst != nil && *envCfg.RateLimitBurst >= 0 {
		cfg.RateLimitBurst = *envCfg.RateLimitBurst
	}

	if v := trimmed(envCfg.LogLevel); v != "" {
		cfg.LogLevel = v
	}

	if v := trimmed(envCfg.PropertiesFile); v != "" {
		cfg.PropertiesFile = v
	}

	if envCfg.EnvPrefix != nil {
		cfg.EnvPrefix = *envCfg.EnvPrefix
	}

	return nil
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if v := trimmed(overrides.Port); v != "" {
		cfg.Port = v
	}

	if overrides.RateLimitRPS != nil && *overrides.RateLimitRPS >= 0 {
		cfg.RateLimitRPS = *overrides.RateLimitRPS
	}

	if overrides.RateLimitBurst != nil && *overrides.RateLimitBurst >= 0 {
		cfg.RateLimitBurst = *overrides.RateLimitBurst
	}

	if v := trimmed(overrides.LogLevel); v != "" {
		cfg.LogLevel = v
	}

	if v := trimmed(overrides.PropertiesFile); v != "" {
		cfg.PropertiesFile = v
	}

	if overrides.EnvPrefix != nil {
		cfg.EnvPrefix = *overrides.EnvPrefix
	}
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if cfg.RateLimitRPS < 0 {
		return fmt.Errorf("%w: RATE_LIMIT_RPS must be >= 0", ErrInvalidConfig)
	}
	if cfg.RateLimitBurst < 0 {
		return fmt.Errorf("%w: RATE_LIMIT_BURST must be >= 0", ErrInvalidConfig)
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, cfg.LogLevel)
	}
	if _, ok := cfg.Settings[""]; ok {
		return fmt.Errorf("%w: settings cannot contain an empty name", ErrInvalidConfig)
	}
	return nil
}

func trimmed(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}
