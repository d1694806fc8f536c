package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearServiceEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"PORT", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "LOG_LEVEL", "PROPERTIES_FILE", "PROPERTY_ENV_PREFIX"} {
		// t.Setenv restores the original value on cleanup.
		t.Setenv(name, "")
		if err := os.Unsetenv(name); err != nil {
			t.Fatalf("unset %s: %v", name, err)
		}
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearServiceEnv(t)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.ShutdownGracePeriod != 10*time.Second {
		t.Fatalf("unexpected shutdown grace period: %s", cfg.ShutdownGracePeriod)
	}
	if cfg.LogLevel != defaultLogLevel {
		t.Fatalf("expected default log level, got %s", cfg.LogLevel)
	}
	if cfg.Settings == nil || len(cfg.Settings) != 0 {
		t.Fatalf("expected empty base settings, got %v", cfg.Settings)
	}
	if cfg.EnvPrefix != "" {
		t.Fatalf("expected empty env prefix, got %q", cfg.EnvPrefix)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearServiceEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("RATE_LIMIT_RPS", "5")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PROPERTY_ENV_PREFIX", "GRAPH_")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "9000" {
		t.Fatalf("expected overridden port, got %s", cfg.Port)
	}
	if cfg.RateLimitRPS != 5 {
		t.Fatalf("expected rps 5, got %v", cfg.RateLimitRPS)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected debug log level, got %s", cfg.LogLevel)
	}
	if cfg.EnvPrefix != "GRAPH_" {
		t.Fatalf("expected env prefix GRAPH_, got %q", cfg.EnvPrefix)
	}
}

func TestLoadRejectsMalformedEnv(t *testing.T) {
	clearServiceEnv(t)
	t.Setenv("RATE_LIMIT_BURST", "lots")

	if _, err := Load(nil); err == nil {
		t.Fatalf("expected error for malformed RATE_LIMIT_BURST")
	}
}

func TestLoadYAMLFile(t *testing.T) {
	clearServiceEnv(t)
	t.Setenv("PORT", "9000")

	path := writeConfigFile(t, `
port: "7070"
shutdown_grace_period: 3s
enable_request_logging: false
log_level: warn
properties_file: /etc/graph/properties.yaml
rate_limit:
  rps: 0
  burst: 0
settings:
  read_only: "false"
  cache_type: weak
`)

	cfg, err := Load(&CLIOverrides{ConfigFile: path})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "7070" {
		t.Fatalf("expected YAML port to override env, got %s", cfg.Port)
	}
	if cfg.ShutdownGracePeriod != 3*time.Second {
		t.Fatalf("unexpected shutdown grace period: %s", cfg.ShutdownGracePeriod)
	}
	if cfg.EnableRequestLogging {
		t.Fatalf("expected request logging to be disabled")
	}
	if cfg.RateLimitRPS != 0 || cfg.RateLimitBurst != 0 {
		t.Fatalf("expected rate limit disabled, got %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("expected warn log level, got %s", cfg.LogLevel)
	}
	if cfg.PropertiesFile != "/etc/graph/properties.yaml" {
		t.Fatalf("unexpected properties file %q", cfg.PropertiesFile)
	}
	if cfg.Settings["read_only"] != "false" || cfg.Settings["cache_type"] != "weak" {
		t.Fatalf("unexpected base settings: %v", cfg.Settings)
	}
}

func TestLoadYAMLKeepsDefaultsForOmittedKeys(t *testing.T) {
	clearServiceEnv(t)

	path := writeConfigFile(t, "port: \"7070\"\n")
	cfg, err := Load(&CLIOverrides{ConfigFile: path})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if !cfg.EnableRequestLogging {
		t.Fatalf("expected request logging default to survive")
	}
	if cfg.RateLimitRPS != defaultRateLimitRPS || cfg.RateLimitBurst != defaultRateLimitBurst {
		t.Fatalf("expected default rate limits, got %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoadCLIOverridesWin(t *testing.T) {
	clearServiceEnv(t)

	path := writeConfigFile(t, "port: \"7070\"\nlog_level: warn\n")
	port := "6060"
	level := "error"
	rps := 2.5
	prefix := "DB_"

	cfg, err := Load(&CLIOverrides{
		ConfigFile:   path,
		Port:         &port,
		LogLevel:     &level,
		RateLimitRPS: &rps,
		EnvPrefix:    &prefix,
	})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "6060" || cfg.LogLevel != "error" || cfg.RateLimitRPS != 2.5 || cfg.EnvPrefix != "DB_" {
		t.Fatalf("CLI overrides not applied: %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearServiceEnv(t)

	if _, err := Load(&CLIOverrides{ConfigFile: filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestValidateConfig(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		if err := validateConfig(defaultConfig()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		cases := map[string]func(*Config){
			"negative rps":   func(c *Config) { c.RateLimitRPS = -1 },
			"negative burst": func(c *Config) { c.RateLimitBurst = -1 },
			"log level":      func(c *Config) { c.LogLevel = "chatty" },
			"empty setting":  func(c *Config) { c.Settings[""] = "x" },
		}
		for name, mutate := range cases {
			cfg := defaultConfig()
			mutate(&cfg)
			if err := validateConfig(cfg); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("%s: expected ErrInvalidConfig, got %v", name, err)
			}
		}
	})
}
