package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/settings-overlay/internal/application"
	"github.com/eugenenazirov/settings-overlay/internal/config"
	"github.com/eugenenazirov/settings-overlay/internal/logging"
)

var signalNotify = signal.Notify

func main() {
	kingpinApp := kingpin.New("settingsd", "Settings overlay service - validates property overrides against the setting catalog")
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	port := kingpinApp.Flag("port", "HTTP port exposed by the service").String()
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").String()
	propertiesFile := kingpinApp.Flag("properties-file", "Flat YAML file seeding the property store").String()
	envPrefix := kingpinApp.Flag("env-prefix", "Prefix for setting names read from the environment").String()
	rateLimitRPSFlag := kingpinApp.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	rateLimitBurstFlag := kingpinApp.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()

	serveCmd := kingpinApp.Command("serve", "Run the HTTP service").Default()
	resolveCmd := kingpinApp.Command("resolve", "Print the effective configuration as YAML and exit")

	command := kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	overrides := &config.CLIOverrides{
		ConfigFile: *configFile,
	}

	if *port != "" {
		overrides.Port = port
	}

	if *logLevel != "" {
		overrides.LogLevel = logLevel
	}

	if *propertiesFile != "" {
		overrides.PropertiesFile = propertiesFile
	}

	if *envPrefix != "" {
		overrides.EnvPrefix = envPrefix
	}

	if *rateLimitRPSFlag >= 0 {
		overrides.RateLimitRPS = rateLimitRPSFlag
	}

	if *rateLimitBurstFlag >= 0 {
		overrides.RateLimitBurst = rateLimitBurstFlag
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	switch command {
	case resolveCmd.FullCommand():
		if err := resolve(app, os.Stdout); err != nil {
			logger.Fatal("failed to resolve configuration", zap.Error(err))
		}
	case serveCmd.FullCommand():
		if err := app.Start(); err != nil {
			logger.Fatal("failed to start server", zap.Error(err))
		}
		shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
	}
}

func resolve(app *application.App, w io.Writer) error {
	settings, err := app.EffectiveSettings()
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	defer func() {
		_ = enc.Close()
	}()
	if err := enc.Encode(settings); err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	return nil
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
