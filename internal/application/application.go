package application

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/settings-overlay/internal/api"
	"github.com/eugenenazirov/settings-overlay/internal/config"
	"github.com/eugenenazirov/settings-overlay/internal/overlay"
	"github.com/eugenenazirov/settings-overlay/internal/property"
	"github.com/eugenenazirov/settings-overlay/internal/setting"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	registry *setting.Registry
	store    *property.MemoryStore
	overlay  *overlay.Overlay
	base     map[string]string
	handler  *api.Handler
	router   http.Handler
	logger   *zap.Logger
	server   *http.Server
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	registry := setting.GraphDatabaseSettings()

	props, err := loadProperties(cfg, registry)
	if err != nil {
		return nil, fmt.Errorf("failed to load properties: %w", err)
	}
	store := property.NewMemoryStore(props)

	warnInvalidBaseSettings(registry, cfg.Settings, logger)

	ov := overlay.New(registry, store, overlay.WithLogger(logger))
	handler := api.NewHandler(registry, ov, store, cfg.Settings)
	router := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	return &App{
		registry: registry,
		store:    store,
		overlay:  ov,
		base:     cfg.Settings,
		handler:  handler,
		router:   router,
		logger:   logger,
		server:   NewServer(cfg, router),
	}, nil
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// EffectiveSettings returns the base settings with the current property
// overlay applied on top.
func (a *App) EffectiveSettings() (map[string]string, error) {
	return overlay.Merge(a.base, a.overlay.Apply(a.base))
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}

// loadProperties seeds the property store once at startup: from the
// properties file when one is configured, otherwise from the environment
// variables matching the registered setting names.
func loadProperties(cfg config.Config, registry *setting.Registry) (map[string]string, error) {
	if cfg.PropertiesFile != "" {
		return property.LoadFile(cfg.PropertiesFile)
	}
	return property.Snapshot(property.NewEnvProvider(cfg.EnvPrefix), registry.Names()), nil
}

func warnInvalidBaseSettings(registry *setting.Registry, base map[string]string, logger *zap.Logger) {
	for _, name := range registry.Names() {
		value, ok := base[name]
		if !ok {
			continue
		}
		if err := registry.Validate(name, value); err != nil {
			logger.Warn("invalid base setting", zap.String("setting", name), zap.Error(err))
		}
	}
}
