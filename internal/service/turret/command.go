package turret

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/oshokin/radar-turret/internal/announce"
	api "github.com/oshokin/radar-turret/internal/api/http/turret"
	"github.com/oshokin/radar-turret/internal/config"
	domain "github.com/oshokin/radar-turret/internal/domain/turret"
	"github.com/oshokin/radar-turret/internal/engine"
	"github.com/oshokin/radar-turret/internal/hardware"
	"github.com/oshokin/radar-turret/internal/logger"
	"github.com/oshokin/radar-turret/internal/repository/eventlog"
	"github.com/oshokin/radar-turret/internal/repository/settings"
)

// Options controls the radar-turret process and configuration.
type Options struct {
	// ConfigPath specifies the path to the process settings YAML file.
	ConfigPath string
	// SettingsFile provides an optional override for the turret tuning file.
	SettingsFile string
	// ListenAddress provides an optional listen address override for the panel server.
	ListenAddress string
}

const (
	// readHeaderTimeout bounds slow clients on the panel server.
	readHeaderTimeout = 10 * time.Second
	// shutdownTimeout bounds the graceful drain on shutdown.
	shutdownTimeout = 5 * time.Second
)

// Run wires the simulated rig, the control engine and the panel HTTP server
// together and blocks until the context is canceled.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "radar-turret")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if level, ok := logger.ParseLogLevel(cfg.LogLevel); ok {
		logger.SetLevel(level)
	}

	// CLI overrides win over the config file.
	settingsFile := cfg.SettingsFile
	if opts.SettingsFile != "" {
		settingsFile = opts.SettingsFile
	}

	listenAddress := cfg.ListenAddress
	if opts.ListenAddress != "" {
		listenAddress = opts.ListenAddress
	}

	repo := settings.NewFileRepository(settingsFile)
	tuning := loadTuning(ctx, repo)

	events := eventlog.NewFileLog(cfg.EventLogFile, cfg.EventLogCapBytes)

	rig := hardware.NewSimRig(demoTargets(cfg))
	rig.Sensor.Jitter = true

	var announcer engine.Announcer

	if cfg.MQTT != nil {
		publisher, dialErr := announce.Dial(ctx, cfg.MQTT)
		if dialErr != nil {
			// Broker trouble degrades to a silent turret, never a dead one.
			logger.WarnKV(ctx, "Detection announcements disabled", "error", dialErr)
		} else {
			announcer = publisher

			defer publisher.Close()
		}
	}

	eng := engine.New(engine.Options{
		Rig:       rig.Peripherals(),
		Settings:  tuning,
		Store:     repo,
		Events:    events,
		Announcer: announcer,
	})

	go eng.Run(ctx)

	server := &http.Server{
		Addr:              listenAddress,
		Handler:           api.NewServer(eng, events).Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	logger.InfoKV(ctx, "Panel server listening",
		"listen_address", listenAddress,
		"settings_file", settingsFile,
		"event_log_file", cfg.EventLogFile,
	)

	// Done channel is closed after Shutdown finishes so we block until the
	// server fully drains before returning.
	done := make(chan struct{})

	go func() {
		<-ctx.Done()
		logger.Info(ctx, "Shutting down panel server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
			logger.WarnKV(ctx, "Panel server shutdown failed", "error", shutdownErr)
		}

		close(done)
	}()

	if err = server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve panel: %w", err)
	}

	<-done
	logger.Info(ctx, "Panel server stopped")

	return nil
}

// loadTuning reads the persisted turret settings. A missing or unreadable
// file is never fatal: the turret boots on factory defaults and persistence
// stays best-effort.
func loadTuning(ctx context.Context, repo *settings.FileRepository) domain.Settings {
	loaded, err := repo.Load(ctx)

	switch {
	case err == nil:
		return *loaded
	case errors.Is(err, settings.ErrNotFound):
		logger.Info(ctx, "No persisted turret settings, using defaults")
	default:
		logger.WarnKV(ctx, "Failed to load turret settings, using defaults", "error", err)
	}

	return domain.DefaultSettings()
}

// demoTargets converts the configured simulated objects into rig targets.
func demoTargets(cfg *config.Config) []hardware.Target {
	targets := make([]hardware.Target, 0, len(cfg.DemoTargets))
	for _, t := range cfg.DemoTargets {
		targets = append(targets, hardware.Target{Angle: t.Angle, DistanceCM: t.DistanceCM})
	}

	return targets
}
