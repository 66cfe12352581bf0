package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/radar-turret/internal/config"
	"github.com/oshokin/radar-turret/internal/service/turret"
	"github.com/oshokin/radar-turret/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// settingsFile path where turret tuning is persisted.
	settingsFile string

	// rootCmd represents the base command for running the turret controller.
	rootCmd = &cobra.Command{
		Use:   "radar-turret [listen-address]",
		Short: "Run the radar turret controller and its control panel.",
		Long: `Starts the radar turret controller: a simulated sweep rig, the control
state machine and the web control panel.

The panel server listens on the address from the configuration file unless a
listen address argument is provided (e.g., :9090, 0.0.0.0:8080). Turret tuning
(range, lock time, sweep arc) is persisted to a YAML file across restarts and
detections are appended to a capped intrusion log. When an mqtt section is
configured, detections are also published to the broker.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Use listen address argument if provided, otherwise rely on config.
			var listenAddress string
			if len(args) > 0 {
				listenAddress = args[0]
			}

			options := &turret.Options{
				ConfigPath:    configPath,
				SettingsFile:  settingsFile,
				ListenAddress: listenAddress,
			}

			return turret.Run(ctx, options)
		},
	}
)

// Execute runs the radar-turret CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().
		StringVarP(&settingsFile, "settings-file", "s", "", "path to persist turret tuning (defaults to config value)")
}
