package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nillhb/plantframe/internal/config"
	"github.com/nillhb/plantframe/internal/fetch"
	"github.com/nillhb/plantframe/internal/logging"
	"github.com/nillhb/plantframe/internal/viewer"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	rootConfigPath string
	rootVerbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "plantframe",
	Short: "Pull the latest plant-station image and show it full screen",
	Long: `Plantframe turns a spare screen into a live view of the plant station.
It periodically copies the most recent plant image from the station server
over SSH and displays it full screen with feh, relaunching the viewer each
cycle so a wedged instance never sticks around.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if rootVerbose {
			logging.SetLevel(logging.LevelDebug)
		}
	},
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("plantframe version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "config file (default ~/.plantframe/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&rootVerbose, "verbose", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig loads the configuration honoring the --config flag.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(rootConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newFetcher builds the transfer client selected by transfer.mode.
func newFetcher(cfg *config.Config) (fetch.Fetcher, error) {
	switch cfg.Transfer.Mode {
	case config.ModeSCP:
		return fetch.NewSCPFetcher(cfg), nil
	case config.ModeSFTP:
		return fetch.NewSFTPFetcher(cfg), nil
	default:
		return nil, fmt.Errorf("unknown transfer mode: %q", cfg.Transfer.Mode)
	}
}

// newViewer builds the viewer manager.
func newViewer(cfg *config.Config) viewer.Manager {
	return viewer.NewFeh(cfg)
}
