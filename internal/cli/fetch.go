package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Copy the remote image to the local path once",
	Long: `Performs a single transfer of the configured remote image to the local
path and exits. Unlike the loop, a failed transfer is reported with a
non-zero exit code.`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fetcher, err := newFetcher(cfg)
	if err != nil {
		return err
	}

	if err := fetcher.Fetch(cmd.Context()); err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	fmt.Printf("Fetched %s:%s -> %s\n", cfg.Remote.Addr(), cfg.Remote.Path, cfg.Local.ImagePath)
	return nil
}
