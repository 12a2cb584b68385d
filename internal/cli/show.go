package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Kill any running viewer and launch it once",
	Long: `Replaces any running viewer instance with a fresh full-screen launch
against the local image path. Does not fetch and does not loop; useful for
checking the display setup.`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	v := newViewer(cfg)
	ctx := cmd.Context()

	if err := v.Kill(ctx); err != nil {
		return fmt.Errorf("failed to kill viewer: %w", err)
	}
	if err := v.Launch(ctx); err != nil {
		return fmt.Errorf("failed to launch viewer: %w", err)
	}

	fmt.Printf("Viewer launched on display %s showing %s\n", cfg.Viewer.Display, cfg.Local.ImagePath)
	return nil
}
