package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Kill any running viewer instance",
	Args:  cobra.NoArgs,
	RunE:  runStop,
}

func init() {
	rootCmd.AddCommand(stopCmd)
}

func runStop(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := newViewer(cfg).Kill(cmd.Context()); err != nil {
		return fmt.Errorf("failed to kill viewer: %w", err)
	}

	fmt.Println("Viewer stopped.")
	return nil
}
