package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nillhb/plantframe/internal/journal"
	"github.com/nillhb/plantframe/internal/loop"
)

var (
	runOnce      bool
	runMaxCycles int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the fetch-and-display loop",
	Long: `Runs the poll loop until interrupted: kill any running viewer, copy the
remote image to the local path, relaunch the viewer full screen, then sleep
for the configured interval and repeat.

Transfer and viewer failures are logged and recorded in the cycle journal
but never stop the loop; the next cycle is the retry.

Example:
  plantframe run
  plantframe run --once
  plantframe run --max-cycles 10 --verbose`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runOnce, "once", false, "run a single cycle and exit")
	runCmd.Flags().IntVar(&runMaxCycles, "max-cycles", 0, "stop after N cycles (0 = run forever)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fetcher, err := newFetcher(cfg)
	if err != nil {
		return err
	}

	maxCycles := runMaxCycles
	if runOnce {
		maxCycles = 1
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l := loop.New(loop.Options{
		Fetcher:   fetcher,
		Viewer:    newViewer(cfg),
		Journal:   journal.NewStore(cfg.Local.StateDir),
		Interval:  cfg.Loop.Interval(),
		MaxCycles: maxCycles,
	})

	res := l.Run(ctx)
	fmt.Printf("plantframe stopped (%s) after %d cycle(s)\n", res.Reason, res.Cycles)
	return nil
}
