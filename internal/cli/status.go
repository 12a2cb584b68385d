package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nillhb/plantframe/internal/journal"
)

// journalReader abstracts the cycle journal for testability.
type journalReader interface {
	Load() ([]journal.Entry, error)
	Summary() (journal.Stats, error)
}

// statusStore is the journal reader used by the status command.
// It can be overridden in tests.
var statusStore journalReader

// statusTail is how many recent cycles the status command lists.
const statusTail = 10

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show cycle journal summary",
	Long: `Shows fetch success counts and the most recent cycles from the journal.
A run that is silently showing a stale image turns up here as a streak of
failed fetches.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	store := statusStore
	if store == nil {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store = journal.NewStore(cfg.Local.StateDir)
	}

	stats, err := store.Summary()
	if err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}

	if stats.Cycles == 0 {
		fmt.Println("No cycles recorded.")
		return nil
	}

	fmt.Println("Cycle Journal")
	fmt.Println("=============")
	printField("Cycles", fmt.Sprintf("%d", stats.Cycles))
	printField("Fetch OK", fmt.Sprintf("%d", stats.FetchOK))
	printField("Fetch failed", fmt.Sprintf("%d", stats.FetchFailed))
	if stats.Last != nil {
		printField("Last cycle", formatTime(stats.Last.StartedAt))
	}
	fmt.Println()

	entries, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}
	if len(entries) > statusTail {
		entries = entries[len(entries)-statusTail:]
	}

	fmt.Println("Recent cycles")
	fmt.Println("-------------")
	for _, e := range entries {
		outcome := "ok"
		if !e.FetchOK {
			outcome = "FAILED: " + e.FetchError
		}
		fmt.Printf("  %5d  %s  %s\n", e.Cycle, formatTime(e.StartedAt), outcome)
	}

	return nil
}

func printField(label, value string) {
	fmt.Printf("  %-14s %s\n", label+":", value)
}

func formatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
