// Package journal records the outcome of each fetch-and-display cycle to
// a JSON file in the state directory. The status command reads it back.
package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const historyFile = "history.json"

// MaxEntries bounds the journal; older entries are pruned on append.
const MaxEntries = 500

// Entry records a single cycle.
type Entry struct {
	Cycle      int       `json:"cycle"`
	StartedAt  time.Time `json:"started_at"`
	FetchOK    bool      `json:"fetch_ok"`
	FetchError string    `json:"fetch_error,omitempty"`
	DurationMS int64     `json:"duration_ms"`
}

// Stats summarizes the journal for the status command.
type Stats struct {
	Cycles      int
	FetchOK     int
	FetchFailed int
	Last        *Entry
}

// Store reads and writes the cycle journal under a state directory.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at the given state directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path() string {
	return filepath.Join(s.dir, historyFile)
}

// Load reads all journal entries. A missing file is an empty journal.
func (s *Store) Load() ([]Entry, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse journal: %w", err)
	}
	return entries, nil
}

// Append adds an entry, pruning the journal to the most recent MaxEntries.
func (s *Store) Append(entry Entry) error {
	entries, err := s.Load()
	if err != nil {
		return err
	}

	entries = append(entries, entry)
	if len(entries) > MaxEntries {
		entries = entries[len(entries)-MaxEntries:]
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal journal: %w", err)
	}

	if err := os.WriteFile(s.path(), data, 0o644); err != nil {
		return fmt.Errorf("failed to write journal: %w", err)
	}
	return nil
}

// Summary computes aggregate stats over the journal.
func (s *Store) Summary() (Stats, error) {
	entries, err := s.Load()
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{Cycles: len(entries)}
	for i := range entries {
		if entries[i].FetchOK {
			stats.FetchOK++
		} else {
			stats.FetchFailed++
		}
	}
	if len(entries) > 0 {
		stats.Last = &entries[len(entries)-1]
	}
	return stats, nil
}
