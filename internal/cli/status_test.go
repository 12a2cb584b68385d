package cli

import (
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nillhb/plantframe/internal/journal"
)

// mockJournalReader implements journalReader for testing.
type mockJournalReader struct {
	entries []journal.Entry
	err     error
}

func (m *mockJournalReader) Load() ([]journal.Entry, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.entries, nil
}

func (m *mockJournalReader) Summary() (journal.Stats, error) {
	if m.err != nil {
		return journal.Stats{}, m.err
	}
	stats := journal.Stats{Cycles: len(m.entries)}
	for i := range m.entries {
		if m.entries[i].FetchOK {
			stats.FetchOK++
		} else {
			stats.FetchFailed++
		}
	}
	if len(m.entries) > 0 {
		stats.Last = &m.entries[len(m.entries)-1]
	}
	return stats, nil
}

// captureStdout runs fn and returns everything it printed to stdout.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	runErr := fn()

	os.Stdout = old
	require.NoError(t, w.Close())

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out), runErr
}

func withStatusStore(t *testing.T, store journalReader) {
	t.Helper()
	old := statusStore
	statusStore = store
	t.Cleanup(func() { statusStore = old })
}

func TestStatus_EmptyJournal(t *testing.T) {
	withStatusStore(t, &mockJournalReader{})

	out, err := captureStdout(t, func() error {
		return runStatus(statusCmd, nil)
	})
	require.NoError(t, err)
	assert.Contains(t, out, "No cycles recorded.")
}

func TestStatus_ShowsSummaryAndRecentCycles(t *testing.T) {
	start := time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC)
	withStatusStore(t, &mockJournalReader{
		entries: []journal.Entry{
			{Cycle: 1, StartedAt: start, FetchOK: true},
			{Cycle: 2, StartedAt: start.Add(time.Minute), FetchOK: false, FetchError: "host unreachable"},
			{Cycle: 3, StartedAt: start.Add(2 * time.Minute), FetchOK: true},
		},
	})

	out, err := captureStdout(t, func() error {
		return runStatus(statusCmd, nil)
	})
	require.NoError(t, err)

	assert.Contains(t, out, "Cycles:        3")
	assert.Contains(t, out, "Fetch OK:      2")
	assert.Contains(t, out, "Fetch failed:  1")
	assert.Contains(t, out, "Last cycle:    2025-06-01 08:32:00")
	assert.Contains(t, out, "FAILED: host unreachable")
}

func TestStatus_TailsLongJournals(t *testing.T) {
	entries := make([]journal.Entry, 0, 25)
	for i := 1; i <= 25; i++ {
		entries = append(entries, journal.Entry{Cycle: i, FetchOK: true})
	}
	withStatusStore(t, &mockJournalReader{entries: entries})

	out, err := captureStdout(t, func() error {
		return runStatus(statusCmd, nil)
	})
	require.NoError(t, err)

	assert.NotContains(t, out, "   15  ")
	assert.Contains(t, out, "   16  ")
	assert.Contains(t, out, "   25  ")
}

func TestStatus_JournalError(t *testing.T) {
	withStatusStore(t, &mockJournalReader{err: errors.New("disk gone")})

	_, err := captureStdout(t, func() error {
		return runStatus(statusCmd, nil)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read journal")
}
