package fetch

import (
	"context"
	"sync"
)

// Mock implements Fetcher for tests. Results are scripted per call; once
// the script is exhausted every call succeeds.
type Mock struct {
	mu      sync.Mutex
	results []error
	calls   int

	// OnFetch, if set, runs on every call before the scripted result is
	// returned. Useful for writing the local file or observing ordering.
	OnFetch func(ctx context.Context)
}

// NewMock creates a Mock whose calls all succeed.
func NewMock() *Mock {
	return &Mock{}
}

// Script sets the results returned by successive Fetch calls.
func (m *Mock) Script(results ...error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = results
}

// Fetch returns the next scripted result.
func (m *Mock) Fetch(ctx context.Context) error {
	m.mu.Lock()
	idx := m.calls
	m.calls++
	var err error
	if idx < len(m.results) {
		err = m.results[idx]
	}
	onFetch := m.OnFetch
	m.mu.Unlock()

	if onFetch != nil {
		onFetch(ctx)
	}
	return err
}

// Calls returns how many times Fetch was invoked.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
