package viewer

import (
	"context"
	"sync"
)

// Mock implements Manager for tests and records the order of calls.
type Mock struct {
	mu         sync.Mutex
	killErr    error
	launchErr  error
	killCalls  int
	launchCall int
	sequence   []string
}

// NewMock creates a Mock whose calls all succeed.
func NewMock() *Mock {
	return &Mock{}
}

// FailKill makes subsequent Kill calls return err.
func (m *Mock) FailKill(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.killErr = err
}

// FailLaunch makes subsequent Launch calls return err.
func (m *Mock) FailLaunch(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.launchErr = err
}

// Kill records the call.
func (m *Mock) Kill(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.killCalls++
	m.sequence = append(m.sequence, "kill")
	return m.killErr
}

// Launch records the call.
func (m *Mock) Launch(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.launchCall++
	m.sequence = append(m.sequence, "launch")
	return m.launchErr
}

// KillCalls returns how many times Kill was invoked.
func (m *Mock) KillCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.killCalls
}

// LaunchCalls returns how many times Launch was invoked.
func (m *Mock) LaunchCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.launchCall
}

// Sequence returns the recorded call order.
func (m *Mock) Sequence() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.sequence))
	copy(out, m.sequence)
	return out
}
