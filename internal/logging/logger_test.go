package logging

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestLogger(buf *bytes.Buffer) *Logger {
	l := New()
	l.SetOutput(log.New(buf, "", 0))
	return l
}

func TestLogger_LevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := newTestLogger(&buf)
	l.SetLevel(LevelWarn)

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "WARN: warn message")
	assert.Contains(t, out, "ERROR: error message")
}

func TestLogger_SortedFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := newTestLogger(&buf)

	l.Info("cycle complete", "ok", true, "cycle", 3, "duration", "1.2s")

	// Keys are sorted so log lines are stable
	assert.Equal(t, "INFO: cycle complete | cycle=3 duration=1.2s ok=true\n", buf.String())
}

func TestLogger_With(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := newTestLogger(&buf).With("component", "loop")

	l.Info("started")

	assert.Equal(t, "INFO: started | component=loop\n", buf.String())
}

func TestLogger_FormatsErrorsAndSpaces(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := newTestLogger(&buf)

	l.Warn("fetch failed", "err", errors.New("host unreachable"))

	assert.Contains(t, buf.String(), `err="host unreachable"`)
}
