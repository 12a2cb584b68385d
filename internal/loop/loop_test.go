package loop

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nillhb/plantframe/internal/fetch"
	"github.com/nillhb/plantframe/internal/journal"
	"github.com/nillhb/plantframe/internal/viewer"
)

func TestExitReason_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "canceled", ExitReasonCanceled.String())
	assert.Equal(t, "max cycles", ExitReasonMaxCycles.String())
	assert.Equal(t, "unknown", ExitReasonUnknown.String())
}

func TestLoop_RunsConfiguredCycles(t *testing.T) {
	t.Parallel()

	f := fetch.NewMock()
	v := viewer.NewMock()

	l := New(Options{
		Fetcher:   f,
		Viewer:    v,
		Interval:  time.Millisecond,
		MaxCycles: 3,
	})

	res := l.Run(context.Background())

	assert.Equal(t, ExitReasonMaxCycles, res.Reason)
	assert.Equal(t, 3, res.Cycles)
	assert.Equal(t, 3, f.Calls())
	assert.Equal(t, 3, v.KillCalls())
	assert.Equal(t, 3, v.LaunchCalls())
}

func TestLoop_CycleOrder(t *testing.T) {
	t.Parallel()

	v := viewer.NewMock()
	l := New(Options{
		Fetcher:   fetch.NewMock(),
		Viewer:    v,
		Interval:  time.Millisecond,
		MaxCycles: 2,
	})

	l.Run(context.Background())

	// Kill always precedes launch within a cycle
	assert.Equal(t, []string{"kill", "launch", "kill", "launch"}, v.Sequence())
}

func TestLoop_FetchFailureStillLaunchesViewer(t *testing.T) {
	t.Parallel()

	f := fetch.NewMock()
	f.Script(errors.New("host unreachable"), errors.New("host unreachable"))
	v := viewer.NewMock()

	l := New(Options{
		Fetcher:   f,
		Viewer:    v,
		Interval:  time.Millisecond,
		MaxCycles: 2,
	})

	res := l.Run(context.Background())

	assert.Equal(t, ExitReasonMaxCycles, res.Reason)
	assert.Equal(t, 2, v.LaunchCalls())
}

func TestLoop_ViewerErrorsDoNotStopLoop(t *testing.T) {
	t.Parallel()

	v := viewer.NewMock()
	v.FailKill(errors.New("pkill not found"))
	v.FailLaunch(errors.New("no display"))

	f := fetch.NewMock()

	l := New(Options{
		Fetcher:   f,
		Viewer:    v,
		Interval:  time.Millisecond,
		MaxCycles: 3,
	})

	res := l.Run(context.Background())

	assert.Equal(t, 3, res.Cycles)
	assert.Equal(t, 3, f.Calls())
}

func TestLoop_CancellationDuringSleep(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	f := fetch.NewMock()
	f.OnFetch = func(context.Context) {
		// Cancel while the loop is in its first cycle; it should exit
		// during the following sleep instead of starting cycle two
		cancel()
	}

	l := New(Options{
		Fetcher:  f,
		Viewer:   viewer.NewMock(),
		Interval: time.Hour,
	})

	done := make(chan Result, 1)
	go func() {
		done <- l.Run(ctx)
	}()

	select {
	case res := <-done:
		assert.Equal(t, ExitReasonCanceled, res.Reason)
		assert.Equal(t, 1, res.Cycles)
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not exit after cancellation")
	}
}

func TestLoop_CanceledBeforeFirstCycle(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := fetch.NewMock()
	l := New(Options{Fetcher: f, Viewer: viewer.NewMock(), Interval: time.Millisecond})

	res := l.Run(ctx)

	assert.Equal(t, ExitReasonCanceled, res.Reason)
	assert.Zero(t, res.Cycles)
	assert.Zero(t, f.Calls())
}

func TestLoop_RecordsJournalEntries(t *testing.T) {
	t.Parallel()

	store := journal.NewStore(t.TempDir())

	f := fetch.NewMock()
	f.Script(nil, errors.New("connection timed out"))

	l := New(Options{
		Fetcher:   f,
		Viewer:    viewer.NewMock(),
		Journal:   store,
		Interval:  time.Millisecond,
		MaxCycles: 2,
	})

	l.Run(context.Background())

	entries, err := store.Load()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, 1, entries[0].Cycle)
	assert.True(t, entries[0].FetchOK)
	assert.False(t, entries[1].FetchOK)
	assert.Equal(t, "connection timed out", entries[1].FetchError)
}
