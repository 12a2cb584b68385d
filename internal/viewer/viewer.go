// Package viewer manages the full-screen image viewer process.
package viewer

import "context"

// Manager controls the viewer process lifecycle. The loop kills and
// relaunches the viewer every cycle rather than tracking the process it
// started, so a viewer left behind by a previous daemon run is cleaned up
// too.
type Manager interface {
	// Kill terminates any running viewer instance. Nothing running is
	// not an error.
	Kill(ctx context.Context) error

	// Launch starts the viewer detached against the local image path.
	// It returns once the process has started; it never waits for exit.
	Launch(ctx context.Context) error
}
