package viewer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"syscall"

	"github.com/nillhb/plantframe/internal/config"
)

// Feh runs the feh image viewer full screen with the pointer hidden and
// periodic self-reload from disk.
type Feh struct {
	Command       string
	Display       string
	Xauthority    string
	ReloadSeconds int
	ImagePath     string
}

// NewFeh creates a Feh manager from the given config.
func NewFeh(cfg *config.Config) *Feh {
	return &Feh{
		Command:       cfg.Viewer.Command,
		Display:       cfg.Viewer.Display,
		Xauthority:    cfg.Viewer.Xauthority,
		ReloadSeconds: cfg.Viewer.ReloadSeconds,
		ImagePath:     cfg.Local.ImagePath,
	}
}

// Kill terminates every process whose name is exactly the viewer command.
// pkill exits 1 when nothing matched, which is the common case right after
// boot and not an error.
func (f *Feh) Kill(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, "pkill", f.killArgs()...)
	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return nil
	}
	if err != nil {
		return fmt.Errorf("pkill %s: %w", f.Command, err)
	}
	return nil
}

func (f *Feh) killArgs() []string {
	return []string{"-x", f.Command}
}

// Launch starts the viewer in its own session with DISPLAY and XAUTHORITY
// set, stdio detached, and never waits for it. The image path is not
// checked first; feh copes with a missing file and the next fetch fills
// it in.
func (f *Feh) Launch(ctx context.Context) error {
	// Deliberately not CommandContext: the viewer must outlive the
	// launching command's context and run until the next kill step.
	cmd := exec.Command(f.Command, f.launchArgs()...)
	cmd.Env = append(os.Environ(),
		"DISPLAY="+f.Display,
		"XAUTHORITY="+f.Xauthority,
	)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch %s: %w", f.Command, err)
	}

	// Reap the child when the next cycle's kill step takes it down.
	go func() {
		_ = cmd.Wait()
	}()

	return nil
}

// launchArgs builds the feh argument list: fullscreen, hide pointer,
// self-reload every ReloadSeconds.
func (f *Feh) launchArgs() []string {
	return []string{
		"--fullscreen",
		"--hide-pointer",
		"--reload", strconv.Itoa(f.ReloadSeconds),
		f.ImagePath,
	}
}
