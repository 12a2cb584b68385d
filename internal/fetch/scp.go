package fetch

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/nillhb/plantframe/internal/config"
)

// SCPFetcher transfers the image by shelling out to the OpenSSH scp client.
// Authentication relies on the host's existing key setup, the same way the
// station's push side invokes scp.
type SCPFetcher struct {
	Remote                config.Remote
	LocalPath             string
	ConnectTimeoutSeconds int
	BandwidthKbit         int

	// Command is the scp binary to invoke. Defaults to "scp".
	Command string

	// run executes the transfer command. Overridable in tests.
	run func(ctx context.Context, name string, args []string) error
}

// NewSCPFetcher creates an SCPFetcher from the given config.
func NewSCPFetcher(cfg *config.Config) *SCPFetcher {
	return &SCPFetcher{
		Remote:                cfg.Remote,
		LocalPath:             cfg.Local.ImagePath,
		ConnectTimeoutSeconds: cfg.Transfer.ConnectTimeoutSeconds,
		BandwidthKbit:         cfg.Transfer.BandwidthKbit,
		Command:               "scp",
	}
}

// Fetch runs scp into a staging file and renames it over the local path.
func (f *SCPFetcher) Fetch(ctx context.Context) error {
	staged, err := stagingFile(f.LocalPath)
	if err != nil {
		return err
	}
	defer os.Remove(staged)

	command := f.Command
	if command == "" {
		command = "scp"
	}

	run := f.run
	if run == nil {
		run = runCommand
	}

	if err := run(ctx, command, f.args(staged)); err != nil {
		return fmt.Errorf("scp %s:%s: %w", f.Remote.Addr(), f.Remote.Path, err)
	}

	return commit(staged, f.LocalPath)
}

// args builds the scp argument list for a transfer into dest.
// -q suppresses the progress meter, BatchMode fails fast instead of
// prompting when the key setup is broken.
func (f *SCPFetcher) args(dest string) []string {
	args := []string{"-q", "-o", "BatchMode=yes"}
	if f.ConnectTimeoutSeconds > 0 {
		args = append(args, "-o", fmt.Sprintf("ConnectTimeout=%d", f.ConnectTimeoutSeconds))
	}
	if f.BandwidthKbit > 0 {
		args = append(args, "-l", strconv.Itoa(f.BandwidthKbit))
	}
	if f.Remote.Port != 0 && f.Remote.Port != 22 {
		args = append(args, "-P", strconv.Itoa(f.Remote.Port))
	}
	return append(args, f.Remote.Addr()+":"+f.Remote.Path, dest)
}

// runCommand executes the command, folding stderr into the returned error.
func runCommand(ctx context.Context, name string, args []string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}
