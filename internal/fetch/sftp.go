package fetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/nillhb/plantframe/internal/config"
)

// SFTPFetcher transfers the image over the built-in SSH implementation.
// It exists for hosts without an OpenSSH client installed; behavior matches
// SCPFetcher otherwise.
type SFTPFetcher struct {
	Remote         config.Remote
	LocalPath      string
	IdentityFile   string
	KnownHostsFile string

	timeoutSeconds int
}

// NewSFTPFetcher creates an SFTPFetcher from the given config.
func NewSFTPFetcher(cfg *config.Config) *SFTPFetcher {
	return &SFTPFetcher{
		Remote:         cfg.Remote,
		LocalPath:      cfg.Local.ImagePath,
		IdentityFile:   cfg.Transfer.IdentityFile,
		KnownHostsFile: cfg.Transfer.KnownHostsFile,
		timeoutSeconds: cfg.Transfer.ConnectTimeoutSeconds,
	}
}

// Fetch downloads the remote file into a staging file and renames it over
// the local path.
func (f *SFTPFetcher) Fetch(ctx context.Context) error {
	clientCfg, err := f.clientConfig()
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(f.Remote.Host, strconv.Itoa(f.Remote.Port))
	conn, err := ssh.Dial("tcp", addr, clientCfg)
	if err != nil {
		return fmt.Errorf("ssh dial %s: %w", addr, err)
	}
	defer conn.Close()

	client, err := sftp.NewClient(conn)
	if err != nil {
		return fmt.Errorf("sftp session: %w", err)
	}
	defer client.Close()

	src, err := client.Open(f.Remote.Path)
	if err != nil {
		return fmt.Errorf("open remote %s: %w", f.Remote.Path, err)
	}
	defer src.Close()

	staged, err := stagingFile(f.LocalPath)
	if err != nil {
		return err
	}
	defer os.Remove(staged)

	dst, err := os.OpenFile(staged, os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open staging file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("download %s: %w", f.Remote.Path, err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("close staging file: %w", err)
	}

	return commit(staged, f.LocalPath)
}

// clientConfig builds the SSH client configuration: key auth from the
// identity file, optional known_hosts verification.
func (f *SFTPFetcher) clientConfig() (*ssh.ClientConfig, error) {
	if f.IdentityFile == "" {
		return nil, fmt.Errorf("sftp mode requires transfer.identity_file")
	}

	key, err := os.ReadFile(f.IdentityFile)
	if err != nil {
		return nil, fmt.Errorf("read identity file: %w", err)
	}
	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("parse identity file %s: %w", f.IdentityFile, err)
	}

	hostKeyCallback := ssh.InsecureIgnoreHostKey()
	if f.KnownHostsFile != "" {
		hostKeyCallback, err = knownhosts.New(f.KnownHostsFile)
		if err != nil {
			return nil, fmt.Errorf("load known hosts %s: %w", f.KnownHostsFile, err)
		}
	}

	return &ssh.ClientConfig{
		User:            f.Remote.User,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: hostKeyCallback,
		Timeout:         f.timeout(),
	}, nil
}

// timeout returns the dial timeout. The SSH library has no context support
// on Dial, so this is what bounds a fetch against an unreachable host.
func (f *SFTPFetcher) timeout() time.Duration {
	if f.timeoutSeconds <= 0 {
		return time.Duration(config.DefaultConnectTimeoutSeconds) * time.Second
	}
	return time.Duration(f.timeoutSeconds) * time.Second
}
