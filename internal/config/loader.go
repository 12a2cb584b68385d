package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default values for Config. The remote and path defaults are the
// plant-station deployment the tool was written for; everything can be
// overridden in config.yaml.
const (
	DefaultRemoteUser = "nill"
	DefaultRemoteHost = "nillmill.ddns.net"
	DefaultRemotePort = 22
	DefaultRemotePath = "/media/bigdata/plant_station/images/latest.jpg"

	DefaultImagePath = "~/frame/latest.jpg"
	DefaultStateDir  = "~/.plantframe"

	DefaultTransferMode          = ModeSCP
	DefaultConnectTimeoutSeconds = 10
	DefaultBandwidthKbit         = 500

	DefaultViewerCommand = "feh"
	DefaultDisplay       = ":0"
	DefaultXauthority    = "~/.Xauthority"
	DefaultReloadSeconds = 10

	DefaultIntervalSeconds = 60
)

// DefaultConfig returns a Config with sensible default values.
// Paths are still in ~/ form; LoadConfig expands them.
func DefaultConfig() Config {
	return Config{
		Remote: Remote{
			User: DefaultRemoteUser,
			Host: DefaultRemoteHost,
			Port: DefaultRemotePort,
			Path: DefaultRemotePath,
		},
		Local: Local{
			ImagePath: DefaultImagePath,
			StateDir:  DefaultStateDir,
		},
		Transfer: Transfer{
			Mode:                  DefaultTransferMode,
			ConnectTimeoutSeconds: DefaultConnectTimeoutSeconds,
			BandwidthKbit:         DefaultBandwidthKbit,
		},
		Viewer: Viewer{
			Command:       DefaultViewerCommand,
			Display:       DefaultDisplay,
			Xauthority:    DefaultXauthority,
			ReloadSeconds: DefaultReloadSeconds,
		},
		Loop: Loop{
			IntervalSeconds: DefaultIntervalSeconds,
		},
	}
}

// DefaultPath returns the default config file location,
// ~/.plantframe/config.yaml.
func DefaultPath() string {
	return ExpandHome("~/.plantframe/config.yaml")
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// LoadConfig reads and parses the config file at path. An empty path means
// the default location. If the file doesn't exist, returns default config.
// Applies defaults for any missing fields and expands ~/ in local paths.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.Local.ImagePath = ExpandHome(cfg.Local.ImagePath)
	cfg.Local.StateDir = ExpandHome(cfg.Local.StateDir)
	cfg.Transfer.IdentityFile = ExpandHome(cfg.Transfer.IdentityFile)
	cfg.Transfer.KnownHostsFile = ExpandHome(cfg.Transfer.KnownHostsFile)
	cfg.Viewer.Xauthority = ExpandHome(cfg.Viewer.Xauthority)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ExpandHome replaces a leading ~/ with the current user's home directory.
// Paths without the prefix are returned unchanged, as is everything when
// the home directory cannot be determined.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

// ValidateConfig checks that all config values are valid.
func ValidateConfig(cfg *Config) error {
	if cfg.Remote.User == "" {
		return ValidationError{Field: "remote.user", Message: "must not be empty"}
	}
	if cfg.Remote.Host == "" {
		return ValidationError{Field: "remote.host", Message: "must not be empty"}
	}
	if cfg.Remote.Port < 1 || cfg.Remote.Port > 65535 {
		return ValidationError{Field: "remote.port", Message: "must be between 1 and 65535"}
	}
	if cfg.Remote.Path == "" {
		return ValidationError{Field: "remote.path", Message: "must not be empty"}
	}
	if cfg.Local.ImagePath == "" {
		return ValidationError{Field: "local.image_path", Message: "must not be empty"}
	}
	if cfg.Local.StateDir == "" {
		return ValidationError{Field: "local.state_dir", Message: "must not be empty"}
	}
	if cfg.Transfer.Mode != ModeSCP && cfg.Transfer.Mode != ModeSFTP {
		return ValidationError{Field: "transfer.mode", Message: `must be "scp" or "sftp"`}
	}
	if cfg.Transfer.ConnectTimeoutSeconds <= 0 {
		return ValidationError{Field: "transfer.connect_timeout_seconds", Message: "must be positive"}
	}
	if cfg.Transfer.BandwidthKbit < 0 {
		return ValidationError{Field: "transfer.bandwidth_kbit", Message: "must not be negative"}
	}
	if cfg.Viewer.Command == "" {
		return ValidationError{Field: "viewer.command", Message: "must not be empty"}
	}
	if cfg.Viewer.Display == "" {
		return ValidationError{Field: "viewer.display", Message: "must not be empty"}
	}
	if cfg.Viewer.ReloadSeconds <= 0 {
		return ValidationError{Field: "viewer.reload_seconds", Message: "must be positive"}
	}
	if cfg.Loop.IntervalSeconds <= 0 {
		return ValidationError{Field: "loop.interval_seconds", Message: "must be positive"}
	}
	if cfg.Loop.IntervalSeconds <= cfg.Viewer.ReloadSeconds {
		return ValidationError{Field: "loop.interval_seconds", Message: "must be greater than viewer.reload_seconds"}
	}
	return nil
}
