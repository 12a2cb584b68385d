package config

import "time"

// Transfer mode values.
const (
	ModeSCP  = "scp"
	ModeSFTP = "sftp"
)

// Remote identifies the image to pull from the plant-station server.
type Remote struct {
	User string `yaml:"user"`
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	Path string `yaml:"path"`
}

// Addr returns the user@host form used by transfer clients.
func (r Remote) Addr() string {
	return r.User + "@" + r.Host
}

// Local holds the paths plantframe writes on this machine.
type Local struct {
	// ImagePath is where the fetched image lands and what the viewer displays.
	ImagePath string `yaml:"image_path"`
	// StateDir holds the cycle journal.
	StateDir string `yaml:"state_dir"`
}

// Transfer controls how the remote image is copied.
type Transfer struct {
	// Mode selects the transfer client: "scp" shells out to the OpenSSH
	// client, "sftp" uses the built-in SSH implementation.
	Mode                  string `yaml:"mode"`
	ConnectTimeoutSeconds int    `yaml:"connect_timeout_seconds"`
	// BandwidthKbit caps the transfer rate in Kbit/s (scp -l). 0 disables
	// the cap. The station uplink is slow, so the cap keeps a fetch from
	// starving the push side.
	BandwidthKbit int `yaml:"bandwidth_kbit"`
	// IdentityFile is the private key used in sftp mode.
	IdentityFile string `yaml:"identity_file"`
	// KnownHostsFile enables host key verification in sftp mode.
	// Empty means trust the host, matching scp's pre-configured setup.
	KnownHostsFile string `yaml:"known_hosts_file"`
}

// ConnectTimeout returns the transfer connect timeout as a duration.
func (t Transfer) ConnectTimeout() time.Duration {
	return time.Duration(t.ConnectTimeoutSeconds) * time.Second
}

// Viewer controls how the image viewer is launched.
type Viewer struct {
	Command    string `yaml:"command"`
	Display    string `yaml:"display"`
	Xauthority string `yaml:"xauthority"`
	// ReloadSeconds is the viewer's own re-read interval (feh -R). It must
	// be shorter than the loop interval so a fresh fetch shows up before
	// the next relaunch.
	ReloadSeconds int `yaml:"reload_seconds"`
}

// Reload returns the viewer self-reload interval as a duration.
func (v Viewer) Reload() time.Duration {
	return time.Duration(v.ReloadSeconds) * time.Second
}

// Loop controls the outer fetch-and-display cycle.
type Loop struct {
	IntervalSeconds int `yaml:"interval_seconds"`
}

// Interval returns the outer loop interval as a duration.
func (l Loop) Interval() time.Duration {
	return time.Duration(l.IntervalSeconds) * time.Second
}

// Config represents the plantframe config.yaml file.
type Config struct {
	Remote   Remote   `yaml:"remote"`
	Local    Local    `yaml:"local"`
	Transfer Transfer `yaml:"transfer"`
	Viewer   Viewer   `yaml:"viewer"`
	Loop     Loop     `yaml:"loop"`
}
