package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nillhb/plantframe/internal/config"
	"github.com/nillhb/plantframe/internal/fetch"
)

func TestNewFetcher_ModeSelection(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()

	cfg.Transfer.Mode = config.ModeSCP
	f, err := newFetcher(&cfg)
	require.NoError(t, err)
	assert.IsType(t, &fetch.SCPFetcher{}, f)

	cfg.Transfer.Mode = config.ModeSFTP
	f, err = newFetcher(&cfg)
	require.NoError(t, err)
	assert.IsType(t, &fetch.SFTPFetcher{}, f)

	cfg.Transfer.Mode = "rsync"
	_, err = newFetcher(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown transfer mode")
}

func TestRunCommand_Flags(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, runCmd.Flags().Lookup("once"))
	assert.NotNil(t, runCmd.Flags().Lookup("max-cycles"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
}
