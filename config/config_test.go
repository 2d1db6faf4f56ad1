package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, "tcp", cfg.Server.Network)
	assert.Equal(t, ":4000", cfg.Server.Address)
	assert.Equal(t, 16*1024, cfg.Server.MaxHeaderSize)
	assert.False(t, cfg.Logging.Colored)
	assert.False(t, cfg.Metrics.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	// Test: empty path returns the defaults
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)

	// Test: file values layer over the defaults
	path := writeConfig(t, `
server:
  address: "127.0.0.1:6000"
  read_timeout: 30s
logging:
  colored: true
metrics:
  enabled: true
`)
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "tcp", cfg.Server.Network)
	assert.Equal(t, "127.0.0.1:6000", cfg.Server.Address)
	assert.Equal(t, 16*1024, cfg.Server.MaxHeaderSize)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.True(t, cfg.Logging.Colored)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":9090", cfg.Metrics.Address)
}

func TestLoadErrors(t *testing.T) {
	// Test: missing file
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)

	// Test: malformed yaml
	_, err = Load(writeConfig(t, "server: ["))
	require.Error(t, err)

	// Test: invalid values fail validation on load
	_, err = Load(writeConfig(t, "server:\n  network: udp\n"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	// Test: unsupported network
	cfg := Defaults()
	cfg.Server.Network = "sctp"
	require.Error(t, cfg.Validate())

	// Test: empty listener address
	cfg = Defaults()
	cfg.Server.Address = ""
	require.Error(t, cfg.Validate())

	// Test: non-positive header limit
	cfg = Defaults()
	cfg.Server.MaxHeaderSize = 0
	require.Error(t, cfg.Validate())

	// Test: metrics enabled without an address
	cfg = Defaults()
	cfg.Metrics.Enabled = true
	cfg.Metrics.Address = ""
	require.Error(t, cfg.Validate())

	// Test: unix sockets are accepted
	cfg = Defaults()
	cfg.Server.Network = "unix"
	cfg.Server.Address = "/tmp/gemgate.sock"
	require.NoError(t, cfg.Validate())
}
