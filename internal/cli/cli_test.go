package cli

import (
	"crypto/ed25519"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCLI(t *testing.T) {
	cmd := BuildCLI()

	assert.NotNil(t, cmd)
	assert.Equal(t, "taskserverd", cmd.Use)
	assert.Equal(t, "1.0.0", cmd.Version)

	commands := cmd.Commands()
	assert.Len(t, commands, 3)

	names := make(map[string]bool)
	for _, c := range commands {
		names[c.Use] = true
	}
	assert.True(t, names["run"])
	assert.True(t, names["status"])
	assert.True(t, names["genkey"])

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "configs/default.yaml", configFlag.DefValue)
}

func TestBuildRunCommand(t *testing.T) {
	cmd := buildRunCommand()
	assert.Equal(t, "run", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}

func TestBuildStatusCommand(t *testing.T) {
	cmd := buildStatusCommand()
	assert.Equal(t, "status", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}

func TestBuildGenKeyCommand(t *testing.T) {
	cmd := buildGenKeyCommand()
	assert.Equal(t, "genkey", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}

func TestShowStatusReportsConfiguredFields(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	encoded := base64.StdEncoding.EncodeToString(pub)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
bind_address: 127.0.0.1:9443
data_file: /tmp/funtonic-keys.yaml
authorized_keys:
  - key_id: commander-1
    public_key: `+encoded+`
metrics:
  enabled: true
  port: 9091
`), 0o600))

	require.NoError(t, showStatus(path))
}

func TestShowStatusFailsOnMissingConfig(t *testing.T) {
	err := showStatus("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestGenKeyProducesValidEd25519Pair(t *testing.T) {
	require.NoError(t, genKey())
}
