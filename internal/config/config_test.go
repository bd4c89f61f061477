package config

import (
	"crypto/ed25519"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadRequiresBindAddress(t *testing.T) {
	path := writeConfig(t, "data_file: /tmp/keys.yaml\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bind_address")
}

func TestLoadRequiresDataFile(t *testing.T) {
	path := writeConfig(t, "bind_address: 0.0.0.0:9443\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data_file")
}

func TestLoadDecodesAuthorizedKeys(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	encoded := base64.StdEncoding.EncodeToString(pub)

	path := writeConfig(t, `
bind_address: 0.0.0.0:9443
data_file: /tmp/keys.yaml
replay_window_secs: 30
authorized_keys:
  - key_id: commander-1
    public_key: `+encoded+`
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9443", cfg.BindAddress)
	assert.Equal(t, 30, cfg.ReplayWindowSecs)

	keys, err := cfg.DecodeAuthorizedKeys()
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.Equal(t, "commander-1", keys[0].KeyID)
	assert.True(t, keys[0].PublicKey.Equal(pub))
}

func TestDecodeRejectsWrongKeySize(t *testing.T) {
	key := StaticKey{KeyID: "bad", PublicKey: base64.StdEncoding.EncodeToString([]byte("too-short"))}
	_, err := key.Decode()
	require.Error(t, err)
}

func TestReplayWindowDefaultsWhenUnset(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, defaultReplayWindow, cfg.ReplayWindow())
}
