// Package config loads the taskserver's YAML configuration file into a
// plain YAML-tagged Config struct.
package config

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nodefleet/funtonic/internal/keystore"
)

// StaticKey is one entry of a YAML-configured key list: a key_id paired
// with a base64-encoded ed25519 public key.
type StaticKey struct {
	KeyID     string `yaml:"key_id"`
	PublicKey string `yaml:"public_key"`
}

// Decode parses the base64 public key, failing loudly on malformed
// configuration rather than silently admitting a broken key.
func (k StaticKey) Decode() (keystore.StaticKey, error) {
	raw, err := base64.StdEncoding.DecodeString(k.PublicKey)
	if err != nil {
		return keystore.StaticKey{}, fmt.Errorf("config: key %s: decode public_key: %w", k.KeyID, err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return keystore.StaticKey{}, fmt.Errorf("config: key %s: public_key is %d bytes, want %d", k.KeyID, len(raw), ed25519.PublicKeySize)
	}
	return keystore.StaticKey{KeyID: k.KeyID, PublicKey: ed25519.PublicKey(raw)}, nil
}

// Config is the taskserver's full YAML configuration (spec.md section 6).
type Config struct {
	BindAddress string `yaml:"bind_address"`

	TLS struct {
		CA   string `yaml:"ca"`
		Cert string `yaml:"cert"`
		Key  string `yaml:"key"`
	} `yaml:"tls"`

	DataFile string `yaml:"data_file"`

	AuthorizedKeys      []StaticKey `yaml:"authorized_keys"`
	AdminAuthorizedKeys []StaticKey `yaml:"admin_authorized_keys"`

	ReplayWindowSecs int `yaml:"replay_window_secs"`

	Metrics struct {
		Enabled bool `yaml:"enabled"`
		Port    int  `yaml:"port"`
	} `yaml:"metrics"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// defaultReplayWindow is used when replay_window_secs is unset.
const defaultReplayWindow = 5 * time.Minute

// ReplayWindow returns ReplayWindowSecs as a time.Duration, falling back
// to defaultReplayWindow when unset. The value is reported by the status
// command only: envelope verification does not apply it, so an envelope is
// accepted up to its own valid_until_secs however far ahead that lies, and
// the replay cache keeps each nonce until that same deadline.
func (c *Config) ReplayWindow() time.Duration {
	if c.ReplayWindowSecs <= 0 {
		return defaultReplayWindow
	}
	return time.Duration(c.ReplayWindowSecs) * time.Second
}

// Logger builds the slog.Logger runServer uses for the process, from the
// log section: format "text" selects slog.NewTextHandler, anything else
// (including unset) selects slog.NewJSONHandler for production-style
// structured output (SPEC_FULL.md section A). Level is parsed
// case-insensitively and defaults to info when unset or unrecognized.
func (c *Config) Logger() *slog.Logger {
	options := &slog.HandlerOptions{Level: parseLevel(c.Log.Level)}

	var handler slog.Handler
	if strings.EqualFold(c.Log.Format, "text") {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DecodeAuthorizedKeys decodes every configured authorized_keys entry.
func (c *Config) DecodeAuthorizedKeys() ([]keystore.StaticKey, error) {
	return decodeAll(c.AuthorizedKeys)
}

// DecodeAdminAuthorizedKeys decodes every configured admin_authorized_keys entry.
func (c *Config) DecodeAdminAuthorizedKeys() ([]keystore.StaticKey, error) {
	return decodeAll(c.AdminAuthorizedKeys)
}

func decodeAll(keys []StaticKey) ([]keystore.StaticKey, error) {
	out := make([]keystore.StaticKey, 0, len(keys))
	for _, k := range keys {
		decoded, err := k.Decode()
		if err != nil {
			return nil, err
		}
		out = append(out, decoded)
	}
	return out, nil
}

// Load reads and parses path. Missing bind_address or data_file is a
// configuration error surfaced before the server ever binds a socket
// (spec.md section 6, "non-zero for configuration or bind failure").
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if cfg.BindAddress == "" {
		return nil, fmt.Errorf("config: bind_address is required")
	}
	if cfg.DataFile == "" {
		return nil, fmt.Errorf("config: data_file is required")
	}

	return &cfg, nil
}
