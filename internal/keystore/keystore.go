// Package keystore implements the taskserver's persistent document store:
// the executor key registry (pending/approved) and the static authorized
// and admin-authorized key sets (spec.md section 4.2). The whole document
// is rewritten atomically (write-to-temp + rename) after every mutation,
// the same pattern the teacher repo uses for its job-queue snapshot.
package keystore

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const schemaVersion = 1

var (
	// ErrNotFound is returned when no executor key entry exists for a client_id.
	ErrNotFound = errors.New("keystore: not found")
	// ErrConflict is returned when a different key is already stored and approved.
	ErrConflict = errors.New("keystore: conflicting key already approved")
	// ErrIncompatibleSchema is returned when an on-disk document carries an
	// unrecognized schema_version; no migration is attempted (spec.md section 4.2).
	ErrIncompatibleSchema = errors.New("keystore: incompatible schema version")
)

// ApprovalState is the executor key lifecycle state.
type ApprovalState string

const (
	Pending  ApprovalState = "pending"
	Approved ApprovalState = "approved"
)

// KeySource records why a key is in the authorized set.
type KeySource string

const (
	SourceStatic       KeySource = "static"
	SourceFromExecutor KeySource = "from_executor"
	SourceApproved     KeySource = "approved"
)

// ExecutorKeyEntry is the persisted record for one executor identity.
type ExecutorKeyEntry struct {
	ClientID    string        `yaml:"client_id"`
	PublicKey   []byte        `yaml:"public_key"`
	State       ApprovalState `yaml:"state"`
	FirstSeenAt time.Time     `yaml:"first_seen_at"`
	ApprovedAt  *time.Time    `yaml:"approved_at,omitempty"`
}

// AuthorizedKey is an entry in either the authorized-command or
// admin-authorized key sets.
type AuthorizedKey struct {
	KeyID     string    `yaml:"key_id"`
	PublicKey []byte    `yaml:"public_key"`
	Source    KeySource `yaml:"source"`
	// ClientID is set when Source == SourceFromExecutor.
	ClientID string `yaml:"client_id,omitempty"`
}

type document struct {
	SchemaVersion       int                         `yaml:"schema_version"`
	ExecutorKeys        map[string]ExecutorKeyEntry `yaml:"executor_keys"`
	AuthorizedKeys       map[string]AuthorizedKey    `yaml:"authorized_keys"`
	AdminAuthorizedKeys map[string]AuthorizedKey    `yaml:"admin_authorized_keys"`
}

func emptyDocument() document {
	return document{
		SchemaVersion:       schemaVersion,
		ExecutorKeys:        make(map[string]ExecutorKeyEntry),
		AuthorizedKeys:       make(map[string]AuthorizedKey),
		AdminAuthorizedKeys: make(map[string]AuthorizedKey),
	}
}

// Store is the taskserver's single-writer, many-reader key document,
// guarded by one mutex and flushed to disk after every mutation.
type Store struct {
	mu   sync.RWMutex
	path string
	doc  document
}

// StaticKey seeds the authorized or admin-authorized set from configuration.
type StaticKey struct {
	KeyID     string
	PublicKey ed25519.PublicKey
}

// Open loads path if it exists, or starts from an empty document on first
// boot (spec.md section 4.2: "on load, the file is treated as authoritative
// and no migration is attempted"). staticKeys/staticAdminKeys seed the
// corresponding sets every time the server starts, overwriting whatever
// was persisted for the same key_id so configuration stays authoritative
// for statically-sourced keys.
func Open(path string, staticKeys, staticAdminKeys []StaticKey) (*Store, error) {
	s := &Store{path: path, doc: emptyDocument()}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		var doc document
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("keystore: decode %s: %w", path, err)
		}
		if doc.SchemaVersion != schemaVersion {
			return nil, fmt.Errorf("%w: got %d, want %d", ErrIncompatibleSchema, doc.SchemaVersion, schemaVersion)
		}
		if doc.ExecutorKeys == nil {
			doc.ExecutorKeys = make(map[string]ExecutorKeyEntry)
		}
		if doc.AuthorizedKeys == nil {
			doc.AuthorizedKeys = make(map[string]AuthorizedKey)
		}
		if doc.AdminAuthorizedKeys == nil {
			doc.AdminAuthorizedKeys = make(map[string]AuthorizedKey)
		}
		s.doc = doc
	case os.IsNotExist(err):
		// First boot: start empty, persisted on the first mutation.
	default:
		return nil, fmt.Errorf("keystore: read %s: %w", path, err)
	}

	for _, k := range staticKeys {
		s.doc.AuthorizedKeys[k.KeyID] = AuthorizedKey{KeyID: k.KeyID, PublicKey: k.PublicKey, Source: SourceStatic}
	}
	for _, k := range staticAdminKeys {
		s.doc.AdminAuthorizedKeys[k.KeyID] = AuthorizedKey{KeyID: k.KeyID, PublicKey: k.PublicKey, Source: SourceStatic}
	}

	if len(staticKeys) > 0 || len(staticAdminKeys) > 0 {
		if err := s.persistLocked(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// persistLocked writes the document atomically: marshal, write to a
// sibling temp file, rename over the target. Caller must hold s.mu.
func (s *Store) persistLocked() error {
	raw, err := yaml.Marshal(s.doc)
	if err != nil {
		return fmt.Errorf("keystore: encode: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("keystore: mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(tmpPath, raw, 0o600); err != nil {
		return fmt.Errorf("keystore: write temp %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("keystore: rename %s: %w", tmpPath, err)
	}
	return nil
}

// GetExecutorKey returns the stored entry for client_id, if any.
func (s *Store) GetExecutorKey(clientID string) (ExecutorKeyEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.doc.ExecutorKeys[clientID]
	return e, ok
}

// PutPendingExecutorKey records a first-seen executor key as Pending. A
// re-registration with the identical key is a no-op; a different key
// while the stored one is Approved fails with ErrConflict (spec.md
// section 4.2). A different key while the stored one is still Pending
// overwrites it — there is nothing to conflict with yet, since no
// commander has approved anything for this client_id (documented open
// question resolution in DESIGN.md).
func (s *Store) PutPendingExecutorKey(clientID string, publicKey ed25519.PublicKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.doc.ExecutorKeys[clientID]
	if ok && bytesEqual(existing.PublicKey, publicKey) {
		return nil
	}
	if ok && existing.State == Approved {
		return fmt.Errorf("%w: client %s", ErrConflict, clientID)
	}

	s.doc.ExecutorKeys[clientID] = ExecutorKeyEntry{
		ClientID:    clientID,
		PublicKey:   append([]byte(nil), publicKey...),
		State:       Pending,
		FirstSeenAt: time.Now(),
	}
	return s.persistLocked()
}

// ApproveExecutorKey transitions a pending entry to Approved.
func (s *Store) ApproveExecutorKey(clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.doc.ExecutorKeys[clientID]
	if !ok {
		return fmt.Errorf("%w: client %s", ErrNotFound, clientID)
	}
	now := time.Now()
	e.State = Approved
	e.ApprovedAt = &now
	s.doc.ExecutorKeys[clientID] = e
	return s.persistLocked()
}

// DropExecutor removes the persisted entry for client_id. It reports
// whether an entry was actually removed.
func (s *Store) DropExecutor(clientID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.doc.ExecutorKeys[clientID]; !ok {
		return false, nil
	}
	delete(s.doc.ExecutorKeys, clientID)
	return true, s.persistLocked()
}

// ListExecutorKeys returns a snapshot of all persisted executor key entries.
func (s *Store) ListExecutorKeys() []ExecutorKeyEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ExecutorKeyEntry, 0, len(s.doc.ExecutorKeys))
	for _, e := range s.doc.ExecutorKeys {
		out = append(out, e)
	}
	return out
}

// GetAuthorizedKey resolves a key_id against the statically configured and
// approved-derived authorized set. It does not see per-executor-contributed
// keys; internal/dispatcher's command key resolver layers those on top
// through internal/registry.
func (s *Store) GetAuthorizedKey(keyID string) (AuthorizedKey, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	k, ok := s.doc.AuthorizedKeys[keyID]
	return k, ok
}

// ListAuthorizedKeys returns a snapshot of the persisted authorized-command
// key set: statically configured keys plus keys added through
// PutApprovedAuthorizedKey.
func (s *Store) ListAuthorizedKeys() []AuthorizedKey {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]AuthorizedKey, 0, len(s.doc.AuthorizedKeys))
	for _, k := range s.doc.AuthorizedKeys {
		out = append(out, k)
	}
	return out
}

// GetAdminAuthorizedKey resolves a key_id against the admin-authorized set.
func (s *Store) GetAdminAuthorizedKey(keyID string) (AuthorizedKey, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	k, ok := s.doc.AdminAuthorizedKeys[keyID]
	return k, ok
}

// ListAdminAuthorizedKeys returns a snapshot of the admin-authorized key set.
func (s *Store) ListAdminAuthorizedKeys() []AuthorizedKey {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]AuthorizedKey, 0, len(s.doc.AdminAuthorizedKeys))
	for _, k := range s.doc.AdminAuthorizedKeys {
		out = append(out, k)
	}
	return out
}

// PutApprovedAuthorizedKey records an executor-authorized key gained
// through the authorizeKey admin flow (spec.md section 9, "Supplemented
// features" D.2): persisted with Source=SourceApproved so it survives
// restarts, distinct from per-connection SourceFromExecutor contributions.
func (s *Store) PutApprovedAuthorizedKey(keyID string, publicKey ed25519.PublicKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.AuthorizedKeys[keyID] = AuthorizedKey{KeyID: keyID, PublicKey: append([]byte(nil), publicKey...), Source: SourceApproved}
	return s.persistLocked()
}

// RevokeAuthorizedKey removes a previously approved authorized key. Static
// keys (Source == SourceStatic) cannot be revoked through this path; they
// are only changed by editing configuration.
func (s *Store) RevokeAuthorizedKey(keyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k, ok := s.doc.AuthorizedKeys[keyID]
	if !ok {
		return fmt.Errorf("%w: key %s", ErrNotFound, keyID)
	}
	if k.Source == SourceStatic {
		return fmt.Errorf("keystore: cannot revoke statically configured key %s", keyID)
	}
	delete(s.doc.AuthorizedKeys, keyID)
	return s.persistLocked()
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
