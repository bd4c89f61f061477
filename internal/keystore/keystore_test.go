package keystore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutPendingExecutorKeyFirstSeen(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "keys.yaml"), nil, nil)
	require.NoError(t, err)

	err = s.PutPendingExecutorKey("exec-1", []byte{1, 2, 3})
	require.NoError(t, err)

	entry, ok := s.GetExecutorKey("exec-1")
	require.True(t, ok)
	assert.Equal(t, Pending, entry.State)
	assert.Equal(t, []byte{1, 2, 3}, entry.PublicKey)
}

func TestPutPendingExecutorKeyIdenticalIsNoop(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "keys.yaml"), nil, nil)
	require.NoError(t, err)

	require.NoError(t, s.PutPendingExecutorKey("exec-1", []byte{1, 2, 3}))
	require.NoError(t, s.ApproveExecutorKey("exec-1"))

	err = s.PutPendingExecutorKey("exec-1", []byte{1, 2, 3})
	require.NoError(t, err)

	entry, ok := s.GetExecutorKey("exec-1")
	require.True(t, ok)
	assert.Equal(t, Approved, entry.State, "identical key resubmission must not downgrade approval")
}

func TestPutPendingExecutorKeyConflictWhenApproved(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "keys.yaml"), nil, nil)
	require.NoError(t, err)

	require.NoError(t, s.PutPendingExecutorKey("exec-1", []byte{1, 2, 3}))
	require.NoError(t, s.ApproveExecutorKey("exec-1"))

	err = s.PutPendingExecutorKey("exec-1", []byte{9, 9, 9})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestApproveExecutorKeyUnknownFails(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "keys.yaml"), nil, nil)
	require.NoError(t, err)

	err = s.ApproveExecutorKey("ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDropExecutorRemovesEntry(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "keys.yaml"), nil, nil)
	require.NoError(t, err)

	require.NoError(t, s.PutPendingExecutorKey("exec-1", []byte{1}))
	removed, err := s.DropExecutor("exec-1")
	require.NoError(t, err)
	assert.True(t, removed)

	_, ok := s.GetExecutorKey("exec-1")
	assert.False(t, ok)

	removed, err = s.DropExecutor("exec-1")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestPersistenceSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keys.yaml")

	s, err := Open(path, nil, nil)
	require.NoError(t, err)
	require.NoError(t, s.PutPendingExecutorKey("exec-1", []byte{1, 2, 3}))
	require.NoError(t, s.ApproveExecutorKey("exec-1"))

	reopened, err := Open(path, nil, nil)
	require.NoError(t, err)

	entry, ok := reopened.GetExecutorKey("exec-1")
	require.True(t, ok)
	assert.Equal(t, Approved, entry.State)
}

func TestStaticKeysSeedAuthorizedSet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keys.yaml")

	s, err := Open(path, []StaticKey{{KeyID: "cmdr-1", PublicKey: []byte{9}}}, []StaticKey{{KeyID: "admin-1", PublicKey: []byte{7}}})
	require.NoError(t, err)

	k, ok := s.GetAuthorizedKey("cmdr-1")
	require.True(t, ok)
	assert.Equal(t, SourceStatic, k.Source)

	admins := s.ListAdminAuthorizedKeys()
	require.Len(t, admins, 1)
	assert.Equal(t, "admin-1", admins[0].KeyID)

	got, ok := s.GetAdminAuthorizedKey("admin-1")
	require.True(t, ok)
	assert.Equal(t, SourceStatic, got.Source)

	_, ok = s.GetAdminAuthorizedKey("cmdr-1")
	assert.False(t, ok, "the admin set and the command set are disjoint")
}

func TestRevokeAuthorizedKeyRejectsStatic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keys.yaml")

	s, err := Open(path, []StaticKey{{KeyID: "cmdr-1", PublicKey: []byte{9}}}, nil)
	require.NoError(t, err)

	err = s.RevokeAuthorizedKey("cmdr-1")
	assert.Error(t, err)
}

func TestPutAndRevokeApprovedAuthorizedKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keys.yaml")

	s, err := Open(path, nil, nil)
	require.NoError(t, err)

	require.NoError(t, s.PutApprovedAuthorizedKey("new-key", []byte{5, 5}))
	k, ok := s.GetAuthorizedKey("new-key")
	require.True(t, ok)
	assert.Equal(t, SourceApproved, k.Source)

	require.NoError(t, s.RevokeAuthorizedKey("new-key"))
	_, ok = s.GetAuthorizedKey("new-key")
	assert.False(t, ok)
}

func TestOpenRejectsIncompatibleSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keys.yaml")
	require.NoError(t, os.WriteFile(path, []byte("schema_version: 99\n"), 0o600))

	_, err := Open(path, nil, nil)
	assert.ErrorIs(t, err, ErrIncompatibleSchema)
}
