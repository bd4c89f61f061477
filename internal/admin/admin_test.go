package admin

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pb "github.com/nodefleet/funtonic/api/proto/v1"
	"github.com/nodefleet/funtonic/internal/dispatcher"
	"github.com/nodefleet/funtonic/internal/keystore"
	"github.com/nodefleet/funtonic/internal/registry"
)

func newTestHandler(t *testing.T) (*Handler, *registry.Registry, *keystore.Store) {
	t.Helper()
	ks, err := keystore.Open(filepath.Join(t.TempDir(), "keys.yaml"), nil, nil)
	require.NoError(t, err)
	reg := registry.New(4)
	disp := dispatcher.New(reg, ks)
	return New(reg, ks, disp), reg, ks
}

func decodeJSON(t *testing.T, resp *pb.AdminRequestResponse, out any) {
	t.Helper()
	require.Empty(t, resp.GetError(), "unexpected error response")
	require.NoError(t, json.Unmarshal([]byte(resp.GetJsonResponse()), out))
}

func TestListConnectedExecutorsFiltersByPredicate(t *testing.T) {
	h, reg, _ := newTestHandler(t)
	reg.Register(registry.RegisterInput{ClientID: "E1", Tags: registry.TagTree{"role": registry.TagValue("db")}})
	reg.Register(registry.RegisterInput{ClientID: "E2", Tags: registry.TagTree{"role": registry.TagValue("web")}})

	resp := h.Handle(&pb.AdminRequest{RequestType: &pb.AdminRequest_ListConnectedExecutors{ListConnectedExecutors: "role:db"}})

	var out map[string]registry.View
	decodeJSON(t, resp, &out)
	require.Len(t, out, 1)
	_, ok := out["E1"]
	assert.True(t, ok)
}

func TestApproveExecutorKeyBatch(t *testing.T) {
	h, _, ks := newTestHandler(t)
	require.NoError(t, ks.PutPendingExecutorKey("exec-1", []byte{1}))
	require.NoError(t, ks.PutPendingExecutorKey("exec-2", []byte{2}))

	resp := h.Handle(&pb.AdminRequest{RequestType: &pb.AdminRequest_ApproveExecutorKey{ApproveExecutorKey: "*"}})
	require.Empty(t, resp.GetError())

	e1, _ := ks.GetExecutorKey("exec-1")
	e2, _ := ks.GetExecutorKey("exec-2")
	assert.Equal(t, keystore.Approved, e1.State)
	assert.Equal(t, keystore.Approved, e2.State)
}

func TestDropExecutorReportsDualRemoval(t *testing.T) {
	h, reg, ks := newTestHandler(t)
	require.NoError(t, ks.PutPendingExecutorKey("E1", []byte{1}))
	reg.Register(registry.RegisterInput{ClientID: "E1", Tags: registry.TagTree{}})

	resp := h.Handle(&pb.AdminRequest{RequestType: &pb.AdminRequest_DropExecutor{DropExecutor: "E1"}})

	var out droppedExecutor
	decodeJSON(t, resp, &out)
	assert.True(t, out.RemovedFromKnown)
	assert.True(t, out.RemovedFromConnected)

	_, connected := reg.Get("E1")
	assert.False(t, connected)
}

func TestListExecutorKeysSplitsByState(t *testing.T) {
	h, _, ks := newTestHandler(t)
	require.NoError(t, ks.PutPendingExecutorKey("pending-1", []byte{1}))
	require.NoError(t, ks.PutPendingExecutorKey("approved-1", []byte{2}))
	require.NoError(t, ks.ApproveExecutorKey("approved-1"))

	resp := h.Handle(&pb.AdminRequest{RequestType: &pb.AdminRequest_ListExecutorKeys{ListExecutorKeys: &pb.Empty{}}})

	var out executorKeysResponse
	decodeJSON(t, resp, &out)
	_, trusted := out.TrustedExecutorKeys["approved-1"]
	_, unapproved := out.UnapprovedExecutorKeys["pending-1"]
	assert.True(t, trusted)
	assert.True(t, unapproved)
}
