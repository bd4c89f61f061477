package registry

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	pb "github.com/nodefleet/funtonic/api/proto/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndGet(t *testing.T) {
	r := New(4)
	conn := r.Register(RegisterInput{ClientID: "exec-1", Version: "1.0", ProtocolVersion: "v1", Tags: TagTree{"role": TagValue("db")}})
	require.NotNil(t, conn)

	got, ok := r.Get("exec-1")
	require.True(t, ok)
	assert.Same(t, conn, got)
}

func TestRegisterSupersedesPriorConnection(t *testing.T) {
	r := New(4)
	first := r.Register(RegisterInput{ClientID: "exec-1"})
	second := r.Register(RegisterInput{ClientID: "exec-1"})

	_, ok := <-first.Outbound()
	assert.False(t, ok, "prior connection's outbound channel must be closed on supersession")

	got, _ := r.Get("exec-1")
	assert.Same(t, second, got)
}

func TestOnDisconnectRemovesAndReturnsContributedKeys(t *testing.T) {
	r := New(4)
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	r.Register(RegisterInput{
		ClientID:                  "exec-1",
		AuthorizedKeysContributed: map[string]ed25519.PublicKey{"cmd-key": pub},
	})

	withdrawn, ok := r.OnDisconnect("exec-1")
	assert.True(t, ok)
	assert.Equal(t, pub, withdrawn["cmd-key"])

	_, ok = r.Get("exec-1")
	assert.False(t, ok)
}

func TestOnDisconnectUnknownClient(t *testing.T) {
	r := New(4)
	_, ok := r.OnDisconnect("ghost")
	assert.False(t, ok)
}

func TestTrySendRespectsBoundedQueue(t *testing.T) {
	r := New(1)
	conn := r.Register(RegisterInput{ClientID: "exec-1"})

	ok := conn.TrySend(&pb.GetTaskStreamReply{TaskId: "t1"})
	assert.True(t, ok)

	ok = conn.TrySend(&pb.GetTaskStreamReply{TaskId: "t2"})
	assert.False(t, ok, "second send should fail once the bounded queue is full")
}

func TestTrySendAfterCloseFails(t *testing.T) {
	r := New(4)
	conn := r.Register(RegisterInput{ClientID: "exec-1"})
	r.OnDisconnect("exec-1")

	ok := conn.TrySend(&pb.GetTaskStreamReply{TaskId: "t1"})
	assert.False(t, ok)
}

func TestListConnectedSnapshot(t *testing.T) {
	r := New(4)
	r.Register(RegisterInput{ClientID: "exec-1", Tags: TagTree{"role": TagValue("db")}})
	r.Register(RegisterInput{ClientID: "exec-2", Tags: TagTree{"role": TagValue("web")}})

	views := r.ListConnected()
	assert.Len(t, views, 2)
}

func TestResolveContributedKey(t *testing.T) {
	r := New(4)
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	r.Register(RegisterInput{
		ClientID:                  "exec-1",
		AuthorizedKeysContributed: map[string]ed25519.PublicKey{"contributed-1": pub},
	})

	got, ok := r.ResolveContributedKey("contributed-1")
	require.True(t, ok)
	assert.Equal(t, pub, got)

	_, ok = r.ResolveContributedKey("missing")
	assert.False(t, ok)
}
