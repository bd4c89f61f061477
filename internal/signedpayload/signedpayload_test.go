package signedpayload

import (
	"crypto/ed25519"
	"testing"
	"time"

	pb "github.com/nodefleet/funtonic/api/proto/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	pub, priv, err := GenerateKey()
	require.NoError(t, err)

	payload := &pb.GetTasksRequest{ClientId: "exec-1", ClientVersion: "1.0.0"}
	envelope, err := Sign(payload, priv, "exec-1", time.Minute)
	require.NoError(t, err)

	resolver := KeyResolverFunc(func(keyID string) (ed25519.PublicKey, bool) {
		if keyID == "exec-1" {
			return pub, true
		}
		return nil, false
	})

	var out pb.GetTasksRequest
	err = Verify(envelope, resolver, NewReplayCache(), time.Now(), &out)
	require.NoError(t, err)
	assert.Equal(t, "exec-1", out.ClientId)
}

func TestVerifyUnknownKey(t *testing.T) {
	_, priv, err := GenerateKey()
	require.NoError(t, err)

	payload := &pb.Empty{}
	envelope, err := Sign(payload, priv, "ghost", time.Minute)
	require.NoError(t, err)

	resolver := KeyResolverFunc(func(string) (ed25519.PublicKey, bool) { return nil, false })
	err = Verify(envelope, resolver, NewReplayCache(), time.Now(), nil)
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	pub, priv, err := GenerateKey()
	require.NoError(t, err)

	envelope, err := Sign(&pb.Empty{}, priv, "exec-1", time.Minute)
	require.NoError(t, err)
	envelope.Payload = append(envelope.Payload, 0xFF)

	resolver := KeyResolverFunc(func(string) (ed25519.PublicKey, bool) { return pub, true })
	err = Verify(envelope, resolver, NewReplayCache(), time.Now(), nil)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyRejectsExpired(t *testing.T) {
	pub, priv, err := GenerateKey()
	require.NoError(t, err)

	envelope, err := Sign(&pb.Empty{}, priv, "exec-1", time.Millisecond)
	require.NoError(t, err)

	resolver := KeyResolverFunc(func(string) (ed25519.PublicKey, bool) { return pub, true })
	future := time.Now().Add(time.Hour)
	err = Verify(envelope, resolver, NewReplayCache(), future, nil)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerifyRejectsReplay(t *testing.T) {
	pub, priv, err := GenerateKey()
	require.NoError(t, err)

	envelope, err := Sign(&pb.Empty{}, priv, "exec-1", time.Minute)
	require.NoError(t, err)

	resolver := KeyResolverFunc(func(string) (ed25519.PublicKey, bool) { return pub, true })
	cache := NewReplayCache()
	now := time.Now()

	require.NoError(t, Verify(envelope, resolver, cache, now, nil))
	err = Verify(envelope, resolver, cache, now, nil)
	assert.ErrorIs(t, err, ErrReplay)
}

func TestReplayCacheEvictsExpiredEntries(t *testing.T) {
	cache := NewReplayCache()

	inserted := cache.InsertIfAbsent("key-a", 1, 100, 50)
	assert.True(t, inserted)

	// Same nonce again before the entry's own expiry: rejected as a replay.
	inserted = cache.InsertIfAbsent("key-a", 1, 100, 90)
	assert.False(t, inserted)

	// Once "now" passes the entry's validUntilSecs, the slot is reusable.
	inserted = cache.InsertIfAbsent("key-a", 1, 200, 150)
	assert.True(t, inserted)
}

func TestReplayCacheDistinguishesNoncesAndKeys(t *testing.T) {
	cache := NewReplayCache()

	assert.True(t, cache.InsertIfAbsent("key-a", 1, 100, 0))
	assert.True(t, cache.InsertIfAbsent("key-a", 2, 100, 0))
	assert.True(t, cache.InsertIfAbsent("key-b", 1, 100, 0))
	assert.False(t, cache.InsertIfAbsent("key-a", 1, 100, 0))
}
