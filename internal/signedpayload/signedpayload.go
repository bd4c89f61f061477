// Package signedpayload implements the sign/verify substrate every
// funtonic peer shares: a nonce + expiry protected envelope whose
// signature covers payload||nonce||valid_until_secs (spec.md section 4.1).
package signedpayload

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	pb "github.com/nodefleet/funtonic/api/proto/v1"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/protoadapt"
)

// legacyMessage is the classic protoc-gen-go v1 marker interface our
// hand-shaped message types implement (see api/proto/v1/messages.go).
type legacyMessage = protoadapt.MessageV1

func marshal(m legacyMessage) ([]byte, error) {
	return proto.Marshal(protoadapt.MessageV2Of(m))
}

func unmarshal(raw []byte, m legacyMessage) error {
	return proto.Unmarshal(raw, protoadapt.MessageV2Of(m))
}

var (
	// ErrUnknownKey is returned when key_id cannot be resolved to a public key.
	ErrUnknownKey = errors.New("signedpayload: unknown key")
	// ErrInvalidSignature is returned on any signature mismatch.
	ErrInvalidSignature = errors.New("signedpayload: invalid signature")
	// ErrExpired is returned when valid_until_secs has already passed.
	ErrExpired = errors.New("signedpayload: expired")
	// ErrReplay is returned when (key_id, nonce) has already been observed.
	ErrReplay = errors.New("signedpayload: replay")
)

// KeyResolver resolves a key_id to the ed25519 public key that must verify
// the envelope's signature. The commander resolver
// (dispatcher.NewCommandKeyResolver) composes the static store with a live
// view of the connected-executor registry (spec.md section 9, "Global
// authorized-keys set"); the admin and executor resolvers each consult a
// single key set.
type KeyResolver interface {
	ResolveKey(keyID string) (ed25519.PublicKey, bool)
}

// KeyResolverFunc adapts a function to a KeyResolver.
type KeyResolverFunc func(keyID string) (ed25519.PublicKey, bool)

func (f KeyResolverFunc) ResolveKey(keyID string) (ed25519.PublicKey, bool) { return f(keyID) }

// SignedRegion returns the exact byte sequence the signature must cover:
// payload || nonce(LE uint64) || valid_until_secs(LE uint64).
func SignedRegion(payload []byte, nonce, validUntilSecs uint64) []byte {
	buf := make([]byte, len(payload)+16)
	n := copy(buf, payload)
	binary.LittleEndian.PutUint64(buf[n:], nonce)
	binary.LittleEndian.PutUint64(buf[n+8:], validUntilSecs)
	return buf
}

// Sign encodes and signs payload, returning a fresh envelope valid for ttl.
func Sign(payload legacyMessage, private ed25519.PrivateKey, keyID string, ttl time.Duration) (*pb.SignedPayload, error) {
	raw, err := marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("signedpayload: encode payload: %w", err)
	}

	var nonceBytes [8]byte
	if _, err := rand.Read(nonceBytes[:]); err != nil {
		return nil, fmt.Errorf("signedpayload: generate nonce: %w", err)
	}
	nonce := binary.LittleEndian.Uint64(nonceBytes[:])
	validUntil := uint64(time.Now().Add(ttl).Unix())

	sig := ed25519.Sign(private, SignedRegion(raw, nonce, validUntil))

	return &pb.SignedPayload{
		Payload:        raw,
		Nonce:          nonce,
		ValidUntilSecs: validUntil,
		Signature:      sig,
		KeyId:          keyID,
	}, nil
}

// Verify resolves the envelope's key, checks the signature in constant
// time, rejects expired envelopes, and records (key_id, nonce) in the
// replay cache. out receives the decoded payload on success.
func Verify(envelope *pb.SignedPayload, resolver KeyResolver, cache *ReplayCache, now time.Time, out legacyMessage) error {
	pub, ok := resolver.ResolveKey(envelope.GetKeyId())
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, envelope.GetKeyId())
	}

	region := SignedRegion(envelope.GetPayload(), envelope.GetNonce(), envelope.GetValidUntilSecs())
	if !ed25519.Verify(pub, region, envelope.GetSignature()) {
		return fmt.Errorf("%w: key %s", ErrInvalidSignature, envelope.GetKeyId())
	}

	if uint64(now.Unix()) > envelope.GetValidUntilSecs() {
		return fmt.Errorf("%w: valid until %d, now %d", ErrExpired, envelope.GetValidUntilSecs(), now.Unix())
	}

	if cache != nil {
		if !cache.InsertIfAbsent(envelope.GetKeyId(), envelope.GetNonce(), envelope.GetValidUntilSecs(), uint64(now.Unix())) {
			return fmt.Errorf("%w: key %s nonce %d", ErrReplay, envelope.GetKeyId(), envelope.GetNonce())
		}
	}

	if out != nil {
		if err := unmarshal(envelope.GetPayload(), out); err != nil {
			return fmt.Errorf("signedpayload: decode payload: %w", err)
		}
	}
	return nil
}

// GenerateKey generates a fresh ed25519 key pair for a new identity.
func GenerateKey() (ed25519.PublicKey, ed25519.PrivateKey, error) {
	return ed25519.GenerateKey(rand.Reader)
}
