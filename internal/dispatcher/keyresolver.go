package dispatcher

import (
	"crypto/ed25519"

	"github.com/nodefleet/funtonic/internal/keystore"
	"github.com/nodefleet/funtonic/internal/registry"
	"github.com/nodefleet/funtonic/internal/signedpayload"
)

// NewCommandKeyResolver builds the resolver commander LaunchTask envelopes
// are verified against (by internal/rpcserver, before Launch is called).
func NewCommandKeyResolver(ks *keystore.Store, reg *registry.Registry) signedpayload.KeyResolver {
	return commandKeyResolver{keystore: ks, registry: reg}
}

// NewAdminKeyResolver builds the resolver admin RPCs verify against.
func NewAdminKeyResolver(ks *keystore.Store) signedpayload.KeyResolver {
	return adminKeyResolver{keystore: ks}
}

// commandKeyResolver composes the persisted authorized-command key set with
// the live set of keys contributed by currently connected executors (spec.md
// section 9, "Global authorized-keys set": resolved by injected composition
// rather than a global mutable).
type commandKeyResolver struct {
	keystore *keystore.Store
	registry *registry.Registry
}

func (r commandKeyResolver) ResolveKey(keyID string) (ed25519.PublicKey, bool) {
	if k, ok := r.keystore.GetAuthorizedKey(keyID); ok {
		return ed25519.PublicKey(k.PublicKey), true
	}
	return r.registry.ResolveContributedKey(keyID)
}

// adminKeyResolver resolves only against the admin-authorized set; admin
// RPCs never accept a key contributed by a connected executor (spec.md
// section 4.6, "verifies the envelope against the admin authorized keys
// set exclusively").
type adminKeyResolver struct {
	keystore *keystore.Store
}

func (r adminKeyResolver) ResolveKey(keyID string) (ed25519.PublicKey, bool) {
	k, ok := r.keystore.GetAdminAuthorizedKey(keyID)
	if !ok {
		return nil, false
	}
	return ed25519.PublicKey(k.PublicKey), true
}
