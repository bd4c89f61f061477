// Package registry implements the taskserver's connected-executor table:
// the runtime, non-persistent map of client_id to tags, outbound task
// channel, and per-connection contributed authorized keys (spec.md
// section 4.3). Mutations hold the registry's mutex only long enough to
// touch the map; per-connection sends and closes are guarded by each
// Connection's own mutex so a slow executor never blocks registration of
// another one.
package registry

import (
	"crypto/ed25519"
	"sync"

	pb "github.com/nodefleet/funtonic/api/proto/v1"
)

// DefaultOutboundQueueDepth bounds how many undelivered tasks an executor's
// outbound channel holds before it is treated as disconnected for a given
// dispatch (spec.md section 5, "An executor whose outbound channel blocks
// beyond a bounded queue depth is treated as disconnected for that task").
const DefaultOutboundQueueDepth = 64

// Connection is one executor's live registration. Fields other than the
// outbound channel's open/closed state are fixed at Register time; a
// metadata change arrives as a fresh registration, which supersedes this one.
type Connection struct {
	ClientID                  string
	Version                   string
	ProtocolVersion           string
	Tags                      TagTree
	AuthorizedKeysContributed map[string]ed25519.PublicKey

	mu       sync.Mutex
	outbound chan *pb.GetTaskStreamReply
	closed   bool
}

// TrySend enqueues reply without blocking. It reports false when the
// channel is full or already closed — both cases the dispatcher treats as
// "disconnected for this task" (spec.md section 4.5 step 5).
func (c *Connection) TrySend(reply *pb.GetTaskStreamReply) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.outbound <- reply:
		return true
	default:
		return false
	}
}

// Outbound returns the channel the GetTasks stream handler drains. It is
// closed exactly once, either by supersession or by explicit disconnect.
func (c *Connection) Outbound() <-chan *pb.GetTaskStreamReply {
	return c.outbound
}

func (c *Connection) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.outbound)
}

// RegisterInput carries the fields needed to admit a new connection. The
// caller (internal/rpcserver) has already run the key-store checks and
// signature verification from spec.md section 4.3 steps (a)-(e); Register
// only performs step (f): record the connection, superseding any prior one.
type RegisterInput struct {
	ClientID                  string
	Version                   string
	ProtocolVersion           string
	Tags                      TagTree
	AuthorizedKeysContributed map[string]ed25519.PublicKey
}

// View is a JSON-encodable snapshot of one connection, used by admin and
// dispatcher listing operations (spec.md section 4.3, "metadata snapshot").
type View struct {
	ClientID        string  `json:"client_id"`
	Tags            TagTree `json:"tags"`
	Version         string  `json:"version"`
	ProtocolVersion string  `json:"protocol_version"`
}

// Registry is the concurrent map of connected executors, keyed by client_id.
type Registry struct {
	mu          sync.RWMutex
	connections map[string]*Connection
	queueDepth  int
}

// New builds an empty registry. queueDepth <= 0 uses DefaultOutboundQueueDepth.
func New(queueDepth int) *Registry {
	if queueDepth <= 0 {
		queueDepth = DefaultOutboundQueueDepth
	}
	return &Registry{
		connections: make(map[string]*Connection),
		queueDepth:  queueDepth,
	}
}

// Register admits input as the connection of record for its client_id,
// closing and replacing any prior connection for the same client_id
// (spec.md section 3, "a new connection for an existing client_id
// supersedes the prior one"). It returns the new Connection, whose
// Outbound channel the caller streams from.
func (r *Registry) Register(input RegisterInput) *Connection {
	conn := &Connection{
		ClientID:                  input.ClientID,
		Version:                   input.Version,
		ProtocolVersion:           input.ProtocolVersion,
		Tags:                      input.Tags,
		AuthorizedKeysContributed: input.AuthorizedKeysContributed,
		outbound:                  make(chan *pb.GetTaskStreamReply, r.queueDepth),
	}

	r.mu.Lock()
	prev, existed := r.connections[input.ClientID]
	r.connections[input.ClientID] = conn
	r.mu.Unlock()

	if existed {
		prev.close()
	}
	return conn
}

// OnDisconnect removes clientID's connection, closes its outbound channel,
// and returns the authorized keys it had contributed so callers can
// invalidate them (spec.md section 4.3, "on_disconnect"). It reports
// false if clientID was not connected (already superseded or dropped).
func (r *Registry) OnDisconnect(clientID string) (map[string]ed25519.PublicKey, bool) {
	r.mu.Lock()
	conn, ok := r.connections[clientID]
	if ok {
		delete(r.connections, clientID)
	}
	r.mu.Unlock()

	if !ok {
		return nil, false
	}
	conn.close()
	return conn.AuthorizedKeysContributed, true
}

// Get returns the current connection for clientID, if any.
func (r *Registry) Get(clientID string) (*Connection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.connections[clientID]
	return c, ok
}

// Snapshot returns every currently connected executor. Callers must treat
// the slice as a point-in-time view; connections may disconnect concurrently.
func (r *Registry) Snapshot() []*Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Connection, 0, len(r.connections))
	for _, c := range r.connections {
		out = append(out, c)
	}
	return out
}

// ListConnected returns a JSON-friendly view of every connected executor.
func (r *Registry) ListConnected() []View {
	snap := r.Snapshot()
	out := make([]View, 0, len(snap))
	for _, c := range snap {
		out = append(out, View{
			ClientID:        c.ClientID,
			Tags:            c.Tags,
			Version:         c.Version,
			ProtocolVersion: c.ProtocolVersion,
		})
	}
	return out
}

// ResolveContributedKey searches every connected executor's contributed
// authorized keys for keyID. It backs the live half of the "authorized
// keys" resolver described in spec.md section 9 ("Global authorized-keys
// set"): the static keystore.Store covers the persisted half.
func (r *Registry) ResolveContributedKey(keyID string) (ed25519.PublicKey, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.connections {
		if pub, ok := c.AuthorizedKeysContributed[keyID]; ok {
			return pub, true
		}
	}
	return nil, false
}
