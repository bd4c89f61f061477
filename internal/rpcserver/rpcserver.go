// Package rpcserver adapts internal/dispatcher, internal/admin,
// internal/registry, and internal/keystore into the two gRPC service
// contracts funtonic peers speak: ExecutorService and CommanderService.
// Every domain error is translated into a gRPC status here; the packages
// underneath speak in plain Go errors and sentinel values.
package rpcserver

import (
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	pb "github.com/nodefleet/funtonic/api/proto/v1"
	"github.com/nodefleet/funtonic/internal/admin"
	"github.com/nodefleet/funtonic/internal/dispatcher"
	"github.com/nodefleet/funtonic/internal/keystore"
	"github.com/nodefleet/funtonic/internal/metrics"
	"github.com/nodefleet/funtonic/internal/predicate"
	"github.com/nodefleet/funtonic/internal/registry"
	"github.com/nodefleet/funtonic/internal/signedpayload"
)

// ProtocolVersion is the client_protocol_version every executor must
// present (SPEC_FULL.md section D.5).
const ProtocolVersion = "1"

// Server implements pb.ExecutorServiceServer and pb.CommanderServiceServer
// over a shared registry, keystore, dispatcher, and admin handler.
type Server struct {
	pb.UnimplementedExecutorServiceServer
	pb.UnimplementedCommanderServiceServer

	registry    *registry.Registry
	keystore    *keystore.Store
	dispatcher  *dispatcher.Dispatcher
	admin       *admin.Handler
	replayCache *signedpayload.ReplayCache
	logger      *slog.Logger
	metrics     *metrics.Collector
}

// New wires the four core components into a Server. replayCache is shared
// across both service implementations, since it dedupes on (key_id, nonce)
// regardless of which RPC carried the envelope. metricsCollector may be nil,
// in which case metrics recording is a no-op.
func New(reg *registry.Registry, ks *keystore.Store, disp *dispatcher.Dispatcher, adminHandler *admin.Handler, replayCache *signedpayload.ReplayCache, logger *slog.Logger, metricsCollector *metrics.Collector) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{registry: reg, keystore: ks, dispatcher: disp, admin: adminHandler, replayCache: replayCache, logger: logger, metrics: metricsCollector}
}

func (s *Server) recordVerify(result metrics.VerifyResult) {
	if s.metrics != nil {
		s.metrics.RecordVerify(result)
	}
}

func (s *Server) recordDispatch(result metrics.DispatchResult) {
	if s.metrics != nil {
		s.metrics.RecordDispatch(result)
	}
}

func verifyResultFor(err error) metrics.VerifyResult {
	switch {
	case err == nil:
		return metrics.VerifyOK
	case errors.Is(err, signedpayload.ErrUnknownKey):
		return metrics.VerifyUnknown
	case errors.Is(err, signedpayload.ErrInvalidSignature):
		return metrics.VerifyBadSig
	case errors.Is(err, signedpayload.ErrExpired):
		return metrics.VerifyExpired
	case errors.Is(err, signedpayload.ErrReplay):
		return metrics.VerifyReplay
	default:
		return metrics.VerifyBadSig
	}
}

// GetTasks implements spec.md section 4.3's register algorithm and then
// drains the resulting connection's outbound channel into the stream.
func (s *Server) GetTasks(req *pb.RegisterExecutorRequest, stream pb.ExecutorService_GetTasksServer) error {
	clientID := req.GetClientId()
	envelope := req.GetGetTasksRequest()
	if envelope == nil {
		return toStatus(ErrMissingPayload)
	}

	// Step (a): the inner envelope's key_id must name this same client.
	if envelope.GetKeyId() != clientID {
		return toStatus(fmt.Errorf("%w: envelope key_id %q does not match client_id %q", ErrKeyMismatch, envelope.GetKeyId(), clientID))
	}

	entry, known := s.keystore.GetExecutorKey(clientID)
	switch {
	case !known:
		// Step (b): first sighting, persist Pending and reject.
		if err := s.keystore.PutPendingExecutorKey(clientID, ed25519.PublicKey(req.GetPublicKey())); err != nil {
			return toStatus(err)
		}
		return toStatus(fmt.Errorf("%w: client %s", ErrPendingApproval, clientID))
	case !bytesEqual(entry.PublicKey, req.GetPublicKey()):
		// Step (c).
		return toStatus(fmt.Errorf("%w: client %s", ErrKeyMismatch, clientID))
	case entry.State == keystore.Pending:
		// Step (d).
		return toStatus(fmt.Errorf("%w: client %s", ErrPendingApproval, clientID))
	}

	// Step (e): verify the inner GetTasksRequest against the stored key.
	resolver := signedpayload.KeyResolverFunc(func(keyID string) (ed25519.PublicKey, bool) {
		if keyID != clientID {
			return nil, false
		}
		return ed25519.PublicKey(entry.PublicKey), true
	})
	var tasksRequest pb.GetTasksRequest
	err := signedpayload.Verify(envelope, resolver, s.replayCache, time.Now(), &tasksRequest)
	s.recordVerify(verifyResultFor(err))
	if err != nil {
		return toStatus(err)
	}
	if tasksRequest.GetClientProtocolVersion() != ProtocolVersion {
		return toStatus(fmt.Errorf("%w: client %s sent %q, want %q", ErrProtocolVersionMismatch, clientID, tasksRequest.GetClientProtocolVersion(), ProtocolVersion))
	}

	// Steps (f)-(g).
	conn := s.registry.Register(registry.RegisterInput{
		ClientID:                  clientID,
		Version:                   tasksRequest.GetClientVersion(),
		ProtocolVersion:           tasksRequest.GetClientProtocolVersion(),
		Tags:                      registry.TagTreeFromProto(tasksRequest.GetTags()),
		AuthorizedKeysContributed: contributedKeys(req.GetAuthorizedKeys()),
	})
	s.logger.Info("executor connected", "client_id", clientID, "tags", tasksRequest.GetTags())

	defer func() {
		// A superseding registration already closed this connection; only
		// remove the registry entry while it is still this one.
		if current, ok := s.registry.Get(clientID); ok && current == conn {
			s.registry.OnDisconnect(clientID)
		}
		s.dispatcher.OnExecutorDisconnect(clientID)
		s.logger.Info("executor disconnected", "client_id", clientID)
	}()

	for reply := range conn.Outbound() {
		if err := stream.Send(reply); err != nil {
			return toStatus(err)
		}
	}
	return nil
}

// TaskExecution implements the executor's uplink half of spec.md section
// 4.7: each SignedPayload is verified against the sending executor's own
// approved key, then handed to the dispatcher's result router.
func (s *Server) TaskExecution(stream pb.ExecutorService_TaskExecutionServer) error {
	resolver := signedpayload.KeyResolverFunc(func(keyID string) (ed25519.PublicKey, bool) {
		entry, ok := s.keystore.GetExecutorKey(keyID)
		if !ok || entry.State != keystore.Approved {
			return nil, false
		}
		return ed25519.PublicKey(entry.PublicKey), true
	})

	for {
		envelope, err := stream.Recv()
		if err == io.EOF {
			return stream.SendAndClose(&pb.Empty{})
		}
		if err != nil {
			return toStatus(err)
		}

		var result pb.TaskExecutionResult
		verifyErr := signedpayload.Verify(envelope, resolver, s.replayCache, time.Now(), &result)
		s.recordVerify(verifyResultFor(verifyErr))
		if verifyErr != nil {
			s.logger.Warn("rejected task execution result", "key_id", envelope.GetKeyId(), "error", verifyErr)
			continue
		}
		s.dispatcher.HandleResult(&result)
	}
}

// LaunchTask implements spec.md section 4.5 step 1's dual-verification:
// every envelope must verify against the union authorized-command set,
// and authorizeKey/revokeKey payloads must additionally verify against
// the admin-authorized set before dispatch proceeds.
func (s *Server) LaunchTask(req *pb.LaunchTaskRequest, stream pb.CommanderService_LaunchTaskServer) error {
	envelope := req.GetPayload()
	if envelope == nil {
		return toStatus(ErrMissingPayload)
	}

	var payload pb.LaunchTaskRequestPayload
	commandResolver := dispatcher.NewCommandKeyResolver(s.keystore, s.registry)
	verifyErr := signedpayload.Verify(envelope, commandResolver, s.replayCache, time.Now(), &payload)
	s.recordVerify(verifyResultFor(verifyErr))
	if verifyErr != nil {
		s.recordDispatch(metrics.DispatchUnauthorized)
		return toStatus(verifyErr)
	}

	switch payload.GetTask().(type) {
	case *pb.LaunchTaskRequestPayload_AuthorizeKey, *pb.LaunchTaskRequestPayload_RevokeKey:
		// Re-verify signature and freshness against the admin set; the
		// replay cache is not consulted again since this is the same
		// envelope already admitted once above (spec.md section 9's key
		// manipulation must be signed by an admin key, on top of being in
		// the general authorized set).
		adminResolver := dispatcher.NewAdminKeyResolver(s.keystore)
		if err := signedpayload.Verify(envelope, adminResolver, nil, time.Now(), nil); err != nil {
			s.recordDispatch(metrics.DispatchUnauthorized)
			return toStatus(fmt.Errorf("key manipulation requires an admin key: %w", err))
		}
	}

	taskID, responses, err := s.dispatcher.Launch(&payload, req.GetPredicate(), envelope)
	if err != nil {
		var parseErr *predicate.ParseError
		if errors.As(err, &parseErr) {
			s.recordDispatch(metrics.DispatchPredicateErr)
		} else {
			s.recordDispatch(metrics.DispatchUnauthorized)
		}
		return toStatus(err)
	}

	ctx := stream.Context()
	matched := false
	for {
		select {
		case <-ctx.Done():
			// PeerGone: the commander went away before every matched
			// executor reached a terminal state. Local cleanup only, no
			// error surfaced (spec.md section 7's PeerGone row).
			s.dispatcher.Cancel(taskID)
			return toStatus(ctx.Err())
		case resp, open := <-responses:
			if !open {
				if matched {
					s.recordDispatch(metrics.DispatchOK)
				} else {
					s.recordDispatch(metrics.DispatchNoMatch)
				}
				return nil
			}
			if _, ok := resp.GetTaskResponse().(*pb.LaunchTaskResponse_MatchingExecutors); ok {
				matched = len(resp.GetMatchingExecutors().ClientId) > 0
			}
			if err := stream.Send(resp); err != nil {
				s.dispatcher.Cancel(taskID)
				return toStatus(err)
			}
		}
	}
}

// Admin implements spec.md section 4.6.
func (s *Server) Admin(ctx context.Context, envelope *pb.SignedPayload) (*pb.AdminRequestResponse, error) {
	var request pb.AdminRequest
	resolver := dispatcher.NewAdminKeyResolver(s.keystore)
	err := signedpayload.Verify(envelope, resolver, s.replayCache, time.Now(), &request)
	s.recordVerify(verifyResultFor(err))
	if err != nil {
		return nil, toStatus(err)
	}
	return s.admin.Handle(&request), nil
}

func contributedKeys(raw map[string][]byte) map[string]ed25519.PublicKey {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]ed25519.PublicKey, len(raw))
	for k, v := range raw {
		out[k] = ed25519.PublicKey(v)
	}
	return out
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
