package rpcserver

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/nodefleet/funtonic/internal/keystore"
	"github.com/nodefleet/funtonic/internal/predicate"
	"github.com/nodefleet/funtonic/internal/signedpayload"
)

// Sentinel errors for the registration steps spec.md section 4.3 names
// that have no equivalent in internal/signedpayload or internal/keystore.
var (
	// ErrPendingApproval is returned when an executor key exists but has
	// not yet been approved, or is being persisted as Pending for the
	// first time.
	ErrPendingApproval = errors.New("rpcserver: executor key pending approval")
	// ErrKeyMismatch is returned when a connecting executor presents a
	// different public key than the one on file for its client_id.
	ErrKeyMismatch = errors.New("rpcserver: executor key mismatch")
	// ErrMissingPayload is returned when a required SignedPayload field
	// is absent from the request.
	ErrMissingPayload = errors.New("rpcserver: missing signed payload")
	// ErrProtocolVersionMismatch is returned on a client_protocol_version
	// disagreement (SPEC_FULL.md section D.5).
	ErrProtocolVersionMismatch = errors.New("rpcserver: protocol version mismatch")
)

// toStatus translates a domain error into the gRPC status spec.md section
// 7's error table calls for. It is the only place in this repository that
// translates domain errors into gRPC codes.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, signedpayload.ErrUnknownKey):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, signedpayload.ErrInvalidSignature):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, signedpayload.ErrExpired):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, signedpayload.ErrReplay):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, ErrPendingApproval):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, ErrKeyMismatch):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, ErrProtocolVersionMismatch):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, ErrMissingPayload):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, keystore.ErrConflict):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, keystore.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		var parseErr *predicate.ParseError
		if errors.As(err, &parseErr) {
			return status.Error(codes.InvalidArgument, err.Error())
		}
		return status.Error(codes.Internal, err.Error())
	}
}
