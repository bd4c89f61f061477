// Package admin implements the taskserver's Admin RPC (spec.md section
// 4.6): predicate-filtered executor listings, running-task inspection,
// executor removal, and the executor-key approval workflow, all gated on
// the admin-authorized key set.
package admin

import (
	"encoding/json"
	"fmt"

	pb "github.com/nodefleet/funtonic/api/proto/v1"
	"github.com/nodefleet/funtonic/internal/dispatcher"
	"github.com/nodefleet/funtonic/internal/keystore"
	"github.com/nodefleet/funtonic/internal/predicate"
	"github.com/nodefleet/funtonic/internal/registry"
)

// batchApproveAll is the sentinel client_id that approves every pending
// executor key at once (original_source/common/src/task_server/
// commander_service_impl.rs's `client_id == "*"` batch path, not named in
// spec.md but not excluded by it either).
const batchApproveAll = "*"

// Handler serves Admin RPCs against a registry, a keystore, and a dispatcher.
type Handler struct {
	registry   *registry.Registry
	keystore   *keystore.Store
	dispatcher *dispatcher.Dispatcher
}

func New(reg *registry.Registry, ks *keystore.Store, disp *dispatcher.Dispatcher) *Handler {
	return &Handler{registry: reg, keystore: ks, dispatcher: disp}
}

// Handle decodes and executes request, returning the JSON or error variant
// of AdminRequestResponse. Any failure is reported as the error variant;
// a batch approval ("*") that fails part-way keeps the approvals persisted
// before the failure.
func (h *Handler) Handle(request *pb.AdminRequest) *pb.AdminRequestResponse {
	switch req := request.GetRequestType().(type) {
	case *pb.AdminRequest_ListConnectedExecutors:
		return h.listConnectedExecutors(req.ListConnectedExecutors)
	case *pb.AdminRequest_ListKnownExecutors:
		return h.listKnownExecutors(req.ListKnownExecutors)
	case *pb.AdminRequest_ListRunningTasks:
		return jsonResponse(h.dispatcher.ListRunningTasks())
	case *pb.AdminRequest_DropExecutor:
		return h.dropExecutor(req.DropExecutor)
	case *pb.AdminRequest_ListExecutorKeys:
		return h.listExecutorKeys()
	case *pb.AdminRequest_ApproveExecutorKey:
		return h.approveExecutorKey(req.ApproveExecutorKey)
	case *pb.AdminRequest_ListAuthorizedKeys:
		return jsonResponse(h.keystore.ListAuthorizedKeys())
	case *pb.AdminRequest_ListAdminAuthorizedKeys:
		return jsonResponse(h.keystore.ListAdminAuthorizedKeys())
	default:
		return errorResponse(fmt.Errorf("admin: missing request type"))
	}
}

func (h *Handler) listConnectedExecutors(filter string) *pb.AdminRequestResponse {
	snapshot := h.registry.Snapshot()
	out := make(map[string]registry.View, len(snapshot))
	for _, c := range snapshot {
		ok, err := predicate.Match(filter, c.Tags)
		if err != nil {
			return errorResponse(err)
		}
		if ok {
			out[c.ClientID] = registry.View{ClientID: c.ClientID, Tags: c.Tags, Version: c.Version, ProtocolVersion: c.ProtocolVersion}
		}
	}
	return jsonResponse(out)
}

// listKnownExecutors filters the persisted executor-key document, not the
// live registry. Approval entries carry no tag metadata, so every entry is
// matched against an empty tag tree: the wildcard ("*") and negated clauses
// such as "!role:db" return every entry, while any predicate that needs a
// tag to be present matches nothing, since there is nothing to match against
// (documented in DESIGN.md — the original implementation's separate
// executor-metadata database, which does persist tags, has no equivalent
// here).
func (h *Handler) listKnownExecutors(filter string) *pb.AdminRequestResponse {
	entries := h.keystore.ListExecutorKeys()
	out := make(map[string]keystore.ExecutorKeyEntry, len(entries))
	for _, e := range entries {
		ok, err := predicate.Match(filter, registry.TagTree{})
		if err != nil {
			return errorResponse(err)
		}
		if ok {
			out[e.ClientID] = e
		}
	}
	return jsonResponse(out)
}

// droppedExecutor mirrors AdminDroppedExecutorJsonResponse: dropExecutor
// removes both the persisted key entry and the live connection, and
// reports which of the two actually existed.
type droppedExecutor struct {
	ClientID             string `json:"client_id"`
	RemovedFromConnected bool   `json:"removed_from_connected"`
	RemovedFromKnown     bool   `json:"removed_from_known"`
}

func (h *Handler) dropExecutor(clientID string) *pb.AdminRequestResponse {
	removedFromKnown, err := h.keystore.DropExecutor(clientID)
	if err != nil {
		return errorResponse(err)
	}
	_, removedFromConnected := h.registry.OnDisconnect(clientID)
	if removedFromConnected {
		h.dispatcher.OnExecutorDisconnect(clientID)
	}
	return jsonResponse(droppedExecutor{
		ClientID:             clientID,
		RemovedFromConnected: removedFromConnected,
		RemovedFromKnown:     removedFromKnown,
	})
}

type executorKeysResponse struct {
	TrustedExecutorKeys   map[string][]byte `json:"trusted_executor_keys"`
	UnapprovedExecutorKeys map[string][]byte `json:"unapproved_executor_keys"`
}

func (h *Handler) listExecutorKeys() *pb.AdminRequestResponse {
	resp := executorKeysResponse{
		TrustedExecutorKeys:    make(map[string][]byte),
		UnapprovedExecutorKeys: make(map[string][]byte),
	}
	for _, e := range h.keystore.ListExecutorKeys() {
		if e.State == keystore.Approved {
			resp.TrustedExecutorKeys[e.ClientID] = e.PublicKey
		} else {
			resp.UnapprovedExecutorKeys[e.ClientID] = e.PublicKey
		}
	}
	return jsonResponse(resp)
}

func (h *Handler) approveExecutorKey(clientID string) *pb.AdminRequestResponse {
	if clientID == batchApproveAll {
		for _, e := range h.keystore.ListExecutorKeys() {
			if e.State != keystore.Pending {
				continue
			}
			if err := h.keystore.ApproveExecutorKey(e.ClientID); err != nil {
				return errorResponse(err)
			}
		}
		return jsonResponse(struct{}{})
	}
	if err := h.keystore.ApproveExecutorKey(clientID); err != nil {
		return errorResponse(err)
	}
	return jsonResponse(struct{}{})
}

func jsonResponse(v any) *pb.AdminRequestResponse {
	raw, err := json.Marshal(v)
	if err != nil {
		return errorResponse(fmt.Errorf("admin: encode response: %w", err))
	}
	return &pb.AdminRequestResponse{ResponseKind: &pb.AdminRequestResponse_JsonResponse{JsonResponse: string(raw)}}
}

func errorResponse(err error) *pb.AdminRequestResponse {
	return &pb.AdminRequestResponse{ResponseKind: &pb.AdminRequestResponse_Error{Error: err.Error()}}
}
