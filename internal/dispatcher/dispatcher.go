// Package dispatcher implements the taskserver's command fan-out and
// result fan-in: LaunchTaskRequest handling (spec.md section 4.5) and the
// TaskExecutionResult uplink (spec.md section 4.7), joined through a shared
// index of in-flight tasks.
package dispatcher

import (
	"crypto/ed25519"
	"fmt"
	"sync"

	"github.com/google/uuid"

	pb "github.com/nodefleet/funtonic/api/proto/v1"
	"github.com/nodefleet/funtonic/internal/keystore"
	"github.com/nodefleet/funtonic/internal/predicate"
	"github.com/nodefleet/funtonic/internal/registry"
	"github.com/nodefleet/funtonic/internal/signedpayload"
)

// Dispatcher owns the in-flight task index and mediates between
// commander-issued LaunchTaskRequests and executor-issued
// TaskExecutionResults. Dispatch and result delivery happen synchronously
// inside Launch, HandleResult, OnExecutorDisconnect, and Cancel calls; the
// only background goroutine is one pump per matched task, which forwards
// its results to the caller and unregisters the task once they end.
type Dispatcher struct {
	registry *registry.Registry
	keystore *keystore.Store

	mu    sync.RWMutex
	tasks map[string]*inFlightTask
}

// New builds a Dispatcher over reg and ks. Callers construct the
// signedpayload.KeyResolver for the LaunchTaskRequest envelope separately
// via NewCommandKeyResolver, since verification happens one layer up in
// internal/rpcserver, before Launch is ever called.
func New(reg *registry.Registry, ks *keystore.Store) *Dispatcher {
	return &Dispatcher{
		registry: reg,
		keystore: ks,
		tasks:    make(map[string]*inFlightTask),
	}
}

// Launch decodes payload (already signature-verified by the caller) and
// dispatches it, implementing spec.md section 4.5. The returned taskID
// names the in-flight task so the caller can Cancel it if its own peer
// (the commander) goes away before the channel drains; it is empty for the
// authorizeKey/revokeKey broadcast path, so Cancel is a harmless no-op
// there. The returned channel is closed once every
// matched executor has produced a terminal result, or immediately for the
// broadcast path.
func (d *Dispatcher) Launch(payload *pb.LaunchTaskRequestPayload, predicateExpr string, envelope *pb.SignedPayload) (string, <-chan *pb.LaunchTaskResponse, error) {
	switch task := payload.GetTask().(type) {
	case *pb.LaunchTaskRequestPayload_ExecuteCommand, *pb.LaunchTaskRequestPayload_StreamingPayload:
		return d.launchToMatched(predicateExpr, envelope)
	case *pb.LaunchTaskRequestPayload_AuthorizeKey:
		ch, err := d.broadcastKeyChange(envelope, func() error {
			return d.keystore.PutApprovedAuthorizedKey(task.AuthorizeKey.GetKeyId(), ed25519.PublicKey(task.AuthorizeKey.GetKeyBytes()))
		})
		return "", ch, err
	case *pb.LaunchTaskRequestPayload_RevokeKey:
		ch, err := d.broadcastKeyChange(envelope, func() error {
			return d.keystore.RevokeAuthorizedKey(task.RevokeKey)
		})
		return "", ch, err
	default:
		return "", nil, fmt.Errorf("dispatcher: launch: unknown task variant")
	}
}

// launchToMatched runs spec.md section 4.5 steps 2-6: snapshot the
// registry, filter by predicate, emit MatchingExecutors first, then fan out
// a GetTaskStreamReply wrapping envelope to each matched connection.
func (d *Dispatcher) launchToMatched(predicateExpr string, envelope *pb.SignedPayload) (string, <-chan *pb.LaunchTaskResponse, error) {
	snapshot := d.registry.Snapshot()

	matched := make([]string, 0, len(snapshot))
	conns := make(map[string]*registry.Connection, len(snapshot))
	for _, c := range snapshot {
		ok, err := predicate.Match(predicateExpr, c.Tags)
		if err != nil {
			return "", nil, fmt.Errorf("dispatcher: predicate: %w", err)
		}
		if ok {
			matched = append(matched, c.ClientID)
			conns[c.ClientID] = c
		}
	}

	taskID := uuid.NewString()
	task := newInFlightTask(taskID, predicateExpr, matched)

	downstream := make(chan *pb.LaunchTaskResponse, 1)
	downstream <- &pb.LaunchTaskResponse{
		TaskResponse: &pb.LaunchTaskResponse_MatchingExecutors{
			MatchingExecutors: &pb.MatchingExecutors{ClientId: matched},
		},
	}

	if len(matched) == 0 {
		close(downstream)
		return taskID, downstream, nil
	}

	d.mu.Lock()
	d.tasks[taskID] = task
	d.mu.Unlock()

	go d.pump(task, downstream)

	for _, clientID := range matched {
		reply := &pb.GetTaskStreamReply{TaskId: taskID, Payload: envelope}
		if !conns[clientID].TrySend(reply) {
			task.onDisconnect(clientID)
		}
	}

	return taskID, downstream, nil
}

// Cancel unregisters taskID and closes its downstream channel without
// draining pending (spec.md line 126: "A commander disconnect cancels the
// downstream channel; the InFlightTask is unregistered immediately,
// pending executor results are dropped"). Unknown or already-drained
// task IDs are a no-op.
func (d *Dispatcher) Cancel(taskID string) {
	d.mu.Lock()
	task, ok := d.tasks[taskID]
	if ok {
		delete(d.tasks, taskID)
	}
	d.mu.Unlock()
	if !ok {
		return
	}
	task.cancel()
}

// pump copies task's own downstream into the response channel returned to
// the caller, so the MatchingExecutors message queued ahead of it and every
// subsequent result share a single ordered stream.
func (d *Dispatcher) pump(task *inFlightTask, out chan *pb.LaunchTaskResponse) {
	for msg := range task.downstream {
		out <- msg
	}
	close(out)
	d.mu.Lock()
	delete(d.tasks, task.taskID)
	d.mu.Unlock()
}

// broadcastKeyChange persists a key-store mutation, then replicates
// envelope to every currently connected executor as a synthetic
// GetTaskStreamReply (spec.md section 8, scenario S6: "every connected
// executor receives a GetTaskStreamReply carrying the verified envelope;
// the commander stream closes without a MatchingExecutors predicate filter
// applied"). taskID is fresh per broadcast purely for the executor's
// dedup bookkeeping; no result is ever routed back for it.
func (d *Dispatcher) broadcastKeyChange(envelope *pb.SignedPayload, persist func() error) (<-chan *pb.LaunchTaskResponse, error) {
	if err := persist(); err != nil {
		return nil, err
	}

	taskID := uuid.NewString()
	reply := &pb.GetTaskStreamReply{TaskId: taskID, Payload: envelope}
	for _, c := range d.registry.Snapshot() {
		c.TrySend(reply)
	}

	downstream := make(chan *pb.LaunchTaskResponse)
	close(downstream)
	return downstream, nil
}

func (d *Dispatcher) getTask(taskID string) (*inFlightTask, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	t, ok := d.tasks[taskID]
	return t, ok
}

// HandleResult implements spec.md section 4.7: look up the in-flight task
// by task_id, drop silently if absent, otherwise publish into its
// downstream and remove client_id from pending on a terminal variant.
func (d *Dispatcher) HandleResult(result *pb.TaskExecutionResult) {
	task, ok := d.getTask(result.GetTaskId())
	if !ok {
		return
	}

	terminal := isTerminal(result)
	response := &pb.LaunchTaskResponse{
		TaskResponse: &pb.LaunchTaskResponse_TaskExecutionResult{TaskExecutionResult: result},
	}
	task.sendResult(result.GetClientId(), response, terminal)
}

// isTerminal reports whether result's variant removes its client_id from a
// task's pending set (spec.md section 4.7): taskCompleted, taskAborted,
// taskRejected, and disconnected are terminal; taskSubmitted and taskOutput
// are not.
func isTerminal(result *pb.TaskExecutionResult) bool {
	switch result.GetExecutionResult().(type) {
	case *pb.TaskExecutionResult_TaskCompleted, *pb.TaskExecutionResult_TaskAborted,
		*pb.TaskExecutionResult_TaskRejected, *pb.TaskExecutionResult_Disconnected:
		return true
	default:
		return false
	}
}

// OnExecutorDisconnect propagates a lost connection into every in-flight
// task that still has clientID pending, emitting a synthetic Disconnected
// result for each (spec.md section 4.3's on_disconnect, section 4.5 step 5).
func (d *Dispatcher) OnExecutorDisconnect(clientID string) {
	d.mu.RLock()
	tasks := make([]*inFlightTask, 0, len(d.tasks))
	for _, t := range d.tasks {
		tasks = append(tasks, t)
	}
	d.mu.RUnlock()

	for _, t := range tasks {
		t.onDisconnect(clientID)
	}
}

// RunningTask is an admin-facing snapshot of one in-flight task.
type RunningTask struct {
	TaskID    string   `json:"task_id"`
	Predicate string   `json:"predicate"`
	Matched   []string `json:"matched"`
	Pending   []string `json:"pending"`
}

// ListRunningTasks returns a snapshot of every task still awaiting results,
// for the admin listRunningTasks RPC (spec.md section 4.6).
func (d *Dispatcher) ListRunningTasks() []RunningTask {
	d.mu.RLock()
	tasks := make([]*inFlightTask, 0, len(d.tasks))
	for _, t := range d.tasks {
		tasks = append(tasks, t)
	}
	d.mu.RUnlock()

	out := make([]RunningTask, 0, len(tasks))
	for _, t := range tasks {
		v := t.view()
		out = append(out, RunningTask{TaskID: v.TaskID, Predicate: v.Predicate, Matched: v.Matched, Pending: v.Pending})
	}
	return out
}

var _ signedpayload.KeyResolver = commandKeyResolver{}
