package dispatcher

import (
	"sync"

	pb "github.com/nodefleet/funtonic/api/proto/v1"
)

// DownstreamQueueDepth bounds the commander-facing response channel. It is
// sized generously since a chatty task may emit several non-terminal
// results (taskSubmitted, repeated taskOutput) per matched executor before
// its terminal one.
const DownstreamQueueDepth = 256

// inFlightTask is the runtime record for one dispatched task (spec.md
// section 3, InFlightTask). Its own mutex guards pending/matched
// independently of the dispatcher's task index, so delivering a result to
// one task never contends with dispatching or completing another.
type inFlightTask struct {
	taskID    string
	predicate string

	mu        sync.Mutex
	matched   map[string]struct{}
	pending   map[string]struct{}
	closed    bool
	downstream chan *pb.LaunchTaskResponse
}

func newInFlightTask(taskID, predicate string, matched []string) *inFlightTask {
	t := &inFlightTask{
		taskID:     taskID,
		predicate:  predicate,
		matched:    make(map[string]struct{}, len(matched)),
		pending:    make(map[string]struct{}, len(matched)),
		downstream: make(chan *pb.LaunchTaskResponse, DownstreamQueueDepth),
	}
	for _, c := range matched {
		t.matched[c] = struct{}{}
		t.pending[c] = struct{}{}
	}
	return t
}

// view renders the task's current state for admin listing.
type view struct {
	TaskID    string   `json:"task_id"`
	Predicate string   `json:"predicate"`
	Matched   []string `json:"matched"`
	Pending   []string `json:"pending"`
}

func (t *inFlightTask) view() view {
	t.mu.Lock()
	defer t.mu.Unlock()
	v := view{TaskID: t.taskID, Predicate: t.predicate}
	for c := range t.matched {
		v.Matched = append(v.Matched, c)
	}
	for c := range t.pending {
		v.Pending = append(v.Pending, c)
	}
	return v
}

// sendResult delivers a result for clientID. terminal indicates the result
// removes clientID from pending; the second terminal for an already-removed
// client_id is dropped (spec.md section 4.7, idempotent uplink). It reports
// whether pending emptied as a result, meaning the task is now complete.
func (t *inFlightTask) sendResult(clientID string, result *pb.LaunchTaskResponse, terminal bool) (drained bool, delivered bool) {
	t.mu.Lock()
	if terminal {
		if _, ok := t.pending[clientID]; !ok {
			t.mu.Unlock()
			return false, false
		}
		delete(t.pending, clientID)
	}
	drained = len(t.pending) == 0
	closed := t.closed
	if drained {
		t.closed = true
	}
	t.mu.Unlock()

	if closed {
		return drained, false
	}
	t.downstream <- result
	if drained {
		close(t.downstream)
	}
	return drained, true
}

// onDisconnect removes clientID from pending and emits a synthetic
// disconnected result, same as sendResult with terminal=true, but the
// caller (the registry's disconnect path) has no LaunchTaskResponse to
// hand in, so this builds one itself.
func (t *inFlightTask) onDisconnect(clientID string) (drained bool) {
	if _, present := t.isPending(clientID); !present {
		return false
	}
	result := &pb.LaunchTaskResponse{
		TaskResponse: &pb.LaunchTaskResponse_TaskExecutionResult{
			TaskExecutionResult: &pb.TaskExecutionResult{
				TaskId:   t.taskID,
				ClientId: clientID,
				ExecutionResult: &pb.TaskExecutionResult_Disconnected{
					Disconnected: &pb.Empty{},
				},
			},
		},
	}
	drained, _ = t.sendResult(clientID, result, true)
	return drained
}

// cancel closes downstream without draining pending, for when the
// commander itself goes away (spec.md's PeerGone: local cleanup, no
// surface). Safe to call concurrently with sendResult/onDisconnect; a
// task already drained or already cancelled is a no-op.
func (t *inFlightTask) cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.closed = true
	close(t.downstream)
}

func (t *inFlightTask) isPending(clientID string) (struct{}, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.pending[clientID]
	return struct{}{}, ok
}
