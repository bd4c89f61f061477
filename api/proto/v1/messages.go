// Package funtonicpb holds the Go types for funtonic.proto.
//
// These mirror the shape protoc-gen-go/protoc-gen-go-grpc would emit for
// the schema in funtonic.proto (struct tags, oneof wrapper types, getters),
// hand-shaped here because wire-level codegen is explicitly out of scope
// (spec.md section 1): only the logical RPC contracts matter. See
// DESIGN.md for how these are transported without a real protoc pass.
package funtonicpb

// SignedPayload is the opaque, signed envelope exchanged by every RPC.
type SignedPayload struct {
	Payload        []byte `protobuf:"bytes,1,opt,name=payload,proto3" json:"payload,omitempty"`
	Nonce          uint64 `protobuf:"varint,2,opt,name=nonce,proto3" json:"nonce,omitempty"`
	ValidUntilSecs uint64 `protobuf:"varint,3,opt,name=valid_until_secs,json=validUntilSecs,proto3" json:"valid_until_secs,omitempty"`
	Signature      []byte `protobuf:"bytes,4,opt,name=signature,proto3" json:"signature,omitempty"`
	KeyId          string `protobuf:"bytes,5,opt,name=key_id,json=keyId,proto3" json:"key_id,omitempty"`
}

func (m *SignedPayload) Reset()         { *m = SignedPayload{} }
func (m *SignedPayload) String() string { return protoString(m) }
func (*SignedPayload) ProtoMessage()    {}

func (m *SignedPayload) GetPayload() []byte {
	if m != nil {
		return m.Payload
	}
	return nil
}
func (m *SignedPayload) GetNonce() uint64 {
	if m != nil {
		return m.Nonce
	}
	return 0
}
func (m *SignedPayload) GetValidUntilSecs() uint64 {
	if m != nil {
		return m.ValidUntilSecs
	}
	return 0
}
func (m *SignedPayload) GetSignature() []byte {
	if m != nil {
		return m.Signature
	}
	return nil
}
func (m *SignedPayload) GetKeyId() string {
	if m != nil {
		return m.KeyId
	}
	return ""
}

type Empty struct{}

func (m *Empty) Reset()         { *m = Empty{} }
func (m *Empty) String() string { return protoString(m) }
func (*Empty) ProtoMessage()    {}

// Tag is the recursive value held by an executor's tag tree.
type Tag struct {
	// Types that are valid to be assigned to Tag:
	//	*Tag_Value
	//	*Tag_ValueList
	//	*Tag_ValueMap
	Tag isTag_Tag `protobuf_oneof:"tag"`
}

func (m *Tag) Reset()         { *m = Tag{} }
func (m *Tag) String() string { return protoString(m) }
func (*Tag) ProtoMessage()    {}

type isTag_Tag interface{ isTag_Tag() }

type Tag_Value struct {
	Value string `protobuf:"bytes,1,opt,name=value,proto3,oneof"`
}
type Tag_ValueList struct {
	ValueList *ValueList `protobuf:"bytes,2,opt,name=value_list,json=valueList,proto3,oneof"`
}
type Tag_ValueMap struct {
	ValueMap *ValueMap `protobuf:"bytes,3,opt,name=value_map,json=valueMap,proto3,oneof"`
}

func (*Tag_Value) isTag_Tag()     {}
func (*Tag_ValueList) isTag_Tag() {}
func (*Tag_ValueMap) isTag_Tag()  {}

func (m *Tag) GetTag() isTag_Tag {
	if m != nil {
		return m.Tag
	}
	return nil
}
func (m *Tag) GetValue() string {
	if x, ok := m.GetTag().(*Tag_Value); ok {
		return x.Value
	}
	return ""
}
func (m *Tag) GetValueList() *ValueList {
	if x, ok := m.GetTag().(*Tag_ValueList); ok {
		return x.ValueList
	}
	return nil
}
func (m *Tag) GetValueMap() *ValueMap {
	if x, ok := m.GetTag().(*Tag_ValueMap); ok {
		return x.ValueMap
	}
	return nil
}

type ValueList struct {
	Values []*Tag `protobuf:"bytes,1,rep,name=values,proto3" json:"values,omitempty"`
}

func (m *ValueList) Reset()         { *m = ValueList{} }
func (m *ValueList) String() string { return protoString(m) }
func (*ValueList) ProtoMessage()    {}
func (m *ValueList) GetValues() []*Tag {
	if m != nil {
		return m.Values
	}
	return nil
}

type ValueMap struct {
	Values map[string]*Tag `protobuf:"bytes,1,rep,name=values,proto3" json:"values,omitempty" protobuf_key:"bytes,1,opt,name=key,proto3" protobuf_val:"bytes,2,opt,name=value,proto3"`
}

func (m *ValueMap) Reset()         { *m = ValueMap{} }
func (m *ValueMap) String() string { return protoString(m) }
func (*ValueMap) ProtoMessage()    {}
func (m *ValueMap) GetValues() map[string]*Tag {
	if m != nil {
		return m.Values
	}
	return nil
}

// GetTasksRequest is the signed payload carried inside RegisterExecutorRequest.
type GetTasksRequest struct {
	ClientId              string          `protobuf:"bytes,1,opt,name=client_id,json=clientId,proto3" json:"client_id,omitempty"`
	ClientVersion          string          `protobuf:"bytes,2,opt,name=client_version,json=clientVersion,proto3" json:"client_version,omitempty"`
	ClientProtocolVersion string          `protobuf:"bytes,3,opt,name=client_protocol_version,json=clientProtocolVersion,proto3" json:"client_protocol_version,omitempty"`
	Tags                  map[string]*Tag `protobuf:"bytes,4,rep,name=tags,proto3" json:"tags,omitempty" protobuf_key:"bytes,1,opt,name=key,proto3" protobuf_val:"bytes,2,opt,name=value,proto3"`
}

func (m *GetTasksRequest) Reset()         { *m = GetTasksRequest{} }
func (m *GetTasksRequest) String() string { return protoString(m) }
func (*GetTasksRequest) ProtoMessage()    {}

func (m *GetTasksRequest) GetClientId() string {
	if m != nil {
		return m.ClientId
	}
	return ""
}
func (m *GetTasksRequest) GetClientVersion() string {
	if m != nil {
		return m.ClientVersion
	}
	return ""
}
func (m *GetTasksRequest) GetClientProtocolVersion() string {
	if m != nil {
		return m.ClientProtocolVersion
	}
	return ""
}
func (m *GetTasksRequest) GetTags() map[string]*Tag {
	if m != nil {
		return m.Tags
	}
	return nil
}

type RegisterExecutorRequest struct {
	ClientId        string           `protobuf:"bytes,1,opt,name=client_id,json=clientId,proto3" json:"client_id,omitempty"`
	PublicKey       []byte           `protobuf:"bytes,2,opt,name=public_key,json=publicKey,proto3" json:"public_key,omitempty"`
	GetTasksRequest *SignedPayload   `protobuf:"bytes,3,opt,name=get_tasks_request,json=getTasksRequest,proto3" json:"get_tasks_request,omitempty"`
	AuthorizedKeys  map[string][]byte `protobuf:"bytes,4,rep,name=authorized_keys,json=authorizedKeys,proto3" json:"authorized_keys,omitempty" protobuf_key:"bytes,1,opt,name=key,proto3" protobuf_val:"bytes,2,opt,name=value,proto3"`
}

func (m *RegisterExecutorRequest) Reset()         { *m = RegisterExecutorRequest{} }
func (m *RegisterExecutorRequest) String() string { return protoString(m) }
func (*RegisterExecutorRequest) ProtoMessage()    {}

func (m *RegisterExecutorRequest) GetClientId() string {
	if m != nil {
		return m.ClientId
	}
	return ""
}
func (m *RegisterExecutorRequest) GetPublicKey() []byte {
	if m != nil {
		return m.PublicKey
	}
	return nil
}
func (m *RegisterExecutorRequest) GetGetTasksRequest() *SignedPayload {
	if m != nil {
		return m.GetTasksRequest
	}
	return nil
}
func (m *RegisterExecutorRequest) GetAuthorizedKeys() map[string][]byte {
	if m != nil {
		return m.AuthorizedKeys
	}
	return nil
}

type GetTaskStreamReply struct {
	TaskId  string         `protobuf:"bytes,1,opt,name=task_id,json=taskId,proto3" json:"task_id,omitempty"`
	Payload *SignedPayload `protobuf:"bytes,2,opt,name=payload,proto3" json:"payload,omitempty"`
}

func (m *GetTaskStreamReply) Reset()         { *m = GetTaskStreamReply{} }
func (m *GetTaskStreamReply) String() string { return protoString(m) }
func (*GetTaskStreamReply) ProtoMessage()    {}

func (m *GetTaskStreamReply) GetTaskId() string {
	if m != nil {
		return m.TaskId
	}
	return ""
}
func (m *GetTaskStreamReply) GetPayload() *SignedPayload {
	if m != nil {
		return m.Payload
	}
	return nil
}

type ExecuteCommand struct {
	Command string `protobuf:"bytes,1,opt,name=command,proto3" json:"command,omitempty"`
}

func (m *ExecuteCommand) Reset()         { *m = ExecuteCommand{} }
func (m *ExecuteCommand) String() string { return protoString(m) }
func (*ExecuteCommand) ProtoMessage()    {}
func (m *ExecuteCommand) GetCommand() string {
	if m != nil {
		return m.Command
	}
	return ""
}

type StreamingPayload struct {
	Payload []byte `protobuf:"bytes,1,opt,name=payload,proto3" json:"payload,omitempty"`
}

func (m *StreamingPayload) Reset()         { *m = StreamingPayload{} }
func (m *StreamingPayload) String() string { return protoString(m) }
func (*StreamingPayload) ProtoMessage()    {}
func (m *StreamingPayload) GetPayload() []byte {
	if m != nil {
		return m.Payload
	}
	return nil
}

type AuthorizeKeyTask struct {
	KeyId    string `protobuf:"bytes,1,opt,name=key_id,json=keyId,proto3" json:"key_id,omitempty"`
	KeyBytes []byte `protobuf:"bytes,2,opt,name=key_bytes,json=keyBytes,proto3" json:"key_bytes,omitempty"`
}

func (m *AuthorizeKeyTask) Reset()         { *m = AuthorizeKeyTask{} }
func (m *AuthorizeKeyTask) String() string { return protoString(m) }
func (*AuthorizeKeyTask) ProtoMessage()    {}
func (m *AuthorizeKeyTask) GetKeyId() string {
	if m != nil {
		return m.KeyId
	}
	return ""
}
func (m *AuthorizeKeyTask) GetKeyBytes() []byte {
	if m != nil {
		return m.KeyBytes
	}
	return nil
}

type LaunchTaskRequestPayload struct {
	// Types that are valid to be assigned to Task:
	//	*LaunchTaskRequestPayload_ExecuteCommand
	//	*LaunchTaskRequestPayload_StreamingPayload
	//	*LaunchTaskRequestPayload_AuthorizeKey
	//	*LaunchTaskRequestPayload_RevokeKey
	Task isLaunchTaskRequestPayload_Task `protobuf_oneof:"task"`
}

func (m *LaunchTaskRequestPayload) Reset()         { *m = LaunchTaskRequestPayload{} }
func (m *LaunchTaskRequestPayload) String() string { return protoString(m) }
func (*LaunchTaskRequestPayload) ProtoMessage()    {}

type isLaunchTaskRequestPayload_Task interface {
	isLaunchTaskRequestPayload_Task()
}

type LaunchTaskRequestPayload_ExecuteCommand struct {
	ExecuteCommand *ExecuteCommand `protobuf:"bytes,1,opt,name=execute_command,json=executeCommand,proto3,oneof"`
}
type LaunchTaskRequestPayload_StreamingPayload struct {
	StreamingPayload *StreamingPayload `protobuf:"bytes,2,opt,name=streaming_payload,json=streamingPayload,proto3,oneof"`
}
type LaunchTaskRequestPayload_AuthorizeKey struct {
	AuthorizeKey *AuthorizeKeyTask `protobuf:"bytes,3,opt,name=authorize_key,json=authorizeKey,proto3,oneof"`
}
type LaunchTaskRequestPayload_RevokeKey struct {
	RevokeKey string `protobuf:"bytes,4,opt,name=revoke_key,json=revokeKey,proto3,oneof"`
}

func (*LaunchTaskRequestPayload_ExecuteCommand) isLaunchTaskRequestPayload_Task()   {}
func (*LaunchTaskRequestPayload_StreamingPayload) isLaunchTaskRequestPayload_Task() {}
func (*LaunchTaskRequestPayload_AuthorizeKey) isLaunchTaskRequestPayload_Task()     {}
func (*LaunchTaskRequestPayload_RevokeKey) isLaunchTaskRequestPayload_Task()        {}

func (m *LaunchTaskRequestPayload) GetTask() isLaunchTaskRequestPayload_Task {
	if m != nil {
		return m.Task
	}
	return nil
}
func (m *LaunchTaskRequestPayload) GetExecuteCommand() *ExecuteCommand {
	if x, ok := m.GetTask().(*LaunchTaskRequestPayload_ExecuteCommand); ok {
		return x.ExecuteCommand
	}
	return nil
}
func (m *LaunchTaskRequestPayload) GetStreamingPayload() *StreamingPayload {
	if x, ok := m.GetTask().(*LaunchTaskRequestPayload_StreamingPayload); ok {
		return x.StreamingPayload
	}
	return nil
}
func (m *LaunchTaskRequestPayload) GetAuthorizeKey() *AuthorizeKeyTask {
	if x, ok := m.GetTask().(*LaunchTaskRequestPayload_AuthorizeKey); ok {
		return x.AuthorizeKey
	}
	return nil
}
func (m *LaunchTaskRequestPayload) GetRevokeKey() string {
	if x, ok := m.GetTask().(*LaunchTaskRequestPayload_RevokeKey); ok {
		return x.RevokeKey
	}
	return ""
}

type TaskOutput struct {
	Stdout []byte `protobuf:"bytes,1,opt,name=stdout,proto3" json:"stdout,omitempty"`
	Stderr []byte `protobuf:"bytes,2,opt,name=stderr,proto3" json:"stderr,omitempty"`
}

func (m *TaskOutput) Reset()         { *m = TaskOutput{} }
func (m *TaskOutput) String() string { return protoString(m) }
func (*TaskOutput) ProtoMessage()    {}
func (m *TaskOutput) GetStdout() []byte {
	if m != nil {
		return m.Stdout
	}
	return nil
}
func (m *TaskOutput) GetStderr() []byte {
	if m != nil {
		return m.Stderr
	}
	return nil
}

type TaskCompleted struct {
	ReturnCode int32 `protobuf:"varint,1,opt,name=return_code,json=returnCode,proto3" json:"return_code,omitempty"`
}

func (m *TaskCompleted) Reset()         { *m = TaskCompleted{} }
func (m *TaskCompleted) String() string { return protoString(m) }
func (*TaskCompleted) ProtoMessage()    {}
func (m *TaskCompleted) GetReturnCode() int32 {
	if m != nil {
		return m.ReturnCode
	}
	return 0
}

type TaskExecutionResult struct {
	TaskId   string `protobuf:"bytes,1,opt,name=task_id,json=taskId,proto3" json:"task_id,omitempty"`
	ClientId string `protobuf:"bytes,2,opt,name=client_id,json=clientId,proto3" json:"client_id,omitempty"`
	// Types that are valid to be assigned to ExecutionResult:
	//	*TaskExecutionResult_TaskSubmitted
	//	*TaskExecutionResult_TaskOutput
	//	*TaskExecutionResult_TaskCompleted
	//	*TaskExecutionResult_TaskAborted
	//	*TaskExecutionResult_TaskRejected
	//	*TaskExecutionResult_Disconnected
	ExecutionResult isTaskExecutionResult_ExecutionResult `protobuf_oneof:"execution_result"`
}

func (m *TaskExecutionResult) Reset()         { *m = TaskExecutionResult{} }
func (m *TaskExecutionResult) String() string { return protoString(m) }
func (*TaskExecutionResult) ProtoMessage()    {}

type isTaskExecutionResult_ExecutionResult interface {
	isTaskExecutionResult_ExecutionResult()
}

type TaskExecutionResult_TaskSubmitted struct {
	TaskSubmitted *Empty `protobuf:"bytes,3,opt,name=task_submitted,json=taskSubmitted,proto3,oneof"`
}
type TaskExecutionResult_TaskOutput struct {
	TaskOutput *TaskOutput `protobuf:"bytes,4,opt,name=task_output,json=taskOutput,proto3,oneof"`
}
type TaskExecutionResult_TaskCompleted struct {
	TaskCompleted *TaskCompleted `protobuf:"bytes,5,opt,name=task_completed,json=taskCompleted,proto3,oneof"`
}
type TaskExecutionResult_TaskAborted struct {
	TaskAborted *Empty `protobuf:"bytes,6,opt,name=task_aborted,json=taskAborted,proto3,oneof"`
}
type TaskExecutionResult_TaskRejected struct {
	TaskRejected string `protobuf:"bytes,7,opt,name=task_rejected,json=taskRejected,proto3,oneof"`
}
type TaskExecutionResult_Disconnected struct {
	Disconnected *Empty `protobuf:"bytes,8,opt,name=disconnected,proto3,oneof"`
}

func (*TaskExecutionResult_TaskSubmitted) isTaskExecutionResult_ExecutionResult() {}
func (*TaskExecutionResult_TaskOutput) isTaskExecutionResult_ExecutionResult()    {}
func (*TaskExecutionResult_TaskCompleted) isTaskExecutionResult_ExecutionResult() {}
func (*TaskExecutionResult_TaskAborted) isTaskExecutionResult_ExecutionResult()   {}
func (*TaskExecutionResult_TaskRejected) isTaskExecutionResult_ExecutionResult()  {}
func (*TaskExecutionResult_Disconnected) isTaskExecutionResult_ExecutionResult()  {}

func (m *TaskExecutionResult) GetExecutionResult() isTaskExecutionResult_ExecutionResult {
	if m != nil {
		return m.ExecutionResult
	}
	return nil
}
func (m *TaskExecutionResult) GetClientId() string {
	if m != nil {
		return m.ClientId
	}
	return ""
}
func (m *TaskExecutionResult) GetTaskId() string {
	if m != nil {
		return m.TaskId
	}
	return ""
}
func (m *TaskExecutionResult) GetTaskCompleted() *TaskCompleted {
	if x, ok := m.GetExecutionResult().(*TaskExecutionResult_TaskCompleted); ok {
		return x.TaskCompleted
	}
	return nil
}
func (m *TaskExecutionResult) GetTaskOutput() *TaskOutput {
	if x, ok := m.GetExecutionResult().(*TaskExecutionResult_TaskOutput); ok {
		return x.TaskOutput
	}
	return nil
}
func (m *TaskExecutionResult) GetTaskRejected() string {
	if x, ok := m.GetExecutionResult().(*TaskExecutionResult_TaskRejected); ok {
		return x.TaskRejected
	}
	return ""
}
func (m *TaskExecutionResult) GetTaskSubmitted() *Empty {
	if x, ok := m.GetExecutionResult().(*TaskExecutionResult_TaskSubmitted); ok {
		return x.TaskSubmitted
	}
	return nil
}
func (m *TaskExecutionResult) GetTaskAborted() *Empty {
	if x, ok := m.GetExecutionResult().(*TaskExecutionResult_TaskAborted); ok {
		return x.TaskAborted
	}
	return nil
}
func (m *TaskExecutionResult) GetDisconnected() *Empty {
	if x, ok := m.GetExecutionResult().(*TaskExecutionResult_Disconnected); ok {
		return x.Disconnected
	}
	return nil
}

type LaunchTaskRequest struct {
	Predicate string         `protobuf:"bytes,1,opt,name=predicate,proto3" json:"predicate,omitempty"`
	Payload   *SignedPayload `protobuf:"bytes,2,opt,name=payload,proto3" json:"payload,omitempty"`
}

func (m *LaunchTaskRequest) Reset()         { *m = LaunchTaskRequest{} }
func (m *LaunchTaskRequest) String() string { return protoString(m) }
func (*LaunchTaskRequest) ProtoMessage()    {}

func (m *LaunchTaskRequest) GetPredicate() string {
	if m != nil {
		return m.Predicate
	}
	return ""
}
func (m *LaunchTaskRequest) GetPayload() *SignedPayload {
	if m != nil {
		return m.Payload
	}
	return nil
}

type MatchingExecutors struct {
	ClientId []string `protobuf:"bytes,1,rep,name=client_id,json=clientId,proto3" json:"client_id,omitempty"`
}

func (m *MatchingExecutors) Reset()         { *m = MatchingExecutors{} }
func (m *MatchingExecutors) String() string { return protoString(m) }
func (*MatchingExecutors) ProtoMessage()    {}
func (m *MatchingExecutors) GetClientId() []string {
	if m != nil {
		return m.ClientId
	}
	return nil
}

type LaunchTaskResponse struct {
	// Types that are valid to be assigned to TaskResponse:
	//	*LaunchTaskResponse_MatchingExecutors
	//	*LaunchTaskResponse_TaskExecutionResult
	TaskResponse isLaunchTaskResponse_TaskResponse `protobuf_oneof:"task_response"`
}

func (m *LaunchTaskResponse) Reset()         { *m = LaunchTaskResponse{} }
func (m *LaunchTaskResponse) String() string { return protoString(m) }
func (*LaunchTaskResponse) ProtoMessage()    {}

type isLaunchTaskResponse_TaskResponse interface {
	isLaunchTaskResponse_TaskResponse()
}

type LaunchTaskResponse_MatchingExecutors struct {
	MatchingExecutors *MatchingExecutors `protobuf:"bytes,1,opt,name=matching_executors,json=matchingExecutors,proto3,oneof"`
}
type LaunchTaskResponse_TaskExecutionResult struct {
	TaskExecutionResult *TaskExecutionResult `protobuf:"bytes,2,opt,name=task_execution_result,json=taskExecutionResult,proto3,oneof"`
}

func (*LaunchTaskResponse_MatchingExecutors) isLaunchTaskResponse_TaskResponse()   {}
func (*LaunchTaskResponse_TaskExecutionResult) isLaunchTaskResponse_TaskResponse() {}

func (m *LaunchTaskResponse) GetTaskResponse() isLaunchTaskResponse_TaskResponse {
	if m != nil {
		return m.TaskResponse
	}
	return nil
}
func (m *LaunchTaskResponse) GetMatchingExecutors() *MatchingExecutors {
	if x, ok := m.GetTaskResponse().(*LaunchTaskResponse_MatchingExecutors); ok {
		return x.MatchingExecutors
	}
	return nil
}
func (m *LaunchTaskResponse) GetTaskExecutionResult() *TaskExecutionResult {
	if x, ok := m.GetTaskResponse().(*LaunchTaskResponse_TaskExecutionResult); ok {
		return x.TaskExecutionResult
	}
	return nil
}

type AdminRequest struct {
	// Types that are valid to be assigned to RequestType:
	//	*AdminRequest_ListConnectedExecutors
	//	*AdminRequest_ListKnownExecutors
	//	*AdminRequest_ListRunningTasks
	//	*AdminRequest_DropExecutor
	//	*AdminRequest_ListExecutorKeys
	//	*AdminRequest_ApproveExecutorKey
	//	*AdminRequest_ListAuthorizedKeys
	//	*AdminRequest_ListAdminAuthorizedKeys
	RequestType isAdminRequest_RequestType `protobuf_oneof:"request_type"`
}

func (m *AdminRequest) Reset()         { *m = AdminRequest{} }
func (m *AdminRequest) String() string { return protoString(m) }
func (*AdminRequest) ProtoMessage()    {}

type isAdminRequest_RequestType interface {
	isAdminRequest_RequestType()
}

type AdminRequest_ListConnectedExecutors struct {
	ListConnectedExecutors string `protobuf:"bytes,1,opt,name=list_connected_executors,json=listConnectedExecutors,proto3,oneof"`
}
type AdminRequest_ListKnownExecutors struct {
	ListKnownExecutors string `protobuf:"bytes,2,opt,name=list_known_executors,json=listKnownExecutors,proto3,oneof"`
}
type AdminRequest_ListRunningTasks struct {
	ListRunningTasks *Empty `protobuf:"bytes,3,opt,name=list_running_tasks,json=listRunningTasks,proto3,oneof"`
}
type AdminRequest_DropExecutor struct {
	DropExecutor string `protobuf:"bytes,4,opt,name=drop_executor,json=dropExecutor,proto3,oneof"`
}
type AdminRequest_ListExecutorKeys struct {
	ListExecutorKeys *Empty `protobuf:"bytes,5,opt,name=list_executor_keys,json=listExecutorKeys,proto3,oneof"`
}
type AdminRequest_ApproveExecutorKey struct {
	ApproveExecutorKey string `protobuf:"bytes,6,opt,name=approve_executor_key,json=approveExecutorKey,proto3,oneof"`
}
type AdminRequest_ListAuthorizedKeys struct {
	ListAuthorizedKeys *Empty `protobuf:"bytes,7,opt,name=list_authorized_keys,json=listAuthorizedKeys,proto3,oneof"`
}
type AdminRequest_ListAdminAuthorizedKeys struct {
	ListAdminAuthorizedKeys *Empty `protobuf:"bytes,8,opt,name=list_admin_authorized_keys,json=listAdminAuthorizedKeys,proto3,oneof"`
}

func (*AdminRequest_ListConnectedExecutors) isAdminRequest_RequestType()   {}
func (*AdminRequest_ListKnownExecutors) isAdminRequest_RequestType()       {}
func (*AdminRequest_ListRunningTasks) isAdminRequest_RequestType()         {}
func (*AdminRequest_DropExecutor) isAdminRequest_RequestType()             {}
func (*AdminRequest_ListExecutorKeys) isAdminRequest_RequestType()         {}
func (*AdminRequest_ApproveExecutorKey) isAdminRequest_RequestType()       {}
func (*AdminRequest_ListAuthorizedKeys) isAdminRequest_RequestType()       {}
func (*AdminRequest_ListAdminAuthorizedKeys) isAdminRequest_RequestType()  {}

func (m *AdminRequest) GetRequestType() isAdminRequest_RequestType {
	if m != nil {
		return m.RequestType
	}
	return nil
}

type AdminRequestResponse struct {
	// Types that are valid to be assigned to ResponseKind:
	//	*AdminRequestResponse_JsonResponse
	//	*AdminRequestResponse_Error
	ResponseKind isAdminRequestResponse_ResponseKind `protobuf_oneof:"response_kind"`
}

func (m *AdminRequestResponse) Reset()         { *m = AdminRequestResponse{} }
func (m *AdminRequestResponse) String() string { return protoString(m) }
func (*AdminRequestResponse) ProtoMessage()    {}

type isAdminRequestResponse_ResponseKind interface {
	isAdminRequestResponse_ResponseKind()
}

type AdminRequestResponse_JsonResponse struct {
	JsonResponse string `protobuf:"bytes,1,opt,name=json_response,json=jsonResponse,proto3,oneof"`
}
type AdminRequestResponse_Error struct {
	Error string `protobuf:"bytes,2,opt,name=error,proto3,oneof"`
}

func (*AdminRequestResponse_JsonResponse) isAdminRequestResponse_ResponseKind() {}
func (*AdminRequestResponse_Error) isAdminRequestResponse_ResponseKind()        {}

func (m *AdminRequestResponse) GetResponseKind() isAdminRequestResponse_ResponseKind {
	if m != nil {
		return m.ResponseKind
	}
	return nil
}
func (m *AdminRequestResponse) GetJsonResponse() string {
	if x, ok := m.GetResponseKind().(*AdminRequestResponse_JsonResponse); ok {
		return x.JsonResponse
	}
	return ""
}
func (m *AdminRequestResponse) GetError() string {
	if x, ok := m.GetResponseKind().(*AdminRequestResponse_Error); ok {
		return x.Error
	}
	return ""
}
