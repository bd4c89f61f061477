package funtonicpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ExecutorServiceClient is the client API for ExecutorService.
type ExecutorServiceClient interface {
	GetTasks(ctx context.Context, in *RegisterExecutorRequest, opts ...grpc.CallOption) (ExecutorService_GetTasksClient, error)
	TaskExecution(ctx context.Context, opts ...grpc.CallOption) (ExecutorService_TaskExecutionClient, error)
}

type executorServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewExecutorServiceClient(cc grpc.ClientConnInterface) ExecutorServiceClient {
	return &executorServiceClient{cc}
}

func (c *executorServiceClient) GetTasks(ctx context.Context, in *RegisterExecutorRequest, opts ...grpc.CallOption) (ExecutorService_GetTasksClient, error) {
	stream, err := c.cc.NewStream(ctx, &ExecutorService_ServiceDesc.Streams[0], "/funtonic.v1.ExecutorService/GetTasks", opts...)
	if err != nil {
		return nil, err
	}
	x := &executorServiceGetTasksClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type ExecutorService_GetTasksClient interface {
	Recv() (*GetTaskStreamReply, error)
	grpc.ClientStream
}

type executorServiceGetTasksClient struct {
	grpc.ClientStream
}

func (x *executorServiceGetTasksClient) Recv() (*GetTaskStreamReply, error) {
	m := new(GetTaskStreamReply)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *executorServiceClient) TaskExecution(ctx context.Context, opts ...grpc.CallOption) (ExecutorService_TaskExecutionClient, error) {
	stream, err := c.cc.NewStream(ctx, &ExecutorService_ServiceDesc.Streams[1], "/funtonic.v1.ExecutorService/TaskExecution", opts...)
	if err != nil {
		return nil, err
	}
	return &executorServiceTaskExecutionClient{stream}, nil
}

type ExecutorService_TaskExecutionClient interface {
	Send(*SignedPayload) error
	CloseAndRecv() (*Empty, error)
	grpc.ClientStream
}

type executorServiceTaskExecutionClient struct {
	grpc.ClientStream
}

func (x *executorServiceTaskExecutionClient) Send(m *SignedPayload) error {
	return x.ClientStream.SendMsg(m)
}

func (x *executorServiceTaskExecutionClient) CloseAndRecv() (*Empty, error) {
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	m := new(Empty)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// ExecutorServiceServer is the server API for ExecutorService.
type ExecutorServiceServer interface {
	GetTasks(*RegisterExecutorRequest, ExecutorService_GetTasksServer) error
	TaskExecution(ExecutorService_TaskExecutionServer) error
}

// UnimplementedExecutorServiceServer can be embedded to have forward
// compatible implementations.
type UnimplementedExecutorServiceServer struct{}

func (UnimplementedExecutorServiceServer) GetTasks(*RegisterExecutorRequest, ExecutorService_GetTasksServer) error {
	return status.Errorf(codes.Unimplemented, "method GetTasks not implemented")
}
func (UnimplementedExecutorServiceServer) TaskExecution(ExecutorService_TaskExecutionServer) error {
	return status.Errorf(codes.Unimplemented, "method TaskExecution not implemented")
}

type ExecutorService_GetTasksServer interface {
	Send(*GetTaskStreamReply) error
	grpc.ServerStream
}

type executorServiceGetTasksServer struct {
	grpc.ServerStream
}

func (x *executorServiceGetTasksServer) Send(m *GetTaskStreamReply) error {
	return x.ServerStream.SendMsg(m)
}

type ExecutorService_TaskExecutionServer interface {
	SendAndClose(*Empty) error
	Recv() (*SignedPayload, error)
	grpc.ServerStream
}

type executorServiceTaskExecutionServer struct {
	grpc.ServerStream
}

func (x *executorServiceTaskExecutionServer) SendAndClose(m *Empty) error {
	return x.ServerStream.SendMsg(m)
}

func (x *executorServiceTaskExecutionServer) Recv() (*SignedPayload, error) {
	m := new(SignedPayload)
	if err := x.ServerStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func _ExecutorService_GetTasks_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(RegisterExecutorRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ExecutorServiceServer).GetTasks(m, &executorServiceGetTasksServer{stream})
}

func _ExecutorService_TaskExecution_Handler(srv interface{}, stream grpc.ServerStream) error {
	return srv.(ExecutorServiceServer).TaskExecution(&executorServiceTaskExecutionServer{stream})
}

func RegisterExecutorServiceServer(s grpc.ServiceRegistrar, srv ExecutorServiceServer) {
	s.RegisterService(&ExecutorService_ServiceDesc, srv)
}

var ExecutorService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "funtonic.v1.ExecutorService",
	HandlerType: (*ExecutorServiceServer)(nil),
	Methods:     []grpc.MethodDesc{},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "GetTasks",
			Handler:       _ExecutorService_GetTasks_Handler,
			ServerStreams: true,
		},
		{
			StreamName:    "TaskExecution",
			Handler:       _ExecutorService_TaskExecution_Handler,
			ClientStreams: true,
		},
	},
	Metadata: "funtonic.proto",
}

// CommanderServiceClient is the client API for CommanderService.
type CommanderServiceClient interface {
	LaunchTask(ctx context.Context, in *LaunchTaskRequest, opts ...grpc.CallOption) (CommanderService_LaunchTaskClient, error)
	Admin(ctx context.Context, in *SignedPayload, opts ...grpc.CallOption) (*AdminRequestResponse, error)
}

type commanderServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCommanderServiceClient(cc grpc.ClientConnInterface) CommanderServiceClient {
	return &commanderServiceClient{cc}
}

func (c *commanderServiceClient) LaunchTask(ctx context.Context, in *LaunchTaskRequest, opts ...grpc.CallOption) (CommanderService_LaunchTaskClient, error) {
	stream, err := c.cc.NewStream(ctx, &CommanderService_ServiceDesc.Streams[0], "/funtonic.v1.CommanderService/LaunchTask", opts...)
	if err != nil {
		return nil, err
	}
	x := &commanderServiceLaunchTaskClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type CommanderService_LaunchTaskClient interface {
	Recv() (*LaunchTaskResponse, error)
	grpc.ClientStream
}

type commanderServiceLaunchTaskClient struct {
	grpc.ClientStream
}

func (x *commanderServiceLaunchTaskClient) Recv() (*LaunchTaskResponse, error) {
	m := new(LaunchTaskResponse)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *commanderServiceClient) Admin(ctx context.Context, in *SignedPayload, opts ...grpc.CallOption) (*AdminRequestResponse, error) {
	out := new(AdminRequestResponse)
	err := c.cc.Invoke(ctx, "/funtonic.v1.CommanderService/Admin", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CommanderServiceServer is the server API for CommanderService.
type CommanderServiceServer interface {
	LaunchTask(*LaunchTaskRequest, CommanderService_LaunchTaskServer) error
	Admin(context.Context, *SignedPayload) (*AdminRequestResponse, error)
}

type UnimplementedCommanderServiceServer struct{}

func (UnimplementedCommanderServiceServer) LaunchTask(*LaunchTaskRequest, CommanderService_LaunchTaskServer) error {
	return status.Errorf(codes.Unimplemented, "method LaunchTask not implemented")
}
func (UnimplementedCommanderServiceServer) Admin(context.Context, *SignedPayload) (*AdminRequestResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Admin not implemented")
}

type CommanderService_LaunchTaskServer interface {
	Send(*LaunchTaskResponse) error
	grpc.ServerStream
}

type commanderServiceLaunchTaskServer struct {
	grpc.ServerStream
}

func (x *commanderServiceLaunchTaskServer) Send(m *LaunchTaskResponse) error {
	return x.ServerStream.SendMsg(m)
}

func _CommanderService_LaunchTask_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(LaunchTaskRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(CommanderServiceServer).LaunchTask(m, &commanderServiceLaunchTaskServer{stream})
}

func _CommanderService_Admin_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SignedPayload)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CommanderServiceServer).Admin(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/funtonic.v1.CommanderService/Admin",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CommanderServiceServer).Admin(ctx, req.(*SignedPayload))
	}
	return interceptor(ctx, in, info, handler)
}

func RegisterCommanderServiceServer(s grpc.ServiceRegistrar, srv CommanderServiceServer) {
	s.RegisterService(&CommanderService_ServiceDesc, srv)
}

var CommanderService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "funtonic.v1.CommanderService",
	HandlerType: (*CommanderServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Admin",
			Handler:    _CommanderService_Admin_Handler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "LaunchTask",
			Handler:       _CommanderService_LaunchTask_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "funtonic.proto",
}
