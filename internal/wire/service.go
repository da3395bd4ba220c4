package wire

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

const ServiceName = "lovelab.LoveLab"

const (
	LoveLab_Ping_FullMethodName             = "/lovelab.LoveLab/Ping"
	LoveLab_RegisterDevice_FullMethodName   = "/lovelab.LoveLab/RegisterDevice"
	LoveLab_ListConfessions_FullMethodName  = "/lovelab.LoveLab/ListConfessions"
	LoveLab_SubmitConfession_FullMethodName = "/lovelab.LoveLab/SubmitConfession"
	LoveLab_SetHearts_FullMethodName        = "/lovelab.LoveLab/SetHearts"
	LoveLab_IncrementHearts_FullMethodName  = "/lovelab.LoveLab/IncrementHearts"
	LoveLab_Watch_FullMethodName            = "/lovelab.LoveLab/Watch"
	LoveLab_ClaimPractice_FullMethodName    = "/lovelab.LoveLab/ClaimPractice"
	LoveLab_ShareCard_FullMethodName        = "/lovelab.LoveLab/ShareCard"
)

type LoveLab_WatchServer = grpc.ServerStreamingServer[ChangeEvent]
type LoveLab_WatchClient = grpc.ServerStreamingClient[ChangeEvent]

// LoveLabServer is implemented by internal/server/grpc.
type LoveLabServer interface {
	Ping(context.Context, *emptypb.Empty) (*PingResponse, error)
	RegisterDevice(context.Context, *emptypb.Empty) (*RegisterDeviceResponse, error)
	ListConfessions(context.Context, *emptypb.Empty) (*ListConfessionsResponse, error)
	SubmitConfession(context.Context, *SubmitConfessionRequest) (*SubmitConfessionResponse, error)
	SetHearts(context.Context, *SetHeartsRequest) (*HeartsResponse, error)
	IncrementHearts(context.Context, *IncrementHeartsRequest) (*HeartsResponse, error)
	Watch(*emptypb.Empty, LoveLab_WatchServer) error
	ClaimPractice(context.Context, *emptypb.Empty) (*ClaimPracticeResponse, error)
	ShareCard(context.Context, *ShareCardRequest) (*ShareCardResponse, error)
}

// UnimplementedLoveLabServer can be embedded to get forward-compatible
// implementations.
type UnimplementedLoveLabServer struct{}

func (UnimplementedLoveLabServer) Ping(context.Context, *emptypb.Empty) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedLoveLabServer) RegisterDevice(context.Context, *emptypb.Empty) (*RegisterDeviceResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RegisterDevice not implemented")
}
func (UnimplementedLoveLabServer) ListConfessions(context.Context, *emptypb.Empty) (*ListConfessionsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListConfessions not implemented")
}
func (UnimplementedLoveLabServer) SubmitConfession(context.Context, *SubmitConfessionRequest) (*SubmitConfessionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SubmitConfession not implemented")
}
func (UnimplementedLoveLabServer) SetHearts(context.Context, *SetHeartsRequest) (*HeartsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SetHearts not implemented")
}
func (UnimplementedLoveLabServer) IncrementHearts(context.Context, *IncrementHeartsRequest) (*HeartsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method IncrementHearts not implemented")
}
func (UnimplementedLoveLabServer) Watch(*emptypb.Empty, LoveLab_WatchServer) error {
	return status.Error(codes.Unimplemented, "method Watch not implemented")
}
func (UnimplementedLoveLabServer) ClaimPractice(context.Context, *emptypb.Empty) (*ClaimPracticeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ClaimPractice not implemented")
}
func (UnimplementedLoveLabServer) ShareCard(context.Context, *ShareCardRequest) (*ShareCardResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ShareCard not implemented")
}

func RegisterLoveLabServer(s grpc.ServiceRegistrar, srv LoveLabServer) {
	s.RegisterService(&LoveLab_ServiceDesc, srv)
}

// unary builds a grpc.MethodHandler for one method, running the server
// interceptor chain when present.
func unary[Req any, Resp any](fullMethod string, call func(LoveLabServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(LoveLabServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(LoveLabServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func watchHandler(srv any, stream grpc.ServerStream) error {
	m := new(emptypb.Empty)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(LoveLabServer).Watch(m, &grpc.GenericServerStream[emptypb.Empty, ChangeEvent]{ServerStream: stream})
}

var LoveLab_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LoveLabServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: unary(LoveLab_Ping_FullMethodName, LoveLabServer.Ping)},
		{MethodName: "RegisterDevice", Handler: unary(LoveLab_RegisterDevice_FullMethodName, LoveLabServer.RegisterDevice)},
		{MethodName: "ListConfessions", Handler: unary(LoveLab_ListConfessions_FullMethodName, LoveLabServer.ListConfessions)},
		{MethodName: "SubmitConfession", Handler: unary(LoveLab_SubmitConfession_FullMethodName, LoveLabServer.SubmitConfession)},
		{MethodName: "SetHearts", Handler: unary(LoveLab_SetHearts_FullMethodName, LoveLabServer.SetHearts)},
		{MethodName: "IncrementHearts", Handler: unary(LoveLab_IncrementHearts_FullMethodName, LoveLabServer.IncrementHearts)},
		{MethodName: "ClaimPractice", Handler: unary(LoveLab_ClaimPractice_FullMethodName, LoveLabServer.ClaimPractice)},
		{MethodName: "ShareCard", Handler: unary(LoveLab_ShareCard_FullMethodName, LoveLabServer.ShareCard)},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "Watch", Handler: watchHandler, ServerStreams: true},
	},
	Metadata: "lovelab.proto",
}

// LoveLabClient is the client API for the LoveLab service.
type LoveLabClient interface {
	Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*PingResponse, error)
	RegisterDevice(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*RegisterDeviceResponse, error)
	ListConfessions(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListConfessionsResponse, error)
	SubmitConfession(ctx context.Context, in *SubmitConfessionRequest, opts ...grpc.CallOption) (*SubmitConfessionResponse, error)
	SetHearts(ctx context.Context, in *SetHeartsRequest, opts ...grpc.CallOption) (*HeartsResponse, error)
	IncrementHearts(ctx context.Context, in *IncrementHeartsRequest, opts ...grpc.CallOption) (*HeartsResponse, error)
	Watch(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (LoveLab_WatchClient, error)
	ClaimPractice(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ClaimPracticeResponse, error)
	ShareCard(ctx context.Context, in *ShareCardRequest, opts ...grpc.CallOption) (*ShareCardResponse, error)
}

type loveLabClient struct {
	cc grpc.ClientConnInterface
}

func NewLoveLabClient(cc grpc.ClientConnInterface) LoveLabClient {
	return &loveLabClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *loveLabClient) Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, LoveLab_Ping_FullMethodName, in, opts)
}

func (c *loveLabClient) RegisterDevice(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*RegisterDeviceResponse, error) {
	return invoke[RegisterDeviceResponse](ctx, c.cc, LoveLab_RegisterDevice_FullMethodName, in, opts)
}

func (c *loveLabClient) ListConfessions(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListConfessionsResponse, error) {
	return invoke[ListConfessionsResponse](ctx, c.cc, LoveLab_ListConfessions_FullMethodName, in, opts)
}

func (c *loveLabClient) SubmitConfession(ctx context.Context, in *SubmitConfessionRequest, opts ...grpc.CallOption) (*SubmitConfessionResponse, error) {
	return invoke[SubmitConfessionResponse](ctx, c.cc, LoveLab_SubmitConfession_FullMethodName, in, opts)
}

func (c *loveLabClient) SetHearts(ctx context.Context, in *SetHeartsRequest, opts ...grpc.CallOption) (*HeartsResponse, error) {
	return invoke[HeartsResponse](ctx, c.cc, LoveLab_SetHearts_FullMethodName, in, opts)
}

func (c *loveLabClient) IncrementHearts(ctx context.Context, in *IncrementHeartsRequest, opts ...grpc.CallOption) (*HeartsResponse, error) {
	return invoke[HeartsResponse](ctx, c.cc, LoveLab_IncrementHearts_FullMethodName, in, opts)
}

func (c *loveLabClient) Watch(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (LoveLab_WatchClient, error) {
	stream, err := c.cc.NewStream(ctx, &LoveLab_ServiceDesc.Streams[0], LoveLab_Watch_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[emptypb.Empty, ChangeEvent]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

func (c *loveLabClient) ClaimPractice(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ClaimPracticeResponse, error) {
	return invoke[ClaimPracticeResponse](ctx, c.cc, LoveLab_ClaimPractice_FullMethodName, in, opts)
}

func (c *loveLabClient) ShareCard(ctx context.Context, in *ShareCardRequest, opts ...grpc.CallOption) (*ShareCardResponse, error) {
	return invoke[ShareCardResponse](ctx, c.cc, LoveLab_ShareCard_FullMethodName, in, opts)
}
