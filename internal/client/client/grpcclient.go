package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/lovelab/internal/client/models"
	"github.com/dmitrijs2005/lovelab/internal/common"
	"github.com/dmitrijs2005/lovelab/internal/wire"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      wire.LoveLabClient

	mu          sync.RWMutex
	deviceToken string
	onRenew     func(token string)
}

func withDeviceToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.DeviceTokenHeaderName)
	if token != "" {
		md.Set(common.DeviceTokenHeaderName, token)
	}
	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.deviceToken
}

// deviceTokenInterceptor attaches the device token and, when the server
// rejects it, registers a fresh device once and retries the call.
func (s *GRPCClient) deviceTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	err := invoker(withDeviceToken(ctx, s.token()), method, req, reply, cc, opts...)
	if err == nil || method == wire.LoveLab_RegisterDevice_FullMethodName {
		return err
	}
	if status.Code(err) != codes.Unauthenticated {
		return err
	}

	resp, rerr := s.client.RegisterDevice(ctx, &emptypb.Empty{})
	if rerr != nil {
		return err
	}
	s.SetDeviceToken(resp.Token)

	s.mu.RLock()
	onRenew := s.onRenew
	s.mu.RUnlock()
	if onRenew != nil {
		onRenew(resp.Token)
	}

	return invoker(withDeviceToken(ctx, resp.Token), method, req, reply, cc, opts...)
}

func (s *GRPCClient) streamTokenInterceptor(
	ctx context.Context,
	desc *grpc.StreamDesc,
	cc *grpc.ClientConn,
	method string,
	streamer grpc.Streamer,
	opts ...grpc.CallOption,
) (grpc.ClientStream, error) {
	return streamer(withDeviceToken(ctx, s.token()), desc, cc, method, opts...)
}

// NewGRPCClient creates a lazy connection to endpointURL; nothing is dialed
// until the first call.
func NewGRPCClient(endpointURL string) (*GRPCClient, error) {
	return newGRPCClient(endpointURL, grpc.WithTransportCredentials(insecure.NewCredentials()))
}

func newGRPCClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	opts = append(opts,
		wire.CallOptions(),
		grpc.WithUnaryInterceptor(c.deviceTokenInterceptor),
		grpc.WithStreamInterceptor(c.streamTokenInterceptor),
	)
	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = wire.NewLoveLabClient(conn)
	return c, nil
}

// OnTokenRenewed registers fn to be called with the new token whenever the
// client re-registers the device after a rejected token.
func (s *GRPCClient) OnTokenRenewed(fn func(token string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRenew = fn
}

func (s *GRPCClient) SetDeviceToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deviceToken = token
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &emptypb.Empty{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) RegisterDevice(ctx context.Context) (string, string, time.Time, error) {
	resp, err := s.client.RegisterDevice(ctx, &emptypb.Empty{})
	if err != nil {
		return "", "", time.Time{}, s.mapError(err)
	}
	var expires time.Time
	if resp.ExpiresAt != nil {
		expires = resp.ExpiresAt.AsTime()
	}
	return resp.DeviceId, resp.Token, expires, nil
}

func toModel(c *wire.Confession) models.Confession {
	m := models.Confession{ID: c.Id, Text: c.Text, Crush: c.Crush, Hearts: c.Hearts}
	if c.CreatedAt != nil {
		m.CreatedAt = c.CreatedAt.AsTime()
	}
	return m
}

func (s *GRPCClient) ListConfessions(ctx context.Context) ([]models.Confession, error) {
	resp, err := s.client.ListConfessions(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	result := make([]models.Confession, 0, len(resp.Confessions))
	for _, c := range resp.Confessions {
		if c == nil {
			continue
		}
		result = append(result, toModel(c))
	}
	return result, nil
}

func (s *GRPCClient) SubmitConfession(ctx context.Context, text, crush string) (models.Confession, error) {
	resp, err := s.client.SubmitConfession(ctx, &wire.SubmitConfessionRequest{Text: text, Crush: crush})
	if err != nil {
		return models.Confession{}, s.mapError(err)
	}
	if resp.Confession == nil {
		return models.Confession{}, fmt.Errorf("rpc error: empty confession in response")
	}
	return toModel(resp.Confession), nil
}

func (s *GRPCClient) SetHearts(ctx context.Context, id string, hearts int64) (int64, error) {
	resp, err := s.client.SetHearts(ctx, &wire.SetHeartsRequest{Id: id, Hearts: hearts})
	if err != nil {
		return 0, s.mapError(err)
	}
	return resp.Hearts, nil
}

func (s *GRPCClient) IncrementHearts(ctx context.Context, id string) (int64, error) {
	resp, err := s.client.IncrementHearts(ctx, &wire.IncrementHeartsRequest{Id: id})
	if err != nil {
		return 0, s.mapError(err)
	}
	return resp.Hearts, nil
}

type eventStream struct {
	s      *GRPCClient
	stream wire.LoveLab_WatchClient
}

func (e *eventStream) Recv() (Event, error) {
	ev, err := e.stream.Recv()
	if err != nil {
		return Event{}, e.s.mapError(err)
	}
	out := Event{Op: ev.Op, ID: ev.Id}
	if ev.At != nil {
		out.At = ev.At.AsTime()
	}
	return out, nil
}

// Watch opens the change stream. Cancel ctx to end it.
func (s *GRPCClient) Watch(ctx context.Context) (EventStream, error) {
	stream, err := s.client.Watch(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &eventStream{s: s, stream: stream}, nil
}

func (s *GRPCClient) ClaimPractice(ctx context.Context) (time.Time, error) {
	resp, err := s.client.ClaimPractice(ctx, &emptypb.Empty{})
	if err != nil {
		return time.Time{}, s.mapError(err)
	}
	if resp.ClaimedAt == nil {
		return time.Time{}, nil
	}
	return resp.ClaimedAt.AsTime(), nil
}

func (s *GRPCClient) ShareCard(ctx context.Context, text string) (string, time.Time, error) {
	resp, err := s.client.ShareCard(ctx, &wire.ShareCardRequest{Text: text})
	if err != nil {
		return "", time.Time{}, s.mapError(err)
	}
	var expires time.Time
	if resp.ExpiresAt != nil {
		expires = resp.ExpiresAt.AsTime()
	}
	return resp.Url, expires, nil
}

// Validation errors travel as InvalidArgument with the sentinel's text.
var invalidArgumentErrors = []error{
	common.ErrEmptyConfession,
	common.ErrTooLong,
	common.ErrNegativeHearts,
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled:
		return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
	case codes.NotFound:
		return common.ErrorNotFound
	case codes.AlreadyExists:
		return common.ErrPracticeUsed
	case codes.ResourceExhausted:
		return common.ErrRateLimited
	case codes.InvalidArgument:
		for _, e := range invalidArgumentErrors {
			if st.Message() == e.Error() {
				return e
			}
		}
		return fmt.Errorf("rpc error: %w", err)
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
