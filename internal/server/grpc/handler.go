package grpc

import (
	"context"

	"github.com/dmitrijs2005/lovelab/internal/server/models"
	"github.com/dmitrijs2005/lovelab/internal/wire"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func toWire(c *models.Confession) *wire.Confession {
	return &wire.Confession{
		Id:        c.ID,
		Text:      c.Text,
		Crush:     c.Crush,
		Hearts:    c.Hearts,
		CreatedAt: timestamppb.New(c.CreatedAt),
	}
}

func (s *GRPCServer) Ping(ctx context.Context, _ *emptypb.Empty) (*wire.PingResponse, error) {
	return &wire.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) RegisterDevice(ctx context.Context, _ *emptypb.Empty) (*wire.RegisterDeviceResponse, error) {
	id, token, expires, err := s.svc.Devices.Register()
	if err != nil {
		return nil, s.toStatus(ctx, "RegisterDevice", err)
	}
	s.logger.Info(ctx, "Device registered")
	return &wire.RegisterDeviceResponse{DeviceId: id, Token: token, ExpiresAt: timestamppb.New(expires)}, nil
}

func (s *GRPCServer) ListConfessions(ctx context.Context, _ *emptypb.Empty) (*wire.ListConfessionsResponse, error) {
	items, err := s.svc.Confessions.List(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, "ListConfessions", err)
	}
	resp := &wire.ListConfessionsResponse{Confessions: make([]*wire.Confession, 0, len(items))}
	for _, c := range items {
		resp.Confessions = append(resp.Confessions, toWire(c))
	}
	return resp, nil
}

func (s *GRPCServer) SubmitConfession(ctx context.Context, req *wire.SubmitConfessionRequest) (*wire.SubmitConfessionResponse, error) {
	c, err := s.svc.Confessions.Submit(ctx, deviceIDFromContext(ctx), req.Text, req.Crush)
	if err != nil {
		return nil, s.toStatus(ctx, "SubmitConfession", err)
	}
	return &wire.SubmitConfessionResponse{Confession: toWire(c)}, nil
}

func (s *GRPCServer) SetHearts(ctx context.Context, req *wire.SetHeartsRequest) (*wire.HeartsResponse, error) {
	if err := s.svc.Confessions.SetHearts(ctx, req.Id, req.Hearts); err != nil {
		return nil, s.toStatus(ctx, "SetHearts", err)
	}
	return &wire.HeartsResponse{Id: req.Id, Hearts: req.Hearts}, nil
}

func (s *GRPCServer) IncrementHearts(ctx context.Context, req *wire.IncrementHeartsRequest) (*wire.HeartsResponse, error) {
	n, err := s.svc.Confessions.IncrementHearts(ctx, req.Id)
	if err != nil {
		return nil, s.toStatus(ctx, "IncrementHearts", err)
	}
	return &wire.HeartsResponse{Id: req.Id, Hearts: n}, nil
}

// Watch streams one ChangeEvent per hub notification until the client
// goes away or the hub is closed. The first event is always a RESYNC sent
// once the hub subscription exists, so a change committed before that
// point is picked up by the watcher's refetch. The subscription is always
// released.
func (s *GRPCServer) Watch(_ *emptypb.Empty, stream wire.LoveLab_WatchServer) error {
	ctx := stream.Context()
	events, unsubscribe := s.hub.Subscribe()
	defer unsubscribe()

	s.logger.Debug(ctx, "watch started")
	if err := stream.Send(&wire.ChangeEvent{Op: wire.OpResync, At: timestamppb.Now()}); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-events:
			if !ok {
				return status.Error(codes.Unavailable, "server shutting down")
			}
			if err := stream.Send(&wire.ChangeEvent{Op: e.Op, Id: e.ID, At: timestamppb.New(e.At)}); err != nil {
				return err
			}
		}
	}
}

func (s *GRPCServer) ClaimPractice(ctx context.Context, _ *emptypb.Empty) (*wire.ClaimPracticeResponse, error) {
	at, err := s.svc.Practice.Claim(ctx, deviceIDFromContext(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, "ClaimPractice", err)
	}
	return &wire.ClaimPracticeResponse{ClaimedAt: timestamppb.New(at)}, nil
}

func (s *GRPCServer) ShareCard(ctx context.Context, req *wire.ShareCardRequest) (*wire.ShareCardResponse, error) {
	url, expires, err := s.svc.Share.Publish(ctx, req.Text)
	if err != nil {
		return nil, s.toStatus(ctx, "ShareCard", err)
	}
	return &wire.ShareCardResponse{Url: url, ExpiresAt: timestamppb.New(expires)}, nil
}
