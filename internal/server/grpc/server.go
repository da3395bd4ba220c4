// Package grpc exposes the LoveLab service over gRPC: unary calls for the
// confession wall, device tokens, practice claims and share cards, plus the
// Watch server stream fed by the notification hub.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/lovelab/internal/logging"
	"github.com/dmitrijs2005/lovelab/internal/server/models"
	"github.com/dmitrijs2005/lovelab/internal/server/notify"
	"github.com/dmitrijs2005/lovelab/internal/wire"
	"google.golang.org/grpc"
)

type Confessions interface {
	List(ctx context.Context) ([]*models.Confession, error)
	Submit(ctx context.Context, deviceID, text, crush string) (*models.Confession, error)
	SetHearts(ctx context.Context, id string, hearts int64) error
	IncrementHearts(ctx context.Context, id string) (int64, error)
}

type Devices interface {
	Register() (deviceID, token string, expires time.Time, err error)
	Authenticate(token string) (string, error)
}

type Practice interface {
	Claim(ctx context.Context, deviceID string) (time.Time, error)
}

type Share interface {
	Publish(ctx context.Context, text string) (string, time.Time, error)
}

// Services groups the business logic the handlers delegate to.
type Services struct {
	Confessions Confessions
	Devices     Devices
	Practice    Practice
	Share       Share
}

type GRPCServer struct {
	wire.UnimplementedLoveLabServer
	address string
	svc     Services
	hub     *notify.Hub
	logger  logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, hub *notify.Hub, svc Services) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		svc:     svc,
		hub:     hub,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.deviceTokenInterceptor))
	wire.RegisterLoveLabServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled. Open Watch
// streams are ended by closing the hub before the graceful stop.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.hub.Close()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}
	<-stopped
	return nil
}
