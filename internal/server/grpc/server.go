// Package grpc exposes the gRPC surface of the service: the standard health
// service behind the bearer-token interceptor.
//
// Health is public and ignores the caller. The interceptor still validates
// any "authorization" metadata and attaches the principal to the handler
// context, so services registered on this server later read the caller with
// auth.PrincipalFromContext and decide for themselves whether to require it.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/placeholder/internal/logging"
	"github.com/dmitrijs2005/placeholder/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type GRPCServer struct {
	address string
	logger  logging.Logger
	tokens  auth.TokenValidator
	now     func() time.Time
	health  *health.Server
}

func NewGRPCServer(a string, l logging.Logger, tokens auth.TokenValidator) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		tokens:  tokens,
		now:     time.Now,
		health:  health.NewServer(),
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.authInterceptor))
	healthpb.RegisterHealthServer(srv, s.health)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
