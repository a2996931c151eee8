// Package grpcapi serves the vault's admin API (status, password
// generation, remote lock) and the standard health service over gRPC.
package grpcapi

import (
	"context"
	"net"

	"github.com/dmitrijs2005/passvault/internal/logging"
	"github.com/dmitrijs2005/passvault/internal/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type TokenVerifier interface {
	Verify(token string) (string, error)
}

type SessionMatcher interface {
	MatchToken(token string) bool
}

type GRPCServer struct {
	address string
	auth    services.AuthService
	records services.RecordService
	tokens  TokenVerifier
	session SessionMatcher
	logger  logging.Logger
}

func NewGRPCServer(address string, auth services.AuthService, records services.RecordService,
	tokens TokenVerifier, session SessionMatcher, l logging.Logger) *GRPCServer {
	return &GRPCServer{
		address: address,
		auth:    auth,
		records: records,
		tokens:  tokens,
		session: session,
		logger:  l.With("module", "grpc_server"),
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve registers the admin and health services on lis and blocks until ctx
// is cancelled and in-flight calls finish.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))

	RegisterVaultAdminServer(srv, s)

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		hs.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
