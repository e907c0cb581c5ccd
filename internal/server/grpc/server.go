// Package grpc runs the admin gRPC endpoint. It serves the standard
// grpc.health.v1.Health service whose status follows storage liveness.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/mealplanner/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health service name reported next to the overall ("")
// status.
const ServiceName = "mealplanner.Scheduler"

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type GRPCServer struct {
	address      string
	db           Pinger
	pingInterval time.Duration
	health       *health.Server
	logger       logging.Logger
}

func NewGRPCServer(address string, db Pinger, pingInterval time.Duration, l logging.Logger) *GRPCServer {
	if pingInterval <= 0 {
		pingInterval = 15 * time.Second
	}
	return &GRPCServer{
		address:      address,
		db:           db,
		pingInterval: pingInterval,
		health:       health.NewServer(),
		logger:       l.With("module", "grpc_server"),
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve serves on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))

	healthpb.RegisterHealthServer(srv, s.health)
	reflection.Register(srv)

	s.checkStorage(ctx)

	go func() {
		ticker := time.NewTicker(s.pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				s.logger.Info(ctx, "Stopping gRPC server...")
				s.health.Shutdown()
				srv.GracefulStop()
				return
			case <-ticker.C:
				s.checkStorage(ctx)
			}
		}
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}
	return nil
}
