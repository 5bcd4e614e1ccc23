package grpc

import (
	"context"
	"log/slog"

	"github.com/dwikikusuma/gomarketplace/internal/cart/app"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// ServiceName is the name clients pass to Check for the cart specifically.
const ServiceName = "gomarketplace.cart"

// HealthServer answers grpc health checks by pinging the durable store.
type HealthServer struct {
	healthpb.UnimplementedHealthServer
	store app.Pinger
	log   *slog.Logger
}

func NewHealthServer(store app.Pinger, log *slog.Logger) *HealthServer {
	if log == nil {
		log = slog.Default()
	}
	return &HealthServer{store: store, log: log}
}

func (s *HealthServer) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	switch req.GetService() {
	case "", ServiceName:
	default:
		return nil, status.Errorf(codes.NotFound, "unknown service %q", req.GetService())
	}

	if s.store == nil {
		return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}, nil
	}
	if err := s.store.Ping(ctx); err != nil {
		s.log.Warn("health check: store ping failed", slog.Any("err", err))
		return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING}, nil
	}
	return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}, nil
}
