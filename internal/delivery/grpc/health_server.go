package grpc

import (
	"context"
	"net"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
)

// ServiceName is the health-check service name clients can query in
// addition to the server-wide "" entry.
const ServiceName = "catalog.CategoryService"

type HealthServer struct {
	server *grpc.Server
	health *health.Server
	log    *logrus.Logger
}

// NewHealthServer starts out NOT_SERVING; call SetServing once the stores
// are ready.
func NewHealthServer(logger *logrus.Logger) *HealthServer {
	server := grpc.NewServer(grpc.UnaryInterceptor(loggingInterceptor(logger)))
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(server, healthServer)
	reflection.Register(server)

	s := &HealthServer{server: server, health: healthServer, log: logger}
	s.SetServing(false)
	return s
}

func (s *HealthServer) SetServing(serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(ServiceName, st)
	s.log.Infof("gRPC health status set to %s", st)
}

func (s *HealthServer) Serve(lis net.Listener) error {
	s.log.Infof("gRPC health server listening on %s", lis.Addr())
	if err := s.server.Serve(lis); err != nil && err != grpc.ErrServerStopped {
		return err
	}
	return nil
}

// GracefulStop reports NOT_SERVING to watchers, then drains in-flight calls.
func (s *HealthServer) GracefulStop() {
	s.health.Shutdown()
	s.server.GracefulStop()
	s.log.Info("gRPC health server gracefully stopped.")
}

func loggingInterceptor(logger *logrus.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		logger.WithFields(logrus.Fields{
			"method":     info.FullMethod,
			"code":       status.Code(err).String(),
			"latency_ms": time.Since(start).Milliseconds(),
		}).Debug("gRPC call completed")
		return resp, err
	}
}
