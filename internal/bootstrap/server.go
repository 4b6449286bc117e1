package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/Domenick1991/railbooking/config"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

type Servers struct {
	grpcServer *grpc.Server
	health     *health.Server
	httpServer *http.Server
	logger     *zerolog.Logger
}

// Run starts the gRPC health server and the HTTP API and blocks until the context is
// canceled or a server fails.
func Run(ctx context.Context, cfg *config.Config, logger *zerolog.Logger, handler http.Handler) error {
	s := newServers(cfg, logger, handler)

	errCh := make(chan error, 2)

	lis, err := net.Listen("tcp", cfg.GRPC.Address)
	if err != nil {
		return fmt.Errorf("listen gRPC %s: %w", cfg.GRPC.Address, err)
	}
	go func() { errCh <- s.grpcServer.Serve(lis) }()

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	logger.Info().Str("http", cfg.HTTP.Address).Str("grpc", cfg.GRPC.Address).Msg("servers started")

	select {
	case err := <-errCh:
		s.grpcServer.Stop()
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout())
		defer cancel()
		s.health.Shutdown()
		s.grpcServer.GracefulStop()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		logger.Info().Msg("servers stopped")
		return nil
	}
}

func newServers(cfg *config.Config, logger *zerolog.Logger, handler http.Handler) *Servers {
	grpcSrv := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(grpcSrv, hs)
	if cfg.GRPC.Reflection {
		reflection.Register(grpcSrv)
	}

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: handler,
	}

	return &Servers{
		grpcServer: grpcSrv,
		health:     hs,
		httpServer: httpSrv,
		logger:     logger,
	}
}
