package bootstrap

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/Domenick1991/railbooking/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/health/grpc_health_v1"
)

func TestRun_ShutsDownOnCancel(t *testing.T) {
	cfg := &config.Config{
		HTTP: config.HTTPConfig{Address: "127.0.0.1:0", ShutdownSeconds: 1},
		GRPC: config.GRPCConfig{Address: "127.0.0.1:0", Reflection: true},
	}
	logger := zerolog.Nop()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := Run(ctx, cfg, &logger, http.NotFoundHandler())
	assert.NoError(t, err)
}

func TestRun_BadGRPCAddress(t *testing.T) {
	cfg := &config.Config{GRPC: config.GRPCConfig{Address: "not-an-address"}}
	logger := zerolog.Nop()

	err := Run(context.Background(), cfg, &logger, http.NotFoundHandler())
	assert.ErrorContains(t, err, "listen gRPC")
}

func TestNewServers_RegistersHealth(t *testing.T) {
	cfg := &config.Config{HTTP: config.HTTPConfig{Address: ":0"}}
	logger := zerolog.Nop()

	s := newServers(cfg, &logger, http.NotFoundHandler())
	_, ok := s.grpcServer.GetServiceInfo()[grpc_health_v1.Health_ServiceDesc.ServiceName]
	require.True(t, ok)
	assert.Equal(t, ":0", s.httpServer.Addr)
}
