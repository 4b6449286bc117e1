package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/railbooking/config"
	"github.com/Domenick1991/railbooking/internal/kafka"
	"github.com/Domenick1991/railbooking/internal/logging"
	"github.com/Domenick1991/railbooking/internal/metrics"
	"github.com/Domenick1991/railbooking/internal/notify"
)

func main() {
	cfg, err := config.LoadConfig(config.PathFromEnv())
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	if closer != nil {
		defer closer.Close()
	}

	if !cfg.Kafka.Enabled() {
		logger.Fatal().Msg("worker requires kafka.brokers")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Enabled {
		metrics.Register()
		srv := metrics.NewServer(cfg.Metrics.WorkerAddress, cfg.Metrics.Path)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error().Err(err).Str("addr", srv.Addr).Msg("metrics listener stopped")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout())
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		logger.Info().Str("addr", srv.Addr).Str("path", cfg.Metrics.Path).Msg("worker metrics enabled")
	}

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic, logger)
	defer consumer.Close()

	dispatcher := notify.NewDispatcher(logger)

	logger.Info().Str("topic", cfg.Kafka.NotificationsTopic).Msg("worker started")
	err = consumer.ConsumeNotifications(ctx, func(ctx context.Context, event kafka.NotificationEvent) error {
		if err := dispatcher.Dispatch(ctx, event); err != nil {
			logger.Warn().Err(err).Str("notification_id", event.ID).Msg("dispatch notification")
		}
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Msg("consumer stopped")
		return
	}
	logger.Info().Msg("worker stopped")
}
