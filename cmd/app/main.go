package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/railbooking/api"
	"github.com/Domenick1991/railbooking/config"
	"github.com/Domenick1991/railbooking/internal/bootstrap"
	"github.com/Domenick1991/railbooking/internal/kafka"
	"github.com/Domenick1991/railbooking/internal/logging"
	"github.com/Domenick1991/railbooking/internal/metrics"
	"github.com/Domenick1991/railbooking/internal/service/assistant"
	"github.com/Domenick1991/railbooking/internal/service/booking"
	"github.com/Domenick1991/railbooking/internal/service/checkout"
	"github.com/Domenick1991/railbooking/internal/service/notifications"
	"github.com/Domenick1991/railbooking/internal/service/session"
	"github.com/Domenick1991/railbooking/internal/tickets"
	"github.com/Domenick1991/railbooking/internal/tracking"
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

	if cfg.Metrics.Enabled {
		metrics.Register()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, cleanup, err := bootstrap.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("open blob store")
	}
	defer cleanup()

	notificationOpts := []notifications.Option{notifications.WithLogger(logger)}
	bookingOpts := []booking.BookingServiceOption{
		booking.WithLogger(logger),
		booking.WithFareRange(booking.FareRange{Min: cfg.Booking.MinFare, Max: cfg.Booking.MaxFare}),
	}
	if cfg.Kafka.Enabled() {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, logger)
		defer producer.Close()
		if err := producer.CheckConnection(ctx); err != nil {
			logger.Warn().Err(err).Msg("kafka unreachable, events may be lost")
		}
		notificationOpts = append(notificationOpts,
			notifications.WithProducer(producer, cfg.Kafka.NotificationsTopic),
			notifications.WithPublishRetries(cfg.Kafka.PublishRetries),
		)
		bookingOpts = append(bookingOpts,
			booking.WithProducer(producer, cfg.Kafka.BookingEventsTopic),
			booking.WithPublishRetries(cfg.Kafka.PublishRetries),
		)
	}

	notificationService := notifications.NewNotificationsService(store, notificationOpts...)
	bookingService := booking.NewBookingService(store, notificationService, bookingOpts...)
	sessionService := session.NewSessionService(store, bookingService,
		session.WithLogger(logger),
		session.WithResetters(bookingService, notificationService),
	)
	checkoutService := checkout.NewCheckoutService(sessionService, bookingService, notificationService,
		checkout.WithBays(cfg.Booking.SeatLayoutBays),
		checkout.WithLogger(logger),
	)
	assistantService := assistant.NewAssistantService(bookingService, sessionService, assistant.WithLogger(logger))
	ticketService := tickets.NewTicketsService(bookingService, notificationService, tickets.WithLogger(logger))
	tracker := tracking.NewTracker(notificationService,
		tracking.WithReminderDelay(cfg.Tracking.ReminderDelay()),
		tracking.WithLogger(logger),
	)
	defer tracker.Stop()

	if status, err := notificationService.Restore(ctx); err != nil {
		logger.Error().Err(err).Msg("restore notifications")
	} else {
		logger.Info().Stringer("status", status).Msg("notifications restored")
	}
	if status, err := bookingService.Restore(ctx); err != nil {
		logger.Error().Err(err).Msg("restore bookings")
	} else {
		logger.Info().Stringer("status", status).Msg("bookings restored")
	}
	if err := sessionService.Restore(ctx); err != nil {
		logger.Error().Err(err).Msg("restore session")
	}

	router := api.NewRouter(cfg, logger,
		api.NewBookingHandler(bookingService),
		api.NewTripHandler(bookingService, ticketService, tracker),
		api.NewCatalogHandler(checkoutService),
		api.NewCheckoutHandler(checkoutService),
		api.NewSessionHandler(sessionService),
		api.NewNotificationHandler(notificationService),
		api.NewChatHandler(assistantService, api.NewRateLimiter(cfg.HTTP.ChatRPS, cfg.HTTP.ChatBurst)),
	)

	if err := bootstrap.Run(ctx, cfg, logger, router); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}
