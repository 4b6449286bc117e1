package notify

import (
	"context"
	"errors"

	"github.com/Domenick1991/railbooking/internal/kafka"
	"github.com/Domenick1991/railbooking/internal/logging"
	"github.com/Domenick1991/railbooking/internal/metrics"
	"github.com/rs/zerolog"
)

var ErrEmptyMessage = errors.New("notification message is empty")

// Dispatcher delivers notification events consumed by the worker. Delivery is a
// structured log line; there is no external channel.
type Dispatcher struct {
	logger *zerolog.Logger
}

func NewDispatcher(logger *zerolog.Logger) *Dispatcher {
	logger = logging.OrNop(logger)
	return &Dispatcher{logger: logger}
}

func (d *Dispatcher) Dispatch(ctx context.Context, event kafka.NotificationEvent) error {
	if event.Message == "" {
		return ErrEmptyMessage
	}

	level := zerolog.InfoLevel
	switch event.NotificationType {
	case "warning", "cancellation":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	d.logger.WithLevel(level).
		Str("notification_id", event.ID).
		Str("type", event.NotificationType).
		Str("train_number", event.TrainNumber).
		Time("created_at", event.CreatedAt).
		Msg(event.Message)

	metrics.IncDispatched(event.NotificationType)
	return nil
}
