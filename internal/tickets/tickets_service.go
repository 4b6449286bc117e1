package tickets

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/railbooking/internal/domain"
	"github.com/Domenick1991/railbooking/internal/logging"
	"github.com/rs/zerolog"
)

type BookingGetter interface {
	Get(ctx context.Context, id string) (domain.Booking, error)
}

type Notifier interface {
	Notify(ctx context.Context, typ domain.NotificationType, message, trainNumber string)
}

type TicketsUseCase interface {
	Download(ctx context.Context, bookingID string) (Document, error)
	QRCode(ctx context.Context, bookingID string) ([]byte, error)
}

// Document is a rendered ticket ready to be served as an attachment.
type Document struct {
	Filename string
	PNR      string
	Content  []byte
}

type TicketsService struct {
	bookings BookingGetter
	notifier Notifier
	now      func() time.Time
	logger   *zerolog.Logger
}

type Option func(*TicketsService)

func WithClock(now func() time.Time) Option {
	return func(s *TicketsService) {
		s.now = now
	}
}

func WithLogger(l *zerolog.Logger) Option {
	return func(s *TicketsService) {
		s.logger = logging.OrNop(l)
	}
}

func NewTicketsService(bookings BookingGetter, notifier Notifier, opts ...Option) *TicketsService {
	s := &TicketsService{
		bookings: bookings,
		notifier: notifier,
		now:      time.Now,
		logger:   logging.OrNop(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TicketsService) Download(ctx context.Context, bookingID string) (Document, error) {
	b, err := s.bookings.Get(ctx, bookingID)
	if err != nil {
		return Document{}, err
	}
	now := s.now()
	t := Resolve(b, now)
	content, err := Render(t, now)
	if err != nil {
		s.logger.Error().Err(err).Str("booking_id", bookingID).Msg("failed to generate ticket")
		return Document{}, err
	}
	s.notifier.Notify(ctx, domain.NotificationInfo, fmt.Sprintf("Ticket downloaded successfully (PNR: %s)", t.PNR), t.TrainNumber)
	return Document{Filename: t.Filename(), PNR: t.PNR, Content: content}, nil
}

func (s *TicketsService) QRCode(ctx context.Context, bookingID string) ([]byte, error) {
	b, err := s.bookings.Get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return QRCode(Resolve(b, s.now()))
}

var _ TicketsUseCase = (*TicketsService)(nil)
