package booking

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/Domenick1991/railbooking/internal/domain"
	"github.com/Domenick1991/railbooking/internal/kafka"
	"github.com/Domenick1991/railbooking/internal/logging"
	"github.com/Domenick1991/railbooking/internal/metrics"
	"github.com/Domenick1991/railbooking/internal/repository"
	"github.com/rs/zerolog"
)

var (
	ErrBookingNotFound       = errors.New("booking not found")
	ErrPassengerNameRequired = errors.New("passenger name is required")
	ErrInvalidPassengerIndex = errors.New("passenger index out of range")
)

type BookingUseCase interface {
	Add(ctx context.Context, draft domain.BookingDraft) domain.Booking
	Get(ctx context.Context, id string) (domain.Booking, error)
	List(ctx context.Context) []domain.Booking
	Update(ctx context.Context, id string, patch domain.BookingPatch) (domain.Booking, error)
	EditPassenger(ctx context.Context, id string, index int, detail domain.PassengerDetail) (domain.Booking, error)
	EditTicket(ctx context.Context, id string, edit domain.TicketEdit) (domain.Booking, error)
	Delete(ctx context.Context, id string) error
	Restore(ctx context.Context) (repository.LoadStatus, error)
	Reset(ctx context.Context)
}

// Notifier receives the user-facing messages a booking change produces.
type Notifier interface {
	Notify(ctx context.Context, typ domain.NotificationType, message, trainNumber string)
}

type Producer interface {
	PublishWithRetry(ctx context.Context, topic, key string, value any, maxRetries int) error
}

type BookingService struct {
	mu       sync.RWMutex
	bookings []domain.Booking // newest first
	store    repository.BlobStore
	notifier Notifier
	producer Producer
	topic    string
	retries  int
	fares    FareRange
	rnd      Rand
	now      func() time.Time
	logger   *zerolog.Logger
}

type BookingServiceOption func(*BookingService)

func WithProducer(p Producer, topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = p
		s.topic = topic
	}
}

func WithFareRange(f FareRange) BookingServiceOption {
	return func(s *BookingService) {
		s.fares = f
	}
}

func WithRand(r Rand) BookingServiceOption {
	return func(s *BookingService) {
		s.rnd = r
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

// WithPublishRetries sets how many attempts an event gets before it is dropped.
func WithPublishRetries(n int) BookingServiceOption {
	return func(s *BookingService) {
		s.retries = n
	}
}

func WithLogger(l *zerolog.Logger) BookingServiceOption {
	return func(s *BookingService) {
		s.logger = logging.OrNop(l)
	}
}

func NewBookingService(store repository.BlobStore, notifier Notifier, opts ...BookingServiceOption) *BookingService {
	s := &BookingService{
		bookings: []domain.Booking{},
		store:    store,
		notifier: notifier,
		fares:    DefaultFareRange,
		retries:  1,
		rnd:      globalRand{},
		now:      time.Now,
		logger:   logging.OrNop(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add normalizes the draft and stores it as the newest booking. It never fails.
func (s *BookingService) Add(ctx context.Context, draft domain.BookingDraft) domain.Booking {
	s.mu.Lock()
	b := s.fares.Normalize(draft, s.rnd, s.now())
	b.ID = s.uniqueIDLocked(b.ID)
	s.bookings = slices.Insert(s.bookings, 0, b)
	s.persistLocked(ctx)
	s.mu.Unlock()

	metrics.IncBooking(metrics.EventCreated)
	s.publish(ctx, kafka.EventBookingCreated, b)
	s.logger.Info().Str("booking_id", b.ID).Str("pnr", b.PNR).Int64("amount", b.Amount).Msg("booking created")
	return b
}

func (s *BookingService) Get(ctx context.Context, id string) (domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexLocked(id)
	if i < 0 {
		return domain.Booking{}, ErrBookingNotFound
	}
	return s.bookings[i], nil
}

func (s *BookingService) List(ctx context.Context) []domain.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.bookings)
}

func (s *BookingService) Update(ctx context.Context, id string, patch domain.BookingPatch) (domain.Booking, error) {
	return s.modify(ctx, id, func(b *domain.Booking) error {
		applyPatch(b, patch)
		return nil
	})
}

// EditPassenger sets one passenger, padding the list with blank entries up to index.
// The index must address one of the booked passengers or an existing detail.
func (s *BookingService) EditPassenger(ctx context.Context, id string, index int, detail domain.PassengerDetail) (domain.Booking, error) {
	detail.Name = strings.TrimSpace(detail.Name)
	if detail.Name == "" {
		return domain.Booking{}, ErrPassengerNameRequired
	}
	if index < 0 {
		return domain.Booking{}, ErrInvalidPassengerIndex
	}

	return s.modify(ctx, id, func(b *domain.Booking) error {
		if index >= max(b.Passengers, len(b.PassengerDetails)) {
			return ErrInvalidPassengerIndex
		}
		details := slices.Clone(b.PassengerDetails)
		for len(details) <= index {
			details = append(details, domain.PassengerDetail{})
		}
		details[index] = detail
		b.PassengerDetails = details
		return nil
	})
}

// EditTicket rewrites the journey fields and the first passenger. Further
// passengers are kept; an empty seat keeps the current seats.
func (s *BookingService) EditTicket(ctx context.Context, id string, edit domain.TicketEdit) (domain.Booking, error) {
	edit.Passenger.Name = strings.TrimSpace(edit.Passenger.Name)
	if edit.Passenger.Name == "" {
		return domain.Booking{}, ErrPassengerNameRequired
	}

	return s.modify(ctx, id, func(b *domain.Booking) error {
		b.Train = edit.Train
		b.TrainNumber = edit.TrainNumber
		b.PNR = edit.PNR
		b.Coach = edit.Coach
		b.Platform = edit.Platform
		b.FromStation = edit.FromStation
		b.ToStation = edit.ToStation
		b.Date = edit.Date
		b.Time = edit.Time
		if edit.Seat != "" {
			b.Seats = []string{edit.Seat}
		}

		details := []domain.PassengerDetail{edit.Passenger}
		if len(b.PassengerDetails) > 1 {
			details = append(details, b.PassengerDetails[1:]...)
		}
		b.PassengerDetails = details
		return nil
	})
}

// Delete removes the booking and announces the released seat.
func (s *BookingService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return ErrBookingNotFound
	}
	b := s.bookings[i]
	s.bookings = slices.Delete(s.bookings, i, i+1)
	s.persistLocked(ctx)
	s.mu.Unlock()

	metrics.IncBooking(metrics.EventDeleted)
	s.publish(ctx, kafka.EventBookingCancelled, b)

	if s.notifier != nil {
		train := b.TrainNumber
		if train == "" {
			train = "2425"
		}
		s.notifier.Notify(ctx, domain.NotificationCancellation,
			fmt.Sprintf("A seat just opened up on Train %s (%s → %s) — Available Now!", train, b.From, b.To),
			b.TrainNumber)
		s.notifier.Notify(ctx, domain.NotificationInfo, "Booking cancelled", "")
	}
	return nil
}

// Restore replaces the in-memory list with the stored one. Corrupt data yields an
// empty list and is reported through the status.
func (s *BookingService) Restore(ctx context.Context) (repository.LoadStatus, error) {
	var stored []domain.Booking
	status, err := repository.LoadJSON(ctx, s.store, repository.KeyBookings, &stored)
	if err != nil {
		return status, err
	}
	if status != repository.LoadOK || stored == nil {
		stored = []domain.Booking{}
	}
	if status == repository.LoadCorrupt {
		s.logger.Warn().Str("key", repository.KeyBookings).Msg("stored bookings are corrupt, starting empty")
	}

	s.mu.Lock()
	s.bookings = stored
	s.mu.Unlock()
	return status, nil
}

func (s *BookingService) Reset(ctx context.Context) {
	s.mu.Lock()
	s.bookings = []domain.Booking{}
	s.mu.Unlock()
}

func (s *BookingService) modify(ctx context.Context, id string, fn func(b *domain.Booking) error) (domain.Booking, error) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return domain.Booking{}, ErrBookingNotFound
	}
	updated := s.bookings[i]
	if err := fn(&updated); err != nil {
		s.mu.Unlock()
		return domain.Booking{}, err
	}
	s.bookings[i] = updated
	s.persistLocked(ctx)
	s.mu.Unlock()

	metrics.IncBooking(metrics.EventUpdated)
	s.publish(ctx, kafka.EventBookingUpdated, updated)
	return updated, nil
}

func (s *BookingService) indexLocked(id string) int {
	return slices.IndexFunc(s.bookings, func(b domain.Booking) bool { return b.ID == id })
}

// uniqueIDLocked suffixes id when two bookings land on the same millisecond.
func (s *BookingService) uniqueIDLocked(id string) string {
	if s.indexLocked(id) < 0 {
		return id
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s_%d", id, n)
		if s.indexLocked(candidate) < 0 {
			return candidate
		}
	}
}

func (s *BookingService) persistLocked(ctx context.Context) {
	if s.store == nil {
		return
	}
	if err := repository.SaveJSON(ctx, s.store, repository.KeyBookings, s.bookings); err != nil {
		s.logger.Error().Err(err).Str("key", repository.KeyBookings).Msg("persist bookings")
		metrics.IncPersistFailure(repository.KeyBookings)
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, b domain.Booking) {
	if s.producer == nil || s.topic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:        eventType,
		BookingID:   b.ID,
		PNR:         b.PNR,
		TrainNumber: b.TrainNumber,
		From:        b.From,
		To:          b.To,
		Date:        b.Date,
		Status:      b.Status,
		Amount:      b.Amount,
		OccurredAt:  s.now(),
	}
	if err := s.producer.PublishWithRetry(ctx, s.topic, b.ID, event, s.retries); err != nil {
		s.logger.Warn().Err(err).Str("booking_id", b.ID).Str("event", eventType).Msg("failed to publish booking event")
	}
}

func applyPatch(b *domain.Booking, p domain.BookingPatch) {
	setIf(&b.Name, p.Name)
	setIf(&b.From, p.From)
	setIf(&b.To, p.To)
	setIf(&b.FromStation, p.FromStation)
	setIf(&b.ToStation, p.ToStation)
	setIf(&b.Date, p.Date)
	setIf(&b.Time, p.Time)
	setIf(&b.Passengers, p.Passengers)
	setIf(&b.Status, p.Status)
	setIf(&b.TravelClass, p.TravelClass)
	setIf(&b.Extra, p.Extra)
	setIf(&b.PNR, p.PNR)
	setIf(&b.Train, p.Train)
	setIf(&b.TrainNumber, p.TrainNumber)
	setIf(&b.Platform, p.Platform)
	setIf(&b.Coach, p.Coach)
	if p.Seats != nil {
		b.Seats = p.Seats
	}
	if p.PassengerDetails != nil {
		b.PassengerDetails = p.PassengerDetails
	}
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

var _ BookingUseCase = (*BookingService)(nil)
