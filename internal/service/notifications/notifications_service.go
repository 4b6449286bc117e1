package notifications

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/Domenick1991/railbooking/internal/domain"
	"github.com/Domenick1991/railbooking/internal/kafka"
	"github.com/Domenick1991/railbooking/internal/logging"
	"github.com/Domenick1991/railbooking/internal/metrics"
	"github.com/Domenick1991/railbooking/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const WelcomeMessage = "Welcome to IRCTC 2.0 — Your Smart Travel Companion!"

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrMessageRequired      = errors.New("message is required")
	ErrInvalidType          = errors.New("invalid notification type")
)

type NotificationsUseCase interface {
	Add(ctx context.Context, n domain.NewNotification) (domain.Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context)
	Clear(ctx context.Context, id string) error
	List(ctx context.Context) []domain.Notification
	Unread(ctx context.Context) int
	Restore(ctx context.Context) (repository.LoadStatus, error)
	Reset(ctx context.Context)
}

type Producer interface {
	PublishWithRetry(ctx context.Context, topic, key string, value any, maxRetries int) error
}

type NotificationsService struct {
	mu       sync.RWMutex
	items    []domain.Notification
	store    repository.BlobStore
	producer Producer
	topic    string
	retries  int
	logger   *zerolog.Logger
	now      func() time.Time
	newID    func() string
}

type Option func(*NotificationsService)

func WithProducer(p Producer, topic string) Option {
	return func(s *NotificationsService) {
		s.producer = p
		s.topic = topic
	}
}

// WithPublishRetries sets how many attempts an event gets before it is dropped.
func WithPublishRetries(n int) Option {
	return func(s *NotificationsService) {
		s.retries = n
	}
}

func WithLogger(l *zerolog.Logger) Option {
	return func(s *NotificationsService) {
		s.logger = logging.OrNop(l)
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *NotificationsService) {
		s.now = now
	}
}

func WithIDGenerator(gen func() string) Option {
	return func(s *NotificationsService) {
		s.newID = gen
	}
}

func NewNotificationsService(store repository.BlobStore, opts ...Option) *NotificationsService {
	s := &NotificationsService{
		items:   []domain.Notification{},
		store:   store,
		retries: 1,
		logger:  logging.OrNop(nil),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *NotificationsService) Add(ctx context.Context, in domain.NewNotification) (domain.Notification, error) {
	if in.Message == "" {
		return domain.Notification{}, ErrMessageRequired
	}
	if in.Type == "" {
		in.Type = domain.NotificationInfo
	}
	if !in.Type.Valid() {
		return domain.Notification{}, ErrInvalidType
	}

	now := s.now()
	n := domain.Notification{
		ID:          s.newID(),
		Message:     in.Message,
		Time:        now.Format("15:04"),
		CreatedAt:   now,
		Type:        in.Type,
		TrainNumber: in.TrainNumber,
	}

	s.mu.Lock()
	s.items = slices.Insert(s.items, 0, n)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.publish(ctx, n)
	return n, nil
}

// Notify is Add for internal callers that have nothing useful to do with a failure.
func (s *NotificationsService) Notify(ctx context.Context, typ domain.NotificationType, message, trainNumber string) {
	if _, err := s.Add(ctx, domain.NewNotification{Message: message, Type: typ, TrainNumber: trainNumber}); err != nil {
		s.logger.Warn().Err(err).Str("message", message).Msg("notification dropped")
	}
}

func (s *NotificationsService) MarkRead(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return ErrNotificationNotFound
	}
	s.items[i].Read = true
	s.persistLocked(ctx)
	return nil
}

func (s *NotificationsService) MarkAllRead(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		s.items[i].Read = true
	}
	s.persistLocked(ctx)
}

func (s *NotificationsService) Clear(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return ErrNotificationNotFound
	}
	s.items = slices.Delete(s.items, i, i+1)
	s.persistLocked(ctx)
	return nil
}

func (s *NotificationsService) List(ctx context.Context) []domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

func (s *NotificationsService) Unread(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, item := range s.items {
		if !item.Read {
			n++
		}
	}
	return n
}

// Restore loads stored notifications. When nothing usable is stored the list is
// seeded with the welcome message.
func (s *NotificationsService) Restore(ctx context.Context) (repository.LoadStatus, error) {
	var stored []domain.Notification
	status, err := repository.LoadJSON(ctx, s.store, repository.KeyNotifications, &stored)
	if err != nil {
		return status, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch status {
	case repository.LoadOK:
		if stored == nil {
			stored = []domain.Notification{}
		}
		s.items = stored
	case repository.LoadCorrupt:
		s.logger.Warn().Str("key", repository.KeyNotifications).Msg("stored notifications are corrupt, starting fresh")
		fallthrough
	default:
		now := s.now()
		s.items = []domain.Notification{{
			ID:        s.newID(),
			Message:   WelcomeMessage,
			Time:      now.Format("15:04"),
			CreatedAt: now,
			Type:      domain.NotificationInfo,
		}}
	}
	return status, nil
}

// Reset empties the list without touching the store; logout removes the keys.
func (s *NotificationsService) Reset(ctx context.Context) {
	s.mu.Lock()
	s.items = []domain.Notification{}
	s.mu.Unlock()
}

func (s *NotificationsService) indexLocked(id string) int {
	return slices.IndexFunc(s.items, func(n domain.Notification) bool { return n.ID == id })
}

func (s *NotificationsService) persistLocked(ctx context.Context) {
	if s.store == nil {
		return
	}
	if err := repository.SaveJSON(ctx, s.store, repository.KeyNotifications, s.items); err != nil {
		s.logger.Error().Err(err).Str("key", repository.KeyNotifications).Msg("persist notifications")
		metrics.IncPersistFailure(repository.KeyNotifications)
	}
}

func (s *NotificationsService) publish(ctx context.Context, n domain.Notification) {
	if s.producer == nil || s.topic == "" {
		return
	}
	event := kafka.NotificationEvent{
		Type:             kafka.EventNotification,
		ID:               n.ID,
		NotificationType: string(n.Type),
		Message:          n.Message,
		TrainNumber:      n.TrainNumber,
		CreatedAt:        n.CreatedAt,
	}
	if err := s.producer.PublishWithRetry(ctx, s.topic, n.ID, event, s.retries); err != nil {
		s.logger.Warn().Err(err).Str("notification_id", n.ID).Msg("failed to publish notification event")
	}
}

var _ NotificationsUseCase = (*NotificationsService)(nil)
