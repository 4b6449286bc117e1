package assistant

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Domenick1991/railbooking/internal/chat"
	"github.com/Domenick1991/railbooking/internal/domain"
	"github.com/Domenick1991/railbooking/internal/logging"
	"github.com/Domenick1991/railbooking/internal/metrics"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultSessionTTL = 30 * time.Minute

var (
	ErrSessionNotFound = errors.New("chat session not found")
	ErrEmptyMessage    = errors.New("message is empty")
)

type AssistantUseCase interface {
	Start(ctx context.Context) Session
	Send(ctx context.Context, sessionID, text string) (chat.Reply, error)
}

type BookingAdder interface {
	Add(ctx context.Context, draft domain.BookingDraft) domain.Booking
}

type SearchSetter interface {
	SetSearchParams(ctx context.Context, params domain.SearchParams)
}

type Session struct {
	ID       string     `json:"id"`
	Greeting string     `json:"greeting"`
	State    chat.State `json:"state"`
}

type session struct {
	mu       sync.Mutex
	conv     *chat.Conversation
	lastSeen time.Time
}

type AssistantService struct {
	mu       sync.Mutex
	sessions map[string]*session
	bookings BookingAdder
	search   SearchSetter
	ttl      time.Duration
	now      func() time.Time
	logger   *zerolog.Logger
}

type Option func(*AssistantService)

func WithClock(now func() time.Time) Option {
	return func(s *AssistantService) {
		s.now = now
	}
}

func WithSessionTTL(ttl time.Duration) Option {
	return func(s *AssistantService) {
		s.ttl = ttl
	}
}

func WithLogger(l *zerolog.Logger) Option {
	return func(s *AssistantService) {
		s.logger = logging.OrNop(l)
	}
}

func NewAssistantService(bookings BookingAdder, search SearchSetter, opts ...Option) *AssistantService {
	s := &AssistantService{
		sessions: make(map[string]*session),
		bookings: bookings,
		search:   search,
		ttl:      defaultSessionTTL,
		now:      time.Now,
		logger:   logging.OrNop(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start opens a new conversation and drops the ones idle for longer than the TTL.
func (s *AssistantService) Start(ctx context.Context) Session {
	now := s.now()
	id := uuid.NewString()

	s.mu.Lock()
	for k, sess := range s.sessions {
		sess.mu.Lock()
		stale := now.Sub(sess.lastSeen) > s.ttl
		sess.mu.Unlock()
		if stale {
			delete(s.sessions, k)
		}
	}
	s.sessions[id] = &session{conv: chat.NewConversation(), lastSeen: now}
	s.mu.Unlock()

	return Session{ID: id, Greeting: chat.Greeting, State: chat.Idle}
}

// Send feeds one message to the session. A confirmed flow books the journey and
// copies it into the search params.
func (s *AssistantService) Send(ctx context.Context, sessionID, text string) (chat.Reply, error) {
	if text == "" {
		return chat.Reply{}, ErrEmptyMessage
	}

	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return chat.Reply{}, ErrSessionNotFound
	}

	now := s.now()
	sess.mu.Lock()
	if now.Sub(sess.lastSeen) > s.ttl {
		sess.mu.Unlock()
		s.mu.Lock()
		delete(s.sessions, sessionID)
		s.mu.Unlock()
		return chat.Reply{}, ErrSessionNotFound
	}
	reply := sess.conv.Handle(text, now)
	sess.lastSeen = now
	sess.mu.Unlock()

	if reply.Intent != nil {
		reply.Text = chat.ConfirmationMessage(s.book(ctx, *reply.Intent))
	}

	metrics.IncChat(reply.State.String())
	return reply, nil
}

func (s *AssistantService) book(ctx context.Context, in chat.BookingIntent) string {
	b := s.bookings.Add(ctx, domain.BookingDraft{
		From:        &in.From,
		To:          &in.To,
		Date:        &in.Date,
		TravelClass: &in.TravelClass,
		Passengers:  &in.Passengers,
		Tatkal:      &in.Tatkal,
	})
	s.search.SetSearchParams(ctx, domain.SearchParams{
		From:          in.From,
		To:            in.To,
		Date:          in.Date,
		TravelClass:   in.TravelClass,
		Passengers:    in.Passengers,
		TatkalEnabled: in.Tatkal,
	})
	s.logger.Info().Str("booking_id", b.ID).Str("from", in.From).Str("to", in.To).Msg("chat booking confirmed")
	return b.ID
}

var _ AssistantUseCase = (*AssistantService)(nil)
