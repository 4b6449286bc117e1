package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/Domenick1991/railbooking/internal/domain"
	"github.com/Domenick1991/railbooking/internal/logging"
	"github.com/Domenick1991/railbooking/internal/metrics"
	"github.com/Domenick1991/railbooking/internal/repository"
	"github.com/rs/zerolog"
)

const (
	minPassengers = 1
	maxPassengers = 6
)

var (
	ErrFromRequired      = errors.New("please select a departure station")
	ErrToRequired        = errors.New("please select a destination station")
	ErrSameStation       = errors.New("destination must be different")
	ErrDateRequired      = errors.New("please select a travel date")
	ErrInvalidDate       = errors.New("travel date must be YYYY-MM-DD")
	ErrInvalidPassengers = errors.New("passengers must be between 1 and 6")
	ErrNoRecentJourney   = errors.New("no recent journeys found")
)

type SessionUseCase interface {
	SearchParams(ctx context.Context) domain.SearchParams
	Search(ctx context.Context, params domain.SearchParams) (domain.SearchParams, error)
	SetSearchParams(ctx context.Context, params domain.SearchParams)
	Rebook(ctx context.Context) (domain.SearchParams, error)
	DarkMode(ctx context.Context) bool
	SetDarkMode(ctx context.Context, on bool)
	Restore(ctx context.Context) error
	Logout(ctx context.Context) error
}

// BookingLister exposes bookings newest first.
type BookingLister interface {
	List(ctx context.Context) []domain.Booking
}

// Resetter is a store that can drop its in-memory state on logout.
type Resetter interface {
	Reset(ctx context.Context)
}

type SessionService struct {
	mu        sync.RWMutex
	params    domain.SearchParams
	darkMode  bool
	store     repository.BlobStore
	bookings  BookingLister
	resetters []Resetter
	now       func() time.Time
	logger    *zerolog.Logger
}

type Option func(*SessionService)

func WithClock(now func() time.Time) Option {
	return func(s *SessionService) {
		s.now = now
	}
}

func WithLogger(l *zerolog.Logger) Option {
	return func(s *SessionService) {
		s.logger = logging.OrNop(l)
	}
}

// WithResetters registers stores that are emptied on logout.
func WithResetters(r ...Resetter) Option {
	return func(s *SessionService) {
		s.resetters = append(s.resetters, r...)
	}
}

func NewSessionService(store repository.BlobStore, bookings BookingLister, opts ...Option) *SessionService {
	s := &SessionService{
		store:    store,
		bookings: bookings,
		now:      time.Now,
		logger:   logging.OrNop(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.params = s.defaultParams()
	return s
}

func (s *SessionService) defaultParams() domain.SearchParams {
	return domain.SearchParams{
		Date:        s.now().Format(time.DateOnly),
		TravelClass: domain.DefaultTravelClass,
		Passengers:  1,
	}
}

func (s *SessionService) tomorrow() string {
	return s.now().AddDate(0, 0, 1).Format(time.DateOnly)
}

func (s *SessionService) SearchParams(ctx context.Context) domain.SearchParams {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params
}

// Search validates a new search and, on success, replaces the stored params.
// All failed checks are reported together.
func (s *SessionService) Search(ctx context.Context, params domain.SearchParams) (domain.SearchParams, error) {
	params.From = strings.TrimSpace(params.From)
	params.To = strings.TrimSpace(params.To)
	if params.TravelClass == "" {
		params.TravelClass = domain.DefaultTravelClass
	}
	if params.TatkalEnabled {
		params.Date = s.tomorrow()
	}

	if err := validate(params); err != nil {
		return domain.SearchParams{}, err
	}

	s.SetSearchParams(ctx, params)
	return params, nil
}

func validate(p domain.SearchParams) error {
	var errs []error
	if p.From == "" {
		errs = append(errs, ErrFromRequired)
	}
	if p.To == "" {
		errs = append(errs, ErrToRequired)
	}
	if p.From != "" && strings.EqualFold(p.From, p.To) {
		errs = append(errs, ErrSameStation)
	}
	if p.Date == "" {
		errs = append(errs, ErrDateRequired)
	} else if _, err := time.Parse(time.DateOnly, p.Date); err != nil {
		errs = append(errs, ErrInvalidDate)
	}
	if p.Passengers < minPassengers || p.Passengers > maxPassengers {
		errs = append(errs, ErrInvalidPassengers)
	}
	return errors.Join(errs...)
}

// SetSearchParams stores params as given, without validation.
func (s *SessionService) SetSearchParams(ctx context.Context, params domain.SearchParams) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params = params
	s.persist(ctx, repository.KeySearchParams, params)
}

// Rebook prefills a search for tomorrow from the most recent booking.
func (s *SessionService) Rebook(ctx context.Context) (domain.SearchParams, error) {
	list := s.bookings.List(ctx)
	if len(list) == 0 {
		return domain.SearchParams{}, ErrNoRecentJourney
	}
	last := list[0]

	passengers := last.Passengers
	if passengers == 0 {
		passengers = 1
	}

	current := s.SearchParams(ctx)
	params := domain.SearchParams{
		From:          last.From,
		To:            last.To,
		Date:          s.tomorrow(),
		TravelClass:   current.TravelClass,
		Passengers:    passengers,
		TatkalEnabled: current.TatkalEnabled,
	}
	s.SetSearchParams(ctx, params)
	return params, nil
}

func (s *SessionService) DarkMode(ctx context.Context) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.darkMode
}

func (s *SessionService) SetDarkMode(ctx context.Context, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.darkMode = on
	s.persist(ctx, repository.KeyDarkMode, on)
}

// Restore loads the search params and dark mode flag. Missing or corrupt values
// fall back to the defaults.
func (s *SessionService) Restore(ctx context.Context) error {
	var params domain.SearchParams
	pStatus, err := repository.LoadJSON(ctx, s.store, repository.KeySearchParams, &params)
	if err != nil {
		return err
	}
	var dark bool
	dStatus, err := repository.LoadJSON(ctx, s.store, repository.KeyDarkMode, &dark)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if pStatus == repository.LoadOK {
		s.params = params
	} else {
		s.params = s.defaultParams()
	}
	s.darkMode = dStatus == repository.LoadOK && dark

	if pStatus == repository.LoadCorrupt || dStatus == repository.LoadCorrupt {
		s.logger.Warn().Stringer("search_params", pStatus).Stringer("dark_mode", dStatus).Msg("corrupt session state replaced with defaults")
	}
	return nil
}

// Logout removes every persisted key and empties all registered stores.
func (s *SessionService) Logout(ctx context.Context) error {
	var errs []error
	for _, key := range repository.AllKeys {
		if err := s.store.Delete(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}

	for _, r := range s.resetters {
		r.Reset(ctx)
	}

	s.mu.Lock()
	s.params = s.defaultParams()
	s.darkMode = false
	s.mu.Unlock()

	return errors.Join(errs...)
}

func (s *SessionService) persist(ctx context.Context, key string, v any) {
	if s.store == nil {
		return
	}
	if err := repository.SaveJSON(ctx, s.store, key, v); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("persist session state")
		metrics.IncPersistFailure(key)
	}
}

var _ SessionUseCase = (*SessionService)(nil)
