package checkout

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/railbooking/internal/domain"
	"github.com/Domenick1991/railbooking/internal/logging"
	"github.com/Domenick1991/railbooking/internal/seatmap"
	"github.com/rs/zerolog"
)

const (
	PaymentUPI    = "upi"
	PaymentCard   = "card"
	PaymentWallet = "wallet"

	defaultBays     = 4
	issuePreviewLen = 50
	fallbackFrom    = "New Delhi"
	fallbackTo      = "Mumbai Central"
	platformCount   = 10
	coachCount      = 5
)

var upiPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+$`)

var (
	ErrTrainNotFound         = errors.New("train not found")
	ErrSeatCountMismatch     = errors.New("seat count must equal passenger count")
	ErrUnknownSeat           = errors.New("seat does not exist in this coach")
	ErrSeatOccupied          = errors.New("seat is already occupied")
	ErrInvalidPaymentMethod  = errors.New("payment method must be upi, card or wallet")
	ErrUPIRequired           = errors.New("please enter your UPI ID")
	ErrInvalidUPI            = errors.New("please enter a valid UPI ID (e.g., name@upi)")
	ErrPassengerNameRequired = errors.New("please enter all passenger names")
	ErrDescriptionRequired   = errors.New("please describe the issue")
)

type CheckoutUseCase interface {
	Trains(ctx context.Context) []domain.Train
	SpecialTrains(ctx context.Context) []domain.SpecialTrain
	SeatLayout(ctx context.Context, travelClass string) []domain.Berth
	Checkout(ctx context.Context, req Request) (domain.Booking, error)
	ReportIssue(ctx context.Context, description string) error
}

type Request struct {
	TrainNumber   string                   `json:"train_number"`
	Seats         []string                 `json:"seats"`
	PaymentMethod string                   `json:"payment_method"`
	UPIID         string                   `json:"upi_id,omitempty"`
	Passengers    []domain.PassengerDetail `json:"passengers"`
}

type SearchParamsGetter interface {
	SearchParams(ctx context.Context) domain.SearchParams
}

type BookingAdder interface {
	Add(ctx context.Context, draft domain.BookingDraft) domain.Booking
}

type Notifier interface {
	Notify(ctx context.Context, typ domain.NotificationType, message, trainNumber string)
}

type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

type CheckoutService struct {
	search   SearchParamsGetter
	bookings BookingAdder
	notifier Notifier
	bays     int
	rnd      Rand
	now      func() time.Time
	logger   *zerolog.Logger
}

type Option func(*CheckoutService)

func WithBays(n int) Option {
	return func(s *CheckoutService) {
		if n > 0 {
			s.bays = n
		}
	}
}

func WithRand(r Rand) Option {
	return func(s *CheckoutService) {
		s.rnd = r
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *CheckoutService) {
		s.now = now
	}
}

func WithLogger(l *zerolog.Logger) Option {
	return func(s *CheckoutService) {
		s.logger = logging.OrNop(l)
	}
}

func NewCheckoutService(search SearchParamsGetter, bookings BookingAdder, notifier Notifier, opts ...Option) *CheckoutService {
	s := &CheckoutService{
		search:   search,
		bookings: bookings,
		notifier: notifier,
		bays:     defaultBays,
		rnd:      globalRand{},
		now:      time.Now,
		logger:   logging.OrNop(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *CheckoutService) Trains(ctx context.Context) []domain.Train {
	return slices.Clone(trains)
}

func (s *CheckoutService) SpecialTrains(ctx context.Context) []domain.SpecialTrain {
	return slices.Clone(specialTrains)
}

func (s *CheckoutService) SeatLayout(ctx context.Context, travelClass string) []domain.Berth {
	return seatmap.Generate(travelClass, s.bays)
}

// Checkout books the selected train and seats for the current search.
func (s *CheckoutService) Checkout(ctx context.Context, req Request) (domain.Booking, error) {
	params := s.search.SearchParams(ctx)

	train, ok := findTrain(req.TrainNumber)
	if !ok {
		return domain.Booking{}, ErrTrainNotFound
	}
	if len(req.Seats) != params.Passengers {
		return domain.Booking{}, fmt.Errorf("%w: select exactly %d", ErrSeatCountMismatch, params.Passengers)
	}
	if err := s.checkSeats(params.TravelClass, req.Seats); err != nil {
		return domain.Booking{}, err
	}
	if err := checkPayment(req.PaymentMethod, req.UPIID); err != nil {
		return domain.Booking{}, err
	}
	if len(req.Passengers) != params.Passengers {
		return domain.Booking{}, ErrPassengerNameRequired
	}
	details := make([]domain.PassengerDetail, len(req.Passengers))
	for i, p := range req.Passengers {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			return domain.Booking{}, ErrPassengerNameRequired
		}
		details[i] = p
	}

	now := s.now()
	millis := now.UnixMilli()
	pnr := fmt.Sprintf("PNR%08d", millis%100_000_000)
	id := strconv.FormatInt(millis, 10)
	total := train.Price * int64(params.Passengers)
	from := firstNonEmpty(params.FromStation, params.From, fallbackFrom)
	to := firstNonEmpty(params.ToStation, params.To, fallbackTo)
	platform := fmt.Sprintf("Platform %d", s.rnd.IntN(platformCount)+1)
	coach := fmt.Sprintf("A%d", s.rnd.IntN(coachCount)+1)
	status := domain.BookingStatusConfirmed

	b := s.bookings.Add(ctx, domain.BookingDraft{
		ID:               &id,
		PNR:              &pnr,
		Train:            &train.Name,
		TrainNumber:      &train.Number,
		From:             &from,
		To:               &to,
		FromStation:      optional(params.FromStation),
		ToStation:        optional(params.ToStation),
		Date:             optional(params.Date),
		Time:             &train.Departure,
		Seats:            slices.Clone(req.Seats),
		Passengers:       &params.Passengers,
		PassengerDetails: details,
		Status:           &status,
		Platform:         &platform,
		Coach:            &coach,
		Amount:           &total,
		TravelClass:      optional(params.TravelClass),
		Tatkal:           &params.TatkalEnabled,
	})

	s.notifier.Notify(ctx, domain.NotificationSuccess, fmt.Sprintf("Booking confirmed! PNR: %s for %s", pnr, train.Name), train.Number)
	s.logger.Info().Str("pnr", pnr).Str("train", train.Number).Int("passengers", params.Passengers).Msg("checkout completed")
	return b, nil
}

func (s *CheckoutService) checkSeats(travelClass string, seats []string) error {
	layout := seatmap.Generate(travelClass, s.bays)
	seen := make(map[string]struct{}, len(seats))
	for _, id := range seats {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s selected twice", ErrSeatCountMismatch, id)
		}
		seen[id] = struct{}{}

		berth, ok := seatmap.Find(layout, id)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownSeat, id)
		}
		if berth.Occupied {
			return fmt.Errorf("%w: %s", ErrSeatOccupied, id)
		}
	}
	return nil
}

func checkPayment(method, upiID string) error {
	switch method {
	case PaymentUPI:
		upiID = strings.TrimSpace(upiID)
		if upiID == "" {
			return ErrUPIRequired
		}
		if !upiPattern.MatchString(upiID) {
			return ErrInvalidUPI
		}
	case PaymentCard, PaymentWallet:
	default:
		return ErrInvalidPaymentMethod
	}
	return nil
}

// ReportIssue files a support issue as a warning notification.
func (s *CheckoutService) ReportIssue(ctx context.Context, description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return ErrDescriptionRequired
	}
	preview := []rune(description)
	if len(preview) > issuePreviewLen {
		preview = preview[:issuePreviewLen]
	}
	s.notifier.Notify(ctx, domain.NotificationWarning,
		fmt.Sprintf("Issue reported: \"%s...\" - Support team will contact you soon", string(preview)), "")
	return nil
}

// optional leaves unset search fields to the booking defaults.
func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

var _ CheckoutUseCase = (*CheckoutService)(nil)
