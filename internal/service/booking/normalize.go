package booking

import (
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/Domenick1991/railbooking/internal/domain"
)

// Defaults applied to a draft that leaves the field unset.
const (
	DefaultFromStation = "Chennai Central"
	DefaultToStation   = "Delhi"
	DefaultFrom        = "Chennai"
	DefaultTo          = "Delhi"
	DefaultTime        = "08:30"
	DefaultPassengers  = 2
	DefaultTrain       = "Rajdhani Express"
	DefaultTrainNumber = "12345"
	DefaultPlatform    = "4"
	DefaultCoach       = "B2"

	groupDiscountMin     = 6
	groupDiscountPercent = 15
)

var defaultSeats = []string{"B2-23", "B2-24"}

// Rand is the random source used for fares and PNRs. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// FareRange bounds the random base fare, inclusive on both ends.
type FareRange struct {
	Min int64
	Max int64
}

var DefaultFareRange = FareRange{Min: 1450, Max: 2850}

func (f FareRange) draw(rnd Rand) int64 {
	return f.Min + int64(rnd.IntN(int(f.Max-f.Min+1)))
}

// Normalize fills every unset draft field using the default fare range.
func Normalize(d domain.BookingDraft, rnd Rand, now time.Time) domain.Booking {
	return DefaultFareRange.Normalize(d, rnd, now)
}

func (f FareRange) Normalize(d domain.BookingDraft, rnd Rand, now time.Time) domain.Booking {
	if rnd == nil {
		rnd = globalRand{}
	}

	finalFrom := firstSet(DefaultFromStation, d.FromStation, d.From)
	finalTo := firstSet(DefaultToStation, d.ToStation, d.To)

	var base int64
	if d.Amount != nil && *d.Amount > 0 {
		base = *d.Amount
	} else {
		base = f.draw(rnd)
	}

	passengers := valueOr(d.Passengers, DefaultPassengers)
	discount, amount := applyDiscount(base, passengers)

	seats := d.Seats
	if seats == nil {
		seats = append([]string(nil), defaultSeats...)
	}
	details := d.PassengerDetails
	if details == nil {
		details = []domain.PassengerDetail{}
	}

	return domain.Booking{
		ID:               valueOr(d.ID, "BKG_"+strconv.FormatInt(now.UnixMilli(), 10)),
		Type:             valueOr(d.Type, domain.BookingTypeTrain),
		Name:             valueOr(d.Name, finalFrom+" → "+finalTo),
		From:             valueOr(d.From, DefaultFrom),
		To:               valueOr(d.To, DefaultTo),
		FromStation:      valueOr(d.FromStation, finalFrom),
		ToStation:        valueOr(d.ToStation, finalTo),
		Date:             valueOr(d.Date, now.Format(time.DateOnly)),
		Time:             valueOr(d.Time, DefaultTime),
		Seats:            seats,
		Passengers:       passengers,
		PassengerDetails: details,
		Status:           valueOr(d.Status, domain.BookingStatusConfirmed),
		TravelClass:      valueOr(d.TravelClass, domain.DefaultTravelClass),
		Tatkal:           valueOr(d.Tatkal, false),
		BaseFare:         base,
		Discount:         discount,
		Amount:           amount,
		Extra:            valueOr(d.Extra, ""),
		BookingDate:      now.Format(time.RFC3339),
		PNR:              valueOr(d.PNR, "PNR"+strconv.Itoa(100000+rnd.IntN(900000))),
		Train:            valueOr(d.Train, DefaultTrain),
		TrainNumber:      valueOr(d.TrainNumber, DefaultTrainNumber),
		Platform:         valueOr(d.Platform, DefaultPlatform),
		Coach:            valueOr(d.Coach, DefaultCoach),
	}
}

// applyDiscount returns the group discount and the payable amount rounded half up.
func applyDiscount(base int64, passengers int) (float64, int64) {
	if passengers < groupDiscountMin {
		return 0, base
	}
	discount := float64(base*groupDiscountPercent) / 100
	amount := (base*(100-groupDiscountPercent) + 50) / 100
	return discount, amount
}

func valueOr[T any](p *T, def T) T {
	if p != nil {
		return *p
	}
	return def
}

func firstSet(def string, vals ...*string) string {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return def
}
