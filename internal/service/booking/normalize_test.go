package booking

import (
	"testing"
	"time"

	"github.com/Domenick1991/railbooking/internal/domain"
	"github.com/stretchr/testify/assert"
)

// fixedRand always answers the same offset, clamped to n-1.
type fixedRand struct{ v int }

func (r fixedRand) IntN(n int) int { return min(r.v, n-1) }

func ptr[T any](v T) *T { return &v }

var testNow = time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

func TestNormalize_Defaults(t *testing.T) {
	b := Normalize(domain.BookingDraft{}, fixedRand{v: 0}, testNow)

	assert.Equal(t, "BKG_1777622400000", b.ID)
	assert.Equal(t, domain.BookingTypeTrain, b.Type)
	assert.Equal(t, "Chennai Central → Delhi", b.Name)
	assert.Equal(t, "Chennai", b.From)
	assert.Equal(t, "Delhi", b.To)
	assert.Equal(t, "Chennai Central", b.FromStation)
	assert.Equal(t, "Delhi", b.ToStation)
	assert.Equal(t, "2026-05-01", b.Date)
	assert.Equal(t, "08:30", b.Time)
	assert.Equal(t, []string{"B2-23", "B2-24"}, b.Seats)
	assert.Equal(t, 2, b.Passengers)
	assert.Equal(t, []domain.PassengerDetail{}, b.PassengerDetails)
	assert.Equal(t, "Confirmed", b.Status)
	assert.Equal(t, int64(1450), b.BaseFare)
	assert.Zero(t, b.Discount)
	assert.Equal(t, int64(1450), b.Amount)
	assert.Equal(t, "2026-05-01T08:00:00Z", b.BookingDate)
	assert.Equal(t, "PNR100000", b.PNR)
	assert.Equal(t, "Rajdhani Express", b.Train)
	assert.Equal(t, "12345", b.TrainNumber)
	assert.Equal(t, "4", b.Platform)
	assert.Equal(t, "B2", b.Coach)
	assert.Equal(t, "All Classes", b.TravelClass)
	assert.False(t, b.Tatkal)
}

func TestNormalize_UpperBoundOfRandomRanges(t *testing.T) {
	b := Normalize(domain.BookingDraft{}, fixedRand{v: 1 << 30}, testNow)
	assert.Equal(t, int64(2850), b.BaseFare)
	assert.Equal(t, "PNR999999", b.PNR)
}

func TestNormalize_RouteFallbacks(t *testing.T) {
	b := Normalize(domain.BookingDraft{From: ptr("Mumbai"), To: ptr("Pune")}, fixedRand{}, testNow)
	assert.Equal(t, "Mumbai → Pune", b.Name)
	assert.Equal(t, "Mumbai", b.From)
	assert.Equal(t, "Mumbai", b.FromStation)
	assert.Equal(t, "Pune", b.ToStation)

	b = Normalize(domain.BookingDraft{FromStation: ptr("Dadar"), From: ptr("Mumbai")}, fixedRand{}, testNow)
	assert.Equal(t, "Dadar → Delhi", b.Name)
	assert.Equal(t, "Mumbai", b.From)
	assert.Equal(t, "Dadar", b.FromStation)

	b = Normalize(domain.BookingDraft{Name: ptr("Holiday trip")}, fixedRand{}, testNow)
	assert.Equal(t, "Holiday trip", b.Name)
}

func TestNormalize_Fares(t *testing.T) {
	tests := []struct {
		name       string
		amount     *int64
		passengers *int
		base       int64
		discount   float64
		total      int64
	}{
		{name: "explicit amount", amount: ptr(int64(3000)), base: 3000, total: 3000},
		{name: "zero amount draws fare", amount: ptr(int64(0)), base: 1450, total: 1450},
		{name: "five passengers no discount", amount: ptr(int64(1000)), passengers: ptr(5), base: 1000, total: 1000},
		{name: "group discount", amount: ptr(int64(1000)), passengers: ptr(6), base: 1000, discount: 150, total: 850},
		{name: "rounds half up", amount: ptr(int64(2001)), passengers: ptr(7), base: 2001, discount: 300.15, total: 1701},
		{name: "rounds down", amount: ptr(int64(1004)), passengers: ptr(6), base: 1004, discount: 150.6, total: 853},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Normalize(domain.BookingDraft{Amount: tt.amount, Passengers: tt.passengers}, fixedRand{}, testNow)
			assert.Equal(t, tt.base, b.BaseFare)
			assert.InDelta(t, tt.discount, b.Discount, 1e-9)
			assert.Equal(t, tt.total, b.Amount)
		})
	}
}

func TestNormalize_KeepsExplicitFields(t *testing.T) {
	draft := domain.BookingDraft{
		ID:          ptr("custom"),
		Seats:       []string{"A1-1"},
		PNR:         ptr("PNR42"),
		Tatkal:      ptr(true),
		TravelClass: ptr("Sleeper (SL)"),
		Coach:       ptr("S4"),
	}
	b := Normalize(draft, fixedRand{}, testNow)

	assert.Equal(t, "custom", b.ID)
	assert.Equal(t, []string{"A1-1"}, b.Seats)
	assert.Equal(t, "PNR42", b.PNR)
	assert.True(t, b.Tatkal)
	assert.Equal(t, "Sleeper (SL)", b.TravelClass)
	assert.Equal(t, "S4", b.Coach)
}

func TestFareRange_Normalize(t *testing.T) {
	b := FareRange{Min: 100, Max: 100}.Normalize(domain.BookingDraft{}, fixedRand{v: 5}, testNow)
	assert.Equal(t, int64(100), b.BaseFare)
}
