package assistant

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/railbooking/internal/chat"
	"github.com/Domenick1991/railbooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBookingAdder struct {
	mock.Mock
}

func (m *MockBookingAdder) Add(ctx context.Context, draft domain.BookingDraft) domain.Booking {
	args := m.Called(ctx, draft)
	return args.Get(0).(domain.Booking)
}

type MockSearchSetter struct {
	mock.Mock
}

func (m *MockSearchSetter) SetSearchParams(ctx context.Context, params domain.SearchParams) {
	m.Called(ctx, params)
}

func TestAssistantService_BookingFlow(t *testing.T) {
	ctx := context.Background()
	adder := &MockBookingAdder{}
	setter := &MockSearchSetter{}
	fixed := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	svc := NewAssistantService(adder, setter, WithClock(func() time.Time { return fixed }))

	sess := svc.Start(ctx)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, chat.Greeting, sess.Greeting)

	for _, in := range []string{"book", "Jaipur", "Agra", "tatkal", "Sleeper", "2"} {
		_, err := svc.Send(ctx, sess.ID, in)
		require.NoError(t, err)
	}

	adder.On("Add", ctx, mock.MatchedBy(func(d domain.BookingDraft) bool {
		return *d.From == "Jaipur" && *d.To == "Agra" && *d.Date == "2026-10-02" && *d.Passengers == 2 && *d.Tatkal
	})).Return(domain.Booking{ID: "BKG_42"}).Once()
	setter.On("SetSearchParams", ctx, domain.SearchParams{
		From: "Jaipur", To: "Agra", Date: "2026-10-02", TravelClass: "Sleeper", Passengers: 2, TatkalEnabled: true,
	}).Once()

	reply, err := svc.Send(ctx, sess.ID, "confirm")
	require.NoError(t, err)
	assert.Equal(t, chat.Idle, reply.State)
	assert.Equal(t, chat.ConfirmationMessage("BKG_42"), reply.Text)
	require.NotNil(t, reply.Intent)
	adder.AssertExpectations(t)
	setter.AssertExpectations(t)
}

func TestAssistantService_Errors(t *testing.T) {
	ctx := context.Background()
	svc := NewAssistantService(&MockBookingAdder{}, &MockSearchSetter{})

	_, err := svc.Send(ctx, "unknown", "book")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	sess := svc.Start(ctx)
	_, err = svc.Send(ctx, sess.ID, "")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestAssistantService_ExpiresIdleSessions(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	svc := NewAssistantService(&MockBookingAdder{}, &MockSearchSetter{},
		WithClock(func() time.Time { return now }),
		WithSessionTTL(time.Minute),
	)

	old := svc.Start(ctx)
	now = now.Add(2 * time.Minute)
	svc.Start(ctx)

	_, err := svc.Send(ctx, old.ID, "hello")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestAssistantService_SendRejectsExpiredSession(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	svc := NewAssistantService(&MockBookingAdder{}, &MockSearchSetter{},
		WithClock(func() time.Time { return now }),
		WithSessionTTL(time.Minute),
	)

	sess := svc.Start(ctx)
	now = now.Add(30 * time.Second)
	_, err := svc.Send(ctx, sess.ID, "book")
	require.NoError(t, err)

	now = now.Add(61 * time.Second)
	_, err = svc.Send(ctx, sess.ID, "Jaipur")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
