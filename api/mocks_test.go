package api

import (
	"context"

	"github.com/Domenick1991/railbooking/internal/chat"
	"github.com/Domenick1991/railbooking/internal/domain"
	"github.com/Domenick1991/railbooking/internal/repository"
	"github.com/Domenick1991/railbooking/internal/service/assistant"
	"github.com/Domenick1991/railbooking/internal/service/checkout"
	"github.com/Domenick1991/railbooking/internal/tickets"
	"github.com/Domenick1991/railbooking/internal/tracking"
	"github.com/stretchr/testify/mock"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) Add(ctx context.Context, draft domain.BookingDraft) domain.Booking {
	args := m.Called(ctx, draft)
	return args.Get(0).(domain.Booking)
}

func (m *MockBookingUseCase) Get(ctx context.Context, id string) (domain.Booking, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) List(ctx context.Context) []domain.Booking {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking)
}

func (m *MockBookingUseCase) Update(ctx context.Context, id string, patch domain.BookingPatch) (domain.Booking, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) EditPassenger(ctx context.Context, id string, index int, detail domain.PassengerDetail) (domain.Booking, error) {
	args := m.Called(ctx, id, index, detail)
	return args.Get(0).(domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) EditTicket(ctx context.Context, id string, edit domain.TicketEdit) (domain.Booking, error) {
	args := m.Called(ctx, id, edit)
	return args.Get(0).(domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBookingUseCase) Restore(ctx context.Context) (repository.LoadStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(repository.LoadStatus), args.Error(1)
}

func (m *MockBookingUseCase) Reset(ctx context.Context) {
	m.Called(ctx)
}

type MockCheckoutUseCase struct {
	mock.Mock
}

func (m *MockCheckoutUseCase) Trains(ctx context.Context) []domain.Train {
	return m.Called(ctx).Get(0).([]domain.Train)
}

func (m *MockCheckoutUseCase) SpecialTrains(ctx context.Context) []domain.SpecialTrain {
	return m.Called(ctx).Get(0).([]domain.SpecialTrain)
}

func (m *MockCheckoutUseCase) SeatLayout(ctx context.Context, travelClass string) []domain.Berth {
	return m.Called(ctx, travelClass).Get(0).([]domain.Berth)
}

func (m *MockCheckoutUseCase) Checkout(ctx context.Context, req checkout.Request) (domain.Booking, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Booking), args.Error(1)
}

func (m *MockCheckoutUseCase) ReportIssue(ctx context.Context, description string) error {
	return m.Called(ctx, description).Error(0)
}

type MockSessionUseCase struct {
	mock.Mock
}

func (m *MockSessionUseCase) SearchParams(ctx context.Context) domain.SearchParams {
	return m.Called(ctx).Get(0).(domain.SearchParams)
}

func (m *MockSessionUseCase) Search(ctx context.Context, params domain.SearchParams) (domain.SearchParams, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(domain.SearchParams), args.Error(1)
}

func (m *MockSessionUseCase) SetSearchParams(ctx context.Context, params domain.SearchParams) {
	m.Called(ctx, params)
}

func (m *MockSessionUseCase) Rebook(ctx context.Context) (domain.SearchParams, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.SearchParams), args.Error(1)
}

func (m *MockSessionUseCase) DarkMode(ctx context.Context) bool {
	return m.Called(ctx).Bool(0)
}

func (m *MockSessionUseCase) SetDarkMode(ctx context.Context, on bool) {
	m.Called(ctx, on)
}

func (m *MockSessionUseCase) Restore(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockSessionUseCase) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockNotificationsUseCase struct {
	mock.Mock
}

func (m *MockNotificationsUseCase) Add(ctx context.Context, n domain.NewNotification) (domain.Notification, error) {
	args := m.Called(ctx, n)
	return args.Get(0).(domain.Notification), args.Error(1)
}

func (m *MockNotificationsUseCase) MarkRead(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockNotificationsUseCase) MarkAllRead(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockNotificationsUseCase) Clear(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockNotificationsUseCase) List(ctx context.Context) []domain.Notification {
	return m.Called(ctx).Get(0).([]domain.Notification)
}

func (m *MockNotificationsUseCase) Unread(ctx context.Context) int {
	return m.Called(ctx).Int(0)
}

func (m *MockNotificationsUseCase) Restore(ctx context.Context) (repository.LoadStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(repository.LoadStatus), args.Error(1)
}

func (m *MockNotificationsUseCase) Reset(ctx context.Context) {
	m.Called(ctx)
}

type MockAssistantUseCase struct {
	mock.Mock
}

func (m *MockAssistantUseCase) Start(ctx context.Context) assistant.Session {
	return m.Called(ctx).Get(0).(assistant.Session)
}

func (m *MockAssistantUseCase) Send(ctx context.Context, sessionID, text string) (chat.Reply, error) {
	args := m.Called(ctx, sessionID, text)
	return args.Get(0).(chat.Reply), args.Error(1)
}

type MockTicketsUseCase struct {
	mock.Mock
}

func (m *MockTicketsUseCase) Download(ctx context.Context, bookingID string) (tickets.Document, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).(tickets.Document), args.Error(1)
}

func (m *MockTicketsUseCase) QRCode(ctx context.Context, bookingID string) ([]byte, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockTrackingUseCase struct {
	mock.Mock
}

func (m *MockTrackingUseCase) ShareLink(ctx context.Context, pnr string, pos *tracking.Position) string {
	return m.Called(ctx, pnr, pos).String(0)
}

func (m *MockTrackingUseCase) LiveShareLink(ctx context.Context, pnr string) string {
	return m.Called(ctx, pnr).String(0)
}

func (m *MockTrackingUseCase) Timeline(ctx context.Context, b domain.Booking) tracking.Journey {
	return m.Called(ctx, b).Get(0).(tracking.Journey)
}

func (m *MockTrackingUseCase) SetReminder(ctx context.Context, b domain.Booking) {
	m.Called(ctx, b)
}

func (m *MockTrackingUseCase) Stop() {
	m.Called()
}
