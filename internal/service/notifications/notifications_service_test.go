package notifications

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Domenick1991/railbooking/internal/domain"
	"github.com/Domenick1991/railbooking/internal/kafka"
	"github.com/Domenick1991/railbooking/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) PublishWithRetry(ctx context.Context, topic, key string, value any, maxRetries int) error {
	args := m.Called(ctx, topic, key, value, maxRetries)
	return args.Error(0)
}

func newTestService(store repository.BlobStore, opts ...Option) *NotificationsService {
	seq := 0
	base := []Option{
		WithClock(func() time.Time { return time.Date(2026, 4, 10, 9, 5, 0, 0, time.UTC) }),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("n%d", seq)
		}),
	}
	return NewNotificationsService(store, append(base, opts...)...)
}

func TestNotificationsService_Add(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryBlobStore()
	svc := newTestService(store)

	first, err := svc.Add(ctx, domain.NewNotification{Message: "first"})
	require.NoError(t, err)
	_, err = svc.Add(ctx, domain.NewNotification{Message: "second", Type: domain.NotificationSuccess, TrainNumber: "12345"})
	require.NoError(t, err)

	assert.Equal(t, "n1", first.ID)
	assert.Equal(t, "09:05", first.Time)
	assert.Equal(t, domain.NotificationInfo, first.Type)
	assert.False(t, first.Read)

	list := svc.List(ctx)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Message)
	assert.Equal(t, 2, svc.Unread(ctx))

	var stored []domain.Notification
	status, err := repository.LoadJSON(ctx, store, repository.KeyNotifications, &stored)
	require.NoError(t, err)
	assert.Equal(t, repository.LoadOK, status)
	assert.Len(t, stored, 2)
}

func TestNotificationsService_AddValidation(t *testing.T) {
	svc := newTestService(repository.NewMemoryBlobStore())

	_, err := svc.Add(context.Background(), domain.NewNotification{})
	assert.ErrorIs(t, err, ErrMessageRequired)

	_, err = svc.Add(context.Background(), domain.NewNotification{Message: "x", Type: "urgent"})
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestNotificationsService_ReadAndClear(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(repository.NewMemoryBlobStore())
	a, _ := svc.Add(ctx, domain.NewNotification{Message: "a"})
	b, _ := svc.Add(ctx, domain.NewNotification{Message: "b"})

	require.NoError(t, svc.MarkRead(ctx, a.ID))
	assert.Equal(t, 1, svc.Unread(ctx))
	assert.ErrorIs(t, svc.MarkRead(ctx, "missing"), ErrNotificationNotFound)

	svc.MarkAllRead(ctx)
	assert.Equal(t, 0, svc.Unread(ctx))

	require.NoError(t, svc.Clear(ctx, b.ID))
	list := svc.List(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0].ID)
	assert.ErrorIs(t, svc.Clear(ctx, b.ID), ErrNotificationNotFound)
}

func TestNotificationsService_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("SeedsWelcomeWhenMissing", func(t *testing.T) {
		svc := newTestService(repository.NewMemoryBlobStore())
		status, err := svc.Restore(ctx)
		require.NoError(t, err)
		assert.Equal(t, repository.LoadMissing, status)

		list := svc.List(ctx)
		require.Len(t, list, 1)
		assert.Equal(t, WelcomeMessage, list[0].Message)
		assert.Equal(t, domain.NotificationInfo, list[0].Type)
	})

	t.Run("SeedsWelcomeWhenCorrupt", func(t *testing.T) {
		store := repository.NewMemoryBlobStore()
		require.NoError(t, store.Put(ctx, repository.KeyNotifications, []byte("oops")))
		svc := newTestService(store)

		status, err := svc.Restore(ctx)
		require.NoError(t, err)
		assert.Equal(t, repository.LoadCorrupt, status)
		assert.Len(t, svc.List(ctx), 1)
	})

	t.Run("LoadsStored", func(t *testing.T) {
		store := repository.NewMemoryBlobStore()
		require.NoError(t, repository.SaveJSON(ctx, store, repository.KeyNotifications, []domain.Notification{
			{ID: "x", Message: "stored", Read: true, Type: domain.NotificationWarning},
		}))
		svc := newTestService(store)

		status, err := svc.Restore(ctx)
		require.NoError(t, err)
		assert.Equal(t, repository.LoadOK, status)
		assert.Equal(t, 0, svc.Unread(ctx))
		assert.Equal(t, "stored", svc.List(ctx)[0].Message)
	})
}

func TestNotificationsService_Reset(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(repository.NewMemoryBlobStore())
	_, _ = svc.Add(ctx, domain.NewNotification{Message: "a"})

	svc.Reset(ctx)
	assert.Empty(t, svc.List(ctx))
}

func TestNotificationsService_Publish(t *testing.T) {
	ctx := context.Background()
	producer := &MockProducer{}
	svc := newTestService(repository.NewMemoryBlobStore(), WithProducer(producer, "notifications"))

	producer.On("PublishWithRetry", ctx, "notifications", "n1", mock.MatchedBy(func(e kafka.NotificationEvent) bool {
		return e.Type == kafka.EventNotification && e.Message == "hello" && e.NotificationType == "warning"
	}), 1).Return(errors.New("broker down")).Once()

	_, err := svc.Add(ctx, domain.NewNotification{Message: "hello", Type: domain.NotificationWarning})
	assert.NoError(t, err)
	producer.AssertExpectations(t)
}

func TestNotificationsService_NoTopicSkipsPublish(t *testing.T) {
	producer := &MockProducer{}
	svc := newTestService(repository.NewMemoryBlobStore(), WithProducer(producer, ""))

	svc.Notify(context.Background(), domain.NotificationInfo, "quiet", "")
	producer.AssertNotCalled(t, "PublishWithRetry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Len(t, svc.List(context.Background()), 1)
}
