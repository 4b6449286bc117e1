package notify

import (
	"bytes"
	"context"
	"testing"

	"github.com/Domenick1991/railbooking/internal/kafka"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestDispatcher_Dispatch(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	d := NewDispatcher(&logger)

	err := d.Dispatch(context.Background(), kafka.NotificationEvent{
		ID:               "n-1",
		NotificationType: "cancellation",
		Message:          "A seat just opened up",
		TrainNumber:      "12345",
	})

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"train_number":"12345"`)
	assert.Contains(t, buf.String(), "A seat just opened up")
}

func TestDispatcher_EmptyMessage(t *testing.T) {
	d := NewDispatcher(nil)
	err := d.Dispatch(context.Background(), kafka.NotificationEvent{ID: "n-2"})
	assert.ErrorIs(t, err, ErrEmptyMessage)
}
