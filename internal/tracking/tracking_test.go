package tracking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Domenick1991/railbooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu   sync.Mutex
	msgs []string
	done chan struct{}
}

func (r *recordingNotifier) Notify(ctx context.Context, typ domain.NotificationType, message, trainNumber string) {
	r.mu.Lock()
	r.msgs = append(r.msgs, message)
	r.mu.Unlock()
	if r.done != nil && message == "Your train arrives in 30 minutes!" {
		close(r.done)
	}
}

func (r *recordingNotifier) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.msgs...)
}

func TestShareLink(t *testing.T) {
	tests := []struct {
		name string
		pos  *Position
		want string
	}{
		{name: "no position", want: "https://irctc.live/track?pnr=PNR123"},
		{
			name: "with position",
			pos:  &Position{Latitude: 28.6139, Longitude: 77.2090},
			want: "https://irctc.live/track?pnr=PNR123&lat=28.613900&lng=77.209000",
		},
		{
			name: "negative coordinates",
			pos:  &Position{Latitude: -33.8688197, Longitude: 151.2093},
			want: "https://irctc.live/track?pnr=PNR123&lat=-33.868820&lng=151.209300",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShareLink("PNR123", tt.pos))
		})
	}
}

func TestTimeline(t *testing.T) {
	j := Timeline(domain.Booking{From: "New Delhi", To: "Mumbai Central", Time: "06:00", Platform: "Platform 7", PNR: "PNR1"})

	require.Len(t, j.Stops, 5)
	assert.Equal(t, "New Delhi", j.Stops[0].Name)
	assert.Equal(t, "Platform 7", j.Stops[0].Platform)
	assert.Equal(t, "Mumbai Central", j.Stops[4].Name)
	assert.Equal(t, StopCurrent, j.Stops[j.Current].Status)
	assert.Equal(t, 14, *j.Stops[2].Delay)
	assert.Nil(t, j.Stops[3].Delay)
	assert.InDelta(t, 60.0, j.Progress, 1e-9)
}

func TestTracker_LiveShareLink(t *testing.T) {
	n := &recordingNotifier{}
	tr := NewTracker(n)

	assert.Equal(t, "https://irctc2.0/share/live/PNR22400000", tr.LiveShareLink(context.Background(), "PNR22400000"))
	assert.Equal(t, []string{"Live location shared with family"}, n.messages())
}

func TestTracker_SetReminder(t *testing.T) {
	n := &recordingNotifier{done: make(chan struct{})}
	tr := NewTracker(n, WithReminderDelay(10*time.Millisecond))

	tr.SetReminder(context.Background(), domain.Booking{Train: "Rajdhani Express", TrainNumber: "12345"})

	select {
	case <-n.done:
	case <-time.After(2 * time.Second):
		t.Fatal("reminder did not fire")
	}
	assert.Equal(t, []string{
		"Arrival reminder set for Rajdhani Express - 30 mins before arrival",
		"Your train arrives in 30 minutes!",
	}, n.messages())
}

func TestTracker_Stop(t *testing.T) {
	n := &recordingNotifier{}
	tr := NewTracker(n, WithReminderDelay(50*time.Millisecond))

	tr.SetReminder(context.Background(), domain.Booking{Train: "Duronto Express"})
	tr.Stop()
	time.Sleep(100 * time.Millisecond)

	assert.Len(t, n.messages(), 1)
}
