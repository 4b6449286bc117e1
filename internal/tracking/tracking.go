// Package tracking provides the live-journey helpers: share links, the journey
// timeline and arrival reminders.
package tracking

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/Domenick1991/railbooking/internal/domain"
	"github.com/Domenick1991/railbooking/internal/logging"
	"github.com/rs/zerolog"
)

const (
	trackBaseURL = "https://irctc.live/track"
	liveShareURL = "https://irctc2.0/share/live/"

	defaultReminderDelay = 5 * time.Second
	currentStop          = 2
)

type StopStatus string

const (
	StopDeparted StopStatus = "Departed"
	StopCurrent  StopStatus = "Current"
	StopUpcoming StopStatus = "Upcoming"
)

// Position is a device location in decimal degrees.
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Stop struct {
	Name     string     `json:"name"`
	Time     string     `json:"time"`
	Status   StopStatus `json:"status"`
	Delay    *int       `json:"delay"`
	Platform string     `json:"platform"`
}

type Journey struct {
	PNR         string  `json:"pnr"`
	Train       string  `json:"train"`
	TrainNumber string  `json:"train_number"`
	Stops       []Stop  `json:"stops"`
	Current     int     `json:"current"`
	Progress    float64 `json:"progress"`
}

// ShareLink builds the tracking link for pnr. Coordinates are appended only when
// pos is known.
func ShareLink(pnr string, pos *Position) string {
	link := trackBaseURL + "?pnr=" + url.QueryEscape(pnr)
	if pos == nil {
		return link
	}
	return link +
		"&lat=" + strconv.FormatFloat(pos.Latitude, 'f', 6, 64) +
		"&lng=" + strconv.FormatFloat(pos.Longitude, 'f', 6, 64)
}

// Timeline returns a synthetic five-stop journey for b.
func Timeline(b domain.Booking) Journey {
	onTime := 0
	late := 14
	stops := []Stop{
		{Name: b.From, Time: b.Time, Status: StopDeparted, Delay: &onTime, Platform: b.Platform},
		{Name: "Midway Station 1", Time: "10:45", Status: StopDeparted, Delay: &onTime, Platform: "3"},
		{Name: "Midway Station 2", Time: "13:20", Status: StopCurrent, Delay: &late, Platform: "2"},
		{Name: "Midway Station 3", Time: "16:10", Status: StopUpcoming, Platform: "1"},
		{Name: b.To, Time: "19:30", Status: StopUpcoming, Platform: "5"},
	}
	return Journey{
		PNR:         b.PNR,
		Train:       b.Train,
		TrainNumber: b.TrainNumber,
		Stops:       stops,
		Current:     currentStop,
		Progress:    float64(currentStop+1) / float64(len(stops)) * 100,
	}
}

type Notifier interface {
	Notify(ctx context.Context, typ domain.NotificationType, message, trainNumber string)
}

type TrackingUseCase interface {
	ShareLink(ctx context.Context, pnr string, pos *Position) string
	LiveShareLink(ctx context.Context, pnr string) string
	Timeline(ctx context.Context, b domain.Booking) Journey
	SetReminder(ctx context.Context, b domain.Booking)
	Stop()
}

type Tracker struct {
	notifier Notifier
	delay    time.Duration
	logger   *zerolog.Logger

	mu     sync.Mutex
	timers map[*time.Timer]struct{}
}

type Option func(*Tracker)

func WithReminderDelay(d time.Duration) Option {
	return func(t *Tracker) {
		if d > 0 {
			t.delay = d
		}
	}
}

func WithLogger(l *zerolog.Logger) Option {
	return func(t *Tracker) {
		t.logger = logging.OrNop(l)
	}
}

func NewTracker(notifier Notifier, opts ...Option) *Tracker {
	t := &Tracker{
		notifier: notifier,
		delay:    defaultReminderDelay,
		logger:   logging.OrNop(nil),
		timers:   make(map[*time.Timer]struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tracker) ShareLink(ctx context.Context, pnr string, pos *Position) string {
	return ShareLink(pnr, pos)
}

// LiveShareLink returns the family share link and records that it was shared.
func (t *Tracker) LiveShareLink(ctx context.Context, pnr string) string {
	t.notifier.Notify(ctx, domain.NotificationSuccess, "Live location shared with family", "")
	return liveShareURL + url.PathEscape(pnr)
}

func (t *Tracker) Timeline(ctx context.Context, b domain.Booking) Journey {
	return Timeline(b)
}

// SetReminder confirms the reminder now and fires the arrival notice after the
// configured delay.
func (t *Tracker) SetReminder(ctx context.Context, b domain.Booking) {
	t.notifier.Notify(ctx, domain.NotificationInfo,
		fmt.Sprintf("Arrival reminder set for %s - 30 mins before arrival", b.Train), b.TrainNumber)

	fireCtx := context.WithoutCancel(ctx)
	var timer *time.Timer
	t.mu.Lock()
	timer = time.AfterFunc(t.delay, func() {
		t.mu.Lock()
		_, pending := t.timers[timer]
		delete(t.timers, timer)
		t.mu.Unlock()
		if !pending {
			return
		}
		t.notifier.Notify(fireCtx, domain.NotificationInfo, "Your train arrives in 30 minutes!", b.TrainNumber)
		t.logger.Debug().Str("pnr", b.PNR).Msg("arrival reminder fired")
	})
	t.timers[timer] = struct{}{}
	t.mu.Unlock()
}

// Stop cancels reminders that have not fired yet.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for timer := range t.timers {
		timer.Stop()
		delete(t.timers, timer)
	}
}

var _ TrackingUseCase = (*Tracker)(nil)
