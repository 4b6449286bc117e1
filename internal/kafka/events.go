package kafka

import "time"

const (
	EventBookingCreated   = "booking_created"
	EventBookingUpdated   = "booking_updated"
	EventBookingCancelled = "booking_cancelled"
	EventNotification     = "notification"
)

type BookingEvent struct {
	Type        string    `json:"type"`
	BookingID   string    `json:"booking_id"`
	PNR         string    `json:"pnr"`
	TrainNumber string    `json:"train_number"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	Date        string    `json:"date"`
	Status      string    `json:"status"`
	Amount      int64     `json:"amount"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type NotificationEvent struct {
	Type             string    `json:"type"`
	ID               string    `json:"id"`
	NotificationType string    `json:"notification_type"`
	Message          string    `json:"message"`
	TrainNumber      string    `json:"train_number,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
