package domain

import "time"

type NotificationType string

const (
	NotificationInfo         NotificationType = "info"
	NotificationSuccess      NotificationType = "success"
	NotificationWarning      NotificationType = "warning"
	NotificationError        NotificationType = "error"
	NotificationCancellation NotificationType = "cancellation"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationInfo, NotificationSuccess, NotificationWarning, NotificationError, NotificationCancellation:
		return true
	}
	return false
}

type Notification struct {
	ID          string           `json:"id"`
	Message     string           `json:"message"`
	Time        string           `json:"time"`
	CreatedAt   time.Time        `json:"created_at"`
	Read        bool             `json:"read"`
	Type        NotificationType `json:"type"`
	TrainNumber string           `json:"train_number,omitempty"`
}

// NewNotification is the caller-supplied part of a notification; id and time are assigned on add.
type NewNotification struct {
	Message     string           `json:"message"`
	Type        NotificationType `json:"type"`
	TrainNumber string           `json:"train_number,omitempty"`
}
