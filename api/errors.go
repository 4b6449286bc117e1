package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/railbooking/internal/service/assistant"
	"github.com/Domenick1991/railbooking/internal/service/booking"
	"github.com/Domenick1991/railbooking/internal/service/checkout"
	"github.com/Domenick1991/railbooking/internal/service/notifications"
	"github.com/Domenick1991/railbooking/internal/service/session"
	"github.com/gin-gonic/gin"
)

var notFoundErrors = []error{
	booking.ErrBookingNotFound,
	notifications.ErrNotificationNotFound,
	assistant.ErrSessionNotFound,
	checkout.ErrTrainNotFound,
	session.ErrNoRecentJourney,
}

var badRequestErrors = []error{
	booking.ErrPassengerNameRequired,
	booking.ErrInvalidPassengerIndex,
	notifications.ErrMessageRequired,
	notifications.ErrInvalidType,
	session.ErrFromRequired,
	session.ErrToRequired,
	session.ErrSameStation,
	session.ErrDateRequired,
	session.ErrInvalidDate,
	session.ErrInvalidPassengers,
	assistant.ErrEmptyMessage,
	checkout.ErrSeatCountMismatch,
	checkout.ErrUnknownSeat,
	checkout.ErrSeatOccupied,
	checkout.ErrInvalidPaymentMethod,
	checkout.ErrUPIRequired,
	checkout.ErrInvalidUPI,
	checkout.ErrPassengerNameRequired,
	checkout.ErrDescriptionRequired,
}

func statusFor(err error) int {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return http.StatusNotFound
		}
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
