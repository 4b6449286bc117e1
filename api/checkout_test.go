package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/Domenick1991/railbooking/internal/domain"
	"github.com/Domenick1991/railbooking/internal/service/checkout"
	"github.com/stretchr/testify/assert"
)

func TestCheckoutHandler_checkout(t *testing.T) {
	req := checkout.Request{
		TrainNumber:   "12345",
		Seats:         []string{"1"},
		PaymentMethod: checkout.PaymentUPI,
		UPIID:         "asha@upi",
		Passengers:    []domain.PassengerDetail{{Name: "Asha", Age: 29, Gender: domain.GenderFemale}},
	}

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "confirmed", status: http.StatusCreated},
		{name: "occupied seat", err: fmt.Errorf("%w: 1", checkout.ErrSeatOccupied), status: http.StatusBadRequest},
		{name: "unknown train", err: checkout.ErrTrainNotFound, status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockCheckoutUseCase{}
			handler := NewCheckoutHandler(mockService)

			c, w := newTestContext("POST", "/api/v1/checkout", req)
			mockService.On("Checkout", c.Request.Context(), req).Return(domain.Booking{PNR: "PNR22400000"}, tt.err)

			handler.checkout(c)

			assert.Equal(t, tt.status, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestCheckoutHandler_reportIssue(t *testing.T) {
	mockService := &MockCheckoutUseCase{}
	handler := NewCheckoutHandler(mockService)

	c, _ := newTestContext("POST", "/api/v1/issues", reportIssueRequest{Description: "Coach is overcrowded"})
	mockService.On("ReportIssue", c.Request.Context(), "Coach is overcrowded").Return(nil)

	handler.reportIssue(c)

	assert.Equal(t, http.StatusAccepted, c.Writer.Status())
	mockService.AssertExpectations(t)
}
