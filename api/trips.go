package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/Domenick1991/railbooking/internal/service/booking"
	"github.com/Domenick1991/railbooking/internal/tickets"
	"github.com/Domenick1991/railbooking/internal/tracking"
	"github.com/gin-gonic/gin"
)

// TripHandler serves the per-booking travel documents and live tracking.
type TripHandler struct {
	bookings booking.BookingUseCase
	tickets  tickets.TicketsUseCase
	tracker  tracking.TrackingUseCase
}

func NewTripHandler(bookings booking.BookingUseCase, tickets tickets.TicketsUseCase, tracker tracking.TrackingUseCase) *TripHandler {
	return &TripHandler{bookings: bookings, tickets: tickets, tracker: tracker}
}

func (h *TripHandler) Register(router *gin.RouterGroup) {
	g := router.Group("/bookings/:id")
	g.GET("/ticket.pdf", h.ticket)
	g.GET("/qr.png", h.qr)
	g.GET("/tracking", h.timeline)
	g.POST("/reminder", h.reminder)
	g.POST("/share", h.share)
	g.POST("/share/live", h.shareLive)
}

func (h *TripHandler) ticket(c *gin.Context) {
	doc, err := h.tickets.Download(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	c.Data(http.StatusOK, "application/pdf", doc.Content)
}

func (h *TripHandler) qr(c *gin.Context) {
	png, err := h.tickets.QRCode(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func (h *TripHandler) timeline(c *gin.Context) {
	b, err := h.bookings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.tracker.Timeline(c.Request.Context(), b))
}

func (h *TripHandler) reminder(c *gin.Context) {
	b, err := h.bookings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	h.tracker.SetReminder(c.Request.Context(), b)
	c.Status(http.StatusAccepted)
}

// share accepts an optional device position. An empty body yields the link without coordinates.
func (h *TripHandler) share(c *gin.Context) {
	b, err := h.bookings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	var pos *tracking.Position
	var req tracking.Position
	switch err := c.ShouldBindJSON(&req); {
	case err == nil:
		pos = &req
	case errors.Is(err, io.EOF):
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"link": h.tracker.ShareLink(c.Request.Context(), b.PNR, pos)})
}

func (h *TripHandler) shareLive(c *gin.Context) {
	b, err := h.bookings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"link": h.tracker.LiveShareLink(c.Request.Context(), b.PNR)})
}
