package api

import (
	"net/http"

	"github.com/Domenick1991/railbooking/internal/service/checkout"
	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	service checkout.CheckoutUseCase
}

type reportIssueRequest struct {
	Description string `json:"description"`
}

func NewCheckoutHandler(service checkout.CheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

func (h *CheckoutHandler) Register(router *gin.RouterGroup) {
	router.POST("/checkout", h.checkout)
	router.POST("/issues", h.reportIssue)
}

func (h *CheckoutHandler) checkout(c *gin.Context) {
	var req checkout.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b, err := h.service.Checkout(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *CheckoutHandler) reportIssue(c *gin.Context) {
	var req reportIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.ReportIssue(c.Request.Context(), req.Description); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}
