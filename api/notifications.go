package api

import (
	"net/http"

	"github.com/Domenick1991/railbooking/internal/domain"
	"github.com/Domenick1991/railbooking/internal/service/notifications"
	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	service notifications.NotificationsUseCase
}

type notificationsResponse struct {
	Items  []domain.Notification `json:"items"`
	Unread int                   `json:"unread"`
}

func NewNotificationHandler(service notifications.NotificationsUseCase) *NotificationHandler {
	return &NotificationHandler{service: service}
}

func (h *NotificationHandler) Register(router *gin.RouterGroup) {
	g := router.Group("/notifications")
	g.GET("", h.list)
	g.POST("", h.create)
	g.POST("/read-all", h.markAllRead)
	g.PUT("/:id/read", h.markRead)
	g.DELETE("/:id", h.clear)
}

func (h *NotificationHandler) list(c *gin.Context) {
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, notificationsResponse{
		Items:  h.service.List(ctx),
		Unread: h.service.Unread(ctx),
	})
}

func (h *NotificationHandler) create(c *gin.Context) {
	var req domain.NewNotification
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	n, err := h.service.Add(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, n)
}

func (h *NotificationHandler) markAllRead(c *gin.Context) {
	h.service.MarkAllRead(c.Request.Context())
	c.Status(http.StatusNoContent)
}

func (h *NotificationHandler) markRead(c *gin.Context) {
	if err := h.service.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *NotificationHandler) clear(c *gin.Context) {
	if err := h.service.Clear(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
