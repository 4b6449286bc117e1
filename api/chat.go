package api

import (
	"net/http"

	"github.com/Domenick1991/railbooking/internal/service/assistant"
	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	service assistant.AssistantUseCase
	limiter *RateLimiter
}

type chatMessageRequest struct {
	Text string `json:"text"`
}

func NewChatHandler(service assistant.AssistantUseCase, limiter *RateLimiter) *ChatHandler {
	return &ChatHandler{service: service, limiter: limiter}
}

func (h *ChatHandler) Register(router *gin.RouterGroup) {
	g := router.Group("/chat/sessions", h.limiter.Middleware())
	g.POST("", h.start)
	g.POST("/:id/messages", h.send)
}

func (h *ChatHandler) start(c *gin.Context) {
	c.JSON(http.StatusCreated, h.service.Start(c.Request.Context()))
}

func (h *ChatHandler) send(c *gin.Context) {
	var req chatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reply, err := h.service.Send(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}
