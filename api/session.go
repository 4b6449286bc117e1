package api

import (
	"net/http"

	"github.com/Domenick1991/railbooking/internal/domain"
	"github.com/Domenick1991/railbooking/internal/service/session"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	service session.SessionUseCase
}

type darkModeRequest struct {
	Enabled bool `json:"enabled"`
}

func NewSessionHandler(service session.SessionUseCase) *SessionHandler {
	return &SessionHandler{service: service}
}

func (h *SessionHandler) Register(router *gin.RouterGroup) {
	router.GET("/search", h.params)
	router.POST("/search", h.search)
	router.POST("/search/rebook", h.rebook)
	router.GET("/preferences/dark-mode", h.darkMode)
	router.PUT("/preferences/dark-mode", h.setDarkMode)
	router.POST("/logout", h.logout)
}

func (h *SessionHandler) params(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.SearchParams(c.Request.Context()))
}

func (h *SessionHandler) search(c *gin.Context) {
	var req domain.SearchParams
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	params, err := h.service.Search(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, params)
}

func (h *SessionHandler) rebook(c *gin.Context) {
	params, err := h.service.Rebook(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, params)
}

func (h *SessionHandler) darkMode(c *gin.Context) {
	c.JSON(http.StatusOK, darkModeRequest{Enabled: h.service.DarkMode(c.Request.Context())})
}

func (h *SessionHandler) setDarkMode(c *gin.Context) {
	var req darkModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.service.SetDarkMode(c.Request.Context(), req.Enabled)
	c.JSON(http.StatusOK, req)
}

func (h *SessionHandler) logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
