package api

import (
	"net/http"

	"github.com/Domenick1991/railbooking/internal/cities"
	"github.com/Domenick1991/railbooking/internal/domain"
	"github.com/Domenick1991/railbooking/internal/service/checkout"
	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	service checkout.CheckoutUseCase
}

func NewCatalogHandler(service checkout.CheckoutUseCase) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) Register(router *gin.RouterGroup) {
	router.GET("/cities", h.cities)
	router.GET("/trains", h.trains)
	router.GET("/trains/special", h.specialTrains)
	router.GET("/seatmap", h.seatMap)
}

// cities returns the whole catalog, or the fuzzy match result when q is given.
func (h *CatalogHandler) cities(c *gin.Context) {
	q, ok := c.GetQuery("q")
	if !ok {
		c.JSON(http.StatusOK, cities.Catalog())
		return
	}
	c.JSON(http.StatusOK, cities.Match(q, cities.Catalog()))
}

func (h *CatalogHandler) trains(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Trains(c.Request.Context()))
}

func (h *CatalogHandler) specialTrains(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.SpecialTrains(c.Request.Context()))
}

func (h *CatalogHandler) seatMap(c *gin.Context) {
	class := c.DefaultQuery("class", domain.DefaultTravelClass)
	c.JSON(http.StatusOK, h.service.SeatLayout(c.Request.Context(), class))
}
