package handlers

import (
	"net/http"

	"github.com/billingfox/ozonator/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type CatalogHandler struct {
	service *service.CatalogService
}

func NewCatalogHandler(service *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) GetProducts(c *gin.Context) {
	products, err := h.service.Products(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("could not list products")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": products, "total": len(products)})
}

func (h *CatalogHandler) GetStocks(c *gin.Context) {
	stocks, err := h.service.Stocks(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("could not list stocks")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list stocks"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": stocks, "total": len(stocks)})
}

func (h *CatalogHandler) GetTransit(c *gin.Context) {
	transit, err := h.service.Transit(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("could not list transit records")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list transit records"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": transit, "total": len(transit)})
}

func (h *CatalogHandler) GetSales(c *gin.Context) {
	sales, err := h.service.Sales(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("could not list sales")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list sales"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": sales, "total": len(sales)})
}

func (h *CatalogHandler) GetLastUpdate(c *gin.Context) {
	info, err := h.service.LastUpdate(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("could not read update info")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read update info"})
		return
	}
	if info == nil {
		c.JSON(http.StatusOK, gin.H{"last_update": nil})
		return
	}
	c.JSON(http.StatusOK, info)
}
