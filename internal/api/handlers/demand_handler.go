package handlers

import (
	"net/http"

	"github.com/billingfox/ozonator/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type DemandHandler struct {
	service *service.DemandService
}

func NewDemandHandler(service *service.DemandService) *DemandHandler {
	return &DemandHandler{service: service}
}

func (h *DemandHandler) GetDemand(c *gin.Context) {
	table, err := h.service.Table(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("could not build demand table")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build demand table"})
		return
	}
	c.JSON(http.StatusOK, table)
}
