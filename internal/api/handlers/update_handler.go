package handlers

import (
	"errors"
	"net/http"

	"github.com/billingfox/ozonator/internal/domain"
	"github.com/billingfox/ozonator/internal/service"
	"github.com/gin-gonic/gin"
)

type UpdateHandler struct {
	service *service.UpdateService
}

func NewUpdateHandler(service *service.UpdateService) *UpdateHandler {
	return &UpdateHandler{service: service}
}

// RunUpdate triggers the full update pipeline. The stage report is
// returned on success and failure alike.
func (h *UpdateHandler) RunUpdate(c *gin.Context) {
	report, err := h.service.Run(c.Request.Context())
	if err != nil {
		c.JSON(updateStatusCode(err), gin.H{
			"error":  err.Error(),
			"report": report,
		})
		return
	}
	c.JSON(http.StatusOK, report)
}

func updateStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrUpdateCooldown),
		errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrUpdateInProgress):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNoDataAvailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
