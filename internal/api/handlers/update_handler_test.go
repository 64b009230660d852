package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/billingfox/ozonator/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestUpdateStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("wrapped: %w", domain.ErrUpdateCooldown), http.StatusTooManyRequests},
		{fmt.Errorf("wrapped: %w", domain.ErrRateLimited), http.StatusTooManyRequests},
		{domain.ErrUpdateInProgress, http.StatusConflict},
		{fmt.Errorf("sales: %w", domain.ErrNoDataAvailable), http.StatusBadGateway},
		{errors.New("anything else"), http.StatusInternalServerError},
		{domain.ErrReportTimeout, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, updateStatusCode(tt.err), "err=%v", tt.err)
	}
}
