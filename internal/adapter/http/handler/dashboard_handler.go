package handler

import (
	"strconv"

	"zerah-finance/internal/core/ports"
	"zerah-finance/pkg/apperror"
	"zerah-finance/pkg/response"

	"github.com/gin-gonic/gin"
)

// DashboardHandler handles dashboard endpoints.
type DashboardHandler struct {
	reportingSvc ports.ReportingService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(reportingSvc ports.ReportingService) *DashboardHandler {
	return &DashboardHandler{reportingSvc: reportingSvc}
}

// GetStats handles GET /api/v1/dashboard/stats.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.reportingSvc.GetDashboardStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, stats)
}

// Recent handles GET /api/v1/dashboard/recent?n=.
func (h *DashboardHandler) Recent(c *gin.Context) {
	n := ports.DashboardRecentCount
	if raw := c.Query("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, apperror.Validation("n must be an integer"))
			return
		}
		n = v
	}

	txs, err := h.reportingSvc.Recent(c.Request.Context(), n)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, txs, len(txs))
}
