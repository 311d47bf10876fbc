package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"residual-hub.backend/internal/interfaces/http/response"
	"residual-hub.backend/internal/usecases"
	"residual-hub.backend/pkg/logger"
	"residual-hub.backend/pkg/metrics"
	"residual-hub.backend/pkg/redis"
)

// ReportHandler serves derived monthly metrics
type ReportHandler struct {
	metricsUsecase *usecases.MetricsUsecase
	reportCache    *redis.ReportCache
}

// NewReportHandler creates a new report handler. reportCache may be nil,
// in which case every request recomputes.
func NewReportHandler(metricsUsecase *usecases.MetricsUsecase, reportCache *redis.ReportCache) *ReportHandler {
	return &ReportHandler{
		metricsUsecase: metricsUsecase,
		reportCache:    reportCache,
	}
}

// Monthly returns metrics for every month in a range
// GET /api/v1/reports/monthly?from=&to=&processor=
func (h *ReportHandler) Monthly(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		response.ErrorWithStatus(c, http.StatusBadRequest, "from and to query parameters are required")
		return
	}
	processor := c.Query("processor")

	ctx := c.Request.Context()

	if h.reportCache != nil {
		cached, hit, err := h.reportCache.GetMonthly(ctx, from, to, processor)
		if err != nil {
			logger.Warn(ctx, "report cache read failed", zap.Error(err))
		}
		metrics.RecordReportCacheLookup(hit)
		if hit {
			response.Success(c, http.StatusOK, gin.H{"months": cached, "cached": true})
			return
		}
	}

	months, err := h.metricsUsecase.MonthRange(ctx, from, to, processor)
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.reportCache != nil {
		if err := h.reportCache.PutMonthly(ctx, from, to, processor, months); err != nil {
			logger.Warn(ctx, "report cache write failed", zap.Error(err))
		}
	}

	response.Success(c, http.StatusOK, gin.H{"months": months, "cached": false})
}
