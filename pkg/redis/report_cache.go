package redis

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"residual-hub.backend/internal/domain/entities"
)

// ReportCache stores computed monthly report payloads in Redis
type ReportCache struct {
	ttl time.Duration
}

var (
	setReportValue = Set
	getReportValue = Get
	delReportValue = Del
)

// NewReportCache creates a new report cache with the given TTL
func NewReportCache(ttl time.Duration) *ReportCache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &ReportCache{ttl: ttl}
}

func reportKey(from, to, processorName string) string {
	key := "report:" + from + ":" + to
	if processorName != "" {
		key += ":" + processorName
	}
	return key
}

// PutMonthly stores a monthly metrics report
func (c *ReportCache) PutMonthly(ctx context.Context, from, to, processorName string, report []*entities.MonthlyMetrics) error {
	jsonData, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return setReportValue(ctx, reportKey(from, to, processorName), jsonData, c.ttl)
}

// GetMonthly retrieves a cached monthly metrics report.
// Returns (nil, false, nil) on a cache miss.
func (c *ReportCache) GetMonthly(ctx context.Context, from, to, processorName string) ([]*entities.MonthlyMetrics, bool, error) {
	data, err := getReportValue(ctx, reportKey(from, to, processorName))
	if err != nil {
		if err == goredis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}

	var report []*entities.MonthlyMetrics
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, false, err
	}

	return report, true, nil
}

// InvalidateMonthly removes a cached report, typically after new data lands
func (c *ReportCache) InvalidateMonthly(ctx context.Context, from, to, processorName string) error {
	return delReportValue(ctx, reportKey(from, to, processorName))
}
