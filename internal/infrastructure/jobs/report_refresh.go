package jobs

import (
	"context"
	"log"
	"time"

	"residual-hub.backend/internal/domain/entities"
	"residual-hub.backend/internal/usecases"
	"residual-hub.backend/pkg/redis"
)

// trailingMonths is the report window the job keeps warm
const trailingMonths = 12

// ReportRefreshJob recomputes the trailing monthly report on an interval
// and stores it in the report cache, so dashboard reads stay cheap even
// right after an upload invalidated the cache.
type ReportRefreshJob struct {
	metricsUsecase *usecases.MetricsUsecase
	cache          *redis.ReportCache
	interval       time.Duration
	stop           chan struct{}

	now func() time.Time
}

func NewReportRefreshJob(metricsUsecase *usecases.MetricsUsecase, cache *redis.ReportCache, interval time.Duration) *ReportRefreshJob {
	if interval <= 0 {
		interval = time.Hour
	}
	return &ReportRefreshJob{
		metricsUsecase: metricsUsecase,
		cache:          cache,
		interval:       interval,
		stop:           make(chan struct{}),
		now:            time.Now,
	}
}

func (j *ReportRefreshJob) Start(ctx context.Context) {
	log.Println("🕐 Starting report refresh job...")

	// Warm the cache immediately rather than waiting a full interval
	j.refreshOnce(ctx)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Report refresh job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Report refresh job stopped")
			return
		case <-ticker.C:
			j.refreshOnce(ctx)
		}
	}
}

func (j *ReportRefreshJob) Stop() {
	close(j.stop)
}

func (j *ReportRefreshJob) refreshOnce(ctx context.Context) {
	// Anchor on the first of the month so AddDate never skips a short month
	y, m, _ := j.now().UTC().Date()
	anchor := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	to := anchor.Format(entities.MonthLayout)
	from := anchor.AddDate(0, -(trailingMonths - 1), 0).Format(entities.MonthLayout)

	months, err := j.metricsUsecase.MonthRange(ctx, from, to, "")
	if err != nil {
		log.Printf("❌ Error computing monthly report %s..%s: %v", from, to, err)
		return
	}

	if err := j.cache.PutMonthly(ctx, from, to, "", months); err != nil {
		log.Printf("❌ Error caching monthly report %s..%s: %v", from, to, err)
		return
	}

	log.Printf("✅ Refreshed monthly report cache (%s..%s, %d months)", from, to, len(months))
}
