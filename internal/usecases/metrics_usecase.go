package usecases

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"residual-hub.backend/internal/domain/entities"
	domainerrors "residual-hub.backend/internal/domain/errors"
	"residual-hub.backend/internal/domain/repositories"
)

// Concentration risk bands. Fixed constants; per-tenant thresholds are not
// part of the current design.
const (
	concentrationLowCeiling    = 25.0
	concentrationMediumCeiling = 40.0
)

// MetricsUsecase computes monthly revenue and retention metrics. Metrics
// are always a projection over processor record history, recomputed on
// demand and never persisted as a source of truth.
type MetricsUsecase struct {
	recordRepo repositories.ProcessorRecordRepository
	topN       int
}

// NewMetricsUsecase creates a new metrics usecase. topN is the number of
// merchants counted toward the revenue concentration share.
func NewMetricsUsecase(recordRepo repositories.ProcessorRecordRepository, topN int) *MetricsUsecase {
	if topN <= 0 {
		topN = 5
	}
	return &MetricsUsecase{recordRepo: recordRepo, topN: topN}
}

type monthBucket struct {
	merchants   map[string]decimal.Decimal // merchant id -> summed net
	byProcessor map[string]*entities.ProcessorShare
	total       decimal.Decimal
}

// MonthRange computes metrics for every month in [from, to], optionally
// restricted to one processor. Retention for the first month in range uses
// the month immediately before it.
func (u *MetricsUsecase) MonthRange(ctx context.Context, from, to, processorName string) ([]*entities.MonthlyMetrics, error) {
	fromMonth, err := entities.ParseMonth(from)
	if err != nil {
		return nil, domainerrors.BadRequest("from month must be formatted YYYY-MM")
	}
	toMonth, err := entities.ParseMonth(to)
	if err != nil {
		return nil, domainerrors.BadRequest("to month must be formatted YYYY-MM")
	}
	if toMonth.Before(fromMonth) {
		return nil, domainerrors.BadRequest("month range is inverted")
	}

	// The month before the range seeds the first retention computation
	records, err := u.recordRepo.ListRange(ctx, entities.PreviousMonth(from), to, processorName)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]*monthBucket)
	for _, rec := range records {
		b, ok := buckets[rec.Month]
		if !ok {
			b = &monthBucket{
				merchants:   make(map[string]decimal.Decimal),
				byProcessor: make(map[string]*entities.ProcessorShare),
			}
			buckets[rec.Month] = b
		}
		b.merchants[rec.MerchantID] = b.merchants[rec.MerchantID].Add(rec.Net)
		b.total = b.total.Add(rec.Net)

		share, ok := b.byProcessor[rec.ProcessorName]
		if !ok {
			share = &entities.ProcessorShare{ProcessorName: rec.ProcessorName}
			b.byProcessor[rec.ProcessorName] = share
		}
		share.Revenue = share.Revenue.Add(rec.Net)
		share.AccountCount++
	}

	var out []*entities.MonthlyMetrics
	for cursor := fromMonth; !cursor.After(toMonth); cursor = cursor.AddDate(0, 1, 0) {
		month := cursor.Format(entities.MonthLayout)
		out = append(out, u.buildMonth(month, buckets[month], buckets[entities.PreviousMonth(month)]))
	}
	return out, nil
}

func (u *MetricsUsecase) buildMonth(month string, bucket, previous *monthBucket) *entities.MonthlyMetrics {
	m := &entities.MonthlyMetrics{
		Month:        month,
		TotalRevenue: decimal.Zero,
		Concentration: entities.ConcentrationRisk{
			TopN:     u.topN,
			RiskBand: entities.RiskBandLow,
		},
	}

	current := map[string]decimal.Decimal{}
	if bucket != nil {
		current = bucket.merchants
		m.TotalRevenue = bucket.total
		m.AccountCount = len(bucket.merchants)
		m.ProcessorBreakdown = sortedShares(bucket.byProcessor)
	}

	prior := map[string]decimal.Decimal{}
	if previous != nil {
		prior = previous.merchants
	}

	for id := range current {
		if _, ok := prior[id]; ok {
			m.RetainedAccounts++
		} else {
			m.NewAccounts++
		}
	}
	for id := range prior {
		if _, ok := current[id]; !ok {
			m.LostAccounts++
		}
	}

	if len(prior) == 0 {
		// Retention over an empty prior month is defined as 100
		m.RetentionRate = 100
		m.AttritionRate = 0
	} else {
		m.RetentionRate = float64(m.RetainedAccounts) / float64(len(prior)) * 100
		m.AttritionRate = float64(m.LostAccounts) / float64(len(prior)) * 100
	}

	m.Concentration = u.concentration(current, m.TotalRevenue)
	return m
}

// concentration ranks merchants by revenue and reports the top-N share of
// the month's total
func (u *MetricsUsecase) concentration(merchants map[string]decimal.Decimal, total decimal.Decimal) entities.ConcentrationRisk {
	risk := entities.ConcentrationRisk{TopN: u.topN, RiskBand: entities.RiskBandLow}
	if len(merchants) == 0 || total.IsZero() {
		return risk
	}

	revenues := make([]decimal.Decimal, 0, len(merchants))
	for _, net := range merchants {
		revenues = append(revenues, net)
	}
	sort.Slice(revenues, func(i, j int) bool { return revenues[i].GreaterThan(revenues[j]) })

	topSum := decimal.Zero
	for i, net := range revenues {
		if i >= u.topN {
			break
		}
		topSum = topSum.Add(net)
	}

	share, _ := topSum.Div(total).Mul(decimal.NewFromInt(100)).Float64()
	risk.SharePercent = share
	switch {
	case share < concentrationLowCeiling:
		risk.RiskBand = entities.RiskBandLow
	case share < concentrationMediumCeiling:
		risk.RiskBand = entities.RiskBandMedium
	default:
		risk.RiskBand = entities.RiskBandHigh
	}
	return risk
}

func sortedShares(byProcessor map[string]*entities.ProcessorShare) []entities.ProcessorShare {
	out := make([]entities.ProcessorShare, 0, len(byProcessor))
	for _, share := range byProcessor {
		out = append(out, *share)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue.Equal(out[j].Revenue) {
			return out[i].ProcessorName < out[j].ProcessorName
		}
		return out[i].Revenue.GreaterThan(out[j].Revenue)
	})
	return out
}
