package entities

import (
	"github.com/shopspring/decimal"
)

// RiskBand grades revenue concentration risk
type RiskBand string

const (
	RiskBandLow    RiskBand = "low"
	RiskBandMedium RiskBand = "medium"
	RiskBandHigh   RiskBand = "high"
)

// ProcessorShare is one processor's slice of a month's revenue
type ProcessorShare struct {
	ProcessorName string          `json:"processorName"`
	Revenue       decimal.Decimal `json:"revenue"`
	AccountCount  int             `json:"accountCount"`
}

// ConcentrationRisk is the top-N revenue share of a month and its band.
// Bands are fixed: share under 25% is low, under 40% medium, else high.
type ConcentrationRisk struct {
	TopN         int      `json:"topN"`
	SharePercent float64  `json:"sharePercent"`
	RiskBand     RiskBand `json:"riskBand"`
}

// MonthlyMetrics is a derived, read-only aggregate for one month. It is
// always recomputed from processor record history and never persisted as a
// source of truth.
type MonthlyMetrics struct {
	Month              string            `json:"month"`
	TotalRevenue       decimal.Decimal   `json:"totalRevenue"`
	AccountCount       int               `json:"accountCount"`
	RetainedAccounts   int               `json:"retainedAccounts"`
	NewAccounts        int               `json:"newAccounts"`
	LostAccounts       int               `json:"lostAccounts"`
	RetentionRate      float64           `json:"retentionRate"`
	AttritionRate      float64           `json:"attritionRate"`
	ProcessorBreakdown []ProcessorShare  `json:"processorBreakdown"`
	Concentration      ConcentrationRisk `json:"concentration"`
}
