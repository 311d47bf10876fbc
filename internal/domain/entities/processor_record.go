package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// MonthLayout is the canonical YYYY-MM month format used across the pipeline
const MonthLayout = "2006-01"

// RawRow is one unparsed row of a processor export, keyed by the column
// headers exactly as they appear in the file.
type RawRow map[string]string

// ProcessorRecord is one row of a monthly processor export after
// normalization. Records are immutable once validated; a re-upload of the
// same processor+month supersedes the prior set instead of merging into it.
type ProcessorRecord struct {
	ID               uuid.UUID       `json:"id"`
	MerchantID       string          `json:"merchantId"`
	MerchantName     string          `json:"merchantName"`
	Month            string          `json:"month"` // YYYY-MM
	Net              decimal.Decimal `json:"net"`   // may be negative
	SalesVolume      decimal.Decimal `json:"salesVolume"`
	TransactionCount int             `json:"transactionCount"`
	ProcessorName    string          `json:"processorName"`
	GroupCode        null.String     `json:"groupCode,omitempty"`
	BranchID         null.String     `json:"branchId,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// HasPartnerIndicator reports whether the record carries a group code or
// branch id, which marks the merchant as belonging to a partner book.
func (r *ProcessorRecord) HasPartnerIndicator() bool {
	return (r.GroupCode.Valid && r.GroupCode.String != "") ||
		(r.BranchID.Valid && r.BranchID.String != "")
}

// ParseMonth parses a YYYY-MM month string
func ParseMonth(month string) (time.Time, error) {
	return time.Parse(MonthLayout, month)
}

// PreviousMonth returns the YYYY-MM month immediately before the given one.
// Returns an empty string when the input cannot be parsed.
func PreviousMonth(month string) string {
	t, err := ParseMonth(month)
	if err != nil {
		return ""
	}
	return t.AddDate(0, -1, 0).Format(MonthLayout)
}
