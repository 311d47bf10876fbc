package usecases

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"residual-hub.backend/internal/domain/entities"
)

// Candidate header names per logical field, highest priority first.
// Processor exports disagree on column naming, so each logical field is
// resolved through its list in order and the first non-empty match wins.
// The canonical name heads every list, which makes normalization stable
// under repeated application.
var (
	merchantIDColumns   = []string{"merchant id", "mid", "merchant number", "terminal id", "account id"}
	merchantNameColumns = []string{"merchant name", "dba name", "dba", "business name", "legal name"}
	netColumns          = []string{"net", "net revenue", "net residual", "residual", "net income"}
	salesVolumeColumns  = []string{"sales volume", "volume", "gross sales", "total sales"}
	transactionColumns  = []string{"transaction count", "transactions", "tran count", "txn count", "trans"}
	groupCodeColumns    = []string{"group code", "group", "partner code"}
	branchIDColumns     = []string{"branch id", "branch", "office id"}
)

// Normalize parses raw export rows into canonical processor records.
// Rows without a resolvable merchant identifier or a parseable net amount
// are dropped and reported with their 1-based row number; sales volume and
// transaction count fall back to zero instead. Output order matches input
// order and nothing is deduplicated here.
func Normalize(rows []entities.RawRow, processorName, month string) ([]entities.ProcessorRecord, []entities.NormalizationError) {
	records := make([]entities.ProcessorRecord, 0, len(rows))
	var dropped []entities.NormalizationError

	for i, row := range rows {
		rowNum := i + 1
		index := indexRow(row)

		merchantID := strings.TrimSpace(resolveField(index, merchantIDColumns))
		if merchantID == "" {
			dropped = append(dropped, entities.NormalizationError{
				Row:    rowNum,
				Reason: "no resolvable merchant identifier",
			})
			continue
		}

		rawNet := resolveField(index, netColumns)
		net, err := parseAmount(rawNet)
		if err != nil {
			dropped = append(dropped, entities.NormalizationError{
				Row:    rowNum,
				Reason: fmt.Sprintf("unparseable net revenue %q", rawNet),
			})
			continue
		}

		rec := entities.ProcessorRecord{
			MerchantID:       merchantID,
			MerchantName:     strings.TrimSpace(resolveField(index, merchantNameColumns)),
			Month:            month,
			Net:              net,
			SalesVolume:      parseAmountOrZero(resolveField(index, salesVolumeColumns)),
			TransactionCount: parseCountOrZero(resolveField(index, transactionColumns)),
			ProcessorName:    processorName,
		}
		if v := strings.TrimSpace(resolveField(index, groupCodeColumns)); v != "" {
			rec.GroupCode = null.StringFrom(v)
		}
		if v := strings.TrimSpace(resolveField(index, branchIDColumns)); v != "" {
			rec.BranchID = null.StringFrom(v)
		}
		records = append(records, rec)
	}

	return records, dropped
}

// CanonicalRow converts a record back to its canonical raw representation.
// Normalizing the result reproduces the record.
func CanonicalRow(rec *entities.ProcessorRecord) entities.RawRow {
	row := entities.RawRow{
		"merchant id":       rec.MerchantID,
		"merchant name":     rec.MerchantName,
		"net":               rec.Net.String(),
		"sales volume":      rec.SalesVolume.String(),
		"transaction count": strconv.Itoa(rec.TransactionCount),
	}
	if rec.GroupCode.Valid {
		row["group code"] = rec.GroupCode.String
	}
	if rec.BranchID.Valid {
		row["branch id"] = rec.BranchID.String
	}
	return row
}

// indexRow maps normalized header names to cell values
func indexRow(row entities.RawRow) map[string]string {
	index := make(map[string]string, len(row))
	for header, value := range row {
		key := normalizeHeader(header)
		if key == "" {
			continue
		}
		// First sighting wins so duplicate headers stay deterministic
		if _, exists := index[key]; !exists || index[key] == "" {
			index[key] = value
		}
	}
	return index
}

func resolveField(index map[string]string, candidates []string) string {
	for _, candidate := range candidates {
		if v, ok := index[candidate]; ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// normalizeHeader lowercases a header and collapses separator noise so
// "Merchant_ID", "merchant-id" and "Merchant ID" all resolve identically
func normalizeHeader(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	h = strings.NewReplacer("_", " ", "-", " ", "#", "", ".", "").Replace(h)
	return strings.Join(strings.Fields(h), " ")
}

// parseAmount parses a currency cell. Accepts "$1,234.56", "(123.45)" for
// negatives, and plain decimals.
func parseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

func parseAmountOrZero(raw string) decimal.Decimal {
	d, err := parseAmount(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseCountOrZero(raw string) int {
	s := strings.NewReplacer(",", "", " ", "").Replace(strings.TrimSpace(raw))
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// Some exports render counts as "123.0"
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0
		}
		return int(f)
	}
	return n
}
