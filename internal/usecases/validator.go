package usecases

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"residual-hub.backend/internal/domain/entities"
)

// Business-sanity thresholds. These never produce error severity; they
// exist to surface oddities for human review.
var (
	lowRevenueFloor    = decimal.NewFromInt(1)
	highRevenueCeiling = decimal.NewFromInt(10000)
)

const (
	minMerchantIDLength = 6
	staleRecordMonths   = 24
)

// ProcessorSchema declares the per-processor validation contract
type ProcessorSchema struct {
	Name                 string
	RequireMerchantName  bool
	RequireSalesVolume   bool
	RequireTransactions  bool
}

// processorSchemas maps lowercased processor names to their schemas.
// Unknown processors fall back to defaultSchema.
var processorSchemas = map[string]ProcessorSchema{
	"clearent": {
		Name:                "clearent",
		RequireMerchantName: true,
		RequireSalesVolume:  true,
		RequireTransactions: true,
	},
	"tsys": {
		Name:                "tsys",
		RequireMerchantName: true,
		RequireSalesVolume:  true,
	},
	"first data": {
		Name:                "first data",
		RequireMerchantName: true,
	},
}

var defaultSchema = ProcessorSchema{Name: "default"}

// SchemaFor returns the processor's schema, or the default one
func SchemaFor(processorName string) ProcessorSchema {
	if s, ok := processorSchemas[strings.ToLower(strings.TrimSpace(processorName))]; ok {
		return s
	}
	return defaultSchema
}

// Validate checks canonical records against the processor schema and the
// business-sanity rules. Schema violations emit one error entry per field
// and never short-circuit the rest of the row or batch. Business checks
// only run on schema-valid rows and only emit warning/info. The validator
// never blocks an upload itself; the caller owns "proceed anyway".
func Validate(records []entities.ProcessorRecord, processorName string) entities.ValidationResult {
	return validateAt(records, processorName, time.Now())
}

// validateAt is Validate with an injected clock for the date checks
func validateAt(records []entities.ProcessorRecord, processorName string, now time.Time) entities.ValidationResult {
	schema := SchemaFor(processorName)

	result := entities.ValidationResult{ProcessorName: processorName}
	errorRows := make(map[int]bool)
	warningRows := make(map[int]bool)

	for i := range records {
		rec := &records[i]
		rowNum := i + 1

		rowErrors := schemaErrors(rec, schema, rowNum)
		if len(rowErrors) > 0 {
			errorRows[rowNum] = true
			result.Errors = append(result.Errors, rowErrors...)
			continue
		}

		sanity := sanityFindings(rec, rowNum, now)
		for _, f := range sanity {
			if f.Severity == entities.SeverityWarning {
				warningRows[rowNum] = true
			}
		}
		result.Errors = append(result.Errors, sanity...)
	}

	result.Summary = entities.ValidationSummary{
		TotalRows:   len(records),
		ValidRows:   len(records) - len(errorRows),
		ErrorRows:   len(errorRows),
		WarningRows: len(warningRows),
	}
	result.IsValid = len(errorRows) == 0
	return result
}

func schemaErrors(rec *entities.ProcessorRecord, schema ProcessorSchema, rowNum int) []entities.ValidationError {
	var errs []entities.ValidationError

	addErr := func(column, value, message string) {
		errs = append(errs, entities.ValidationError{
			Row:      rowNum,
			Column:   column,
			Value:    value,
			Message:  message,
			Severity: entities.SeverityError,
		})
	}

	if strings.TrimSpace(rec.MerchantID) == "" {
		addErr("merchantId", rec.MerchantID, "merchant identifier is required")
	}
	if schema.RequireMerchantName && strings.TrimSpace(rec.MerchantName) == "" {
		addErr("merchantName", rec.MerchantName, "merchant name is required")
	}
	if _, err := entities.ParseMonth(rec.Month); err != nil {
		addErr("month", rec.Month, "month must be formatted YYYY-MM")
	}
	if rec.SalesVolume.IsNegative() {
		addErr("salesVolume", rec.SalesVolume.String(), "sales volume cannot be negative")
	} else if schema.RequireSalesVolume && rec.SalesVolume.IsZero() {
		addErr("salesVolume", rec.SalesVolume.String(), "sales volume is required")
	}
	if rec.TransactionCount < 0 {
		addErr("transactionCount", fmt.Sprintf("%d", rec.TransactionCount), "transaction count cannot be negative")
	} else if schema.RequireTransactions && rec.TransactionCount == 0 {
		addErr("transactionCount", "0", "transaction count is required")
	}

	return errs
}

func sanityFindings(rec *entities.ProcessorRecord, rowNum int, now time.Time) []entities.ValidationError {
	var findings []entities.ValidationError

	add := func(severity entities.Severity, column, value, message string) {
		findings = append(findings, entities.ValidationError{
			Row:      rowNum,
			Column:   column,
			Value:    value,
			Message:  message,
			Severity: severity,
		})
	}

	magnitude := rec.Net.Abs()
	if magnitude.GreaterThan(highRevenueCeiling) {
		add(entities.SeverityWarning, "net", rec.Net.String(), "net revenue unusually high")
	} else if magnitude.LessThan(lowRevenueFloor) {
		add(entities.SeverityWarning, "net", rec.Net.String(), "net revenue very low")
	}

	if len(rec.MerchantID) < minMerchantIDLength {
		add(entities.SeverityWarning, "merchantId", rec.MerchantID, "MID too short")
	}

	if month, err := entities.ParseMonth(rec.Month); err == nil {
		currentMonth, _ := entities.ParseMonth(now.Format(entities.MonthLayout))
		if month.After(currentMonth) {
			add(entities.SeverityWarning, "month", rec.Month, "record month is in the future")
		} else if month.Before(currentMonth.AddDate(0, -staleRecordMonths, 0)) {
			add(entities.SeverityInfo, "month", rec.Month, "record month is older than 24 months")
		}
	}

	return findings
}
