package entities

// Severity grades a validation finding
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// ValidationError is one per-row, per-column validation finding
type ValidationError struct {
	Row      int      `json:"row"`
	Column   string   `json:"column"`
	Value    string   `json:"value"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// ValidationSummary aggregates row counts for one upload
type ValidationSummary struct {
	TotalRows   int `json:"totalRows"`
	ValidRows   int `json:"validRows"`
	ErrorRows   int `json:"errorRows"`
	WarningRows int `json:"warningRows"`
}

// ValidationResult is the per-upload validation report. It never blocks
// processing by itself; the caller decides whether to proceed on IsValid
// being false.
type ValidationResult struct {
	ProcessorName string            `json:"processorName"`
	IsValid       bool              `json:"isValid"`
	Errors        []ValidationError `json:"errors"`
	Summary       ValidationSummary `json:"summary"`
}

// NormalizationError records one dropped row. Every drop is attributable
// to a row number and a reason; rows are never skipped silently.
type NormalizationError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}
