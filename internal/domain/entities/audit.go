package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// IssueType classifies a reconciliation anomaly
type IssueType string

const (
	IssueSplitError        IssueType = "split_error"
	IssueMissingAssignment IssueType = "missing_assignment"
	IssueUnmatchedMID      IssueType = "unmatched_mid"
)

// IssueSeverity grades an audit issue
type IssueSeverity string

const (
	IssueSeverityHigh   IssueSeverity = "high"
	IssueSeverityMedium IssueSeverity = "medium"
	IssueSeverityLow    IssueSeverity = "low"
)

// IssueStatus is the human-driven lifecycle of an issue. Resolved is
// terminal: an issue is never auto-resolved and never reopened, a
// recurrence gets a fresh row.
type IssueStatus string

const (
	IssueStatusOpen          IssueStatus = "open"
	IssueStatusInvestigating IssueStatus = "investigating"
	IssueStatusResolved      IssueStatus = "resolved"
)

// AuditIssue is a persisted reconciliation finding. Issues are first-class
// records, not errors: they are kept forever and only a human transitions
// their status.
type AuditIssue struct {
	ID          uuid.UUID     `json:"id"`
	MerchantID  string        `json:"merchantId"`
	Month       string        `json:"month"`
	Type        IssueType     `json:"type"`
	Severity    IssueSeverity `json:"severity"`
	Status      IssueStatus   `json:"status"`
	Description string        `json:"description"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	ResolvedAt  null.Time     `json:"resolvedAt,omitempty"`
}

// AuditRunStatus is the state of one audit run
type AuditRunStatus string

const (
	AuditRunIdle      AuditRunStatus = "idle"
	AuditRunRunning   AuditRunStatus = "running"
	AuditRunCompleted AuditRunStatus = "completed"
	AuditRunFailed    AuditRunStatus = "failed"
)

// AuditRunReport is the outcome of one on-demand audit run. A failed run
// is distinct from a completed run with zero findings.
type AuditRunReport struct {
	Month              string         `json:"month"`
	Status             AuditRunStatus `json:"status"`
	SplitErrors        int            `json:"splitErrors"`
	MissingAssignments int            `json:"missingAssignments"`
	UnmatchedMIDs      int            `json:"unmatchedMids"`
	StartedAt          time.Time      `json:"startedAt"`
	CompletedAt        time.Time      `json:"completedAt"`
}

// TotalIssues returns the number of findings across all three checks
func (r *AuditRunReport) TotalIssues() int {
	return r.SplitErrors + r.MissingAssignments + r.UnmatchedMIDs
}
