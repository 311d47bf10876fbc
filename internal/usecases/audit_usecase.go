package usecases

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"residual-hub.backend/internal/domain/entities"
	domainerrors "residual-hub.backend/internal/domain/errors"
	"residual-hub.backend/internal/domain/repositories"
	"residual-hub.backend/pkg/logger"
	"residual-hub.backend/pkg/utils"
)

// Unmatched-MID severity bands by the merchant's net revenue for the month
var (
	unmatchedHighRevenue   = decimal.NewFromInt(1000)
	unmatchedMediumRevenue = decimal.NewFromInt(100)
)

// AuditUsecase cross-checks resolved assignments against processor data
// and the merchant master list, persisting anomalies as audit issues.
type AuditUsecase struct {
	recordRepo     repositories.ProcessorRecordRepository
	assignmentRepo repositories.AssignmentRepository
	merchantRepo   repositories.MerchantRepository
	issueRepo      repositories.AuditIssueRepository
	uow            repositories.UnitOfWork
}

// NewAuditUsecase creates a new audit usecase
func NewAuditUsecase(
	recordRepo repositories.ProcessorRecordRepository,
	assignmentRepo repositories.AssignmentRepository,
	merchantRepo repositories.MerchantRepository,
	issueRepo repositories.AuditIssueRepository,
	uow repositories.UnitOfWork,
) *AuditUsecase {
	return &AuditUsecase{
		recordRepo:     recordRepo,
		assignmentRepo: assignmentRepo,
		merchantRepo:   merchantRepo,
		issueRepo:      issueRepo,
		uow:            uow,
	}
}

// RunAudit performs the three reconciliation checks for one month. The
// checks run independently over the full dataset; one merchant can trip
// more than one of them. A failed run reports AuditRunFailed and commits
// nothing, which is distinct from a completed run with zero findings.
func (u *AuditUsecase) RunAudit(ctx context.Context, month string) (*entities.AuditRunReport, error) {
	if _, err := entities.ParseMonth(month); err != nil {
		return nil, domainerrors.BadRequest("month must be formatted YYYY-MM")
	}

	report := &entities.AuditRunReport{
		Month:     month,
		Status:    entities.AuditRunRunning,
		StartedAt: time.Now(),
	}

	records, err := u.recordRepo.ListByMonth(ctx, month)
	if err != nil {
		return u.failRun(ctx, report, fmt.Errorf("loading processor records: %w", err))
	}
	assignments, err := u.assignmentRepo.ListByMonth(ctx, month)
	if err != nil {
		return u.failRun(ctx, report, fmt.Errorf("loading assignments: %w", err))
	}

	merchantIDs := make([]string, 0)
	maxNetByMerchant := make(map[string]decimal.Decimal)
	for _, rec := range records {
		if _, seen := maxNetByMerchant[rec.MerchantID]; !seen {
			merchantIDs = append(merchantIDs, rec.MerchantID)
			maxNetByMerchant[rec.MerchantID] = rec.Net
		} else if rec.Net.GreaterThan(maxNetByMerchant[rec.MerchantID]) {
			maxNetByMerchant[rec.MerchantID] = rec.Net
		}
	}

	knownMerchants, err := u.merchantRepo.ExistingIDs(ctx, merchantIDs)
	if err != nil {
		return u.failRun(ctx, report, fmt.Errorf("loading merchant master list: %w", err))
	}

	var findings []*entities.AuditIssue
	findings = append(findings, u.splitErrorFindings(month, assignments)...)
	findings = append(findings, u.missingAssignmentFindings(month, merchantIDs, assignments)...)
	findings = append(findings, u.unmatchedMIDFindings(month, merchantIDs, maxNetByMerchant, knownMerchants)...)

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		for _, issue := range findings {
			if err := u.upsertIssue(txCtx, issue); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return u.failRun(ctx, report, fmt.Errorf("persisting audit issues: %w", err))
	}

	for _, issue := range findings {
		switch issue.Type {
		case entities.IssueSplitError:
			report.SplitErrors++
		case entities.IssueMissingAssignment:
			report.MissingAssignments++
		case entities.IssueUnmatchedMID:
			report.UnmatchedMIDs++
		}
	}
	report.Status = entities.AuditRunCompleted
	report.CompletedAt = time.Now()

	logger.Info(ctx, "audit run completed",
		zap.String("month", month),
		zap.Int("split_errors", report.SplitErrors),
		zap.Int("missing_assignments", report.MissingAssignments),
		zap.Int("unmatched_mids", report.UnmatchedMIDs),
	)
	return report, nil
}

func (u *AuditUsecase) failRun(ctx context.Context, report *entities.AuditRunReport, err error) (*entities.AuditRunReport, error) {
	report.Status = entities.AuditRunFailed
	report.CompletedAt = time.Now()
	logger.Error(ctx, "audit run failed", zap.String("month", report.Month), zap.Error(err))
	return report, fmt.Errorf("%w: %v", domainerrors.ErrAuditRunFailed, err)
}

// splitErrorFindings flags every merchant whose assignment percentages do
// not sum to 100 within SplitEpsilon
func (u *AuditUsecase) splitErrorFindings(month string, assignments []*entities.Assignment) []*entities.AuditIssue {
	sums := make(map[string]float64)
	for _, a := range assignments {
		sums[a.MerchantID] += a.Percentage
	}

	merchants := make([]string, 0, len(sums))
	for id := range sums {
		merchants = append(merchants, id)
	}
	sort.Strings(merchants)

	var issues []*entities.AuditIssue
	for _, merchantID := range merchants {
		sum := sums[merchantID]
		if math.Abs(sum-100) <= entities.SplitEpsilon {
			continue
		}
		issues = append(issues, &entities.AuditIssue{
			MerchantID: merchantID,
			Month:      month,
			Type:       entities.IssueSplitError,
			Severity:   entities.IssueSeverityHigh,
			Status:     entities.IssueStatusOpen,
			Description: fmt.Sprintf("assignment percentages for merchant %s in %s sum to %.2f instead of 100",
				merchantID, month, sum),
		})
	}
	return issues
}

// missingAssignmentFindings flags merchants present in the month's
// processor data with no assignments at all
func (u *AuditUsecase) missingAssignmentFindings(month string, merchantIDs []string, assignments []*entities.Assignment) []*entities.AuditIssue {
	assigned := make(map[string]bool, len(assignments))
	for _, a := range assignments {
		assigned[a.MerchantID] = true
	}

	var issues []*entities.AuditIssue
	for _, merchantID := range merchantIDs {
		if assigned[merchantID] {
			continue
		}
		issues = append(issues, &entities.AuditIssue{
			MerchantID: merchantID,
			Month:      month,
			Type:       entities.IssueMissingAssignment,
			Severity:   entities.IssueSeverityMedium,
			Status:     entities.IssueStatusOpen,
			Description: fmt.Sprintf("merchant %s has processor revenue in %s but no resolved assignments",
				merchantID, month),
		})
	}
	return issues
}

// unmatchedMIDFindings flags processor MIDs absent from the merchant
// master list. Severity scales with the merchant's revenue: an unmatched
// identifier carrying real money is a bigger problem than a stray row.
func (u *AuditUsecase) unmatchedMIDFindings(month string, merchantIDs []string, maxNet map[string]decimal.Decimal, known map[string]bool) []*entities.AuditIssue {
	var issues []*entities.AuditIssue
	for _, merchantID := range merchantIDs {
		if known[merchantID] {
			continue
		}
		net := maxNet[merchantID]
		severity := entities.IssueSeverityLow
		if net.GreaterThanOrEqual(unmatchedHighRevenue) {
			severity = entities.IssueSeverityHigh
		} else if net.GreaterThanOrEqual(unmatchedMediumRevenue) {
			severity = entities.IssueSeverityMedium
		}
		issues = append(issues, &entities.AuditIssue{
			MerchantID: merchantID,
			Month:      month,
			Type:       entities.IssueUnmatchedMID,
			Severity:   severity,
			Status:     entities.IssueStatusOpen,
			Description: fmt.Sprintf("MID %s appears in %s processor data (net %s) with no master merchant record",
				merchantID, month, net.StringFixed(2)),
		})
	}
	return issues
}

// upsertIssue writes a finding against the active-issue identity
// (merchant, month, type). An open issue is refreshed in place; a resolved
// issue is immutable history, so a recurrence creates a fresh row.
func (u *AuditUsecase) upsertIssue(ctx context.Context, issue *entities.AuditIssue) error {
	existing, err := u.issueRepo.FindActive(ctx, issue.MerchantID, issue.Month, issue.Type)
	if err != nil {
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}
		issue.ID = utils.GenerateUUIDv7()
		issue.CreatedAt = time.Now()
		issue.UpdatedAt = issue.CreatedAt
		return u.issueRepo.Create(ctx, issue)
	}

	existing.Severity = issue.Severity
	existing.Description = issue.Description
	existing.UpdatedAt = time.Now()
	return u.issueRepo.Update(ctx, existing)
}

// ResolveIssue performs the terminal human-triggered transition. Resolving
// an already-resolved issue is a no-op, not an error.
func (u *AuditUsecase) ResolveIssue(ctx context.Context, id uuid.UUID) (*entities.AuditIssue, error) {
	issue, err := u.issueRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if issue.Status == entities.IssueStatusResolved {
		return issue, nil
	}

	if err := u.issueRepo.UpdateStatus(ctx, id, entities.IssueStatusResolved); err != nil {
		return nil, err
	}
	issue.Status = entities.IssueStatusResolved
	issue.ResolvedAt = null.TimeFrom(time.Now())
	return issue, nil
}

// ListIssues exposes the issue log to the presentation collaborator
func (u *AuditUsecase) ListIssues(ctx context.Context, filter repositories.IssueFilter, pagination utils.PaginationParams) ([]*entities.AuditIssue, int64, error) {
	return u.issueRepo.List(ctx, filter, pagination)
}
