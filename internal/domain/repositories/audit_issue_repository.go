package repositories

import (
	"context"

	"github.com/google/uuid"
	"residual-hub.backend/internal/domain/entities"
	"residual-hub.backend/pkg/utils"
)

// IssueFilter narrows audit issue listings
type IssueFilter struct {
	Month  string
	Status entities.IssueStatus
	Type   entities.IssueType
}

// AuditIssueRepository stores reconciliation findings. Issues are never
// deleted; resolved rows are immutable history.
type AuditIssueRepository interface {
	Create(ctx context.Context, issue *entities.AuditIssue) error
	// FindActive returns the open or investigating issue for the identity
	// (merchantId, month, type), or ErrNotFound. Resolved issues are never
	// returned: a recurrence after resolution gets a fresh row.
	FindActive(ctx context.Context, merchantID, month string, issueType entities.IssueType) (*entities.AuditIssue, error)
	// Update rewrites severity and description of an existing issue
	Update(ctx context.Context, issue *entities.AuditIssue) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.AuditIssue, error)
	// UpdateStatus performs the human-triggered status transition
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.IssueStatus) error
	List(ctx context.Context, filter IssueFilter, pagination utils.PaginationParams) ([]*entities.AuditIssue, int64, error)
}
