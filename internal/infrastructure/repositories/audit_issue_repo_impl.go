package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"residual-hub.backend/internal/domain/entities"
	domainerrors "residual-hub.backend/internal/domain/errors"
	domainrepos "residual-hub.backend/internal/domain/repositories"
	"residual-hub.backend/internal/infrastructure/models"
	"residual-hub.backend/pkg/utils"
)

type auditIssueRepo struct {
	db *gorm.DB
}

// NewAuditIssueRepository creates a new audit issue repository
func NewAuditIssueRepository(db *gorm.DB) domainrepos.AuditIssueRepository {
	return &auditIssueRepo{db: db}
}

func (r *auditIssueRepo) Create(ctx context.Context, issue *entities.AuditIssue) error {
	row := toAuditIssueModel(issue)
	if row.ID == uuid.Nil {
		row.ID = utils.GenerateUUIDv7()
		issue.ID = row.ID
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(row).Error
}

func (r *auditIssueRepo) FindActive(ctx context.Context, merchantID, month string, issueType entities.IssueType) (*entities.AuditIssue, error) {
	var row models.AuditIssue
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("merchant_id = ? AND month = ? AND type = ? AND status <> ?",
			merchantID, month, string(issueType), string(entities.IssueStatusResolved)).
		Order("created_at DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toAuditIssueEntity(&row), nil
}

func (r *auditIssueRepo) Update(ctx context.Context, issue *entities.AuditIssue) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.AuditIssue{}).
		Where("id = ?", issue.ID).
		Updates(map[string]interface{}{
			"severity":    string(issue.Severity),
			"description": issue.Description,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *auditIssueRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.AuditIssue, error) {
	var row models.AuditIssue
	err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toAuditIssueEntity(&row), nil
}

// UpdateStatus performs the human status transition. Resolving stamps
// resolved_at; the transition is last-writer-wins and idempotent.
func (r *auditIssueRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.IssueStatus) error {
	updates := map[string]interface{}{
		"status":     string(status),
		"updated_at": time.Now(),
	}
	if status == entities.IssueStatusResolved {
		updates["resolved_at"] = time.Now()
	}

	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.AuditIssue{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *auditIssueRepo) List(ctx context.Context, filter domainrepos.IssueFilter, pagination utils.PaginationParams) ([]*entities.AuditIssue, int64, error) {
	var rows []models.AuditIssue
	var total int64

	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.AuditIssue{})
	if filter.Month != "" {
		query = query.Where("month = ?", filter.Month)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Type != "" {
		query = query.Where("type = ?", string(filter.Type))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if pagination.Limit > 0 {
		query = query.Limit(pagination.Limit).Offset(pagination.CalculateOffset())
	}
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*entities.AuditIssue, 0, len(rows))
	for i := range rows {
		items = append(items, toAuditIssueEntity(&rows[i]))
	}
	return items, total, nil
}

func toAuditIssueModel(issue *entities.AuditIssue) *models.AuditIssue {
	row := &models.AuditIssue{
		ID:          issue.ID,
		MerchantID:  issue.MerchantID,
		Month:       issue.Month,
		Type:        string(issue.Type),
		Severity:    string(issue.Severity),
		Status:      string(issue.Status),
		Description: issue.Description,
		CreatedAt:   issue.CreatedAt,
		UpdatedAt:   issue.UpdatedAt,
	}
	if issue.ResolvedAt.Valid {
		t := issue.ResolvedAt.Time
		row.ResolvedAt = &t
	}
	return row
}

func toAuditIssueEntity(m *models.AuditIssue) *entities.AuditIssue {
	issue := &entities.AuditIssue{
		ID:          m.ID,
		MerchantID:  m.MerchantID,
		Month:       m.Month,
		Type:        entities.IssueType(m.Type),
		Severity:    entities.IssueSeverity(m.Severity),
		Status:      entities.IssueStatus(m.Status),
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.ResolvedAt != nil {
		issue.ResolvedAt.SetValid(*m.ResolvedAt)
	}
	return issue
}
