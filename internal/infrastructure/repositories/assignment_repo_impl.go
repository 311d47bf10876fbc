package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"residual-hub.backend/internal/domain/entities"
	domainrepos "residual-hub.backend/internal/domain/repositories"
	"residual-hub.backend/internal/infrastructure/models"
	"residual-hub.backend/pkg/utils"
)

type assignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db *gorm.DB) domainrepos.AssignmentRepository {
	return &assignmentRepo{db: db}
}

// Upsert writes the assignment keyed by (merchant_id, role_id, month).
// Conflicts update the percentage and role type in place, which is what
// makes re-running resolution safe.
func (r *assignmentRepo) Upsert(ctx context.Context, assignment *entities.Assignment) error {
	now := time.Now()
	row := &models.Assignment{
		ID:         utils.GenerateUUIDv7(),
		MerchantID: assignment.MerchantID,
		RoleID:     assignment.RoleID,
		Month:      assignment.Month,
		Percentage: assignment.Percentage,
		RoleType:   string(assignment.RoleType),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return GetDB(ctx, r.db).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "merchant_id"}, {Name: "role_id"}, {Name: "month"}},
			DoUpdates: clause.AssignmentColumns([]string{"percentage", "role_type", "updated_at"}),
		}).
		Create(row).Error
}

func (r *assignmentRepo) ListByMonth(ctx context.Context, month string) ([]*entities.Assignment, error) {
	var rows []models.Assignment
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("month = ?", month).
		Order("merchant_id ASC, role_type ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toAssignmentEntities(rows), nil
}

func (r *assignmentRepo) ListByMerchantMonth(ctx context.Context, merchantID, month string) ([]*entities.Assignment, error) {
	var rows []models.Assignment
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("merchant_id = ? AND month = ?", merchantID, month).
		Order("role_type ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toAssignmentEntities(rows), nil
}

func toAssignmentEntities(rows []models.Assignment) []*entities.Assignment {
	items := make([]*entities.Assignment, 0, len(rows))
	for i := range rows {
		m := &rows[i]
		items = append(items, &entities.Assignment{
			ID:         m.ID,
			MerchantID: m.MerchantID,
			RoleID:     m.RoleID,
			Month:      m.Month,
			Percentage: m.Percentage,
			RoleType:   entities.RoleType(m.RoleType),
			CreatedAt:  m.CreatedAt,
			UpdatedAt:  m.UpdatedAt,
		})
	}
	return items
}
