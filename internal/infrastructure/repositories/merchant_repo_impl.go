package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"residual-hub.backend/internal/domain/entities"
	domainerrors "residual-hub.backend/internal/domain/errors"
	domainrepos "residual-hub.backend/internal/domain/repositories"
	"residual-hub.backend/internal/infrastructure/models"
	"residual-hub.backend/pkg/utils"
)

type merchantRepo struct {
	db *gorm.DB
}

// NewMerchantRepository creates a new merchant repository
func NewMerchantRepository(db *gorm.DB) domainrepos.MerchantRepository {
	return &merchantRepo{db: db}
}

// Upsert inserts the merchant or refreshes an existing row keyed by MID.
// The legal name is only written on first sighting; later sightings update
// the DBA and current processor, since processor files carry the trading
// name rather than the registered one.
func (r *merchantRepo) Upsert(ctx context.Context, merchant *entities.Merchant) error {
	now := time.Now()
	row := &models.Merchant{
		MerchantID:       merchant.MerchantID,
		LegalName:        merchant.LegalName,
		DBA:              merchant.DBA,
		CurrentProcessor: merchant.CurrentProcessor,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	return GetDB(ctx, r.db).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "merchant_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"dba", "current_processor", "updated_at"}),
		}).
		Create(row).Error
}

func (r *merchantRepo) GetByMerchantID(ctx context.Context, merchantID string) (*entities.Merchant, error) {
	var row models.Merchant
	err := GetDB(ctx, r.db).WithContext(ctx).Where("merchant_id = ?", merchantID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toMerchantEntity(&row), nil
}

func (r *merchantRepo) List(ctx context.Context, pagination utils.PaginationParams) ([]*entities.Merchant, int64, error) {
	var rows []models.Merchant
	var total int64

	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Merchant{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if pagination.Limit > 0 {
		query = query.Limit(pagination.Limit).Offset(pagination.CalculateOffset())
	}
	if err := query.Order("merchant_id ASC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*entities.Merchant, 0, len(rows))
	for i := range rows {
		items = append(items, toMerchantEntity(&rows[i]))
	}
	return items, total, nil
}

func (r *merchantRepo) ExistingIDs(ctx context.Context, merchantIDs []string) (map[string]bool, error) {
	known := make(map[string]bool, len(merchantIDs))
	if len(merchantIDs) == 0 {
		return known, nil
	}

	var found []string
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Merchant{}).
		Where("merchant_id IN ?", merchantIDs).
		Pluck("merchant_id", &found).Error
	if err != nil {
		return nil, err
	}

	for _, id := range found {
		known[id] = true
	}
	return known, nil
}

func toMerchantEntity(m *models.Merchant) *entities.Merchant {
	return &entities.Merchant{
		MerchantID:       m.MerchantID,
		LegalName:        m.LegalName,
		DBA:              m.DBA,
		CurrentProcessor: m.CurrentProcessor,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
