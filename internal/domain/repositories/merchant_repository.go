package repositories

import (
	"context"

	"residual-hub.backend/internal/domain/entities"
	"residual-hub.backend/pkg/utils"
)

// MerchantRepository defines master-data access for merchants
type MerchantRepository interface {
	// Upsert inserts the merchant or, when the MID already exists,
	// refreshes its name fields and current processor.
	Upsert(ctx context.Context, merchant *entities.Merchant) error
	GetByMerchantID(ctx context.Context, merchantID string) (*entities.Merchant, error)
	List(ctx context.Context, pagination utils.PaginationParams) ([]*entities.Merchant, int64, error)
	// ExistingIDs reports which of the given MIDs have a master record
	ExistingIDs(ctx context.Context, merchantIDs []string) (map[string]bool, error)
}
