package repositories

import (
	"context"

	"residual-hub.backend/internal/domain/entities"
)

// AssignmentRepository stores resolved residual splits
type AssignmentRepository interface {
	// Upsert writes the assignment keyed by (merchantId, roleId, month).
	// Re-resolving the same merchant-month updates the percentage in place
	// instead of appending a duplicate row.
	Upsert(ctx context.Context, assignment *entities.Assignment) error
	ListByMonth(ctx context.Context, month string) ([]*entities.Assignment, error)
	ListByMerchantMonth(ctx context.Context, merchantID, month string) ([]*entities.Assignment, error)
}
