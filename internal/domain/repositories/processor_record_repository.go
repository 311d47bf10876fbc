package repositories

import (
	"context"

	"residual-hub.backend/internal/domain/entities"
)

// ProcessorRecordRepository stores normalized monthly processor rows
type ProcessorRecordRepository interface {
	// ReplaceForProcessorMonth supersedes the existing row set for the
	// processor+month with the given records. Call inside a UnitOfWork so
	// a failed upload leaves the prior set untouched.
	ReplaceForProcessorMonth(ctx context.Context, processorName, month string, records []*entities.ProcessorRecord) error
	ListByMonth(ctx context.Context, month string) ([]*entities.ProcessorRecord, error)
	// ListRange returns records for months in [from, to], optionally
	// filtered by processor name. YYYY-MM strings order lexicographically.
	ListRange(ctx context.Context, from, to, processorName string) ([]*entities.ProcessorRecord, error)
	DistinctMerchantIDs(ctx context.Context, month string) ([]string, error)
}
