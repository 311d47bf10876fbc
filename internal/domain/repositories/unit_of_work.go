package repositories

import (
	"context"
)

// UnitOfWork defines the interface for atomic multi-repository operations.
// A failed stage rolls back everything it wrote; prior state stays visible.
type UnitOfWork interface {
	// Do executes the given function within a transaction scope
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
