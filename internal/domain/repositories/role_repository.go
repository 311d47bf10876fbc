package repositories

import (
	"context"

	"github.com/google/uuid"
	"residual-hub.backend/internal/domain/entities"
)

// RoleRepository stores payable parties. Each (name, type) pair is one row.
type RoleRepository interface {
	// GetOrCreate returns the role for (name, type), creating it on first use
	GetOrCreate(ctx context.Context, name string, roleType entities.RoleType) (*entities.Role, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Role, error)
	List(ctx context.Context) ([]*entities.Role, error)
}
