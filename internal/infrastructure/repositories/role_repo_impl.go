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

type roleRepo struct {
	db *gorm.DB
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *gorm.DB) domainrepos.RoleRepository {
	return &roleRepo{db: db}
}

func (r *roleRepo) GetOrCreate(ctx context.Context, name string, roleType entities.RoleType) (*entities.Role, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var row models.Role
	err := db.Where("name = ? AND type = ?", name, string(roleType)).First(&row).Error
	if err == nil {
		return toRoleEntity(&row), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	row = models.Role{
		ID:        utils.GenerateUUIDv7(),
		Name:      name,
		Type:      string(roleType),
		CreatedAt: time.Now(),
	}
	if err := db.Create(&row).Error; err != nil {
		return nil, err
	}
	return toRoleEntity(&row), nil
}

func (r *roleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Role, error) {
	var row models.Role
	err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toRoleEntity(&row), nil
}

func (r *roleRepo) List(ctx context.Context) ([]*entities.Role, error) {
	var rows []models.Role
	err := GetDB(ctx, r.db).WithContext(ctx).Order("name ASC, type ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]*entities.Role, 0, len(rows))
	for i := range rows {
		items = append(items, toRoleEntity(&rows[i]))
	}
	return items, nil
}

func toRoleEntity(m *models.Role) *entities.Role {
	return &entities.Role{
		ID:        m.ID,
		Name:      m.Name,
		Type:      entities.RoleType(m.Type),
		CreatedAt: m.CreatedAt,
	}
}
