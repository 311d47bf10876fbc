package models

import (
	"time"

	"github.com/google/uuid"
)

type Role struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_role_name_type"`
	Type      string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_role_name_type"`
	CreatedAt time.Time
}
