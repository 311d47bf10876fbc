package models

import (
	"time"

	"github.com/google/uuid"
)

type Assignment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	MerchantID string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_assignment_natural_key;index"`
	RoleID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_assignment_natural_key"`
	Month      string    `gorm:"type:varchar(7);not null;uniqueIndex:idx_assignment_natural_key;index"`
	Percentage float64   `gorm:"type:decimal(5,2);not null"`
	RoleType   string    `gorm:"type:varchar(50);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
