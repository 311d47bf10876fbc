package models

import (
	"time"

	"github.com/google/uuid"
)

type AuditIssue struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	MerchantID  string    `gorm:"type:varchar(50);not null;index:idx_issue_identity"`
	Month       string    `gorm:"type:varchar(7);not null;index:idx_issue_identity"`
	Type        string    `gorm:"type:varchar(50);not null;index:idx_issue_identity"`
	Severity    string    `gorm:"type:varchar(20);not null"`
	Status      string    `gorm:"type:varchar(20);not null;index"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ResolvedAt  *time.Time
}
