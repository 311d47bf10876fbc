package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProcessorRecord struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProcessorName    string          `gorm:"type:varchar(100);not null;index:idx_processor_month"`
	Month            string          `gorm:"type:varchar(7);not null;index:idx_processor_month;index"`
	MerchantID       string          `gorm:"type:varchar(50);not null;index"`
	MerchantName     string          `gorm:"type:varchar(255)"`
	Net              decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	SalesVolume      decimal.Decimal `gorm:"type:decimal(14,2);default:0"`
	TransactionCount int             `gorm:"default:0"`
	GroupCode        *string         `gorm:"type:varchar(50)"`
	BranchID         *string         `gorm:"type:varchar(50)"`
	CreatedAt        time.Time
}
