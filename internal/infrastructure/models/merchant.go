package models

import (
	"time"
)

type Merchant struct {
	MerchantID       string `gorm:"type:varchar(50);primaryKey"`
	LegalName        string `gorm:"type:varchar(255)"`
	DBA              string `gorm:"type:varchar(255)"`
	CurrentProcessor string `gorm:"type:varchar(100);index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
