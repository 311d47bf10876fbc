package entities

import (
	"time"
)

// Merchant is the master-data record for one physical merchant account.
// MerchantID is the processor-assigned MID and is stable for the lifetime
// of the account. Merchants are created on first sighting in a processor
// file, name fields are refreshed on later sightings, and rows are never
// hard-deleted (historical reporting needs them).
type Merchant struct {
	MerchantID       string    `json:"merchantId"`
	LegalName        string    `json:"legalName"`
	DBA              string    `json:"dba"`
	CurrentProcessor string    `json:"currentProcessor"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
