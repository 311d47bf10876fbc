package entities

import (
	"time"

	"github.com/google/uuid"
)

// SplitEpsilon is the tolerance for the per-merchant-month percentage sum.
// A sum further than this from 100 is a split error.
const SplitEpsilon = 0.01

// Assignment is one resolved residual split line: the share of a
// merchant-month's net revenue owed to one role. Assignments are upserted
// on the natural key (merchantId, roleId, month); re-resolving never
// appends duplicates.
type Assignment struct {
	ID         uuid.UUID `json:"id"`
	MerchantID string    `json:"merchantId"`
	RoleID     uuid.UUID `json:"roleId"`
	Month      string    `json:"month"`
	Percentage float64   `json:"percentage"` // 0-100
	RoleType   RoleType  `json:"roleType"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// AssignmentUpsert describes one upsert performed by a resolution run
type AssignmentUpsert struct {
	MerchantID string   `json:"merchantId"`
	RoleName   string   `json:"roleName"`
	RoleType   RoleType `json:"roleType"`
	Month      string   `json:"month"`
	Percentage float64  `json:"percentage"`
	RuleID     RuleID   `json:"ruleId"`
}
