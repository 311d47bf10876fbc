package entities

import (
	"time"

	"github.com/google/uuid"
)

// RoleType represents the kind of payable party a role is
type RoleType string

const (
	RoleTypeAgent        RoleType = "agent"
	RoleTypeSalesManager RoleType = "sales_manager"
	RoleTypePartner      RoleType = "partner"
	RoleTypeAssociation  RoleType = "association"
	RoleTypeCompany      RoleType = "company"
)

// Valid reports whether the role type is one of the known kinds
func (t RoleType) Valid() bool {
	switch t {
	case RoleTypeAgent, RoleTypeSalesManager, RoleTypePartner, RoleTypeAssociation, RoleTypeCompany:
		return true
	}
	return false
}

// Role is a payable party. The same person or entity may hold more than one
// type on the same merchant-month (a sales manager also taking an agent
// split); each (name, type) pair is its own role row.
type Role struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Type      RoleType  `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}
