package entities

// RuleID identifies which role-assignment rule applies to a merchant-month.
// Rules are selected top-to-bottom by priority; the first match wins and
// rules never combine.
type RuleID string

const (
	RuleStandard RuleID = "standard"
	RulePartnerA RuleID = "partner_a"
	RulePartnerB RuleID = "partner_b"
)

// RoleSplit is one line of a rule table: the named role takes the given
// percentage of the merchant-month under the given type.
type RoleSplit struct {
	RoleName   string   `json:"roleName"`
	RoleType   RoleType `json:"roleType"`
	Percentage float64  `json:"percentage"`
}
