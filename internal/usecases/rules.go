package usecases

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"residual-hub.backend/internal/domain/entities"
	domainerrors "residual-hub.backend/internal/domain/errors"
)

// Role names used by the static rule tables
const (
	roleNameAgent        = "Direct Agent"
	roleNameSalesManager = "Sales Manager"
	roleNamePartner      = "Partner Group"
	roleNameCoOwner      = "Co-Owner"
	roleNameAssociation  = "Association"
)

// RuleConfig is the validated, immutable rule configuration. Rule tables
// are checked once at load time; a table that does not sum to exactly 100
// refuses to load instead of producing invalid splits per merchant.
type RuleConfig struct {
	highRevenueThreshold decimal.Decimal
	flaggedProcessor     string
	coOwnerIndicator     string
	tables               map[entities.RuleID][]entities.RoleSplit
}

// defaultRuleTables builds the static split tables.
// Partner-A keeps the sales manager on both the sales_manager and agent
// lines on purpose: the same person holds both splits on partner books.
func defaultRuleTables() map[entities.RuleID][]entities.RoleSplit {
	return map[entities.RuleID][]entities.RoleSplit{
		entities.RuleStandard: {
			{RoleName: roleNameAgent, RoleType: entities.RoleTypeAgent, Percentage: 70},
			{RoleName: roleNameSalesManager, RoleType: entities.RoleTypeSalesManager, Percentage: 20},
			{RoleName: roleNameAssociation, RoleType: entities.RoleTypeAssociation, Percentage: 10},
		},
		entities.RulePartnerA: {
			{RoleName: roleNamePartner, RoleType: entities.RoleTypePartner, Percentage: 40},
			{RoleName: roleNameSalesManager, RoleType: entities.RoleTypeSalesManager, Percentage: 30},
			{RoleName: roleNameSalesManager, RoleType: entities.RoleTypeAgent, Percentage: 20},
			{RoleName: roleNameAssociation, RoleType: entities.RoleTypeAssociation, Percentage: 10},
		},
		entities.RulePartnerB: {
			{RoleName: roleNamePartner, RoleType: entities.RoleTypePartner, Percentage: 50},
			{RoleName: roleNameSalesManager, RoleType: entities.RoleTypeSalesManager, Percentage: 25},
			{RoleName: roleNameCoOwner, RoleType: entities.RoleTypeAgent, Percentage: 15},
			{RoleName: roleNameAssociation, RoleType: entities.RoleTypeAssociation, Percentage: 10},
		},
	}
}

// LoadRuleConfig validates the static rule tables and binds the selection
// tunables. Returns an error when any table's percentages do not sum to
// exactly 100; callers must treat that as fatal.
func LoadRuleConfig(highRevenueThreshold float64, flaggedProcessor, coOwnerIndicator string) (*RuleConfig, error) {
	tables := defaultRuleTables()
	if err := validateTables(tables); err != nil {
		return nil, err
	}

	return &RuleConfig{
		highRevenueThreshold: decimal.NewFromFloat(highRevenueThreshold),
		flaggedProcessor:     strings.ToLower(strings.TrimSpace(flaggedProcessor)),
		coOwnerIndicator:     strings.ToLower(strings.TrimSpace(coOwnerIndicator)),
		tables:               tables,
	}, nil
}

func validateTables(tables map[entities.RuleID][]entities.RoleSplit) error {
	for id, splits := range tables {
		var sum float64
		for _, s := range splits {
			if s.Percentage < 0 || s.Percentage > 100 {
				return fmt.Errorf("rule %s: split %s/%s percentage %.2f out of range: %w",
					id, s.RoleName, s.RoleType, s.Percentage, domainerrors.ErrRuleConfigInvalid)
			}
			if !s.RoleType.Valid() {
				return fmt.Errorf("rule %s: unknown role type %q: %w", id, s.RoleType, domainerrors.ErrRuleConfigInvalid)
			}
			sum += s.Percentage
		}
		if math.Abs(sum-100) > 1e-9 {
			return fmt.Errorf("rule %s: percentages sum to %.2f: %w", id, sum, domainerrors.ErrRuleConfigInvalid)
		}
	}
	return nil
}

// ResolveRule picks the assignment rule for one merchant record. The
// predicates run top to bottom and the first match wins:
//  1. a group code or branch id marks a partner book (Partner-A),
//     regardless of revenue;
//  2. a co-owner indicator in the processor or merchant name (Partner-B);
//  3. high revenue on the flagged processor falls back to Partner-A, the
//     conservative default when attribution is ambiguous;
//  4. everything else is Standard.
func (rc *RuleConfig) ResolveRule(rec *entities.ProcessorRecord) entities.RuleID {
	if rec.HasPartnerIndicator() {
		return entities.RulePartnerA
	}
	if rc.coOwnerIndicator != "" {
		if strings.Contains(strings.ToLower(rec.ProcessorName), rc.coOwnerIndicator) ||
			strings.Contains(strings.ToLower(rec.MerchantName), rc.coOwnerIndicator) {
			return entities.RulePartnerB
		}
	}
	if rc.flaggedProcessor != "" &&
		strings.ToLower(rec.ProcessorName) == rc.flaggedProcessor &&
		rec.Net.GreaterThan(rc.highRevenueThreshold) {
		return entities.RulePartnerA
	}
	return entities.RuleStandard
}

// SplitsFor returns the split table for a rule. The returned slice is a
// copy; callers cannot mutate the loaded configuration.
func (rc *RuleConfig) SplitsFor(id entities.RuleID) []entities.RoleSplit {
	splits, ok := rc.tables[id]
	if !ok {
		return nil
	}
	out := make([]entities.RoleSplit, len(splits))
	copy(out, splits)
	return out
}
