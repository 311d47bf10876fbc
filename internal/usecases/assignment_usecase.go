package usecases

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"residual-hub.backend/internal/domain/entities"
	domainerrors "residual-hub.backend/internal/domain/errors"
	"residual-hub.backend/internal/domain/repositories"
	"residual-hub.backend/pkg/logger"
)

// AssignmentUsecase resolves which rule applies to each merchant-month and
// upserts the resulting role splits. Resolution is a pure function of the
// merchant record plus the loaded rule configuration; re-running for the
// same inputs performs the same upserts and never duplicates rows.
type AssignmentUsecase struct {
	recordRepo     repositories.ProcessorRecordRepository
	roleRepo       repositories.RoleRepository
	assignmentRepo repositories.AssignmentRepository
	uow            repositories.UnitOfWork
	rules          *RuleConfig
}

// NewAssignmentUsecase creates a new assignment usecase
func NewAssignmentUsecase(
	recordRepo repositories.ProcessorRecordRepository,
	roleRepo repositories.RoleRepository,
	assignmentRepo repositories.AssignmentRepository,
	uow repositories.UnitOfWork,
	rules *RuleConfig,
) *AssignmentUsecase {
	return &AssignmentUsecase{
		recordRepo:     recordRepo,
		roleRepo:       roleRepo,
		assignmentRepo: assignmentRepo,
		uow:            uow,
		rules:          rules,
	}
}

// ResolveMonth resolves assignments for every merchant seen in the month's
// processor records, optionally narrowed to one merchant id. When a
// merchant appears in more than one processor file for the month, the
// record with the highest net drives rule selection.
func (u *AssignmentUsecase) ResolveMonth(ctx context.Context, month, merchantIDFilter string) ([]entities.AssignmentUpsert, error) {
	if _, err := entities.ParseMonth(month); err != nil {
		return nil, domainerrors.BadRequest("month must be formatted YYYY-MM")
	}

	records, err := u.recordRepo.ListByMonth(ctx, month)
	if err != nil {
		return nil, err
	}

	// Highest-net record per merchant
	byMerchant := make(map[string]*entities.ProcessorRecord)
	for _, rec := range records {
		if merchantIDFilter != "" && rec.MerchantID != merchantIDFilter {
			continue
		}
		current, ok := byMerchant[rec.MerchantID]
		if !ok || rec.Net.GreaterThan(current.Net) {
			byMerchant[rec.MerchantID] = rec
		}
	}

	merchantIDs := make([]string, 0, len(byMerchant))
	for id := range byMerchant {
		merchantIDs = append(merchantIDs, id)
	}
	sort.Strings(merchantIDs)

	var upserts []entities.AssignmentUpsert
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		for _, merchantID := range merchantIDs {
			rec := byMerchant[merchantID]
			ruleID := u.rules.ResolveRule(rec)

			for _, split := range u.rules.SplitsFor(ruleID) {
				role, err := u.roleRepo.GetOrCreate(txCtx, split.RoleName, split.RoleType)
				if err != nil {
					return err
				}
				assignment := &entities.Assignment{
					MerchantID: merchantID,
					RoleID:     role.ID,
					Month:      month,
					Percentage: split.Percentage,
					RoleType:   split.RoleType,
				}
				if err := u.assignmentRepo.Upsert(txCtx, assignment); err != nil {
					return err
				}
				upserts = append(upserts, entities.AssignmentUpsert{
					MerchantID: merchantID,
					RoleName:   split.RoleName,
					RoleType:   split.RoleType,
					Month:      month,
					Percentage: split.Percentage,
					RuleID:     ruleID,
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "assignment resolution completed",
		zap.String("month", month),
		zap.Int("merchants", len(merchantIDs)),
		zap.Int("upserts", len(upserts)),
	)
	return upserts, nil
}
