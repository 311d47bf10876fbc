package usecases

import (
	"context"
	"time"

	"go.uber.org/zap"
	"residual-hub.backend/internal/domain/entities"
	domainerrors "residual-hub.backend/internal/domain/errors"
	"residual-hub.backend/internal/domain/repositories"
	"residual-hub.backend/pkg/logger"
	"residual-hub.backend/pkg/utils"
)

// UploadUsecase runs the intake pipeline for one processor export:
// normalize, validate, then persist when the report is clean or the caller
// forces acceptance.
type UploadUsecase struct {
	recordRepo   repositories.ProcessorRecordRepository
	merchantRepo repositories.MerchantRepository
	uow          repositories.UnitOfWork
}

// NewUploadUsecase creates a new upload usecase
func NewUploadUsecase(
	recordRepo repositories.ProcessorRecordRepository,
	merchantRepo repositories.MerchantRepository,
	uow repositories.UnitOfWork,
) *UploadUsecase {
	return &UploadUsecase{
		recordRepo:   recordRepo,
		merchantRepo: merchantRepo,
		uow:          uow,
	}
}

// UploadInput is one intake request
type UploadInput struct {
	ProcessorName string
	Month         string // YYYY-MM
	Rows          []entities.RawRow
	// Force accepts the upload even when validation reports errors
	Force bool
}

// UploadResult is the intake report returned to the caller
type UploadResult struct {
	Validation          entities.ValidationResult    `json:"validation"`
	NormalizationErrors []entities.NormalizationError `json:"normalizationErrors,omitempty"`
	Accepted            bool                          `json:"accepted"`
	PersistedCount      int                           `json:"persistedCount"`
}

// Upload normalizes and validates the rows, and persists the record set
// when valid or forced. Persistence supersedes any prior upload of the
// same processor+month and upserts merchant master rows from sightings,
// all inside one transaction: a failed upload leaves prior state visible.
func (u *UploadUsecase) Upload(ctx context.Context, input UploadInput) (*UploadResult, error) {
	if _, err := entities.ParseMonth(input.Month); err != nil {
		return nil, domainerrors.BadRequest("month must be formatted YYYY-MM")
	}
	if input.ProcessorName == "" {
		return nil, domainerrors.BadRequest("processor name is required")
	}

	records, dropped := Normalize(input.Rows, input.ProcessorName, input.Month)
	validation := Validate(records, input.ProcessorName)

	result := &UploadResult{
		Validation:          validation,
		NormalizationErrors: dropped,
	}

	if !validation.IsValid && !input.Force {
		logger.Warn(ctx, "upload rejected by validation",
			zap.String("processor", input.ProcessorName),
			zap.String("month", input.Month),
			zap.Int("error_rows", validation.Summary.ErrorRows),
		)
		return result, nil
	}

	persisted := make([]*entities.ProcessorRecord, 0, len(records))
	now := time.Now()
	for i := range records {
		rec := records[i]
		rec.ID = utils.GenerateUUIDv7()
		rec.CreatedAt = now
		persisted = append(persisted, &rec)
	}

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.recordRepo.ReplaceForProcessorMonth(txCtx, input.ProcessorName, input.Month, persisted); err != nil {
			return err
		}
		for _, rec := range persisted {
			merchant := &entities.Merchant{
				MerchantID:       rec.MerchantID,
				LegalName:        rec.MerchantName,
				DBA:              rec.MerchantName,
				CurrentProcessor: rec.ProcessorName,
			}
			if err := u.merchantRepo.Upsert(txCtx, merchant); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Accepted = true
	result.PersistedCount = len(persisted)

	logger.Info(ctx, "upload accepted",
		zap.String("processor", input.ProcessorName),
		zap.String("month", input.Month),
		zap.Int("rows", len(input.Rows)),
		zap.Int("persisted", result.PersistedCount),
		zap.Int("dropped", len(dropped)),
		zap.Bool("forced", input.Force && !validation.IsValid),
	)
	return result, nil
}
