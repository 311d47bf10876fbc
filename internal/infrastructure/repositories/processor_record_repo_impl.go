package repositories

import (
	"context"

	"gorm.io/gorm"
	"residual-hub.backend/internal/domain/entities"
	domainrepos "residual-hub.backend/internal/domain/repositories"
	"residual-hub.backend/internal/infrastructure/models"
)

type processorRecordRepo struct {
	db *gorm.DB
}

// NewProcessorRecordRepository creates a new processor record repository
func NewProcessorRecordRepository(db *gorm.DB) domainrepos.ProcessorRecordRepository {
	return &processorRecordRepo{db: db}
}

// ReplaceForProcessorMonth deletes the prior row set for the
// processor+month and inserts the new one. Run inside a UnitOfWork so a
// failed upload never leaves the month half-replaced.
func (r *processorRecordRepo) ReplaceForProcessorMonth(ctx context.Context, processorName, month string, records []*entities.ProcessorRecord) error {
	db := GetDB(ctx, r.db).WithContext(ctx)

	err := db.Where("processor_name = ? AND month = ?", processorName, month).
		Delete(&models.ProcessorRecord{}).Error
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	rows := make([]models.ProcessorRecord, 0, len(records))
	for _, rec := range records {
		rows = append(rows, *toProcessorRecordModel(rec))
	}
	return db.CreateInBatches(rows, 200).Error
}

func (r *processorRecordRepo) ListByMonth(ctx context.Context, month string) ([]*entities.ProcessorRecord, error) {
	var rows []models.ProcessorRecord
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("month = ?", month).
		Order("processor_name ASC, merchant_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toProcessorRecordEntities(rows), nil
}

func (r *processorRecordRepo) ListRange(ctx context.Context, from, to, processorName string) ([]*entities.ProcessorRecord, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).
		Where("month >= ? AND month <= ?", from, to)
	if processorName != "" {
		query = query.Where("processor_name = ?", processorName)
	}

	var rows []models.ProcessorRecord
	if err := query.Order("month ASC, merchant_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toProcessorRecordEntities(rows), nil
}

func (r *processorRecordRepo) DistinctMerchantIDs(ctx context.Context, month string) ([]string, error) {
	var ids []string
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.ProcessorRecord{}).
		Where("month = ?", month).
		Distinct("merchant_id").
		Order("merchant_id ASC").
		Pluck("merchant_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func toProcessorRecordModel(rec *entities.ProcessorRecord) *models.ProcessorRecord {
	row := &models.ProcessorRecord{
		ID:               rec.ID,
		ProcessorName:    rec.ProcessorName,
		Month:            rec.Month,
		MerchantID:       rec.MerchantID,
		MerchantName:     rec.MerchantName,
		Net:              rec.Net,
		SalesVolume:      rec.SalesVolume,
		TransactionCount: rec.TransactionCount,
		CreatedAt:        rec.CreatedAt,
	}
	if rec.GroupCode.Valid {
		row.GroupCode = &rec.GroupCode.String
	}
	if rec.BranchID.Valid {
		row.BranchID = &rec.BranchID.String
	}
	return row
}

func toProcessorRecordEntities(rows []models.ProcessorRecord) []*entities.ProcessorRecord {
	items := make([]*entities.ProcessorRecord, 0, len(rows))
	for i := range rows {
		items = append(items, toProcessorRecordEntity(&rows[i]))
	}
	return items
}

func toProcessorRecordEntity(m *models.ProcessorRecord) *entities.ProcessorRecord {
	rec := &entities.ProcessorRecord{
		ID:               m.ID,
		MerchantID:       m.MerchantID,
		MerchantName:     m.MerchantName,
		Month:            m.Month,
		Net:              m.Net,
		SalesVolume:      m.SalesVolume,
		TransactionCount: m.TransactionCount,
		ProcessorName:    m.ProcessorName,
		CreatedAt:        m.CreatedAt,
	}
	if m.GroupCode != nil {
		rec.GroupCode.SetValid(*m.GroupCode)
	}
	if m.BranchID != nil {
		rec.BranchID.SetValid(*m.BranchID)
	}
	return rec
}
