package service

import (
	"bytes"
	"context"
	"encoding/json"

	"royalty-core/internal/event"
	"royalty-core/internal/ingest"
	"royalty-core/internal/model"
	"royalty-core/pkg/crypto_util"
	"royalty-core/pkg/logger"
	"royalty-core/pkg/monitor"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const insertChunkSize = 500

// IngestSummary is returned to the uploader after a batch is processed.
type IngestSummary struct {
	BatchID            string `json:"batch_id"`
	Filename           string `json:"filename"`
	RowsImported       int    `json:"rows_imported"`
	RowsSkipped        int    `json:"rows_skipped"`
	RoyaltiesProcessed int    `json:"royalties_processed"`
}

// EarningsService owns the earnings store: it parses uploads into canonical
// rows, persists them append-only under a batch id and hands the batch to
// the reconciler. Corrections are a new batch, never an update.
type EarningsService struct {
	db        *gorm.DB
	reconcile *ReconcileService
	maxRows   int
}

func NewEarningsService(db *gorm.DB, reconcile *ReconcileService, maxRows int) *EarningsService {
	if maxRows <= 0 {
		maxRows = ingest.DefaultMaxRows
	}
	return &EarningsService{
		db:        db,
		reconcile: reconcile,
		maxRows:   maxRows,
	}
}

// IngestUpload parses data as a CSV earnings report and applies it: rows,
// batch metadata, ledger updates and the outbox event all commit in one
// transaction, or none of them do.
func (s *EarningsService) IngestUpload(ctx context.Context, filename string, uploaderID uint64, data []byte) (*IngestSummary, error) {
	parsed, err := ingest.Parse(bytes.NewReader(data), s.maxRows)
	if err != nil {
		return nil, err
	}

	batchID := uuid.New().String()
	fileHash := crypto_util.CalculateSHA256(data)

	// Duplicate content is logged but not rejected: earnings accumulate on
	// re-upload and the correction policy is still an open product question.
	var dupes int64
	if err := s.db.WithContext(ctx).Model(&model.UploadBatch{}).
		Where("file_hash = ?", fileHash).Count(&dupes).Error; err == nil && dupes > 0 {
		logger.Warn("earnings upload has identical content to a previous batch; earnings will accumulate again",
			zap.String("filename", filename),
			zap.String("file_hash", fileHash))
	}

	summary := &IngestSummary{
		BatchID:      batchID,
		Filename:     filename,
		RowsImported: parsed.Imported,
		RowsSkipped:  parsed.Skipped,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.insertBatch(tx, parsed.Records, batchID); err != nil {
			return err
		}
		if err := s.recordUploadBatch(tx, batchID, filename, fileHash, parsed.Imported, uploaderID); err != nil {
			return err
		}

		processed, err := s.reconcile.ProcessBatch(tx, parsed.Records)
		if err != nil {
			return err
		}
		summary.RoyaltiesProcessed = processed

		payload, err := json.Marshal(event.BatchProcessedEvent{
			BatchID:        batchID,
			Filename:       filename,
			RowsImported:   parsed.Imported,
			RowsSkipped:    parsed.Skipped,
			UsersProcessed: processed,
		})
		if err != nil {
			return err
		}
		return tx.Create(&model.OutboxMessage{
			Topic:   event.TopicBatchProcessed,
			Payload: payload,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	monitor.UploadBatchesTotal.Inc()
	monitor.EarningsRowsIngested.Add(float64(parsed.Imported))
	monitor.EarningsRowsSkipped.Add(float64(parsed.Skipped))

	logger.Info("earnings batch processed",
		zap.String("batch_id", batchID),
		zap.String("filename", filename),
		zap.Int("imported", parsed.Imported),
		zap.Int("skipped", parsed.Skipped),
		zap.Int("royalties_processed", summary.RoyaltiesProcessed))

	return summary, nil
}

// insertBatch persists the canonical rows tagged with batchID. Rows are
// immutable afterwards.
func (s *EarningsService) insertBatch(tx *gorm.DB, records []model.EarningsRecord, batchID string) error {
	if len(records) == 0 {
		return nil
	}
	for i := range records {
		records[i].BatchID = batchID
	}
	return tx.CreateInBatches(records, insertChunkSize).Error
}

// recordUploadBatch writes the batch metadata exactly once.
func (s *EarningsService) recordUploadBatch(tx *gorm.DB, batchID, filename, fileHash string, rowCount int, uploaderID uint64) error {
	return tx.Create(&model.UploadBatch{
		BatchID:    batchID,
		Filename:   filename,
		FileHash:   fileHash,
		RowCount:   rowCount,
		UploaderID: uploaderID,
	}).Error
}

// List returns one page of canonical earnings rows, newest first.
func (s *EarningsService) List(ctx context.Context, page, pageSize int) ([]model.EarningsRecord, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 500 {
		pageSize = 50
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&model.EarningsRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.EarningsRecord
	err := s.db.WithContext(ctx).
		Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error
	return rows, total, err
}
