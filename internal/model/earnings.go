package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale/void markers as they appear (normalized) in DSP exports.
const (
	TransactionSale = "Sale"
	TransactionVoid = "Void"
)

// EarningsRecord is one transaction line from an uploaded earnings report:
// one row per (track/release, DSP, territory, period). Append-only; rows are
// never mutated or deleted, corrections arrive as a new batch.
type EarningsRecord struct {
	ID              uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	BatchID         string          `gorm:"type:varchar(64);not null;index" json:"batch_id"`
	ReportingPeriod string          `gorm:"type:varchar(50);not null;index" json:"reporting_period"`
	Catalogue       string          `gorm:"type:varchar(100);not null;index" json:"catalogue"`
	ISRC            string          `gorm:"type:varchar(50)" json:"isrc"`
	UPC             string          `gorm:"type:varchar(50)" json:"upc"`
	DSP             string          `gorm:"type:varchar(100)" json:"dsp"`
	Territory       string          `gorm:"type:varchar(100)" json:"territory"`
	Count           int64           `gorm:"not null;default:0" json:"count"`
	Royalty         decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"royalty"`
	SaleOrVoid      string          `gorm:"type:varchar(20);not null;default:'Sale'" json:"sale_or_void"`
	CreatedAt       time.Time       `json:"created_at"`
}

// UploadBatch records one ingest operation. Written once, never mutated.
type UploadBatch struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	BatchID    string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"batch_id"`
	Filename   string    `gorm:"type:varchar(255);not null" json:"filename"`
	FileHash   string    `gorm:"type:varchar(64);index" json:"file_hash"`
	RowCount   int       `gorm:"not null" json:"row_count"`
	UploaderID uint64    `gorm:"not null;index" json:"uploader_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (EarningsRecord) TableName() string {
	return "earnings_records"
}

func (UploadBatch) TableName() string {
	return "upload_batches"
}
