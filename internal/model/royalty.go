package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RoyaltyLedgerEntry is one row per (user, reporting period).
//
// Invariant, re-established on every upsert:
//
//	closing_balance = opening_balance + earnings + adjustments
//	                - split_share_deductions - withdrawals
type RoyaltyLedgerEntry struct {
	ID                   uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID               uint64          `gorm:"not null;uniqueIndex:idx_user_period" json:"user_id"`
	ReportingPeriod      string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_user_period" json:"reporting_period"`
	OpeningBalance       decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"opening_balance"`
	Earnings             decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"earnings"`
	Adjustments          decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"adjustments"`
	SplitShareDeductions decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"split_share_deductions"`
	Withdrawals          decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"withdrawals"`
	ClosingBalance       decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"closing_balance"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

func (RoyaltyLedgerEntry) TableName() string {
	return "royalty_ledger_entries"
}
