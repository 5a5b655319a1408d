package service

import (
	"errors"
	"sort"
	"strings"

	"royalty-core/internal/model"
	"royalty-core/pkg/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReconcileService turns one ingested earnings batch into royalty ledger
// state: it groups the batch by (catalogue, reporting period), attributes
// each group to the release owner and upserts that user's ledger entry.
//
// Earnings accumulate: re-processing the same rows adds them again. Batch
// de-duplication is a product decision that has not been made, so the batch
// file hash is recorded and logged but never enforced.
type ReconcileService struct {
	splits *SplitService
}

func NewReconcileService(splits *SplitService) *ReconcileService {
	return &ReconcileService{splits: splits}
}

type groupKey struct {
	Catalogue string
	Period    string
}

// isVoid reports whether a sale_or_void marker cancels the row.
func isVoid(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "void", "voided":
		return true
	}
	return false
}

// ProcessBatch applies the batch to the ledger inside the caller's
// transaction and returns how many ledger entries were written. Groups whose
// catalogue matches no release are logged and dropped; they cannot be
// attributed to any user.
func (s *ReconcileService) ProcessBatch(tx *gorm.DB, records []model.EarningsRecord) (int, error) {
	totals := make(map[groupKey]decimal.Decimal)
	for _, rec := range records {
		if isVoid(rec.SaleOrVoid) {
			continue
		}
		key := groupKey{Catalogue: rec.Catalogue, Period: rec.ReportingPeriod}
		totals[key] = totals[key].Add(rec.Royalty)
	}

	// Deterministic order across runs.
	keys := make([]groupKey, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Catalogue != keys[j].Catalogue {
			return keys[i].Catalogue < keys[j].Catalogue
		}
		return keys[i].Period < keys[j].Period
	})

	processed := 0
	for _, key := range keys {
		var release model.Release
		err := tx.Where("catalogue = ?", key.Catalogue).First(&release).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("reconcile: catalogue has no matching release, group dropped",
				zap.String("catalogue", key.Catalogue),
				zap.String("period", key.Period))
			continue
		}
		if err != nil {
			return processed, err
		}

		if err := s.upsertLedgerEntry(tx, release.UserID, key, totals[key]); err != nil {
			return processed, err
		}
		processed++
	}

	return processed, nil
}

// upsertLedgerEntry adds totalRoyalty to the (user, period) entry, creating
// it if absent, and re-establishes
//
//	closing = opening + earnings + adjustments - deductions - withdrawals
//
// with opening balance and split deductions recomputed fresh on every pass.
func (s *ReconcileService) upsertLedgerEntry(tx *gorm.DB, userID uint64, key groupKey, totalRoyalty decimal.Decimal) error {
	var entry model.RoyaltyLedgerEntry
	err := lockForUpdate(tx).
		Where("user_id = ? AND reporting_period = ?", userID, key.Period).
		First(&entry).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		entry = model.RoyaltyLedgerEntry{
			UserID:          userID,
			ReportingPeriod: key.Period,
			Earnings:        totalRoyalty,
			Adjustments:     decimal.Zero,
			Withdrawals:     decimal.Zero,
		}
		opening, err := s.priorClosingBalance(tx, userID, 0)
		if err != nil {
			return err
		}
		entry.OpeningBalance = opening
	case err != nil:
		return err
	default:
		entry.Earnings = entry.Earnings.Add(totalRoyalty)
		opening, err := s.priorClosingBalance(tx, userID, entry.ID)
		if err != nil {
			return err
		}
		entry.OpeningBalance = opening
	}

	deduction, err := s.splits.Calculate(tx, userID, key.Catalogue, entry.Earnings)
	if err != nil {
		return err
	}
	entry.SplitShareDeductions = deduction

	entry.ClosingBalance = entry.OpeningBalance.
		Add(entry.Earnings).
		Add(entry.Adjustments).
		Sub(entry.SplitShareDeductions).
		Sub(entry.Withdrawals)

	return tx.Save(&entry).Error
}

// priorClosingBalance returns the closing balance of the user's most recent
// ledger entry created before the one identified by beforeID (0 means "most
// recent overall"). Falls back to zero for a first entry.
func (s *ReconcileService) priorClosingBalance(tx *gorm.DB, userID uint64, beforeID uint64) (decimal.Decimal, error) {
	q := tx.Where("user_id = ?", userID)
	if beforeID > 0 {
		q = q.Where("id < ?", beforeID)
	}

	var prior model.RoyaltyLedgerEntry
	err := q.Order("id DESC").First(&prior).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return prior.ClosingBalance, nil
}
