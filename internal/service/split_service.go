package service

import (
	"errors"

	"royalty-core/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var oneHundred = decimal.NewFromInt(100)

// SplitService computes the proportional deduction owed to collaborators
// on a release, based on approved split agreements.
type SplitService struct{}

func NewSplitService() *SplitService {
	return &SplitService{}
}

// Calculate returns the split-share deduction for earnings attributed to the
// release identified by (catalogue, userID). Runs on the caller's tx so the
// reconciler sees a consistent snapshot.
//
// No release, or no approved splits, means no deduction.
func (s *SplitService) Calculate(tx *gorm.DB, userID uint64, catalogue string, earnings decimal.Decimal) (decimal.Decimal, error) {
	var release model.Release
	err := tx.Where("catalogue = ? AND user_id = ?", catalogue, userID).First(&release).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}

	var totalPct decimal.Decimal
	err = tx.Model(&model.SplitShareAgreement{}).
		Where("release_id = ? AND status = ?", release.ID, model.SplitStatusApproved).
		Select("COALESCE(SUM(split_percentage), 0)").
		Scan(&totalPct).Error
	if err != nil {
		return decimal.Zero, err
	}

	if totalPct.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, nil
	}

	return earnings.Mul(totalPct).Div(oneHundred), nil
}
