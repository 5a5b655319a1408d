package service

import (
	"context"
	"errors"
	"time"

	"royalty-core/internal/model"
	"royalty-core/pkg/errno"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RoyaltyService is the admin surface over the royalty ledger. The ledger
// rows themselves are owned by the reconciler; this service lists them,
// supports manual entries and drives the payment request that pays one out.
type RoyaltyService struct {
	db       *gorm.DB
	payments *PaymentService
}

func NewRoyaltyService(db *gorm.DB, payments *PaymentService) *RoyaltyService {
	return &RoyaltyService{db: db, payments: payments}
}

// LedgerRow is a ledger entry joined with the owning user and the
// best-effort status of their most recent payment request.
type LedgerRow struct {
	model.RoyaltyLedgerEntry
	UserName      string `json:"user_name"`
	PaymentStatus string `json:"payment_status"`
}

// List returns one page of ledger rows, newest first.
func (s *RoyaltyService) List(ctx context.Context, page, pageSize int) ([]LedgerRow, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 500 {
		pageSize = 50
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&model.RoyaltyLedgerEntry{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []LedgerRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT l.*, u.name AS user_name,
		       COALESCE((
		           SELECT p.status FROM payment_requests p
		           WHERE p.user_id = l.user_id
		           ORDER BY p.requested_at DESC, p.id DESC
		           LIMIT 1
		       ), '') AS payment_status
		FROM royalty_ledger_entries l
		JOIN users u ON u.id = l.user_id AND u.deleted_at IS NULL
		ORDER BY l.id DESC
		LIMIT ? OFFSET ?`, pageSize, (page-1)*pageSize).
		Scan(&rows).Error
	return rows, total, err
}

// CreateInput is an admin-entered ledger row. ClosingBalance is derived,
// never accepted from the caller.
type CreateInput struct {
	UserID               uint64
	ReportingPeriod      string
	OpeningBalance       decimal.Decimal
	Earnings             decimal.Decimal
	Adjustments          decimal.Decimal
	SplitShareDeductions decimal.Decimal
	Withdrawals          decimal.Decimal
}

// Create inserts a manual ledger entry for (user, period).
func (s *RoyaltyService) Create(ctx context.Context, in CreateInput) (*model.RoyaltyLedgerEntry, error) {
	if in.UserID == 0 || in.ReportingPeriod == "" {
		return nil, errno.ErrValidation
	}

	var user model.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", in.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errno.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	entry := model.RoyaltyLedgerEntry{
		UserID:               in.UserID,
		ReportingPeriod:      in.ReportingPeriod,
		OpeningBalance:       in.OpeningBalance,
		Earnings:             in.Earnings,
		Adjustments:          in.Adjustments,
		SplitShareDeductions: in.SplitShareDeductions,
		Withdrawals:          in.Withdrawals,
	}
	entry.ClosingBalance = entry.OpeningBalance.
		Add(entry.Earnings).
		Add(entry.Adjustments).
		Sub(entry.SplitShareDeductions).
		Sub(entry.Withdrawals)

	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateStatus drives payout of a ledger entry: it finds the user's payment
// request matching the entry's closing balance (creating a Pending one when
// absent) and applies the status transition to it, wallet debit rules
// included.
func (s *RoyaltyService) UpdateStatus(ctx context.Context, entryID uint64, newStatus string) error {
	if !model.ValidPaymentStatus(newStatus) {
		return errno.ErrInvalidStatus
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry model.RoyaltyLedgerEntry
		err := tx.First(&entry, "id = ?", entryID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errno.ErrRoyaltyEntryNotFound
		}
		if err != nil {
			return err
		}

		// Best-effort match by user and amount; the schema has no hard link
		// between ledger entries and payment requests.
		var req model.PaymentRequest
		err = tx.Where("user_id = ? AND amount = ?", entry.UserID, entry.ClosingBalance).
			Order("id DESC").
			First(&req).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			req = model.PaymentRequest{
				UserID:      entry.UserID,
				Amount:      entry.ClosingBalance,
				Status:      model.PaymentStatusPending,
				RequestedAt: time.Now(),
			}
			if err := tx.Create(&req).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		return s.payments.setStatusTx(tx, req.ID, newStatus)
	})
}

// Delete removes a ledger entry permanently.
func (s *RoyaltyService) Delete(ctx context.Context, entryID uint64) error {
	res := s.db.WithContext(ctx).Delete(&model.RoyaltyLedgerEntry{}, "id = ?", entryID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errno.ErrRoyaltyEntryNotFound
	}
	return nil
}
