package service

import (
	"context"
	"encoding/json"
	"errors"

	"royalty-core/internal/event"
	"royalty-core/internal/model"
	"royalty-core/pkg/errno"
	"royalty-core/pkg/monitor"

	"gorm.io/gorm"
)

// PaymentService moves payment requests between Pending/Approved/Rejected.
//
// The wallet is debited only on a transition where the previous status was
// not Approved and the new one is. Moving a request out of Approved does NOT
// credit the wallet back; that behavior is deliberately absent until product
// decides otherwise.
type PaymentService struct {
	db *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{db: db}
}

// SetStatus applies one status transition atomically.
func (s *PaymentService) SetStatus(ctx context.Context, requestID uint64, newStatus string) error {
	if !model.ValidPaymentStatus(newStatus) {
		return errno.ErrInvalidStatus
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.setStatusTx(tx, requestID, newStatus)
	})

	result := "ok"
	if err != nil {
		result = "failed"
	}
	monitor.PaymentTransitionsTotal.WithLabelValues(newStatus, result).Inc()
	return err
}

// setStatusTx does the locked read-modify-write for one request. Both the
// payment_requests row and the users row are locked before the balance is
// computed, so concurrent approvals of the same user serialize.
func (s *PaymentService) setStatusTx(tx *gorm.DB, requestID uint64, newStatus string) error {
	var req model.PaymentRequest
	err := lockForUpdate(tx).First(&req, "id = ?", requestID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errno.ErrPaymentRequestNotFound
	}
	if err != nil {
		return err
	}

	var user model.User
	err = lockForUpdate(tx).First(&user, "id = ?", req.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errno.ErrUserNotFound
	}
	if err != nil {
		return err
	}

	oldStatus := req.Status

	// Debit exactly once: only when entering Approved from elsewhere.
	if oldStatus != model.PaymentStatusApproved && newStatus == model.PaymentStatusApproved {
		if user.WalletBalance.LessThan(req.Amount) {
			return errno.ErrInsufficientBalance
		}
		user.WalletBalance = user.WalletBalance.Sub(req.Amount)
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
	}

	req.Status = newStatus
	if err := tx.Save(&req).Error; err != nil {
		return err
	}

	payload, err := json.Marshal(event.PaymentStatusChangedEvent{
		PaymentRequestID: req.ID,
		UserID:           req.UserID,
		OldStatus:        oldStatus,
		NewStatus:        newStatus,
		Amount:           req.Amount.String(),
	})
	if err != nil {
		return err
	}
	return tx.Create(&model.OutboxMessage{
		Topic:   event.TopicPaymentStatusChanged,
		Payload: payload,
	}).Error
}

// BulkItemResult records the outcome for one id in a bulk update.
type BulkItemResult struct {
	ID     uint64 `json:"id"`
	Result string `json:"result"` // updated | skipped | failed
	Reason string `json:"reason,omitempty"`
}

// BulkSummary aggregates a bulk status update.
type BulkSummary struct {
	Updated int              `json:"updated"`
	Skipped int              `json:"skipped"`
	Failed  int              `json:"failed"`
	Items   []BulkItemResult `json:"items"`
}

// SetStatusBulk applies the same transition to every id inside one outer
// transaction. Each item runs in a savepoint and is recorded per id: an
// unknown id is skipped, an actual failure (insufficient balance) rolls
// back alone, and the other items still commit.
func (s *PaymentService) SetStatusBulk(ctx context.Context, ids []uint64, newStatus string) (*BulkSummary, error) {
	if !model.ValidPaymentStatus(newStatus) {
		return nil, errno.ErrInvalidStatus
	}
	if len(ids) == 0 {
		return nil, errno.ErrValidation
	}

	summary := &BulkSummary{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, id := range ids {
			itemErr := tx.Transaction(func(itemTx *gorm.DB) error {
				return s.setStatusTx(itemTx, id, newStatus)
			})
			switch {
			case errors.Is(itemErr, errno.ErrPaymentRequestNotFound):
				summary.Skipped++
				summary.Items = append(summary.Items, BulkItemResult{
					ID:     id,
					Result: "skipped",
					Reason: itemErr.Error(),
				})
			case itemErr != nil:
				summary.Failed++
				summary.Items = append(summary.Items, BulkItemResult{
					ID:     id,
					Result: "failed",
					Reason: itemErr.Error(),
				})
			default:
				summary.Updated++
				summary.Items = append(summary.Items, BulkItemResult{ID: id, Result: "updated"})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// ListedPaymentRequest is the admin view: request joined with the user and
// their default payout method.
type ListedPaymentRequest struct {
	model.PaymentRequest
	UserName      string `json:"user_name"`
	UserEmail     string `json:"user_email"`
	PayoutMethod  string `json:"payout_method"`
	PayoutAccount string `json:"payout_account"`
}

// List returns one page of payment requests for the back office.
func (s *PaymentService) List(ctx context.Context, page, pageSize int) ([]ListedPaymentRequest, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 500 {
		pageSize = 50
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&model.PaymentRequest{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []ListedPaymentRequest
	err := s.db.WithContext(ctx).Raw(`
		SELECT pr.*, u.name AS user_name, u.email AS user_email,
		       COALESCE(pm.method, '') AS payout_method,
		       COALESCE(pm.account_label, '') AS payout_account
		FROM payment_requests pr
		JOIN users u ON u.id = pr.user_id AND u.deleted_at IS NULL
		LEFT JOIN payment_methods pm ON pm.user_id = u.id AND pm.is_default
		ORDER BY pr.requested_at DESC, pr.id DESC
		LIMIT ? OFFSET ?`, pageSize, (page-1)*pageSize).
		Scan(&rows).Error
	return rows, total, err
}
