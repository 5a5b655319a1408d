package service

import (
	"context"
	"testing"
	"time"

	"royalty-core/internal/event"
	"royalty-core/internal/model"
	"royalty-core/pkg/errno"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedPaymentRequest(t *testing.T, db *gorm.DB, userID uint64, amount, status string) *model.PaymentRequest {
	t.Helper()
	pr := &model.PaymentRequest{
		UserID:      userID,
		Amount:      decimal.RequireFromString(amount),
		Status:      status,
		RequestedAt: time.Now(),
	}
	require.NoError(t, db.Create(pr).Error)
	return pr
}

func walletOf(t *testing.T, db *gorm.DB, userID uint64) decimal.Decimal {
	t.Helper()
	var u model.User
	require.NoError(t, db.First(&u, "id = ?", userID).Error)
	return u.WalletBalance
}

func TestSetStatusApproveDebitsOnce(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1", "50.00")
	pr := seedPaymentRequest(t, db, user.ID, "20.00", model.PaymentStatusPending)

	s := NewPaymentService(db)
	ctx := context.Background()

	require.NoError(t, s.SetStatus(ctx, pr.ID, model.PaymentStatusApproved))

	assert.True(t, decimal.RequireFromString("30.00").Equal(walletOf(t, db, user.ID)))
	var got model.PaymentRequest
	require.NoError(t, db.First(&got, "id = ?", pr.ID).Error)
	assert.Equal(t, model.PaymentStatusApproved, got.Status)

	// Approving an already-Approved request must not debit again.
	require.NoError(t, s.SetStatus(ctx, pr.ID, model.PaymentStatusApproved))
	assert.True(t, decimal.RequireFromString("30.00").Equal(walletOf(t, db, user.ID)))
}

func TestSetStatusInsufficientBalance(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1", "10.00")
	pr := seedPaymentRequest(t, db, user.ID, "100.00", model.PaymentStatusPending)

	s := NewPaymentService(db)
	err := s.SetStatus(context.Background(), pr.ID, model.PaymentStatusApproved)
	require.ErrorIs(t, err, errno.ErrInsufficientBalance)

	// Rolled back: status and wallet untouched.
	var got model.PaymentRequest
	require.NoError(t, db.First(&got, "id = ?", pr.ID).Error)
	assert.Equal(t, model.PaymentStatusPending, got.Status)
	assert.True(t, decimal.RequireFromString("10.00").Equal(walletOf(t, db, user.ID)))
}

func TestSetStatusNoCreditBackOnLeavingApproved(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1", "50.00")
	pr := seedPaymentRequest(t, db, user.ID, "20.00", model.PaymentStatusPending)

	s := NewPaymentService(db)
	ctx := context.Background()

	require.NoError(t, s.SetStatus(ctx, pr.ID, model.PaymentStatusApproved))
	require.NoError(t, s.SetStatus(ctx, pr.ID, model.PaymentStatusRejected))

	// Leaving Approved does not credit the wallet back.
	assert.True(t, decimal.RequireFromString("30.00").Equal(walletOf(t, db, user.ID)))

	// And re-approving afterwards debits again (old status was Rejected).
	require.NoError(t, s.SetStatus(ctx, pr.ID, model.PaymentStatusApproved))
	assert.True(t, decimal.RequireFromString("10.00").Equal(walletOf(t, db, user.ID)))
}

func TestSetStatusUnknownRequest(t *testing.T) {
	db := newTestDB(t)
	s := NewPaymentService(db)
	err := s.SetStatus(context.Background(), 12345, model.PaymentStatusApproved)
	require.ErrorIs(t, err, errno.ErrPaymentRequestNotFound)
}

func TestSetStatusInvalidStatus(t *testing.T) {
	db := newTestDB(t)
	s := NewPaymentService(db)
	err := s.SetStatus(context.Background(), 1, "Cancelled")
	require.ErrorIs(t, err, errno.ErrInvalidStatus)
}

func TestSetStatusWritesOutboxEvent(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1", "50.00")
	pr := seedPaymentRequest(t, db, user.ID, "5.00", model.PaymentStatusPending)

	s := NewPaymentService(db)
	require.NoError(t, s.SetStatus(context.Background(), pr.ID, model.PaymentStatusRejected))

	var msg model.OutboxMessage
	require.NoError(t, db.Where("topic = ?", event.TopicPaymentStatusChanged).First(&msg).Error)
	assert.Equal(t, "PENDING", msg.Status)
	assert.Contains(t, string(msg.Payload), `"new_status":"Rejected"`)
}

func TestSetStatusBulkPartialFailure(t *testing.T) {
	db := newTestDB(t)
	rich := seedUser(t, db, "rich", "100.00")
	poor := seedUser(t, db, "poor", "1.00")

	ok := seedPaymentRequest(t, db, rich.ID, "40.00", model.PaymentStatusPending)
	broke := seedPaymentRequest(t, db, poor.ID, "50.00", model.PaymentStatusPending)

	s := NewPaymentService(db)
	summary, err := s.SetStatusBulk(context.Background(),
		[]uint64{ok.ID, broke.ID, 99999}, model.PaymentStatusApproved)
	require.NoError(t, err)

	// Unknown id is skipped, insufficient balance is a failure.
	assert.Equal(t, 1, summary.Updated)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Items, 3)
	assert.Equal(t, "updated", summary.Items[0].Result)
	assert.Equal(t, "failed", summary.Items[1].Result)
	assert.Equal(t, "skipped", summary.Items[2].Result)

	// The failing items did not sink the successful one.
	assert.True(t, decimal.RequireFromString("60.00").Equal(walletOf(t, db, rich.ID)))
	assert.True(t, decimal.RequireFromString("1.00").Equal(walletOf(t, db, poor.ID)))

	var got model.PaymentRequest
	require.NoError(t, db.First(&got, "id = ?", broke.ID).Error)
	assert.Equal(t, model.PaymentStatusPending, got.Status)
}

func TestListExcludesSoftDeletedUsers(t *testing.T) {
	db := newTestDB(t)
	kept := seedUser(t, db, "kept", "0")
	gone := seedUser(t, db, "gone", "0")
	seedPaymentRequest(t, db, kept.ID, "5.00", model.PaymentStatusPending)
	seedPaymentRequest(t, db, gone.ID, "6.00", model.PaymentStatusPending)

	require.NoError(t, db.Delete(&model.User{}, gone.ID).Error)

	s := NewPaymentService(db)
	rows, _, err := s.List(context.Background(), 1, 10)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "kept", rows[0].UserName)
}

func TestSetStatusBulkValidation(t *testing.T) {
	db := newTestDB(t)
	s := NewPaymentService(db)

	_, err := s.SetStatusBulk(context.Background(), nil, model.PaymentStatusApproved)
	require.ErrorIs(t, err, errno.ErrValidation)

	_, err = s.SetStatusBulk(context.Background(), []uint64{1}, "nope")
	require.ErrorIs(t, err, errno.ErrInvalidStatus)
}
