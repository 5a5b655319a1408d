package service

import (
	"context"
	"testing"

	"royalty-core/internal/model"
	"royalty-core/pkg/errno"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoyaltyCreateDerivesClosing(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1", "0")

	s := NewRoyaltyService(db, NewPaymentService(db))
	entry, err := s.Create(context.Background(), CreateInput{
		UserID:               user.ID,
		ReportingPeriod:      "2024-03",
		OpeningBalance:       decimal.RequireFromString("5.00"),
		Earnings:             decimal.RequireFromString("10.00"),
		SplitShareDeductions: decimal.RequireFromString("2.50"),
		Withdrawals:          decimal.RequireFromString("1.00"),
	})
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("11.50").Equal(entry.ClosingBalance), "got %s", entry.ClosingBalance)
	assertLedgerInvariant(t, entry)
}

func TestRoyaltyCreateValidation(t *testing.T) {
	db := newTestDB(t)
	s := NewRoyaltyService(db, NewPaymentService(db))

	_, err := s.Create(context.Background(), CreateInput{UserID: 0, ReportingPeriod: "2024-03"})
	require.ErrorIs(t, err, errno.ErrValidation)

	_, err = s.Create(context.Background(), CreateInput{UserID: 777, ReportingPeriod: "2024-03"})
	require.ErrorIs(t, err, errno.ErrUserNotFound)
}

func TestRoyaltyUpdateStatusCreatesAndApprovesPaymentRequest(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1", "100.00")

	s := NewRoyaltyService(db, NewPaymentService(db))
	entry, err := s.Create(context.Background(), CreateInput{
		UserID:          user.ID,
		ReportingPeriod: "2024-01",
		Earnings:        decimal.RequireFromString("25.00"),
	})
	require.NoError(t, err)

	// No payment request exists yet: one is created, then approved, which
	// debits the wallet by the entry's closing balance.
	require.NoError(t, s.UpdateStatus(context.Background(), entry.ID, model.PaymentStatusApproved))

	var pr model.PaymentRequest
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&pr).Error)
	assert.Equal(t, model.PaymentStatusApproved, pr.Status)
	assert.True(t, decimal.RequireFromString("25.00").Equal(pr.Amount))
	assert.True(t, decimal.RequireFromString("75.00").Equal(walletOf(t, db, user.ID)))

	// A second call matches the same request; no new request, no new debit.
	require.NoError(t, s.UpdateStatus(context.Background(), entry.ID, model.PaymentStatusApproved))
	var count int64
	require.NoError(t, db.Model(&model.PaymentRequest{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	assert.True(t, decimal.RequireFromString("75.00").Equal(walletOf(t, db, user.ID)))
}

func TestRoyaltyUpdateStatusUnknownEntry(t *testing.T) {
	db := newTestDB(t)
	s := NewRoyaltyService(db, NewPaymentService(db))
	err := s.UpdateStatus(context.Background(), 4242, model.PaymentStatusApproved)
	require.ErrorIs(t, err, errno.ErrRoyaltyEntryNotFound)
}

func TestRoyaltyDelete(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1", "0")
	s := NewRoyaltyService(db, NewPaymentService(db))

	entry, err := s.Create(context.Background(), CreateInput{
		UserID:          user.ID,
		ReportingPeriod: "2024-01",
	})
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), entry.ID))
	require.ErrorIs(t, s.Delete(context.Background(), entry.ID), errno.ErrRoyaltyEntryNotFound)
}

func TestRoyaltyListJoinsPaymentStatus(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1", "100.00")
	s := NewRoyaltyService(db, NewPaymentService(db))

	_, err := s.Create(context.Background(), CreateInput{
		UserID:          user.ID,
		ReportingPeriod: "2024-01",
		Earnings:        decimal.RequireFromString("9.00"),
	})
	require.NoError(t, err)
	seedPaymentRequest(t, db, user.ID, "9.00", model.PaymentStatusPending)

	rows, total, err := s.List(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, "u1", rows[0].UserName)
	assert.Equal(t, model.PaymentStatusPending, rows[0].PaymentStatus)
}
