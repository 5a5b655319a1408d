package service

import (
	"testing"

	"royalty-core/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// One connection, or every pooled conn gets its own empty :memory: db.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(model.AllModels()...))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string, balance string) *model.User {
	t.Helper()
	u := &model.User{
		Name:          name,
		Email:         name + "@example.com",
		WalletBalance: decimal.RequireFromString(balance),
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedRelease(t *testing.T, db *gorm.DB, userID uint64, catalogue string) *model.Release {
	t.Helper()
	r := &model.Release{
		UserID:    userID,
		Title:     "Release " + catalogue,
		Catalogue: catalogue,
	}
	require.NoError(t, db.Create(r).Error)
	return r
}

func seedSplit(t *testing.T, db *gorm.DB, releaseID uint64, pct string, status string) {
	t.Helper()
	require.NoError(t, db.Create(&model.SplitShareAgreement{
		ReleaseID:       releaseID,
		CollaboratorID:  999,
		SplitPercentage: decimal.RequireFromString(pct),
		Status:          status,
	}).Error)
}

// assertLedgerInvariant checks
// closing == opening + earnings + adjustments - deductions - withdrawals.
func assertLedgerInvariant(t *testing.T, e *model.RoyaltyLedgerEntry) {
	t.Helper()
	want := e.OpeningBalance.
		Add(e.Earnings).
		Add(e.Adjustments).
		Sub(e.SplitShareDeductions).
		Sub(e.Withdrawals)
	require.True(t, want.Equal(e.ClosingBalance),
		"ledger invariant broken: closing=%s want=%s", e.ClosingBalance, want)
}
