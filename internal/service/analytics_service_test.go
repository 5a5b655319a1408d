package service

import (
	"context"
	"testing"

	"royalty-core/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedEarnings(t *testing.T, db *gorm.DB, catalogue, dsp, territory, royalty string, count int64, saleOrVoid string) {
	t.Helper()
	require.NoError(t, db.Create(&model.EarningsRecord{
		BatchID:         "b1",
		ReportingPeriod: "2024-01",
		Catalogue:       catalogue,
		DSP:             dsp,
		Territory:       territory,
		Count:           count,
		Royalty:         decimal.RequireFromString(royalty),
		SaleOrVoid:      saleOrVoid,
	}).Error)
}

func TestAnalyticsTotals(t *testing.T) {
	db := newTestDB(t)
	u1 := seedUser(t, db, "u1", "0")
	u2 := seedUser(t, db, "u2", "0")
	seedRelease(t, db, u1.ID, "CAT1")
	seedRelease(t, db, u2.ID, "CAT2")

	seedEarnings(t, db, "CAT1", "Spotify", "US", "10.00", 100, "Sale")
	seedEarnings(t, db, "CAT1", "Deezer", "FR", "2.00", 20, "Sale")
	seedEarnings(t, db, "CAT2", "Spotify", "US", "4.00", 40, "Sale")
	seedEarnings(t, db, "CAT2", "Spotify", "US", "99.00", 990, "Void") // excluded everywhere

	s := NewAnalyticsService(db)
	got, err := s.Totals(context.Background(), 10)
	require.NoError(t, err)

	require.Len(t, got.ByUser, 2)
	assert.Equal(t, "u1", got.ByUser[0].Label)
	assert.Equal(t, int64(120), got.ByUser[0].Streams)
	assert.True(t, decimal.RequireFromString("12.00").Equal(got.ByUser[0].Earnings))

	require.Len(t, got.ByDSP, 2)
	assert.Equal(t, "Spotify", got.ByDSP[0].Label)
	assert.True(t, decimal.RequireFromString("14.00").Equal(got.ByDSP[0].Earnings))

	require.Len(t, got.ByTerritory, 2)
	assert.Equal(t, "US", got.ByTerritory[0].Label)
	assert.Equal(t, int64(140), got.ByTerritory[0].Streams)
}

func TestAnalyticsTopN(t *testing.T) {
	db := newTestDB(t)
	u1 := seedUser(t, db, "u1", "0")
	seedRelease(t, db, u1.ID, "CAT1")

	seedEarnings(t, db, "CAT1", "Spotify", "US", "1.00", 1, "Sale")
	seedEarnings(t, db, "CAT1", "Deezer", "FR", "2.00", 2, "Sale")
	seedEarnings(t, db, "CAT1", "Tidal", "NO", "3.00", 3, "Sale")

	s := NewAnalyticsService(db)
	got, err := s.Totals(context.Background(), 2)
	require.NoError(t, err)

	assert.Len(t, got.ByDSP, 2)
	assert.Equal(t, "Tidal", got.ByDSP[0].Label)
}

func TestAnalyticsExcludesSoftDeleted(t *testing.T) {
	db := newTestDB(t)
	u1 := seedUser(t, db, "u1", "0")
	u2 := seedUser(t, db, "u2", "0")
	seedRelease(t, db, u1.ID, "CAT1")
	seedRelease(t, db, u2.ID, "CAT2")

	seedEarnings(t, db, "CAT1", "Spotify", "US", "10.00", 100, "Sale")
	seedEarnings(t, db, "CAT2", "Spotify", "US", "4.00", 40, "Sale")

	require.NoError(t, db.Delete(&model.User{}, u2.ID).Error)

	s := NewAnalyticsService(db)
	got, err := s.Totals(context.Background(), 10)
	require.NoError(t, err)

	// The deleted user's earnings drop out of the by-user buckets, matching
	// the soft-delete scoping the gorm paths apply.
	require.Len(t, got.ByUser, 1)
	assert.Equal(t, "u1", got.ByUser[0].Label)
}

func TestDashboardCounters(t *testing.T) {
	db := newTestDB(t)
	u1 := seedUser(t, db, "u1", "0")
	seedRelease(t, db, u1.ID, "CAT1")
	seedPaymentRequest(t, db, u1.ID, "5.00", model.PaymentStatusPending)
	seedPaymentRequest(t, db, u1.ID, "6.00", model.PaymentStatusApproved)

	s := NewAnalyticsService(db)
	got, err := s.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), got.Users)
	assert.Equal(t, int64(1), got.Releases)
	assert.Equal(t, int64(0), got.UploadBatches)
	assert.Equal(t, int64(1), got.PendingPaymentRequests)
}
