package service

import (
	"testing"

	"royalty-core/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCalculateNoRelease(t *testing.T) {
	db := newTestDB(t)
	s := NewSplitService()

	d, err := s.Calculate(db, 1, "NOPE", decimal.RequireFromString("100"))
	require.NoError(t, err)
	assert.True(t, d.IsZero())
}

func TestSplitCalculateApprovedOnly(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "artist", "0")
	release := seedRelease(t, db, user.ID, "CAT1")

	seedSplit(t, db, release.ID, "30", model.SplitStatusApproved)
	seedSplit(t, db, release.ID, "20", model.SplitStatusApproved)
	seedSplit(t, db, release.ID, "40", model.SplitStatusPending) // must not count

	s := NewSplitService()
	d, err := s.Calculate(db, user.ID, "CAT1", decimal.RequireFromString("100.00"))
	require.NoError(t, err)

	// 30% + 20% of 100.00
	assert.True(t, decimal.RequireFromString("50").Equal(d), "got %s", d)
}

func TestSplitCalculateNoApprovedSplits(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "artist", "0")
	release := seedRelease(t, db, user.ID, "CAT1")
	seedSplit(t, db, release.ID, "25", model.SplitStatusPending)

	s := NewSplitService()
	d, err := s.Calculate(db, user.ID, "CAT1", decimal.RequireFromString("80"))
	require.NoError(t, err)
	assert.True(t, d.IsZero())
}

func TestSplitCalculateOtherOwnersRelease(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner", "0")
	other := seedUser(t, db, "other", "0")
	release := seedRelease(t, db, owner.ID, "CAT1")
	seedSplit(t, db, release.ID, "50", model.SplitStatusApproved)

	s := NewSplitService()
	// The catalogue exists but does not belong to this user.
	d, err := s.Calculate(db, other.ID, "CAT1", decimal.RequireFromString("100"))
	require.NoError(t, err)
	assert.True(t, d.IsZero())
}

func TestSplitCalculateFractionalPercentage(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "artist", "0")
	release := seedRelease(t, db, user.ID, "CAT7")
	seedSplit(t, db, release.ID, "12.5", model.SplitStatusApproved)

	s := NewSplitService()
	d, err := s.Calculate(db, user.ID, "CAT7", decimal.RequireFromString("10.00"))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1.25").Equal(d), "got %s", d)
}
