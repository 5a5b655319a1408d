package service

import (
	"context"

	"royalty-core/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AnalyticsService aggregates the earnings store for the back-office
// dashboards. Read-only; void transactions are excluded everywhere.
type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// AggRow is one aggregation bucket.
type AggRow struct {
	Label    string          `json:"label"`
	Streams  int64           `json:"streams"`
	Earnings decimal.Decimal `json:"earnings"`
}

// EarningsAnalytics is the analytics endpoint payload: top-N totals by
// user, DSP and territory.
type EarningsAnalytics struct {
	ByUser      []AggRow `json:"by_user"`
	ByDSP       []AggRow `json:"by_dsp"`
	ByTerritory []AggRow `json:"by_territory"`
}

const excludeVoid = "LOWER(e.sale_or_void) NOT IN ('void', 'voided')"

// Totals computes stream and earnings totals grouped three ways. topN <= 0
// defaults to 10.
func (s *AnalyticsService) Totals(ctx context.Context, topN int) (*EarningsAnalytics, error) {
	if topN <= 0 {
		topN = 10
	}

	out := &EarningsAnalytics{}

	// By user: earnings rows attach to users through the release catalogue.
	err := s.db.WithContext(ctx).Raw(`
		SELECT u.name AS label,
		       COALESCE(SUM(e.count), 0) AS streams,
		       COALESCE(SUM(e.royalty), 0) AS earnings
		FROM earnings_records e
		JOIN releases r ON r.catalogue = e.catalogue AND r.deleted_at IS NULL
		JOIN users u ON u.id = r.user_id AND u.deleted_at IS NULL
		WHERE `+excludeVoid+`
		GROUP BY u.id, u.name
		ORDER BY earnings DESC
		LIMIT ?`, topN).Scan(&out.ByUser).Error
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Raw(`
		SELECT e.dsp AS label,
		       COALESCE(SUM(e.count), 0) AS streams,
		       COALESCE(SUM(e.royalty), 0) AS earnings
		FROM earnings_records e
		WHERE `+excludeVoid+`
		GROUP BY e.dsp
		ORDER BY earnings DESC
		LIMIT ?`, topN).Scan(&out.ByDSP).Error
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Raw(`
		SELECT e.territory AS label,
		       COALESCE(SUM(e.count), 0) AS streams,
		       COALESCE(SUM(e.royalty), 0) AS earnings
		FROM earnings_records e
		WHERE `+excludeVoid+`
		GROUP BY e.territory
		ORDER BY earnings DESC
		LIMIT ?`, topN).Scan(&out.ByTerritory).Error
	if err != nil {
		return nil, err
	}

	return out, nil
}

// DashboardSummary is the landing-page counter set.
type DashboardSummary struct {
	Users                  int64 `json:"users"`
	Releases               int64 `json:"releases"`
	UploadBatches          int64 `json:"upload_batches"`
	PendingPaymentRequests int64 `json:"pending_payment_requests"`
}

// Dashboard returns the landing-page counters.
func (s *AnalyticsService) Dashboard(ctx context.Context) (*DashboardSummary, error) {
	out := &DashboardSummary{}
	db := s.db.WithContext(ctx)

	if err := db.Model(&model.User{}).Count(&out.Users).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Release{}).Count(&out.Releases).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.UploadBatch{}).Count(&out.UploadBatches).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.PaymentRequest{}).
		Where("status = ?", model.PaymentStatusPending).
		Count(&out.PendingPaymentRequests).Error; err != nil {
		return nil, err
	}
	return out, nil
}
