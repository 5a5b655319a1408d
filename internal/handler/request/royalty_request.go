package request

import "github.com/shopspring/decimal"

type CreateRoyaltyRequest struct {
	UserID               uint64          `json:"user_id" binding:"required"`
	ReportingPeriod      string          `json:"reporting_period" binding:"required"`
	OpeningBalance       decimal.Decimal `json:"opening_balance"`
	Earnings             decimal.Decimal `json:"earnings"`
	Adjustments          decimal.Decimal `json:"adjustments"`
	SplitShareDeductions decimal.Decimal `json:"split_share_deductions"`
	Withdrawals          decimal.Decimal `json:"withdrawals"`
}

type SetRoyaltyStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
