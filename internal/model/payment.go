package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment request statuses. Free-form status field: every transition
// between these values is permitted.
const (
	PaymentStatusPending  = "Pending"
	PaymentStatusApproved = "Approved"
	PaymentStatusRejected = "Rejected"
)

// ValidPaymentStatus reports whether s is a recognized status value.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusApproved, PaymentStatusRejected:
		return true
	}
	return false
}

// PaymentRequest is a user's withdrawal request. The wallet is debited
// exactly once, on the first transition into Approved.
type PaymentRequest struct {
	ID          uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint64          `gorm:"not null;index" json:"user_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,6);not null" json:"amount"`
	Status      string          `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	RequestedAt time.Time       `gorm:"not null" json:"requested_at"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (PaymentRequest) TableName() string {
	return "payment_requests"
}
