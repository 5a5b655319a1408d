package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// User is an artist/label account on the distribution platform.
type User struct {
	ID            uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string          `gorm:"type:varchar(255);not null" json:"name"`
	Email         string          `gorm:"type:varchar(255);not null;unique" json:"email"`
	WalletBalance decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"wallet_balance"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`

	Releases []Release `gorm:"foreignKey:UserID" json:"releases,omitempty"`
}

// Release is a distributed release. Catalogue is the external catalogue
// number and the join key from earnings-report rows back to an owner.
type Release struct {
	ID        uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint64         `gorm:"not null;index" json:"user_id"`
	Title     string         `gorm:"type:varchar(255);not null" json:"title"`
	Catalogue string         `gorm:"type:varchar(100);not null;uniqueIndex" json:"catalogue"`
	UPC       string         `gorm:"type:varchar(50)" json:"upc"`
	Status    string         `gorm:"type:varchar(50);not null;default:'live'" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// SplitShareAgreement is a collaborator's percentage split on a release.
// Only approved agreements count toward deductions.
type SplitShareAgreement struct {
	ID              uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	ReleaseID       uint64          `gorm:"not null;index" json:"release_id"`
	CollaboratorID  uint64          `gorm:"not null;index" json:"collaborator_id"`
	SplitPercentage decimal.Decimal `gorm:"type:decimal(7,4);not null" json:"split_percentage"`
	Status          string          `gorm:"type:varchar(50);not null;default:'pending';index" json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// PaymentMethod holds a user's payout details, joined into the admin
// payment-request listing.
type PaymentMethod struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uint64    `gorm:"not null;index" json:"user_id"`
	Method       string    `gorm:"type:varchar(50);not null" json:"method"` // bank_transfer, paypal, ...
	AccountLabel string    `gorm:"type:varchar(255)" json:"account_label"`
	IsDefault    bool      `gorm:"not null;default:false" json:"is_default"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Administrator is a back-office operator account.
type Administrator struct {
	ID           uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Email        string         `gorm:"type:varchar(255);not null;unique" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Role         string         `gorm:"type:varchar(50);not null;default:'admin'" json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

const (
	SplitStatusApproved = "approved"
	SplitStatusPending  = "pending"
)

func (User) TableName() string {
	return "users"
}

func (Release) TableName() string {
	return "releases"
}

func (SplitShareAgreement) TableName() string {
	return "split_share_agreements"
}

func (PaymentMethod) TableName() string {
	return "payment_methods"
}

func (Administrator) TableName() string {
	return "administrators"
}
