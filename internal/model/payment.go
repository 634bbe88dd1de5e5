package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CheckoutStatus is the lifecycle state of a checkout session.
type CheckoutStatus string

const (
	CheckoutStatusPending   CheckoutStatus = "pending"
	CheckoutStatusCompleted CheckoutStatus = "completed"
	CheckoutStatusExpired   CheckoutStatus = "expired"
)

// CheckoutSession is created when an HR starts a package upgrade. The
// checkout redirect carries its tracking ID back to the success page,
// which finalizes the payment against the pending session. Sessions
// not finalized before ExpiresAt are swept to expired.
type CheckoutSession struct {
	ID            uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	TrackingID    string          `json:"trackingId" gorm:"uniqueIndex;size:64;not null"`
	HREmail       string          `json:"hrEmail" gorm:"size:255;not null;index"`
	PackageName   string          `json:"packageName" gorm:"size:50;not null"`
	EmployeeLimit int             `json:"employeeLimit" gorm:"not null"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	Status        CheckoutStatus  `json:"status" gorm:"size:20;not null;default:'pending';index"`
	ExpiresAt     time.Time       `json:"expiresAt" gorm:"index"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (s *CheckoutSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Payment records a finalized package purchase.
type Payment struct {
	ID            uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	HREmail       string          `json:"hrEmail" gorm:"size:255;not null;index"`
	PackageName   string          `json:"packageName" gorm:"size:50;not null"`
	EmployeeLimit int             `json:"employeeLimit" gorm:"not null"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	TrackingID    string          `json:"trackingId" gorm:"uniqueIndex;size:64;not null"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
