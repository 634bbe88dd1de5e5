package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestStatus is the lifecycle state of an asset request.
// pending -> approved and pending -> rejected are the only transitions;
// both targets are terminal.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// Terminal reports whether no further transition is allowed from s.
func (s RequestStatus) Terminal() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

// Request is an employee's ask for an asset, decided by the owning HR.
// Asset name and type are denormalized so request lists render without
// joining assets that may since have been deleted.
type Request struct {
	ID             uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	AssetID        uuid.UUID      `json:"assetId" gorm:"type:char(36);not null;index"`
	AssetName      string         `json:"assetName" gorm:"size:255;not null"`
	AssetType      AssetType      `json:"assetType" gorm:"size:20;not null"`
	RequesterName  string         `json:"requesterName" gorm:"size:255;not null"`
	RequesterEmail string         `json:"requesterEmail" gorm:"size:255;not null;index"`
	HREmail        string         `json:"hrEmail" gorm:"size:255;not null;index"`
	CompanyName    string         `json:"companyName" gorm:"size:255"`
	Note           string         `json:"note,omitempty" gorm:"type:text"`
	RequestStatus  RequestStatus  `json:"requestStatus" gorm:"size:20;not null;default:'pending';index"`
	RequestDate    time.Time      `json:"requestDate"`
	DecidedAt      *time.Time     `json:"decidedAt,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate sets UUID and the request date before creating the record.
func (r *Request) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.RequestDate.IsZero() {
		r.RequestDate = time.Now()
	}
	return nil
}
