package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AffiliationStatus tracks whether an employee currently counts against
// the HR's package limit.
type AffiliationStatus string

const (
	AffiliationStatusActive  AffiliationStatus = "active"
	AffiliationStatusRemoved AffiliationStatus = "removed"
)

// Affiliation links an employee to the company that approved their
// first request. Removal flips the status instead of deleting the row
// so the history survives.
type Affiliation struct {
	ID              uuid.UUID         `json:"id" gorm:"type:char(36);primaryKey"`
	EmployeeEmail   string            `json:"employeeEmail" gorm:"size:255;not null;uniqueIndex:idx_hr_employee"`
	EmployeeName    string            `json:"employeeName" gorm:"size:255;not null"`
	EmployeePhoto   string            `json:"employeePhoto,omitempty" gorm:"size:512"`
	HREmail         string            `json:"hrEmail" gorm:"size:255;not null;uniqueIndex:idx_hr_employee;index"`
	CompanyName     string            `json:"companyName" gorm:"size:255"`
	AssetsCount     int               `json:"assetsCount" gorm:"not null;default:0"`
	Status          AffiliationStatus `json:"status" gorm:"size:20;not null;default:'active';index"`
	AffiliationDate time.Time         `json:"affiliationDate"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// BeforeCreate sets UUID and the affiliation date before creating the record.
func (a *Affiliation) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.AffiliationDate.IsZero() {
		a.AffiliationDate = time.Now()
	}
	return nil
}
