package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FreePackageName is the tier every HR account starts on and the
// target of an explicit downgrade.
const FreePackageName = "Basic"

// Package is a subscription tier bounding how many employees an HR may
// affiliate.
type Package struct {
	ID            uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Name          string          `json:"name" gorm:"uniqueIndex;size:50;not null"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	EmployeeLimit int             `json:"employeeLimit" gorm:"not null"`
	Features      []string        `json:"features" gorm:"serializer:json;type:text"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Package) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
