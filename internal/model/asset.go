package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssetType classifies whether an assigned asset is expected back.
type AssetType string

const (
	AssetTypeReturnable    AssetType = "returnable"
	AssetTypeNonReturnable AssetType = "non-returnable"
)

// Valid reports whether t is a known asset type.
func (t AssetType) Valid() bool {
	return t == AssetTypeReturnable || t == AssetTypeNonReturnable
}

// Asset is a company-owned item posted by an HR manager.
// Invariant: 0 <= AvailableQuantity <= ProductQuantity.
type Asset struct {
	ID                uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	ProductName       string         `json:"productName" gorm:"size:255;not null;index"`
	ProductImage      string         `json:"productImage" gorm:"size:512"`
	ProductType       AssetType      `json:"productType" gorm:"size:20;not null;index"`
	ProductQuantity   int            `json:"productQuantity" gorm:"not null"`
	AvailableQuantity int            `json:"availableQuantity" gorm:"not null"`
	ProductDetails    string         `json:"productDetails" gorm:"type:text"`
	HREmail           string         `json:"hrEmail" gorm:"size:255;not null;index"`
	CompanyName       string         `json:"companyName" gorm:"size:255;index"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
	DeletedAt         gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
