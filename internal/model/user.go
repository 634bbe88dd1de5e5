package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the account type assigned at registration. It is immutable
// afterwards; a role change requires a new account.
type Role string

const (
	RoleHR       Role = "hr"
	RoleEmployee Role = "employee"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleHR || r == RoleEmployee
}

// User represents an HR manager or employee account.
type User struct {
	ID           uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string         `json:"name" gorm:"size:255;not null"`
	Email        string         `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string         `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role           `json:"role" gorm:"size:20;not null;index"`
	PhotoURL     string         `json:"photoURL,omitempty" gorm:"size:512"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	// HR-only fields. Employees keep these empty.
	CompanyName string         `json:"companyName,omitempty" gorm:"size:255;index"`
	CompanyLogo string         `json:"companyLogo,omitempty" gorm:"size:512"`
	Package     *ActivePackage `json:"package,omitempty" gorm:"embedded;embeddedPrefix:package_"`
}

// ActivePackage is the subscription tier currently bound to an HR
// account. Exactly one is active at a time; it is swapped by a
// finalized checkout or an explicit downgrade.
type ActivePackage struct {
	Name           string    `json:"name" gorm:"size:50"`
	EmployeesLimit int       `json:"employeesLimit"`
	ActivatedAt    time.Time `json:"activatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
