package client

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role is an account role. A role is fixed at registration and never
// changes within a session.
type Role string

// Account roles.
const (
	RoleHR       Role = "hr"
	RoleEmployee Role = "employee"
)

// AssetType values accepted by the API.
const (
	AssetTypeReturnable    = "returnable"
	AssetTypeNonReturnable = "non-returnable"
)

// Request status values returned by the API.
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// ActivePackage is the subscription tier active on an HR profile.
type ActivePackage struct {
	Name           string    `json:"name"`
	EmployeesLimit int       `json:"employeesLimit"`
	ActivatedAt    time.Time `json:"activatedAt"`
}

// User is a profile record.
type User struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Role        Role           `json:"role"`
	PhotoURL    string         `json:"photoURL,omitempty"`
	CompanyName string         `json:"companyName,omitempty"`
	CompanyLogo string         `json:"companyLogo,omitempty"`
	Package     *ActivePackage `json:"package,omitempty"`
}

// Asset is an inventory item posted by an HR.
type Asset struct {
	ID                string    `json:"id"`
	ProductName       string    `json:"productName"`
	ProductImage      string    `json:"productImage"`
	ProductType       string    `json:"productType"`
	ProductQuantity   int       `json:"productQuantity"`
	AvailableQuantity int       `json:"availableQuantity"`
	ProductDetails    string    `json:"productDetails"`
	HREmail           string    `json:"hrEmail"`
	CompanyName       string    `json:"companyName"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// AssetPage is one page of assets plus paging bounds.
type AssetPage struct {
	Items      []Asset `json:"items"`
	Page       int     `json:"page"`
	TotalPages int     `json:"totalPages"`
	TotalItems int64   `json:"totalItems"`
}

// Request is an employee's asset request.
type Request struct {
	ID             string     `json:"id"`
	AssetID        string     `json:"assetId"`
	AssetName      string     `json:"assetName"`
	AssetType      string     `json:"assetType"`
	RequesterName  string     `json:"requesterName"`
	RequesterEmail string     `json:"requesterEmail"`
	HREmail        string     `json:"hrEmail"`
	CompanyName    string     `json:"companyName"`
	Note           string     `json:"note,omitempty"`
	RequestStatus  string     `json:"requestStatus"`
	RequestDate    time.Time  `json:"requestDate"`
	DecidedAt      *time.Time `json:"decidedAt,omitempty"`
}

// Affiliation links an employee to an HR's company.
type Affiliation struct {
	ID              string    `json:"id"`
	EmployeeEmail   string    `json:"employeeEmail"`
	EmployeeName    string    `json:"employeeName"`
	EmployeePhoto   string    `json:"employeePhoto,omitempty"`
	HREmail         string    `json:"hrEmail"`
	CompanyName     string    `json:"companyName"`
	AssetsCount     int       `json:"assetsCount"`
	Status          string    `json:"status"`
	AffiliationDate time.Time `json:"affiliationDate"`
}

// Roster is an HR's affiliated employees with package usage.
type Roster struct {
	Employees []Affiliation `json:"employees"`
	Used      int           `json:"used"`
	Limit     int           `json:"limit"`
}

// Package is a subscription tier.
type Package struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	EmployeeLimit int             `json:"employeeLimit"`
	Features      []string        `json:"features"`
}

// CheckoutSession is the server's answer to a checkout request: the
// redirect URL carrying the tracking ID.
type CheckoutSession struct {
	URL        string `json:"url"`
	TrackingID string `json:"trackingId"`
}

// Payment is a completed package purchase.
type Payment struct {
	ID            string          `json:"id"`
	HREmail       string          `json:"hrEmail"`
	PackageName   string          `json:"packageName"`
	EmployeeLimit int             `json:"employeeLimit"`
	Amount        decimal.Decimal `json:"amount"`
	TrackingID    string          `json:"trackingId"`
	CreatedAt     time.Time       `json:"created_at"`
}
