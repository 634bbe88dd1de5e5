package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"assetverse/internal/model"
)

// RequestRepository defines request persistence operations. Approvals
// touch the asset and affiliation tables too, so WithTransaction hands
// the callback transaction-scoped instances of all three repositories.
type RequestRepository interface {
	Create(ctx context.Context, request *model.Request) error
	Update(ctx context.Context, request *model.Request) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Request, error)
	ListByHR(ctx context.Context, hrEmail string) ([]model.Request, error)
	ListByRequester(ctx context.Context, email string, status model.RequestStatus) ([]model.Request, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context, requests RequestRepository, assets AssetRepository, affiliations AffiliationRepository) error) error
}

type requestRepository struct {
	db *gorm.DB
}

// NewRequestRepository creates a new request repository.
func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, request *model.Request) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *requestRepository) Update(ctx context.Context, request *model.Request) error {
	return r.db.WithContext(ctx).Save(request).Error
}

func (r *requestRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Request, error) {
	var request model.Request
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// ListByHR returns every request addressed to the given HR, newest first.
func (r *requestRepository) ListByHR(ctx context.Context, hrEmail string) ([]model.Request, error) {
	var requests []model.Request
	if err := r.db.WithContext(ctx).
		Where("hr_email = ?", hrEmail).
		Order("request_date DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// ListByRequester returns an employee's own requests, optionally
// filtered by status.
func (r *requestRepository) ListByRequester(ctx context.Context, email string, status model.RequestStatus) ([]model.Request, error) {
	query := r.db.WithContext(ctx).Where("requester_email = ?", email)
	if status != "" {
		query = query.Where("request_status = ?", status)
	}

	var requests []model.Request
	if err := query.Order("request_date DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// WithTransaction executes a function within a database transaction.
func (r *requestRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, requests RequestRepository, assets AssetRepository, affiliations AffiliationRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &requestRepository{db: tx}, &assetRepository{db: tx}, &affiliationRepository{db: tx})
	})
}
