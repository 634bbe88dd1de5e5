package repository

import (
	"context"

	"gorm.io/gorm"

	"assetverse/internal/model"
)

// AffiliationRepository defines affiliation persistence operations.
type AffiliationRepository interface {
	Create(ctx context.Context, affiliation *model.Affiliation) error
	Update(ctx context.Context, affiliation *model.Affiliation) error
	FindByHRAndEmployee(ctx context.Context, hrEmail, employeeEmail string) (*model.Affiliation, error)
	ListActiveByHR(ctx context.Context, hrEmail string) ([]model.Affiliation, error)
	ListActiveByEmployee(ctx context.Context, employeeEmail string) ([]model.Affiliation, error)
	CountActiveByHR(ctx context.Context, hrEmail string) (int64, error)
}

type affiliationRepository struct {
	db *gorm.DB
}

// NewAffiliationRepository creates a new affiliation repository.
func NewAffiliationRepository(db *gorm.DB) AffiliationRepository {
	return &affiliationRepository{db: db}
}

func (r *affiliationRepository) Create(ctx context.Context, affiliation *model.Affiliation) error {
	return r.db.WithContext(ctx).Create(affiliation).Error
}

func (r *affiliationRepository) Update(ctx context.Context, affiliation *model.Affiliation) error {
	return r.db.WithContext(ctx).Save(affiliation).Error
}

func (r *affiliationRepository) FindByHRAndEmployee(ctx context.Context, hrEmail, employeeEmail string) (*model.Affiliation, error) {
	var affiliation model.Affiliation
	if err := r.db.WithContext(ctx).
		Where("hr_email = ? AND employee_email = ?", hrEmail, employeeEmail).
		First(&affiliation).Error; err != nil {
		return nil, err
	}
	return &affiliation, nil
}

func (r *affiliationRepository) ListActiveByHR(ctx context.Context, hrEmail string) ([]model.Affiliation, error) {
	var affiliations []model.Affiliation
	if err := r.db.WithContext(ctx).
		Where("hr_email = ? AND status = ?", hrEmail, model.AffiliationStatusActive).
		Order("affiliation_date ASC").
		Find(&affiliations).Error; err != nil {
		return nil, err
	}
	return affiliations, nil
}

func (r *affiliationRepository) ListActiveByEmployee(ctx context.Context, employeeEmail string) ([]model.Affiliation, error) {
	var affiliations []model.Affiliation
	if err := r.db.WithContext(ctx).
		Where("employee_email = ? AND status = ?", employeeEmail, model.AffiliationStatusActive).
		Find(&affiliations).Error; err != nil {
		return nil, err
	}
	return affiliations, nil
}

func (r *affiliationRepository) CountActiveByHR(ctx context.Context, hrEmail string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Affiliation{}).
		Where("hr_email = ? AND status = ?", hrEmail, model.AffiliationStatusActive).
		Count(&count).Error
	return count, err
}
