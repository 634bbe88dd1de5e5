package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"assetverse/internal/model"
)

// DirectoryParams filter the public asset directory. Page and Limit are
// expected to be normalized by the caller; Search matches the product
// name as a substring.
type DirectoryParams struct {
	Search   string
	Type     model.AssetType
	HREmails []string
	Page     int
	Limit    int
}

// AssetRepository defines asset persistence operations.
type AssetRepository interface {
	Create(ctx context.Context, asset *model.Asset) error
	Update(ctx context.Context, asset *model.Asset) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Asset, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Asset, error)
	ListByHR(ctx context.Context, hrEmail string, page, limit int) ([]model.Asset, int64, error)
	Directory(ctx context.Context, params DirectoryParams) ([]model.Asset, int64, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context, assets AssetRepository, affiliations AffiliationRepository) error) error
}

type assetRepository struct {
	db *gorm.DB
}

// NewAssetRepository creates a new asset repository.
func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &assetRepository{db: db}
}

func (r *assetRepository) Create(ctx context.Context, asset *model.Asset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}

func (r *assetRepository) Update(ctx context.Context, asset *model.Asset) error {
	return r.db.WithContext(ctx).Save(asset).Error
}

// Delete soft-deletes an asset.
func (r *assetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Asset{}, "id = ?", id).Error
}

func (r *assetRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	var asset model.Asset
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&asset).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

// FindByIDForUpdate finds an asset by ID with a row-level lock. Callers
// must be inside a transaction for the lock to mean anything.
func (r *assetRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	var asset model.Asset
	if err := r.db.WithContext(ctx).Set("gorm:query_option", "FOR UPDATE").
		Where("id = ?", id).First(&asset).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

// ListByHR returns one inventory page for an HR plus the total count.
func (r *assetRepository) ListByHR(ctx context.Context, hrEmail string, page, limit int) ([]model.Asset, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Asset{}).Where("hr_email = ?", hrEmail)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var assets []model.Asset
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&assets).Error; err != nil {
		return nil, 0, err
	}
	return assets, total, nil
}

// WithTransaction executes a function within a database transaction.
// Assignments mutate assets and affiliations together.
func (r *assetRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, assets AssetRepository, affiliations AffiliationRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &assetRepository{db: tx}, &affiliationRepository{db: tx})
	})
}

// Directory returns one page of the searchable asset directory plus the
// total count for the given filters.
func (r *assetRepository) Directory(ctx context.Context, params DirectoryParams) ([]model.Asset, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Asset{})

	if params.Search != "" {
		query = query.Where("product_name LIKE ?", "%"+params.Search+"%")
	}
	if params.Type != "" {
		query = query.Where("product_type = ?", params.Type)
	}
	if len(params.HREmails) > 0 {
		query = query.Where("hr_email IN ?", params.HREmails)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var assets []model.Asset
	if err := query.Order("created_at DESC").
		Offset((params.Page - 1) * params.Limit).Limit(params.Limit).
		Find(&assets).Error; err != nil {
		return nil, 0, err
	}
	return assets, total, nil
}
