package repository

import (
	"context"

	"gorm.io/gorm"

	"assetverse/internal/model"
)

// PackageRepository defines subscription package persistence operations.
type PackageRepository interface {
	Create(ctx context.Context, pkg *model.Package) error
	FindByName(ctx context.Context, name string) (*model.Package, error)
	List(ctx context.Context) ([]model.Package, error)
}

type packageRepository struct {
	db *gorm.DB
}

// NewPackageRepository creates a new package repository.
func NewPackageRepository(db *gorm.DB) PackageRepository {
	return &packageRepository{db: db}
}

func (r *packageRepository) Create(ctx context.Context, pkg *model.Package) error {
	return r.db.WithContext(ctx).Create(pkg).Error
}

func (r *packageRepository) FindByName(ctx context.Context, name string) (*model.Package, error) {
	var pkg model.Package
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&pkg).Error; err != nil {
		return nil, err
	}
	return &pkg, nil
}

// List returns all tiers, cheapest first.
func (r *packageRepository) List(ctx context.Context) ([]model.Package, error) {
	var packages []model.Package
	if err := r.db.WithContext(ctx).Order("price ASC").Find(&packages).Error; err != nil {
		return nil, err
	}
	return packages, nil
}
