package service

import (
	"context"

	"assetverse/internal/model"
	"assetverse/internal/repository"
)

// PackageService exposes the subscription tiers.
type PackageService interface {
	List(ctx context.Context) ([]model.Package, error)
}

type packageService struct {
	repo repository.PackageRepository
}

// NewPackageService creates a new package service.
func NewPackageService(repo repository.PackageRepository) PackageService {
	return &packageService{repo: repo}
}

func (s *packageService) List(ctx context.Context) ([]model.Package, error) {
	return s.repo.List(ctx)
}
