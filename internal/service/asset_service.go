package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "assetverse/internal/errors"
	"assetverse/internal/model"
	"assetverse/internal/repository"
)

const defaultPageSize = 10

// CreateAssetInput carries the fields of a new asset posting.
type CreateAssetInput struct {
	ProductName     string
	ProductImage    string
	ProductType     model.AssetType
	ProductQuantity int
	ProductDetails  string
}

// UpdateAssetInput carries an asset edit. Nil fields stay untouched, so
// renaming an asset never disturbs its quantities.
type UpdateAssetInput struct {
	ProductName       *string
	ProductImage      *string
	ProductType       *model.AssetType
	ProductQuantity   *int
	AvailableQuantity *int
	ProductDetails    *string
}

// AssetPage is one page of assets with pagination bounds.
type AssetPage struct {
	Items      []model.Asset `json:"items"`
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
	TotalItems int64         `json:"totalItems"`
}

// DirectoryQuery is the search/filter/pagination state of the asset
// directory.
type DirectoryQuery struct {
	Search string
	Type   model.AssetType
	Page   int
	Limit  int
}

// AssetService handles inventory and directory operations.
type AssetService interface {
	Create(ctx context.Context, hr *model.User, input CreateAssetInput) (*model.Asset, error)
	Update(ctx context.Context, hrEmail string, id uuid.UUID, input UpdateAssetInput) (*model.Asset, error)
	Delete(ctx context.Context, hrEmail string, id uuid.UUID) error
	Assign(ctx context.Context, hrEmail string, assetID uuid.UUID, employeeEmail string) (*model.Asset, error)
	ListByHR(ctx context.Context, hrEmail string, page, limit int) (*AssetPage, error)
	Directory(ctx context.Context, requesterEmail string, query DirectoryQuery) (*AssetPage, error)
}

type assetService struct {
	assetRepo       repository.AssetRepository
	affiliationRepo repository.AffiliationRepository
}

// NewAssetService creates a new asset service.
func NewAssetService(assetRepo repository.AssetRepository, affiliationRepo repository.AffiliationRepository) AssetService {
	return &assetService{
		assetRepo:       assetRepo,
		affiliationRepo: affiliationRepo,
	}
}

// Create posts a new asset. AvailableQuantity starts equal to
// ProductQuantity.
func (s *assetService) Create(ctx context.Context, hr *model.User, input CreateAssetInput) (*model.Asset, error) {
	if input.ProductQuantity < 1 {
		return nil, apperrors.ErrInvalidQuantity
	}

	asset := &model.Asset{
		ProductName:       input.ProductName,
		ProductImage:      input.ProductImage,
		ProductType:       input.ProductType,
		ProductQuantity:   input.ProductQuantity,
		AvailableQuantity: input.ProductQuantity,
		ProductDetails:    input.ProductDetails,
		HREmail:           hr.Email,
		CompanyName:       hr.CompanyName,
	}

	if err := s.assetRepo.Create(ctx, asset); err != nil {
		return nil, fmt.Errorf("create asset: %w", err)
	}
	return asset, nil
}

// Update edits an asset owned by the calling HR. The quantity invariant
// 0 <= available <= total is enforced on the resulting state.
func (s *assetService) Update(ctx context.Context, hrEmail string, id uuid.UUID, input UpdateAssetInput) (*model.Asset, error) {
	asset, err := s.assetRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, err
	}
	if asset.HREmail != hrEmail {
		return nil, apperrors.ErrForbidden
	}

	if input.ProductName != nil {
		asset.ProductName = *input.ProductName
	}
	if input.ProductImage != nil {
		asset.ProductImage = *input.ProductImage
	}
	if input.ProductType != nil {
		asset.ProductType = *input.ProductType
	}
	if input.ProductQuantity != nil {
		asset.ProductQuantity = *input.ProductQuantity
	}
	if input.AvailableQuantity != nil {
		asset.AvailableQuantity = *input.AvailableQuantity
	}
	if input.ProductDetails != nil {
		asset.ProductDetails = *input.ProductDetails
	}

	if asset.AvailableQuantity < 0 || asset.AvailableQuantity > asset.ProductQuantity {
		return nil, apperrors.ErrInvalidQuantity
	}

	if err := s.assetRepo.Update(ctx, asset); err != nil {
		return nil, fmt.Errorf("update asset: %w", err)
	}
	return asset, nil
}

// Delete soft-deletes an asset owned by the calling HR. Irreversible
// from the API's point of view.
func (s *assetService) Delete(ctx context.Context, hrEmail string, id uuid.UUID) error {
	asset, err := s.assetRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrAssetNotFound
		}
		return err
	}
	if asset.HREmail != hrEmail {
		return apperrors.ErrForbidden
	}
	return s.assetRepo.Delete(ctx, id)
}

// Assign hands one unit of an asset directly to an affiliated employee:
// the asset row is locked, availability re-checked, the unit deducted
// and the affiliation's assets count bumped in one transaction.
func (s *assetService) Assign(ctx context.Context, hrEmail string, assetID uuid.UUID, employeeEmail string) (*model.Asset, error) {
	var updated *model.Asset

	err := s.assetRepo.WithTransaction(ctx, func(ctx context.Context, assets repository.AssetRepository, affiliations repository.AffiliationRepository) error {
		asset, err := assets.FindByIDForUpdate(ctx, assetID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrAssetNotFound
			}
			return err
		}
		if asset.HREmail != hrEmail {
			return apperrors.ErrForbidden
		}
		if asset.AvailableQuantity < 1 {
			return apperrors.ErrAssetUnavailable
		}

		affiliation, err := affiliations.FindByHRAndEmployee(ctx, hrEmail, employeeEmail)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrEmployeeNotAffiliated
			}
			return err
		}
		if affiliation.Status != model.AffiliationStatusActive {
			return apperrors.ErrEmployeeNotAffiliated
		}

		asset.AvailableQuantity--
		if err := assets.Update(ctx, asset); err != nil {
			return fmt.Errorf("update asset: %w", err)
		}

		affiliation.AssetsCount++
		if err := affiliations.Update(ctx, affiliation); err != nil {
			return fmt.Errorf("update affiliation: %w", err)
		}

		updated = asset
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ListByHR returns one inventory page for the calling HR.
func (s *assetService) ListByHR(ctx context.Context, hrEmail string, page, limit int) (*AssetPage, error) {
	page, limit = normalizePage(page, limit)

	items, total, err := s.assetRepo.ListByHR(ctx, hrEmail, page, limit)
	if err != nil {
		return nil, err
	}

	totalPages := pageCount(total, limit)
	if page > totalPages {
		page = totalPages
		if items, total, err = s.assetRepo.ListByHR(ctx, hrEmail, page, limit); err != nil {
			return nil, err
		}
	}

	return &AssetPage{Items: items, Page: page, TotalPages: totalPages, TotalItems: total}, nil
}

// Directory returns one page of the searchable asset directory. An
// affiliated employee only sees their own company's assets; anyone else
// sees the whole catalog so a first request (and with it the first
// affiliation) stays possible. The page is clamped to [1, totalPages].
func (s *assetService) Directory(ctx context.Context, requesterEmail string, query DirectoryQuery) (*AssetPage, error) {
	query.Page, query.Limit = normalizePage(query.Page, query.Limit)

	params := repository.DirectoryParams{
		Search: query.Search,
		Type:   query.Type,
		Page:   query.Page,
		Limit:  query.Limit,
	}

	if requesterEmail != "" {
		affiliations, err := s.affiliationRepo.ListActiveByEmployee(ctx, requesterEmail)
		if err != nil {
			return nil, err
		}
		for _, affiliation := range affiliations {
			params.HREmails = append(params.HREmails, affiliation.HREmail)
		}
	}

	items, total, err := s.assetRepo.Directory(ctx, params)
	if err != nil {
		return nil, err
	}

	totalPages := pageCount(total, query.Limit)
	if params.Page > totalPages {
		params.Page = totalPages
		if items, total, err = s.assetRepo.Directory(ctx, params); err != nil {
			return nil, err
		}
	}

	return &AssetPage{Items: items, Page: params.Page, TotalPages: totalPages, TotalItems: total}, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	return page, limit
}

func pageCount(total int64, limit int) int {
	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		pages = 1
	}
	return pages
}
