package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "assetverse/internal/errors"
	"assetverse/internal/model"
	"assetverse/internal/repository"
)

// SubmitRequestInput carries an employee's asset request.
type SubmitRequestInput struct {
	AssetID uuid.UUID
	Note    string
}

// RequestService owns the request lifecycle: submit by an employee,
// approve or reject by the owning HR. pending is the only state with
// outgoing transitions.
type RequestService interface {
	Submit(ctx context.Context, requester *model.User, input SubmitRequestInput) (*model.Request, error)
	Decide(ctx context.Context, hrEmail string, requestID uuid.UUID, action model.RequestStatus) (*model.Request, error)
	ListForHR(ctx context.Context, hrEmail string) ([]model.Request, error)
	ListForRequester(ctx context.Context, email string, status model.RequestStatus) ([]model.Request, error)
}

type requestService struct {
	requestRepo repository.RequestRepository
	assetRepo   repository.AssetRepository
	userRepo    repository.UserRepository
	userService UserService
}

// NewRequestService creates a new request service.
func NewRequestService(requestRepo repository.RequestRepository, assetRepo repository.AssetRepository, userRepo repository.UserRepository, userService UserService) RequestService {
	return &requestService{
		requestRepo: requestRepo,
		assetRepo:   assetRepo,
		userRepo:    userRepo,
		userService: userService,
	}
}

// Submit files a request for an asset. The availability check here is
// advisory: it rejects requests for assets already exhausted at submit
// time, but the authoritative check happens again under a row lock at
// approval, so two employees racing for the last unit resolve to
// first-approval-wins.
func (s *requestService) Submit(ctx context.Context, requester *model.User, input SubmitRequestInput) (*model.Request, error) {
	asset, err := s.assetRepo.FindByID(ctx, input.AssetID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, err
	}

	if asset.AvailableQuantity < 1 {
		return nil, apperrors.ErrAssetUnavailable
	}

	request := &model.Request{
		AssetID:        asset.ID,
		AssetName:      asset.ProductName,
		AssetType:      asset.ProductType,
		RequesterName:  requester.Name,
		RequesterEmail: requester.Email,
		HREmail:        asset.HREmail,
		CompanyName:    asset.CompanyName,
		Note:           input.Note,
		RequestStatus:  model.RequestStatusPending,
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return request, nil
}

// Decide applies pending -> approved | rejected. Rejection has no
// preconditions beyond the pending status. Approval runs in one
// transaction: the asset row is locked, availability and the package
// limit re-checked, the unit deducted and the affiliation created or
// bumped, so the server-side limit holds even when the client's
// advisory pre-check was stale.
func (s *requestService) Decide(ctx context.Context, hrEmail string, requestID uuid.UUID, action model.RequestStatus) (*model.Request, error) {
	if action != model.RequestStatusApproved && action != model.RequestStatusRejected {
		return nil, fmt.Errorf("unknown action %q", action)
	}

	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, err
	}
	// A request is only visible to the HR it is addressed to.
	if request.HREmail != hrEmail {
		return nil, apperrors.ErrRequestNotFound
	}
	if request.RequestStatus.Terminal() {
		return nil, apperrors.ErrRequestNotPending
	}

	now := time.Now()

	if action == model.RequestStatusRejected {
		request.RequestStatus = model.RequestStatusRejected
		request.DecidedAt = &now
		if err := s.requestRepo.Update(ctx, request); err != nil {
			return nil, fmt.Errorf("update request: %w", err)
		}
		return request, nil
	}

	hr, err := s.userRepo.FindByEmail(ctx, hrEmail)
	if err != nil {
		return nil, fmt.Errorf("load hr profile: %w", err)
	}
	if hr.Package == nil {
		return nil, apperrors.ErrPackageNotFound
	}

	requester, err := s.userRepo.FindByEmail(ctx, request.RequesterEmail)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("load requester profile: %w", err)
	}

	err = s.requestRepo.WithTransaction(ctx, func(ctx context.Context, requests repository.RequestRepository, assets repository.AssetRepository, affiliations repository.AffiliationRepository) error {
		asset, err := assets.FindByIDForUpdate(ctx, request.AssetID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrAssetNotFound
			}
			return err
		}
		if asset.AvailableQuantity < 1 {
			return apperrors.ErrAssetUnavailable
		}

		affiliation, err := affiliations.FindByHRAndEmployee(ctx, hrEmail, request.RequesterEmail)
		if err != nil && err != gorm.ErrRecordNotFound {
			return err
		}

		newAffiliate := affiliation == nil || affiliation.Status != model.AffiliationStatusActive
		if newAffiliate {
			count, err := affiliations.CountActiveByHR(ctx, hrEmail)
			if err != nil {
				return err
			}
			if count >= int64(hr.Package.EmployeesLimit) {
				return apperrors.ErrEmployeeLimitReached
			}
		}

		switch {
		case affiliation == nil:
			// Auto-affiliate on the first approval.
			affiliation = &model.Affiliation{
				EmployeeEmail: request.RequesterEmail,
				EmployeeName:  request.RequesterName,
				HREmail:       hrEmail,
				CompanyName:   hr.CompanyName,
				AssetsCount:   1,
				Status:        model.AffiliationStatusActive,
			}
			if requester != nil {
				affiliation.EmployeePhoto = requester.PhotoURL
			}
			if err := affiliations.Create(ctx, affiliation); err != nil {
				return fmt.Errorf("create affiliation: %w", err)
			}
		case affiliation.Status != model.AffiliationStatusActive:
			affiliation.Status = model.AffiliationStatusActive
			affiliation.AffiliationDate = now
			affiliation.AssetsCount++
			if err := affiliations.Update(ctx, affiliation); err != nil {
				return fmt.Errorf("reactivate affiliation: %w", err)
			}
		default:
			affiliation.AssetsCount++
			if err := affiliations.Update(ctx, affiliation); err != nil {
				return fmt.Errorf("update affiliation: %w", err)
			}
		}

		asset.AvailableQuantity--
		if err := assets.Update(ctx, asset); err != nil {
			return fmt.Errorf("update asset: %w", err)
		}

		request.RequestStatus = model.RequestStatusApproved
		request.DecidedAt = &now
		if err := requests.Update(ctx, request); err != nil {
			return fmt.Errorf("update request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Approval side effects changed the requester's affiliation; drop
	// any cached profile so roster views re-read fresh state.
	s.userService.InvalidateProfile(ctx, request.RequesterEmail)

	return request, nil
}

func (s *requestService) ListForHR(ctx context.Context, hrEmail string) ([]model.Request, error) {
	return s.requestRepo.ListByHR(ctx, hrEmail)
}

func (s *requestService) ListForRequester(ctx context.Context, email string, status model.RequestStatus) ([]model.Request, error) {
	return s.requestRepo.ListByRequester(ctx, email, status)
}
