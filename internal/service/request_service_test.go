package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "assetverse/internal/errors"
	"assetverse/internal/model"
)

func TestRequestService_Submit(t *testing.T) {
	requester := &model.User{Name: "Test Employee", Email: "employee@example.com", Role: model.RoleEmployee}
	assetID := uuid.New()

	t.Run("request denormalizes asset fields", func(t *testing.T) {
		mockRequests := new(MockRequestRepository)
		mockAssets := new(MockAssetRepository)

		mockAssets.On("FindByID", mock.Anything, assetID).Return(&model.Asset{
			ID:                assetID,
			ProductName:       "Laptop",
			ProductType:       model.AssetTypeReturnable,
			AvailableQuantity: 3,
			HREmail:           "hr@example.com",
			CompanyName:       "Acme Corp",
		}, nil)
		mockRequests.On("Create", mock.Anything, mock.AnythingOfType("*model.Request")).Return(nil)

		service := NewRequestService(mockRequests, mockAssets, new(MockUserRepository), new(MockUserService))
		request, err := service.Submit(context.Background(), requester, SubmitRequestInput{AssetID: assetID, Note: "need it"})

		assert.NoError(t, err)
		assert.Equal(t, "Laptop", request.AssetName)
		assert.Equal(t, model.AssetTypeReturnable, request.AssetType)
		assert.Equal(t, "hr@example.com", request.HREmail)
		assert.Equal(t, requester.Email, request.RequesterEmail)
		assert.Equal(t, model.RequestStatusPending, request.RequestStatus)
		mockRequests.AssertExpectations(t)
		mockAssets.AssertExpectations(t)
	})

	t.Run("exhausted asset cannot be requested", func(t *testing.T) {
		mockAssets := new(MockAssetRepository)
		mockAssets.On("FindByID", mock.Anything, assetID).Return(&model.Asset{
			ID:                assetID,
			AvailableQuantity: 0,
		}, nil)

		service := NewRequestService(new(MockRequestRepository), mockAssets, new(MockUserRepository), new(MockUserService))
		request, err := service.Submit(context.Background(), requester, SubmitRequestInput{AssetID: assetID})

		assert.ErrorIs(t, err, apperrors.ErrAssetUnavailable)
		assert.Nil(t, request)
	})

	t.Run("missing asset", func(t *testing.T) {
		mockAssets := new(MockAssetRepository)
		mockAssets.On("FindByID", mock.Anything, assetID).Return(nil, gorm.ErrRecordNotFound)

		service := NewRequestService(new(MockRequestRepository), mockAssets, new(MockUserRepository), new(MockUserService))
		_, err := service.Submit(context.Background(), requester, SubmitRequestInput{AssetID: assetID})

		assert.ErrorIs(t, err, apperrors.ErrAssetNotFound)
	})
}

func TestRequestService_Decide_Reject(t *testing.T) {
	requestID := uuid.New()

	t.Run("pending request can be rejected", func(t *testing.T) {
		mockRequests := new(MockRequestRepository)
		mockRequests.On("FindByID", mock.Anything, requestID).Return(&model.Request{
			ID:            requestID,
			HREmail:       "hr@example.com",
			RequestStatus: model.RequestStatusPending,
		}, nil)
		mockRequests.On("Update", mock.Anything, mock.MatchedBy(func(r *model.Request) bool {
			return r.RequestStatus == model.RequestStatusRejected && r.DecidedAt != nil
		})).Return(nil)

		service := NewRequestService(mockRequests, new(MockAssetRepository), new(MockUserRepository), new(MockUserService))
		request, err := service.Decide(context.Background(), "hr@example.com", requestID, model.RequestStatusRejected)

		assert.NoError(t, err)
		assert.Equal(t, model.RequestStatusRejected, request.RequestStatus)
		mockRequests.AssertExpectations(t)
	})

	t.Run("terminal request is immutable", func(t *testing.T) {
		decided := time.Now()
		mockRequests := new(MockRequestRepository)
		mockRequests.On("FindByID", mock.Anything, requestID).Return(&model.Request{
			ID:            requestID,
			HREmail:       "hr@example.com",
			RequestStatus: model.RequestStatusApproved,
			DecidedAt:     &decided,
		}, nil)

		service := NewRequestService(mockRequests, new(MockAssetRepository), new(MockUserRepository), new(MockUserService))
		_, err := service.Decide(context.Background(), "hr@example.com", requestID, model.RequestStatusRejected)

		assert.ErrorIs(t, err, apperrors.ErrRequestNotPending)
	})

	t.Run("another hr's request reads as missing", func(t *testing.T) {
		mockRequests := new(MockRequestRepository)
		mockRequests.On("FindByID", mock.Anything, requestID).Return(&model.Request{
			ID:            requestID,
			HREmail:       "hr@example.com",
			RequestStatus: model.RequestStatusPending,
		}, nil)

		service := NewRequestService(mockRequests, new(MockAssetRepository), new(MockUserRepository), new(MockUserService))
		_, err := service.Decide(context.Background(), "other@example.com", requestID, model.RequestStatusRejected)

		assert.ErrorIs(t, err, apperrors.ErrRequestNotFound)
	})

	t.Run("unknown action", func(t *testing.T) {
		service := NewRequestService(new(MockRequestRepository), new(MockAssetRepository), new(MockUserRepository), new(MockUserService))
		_, err := service.Decide(context.Background(), "hr@example.com", requestID, model.RequestStatus("escalated"))
		assert.Error(t, err)
	})
}

func TestRequestService_Decide_Approve(t *testing.T) {
	requestID := uuid.New()
	assetID := uuid.New()

	hr := &model.User{
		Email:       "hr@example.com",
		Role:        model.RoleHR,
		CompanyName: "Acme Corp",
		Package:     &model.ActivePackage{Name: "Basic", EmployeesLimit: 5},
	}

	pendingRequest := func() *model.Request {
		return &model.Request{
			ID:             requestID,
			AssetID:        assetID,
			AssetName:      "Laptop",
			RequesterName:  "Test Employee",
			RequesterEmail: "employee@example.com",
			HREmail:        "hr@example.com",
			RequestStatus:  model.RequestStatusPending,
		}
	}

	newMocks := func() (*MockRequestRepository, *MockAssetRepository, *MockAffiliationRepository, *MockUserRepository, *MockUserService) {
		affiliations := new(MockAffiliationRepository)
		assets := &MockAssetRepository{Affiliations: affiliations}
		requests := &MockRequestRepository{Assets: assets, Affiliations: affiliations}
		return requests, assets, affiliations, new(MockUserRepository), new(MockUserService)
	}

	t.Run("first approval affiliates the requester", func(t *testing.T) {
		requests, assets, affiliations, users, userSvc := newMocks()

		requests.On("FindByID", mock.Anything, requestID).Return(pendingRequest(), nil)
		users.On("FindByEmail", mock.Anything, "hr@example.com").Return(hr, nil)
		users.On("FindByEmail", mock.Anything, "employee@example.com").Return(&model.User{
			Email:    "employee@example.com",
			PhotoURL: "https://example.com/photo.png",
		}, nil)
		assets.On("FindByIDForUpdate", mock.Anything, assetID).Return(&model.Asset{
			ID:                assetID,
			ProductQuantity:   5,
			AvailableQuantity: 1,
			HREmail:           "hr@example.com",
		}, nil)
		affiliations.On("FindByHRAndEmployee", mock.Anything, "hr@example.com", "employee@example.com").Return(nil, gorm.ErrRecordNotFound)
		affiliations.On("CountActiveByHR", mock.Anything, "hr@example.com").Return(int64(2), nil)
		affiliations.On("Create", mock.Anything, mock.MatchedBy(func(a *model.Affiliation) bool {
			return a.EmployeeEmail == "employee@example.com" &&
				a.Status == model.AffiliationStatusActive &&
				a.AssetsCount == 1 &&
				a.EmployeePhoto == "https://example.com/photo.png"
		})).Return(nil)
		assets.On("Update", mock.Anything, mock.MatchedBy(func(a *model.Asset) bool {
			return a.AvailableQuantity == 0
		})).Return(nil)
		requests.On("Update", mock.Anything, mock.MatchedBy(func(r *model.Request) bool {
			return r.RequestStatus == model.RequestStatusApproved && r.DecidedAt != nil
		})).Return(nil)
		userSvc.On("InvalidateProfile", mock.Anything, "employee@example.com").Return()

		service := NewRequestService(requests, assets, users, userSvc)
		request, err := service.Decide(context.Background(), "hr@example.com", requestID, model.RequestStatusApproved)

		assert.NoError(t, err)
		assert.Equal(t, model.RequestStatusApproved, request.RequestStatus)
		requests.AssertExpectations(t)
		assets.AssertExpectations(t)
		affiliations.AssertExpectations(t)
		userSvc.AssertExpectations(t)
	})

	t.Run("full roster blocks a new affiliate", func(t *testing.T) {
		requests, assets, affiliations, users, userSvc := newMocks()

		requests.On("FindByID", mock.Anything, requestID).Return(pendingRequest(), nil)
		users.On("FindByEmail", mock.Anything, "hr@example.com").Return(hr, nil)
		users.On("FindByEmail", mock.Anything, "employee@example.com").Return(nil, gorm.ErrRecordNotFound)
		assets.On("FindByIDForUpdate", mock.Anything, assetID).Return(&model.Asset{
			ID:                assetID,
			ProductQuantity:   5,
			AvailableQuantity: 3,
			HREmail:           "hr@example.com",
		}, nil)
		affiliations.On("FindByHRAndEmployee", mock.Anything, "hr@example.com", "employee@example.com").Return(nil, gorm.ErrRecordNotFound)
		affiliations.On("CountActiveByHR", mock.Anything, "hr@example.com").Return(int64(5), nil)

		service := NewRequestService(requests, assets, users, userSvc)
		_, err := service.Decide(context.Background(), "hr@example.com", requestID, model.RequestStatusApproved)

		assert.ErrorIs(t, err, apperrors.ErrEmployeeLimitReached)
		affiliations.AssertExpectations(t)
	})

	t.Run("already affiliated requester skips the limit check", func(t *testing.T) {
		requests, assets, affiliations, users, userSvc := newMocks()

		requests.On("FindByID", mock.Anything, requestID).Return(pendingRequest(), nil)
		users.On("FindByEmail", mock.Anything, "hr@example.com").Return(hr, nil)
		users.On("FindByEmail", mock.Anything, "employee@example.com").Return(nil, gorm.ErrRecordNotFound)
		assets.On("FindByIDForUpdate", mock.Anything, assetID).Return(&model.Asset{
			ID:                assetID,
			ProductQuantity:   5,
			AvailableQuantity: 3,
			HREmail:           "hr@example.com",
		}, nil)
		affiliations.On("FindByHRAndEmployee", mock.Anything, "hr@example.com", "employee@example.com").Return(&model.Affiliation{
			EmployeeEmail: "employee@example.com",
			HREmail:       "hr@example.com",
			AssetsCount:   2,
			Status:        model.AffiliationStatusActive,
		}, nil)
		affiliations.On("Update", mock.Anything, mock.MatchedBy(func(a *model.Affiliation) bool {
			return a.AssetsCount == 3
		})).Return(nil)
		assets.On("Update", mock.Anything, mock.AnythingOfType("*model.Asset")).Return(nil)
		requests.On("Update", mock.Anything, mock.AnythingOfType("*model.Request")).Return(nil)
		userSvc.On("InvalidateProfile", mock.Anything, "employee@example.com").Return()

		service := NewRequestService(requests, assets, users, userSvc)
		_, err := service.Decide(context.Background(), "hr@example.com", requestID, model.RequestStatusApproved)

		assert.NoError(t, err)
		affiliations.AssertNotCalled(t, "CountActiveByHR", mock.Anything, mock.Anything)
	})

	t.Run("last unit taken between submit and approve", func(t *testing.T) {
		requests, assets, _, users, userSvc := newMocks()

		requests.On("FindByID", mock.Anything, requestID).Return(pendingRequest(), nil)
		users.On("FindByEmail", mock.Anything, "hr@example.com").Return(hr, nil)
		users.On("FindByEmail", mock.Anything, "employee@example.com").Return(nil, gorm.ErrRecordNotFound)
		assets.On("FindByIDForUpdate", mock.Anything, assetID).Return(&model.Asset{
			ID:                assetID,
			ProductQuantity:   5,
			AvailableQuantity: 0,
			HREmail:           "hr@example.com",
		}, nil)

		service := NewRequestService(requests, assets, users, userSvc)
		_, err := service.Decide(context.Background(), "hr@example.com", requestID, model.RequestStatusApproved)

		assert.ErrorIs(t, err, apperrors.ErrAssetUnavailable)
	})
}
