package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"assetverse/internal/model"
	"assetverse/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePackage(ctx context.Context, email string, pkg *model.ActivePackage) error {
	args := m.Called(ctx, email, pkg)
	return args.Error(0)
}

// MockPackageRepository is a mock implementation of PackageRepository.
type MockPackageRepository struct {
	mock.Mock
}

func (m *MockPackageRepository) Create(ctx context.Context, pkg *model.Package) error {
	args := m.Called(ctx, pkg)
	return args.Error(0)
}

func (m *MockPackageRepository) FindByName(ctx context.Context, name string) (*model.Package, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Package), args.Error(1)
}

func (m *MockPackageRepository) List(ctx context.Context) ([]model.Package, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Package), args.Error(1)
}

// MockAffiliationRepository is a mock implementation of AffiliationRepository.
type MockAffiliationRepository struct {
	mock.Mock
}

func (m *MockAffiliationRepository) Create(ctx context.Context, affiliation *model.Affiliation) error {
	args := m.Called(ctx, affiliation)
	return args.Error(0)
}

func (m *MockAffiliationRepository) Update(ctx context.Context, affiliation *model.Affiliation) error {
	args := m.Called(ctx, affiliation)
	return args.Error(0)
}

func (m *MockAffiliationRepository) FindByHRAndEmployee(ctx context.Context, hrEmail, employeeEmail string) (*model.Affiliation, error) {
	args := m.Called(ctx, hrEmail, employeeEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Affiliation), args.Error(1)
}

func (m *MockAffiliationRepository) ListActiveByHR(ctx context.Context, hrEmail string) ([]model.Affiliation, error) {
	args := m.Called(ctx, hrEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Affiliation), args.Error(1)
}

func (m *MockAffiliationRepository) ListActiveByEmployee(ctx context.Context, employeeEmail string) ([]model.Affiliation, error) {
	args := m.Called(ctx, employeeEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Affiliation), args.Error(1)
}

func (m *MockAffiliationRepository) CountActiveByHR(ctx context.Context, hrEmail string) (int64, error) {
	args := m.Called(ctx, hrEmail)
	return args.Get(0).(int64), args.Error(1)
}

// MockAssetRepository is a mock implementation of AssetRepository. Its
// WithTransaction runs the callback against the mock itself and the
// wired affiliation mock, so expectations hold inside and outside a
// transaction.
type MockAssetRepository struct {
	mock.Mock
	Affiliations *MockAffiliationRepository
}

func (m *MockAssetRepository) Create(ctx context.Context, asset *model.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) Update(ctx context.Context, asset *model.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAssetRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Asset), args.Error(1)
}

func (m *MockAssetRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Asset), args.Error(1)
}

func (m *MockAssetRepository) ListByHR(ctx context.Context, hrEmail string, page, limit int) ([]model.Asset, int64, error) {
	args := m.Called(ctx, hrEmail, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Asset), args.Get(1).(int64), args.Error(2)
}

func (m *MockAssetRepository) Directory(ctx context.Context, params repository.DirectoryParams) ([]model.Asset, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Asset), args.Get(1).(int64), args.Error(2)
}

func (m *MockAssetRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, assets repository.AssetRepository, affiliations repository.AffiliationRepository) error) error {
	return fn(ctx, m, m.Affiliations)
}

// MockRequestRepository is a mock implementation of RequestRepository.
// WithTransaction behaves like MockAssetRepository's.
type MockRequestRepository struct {
	mock.Mock
	Assets       *MockAssetRepository
	Affiliations *MockAffiliationRepository
}

func (m *MockRequestRepository) Create(ctx context.Context, request *model.Request) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockRequestRepository) Update(ctx context.Context, request *model.Request) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Request), args.Error(1)
}

func (m *MockRequestRepository) ListByHR(ctx context.Context, hrEmail string) ([]model.Request, error) {
	args := m.Called(ctx, hrEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Request), args.Error(1)
}

func (m *MockRequestRepository) ListByRequester(ctx context.Context, email string, status model.RequestStatus) ([]model.Request, error) {
	args := m.Called(ctx, email, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Request), args.Error(1)
}

func (m *MockRequestRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, requests repository.RequestRepository, assets repository.AssetRepository, affiliations repository.AffiliationRepository) error) error {
	return fn(ctx, m, m.Assets, m.Affiliations)
}

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) CreatePayment(ctx context.Context, payment *model.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) ListPaymentsByHR(ctx context.Context, hrEmail string) ([]model.Payment, error) {
	args := m.Called(ctx, hrEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) CreateSession(ctx context.Context, session *model.CheckoutSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindSessionByTrackingID(ctx context.Context, trackingID string) (*model.CheckoutSession, error) {
	args := m.Called(ctx, trackingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CheckoutSession), args.Error(1)
}

func (m *MockPaymentRepository) UpdateSession(ctx context.Context, session *model.CheckoutSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockPaymentRepository) ExpireStaleSessions(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID, email string, role model.Role, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, email, role, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (string, model.Role, error) {
	args := m.Called(ctx, tokenID)
	return args.String(0), args.Get(1).(model.Role), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

// MockUserService is a mock implementation of UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserService) InvalidateProfile(ctx context.Context, email string) {
	m.Called(ctx, email)
}
