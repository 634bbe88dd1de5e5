package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "assetverse/internal/errors"
	"assetverse/internal/model"
	"assetverse/internal/repository"
)

// CheckoutSessionResult is returned when a checkout starts: the URL the
// client redirects to carries the package parameters and tracking ID
// that the success page later posts back to finalize.
type CheckoutSessionResult struct {
	URL        string `json:"url"`
	TrackingID string `json:"trackingId"`
}

// PaymentService handles the package upgrade/downgrade money flow.
type PaymentService interface {
	CreateCheckoutSession(ctx context.Context, hrEmail, packageName string) (*CheckoutSessionResult, error)
	FinalizePayment(ctx context.Context, hrEmail, trackingID string) (*model.Payment, error)
	DowngradeToFree(ctx context.Context, hrEmail string) (*model.ActivePackage, error)
	History(ctx context.Context, hrEmail string) ([]model.Payment, error)
	ExpireStaleSessions(ctx context.Context) (int64, error)
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
	packageRepo repository.PackageRepository
	userRepo    repository.UserRepository
	userService UserService
	returnURL   string
	sessionTTL  time.Duration
}

// NewPaymentService creates a new payment service. returnURL is where
// checkout redirects back to; sessionTTL bounds how long a pending
// session may be finalized.
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	packageRepo repository.PackageRepository,
	userRepo repository.UserRepository,
	userService UserService,
	returnURL string,
	sessionTTL time.Duration,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		packageRepo: packageRepo,
		userRepo:    userRepo,
		userService: userService,
		returnURL:   returnURL,
		sessionTTL:  sessionTTL,
	}
}

// CreateCheckoutSession opens a pending session for the named tier.
// Price and limit come from the package record, never from the client.
func (s *paymentService) CreateCheckoutSession(ctx context.Context, hrEmail, packageName string) (*CheckoutSessionResult, error) {
	pkg, err := s.packageRepo.FindByName(ctx, packageName)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrPackageNotFound
		}
		return nil, err
	}

	session := &model.CheckoutSession{
		TrackingID:    uuid.New().String(),
		HREmail:       hrEmail,
		PackageName:   pkg.Name,
		EmployeeLimit: pkg.EmployeeLimit,
		Amount:        pkg.Price,
		Status:        model.CheckoutStatusPending,
		ExpiresAt:     time.Now().Add(s.sessionTTL),
	}
	if err := s.paymentRepo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	query := url.Values{}
	query.Set("pkg", session.PackageName)
	query.Set("limit", fmt.Sprintf("%d", session.EmployeeLimit))
	query.Set("price", session.Amount.String())
	query.Set("trackingId", session.TrackingID)

	return &CheckoutSessionResult{
		URL:        s.returnURL + "?" + query.Encode(),
		TrackingID: session.TrackingID,
	}, nil
}

// FinalizePayment settles a pending session: the payment is recorded
// and the HR's active package swapped. A second finalize with the same
// tracking ID fails, as does one after the session expired.
func (s *paymentService) FinalizePayment(ctx context.Context, hrEmail, trackingID string) (*model.Payment, error) {
	session, err := s.paymentRepo.FindSessionByTrackingID(ctx, trackingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrCheckoutSessionInvalid
		}
		return nil, err
	}
	if session.HREmail != hrEmail || session.Status != model.CheckoutStatusPending || time.Now().After(session.ExpiresAt) {
		return nil, apperrors.ErrCheckoutSessionInvalid
	}

	session.Status = model.CheckoutStatusCompleted
	if err := s.paymentRepo.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("complete checkout session: %w", err)
	}

	payment := &model.Payment{
		HREmail:       hrEmail,
		PackageName:   session.PackageName,
		EmployeeLimit: session.EmployeeLimit,
		Amount:        session.Amount,
		TrackingID:    session.TrackingID,
	}
	if err := s.paymentRepo.CreatePayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}

	active := &model.ActivePackage{
		Name:           session.PackageName,
		EmployeesLimit: session.EmployeeLimit,
		ActivatedAt:    time.Now(),
	}
	if err := s.userRepo.UpdatePackage(ctx, hrEmail, active); err != nil {
		return nil, fmt.Errorf("activate package: %w", err)
	}

	s.userService.InvalidateProfile(ctx, hrEmail)
	return payment, nil
}

// DowngradeToFree swaps the HR back to the free tier. Calling it while
// already on the free tier succeeds without touching the activation
// date, so the operation is idempotent.
func (s *paymentService) DowngradeToFree(ctx context.Context, hrEmail string) (*model.ActivePackage, error) {
	hr, err := s.userRepo.FindByEmail(ctx, hrEmail)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	if hr.Package != nil && hr.Package.Name == model.FreePackageName {
		return hr.Package, nil
	}

	free, err := s.packageRepo.FindByName(ctx, model.FreePackageName)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrPackageNotFound
		}
		return nil, err
	}

	active := &model.ActivePackage{
		Name:           free.Name,
		EmployeesLimit: free.EmployeeLimit,
		ActivatedAt:    time.Now(),
	}
	if err := s.userRepo.UpdatePackage(ctx, hrEmail, active); err != nil {
		return nil, fmt.Errorf("downgrade package: %w", err)
	}

	s.userService.InvalidateProfile(ctx, hrEmail)
	return active, nil
}

func (s *paymentService) History(ctx context.Context, hrEmail string) ([]model.Payment, error) {
	return s.paymentRepo.ListPaymentsByHR(ctx, hrEmail)
}

// ExpireStaleSessions is called by the scheduler.
func (s *paymentService) ExpireStaleSessions(ctx context.Context) (int64, error) {
	return s.paymentRepo.ExpireStaleSessions(ctx, time.Now())
}
