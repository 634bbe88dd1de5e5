package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	apperrors "assetverse/internal/errors"
	"assetverse/internal/model"
	"assetverse/internal/repository"
)

// Roster is an HR's affiliated-employee list plus package usage. Used
// and Limit drive the same limit check the approval flow applies, so
// both surfaces stay consistent.
type Roster struct {
	Employees []model.Affiliation `json:"employees"`
	Used      int                 `json:"used"`
	Limit     int                 `json:"limit"`
}

// AffiliationService handles the employee roster.
type AffiliationService interface {
	RosterForHR(ctx context.Context, hrEmail string) (*Roster, error)
	Remove(ctx context.Context, hrEmail, employeeEmail string) error
}

type affiliationService struct {
	affiliationRepo repository.AffiliationRepository
	userRepo        repository.UserRepository
	userService     UserService
}

// NewAffiliationService creates a new affiliation service.
func NewAffiliationService(affiliationRepo repository.AffiliationRepository, userRepo repository.UserRepository, userService UserService) AffiliationService {
	return &affiliationService{
		affiliationRepo: affiliationRepo,
		userRepo:        userRepo,
		userService:     userService,
	}
}

// RosterForHR returns the active affiliations with used/limit counts.
func (s *affiliationService) RosterForHR(ctx context.Context, hrEmail string) (*Roster, error) {
	hr, err := s.userRepo.FindByEmail(ctx, hrEmail)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	employees, err := s.affiliationRepo.ListActiveByHR(ctx, hrEmail)
	if err != nil {
		return nil, fmt.Errorf("list affiliations: %w", err)
	}

	limit := 0
	if hr.Package != nil {
		limit = hr.Package.EmployeesLimit
	}

	return &Roster{
		Employees: employees,
		Used:      len(employees),
		Limit:     limit,
	}, nil
}

// Remove flips an affiliation to removed. The row stays so a later
// approval re-activates the same record instead of duplicating it.
func (s *affiliationService) Remove(ctx context.Context, hrEmail, employeeEmail string) error {
	affiliation, err := s.affiliationRepo.FindByHRAndEmployee(ctx, hrEmail, employeeEmail)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrAffiliationNotFound
		}
		return err
	}
	if affiliation.Status != model.AffiliationStatusActive {
		return apperrors.ErrAffiliationNotFound
	}

	affiliation.Status = model.AffiliationStatusRemoved
	if err := s.affiliationRepo.Update(ctx, affiliation); err != nil {
		return fmt.Errorf("update affiliation: %w", err)
	}

	s.userService.InvalidateProfile(ctx, employeeEmail)
	return nil
}
