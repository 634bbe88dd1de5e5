package repository

import (
	"context"

	"gorm.io/gorm"

	"assetverse/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdatePackage(ctx context.Context, email string, pkg *model.ActivePackage) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdatePackage swaps the active package columns for an HR account.
func (r *userRepository) UpdatePackage(ctx context.Context, email string, pkg *model.ActivePackage) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{
			"package_name":            pkg.Name,
			"package_employees_limit": pkg.EmployeesLimit,
			"package_activated_at":    pkg.ActivatedAt,
		}).Error
}
