package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"assetverse/internal/auth"
	"assetverse/internal/model"
)

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		input         RegisterInput
		setupMock     func(*MockUserRepository, *MockPackageRepository)
		expectedError error
		checkUser     func(*testing.T, *model.User)
	}{
		{
			name: "successful employee registration",
			input: RegisterInput{
				Name:     "Test Employee",
				Email:    "employee@example.com",
				Password: "password123",
				Role:     model.RoleEmployee,
			},
			setupMock: func(users *MockUserRepository, packages *MockPackageRepository) {
				users.On("FindByEmail", mock.Anything, "employee@example.com").Return(nil, gorm.ErrRecordNotFound)
				users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			checkUser: func(t *testing.T, user *model.User) {
				assert.Equal(t, model.RoleEmployee, user.Role)
				assert.Nil(t, user.Package)
				assert.Empty(t, user.CompanyName)
			},
		},
		{
			name: "hr registration starts on the free package",
			input: RegisterInput{
				Name:        "Test HR",
				Email:       "hr@example.com",
				Password:    "password123",
				Role:        model.RoleHR,
				CompanyName: "Acme Corp",
			},
			setupMock: func(users *MockUserRepository, packages *MockPackageRepository) {
				users.On("FindByEmail", mock.Anything, "hr@example.com").Return(nil, gorm.ErrRecordNotFound)
				packages.On("FindByName", mock.Anything, model.FreePackageName).Return(&model.Package{
					Name:          model.FreePackageName,
					EmployeeLimit: 5,
				}, nil)
				users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			checkUser: func(t *testing.T, user *model.User) {
				assert.Equal(t, model.RoleHR, user.Role)
				assert.Equal(t, "Acme Corp", user.CompanyName)
				if assert.NotNil(t, user.Package) {
					assert.Equal(t, model.FreePackageName, user.Package.Name)
					assert.Equal(t, 5, user.Package.EmployeesLimit)
				}
			},
		},
		{
			name: "user already exists",
			input: RegisterInput{
				Name:     "Existing User",
				Email:    "existing@example.com",
				Password: "password123",
				Role:     model.RoleEmployee,
			},
			setupMock: func(users *MockUserRepository, packages *MockPackageRepository) {
				users.On("FindByEmail", mock.Anything, "existing@example.com").Return(&model.User{Email: "existing@example.com"}, nil)
			},
			expectedError: ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := new(MockUserRepository)
			mockPackages := new(MockPackageRepository)
			tt.setupMock(mockUsers, mockPackages)

			jwtService := auth.NewJWTService("test-secret")
			mockTokenStore := new(MockTokenStore)

			service := NewAuthService(mockUsers, mockPackages, jwtService, mockTokenStore)
			user, err := service.Register(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.input.Email, user.Email)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.input.Password, user.PasswordHash)
				if tt.checkUser != nil {
					tt.checkUser(t, user)
				}
			}

			mockUsers.AssertExpectations(t)
			mockPackages.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "hr@example.com",
			password: "password123",
			setupMock: func(users *MockUserRepository, tokens *MockTokenStore) {
				hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcryptCost)
				users.On("FindByEmail", mock.Anything, "hr@example.com").Return(&model.User{
					Name:         "Test HR",
					Email:        "hr@example.com",
					PasswordHash: string(hashedPassword),
					Role:         model.RoleHR,
				}, nil)
				tokens.On("StoreRefreshToken", mock.Anything, mock.Anything, "hr@example.com", model.RoleHR, mock.Anything).Return(nil)
			},
		},
		{
			name:     "user not found",
			email:    "missing@example.com",
			password: "password123",
			setupMock: func(users *MockUserRepository, tokens *MockTokenStore) {
				users.On("FindByEmail", mock.Anything, "missing@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "hr@example.com",
			password: "wrong-password",
			setupMock: func(users *MockUserRepository, tokens *MockTokenStore) {
				hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcryptCost)
				users.On("FindByEmail", mock.Anything, "hr@example.com").Return(&model.User{
					Email:        "hr@example.com",
					PasswordHash: string(hashedPassword),
				}, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := new(MockUserRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockUsers, mockTokenStore)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockUsers, new(MockPackageRepository), jwtService, mockTokenStore)

			accessToken, refreshToken, user, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
			}

			mockUsers.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	user := &model.User{Email: "hr@example.com", Role: model.RoleHR}
	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(user)
	assert.NoError(t, err)

	mockTokenStore := new(MockTokenStore)
	mockTokenStore.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)

	service := NewAuthService(new(MockUserRepository), new(MockPackageRepository), jwtService, mockTokenStore)
	assert.NoError(t, service.Logout(context.Background(), refreshToken))
	mockTokenStore.AssertExpectations(t)
}
