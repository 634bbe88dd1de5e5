package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"assetverse/internal/config"
	"assetverse/internal/db"
	"assetverse/internal/model"
	"assetverse/internal/repository"
)

// defaultPackages are the subscription tiers the application ships with.
// The Basic tier must exist before any HR can register.
var defaultPackages = []model.Package{
	{
		Name:          "Basic",
		Price:         decimal.Zero,
		EmployeeLimit: 5,
		Features: []string{
			"Up to 5 employees",
			"Unlimited asset postings",
			"Request approvals",
		},
	},
	{
		Name:          "Standard",
		Price:         decimal.NewFromInt(8),
		EmployeeLimit: 10,
		Features: []string{
			"Up to 10 employees",
			"Unlimited asset postings",
			"Request approvals",
			"Payment history",
		},
	},
	{
		Name:          "Premium",
		Price:         decimal.NewFromInt(15),
		EmployeeLimit: 20,
		Features: []string{
			"Up to 20 employees",
			"Unlimited asset postings",
			"Request approvals",
			"Payment history",
			"Priority support",
		},
	},
}

// demoAccounts are convenience logins for local development. They are
// only written when missing, so production re-runs never touch users.
var demoAccounts = []demoAccount{
	{
		Name:        "Demo HR",
		Email:       "hr@assetverse.local",
		Password:    "hr-demo-pass",
		Role:        model.RoleHR,
		CompanyName: "AssetVerse Demo Co.",
	},
	{
		Name:     "Demo Employee",
		Email:    "employee@assetverse.local",
		Password: "employee-demo-pass",
		Role:     model.RoleEmployee,
	},
}

type demoAccount struct {
	Name        string
	Email       string
	Password    string
	Role        model.Role
	CompanyName string
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.Package{}, &model.User{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	packageRepo := repository.NewPackageRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	seeded, skipped, err := seedPackages(ctx, packageRepo, defaultPackages)
	if err != nil {
		log.Fatalf("Failed to seed packages: %v", err)
	}

	users, usersSkipped, err := seedDemoAccounts(ctx, userRepo, packageRepo, demoAccounts)
	if err != nil {
		log.Fatalf("Failed to seed demo accounts: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New packages created: %d", seeded)
	log.Printf("  - Existing packages kept: %d", skipped)
	log.Printf("  - New demo accounts created: %d", users)
	log.Printf("  - Existing demo accounts kept: %d", usersSkipped)
}

// seedPackages inserts the tiers that do not exist yet. Existing tiers
// are left untouched so a re-run never resets a tuned price or limit.
func seedPackages(ctx context.Context, repo repository.PackageRepository, packages []model.Package) (seeded int, skipped int, err error) {
	for _, pkg := range packages {
		existing, err := repo.FindByName(ctx, pkg.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return seeded, skipped, fmt.Errorf("error checking package %s: %w", pkg.Name, err)
		}

		if existing != nil {
			skipped++
			continue
		}

		toCreate := pkg
		if err := repo.Create(ctx, &toCreate); err != nil {
			return seeded, skipped, fmt.Errorf("error creating package %s: %w", pkg.Name, err)
		}
		seeded++
	}

	return seeded, skipped, nil
}

// seedDemoAccounts creates the missing demo logins. HR accounts start
// on the Basic tier, the same bootstrap registration performs.
func seedDemoAccounts(ctx context.Context, users repository.UserRepository, packages repository.PackageRepository, accounts []demoAccount) (seeded int, skipped int, err error) {
	for _, account := range accounts {
		existing, err := users.FindByEmail(ctx, account.Email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return seeded, skipped, fmt.Errorf("error checking account %s: %w", account.Email, err)
		}
		if existing != nil {
			skipped++
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(account.Password), bcrypt.DefaultCost)
		if err != nil {
			return seeded, skipped, fmt.Errorf("error hashing password for %s: %w", account.Email, err)
		}

		user := model.User{
			Name:         account.Name,
			Email:        account.Email,
			PasswordHash: string(hash),
			Role:         account.Role,
			CompanyName:  account.CompanyName,
		}

		if account.Role == model.RoleHR {
			basic, err := packages.FindByName(ctx, model.FreePackageName)
			if err != nil {
				return seeded, skipped, fmt.Errorf("error loading Basic tier for %s: %w", account.Email, err)
			}
			user.Package = &model.ActivePackage{
				Name:           basic.Name,
				EmployeesLimit: basic.EmployeeLimit,
				ActivatedAt:    time.Now(),
			}
		}

		if err := users.Create(ctx, &user); err != nil {
			return seeded, skipped, fmt.Errorf("error creating account %s: %w", account.Email, err)
		}
		seeded++
	}

	return seeded, skipped, nil
}
