package main

import (
	"log"
	"net/http"
	"os"

	_ "assetverse/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"assetverse/internal/auth"
	"assetverse/internal/cache"
	"assetverse/internal/config"
	"assetverse/internal/db"
	"assetverse/internal/handler"
	"assetverse/internal/model"
	"assetverse/internal/repository"
	"assetverse/internal/router"
	"assetverse/internal/scheduler"
	"assetverse/internal/service"
)

// @title AssetVerse API
// @version 1.0
// @description Corporate asset management API: role-gated asset inventory, request approvals, employee affiliations and subscription packages.
// @host localhost:8080
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Payment{},
			&model.CheckoutSession{},
			&model.Affiliation{},
			&model.Request{},
			&model.Asset{},
			&model.Package{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Package{},
		&model.Asset{},
		&model.Request{},
		&model.Affiliation{},
		&model.CheckoutSession{},
		&model.Payment{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	packageRepo := repository.NewPackageRepository(gormDB)
	assetRepo := repository.NewAssetRepository(gormDB)
	requestRepo := repository.NewRequestRepository(gormDB)
	affiliationRepo := repository.NewAffiliationRepository(gormDB)
	paymentRepo := repository.NewPaymentRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, packageRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, cacheClient)
	assetService := service.NewAssetService(assetRepo, affiliationRepo)
	requestService := service.NewRequestService(requestRepo, assetRepo, userRepo, userService)
	affiliationService := service.NewAffiliationService(affiliationRepo, userRepo, userService)
	packageService := service.NewPackageService(packageRepo)
	paymentService := service.NewPaymentService(paymentRepo, packageRepo, userRepo, userService, cfg.CheckoutReturnURL, cfg.CheckoutSessionTTL)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	assetHandler := handler.NewAssetHandler(assetService, userService)
	requestHandler := handler.NewRequestHandler(requestService)
	affiliationHandler := handler.NewAffiliationHandler(affiliationService)
	packageHandler := handler.NewPackageHandler(packageService)
	paymentHandler := handler.NewPaymentHandler(paymentService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		userHandler,
		assetHandler,
		requestHandler,
		affiliationHandler,
		packageHandler,
		paymentHandler,
	)

	// Background maintenance
	sched := scheduler.New(paymentService)
	sched.Start()
	defer sched.Stop()

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
