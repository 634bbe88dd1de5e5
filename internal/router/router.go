package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"assetverse/internal/auth"
	"assetverse/internal/config"
	"assetverse/internal/errors"
	"assetverse/internal/handler"
	"assetverse/internal/model"
)

// Register wires routes and middleware. Missing or invalid credentials
// yield 401, an authenticated caller with the wrong role gets 403 —
// clients treat both as a forced sign-out, so the split must hold.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	assetHandler *handler.AssetHandler,
	requestHandler *handler.RequestHandler,
	affiliationHandler *handler.AffiliationHandler,
	packageHandler *handler.PackageHandler,
	paymentHandler *handler.PaymentHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/users", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/packages", packageHandler.ListPackages)

	// Secured routes (require JWT authentication)
	secured := e.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	secured.GET("/users/:email", userHandler.GetUser)
	secured.GET("/assigned-assets", assetHandler.Directory)

	// Employee routes
	employee := secured.Group("", RequireRole(model.RoleEmployee))
	employee.POST("/requests", requestHandler.SubmitRequest)
	employee.GET("/requests", requestHandler.ListMyRequests)

	// HR routes
	hr := secured.Group("", RequireRole(model.RoleHR))
	hr.GET("/users", userHandler.ListUsers)
	hr.POST("/assets", assetHandler.CreateAsset)
	hr.GET("/assets", assetHandler.ListMyAssets)
	hr.PATCH("/assets/assign/:id", assetHandler.AssignAsset)
	hr.PATCH("/assets/:id", assetHandler.UpdateAsset)
	hr.DELETE("/assets/:id", assetHandler.DeleteAsset)
	hr.GET("/requests/hr", requestHandler.ListHRRequests)
	hr.PATCH("/requests/:id", requestHandler.DecideRequest)
	hr.GET("/affiliations/hr", affiliationHandler.Roster)
	hr.PATCH("/affiliations/remove/:email", affiliationHandler.Remove)
	hr.POST("/create-checkout-session", paymentHandler.CreateCheckoutSession)
	hr.POST("/payments", paymentHandler.FinalizePayment)
	hr.GET("/payments/history", paymentHandler.History)
	hr.POST("/downgrade-to-free", paymentHandler.DowngradeToFree)
}

// RequireRole rejects authenticated callers whose role does not match.
// The mismatch is final for this token; a role never changes within a
// session.
func RequireRole(role model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "invalid token",
					Code:  "UNAUTHORIZED",
				})
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok || claims.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
					Error: "insufficient role",
					Code:  "FORBIDDEN",
				})
			}
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
