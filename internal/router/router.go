package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"civictrack/internal/cache"
	"civictrack/internal/config"
	"civictrack/internal/handler"
	"civictrack/internal/middleware"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	cacheClient *cache.Client,
	issueHandler *handler.IssueHandler,
	statsHandler *handler.StatsHandler,
	authHandler *handler.AuthHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.GET("/issues", issueHandler.ListIssues)
	api.POST("/issues", issueHandler.CreateIssue,
		middleware.CreateRateLimit(cacheClient, cfg.CreateRateLimit))
	api.POST("/issues/:id/vote", issueHandler.VoteIssue)
	api.GET("/stats", statsHandler.GetStats)

	// Admin session routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Status transitions are operator actions; the JWT guard is opt-in so the
	// service still runs as an open tool when no admin accounts exist.
	if cfg.AdminAuthRequired {
		secured := api.Group("", echojwt.WithConfig(echojwt.Config{
			SigningKey:  []byte(cfg.JWTSecret),
			TokenLookup: "header:" + echo.HeaderAuthorization,
		}))
		secured.PUT("/issues/:id/status", issueHandler.UpdateStatus)
	} else {
		api.PUT("/issues/:id/status", issueHandler.UpdateStatus)
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
