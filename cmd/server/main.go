package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "civictrack/docs"
	"civictrack/internal/auth"
	"civictrack/internal/cache"
	"civictrack/internal/config"
	"civictrack/internal/db"
	"civictrack/internal/handler"
	"civictrack/internal/model"
	"civictrack/internal/repository"
	"civictrack/internal/router"
	"civictrack/internal/service"
)

// @title CivicTrack API
// @version 1.0
// @description Civic issue reporting and tracking API: report issues, browse the live feed, upvote, and follow resolution progress.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.Issue{},
		&model.User{},
		&model.Admin{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	issueRepo := repository.NewIssueRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)
	adminRepo := repository.NewAdminRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	issueService := service.NewIssueService(issueRepo, userRepo, cacheClient)
	authService := service.NewAuthService(adminRepo, jwtService, tokenStore)

	// One-time bootstrap: sample issues on a fresh, empty table.
	if seeded, err := issueService.SeedSampleIssues(context.Background()); err != nil {
		log.Printf("seed sample issues: %v", err)
	} else if seeded > 0 {
		log.Printf("seeded %d sample issues into empty store", seeded)
	}

	// Initialize handlers
	issueHandler := handler.NewIssueHandler(issueService)
	statsHandler := handler.NewStatsHandler(issueService)
	authHandler := handler.NewAuthHandler(authService)

	// Register routes
	router.Register(
		e,
		cfg,
		cacheClient,
		issueHandler,
		statsHandler,
		authHandler,
	)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: %s/swagger/index.html", cfg.SwaggerHost)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
