package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"civictrack/internal/config"
	"civictrack/internal/db"
	"civictrack/internal/model"
	"civictrack/internal/repository"
	"civictrack/internal/service"
)

func main() {
	log.Println("Starting seed script...")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.Issue{}, &model.User{}, &model.Admin{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	issueRepo := repository.NewIssueRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)
	issueService := service.NewIssueService(issueRepo, userRepo, nil)

	seeded, err := issueService.SeedSampleIssues(context.Background())
	if err != nil {
		log.Fatalf("Failed to seed issues: %v", err)
	}

	if seeded == 0 {
		log.Println("Store is not empty, nothing to seed")
		return
	}
	log.Printf("Seed completed successfully: %d sample issues created", seeded)
}
