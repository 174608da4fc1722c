package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/seejoshsphotos/backend/internal/router"
	"github.com/seejoshsphotos/backend/pkg/config"
	"github.com/seejoshsphotos/backend/pkg/firebase"
	"github.com/seejoshsphotos/backend/pkg/logger"
	"github.com/seejoshsphotos/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	appLogger := logger.New(cfg.Env, cfg.LogLevel)

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	// Initialize Firebase
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, db.Redis, firebaseApp.AuthClient, cfg, appLogger)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
