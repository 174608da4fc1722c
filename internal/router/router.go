package router

import (
	"log"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/seejoshsphotos/backend/internal/cache"
	"github.com/seejoshsphotos/backend/internal/handlers"
	"github.com/seejoshsphotos/backend/internal/middleware"
	"github.com/seejoshsphotos/backend/internal/models"
	"github.com/seejoshsphotos/backend/internal/repositories"
	"github.com/seejoshsphotos/backend/internal/services"
	"github.com/seejoshsphotos/backend/pkg/cloudinary"
	"github.com/seejoshsphotos/backend/pkg/config"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// feedCacheTTL keeps cached pages short-lived; counters shown from a cached
// page may lag by at most this much.
const feedCacheTTL = 15 * time.Second

// SetupMiddleware configures global Echo middleware.
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.RequestID())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies.
func SetupRoutes(
	e *echo.Echo,
	pgdb *gorm.DB,
	mgClient *mongo.Client,
	redisClient *redis.Client,
	firebaseAuthClient *auth.Client,
	cfg *config.Config,
	logger zerolog.Logger,
) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.ReactionRecord{},
		&models.SaveRecord{},
		&models.GuestPost{},
		&models.Announcement{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize repositories ---
	mongoDB := mgClient.Database(cfg.MongoDatabase)
	photoRepo := repositories.NewMongoPhotoRepository(mongoDB)
	collectionRepo := repositories.NewMongoCollectionRepository(mongoDB)
	reactionRepo := repositories.NewPostgresReactionRepository(pgdb)
	saveRepo := repositories.NewPostgresSaveRepository(pgdb)
	guestPostRepo := repositories.NewPostgresGuestPostRepository(pgdb)
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	announcementRepo := repositories.NewPostgresAnnouncementRepository(pgdb)

	// --- Initialize services ---
	assets := cloudinary.NewBuilder(cfg.CloudinaryCloudName)
	pageCache := cache.NewFeedCache(redisClient, feedCacheTTL, logger)
	ledger := services.NewLedger(photoRepo, reactionRepo, saveRepo, userRepo, logger)
	feed := services.NewFeed(photoRepo, collectionRepo, ledger, pageCache, assets, logger)
	guestBook := services.NewGuestBook(guestPostRepo, userRepo, photoRepo, collectionRepo)
	catalog := services.NewCatalog(photoRepo, collectionRepo, pageCache, logger)

	// --- Route groups ---
	// Read surfaces allow anonymous viewers; toggles and authorship require
	// an authenticated user; moderation and ingest sit behind the admin key.
	public := e.Group("/api/v1", middleware.OptionalAuth(firebaseAuthClient, userRepo))
	authed := e.Group("/api/v1", middleware.RequireAuth(firebaseAuthClient, userRepo))
	admin := e.Group("/api/v1/admin", middleware.RequireAdminKey(cfg.AdminAPIKey))

	feedHandler := handlers.NewFeedHandler(feed)
	feedHandler.RegisterFeedRoutes(public)
	log.Println("Feed routes configured.")

	collectionHandler := handlers.NewCollectionHandler(collectionRepo, photoRepo, assets)
	collectionHandler.RegisterCollectionRoutes(public)
	log.Println("Collection routes configured.")

	photoHandler := handlers.NewPhotoHandler(photoRepo, catalog, ledger, assets)
	photoHandler.RegisterPhotoRoutes(public)
	photoHandler.RegisterIngestRoutes(admin)
	log.Println("Photo routes configured.")

	engagementHandler := handlers.NewEngagementHandler(ledger)
	engagementHandler.RegisterEngagementRoutes(authed)
	log.Println("Engagement routes configured.")

	guestBookHandler := handlers.NewGuestBookHandler(guestBook)
	guestBookHandler.RegisterGuestBookRoutes(public, authed)
	guestBookHandler.RegisterModerationRoutes(admin)
	log.Println("Guest book routes configured.")

	announcementHandler := handlers.NewAnnouncementHandler(announcementRepo)
	announcementHandler.RegisterAnnouncementRoutes(public)
	announcementHandler.RegisterPublishRoutes(admin)
	log.Println("Announcement routes configured.")

	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterProfileRoutes(authed)
	log.Println("User profile routes configured.")

	log.Println("All routes configured.")
}
