package routes

import (
	"time"

	"github.com/gimhantharuke456/policeappbackend/internal/adapters/http/handlers"
	"github.com/gimhantharuke456/policeappbackend/internal/adapters/http/middleware"
	"github.com/gimhantharuke456/policeappbackend/internal/adapters/persistence/repositories"
	"github.com/gimhantharuke456/policeappbackend/internal/adapters/storage"
	"github.com/gimhantharuke456/policeappbackend/internal/config"
	"github.com/gimhantharuke456/policeappbackend/internal/core/services"
	"github.com/gimhantharuke456/policeappbackend/internal/pkg/jwt"
	"github.com/gimhantharuke456/policeappbackend/internal/pkg/password"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// trackListCache is how long clients may cache track listings
const trackListCache = time.Minute

// Stores holds the object stores shared with main
type Stores struct {
	Uploads storage.ObjectStore
	Tracks  storage.ObjectStore
}

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, stores Stores) {
	// Initialize repositories
	officerRepo := repositories.NewOfficerRepository(db)
	rosterRepo := repositories.NewRosterRepository(db)
	violationRepo := repositories.NewViolationRepository(db)

	// Initialize services
	hasher := password.NewHasher(cfg.Auth.BcryptCost, cfg.Auth.HashConcurrency)
	tokens := jwt.NewManager(cfg.JWT.Secret)
	timeout := cfg.Database.QueryTimeout

	authService := services.NewAuthService(officerRepo, rosterRepo, hasher, tokens, timeout)
	userService := services.NewUserService(officerRepo, stores.Uploads, cfg.Upload.MaxBytes, timeout)
	violationService := services.NewViolationService(violationRepo, timeout)
	rosterService := services.NewRosterService(rosterRepo, timeout)
	trackService := services.NewTrackService(stores.Tracks, cfg.Storage.TracksPrefix)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, cfg)
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	violationHandler := handlers.NewViolationHandler(violationService)
	trackHandler := handlers.NewTrackHandler(trackService)
	rosterHandler := handlers.NewRosterHandler(rosterService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Metrics and documentation
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Static files
	app.Static("/uploads", cfg.Upload.Dir)
	if cfg.Storage.Backend == "local" {
		app.Static(storage.LocalTracksURL, cfg.Storage.TracksDir)
	}

	setupAuthRoutes(app, authHandler, authService, userHandler, cfg)
	setupUserRoutes(app, userHandler)
	setupViolationRoutes(app.Group("/violations"), violationHandler)
	setupTrackRoutes(app.Group("/tracks", middleware.CacheControl(trackListCache)), trackHandler)
	setupAdminRoutes(app.Group("/admin", middleware.AdminKey(cfg.Admin.APIKey)), rosterHandler)
}

// setupAuthRoutes configures authentication and profile update routes
func setupAuthRoutes(
	router fiber.Router,
	handler *handlers.AuthHandler,
	authService *services.AuthService,
	userHandler *handlers.UserHandler,
	cfg *config.Config,
) {
	authLimiter := middleware.AuthRateLimiter(cfg.RateLimit.AuthPerMinute)

	router.Post("/registration", authLimiter, middleware.NoCacheHeaders(), handler.Register)
	router.Post("/login", authLimiter, middleware.NoCacheHeaders(), handler.Login)
	router.Post("/verify", middleware.NoCacheHeaders(), handler.Verify)
	router.Post("/profile", handler.UpdateProfile)
	router.Post("/profile/picture", middleware.AuthMiddleware(authService), userHandler.UploadProfilePicture)
}

// setupUserRoutes configures officer profile routes
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/profile/:id", handler.GetProfile)
	router.Get("/users", handler.ListUsers)
	router.Get("/svc/:svcNumber", handler.GetBySVC)
}

// setupViolationRoutes configures violation routes
func setupViolationRoutes(router fiber.Router, handler *handlers.ViolationHandler) {
	router.Post("/violation", handler.Create)
	router.Post("/getviolation", handler.Find)
	router.Get("/violation/:id", handler.GetByID)
	router.Post("/officer", handler.ByOfficer)
	router.Post("/status", handler.UpdateStatus)
	router.Get("/tourist", handler.ByTourist)
}

// setupTrackRoutes configures voice record routes
func setupTrackRoutes(router fiber.Router, handler *handlers.TrackHandler) {
	router.Get("/", handler.ListFolders)
	router.Get("/:folder", handler.ListTracks)
}

// setupAdminRoutes configures roster administration routes
func setupAdminRoutes(router fiber.Router, handler *handlers.RosterHandler) {
	router.Post("/roster", handler.Add)
	router.Get("/roster", handler.List)
	router.Post("/roster/:svc/deactivate", handler.Deactivate)
}
