// cmd/docdepot-rest-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/tna76874/docdepot/internal/api/rest/v1"
	"github.com/tna76874/docdepot/internal/app"
	"github.com/tna76874/docdepot/internal/domain/classify"
	"github.com/tna76874/docdepot/internal/domain/documents"
	"github.com/tna76874/docdepot/internal/domain/tokens"
	"github.com/tna76874/docdepot/internal/domain/users"
	infraclassify "github.com/tna76874/docdepot/internal/infrastructure/classify"
	"github.com/tna76874/docdepot/internal/infrastructure/persistence"
	"github.com/tna76874/docdepot/internal/infrastructure/persistence/models"
	"github.com/tna76874/docdepot/internal/infrastructure/storage"
	"github.com/tna76874/docdepot/internal/pkg/config"
	"github.com/tna76874/docdepot/internal/pkg/logger"
	"github.com/gin-contrib/cors"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/rest-app.yaml"
	}

	restConfig, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&restConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize application dependencies
	deps, err := initializeDependencies(restConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	// Startup cleanup before the server accepts traffic
	if restConfig.Maintenance.CleanupOnStart {
		if err := runStartupCleanup(restConfig, deps.services.maintenance, log); err != nil {
			return fmt.Errorf("startup cleanup failed: %w", err)
		}
	}

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(restConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	services *appServices
}

type appServices struct {
	documentUpload    documents.DocumentUploadService
	documentRetrieval documents.DocumentRetrievalService
	documentMetadata  documents.DocumentMetadataService
	token             tokens.TokenService
	tokenInfo         tokens.TokenInfoService
	accessEvents      tokens.AccessEventService
	user              users.UserService
	maintenance       documents.MaintenanceService
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.RestConfig, log logger.Logger) (*appDependencies, error) {
	// Initialize database
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	// Run migrations
	if err := db.AutoMigrate(&models.UserModel{}, &models.DocumentModel{}, &models.TokenModel{}, &models.AccessEventModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.Info("Database migrations completed successfully")

	// Initialize repositories
	userRepo, err := persistence.NewGormUserRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create user repository: %w", err)
	}

	documentRepo, err := persistence.NewGormDocumentRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create document repository: %w", err)
	}

	tokenRepo, err := persistence.NewGormTokenRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create token repository: %w", err)
	}

	accessEventRepo, err := persistence.NewGormAccessEventRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create access event repository: %w", err)
	}

	// Initialize file storage
	documentStore, err := storage.NewFilesystemStore(cfg.Upload.DocumentDir, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create document store: %w", err)
	}

	// Initialize the upload validation pipeline
	pipeline := infraclassify.NewDefaultPipeline(&cfg.Upload, &cfg.Classifier, log)

	// Initialize services
	services, err := initializeApplicationServices(
		userRepo, documentRepo, tokenRepo, accessEventRepo,
		documentStore, pipeline, log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &appDependencies{services: services}, nil
}

// initializeApplicationServices sets up all application services
func initializeApplicationServices(
	userRepo users.UserRepository,
	documentRepo documents.DocumentRepository,
	tokenRepo tokens.TokenRepository,
	accessEventRepo tokens.AccessEventRepository,
	documentStore documents.DocumentStore,
	pipeline *classify.Pipeline,
	log logger.Logger,
) (*appServices, error) {
	tokenService, err := app.NewTokenService(tokenRepo, documentRepo, accessEventRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	documentUploadService, err := app.NewDocumentUploadService(userRepo, documentRepo, documentStore, tokenService, pipeline, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create document upload service: %w", err)
	}

	documentRetrievalService, err := app.NewDocumentRetrievalService(documentRepo, documentStore, tokenRepo, accessEventRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create document retrieval service: %w", err)
	}

	documentMetadataService, err := app.NewDocumentMetadataService(documentRepo, documentStore, tokenRepo, accessEventRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create document metadata service: %w", err)
	}

	tokenInfoService, err := app.NewTokenInfoService(tokenRepo, documentRepo, accessEventRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create token info service: %w", err)
	}

	accessEventService, err := app.NewAccessEventService(accessEventRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create access event service: %w", err)
	}

	userService, err := app.NewUserService(userRepo, documentRepo, documentStore, tokenRepo, accessEventRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	maintenanceService, err := app.NewMaintenanceService(documentRepo, documentStore, tokenRepo, accessEventRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create maintenance service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &appServices{
		documentUpload:    documentUploadService,
		documentRetrieval: documentRetrievalService,
		documentMetadata:  documentMetadataService,
		token:             tokenService,
		tokenInfo:         tokenInfoService,
		accessEvents:      accessEventService,
		user:              userService,
		maintenance:       maintenanceService,
	}, nil
}

// runStartupCleanup drops expired tokens, orphaned documents and stale
// depositions that never saw an access.
func runStartupCleanup(cfg *config.RestConfig, maintenance documents.MaintenanceService, log logger.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := maintenance.DeleteExpired(ctx); err != nil {
		return fmt.Errorf("failed to delete expired tokens: %w", err)
	}

	if cfg.Maintenance.StaleAfterDays > 0 {
		retention := time.Duration(cfg.Maintenance.StaleAfterDays) * 24 * time.Hour
		if err := maintenance.DeleteStale(ctx, retention); err != nil {
			return fmt.Errorf("failed to delete stale documents: %w", err)
		}
	}

	log.Info("Startup cleanup completed")
	return nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, deps *appDependencies, log logger.Logger) error {
	// Setup router
	r := gin.Default()

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Status pages are rendered server-side
	r.LoadHTMLGlob("web/templates/*")

	// Setup API routes
	v1.SetupRoutes(r,
		deps.services.documentUpload,
		deps.services.documentRetrieval,
		deps.services.documentMetadata,
		deps.services.token,
		deps.services.tokenInfo,
		deps.services.accessEvents,
		deps.services.user,
		cfg.Server.APIKey,
		&cfg.Page,
	)

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server on port ", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal %v, initiating graceful shutdown", sig)
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
