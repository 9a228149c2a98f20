// Package main provides the main entry point for the FitFlow backend
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aztec-interiors/fitflow/app/handlers"
	"github.com/aztec-interiors/fitflow/app/middleware"
	"github.com/aztec-interiors/fitflow/app/router"
	"github.com/aztec-interiors/fitflow/app/scheduler"
	"github.com/aztec-interiors/fitflow/app/services"
	businessflow "github.com/aztec-interiors/fitflow/business_flow"
	"github.com/aztec-interiors/fitflow/config"
	_ "github.com/aztec-interiors/fitflow/docs"
	"github.com/aztec-interiors/fitflow/models"
	"github.com/aztec-interiors/fitflow/repository"
	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Application represents the main application structure
type Application struct {
	router    *router.FiberRouter
	config    *config.ProductionConfig
	server    *fiber.App
	stopFuncs []func()
}

func main() {
	log.Println("Starting FitFlow application...")

	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg.Logging)

	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	app.router.SetupRoutes()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Server starting on %s", address)

		if err := app.server.Listen(address); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-sigChan
	log.Println("Shutting down gracefully...")

	// Stop background workers
	for _, fn := range app.stopFuncs {
		fn()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// setupLogging routes the standard logger to a size-rotated file when configured
func setupLogging(cfg config.LoggingConfig) {
	switch cfg.Output {
	case "file":
		log.SetOutput(rotatingLogWriter(cfg))
	case "both":
		log.SetOutput(io.MultiWriter(os.Stdout, rotatingLogWriter(cfg)))
	}
}

func rotatingLogWriter(cfg config.LoggingConfig) io.Writer {
	return &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("Database connection established with %d max open connections, %d max idle connections",
		cfg.MaxOpenConns, cfg.MaxIdleConns)

	return db, nil
}

// migrateDatabase brings the schema up to date
func migrateDatabase(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.Fitter{},
		&models.Salesperson{},
		&models.Brand{},
		&models.ApplianceCategory{},
		&models.Product{},
		&models.Customer{},
		&models.CustomerFormData{},
		&models.FormSubmission{},
		&models.Job{},
		&models.JobDocument{},
		&models.JobChecklist{},
		&models.JobChecklistItem{},
		&models.JobScheduleItem{},
		&models.JobRoom{},
		&models.RoomAppliance{},
		&models.JobFormLink{},
		&models.JobNote{},
		&models.JobInvoice{},
		&models.Quotation{},
		&models.QuotationItem{},
		&models.ProductQuoteItem{},
	)
}

// initializeCache initializes the Redis client and verifies connectivity
func initializeCache(cfg config.CacheConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opt.DB = cfg.RedisDB

	rc := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Printf("Redis connection established to %s (db=%d)", cfg.RedisURL, cfg.RedisDB)
	return rc, nil
}

// ensureExportDirectories creates the scan upload and export output directories
func ensureExportDirectories(cfg config.ExportConfig) error {
	for _, dir := range []string{cfg.UploadDir, cfg.PDFDir, cfg.ExcelDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// initializeApplication initializes the main application components
func initializeApplication(cfg *config.ProductionConfig) (*Application, error) {
	var stopFuncs []func()

	db, err := initializeDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := migrateDatabase(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	rc, err := initializeCache(cfg.Cache)
	if err != nil {
		return nil, err
	}

	if err := ensureExportDirectories(cfg.Export); err != nil {
		return nil, err
	}

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository(db)
	formDataRepo := repository.NewCustomerFormDataRepository(db)
	submissionRepo := repository.NewFormSubmissionRepository(db)
	jobRepo := repository.NewJobRepository(db)
	quotationRepo := repository.NewQuotationRepository(db)
	userRepo := repository.NewUserRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	fitterRepo := repository.NewFitterRepository(db)
	salespersonRepo := repository.NewSalespersonRepository(db)
	productRepo := repository.NewProductRepository(db)

	// Initialize services
	tokenService, err := services.NewTokenService(
		cfg.JWT.AccessTokenTTL,
		cfg.JWT.RefreshTokenTTL,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
		cfg.JWT.UseRSAKeys,
		cfg.JWT.PrivateKey,
		cfg.JWT.PublicKey,
		cfg.JWT.SecretKey,
		rc,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	log.Printf("Token service initialized with issuer: %s, audience: %s", cfg.JWT.Issuer, cfg.JWT.Audience)

	captchaService, err := services.NewCaptchaServiceRotate(cfg.Captcha.TTL, cfg.Captcha.AnglePadding, cfg.Captcha.ImageSizePx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize captcha service: %w", err)
	}

	formTokenService := services.NewFormTokenService(cfg.FormToken.TTL, cfg.FormToken.Length)
	visionService := services.NewVisionService(&cfg.Vision)
	formatterService := services.NewFormatterService(&cfg.OpenAI)
	pdfExporter := services.NewPDFExporter(cfg.Export.PDFDir)
	excelExporter := services.NewExcelExporter(cfg.Export.ExcelDir)

	// Initialize flows
	customerFlow := businessflow.NewCustomerFlow(customerRepo, db)
	jobFlow := businessflow.NewJobFlow(jobRepo, customerRepo, db)
	quotationFlow := businessflow.NewQuotationFlow(quotationRepo, customerRepo, db)
	formFlow := businessflow.NewFormFlow(formTokenService, customerRepo, formDataRepo, submissionRepo, jobRepo, db)
	uploadFlow := businessflow.NewUploadFlow(visionService, formatterService, pdfExporter, excelExporter, submissionRepo, &cfg.Export)
	authFlow := businessflow.NewAuthFlow(userRepo, tokenService, captchaService)
	catalogFlow := businessflow.NewCatalogFlow(teamRepo, fitterRepo, salespersonRepo, productRepo)

	// Initialize handlers
	h := router.Handlers{
		Auth:      handlers.NewAuthHandler(authFlow),
		Customer:  handlers.NewCustomerHandler(customerFlow),
		Job:       handlers.NewJobHandler(jobFlow),
		Quotation: handlers.NewQuotationHandler(quotationFlow),
		Form:      handlers.NewFormHandler(formFlow),
		Upload:    handlers.NewUploadHandler(uploadFlow),
		Catalog:   handlers.NewCatalogHandler(catalogFlow),
	}

	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	appRouter := router.NewFiberRouter(h, authMiddleware, cfg)

	// Background sweep of expired form tokens
	reaper := scheduler.NewTokenReaper(formTokenService, log.Default(), cfg.FormToken.CleanupInterval)
	stopFuncs = append(stopFuncs, reaper.Start(context.Background()))

	fiberRouter := appRouter.(*router.FiberRouter)
	application := &Application{
		router:    fiberRouter,
		config:    cfg,
		server:    fiberRouter.GetApp(),
		stopFuncs: stopFuncs,
	}

	return application, nil
}
