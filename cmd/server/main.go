package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"residual-hub.backend/internal/config"
	"residual-hub.backend/internal/infrastructure/jobs"
	"residual-hub.backend/internal/infrastructure/repositories"
	"residual-hub.backend/internal/interfaces/http/handlers"
	"residual-hub.backend/internal/interfaces/http/middleware"
	"residual-hub.backend/internal/usecases"
	"residual-hub.backend/pkg/logger"
	"residual-hub.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	// Load the assignment rule tables up front so a bad split
	// configuration fails the boot instead of the first resolution
	rules, err := usecases.LoadRuleConfig(
		cfg.Pipeline.HighRevenueThreshold,
		cfg.Pipeline.FlaggedProcessor,
		cfg.Pipeline.CoOwnerIndicator,
	)
	if err != nil {
		return fmt.Errorf("failed to load rule configuration: %w", err)
	}

	// Initialize repositories
	merchantRepo := repositories.NewMerchantRepository(db)
	recordRepo := repositories.NewProcessorRecordRepository(db)
	roleRepo := repositories.NewRoleRepository(db)
	assignmentRepo := repositories.NewAssignmentRepository(db)
	issueRepo := repositories.NewAuditIssueRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Initialize usecases
	uploadUsecase := usecases.NewUploadUsecase(recordRepo, merchantRepo, uow)
	assignmentUsecase := usecases.NewAssignmentUsecase(recordRepo, roleRepo, assignmentRepo, uow, rules)
	auditUsecase := usecases.NewAuditUsecase(recordRepo, assignmentRepo, merchantRepo, issueRepo, uow)
	metricsUsecase := usecases.NewMetricsUsecase(recordRepo, cfg.Pipeline.ConcentrationTopN)

	reportCache := redis.NewReportCache(cfg.Pipeline.ReportCacheTTL)

	// Initialize handlers
	uploadHandler := handlers.NewUploadHandler(uploadUsecase)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentUsecase, assignmentRepo)
	auditHandler := handlers.NewAuditHandler(auditUsecase)
	reportHandler := handlers.NewReportHandler(metricsUsecase, reportCache)
	merchantHandler := handlers.NewMerchantHandler(merchantRepo)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	refreshJob := jobs.NewReportRefreshJob(metricsUsecase, reportCache, cfg.Pipeline.MetricsRefreshInterval)
	go refreshJob.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		uploadHandler:     uploadHandler,
		assignmentHandler: assignmentHandler,
		auditHandler:      auditHandler,
		reportHandler:     reportHandler,
		merchantHandler:   merchantHandler,
	})

	// Print all registered routes for debugging
	log.Println("📋 Registered Routes:")
	for _, route := range r.Routes() {
		log.Printf("   %s %s", route.Method, route.Path)
	}

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		refreshJob.Stop()
		cancel()
	}()

	// Start server
	log.Printf("🚀 Residual Hub Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
