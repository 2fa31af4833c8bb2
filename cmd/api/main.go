package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	balanceUseCase "github.com/oakmall/consignment-ledger/internal/domain/usecase/balance"
	ledgerUseCase "github.com/oakmall/consignment-ledger/internal/domain/usecase/ledger"
	reportUseCase "github.com/oakmall/consignment-ledger/internal/domain/usecase/report"
	vendorUseCase "github.com/oakmall/consignment-ledger/internal/domain/usecase/vendor"

	"github.com/oakmall/consignment-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/oakmall/consignment-ledger/internal/infrastructure/adapter/api/routes"
	"github.com/oakmall/consignment-ledger/internal/infrastructure/adapter/database"
	"github.com/oakmall/consignment-ledger/internal/infrastructure/adapter/database/migration"
	"github.com/oakmall/consignment-ledger/internal/infrastructure/adapter/logger"
	timeProvider "github.com/oakmall/consignment-ledger/internal/infrastructure/adapter/time"
	"github.com/oakmall/consignment-ledger/internal/infrastructure/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)
	defer func() { _ = appLogger.Flush() }()

	// Setup database configuration
	dbConfig := &database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            database.ParsePort(cfg.Database.Port),
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		LogLevel:        cfg.Logger.Level,
	}

	// Initialize time provider
	tp := timeProvider.NewRealTimeProvider()

	// Connect to the database
	conn, err := database.NewConnection(dbConfig)
	if err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() { _ = conn.Close() }()

	// Unit of work over the shared connection
	uow := database.NewUnitOfWork(conn.DB, appLogger, tp)

	// Run migrations
	migrationMgr := migration.NewMigrationManager(conn.DB, appLogger, tp)
	if err := migrationMgr.MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Seed the settings the ledger cannot run without
	ctx := context.Background()
	if err := migration.SeedDefaultSettings(ctx, uow.GetSettingsRepository(ctx)); err != nil {
		appLogger.Error("Failed to seed default settings", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Initialize use cases
	ledgerService := ledgerUseCase.NewService(uow, tp, appLogger)
	balanceService := balanceUseCase.NewService(uow, tp, appLogger)
	reportService := reportUseCase.NewService(uow, tp, appLogger)
	vendorService := vendorUseCase.NewService(uow, tp, appLogger)

	// Initialize API handlers
	transactionHandler := handler.NewTransactionHandler(ledgerService, appLogger)
	balanceHandler := handler.NewBalanceHandler(balanceService, appLogger)
	vendorHandler := handler.NewVendorHandler(vendorService, balanceService, reportService, appLogger)
	settingsHandler := handler.NewSettingsHandler(uow, appLogger)

	// Initialize Gin router
	router := gin.New()

	routes.SetupMiddlewares(router, appLogger)
	routes.SetupRoutes(router, transactionHandler, balanceHandler, vendorHandler, settingsHandler)

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	// A sqlite driver only needs a database path; postgres needs the full set
	if cfg.Database.Driver != "sqlite" {
		if cfg.Database.Host == "" {
			missingConfigs = append(missingConfigs, "database.host (or CL_DB_HOST environment variable)")
		}
		if cfg.Database.Username == "" {
			missingConfigs = append(missingConfigs, "database.username (or CL_DB_USERNAME environment variable)")
		}
		if cfg.Database.Password == "" {
			missingConfigs = append(missingConfigs, "database.password (or CL_DB_PASSWORD environment variable)")
		}
	}
	if cfg.Database.Database == "" {
		missingConfigs = append(missingConfigs, "database.database (or CL_DB_NAME environment variable)")
	}
	if cfg.Database.QueryTimeout == 0 {
		missingConfigs = append(missingConfigs, "database.queryTimeout")
	}

	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	return nil
}
