// Package cmd assembles and runs the application.
package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/nesmy/users-api/api"
	"github.com/nesmy/users-api/api/health"
	apiuser "github.com/nesmy/users-api/api/user"
	userapp "github.com/nesmy/users-api/application/user"
	"github.com/nesmy/users-api/config"
	userdomain "github.com/nesmy/users-api/domain/user"
	"github.com/nesmy/users-api/infrastructure/persistence/mocks"
	"github.com/nesmy/users-api/infrastructure/persistence/mysql"
	"github.com/nesmy/users-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// App is the assembled application.
type App struct {
	config *config.Config
	router *api.Router
	server *http.Server
}

// NewApp builds the application from configuration: logger, persistence
// gateway (mysql or mock per database.type), validator, service, controllers
// and the HTTP server.
func NewApp(cfg *config.Config) (*App, error) {
	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env),
		zap.Int("min_age", cfg.User.MinAge))

	var userRepo userdomain.Repository
	var sqlDB *sql.DB

	switch cfg.Database.Type {
	case "mysql":
		logger.Info("Using MySQL persistence layer")
		mysqlConfig := &mysql.Config{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			Username:        cfg.Database.Username,
			Password:        cfg.Database.Password,
			Database:        cfg.Database.Database,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			LogLevel:        cfg.Log.Level,
		}

		db, err := mysqlConfig.Connect()
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
		}
		sqlDB, err = db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
		}
		if err := sqlDB.Ping(); err != nil {
			return nil, fmt.Errorf("failed to ping MySQL: %w", err)
		}

		if cfg.IsDevelopment() {
			if err := mysql.AutoMigrate(db); err != nil {
				return nil, fmt.Errorf("failed to auto migrate: %w", err)
			}
		}

		userRepo = mysql.NewUserRepository(db)
	default:
		logger.Info("Using in-memory persistence layer")
		userRepo = mocks.NewMockUserRepository()
	}

	validator := userdomain.NewValidator()
	userService := userapp.NewService(userRepo, validator, cfg.User.MinAge)

	healthController := health.NewController(cfg, sqlDB)
	userController := apiuser.NewController(userService)

	router := api.NewRouter(cfg, healthController, userController)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &App{
		config: cfg,
		router: router,
		server: server,
	}, nil
}

// Run serves HTTP until SIGINT/SIGTERM, then shuts down gracefully within
// the configured timeout.
func (a *App) Run() error {
	errChan := make(chan error, 1)
	go func() {
		logger.Info("Server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.Info("Shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	logger.Info("Server stopped")
	return logger.Sync()
}

// Engine returns the gin engine, used by tests.
func (a *App) Engine() *gin.Engine {
	return a.router.GetEngine()
}
