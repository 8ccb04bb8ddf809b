package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Havertz69/rental-app/internal/config"
	"github.com/Havertz69/rental-app/internal/database"
	"github.com/Havertz69/rental-app/internal/handlers"
	"github.com/Havertz69/rental-app/internal/logger"
	"github.com/Havertz69/rental-app/internal/middleware"
	"github.com/Havertz69/rental-app/internal/services"
)

const (
	shutdownTimeout   = 30 * time.Second
	readHeaderTimeout = 10 * time.Second
)

func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewWithOptions(logger.Options{Env: cfg.Server.Env, Level: cfg.Server.LogLevel})
	log.Info("Starting rental API", map[string]interface{}{
		"version":     handlers.APIVersion,
		"environment": cfg.Server.Env,
		"port":        cfg.Server.Port,
	})

	ctx := context.Background()
	db, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", err, map[string]interface{}{
			"host": cfg.Database.Host,
			"port": cfg.Database.Port,
			"name": cfg.Database.Name,
		})
	}
	defer db.Close()

	log.Info("Database connection established", map[string]interface{}{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Name,
		"pool_min": cfg.Database.PoolMin,
		"pool_max": cfg.Database.PoolMax,
	})

	if err := database.Migrate(ctx, db.Pool, log); err != nil {
		log.Fatal("Failed to apply migrations", err, nil)
	}

	repos := services.NewRepositories(db.Pool)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handlers.NewRouter(handlers.RouterConfig{
		Log:          log,
		DB:           db,
		Env:          cfg.Server.Env,
		CORSOrigins:  cfg.CORS.Origins,
		MatchTopK:    cfg.Scoring.MatchTopK,
		TokenLimiter: middleware.NewIPRateLimiter(cfg.Auth.RateLimit, cfg.Auth.RateBurst),
		AI:           services.NewAIService(repos, log),
		Dashboard:    services.NewDashboardService(repos, log, nil),
		Auth:         services.NewAuthService(repos, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, log),
		Properties:   services.NewPropertyService(repos, log),
		Tenants:      services.NewTenantService(repos, log),
		Payments:     services.NewPaymentService(repos, log),
		Maintenance:  services.NewMaintenanceService(repos, log),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	// Wait for interrupt signal (SIGINT or SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
}
