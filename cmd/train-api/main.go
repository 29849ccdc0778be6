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
	"github.com/ngmaloney/train-terminal/internal/api"
	"github.com/ngmaloney/train-terminal/internal/config"
	"github.com/ngmaloney/train-terminal/internal/database"
	"github.com/ngmaloney/train-terminal/internal/favourites"
	"github.com/ngmaloney/train-terminal/internal/history"
	"github.com/ngmaloney/train-terminal/internal/journeys"
	"github.com/ngmaloney/train-terminal/internal/logging"
	"github.com/ngmaloney/train-terminal/internal/stations"
	"github.com/ngmaloney/train-terminal/internal/transportapi"
)

func main() {
	cfg := config.Load()
	logger := logging.NewJSON(os.Stdout, cfg.Server.LogLevel)

	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	logger.Info("Opening database...")
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	needed, err := stations.NeedsProvisioning(db)
	if err != nil {
		logger.Fatalf("Failed to inspect station table: %v", err)
	}
	if needed {
		logger.Info("Provisioning station directory...")
		if err := stations.Provision(ctx, db, cfg.StationsSource(), nil); err != nil {
			logger.Fatalf("Failed to provision stations: %v", err)
		}
	}

	directory := stations.NewDirectory(stations.NewRepository(db))
	if err := directory.Load(ctx); err != nil {
		logger.Fatalf("Failed to load stations: %v", err)
	}
	cancel()
	logger.WithField("stations", len(directory.All())).Info("Station directory ready")

	srv := api.NewServer(api.Options{
		Client:     transportapi.New(cfg.ClientOptions(), cfg.TransportAPI.UseMock),
		Directory:  directory,
		Journeys:   journeys.NewService(journeys.NewRepository(db), time.Now),
		Favourites: favourites.NewRepository(db, time.Now),
		History:    history.NewRepository(db, time.Now),
		DB:         db,
		Logger:     logger,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      srv.Router(cfg.CORS),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}
