// backend-go/cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dhe-dashboard/backend-go/internal/api"
	"github.com/dhe-dashboard/backend-go/internal/cache"
	"github.com/dhe-dashboard/backend-go/internal/config"
	"github.com/dhe-dashboard/backend-go/internal/pipeline"
	"github.com/dhe-dashboard/backend-go/internal/service"
	"github.com/dhe-dashboard/backend-go/internal/sheets"
	"github.com/dhe-dashboard/backend-go/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider, err := newProvider(ctx, cfg.Source)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to initialize sheet provider")
	}

	snapshotCache, err := cache.NewSnapshotCache(cfg.Cache)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to initialize snapshot cache")
	}

	loader := pipeline.NewLoader(provider, pipeline.SheetsFromConfig(cfg.Source))
	dashboard := service.NewDashboardService(loader, snapshotCache)

	// Warm the snapshot before accepting traffic; a failed warm-up is not
	// fatal, the first request will retry.
	if _, err := dashboard.Snapshot(ctx); err != nil {
		logger.Log.Warn().Err(err).Msg("initial snapshot load failed")
	}

	if cfg.Source.RefreshInterval > 0 {
		go refreshLoop(ctx, dashboard, time.Duration(cfg.Source.RefreshInterval)*time.Minute)
	}

	router := api.NewRouter(dashboard, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}

// newProvider picks the Google Sheets provider when credentials are
// configured and falls back to the local workbook provider otherwise.
func newProvider(ctx context.Context, src config.SourceConfig) (sheets.Provider, error) {
	if src.CredentialsFile == "" {
		return sheets.NewXLSXProvider(map[string]string{
			src.DataSource:     src.DataWorkbook,
			src.FieldLogSource: src.FieldLogWorkbook,
		}), nil
	}

	credentials, err := os.ReadFile(src.CredentialsFile)
	if err != nil {
		return nil, err
	}

	retry := sheets.RetryPolicy{
		Attempts: src.RetryAttempts,
		Delay:    time.Duration(src.RetryDelaySecs) * time.Second,
	}
	return sheets.NewGoogleProvider(ctx, credentials, map[string]string{
		src.DataSource:     src.DataSpreadsheetID,
		src.FieldLogSource: src.FieldLogSpreadsheetID,
	}, retry)
}

// refreshLoop re-runs the pipeline on a fixed interval until shutdown.
func refreshLoop(ctx context.Context, dashboard *service.DashboardService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := dashboard.Refresh(ctx); err != nil {
				logger.Log.Error().Err(err).Msg("scheduled refresh failed")
			}
		}
	}
}
