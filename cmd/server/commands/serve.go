package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sednex/community-backend/internal/api/routes"
	"github.com/sednex/community-backend/internal/config"
	"github.com/sednex/community-backend/internal/database"
	"github.com/sednex/community-backend/internal/services"
	"github.com/sednex/community-backend/pkg/logger"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	cfg := loadConfig()

	db, err := database.Init(cfg.DatabaseURL, debugSQL)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}

	verifier, err := newVerifier(cfg)
	if err != nil {
		return err
	}
	images, err := newImageStore(cfg)
	if err != nil {
		return err
	}

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	routes.SetupRoutes(router, db, cfg, verifier, images)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting on port " + cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}

func newVerifier(cfg *config.Config) (services.IdentityVerifier, error) {
	switch cfg.AuthMode {
	case config.AuthModeFirebase:
		if cfg.FirebaseProjectID == "" {
			return nil, errors.New("FIREBASE_PROJECT_ID is required when AUTH_MODE=firebase")
		}
		return services.NewFirebaseVerifier(cfg.FirebaseProjectID, cfg.FirebaseJWKSURL), nil
	case config.AuthModeLocal:
		if cfg.IsProduction() {
			logger.Warn("AUTH_MODE=local is meant for development only")
		}
		return services.NewLocalVerifier(cfg.AuthLocalSecret, cfg.AuthLocalIssuer), nil
	default:
		return nil, fmt.Errorf("unknown AUTH_MODE %q", cfg.AuthMode)
	}
}

func newImageStore(cfg *config.Config) (services.ImageStore, error) {
	if cfg.S3BucketName == "" {
		logger.WithFields(logger.Fields{"dir": cfg.UploadDir}).Info("Storing uploads on local disk")
		return services.NewLocalStorage(cfg.UploadDir, cfg.PublicBaseURL), nil
	}
	store, err := services.NewS3Service(cfg.S3Region, cfg.S3BucketName, cfg.S3AccessKey, cfg.S3SecretKey)
	if err != nil {
		return nil, fmt.Errorf("initialize s3: %w", err)
	}
	return store, nil
}
