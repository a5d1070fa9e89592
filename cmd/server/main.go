package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"exercise-tracker/internal/config"
	apphttp "exercise-tracker/internal/http"
	"exercise-tracker/internal/observability"
	"exercise-tracker/internal/repository/sqlite"
	"exercise-tracker/internal/service"
	"exercise-tracker/internal/storage"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	configureLogger(logger, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()
	logger.Infof("connected to database %s", cfg.Database.Path)

	userRepo := sqlite.NewUserRepository(db)
	exerciseRepo := sqlite.NewExerciseRepository(db)

	// the listener must not open before the tables exist
	if err := sqlite.InitSchema(ctx, userRepo, exerciseRepo); err != nil {
		logger.Fatalf("create tables: %v", err)
	}
	logger.Info("created tables")

	userService := service.NewUserService(userRepo)
	exerciseService := service.NewExerciseService(userService, exerciseRepo)

	backup, err := buildBackup(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup backup: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(userService, exerciseService, logger, observability.NewMetrics())
	handler.RegisterRoutes(router)
	handler.RegisterStatic(router, cfg.Static.PublicDir, cfg.Static.ViewsDir)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	if backup != nil {
		backupCtx, cancelBackup := context.WithTimeout(context.Background(), time.Minute)
		if _, err := backup.Run(backupCtx, cfg.Database.Path); err != nil {
			logger.Warnf("database backup: %v", err)
		}
		cancelBackup()
	}

	logger.Info("bye")
}

func configureLogger(logger *logrus.Logger, cfg config.Config) {
	if cfg.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.Warnf("unknown log level %q, using info", cfg.Log.Level)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
}

// buildBackup returns nil when no bucket is configured.
func buildBackup(ctx context.Context, cfg config.Config, logger *logrus.Logger) (*storage.Backup, error) {
	if cfg.Backup.Bucket == "" {
		return nil, nil
	}

	store, err := storage.NewS3ServiceFromOptions(ctx, storage.S3Options{
		Region:   cfg.Backup.Region,
		Endpoint: cfg.Backup.Endpoint,
		Profile:  cfg.AWS.Profile,
	})
	if err != nil {
		return nil, err
	}
	logger.Infof("database backups go to s3 bucket %s (region %s)", cfg.Backup.Bucket, cfg.Backup.Region)
	return storage.NewBackup(store, storage.UploadOptions{
		Bucket:    cfg.Backup.Bucket,
		KeyPrefix: cfg.Backup.KeyPrefix,
	}, logger), nil
}
