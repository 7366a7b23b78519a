package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/mediadb-backend/internal/config"
	"github.com/ignatzorin/mediadb-backend/internal/db"
	"github.com/ignatzorin/mediadb-backend/internal/goroutine"
	httpHandlers "github.com/ignatzorin/mediadb-backend/internal/http/handlers"
	httpRouter "github.com/ignatzorin/mediadb-backend/internal/http/router"
	"github.com/ignatzorin/mediadb-backend/internal/logger"
	"github.com/ignatzorin/mediadb-backend/internal/repository"
	"github.com/ignatzorin/mediadb-backend/internal/service"
	"github.com/ignatzorin/mediadb-backend/internal/storage"
	"github.com/ignatzorin/mediadb-backend/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.L().Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	logger.Init(cfg.LogLevel)
	if cfg.IsDevelopment() {
		logger.SetTextFormatter()
	}
	log := logger.L()

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL, db.DefaultPoolOptions)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	applied, err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath)
	if err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}
	for _, name := range applied {
		log.WithField("migration", name).Info("main: миграция применена")
	}

	files, err := newFileStore(ctx, cfg)
	if err != nil {
		log.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
	}

	// Вебсокеты.
	hub := ws.NewHub(ctx)
	goroutine.SafeGo(hub.Run)

	// Репозитории.
	assetRepo := repository.NewAssetRepository(dbConn)
	categoryRepo := repository.NewCategoryRepository(dbConn)
	identityRepo := repository.NewIdentityRepository(dbConn)

	// Сервисы.
	assetService := service.NewAssetService(assetRepo, files, hub)
	categoryService := service.NewCategoryService(categoryRepo)
	seedService := service.NewSeedService(identityRepo)

	// HTTP хэндлеры.
	engine := httpRouter.SetupRouter(cfg, httpRouter.Handlers{
		Assets:     httpHandlers.NewAssetHandler(assetService),
		Categories: httpHandlers.NewCategoryHandler(categoryService),
		Health: httpHandlers.NewHealthHandler(map[string]httpHandlers.HealthCheck{
			"database": httpHandlers.DatabaseCheck(dbConn),
		}),
		WS:   httpHandlers.NewWSHandler(hub, cfg.AllowedOrigins),
		Seed: httpHandlers.NewSeedHandler(seedService),
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	goroutine.SafeGo(func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Errorf("main: ошибка остановки http сервера: %v", err)
		}
	})

	log.WithField("storage", cfg.StorageDriver).Infof("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// newFileStore выбирает хранилище файлов по STORAGE_DRIVER.
func newFileStore(ctx context.Context, cfg *config.Config) (storage.FileStore, error) {
	if cfg.StorageDriver == config.StorageDriverS3 {
		return storage.NewObjectStorage(ctx, storage.ObjectStorageConfig{
			Endpoint:    cfg.S3.Endpoint,
			AccessKey:   cfg.S3.AccessKey,
			SecretKey:   cfg.S3.SecretKey,
			Bucket:      cfg.S3.Bucket,
			UseSSL:      cfg.S3.UseSSL,
			MaxUploadMB: cfg.MaxUploadSizeMB,
		})
	}
	return storage.NewLocalStorage(cfg.MediaStoragePath, cfg.MaxUploadSizeMB)
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		logger.L().Errorf("main: ошибка закрытия базы: %v", err)
	}
}
