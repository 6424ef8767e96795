package app

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"newsfeed/internal/adapter/headlines"
	"newsfeed/internal/config"
	"newsfeed/internal/logger"
	"newsfeed/internal/migrations"
	server "newsfeed/internal/transport/http"
	"newsfeed/internal/usecase"
	"newsfeed/internal/worker"
	"newsfeed/storage"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// App представляет основное приложение сервиса персональной ленты.
// Координирует работу всех компонентов: HTTP-сервера, воркера прогрева
// кэша, хранилища предпочтений и системы логирования. Обеспечивает
// graceful startup и shutdown.
type App struct {
	config   *config.Config
	logger   *slog.Logger
	server   *http.Server
	worker   *worker.Worker
	store    *storage.SQLitePreferenceDB
	stopChan chan os.Signal
	wg       sync.WaitGroup
}

// New создает и инициализирует новый экземпляр приложения.
// Выполняет настройку логгера, открытие базы предпочтений, применение
// миграций и инициализацию всех зависимостей конвейера сборки ленты.
// Возвращает ошибку в случае сбоя любой из инициализационных процедур.
func New(cfg *config.Config) (*App, error) {
	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}
	slog.SetDefault(appLogger)
	db, err := storage.OpenDB(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open preference db: %w", err)
	}
	if err := migrations.Apply(context.Background(), appLogger, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations failed: %w", err)
	}
	prefStore := storage.NewSQLitePreferenceDB(db, appLogger)

	headlineClient := headlines.NewClient(cfg.Source, appLogger)

	aggregator := usecase.NewAggregator(headlineClient, appLogger)

	sanitizer := usecase.NewSanitizer(cfg.App.MaxBatchSize)

	cacheTTL, err := time.ParseDuration(cfg.App.CacheTTL)
	if err != nil {
		return nil, fmt.Errorf("bad init app: %w", err)
	}
	feedService := usecase.NewFeedService(aggregator, sanitizer, prefStore, cacheTTL, appLogger)

	handler := server.NewHandler(appLogger, feedService)

	router := server.NewServer(appLogger, handler)

	refreshInterval, err := time.ParseDuration(cfg.App.RefreshInterval)
	if err != nil {
		return nil, fmt.Errorf("bad init app: %w", err)
	}

	warmupWorker := worker.New(feedService, refreshInterval, appLogger)

	httpServer := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}
	return &App{
		config:   cfg,
		logger:   appLogger,
		server:   httpServer,
		worker:   warmupWorker,
		store:    prefStore,
		stopChan: make(chan os.Signal, 1),
	}, nil
}

// Run запускает основное приложение сервиса ленты.
// Стартует воркер прогрева кэша и HTTP-сервер, обрабатывает сигналы
// завершения работы. Метод блокируется до получения сигнала завершения.
// Возвращает ошибку в случае неудачи при запуске сервера.
func (a *App) Run() error {
	a.logger.Info("Starting personalized feed service",
		slog.String("component", "app"),
		slog.String("address", a.server.Addr),
		slog.String("warmup_interval", a.worker.GetInterval().String()),
	)
	a.worker.Start()
	listener, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	defer listener.Close()
	a.logger.Info("HTTP server ready",
		slog.String("component", "server"),
		slog.String("address", listener.Addr().String()),
	)
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			a.logger.Error("HTTP server failed", slog.Any("error", err))
		}
	}()
	signal.Notify(a.stopChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-a.stopChan
	a.logger.Info("Shutdown signal received",
		slog.String("component", "app"),
		slog.String("signal", sig.String()),
	)
	return a.Shutdown()
}

// Shutdown выполняет graceful shutdown приложения.
// Останавливает воркер прогрева, завершает HTTP-сервер, закрывает базу
// предпочтений и ожидает завершения всех горутин. Использует таймаут
// 10 секунд для завершения HTTP-сервера.
func (a *App) Shutdown() error {
	a.logger.Info("Starting graceful shutdown")
	if a.worker != nil {
		a.worker.Stop()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("HTTP server shutdown failed", slog.Any("error", err))
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Error("Failed to close preference storage", slog.Any("error", err))
		}
	}
	a.wg.Wait()
	a.logger.Info("Application stopped gracefully")
	return nil
}
