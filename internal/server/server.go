package server

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
	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskboard/internal/config"
	"taskboard/internal/database"
	"taskboard/internal/metrics"
	"taskboard/internal/repository"
)

const dbStatsInterval = 15 * time.Second

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
	Logger *zap.Logger

	collector   *metrics.BusinessMetricsCollector
	stopDBStats chan struct{}
}

// Open connects to the configured database and runs the schema bootstrap.
func Open(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	db, err := database.New(database.Config{
		DSN:             cfg.Database.DSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	logger.Info("✅ Connected to database")

	if err := database.AutoMigrate(db, logger); err != nil {
		_ = database.Close(db)
		return nil, err
	}
	return db, nil
}

func Init(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	gin.SetMode(cfg.Server.GinMode)

	db, err := Open(cfg, logger)
	if err != nil {
		return nil, err
	}

	m := metrics.New(logger)
	if err := database.RegisterMetricsCallbacks(db, m); err != nil {
		logger.Warn("Failed to register DB metrics callbacks", zap.Error(err))
	}

	collector := metrics.NewBusinessMetricsCollector(
		repository.NewTaskRepository(db),
		repository.NewBoardRepository(db),
		m,
		logger,
	)
	if err := collector.Start(cfg.Metrics.Schedule); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("invalid metrics schedule %q: %w", cfg.Metrics.Schedule, err)
	}

	return &Server{
		Engine:      NewRouter(db, logger, m, cfg.Server.Location()),
		DB:          db,
		Config:      cfg,
		Logger:      logger,
		collector:   collector,
		stopDBStats: database.StartDBStatsCollector(db, m, dbStatsInterval),
	}, nil
}

// Run serves until SIGINT or SIGTERM, then drains in-flight requests.
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:              ":" + s.Config.Server.Port,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("🚀 Server running", zap.String("port", s.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		s.Close()
		return fmt.Errorf("❌ failed to listen: %w", err)
	case <-quit:
	}
	s.Logger.Info("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(ctx)
	s.Close()
	if err != nil {
		return fmt.Errorf("❌ server forced to shutdown: %w", err)
	}

	s.Logger.Info("✅ Server exited properly")
	return nil
}

// Close stops background collectors and releases the database pool.
func (s *Server) Close() {
	if s.collector != nil {
		s.collector.Stop()
	}
	if s.stopDBStats != nil {
		close(s.stopDBStats)
		s.stopDBStats = nil
	}
	if err := database.Close(s.DB); err != nil {
		s.Logger.Warn("Failed to close database", zap.Error(err))
	}
}
