package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/config"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/api/handler"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/api/router"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/repository"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/repository/memory"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/service"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/pkg/database"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/pkg/jwt"
	applogger "github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/pkg/logger"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/pkg/metrics"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default ./config/config.yaml)")
	flag.Parse()

	// 1. config
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	// 2. logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting server",
		zap.Int("port", cfg.Server.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("log_level", cfg.Log.Level),
	)

	loc, err := time.LoadLocation(cfg.Database.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, exports fall back to UTC", zap.String("timezone", cfg.Database.Timezone), zap.Error(err))
		loc = time.UTC
	}

	// 3. storage
	repo, db := openRepository(cfg, logger)

	// 4. Redis is optional: without it logout is client-side only
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, token blacklist and login rate limit disabled", zap.Error(err))
		rdb = nil
	}

	// 5. wiring: repository -> service -> handler
	jwtMgr := jwt.NewManager(&cfg.Auth)
	var blacklist service.TokenBlacklist
	if rdb != nil {
		blacklist = rdb
	}
	svc := service.NewService(repo, jwtMgr, blacklist, loc, logger)

	bootCtx, bootCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := svc.Teacher.EnsureAdmin(bootCtx, cfg.Auth.BootstrapEmail, cfg.Auth.BootstrapPassword); err != nil {
		logger.Error("bootstrap admin failed", zap.Error(err))
	}
	bootCancel()

	engine := router.Setup(cfg, handler.NewHandler(svc), jwtMgr, rdb, metrics.New(), logger)

	// 6. serve with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	if db != nil {
		if sqlDB, _ := db.DB(); sqlDB != nil {
			sqlDB.Close()
		}
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}

// openRepository returns the configured storage. db is nil for the memory
// driver.
func openRepository(cfg *config.Config, logger *zap.Logger) (*repository.Repository, *gorm.DB) {
	if cfg.Database.Driver == "memory" {
		logger.Warn("using in-memory storage, data is lost on exit")
		return memory.NewRepository(), nil
	}

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	logger.Info("database connected")

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("get sql.DB failed", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	return repository.NewRepository(db), db
}
