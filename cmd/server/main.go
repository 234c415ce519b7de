package main

import (
	"context"
	"ctchen222/Power-Tic-Tac-Toe/internal/api/controller"
	apirepository "ctchen222/Power-Tic-Tac-Toe/internal/api/repository"
	"ctchen222/Power-Tic-Tac-Toe/internal/api/service"
	"ctchen222/Power-Tic-Tac-Toe/internal/config"
	"ctchen222/Power-Tic-Tac-Toe/internal/db"
	"ctchen222/Power-Tic-Tac-Toe/internal/hub"
	"ctchen222/Power-Tic-Tac-Toe/internal/logger"
	"ctchen222/Power-Tic-Tac-Toe/internal/repository"
	"ctchen222/Power-Tic-Tac-Toe/internal/room"
	"ctchen222/Power-Tic-Tac-Toe/internal/server"
	"ctchen222/Power-Tic-Tac-Toe/internal/telemetry"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	cfg := config.MustLoad(os.Getenv("CONFIG_PATH"))
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.InitOtel(ctx, cfg.Telemetry)
	if err != nil {
		slog.Error("failed to initialize telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			slog.Error("Error shutting down telemetry", "error", err)
		}
	}()

	rdb, err := db.NewRedisClient(ctx, cfg.Redis.Addr)
	if err != nil {
		slog.Error("failed to initialize redis", "error", err)
		os.Exit(1)
	}
	defer rdb.Close()

	sqlDB, err := db.Open(cfg.SQLite.Path)
	if err != nil {
		slog.Error("failed to open sqlite db", "error", err)
		os.Exit(1)
	}
	defer sqlDB.Close()
	if err := db.InitializeDB(ctx, sqlDB); err != nil {
		slog.Error("failed to initialize sqlite db", "error", err)
		os.Exit(1)
	}

	sessionRepo := repository.NewSessionRepository(rdb, cfg.Redis.SessionTTL)
	playerRepo := repository.NewPlayerRepository(rdb, cfg.Redis.SessionTTL)
	userRepo := apirepository.NewUserRepository(sqlDB)

	userService := service.NewUserService(userRepo, cfg.Auth)

	userController := controller.NewUserController(userService)
	sessionController := controller.NewSessionController(sessionRepo)

	h := hub.NewHub(sessionRepo, playerRepo, room.Settings{
		OpponentDelay:  cfg.Game.OpponentDelay,
		Heartbeat:      cfg.Game.Heartbeat,
		ReconnectGrace: cfg.Game.ReconnectGrace,
	})
	go h.Run(ctx)

	srv := server.NewServer(h, userService, userController, sessionController)
	httpServer := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: srv.Engine(),
	}

	go func() {
		slog.Info("http server started", "addr", cfg.HTTP.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("ListenAndServe", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	<-h.Done()

	slog.Info("Server exiting")
}
