package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fareast-server/internal/middleware"
	"fareast-server/internal/player"
	"fareast-server/internal/port"
	"fareast-server/internal/quartermaster"
	"fareast-server/internal/server"
	"fareast-server/internal/shared/config"
	"fareast-server/internal/shared/database"
	"fareast-server/internal/shared/logger"
	"fareast-server/internal/shared/redis"
	"fareast-server/internal/trade"
	"fareast-server/internal/voyage"
)

func main() {
	if err := config.Init(); err != nil {
		slog.Error("Failed to initialize configuration", "error", err)
		os.Exit(1)
	}

	logger.Init()
	mainLogger := slog.With("component", "main")
	mainLogger.Info("Starting Far East trading server",
		"environment", config.GlobalConfig.Server.Environment,
		"port", config.GlobalConfig.Server.Port,
	)

	db, err := database.Connect()
	if err != nil {
		mainLogger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		mainLogger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	redisClient, err := redis.Connect()
	if err != nil {
		mainLogger.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	playerRepo := player.NewRepository(db)
	portRepo := port.NewRepository(db)
	tradeRepo := trade.NewRepository(db)
	voyageRepo := voyage.NewRepository(db)
	quartermasterRepo := quartermaster.NewRepository(db)

	sampler := port.NewSampler(redisClient, config.GlobalConfig.Game.PriceSampleWindow)

	playerService := player.NewService(db, playerRepo, mainLogger)
	portService := port.NewService(db, portRepo, sampler, mainLogger)
	tradeEngine := trade.NewEngine(db, tradeRepo, playerRepo, mainLogger)
	voyageEngine := voyage.NewEngine(db, voyageRepo, playerRepo, portRepo, voyage.NewDice(), mainLogger)
	quartermasterService := quartermaster.NewService(quartermasterRepo, playerRepo, mainLogger)

	mainLogger.Info("Services initialized")

	routes := server.NewRoutes(db, playerService, portService, tradeEngine, voyageEngine, quartermasterService, mainLogger)
	mux := routes.Setup()

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		RequestsPerSecond: config.GlobalConfig.RateLimit.RequestsPerSecond,
		BurstSize:         config.GlobalConfig.RateLimit.BurstSize,
		Enabled:           config.GlobalConfig.RateLimit.Enabled,
		TrustProxy:        config.GlobalConfig.Server.Environment == "production",
	})
	corsMiddleware := middleware.NewCORS()

	handler := corsMiddleware.Middleware(rateLimiter.Middleware(mux))

	srv := &http.Server{
		Addr:         ":" + config.GlobalConfig.Server.Port,
		Handler:      handler,
		ReadTimeout:  config.GlobalConfig.Server.ReadTimeout,
		WriteTimeout: config.GlobalConfig.Server.WriteTimeout,
		IdleTimeout:  config.GlobalConfig.Server.IdleTimeout,
	}

	go func() {
		mainLogger.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			mainLogger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	mainLogger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		mainLogger.Error("Graceful shutdown failed", "error", err)
	}
	mainLogger.Info("Server stopped")
}
