package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder0404/leetcode-Tracker/internal/config"
	profiledomain "github.com/coder0404/leetcode-Tracker/internal/domain/profile"
	"github.com/coder0404/leetcode-Tracker/internal/http/handlers"
	"github.com/coder0404/leetcode-Tracker/internal/leetcode"
	"github.com/coder0404/leetcode-Tracker/internal/observability"
	"github.com/coder0404/leetcode-Tracker/internal/server"
	"github.com/coder0404/leetcode-Tracker/internal/store"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := observability.NewLogger(cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	kv := store.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := kv.Ping(ctx); err != nil {
		logger.Error("failed to connect redis", "addr", cfg.RedisAddr, "err", err)
		os.Exit(1)
	}
	defer kv.Close()

	fetcher, err := leetcode.NewClient(cfg.LeetCodeGraphQLURL, cfg.UpstreamTimeout)
	if err != nil {
		logger.Error("failed to build leetcode client", "err", err)
		os.Exit(1)
	}

	profileService := profiledomain.NewService(kv, fetcher, profiledomain.NewBaselineTracker(kv), cfg.CacheTTL, logger)
	profileHandler := handlers.NewProfileHandler(profileService, cfg.TrackedUsernames)

	r := server.NewRouter(cfg, logger, server.Dependencies{
		Pinger:         kv,
		ProfileHandler: profileHandler,
	})
	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("api server starting", "addr", cfg.Addr())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = httpServer.Shutdown(shutdownCtx)
	logger.Info("api server stopped")
}
