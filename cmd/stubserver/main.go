// Command stubserver runs the in-memory LearnTrack backend for local development.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mhAkoum/LearnTrack-sub000/internal/config"
	"github.com/mhAkoum/LearnTrack-sub000/internal/stubapi"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		// logger not configured yet
		bootLog := config.NewLogger(config.LogConfig{}, os.Stderr)
		bootLog.Fatal().Err(err).Msg("could not load config")
	}
	log := config.NewLogger(cfg.Log, os.Stderr)

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	stub := stubapi.New(stubapi.Config{
		JWTSecret:     cfg.Stub.JWTSecret,
		JWTExpiration: cfg.Stub.JWTExpiration,
		RequireAuth:   cfg.Stub.RequireAuth,
		Logger:        log,
	})
	if cfg.Stub.Seed {
		if err := stub.SeedDemo(); err != nil {
			log.Fatal().Err(err).Msg("could not seed demo data")
		}
		log.Info().Str("email", stubapi.DemoAdminEmail).Msg("demo data loaded")
	}

	server := &http.Server{
		Addr:         cfg.Stub.Address,
		Handler:      stub.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("address", cfg.Stub.Address).Bool("require_auth", cfg.Stub.RequireAuth).Msg("stub backend listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exiting")
}
