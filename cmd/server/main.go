package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/aditidalvi3/jamsync-backend/internal/adapters/http"
	"github.com/aditidalvi3/jamsync-backend/internal/adapters/spotify"
	"github.com/aditidalvi3/jamsync-backend/internal/adapters/ws"
	"github.com/aditidalvi3/jamsync-backend/internal/app"
	"github.com/aditidalvi3/jamsync-backend/internal/config"
	"github.com/aditidalvi3/jamsync-backend/internal/core"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	// Human-friendly output for terminal; in production you may want JSON only.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	registry := core.NewRegistry()
	hub := ws.NewHub(registry)
	eventRouter := app.NewRouter(registry, hub, hub)
	sp := spotify.New(cfg.Spotify)
	wsCtl := ws.NewController(hub, eventRouter, cfg)

	r := router.SetupRouter(cfg, router.Deps{
		Registry: registry,
		Router:   eventRouter,
		Spotify:  sp,
		WS:       wsCtl,
	})
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("jamsync server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
