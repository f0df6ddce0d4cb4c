package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/acme/autocert"

	"napoleon/internal/config"
	"napoleon/internal/server"
)

func main() {
	cfg := config.Load()
	zerolog.SetGlobalLevel(cfg.LogLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	server.New(cfg).Register(e)

	go func() {
		var err error
		if cfg.TLSDomain != "" {
			e.AutoTLSManager.HostPolicy = autocert.HostWhitelist(cfg.TLSDomain)
			e.AutoTLSManager.Cache = autocert.DirCache(cfg.CertCache)
			log.Info().Str("domain", cfg.TLSDomain).Msg("listening with automatic TLS")
			err = e.StartAutoTLS(cfg.Addr)
		} else {
			log.Info().Str("addr", cfg.Addr).Msg("listening")
			err = e.Start(cfg.Addr)
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdown); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
