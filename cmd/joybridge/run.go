// Package main starts the JoyBridge server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/frudas24/joybridge/internal/app"
	"github.com/frudas24/joybridge/internal/config"
)

// run wires the application and blocks until shutdown.
func run(debug bool) error {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if debug {
		log.SetLevel(log.DebugLevel)
		log.Debug("debug logging enabled")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logStartup(cfg)

	appInstance, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := appInstance.Close(); err != nil {
			log.WithError(err).Warn("shutdown")
		}
	}()

	mux := http.NewServeMux()
	appInstance.RegisterRoutes(mux)
	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// logFatal prints and exits for startup failures.
func logFatal(err error) {
	log.WithError(err).Error("fatal")
	os.Exit(1)
}

// logStartup prints startup checks and connection info.
func logStartup(cfg config.Config) {
	log.Info("JoyBridge starting")

	envPath := filepath.Join(cfg.DataDir, ".env")
	if _, err := os.Stat(envPath); err == nil {
		log.WithField("path", envPath).Info("env check: ok")
	} else {
		log.WithField("path", envPath).Info("env check: missing")
	}

	log.WithFields(log.Fields{
		"addr":    cfg.ListenAddr,
		"surface": [2]int{cfg.RemoteWidth, cfg.RemoteHeight},
		"profile": cfg.ProfilePath,
	}).Info("listening")
}
