package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campus-dashboard/internal/adapters/auth/jwtverifier"
	"campus-dashboard/internal/adapters/campusapi"
	"campus-dashboard/internal/adapters/storage/memory"
	"campus-dashboard/internal/adapters/storage/postgres"
	"campus-dashboard/internal/config"
	"campus-dashboard/internal/platform/logger"
	"campus-dashboard/internal/ports/auth"
	"campus-dashboard/internal/ports/campus"
	"campus-dashboard/internal/router"

	"go.uber.org/zap"
)

// @title Campus Dashboard API
// @version 1.0
// @description Estadísticas del dashboard de faculty (cursos, anuncios, eventos y alumnos propios).
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, db, err := buildSource(ctx, cfg)
	if err != nil {
		log.Fatal("campus source", zap.String("source", string(cfg.Source())), zap.Error(err))
	}
	if db != nil {
		defer db.Close()
	}

	var verifier auth.AuthVerifier // nil => modo dev
	if cfg.AuthEnabled() {
		verifier = jwtverifier.New(jwtverifier.Config{
			Secret:   cfg.JWTSecret,
			Issuer:   cfg.JWTIssuer,
			Audience: cfg.JWTAudience,
		})
	} else {
		log.Warn("JWT_SECRET not set, accepting X-Debug-User-ID / X-Debug-Username headers")
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		Source:       src,
		Logger:       log,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("starting server", zap.String("addr", cfg.Addr()), zap.String("source", string(cfg.Source())))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server error", zap.Error(err))
	}
	log.Info("server stopped")
}

// buildSource elige de dónde salen las colecciones. Devuelve la DB para cerrarla al salir.
func buildSource(ctx context.Context, cfg *config.Config) (campus.Source, *sql.DB, error) {
	switch cfg.Source() {
	case config.SourceCampusAPI:
		c, err := campusapi.NewClient(campusapi.Config{
			BaseURL:      cfg.CampusAPIURL,
			APIKey:       cfg.CampusAPIKey,
			APIKeyHeader: cfg.CampusAPIKeyHeader,
			Timeout:      cfg.APITimeout(),
		})
		if err != nil {
			return nil, nil, err
		}
		return c, nil, nil
	case config.SourcePostgres:
		db, err := postgres.Open(ctx, cfg.DBDSN)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewSource(db), db, nil
	default:
		return memory.NewDemoSource(), nil, nil
	}
}
