package router

import (
	"net/http"

	_ "campus-dashboard/docs"
	mem "campus-dashboard/internal/adapters/storage/memory"
	"campus-dashboard/internal/domain/stats"
	"campus-dashboard/internal/middleware"
	"campus-dashboard/internal/ports/auth"
	"campus-dashboard/internal/ports/campus"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Fuente de las colecciones (campus API, Postgres o memoria; la arma cmd/api).
	// Si es nil, datos demo en memoria.
	Source campus.Source

	Logger *zap.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier, log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	src := opts.Source
	if src == nil {
		log.Info("no campus source configured, serving demo data")
		src = mem.NewDemoSource()
	}

	statsSvc := stats.NewService(src, log.Named("stats"))
	stats.RegisterRoutes(r, statsSvc)

	return r
}
