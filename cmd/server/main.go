// Command server runs the COICIT registration API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	actividadhandler "coicit/internal/actividad/handler"
	actividadservice "coicit/internal/actividad/service"
	actividadstore "coicit/internal/actividad/store"
	adminhandler "coicit/internal/admin/handler"
	adminservice "coicit/internal/admin/service"
	adminstore "coicit/internal/admin/store"
	authhandler "coicit/internal/auth/handler"
	authservice "coicit/internal/auth/service"
	authstore "coicit/internal/auth/store"
	"coicit/internal/auth/token"
	eventoshandler "coicit/internal/eventos/handler"
	inscripcionhandler "coicit/internal/inscripcion/handler"
	inscripcionservice "coicit/internal/inscripcion/service"
	inscripcionstore "coicit/internal/inscripcion/store"
	paquetehandler "coicit/internal/paquete/handler"
	paqueteservice "coicit/internal/paquete/service"
	paquetestore "coicit/internal/paquete/store"
	personahandler "coicit/internal/persona/handler"
	personaservice "coicit/internal/persona/service"
	personastore "coicit/internal/persona/store"
	"coicit/internal/platform/cache"
	"coicit/internal/platform/config"
	"coicit/internal/platform/httpserver"
	"coicit/internal/platform/logger"
	"coicit/internal/platform/metrics"
	"coicit/internal/platform/middleware"
	"coicit/internal/platform/postgres"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config failed", "error", err)
		os.Exit(1)
	}

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		log.Error("open database failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.Migrate(db); err != nil {
		log.Error("migrate database failed", "error", err)
		os.Exit(1)
	}

	catalogo, err := cache.New(cfg.RedisURL, cfg.CacheTTL)
	if err != nil {
		log.Error("connect redis failed", "error", err)
		os.Exit(1)
	}
	if catalogo != nil {
		defer catalogo.Close()
		log.Info("catalog cache enabled", "ttl", cfg.CacheTTL.String())
	}

	m := metrics.New()

	personas := personastore.NewPostgres(db)
	actividades := actividadstore.NewPostgres(db)
	paquetes := paquetestore.NewPostgres(db)
	usuarios := authstore.NewPostgres(db)
	inscripciones := inscripcionstore.NewPostgres(db)

	tokens := token.New(cfg.JWTSigningKey, cfg.JWTTTL)

	personaSvc := personaservice.New(personas)
	actividadSvc := actividadservice.New(actividades, inscripciones)
	paqueteSvc := paqueteservice.New(paquetes)
	authSvc := authservice.New(usuarios, personas, tokens)
	inscripcionSvc := inscripcionservice.New(
		personas, actividades, paquetes, usuarios,
		newInscripcionPostgresTx(db), m,
	)
	adminSvc := adminservice.New(adminstore.NewPostgres(db))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(m.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Catalog reads go through the optional response cache.
	r.Group(func(r chi.Router) {
		r.Use(catalogo.Middleware)
		actividadhandler.New(actividadSvc, log).Register(r)
		paquetehandler.New(paqueteSvc, log).Register(r)
		eventoshandler.New(cfg.EventsFile, cfg.EventsYear, log).Register(r)
	})

	personahandler.New(personaSvc, log, m).Register(r)
	authhandler.New(authSvc, log, m).Register(r)
	inscripcionhandler.New(inscripcionSvc, log).Register(r)
	adminhandler.New(adminSvc, authSvc, log).Register(r)

	srv := httpserver.New(cfg.Addr, r)

	go func() {
		log.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
