package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fabworks/stepquote/internal/config"
	"github.com/fabworks/stepquote/internal/db"
	"github.com/fabworks/stepquote/internal/geometry"
	"github.com/fabworks/stepquote/internal/logger"
	"github.com/fabworks/stepquote/internal/material"
	"github.com/fabworks/stepquote/internal/metrics"
	"github.com/fabworks/stepquote/internal/migrations"
	"github.com/fabworks/stepquote/internal/quote"
	"github.com/fabworks/stepquote/internal/seed"
)

type server struct {
	log       *slog.Logger
	materials material.Catalog
	quotes    *quote.Store
	estimator geometry.Estimator
}

func main() {
	cfg := config.Load()
	log := logger.New(cfg.AppEnv)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database", "error", err)
		return
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(database, "migrations"); err != nil {
			log.Error("failed to run database migrations", "error", err)
			return
		}
	}

	stats, err := seed.Run(database)
	if err != nil {
		log.Error("failed to seed material catalog", "error", err)
		return
	}
	if stats.Inserts > 0 {
		log.Info("seeded material catalog", "inserts", stats.Inserts)
	}

	var estimator geometry.Estimator = geometry.HashEstimator{}
	if cfg.FreeCADPython != "" {
		estimator = geometry.NewKernelEstimator(cfg.FreeCADPython, cfg.ExtractScript, log)
	}

	srv := &server{
		log:       log,
		materials: material.NewSQLCatalog(database),
		quotes:    quote.NewStore(database),
		estimator: estimator,
	}

	r := chi.NewRouter()
	r.Get("/healthz", handleHealth)
	r.Handle("/metrics", metrics.Handler())
	r.Get("/api/materials", srv.handleMaterialsList)
	r.Post("/api/volume", srv.handleVolumeUpload)
	r.Post("/api/quotes", srv.handleQuoteCreate)
	r.Get("/api/quotes", srv.handleQuotesList)
	r.Get("/api/quotes/{id}", srv.handleQuoteDetail)
	r.Get("/api/quotes/{id}/text", srv.handleQuoteText)

	addr := ":" + cfg.Port
	log.Info("listening", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Error("server stopped", "error", err)
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
