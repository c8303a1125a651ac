package main

import (
	"database/sql"
	"io"
	"log/slog"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/fabworks/stepquote/internal/geometry"
	"github.com/fabworks/stepquote/internal/material"
	"github.com/fabworks/stepquote/internal/quote"
)

func newTestServer(t *testing.T) (*server, *sql.DB) {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}

	_, err = db.Exec(`
		CREATE TABLE materials (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			density NUMERIC NOT NULL,
			cost_per_gram NUMERIC NOT NULL
		);
		CREATE TABLE quotes (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			file_name TEXT,
			material_id INTEGER NOT NULL,
			material_name TEXT NOT NULL,
			volume_cm3 NUMERIC NOT NULL,
			weight_grams NUMERIC NOT NULL,
			material_cost NUMERIC NOT NULL,
			quantity INTEGER NOT NULL,
			markup_percent NUMERIC NOT NULL,
			subtotal NUMERIC NOT NULL,
			markup_amount NUMERIC NOT NULL,
			total NUMERIC NOT NULL
		);
	`)
	if err != nil {
		t.Fatalf("failed creating schema: %v", err)
	}

	_, err = db.Exec(`
		INSERT INTO materials (id, name, density, cost_per_gram)
		VALUES (1, 'Aluminum', 2.70, 0.003)
	`)
	if err != nil {
		t.Fatalf("failed seeding material: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })

	srv := &server{
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		materials: material.NewSQLCatalog(db),
		quotes:    quote.NewStore(db),
		estimator: geometry.HashEstimator{},
	}
	return srv, db
}
