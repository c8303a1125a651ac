package seed

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/fabworks/stepquote/internal/db"
	"github.com/fabworks/stepquote/internal/migrations"
)

func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "seed-test.db")
	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database, "../../migrations"); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	for i := 0; i < 10; i++ {
		stats, err := Run(database)
		if err != nil {
			t.Fatalf("run seed (iteration=%d): %v", i, err)
		}
		if i == 0 {
			if stats.Inserts != len(defaultCatalog) {
				t.Fatalf("expected %d inserts in first run, got %d", len(defaultCatalog), stats.Inserts)
			}
			continue
		}
		if stats.Inserts != 0 {
			t.Fatalf("expected 0 inserts in iteration %d, got %d", i, stats.Inserts)
		}
	}

	assertCount(t, database, `SELECT COUNT(*) FROM materials`, len(defaultCatalog))

	var density, costPerGram float64
	if err := database.QueryRow(`SELECT density, cost_per_gram FROM materials WHERE name = ?`, "Titanium Ti-6Al-4V").Scan(&density, &costPerGram); err != nil {
		t.Fatalf("query titanium: %v", err)
	}
	if density != 4.50 || costPerGram != 0.045 {
		t.Fatalf("unexpected titanium rates: density=%v costPerGram=%v", density, costPerGram)
	}
}

func TestRunDoesNotOverwriteOperatorEdits(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "seed-edit-test.db")
	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database, "../../migrations"); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	if _, err := Run(database); err != nil {
		t.Fatalf("first seed run: %v", err)
	}

	if _, err := database.Exec(`UPDATE materials SET cost_per_gram = 0.099 WHERE name = 'Brass'`); err != nil {
		t.Fatalf("edit brass: %v", err)
	}

	if _, err := Run(database); err != nil {
		t.Fatalf("second seed run: %v", err)
	}

	var costPerGram float64
	if err := database.QueryRow(`SELECT cost_per_gram FROM materials WHERE name = 'Brass'`).Scan(&costPerGram); err != nil {
		t.Fatalf("query brass: %v", err)
	}
	if costPerGram != 0.099 {
		t.Fatalf("seed overwrote operator edit, cost_per_gram=%v", costPerGram)
	}
}

func assertCount(t *testing.T, database *sql.DB, query string, expected int) {
	t.Helper()

	var count int
	if err := database.QueryRow(query).Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != expected {
		t.Fatalf("expected count %d, got %d", expected, count)
	}
}
