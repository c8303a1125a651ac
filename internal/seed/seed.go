package seed

import (
	"database/sql"
	"fmt"
)

type catalogEntry struct {
	Name        string
	Density     float64 // g/cm³
	CostPerGram float64
}

// defaultCatalog is the material catalog every fresh install starts with.
var defaultCatalog = []catalogEntry{
	{Name: "Aluminum", Density: 2.70, CostPerGram: 0.003},
	{Name: "Carbon Steel", Density: 7.85, CostPerGram: 0.002},
	{Name: "Stainless Steel 304", Density: 8.00, CostPerGram: 0.008},
	{Name: "Brass", Density: 8.50, CostPerGram: 0.012},
	{Name: "Titanium Ti-6Al-4V", Density: 4.50, CostPerGram: 0.045},
	{Name: "ABS Plastic", Density: 1.04, CostPerGram: 0.004},
	{Name: "PLA Plastic", Density: 1.25, CostPerGram: 0.003},
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run executes the startup seed in an idempotent way. Materials already
// present (by name) are left untouched, so operator edits survive restarts.
func Run(db *sql.DB) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}
	for _, entry := range defaultCatalog {
		if err := ensureMaterial(tx, entry, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureMaterial(tx *sql.Tx, entry catalogEntry, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM materials WHERE name = ? LIMIT 1)`, entry.Name).Scan(&exists); err != nil {
		return fmt.Errorf("check material existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.Exec(`
		INSERT INTO materials (name, density, cost_per_gram)
		VALUES (?, ?, ?)
	`, entry.Name, entry.Density, entry.CostPerGram); err != nil {
		return fmt.Errorf("insert material %q: %w", entry.Name, err)
	}
	stats.Inserts++
	return nil
}
