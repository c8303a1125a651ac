package material

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLCatalog reads materials from the sqlite materials table.
type SQLCatalog struct {
	db *sql.DB
}

// NewSQLCatalog wraps db in a read-only material catalog.
func NewSQLCatalog(db *sql.DB) *SQLCatalog {
	return &SQLCatalog{db: db}
}

// Get resolves a material by id. Unknown ids return ErrNotFound.
func (c *SQLCatalog) Get(ctx context.Context, id int64) (Material, error) {
	var m Material
	err := c.db.QueryRowContext(ctx, `
		SELECT id, name, density, cost_per_gram
		FROM materials
		WHERE id = ?
	`, id).Scan(&m.ID, &m.Name, &m.Density, &m.CostPerGram)
	if errors.Is(err, sql.ErrNoRows) {
		return Material{}, ErrNotFound
	}
	if err != nil {
		return Material{}, fmt.Errorf("query material: %w", err)
	}
	return m, nil
}

// List returns the whole catalog in insertion order.
func (c *SQLCatalog) List(ctx context.Context) ([]Material, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, name, density, cost_per_gram
		FROM materials
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query materials: %w", err)
	}
	defer rows.Close()

	materials := make([]Material, 0)
	for rows.Next() {
		var m Material
		if err := rows.Scan(&m.ID, &m.Name, &m.Density, &m.CostPerGram); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		materials = append(materials, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate materials: %w", err)
	}

	return materials, nil
}
