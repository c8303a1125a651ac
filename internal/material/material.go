package material

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a material id does not resolve.
var ErrNotFound = errors.New("material not found")

// Material is one entry of the read-only material catalog. Density is in
// g/cm³ and CostPerGram in currency units per gram.
type Material struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Density     float64 `json:"density"`
	CostPerGram float64 `json:"costPerGram"`
}

// Catalog is a read-only material lookup. The catalog is seeded once at
// startup and never mutated by this service afterwards.
type Catalog interface {
	Get(ctx context.Context, id int64) (Material, error)
	List(ctx context.Context) ([]Material, error)
}
