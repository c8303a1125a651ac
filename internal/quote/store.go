package quote

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fabworks/stepquote/internal/pricing"
)

// ErrNotFound is returned when a quote id does not resolve.
var ErrNotFound = errors.New("quote not found")

// Quote is a persisted quote: a pricing result denormalized with the id,
// timestamp, and source file the store assigns at save time.
type Quote struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"createdAt"`
	FileName      string    `json:"fileName"`
	MaterialID    int64     `json:"materialId"`
	MaterialName  string    `json:"materialName"`
	Volume        float64   `json:"volume"`
	Weight        float64   `json:"weight"`
	MaterialCost  float64   `json:"materialCost"`
	Quantity      int       `json:"quantity"`
	MarkupPercent float64   `json:"markupPercent"`
	Subtotal      float64   `json:"subtotal"`
	MarkupAmount  float64   `json:"markupAmount"`
	Total         float64   `json:"total"`
}

// Store persists quotes to sqlite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore wraps db in a quote store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Save stores a calculated quote, assigning it a fresh id and timestamp.
// The timestamp is bound as a time.Time so the sqlite driver serializes and
// later re-parses it itself, keeping full sub-second precision.
func (s *Store) Save(ctx context.Context, fileName string, result pricing.Result) (Quote, error) {
	q := Quote{
		ID:            uuid.NewString(),
		CreatedAt:     s.now().UTC(),
		FileName:      fileName,
		MaterialID:    result.Material.ID,
		MaterialName:  result.Material.Name,
		Volume:        result.Volume,
		Weight:        result.Weight,
		MaterialCost:  result.MaterialCost,
		Quantity:      result.Quantity,
		MarkupPercent: result.MarkupPercent,
		Subtotal:      result.Subtotal,
		MarkupAmount:  result.MarkupAmount,
		Total:         result.Total,
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO quotes (
			id, created_at, file_name, material_id, material_name,
			volume_cm3, weight_grams, material_cost, quantity,
			markup_percent, subtotal, markup_amount, total
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		q.ID,
		q.CreatedAt,
		q.FileName,
		q.MaterialID,
		q.MaterialName,
		q.Volume,
		q.Weight,
		q.MaterialCost,
		q.Quantity,
		q.MarkupPercent,
		q.Subtotal,
		q.MarkupAmount,
		q.Total,
	)
	if err != nil {
		return Quote{}, fmt.Errorf("insert quote: %w", err)
	}

	return q, nil
}

// List returns stored quotes newest first, optionally filtered by a
// substring of the file or material name. Timestamps are always written in
// UTC in the driver's single text form, so the raw created_at text orders
// chronologically down to the nanosecond.
func (s *Store) List(ctx context.Context, query string) ([]Quote, error) {
	search := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			id, created_at, COALESCE(file_name, ''), material_id, material_name,
			volume_cm3, weight_grams, material_cost, quantity,
			markup_percent, subtotal, markup_amount, total
		FROM quotes
		WHERE (? = '' OR COALESCE(file_name, '') LIKE ? OR material_name LIKE ?)
		ORDER BY created_at DESC, id DESC
	`, query, search, search)
	if err != nil {
		return nil, fmt.Errorf("query quotes: %w", err)
	}
	defer rows.Close()

	quotes := make([]Quote, 0)
	for rows.Next() {
		q, err := scanQuote(rows.Scan)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quotes: %w", err)
	}

	return quotes, nil
}

// Get returns a single stored quote by id.
func (s *Store) Get(ctx context.Context, id string) (Quote, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT
			id, created_at, COALESCE(file_name, ''), material_id, material_name,
			volume_cm3, weight_grams, material_cost, quantity,
			markup_percent, subtotal, markup_amount, total
		FROM quotes
		WHERE id = ?
	`, id)

	q, err := scanQuote(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Quote{}, ErrNotFound
	}
	if err != nil {
		return Quote{}, err
	}
	return q, nil
}

func scanQuote(scan func(dest ...any) error) (Quote, error) {
	// The created_at column is declared DATETIME, so the driver hands the
	// value back as a time.Time; scan it as one instead of re-parsing text.
	var q Quote
	err := scan(
		&q.ID,
		&q.CreatedAt,
		&q.FileName,
		&q.MaterialID,
		&q.MaterialName,
		&q.Volume,
		&q.Weight,
		&q.MaterialCost,
		&q.Quantity,
		&q.MarkupPercent,
		&q.Subtotal,
		&q.MarkupAmount,
		&q.Total,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Quote{}, err
	}
	if err != nil {
		return Quote{}, fmt.Errorf("scan quote: %w", err)
	}
	return q, nil
}
