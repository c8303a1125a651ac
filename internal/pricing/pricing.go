package pricing

import (
	"fmt"
	"math"

	"github.com/fabworks/stepquote/internal/material"
)

// Defaults applied by the request-parsing layer when a field is omitted.
const (
	DefaultQuantity      = 1
	DefaultMarkupPercent = 25.0
)

// ValidationError reports a calculator input that fails its range check.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Result contains all derived values of the quote calculation. Monetary and
// weight fields are rounded to 2 decimals; Volume and the inputs are carried
// through unchanged.
type Result struct {
	Volume        float64           `json:"volume"`
	Material      material.Material `json:"material"`
	Weight        float64           `json:"weight"`
	MaterialCost  float64           `json:"materialCost"`
	Quantity      int               `json:"quantity"`
	MarkupPercent float64           `json:"markupPercent"`
	Subtotal      float64           `json:"subtotal"`
	MarkupAmount  float64           `json:"markupAmount"`
	Total         float64           `json:"total"`
}

// Calculate prices a part from its volume (cm³), resolved material, quantity,
// and markup percentage.
//
// Every derived value is computed from unrounded intermediates and only
// rounded independently at the output boundary. Because of that, the
// displayed subtotal plus markup may differ from the displayed total by up
// to one cent; that is expected, not a bug.
func Calculate(volume float64, mat material.Material, quantity int, markupPercent float64) (Result, error) {
	if volume <= 0 {
		return Result{}, &ValidationError{Field: "volume", Reason: "must be greater than 0"}
	}
	if quantity <= 0 {
		return Result{}, &ValidationError{Field: "quantity", Reason: "must be greater than 0"}
	}
	if markupPercent < 0 || markupPercent > 100 {
		return Result{}, &ValidationError{Field: "markupPercent", Reason: "must be between 0 and 100"}
	}

	weight := volume * mat.Density
	materialCost := weight * mat.CostPerGram
	subtotal := materialCost * float64(quantity)
	markupAmount := subtotal * markupPercent / 100
	total := subtotal + markupAmount

	return Result{
		Volume:        volume,
		Material:      mat,
		Weight:        round2(weight),
		MaterialCost:  round2(materialCost),
		Quantity:      quantity,
		MarkupPercent: markupPercent,
		Subtotal:      round2(subtotal),
		MarkupAmount:  round2(markupAmount),
		Total:         round2(total),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
