package pricing

import (
	"errors"
	"math"
	"testing"

	"github.com/fabworks/stepquote/internal/material"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestCalculate_AluminumSinglePart(t *testing.T) {
	aluminum := material.Material{ID: 1, Name: "Aluminum", Density: 2.70, CostPerGram: 0.003}

	result, err := Calculate(100, aluminum, 1, 25)
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}

	nearlyEqual(t, "weight", result.Weight, 270.00)
	nearlyEqual(t, "materialCost", result.MaterialCost, 0.81)
	nearlyEqual(t, "subtotal", result.Subtotal, 0.81)
	nearlyEqual(t, "markupAmount", result.MarkupAmount, 0.20)
	nearlyEqual(t, "total", result.Total, 1.01)
}

func TestCalculate_StainlessBatchWithoutMarkup(t *testing.T) {
	stainless := material.Material{ID: 3, Name: "Stainless Steel 304", Density: 8.00, CostPerGram: 0.008}

	result, err := Calculate(50, stainless, 10, 0)
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}

	nearlyEqual(t, "weight", result.Weight, 400.00)
	nearlyEqual(t, "materialCost", result.MaterialCost, 3.20)
	nearlyEqual(t, "subtotal", result.Subtotal, 32.00)
	nearlyEqual(t, "markupAmount", result.MarkupAmount, 0.00)
	nearlyEqual(t, "total", result.Total, 32.00)
}

func TestCalculate_FullMarkupDoublesSubtotal(t *testing.T) {
	unit := material.Material{ID: 9, Name: "Unit", Density: 1, CostPerGram: 1}

	result, err := Calculate(1, unit, 1, 100)
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}

	nearlyEqual(t, "materialCost", result.MaterialCost, 1.00)
	nearlyEqual(t, "subtotal", result.Subtotal, 1.00)
	nearlyEqual(t, "markupAmount", result.MarkupAmount, 1.00)
	nearlyEqual(t, "total", result.Total, 2.00)
}

func TestCalculate_TotalMatchesSubtotalPlusMarkupWithinACent(t *testing.T) {
	brass := material.Material{ID: 4, Name: "Brass", Density: 8.50, CostPerGram: 0.012}

	for volume := 0.37; volume < 400; volume += 13.13 {
		for _, markup := range []float64{0, 7.5, 25, 33.33, 99} {
			result, err := Calculate(volume, brass, 3, markup)
			if err != nil {
				t.Fatalf("Calculate(volume=%v, markup=%v) returned error: %v", volume, markup, err)
			}
			// Each field is rounded independently from its unrounded
			// derivation, so the displayed identity holds only to a cent.
			if diff := math.Abs(result.Total - (result.Subtotal + result.MarkupAmount)); diff > 0.01+1e-9 {
				t.Fatalf("total %v deviates from subtotal %v + markup %v by %v", result.Total, result.Subtotal, result.MarkupAmount, diff)
			}
		}
	}
}

func TestCalculate_ZeroMarkupMeansTotalEqualsSubtotal(t *testing.T) {
	pla := material.Material{ID: 7, Name: "PLA Plastic", Density: 1.25, CostPerGram: 0.003}

	result, err := Calculate(83.19, pla, 4, 0)
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}

	nearlyEqual(t, "markupAmount", result.MarkupAmount, 0)
	nearlyEqual(t, "total", result.Total, result.Subtotal)
}

func TestCalculate_InputValidation(t *testing.T) {
	abs := material.Material{ID: 6, Name: "ABS Plastic", Density: 1.04, CostPerGram: 0.004}

	cases := []struct {
		name     string
		volume   float64
		quantity int
		markup   float64
		field    string
	}{
		{"zero volume", 0, 1, 25, "volume"},
		{"negative volume", -3, 1, 25, "volume"},
		{"zero quantity", 10, 0, 25, "quantity"},
		{"negative quantity", 10, -2, 25, "quantity"},
		{"markup above 100", 10, 1, 150, "markupPercent"},
		{"negative markup", 10, 1, -1, "markupPercent"},
	}

	for _, tc := range cases {
		_, err := Calculate(tc.volume, abs, tc.quantity, tc.markup)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected ValidationError, got %v", tc.name, err)
		}
		if verr.Field != tc.field {
			t.Fatalf("%s: expected field %q, got %q", tc.name, tc.field, verr.Field)
		}
	}
}

func TestCalculate_PreservesInputsAndMaterial(t *testing.T) {
	titanium := material.Material{ID: 5, Name: "Titanium Ti-6Al-4V", Density: 4.50, CostPerGram: 0.045}

	result, err := Calculate(12.34, titanium, 2, 15)
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}

	if result.Volume != 12.34 || result.Quantity != 2 || result.MarkupPercent != 15 {
		t.Fatalf("inputs not carried through: %+v", result)
	}
	if result.Material != titanium {
		t.Fatalf("material not embedded in result: %+v", result.Material)
	}
}
