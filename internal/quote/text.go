package quote

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Text renders a printable plain-text version of a stored quote, suitable
// for pasting into an email. Money and weights are shown with exactly two
// decimals.
func (q Quote) Text() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Quote %s\n", q.ID)
	fmt.Fprintf(&b, "Created: %s UTC\n", q.CreatedAt.Format("2006-01-02 15:04"))
	if q.FileName != "" {
		fmt.Fprintf(&b, "File: %s\n", q.FileName)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Material: %s\n", q.MaterialName)
	fmt.Fprintf(&b, "Volume: %s cm3\n", fixed2(q.Volume))
	fmt.Fprintf(&b, "Weight: %s g\n", fixed2(q.Weight))
	b.WriteString("\n")

	fmt.Fprintf(&b, "Material cost: %s\n", fixed2(q.MaterialCost))
	fmt.Fprintf(&b, "Quantity: %d\n", q.Quantity)
	fmt.Fprintf(&b, "Subtotal: %s\n", fixed2(q.Subtotal))
	fmt.Fprintf(&b, "Markup (%s%%): %s\n", decimal.NewFromFloat(q.MarkupPercent).String(), fixed2(q.MarkupAmount))
	fmt.Fprintf(&b, "Total: %s\n", fixed2(q.Total))

	return b.String()
}

func fixed2(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
