// Package display formats pricing figures for pt-BR users.
package display

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Simplici0/precificalc/internal/pricing"
)

// NotComputable replaces prices that cannot be shown as a number.
const NotComputable = "Valor não calculável"

// maxDisplayablePrice is the largest price rendered as currency.
const maxDisplayablePrice = 9999999

const dateLayout = "02/01/2006"

var locale = language.BrazilianPortuguese

// Currency renders v as Brazilian reais, e.g. "R$ 1.234,56". Non-finite and
// implausibly large values render as NotComputable.
func Currency(v float64) string {
	if !pricing.IsFinite(v) || v > maxDisplayablePrice {
		return NotComputable
	}

	rounded := decimal.NewFromFloat(v).Round(2)
	p := message.NewPrinter(locale)
	if rounded.IsNegative() {
		return p.Sprintf("-R$ %.2f", rounded.Abs().InexactFloat64())
	}
	return p.Sprintf("R$ %.2f", rounded.InexactFloat64())
}

// Percent renders a margin percentage with one decimal, capped at 100.
// The cap only affects what is shown.
func Percent(v float64) string {
	p := message.NewPrinter(locale)
	if !pricing.IsFinite(v) {
		return p.Sprintf("%.1f", 0.0)
	}
	return p.Sprintf("%.1f", math.Min(v, 100))
}

// DesiredMargin formats a stored desired margin as entered, without the cap
// Percent applies to computed margins.
func DesiredMargin(v float64) string {
	p := message.NewPrinter(locale)
	if !pricing.IsFinite(v) {
		return p.Sprintf("%.1f", 0.0)
	}
	return p.Sprintf("%.1f", v)
}

// BarWidth maps a margin percentage onto a 0..100 progress bar.
func BarWidth(v float64) float64 {
	if !pricing.IsFinite(v) || v < 0 {
		return 0
	}
	return math.Min(v, 100)
}
