package display

import (
	"math"
	"time"

	"golang.org/x/text/message"

	"github.com/Simplici0/precificalc/internal/pricing"
)

// Date renders t as a pt-BR short date (dd/mm/yyyy) in t's location.
func Date(t time.Time) string {
	return t.Format(dateLayout)
}

// Comparison describes how a recommended price relates to a competitor's.
type Comparison struct {
	// Percent is the absolute difference relative to the competitor price.
	Percent float64
	Above   bool
}

// CompareWithCompetitor returns the relative difference between the
// recommended and competitor prices. ok is false when no competitor price
// was provided.
func CompareWithCompetitor(recommended, competitor float64) (c Comparison, ok bool) {
	if competitor <= 0 || !pricing.IsFinite(competitor) {
		return Comparison{}, false
	}

	diff := (recommended - competitor) / competitor * 100
	c.Above = diff >= 0
	if pricing.IsFinite(diff) {
		c.Percent = math.Abs(diff)
	}
	return c, true
}

// String renders the comparison the way the results panel shows it.
func (c Comparison) String() string {
	direction := "abaixo"
	if c.Above {
		direction = "acima"
	}
	return message.NewPrinter(locale).Sprintf("%.1f%% %s do preço concorrente", c.Percent, direction)
}
