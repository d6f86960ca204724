package pricing

import (
	"errors"
	"math"
)

const (
	// maxMarginPercent bounds the margin used by the margin-on-cost formula so
	// that 1 - margin never reaches zero.
	maxMarginPercent = 99.99
	// maxContributionRatio is the same bound for the contribution formula,
	// expressed as a ratio.
	maxContributionRatio = 0.9999
)

// Method selects which computed price becomes the recommended price.
type Method string

const (
	MethodMargin       Method = "margin"
	MethodMarkup       Method = "markup"
	MethodContribution Method = "contribution"
)

// ErrUnknownMethod is returned by ParseMethod for unrecognised selectors.
var ErrUnknownMethod = errors.New("método de precificação desconhecido")

// Methods lists every supported method in display order.
var Methods = []Method{MethodMargin, MethodMarkup, MethodContribution}

// ParseMethod converts a form or API value into a Method.
func ParseMethod(raw string) (Method, error) {
	switch m := Method(raw); m {
	case MethodMargin, MethodMarkup, MethodContribution:
		return m, nil
	}
	return "", ErrUnknownMethod
}

// Label returns the pt-BR name shown to users.
func (m Method) Label() string {
	switch m {
	case MethodMargin:
		return "Margem sobre o custo"
	case MethodMarkup:
		return "Markup"
	case MethodContribution:
		return "Margem de contribuição"
	}
	return string(m)
}

// Inputs holds the cost components and targets for a single computation.
type Inputs struct {
	ProductName     string
	DirectCost      float64
	IndirectCost    float64
	LaborCost       float64
	PackagingCost   float64
	FreightCost     float64
	CommissionCost  float64
	DesiredMargin   float64
	CompetitorPrice float64
	SalesVolume     float64
}

// DefaultInputs returns the values a blank calculator starts with.
func DefaultInputs() Inputs {
	return Inputs{DesiredMargin: 30, SalesVolume: 100}
}

// Results contains the price under every method plus the figures derived
// from the selected one.
type Results struct {
	MarginPrice       float64
	MarkupPrice       float64
	ContributionPrice float64
	RecommendedPrice  float64
	Profit            float64
	MarginPercentage  float64
}

// TotalCost sums the six cost components. It performs no validation.
func TotalCost(in Inputs) float64 {
	return in.DirectCost + in.IndirectCost + in.LaborCost +
		in.PackagingCost + in.FreightCost + in.CommissionCost
}

// variableCost is every component except the indirect (fixed) cost.
func variableCost(in Inputs) float64 {
	return in.DirectCost + in.LaborCost + in.PackagingCost + in.FreightCost + in.CommissionCost
}

// Calculate computes prices under all three methods and picks the
// recommended one according to method. Degenerate inputs are not rejected:
// a zero sales volume yields an infinite contribution price, which is
// returned unchanged. Only MarginPercentage is guaranteed to be finite.
func Calculate(in Inputs, method Method) Results {
	totalCost := TotalCost(in)

	// Markup never divides by (1 - margin), so only the other two formulas
	// clamp the margin.
	safeMargin := math.Min(maxMarginPercent, in.DesiredMargin)
	marginPrice := totalCost / (1 - safeMargin/100)

	markupPrice := totalCost * (1 + in.DesiredMargin/100)

	fixedCosts := in.IndirectCost
	contributionNeeded := fixedCosts * (1 + in.DesiredMargin/100)
	contributionMargin := math.Min(maxContributionRatio, in.DesiredMargin/100)
	contributionPrice := variableCost(in) + (contributionNeeded/in.SalesVolume)/(1-contributionMargin)

	var recommended float64
	switch method {
	case MethodMargin:
		recommended = marginPrice
	case MethodMarkup:
		recommended = markupPrice
	case MethodContribution:
		recommended = contributionPrice
	}

	profit := recommended - totalCost
	marginPercentage := profit / recommended * 100
	if math.IsNaN(marginPercentage) || math.IsInf(marginPercentage, 0) {
		marginPercentage = 0
	}

	return Results{
		MarginPrice:       marginPrice,
		MarkupPrice:       markupPrice,
		ContributionPrice: contributionPrice,
		RecommendedPrice:  recommended,
		Profit:            profit,
		MarginPercentage:  marginPercentage,
	}
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
