package main

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/Simplici0/precificalc/internal/pricing"
)

// calculatorForm keeps the raw text of every calculator field so a rejected
// submission can be shown back unchanged.
type calculatorForm struct {
	ProductName     string
	DirectCost      string
	IndirectCost    string
	LaborCost       string
	PackagingCost   string
	FreightCost     string
	CommissionCost  string
	DesiredMargin   string
	CompetitorPrice string
	SalesVolume     string
	Method          string
}

func readCalculatorForm(r *http.Request) calculatorForm {
	return calculatorForm{
		ProductName:     strings.TrimSpace(r.FormValue("product_name")),
		DirectCost:      strings.TrimSpace(r.FormValue("direct_cost")),
		IndirectCost:    strings.TrimSpace(r.FormValue("indirect_cost")),
		LaborCost:       strings.TrimSpace(r.FormValue("labor_cost")),
		PackagingCost:   strings.TrimSpace(r.FormValue("packaging_cost")),
		FreightCost:     strings.TrimSpace(r.FormValue("freight_cost")),
		CommissionCost:  strings.TrimSpace(r.FormValue("commission_cost")),
		DesiredMargin:   strings.TrimSpace(r.FormValue("desired_margin")),
		CompetitorPrice: strings.TrimSpace(r.FormValue("competitor_price")),
		SalesVolume:     strings.TrimSpace(r.FormValue("sales_volume")),
		Method:          strings.TrimSpace(r.FormValue("method")),
	}
}

func newCalculatorForm(in pricing.Inputs, method pricing.Method) calculatorForm {
	return calculatorForm{
		ProductName:     in.ProductName,
		DirectCost:      formatAmount(in.DirectCost),
		IndirectCost:    formatAmount(in.IndirectCost),
		LaborCost:       formatAmount(in.LaborCost),
		PackagingCost:   formatAmount(in.PackagingCost),
		FreightCost:     formatAmount(in.FreightCost),
		CommissionCost:  formatAmount(in.CommissionCost),
		DesiredMargin:   formatAmount(in.DesiredMargin),
		CompetitorPrice: formatAmount(in.CompetitorPrice),
		SalesVolume:     formatAmount(in.SalesVolume),
		Method:          string(method),
	}
}

// inputs parses the form into engine inputs. A blank method means
// margin-on-cost.
func (f calculatorForm) inputs() (pricing.Inputs, pricing.Method, error) {
	in := pricing.Inputs{ProductName: f.ProductName}

	fields := []struct {
		raw   string
		label string
		dst   *float64
	}{
		{f.DirectCost, "Custo direto", &in.DirectCost},
		{f.IndirectCost, "Custo indireto", &in.IndirectCost},
		{f.LaborCost, "Mão de obra", &in.LaborCost},
		{f.PackagingCost, "Embalagem", &in.PackagingCost},
		{f.FreightCost, "Frete", &in.FreightCost},
		{f.CommissionCost, "Comissão", &in.CommissionCost},
		{f.DesiredMargin, "Margem desejada", &in.DesiredMargin},
		{f.CompetitorPrice, "Preço do concorrente", &in.CompetitorPrice},
		{f.SalesVolume, "Volume de vendas", &in.SalesVolume},
	}
	for _, field := range fields {
		value, err := parseAmount(field.raw, field.label)
		if err != nil {
			return in, "", err
		}
		*field.dst = value
	}

	if f.Method == "" {
		return in, pricing.MethodMargin, nil
	}
	method, err := pricing.ParseMethod(f.Method)
	if err != nil {
		return in, "", err
	}
	return in, method, nil
}

// parseAmount reads a non-negative decimal number. Blank means 0 and a
// leading "." is read as "0.".
func parseAmount(raw, field string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	if strings.HasPrefix(raw, ".") {
		raw = "0" + raw
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%s deve ser numérico", field)
	}
	if value < 0 {
		return 0, fmt.Errorf("%s deve ser maior ou igual a 0", field)
	}
	return value, nil
}

func formatAmount(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
