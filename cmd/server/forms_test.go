package main

import (
	"errors"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/Simplici0/precificalc/internal/pricing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{raw: "", want: 0},
		{raw: "   ", want: 0},
		{raw: "12.5", want: 12.5},
		{raw: " 40 ", want: 40},
		{raw: ".5", want: 0.5},
		{raw: "1e3", want: 1000},
		{raw: "0", want: 0},
		{raw: "abc", wantErr: true},
		{raw: "1,5", wantErr: true},
		{raw: "-1", wantErr: true},
		{raw: "NaN", wantErr: true},
		{raw: "Inf", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseAmount(tt.raw, "Custo direto")
		if tt.wantErr {
			if err == nil {
				t.Fatalf("parseAmount(%q): expected error, got %v", tt.raw, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseAmount(%q): unexpected error: %v", tt.raw, err)
		}
		if got != tt.want {
			t.Fatalf("parseAmount(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestParseAmount_Messages(t *testing.T) {
	if _, err := parseAmount("x", "Frete"); err == nil || err.Error() != "Frete deve ser numérico" {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := parseAmount("-2", "Frete"); err == nil || err.Error() != "Frete deve ser maior ou igual a 0" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCalculatorFormInputs_Success(t *testing.T) {
	form := url.Values{}
	form.Set("product_name", " Caneca ")
	form.Set("direct_cost", "60")
	form.Set("labor_cost", "30")
	form.Set("packaging_cost", ".5")
	form.Set("desired_margin", "30")
	form.Set("sales_volume", "100")
	form.Set("method", "contribution")

	req := httptest.NewRequest("POST", "/calculate", nil)
	req.Form = form

	in, method, err := readCalculatorForm(req).inputs()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if in.ProductName != "Caneca" || in.DirectCost != 60 || in.LaborCost != 30 || in.PackagingCost != 0.5 {
		t.Fatalf("unexpected inputs: %+v", in)
	}
	if in.IndirectCost != 0 || in.FreightCost != 0 || in.CommissionCost != 0 {
		t.Fatalf("blank fields should be zero: %+v", in)
	}
	if method != pricing.MethodContribution {
		t.Fatalf("method = %q, want contribution", method)
	}
}

func TestCalculatorFormInputs_BlankMethodMeansMargin(t *testing.T) {
	_, method, err := calculatorForm{ProductName: "x", DirectCost: "1"}.inputs()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if method != pricing.MethodMargin {
		t.Fatalf("method = %q, want margin", method)
	}
}

func TestCalculatorFormInputs_UnknownMethod(t *testing.T) {
	_, _, err := calculatorForm{ProductName: "x", DirectCost: "1", Method: "cost-plus"}.inputs()
	if !errors.Is(err, pricing.ErrUnknownMethod) {
		t.Fatalf("expected ErrUnknownMethod, got %v", err)
	}
}

func TestNewCalculatorForm_Defaults(t *testing.T) {
	form := newCalculatorForm(pricing.DefaultInputs(), pricing.MethodMargin)
	if form.DesiredMargin != "30" || form.SalesVolume != "100" {
		t.Fatalf("unexpected defaults: %+v", form)
	}
	if form.DirectCost != "" || form.ProductName != "" {
		t.Fatalf("costs should start blank: %+v", form)
	}
	if form.Method != "margin" {
		t.Fatalf("method = %q, want margin", form.Method)
	}
}
