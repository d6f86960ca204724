package display

import (
	"math"
	"testing"
	"time"
)

func TestCurrency(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "R$ 0,00"},
		{12.5, "R$ 12,50"},
		{1234.56, "R$ 1.234,56"},
		{142.857142857, "R$ 142,86"},
		{1.005, "R$ 1,01"},
		{9999999, "R$ 9.999.999,00"},
		{-30, "-R$ 30,00"},
		{-0.001, "R$ 0,00"},
	}
	for _, tc := range cases {
		if got := Currency(tc.in); got != tc.want {
			t.Fatalf("Currency(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCurrency_NotComputable(t *testing.T) {
	for _, v := range []float64{math.Inf(1), math.Inf(-1), math.NaN(), 10000000, 1e300} {
		if got := Currency(v); got != NotComputable {
			t.Fatalf("Currency(%v) = %q, want %q", v, got, NotComputable)
		}
	}
}

func TestPercent_CapsDisplayAtHundred(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{30, "30,0"},
		{33.3333, "33,3"},
		{99.99, "100,0"},
		{250, "100,0"},
		{-12.5, "-12,5"},
		{math.NaN(), "0,0"},
		{math.Inf(1), "0,0"},
	}
	for _, tc := range cases {
		if got := Percent(tc.in); got != tc.want {
			t.Fatalf("Percent(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDesiredMargin_IsNotCapped(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{30, "30,0"},
		{150, "150,0"},
		{99.99, "100,0"},
		{math.Inf(1), "0,0"},
	}
	for _, tc := range cases {
		if got := DesiredMargin(tc.in); got != tc.want {
			t.Fatalf("DesiredMargin(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBarWidth(t *testing.T) {
	if got := BarWidth(45); got != 45 {
		t.Fatalf("BarWidth(45) = %v", got)
	}
	if got := BarWidth(180); got != 100 {
		t.Fatalf("BarWidth(180) = %v", got)
	}
	if got := BarWidth(-5); got != 0 {
		t.Fatalf("BarWidth(-5) = %v", got)
	}
	if got := BarWidth(math.NaN()); got != 0 {
		t.Fatalf("BarWidth(NaN) = %v", got)
	}
}

func TestDate(t *testing.T) {
	ts := time.Date(2024, time.March, 7, 23, 15, 0, 0, time.UTC)
	if got := Date(ts); got != "07/03/2024" {
		t.Fatalf("Date = %q, want %q", got, "07/03/2024")
	}
}

func TestCompareWithCompetitor(t *testing.T) {
	if _, ok := CompareWithCompetitor(100, 0); ok {
		t.Fatalf("expected no comparison without competitor price")
	}

	above, ok := CompareWithCompetitor(120, 100)
	if !ok || !above.Above || math.Abs(above.Percent-20) > 1e-9 {
		t.Fatalf("unexpected comparison: %+v", above)
	}
	if got := above.String(); got != "20,0% acima do preço concorrente" {
		t.Fatalf("String() = %q", got)
	}

	below, ok := CompareWithCompetitor(75, 100)
	if !ok || below.Above || math.Abs(below.Percent-25) > 1e-9 {
		t.Fatalf("unexpected comparison: %+v", below)
	}
	if got := below.String(); got != "25,0% abaixo do preço concorrente" {
		t.Fatalf("String() = %q", got)
	}

	inf, ok := CompareWithCompetitor(math.Inf(1), 100)
	if !ok || inf.Percent != 0 || !inf.Above {
		t.Fatalf("unexpected comparison for infinite price: %+v", inf)
	}
}
