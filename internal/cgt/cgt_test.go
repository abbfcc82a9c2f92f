package cgt

import (
	"errors"
	"flag"
	"math"
	"testing"
)

const tolerance = 1e-9

func assertFloat(t *testing.T, name string, expected, actual float64) {
	t.Helper()

	if math.Abs(expected-actual) > tolerance {
		t.Errorf("%s: expected %v, got %v", name, expected, actual)
	}
}

func TestCapitalGains(t *testing.T) {
	tests := []struct {
		purchase, sale, expenses, expected float64
	}{
		{1000, 5000, 200, 3800},
		{5000, 3000, 100, -2100},
		{0, 0, 0, 0},
		{-10, 10, -5, 25},
		{100.25, 200.5, 0.25, 100},
	}

	for _, tt := range tests {
		assertFloat(t, "capital gains", tt.expected, CapitalGains(tt.purchase, tt.sale, tt.expenses))
	}
}

func TestDiscount(t *testing.T) {
	tests := []struct {
		name           string
		gains          float64
		investmentType InvestmentType
		expected       float64
	}{
		{"long term gain", 3800, LongTerm, 1900},
		{"short term gain", 1000, ShortTerm, 300},
		{"long term loss", -2100, LongTerm, 0},
		{"short term loss", -2100, ShortTerm, 0},
		{"zero gain", 0, LongTerm, 0},
		{"unrecognized type", 1000, "Medium Term", 0},
		{"empty type", 1000, "", 0},
		{"case sensitive", 1000, "long term", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertFloat(t, "discount", tt.expected, Discount(tt.gains, tt.investmentType))
		})
	}
}

func TestNetCapitalGains(t *testing.T) {
	assertFloat(t, "net", 1900, NetCapitalGains(3800, 1900))
	assertFloat(t, "net", -2100, NetCapitalGains(-2100, 0))
	assertFloat(t, "net", 0, NetCapitalGains(0, 0))
}

func TestBracketCeiling(t *testing.T) {
	expected := []float64{16200, 45000, 120000, 180000, 180001}

	for i, bracket := range IncomeBrackets() {
		assertFloat(t, string(bracket), expected[i], BracketCeiling(bracket))
	}

	assertFloat(t, "unrecognized", 0, BracketCeiling("$1,000,000+"))
	assertFloat(t, "empty", 0, BracketCeiling(""))
}

func TestTaxRate(t *testing.T) {
	tests := []struct {
		income, expected float64
	}{
		{0, 19},
		{16200, 19},
		{16201, 32.5},
		{45000, 32.5},
		{45001, 37},
		{120000, 37},
		{120001, 29},
		{180000, 29},
		{180001, 45},
		{1e9, 45},
	}

	for _, tt := range tests {
		assertFloat(t, "tax rate", tt.expected, TaxRate(tt.income))
	}
}

func TestTaxRateForEachBracket(t *testing.T) {
	expected := map[IncomeBracket]float64{
		Bracket16200:  19,
		Bracket45000:  32.5,
		Bracket120000: 37,
		Bracket180000: 29,
		Bracket180001: 45,
	}

	for bracket, rate := range expected {
		assertFloat(t, string(bracket), rate, TaxRate(BracketCeiling(bracket)))
	}

	// An unrecognized label falls back to a ceiling of 0, the lowest rate.
	assertFloat(t, "unrecognized", 19, TaxRate(BracketCeiling("nope")))
}

func TestTaxOwed(t *testing.T) {
	tests := []struct {
		net, rate, expected float64
	}{
		{1900, 37, 703},
		{-2100, 37, -777},
		{1000, 32.5, 325},
		{333.33, 19, 63.33},
		{0.05, 45, 0.02},
		{-0.05, 45, -0.02},
		{123.456, 29, 35.8},
		{0, 19, 0},
	}

	for _, tt := range tests {
		assertFloat(t, "tax owed", tt.expected, TaxOwed(tt.net, tt.rate))
	}
}

func TestTaxOwedNotFinite(t *testing.T) {
	if owed := TaxOwed(math.Inf(1), 37); !math.IsInf(owed, 1) {
		t.Errorf("expected +Inf, got %v", owed)
	}

	if owed := TaxOwed(math.Inf(-1), 37); !math.IsInf(owed, -1) {
		t.Errorf("expected -Inf, got %v", owed)
	}

	if owed := TaxOwed(math.NaN(), 37); !math.IsNaN(owed) {
		t.Errorf("expected NaN, got %v", owed)
	}

	// The largest finite amount still goes through decimal rounding.
	if owed := TaxOwed(math.MaxFloat64, 45); math.IsInf(owed, 0) || math.IsNaN(owed) {
		t.Errorf("expected a finite amount, got %v", owed)
	}
}

func TestCalculateOverflow(t *testing.T) {
	result := Calculate(Input{
		PurchasePrice:  -1.7e308,
		SalePrice:      1.7e308,
		InvestmentType: LongTerm,
		IncomeBracket:  Bracket180001,
	})

	if !math.IsInf(result.CapitalGains, 1) {
		t.Errorf("expected +Inf capital gains, got %v", result.CapitalGains)
	}

	if !math.IsNaN(result.TaxOwed) {
		t.Errorf("expected NaN tax owed, got %v", result.TaxOwed)
	}
}

func TestTaxOwedRoundsToCents(t *testing.T) {
	for _, net := range []float64{0.001, 1.2345, 98765.4321, -55.555, 1e6 / 3} {
		for _, rate := range []float64{19, 32.5, 37, 29, 45} {
			owed := TaxOwed(net, rate)
			cents := owed * 100

			if math.Abs(cents-math.Round(cents)) > 1e-6 {
				t.Errorf("TaxOwed(%v, %v) = %v has more than 2 decimal places", net, rate, owed)
			}
		}
	}
}

func TestCalculate(t *testing.T) {
	t.Run("long term gain", func(t *testing.T) {
		result := Calculate(Input{
			PurchasePrice:  1000,
			SalePrice:      5000,
			Expenses:       200,
			InvestmentType: LongTerm,
			IncomeBracket:  Bracket120000,
		})

		assertFloat(t, "capital gains", 3800, result.CapitalGains)
		assertFloat(t, "tax rate", 37, result.TaxRate)
		assertFloat(t, "discount", 1900, result.Discount)
		assertFloat(t, "net capital gains", 1900, result.NetCapitalGains)
		assertFloat(t, "tax owed", 703, result.TaxOwed)
	})

	t.Run("loss", func(t *testing.T) {
		for _, investmentType := range InvestmentTypes() {
			result := Calculate(Input{
				PurchasePrice:  5000,
				SalePrice:      3000,
				Expenses:       100,
				InvestmentType: investmentType,
				IncomeBracket:  Bracket120000,
			})

			assertFloat(t, "capital gains", -2100, result.CapitalGains)
			assertFloat(t, "discount", 0, result.Discount)
			assertFloat(t, "net capital gains", -2100, result.NetCapitalGains)
			assertFloat(t, "tax owed", -777, result.TaxOwed)
		}
	})
}

func TestParseInvestmentType(t *testing.T) {
	for _, investmentType := range InvestmentTypes() {
		parsed, err := ParseInvestmentType(string(investmentType))
		if err != nil {
			t.Fatalf("unexpected error parsing %q: %s", investmentType, err)
		}

		if parsed != investmentType {
			t.Errorf("expected %q, got %q", investmentType, parsed)
		}
	}

	_, err := ParseInvestmentType("Forever")
	if !errors.Is(err, ErrInvalidEnumeration) {
		t.Errorf("expected ErrInvalidEnumeration, got %v", err)
	}
}

func TestParseIncomeBracket(t *testing.T) {
	for _, bracket := range IncomeBrackets() {
		parsed, err := ParseIncomeBracket(string(bracket))
		if err != nil {
			t.Fatalf("unexpected error parsing %q: %s", bracket, err)
		}

		if parsed != bracket {
			t.Errorf("expected %q, got %q", bracket, parsed)
		}
	}

	_, err := ParseIncomeBracket("$0 - $16200")
	if !errors.Is(err, ErrInvalidEnumeration) {
		t.Errorf("expected ErrInvalidEnumeration, got %v", err)
	}
}

func TestFlagValues(t *testing.T) {
	var (
		investmentType InvestmentType
		bracket        IncomeBracket
	)

	flags := flag.NewFlagSet("test", flag.ContinueOnError)
	flags.Var(&investmentType, "type", "")
	flags.Var(&bracket, "income", "")

	err := flags.Parse([]string{"-type", "Short Term", "-income", "$180,001+"})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if investmentType != ShortTerm {
		t.Errorf("expected %q, got %q", ShortTerm, investmentType)
	}

	if bracket != Bracket180001 {
		t.Errorf("expected %q, got %q", Bracket180001, bracket)
	}

	if err := investmentType.Set("bogus"); err == nil {
		t.Error("expected error setting bogus investment type")
	}

	if investmentType != ShortTerm {
		t.Errorf("failed Set modified value to %q", investmentType)
	}
}
