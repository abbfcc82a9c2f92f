// Package cgt implements the capital gains tax calculation. Every function is pure and safe to call concurrently;
// callers own any form state.
package cgt

import (
	"math"

	"github.com/golang/glog"
	"github.com/shopspring/decimal"
)

const (
	longTermDiscountRate  = 0.5
	shortTermDiscountRate = 0.3
)

// Input is a set of parsed inputs to the calculation.
type Input struct {
	PurchasePrice  float64
	SalePrice      float64
	Expenses       float64
	InvestmentType InvestmentType
	IncomeBracket  IncomeBracket
}

// Result holds every value derived by [Calculate].
type Result struct {
	CapitalGains    float64
	Discount        float64
	NetCapitalGains float64
	TaxRate         float64
	TaxOwed         float64
}

// Calculate runs the whole calculation from capital gains through to the tax owed.
func Calculate(input Input) Result {
	capitalGains := CapitalGains(input.PurchasePrice, input.SalePrice, input.Expenses)
	discount := Discount(capitalGains, input.InvestmentType)
	netCapitalGains := NetCapitalGains(capitalGains, discount)
	taxRate := TaxRate(BracketCeiling(input.IncomeBracket))

	result := Result{
		CapitalGains:    capitalGains,
		Discount:        discount,
		NetCapitalGains: netCapitalGains,
		TaxRate:         taxRate,
		TaxOwed:         TaxOwed(netCapitalGains, taxRate),
	}

	glog.V(10).Infof("Calculated %+v from input %+v", result, input)

	return result
}

// CapitalGains returns the sale price less the purchase price and expenses. A negative result is a capital loss.
func CapitalGains(purchasePrice, salePrice, expenses float64) float64 {
	return salePrice - purchasePrice - expenses
}

// Discount returns the discount on the capital gains for the investment type. Losses and unrecognized investment
// types get no discount.
func Discount(capitalGains float64, investmentType InvestmentType) float64 {
	if capitalGains <= 0 {
		return 0
	}

	switch investmentType {
	case LongTerm:
		return capitalGains * longTermDiscountRate
	case ShortTerm:
		return capitalGains * shortTermDiscountRate
	default:
		glog.V(10).Infof("No discount for unrecognized investment type %q", string(investmentType))

		return 0
	}
}

// NetCapitalGains returns the capital gains less the discount.
func NetCapitalGains(capitalGains, discount float64) float64 {
	return capitalGains - discount
}

// BracketCeiling returns the annual income ceiling of the bracket, or 0 if the label is not recognized.
func BracketCeiling(bracket IncomeBracket) float64 {
	ceiling, ok := bracketCeilings[bracket]
	if !ok {
		glog.V(10).Infof("No ceiling for unrecognized income range %q", string(bracket))

		return 0
	}

	return ceiling
}

// TaxRate returns the tax rate as a percentage for an annual income. The $120,001 to $180,000 range is taxed at 29%,
// below the range beneath it.
func TaxRate(annualIncome float64) float64 {
	switch {
	case annualIncome <= 16200:
		return 19
	case annualIncome <= 45000:
		return 32.5
	case annualIncome <= 120000:
		return 37
	case annualIncome <= 180000:
		return 29
	default:
		return 45
	}
}

// TaxOwed returns the tax on the net capital gains at the given percentage, rounded half away from zero to cents. A
// net loss gives a negative amount, which is not clamped. NaN or infinite arguments give a NaN or infinite result.
func TaxOwed(netCapitalGains, taxRatePercent float64) float64 {
	if !isFinite(netCapitalGains) || !isFinite(taxRatePercent) {
		return netCapitalGains * (taxRatePercent / 100)
	}

	rate := decimal.NewFromFloat(taxRatePercent).Div(decimal.NewFromInt(100))

	return decimal.NewFromFloat(netCapitalGains).Mul(rate).Round(2).InexactFloat64()
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
