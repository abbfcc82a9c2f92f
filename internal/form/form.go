// Package form holds the state of a capital gains tax form: the text entered for each field, the tax rate derived
// from the selected income range, and the outputs of the last calculation.
package form

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/tslnc04/cgt-calculator/internal/cgt"
	"github.com/tslnc04/cgt-calculator/internal/response"
)

// ErrMissingFields is returned by [Form.Calculate] when a required field is empty. Its message is suitable for
// showing to the user as is.
var ErrMissingFields = errors.New("Please fill in all required fields before calculating.") //nolint:stylecheck

// ErrOverflow is returned by [Form.Calculate] when the amounts entered are too large to calculate with.
var ErrOverflow = errors.New("amounts are too large to calculate")

// State is the state of a form.
type State int

const (
	// Editing is the state of a new or reset form, and of a form edited since its last calculation.
	Editing State = iota
	// Calculated is the state of a form whose outputs come from a calculation of its current fields.
	Calculated
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Calculated:
		return "calculated"
	default:
		return ""
	}
}

// Financial years and countries offered by the form. Neither affects the calculation.
const (
	FinancialYear2023 = "FY 2023-24"
	FinancialYear2022 = "FY 2022-23"

	CountryAustralia = "Australia"
	CountryOther     = "Other"
)

// FinancialYears returns the financial years offered by the form, most recent first.
func FinancialYears() []string {
	return []string{FinancialYear2023, FinancialYear2022}
}

// Countries returns the countries offered by the form.
func Countries() []string {
	return []string{CountryAustralia, CountryOther}
}

// Form is the state of a capital gains tax form. Its zero value is an empty form in the [Editing] state, equal to the
// result of [New] and of [Form.Reset]. Setters return the form so they can be chained.
type Form struct {
	financialYear  string
	country        string
	purchasePrice  string
	salePrice      string
	expenses       string
	investmentType string
	incomeRange    string
	taxRate        float64

	state           State
	capitalGains    float64
	discount        float64
	netCapitalGains float64
	taxToBePaid     float64
}

// New creates an empty form.
func New() *Form {
	return &Form{}
}

// SetFinancialYear sets the financial year. It is informational only.
func (form *Form) SetFinancialYear(value string) *Form {
	form.financialYear = value
	form.edited()

	return form
}

// SetCountry sets the country. It is informational only.
func (form *Form) SetCountry(value string) *Form {
	form.country = value
	form.edited()

	return form
}

// SetPurchasePrice sets the purchase price as typed by the user. It is not parsed until [Form.Calculate].
func (form *Form) SetPurchasePrice(value string) *Form {
	form.purchasePrice = value
	form.edited()

	return form
}

// SetSalePrice sets the sale price as typed by the user. It is not parsed until [Form.Calculate].
func (form *Form) SetSalePrice(value string) *Form {
	form.salePrice = value
	form.edited()

	return form
}

// SetExpenses sets the expenses as typed by the user. It is not parsed until [Form.Calculate].
func (form *Form) SetExpenses(value string) *Form {
	form.expenses = value
	form.edited()

	return form
}

// SetInvestmentType sets the investment type. Any value is accepted, but only [cgt.LongTerm] and [cgt.ShortTerm]
// receive a discount.
func (form *Form) SetInvestmentType(value string) *Form {
	form.investmentType = value
	form.edited()

	return form
}

// SetIncomeRange sets the annual income range and immediately derives the tax rate from it. An unrecognized range
// derives the rate for an income of 0.
func (form *Form) SetIncomeRange(value string) *Form {
	form.incomeRange = value
	form.taxRate = cgt.TaxRate(cgt.BracketCeiling(cgt.IncomeBracket(value)))
	form.edited()

	glog.V(10).Infof("Income range %q selected, tax rate is now %v", value, form.taxRate)

	return form
}

// TaxRate returns the tax rate derived from the selected income range, or 0 if none has been selected.
func (form *Form) TaxRate() float64 {
	return form.taxRate
}

// State returns the current state of the form.
func (form *Form) State() State {
	return form.state
}

// CapitalGains returns the capital gains from the last calculation.
func (form *Form) CapitalGains() float64 {
	return form.capitalGains
}

// Discount returns the discount from the last calculation.
func (form *Form) Discount() float64 {
	return form.discount
}

// NetCapitalGains returns the net capital gains from the last calculation.
func (form *Form) NetCapitalGains() float64 {
	return form.netCapitalGains
}

// TaxToBePaid returns the tax from the last calculation.
func (form *Form) TaxToBePaid() float64 {
	return form.taxToBePaid
}

// Calculate validates the form and, if every required field is filled in and parses, calculates the tax and moves the
// form to the [Calculated] state. On error the form is left unchanged. A missing field yields [ErrMissingFields] and an
// overflowing calculation yields [ErrOverflow].
func (form *Form) Calculate() (*response.Response, error) {
	input, err := form.input()
	if err != nil {
		glog.V(10).Infof("Not calculating: %s", err)

		return nil, err
	}

	result := cgt.Calculate(input)

	if err := checkFinite(result); err != nil {
		glog.V(10).Infof("Not calculating: %s", err)

		return nil, err
	}

	form.state = Calculated
	form.capitalGains = result.CapitalGains
	form.discount = result.Discount
	form.netCapitalGains = result.NetCapitalGains
	form.taxToBePaid = result.TaxOwed

	resp := response.New(input, result)
	resp.FinancialYear = form.financialYear
	resp.Country = form.country

	return resp, nil
}

// Reset clears every field and output and returns the form to the [Editing] state.
func (form *Form) Reset() *Form {
	*form = Form{}

	return form
}

// input applies the validation gate and parses the price fields. It does not modify the form.
func (form *Form) input() (cgt.Input, error) {
	required := []string{form.purchasePrice, form.salePrice, form.expenses, form.investmentType, form.incomeRange}
	for _, value := range required {
		if strings.TrimSpace(value) == "" {
			return cgt.Input{}, ErrMissingFields
		}
	}

	purchasePrice, err := parseAmount("purchase price", form.purchasePrice)
	if err != nil {
		return cgt.Input{}, err
	}

	salePrice, err := parseAmount("sale price", form.salePrice)
	if err != nil {
		return cgt.Input{}, err
	}

	expenses, err := parseAmount("expenses", form.expenses)
	if err != nil {
		return cgt.Input{}, err
	}

	return cgt.Input{
		PurchasePrice:  purchasePrice,
		SalePrice:      salePrice,
		Expenses:       expenses,
		InvestmentType: cgt.InvestmentType(form.investmentType),
		IncomeBracket:  cgt.IncomeBracket(form.incomeRange),
	}, nil
}

func (form *Form) edited() {
	form.state = Editing
}

// checkFinite returns an error if any amount in the result overflowed.
func checkFinite(result cgt.Result) error {
	amounts := []struct {
		name  string
		value float64
	}{
		{"capital gains", result.CapitalGains},
		{"discount", result.Discount},
		{"net capital gains", result.NetCapitalGains},
		{"tax owed", result.TaxOwed},
	}

	for _, amount := range amounts {
		if math.IsNaN(amount.value) || math.IsInf(amount.value, 0) {
			return fmt.Errorf("%w: %s is %v", ErrOverflow, amount.name, amount.value)
		}
	}

	return nil
}

func parseAmount(field, value string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("%s is not a valid number: %w", field, err)
	}

	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("%s must be a finite number: %s", field, value)
	}

	return amount, nil
}
