// Package response implements the result of a capital gains tax calculation and its encodings.
package response

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/tslnc04/cgt-calculator/internal/cgt"
)

// Response is the result of a calculation along with the selections it was made for. Financial year and country are
// echoed for display and never affect the amounts.
type Response struct {
	FinancialYear   string             `json:"financialYear,omitempty"`
	Country         string             `json:"country,omitempty"`
	InvestmentType  cgt.InvestmentType `json:"investmentType"`
	IncomeRange     cgt.IncomeBracket  `json:"incomeRange"`
	CapitalGains    float64            `json:"capitalGains"`
	Discount        float64            `json:"discount"`
	NetCapitalGains float64            `json:"netCapitalGains"`
	TaxRate         float64            `json:"taxRate"`
	TaxOwed         float64            `json:"taxOwed"`
}

var csvHeader = []string{"capital_gains", "discount", "net_capital_gains", "tax_rate", "tax_owed"}

// New creates a response from the result of [cgt.Calculate] and the input it was calculated from.
func New(input cgt.Input, result cgt.Result) *Response {
	return &Response{
		InvestmentType:  input.InvestmentType,
		IncomeRange:     input.IncomeBracket,
		CapitalGains:    result.CapitalGains,
		Discount:        result.Discount,
		NetCapitalGains: result.NetCapitalGains,
		TaxRate:         result.TaxRate,
		TaxOwed:         result.TaxOwed,
	}
}

// WriteCSV writes a header row followed by the amounts. Money is formatted to cents and the tax rate as given.
func (response *Response) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)

	record := []string{
		formatMoney(response.CapitalGains),
		formatMoney(response.Discount),
		formatMoney(response.NetCapitalGains),
		strconv.FormatFloat(response.TaxRate, 'f', -1, 64),
		formatMoney(response.TaxOwed),
	}

	if err := writer.WriteAll([][]string{csvHeader, record}); err != nil {
		return err
	}

	return writer.Error()
}

// WriteJSON writes the response as a single JSON object.
func (response *Response) WriteJSON(w io.Writer) error {
	return json.NewEncoder(w).Encode(response)
}

func formatMoney(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
