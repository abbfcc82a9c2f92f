/*
Cgtcalc calculates the capital gains tax owed on the sale of an investment in Australia. It prints the capital gains,
discount, net capital gains, tax rate and tax owed.

Usage:

	cgtcalc [flags]

The flags are:

	-purchase string
	        Purchase price of the investment in dollars. Required.

	-sale string
	        Sale price of the investment in dollars. Required.

	-expenses string
	        Expenses incurred buying and selling the investment in dollars. Required.

	-t, -type string
	        Investment type, either "Long Term" or "Short Term". Required.

	-i, -income string
	        Annual income range. One of "$0 - $16,200", "$16,201 - $45,000", "$45,001 - $120,000",
	        "$120,001 - $180,000", or "$180,001+". Required.

	-y, -year string
	        Financial year, either "FY 2023-24" or "FY 2022-23". Informational only.

	-country string
	        Country, either "Australia" or "Other". Informational only.

	-json
	        Print the result as JSON instead of CSV.

	-h, -help
	        Print this help message.
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/tslnc04/cgt-calculator/internal/cgt"
	"github.com/tslnc04/cgt-calculator/internal/form"
)

//nolint:lll
const usage = `Cgtcalc calculates the capital gains tax owed on the sale of an investment in Australia. It prints the capital gains,
discount, net capital gains, tax rate and tax owed.

Usage:

	cgtcalc [flags]

The flags are:

	-purchase string
	        Purchase price of the investment in dollars. Required.

	-sale string
	        Sale price of the investment in dollars. Required.

	-expenses string
	        Expenses incurred buying and selling the investment in dollars. Required.

	-t, -type string
	        Investment type, either "Long Term" or "Short Term". Required.

	-i, -income string
	        Annual income range. One of "$0 - $16,200", "$16,201 - $45,000", "$45,001 - $120,000",
	        "$120,001 - $180,000", or "$180,001+". Required.

	-y, -year string
	        Financial year, either "FY 2023-24" or "FY 2022-23". Informational only.

	-country string
	        Country, either "Australia" or "Other". Informational only.

	-json
	        Print the result as JSON instead of CSV.

	-h, -help
	        Print this help message.
`

var (
	help           bool
	asJSON         bool
	purchasePrice  string
	salePrice      string
	expenses       string
	financialYear  string
	country        string
	investmentType cgt.InvestmentType
	incomeRange    cgt.IncomeBracket
)

func init() {
	const (
		helpUsage     = "print this help message"
		jsonUsage     = "print the result as JSON instead of CSV"
		purchaseUsage = "purchase price of the investment in dollars"
		saleUsage     = "sale price of the investment in dollars"
		expensesUsage = "expenses incurred buying and selling the investment in dollars"
		typeUsage     = "investment type, either \"Long Term\" or \"Short Term\""
		incomeUsage   = "annual income range, such as \"$45,001 - $120,000\""
		yearUsage     = "financial year, either \"FY 2023-24\" or \"FY 2022-23\""
		countryUsage  = "country, either \"Australia\" or \"Other\""
	)

	flag.BoolVar(&help, "help", false, helpUsage)
	flag.BoolVar(&help, "h", false, helpUsage+" (shorthand)")

	flag.BoolVar(&asJSON, "json", false, jsonUsage)

	flag.StringVar(&purchasePrice, "purchase", "", purchaseUsage)
	flag.StringVar(&salePrice, "sale", "", saleUsage)
	flag.StringVar(&expenses, "expenses", "", expensesUsage)

	flag.Var(&investmentType, "type", typeUsage)
	flag.Var(&investmentType, "t", typeUsage+" (shorthand)")

	flag.Var(&incomeRange, "income", incomeUsage)
	flag.Var(&incomeRange, "i", incomeUsage+" (shorthand)")

	flag.StringVar(&financialYear, "year", "", yearUsage)
	flag.StringVar(&financialYear, "y", "", yearUsage+" (shorthand)")

	flag.StringVar(&country, "country", "", countryUsage)

	// Tell glog to log to stderr.
	_ = flag.Set("logtostderr", "true")
}

func main() {
	flag.Parse()

	if help {
		fmt.Print(usage)

		os.Exit(0)
	}

	if flag.NArg() != 0 {
		glog.Errorf("unexpected arguments: %v", flag.Args())
		fmt.Print(usage)

		os.Exit(2)
	}

	calculator := form.New().
		SetFinancialYear(financialYear).
		SetCountry(country).
		SetPurchasePrice(purchasePrice).
		SetSalePrice(salePrice).
		SetExpenses(expenses).
		SetInvestmentType(investmentType.String()).
		SetIncomeRange(incomeRange.String())

	response, err := calculator.Calculate()
	if errors.Is(err, form.ErrMissingFields) {
		glog.Error(err)
		fmt.Print(usage)

		os.Exit(2)
	}

	if err != nil {
		glog.Errorf("failed to calculate: %s", err)

		os.Exit(2)
	}

	if asJSON {
		err = response.WriteJSON(os.Stdout)
	} else {
		err = response.WriteCSV(os.Stdout)
	}

	if err != nil {
		glog.Errorf("failed to write result: %s", err)

		os.Exit(1)
	}
}
