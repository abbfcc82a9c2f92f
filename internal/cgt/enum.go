package cgt

import (
	"errors"
	"fmt"
)

// ErrInvalidEnumeration is returned by the strict parsers when a value is not one of the recognized labels.
var ErrInvalidEnumeration = errors.New("invalid enumeration")

// InvestmentType is the holding-period classification of an investment. It determines the discount applied to
// positive capital gains.
type InvestmentType string

const (
	// LongTerm investments receive a 50% discount on positive capital gains.
	LongTerm InvestmentType = "Long Term"
	// ShortTerm investments receive a 30% discount on positive capital gains.
	ShortTerm InvestmentType = "Short Term"
)

// InvestmentTypes returns the recognized investment types.
func InvestmentTypes() []InvestmentType {
	return []InvestmentType{LongTerm, ShortTerm}
}

// ParseInvestmentType returns the investment type with the given label. Unlike [Discount], it does not accept
// unrecognized values and instead returns an error wrapping [ErrInvalidEnumeration].
func ParseInvestmentType(value string) (InvestmentType, error) {
	for _, investmentType := range InvestmentTypes() {
		if string(investmentType) == value {
			return investmentType, nil
		}
	}

	return "", fmt.Errorf("%w: investment type %q", ErrInvalidEnumeration, value)
}

func (t InvestmentType) String() string {
	return string(t)
}

// Set sets the investment type from a string. It is necessary to implement the [flag.Value] interface.
func (t *InvestmentType) Set(value string) error {
	investmentType, err := ParseInvestmentType(value)
	if err != nil {
		return err
	}

	*t = investmentType

	return nil
}

// IncomeBracket is one of the five labeled annual income ranges. Each maps to a fixed ceiling, see [BracketCeiling].
type IncomeBracket string

const (
	// Bracket16200 is the lowest income range.
	Bracket16200 IncomeBracket = "$0 - $16,200"
	// Bracket45000 is the income range up to $45,000.
	Bracket45000 IncomeBracket = "$16,201 - $45,000"
	// Bracket120000 is the income range up to $120,000.
	Bracket120000 IncomeBracket = "$45,001 - $120,000"
	// Bracket180000 is the income range up to $180,000.
	Bracket180000 IncomeBracket = "$120,001 - $180,000"
	// Bracket180001 is the open ended top income range.
	Bracket180001 IncomeBracket = "$180,001+"
)

var bracketCeilings = map[IncomeBracket]float64{
	Bracket16200:  16200,
	Bracket45000:  45000,
	Bracket120000: 120000,
	Bracket180000: 180000,
	Bracket180001: 180001,
}

// IncomeBrackets returns the recognized income brackets in ascending order.
func IncomeBrackets() []IncomeBracket {
	return []IncomeBracket{Bracket16200, Bracket45000, Bracket120000, Bracket180000, Bracket180001}
}

// ParseIncomeBracket returns the income bracket with the given label. Unlike [BracketCeiling], it does not accept
// unrecognized labels and instead returns an error wrapping [ErrInvalidEnumeration].
func ParseIncomeBracket(value string) (IncomeBracket, error) {
	bracket := IncomeBracket(value)
	if _, ok := bracketCeilings[bracket]; !ok {
		return "", fmt.Errorf("%w: income range %q", ErrInvalidEnumeration, value)
	}

	return bracket, nil
}

func (b IncomeBracket) String() string {
	return string(b)
}

// Set sets the income bracket from a string. It is necessary to implement the [flag.Value] interface.
func (b *IncomeBracket) Set(value string) error {
	bracket, err := ParseIncomeBracket(value)
	if err != nil {
		return err
	}

	*b = bracket

	return nil
}
