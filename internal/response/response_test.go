package response

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/tslnc04/cgt-calculator/internal/cgt"
)

func newTestResponse() *Response {
	input := cgt.Input{
		PurchasePrice:  1000,
		SalePrice:      5000,
		Expenses:       200,
		InvestmentType: cgt.LongTerm,
		IncomeBracket:  cgt.Bracket120000,
	}

	return New(input, cgt.Calculate(input))
}

func TestWriteCSV(t *testing.T) {
	buf := &bytes.Buffer{}

	if err := newTestResponse().WriteCSV(buf); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	expected := "capital_gains,discount,net_capital_gains,tax_rate,tax_owed\n3800.00,1900.00,1900.00,37,703.00\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	buf := &bytes.Buffer{}

	response := newTestResponse()
	response.FinancialYear = "FY 2023-24"

	if err := response.WriteJSON(buf); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	decoded := map[string]interface{}{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("unexpected error decoding: %s", err)
	}

	if decoded["investmentType"] != "Long Term" {
		t.Errorf("expected investment type Long Term, got %v", decoded["investmentType"])
	}

	if decoded["taxOwed"] != 703.0 {
		t.Errorf("expected tax owed 703, got %v", decoded["taxOwed"])
	}

	if decoded["financialYear"] != "FY 2023-24" {
		t.Errorf("expected financial year FY 2023-24, got %v", decoded["financialYear"])
	}

	if _, ok := decoded["country"]; ok {
		t.Error("expected empty country to be omitted")
	}
}
