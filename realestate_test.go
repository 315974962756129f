package networth

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealEstate_OwnedEquity(t *testing.T) {
	tests := []struct {
		name string
		re   RealEstate
		want string
	}{
		{"no loan", property("a", 1000, false), "1000"},
		{"loan", property("a", 1000, false, 400), "600"},
		{"two loans", property("a", 1000, false, 400, 100), "500"},
		{"underwater", property("a", 1000, false, 1500), "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.re.OwnedEquity(); got.String() != tt.want {
				t.Errorf("OwnedEquity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRealEstate_InitialInvestment(t *testing.T) {
	re := RealEstate{
		Currency: "EUR",
		PurchaseInfo: PurchaseInfo{
			Price:    D(200000),
			Expenses: []PurchaseExpense{{Concept: "notary", Amount: D(5000)}},
		},
		Flows: []RealEstateFlow{
			{FlowSubtype: LoanFlow, Loan: &LoanPayload{LoanAmount: D(150000), PrincipalOutstanding: D(120000)}},
			{FlowSubtype: LoanFlow, Loan: &LoanPayload{PrincipalOutstanding: D(10000)}},
			{FlowSubtype: RentFlow},
		},
	}
	assert.Equal(t, "45000", re.InitialInvestment().String())

	rates := ExchangeRates{"USD": {"EUR": D("0.9")}}
	assert.Equal(t, "50000", RealEstateInitialInvestmentTotal([]RealEstate{re}, "USD", rates).String())
}

func TestRealEstateFlow_JSON(t *testing.T) {
	const in = `{
		"id": "flat",
		"currency": "EUR",
		"basic_info": {"name": "Flat", "is_residence": true},
		"valuation_info": {"estimated_market_value": "250000"},
		"flows": [
			{"flow_subtype": "LOAN", "payload": {"loan_amount": 200000, "principal_outstanding": 180000.5}},
			{"flow_subtype": "RENT", "payload": {"amount": 900}},
			{"flow_subtype": "LOAN"}
		]
	}`
	var re RealEstate
	require.NoError(t, json.Unmarshal([]byte(in), &re))

	require.Len(t, re.Flows, 3)
	require.NotNil(t, re.Flows[0].Loan)
	assert.Equal(t, "180000.5", re.Flows[0].Loan.PrincipalOutstanding.String())
	assert.Nil(t, re.Flows[1].Loan)
	assert.Nil(t, re.Flows[2].Loan)
	assert.True(t, re.BasicInfo.IsResidence)
	assert.Equal(t, "69999.5", re.OwnedEquity().String())

	out, err := json.Marshal(re.Flows[0])
	require.NoError(t, err)
	assert.Contains(t, string(out), `"payload":{`)
}
