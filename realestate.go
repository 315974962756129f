package networth

import (
	"encoding/json"
	"fmt"

	"github.com/etnz/networth/date"
)

// RealEstate is a property held outside of the entity positions.
type RealEstate struct {
	ID            string           `json:"id"`
	Currency      string           `json:"currency"`
	BasicInfo     BasicInfo        `json:"basic_info"`
	PurchaseInfo  PurchaseInfo     `json:"purchase_info"`
	ValuationInfo ValuationInfo    `json:"valuation_info"`
	Flows         []RealEstateFlow `json:"flows,omitempty"`
}

type BasicInfo struct {
	Name        string `json:"name"`
	IsResidence bool   `json:"is_residence"`
	IsRented    bool   `json:"is_rented"`
}

type PurchaseInfo struct {
	Date     *date.Date        `json:"date,omitempty"`
	Price    Decimal           `json:"price"`
	Expenses []PurchaseExpense `json:"expenses,omitempty"`
}

type PurchaseExpense struct {
	Concept     string  `json:"concept"`
	Amount      Decimal `json:"amount"`
	Description string  `json:"description,omitempty"`
}

type ValuationInfo struct {
	EstimatedMarketValue Decimal `json:"estimated_market_value"`
	AnnualAppreciation   Decimal `json:"annual_appreciation"`
}

// FlowSubtype qualifies a real estate flow.
type FlowSubtype string

const (
	LoanFlow      FlowSubtype = "LOAN"
	RentFlow      FlowSubtype = "RENT"
	SupplyFlow    FlowSubtype = "SUPPLY"
	CostFlow      FlowSubtype = "COST"
	InsuranceFlow FlowSubtype = "INSURANCE"
)

// RealEstateFlow links a property to a periodic flow. Only LOAN flows carry a
// typed payload, decoded once when the flow is read.
type RealEstateFlow struct {
	FlowSubtype FlowSubtype  `json:"flow_subtype"`
	Description string       `json:"description,omitempty"`
	Loan        *LoanPayload `json:"-"`
}

type LoanPayload struct {
	Type                 string  `json:"type,omitempty"`
	LoanAmount           Decimal `json:"loan_amount"`
	PrincipalOutstanding Decimal `json:"principal_outstanding"`
	InterestRate         Decimal `json:"interest_rate"`
	Euribor              Decimal `json:"euribor"`
}

type jsonRealEstateFlow struct {
	FlowSubtype FlowSubtype     `json:"flow_subtype"`
	Description string          `json:"description,omitempty"`
	Payload     json.RawMessage `json:"payload,omitempty"`
}

func (f *RealEstateFlow) UnmarshalJSON(data []byte) error {
	var j jsonRealEstateFlow
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	*f = RealEstateFlow{FlowSubtype: j.FlowSubtype, Description: j.Description}
	if j.FlowSubtype != LoanFlow || len(j.Payload) == 0 || string(j.Payload) == "null" {
		return nil
	}
	var loan LoanPayload
	if err := json.Unmarshal(j.Payload, &loan); err != nil {
		return fmt.Errorf("invalid loan payload: %w", err)
	}
	f.Loan = &loan
	return nil
}

func (f RealEstateFlow) MarshalJSON() ([]byte, error) {
	j := jsonRealEstateFlow{FlowSubtype: f.FlowSubtype, Description: f.Description}
	if f.Loan != nil {
		p, err := json.Marshal(f.Loan)
		if err != nil {
			return nil, err
		}
		j.Payload = p
	}
	return json.Marshal(j)
}

// loans returns the loan payloads of the property.
func (re RealEstate) loans() []LoanPayload {
	var loans []LoanPayload
	for _, f := range re.Flows {
		if f.FlowSubtype == LoanFlow && f.Loan != nil {
			loans = append(loans, *f.Loan)
		}
	}
	return loans
}

// OwnedEquity is the market value minus the principal outstanding of the
// property's loans, never negative. It is expressed in the property currency.
func (re RealEstate) OwnedEquity() Decimal {
	debt := Zero()
	for _, l := range re.loans() {
		debt = debt.Add(l.PrincipalOutstanding.OrZero())
	}
	return Max(Zero(), re.ValuationInfo.EstimatedMarketValue.OrZero().Sub(debt))
}

// InitialInvestment is the purchase price and expenses not financed by a loan, never negative.
func (re RealEstate) InitialInvestment() Decimal {
	cost := re.PurchaseInfo.Price.OrZero()
	for _, e := range re.PurchaseInfo.Expenses {
		cost = cost.Add(e.Amount.OrZero())
	}
	financed := Zero()
	for _, l := range re.loans() {
		amount := l.LoanAmount.OrZero()
		if amount.IsZero() {
			amount = l.PrincipalOutstanding.OrZero()
		}
		financed = financed.Add(amount)
	}
	return Max(Zero(), cost.Sub(financed))
}

// RealEstateEquityTotal sums the owned equity of the properties in target currency.
func RealEstateEquityTotal(list []RealEstate, target string, rates ExchangeRates) Decimal {
	total := Zero()
	for _, re := range list {
		total = total.Add(Convert(re.OwnedEquity(), re.Currency, target, rates))
	}
	return total
}

// RealEstateInitialInvestmentTotal sums the initial investment of the properties in target currency.
func RealEstateInitialInvestmentTotal(list []RealEstate, target string, rates ExchangeRates) Decimal {
	total := Zero()
	for _, re := range list {
		total = total.Add(Convert(re.InitialInvestment(), re.Currency, target, rates))
	}
	return total
}

// FilterRealEstateByOptions returns the properties that the options include.
func FilterRealEstateByOptions(list []RealEstate, opts DashboardOptions) []RealEstate {
	if !opts.IncludeRealEstate {
		return []RealEstate{}
	}
	if opts.IncludeResidences {
		return list
	}
	kept := make([]RealEstate, 0, len(list))
	for _, re := range list {
		if !re.BasicInfo.IsResidence {
			kept = append(kept, re)
		}
	}
	return kept
}
