package networth

import (
	"github.com/etnz/networth/date"
)

// FlowType tells the direction of a pending flow.
type FlowType string

const (
	Earning FlowType = "EARNING"
	Expense FlowType = "EXPENSE"
)

// PendingFlow is a scheduled cash movement not yet realized.
type PendingFlow struct {
	ID       string     `json:"id"`
	Name     string     `json:"name,omitempty"`
	FlowType FlowType   `json:"flow_type"`
	Category string     `json:"category,omitempty"`
	Amount   Decimal    `json:"amount"`
	Currency string     `json:"currency"`
	Enabled  bool       `json:"enabled"`
	Date     *date.Date `json:"date,omitempty"`
}

// Active reports whether the flow counts toward forward-looking totals on day today.
func (f PendingFlow) Active(today date.Date) bool {
	if !f.Enabled {
		return false
	}
	return f.Date == nil || f.Date.IsZero() || !f.Date.Before(today)
}

// PendingFlowsTotal nets the active flows in target currency: earnings add, anything else subtracts.
func PendingFlowsTotal(flows []PendingFlow, target string, rates ExchangeRates, today date.Date) Decimal {
	total := Zero()
	for _, f := range flows {
		if !f.Active(today) {
			continue
		}
		v := Convert(f.Amount, f.Currency, target, rates)
		if f.FlowType == Earning {
			total = total.Add(v)
		} else {
			total = total.Sub(v)
		}
	}
	return total
}
