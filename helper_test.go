package networth

import (
	"testing"

	"github.com/etnz/networth/date"
	"github.com/stretchr/testify/assert"
)

// EUR is a helper for test to create a euro amount from a const.
func EUR(v float64) MonetaryEntry { return Money(D(v), "EUR") }

// assertDecimal checks that got, rounded to places, reads as want.
func assertDecimal(t *testing.T, want string, got Decimal, places int) {
	t.Helper()
	assert.Equal(t, want, got.StringFixed(places))
}

// fixToday pins the day used for pending flows for the duration of the test.
func fixToday(t *testing.T, today date.Date) {
	t.Helper()
	old := now
	now = func() date.Date { return today }
	t.Cleanup(func() { now = old })
}

func ptr[T any](v T) *T { return &v }

// snapshotOf builds a snapshot from entity positions keyed by entity id.
func snapshotOf(positions ...GlobalPosition) *EntitiesPosition {
	p := &EntitiesPosition{Positions: make(map[string]GlobalPosition)}
	for _, gp := range positions {
		p.Positions[gp.Entity.ID] = gp
	}
	return p
}

func deposits(entityID string, entries ...DepositEntry) GlobalPosition {
	return GlobalPosition{
		Entity:   Entity{ID: entityID, Name: "Entity " + entityID},
		Products: Products{Deposits: Entries[DepositEntry]{Entries: entries}},
	}
}

func accounts(entityID string, entries ...AccountEntry) GlobalPosition {
	return GlobalPosition{
		Entity:   Entity{ID: entityID, Name: "Entity " + entityID},
		Products: Products{Accounts: Entries[AccountEntry]{Entries: entries}},
	}
}

// property returns a real estate valued at market with loans of the given principal outstanding.
func property(id string, market float64, residence bool, principals ...float64) RealEstate {
	re := RealEstate{
		ID:            id,
		Currency:      "EUR",
		BasicInfo:     BasicInfo{Name: id, IsResidence: residence},
		ValuationInfo: ValuationInfo{EstimatedMarketValue: D(market)},
	}
	for _, p := range principals {
		re.Flows = append(re.Flows, RealEstateFlow{
			FlowSubtype: LoanFlow,
			Loan:        &LoanPayload{PrincipalOutstanding: D(p)},
		})
	}
	return re
}
