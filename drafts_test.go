package networth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDrafts(t *testing.T) {
	positions := snapshotOf(
		accounts("bank",
			AccountEntry{ID: "a1", Name: "Current", Total: D(100), Currency: "EUR"},
			AccountEntry{ID: "a2", Name: "Savings", Total: D(1000), Currency: "EUR"},
		),
		accounts("other", AccountEntry{ID: "a3", Total: D(10), Currency: "EUR"}),
	)
	s := NewDraftSession[AccountEntry](nil, nil, nil)
	s.Override("a1", "bank", positions.Positions["bank"].Products.Accounts.Entries[0])
	s.EditByOriginalID("a1", func(e *AccountEntry) { e.Total = D(200) })
	s.DeleteByOriginalID("a2")
	s.Add("bank", "", AccountEntry{Name: "Cash", Total: D(5), Currency: "EUR"})
	s.AddEntity("Mattress", AccountEntry{Name: "Cash", Total: D(7), Currency: "EUR"})

	got := ApplyDrafts(positions, AccountsOf, s)

	bank := got.Positions["bank"].Products.Accounts.Entries
	require.Len(t, bank, 2)
	assert.Equal(t, "200", bank[0].Total.String())
	assert.Equal(t, "Cash", bank[1].Name)
	assert.Len(t, got.Positions["other"].Products.Accounts.Entries, 1)

	mattress, ok := got.Positions["Mattress"]
	require.True(t, ok)
	assert.Equal(t, ManualEntityType, mattress.Entity.Type)
	require.Len(t, mattress.Products.Accounts.Entries, 1)

	// the edits show in every aggregate
	assert.Equal(t, "222", TotalAssets(got, "EUR", nil, nil).String())
	items := EntityDistribution(got, "EUR", nil, nil)
	require.Len(t, items, 3)
	assert.Equal(t, "bank", items[0].ID)
	assert.Equal(t, "205", items[0].Value.String())

	// the snapshot is untouched
	assert.Equal(t, "1110", TotalAssets(positions, "EUR", nil, nil).String())
}

func TestApplyDrafts_NoDrafts(t *testing.T) {
	positions := snapshotOf(accounts("bank", AccountEntry{ID: "a1", Total: D(100), Currency: "EUR"}))
	got := ApplyDrafts(positions, AccountsOf, NewDraftSession[AccountEntry](nil, nil, nil))
	assert.Equal(t, positions.Positions["bank"].Products.Accounts.Entries, got.Positions["bank"].Products.Accounts.Entries)
}
