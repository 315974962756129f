package networth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSnapshotFile(t *testing.T) {
	fixToday(t, today)
	s, err := DecodeSnapshotFile("testdata/snapshot.json")
	require.NoError(t, err)

	assert.Equal(t, []string{"bank", "broker"}, s.Positions.Keys())
	bank := s.Positions.Positions["bank"].Products
	require.Len(t, bank.Accounts.Entries, 2)
	assert.Equal(t, "1100", bank.Accounts.Entries[1].Total.String())
	require.NotNil(t, bank.Deposits.Entries[0].Maturity)
	assert.Equal(t, "2030-01-15", bank.Deposits.Entries[0].Maturity.String())

	broker := s.Positions.Positions["broker"].Products
	require.NotNil(t, broker.Crowdlending)
	assert.Equal(t, "750", broker.Crowdlending.Total.String())
	require.Len(t, broker.Crypto.Entries[0].Assets, 2)

	require.Len(t, s.RealEstate, 2)
	require.NotNil(t, s.RealEstate[0].Flows[0].Loan)
	assert.Len(t, s.PendingFlows, 3)

	// accounts 2500.5 + 1000, deposit 10000, stock 9000, bond 1000,
	// crypto 500 + 454.54..., gold 4000, crowdlending 750, pending 1550
	// and rental equity 90000.
	nw := TotalNetWorth(&s.Positions, "EUR", s.Rates, s.PendingFlows, s.RealEstate, DefaultDashboardOptions())
	assertDecimal(t, "120755.05", nw, 2)
}

func TestDecodeSnapshot_FlatPositions(t *testing.T) {
	s, err := DecodeSnapshot(strings.NewReader(`{"positions": {"e1": {"entity": {"id": "e1", "name": "E1"}, "products": {}}}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"e1"}, s.Positions.Keys())

	s, err = DecodeSnapshot(strings.NewReader(`{}`))
	require.NoError(t, err)
	assert.Empty(t, s.Positions.Keys())

	_, err = DecodeSnapshot(strings.NewReader(`{"positions": 12}`))
	assert.Error(t, err)
}

func TestDraftsFile(t *testing.T) {
	filename := t.TempDir() + "/drafts.json"
	missing, err := DecodeDraftsFile(filename)
	require.NoError(t, err)
	assert.Empty(t, missing.Accounts.Drafts)

	s := missing.Accounts.Session(nil)
	s.Add("bank", "My Bank", AccountEntry{Name: "Cash", Total: D(5), Currency: "EUR"})
	s.DeleteByOriginalID("acc-2")
	d := &Drafts{Accounts: DraftSetOf(s)}
	require.NoError(t, EncodeDraftsFile(filename, d))

	back, err := DecodeDraftsFile(filename)
	require.NoError(t, err)
	require.Len(t, back.Accounts.Drafts, 1)
	assert.Equal(t, []string{"acc-2"}, back.Accounts.Deleted)
	assert.True(t, back.Accounts.Session(nil).IsEntryDeleted("acc-2"))
}

func TestDraftsFile_OverrideDirtyAfterReload(t *testing.T) {
	filename := t.TempDir() + "/drafts.json"
	synced := map[string]AccountEntry{
		"acc-1": {ID: "acc-1", Name: "Current", Total: D("2500.50"), Currency: "EUR"},
		"acc-2": {ID: "acc-2", Name: "Dollars", Total: D(1100), Currency: "USD"},
	}

	s := DraftSet[AccountEntry]{}.Session(synced)
	s.Override("acc-1", "bank", synced["acc-1"])
	s.EditByOriginalID("acc-1", func(e *AccountEntry) { e.Total = D(3000) })
	s.Override("acc-2", "bank", synced["acc-2"])
	require.NoError(t, EncodeDraftsFile(filename, &Drafts{Accounts: DraftSetOf(s)}))

	back, err := DecodeDraftsFile(filename)
	require.NoError(t, err)
	reopened := back.Accounts.Session(synced)
	drafts := reopened.Drafts()
	require.Len(t, drafts, 2)
	assert.Equal(t, "acc-1", drafts[0].OriginalID)
	assert.True(t, reopened.IsDraftDirty(drafts[0]), "the edited override is still dirty")
	assert.False(t, reopened.IsDraftDirty(drafts[1]), "an unchanged override stays clean")
}
