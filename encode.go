package networth

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// Snapshot is what a full refresh loads: positions, properties, pending flows
// and, optionally, the rates the positions were loaded with.
type Snapshot struct {
	Positions    EntitiesPosition `json:"positions"`
	RealEstate   []RealEstate     `json:"real_estate,omitempty"`
	PendingFlows []PendingFlow    `json:"pending_flows,omitempty"`
	Rates        ExchangeRates    `json:"rates,omitempty"`
}

// DecodeSnapshot reads a JSON snapshot.
//
// The "positions" member is either the {"positions": {...}} object of an
// EntitiesPosition or directly the map of positions.
func DecodeSnapshot(r io.Reader) (*Snapshot, error) {
	var j struct {
		Positions    json.RawMessage `json:"positions"`
		RealEstate   []RealEstate    `json:"real_estate"`
		PendingFlows []PendingFlow   `json:"pending_flows"`
		Rates        ExchangeRates   `json:"rates"`
	}
	if err := json.NewDecoder(r).Decode(&j); err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}
	s := &Snapshot{RealEstate: j.RealEstate, PendingFlows: j.PendingFlows, Rates: j.Rates}
	if len(j.Positions) == 0 || string(j.Positions) == "null" {
		s.Positions.Positions = map[string]GlobalPosition{}
		return s, nil
	}

	var wrapped EntitiesPosition
	if err := json.Unmarshal(j.Positions, &wrapped); err == nil && wrapped.Positions != nil {
		s.Positions = wrapped
		return s, nil
	}
	var flat map[string]GlobalPosition
	if err := json.Unmarshal(j.Positions, &flat); err != nil {
		return nil, fmt.Errorf("invalid snapshot positions: %w", err)
	}
	s.Positions.Positions = flat
	return s, nil
}

// DecodeSnapshotFile reads a JSON snapshot from a file.
func DecodeSnapshotFile(filename string) (*Snapshot, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := DecodeSnapshot(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// DraftSet is the persisted form of a DraftSession.
type DraftSet[E any] struct {
	Drafts  []ManualDraft[E] `json:"drafts,omitempty"`
	Deleted []string         `json:"deleted,omitempty"`
}

// Session opens a session on the set. synced holds the synced entries by id,
// see NewDraftSession. Entries compare by their JSON form, so an override
// reloaded from a file equals its synced entry until edited.
func (s DraftSet[E]) Session(synced map[string]E) *DraftSession[E] {
	session := NewDraftSession(s.Drafts, synced, sameJSON[E])
	for _, id := range s.Deleted {
		session.DeleteByOriginalID(id)
	}
	return session
}

func sameJSON[E any](a, b E) bool {
	ja, err := json.Marshal(a)
	if err != nil {
		return false
	}
	jb, err := json.Marshal(b)
	return err == nil && bytes.Equal(ja, jb)
}

// DraftSetOf captures the state of a session.
func DraftSetOf[E any](s *DraftSession[E]) DraftSet[E] {
	return DraftSet[E]{Drafts: s.Drafts(), Deleted: s.Deleted()}
}

// Drafts is the file format of the manual drafts, per product.
type Drafts struct {
	Accounts DraftSet[AccountEntry] `json:"ACCOUNT,omitzero"`
	Deposits DraftSet[DepositEntry] `json:"DEPOSIT,omitzero"`
	Stocks   DraftSet[StockEntry]   `json:"STOCK_ETF,omitzero"`
	Funds    DraftSet[FundEntry]    `json:"FUND,omitzero"`
}

// Apply applies every draft set to positions.
func (d *Drafts) Apply(positions *EntitiesPosition) *EntitiesPosition {
	positions = ApplyDrafts(positions, AccountsOf, d.Accounts.Session(SyncedEntries(positions, AccountsOf)))
	positions = ApplyDrafts(positions, DepositsOf, d.Deposits.Session(SyncedEntries(positions, DepositsOf)))
	positions = ApplyDrafts(positions, StocksOf, d.Stocks.Session(SyncedEntries(positions, StocksOf)))
	return ApplyDrafts(positions, FundsOf, d.Funds.Session(SyncedEntries(positions, FundsOf)))
}

// DecodeDraftsFile reads a drafts file. A missing file is an empty set of drafts.
func DecodeDraftsFile(filename string) (*Drafts, error) {
	data, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return &Drafts{}, nil
	}
	if err != nil {
		return nil, err
	}
	var d Drafts
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("invalid drafts file %q: %w", filename, err)
	}
	return &d, nil
}

// EncodeDraftsFile writes a drafts file.
func EncodeDraftsFile(filename string, d *Drafts) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, append(data, '\n'), 0o644)
}
