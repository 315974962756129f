package networth

import "slices"

// ManualEntityType is the entity type of entities created from drafts.
const ManualEntityType = "MANUAL"

// MergeEntries merges the synced entries of one entity with the drafts of the
// session. include selects the local drafts that belong to the entity.
func MergeEntries[E Valued](entries []E, manual bool, s *DraftSession[E], include func(ManualDraft[E]) bool) []DisplayItem[E, ManualDraft[E]] {
	return MergeDisplayItems(MergeOptions[E, ManualDraft[E]]{
		Positions:              entries,
		Drafts:                 s.Drafts(),
		PositionOriginalID:     func(e E) string { return e.EntryID() },
		DraftOriginalID:        func(d ManualDraft[E]) string { return d.OriginalID },
		DraftLocalID:           func(d ManualDraft[E]) string { return d.LocalID },
		BuildPositionFromDraft: func(d ManualDraft[E]) E { return d.Entry },
		IsManualPosition:       func(E) bool { return manual },
		IsDraftDirty:           s.IsDraftDirty,
		IsEntryDeleted:         s.IsEntryDeleted,
		ShouldIncludeDraft:     include,
		PositionKey:            func(e E) string { return e.EntryID() },
		MergeDraftMetadata:     func(_ E, d ManualDraft[E]) E { return d.Entry },
	})
}

// ApplyDrafts returns a copy of positions in which the product entries
// selected by product reflect the session: overrides replace synced entries,
// deleted entries are gone and local drafts are added to their entity.
// Drafts for new entities create a position keyed by the entity name.
//
// positions is not modified.
func ApplyDrafts[E Valued](positions *EntitiesPosition, product func(*Products) *Entries[E], s *DraftSession[E]) *EntitiesPosition {
	out := &EntitiesPosition{Positions: make(map[string]GlobalPosition)}
	for _, key := range positions.Keys() {
		gp := positions.Positions[key]
		entityID := gp.Entity.ID
		if entityID == "" {
			entityID = key
		}
		entries := product(&gp.Products)
		items := MergeEntries(entries.Entries, gp.Entity.Type == ManualEntityType, s, func(d ManualDraft[E]) bool {
			return !d.IsNewEntity && d.EntityID == entityID
		})
		*entries = Entries[E]{Entries: positionsOf(items)}
		out.Positions[key] = gp
	}

	var newEntities []string
	for _, d := range s.Drafts() {
		if d.IsNewEntity && d.OriginalID == "" && !slices.Contains(newEntities, d.EntityName) {
			newEntities = append(newEntities, d.EntityName)
		}
	}
	for _, name := range newEntities {
		key := name
		if _, exists := out.Positions[key]; exists {
			key = "manual:" + name
		}
		gp := GlobalPosition{Entity: Entity{ID: key, Name: name, Type: ManualEntityType}}
		items := MergeEntries(nil, true, s, func(d ManualDraft[E]) bool {
			return d.IsNewEntity && d.EntityName == name
		})
		*product(&gp.Products) = Entries[E]{Entries: positionsOf(items)}
		out.Positions[key] = gp
	}
	return out
}

func positionsOf[E Valued](items []DisplayItem[E, ManualDraft[E]]) []E {
	entries := make([]E, len(items))
	for i, it := range items {
		entries[i] = it.Position
	}
	return entries
}

// SyncedEntries indexes by id the entries of positions selected by product.
// Entries without id are left out.
func SyncedEntries[E Valued](positions *EntitiesPosition, product func(*Products) *Entries[E]) map[string]E {
	m := make(map[string]E)
	for _, key := range positions.Keys() {
		gp := positions.Positions[key]
		for _, e := range product(&gp.Products).Entries {
			if id := e.EntryID(); id != "" {
				m[id] = e
			}
		}
	}
	return m
}

// Product accessors for ApplyDrafts.

func AccountsOf(p *Products) *Entries[AccountEntry] { return &p.Accounts }
func DepositsOf(p *Products) *Entries[DepositEntry] { return &p.Deposits }
func StocksOf(p *Products) *Entries[StockEntry]     { return &p.Stocks }
func FundsOf(p *Products) *Entries[FundEntry]       { return &p.Funds }
