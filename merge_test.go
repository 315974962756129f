package networth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// entry and draft are minimal stand-ins for the merge callbacks.
type entry struct {
	ID     string
	Name   string
	Server string // only known by the server
	Manual bool
}

type draft struct {
	LocalID    string
	OriginalID string
	Name       string
	Entity     string
	Dirty      bool
}

func mergeOptions(positions []entry, drafts []draft, deleted ...string) MergeOptions[entry, draft] {
	return MergeOptions[entry, draft]{
		Positions:              positions,
		Drafts:                 drafts,
		PositionOriginalID:     func(e entry) string { return e.ID },
		DraftOriginalID:        func(d draft) string { return d.OriginalID },
		DraftLocalID:           func(d draft) string { return d.LocalID },
		BuildPositionFromDraft: func(d draft) entry { return entry{ID: d.OriginalID, Name: d.Name, Manual: true} },
		IsManualPosition:       func(e entry) bool { return e.Manual },
		IsDraftDirty:           func(d draft) bool { return d.Dirty },
		IsEntryDeleted: func(id string) bool {
			for _, d := range deleted {
				if d == id {
					return true
				}
			}
			return false
		},
		MergeDraftMetadata: func(e entry, d draft) entry {
			e.Name = d.Name
			return e
		},
	}
}

func keys[P, D any](items []DisplayItem[P, D]) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Key
	}
	return out
}

func TestMerge_OverridePrecedence(t *testing.T) {
	positions := []entry{{ID: "p1", Name: "synced", Server: "kept"}}
	drafts := []draft{{OriginalID: "p1", Name: "edited", Dirty: true}}

	got := MergeDisplayItems(mergeOptions(positions, drafts))

	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].Key)
	assert.Equal(t, "p1", got[0].OriginalID)
	assert.Equal(t, entry{ID: "p1", Name: "edited", Server: "kept"}, got[0].Position)
	assert.True(t, got[0].IsDirty)
	assert.False(t, got[0].IsNew)
	require.NotNil(t, got[0].Draft)
	assert.Equal(t, "edited", got[0].Draft.Name)
}

func TestMerge_OverrideWithoutMetadataMerge(t *testing.T) {
	positions := []entry{{ID: "p1", Name: "synced"}, {ID: "p2", Name: "synced"}}
	drafts := []draft{
		{OriginalID: "p1", Name: "edited", Dirty: true},
		{OriginalID: "p2", Name: "unchanged", Dirty: false},
	}
	opts := mergeOptions(positions, drafts)
	opts.MergeDraftMetadata = nil

	got := MergeDisplayItems(opts)

	require.Len(t, got, 2)
	assert.Equal(t, "edited", got[0].Position.Name, "dirty drafts are rebuilt")
	assert.Equal(t, "synced", got[1].Position.Name, "clean drafts keep the synced entry")
}

func TestMerge_SoftDelete(t *testing.T) {
	positions := []entry{{ID: "p1"}, {ID: "p2"}}
	drafts := []draft{{OriginalID: "p2", Name: "stale", Dirty: true}}

	got := MergeDisplayItems(mergeOptions(positions, drafts, "p2"))

	assert.Equal(t, []string{"p1"}, keys(got))
}

func TestMerge_NewDrafts(t *testing.T) {
	positions := []entry{{ID: "p1"}, {ID: "p2"}}
	drafts := []draft{
		{LocalID: "l1", Name: "new", Entity: "bank", Dirty: true},
		{LocalID: "l2", Name: "elsewhere", Entity: "broker", Dirty: true},
		{OriginalID: "gone", Name: "orphan override"},
		{LocalID: "l1", Name: "duplicate"},
	}
	opts := mergeOptions(positions, drafts)
	opts.ShouldIncludeDraft = func(d draft) bool { return d.Entity == "bank" }

	got := MergeDisplayItems(opts)

	assert.Equal(t, []string{"p1", "p2", "l1"}, keys(got))
	last := got[2]
	assert.True(t, last.IsNew)
	assert.True(t, last.IsManual)
	assert.True(t, last.IsDirty)
	assert.Equal(t, "new", last.Position.Name)
}

func TestMerge_Identity(t *testing.T) {
	positions := []entry{
		{ID: "p1", Name: "first"},
		{ID: "p1", Name: "duplicate"},
		{Name: "anonymous"},
		{Name: "anonymous"},
	}
	got := MergeDisplayItems(mergeOptions(positions, nil))
	assert.Equal(t, []string{"p1", "position-2", "position-3"}, keys(got))
	assert.Equal(t, "first", got[0].Position.Name)

	opts := mergeOptions(positions, nil)
	opts.PositionKey = func(e entry) string { return "key-" + e.Name }
	got = MergeDisplayItems(opts)
	assert.Equal(t, []string{"p1", "key-anonymous"}, keys(got))
}

func TestMerge_OverrideWinsOverDuplicate(t *testing.T) {
	positions := []entry{{ID: "p1", Name: "a"}, {ID: "p1", Name: "b"}}
	drafts := []draft{{OriginalID: "p1", Name: "edited", Dirty: true}}

	got := MergeDisplayItems(mergeOptions(positions, drafts))

	require.Len(t, got, 1)
	assert.Equal(t, "edited", got[0].Position.Name)
}

func TestMerge_LatestOverrideWins(t *testing.T) {
	positions := []entry{{ID: "p1", Name: "synced"}}
	drafts := []draft{
		{OriginalID: "p1", Name: "older", Dirty: true},
		{OriginalID: "p1", Name: "latest", Dirty: true},
	}

	got := MergeDisplayItems(mergeOptions(positions, drafts))

	require.Len(t, got, 1)
	assert.Equal(t, "latest", got[0].Position.Name)
	assert.Equal(t, "latest", got[0].Draft.Name)
}

func TestMerge_Idempotent(t *testing.T) {
	positions := []entry{{ID: "p1"}, {ID: "p2", Manual: true}, {Name: "anonymous"}}
	drafts := []draft{
		{OriginalID: "p1", Name: "edited", Dirty: true},
		{LocalID: "l1", Name: "new"},
	}
	first := MergeDisplayItems(mergeOptions(positions, drafts))
	second := MergeDisplayItems(mergeOptions(positions, drafts))
	assert.Equal(t, first, second)
	assert.True(t, first[1].IsManual)
}
