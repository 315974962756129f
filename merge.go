package networth

import "strconv"

// DisplayItem is one resolved entry of a merged list.
type DisplayItem[P, D any] struct {
	Key        string // identity, unique in the list
	Position   P
	Draft      *D     // the draft this item comes from, if any
	OriginalID string // id of the synced entry, if any
	IsManual   bool
	IsDirty    bool
	IsNew      bool // only exists as a draft
}

// MergeOptions carries the entries to merge and the callbacks that interpret them.
//
// ShouldIncludeDraft, PositionKey and MergeDraftMetadata are optional.
type MergeOptions[P, D any] struct {
	Positions []P
	Drafts    []D

	PositionOriginalID     func(P) string
	DraftOriginalID        func(D) string
	DraftLocalID           func(D) string
	BuildPositionFromDraft func(D) P
	IsManualPosition       func(P) bool
	IsDraftDirty           func(D) bool
	IsEntryDeleted         func(id string) bool

	ShouldIncludeDraft func(D) bool
	PositionKey        func(P) string
	MergeDraftMetadata func(P, D) P
}

// MergeDisplayItems merges synced positions with local drafts.
//
// Synced positions come first in their original order, deleted ones removed
// and overridden ones replaced by their draft. Drafts that exist only locally
// follow, in draft order. Every item has a distinct Key: the original id,
// else the draft local id, else the position key, else its index. The first
// position of an identity wins. When several drafts override the same
// original id, the last one, the most recent edit, is used.
//
// The function is pure: the same input gives the same output.
func MergeDisplayItems[P, D any](o MergeOptions[P, D]) []DisplayItem[P, D] {
	overrides := make(map[string]int, len(o.Drafts))
	for i, d := range o.Drafts {
		if id := o.DraftOriginalID(d); id != "" {
			overrides[id] = i
		}
	}

	items := make([]DisplayItem[P, D], 0, len(o.Positions)+len(o.Drafts))
	seen := make(map[string]bool, cap(items))
	handled := make(map[int]bool)

	for i, p := range o.Positions {
		id := o.PositionOriginalID(p)
		if id != "" && o.IsEntryDeleted(id) {
			continue
		}
		item := DisplayItem[P, D]{Position: p, OriginalID: id, IsManual: o.IsManualPosition(p)}

		if di, ok := overrides[id]; ok && id != "" {
			d := o.Drafts[di]
			handled[di] = true
			item.IsDirty = o.IsDraftDirty(d)
			switch {
			case o.MergeDraftMetadata != nil:
				item.Position = o.MergeDraftMetadata(p, d)
			case item.IsDirty:
				item.Position = o.BuildPositionFromDraft(d)
			}
			item.Draft = &d
		}

		item.Key = id
		if item.Key == "" && item.Draft != nil {
			item.Key = o.DraftLocalID(*item.Draft)
		}
		if item.Key == "" && o.PositionKey != nil {
			item.Key = o.PositionKey(item.Position)
		}
		if item.Key == "" {
			item.Key = "position-" + strconv.Itoa(i)
		}
		if seen[item.Key] {
			continue
		}
		seen[item.Key] = true
		items = append(items, item)
	}

	for i, d := range o.Drafts {
		if handled[i] || o.DraftOriginalID(d) != "" {
			// overrides without a synced counterpart are not shown
			continue
		}
		localID := o.DraftLocalID(d)
		if localID == "" || seen[localID] {
			continue
		}
		if o.ShouldIncludeDraft != nil && !o.ShouldIncludeDraft(d) {
			continue
		}
		seen[localID] = true
		items = append(items, DisplayItem[P, D]{
			Key:      localID,
			Position: o.BuildPositionFromDraft(d),
			Draft:    &d,
			IsManual: true,
			IsDirty:  o.IsDraftDirty(d),
			IsNew:    true,
		})
	}
	return items
}
