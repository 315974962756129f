package networth

import (
	"reflect"
	"slices"

	"github.com/google/uuid"
)

// ManualDraft is a local override or addition of an entry of type E.
//
// OriginalID is set when the draft overrides a synced entry, LocalID when it
// was created locally.
type ManualDraft[E any] struct {
	LocalID     string `json:"local_id,omitempty"`
	OriginalID  string `json:"original_id,omitempty"`
	EntityID    string `json:"entity_id,omitempty"`
	EntityName  string `json:"entity_name,omitempty"`
	IsNewEntity bool   `json:"is_new_entity,omitempty"`
	Entry       E      `json:"entry"`
}

// DraftSession holds the drafts of one editing session.
//
// It knows the synced entries the overrides apply to, to tell which ones
// were changed, and the synced ids that were deleted. A DraftSession is not
// safe for concurrent use.
type DraftSession[E any] struct {
	drafts   []ManualDraft[E]
	baseline map[string]E
	deleted  map[string]bool
	equal    func(a, b E) bool
}

// NewDraftSession starts a session from drafts. synced holds the synced
// entries by id, an override is dirty when it differs from its synced entry.
// equal compares entries, nil means reflect.DeepEqual.
func NewDraftSession[E any](drafts []ManualDraft[E], synced map[string]E, equal func(a, b E) bool) *DraftSession[E] {
	if equal == nil {
		equal = func(a, b E) bool { return reflect.DeepEqual(a, b) }
	}
	s := &DraftSession[E]{
		drafts:   slices.Clone(drafts),
		baseline: make(map[string]E, len(synced)),
		deleted:  make(map[string]bool),
		equal:    equal,
	}
	for id, e := range synced {
		s.baseline[id] = e
	}
	return s
}

// Drafts returns a copy of the current drafts.
func (s *DraftSession[E]) Drafts() []ManualDraft[E] { return slices.Clone(s.drafts) }

// Deleted returns the deleted synced ids, sorted.
func (s *DraftSession[E]) Deleted() []string {
	ids := make([]string, 0, len(s.deleted))
	for id := range s.deleted {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Add creates a new local draft and returns its local id.
func (s *DraftSession[E]) Add(entityID, entityName string, entry E) string {
	id := uuid.NewString()
	s.drafts = append(s.drafts, ManualDraft[E]{
		LocalID:    id,
		EntityID:   entityID,
		EntityName: entityName,
		Entry:      entry,
	})
	return id
}

// AddEntity is like Add for an entity that does not exist yet.
func (s *DraftSession[E]) AddEntity(entityName string, entry E) string {
	id := s.Add("", entityName, entry)
	s.drafts[len(s.drafts)-1].IsNewEntity = true
	return id
}

// Override starts overriding the synced entry originalID, unless a draft
// already does. A deleted entry is restored.
func (s *DraftSession[E]) Override(originalID, entityID string, entry E) {
	delete(s.deleted, originalID)
	if s.index(func(d ManualDraft[E]) bool { return d.OriginalID == originalID }) >= 0 {
		return
	}
	if _, ok := s.baseline[originalID]; !ok {
		s.baseline[originalID] = entry
	}
	s.drafts = append(s.drafts, ManualDraft[E]{OriginalID: originalID, EntityID: entityID, Entry: entry})
}

// EditByOriginalID applies edit to the draft overriding originalID. It
// reports false if there is none.
func (s *DraftSession[E]) EditByOriginalID(originalID string, edit func(*E)) bool {
	return s.edit(func(d ManualDraft[E]) bool { return d.OriginalID == originalID }, edit)
}

// EditByLocalID applies edit to the local draft localID. It reports false if there is none.
func (s *DraftSession[E]) EditByLocalID(localID string, edit func(*E)) bool {
	return s.edit(func(d ManualDraft[E]) bool { return d.LocalID == localID }, edit)
}

func (s *DraftSession[E]) edit(match func(ManualDraft[E]) bool, edit func(*E)) bool {
	i := s.index(match)
	if i < 0 {
		return false
	}
	edit(&s.drafts[i].Entry)
	return true
}

// DeleteByOriginalID soft-deletes the synced entry and drops its override.
func (s *DraftSession[E]) DeleteByOriginalID(originalID string) {
	s.deleted[originalID] = true
	s.drafts = slices.DeleteFunc(s.drafts, func(d ManualDraft[E]) bool { return d.OriginalID == originalID })
}

// DeleteByLocalID drops a local draft. It reports false if there is none.
func (s *DraftSession[E]) DeleteByLocalID(localID string) bool {
	n := len(s.drafts)
	s.drafts = slices.DeleteFunc(s.drafts, func(d ManualDraft[E]) bool { return d.LocalID == localID })
	return len(s.drafts) != n
}

func (s *DraftSession[E]) index(match func(ManualDraft[E]) bool) int {
	return slices.IndexFunc(s.drafts, match)
}

// IsDraftDirty reports whether the draft needs saving: local drafts always do,
// overrides when their entry differs from the synced one, or when it is unknown.
func (s *DraftSession[E]) IsDraftDirty(d ManualDraft[E]) bool {
	if d.OriginalID == "" {
		return true
	}
	base, ok := s.baseline[d.OriginalID]
	if !ok {
		return true
	}
	return !s.equal(base, d.Entry)
}

// IsEntryDeleted reports whether the synced entry id was deleted in this session.
func (s *DraftSession[E]) IsEntryDeleted(id string) bool { return s.deleted[id] }
