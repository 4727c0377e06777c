// Package strtab implements the case-folded string intern pool described
// as component B ("StringTable"): a map from interned name to a small
// integer ID, shared by every Object's PropertyStore so that property
// lookups compare IDs rather than strings.
//
// Folding is never decided at lookup time. Per spec 3.2/9, the decision
// is made once, at intern time, keyed off the *declaring* SWF version:
// a name declared under SWF <= 6 folds case and both spellings resolve
// to the same ID forever after; a name declared under SWF >= 7 is
// interned case-sensitively and a different-case spelling gets its own
// ID. This mirrors the teacher's MethodRegistry
// (internal/interp/runtime/method_registry.go): a mutex-protected
// map-plus-slice registry handing out small integer IDs, with a
// secondary index for name-based lookup.
package strtab

import (
	"sync"

	"golang.org/x/text/cases"
)

// ID is an intern-pool index. The zero value never names a real string.
type ID uint32

// InvalidID is returned by Find when the name has never been interned.
const InvalidID ID = 0

var folder = cases.Fold()

// StringTable is the intern pool. The zero value is not usable; use New.
type StringTable struct {
	mu sync.RWMutex

	// entries holds the canonical (first-seen) spelling, indexed by ID.
	// entries[0] is the unused sentinel slot for InvalidID.
	entries []string

	// exact maps a case-sensitive spelling to its ID, used for names
	// interned under a non-folding (SWF >= 7) declaration.
	exact map[string]ID

	// folded maps a case-folded key to its ID, used for names interned
	// under a folding (SWF <= 6) declaration. Once a name has been
	// folded in, a later exact-case lookup of any spelling of it still
	// resolves here first (see Find).
	folded map[string]ID
}

// New returns an empty StringTable.
func New() *StringTable {
	return &StringTable{
		entries: make([]string, 1, 64), // slot 0 reserved for InvalidID
		exact:   make(map[string]ID),
		folded:  make(map[string]ID),
	}
}

// Intern returns the ID for s, allocating a new one if s (under the
// fold-or-not rule requested) has never been seen. foldCase must be the
// declaring name's version-derived fold decision (swfver.Version.FoldsCase),
// not the caller's.
//
// Once a spelling has been interned with foldCase=true, every later
// Intern/Find of any case variant of that spelling — even with
// foldCase=false — resolves to the same ID: a name's fold behavior is a
// property of how it was first declared, not of each individual access.
func (t *StringTable) Intern(s string, foldCase bool) ID {
	key := folder.String(s)

	t.mu.RLock()
	if id, ok := t.folded[key]; ok {
		t.mu.RUnlock()
		return id
	}
	if !foldCase {
		if id, ok := t.exact[s]; ok {
			t.mu.RUnlock()
			return id
		}
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()

	// Re-check under the write lock: another goroutine may have interned
	// the same name while we upgraded from read to write.
	if id, ok := t.folded[key]; ok {
		return id
	}
	if !foldCase {
		if id, ok := t.exact[s]; ok {
			return id
		}
	}

	id := ID(len(t.entries))
	t.entries = append(t.entries, s)
	if foldCase {
		t.folded[key] = id
	} else {
		t.exact[s] = id
	}
	return id
}

// Find looks up s without interning it. foldCase selects which index to
// consult first, mirroring Intern's precedence (a previously-folded
// name always wins, even for a foldCase=false probe).
func (t *StringTable) Find(s string, foldCase bool) (ID, bool) {
	key := folder.String(s)

	t.mu.RLock()
	defer t.mu.RUnlock()

	if id, ok := t.folded[key]; ok {
		return id, true
	}
	if !foldCase {
		if id, ok := t.exact[s]; ok {
			return id, true
		}
	}
	return InvalidID, false
}

// Value returns the canonical (first-interned) spelling for id, or ""
// if id is not InvalidID and was never allocated by this table.
func (t *StringTable) Value(id ID) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if int(id) <= 0 || int(id) >= len(t.entries) {
		return ""
	}
	return t.entries[id]
}

// Count returns the number of distinct IDs allocated so far.
func (t *StringTable) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries) - 1
}

