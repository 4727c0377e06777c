package host

import "github.com/gnashcore/avm1/internal/strtab"

// StringTable is the host-facing view of component B spec 6 names
// separately from the internal interning API: `find`/`value` by plain
// string, with folding decided once by the caller's declaring version
// (spec 3.2/9) rather than re-decided per call.
type StringTable interface {
	// Find returns s's ID if it has been interned, under the given
	// fold decision.
	Find(s string, foldCase bool) (strtab.ID, bool)

	// Value returns the canonical spelling for id.
	Value(id strtab.ID) string
}

// StringTableAdapter exposes an *strtab.StringTable as the host-facing
// StringTable interface. The underlying table already implements both
// methods with the right signatures; this type exists so packages that
// only need the narrower host view don't have to import strtab's
// Intern/Count surface too.
type StringTableAdapter struct {
	*strtab.StringTable
}

// NewStringTableAdapter wraps st.
func NewStringTableAdapter(st *strtab.StringTable) StringTableAdapter {
	return StringTableAdapter{StringTable: st}
}
