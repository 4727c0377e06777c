package strtab

import "testing"

func TestInternAssignsStableIDs(t *testing.T) {
	st := New()
	id1 := st.Intern("foo", false)
	id2 := st.Intern("foo", false)
	if id1 != id2 {
		t.Errorf("re-interning the same exact name should return the same ID, got %d and %d", id1, id2)
	}
	if id1 == InvalidID {
		t.Error("Intern should never return InvalidID for a real name")
	}
}

func TestExactInternIsCaseSensitive(t *testing.T) {
	st := New()
	lower := st.Intern("foo", false)
	upper := st.Intern("FOO", false)
	if lower == upper {
		t.Error("exact (non-folding) intern should give distinct IDs per case spelling")
	}
}

func TestFoldedInternSharesID(t *testing.T) {
	st := New()
	lower := st.Intern("foo", true)
	upper := st.Intern("FOO", true)
	mixed := st.Intern("FoO", true)
	if lower != upper || lower != mixed {
		t.Errorf("folded intern should share one ID across case variants, got %d %d %d", lower, upper, mixed)
	}
}

func TestFoldedDeclarationWinsOverLaterExactProbe(t *testing.T) {
	st := New()
	folded := st.Intern("bar", true)
	// A later lookup for a different-case spelling, even without
	// requesting folding, must still resolve to the name's declared
	// (folded) identity rather than allocating a fresh exact ID.
	id, ok := st.Find("BAR", false)
	if !ok || id != folded {
		t.Errorf("Find(\"BAR\", false) = (%d, %v), want (%d, true)", id, ok, folded)
	}
}

func TestFindMissingReturnsFalse(t *testing.T) {
	st := New()
	if _, ok := st.Find("nope", false); ok {
		t.Error("Find on an unseen name should report false")
	}
}

func TestValueRoundTrip(t *testing.T) {
	st := New()
	id := st.Intern("Target", false)
	if got := st.Value(id); got != "Target" {
		t.Errorf("Value() = %q, want %q", got, "Target")
	}
}

func TestValueCanonicalSpellingIsFirstSeen(t *testing.T) {
	st := New()
	id := st.Intern("MixedCase", true)
	st.Intern("mixedcase", true)
	st.Intern("MIXEDCASE", true)
	if got := st.Value(id); got != "MixedCase" {
		t.Errorf("Value() = %q, want canonical first-seen spelling %q", got, "MixedCase")
	}
}

func TestValueOfInvalidIDIsEmpty(t *testing.T) {
	st := New()
	if got := st.Value(InvalidID); got != "" {
		t.Errorf("Value(InvalidID) = %q, want empty", got)
	}
	if got := st.Value(ID(999)); got != "" {
		t.Errorf("Value(unallocated) = %q, want empty", got)
	}
}

func TestCount(t *testing.T) {
	st := New()
	st.Intern("a", false)
	st.Intern("b", false)
	st.Intern("a", false)
	if got := st.Count(); got != 2 {
		t.Errorf("Count() = %d, want 2", got)
	}
}
