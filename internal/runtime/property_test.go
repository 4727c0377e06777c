package runtime

import (
	"testing"

	"github.com/gnashcore/avm1/internal/strtab"
	"github.com/gnashcore/avm1/internal/value"
)

func TestPropertyStoreSetGet(t *testing.T) {
	st := strtab.New()
	id := st.Intern("x", false)

	ps := newPropertyStore()
	ps.SetSlot(id, 0, value.Number(1), 0)

	p, ok := ps.Get(id, 0)
	if !ok {
		t.Fatal("expected property to exist")
	}
	if p.Value.AsNumber() != 1 {
		t.Errorf("Value = %v, want 1", p.Value.AsNumber())
	}
}

func TestPropertyStoreWildcardNamespace(t *testing.T) {
	st := strtab.New()
	id := st.Intern("x", false)

	ps := newPropertyStore()
	ps.SetSlot(id, 0, value.Number(1), 0)

	p, ok := ps.Get(id, 5)
	if !ok || p.Value.AsNumber() != 1 {
		t.Error("a namespace-0 property should be visible to any namespace lookup")
	}
}

func TestPropertyStoreDeleteSemantics(t *testing.T) {
	st := strtab.New()
	a := st.Intern("a", false)
	b := st.Intern("b", false)

	ps := newPropertyStore()
	ps.SetSlot(a, 0, value.Number(1), DontDelete)
	ps.SetSlot(b, 0, value.Number(2), 0)

	if found, deleted := ps.Delete(a, 0); !found || deleted {
		t.Errorf("deleting a dontDelete property = (%v, %v), want (true, false)", found, deleted)
	}
	if found, deleted := ps.Delete(b, 0); !found || !deleted {
		t.Errorf("deleting a plain property = (%v, %v), want (true, true)", found, deleted)
	}
	missing := st.Intern("missing", false)
	if found, deleted := ps.Delete(missing, 0); found || deleted {
		t.Errorf("deleting a missing property = (%v, %v), want (false, false)", found, deleted)
	}
}

func TestPropertyStoreVisitNonHiddenSkipsDontEnum(t *testing.T) {
	st := strtab.New()
	a := st.Intern("a", false)
	b := st.Intern("b", false)
	c := st.Intern("c", false)

	ps := newPropertyStore()
	ps.SetSlot(a, 0, value.Number(1), 0)
	ps.SetSlot(b, 0, value.Number(2), DontEnum)
	ps.SetSlot(c, 0, value.Number(3), 0)

	var seen []strtab.ID
	ps.VisitNonHidden(func(name strtab.ID, ns uint32, p *Property) bool {
		seen = append(seen, name)
		return true
	})
	if len(seen) != 2 || seen[0] != a || seen[1] != c {
		t.Errorf("VisitNonHidden order/content = %v, want [a, c]", seen)
	}
	if !ps.Has(b, 0) {
		t.Error("a dontEnum property should still satisfy `in`")
	}
}

func TestApplyPropFlags(t *testing.T) {
	f := DontDelete | DontEnum
	f = ApplyPropFlags(f, ReadOnly, DontEnum)
	if !f.Has(ReadOnly) || f.Has(DontEnum) || !f.Has(DontDelete) {
		t.Errorf("ApplyPropFlags result = %v, want DontDelete|ReadOnly", f)
	}
}
