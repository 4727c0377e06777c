package host

import (
	"testing"

	"github.com/gnashcore/avm1/internal/value"
)

func TestMemoryDisplayRootResolvesToObject(t *testing.T) {
	d := NewMemoryDisplay(value.ObjectID(1))
	obj, isMovieClip, ok := d.ResolveDisplay(d.Root())
	if !ok || !isMovieClip || obj != 1 {
		t.Fatalf("ResolveDisplay(root) = (%v, %v, %v), want (1, true, true)", obj, isMovieClip, ok)
	}
}

func TestMemoryDisplayAddLiveCharAndParent(t *testing.T) {
	d := NewMemoryDisplay(value.ObjectID(1))
	ref := d.AddLiveChar("/child", "/", value.ObjectID(2))

	obj, _, ok := d.ResolveDisplay(ref)
	if !ok || obj != 2 {
		t.Fatalf("ResolveDisplay(child) = (%v, %v)", obj, ok)
	}
	parent, ok := d.Parent(ref)
	if !ok || parent.Path != "/" {
		t.Errorf("Parent(child) = (%v, %v), want (/, true)", parent, ok)
	}
	if _, ok := d.Parent(d.Root()); ok {
		t.Error("the root should have no parent")
	}
}

func TestMemoryDisplayRemoveDisplayObjectDropsSubtree(t *testing.T) {
	d := NewMemoryDisplay(value.ObjectID(1))
	d.AddLiveChar("/child", "/", value.ObjectID(2))
	d.AddLiveChar("/child/grandchild", "/child", value.ObjectID(3))

	d.RemoveDisplayObject(value.DisplayRef{Path: "/child"})

	if _, _, ok := d.ResolveDisplay(value.DisplayRef{Path: "/child"}); ok {
		t.Error("removed node should no longer resolve")
	}
	if _, _, ok := d.ResolveDisplay(value.DisplayRef{Path: "/child/grandchild"}); ok {
		t.Error("removing a node should also remove its descendants")
	}
	if _, _, ok := d.ResolveDisplay(d.Root()); !ok {
		t.Error("removing a child should not affect the root")
	}
}

func TestMemoryDisplayLevels(t *testing.T) {
	d := NewMemoryDisplay(value.ObjectID(1))
	d.AddLevel(1, value.ObjectID(5))

	obj, ok := d.Level(1)
	if !ok || obj != 5 {
		t.Fatalf("Level(1) = (%v, %v), want (5, true)", obj, ok)
	}

	d.DropLevel(1)
	if _, ok := d.Level(1); ok {
		t.Error("DropLevel should remove the level")
	}
}

func TestMemoryDisplayXYRoundTrip(t *testing.T) {
	d := NewMemoryDisplay(value.ObjectID(1))
	ref := d.Root()
	d.SetXY(ref, 10, 20)

	x, y := d.XY(ref)
	if x != 10 || y != 20 {
		t.Errorf("XY = (%v, %v), want (10, 20)", x, y)
	}
}

func TestMemoryDisplayScaleDefaultsTo100(t *testing.T) {
	d := NewMemoryDisplay(value.ObjectID(1))
	xs, ys := d.Scale(d.Root())
	if xs != 100 || ys != 100 {
		t.Errorf("Scale on a fresh node = (%v, %v), want (100, 100)", xs, ys)
	}
}

func TestMemoryDisplaySetMatrixDerivesScaleAndPosition(t *testing.T) {
	d := NewMemoryDisplay(value.ObjectID(1))
	ref := d.Root()
	d.SetMatrix(ref, 2, 0, 0, 2, 50, 75)

	x, y := d.XY(ref)
	if x != 50 || y != 75 {
		t.Errorf("XY after SetMatrix = (%v, %v), want (50, 75)", x, y)
	}
	xs, ys := d.Scale(ref)
	if xs != 200 || ys != 200 {
		t.Errorf("Scale after SetMatrix = (%v, %v), want (200, 200)", xs, ys)
	}
}

func TestMemoryDisplayPointInShapeUsesOverride(t *testing.T) {
	d := NewMemoryDisplay(value.ObjectID(1))
	ref := d.Root()
	d.Shapes["/"] = func(x, y float64) bool { return x > 0 && y > 0 }

	if !d.PointInShape(ref, 1, 1) {
		t.Error("PointInShape should report true inside the overridden shape")
	}
	if d.PointInShape(ref, -1, -1) {
		t.Error("PointInShape should report false outside the overridden shape")
	}
}

func TestMemoryDisplayPointInShapeDefaultsFalse(t *testing.T) {
	d := NewMemoryDisplay(value.ObjectID(1))
	if d.PointInShape(d.Root(), 0, 0) {
		t.Error("a node with no registered shape should never hit-test true")
	}
}

func TestMemoryDisplayGotoFrame(t *testing.T) {
	d := NewMemoryDisplay(value.ObjectID(1))
	ref := d.Root()
	d.GotoFrame(ref, 5)
	if got := d.CurrentFrame(ref); got != 5 {
		t.Errorf("CurrentFrame = %d, want 5", got)
	}
}

func TestMemoryDisplayGotoLabel(t *testing.T) {
	d := NewMemoryDisplay(value.ObjectID(1))
	ref := d.Root()
	d.SetLabel(ref, "intro", 3)

	if !d.GotoLabel(ref, "intro") {
		t.Fatal("GotoLabel should find a registered label")
	}
	if got := d.CurrentFrame(ref); got != 3 {
		t.Errorf("CurrentFrame after GotoLabel = %d, want 3", got)
	}
	if d.GotoLabel(ref, "nosuchlabel") {
		t.Error("GotoLabel should report false for an unregistered label")
	}
}

func TestMemoryDisplayFrameLoaded(t *testing.T) {
	d := NewMemoryDisplay(value.ObjectID(1))
	ref := d.Root()
	// newNode defaults framesLoaded to 1, so frame 0 has streamed in but
	// frame 1 has not.
	if !d.FrameLoaded(ref, 0) {
		t.Error("frame 0 should be loaded on a fresh node")
	}
	if d.FrameLoaded(ref, 1) {
		t.Error("frame 1 should not be loaded on a fresh node")
	}
}

func TestMemoryDisplayPlayHalt(t *testing.T) {
	d := NewMemoryDisplay(value.ObjectID(1))
	ref := d.Root()
	d.Halt(ref)
	if d.nodes["/"].playing {
		t.Error("Halt should stop the timeline")
	}
	d.Play(ref)
	if !d.nodes["/"].playing {
		t.Error("Play should resume the timeline")
	}
}

func TestMemoryDisplayToggleQualityCycles(t *testing.T) {
	d := NewMemoryDisplay(value.ObjectID(1))
	if d.HighQuality() != 0 {
		t.Fatalf("initial HighQuality = %d, want 0", d.HighQuality())
	}
	d.ToggleQuality()
	if d.HighQuality() != 1 {
		t.Errorf("HighQuality after one toggle = %d, want 1", d.HighQuality())
	}
	d.ToggleQuality()
	d.ToggleQuality()
	if d.HighQuality() != 0 {
		t.Errorf("HighQuality after three toggles = %d, want 0 (wraps at 3)", d.HighQuality())
	}
}

func TestMemoryDisplayGetURLRecordsRequest(t *testing.T) {
	d := NewMemoryDisplay(value.ObjectID(1))
	d.GetURL("http://example.com", "_blank", "")
	d.GetURL("http://example.com/submit", "_self", "a=1")

	if len(d.GetURLRequests) != 2 {
		t.Fatalf("GetURLRequests = %v, want 2 entries", d.GetURLRequests)
	}
	if d.GetURLRequests[1] != "getURL http://example.com/submit -> _self (a=1)" {
		t.Errorf("second request = %q, want the vars suffix appended", d.GetURLRequests[1])
	}
}

func TestMemoryDisplayCloneSpriteIsSiblingOfSource(t *testing.T) {
	d := NewMemoryDisplay(value.ObjectID(1))
	srcRef := d.AddLiveChar("/src", "/", value.ObjectID(2))

	cloneRef := d.CloneSprite(srcRef, "clone", 10)
	if cloneRef.Path != "/clone" {
		t.Errorf("clone path = %q, want %q", cloneRef.Path, "/clone")
	}
	obj, _, ok := d.ResolveDisplay(cloneRef)
	if !ok || obj != value.ObjectID(2) {
		t.Errorf("clone should resolve to the source's object, got (%v, %v)", obj, ok)
	}
}

func TestMemoryDisplayStartDragEndDrag(t *testing.T) {
	d := NewMemoryDisplay(value.ObjectID(1))
	ref := d.Root()
	d.StartDrag(ref, false, false, [4]float64{})
	if d.Dragging != "/" {
		t.Errorf("Dragging = %q, want %q", d.Dragging, "/")
	}
	d.EndDrag()
	if d.Dragging != "" {
		t.Error("EndDrag should clear the dragging path")
	}
}
