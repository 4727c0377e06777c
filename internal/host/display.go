// Package host supplies the five host-provided collaborator contracts
// spec 6 names (DisplayGraph, CodeBuffer, StringTable, HostTimers,
// Loader) plus a minimal in-memory implementation of each, sufficient
// to drive the core from tests and the CLI without a real SWF player
// behind it. A production embedder supplies its own DisplayGraph (real
// render tree), CodeBuffer (mmap'd tag data), and Loader (real network
// I/O) and wires them the same way.
package host

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/gnashcore/avm1/internal/resolve"
	"github.com/gnashcore/avm1/internal/value"
)

// DisplayGraph is the host-provided display-list collaborator (spec 6):
// path/level lookup, live-character and level management, and the
// per-node queries magic properties and path resolution need.
// internal/resolve's narrower DisplayGraph (Root/Parent) and
// DisplayProperties interfaces, and internal/runtime's DisplayResolver,
// are all satisfied by any type implementing this one.
type DisplayGraph interface {
	// FindByPath resolves an absolute or relative slash-path against the
	// display list (distinct from internal/resolve's object-graph walk,
	// which also traverses plain scripted objects; this is the display
	// list only, as the host itself understands it).
	FindByPath(path string) (value.ObjectID, bool)

	// Level returns the display node occupying level n (0..65535), the
	// root timeline's own direct children addressed by _level0.._levelN.
	Level(n int) (value.ObjectID, bool)

	// AddLiveChar registers obj as a live display node at path, parented
	// under parent ("" for the root).
	AddLiveChar(path string, parent string, obj value.ObjectID) value.DisplayRef

	// AddLevel attaches obj as _level<n>, replacing whatever occupied
	// that level before (loadMovie's target-level semantics).
	AddLevel(n int, obj value.ObjectID) value.DisplayRef

	// DropLevel removes whatever occupies level n, if anything.
	DropLevel(n int)

	// RemoveDisplayObject detaches ref and everything beneath it from
	// the tree. Existing ObjectIDs referencing it become stale; a later
	// ResolveDisplay of the same path reports not-found.
	RemoveDisplayObject(ref value.DisplayRef)

	// Root returns the absolute root (_level0) display node.
	Root() value.DisplayRef

	// Parent returns ref's parent, or ok=false at the root.
	Parent(ref value.DisplayRef) (value.DisplayRef, bool)

	// ResolveDisplay dereferences ref to its live ObjectID. isMovieClip
	// distinguishes a movieclip-class node (which carries magic
	// properties) from a non-clip display node (e.g. a bare shape).
	ResolveDisplay(ref value.DisplayRef) (obj value.ObjectID, isMovieClip bool, ok bool)

	// PointInShape hit-tests (x, y) in stage coordinates against ref's
	// rendered shape.
	PointInShape(ref value.DisplayRef, x, y float64) bool

	// SetMatrix replaces ref's 2D transform wholesale (the `Matrix`
	// object's six components), as opposed to the individual _x/_y/
	// _xscale/... magic-property setters which each touch one component.
	SetMatrix(ref value.DisplayRef, a, b, c, d, tx, ty float64)

	DisplayProperties
	TimelineControl
}

// TimelineControl is the subset of spec 4.5's "Target / timeline"
// opcode family (GotoFrame, GotoLabel, NextFrame, PrevFrame, Play,
// Stop, ToggleQuality, StopSounds, GetURL, GetURL2, CloneSprite,
// RemoveSprite, StartDrag, EndDrag) that the interpreter delegates to
// the host outright rather than resolving against the object graph.
type TimelineControl interface {
	// GotoFrame seeks ref's timeline to the given 0-based frame number
	// without changing its play/stop state.
	GotoFrame(ref value.DisplayRef, frame int)

	// GotoLabel seeks ref's timeline to the frame named label, reporting
	// whether the label was found.
	GotoLabel(ref value.DisplayRef, label string) bool

	// FrameLoaded reports whether frame has streamed in yet, the test
	// WaitForFrame/WaitForFrame2 need to decide whether to skip ahead.
	FrameLoaded(ref value.DisplayRef, frame int) bool

	// Play resumes ref's timeline; Halt stops it (named to avoid
	// colliding with any future io.Closer-style Stop on this interface).
	Play(ref value.DisplayRef)
	Halt(ref value.DisplayRef)

	// ToggleQuality and StopAllSounds affect the whole player, not a
	// single display node.
	ToggleQuality()
	StopAllSounds()

	// GetURL requests url be loaded into target (a frame/window name,
	// not a display path); vars, if non-empty, is a GetURL2-style
	// variable-submission payload already URL-encoded by the caller.
	GetURL(url, target, vars string)

	// CloneSprite duplicates source as a new live child named newName
	// at the given depth, returning the new node's reference.
	CloneSprite(source value.DisplayRef, newName string, depth int) value.DisplayRef

	// StartDrag begins mouse-following ref; hasBounds selects whether
	// bounds is honored as a clamping rectangle.
	StartDrag(ref value.DisplayRef, lockCenter bool, hasBounds bool, bounds [4]float64)
	// EndDrag stops whatever StartDrag started, if anything.
	EndDrag()
}

// DisplayProperties is re-exported from internal/resolve so host
// implementations only need to satisfy one interface; see
// internal/resolve/magic.go for the full method set and spec 4.2 for
// which magic properties each method backs.
type DisplayProperties = resolve.DisplayProperties

// node is one entry in the in-memory display tree.
type node struct {
	path   string
	parent string
	obj    value.ObjectID

	x, y           float64
	xscale, yscale float64
	rotation       float64
	alpha          float64
	visible        bool
	width, height  float64
	name           string
	currentFrame   int
	totalFrames    int
	framesLoaded   int
	dropTarget     string
	url            string
	lockRoot       bool
	playing        bool
	labels         map[string]int
}

func newNode(path, parent string, obj value.ObjectID) *node {
	return &node{
		path: path, parent: parent, obj: obj,
		xscale: 100, yscale: 100, alpha: 100, visible: true,
		totalFrames: 1, framesLoaded: 1, playing: true,
	}
}

// MemoryDisplay is a minimal in-memory DisplayGraph: a flat map of
// slash-paths to nodes, each carrying its own transform and movieclip
// state. It has no renderer, so PointInShape always reports false
// unless a test overrides it via Shapes.
type MemoryDisplay struct {
	nodes  map[string]*node
	levels map[int]string

	// Shapes optionally supplies hit-test geometry per path, for tests
	// that need PointInShape to report true for specific coordinates.
	Shapes map[string]func(x, y float64) bool

	highQuality  int
	focusRect    bool
	soundBufTime float64

	// GetURLRequests and Dragging record host-delegated calls for tests
	// and diagnostics; a real embedder's DisplayGraph would act on these
	// instead of merely logging them.
	GetURLRequests []string
	Dragging       string
}

// NewMemoryDisplay returns an empty display tree with a root node at "/".
func NewMemoryDisplay(root value.ObjectID) *MemoryDisplay {
	d := &MemoryDisplay{
		nodes:  map[string]*node{},
		levels: map[int]string{},
		Shapes: map[string]func(x, y float64) bool{},
	}
	d.nodes["/"] = newNode("/", "", root)
	d.levels[0] = "/"
	return d
}

func (d *MemoryDisplay) FindByPath(path string) (value.ObjectID, bool) {
	n, ok := d.nodes[path]
	if !ok {
		return 0, false
	}
	return n.obj, true
}

func (d *MemoryDisplay) Level(n int) (value.ObjectID, bool) {
	path, ok := d.levels[n]
	if !ok {
		return 0, false
	}
	return d.FindByPath(path)
}

func (d *MemoryDisplay) AddLiveChar(path, parent string, obj value.ObjectID) value.DisplayRef {
	d.nodes[path] = newNode(path, parent, obj)
	return value.DisplayRef{Path: path}
}

func (d *MemoryDisplay) AddLevel(n int, obj value.ObjectID) value.DisplayRef {
	path := fmt.Sprintf("/_level%d", n)
	if n == 0 {
		path = "/"
	}
	d.nodes[path] = newNode(path, "", obj)
	d.levels[n] = path
	return value.DisplayRef{Path: path}
}

func (d *MemoryDisplay) DropLevel(n int) {
	path, ok := d.levels[n]
	if !ok {
		return
	}
	d.RemoveDisplayObject(value.DisplayRef{Path: path})
	delete(d.levels, n)
}

func (d *MemoryDisplay) RemoveDisplayObject(ref value.DisplayRef) {
	prefix := ref.Path + "/"
	for p := range d.nodes {
		if p == ref.Path || strings.HasPrefix(p, prefix) {
			delete(d.nodes, p)
		}
	}
}

func (d *MemoryDisplay) Root() value.DisplayRef { return value.DisplayRef{Path: "/"} }

func (d *MemoryDisplay) Parent(ref value.DisplayRef) (value.DisplayRef, bool) {
	if ref.Path == "/" {
		return value.DisplayRef{}, false
	}
	n, ok := d.nodes[ref.Path]
	if !ok || n.parent == "" {
		return value.DisplayRef{}, false
	}
	return value.DisplayRef{Path: n.parent}, true
}

func (d *MemoryDisplay) ResolveDisplay(ref value.DisplayRef) (value.ObjectID, bool, bool) {
	n, ok := d.nodes[ref.Path]
	if !ok {
		return 0, false, false
	}
	return n.obj, true, true
}

func (d *MemoryDisplay) PointInShape(ref value.DisplayRef, x, y float64) bool {
	if fn, ok := d.Shapes[ref.Path]; ok {
		return fn(x, y)
	}
	return false
}

func (d *MemoryDisplay) SetMatrix(ref value.DisplayRef, a, b, c, d2, tx, ty float64) {
	n, ok := d.nodes[ref.Path]
	if !ok {
		return
	}
	// Decompose a 2x3 affine matrix [a b; c d] into scale/rotation, the
	// same shape the reference player's own _x.._rotation accessors
	// derive from the underlying Matrix.
	n.x, n.y = tx, ty
	n.xscale = math.Hypot(a, c) * 100
	n.yscale = math.Hypot(b, d2) * 100
	n.rotation = math.Atan2(c, a) * 180 / math.Pi
}

func (d *MemoryDisplay) XY(ref value.DisplayRef) (float64, float64) {
	n := d.mustNode(ref)
	return n.x, n.y
}
func (d *MemoryDisplay) SetXY(ref value.DisplayRef, x, y float64) {
	n := d.mustNode(ref)
	n.x, n.y = x, y
}
func (d *MemoryDisplay) Scale(ref value.DisplayRef) (float64, float64) {
	n := d.mustNode(ref)
	return n.xscale, n.yscale
}
func (d *MemoryDisplay) SetScale(ref value.DisplayRef, xs, ys float64) {
	n := d.mustNode(ref)
	n.xscale, n.yscale = xs, ys
}
func (d *MemoryDisplay) Rotation(ref value.DisplayRef) float64 { return d.mustNode(ref).rotation }
func (d *MemoryDisplay) SetRotation(ref value.DisplayRef, deg float64) {
	d.mustNode(ref).rotation = deg
}
func (d *MemoryDisplay) Alpha(ref value.DisplayRef) float64 { return d.mustNode(ref).alpha }
func (d *MemoryDisplay) SetAlpha(ref value.DisplayRef, a float64) {
	d.mustNode(ref).alpha = a
}
func (d *MemoryDisplay) Visible(ref value.DisplayRef) bool { return d.mustNode(ref).visible }
func (d *MemoryDisplay) SetVisible(ref value.DisplayRef, v bool) {
	d.mustNode(ref).visible = v
}
func (d *MemoryDisplay) Bounds(ref value.DisplayRef) (float64, float64) {
	n := d.mustNode(ref)
	return n.width, n.height
}
func (d *MemoryDisplay) SetBounds(ref value.DisplayRef, w, h float64) {
	n := d.mustNode(ref)
	n.width, n.height = w, h
}
func (d *MemoryDisplay) MouseXY(value.DisplayRef) (float64, float64) { return 0, 0 }
func (d *MemoryDisplay) Name(ref value.DisplayRef) string            { return d.mustNode(ref).name }
func (d *MemoryDisplay) SetName(ref value.DisplayRef, name string) {
	d.mustNode(ref).name = name
}
func (d *MemoryDisplay) Depth(ref value.DisplayRef) float64 {
	return float64(strings.Count(ref.Path, "/"))
}
func (d *MemoryDisplay) TargetPath(ref value.DisplayRef) string { return ref.Path }
func (d *MemoryDisplay) CurrentFrame(ref value.DisplayRef) int {
	return d.mustNode(ref).currentFrame
}
func (d *MemoryDisplay) TotalFrames(ref value.DisplayRef) int {
	return d.mustNode(ref).totalFrames
}
func (d *MemoryDisplay) FramesLoaded(ref value.DisplayRef) int {
	return d.mustNode(ref).framesLoaded
}
func (d *MemoryDisplay) DropTarget(ref value.DisplayRef) string {
	return d.mustNode(ref).dropTarget
}
func (d *MemoryDisplay) URL(ref value.DisplayRef) string { return d.mustNode(ref).url }
func (d *MemoryDisplay) HighQuality() int                { return d.highQuality }
func (d *MemoryDisplay) SetHighQuality(q int)            { d.highQuality = q }
func (d *MemoryDisplay) FocusRect() bool                 { return d.focusRect }
func (d *MemoryDisplay) SetFocusRect(b bool)             { d.focusRect = b }
func (d *MemoryDisplay) SoundBufTime() float64           { return d.soundBufTime }
func (d *MemoryDisplay) SetSoundBufTime(s float64)       { d.soundBufTime = s }
func (d *MemoryDisplay) LockRoot(ref value.DisplayRef) bool {
	return d.mustNode(ref).lockRoot
}
func (d *MemoryDisplay) SetLockRoot(ref value.DisplayRef, locked bool) {
	d.mustNode(ref).lockRoot = locked
}

// mustNode returns a throwaway zero node for a path that was never
// registered, rather than panicking: a stale DisplayRef is a routine
// occurrence (the node may have been removed between resolution and
// use), and every accessor here is read/write on host-owned state, not
// on the object graph.
func (d *MemoryDisplay) mustNode(ref value.DisplayRef) *node {
	if n, ok := d.nodes[ref.Path]; ok {
		return n
	}
	return newNode(ref.Path, "", 0)
}

func (d *MemoryDisplay) GotoFrame(ref value.DisplayRef, frame int) {
	d.mustNode(ref).currentFrame = frame
}

func (d *MemoryDisplay) GotoLabel(ref value.DisplayRef, label string) bool {
	n := d.mustNode(ref)
	if n.labels == nil {
		return false
	}
	frame, ok := n.labels[label]
	if !ok {
		return false
	}
	n.currentFrame = frame
	return true
}

// SetLabel registers label at frame for ref, for tests to exercise
// GotoLabel against.
func (d *MemoryDisplay) SetLabel(ref value.DisplayRef, label string, frame int) {
	n := d.mustNode(ref)
	if n.labels == nil {
		n.labels = map[string]int{}
	}
	n.labels[label] = frame
}

func (d *MemoryDisplay) FrameLoaded(ref value.DisplayRef, frame int) bool {
	return frame < d.mustNode(ref).framesLoaded
}

func (d *MemoryDisplay) Play(ref value.DisplayRef) { d.mustNode(ref).playing = true }
func (d *MemoryDisplay) Halt(ref value.DisplayRef) { d.mustNode(ref).playing = false }

func (d *MemoryDisplay) ToggleQuality() {
	d.highQuality = (d.highQuality + 1) % 3
}

func (d *MemoryDisplay) StopAllSounds() {}

func (d *MemoryDisplay) GetURL(url, target, vars string) {
	req := "getURL " + url + " -> " + target
	if vars != "" {
		req += " (" + vars + ")"
	}
	d.GetURLRequests = append(d.GetURLRequests, req)
}

func (d *MemoryDisplay) CloneSprite(source value.DisplayRef, newName string, depth int) value.DisplayRef {
	src := d.mustNode(source)
	parent := src.parent
	path := newName
	if parent != "" {
		path = strings.TrimSuffix(parent, "/") + "/" + newName
	}
	return d.AddLiveChar(path, parent, src.obj)
}

func (d *MemoryDisplay) StartDrag(ref value.DisplayRef, lockCenter bool, hasBounds bool, bounds [4]float64) {
	d.Dragging = ref.Path
}

func (d *MemoryDisplay) EndDrag() { d.Dragging = "" }

// Paths returns every registered display path, sorted, for diagnostics
// and tests.
func (d *MemoryDisplay) Paths() []string {
	paths := make([]string, 0, len(d.nodes))
	for p := range d.nodes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
