package resolve

import "github.com/gnashcore/avm1/internal/value"

// DisplayProperties is the host-provided per-node state backing the
// magic properties a display-node Object exposes (spec 3.3, 4.2): the
// handful of names that short-circuit the ordinary property search
// before the prototype walk is ever reached. internal/host's
// DisplayGraph implements this; a host that only cares about a subset
// may embed a no-op default and override the rest.
type DisplayProperties interface {
	XY(ref value.DisplayRef) (x, y float64)
	SetXY(ref value.DisplayRef, x, y float64)
	Scale(ref value.DisplayRef) (xscale, yscale float64)
	SetScale(ref value.DisplayRef, xscale, yscale float64)
	Rotation(ref value.DisplayRef) float64
	SetRotation(ref value.DisplayRef, degrees float64)
	Alpha(ref value.DisplayRef) float64
	SetAlpha(ref value.DisplayRef, alpha float64)
	Visible(ref value.DisplayRef) bool
	SetVisible(ref value.DisplayRef, visible bool)
	Bounds(ref value.DisplayRef) (width, height float64)
	SetBounds(ref value.DisplayRef, width, height float64)
	MouseXY(ref value.DisplayRef) (x, y float64)
	Name(ref value.DisplayRef) string
	SetName(ref value.DisplayRef, name string)
	Depth(ref value.DisplayRef) float64
	TargetPath(ref value.DisplayRef) string
	CurrentFrame(ref value.DisplayRef) int
	TotalFrames(ref value.DisplayRef) int
	FramesLoaded(ref value.DisplayRef) int
	DropTarget(ref value.DisplayRef) string
	URL(ref value.DisplayRef) string
	HighQuality() int
	SetHighQuality(q int)
	FocusRect() bool
	SetFocusRect(b bool)
	SoundBufTime() float64
	SetSoundBufTime(seconds float64)
	LockRoot(ref value.DisplayRef) bool
	SetLockRoot(ref value.DisplayRef, locked bool)
}

// magicNames is the exact set spec 4.2 names (excluding _root and
// _global, which short-circuit earlier still, at the scope-view level
// handled by LookupName, not at the per-object property level).
var magicNames = map[string]bool{
	"_x": true, "_y": true, "_xscale": true, "_yscale": true,
	"_alpha": true, "_visible": true, "_rotation": true,
	"_width": true, "_height": true, "_xmouse": true, "_ymouse": true,
	"_name": true, "_target": true, "_parent": true,
	"_currentframe": true, "_totalframes": true, "_framesloaded": true,
	"_droptarget": true, "_url": true, "_highquality": true,
	"_focusrect": true, "_soundbuftime": true, "_lockroot": true,
}

// IsMagicName reports whether name is one of the display-node magic
// properties spec 4.2 lists.
func IsMagicName(name string) bool { return magicNames[name] }

// GetProperty is the read-path entry point that short-circuits magic
// properties on display nodes before falling through to the ordinary
// prototype-chain walk (spec 4.2 read path steps 1-3). Every non-magic
// read still goes through r.Arena.GetMember unchanged.
func (r *Resolver) GetProperty(ref value.DisplayRef, isDisplay bool, obj value.ObjectID, name string) (value.Value, bool) {
	if isDisplay && r.Magic != nil && IsMagicName(name) {
		if v, ok := r.getMagic(ref, name); ok {
			return v, true
		}
	}
	return r.Arena.GetMember(obj, name)
}

// SetProperty is the write-path entry point: magic properties on
// display nodes are applied directly to the host and never touch the
// PropertyStore (spec 4.2 write path step 1); everything else proceeds
// through r.Arena.SetMember.
func (r *Resolver) SetProperty(ref value.DisplayRef, isDisplay bool, obj value.ObjectID, name string, v value.Value, foldCase bool) error {
	if isDisplay && r.Magic != nil && IsMagicName(name) {
		if r.setMagic(ref, name, v) {
			return nil
		}
	}
	return r.Arena.SetMember(obj, name, v, foldCase)
}

func (r *Resolver) getMagic(ref value.DisplayRef, name string) (value.Value, bool) {
	m := r.Magic
	switch name {
	case "_x":
		x, _ := m.XY(ref)
		return value.Number(x), true
	case "_y":
		_, y := m.XY(ref)
		return value.Number(y), true
	case "_xscale":
		xs, _ := m.Scale(ref)
		return value.Number(xs), true
	case "_yscale":
		_, ys := m.Scale(ref)
		return value.Number(ys), true
	case "_rotation":
		return value.Number(m.Rotation(ref)), true
	case "_alpha":
		return value.Number(m.Alpha(ref)), true
	case "_visible":
		return value.Bool(m.Visible(ref)), true
	case "_width":
		w, _ := m.Bounds(ref)
		return value.Number(w), true
	case "_height":
		_, h := m.Bounds(ref)
		return value.Number(h), true
	case "_xmouse":
		x, _ := m.MouseXY(ref)
		return value.Number(x), true
	case "_ymouse":
		_, y := m.MouseXY(ref)
		return value.Number(y), true
	case "_name":
		return value.String(m.Name(ref)), true
	case "_target":
		return value.String(m.TargetPath(ref)), true
	case "_parent":
		if parent, ok := r.Display.Parent(ref); ok {
			return value.Display(parent), true
		}
		return value.Undefined(), true
	case "_currentframe":
		return value.Number(float64(m.CurrentFrame(ref))), true
	case "_totalframes":
		return value.Number(float64(m.TotalFrames(ref))), true
	case "_framesloaded":
		return value.Number(float64(m.FramesLoaded(ref))), true
	case "_droptarget":
		return value.String(m.DropTarget(ref)), true
	case "_url":
		return value.String(m.URL(ref)), true
	case "_highquality":
		return value.Number(float64(m.HighQuality())), true
	case "_focusrect":
		return value.Bool(m.FocusRect()), true
	case "_soundbuftime":
		return value.Number(m.SoundBufTime()), true
	case "_lockroot":
		return value.Bool(m.LockRoot(ref)), true
	}
	return value.Undefined(), false
}

func (r *Resolver) setMagic(ref value.DisplayRef, name string, v value.Value) bool {
	m := r.Magic
	n := v.AsNumber()
	switch name {
	case "_x":
		_, y := m.XY(ref)
		m.SetXY(ref, n, y)
	case "_y":
		x, _ := m.XY(ref)
		m.SetXY(ref, x, n)
	case "_xscale":
		_, ys := m.Scale(ref)
		m.SetScale(ref, n, ys)
	case "_yscale":
		xs, _ := m.Scale(ref)
		m.SetScale(ref, xs, n)
	case "_rotation":
		m.SetRotation(ref, n)
	case "_alpha":
		m.SetAlpha(ref, n)
	case "_visible":
		m.SetVisible(ref, v.AsBool())
	case "_width":
		_, h := m.Bounds(ref)
		m.SetBounds(ref, n, h)
	case "_height":
		w, _ := m.Bounds(ref)
		m.SetBounds(ref, w, n)
	case "_name":
		m.SetName(ref, v.AsString())
	case "_highquality":
		m.SetHighQuality(int(n))
	case "_focusrect":
		m.SetFocusRect(v.AsBool())
	case "_soundbuftime":
		m.SetSoundBufTime(n)
	case "_lockroot":
		m.SetLockRoot(ref, v.AsBool())
	default:
		// _xmouse, _ymouse, _target, _parent, _currentframe,
		// _totalframes, _framesloaded, _droptarget, _url are read-only:
		// the write is silently absorbed, matching the reference
		// player's tolerance of assigning to a read-only magic property.
		return true
	}
	return true
}
