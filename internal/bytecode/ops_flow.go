package bytecode

import (
	"github.com/gnashcore/avm1/internal/diag"
	"github.com/gnashcore/avm1/internal/errors"
	"github.com/gnashcore/avm1/internal/host"
	"github.com/gnashcore/avm1/internal/value"
)

// opJump implements ActionJump (spec 4.5): the payload is a signed
// 16-bit displacement relative to the end of this instruction, not to
// its start.
func (f *frame) opJump(inst *instruction) {
	disp := int16(f.code.ReadInt16(inst.payloadOff))
	inst.nextPC = uint32(int64(inst.end()) + int64(disp))
}

// opIf implements ActionIf (spec 4.5): the branch is taken only when
// the popped condition coerces true; otherwise nextPC is left at the
// default fetch() already computed (straight past the payload).
func (f *frame) opIf(inst *instruction) {
	cond := f.toBool(f.pop("ActionIf"))
	if !cond {
		return
	}
	disp := int16(f.code.ReadInt16(inst.payloadOff))
	inst.nextPC = uint32(int64(inst.end()) + int64(disp))
}

// skipInstructions advances inst.nextPC past count further instructions
// (the WaitForFrame family's "skip this many actions if the frame isn't
// loaded yet" contract, spec 4.5), stopping early on ActionEnd or a
// decode overflow rather than running off the buffer.
func (f *frame) skipInstructions(inst *instruction, count int) {
	pc := inst.nextPC
	for i := 0; i < count; i++ {
		next, overflow := fetch(f.code, pc)
		if overflow || next.op == ActionEnd {
			break
		}
		pc = next.nextPC
	}
	inst.nextPC = pc
}

func (f *frame) opWaitForFrame(inst *instruction) {
	frame := int(uint16(f.code.ReadInt16(inst.payloadOff)))
	skip := int(f.code.ReadByte(inst.payloadOff + 2))
	ref := f.env.Target()
	if f.interp.Display != nil && !f.interp.Display.FrameLoaded(ref, frame) {
		f.skipInstructions(inst, skip)
	}
}

func (f *frame) opWaitForFrame2(inst *instruction) {
	frame := int(f.toNumber(f.pop("ActionWaitForFrame2")))
	skip := int(f.code.ReadByte(inst.payloadOff))
	ref := f.env.Target()
	if f.interp.Display != nil && !f.interp.Display.FrameLoaded(ref, frame) {
		f.skipInstructions(inst, skip)
	}
}

func (f *frame) opGotoFrame(inst *instruction) {
	frame := int(uint16(f.code.ReadInt16(inst.payloadOff)))
	if f.interp.Display != nil {
		f.interp.Display.GotoFrame(f.env.Target(), frame)
	}
}

// opGotoFrame2 implements ActionGotoFrame2 (spec 4.5): a flags byte
// selects whether to resume playback after the seek and whether a
// scene-bias uint16 follows, then the frame number itself comes off
// the operand stack.
func (f *frame) opGotoFrame2(inst *instruction) {
	flags := f.code.ReadByte(inst.payloadOff)
	play := flags&0x01 != 0
	hasBias := flags&0x02 != 0
	bias := 0
	if hasBias {
		bias = int(uint16(f.code.ReadInt16(inst.payloadOff + 1)))
	}
	frame := int(f.toNumber(f.pop("ActionGotoFrame2"))) + bias
	if f.interp.Display == nil {
		return
	}
	ref := f.env.Target()
	f.interp.Display.GotoFrame(ref, frame)
	if play {
		f.interp.Display.Play(ref)
	} else {
		f.interp.Display.Halt(ref)
	}
}

func (f *frame) opGotoLabel(inst *instruction) {
	label := f.code.ReadString(inst.payloadOff)
	if f.interp.Display != nil {
		f.interp.Display.GotoLabel(f.env.Target(), label)
	}
}

func (f *frame) opNextFrame() {
	if f.interp.Display == nil {
		return
	}
	ref := f.env.Target()
	f.interp.Display.GotoFrame(ref, f.interp.Display.CurrentFrame(ref)+1)
}

func (f *frame) opPrevFrame() {
	if f.interp.Display == nil {
		return
	}
	ref := f.env.Target()
	f.interp.Display.GotoFrame(ref, f.interp.Display.CurrentFrame(ref)-1)
}

func (f *frame) opPlay() {
	if f.interp.Display != nil {
		f.interp.Display.Play(f.env.Target())
	}
}

func (f *frame) opStop() {
	if f.interp.Display != nil {
		f.interp.Display.Halt(f.env.Target())
	}
}

func (f *frame) opToggleQuality() {
	if f.interp.Display != nil {
		f.interp.Display.ToggleQuality()
	}
}

func (f *frame) opStopSounds() {
	if f.interp.Display != nil {
		f.interp.Display.StopAllSounds()
	}
}

// retarget implements the shared SetTarget/SetTarget2 behavior (spec
// 4.5): an empty path restores the invocation's original target via
// Environment.SetTarget; a path that fails to resolve is reported as
// UnknownTarget and leaves the current target untouched.
func (f *frame) retarget(path string) {
	if path == "" {
		f.env.SetTarget(value.DisplayRef{})
		return
	}
	ref, ok := f.interp.Resolver.ResolvePath(f.env, path, true)
	if !ok {
		f.interp.Diag.Emit(diag.ASCoding, "%s", (&errors.UnknownTarget{Path: path}).Error())
		return
	}
	f.env.SetTarget(ref)
}

func (f *frame) opSetTarget(inst *instruction) {
	f.retarget(f.code.ReadString(inst.payloadOff))
}

func (f *frame) opSetTarget2() {
	f.retarget(f.toString(f.pop("ActionSetTarget2")))
}

func (f *frame) opGetURL(inst *instruction) {
	url := f.code.ReadString(inst.payloadOff)
	off := inst.payloadOff + uint32(len(url)) + 1
	target := f.code.ReadString(off)
	if f.interp.Display != nil {
		f.interp.Display.GetURL(url, target, "")
	}
}

// opGetURL2 implements ActionGetURL2 (spec 4.5): a flags byte selects
// between a plain browser navigation, a loadVariables request, and a
// loadMovie-into-target request, each delegated to a different
// collaborator (Display for navigation, Loader for the other two).
func (f *frame) opGetURL2(inst *instruction) {
	flags := f.code.ReadByte(inst.payloadOff)
	target := f.toString(f.pop("ActionGetURL2"))
	url := f.toString(f.pop("ActionGetURL2"))

	loadVars := flags&0x80 != 0
	loadIntoTarget := flags&0x40 != 0
	method := host.MethodNone
	switch flags & 0x03 {
	case 1:
		method = host.MethodGET
	case 2:
		method = host.MethodPOST
	}

	switch {
	case loadVars:
		if f.interp.Loader != nil {
			_ = f.interp.Loader.LoadVariables(url, method)
		}
	case loadIntoTarget:
		if f.interp.Loader != nil {
			_ = f.interp.Loader.LoadMovie(url, target, "")
		}
	default:
		if f.interp.Display != nil {
			f.interp.Display.GetURL(url, target, "")
		}
	}
}

func (f *frame) opCloneSprite() {
	depth := int(f.toNumber(f.pop("ActionCloneSprite")))
	newName := f.toString(f.pop("ActionCloneSprite"))
	_, ref, isDisplay := f.objAndRef(f.pop("ActionCloneSprite"))
	if isDisplay && f.interp.Display != nil {
		f.interp.Display.CloneSprite(ref, newName, depth)
	}
}

func (f *frame) opRemoveSprite() {
	_, ref, isDisplay := f.objAndRef(f.pop("ActionRemoveSprite"))
	if isDisplay && f.interp.Display != nil {
		f.interp.Display.RemoveDisplayObject(ref)
	}
}

func (f *frame) opStartDrag() {
	_, ref, isDisplay := f.objAndRef(f.pop("ActionStartDrag"))
	lockCenter := f.toBool(f.pop("ActionStartDrag"))
	hasBounds := f.toBool(f.pop("ActionStartDrag"))
	var bounds [4]float64
	if hasBounds {
		bounds[0] = f.toNumber(f.pop("ActionStartDrag"))
		bounds[1] = f.toNumber(f.pop("ActionStartDrag"))
		bounds[2] = f.toNumber(f.pop("ActionStartDrag"))
		bounds[3] = f.toNumber(f.pop("ActionStartDrag"))
	}
	if isDisplay && f.interp.Display != nil {
		f.interp.Display.StartDrag(ref, lockCenter, hasBounds, bounds)
	}
}

func (f *frame) opEndDrag() {
	if f.interp.Display != nil {
		f.interp.Display.EndDrag()
	}
}

// opTrace implements ActionTrace (spec 4.5): the popped value's string
// coercion is handed to the diagnostic sink, the same channel every
// other reported-not-thrown condition uses, since this core has no
// separate "trace output" collaborator of its own.
func (f *frame) opTrace() {
	msg := f.toString(f.pop("ActionTrace"))
	f.interp.Diag.Emit(diag.ASCoding, "trace: %s", msg)
}

// propertyIndexName maps the SWF4 numeric property index (spec 4.2's
// GetProperty/SetProperty opcodes address magic properties by index
// rather than by name) to the magic property name it addresses.
// Grounded on the reference player's property table; index 19
// ("_quality") predates _highquality's name and is treated as its
// alias since both read/write the same host state.
func propertyIndexName(i int) (string, bool) {
	names := [...]string{
		"_x", "_y", "_xscale", "_yscale", "_currentframe",
		"_totalframes", "_alpha", "_visible", "_width", "_height",
		"_rotation", "_target", "_framesloaded", "_name", "_droptarget",
		"_url", "_highquality", "_focusrect", "_soundbuftime",
		"_highquality", "_xmouse", "_ymouse",
	}
	if i < 0 || i >= len(names) {
		return "", false
	}
	return names[i], true
}

// opGetProperty implements ActionGetProperty (spec 4.5): pop index,
// then target path; an index outside the known table or a path that
// fails to resolve yields Undefined.
func (f *frame) opGetProperty() {
	index := int(f.toNumber(f.pop("ActionGetProperty")))
	path := f.toString(f.pop("ActionGetProperty"))
	name, ok := propertyIndexName(index)
	if !ok {
		f.push(value.Undefined())
		return
	}
	ref, ok := f.interp.Resolver.ResolvePath(f.env, path, true)
	if !ok {
		f.push(value.Undefined())
		return
	}
	v, _ := f.interp.Resolver.GetProperty(ref, true, 0, name)
	f.push(v)
}

// opSetProperty implements ActionSetProperty (spec 4.5): pop value,
// then index, then target path.
func (f *frame) opSetProperty() {
	v := f.pop("ActionSetProperty")
	index := int(f.toNumber(f.pop("ActionSetProperty")))
	path := f.toString(f.pop("ActionSetProperty"))
	name, ok := propertyIndexName(index)
	if !ok {
		return
	}
	ref, ok := f.interp.Resolver.ResolvePath(f.env, path, true)
	if !ok {
		f.interp.Diag.Emit(diag.ASCoding, "%s", (&errors.UnknownTarget{Path: path}).Error())
		return
	}
	_ = f.interp.Resolver.SetProperty(ref, true, 0, name, v, f.foldCase())
}

// opCall implements ActionCall (spec 4.5): the legacy SWF3 "gosub to a
// frame's actions" form, distinct from CallFunction. This core has no
// per-frame action storage behind DisplayGraph to execute against, so
// it is reported as an unimplemented reference-player feature rather
// than silently no-opping.
func (f *frame) opCall() {
	f.pop("ActionCall")
	f.interp.Diag.Emit(diag.Unimpl, "ActionCall: frame-script invocation is not implemented")
}
