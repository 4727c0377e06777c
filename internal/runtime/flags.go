package runtime

// Flags is the attribute bitset carried by every Property (spec 3.2).
type Flags uint16

const (
	// DontDelete blocks delete_member from removing the property; the
	// delete still reports found=true, deleted=false (spec 3.2).
	DontDelete Flags = 1 << iota
	// DontEnum hides the property from VisitNonHidden (for…in).
	DontEnum
	// ReadOnly blocks set_member on the object that owns the property.
	// It does not block a descendant object shadowing it with its own
	// property of the same name.
	ReadOnly
	// Protected marks a property ActionScript can neither read nor
	// change the flags of via ASSetPropFlags ("protected-from-AS").
	Protected
	// OnlySWF6Up marks a property as belonging to SWF 6 and later. No
	// lookup consults it: the property stays visible under every version.
	OnlySWF6Up
	// IgnoreSWF6 marks a property as absent under exactly SWF 6 (a
	// reference-player legacy quirk carried from Gnash's as_prop_flags).
	// No lookup consults it either.
	IgnoreSWF6
)

// BuiltinDefault is the flag set builtin registration applies unless told
// otherwise (spec 4.2 "Property initialization").
const BuiltinDefault = DontDelete | DontEnum

// Has reports whether all bits of want are set in f.
func (f Flags) Has(want Flags) bool { return f&want == want }

// ApplyPropFlags implements the ASSetPropFlags bit-twiddle contract: clear
// setFalse bits, then set setTrue bits. Only DontDelete, DontEnum and
// ReadOnly can change; every other bit in either mask is ignored.
func ApplyPropFlags(f Flags, setTrue, setFalse Flags) Flags {
	const mask = DontDelete | DontEnum | ReadOnly
	f &^= setFalse & mask
	f |= setTrue & mask
	return f
}
