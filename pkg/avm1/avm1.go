// Package avm1 is the public embedding surface over this module's AVM1
// core: one VM bundles the object arena (components C/D/E/J), a
// resolver (component G), the action-queue (component I), and the
// interpreter (component H) behind a handful of methods a host actually
// needs — load a root object graph, execute a code buffer against it,
// drain the action queue, and run a GC pass at a quiescent point.
//
// Grounded on the teacher's cmd/dwscript/cmd/run.go, which wires a
// lexer+parser+compiler+VM by hand for each invocation; this package is
// that same wiring, collapsed into one constructor, since an AVM1 host
// has no separate compile stage (action bytecode arrives already
// assembled inside a SWF tag, spec 3's Non-goals).
package avm1

import (
	"github.com/gnashcore/avm1/internal/builtins"
	"github.com/gnashcore/avm1/internal/bytecode"
	"github.com/gnashcore/avm1/internal/config"
	"github.com/gnashcore/avm1/internal/diag"
	"github.com/gnashcore/avm1/internal/env"
	"github.com/gnashcore/avm1/internal/errors"
	"github.com/gnashcore/avm1/internal/gcroots"
	"github.com/gnashcore/avm1/internal/host"
	"github.com/gnashcore/avm1/internal/queue"
	"github.com/gnashcore/avm1/internal/resolve"
	"github.com/gnashcore/avm1/internal/runtime"
	"github.com/gnashcore/avm1/internal/strtab"
	"github.com/gnashcore/avm1/internal/value"
)

// VM is one movie's worth of AVM1 state: a single object arena and
// resolver shared by every Environment it runs, plus the collaborators
// the interpreter needs for movieclip/timer/network opcodes.
type VM struct {
	Config config.VMConfig

	Arena    *runtime.Arena
	Strings  *strtab.StringTable
	Display  *host.MemoryDisplay
	Timers   *host.MemoryTimers
	Loader   host.Loader
	Diag     diag.Sink
	Resolver *resolve.Resolver
	Interp   *bytecode.Interpreter
	Queue    *queue.Queue

	root value.ObjectID
}

// Option customizes a VM at construction time.
type Option func(*VM)

// WithDiag overrides the default stderr diag.Sink.
func WithDiag(sink diag.Sink) Option { return func(vm *VM) { vm.Diag = sink } }

// WithLoader overrides the default no-op network Loader.
func WithLoader(l host.Loader) Option { return func(vm *VM) { vm.Loader = l } }

// New builds a VM from cfg: a fresh object arena and string table, a
// MemoryDisplay rooted at a freshly allocated root object, the global
// object with internal/builtins' native functions installed on it (SWF
// >= 6 only, spec 4.1's "_global exists from SWF 6 on"), and an
// Interpreter/Queue wired to all of it.
func New(cfg config.VMConfig, opts ...Option) *VM {
	strings := strtab.New()
	arena := runtime.NewArena(strings)
	rootID := arena.New(runtime.NewObject())
	display := host.NewMemoryDisplay(rootID)
	timers := host.NewMemoryTimers()

	vm := &VM{
		Config:  cfg,
		Arena:   arena,
		Strings: strings,
		Display: display,
		Timers:  timers,
		Loader:  &host.LoggingLoader{},
		Diag:    diag.Default,
		root:    rootID,
	}
	for _, opt := range opts {
		opt(vm)
	}

	resolver := &resolve.Resolver{Arena: arena, Display: display, Strings: strings}
	if cfg.Version().HasGlobalObject() {
		globalID := arena.New(runtime.NewObject())
		builtins.Register(arena, globalID, cfg.Version())
		resolver.Global = globalID
	}
	vm.Resolver = resolver
	vm.Interp = bytecode.New(arena, resolver, display, timers, vm.Loader, vm.Diag)
	if cfg.LoopLimit > 0 {
		vm.Interp.LoopLimit = cfg.LoopLimit
	}
	vm.Queue = queue.New(display, vm.Diag)
	return vm
}

// Root returns the ObjectID of the VM's root display object (the
// `_level0`/`_root` timeline).
func (vm *VM) Root() value.ObjectID { return vm.root }

// NewEnvironment returns a fresh Environment targeted at the VM's
// configured InitialTarget (or "/" if unset), declared under the VM's
// configured SWF version.
func (vm *VM) NewEnvironment() *env.Environment {
	target := vm.Config.InitialTarget
	if target == "" {
		target = "/"
	}
	e := env.New(vm.Config.Version(), value.DisplayRef{Path: target})
	e.SetMaxCallDepth(vm.Config.CallStackDepth)
	return e
}

// Execute runs code (one tag's action bytecode, spec 6) from offset 0
// to len(code) against e, returning whatever value a top-level Return
// left on the stack (Undefined if none).
func (vm *VM) Execute(e *env.Environment, code []byte) (value.Value, error) {
	buf := host.NewByteCodeBuffer(code)
	return vm.Interp.Run(e, buf, 0, uint32(len(code)))
}

// Drain runs every entry queued on the VM's ActionQueue to completion
// (spec 4.7), in band order.
func (vm *VM) Drain() { vm.Queue.Drain() }

// Collect runs one mark-then-sweep GC pass (component K) rooted at
// every given RootSource plus the VM's own Queue, and returns the
// number of objects freed. Call this only at a quiescent point between
// frames (spec 5) — never from inside a running Execute.
func (vm *VM) Collect(sources ...gcroots.RootSource) int {
	all := append([]gcroots.RootSource{vm.Queue}, sources...)
	_, freed := gcroots.Collect(vm.Arena, all...)
	return freed
}

// RuntimeError unwraps err to one of internal/errors' eight kinds, for a
// host that wants to branch on error category rather than just log it.
// ok is false if err is nil or not one of those kinds.
func RuntimeError(err error) (kind error, ok bool) {
	switch err.(type) {
	case *errors.PropertyDenied, *errors.UnknownTarget, *errors.CallStackOverflow,
		*errors.ActionLimitException, *errors.StackUnderrun, *errors.MalformedCode,
		*errors.ThrownValue, *errors.ParserException:
		return err, true
	default:
		return nil, false
	}
}
