package host

import (
	"github.com/gnashcore/avm1/internal/resolve"
	"github.com/gnashcore/avm1/internal/runtime"
)

// Compile-time checks that MemoryDisplay satisfies every seam it's
// meant to plug into: the host's own full DisplayGraph contract (spec
// 6), and the two narrower interfaces internal/resolve and
// internal/runtime each declare independently to avoid importing this
// package.
var (
	_ DisplayGraph              = (*MemoryDisplay)(nil)
	_ resolve.DisplayGraph      = (*MemoryDisplay)(nil)
	_ resolve.DisplayProperties = (*MemoryDisplay)(nil)
	_ runtime.DisplayResolver   = (*MemoryDisplay)(nil)
)
