package gl

import (
	"fmt"
	"sync"
	"sync/atomic"

	gamp "github.com/sgothel/gamp-sub001"
)

// Profile mask bits. Exactly one of the profile bits is set on a
// realized context.
const (
	MaskCore          uint32 = 1 << 0
	MaskCompatibility uint32 = 1 << 1
	MaskES            uint32 = 1 << 2
)

// Context creation flags.
const (
	FlagDebug         uint32 = 1 << 0
	FlagForwardCompat uint32 = 1 << 1
	FlagRobust        uint32 = 1 << 2
	FlagSoftware      uint32 = 1 << 3
	FlagVerbose       uint32 = 1 << 4
)

// Profile identifies the realized GL version and profile of a context.
type Profile struct {
	Major int
	Minor int
	Mask  uint32
	Flags uint32
}

// IsES reports whether the profile is an embedded-systems profile.
func (p Profile) IsES() bool { return p.Mask&MaskES != 0 }

// AtLeast reports whether the profile version is >= major.minor.
func (p Profile) AtLeast(major, minor int) bool {
	return p.Major > major || (p.Major == major && p.Minor >= minor)
}

// GLSLVersion returns the shading-language version string matching the
// context version, without the "#version" prefix: "100" and "300 es"
// for ES, "110".."150" for desktop GL up to 3.2, and "<M><m>0 core" or
// "<M><m>0 compatibility" from 3.3 on.
func (p Profile) GLSLVersion() string {
	if p.IsES() {
		if p.Major >= 3 {
			return fmt.Sprintf("%d%d0 es", p.Major, p.Minor)
		}
		return "100"
	}
	switch {
	case p.Major < 2:
		return "110"
	case p.Major == 2:
		if p.Minor == 0 {
			return "110"
		}
		return "120"
	case p.Major == 3 && p.Minor == 0:
		return "130"
	case p.Major == 3 && p.Minor == 1:
		return "140"
	case p.Major == 3 && p.Minor == 2:
		return "150"
	}
	v := fmt.Sprintf("%d%d0", p.Major, p.Minor)
	if p.Mask&MaskCompatibility != 0 {
		return v + " compatibility"
	}
	return v + " core"
}

// GLSLVersionString returns the full "#version ...\n" directive line.
func (p Profile) GLSLVersionString() string {
	return "#version " + p.GLSLVersion() + "\n"
}

func (p Profile) String() string {
	kind := "gl"
	switch {
	case p.Mask&MaskES != 0:
		kind = "gles"
	case p.Mask&MaskCompatibility != 0:
		kind = "gl-compat"
	}
	return fmt.Sprintf("%s %d.%d", kind, p.Major, p.Minor)
}

// currentContext tracks the context current on this process. GL itself
// scopes currency per thread; this runtime pins rendering to one locked
// OS thread, so one slot suffices.
var currentContext atomic.Pointer[RenderContext]

// CurrentContext returns the context made current last, nil when none.
func CurrentContext() *RenderContext { return currentContext.Load() }

// MakeCurrentFunc realizes or releases the native context binding. It is
// supplied by the windowing layer; ctx is nil on release.
type MakeCurrentFunc func(current bool) error

// RenderContext owns the realized GL binding of one drawable: the API
// backend, the realized profile, and per-context attachments keyed by
// name. Attachments let higher layers (font renderers, caches) park
// context-scoped resources that must die with the context.
type RenderContext struct {
	api         API
	profile     Profile
	makeCurrent MakeCurrentFunc

	mu          sync.Mutex
	attachments map[string]any
	disposed    []func()
	dead        bool
}

// NewRenderContext wires a backend and its realized profile into a
// context. makeCurrent may be nil for offscreen or test contexts.
func NewRenderContext(api API, profile Profile, makeCurrent MakeCurrentFunc) (*RenderContext, error) {
	if api == nil {
		return nil, fmt.Errorf("%w: nil API backend", ErrInvalidArgument)
	}
	return &RenderContext{
		api:         api,
		profile:     profile,
		makeCurrent: makeCurrent,
		attachments: make(map[string]any),
	}, nil
}

// API returns the backend call surface.
func (c *RenderContext) API() API { return c.api }

// Profile returns the realized version and profile.
func (c *RenderContext) Profile() Profile { return c.profile }

// IsCurrent reports whether this context is the current one.
func (c *RenderContext) IsCurrent() bool { return currentContext.Load() == c }

// MakeCurrent makes the context current, releasing any other current
// context first.
func (c *RenderContext) MakeCurrent() error {
	c.mu.Lock()
	dead := c.dead
	c.mu.Unlock()
	if dead {
		return fmt.Errorf("%w: context destroyed", ErrInvalidState)
	}
	if prev := currentContext.Load(); prev == c {
		return nil
	} else if prev != nil {
		if err := prev.Release(); err != nil {
			return err
		}
	}
	if c.makeCurrent != nil {
		if err := c.makeCurrent(true); err != nil {
			return fmt.Errorf("gl: make current: %w", err)
		}
	}
	currentContext.Store(c)
	return nil
}

// Release detaches the context from the calling thread. No-op when the
// context is not current.
func (c *RenderContext) Release() error {
	if currentContext.Load() != c {
		return nil
	}
	if c.makeCurrent != nil {
		if err := c.makeCurrent(false); err != nil {
			return fmt.Errorf("gl: release: %w", err)
		}
	}
	currentContext.CompareAndSwap(c, nil)
	return nil
}

// Attach stores a context-scoped value under name, returning the
// previous value if any.
func (c *RenderContext) Attach(name string, v any) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev := c.attachments[name]
	c.attachments[name] = v
	return prev
}

// Attachment returns the value stored under name, nil when absent.
func (c *RenderContext) Attachment(name string) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attachments[name]
}

// Detach removes and returns the value stored under name.
func (c *RenderContext) Detach(name string) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev := c.attachments[name]
	delete(c.attachments, name)
	return prev
}

// DisposedNotify registers f to run once when the context is destroyed.
// Registration after destruction runs f immediately.
func (c *RenderContext) DisposedNotify(f func()) {
	c.mu.Lock()
	if c.dead {
		c.mu.Unlock()
		f()
		return
	}
	c.disposed = append(c.disposed, f)
	c.mu.Unlock()
}

// Destroy runs the disposal callbacks, drops all attachments and marks
// the context dead. The context must be current so callbacks can free
// GPU resources; Destroy releases it afterwards. Destroy is idempotent.
func (c *RenderContext) Destroy() error {
	c.mu.Lock()
	if c.dead {
		c.mu.Unlock()
		return nil
	}
	c.dead = true
	callbacks := c.disposed
	c.disposed = nil
	c.attachments = make(map[string]any)
	c.mu.Unlock()

	for _, f := range callbacks {
		f()
	}
	if err := c.Release(); err != nil {
		gamp.Logger().Warn("gl: release on destroy failed", "err", err)
	}
	return nil
}
