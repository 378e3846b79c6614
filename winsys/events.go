// Package winsys provides the windowing surface of the runtime: the
// input event taxonomy, listener registration with copy-on-write
// snapshots, and the Window frame loop that drives render listeners
// over a GL context. The glfwdrv sub-package binds it to a native
// window; winsys itself has no OS dependency, which keeps dispatch
// testable.
package winsys

import "time"

// Modifiers is the key/button modifier set attached to input events.
type Modifiers uint32

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
	ModRepeat

	// Button bits follow the named modifiers; ButtonMod(n) maps
	// button numbers 1..n onto them.
	modButtonBase
)

// ButtonMod returns the modifier bit of pointer button n (1-based).
func ButtonMod(n int) Modifiers {
	if n < 1 || n > 16 {
		return 0
	}
	return modButtonBase << (n - 1)
}

// Has reports whether all bits of m are set.
func (mods Modifiers) Has(m Modifiers) bool { return mods&m == m }

// AnyButton reports whether any pointer button bit is set.
func (mods Modifiers) AnyButton() bool { return mods >= modButtonBase }

// Event is the base of all window-system events. Consuming an event
// stops its propagation to later listeners.
type Event struct {
	When     time.Time
	Source   *Window
	consumed bool
}

// Consume stops propagation to listeners registered after the current
// one.
func (e *Event) Consume() { e.consumed = true }

// Consumed reports whether a listener consumed the event.
func (e *Event) Consumed() bool { return e.consumed }

// WindowAction discriminates WindowEvent.
type WindowAction int

const (
	WindowResized WindowAction = iota
	WindowMoved
	WindowDestroyNotify
	WindowDestroyed
	WindowFocusChanged
	WindowRepaint
	WindowVisibilityChanged
)

// WindowEvent carries window lifecycle and geometry changes. Resized
// reports both the window size and the surface (framebuffer) size,
// which differ on scaled displays.
type WindowEvent struct {
	Event
	Action WindowAction

	WinWidth, WinHeight   int
	SurfWidth, SurfHeight int
	X, Y                  int
	Focused               bool
	Visible               bool
}

// KeyAction discriminates KeyEvent.
type KeyAction int

const (
	KeyPressed KeyAction = iota
	KeyReleased
)

// KeyCode is a virtual key code in the driver's numbering.
type KeyCode uint16

// KeyEvent carries one key transition. Rune is the printable Unicode
// character where defined, 0 otherwise.
type KeyEvent struct {
	Event
	Action KeyAction
	Code   KeyCode
	Rune   rune
	Mods   Modifiers
}

// PointerAction discriminates PointerEvent.
type PointerAction int

const (
	PointerClicked PointerAction = iota
	PointerEntered
	PointerExited
	PointerPressed
	PointerReleased
	PointerMoved
	PointerDragged
	PointerWheel
)

// PointerType identifies the input device class.
type PointerType int

const (
	PointerMouse PointerType = iota
	PointerTouchpad
	PointerTouchscreen
	PointerPen
)

// PointerEvent carries one pointer transition for one or more pointers.
// The per-pointer slices share indices; single-pointer devices carry
// one entry.
type PointerEvent struct {
	Event
	Action PointerAction
	Type   PointerType

	IDs      []int
	X, Y     []float32
	Pressure []float32

	ClickCount int
	Button     int
	Mods       Modifiers

	Rotation      [3]float32
	RotationScale float32
}
