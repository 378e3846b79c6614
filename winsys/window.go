package winsys

import (
	"errors"
	"fmt"
	"sync"
	"time"

	gamp "github.com/sgothel/gamp-sub001"
	"github.com/sgothel/gamp-sub001/gl"
)

// ErrWindowDestroyed reports an operation on a destroyed window.
var ErrWindowDestroyed = errors.New("winsys: window destroyed")

type renderEntry struct {
	l        RenderListener
	inited   bool
	disposed bool
}

// Window is one render target: an event queue drained at frame start,
// listener lists, and the render-listener loop. All rendering methods
// are meant for a single render goroutine that holds the GL context;
// event producers may post from any goroutine.
type Window struct {
	title string

	mu                    sync.Mutex
	winWidth, winHeight   int
	surfWidth, surfHeight int
	x, y                  int
	focused               bool
	visible               bool
	destroyed             bool
	pendingReshape        bool
	heldButtons           Modifiers

	queueMu sync.Mutex
	queue   []any

	keyLs    listenerList[KeyListener]
	ptrLs    listenerList[PointerListener]
	winLs    listenerList[WindowListener]
	renderMu sync.Mutex
	renders  []*renderEntry

	lock *surfaceLock
	ctx  *gl.RenderContext
}

// NewWindow creates a window shell with the given initial sizes. The
// surface size starts equal to the window size until the driver reports
// the real framebuffer size.
func NewWindow(title string, width, height int) *Window {
	return &Window{
		title:      title,
		winWidth:   width,
		winHeight:  height,
		surfWidth:  width,
		surfHeight: height,
		visible:    true,
		// First frame reshapes every listener to the initial size.
		pendingReshape: true,
		lock:           newSurfaceLock(),
	}
}

// Title returns the window title.
func (w *Window) Title() string { return w.title }

// Size returns the window size in screen units.
func (w *Window) Size() (width, height int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.winWidth, w.winHeight
}

// SurfaceSize returns the framebuffer size in pixels.
func (w *Window) SurfaceSize() (width, height int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.surfWidth, w.surfHeight
}

// Focused reports the last reported focus state.
func (w *Window) Focused() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.focused
}

// Destroyed reports whether Destroy ran.
func (w *Window) Destroyed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.destroyed
}

// SetContext attaches the realized GL context.
func (w *Window) SetContext(ctx *gl.RenderContext) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ctx = ctx
}

// Context returns the attached GL context, nil before realization.
func (w *Window) Context() *gl.RenderContext {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ctx
}

// LockSurface acquires the surface lock, recursively for the holding
// goroutine, waiting at most DefaultLockTimeout.
func (w *Window) LockSurface() error {
	return w.lock.lock(DefaultLockTimeout)
}

// UnlockSurface releases one level of the surface lock.
func (w *Window) UnlockSurface() {
	w.lock.unlock()
}

// AddKeyListener registers l for key events.
func (w *Window) AddKeyListener(l KeyListener) { w.keyLs.add(l) }

// RemoveKeyListener unregisters l.
func (w *Window) RemoveKeyListener(l KeyListener) { w.keyLs.remove(l) }

// AddPointerListener registers l for pointer events.
func (w *Window) AddPointerListener(l PointerListener) { w.ptrLs.add(l) }

// RemovePointerListener unregisters l.
func (w *Window) RemovePointerListener(l PointerListener) { w.ptrLs.remove(l) }

// AddWindowListener registers l for window events.
func (w *Window) AddWindowListener(l WindowListener) { w.winLs.add(l) }

// RemoveWindowListener unregisters l.
func (w *Window) RemoveWindowListener(l WindowListener) { w.winLs.remove(l) }

// AddRenderListener registers l; its Init runs on the next frame.
func (w *Window) AddRenderListener(l RenderListener) {
	w.renderMu.Lock()
	defer w.renderMu.Unlock()
	next := make([]*renderEntry, len(w.renders)+1)
	copy(next, w.renders)
	next[len(w.renders)] = &renderEntry{l: l}
	w.renders = next
}

// RemoveRenderListener unregisters l and runs its Dispose if it was
// initialized.
func (w *Window) RemoveRenderListener(l RenderListener) {
	w.renderMu.Lock()
	var removed *renderEntry
	for i, e := range w.renders {
		if e.l == l {
			removed = e
			next := make([]*renderEntry, 0, len(w.renders)-1)
			next = append(next, w.renders[:i]...)
			next = append(next, w.renders[i+1:]...)
			w.renders = next
			break
		}
	}
	w.renderMu.Unlock()
	if removed != nil {
		w.disposeEntry(removed)
	}
}

func (w *Window) renderSnapshot() []*renderEntry {
	w.renderMu.Lock()
	defer w.renderMu.Unlock()
	return w.renders
}

func (w *Window) disposeEntry(e *renderEntry) {
	if e.disposed || !e.inited {
		e.disposed = true
		return
	}
	e.disposed = true
	defer func() {
		if r := recover(); r != nil {
			gamp.Logger().Warn("winsys: render listener panicked in Dispose",
				"window", w.title, "panic", r)
		}
	}()
	e.l.Dispose(w)
}

// Post enqueues an event for the next frame. Events posted to a
// destroyed window are dropped.
func (w *Window) Post(event any) {
	w.mu.Lock()
	dead := w.destroyed
	w.mu.Unlock()
	if dead {
		return
	}
	w.queueMu.Lock()
	w.queue = append(w.queue, event)
	w.queueMu.Unlock()
}

func (w *Window) drain() []any {
	w.queueMu.Lock()
	defer w.queueMu.Unlock()
	q := w.queue
	w.queue = nil
	return q
}

// DispatchFrame drains the event queue, dispatches input and window
// events in arrival order, then runs the render listeners: Init once
// before the first Display, Reshape before Display after any surface
// size change. A listener that fails or panics in Init or Display is
// removed and its Dispose runs exactly once.
func (w *Window) DispatchFrame(now time.Time) error {
	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return ErrWindowDestroyed
	}
	w.mu.Unlock()

	for _, ev := range w.drain() {
		w.dispatchEvent(ev)
	}

	w.mu.Lock()
	reshape := w.pendingReshape
	w.pendingReshape = false
	sw, sh := w.surfWidth, w.surfHeight
	w.mu.Unlock()

	for _, e := range w.renderSnapshot() {
		if e.disposed {
			continue
		}
		fresh := false
		if !e.inited {
			if ok := w.safeInit(e); !ok {
				continue
			}
			fresh = true
		}
		if reshape || fresh {
			e.l.Reshape(w, sw, sh)
		}
		w.safeDisplay(e, now)
	}
	return nil
}

func (w *Window) safeInit(e *renderEntry) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			w.failListener(e, fmt.Errorf("panic in Init: %v", r))
			ok = false
		}
	}()
	if err := e.l.Init(w); err != nil {
		w.failListener(e, fmt.Errorf("Init: %w", err))
		return false
	}
	e.inited = true
	return true
}

func (w *Window) safeDisplay(e *renderEntry, now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			w.failListener(e, fmt.Errorf("panic in Display: %v", r))
		}
	}()
	if err := e.l.Display(w, now); err != nil {
		w.failListener(e, fmt.Errorf("Display: %w", err))
	}
}

func (w *Window) failListener(e *renderEntry, err error) {
	gamp.Logger().Warn("winsys: removing failed render listener",
		"window", w.title, "err", err)
	w.renderMu.Lock()
	for i, cur := range w.renders {
		if cur == e {
			next := make([]*renderEntry, 0, len(w.renders)-1)
			next = append(next, w.renders[:i]...)
			next = append(next, w.renders[i+1:]...)
			w.renders = next
			break
		}
	}
	w.renderMu.Unlock()
	w.disposeEntry(e)
}

func (w *Window) dispatchEvent(ev any) {
	switch e := ev.(type) {
	case *KeyEvent:
		e.Source = w
		for _, l := range w.keyLs.snapshot() {
			if e.Consumed() {
				break
			}
			l.OnKey(e)
		}
	case *PointerEvent:
		e.Source = w
		w.trackButtons(e)
		for _, l := range w.ptrLs.snapshot() {
			if e.Consumed() {
				break
			}
			l.OnPointer(e)
		}
	case *WindowEvent:
		e.Source = w
		w.applyWindowEvent(e)
		for _, l := range w.winLs.snapshot() {
			if e.Consumed() {
				break
			}
			l.OnWindowEvent(e)
		}
	default:
		gamp.Logger().Debug("winsys: dropping unknown event", "event", fmt.Sprintf("%T", ev))
	}
}

// trackButtons maintains the held-button set and promotes moved to
// dragged while any button is held.
func (w *Window) trackButtons(e *PointerEvent) {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch e.Action {
	case PointerPressed:
		w.heldButtons |= ButtonMod(e.Button)
	case PointerReleased:
		w.heldButtons &^= ButtonMod(e.Button)
	case PointerMoved:
		if w.heldButtons.AnyButton() || e.Mods.AnyButton() {
			e.Action = PointerDragged
		}
	}
	e.Mods |= w.heldButtons
}

func (w *Window) applyWindowEvent(e *WindowEvent) {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch e.Action {
	case WindowResized:
		w.winWidth, w.winHeight = e.WinWidth, e.WinHeight
		if e.SurfWidth != w.surfWidth || e.SurfHeight != w.surfHeight {
			w.surfWidth, w.surfHeight = e.SurfWidth, e.SurfHeight
			w.pendingReshape = true
		}
	case WindowMoved:
		w.x, w.y = e.X, e.Y
	case WindowFocusChanged:
		w.focused = e.Focused
	case WindowVisibilityChanged:
		w.visible = e.Visible
	}
}

// Destroy cancels pending events, notifies window listeners, disposes
// every remaining render listener exactly once and releases the GL
// context. Destroy is idempotent.
func (w *Window) Destroy() {
	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return
	}
	ctx := w.ctx
	w.mu.Unlock()

	notify := &WindowEvent{Event: Event{When: time.Now(), Source: w}, Action: WindowDestroyNotify}
	for _, l := range w.winLs.snapshot() {
		if notify.Consumed() {
			break
		}
		l.OnWindowEvent(notify)
	}

	w.queueMu.Lock()
	w.queue = nil
	w.queueMu.Unlock()

	w.renderMu.Lock()
	entries := w.renders
	w.renders = nil
	w.renderMu.Unlock()
	for _, e := range entries {
		w.disposeEntry(e)
	}

	if ctx != nil {
		if err := ctx.Destroy(); err != nil {
			gamp.Logger().Warn("winsys: context destroy failed", "window", w.title, "err", err)
		}
	}

	w.mu.Lock()
	w.destroyed = true
	w.mu.Unlock()

	done := &WindowEvent{Event: Event{When: time.Now(), Source: w}, Action: WindowDestroyed}
	for _, l := range w.winLs.clear() {
		if done.Consumed() {
			break
		}
		l.OnWindowEvent(done)
	}
	w.keyLs.clear()
	w.ptrLs.clear()
}
