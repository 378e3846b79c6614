package winsys

import (
	"sync"
	"time"
)

// KeyListener receives key transitions.
type KeyListener interface {
	OnKey(e *KeyEvent)
}

// PointerListener receives pointer transitions.
type PointerListener interface {
	OnPointer(e *PointerEvent)
}

// WindowListener receives window lifecycle events.
type WindowListener interface {
	OnWindowEvent(e *WindowEvent)
}

// RenderListener renders into a window. Init runs once before the
// first Display; Reshape runs after any surface-size change before the
// next Display. An error from Init or Display removes the listener and
// Dispose runs exactly once.
type RenderListener interface {
	Init(w *Window) error
	Reshape(w *Window, width, height int)
	Display(w *Window, now time.Time) error
	Dispose(w *Window)
}

// listenerList holds listeners as copy-on-write snapshots: Add and
// Remove build a fresh slice, so a listener mutating the list during
// dispatch never invalidates the walk in progress.
type listenerList[T comparable] struct {
	mu    sync.Mutex
	items []T
}

func (l *listenerList[T]) add(v T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	next := make([]T, len(l.items)+1)
	copy(next, l.items)
	next[len(l.items)] = v
	l.items = next
}

func (l *listenerList[T]) remove(v T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, it := range l.items {
		if it == v {
			next := make([]T, 0, len(l.items)-1)
			next = append(next, l.items[:i]...)
			next = append(next, l.items[i+1:]...)
			l.items = next
			return true
		}
	}
	return false
}

// snapshot returns the current slice; callers must not mutate it.
func (l *listenerList[T]) snapshot() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.items
}

func (l *listenerList[T]) clear() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	items := l.items
	l.items = nil
	return items
}
