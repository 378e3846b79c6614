package winsys

import (
	"errors"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ErrLockTimeout reports that a surface-lock wait exceeded its limit.
var ErrLockTimeout = errors.New("winsys: surface lock timeout")

// DefaultLockTimeout is the surface-lock wait limit.
const DefaultLockTimeout = 5 * time.Second

// surfaceLock is a timed, recursive lock: the holding goroutine may
// re-acquire freely, other goroutines wait up to the timeout.
type surfaceLock struct {
	mu    sync.Mutex
	cond  *sync.Cond
	owner uint64
	depth int
}

func newSurfaceLock() *surfaceLock {
	l := &surfaceLock{}
	l.cond = sync.NewCond(&l.mu)
	return l
}

func (l *surfaceLock) lock(timeout time.Duration) error {
	id := goid()
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.owner == id {
		l.depth++
		return nil
	}
	deadline := time.Now().Add(timeout)
	for l.owner != 0 {
		wait := time.Until(deadline)
		if wait <= 0 {
			return ErrLockTimeout
		}
		t := time.AfterFunc(wait, l.cond.Broadcast)
		l.cond.Wait()
		t.Stop()
	}
	l.owner = id
	l.depth = 1
	return nil
}

func (l *surfaceLock) unlock() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.owner != goid() || l.depth == 0 {
		panic("winsys: unlock of surface lock not held by caller")
	}
	l.depth--
	if l.depth == 0 {
		l.owner = 0
		l.cond.Broadcast()
	}
}

// goid extracts the calling goroutine's id from its stack header. The
// surface lock needs an owner identity for recursive acquisition and
// the runtime offers no cheaper portable handle.
func goid() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	fields := strings.Fields(string(buf[:n]))
	if len(fields) < 2 {
		return 0
	}
	id, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0
	}
	return id
}
