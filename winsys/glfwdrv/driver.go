// Package glfwdrv binds winsys.Window to a native window through
// goxjs/glfw, which targets desktop GLFW via cgo and the browser via
// GopherJS. The driver owns the native window and the frame loop; all
// input arrives through the winsys event queue.
//
// GLFW requires its calls on the main thread; callers run Init, Open
// and Loop from main with runtime.LockOSThread in effect (done in a
// package init here, the GLFW convention).
package glfwdrv

import (
	"fmt"
	"runtime"
	"time"
	"unicode"

	xgl "github.com/goxjs/gl"
	"github.com/goxjs/glfw"

	"github.com/sgothel/gamp-sub001/gl"
	"github.com/sgothel/gamp-sub001/gl/glx"
	"github.com/sgothel/gamp-sub001/winsys"
)

func init() {
	runtime.LockOSThread()
}

// Init initializes GLFW with the goxjs context watcher. Call Terminate
// when done.
func Init() error {
	if err := glfw.Init(xgl.ContextWatcher); err != nil {
		return fmt.Errorf("glfwdrv: init: %w", err)
	}
	return nil
}

// Terminate shuts GLFW down.
func Terminate() {
	glfw.Terminate()
}

// Driver pairs one native GLFW window with its winsys target.
type Driver struct {
	native *glfw.Window
	target *winsys.Window
}

// Open creates the native window for target, makes its context current
// and wires input callbacks into the target's event queue. The realized
// GL context is attached to the target.
func Open(target *winsys.Window) (*Driver, error) {
	w, h := target.Size()
	native, err := glfw.CreateWindow(w, h, target.Title(), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("glfwdrv: create window: %w", err)
	}
	native.MakeContextCurrent()

	d := &Driver{native: native, target: target}
	d.wireCallbacks()

	// goxjs exposes an ES2-level surface on every platform.
	profile := gl.Profile{Major: 2, Minor: 0, Mask: gl.MaskES}
	ctx, err := gl.NewRenderContext(glx.New(), profile, func(current bool) error {
		if current {
			native.MakeContextCurrent()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := ctx.MakeCurrent(); err != nil {
		return nil, err
	}
	target.SetContext(ctx)

	// Deliver the real framebuffer size before the first frame.
	fbw, fbh := native.GetFramebufferSize()
	target.Post(&winsys.WindowEvent{
		Event:     winsys.Event{When: time.Now()},
		Action:    winsys.WindowResized,
		WinWidth:  w,
		WinHeight: h,
		SurfWidth: fbw, SurfHeight: fbh,
	})
	return d, nil
}

func (d *Driver) wireCallbacks() {
	d.native.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		var ka winsys.KeyAction
		m := convertMods(mods)
		switch action {
		case glfw.Press:
			ka = winsys.KeyPressed
		case glfw.Release:
			ka = winsys.KeyReleased
		case glfw.Repeat:
			ka = winsys.KeyPressed
			m |= winsys.ModRepeat
		default:
			return
		}
		d.target.Post(&winsys.KeyEvent{
			Event:  winsys.Event{When: time.Now()},
			Action: ka,
			Code:   winsys.KeyCode(key),
			Rune:   keyRune(key, m),
			Mods:   m,
		})
	})

	d.native.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		pa := winsys.PointerPressed
		if action == glfw.Release {
			pa = winsys.PointerReleased
		}
		x, y := d.native.GetCursorPos()
		d.target.Post(&winsys.PointerEvent{
			Event:  winsys.Event{When: time.Now()},
			Action: pa,
			Type:   winsys.PointerMouse,
			IDs:    []int{0},
			X:      []float32{float32(x)},
			Y:      []float32{float32(y)},
			Button: int(button) + 1,
			Mods:   convertMods(mods),
		})
	})

	d.native.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		d.target.Post(&winsys.PointerEvent{
			Event:  winsys.Event{When: time.Now()},
			Action: winsys.PointerMoved,
			Type:   winsys.PointerMouse,
			IDs:    []int{0},
			X:      []float32{float32(x)},
			Y:      []float32{float32(y)},
		})
	})

	d.native.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		d.target.Post(&winsys.PointerEvent{
			Event:         winsys.Event{When: time.Now()},
			Action:        winsys.PointerWheel,
			Type:          winsys.PointerMouse,
			IDs:           []int{0},
			Rotation:      [3]float32{float32(xoff), float32(yoff), 0},
			RotationScale: 1,
		})
	})

	d.native.SetFramebufferSizeCallback(func(_ *glfw.Window, fbw, fbh int) {
		ww, wh := d.native.GetSize()
		d.target.Post(&winsys.WindowEvent{
			Event:     winsys.Event{When: time.Now()},
			Action:    winsys.WindowResized,
			WinWidth:  ww,
			WinHeight: wh,
			SurfWidth: fbw, SurfHeight: fbh,
		})
	})
}

func convertMods(mods glfw.ModifierKey) winsys.Modifiers {
	var m winsys.Modifiers
	if mods&glfw.ModShift != 0 {
		m |= winsys.ModShift
	}
	if mods&glfw.ModControl != 0 {
		m |= winsys.ModCtrl
	}
	if mods&glfw.ModAlt != 0 {
		m |= winsys.ModAlt
	}
	if mods&glfw.ModSuper != 0 {
		m |= winsys.ModMeta
	}
	return m
}

// keyRune maps printable GLFW key codes to their character; GLFW names
// letter keys by their uppercase ASCII code.
func keyRune(key glfw.Key, mods winsys.Modifiers) rune {
	if key < 32 || key > 126 {
		return 0
	}
	r := rune(key)
	if !mods.Has(winsys.ModShift) {
		r = unicode.ToLower(r)
	}
	return r
}

// Loop runs the frame loop until the native window is closed or the
// target is destroyed: poll events, dispatch one frame, swap. fps > 0
// caps the frame rate by sleeping the remainder of the frame budget;
// fps <= 0 free-runs.
func (d *Driver) Loop(fps int) error {
	var budget time.Duration
	if fps > 0 {
		budget = time.Second / time.Duration(fps)
	}
	for !d.native.ShouldClose() && !d.target.Destroyed() {
		start := time.Now()
		glfw.PollEvents()
		if err := d.target.DispatchFrame(start); err != nil {
			return err
		}
		d.native.SwapBuffers()
		if budget > 0 {
			if rest := budget - time.Since(start); rest > 0 {
				time.Sleep(rest)
			}
		}
	}
	return nil
}

// Close destroys the winsys target and the native window.
func (d *Driver) Close() {
	d.target.Destroy()
	d.native.Destroy()
}
