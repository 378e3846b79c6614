// Command glyphdemo triangulates a text string into curve-aware
// triangle meshes and renders it resolution independent.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	gamp "github.com/sgothel/gamp-sub001"
	"github.com/sgothel/gamp-sub001/font"
	"github.com/sgothel/gamp-sub001/winsys"
	"github.com/sgothel/gamp-sub001/winsys/glfwdrv"
)

func main() {
	var (
		width    = flag.Int("width", 800, "window width")
		height   = flag.Int("height", 600, "window height")
		fps      = flag.Int("fps", 0, "target frame rate, <= 0 free-runs")
		text     = flag.String("text", "gamp", "text to triangulate and render")
		fontPath = flag.String("font", "", "path to a TTF/OTF font file")
		verbose  = flag.Bool("v", false, "log debug output to stderr")
	)
	flag.Parse()

	if *verbose {
		gamp.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := run(*width, *height, *fps, *text, *fontPath); err != nil {
		fmt.Fprintln(os.Stderr, "glyphdemo:", err)
		os.Exit(1)
	}
}

func run(width, height, fps int, text, fontPath string) error {
	if fontPath == "" {
		return fmt.Errorf("no font given, use -font path/to/font.ttf")
	}
	face, err := font.ParseFile(fontPath)
	if err != nil {
		return err
	}

	if err := glfwdrv.Init(); err != nil {
		return err
	}
	defer glfwdrv.Terminate()

	win := winsys.NewWindow("glyphdemo "+gamp.Version, width, height)
	drv, err := glfwdrv.Open(win)
	if err != nil {
		return err
	}
	defer drv.Close()

	win.AddRenderListener(newGlyphRenderer(face, text))
	win.AddKeyListener(quitOnEscape{win})

	return drv.Loop(fps)
}

type quitOnEscape struct {
	win *winsys.Window
}

func (q quitOnEscape) OnKey(e *winsys.KeyEvent) {
	// GLFW escape key code.
	if e.Action == winsys.KeyPressed && e.Code == 256 {
		q.win.Destroy()
		e.Consume()
	}
}
