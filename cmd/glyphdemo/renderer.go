package main

import (
	"fmt"
	"time"

	gamp "github.com/sgothel/gamp-sub001"
	"github.com/sgothel/gamp-sub001/font"
	"github.com/sgothel/gamp-sub001/gl"
	"github.com/sgothel/gamp-sub001/graph"
	"github.com/sgothel/gamp-sub001/winsys"
)

const vertexShaderSrc = `
uniform mat4 uMVP;
attribute vec3 aPos;
attribute vec3 aTex;
varying vec3 vTex;
void main() {
    vTex = aTex;
    gl_Position = uMVP * vec4(aPos, 1.0);
}
`

// The fragment shader evaluates the quadratic Bezier fill rule carried
// in the triangle texture coordinates: interior triangles pass
// unconditionally (t near 0.1), curve triangles discard fragments on
// the convex side of u^2 - v.
const fragmentShaderSrc = `
precision mediump float;
uniform vec4 uColor;
varying vec3 vTex;
void main() {
    float u = vTex.x;
    float v = abs(vTex.y) - 0.1;
    if (v > 0.0 && u * u - v > 0.0) {
        discard;
    }
    gl_FragColor = uColor;
}
`

// glyphRenderer triangulates the demo text once at Init and replays the
// packed mesh each frame.
type glyphRenderer struct {
	face *font.Face
	text string

	program *gl.ShaderProgram
	state   *gl.ShaderState
	mvp     *gl.UniformDescriptor
	color   *gl.UniformDescriptor
	master  *gl.BufferDescriptor
	handler *gl.InterleavedArrayHandler

	vertexCount int
}

func newGlyphRenderer(face *font.Face, text string) *glyphRenderer {
	return &glyphRenderer{face: face, text: text}
}

func (r *glyphRenderer) Init(w *winsys.Window) error {
	ctx := w.Context()
	if ctx == nil {
		return fmt.Errorf("no GL context attached")
	}
	api := ctx.API()

	vs, err := gl.NewShaderCode(gl.VertexShader, vertexShaderSrc)
	if err != nil {
		return err
	}
	fs, err := gl.NewShaderCode(gl.FragmentShader, fragmentShaderSrc)
	if err != nil {
		return err
	}
	vs.DefaultShaderCustomization(ctx.Profile())
	fs.DefaultShaderCustomization(ctx.Profile())

	r.program = gl.NewShaderProgram()
	r.program.Add(vs)
	r.program.Add(fs)
	if !r.program.Link(api) {
		return fmt.Errorf("program link failed: %s", r.program.InfoLog())
	}
	r.state = gl.NewShaderState(r.program)

	if err := r.buildMesh(api); err != nil {
		return err
	}

	r.mvp, err = gl.NewUniform("uMVP", 4, 4, 1, gl.Float)
	if err != nil {
		return err
	}
	r.color, err = gl.NewUniform("uColor", 1, 4, 1, gl.Float)
	if err != nil {
		return err
	}
	if err := r.mvp.Resolve(api, r.program.Handle()); err != nil {
		return err
	}
	if err := r.color.Resolve(api, r.program.Handle()); err != nil {
		return err
	}
	return r.color.SetFloats(0.9, 0.9, 0.95, 1)
}

func (r *glyphRenderer) buildMesh(api gl.API) error {
	const size = 96.0
	placed, err := font.Layout(r.face, r.text, size, font.DirectionLTR)
	if err != nil {
		return err
	}

	var packed []float32
	for _, pg := range placed {
		tris := pg.Shape.Triangles()
		floats := graph.PackTriangles(tris)
		// Shift the glyph to its pen position.
		for i := 0; i < len(floats); i += graph.InterleavedStride / 4 {
			floats[i] += float32(pg.X)
		}
		packed = append(packed, floats...)
		gamp.Logger().Debug("glyphdemo: glyph triangulated",
			"rune", string(pg.Rune), "triangles", len(tris))
	}
	r.vertexCount = len(packed) / 6

	r.master, err = gl.NewDataBuffer(6, gl.Float, graph.InterleavedStride, gl.StaticDraw)
	if err != nil {
		return err
	}
	r.master.Seal(false)
	if err := r.master.Putf(packed...); err != nil {
		return err
	}
	r.master.Seal(true)

	pos, err := gl.NewVertexAttribute("aPos", 3, gl.Float, false, graph.InterleavedStride, gl.StaticDraw)
	if err != nil {
		return err
	}
	tex, err := gl.NewVertexAttribute("aTex", 3, gl.Float, false, graph.InterleavedStride, gl.StaticDraw)
	if err != nil {
		return err
	}
	tex.SetVBOOffset(12)
	if err := r.state.ResolveAttribute(api, pos); err != nil {
		return err
	}
	if err := r.state.ResolveAttribute(api, tex); err != nil {
		return err
	}

	r.handler, err = gl.NewInterleavedArrayHandler(r.master, r.state)
	if err != nil {
		return err
	}
	if err := r.handler.AddSub(pos); err != nil {
		return err
	}
	return r.handler.AddSub(tex)
}

func (r *glyphRenderer) Reshape(w *winsys.Window, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	// Orthographic projection, origin bottom-left, with a margin so
	// descenders stay on screen.
	l, rt := float32(-40), float32(width-40)
	b, t := float32(-140), float32(height-140)
	ortho := [16]float32{
		2 / (rt - l), 0, 0, 0,
		0, 2 / (t - b), 0, 0,
		0, 0, -1, 0,
		-(rt + l) / (rt - l), -(t + b) / (t - b), 0, 1,
	}
	if err := r.mvp.SetFloats(ortho[:]...); err != nil {
		gamp.Logger().Warn("glyphdemo: bad projection", "err", err)
	}
}

func (r *glyphRenderer) Display(w *winsys.Window, now time.Time) error {
	ctx := w.Context()
	if ctx == nil {
		return fmt.Errorf("no GL context attached")
	}
	api := ctx.API()

	if err := r.program.UseProgram(api, true); err != nil {
		return err
	}
	if err := r.mvp.Upload(api); err != nil {
		return err
	}
	if err := r.color.Upload(api); err != nil {
		return err
	}
	if err := r.handler.Enable(api, true); err != nil {
		return err
	}
	api.DrawArrays(gl.Triangles, 0, r.vertexCount)
	if err := r.handler.Enable(api, false); err != nil {
		return err
	}
	return gl.CheckError(api, "glyphdemo draw")
}

func (r *glyphRenderer) Dispose(w *winsys.Window) {
	ctx := w.Context()
	if ctx == nil {
		return
	}
	api := ctx.API()
	if r.master != nil {
		r.master.Destroy(api)
	}
	if r.mvp != nil {
		r.mvp.Destroy(api)
	}
	if r.color != nil {
		r.color.Destroy(api)
	}
	if r.program != nil {
		r.program.Destroy(api, true)
	}
}
