// Package glx backs the gl.API call surface with goxjs/gl, which in
// turn targets desktop OpenGL via cgo or WebGL via GopherJS. The
// backend maps this module's numeric object names onto the library's
// opaque handles; the map indirection keeps the descriptor layer free
// of build-tag specific types.
//
// goxjs/gl exposes an ES2-level surface, so the backend does not
// implement gl.UniformBufferAPI; uniform-buffer descriptors detect that
// at Resolve time.
package glx

import (
	"sync"

	xgl "github.com/goxjs/gl"

	"github.com/sgothel/gamp-sub001/gl"
)

// Backend adapts goxjs/gl to gl.API. One Backend serves one realized
// context; handles from different contexts must not be mixed.
type Backend struct {
	mu       sync.Mutex
	nextName uint32
	buffers  map[gl.BufferName]xgl.Buffer
	shaders  map[gl.ShaderName]xgl.Shader
	programs map[gl.ProgramName]xgl.Program
}

// New returns an empty backend. The GL library must already be
// initialized (glfw.Init on desktop) before any call goes through.
func New() *Backend {
	return &Backend{
		buffers:  make(map[gl.BufferName]xgl.Buffer),
		shaders:  make(map[gl.ShaderName]xgl.Shader),
		programs: make(map[gl.ProgramName]xgl.Program),
	}
}

func (b *Backend) newName() uint32 {
	b.nextName++
	return b.nextName
}

func (b *Backend) CreateBuffer() gl.BufferName {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := gl.BufferName(b.newName())
	b.buffers[n] = xgl.CreateBuffer()
	return n
}

func (b *Backend) DeleteBuffer(n gl.BufferName) {
	b.mu.Lock()
	buf, ok := b.buffers[n]
	delete(b.buffers, n)
	b.mu.Unlock()
	if ok {
		xgl.DeleteBuffer(buf)
	}
}

func (b *Backend) buffer(n gl.BufferName) xgl.Buffer {
	if n == 0 {
		return xgl.Buffer{}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buffers[n]
}

func (b *Backend) BindBuffer(target gl.Enum, n gl.BufferName) {
	xgl.BindBuffer(xgl.Enum(target), b.buffer(n))
}

func (b *Backend) BufferData(target gl.Enum, data []byte, usage gl.Enum) {
	xgl.BufferData(xgl.Enum(target), data, xgl.Enum(usage))
}

func (b *Backend) BufferSubData(target gl.Enum, offset int, data []byte) {
	xgl.BufferSubData(xgl.Enum(target), offset, data)
}

func attrib(loc gl.AttribLocation) xgl.Attrib {
	return xgl.Attrib{Value: uint(loc)}
}

func (b *Backend) EnableVertexAttribArray(loc gl.AttribLocation) {
	xgl.EnableVertexAttribArray(attrib(loc))
}

func (b *Backend) DisableVertexAttribArray(loc gl.AttribLocation) {
	xgl.DisableVertexAttribArray(attrib(loc))
}

func (b *Backend) VertexAttribPointer(loc gl.AttribLocation, size int, typ gl.Enum, normalized bool, stride, offset int) {
	xgl.VertexAttribPointer(attrib(loc), size, xgl.Enum(typ), normalized, stride, offset)
}

func (b *Backend) GetAttribLocation(p gl.ProgramName, name string) gl.AttribLocation {
	a := xgl.GetAttribLocation(b.program(p), name)
	return gl.AttribLocation(int32(a.Value))
}

func (b *Backend) CreateShader(typ gl.Enum) gl.ShaderName {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := gl.ShaderName(b.newName())
	b.shaders[n] = xgl.CreateShader(xgl.Enum(typ))
	return n
}

func (b *Backend) shader(n gl.ShaderName) xgl.Shader {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shaders[n]
}

func (b *Backend) ShaderSource(s gl.ShaderName, src string) {
	xgl.ShaderSource(b.shader(s), src)
}

func (b *Backend) CompileShader(s gl.ShaderName) {
	xgl.CompileShader(b.shader(s))
}

func (b *Backend) GetShaderi(s gl.ShaderName, pname gl.Enum) int {
	return xgl.GetShaderi(b.shader(s), xgl.Enum(pname))
}

func (b *Backend) GetShaderInfoLog(s gl.ShaderName) string {
	return xgl.GetShaderInfoLog(b.shader(s))
}

func (b *Backend) DeleteShader(s gl.ShaderName) {
	b.mu.Lock()
	sh, ok := b.shaders[s]
	delete(b.shaders, s)
	b.mu.Unlock()
	if ok {
		xgl.DeleteShader(sh)
	}
}

func (b *Backend) CreateProgram() gl.ProgramName {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := gl.ProgramName(b.newName())
	b.programs[n] = xgl.CreateProgram()
	return n
}

func (b *Backend) program(n gl.ProgramName) xgl.Program {
	if n == 0 {
		return xgl.Program{}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.programs[n]
}

func (b *Backend) AttachShader(p gl.ProgramName, s gl.ShaderName) {
	xgl.AttachShader(b.program(p), b.shader(s))
}

func (b *Backend) DetachShader(p gl.ProgramName, s gl.ShaderName) {
	xgl.DetachShader(b.program(p), b.shader(s))
}

func (b *Backend) LinkProgram(p gl.ProgramName) {
	xgl.LinkProgram(b.program(p))
}

func (b *Backend) ValidateProgram(p gl.ProgramName) {
	xgl.ValidateProgram(b.program(p))
}

func (b *Backend) GetProgrami(p gl.ProgramName, pname gl.Enum) int {
	return xgl.GetProgrami(b.program(p), xgl.Enum(pname))
}

func (b *Backend) GetProgramInfoLog(p gl.ProgramName) string {
	return xgl.GetProgramInfoLog(b.program(p))
}

func (b *Backend) UseProgram(p gl.ProgramName) {
	xgl.UseProgram(b.program(p))
}

func (b *Backend) DeleteProgram(p gl.ProgramName) {
	b.mu.Lock()
	pr, ok := b.programs[p]
	delete(b.programs, p)
	b.mu.Unlock()
	if ok {
		xgl.DeleteProgram(pr)
	}
}

func uniform(loc gl.UniformLocation) xgl.Uniform {
	return xgl.Uniform{Value: int32(loc)}
}

func (b *Backend) GetUniformLocation(p gl.ProgramName, name string) gl.UniformLocation {
	u := xgl.GetUniformLocation(b.program(p), name)
	return gl.UniformLocation(u.Value)
}

func (b *Backend) Uniform1i(loc gl.UniformLocation, v int32) {
	xgl.Uniform1i(uniform(loc), int(v))
}

func (b *Backend) Uniform1f(loc gl.UniformLocation, v float32) {
	xgl.Uniform1f(uniform(loc), v)
}

func (b *Backend) Uniform1fv(loc gl.UniformLocation, src []float32) {
	xgl.Uniform1fv(uniform(loc), src)
}

func (b *Backend) Uniform1iv(loc gl.UniformLocation, src []int32) {
	xgl.Uniform1iv(uniform(loc), src)
}

func (b *Backend) Uniform2fv(loc gl.UniformLocation, src []float32) {
	xgl.Uniform2fv(uniform(loc), src)
}

func (b *Backend) Uniform3fv(loc gl.UniformLocation, src []float32) {
	xgl.Uniform3fv(uniform(loc), src)
}

func (b *Backend) Uniform4fv(loc gl.UniformLocation, src []float32) {
	xgl.Uniform4fv(uniform(loc), src)
}

func (b *Backend) Uniform2iv(loc gl.UniformLocation, src []int32) {
	xgl.Uniform2iv(uniform(loc), src)
}

func (b *Backend) Uniform3iv(loc gl.UniformLocation, src []int32) {
	xgl.Uniform3iv(uniform(loc), src)
}

func (b *Backend) Uniform4iv(loc gl.UniformLocation, src []int32) {
	xgl.Uniform4iv(uniform(loc), src)
}

func (b *Backend) UniformMatrix2fv(loc gl.UniformLocation, src []float32) {
	xgl.UniformMatrix2fv(uniform(loc), src)
}

func (b *Backend) UniformMatrix3fv(loc gl.UniformLocation, src []float32) {
	xgl.UniformMatrix3fv(uniform(loc), src)
}

func (b *Backend) UniformMatrix4fv(loc gl.UniformLocation, src []float32) {
	xgl.UniformMatrix4fv(uniform(loc), src)
}

func (b *Backend) DrawArrays(mode gl.Enum, first, count int) {
	xgl.DrawArrays(xgl.Enum(mode), first, count)
}

func (b *Backend) DrawElements(mode gl.Enum, count int, typ gl.Enum, offset int) {
	xgl.DrawElements(xgl.Enum(mode), count, xgl.Enum(typ), offset)
}

func (b *Backend) GetError() gl.Enum {
	return gl.Enum(xgl.GetError())
}

// Clear wraps glClear for the frame loop.
func (b *Backend) Clear(mask gl.Enum) {
	xgl.Clear(xgl.Enum(mask))
}

// ClearColor wraps glClearColor.
func (b *Backend) ClearColor(r, g, f, a float32) {
	xgl.ClearColor(r, g, f, a)
}

// Viewport wraps glViewport for reshape handling.
func (b *Backend) Viewport(x, y, w, h int) {
	xgl.Viewport(x, y, w, h)
}

var _ gl.API = (*Backend)(nil)
