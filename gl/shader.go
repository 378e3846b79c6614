package gl

import (
	"fmt"
	"strings"
	"sync/atomic"

	gamp "github.com/sgothel/gamp-sub001"
)

// Process-wide id counters for hashing and equality. Ids never recycle.
var (
	shaderCodeIDs    atomic.Uint64
	shaderProgramIDs atomic.Uint64
)

// ShaderCode is one shader object: type, sources, compile state and the
// driver info log of the last compile.
type ShaderCode struct {
	id       uint64
	typ      Enum
	sources  []string
	handle   ShaderName
	compiled bool
	infoLog  string
}

// NewShaderCode creates a shader code of the given type from one or
// more source fragments. At least one non-empty fragment is required.
func NewShaderCode(typ Enum, sources ...string) (*ShaderCode, error) {
	if typ != VertexShader && typ != FragmentShader {
		return nil, fmt.Errorf("%w: shader type 0x%04x", ErrInvalidArgument, uint32(typ))
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: no shader sources", ErrInvalidArgument)
	}
	total := 0
	for _, s := range sources {
		total += len(s)
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: empty shader source", ErrInvalidArgument)
	}
	return &ShaderCode{
		id:      shaderCodeIDs.Add(1),
		typ:     typ,
		sources: append([]string(nil), sources...),
	}, nil
}

// ID returns the process-wide unique id of this shader code.
func (c *ShaderCode) ID() uint64 { return c.id }

// Type returns the shader type.
func (c *ShaderCode) Type() Enum { return c.typ }

// Compiled reports whether the last compile succeeded.
func (c *ShaderCode) Compiled() bool { return c.compiled }

// Handle returns the GL shader name, 0 before the first compile.
func (c *ShaderCode) Handle() ShaderName { return c.handle }

// InfoLog returns the driver info log of the last compile.
func (c *ShaderCode) InfoLog() string { return c.infoLog }

// Source returns the concatenated source text.
func (c *ShaderCode) Source() string { return strings.Join(c.sources, "") }

// DefaultShaderCustomization prepends the profile's #version directive
// when the source does not already begin with one.
func (c *ShaderCode) DefaultShaderCustomization(p Profile) {
	src := c.Source()
	if strings.HasPrefix(strings.TrimLeft(src, " \t\n"), "#version") {
		return
	}
	c.sources = []string{p.GLSLVersionString(), src}
}

// Compile compiles the shader, creating the GL object on first use.
// It returns false on compile failure with the driver info log recorded.
func (c *ShaderCode) Compile(api API) bool {
	if c.handle == 0 {
		c.handle = api.CreateShader(c.typ)
	}
	api.ShaderSource(c.handle, c.Source())
	api.CompileShader(c.handle)
	c.compiled = api.GetShaderi(c.handle, CompileStatus) != 0
	if !c.compiled {
		c.infoLog = api.GetShaderInfoLog(c.handle)
		gamp.Logger().Warn("gl: shader compile failed",
			"shader", c.id, "log", c.infoLog)
	}
	return c.compiled
}

// Destroy deletes the GL shader object.
func (c *ShaderCode) Destroy(api API) {
	if c.handle != 0 {
		api.DeleteShader(c.handle)
		c.handle = 0
	}
	c.compiled = false
}

// ShaderProgram is a program object over an ordered set of shader
// codes, tracking which members are attached, the link state and the
// in-use state.
type ShaderProgram struct {
	id       uint64
	handle   ProgramName
	shaders  []*ShaderCode
	attached map[uint64]bool
	linked   bool
	inUse    bool
	infoLog  string
}

// NewShaderProgram returns an empty program descriptor. No GL object is
// created until the first Link.
func NewShaderProgram() *ShaderProgram {
	return &ShaderProgram{
		id:       shaderProgramIDs.Add(1),
		attached: make(map[uint64]bool),
	}
}

// ID returns the process-wide unique id of this program.
func (p *ShaderProgram) ID() uint64 { return p.id }

// Handle returns the GL program name, 0 before the first Link.
func (p *ShaderProgram) Handle() ProgramName { return p.handle }

// Linked reports whether the last link succeeded.
func (p *ShaderProgram) Linked() bool { return p.linked }

// InUse reports whether the program is the active one.
func (p *ShaderProgram) InUse() bool { return p.inUse }

// InfoLog returns the driver info log of the last link.
func (p *ShaderProgram) InfoLog() string { return p.infoLog }

// Shaders returns the member shader codes in insertion order.
func (p *ShaderProgram) Shaders() []*ShaderCode { return p.shaders }

// Add inserts code into the member set without compiling; compilation
// is deferred to link time. Duplicate insertion reports false.
func (p *ShaderProgram) Add(code *ShaderCode) bool {
	for _, c := range p.shaders {
		if c.id == code.id {
			return false
		}
	}
	p.shaders = append(p.shaders, code)
	return true
}

// AddCompile inserts code and compiles it immediately, attaching it to
// the program. It returns false on compile failure; the program remains
// valid but not linked.
func (p *ShaderProgram) AddCompile(api API, code *ShaderCode) bool {
	p.Add(code)
	if !code.compiled && !code.Compile(api) {
		return false
	}
	p.ensureHandle(api)
	if !p.attached[code.id] {
		api.AttachShader(p.handle, code.handle)
		p.attached[code.id] = true
	}
	return true
}

func (p *ShaderProgram) ensureHandle(api API) {
	if p.handle == 0 {
		p.handle = api.CreateProgram()
	}
}

// Link compiles any not-yet-compiled member, attaches any not-yet-
// attached member, links and queries the link status. Repeated Link on
// an unchanged program is idempotent at the descriptor level.
func (p *ShaderProgram) Link(api API) bool {
	p.ensureHandle(api)
	for _, c := range p.shaders {
		if !c.compiled && !c.Compile(api) {
			p.linked = false
			return false
		}
		if !p.attached[c.id] {
			api.AttachShader(p.handle, c.handle)
			p.attached[c.id] = true
		}
	}
	api.LinkProgram(p.handle)
	p.linked = api.GetProgrami(p.handle, LinkStatus) != 0
	if !p.linked {
		p.infoLog = api.GetProgramInfoLog(p.handle)
		gamp.Logger().Warn("gl: program link failed",
			"program", p.id, "log", p.infoLog)
	}
	return p.linked
}

// ReplaceShader swaps oldCode for newCode and relinks: the program is
// un-used first if active, oldCode is detached, newCode compiled and
// attached. If the program was in use and the relink succeeded it is
// put back in use. Returns false when newCode fails to compile, oldCode
// is not a member, or the relink fails.
func (p *ShaderProgram) ReplaceShader(api API, oldCode, newCode *ShaderCode) bool {
	idx := -1
	for i, c := range p.shaders {
		if c.id == oldCode.id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	if !newCode.compiled && !newCode.Compile(api) {
		return false
	}

	wasInUse := p.inUse
	if wasInUse {
		if err := p.UseProgram(api, false); err != nil {
			return false
		}
	}
	if p.attached[oldCode.id] {
		api.DetachShader(p.handle, oldCode.handle)
		delete(p.attached, oldCode.id)
	}
	p.shaders[idx] = newCode
	api.AttachShader(p.handle, newCode.handle)
	p.attached[newCode.id] = true

	if !p.Link(api) {
		return false
	}
	if wasInUse {
		return p.UseProgram(api, true) == nil
	}
	return true
}

// Validate issues the runtime validate-program check. The result is
// advisory; drivers are known to fail working programs.
func (p *ShaderProgram) Validate(api API) bool {
	if p.handle == 0 {
		return false
	}
	api.ValidateProgram(p.handle)
	ok := api.GetProgrami(p.handle, ValidateStatus) != 0
	if !ok {
		gamp.Logger().Warn("gl: program validation failed",
			"program", p.id, "log", api.GetProgramInfoLog(p.handle))
	}
	return ok
}

// UseProgram makes the program active (on) or inactive (off). It is
// idempotent and fails when activating before a successful Link.
func (p *ShaderProgram) UseProgram(api API, on bool) error {
	if on == p.inUse {
		return nil
	}
	if on {
		if !p.linked {
			return fmt.Errorf("%w: use of unlinked program %d", ErrInvalidState, p.id)
		}
		api.UseProgram(p.handle)
		p.inUse = true
	} else {
		api.UseProgram(0)
		p.inUse = false
	}
	return nil
}

// Destroy detaches all members, optionally destroys each shader code,
// and deletes the program object.
func (p *ShaderProgram) Destroy(api API, destroyShaderCode bool) {
	if p.inUse {
		api.UseProgram(0)
		p.inUse = false
	}
	for _, c := range p.shaders {
		if p.attached[c.id] {
			api.DetachShader(p.handle, c.handle)
			delete(p.attached, c.id)
		}
		if destroyShaderCode {
			c.Destroy(api)
		}
	}
	if p.handle != 0 {
		api.DeleteProgram(p.handle)
		p.handle = 0
	}
	p.linked = false
}

// Release is Destroy without destroying the member shader codes.
func (p *ShaderProgram) Release(api API) {
	p.Destroy(api, false)
}
