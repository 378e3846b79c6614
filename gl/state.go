package gl

import "fmt"

// ShaderState caches per-program resolved locations so descriptors do
// not re-query the driver on every frame. One ShaderState accompanies
// one ShaderProgram for its lifetime.
type ShaderState struct {
	program *ShaderProgram
	attribs map[string]AttribLocation

	// boundArrayBuffer mirrors the GL array-buffer binding as driven
	// through this state, letting handlers skip redundant re-binds.
	boundArrayBuffer BufferName

	// pointers mirrors, per attribute location, the VBO the pointer was
	// last captured from. GL pointer state is per location and snapshots
	// the binding at the glVertexAttribPointer call, so the pointer must
	// be re-issued whenever a location switches to a different VBO.
	pointers map[AttribLocation]BufferName
}

// NewShaderState returns an empty location cache for p.
func NewShaderState(p *ShaderProgram) *ShaderState {
	return &ShaderState{
		program:  p,
		attribs:  make(map[string]AttribLocation),
		pointers: make(map[AttribLocation]BufferName),
	}
}

// Program returns the tracked program.
func (s *ShaderState) Program() *ShaderProgram { return s.program }

// ResolveAttribute resolves and caches the location of the named
// attribute on the tracked program, writing it into d. The program must
// be linked.
func (s *ShaderState) ResolveAttribute(api API, d *BufferDescriptor) error {
	if !d.IsVertexAttribute() {
		return fmt.Errorf("%w: descriptor %q is not a vertex attribute", ErrInvalidArgument, d.Name())
	}
	if !s.program.Linked() {
		return fmt.Errorf("%w: resolving %q before link", ErrInvalidState, d.Name())
	}
	loc, ok := s.attribs[d.Name()]
	if !ok {
		loc = api.GetAttribLocation(s.program.Handle(), d.Name())
		if loc < 0 {
			return fmt.Errorf("%w: attribute %q not found", ErrInvalidState, d.Name())
		}
		s.attribs[d.Name()] = loc
	}
	d.SetLocation(loc)
	return nil
}

// BindArrayBuffer binds name to the array-buffer target when it is not
// already the tracked binding. Returns true when a GL bind was issued.
func (s *ShaderState) BindArrayBuffer(api API, name BufferName) bool {
	if s.boundArrayBuffer == name {
		return false
	}
	api.BindBuffer(ArrayBuffer, name)
	s.boundArrayBuffer = name
	return true
}

// BoundArrayBuffer returns the tracked array-buffer binding.
func (s *ShaderState) BoundArrayBuffer() BufferName { return s.boundArrayBuffer }

// noteArrayBinding records n as the current array-buffer binding after
// a bind issued outside BindArrayBuffer.
func (s *ShaderState) noteArrayBinding(n BufferName) { s.boundArrayBuffer = n }

// attribPointerVBO returns the VBO the location's pointer was last set
// from, 0 when never set through this state.
func (s *ShaderState) attribPointerVBO(loc AttribLocation) BufferName {
	return s.pointers[loc]
}

// noteAttribPointer records the VBO captured by the location's pointer.
func (s *ShaderState) noteAttribPointer(loc AttribLocation, n BufferName) {
	s.pointers[loc] = n
}

// Invalidate drops all cached locations and the binding mirrors, e.g.
// after a relink changed the program's resource layout.
func (s *ShaderState) Invalidate() {
	s.attribs = make(map[string]AttribLocation)
	s.pointers = make(map[AttribLocation]BufferName)
	s.boundArrayBuffer = 0
}
