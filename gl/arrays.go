package gl

import "fmt"

// ArrayHandler drives one descriptor (or a group of interleaved ones)
// through the bind, upload and attribute-pointer sequence for a frame.
type ArrayHandler interface {
	// Enable binds and enables the underlying data for drawing (on) or
	// disables and unbinds it (off).
	Enable(api API, on bool) error
}

// bindThrough binds d's VBO for drawing. With a state, the bind is
// skipped when the mirror already shows d's VBO as the array-buffer
// binding; without one, every enable re-binds.
func bindThrough(api API, s *ShaderState, d *BufferDescriptor) error {
	if s != nil && d.VBOName() != 0 && s.BoundArrayBuffer() == d.VBOName() {
		return nil
	}
	if err := d.Bind(api, true); err != nil {
		return err
	}
	if s != nil {
		s.noteArrayBinding(d.VBOName())
	}
	return nil
}

// unbindThrough clears the array-buffer binding and the mirror.
func unbindThrough(api API, s *ShaderState, d *BufferDescriptor) error {
	if err := d.Bind(api, false); err != nil {
		return err
	}
	if s != nil {
		s.noteArrayBinding(0)
	}
	return nil
}

// PlainArrayHandler binds one vertex-attribute descriptor backed by its
// own VBO.
type PlainArrayHandler struct {
	desc  *BufferDescriptor
	state *ShaderState
}

// NewPlainArrayHandler wraps a single vertex-attribute descriptor. A
// non-nil state shares the binding and pointer mirrors with other
// handlers on the same program, so a location claimed by several
// descriptors gets its pointer re-issued whenever the VBO it reads from
// changes.
func NewPlainArrayHandler(d *BufferDescriptor, s *ShaderState) (*PlainArrayHandler, error) {
	if d == nil || !d.IsVertexAttribute() {
		return nil, fmt.Errorf("%w: plain handler needs a vertex-attribute descriptor", ErrInvalidArgument)
	}
	return &PlainArrayHandler{desc: d, state: s}, nil
}

// Enable runs bind, first-use upload, pointer setup and attribute
// enable; the pointer is re-issued when the location last read from a
// different VBO. Disabling turns the attribute off and unbinds.
func (h *PlainArrayHandler) Enable(api API, on bool) error {
	d := h.desc
	if !on {
		if d.Location() >= 0 {
			api.DisableVertexAttribArray(d.Location())
		}
		return unbindThrough(api, h.state, d)
	}
	if d.Location() < 0 {
		return fmt.Errorf("%w: attribute %q unresolved", ErrInvalidState, d.Name())
	}
	if err := bindThrough(api, h.state, d); err != nil {
		return err
	}
	fresh := !d.Uploaded()
	if fresh {
		if err := d.Upload(api); err != nil {
			return err
		}
	}
	if (h.state != nil && h.state.attribPointerVBO(d.Location()) != d.VBOName()) ||
		(h.state == nil && fresh) {
		api.VertexAttribPointer(d.Location(), d.CompCount(), d.CompType(),
			d.Normalized(), d.Stride(), d.VBOOffset())
		if h.state != nil {
			h.state.noteAttribPointer(d.Location(), d.VBOName())
		}
	}
	api.EnableVertexAttribArray(d.Location())
	return nil
}

// InterleavedArrayHandler binds one master VBO holding several
// attributes at byte offsets within a shared stride.
type InterleavedArrayHandler struct {
	master *BufferDescriptor
	subs   []*BufferDescriptor
	state  *ShaderState
}

// NewInterleavedArrayHandler wraps a data-only master descriptor whose
// bytes hold the interleaved elements. A non-nil state lets repeated
// enables skip the re-bind and the per-sub pointer calls.
func NewInterleavedArrayHandler(master *BufferDescriptor, s *ShaderState) (*InterleavedArrayHandler, error) {
	if master == nil || master.IsVertexAttribute() {
		return nil, fmt.Errorf("%w: interleaved handler needs a data-only master", ErrInvalidArgument)
	}
	return &InterleavedArrayHandler{master: master, state: s}, nil
}

// AddSub registers an attribute view into the master buffer. The sub
// descriptor's stride must equal the master's and its offset plus
// component span must fit within one stride.
func (h *InterleavedArrayHandler) AddSub(d *BufferDescriptor) error {
	if d == nil || !d.IsVertexAttribute() {
		return fmt.Errorf("%w: interleaved sub needs a vertex-attribute descriptor", ErrInvalidArgument)
	}
	if d.Stride() != h.master.Stride() {
		return fmt.Errorf("%w: sub %q stride %d != master stride %d",
			ErrInvalidArgument, d.Name(), d.Stride(), h.master.Stride())
	}
	if end := d.VBOOffset() + d.CompCount()*d.BytesPerComp(); end > h.master.Stride() {
		return fmt.Errorf("%w: sub %q spans [%d,%d) beyond stride %d",
			ErrInvalidArgument, d.Name(), d.VBOOffset(), end, h.master.Stride())
	}
	h.subs = append(h.subs, d)
	return nil
}

// Enable binds the master once, uploads on first use, then points and
// enables every sub attribute at its offset. Disabling walks the subs
// in reverse and unbinds the master.
func (h *InterleavedArrayHandler) Enable(api API, on bool) error {
	m := h.master
	if !on {
		for i := len(h.subs) - 1; i >= 0; i-- {
			if loc := h.subs[i].Location(); loc >= 0 {
				api.DisableVertexAttribArray(loc)
			}
		}
		return unbindThrough(api, h.state, m)
	}
	if err := bindThrough(api, h.state, m); err != nil {
		return err
	}
	if !m.Uploaded() {
		if err := m.Upload(api); err != nil {
			return err
		}
	}
	for _, d := range h.subs {
		if d.Location() < 0 {
			return fmt.Errorf("%w: attribute %q unresolved", ErrInvalidState, d.Name())
		}
		// Subs share the master's VBO without owning it.
		d.SetVBOName(m.VBOName())
		if h.state == nil || h.state.attribPointerVBO(d.Location()) != m.VBOName() {
			api.VertexAttribPointer(d.Location(), d.CompCount(), d.CompType(),
				d.Normalized(), m.Stride(), d.VBOOffset())
			if h.state != nil {
				h.state.noteAttribPointer(d.Location(), m.VBOName())
			}
		}
		api.EnableVertexAttribArray(d.Location())
	}
	return nil
}

// DataArrayHandler binds a data-only buffer, e.g. an element-array
// buffer, with no attribute pointers.
type DataArrayHandler struct {
	desc *BufferDescriptor
}

// NewDataArrayHandler wraps a data-only descriptor.
func NewDataArrayHandler(d *BufferDescriptor) (*DataArrayHandler, error) {
	if d == nil || d.IsVertexAttribute() {
		return nil, fmt.Errorf("%w: data handler needs a data-only descriptor", ErrInvalidArgument)
	}
	return &DataArrayHandler{desc: d}, nil
}

// Enable binds the buffer and uploads on first use; disabling unbinds.
func (h *DataArrayHandler) Enable(api API, on bool) error {
	d := h.desc
	if !on {
		return d.Bind(api, false)
	}
	if err := d.Bind(api, true); err != nil {
		return err
	}
	if !d.Uploaded() {
		return d.Upload(api)
	}
	return nil
}
