package gl

import (
	"encoding/binary"
	"fmt"
	"math"
)

// BufferDescriptor is a typed vertex-attribute or data buffer: component
// layout fixed at construction, client-side write buffer, and the VBO
// state machine (none -> named -> bound -> uploaded) driven by the array
// handlers.
//
// A descriptor is created before any context exists and holds no GPU
// names until first bind; it must be destroyed while a context is
// current.
type BufferDescriptor struct {
	// immutable layout
	name         string
	compType     Enum
	compCount    int
	bytesPerComp int
	stride       int
	normalized   bool
	isVertexAttr bool
	target       Enum
	usage        Enum

	// mutable state
	location   AttribLocation
	vboName    BufferName
	vboOffset  int
	vboEnabled bool
	bound      bool
	uploaded   bool
	sealed     bool
	alive      bool

	data []byte
}

func validUsage(usage Enum) bool {
	switch usage {
	case 0, StaticDraw, DynamicDraw, StreamDraw:
		return true
	}
	return false
}

// newDescriptor validates the shared construction rules of §all
// descriptor flavours.
func newDescriptor(name string, compCount int, compType Enum, normalized bool,
	stride int, target, usage Enum, isVertexAttr bool, maxComps int) (*BufferDescriptor, error) {

	bpc := SizeOf(compType)
	if bpc == 0 {
		return nil, fmt.Errorf("%w: unknown component type 0x%04x", ErrInvalidArgument, uint32(compType))
	}
	if compCount < 1 || compCount > maxComps {
		return nil, fmt.Errorf("%w: component count %d outside [1,%d]", ErrInvalidArgument, compCount, maxComps)
	}
	if stride == 0 {
		stride = compCount * bpc
	}
	if stride < compCount*bpc || stride%bpc != 0 {
		return nil, fmt.Errorf("%w: stride %d incompatible with %d x %d-byte components",
			ErrInvalidArgument, stride, compCount, bpc)
	}
	switch target {
	case 0:
		target = ArrayBuffer
	case ArrayBuffer, ElementArrayBuffer:
	default:
		return nil, fmt.Errorf("%w: buffer target 0x%04x", ErrInvalidArgument, uint32(target))
	}
	if !validUsage(usage) {
		return nil, fmt.Errorf("%w: buffer usage 0x%04x", ErrInvalidArgument, uint32(usage))
	}
	if isVertexAttr && name == "" && target != ElementArrayBuffer {
		return nil, fmt.Errorf("%w: vertex attribute needs a name", ErrInvalidArgument)
	}
	return &BufferDescriptor{
		name:         name,
		compType:     compType,
		compCount:    compCount,
		bytesPerComp: bpc,
		stride:       stride,
		normalized:   normalized,
		isVertexAttr: isVertexAttr,
		target:       target,
		usage:        usage,
		location:     -1,
		sealed:       true,
		alive:        true,
	}, nil
}

// NewVertexAttribute creates a descriptor for a named vertex attribute
// with compCount components (1..4) of compType per element. A stride of
// zero means tightly packed.
func NewVertexAttribute(name string, compCount int, compType Enum, normalized bool, stride int, usage Enum) (*BufferDescriptor, error) {
	return newDescriptor(name, compCount, compType, normalized, stride, ArrayBuffer, usage, true, 4)
}

// NewElementBuffer creates a data-only descriptor for an element-array
// buffer of index type compType.
func NewElementBuffer(compType Enum, usage Enum) (*BufferDescriptor, error) {
	return newDescriptor("", 1, compType, false, 0, ElementArrayBuffer, usage, false, 1)
}

// NewDataBuffer creates a data-only descriptor with no vertex-attribute
// association. The typed-data path allows any component count >= 1.
func NewDataBuffer(compCount int, compType Enum, stride int, usage Enum) (*BufferDescriptor, error) {
	return newDescriptor("", compCount, compType, false, stride, ArrayBuffer, usage, false, 1<<30)
}

// Name returns the attribute name; empty for data-only descriptors.
func (d *BufferDescriptor) Name() string { return d.name }

// CompType returns the component type.
func (d *BufferDescriptor) CompType() Enum { return d.compType }

// CompCount returns the components per element.
func (d *BufferDescriptor) CompCount() int { return d.compCount }

// BytesPerComp returns the byte size of one component.
func (d *BufferDescriptor) BytesPerComp() int { return d.bytesPerComp }

// Stride returns the byte stride between elements.
func (d *BufferDescriptor) Stride() int { return d.stride }

// Normalized reports whether fixed-point data is normalized on fetch.
func (d *BufferDescriptor) Normalized() bool { return d.normalized }

// Target returns the VBO bind target.
func (d *BufferDescriptor) Target() Enum { return d.target }

// Usage returns the VBO usage hint.
func (d *BufferDescriptor) Usage() Enum { return d.usage }

// IsVertexAttribute reports whether the descriptor binds to a shader
// attribute.
func (d *BufferDescriptor) IsVertexAttribute() bool { return d.isVertexAttr }

// Alive reports whether the descriptor has not been destroyed.
func (d *BufferDescriptor) Alive() bool { return d.alive }

// Sealed reports whether the write phase is closed.
func (d *BufferDescriptor) Sealed() bool { return d.sealed }

// Location returns the resolved attribute location, -1 if unresolved.
func (d *BufferDescriptor) Location() AttribLocation { return d.location }

// SetLocation overrides the attribute location.
func (d *BufferDescriptor) SetLocation(loc AttribLocation) { d.location = loc }

// VBOName returns the buffer object name, 0 when none was set.
func (d *BufferDescriptor) VBOName() BufferName { return d.vboName }

// SetVBOName hands the descriptor an existing buffer name; a non-zero
// name enables VBO use.
func (d *BufferDescriptor) SetVBOName(n BufferName) {
	d.vboName = n
	d.vboEnabled = n != 0
	d.uploaded = false
}

// VBOOffset returns the byte offset of this attribute inside the VBO.
func (d *BufferDescriptor) VBOOffset() int { return d.vboOffset }

// SetVBOOffset sets the byte offset inside the VBO, for interleaved
// layouts where several attributes share one buffer.
func (d *BufferDescriptor) SetVBOOffset(off int) { d.vboOffset = off }

// Bound reports whether the VBO is currently bound at the GL call site.
func (d *BufferDescriptor) Bound() bool { return d.bound }

// Uploaded reports whether client data has been uploaded to the VBO.
func (d *BufferDescriptor) Uploaded() bool { return d.uploaded }

// Bytes returns the client-side data.
func (d *BufferDescriptor) Bytes() []byte { return d.data }

// ElemCount returns the number of whole elements in the client data.
func (d *BufferDescriptor) ElemCount() int {
	if d.stride == 0 {
		return 0
	}
	return len(d.data) / d.stride
}

// Seal closes (true) or re-opens (false) the write phase. Re-opening
// preserves capacity and marks the server copy stale.
func (d *BufferDescriptor) Seal(sealed bool) {
	if d.sealed == sealed {
		return
	}
	d.sealed = sealed
	if !sealed {
		d.uploaded = false
	}
}

// Putf appends float32 values to the client data. The descriptor must
// be alive and open for writing.
func (d *BufferDescriptor) Putf(vs ...float32) error {
	if err := d.writable(); err != nil {
		return err
	}
	for _, v := range vs {
		d.data = binary.LittleEndian.AppendUint32(d.data, math.Float32bits(v))
	}
	return nil
}

// Puti appends int32 values to the client data.
func (d *BufferDescriptor) Puti(vs ...int32) error {
	if err := d.writable(); err != nil {
		return err
	}
	for _, v := range vs {
		d.data = binary.LittleEndian.AppendUint32(d.data, uint32(v))
	}
	return nil
}

// PutBytes appends raw bytes to the client data.
func (d *BufferDescriptor) PutBytes(b []byte) error {
	if err := d.writable(); err != nil {
		return err
	}
	d.data = append(d.data, b...)
	return nil
}

func (d *BufferDescriptor) writable() error {
	if !d.alive {
		return fmt.Errorf("%w: descriptor destroyed", ErrInvalidState)
	}
	if d.sealed {
		return fmt.Errorf("%w: descriptor sealed; call Seal(false) first", ErrInvalidState)
	}
	return nil
}

// Bind binds (on) or unbinds (off) the VBO at the GL call site,
// creating the buffer name on first use.
func (d *BufferDescriptor) Bind(api API, on bool) error {
	if !d.alive {
		return fmt.Errorf("%w: descriptor destroyed", ErrInvalidState)
	}
	if on {
		if d.vboName == 0 {
			d.SetVBOName(api.CreateBuffer())
		}
		api.BindBuffer(d.target, d.vboName)
		d.bound = true
	} else {
		api.BindBuffer(d.target, 0)
		d.bound = false
	}
	return nil
}

// Upload issues the GPU allocation and copy of the client data. The VBO
// must be bound.
func (d *BufferDescriptor) Upload(api API) error {
	if !d.alive {
		return fmt.Errorf("%w: descriptor destroyed", ErrInvalidState)
	}
	if !d.bound {
		return fmt.Errorf("%w: upload requires a bound VBO", ErrInvalidState)
	}
	api.BufferData(d.target, d.data, d.usage)
	d.uploaded = true
	return nil
}

// Destroy releases the GPU name and marks the descriptor not alive.
// Must run while a context is current.
func (d *BufferDescriptor) Destroy(api API) {
	if d.vboName != 0 {
		api.DeleteBuffer(d.vboName)
		d.vboName = 0
	}
	d.data = nil
	d.bound = false
	d.uploaded = false
	d.vboEnabled = false
	d.alive = false
}
