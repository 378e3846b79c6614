package gl

import "fmt"

// UniformDescriptor is a typed uniform or uniform-buffer descriptor.
// The signature is rows x columns x count of a component type; a
// non-zero buffer size selects the uniform-buffer path, in which case
// the block index and global binding point replace the location.
//
// Location and index are mutually exclusive views: a plain uniform
// resolves a location (>= 0) and keeps the block index invalid; a
// buffer uniform resolves a block index and keeps location at -1.
type UniformDescriptor struct {
	name     string
	rows     int
	cols     int
	count    int
	compType Enum

	location UniformLocation

	bufferSize   int
	blockIndex   uint32
	bindingPoint uint32
	bufferName   BufferName

	floats []float32
	ints   []int32
	alive  bool
}

// NewUniform creates a plain uniform descriptor of rows x cols
// components, count array elements, with components of compType (Float
// or Int). Matrices require rows == cols and Float components.
func NewUniform(name string, rows, cols, count int, compType Enum) (*UniformDescriptor, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: uniform needs a name", ErrInvalidArgument)
	}
	if rows < 1 || rows > 4 || cols < 1 || cols > 4 {
		return nil, fmt.Errorf("%w: uniform signature %dx%d", ErrInvalidArgument, rows, cols)
	}
	if rows > 1 && cols > 1 {
		if rows != cols {
			return nil, fmt.Errorf("%w: non-square matrix %dx%d", ErrInvalidArgument, rows, cols)
		}
		if compType != Float {
			return nil, fmt.Errorf("%w: matrix uniforms must be float", ErrInvalidArgument)
		}
	}
	if count < 1 {
		return nil, fmt.Errorf("%w: uniform count %d", ErrInvalidArgument, count)
	}
	if compType != Float && compType != Int {
		return nil, fmt.Errorf("%w: uniform component type 0x%04x", ErrInvalidArgument, uint32(compType))
	}
	return &UniformDescriptor{
		name:       name,
		rows:       rows,
		cols:       cols,
		count:      count,
		compType:   compType,
		location:   -1,
		blockIndex: InvalidBlockIndex,
		alive:      true,
	}, nil
}

// NewUniformBuffer creates a uniform-buffer descriptor bound to the
// given global binding point, backed by a server buffer of size bytes.
func NewUniformBuffer(name string, bindingPoint uint32, size int) (*UniformDescriptor, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: uniform block needs a name", ErrInvalidArgument)
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: uniform buffer size %d", ErrInvalidArgument, size)
	}
	return &UniformDescriptor{
		name:         name,
		bufferSize:   size,
		bindingPoint: bindingPoint,
		location:     -1,
		blockIndex:   InvalidBlockIndex,
		alive:        true,
	}, nil
}

// Name returns the uniform or block name.
func (u *UniformDescriptor) Name() string { return u.name }

// IsBuffer reports whether this descriptor takes the uniform-buffer
// path. True iff the buffer size is greater than zero.
func (u *UniformDescriptor) IsBuffer() bool { return u.bufferSize > 0 }

// Location returns the resolved location, -1 when unresolved or buffer.
func (u *UniformDescriptor) Location() UniformLocation { return u.location }

// BlockIndex returns the resolved block index, InvalidBlockIndex when
// unresolved or plain.
func (u *UniformDescriptor) BlockIndex() uint32 { return u.blockIndex }

// BindingPoint returns the global binding point of a buffer uniform.
func (u *UniformDescriptor) BindingPoint() uint32 { return u.bindingPoint }

// BufferSize returns the server buffer size, 0 for plain uniforms.
func (u *UniformDescriptor) BufferSize() int { return u.bufferSize }

// Alive reports whether the descriptor has not been destroyed.
func (u *UniformDescriptor) Alive() bool { return u.alive }

// SetFloats stores float component data for the next Upload.
func (u *UniformDescriptor) SetFloats(vs ...float32) error {
	if want := u.rows * u.cols * u.count; len(vs) != want {
		return fmt.Errorf("%w: %d floats for %dx%dx%d uniform", ErrInvalidArgument, len(vs), u.rows, u.cols, u.count)
	}
	u.floats = vs
	return nil
}

// SetInts stores int component data for the next Upload.
func (u *UniformDescriptor) SetInts(vs ...int32) error {
	if want := u.rows * u.cols * u.count; len(vs) != want {
		return fmt.Errorf("%w: %d ints for %dx%dx%d uniform", ErrInvalidArgument, len(vs), u.rows, u.cols, u.count)
	}
	u.ints = vs
	return nil
}

// Resolve queries the program for the location (plain) or block index
// (buffer) of this uniform. Sentinel results leave the descriptor
// unresolved and return an error.
func (u *UniformDescriptor) Resolve(api API, p ProgramName) error {
	if !u.alive {
		return fmt.Errorf("%w: descriptor destroyed", ErrInvalidState)
	}
	if u.IsBuffer() {
		ub, ok := api.(UniformBufferAPI)
		if !ok {
			return fmt.Errorf("%w: backend lacks uniform-buffer support", ErrInvalidState)
		}
		idx := ub.GetUniformBlockIndex(p, u.name)
		if idx == InvalidBlockIndex {
			return fmt.Errorf("%w: uniform block %q not found", ErrInvalidState, u.name)
		}
		u.blockIndex = idx
		ub.UniformBlockBinding(p, idx, u.bindingPoint)
		return nil
	}
	loc := api.GetUniformLocation(p, u.name)
	if loc < 0 {
		return fmt.Errorf("%w: uniform %q not found", ErrInvalidState, u.name)
	}
	u.location = loc
	return nil
}

// Upload sends the stored data to the resolved location. The dispatch
// is driven by the signature: scalars use glUniform1{i,f}, scalar
// arrays glUniform1{i,f}v, vectors the
// glUniform{2,3,4}{i,f}v family, square float matrices the
// glUniformMatrix{2,3,4}fv family with transpose false. Buffer uniforms
// bind the buffer range to the descriptor's global binding point.
func (u *UniformDescriptor) Upload(api API) error {
	if !u.alive {
		return fmt.Errorf("%w: descriptor destroyed", ErrInvalidState)
	}
	if u.IsBuffer() {
		return u.uploadBuffer(api)
	}
	if u.location < 0 {
		return fmt.Errorf("%w: uniform %q unresolved", ErrInvalidState, u.name)
	}
	if want := u.rows * u.cols * u.count; (u.compType == Int && len(u.ints) < want) ||
		(u.compType == Float && len(u.floats) < want) {
		return fmt.Errorf("%w: uniform %q has no data", ErrInvalidState, u.name)
	}
	switch {
	case u.rows*u.cols == 1:
		// Scalar arrays take the v-suffixed path so every element of
		// the count reaches the driver.
		switch {
		case u.compType == Int && u.count > 1:
			api.Uniform1iv(u.location, u.ints)
		case u.compType == Int:
			api.Uniform1i(u.location, u.ints[0])
		case u.count > 1:
			api.Uniform1fv(u.location, u.floats)
		default:
			api.Uniform1f(u.location, u.floats[0])
		}
	case u.rows == 1:
		if u.compType == Int {
			switch u.cols {
			case 2:
				api.Uniform2iv(u.location, u.ints)
			case 3:
				api.Uniform3iv(u.location, u.ints)
			case 4:
				api.Uniform4iv(u.location, u.ints)
			}
		} else {
			switch u.cols {
			case 2:
				api.Uniform2fv(u.location, u.floats)
			case 3:
				api.Uniform3fv(u.location, u.floats)
			case 4:
				api.Uniform4fv(u.location, u.floats)
			}
		}
	default:
		switch u.rows {
		case 2:
			api.UniformMatrix2fv(u.location, u.floats)
		case 3:
			api.UniformMatrix3fv(u.location, u.floats)
		case 4:
			api.UniformMatrix4fv(u.location, u.floats)
		}
	}
	return nil
}

func (u *UniformDescriptor) uploadBuffer(api API) error {
	ub, ok := api.(UniformBufferAPI)
	if !ok {
		return fmt.Errorf("%w: backend lacks uniform-buffer support", ErrInvalidState)
	}
	if u.bufferName == 0 {
		u.bufferName = api.CreateBuffer()
		api.BindBuffer(UniformBuffer, u.bufferName)
		api.BufferData(UniformBuffer, make([]byte, u.bufferSize), DynamicDraw)
		api.BindBuffer(UniformBuffer, 0)
	}
	ub.BindBufferRange(UniformBuffer, u.bindingPoint, u.bufferName, 0, u.bufferSize)
	return nil
}

// WriteRange writes data into the server buffer at the given byte
// offset with a size check against the declared buffer size.
func (u *UniformDescriptor) WriteRange(api API, offset int, data []byte) error {
	if !u.IsBuffer() {
		return fmt.Errorf("%w: WriteRange on a plain uniform", ErrInvalidState)
	}
	if offset < 0 || offset+len(data) > u.bufferSize {
		return fmt.Errorf("%w: range [%d,%d) outside buffer of %d bytes",
			ErrInvalidArgument, offset, offset+len(data), u.bufferSize)
	}
	if u.bufferName == 0 {
		if err := u.uploadBuffer(api); err != nil {
			return err
		}
	}
	api.BindBuffer(UniformBuffer, u.bufferName)
	api.BufferSubData(UniformBuffer, offset, data)
	api.BindBuffer(UniformBuffer, 0)
	return nil
}

// Destroy releases any server buffer and marks the descriptor dead.
func (u *UniformDescriptor) Destroy(api API) {
	if u.bufferName != 0 {
		api.DeleteBuffer(u.bufferName)
		u.bufferName = 0
	}
	u.location = -1
	u.blockIndex = InvalidBlockIndex
	u.alive = false
}
