// Package gl provides the GPU data-binding core: typed descriptors for
// vertex attributes, uniforms and shader programs, array-binding
// handlers, and the render-context abstraction. All GL traffic goes
// through the API interface so state objects stay testable without a
// live context; the glx sub-package supplies the real backend.
package gl

// Enum is a GL enumerant. Values use the standard GL numbering so the
// backend can pass them through unchanged.
type Enum uint32

// Buffer targets, usages and component types.
const (
	ArrayBuffer        Enum = 0x8892
	ElementArrayBuffer Enum = 0x8893
	UniformBuffer      Enum = 0x8A11

	StaticDraw  Enum = 0x88E4
	DynamicDraw Enum = 0x88E8
	StreamDraw  Enum = 0x88E0

	Byte          Enum = 0x1400
	UnsignedByte  Enum = 0x1401
	Short         Enum = 0x1402
	UnsignedShort Enum = 0x1403
	Int           Enum = 0x1404
	UnsignedInt   Enum = 0x1405
	Float         Enum = 0x1406

	VertexShader   Enum = 0x8B31
	FragmentShader Enum = 0x8B30

	CompileStatus  Enum = 0x8B81
	LinkStatus     Enum = 0x8B82
	ValidateStatus Enum = 0x8B83

	Triangles Enum = 0x0004

	NoError Enum = 0
)

// SizeOf returns the byte size of one component of type t, or 0 for an
// unknown type.
func SizeOf(t Enum) int {
	switch t {
	case Byte, UnsignedByte:
		return 1
	case Short, UnsignedShort:
		return 2
	case Int, UnsignedInt, Float:
		return 4
	default:
		return 0
	}
}

// BufferName is a server-side buffer object name. Zero means none.
type BufferName uint32

// ShaderName is a shader object name. Zero means none.
type ShaderName uint32

// ProgramName is a program object name. Zero means none; passing zero to
// UseProgram unbinds the current program.
type ProgramName uint32

// AttribLocation is a resolved vertex-attribute location; -1 when
// unresolved.
type AttribLocation int32

// UniformLocation is a resolved uniform location; -1 when unresolved.
type UniformLocation int32

// InvalidBlockIndex is the sentinel for an unresolved uniform-block
// index.
const InvalidBlockIndex uint32 = 0xFFFFFFFF

// API is the GL call surface the descriptor layer is written against.
// The real implementation lives in the glx sub-package; tests substitute
// a recording fake.
type API interface {
	CreateBuffer() BufferName
	DeleteBuffer(b BufferName)
	BindBuffer(target Enum, b BufferName)
	BufferData(target Enum, data []byte, usage Enum)
	BufferSubData(target Enum, offset int, data []byte)

	EnableVertexAttribArray(loc AttribLocation)
	DisableVertexAttribArray(loc AttribLocation)
	VertexAttribPointer(loc AttribLocation, size int, typ Enum, normalized bool, stride, offset int)
	GetAttribLocation(p ProgramName, name string) AttribLocation

	CreateShader(typ Enum) ShaderName
	ShaderSource(s ShaderName, src string)
	CompileShader(s ShaderName)
	GetShaderi(s ShaderName, pname Enum) int
	GetShaderInfoLog(s ShaderName) string
	DeleteShader(s ShaderName)

	CreateProgram() ProgramName
	AttachShader(p ProgramName, s ShaderName)
	DetachShader(p ProgramName, s ShaderName)
	LinkProgram(p ProgramName)
	ValidateProgram(p ProgramName)
	GetProgrami(p ProgramName, pname Enum) int
	GetProgramInfoLog(p ProgramName) string
	UseProgram(p ProgramName)
	DeleteProgram(p ProgramName)

	GetUniformLocation(p ProgramName, name string) UniformLocation
	Uniform1i(loc UniformLocation, v int32)
	Uniform1f(loc UniformLocation, v float32)
	Uniform1fv(loc UniformLocation, src []float32)
	Uniform1iv(loc UniformLocation, src []int32)
	Uniform2fv(loc UniformLocation, src []float32)
	Uniform3fv(loc UniformLocation, src []float32)
	Uniform4fv(loc UniformLocation, src []float32)
	Uniform2iv(loc UniformLocation, src []int32)
	Uniform3iv(loc UniformLocation, src []int32)
	Uniform4iv(loc UniformLocation, src []int32)
	UniformMatrix2fv(loc UniformLocation, src []float32)
	UniformMatrix3fv(loc UniformLocation, src []float32)
	UniformMatrix4fv(loc UniformLocation, src []float32)

	DrawArrays(mode Enum, first, count int)
	DrawElements(mode Enum, count int, typ Enum, offset int)

	GetError() Enum
}

// UniformBufferAPI is the optional uniform-buffer extension of API.
// Backends predating uniform-buffer objects simply do not implement it;
// the buffer path of UniformDescriptor detects support by assertion.
type UniformBufferAPI interface {
	GetUniformBlockIndex(p ProgramName, name string) uint32
	UniformBlockBinding(p ProgramName, index, binding uint32)
	BindBufferRange(target Enum, binding uint32, b BufferName, offset, size int)
}
