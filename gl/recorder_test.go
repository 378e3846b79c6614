package gl

import "fmt"

// recorder is a fake API backend that records every call and lets tests
// script locations and compile/link outcomes. It implements the
// uniform-buffer extension unless ubo is false, in which case tests use
// the noUBO wrapper.
type recorder struct {
	calls []string

	nextBuffer  BufferName
	nextShader  ShaderName
	nextProgram ProgramName

	attribLocs   map[string]AttribLocation
	uniformLocs  map[string]UniformLocation
	blockIndices map[string]uint32

	failCompile map[ShaderName]bool
	failLink    bool

	bufferDataSizes []int
	err             Enum
}

func newRecorder() *recorder {
	return &recorder{
		attribLocs:   make(map[string]AttribLocation),
		uniformLocs:  make(map[string]UniformLocation),
		blockIndices: make(map[string]uint32),
		failCompile:  make(map[ShaderName]bool),
	}
}

func (r *recorder) record(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) count(prefix string) int {
	n := 0
	for _, c := range r.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func (r *recorder) CreateBuffer() BufferName {
	r.nextBuffer++
	r.record("CreateBuffer=%d", r.nextBuffer)
	return r.nextBuffer
}

func (r *recorder) DeleteBuffer(b BufferName) { r.record("DeleteBuffer(%d)", b) }

func (r *recorder) BindBuffer(target Enum, b BufferName) {
	r.record("BindBuffer(0x%04x,%d)", uint32(target), b)
}

func (r *recorder) BufferData(target Enum, data []byte, usage Enum) {
	r.bufferDataSizes = append(r.bufferDataSizes, len(data))
	r.record("BufferData(0x%04x,%d,0x%04x)", uint32(target), len(data), uint32(usage))
}

func (r *recorder) BufferSubData(target Enum, offset int, data []byte) {
	r.record("BufferSubData(0x%04x,%d,%d)", uint32(target), offset, len(data))
}

func (r *recorder) EnableVertexAttribArray(loc AttribLocation) {
	r.record("EnableVertexAttribArray(%d)", loc)
}

func (r *recorder) DisableVertexAttribArray(loc AttribLocation) {
	r.record("DisableVertexAttribArray(%d)", loc)
}

func (r *recorder) VertexAttribPointer(loc AttribLocation, size int, typ Enum, normalized bool, stride, offset int) {
	r.record("VertexAttribPointer(%d,%d,0x%04x,%v,%d,%d)", loc, size, uint32(typ), normalized, stride, offset)
}

func (r *recorder) GetAttribLocation(p ProgramName, name string) AttribLocation {
	if loc, ok := r.attribLocs[name]; ok {
		return loc
	}
	return -1
}

func (r *recorder) CreateShader(typ Enum) ShaderName {
	r.nextShader++
	r.record("CreateShader(0x%04x)=%d", uint32(typ), r.nextShader)
	return r.nextShader
}

func (r *recorder) ShaderSource(s ShaderName, src string) { r.record("ShaderSource(%d)", s) }
func (r *recorder) CompileShader(s ShaderName)            { r.record("CompileShader(%d)", s) }

func (r *recorder) GetShaderi(s ShaderName, pname Enum) int {
	if pname == CompileStatus && r.failCompile[s] {
		return 0
	}
	return 1
}

func (r *recorder) GetShaderInfoLog(s ShaderName) string { return "fake shader log" }
func (r *recorder) DeleteShader(s ShaderName)            { r.record("DeleteShader(%d)", s) }

func (r *recorder) CreateProgram() ProgramName {
	r.nextProgram++
	r.record("CreateProgram=%d", r.nextProgram)
	return r.nextProgram
}

func (r *recorder) AttachShader(p ProgramName, s ShaderName) { r.record("AttachShader(%d,%d)", p, s) }
func (r *recorder) DetachShader(p ProgramName, s ShaderName) { r.record("DetachShader(%d,%d)", p, s) }
func (r *recorder) LinkProgram(p ProgramName)                { r.record("LinkProgram(%d)", p) }
func (r *recorder) ValidateProgram(p ProgramName)            { r.record("ValidateProgram(%d)", p) }

func (r *recorder) GetProgrami(p ProgramName, pname Enum) int {
	if pname == LinkStatus && r.failLink {
		return 0
	}
	return 1
}

func (r *recorder) GetProgramInfoLog(p ProgramName) string { return "fake program log" }
func (r *recorder) UseProgram(p ProgramName)               { r.record("UseProgram(%d)", p) }
func (r *recorder) DeleteProgram(p ProgramName)            { r.record("DeleteProgram(%d)", p) }

func (r *recorder) GetUniformLocation(p ProgramName, name string) UniformLocation {
	if loc, ok := r.uniformLocs[name]; ok {
		return loc
	}
	return -1
}

func (r *recorder) Uniform1i(loc UniformLocation, v int32)   { r.record("Uniform1i(%d,%d)", loc, v) }
func (r *recorder) Uniform1f(loc UniformLocation, v float32) { r.record("Uniform1f(%d,%g)", loc, v) }

func (r *recorder) Uniform1fv(loc UniformLocation, src []float32) {
	r.record("Uniform1fv(%d,%d)", loc, len(src))
}

func (r *recorder) Uniform1iv(loc UniformLocation, src []int32) {
	r.record("Uniform1iv(%d,%d)", loc, len(src))
}

func (r *recorder) Uniform2fv(loc UniformLocation, src []float32) {
	r.record("Uniform2fv(%d,%d)", loc, len(src))
}

func (r *recorder) Uniform3fv(loc UniformLocation, src []float32) {
	r.record("Uniform3fv(%d,%d)", loc, len(src))
}

func (r *recorder) Uniform4fv(loc UniformLocation, src []float32) {
	r.record("Uniform4fv(%d,%d)", loc, len(src))
}

func (r *recorder) Uniform2iv(loc UniformLocation, src []int32) {
	r.record("Uniform2iv(%d,%d)", loc, len(src))
}

func (r *recorder) Uniform3iv(loc UniformLocation, src []int32) {
	r.record("Uniform3iv(%d,%d)", loc, len(src))
}

func (r *recorder) Uniform4iv(loc UniformLocation, src []int32) {
	r.record("Uniform4iv(%d,%d)", loc, len(src))
}

func (r *recorder) UniformMatrix2fv(loc UniformLocation, src []float32) {
	r.record("UniformMatrix2fv(%d,%d)", loc, len(src))
}

func (r *recorder) UniformMatrix3fv(loc UniformLocation, src []float32) {
	r.record("UniformMatrix3fv(%d,%d)", loc, len(src))
}

func (r *recorder) UniformMatrix4fv(loc UniformLocation, src []float32) {
	r.record("UniformMatrix4fv(%d,%d)", loc, len(src))
}

func (r *recorder) DrawArrays(mode Enum, first, count int) {
	r.record("DrawArrays(0x%04x,%d,%d)", uint32(mode), first, count)
}

func (r *recorder) DrawElements(mode Enum, count int, typ Enum, offset int) {
	r.record("DrawElements(0x%04x,%d,0x%04x,%d)", uint32(mode), count, uint32(typ), offset)
}

func (r *recorder) GetError() Enum { return r.err }

func (r *recorder) GetUniformBlockIndex(p ProgramName, name string) uint32 {
	if idx, ok := r.blockIndices[name]; ok {
		return idx
	}
	return InvalidBlockIndex
}

func (r *recorder) UniformBlockBinding(p ProgramName, index, binding uint32) {
	r.record("UniformBlockBinding(%d,%d,%d)", p, index, binding)
}

func (r *recorder) BindBufferRange(target Enum, binding uint32, b BufferName, offset, size int) {
	r.record("BindBufferRange(0x%04x,%d,%d,%d,%d)", uint32(target), binding, b, offset, size)
}

// noUBO strips the uniform-buffer extension off a recorder so tests can
// exercise the capability assertion. Embedding the interface rather
// than the struct keeps the extension methods unpromoted.
type noUBO struct{ API }

var _ API = (*recorder)(nil)
var _ UniformBufferAPI = (*recorder)(nil)
