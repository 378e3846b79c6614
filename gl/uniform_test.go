package gl

import (
	"errors"
	"testing"
)

func TestNewUniformValidation(t *testing.T) {
	tests := []struct {
		name     string
		uname    string
		rows     int
		cols     int
		count    int
		compType Enum
		wantErr  bool
	}{
		{"scalar float", "alpha", 1, 1, 1, Float, false},
		{"vec4", "color", 1, 4, 1, Float, false},
		{"ivec2 array", "grid", 1, 2, 8, Int, false},
		{"mat4", "mvp", 4, 4, 1, Float, false},
		{"non-square matrix", "m", 2, 3, 1, Float, true},
		{"int matrix", "m", 3, 3, 1, Int, true},
		{"zero count", "v", 1, 2, 0, Float, true},
		{"rows out of range", "v", 5, 1, 1, Float, true},
		{"missing name", "", 1, 1, 1, Float, true},
		{"bad component type", "v", 1, 1, 1, UnsignedByte, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := NewUniform(tt.uname, tt.rows, tt.cols, tt.count, tt.compType)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("want error, got %+v", u)
				}
				if !errors.Is(err, ErrInvalidArgument) {
					t.Fatalf("error %v is not ErrInvalidArgument", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if u.IsBuffer() {
				t.Fatal("plain uniform reports IsBuffer")
			}
			if u.Location() != -1 || u.BlockIndex() != InvalidBlockIndex {
				t.Fatalf("fresh uniform location=%d blockIndex=%d", u.Location(), u.BlockIndex())
			}
		})
	}
}

func TestUniformBufferExclusivity(t *testing.T) {
	u, err := NewUniformBuffer("Globals", 1, 256)
	if err != nil {
		t.Fatal(err)
	}
	if !u.IsBuffer() {
		t.Fatal("buffer uniform does not report IsBuffer")
	}
	if u.Location() != -1 {
		t.Fatalf("buffer uniform location %d, want -1", u.Location())
	}

	api := newRecorder()
	api.blockIndices["Globals"] = 3
	if err := u.Resolve(api, 1); err != nil {
		t.Fatal(err)
	}
	if u.BlockIndex() != 3 {
		t.Fatalf("block index %d, want 3", u.BlockIndex())
	}
	if u.Location() != -1 {
		t.Fatal("resolved buffer uniform gained a location")
	}
	if got := api.count("UniformBlockBinding(1,3,1)"); got != 1 {
		t.Fatalf("UniformBlockBinding calls %d, want 1", got)
	}
}

func TestUniformResolvePlain(t *testing.T) {
	u, err := NewUniform("alpha", 1, 1, 1, Float)
	if err != nil {
		t.Fatal(err)
	}
	api := newRecorder()
	if err := u.Resolve(api, 1); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("resolve of missing uniform: err=%v, want ErrInvalidState", err)
	}
	api.uniformLocs["alpha"] = 7
	if err := u.Resolve(api, 1); err != nil {
		t.Fatal(err)
	}
	if u.Location() != 7 {
		t.Fatalf("location %d, want 7", u.Location())
	}
	if u.BlockIndex() != InvalidBlockIndex {
		t.Fatal("plain uniform gained a block index")
	}
}

func TestUniformUploadDispatch(t *testing.T) {
	api := newRecorder()
	api.uniformLocs["u"] = 4

	tests := []struct {
		name     string
		rows     int
		cols     int
		compType Enum
		floats   []float32
		ints     []int32
		wantCall string
	}{
		{"scalar int", 1, 1, Int, nil, []int32{5}, "Uniform1i(4,5)"},
		{"scalar float", 1, 1, Float, []float32{0.5}, nil, "Uniform1f(4,0.5)"},
		{"vec3", 1, 3, Float, []float32{1, 2, 3}, nil, "Uniform3fv(4,3)"},
		{"ivec4", 1, 4, Int, nil, []int32{1, 2, 3, 4}, "Uniform4iv(4,4)"},
		{"mat3", 3, 3, Float, make([]float32, 9), nil, "UniformMatrix3fv(4,9)"},
		{"mat4", 4, 4, Float, make([]float32, 16), nil, "UniformMatrix4fv(4,16)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := NewUniform("u", tt.rows, tt.cols, 1, tt.compType)
			if err != nil {
				t.Fatal(err)
			}
			if err := u.Resolve(api, 1); err != nil {
				t.Fatal(err)
			}
			if tt.floats != nil {
				if err := u.SetFloats(tt.floats...); err != nil {
					t.Fatal(err)
				}
			}
			if tt.ints != nil {
				if err := u.SetInts(tt.ints...); err != nil {
					t.Fatal(err)
				}
			}
			if err := u.Upload(api); err != nil {
				t.Fatal(err)
			}
			if got := api.count(tt.wantCall); got != 1 {
				t.Fatalf("call %q recorded %d times, want 1\ncalls: %v", tt.wantCall, got, api.calls)
			}
		})
	}
}

// A scalar array uniform (1x1xN) must hand all N elements to the
// driver through the v-suffixed entry points.
func TestUniformScalarArrayDispatch(t *testing.T) {
	api := newRecorder()
	api.uniformLocs["uWeights"] = 4
	api.uniformLocs["uIndices"] = 5

	weights, err := NewUniform("uWeights", 1, 1, 3, Float)
	if err != nil {
		t.Fatal(err)
	}
	if err := weights.Resolve(api, 1); err != nil {
		t.Fatal(err)
	}
	if err := weights.SetFloats(1, 2, 3); err != nil {
		t.Fatal(err)
	}
	if err := weights.Upload(api); err != nil {
		t.Fatal(err)
	}
	if got := api.count("Uniform1fv(4,3)"); got != 1 {
		t.Fatalf("Uniform1fv(4,3) recorded %d times, want 1\ncalls: %v", got, api.calls)
	}
	if got := api.count("Uniform1f("); got != 0 {
		t.Fatalf("scalar Uniform1f recorded %d times for an array, want 0", got)
	}

	indices, err := NewUniform("uIndices", 1, 1, 2, Int)
	if err != nil {
		t.Fatal(err)
	}
	if err := indices.Resolve(api, 1); err != nil {
		t.Fatal(err)
	}
	if err := indices.SetInts(7, 8); err != nil {
		t.Fatal(err)
	}
	if err := indices.Upload(api); err != nil {
		t.Fatal(err)
	}
	if got := api.count("Uniform1iv(5,2)"); got != 1 {
		t.Fatalf("Uniform1iv(5,2) recorded %d times, want 1\ncalls: %v", got, api.calls)
	}
}

func TestUniformUploadWithoutData(t *testing.T) {
	api := newRecorder()
	api.uniformLocs["u"] = 0
	u, err := NewUniform("u", 1, 3, 1, Float)
	if err != nil {
		t.Fatal(err)
	}
	if err := u.Resolve(api, 1); err != nil {
		t.Fatal(err)
	}
	if err := u.Upload(api); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("upload without data: err=%v, want ErrInvalidState", err)
	}
}

func TestUniformSetDataLengthChecked(t *testing.T) {
	u, err := NewUniform("u", 1, 3, 1, Float)
	if err != nil {
		t.Fatal(err)
	}
	if err := u.SetFloats(1, 2); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("short data: err=%v, want ErrInvalidArgument", err)
	}
	if err := u.SetFloats(1, 2, 3, 4); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("long data: err=%v, want ErrInvalidArgument", err)
	}
}

func TestUniformBufferUploadAndWrite(t *testing.T) {
	api := newRecorder()
	api.blockIndices["Globals"] = 0
	u, err := NewUniformBuffer("Globals", 2, 64)
	if err != nil {
		t.Fatal(err)
	}
	if err := u.Resolve(api, 1); err != nil {
		t.Fatal(err)
	}
	if err := u.Upload(api); err != nil {
		t.Fatal(err)
	}
	if got := len(api.bufferDataSizes); got != 1 || api.bufferDataSizes[0] != 64 {
		t.Fatalf("backing allocation sizes %v, want one of 64", api.bufferDataSizes)
	}
	if got := api.count("BindBufferRange(0x8a11,2,"); got != 1 {
		t.Fatalf("BindBufferRange calls %d, want 1\ncalls: %v", got, api.calls)
	}

	if err := u.WriteRange(api, 16, make([]byte, 32)); err != nil {
		t.Fatal(err)
	}
	if got := api.count("BufferSubData(0x8a11,16,32)"); got != 1 {
		t.Fatalf("BufferSubData calls %d, want 1", got)
	}
	if err := u.WriteRange(api, 48, make([]byte, 32)); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("out-of-range write: err=%v, want ErrInvalidArgument", err)
	}
}

func TestUniformBufferNeedsCapableBackend(t *testing.T) {
	api := noUBO{newRecorder()}
	u, err := NewUniformBuffer("Globals", 0, 16)
	if err != nil {
		t.Fatal(err)
	}
	if err := u.Resolve(api, 1); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("resolve on incapable backend: err=%v, want ErrInvalidState", err)
	}
}

func TestUniformDestroy(t *testing.T) {
	api := newRecorder()
	api.blockIndices["Globals"] = 0
	u, err := NewUniformBuffer("Globals", 0, 16)
	if err != nil {
		t.Fatal(err)
	}
	if err := u.Resolve(api, 1); err != nil {
		t.Fatal(err)
	}
	if err := u.Upload(api); err != nil {
		t.Fatal(err)
	}
	u.Destroy(api)
	if u.Alive() {
		t.Fatal("destroyed uniform still alive")
	}
	if got := api.count("DeleteBuffer"); got != 1 {
		t.Fatalf("DeleteBuffer calls %d, want 1", got)
	}
	if err := u.Upload(api); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("upload after destroy: err=%v, want ErrInvalidState", err)
	}
}
