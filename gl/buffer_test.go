package gl

import (
	"errors"
	"testing"
)

func TestNewVertexAttributeValidation(t *testing.T) {
	tests := []struct {
		name      string
		attrName  string
		compCount int
		compType  Enum
		stride    int
		usage     Enum
		wantErr   bool
	}{
		{"tight vec3", "pos", 3, Float, 0, StaticDraw, false},
		{"explicit stride", "pos", 3, Float, 24, StaticDraw, false},
		{"stride too small", "pos", 3, Float, 8, StaticDraw, true},
		{"stride not component aligned", "pos", 3, Float, 14, StaticDraw, true},
		{"zero components", "pos", 0, Float, 0, StaticDraw, true},
		{"five components", "pos", 5, Float, 0, StaticDraw, true},
		{"unknown component type", "pos", 3, Enum(0x1234), 0, StaticDraw, true},
		{"unknown usage", "pos", 3, Float, 0, Enum(0x9999), true},
		{"missing name", "", 3, Float, 0, StaticDraw, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewVertexAttribute(tt.attrName, tt.compCount, tt.compType, false, tt.stride, tt.usage)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("want error, got descriptor %+v", d)
				}
				if !errors.Is(err, ErrInvalidArgument) {
					t.Fatalf("error %v is not ErrInvalidArgument", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !d.Alive() || !d.Sealed() {
				t.Fatalf("new descriptor alive=%v sealed=%v, want true/true", d.Alive(), d.Sealed())
			}
			if d.Location() != -1 {
				t.Fatalf("new descriptor location %d, want -1", d.Location())
			}
		})
	}
}

func TestDescriptorDefaultStride(t *testing.T) {
	d, err := NewVertexAttribute("uv", 2, Float, false, 0, DynamicDraw)
	if err != nil {
		t.Fatal(err)
	}
	if d.Stride() != 8 {
		t.Fatalf("stride %d, want 8 for 2 tightly packed floats", d.Stride())
	}
}

func TestDescriptorWritePhase(t *testing.T) {
	d, err := NewVertexAttribute("pos", 2, Float, false, 0, StaticDraw)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Putf(1, 2); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("write to sealed descriptor: err=%v, want ErrInvalidState", err)
	}
	d.Seal(false)
	if err := d.Putf(1, 2, 3, 4); err != nil {
		t.Fatal(err)
	}
	d.Seal(true)
	if d.ElemCount() != 2 {
		t.Fatalf("elem count %d, want 2", d.ElemCount())
	}
	if len(d.Bytes()) != 16 {
		t.Fatalf("byte length %d, want 16", len(d.Bytes()))
	}
}

func TestDescriptorReopenInvalidatesUpload(t *testing.T) {
	api := newRecorder()
	d, err := NewVertexAttribute("pos", 2, Float, false, 0, StaticDraw)
	if err != nil {
		t.Fatal(err)
	}
	d.Seal(false)
	if err := d.Putf(0, 0, 1, 1); err != nil {
		t.Fatal(err)
	}
	d.Seal(true)
	if err := d.Bind(api, true); err != nil {
		t.Fatal(err)
	}
	if err := d.Upload(api); err != nil {
		t.Fatal(err)
	}
	if !d.Uploaded() {
		t.Fatal("descriptor not marked uploaded")
	}
	d.Seal(false)
	if d.Uploaded() {
		t.Fatal("re-opened descriptor still marked uploaded")
	}
}

func TestDescriptorUploadRequiresBind(t *testing.T) {
	api := newRecorder()
	d, err := NewVertexAttribute("pos", 2, Float, false, 0, StaticDraw)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Upload(api); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("upload without bind: err=%v, want ErrInvalidState", err)
	}
}

// Four vec3 float vertices with stride 12 and static usage go up as one
// 48-byte allocation followed by one pointer setup.
func TestPlainHandlerSingleUpload(t *testing.T) {
	api := newRecorder()
	api.attribLocs["pos"] = 2

	d, err := NewVertexAttribute("pos", 3, Float, false, 12, StaticDraw)
	if err != nil {
		t.Fatal(err)
	}
	d.Seal(false)
	if err := d.Putf(
		0, 0, 0,
		1, 0, 0,
		1, 1, 0,
		0, 1, 0,
	); err != nil {
		t.Fatal(err)
	}
	d.Seal(true)
	d.SetLocation(2)

	h, err := NewPlainArrayHandler(d, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Enable(api, true); err != nil {
		t.Fatal(err)
	}
	if err := h.Enable(api, false); err != nil {
		t.Fatal(err)
	}
	if err := h.Enable(api, true); err != nil {
		t.Fatal(err)
	}

	if got := len(api.bufferDataSizes); got != 1 {
		t.Fatalf("BufferData called %d times, want 1", got)
	}
	if api.bufferDataSizes[0] != 48 {
		t.Fatalf("BufferData size %d, want 48", api.bufferDataSizes[0])
	}
	if got := api.count("VertexAttribPointer"); got != 1 {
		t.Fatalf("VertexAttribPointer called %d times, want 1", got)
	}
	if got := api.count("EnableVertexAttribArray"); got != 2 {
		t.Fatalf("EnableVertexAttribArray called %d times, want 2", got)
	}
}

// Two descriptors resolved to the same location alternate their VBOs.
// GL pointer state snapshots the binding per location, so switching
// back to the first descriptor must re-issue its pointer; the shared
// ShaderState mirror carries that knowledge across handlers.
func TestPlainHandlerSharedLocationRepoints(t *testing.T) {
	api := newRecorder()
	state := NewShaderState(NewShaderProgram())

	mk := func(name string) *BufferDescriptor {
		d, err := NewVertexAttribute(name, 3, Float, false, 0, StaticDraw)
		if err != nil {
			t.Fatal(err)
		}
		d.Seal(false)
		if err := d.Putf(0, 0, 0, 1, 0, 0, 1, 1, 0); err != nil {
			t.Fatal(err)
		}
		d.Seal(true)
		d.SetLocation(7)
		return d
	}
	first := mk("pos")
	second := mk("alt")

	ha, err := NewPlainArrayHandler(first, state)
	if err != nil {
		t.Fatal(err)
	}
	hb, err := NewPlainArrayHandler(second, state)
	if err != nil {
		t.Fatal(err)
	}

	for _, step := range []struct {
		h  *PlainArrayHandler
		on bool
	}{
		{ha, true}, {ha, false},
		{hb, true}, {hb, false},
		{ha, true},
	} {
		if err := step.h.Enable(api, step.on); err != nil {
			t.Fatal(err)
		}
	}

	if got := len(api.bufferDataSizes); got != 2 {
		t.Fatalf("BufferData called %d times, want 2", got)
	}
	if got := api.count("VertexAttribPointer"); got != 3 {
		t.Fatalf("VertexAttribPointer called %d times, want 3\ncalls: %v", got, api.calls)
	}
	// The final enable must re-bind the first VBO and recapture the
	// pointer before enabling the attribute.
	tail := api.calls[len(api.calls)-3:]
	want := []string{
		"BindBuffer(0x8892,1)",
		"VertexAttribPointer(7,3,0x1406,false,12,0)",
		"EnableVertexAttribArray(7)",
	}
	for i, c := range tail {
		if c != want[i] {
			t.Fatalf("final enable calls %v, want %v", tail, want)
		}
	}
}

// With a shared state, re-enabling the same interleaved handler skips
// the redundant pointer calls.
func TestInterleavedHandlerStateSkipsRepoint(t *testing.T) {
	api := newRecorder()
	state := NewShaderState(NewShaderProgram())

	master, err := NewDataBuffer(6, Float, 24, StaticDraw)
	if err != nil {
		t.Fatal(err)
	}
	master.Seal(false)
	if err := master.Putf(0, 0, 0, 0, 0.1, 0, 1, 0, 0, 1, 0.1, 0, 1, 1, 0, 0.5, 0.6, 0); err != nil {
		t.Fatal(err)
	}
	master.Seal(true)

	pos, err := NewVertexAttribute("pos", 3, Float, false, 24, StaticDraw)
	if err != nil {
		t.Fatal(err)
	}
	pos.SetLocation(0)
	uv, err := NewVertexAttribute("uv", 3, Float, false, 24, StaticDraw)
	if err != nil {
		t.Fatal(err)
	}
	uv.SetLocation(1)
	uv.SetVBOOffset(12)

	h, err := NewInterleavedArrayHandler(master, state)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.AddSub(pos); err != nil {
		t.Fatal(err)
	}
	if err := h.AddSub(uv); err != nil {
		t.Fatal(err)
	}

	for _, on := range []bool{true, false, true} {
		if err := h.Enable(api, on); err != nil {
			t.Fatal(err)
		}
	}
	if got := api.count("VertexAttribPointer"); got != 2 {
		t.Fatalf("VertexAttribPointer called %d times, want 2\ncalls: %v", got, api.calls)
	}
	if got := api.count("EnableVertexAttribArray"); got != 4 {
		t.Fatalf("EnableVertexAttribArray called %d times, want 4", got)
	}
}

func TestPlainHandlerUnresolvedLocation(t *testing.T) {
	api := newRecorder()
	d, err := NewVertexAttribute("pos", 3, Float, false, 0, StaticDraw)
	if err != nil {
		t.Fatal(err)
	}
	h, err := NewPlainArrayHandler(d, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Enable(api, true); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("enable with unresolved location: err=%v, want ErrInvalidState", err)
	}
}

func TestInterleavedHandler(t *testing.T) {
	api := newRecorder()

	master, err := NewDataBuffer(6, Float, 24, StaticDraw)
	if err != nil {
		t.Fatal(err)
	}
	master.Seal(false)
	if err := master.Putf(
		0, 0, 0, 0, 0.1, 0,
		1, 0, 0, 1, 0.1, 0,
		1, 1, 0, 0.5, 0.6, 0,
	); err != nil {
		t.Fatal(err)
	}
	master.Seal(true)

	pos, err := NewVertexAttribute("pos", 3, Float, false, 24, StaticDraw)
	if err != nil {
		t.Fatal(err)
	}
	pos.SetLocation(0)
	uv, err := NewVertexAttribute("uv", 3, Float, false, 24, StaticDraw)
	if err != nil {
		t.Fatal(err)
	}
	uv.SetLocation(1)
	uv.SetVBOOffset(12)

	h, err := NewInterleavedArrayHandler(master, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.AddSub(pos); err != nil {
		t.Fatal(err)
	}
	if err := h.AddSub(uv); err != nil {
		t.Fatal(err)
	}

	if err := h.Enable(api, true); err != nil {
		t.Fatal(err)
	}
	if got := len(api.bufferDataSizes); got != 1 {
		t.Fatalf("BufferData called %d times, want 1", got)
	}
	if api.bufferDataSizes[0] != 72 {
		t.Fatalf("BufferData size %d, want 72", api.bufferDataSizes[0])
	}
	if got := api.count("VertexAttribPointer"); got != 2 {
		t.Fatalf("VertexAttribPointer called %d times, want 2", got)
	}
	if pos.VBOName() != master.VBOName() {
		t.Fatal("sub does not share the master VBO name")
	}
	if err := h.Enable(api, false); err != nil {
		t.Fatal(err)
	}
	if got := api.count("DisableVertexAttribArray"); got != 2 {
		t.Fatalf("DisableVertexAttribArray called %d times, want 2", got)
	}
}

func TestInterleavedSubValidation(t *testing.T) {
	master, err := NewDataBuffer(6, Float, 24, StaticDraw)
	if err != nil {
		t.Fatal(err)
	}
	h, err := NewInterleavedArrayHandler(master, nil)
	if err != nil {
		t.Fatal(err)
	}

	wrongStride, err := NewVertexAttribute("pos", 3, Float, false, 12, StaticDraw)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.AddSub(wrongStride); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("stride mismatch: err=%v, want ErrInvalidArgument", err)
	}

	overflow, err := NewVertexAttribute("uv", 4, Float, false, 24, StaticDraw)
	if err != nil {
		t.Fatal(err)
	}
	overflow.SetVBOOffset(12)
	if err := h.AddSub(overflow); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("offset overflow: err=%v, want ErrInvalidArgument", err)
	}
}

func TestDestroyedDescriptorRejectsUse(t *testing.T) {
	api := newRecorder()
	d, err := NewVertexAttribute("pos", 3, Float, false, 0, StaticDraw)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Bind(api, true); err != nil {
		t.Fatal(err)
	}
	d.Destroy(api)
	if d.Alive() {
		t.Fatal("destroyed descriptor still alive")
	}
	if err := d.Bind(api, true); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("bind after destroy: err=%v, want ErrInvalidState", err)
	}
	if got := api.count("DeleteBuffer"); got != 1 {
		t.Fatalf("DeleteBuffer called %d times, want 1", got)
	}
}

func TestElementBufferHandler(t *testing.T) {
	api := newRecorder()
	d, err := NewElementBuffer(UnsignedShort, StaticDraw)
	if err != nil {
		t.Fatal(err)
	}
	d.Seal(false)
	if err := d.PutBytes([]byte{0, 0, 1, 0, 2, 0}); err != nil {
		t.Fatal(err)
	}
	d.Seal(true)

	h, err := NewDataArrayHandler(d)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Enable(api, true); err != nil {
		t.Fatal(err)
	}
	if d.ElemCount() != 3 {
		t.Fatalf("elem count %d, want 3", d.ElemCount())
	}
	if got := api.count("BindBuffer(0x8893"); got != 1 {
		t.Fatalf("element-array binds %d, want 1", got)
	}
}
