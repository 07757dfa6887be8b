package gles

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gles/glx"
)

func TestBufferTargetSelection(t *testing.T) {
	tests := []struct {
		name  string
		usage gputypes.BufferUsage
		want  uint32
	}{
		{"vertex", gputypes.BufferUsageVertex, glx.ArrayBuffer},
		{"index", gputypes.BufferUsageIndex, glx.ElementArrayBuffer},
		{"uniform", gputypes.BufferUsageUniform, glx.UniformBuffer},
		{"index with copy", gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst, glx.ElementArrayBuffer},
		{"copy only", gputypes.BufferUsageCopyDst, glx.ArrayBuffer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bufferTarget(tt.usage); got != tt.want {
				t.Errorf("bufferTarget(%v) = %#x, want %#x", tt.usage, got, tt.want)
			}
		})
	}
}

func TestBufferUsageHint(t *testing.T) {
	if got := bufferHint(gputypes.BufferUsageVertex); got != glx.StaticDraw {
		t.Errorf("static hint = %#x, want STATIC_DRAW", got)
	}
	if got := bufferHint(gputypes.BufferUsageUniform | gputypes.BufferUsageMapWrite); got != glx.DynamicDraw {
		t.Errorf("mapped hint = %#x, want DYNAMIC_DRAW", got)
	}
}

func TestCreateBuffer(t *testing.T) {
	d, gl := newTestDevice(t)

	buf, err := d.CreateBuffer(1024, gputypes.BufferUsageUniform)
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	if buf.Size() != 1024 {
		t.Errorf("Size = %d, want 1024", buf.Size())
	}

	alloc := fmt.Sprintf("BufferData(%d, 1024, %d)", uint32(glx.UniformBuffer), uint32(glx.StaticDraw))
	if gl.Index(alloc) < 0 {
		t.Errorf("missing %q in %v", alloc, gl.Calls())
	}
	unbind := fmt.Sprintf("BindBuffer(%d, 0)", uint32(glx.UniformBuffer))
	if gl.Index(unbind) < 0 {
		t.Errorf("buffer left bound: %v", gl.Calls())
	}
}

func TestCreateBufferZeroSize(t *testing.T) {
	d, _ := newTestDevice(t)

	if _, err := d.CreateBuffer(0, gputypes.BufferUsageVertex); !errors.Is(err, ErrZeroSize) {
		t.Fatalf("err = %v, want ErrZeroSize", err)
	}
}

func TestCreateBufferWithData(t *testing.T) {
	d, gl := newTestDevice(t)

	data := make([]byte, 48)
	buf, err := d.CreateBufferWithData(data, gputypes.BufferUsageVertex)
	if err != nil {
		t.Fatalf("CreateBufferWithData: %v", err)
	}
	if buf.Size() != 48 {
		t.Errorf("Size = %d, want 48", buf.Size())
	}
	alloc := fmt.Sprintf("BufferData(%d, 48, %d)", uint32(glx.ArrayBuffer), uint32(glx.StaticDraw))
	if gl.Index(alloc) < 0 {
		t.Errorf("missing %q in %v", alloc, gl.Calls())
	}
}

func TestBufferDestroyIdempotent(t *testing.T) {
	d, gl := newTestDevice(t)

	buf, err := d.CreateBuffer(64, gputypes.BufferUsageVertex)
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	buf.Destroy()
	buf.Destroy()

	if n := gl.Count("DeleteBuffer"); n != 1 {
		t.Errorf("DeleteBuffer calls = %d, want 1", n)
	}
	if d.Stats().Buffers != 0 {
		t.Errorf("buffer count = %d, want 0", d.Stats().Buffers)
	}
}

func TestNilBufferAccessors(t *testing.T) {
	var buf *Buffer
	if buf.Size() != 0 {
		t.Error("nil Size != 0")
	}
	if buf.Usage() != 0 {
		t.Error("nil Usage != 0")
	}
	buf.Destroy()
}
