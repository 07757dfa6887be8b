package gles

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gles/glx"
)

// Buffer is a device-allocated GPU buffer.
//
// The GL target a buffer binds to is fixed at creation from its usage
// flags: index buffers bind to the element-array target, uniform buffers
// to the uniform target, everything else to the array target.
type Buffer struct {
	device    *Device
	raw       glx.Buffer
	size      uint64
	usage     gputypes.BufferUsage
	destroyed bool
}

// bufferTarget derives the GL binding target from WebGPU usage flags.
func bufferTarget(usage gputypes.BufferUsage) uint32 {
	switch {
	case usage&gputypes.BufferUsageIndex != 0:
		return glx.ElementArrayBuffer
	case usage&gputypes.BufferUsageUniform != 0:
		return glx.UniformBuffer
	default:
		return glx.ArrayBuffer
	}
}

// bufferHint derives the GL usage hint. Mappable buffers are rewritten
// often, so they get the dynamic hint.
func bufferHint(usage gputypes.BufferUsage) uint32 {
	if usage&(gputypes.BufferUsageMapRead|gputypes.BufferUsageMapWrite) != 0 {
		return glx.DynamicDraw
	}
	return glx.StaticDraw
}

// CreateBuffer allocates an uninitialized buffer of the given byte size.
func (d *Device) CreateBuffer(size uint64, usage gputypes.BufferUsage) (*Buffer, error) {
	if size == 0 {
		return nil, ErrZeroSize
	}

	target := bufferTarget(usage)
	raw := d.gl.CreateBuffer()
	d.gl.BindBuffer(target, raw)
	d.gl.BufferData(target, int(size), nil, bufferHint(usage))
	d.gl.BindBuffer(target, 0)

	d.stats.buffers.Add(1)
	Logger().Debug("buffer created", "size", size, "usage", usage)

	return &Buffer{device: d, raw: raw, size: size, usage: usage}, nil
}

// CreateBufferWithData allocates a buffer initialized with data.
func (d *Device) CreateBufferWithData(data []byte, usage gputypes.BufferUsage) (*Buffer, error) {
	if len(data) == 0 {
		return nil, ErrZeroSize
	}

	target := bufferTarget(usage)
	raw := d.gl.CreateBuffer()
	d.gl.BindBuffer(target, raw)
	d.gl.BufferData(target, len(data), data, bufferHint(usage))
	d.gl.BindBuffer(target, 0)

	d.stats.buffers.Add(1)
	Logger().Debug("buffer created with data", "size", len(data), "usage", usage)

	return &Buffer{device: d, raw: raw, size: uint64(len(data)), usage: usage}, nil
}

// Size returns the buffer size in bytes.
func (b *Buffer) Size() uint64 {
	if b == nil {
		return 0
	}
	return b.size
}

// Usage returns the usage flags the buffer was created with.
func (b *Buffer) Usage() gputypes.BufferUsage {
	if b == nil {
		return 0
	}
	return b.usage
}

// Destroy releases the GL buffer. Destroy is idempotent. Bind groups
// referencing the buffer become invalid; using them afterwards is a
// caller error.
func (b *Buffer) Destroy() {
	if b == nil || b.destroyed {
		return
	}
	b.destroyed = true
	b.device.gl.DeleteBuffer(b.raw)
	b.device.stats.buffers.Add(-1)
	Logger().Debug("buffer destroyed", "size", b.size)
}
