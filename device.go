package gles

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gles/glx"
)

// Device is the entry point of the package: a WebGPU-shaped device
// wrapped around a GL ES 3.0 class context. The device owns the queue,
// the framebuffer cache and the resource statistics; every resource is
// created through it.
//
// A device and everything created from it must be used from the thread
// that owns the GL context. Nothing here synchronizes.
type Device struct {
	gl     glx.Context
	width  uint32
	height uint32
	fbos   *framebufferCache
	stats  DeviceStats
	queue  *Queue
}

// NewDevice wraps a GL context. The width and height describe the default
// framebuffer and become the viewport of surface render passes.
func NewDevice(gl glx.Context, width, height uint32) *Device {
	d := &Device{gl: gl, width: width, height: height}
	d.fbos = newFramebufferCache(d)
	d.queue = &Queue{device: d}
	Logger().Info("device created", "width", width, "height", height)
	return d
}

// Queue returns the device's queue.
func (d *Device) Queue() *Queue { return d.queue }

// SetViewportSize updates the recorded size of the default framebuffer.
// Call it when the window is resized.
func (d *Device) SetViewportSize(width, height uint32) {
	d.width = width
	d.height = height
}

// SurfaceTexture returns a texture standing in for the default
// framebuffer. It has no GL object behind it; render passes targeting it
// draw to framebuffer zero. The size is re-read from the device on each
// call, so resize before acquiring.
func (d *Device) SurfaceTexture() *Texture {
	return &Texture{
		device:  d,
		target:  glx.Texture2D,
		width:   d.width,
		height:  d.height,
		layers:  1,
		format:  gputypes.TextureFormatRGBA8Unorm,
		surface: true,
	}
}

// Stats returns a snapshot of the device's resource counters.
func (d *Device) Stats() StatsSnapshot { return d.stats.Snapshot() }

// Close releases device-owned GL objects. Resources created by the caller
// are not tracked and must be destroyed individually before this.
func (d *Device) Close() {
	d.fbos.destroyAll()
	Logger().Info("device closed")
}
