package gles

import (
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gles/internal/gltest"
)

func newTestDevice(t *testing.T) (*Device, *gltest.Context) {
	t.Helper()
	gl := gltest.New()
	return NewDevice(gl, 800, 600), gl
}

// newTestPipeline links a pipeline against the fake context without going
// through WGSL translation.
func newTestPipeline(t *testing.T, d *Device, desc *RenderPipelineDescriptor) *RenderPipeline {
	t.Helper()
	module := &ShaderModule{device: d, vertex: 1, fragment: 2}
	if desc == nil {
		desc = NewRenderPipelineDescriptor()
	}
	p, err := d.CreateRenderPipelineFromDescriptor(module, desc)
	if err != nil {
		t.Fatalf("CreateRenderPipelineFromDescriptor: %v", err)
	}
	return p
}

func newTestTexture(t *testing.T, d *Device, w, h uint32) *Texture {
	t.Helper()
	tex, err := d.CreateTexture(TextureDescriptor{
		Size:   gputypes.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		Format: gputypes.TextureFormatRGBA8Unorm,
		Usage:  gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding,
	})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	return tex
}

func TestSurfaceTexture(t *testing.T) {
	d, _ := newTestDevice(t)

	tex := d.SurfaceTexture()
	if !tex.IsSurface() {
		t.Error("IsSurface = false")
	}
	if tex.Width() != 800 || tex.Height() != 600 {
		t.Errorf("size = %dx%d, want 800x600", tex.Width(), tex.Height())
	}
	if tex.Format() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("format = %v", tex.Format())
	}

	d.SetViewportSize(1024, 768)
	tex = d.SurfaceTexture()
	if tex.Width() != 1024 || tex.Height() != 768 {
		t.Errorf("size after resize = %dx%d, want 1024x768", tex.Width(), tex.Height())
	}
}

func TestSurfaceTextureDestroyIsNoop(t *testing.T) {
	d, gl := newTestDevice(t)

	d.SurfaceTexture().Destroy()
	if n := gl.Count("DeleteTexture"); n != 0 {
		t.Errorf("DeleteTexture called %d times for surface texture", n)
	}
}

func TestDeviceStats(t *testing.T) {
	d, _ := newTestDevice(t)

	buf, err := d.CreateBuffer(64, gputypes.BufferUsageVertex)
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	tex := newTestTexture(t, d, 16, 16)
	tex.CreateView()
	smp := d.CreateSampler(SamplerDescriptor{})

	s := d.Stats()
	if s.Buffers != 1 || s.Textures != 1 || s.TextureViews != 1 || s.Samplers != 1 {
		t.Errorf("snapshot = %+v", s)
	}

	buf.Destroy()
	tex.Destroy()
	smp.Destroy()
	s = d.Stats()
	if s.Buffers != 0 || s.Textures != 0 || s.Samplers != 0 {
		t.Errorf("snapshot after destroy = %+v", s)
	}
	// View count tracks creations only; there is no view Destroy.
	if s.TextureViews != 1 {
		t.Errorf("TextureViews = %d, want 1", s.TextureViews)
	}
}

func TestDeviceCloseReleasesFramebuffers(t *testing.T) {
	d, gl := newTestDevice(t)

	view := newTestTexture(t, d, 32, 32).CreateView()
	d.fbos.getOrCreate(view)
	if d.Stats().Framebuffers != 1 {
		t.Fatalf("framebuffers = %d, want 1", d.Stats().Framebuffers)
	}

	d.Close()
	if n := gl.Count("DeleteFramebuffer"); n != 1 {
		t.Errorf("DeleteFramebuffer calls = %d, want 1", n)
	}
	if d.Stats().Framebuffers != 0 {
		t.Errorf("framebuffers after close = %d", d.Stats().Framebuffers)
	}
}
