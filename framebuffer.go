package gles

import (
	"github.com/gogpu/gles/glx"
)

// cachedFramebuffer is one lazily created render target: a framebuffer
// with the texture as color attachment 0 and a matching depth
// renderbuffer.
type cachedFramebuffer struct {
	fbo     glx.Framebuffer
	depthRB glx.Renderbuffer
	width   uint32
	height  uint32
}

// framebufferCache maps texture names to framebuffers so rendering to the
// same texture across passes reuses one GL object. The cache is owned by
// the device and invalidated when a texture is destroyed.
type framebufferCache struct {
	device  *Device
	entries map[glx.Texture]*cachedFramebuffer
}

func newFramebufferCache(d *Device) *framebufferCache {
	return &framebufferCache{device: d, entries: make(map[glx.Texture]*cachedFramebuffer)}
}

// getOrCreate returns the framebuffer for rendering into view's texture,
// creating it on first use. An incomplete framebuffer is logged and
// returned anyway; the draw commands that follow will be dropped by GL.
func (c *framebufferCache) getOrCreate(view *TextureView) *cachedFramebuffer {
	tex := view.texture
	if fb, ok := c.entries[tex.raw]; ok {
		return fb
	}

	gl := c.device.gl
	fbo := gl.CreateFramebuffer()
	gl.BindFramebuffer(glx.FramebufferTarget, fbo)
	gl.FramebufferTexture2D(glx.FramebufferTarget, glx.ColorAttachment0,
		glx.Texture2D, tex.raw, int32(view.baseMipLevel))

	depthRB := gl.CreateRenderbuffer()
	gl.BindRenderbuffer(glx.RenderbufferTarget, depthRB)
	gl.RenderbufferStorage(glx.RenderbufferTarget, glx.DepthComponent24,
		int32(tex.width), int32(tex.height))
	gl.FramebufferRenderbuffer(glx.FramebufferTarget, glx.DepthAttachment,
		glx.RenderbufferTarget, depthRB)
	gl.BindRenderbuffer(glx.RenderbufferTarget, 0)

	if status := gl.CheckFramebufferStatus(glx.FramebufferTarget); status != glx.FramebufferComplete {
		Logger().Error("framebuffer incomplete",
			"texture", tex.raw, "status", framebufferStatusName(status))
	}

	fb := &cachedFramebuffer{fbo: fbo, depthRB: depthRB, width: tex.width, height: tex.height}
	c.entries[tex.raw] = fb
	c.device.stats.framebuffers.Add(1)
	Logger().Debug("framebuffer created",
		"texture", tex.raw, "width", tex.width, "height", tex.height)
	return fb
}

// invalidate drops and deletes the framebuffer associated with a texture,
// if any. Called when the texture is destroyed.
func (c *framebufferCache) invalidate(tex glx.Texture) {
	fb, ok := c.entries[tex]
	if !ok {
		return
	}
	delete(c.entries, tex)
	c.device.gl.DeleteFramebuffer(fb.fbo)
	c.device.gl.DeleteRenderbuffer(fb.depthRB)
	c.device.stats.framebuffers.Add(-1)
}

// destroyAll releases every cached framebuffer. Called from Device.Close.
func (c *framebufferCache) destroyAll() {
	for tex := range c.entries {
		c.invalidate(tex)
	}
}

func framebufferStatusName(status uint32) string {
	switch status {
	case glx.FramebufferIncompleteAttachment:
		return "INCOMPLETE_ATTACHMENT"
	case glx.FramebufferIncompleteMissingAttachment:
		return "INCOMPLETE_MISSING_ATTACHMENT"
	case glx.FramebufferIncompleteDimensions:
		return "INCOMPLETE_DIMENSIONS"
	case glx.FramebufferUnsupported:
		return "UNSUPPORTED"
	case glx.FramebufferIncompleteMultisample:
		return "INCOMPLETE_MULTISAMPLE"
	default:
		return "UNKNOWN"
	}
}
