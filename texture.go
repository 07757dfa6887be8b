package gles

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gles/glx"
)

// TextureDescriptor describes a texture to create.
type TextureDescriptor struct {
	// Label is an optional debug name.
	Label string

	// Size is the texture extent. DepthOrArrayLayers selects between a
	// plain 2D texture (1) and a 2D array (>1) for 2D dimensionality.
	Size gputypes.Extent3D

	// MipLevelCount is the number of mip levels (0 is treated as 1).
	MipLevelCount uint32

	// SampleCount is the number of samples per pixel. Multisampled
	// storage is not supported; values above 1 are accepted for
	// forward compatibility and ignored.
	SampleCount uint32

	// Dimension is the texture dimensionality.
	Dimension gputypes.TextureDimension

	// Format is the texel format.
	Format gputypes.TextureFormat

	// Usage flags are accepted for API compatibility. GL texture storage
	// is usable for any purpose, so they are not enforced.
	Usage gputypes.TextureUsage
}

// Texture is a device-allocated texture, or the surface (default
// framebuffer) when raw is zero and surface is set.
type Texture struct {
	device    *Device
	raw       glx.Texture
	target    uint32
	width     uint32
	height    uint32
	layers    uint32
	format    gputypes.TextureFormat
	surface   bool
	destroyed bool
}

// TextureView selects a subresource range of a texture for rendering or
// sampling. Views of the surface texture carry no GL handle.
type TextureView struct {
	texture        *Texture
	format         gputypes.TextureFormat
	dimension      gputypes.TextureViewDimension
	baseMipLevel   uint32
	mipLevelCount  uint32
	baseArrayLayer uint32
	arrayLayers    uint32
}

// CreateTexture allocates immutable texture storage for the descriptor.
// 1D sizes are allocated as 2D with height 1 because GLES has no 1D
// textures.
func (d *Device) CreateTexture(desc TextureDescriptor) (*Texture, error) {
	if desc.Size.Width == 0 || desc.Size.Height == 0 {
		return nil, ErrZeroSize
	}
	layers := desc.Size.DepthOrArrayLayers
	if layers == 0 {
		layers = 1
	}
	mips := desc.MipLevelCount
	if mips == 0 {
		mips = 1
	}

	var target uint32
	switch desc.Dimension {
	case gputypes.TextureDimension3D:
		target = glx.Texture3D
	case gputypes.TextureDimension2D, gputypes.TextureDimension1D:
		if layers > 1 {
			target = glx.Texture2DArray
		} else {
			target = glx.Texture2D
		}
	default:
		target = glx.Texture2D
	}

	info := formatGL(desc.Format)

	raw := d.gl.CreateTexture()
	d.gl.BindTexture(target, raw)
	if target == glx.Texture2D {
		d.gl.TexStorage2D(target, int32(mips), info.internal, int32(desc.Size.Width), int32(desc.Size.Height))
	} else {
		d.gl.TexStorage3D(target, int32(mips), info.internal, int32(desc.Size.Width), int32(desc.Size.Height), int32(layers))
	}

	// Storage textures default to nearest/clamp so they are complete
	// even without an explicit sampler.
	d.gl.TexParameteri(target, glx.TextureMinFilter, glx.Nearest)
	d.gl.TexParameteri(target, glx.TextureMagFilter, glx.Nearest)
	d.gl.TexParameteri(target, glx.TextureWrapS, glx.ClampToEdge)
	d.gl.TexParameteri(target, glx.TextureWrapT, glx.ClampToEdge)
	d.gl.BindTexture(target, 0)

	d.stats.textures.Add(1)
	Logger().Info("texture created",
		"label", desc.Label,
		"width", desc.Size.Width, "height", desc.Size.Height, "layers", layers,
		"format", desc.Format, "mips", mips)

	return &Texture{
		device: d,
		raw:    raw,
		target: target,
		width:  desc.Size.Width,
		height: desc.Size.Height,
		layers: layers,
		format: desc.Format,
	}, nil
}

// Width returns the texture width in texels.
func (t *Texture) Width() uint32 { return t.width }

// Height returns the texture height in texels.
func (t *Texture) Height() uint32 { return t.height }

// DepthOrArrayLayers returns the texture depth or array layer count.
func (t *Texture) DepthOrArrayLayers() uint32 { return t.layers }

// Format returns the texel format.
func (t *Texture) Format() gputypes.TextureFormat { return t.format }

// IsSurface reports whether the texture stands for the default
// framebuffer.
func (t *Texture) IsSurface() bool { return t.surface }

// CreateView returns a view of the whole texture. Array textures get an
// array view dimension, everything else a plain 2D view.
func (t *Texture) CreateView() *TextureView {
	dim := gputypes.TextureViewDimension2D
	if t.layers > 1 {
		dim = gputypes.TextureViewDimension2DArray
	}
	t.device.stats.textureViews.Add(1)
	return &TextureView{
		texture:       t,
		format:        t.format,
		dimension:     dim,
		mipLevelCount: 1,
		arrayLayers:   t.layers,
	}
}

// TextureViewDescriptor narrows a view to a subresource range.
type TextureViewDescriptor struct {
	Format          gputypes.TextureFormat
	Dimension       gputypes.TextureViewDimension
	BaseMipLevel    uint32
	MipLevelCount   uint32
	BaseArrayLayer  uint32
	ArrayLayerCount uint32
}

// CreateViewWithDescriptor returns a view of the given subresource range.
func (t *Texture) CreateViewWithDescriptor(desc TextureViewDescriptor) *TextureView {
	format := desc.Format
	if format == gputypes.TextureFormatUndefined {
		format = t.format
	}
	mips := desc.MipLevelCount
	if mips == 0 {
		mips = 1
	}
	layers := desc.ArrayLayerCount
	if layers == 0 {
		layers = t.layers
	}
	t.device.stats.textureViews.Add(1)
	return &TextureView{
		texture:        t,
		format:         format,
		dimension:      desc.Dimension,
		baseMipLevel:   desc.BaseMipLevel,
		mipLevelCount:  mips,
		baseArrayLayer: desc.BaseArrayLayer,
		arrayLayers:    layers,
	}
}

// Texture returns the view's texture.
func (v *TextureView) Texture() *Texture { return v.texture }

// IsSurface reports whether the view targets the default framebuffer.
func (v *TextureView) IsSurface() bool {
	return v.texture != nil && v.texture.surface
}

// Destroy releases the GL texture and invalidates any cached framebuffer
// attached to it. Destroy is idempotent and a no-op for the surface
// texture.
func (t *Texture) Destroy() {
	if t == nil || t.destroyed || t.surface {
		return
	}
	t.destroyed = true
	t.device.fbos.invalidate(t.raw)
	t.device.gl.DeleteTexture(t.raw)
	t.device.stats.textures.Add(-1)
	Logger().Debug("texture destroyed", "width", t.width, "height", t.height)
}
