package gles

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gles/glx"
)

// SamplerDescriptor describes a sampler to create. The zero value is a
// nearest-filtered, clamp-to-edge sampler.
type SamplerDescriptor struct {
	// Label is an optional debug name.
	Label string

	// AddressModeU, AddressModeV and AddressModeW select the wrap mode
	// per texture coordinate.
	AddressModeU gputypes.AddressMode
	AddressModeV gputypes.AddressMode
	AddressModeW gputypes.AddressMode

	// MagFilter and MinFilter select the magnification and minification
	// filters. MipmapFilter selects filtering between mip levels and is
	// folded into the GL minification filter.
	MagFilter    gputypes.FilterMode
	MinFilter    gputypes.FilterMode
	MipmapFilter gputypes.FilterMode

	// LodMinClamp and LodMaxClamp bound the mip level range. A zero
	// LodMaxClamp defaults to 32.
	LodMinClamp float32
	LodMaxClamp float32

	// Compare, when non-nil, makes this a comparison sampler for depth
	// textures.
	Compare *gputypes.CompareFunction

	// MaxAnisotropy above 1 enables anisotropic filtering where the
	// context supports it.
	MaxAnisotropy uint16
}

// Sampler is a device-allocated GL sampler object.
type Sampler struct {
	device    *Device
	raw       glx.Sampler
	destroyed bool
}

// CreateSampler allocates a sampler configured per the descriptor.
func (d *Device) CreateSampler(desc SamplerDescriptor) *Sampler {
	raw := d.gl.CreateSampler()

	d.gl.SamplerParameteri(raw, glx.TextureWrapS, addressModeToGL(desc.AddressModeU))
	d.gl.SamplerParameteri(raw, glx.TextureWrapT, addressModeToGL(desc.AddressModeV))
	d.gl.SamplerParameteri(raw, glx.TextureWrapR, addressModeToGL(desc.AddressModeW))

	d.gl.SamplerParameteri(raw, glx.TextureMagFilter, magFilterToGL(desc.MagFilter))
	d.gl.SamplerParameteri(raw, glx.TextureMinFilter, minFilterToGL(desc.MinFilter, desc.MipmapFilter))

	maxLod := desc.LodMaxClamp
	if maxLod == 0 {
		maxLod = 32
	}
	d.gl.SamplerParameterf(raw, glx.TextureMinLOD, desc.LodMinClamp)
	d.gl.SamplerParameterf(raw, glx.TextureMaxLOD, maxLod)

	if desc.Compare != nil {
		d.gl.SamplerParameteri(raw, glx.TextureCompareMode, glx.CompareRefToTexture)
		d.gl.SamplerParameteri(raw, glx.TextureCompareFunc, int32(compareFuncToGL(*desc.Compare)))
	} else {
		d.gl.SamplerParameteri(raw, glx.TextureCompareMode, glx.None)
	}

	if desc.MaxAnisotropy > 1 {
		// EXT_texture_filter_anisotropic; ignored by contexts without it.
		d.gl.SamplerParameterf(raw, glx.TextureMaxAnisotropy, float32(desc.MaxAnisotropy))
	}

	d.stats.samplers.Add(1)
	Logger().Info("sampler created",
		"label", desc.Label,
		"mag", desc.MagFilter, "min", desc.MinFilter, "mipmap", desc.MipmapFilter)

	return &Sampler{device: d, raw: raw}
}

// Destroy releases the GL sampler. Destroy is idempotent.
func (s *Sampler) Destroy() {
	if s == nil || s.destroyed {
		return
	}
	s.destroyed = true
	s.device.gl.DeleteSampler(s.raw)
	s.device.stats.samplers.Add(-1)
	Logger().Debug("sampler destroyed")
}
