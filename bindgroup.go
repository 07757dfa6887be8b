package gles

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gles/glx"
)

// BindGroupLayout describes the resource slots one bind group fills.
// The layout's entries drive how buffers are routed at draw time, so a
// binding declared as a storage buffer is detected and skipped instead of
// being bound as a uniform block.
type BindGroupLayout struct {
	entries map[uint32]gputypes.BindGroupLayoutEntry
}

// CreateBindGroupLayout validates the entries and builds a layout.
// Duplicate binding numbers are rejected.
func (d *Device) CreateBindGroupLayout(entries []gputypes.BindGroupLayoutEntry) (*BindGroupLayout, error) {
	byBinding := make(map[uint32]gputypes.BindGroupLayoutEntry, len(entries))
	for _, e := range entries {
		if _, dup := byBinding[e.Binding]; dup {
			return nil, fmt.Errorf("%w: binding %d", ErrDuplicateBinding, e.Binding)
		}
		byBinding[e.Binding] = e
	}
	d.stats.bindGroupLayouts.Add(1)
	return &BindGroupLayout{entries: byBinding}, nil
}

// Entry returns the layout entry for a binding number.
func (l *BindGroupLayout) Entry(binding uint32) (gputypes.BindGroupLayoutEntry, bool) {
	e, ok := l.entries[binding]
	return e, ok
}

// EntryCount returns the number of declared bindings.
func (l *BindGroupLayout) EntryCount() int { return len(l.entries) }

// PipelineLayout is the ordered list of bind group layouts a pipeline
// expects, indexed by group number.
type PipelineLayout struct {
	groups []*BindGroupLayout
}

// CreatePipelineLayout builds a pipeline layout from group layouts in
// group-index order.
func (d *Device) CreatePipelineLayout(groups ...*BindGroupLayout) *PipelineLayout {
	d.stats.pipelineLayouts.Add(1)
	return &PipelineLayout{groups: groups}
}

// Group returns the layout for a group index, or nil when out of range.
func (l *PipelineLayout) Group(index uint32) *BindGroupLayout {
	if l == nil || int(index) >= len(l.groups) {
		return nil
	}
	return l.groups[index]
}

// GroupCount returns the number of bind group slots.
func (l *PipelineLayout) GroupCount() int {
	if l == nil {
		return 0
	}
	return len(l.groups)
}

type resourceKind int

const (
	resourceBuffer resourceKind = iota
	resourceTexture
	resourceSampler
	resourceTextureSampler
)

func (k resourceKind) String() string {
	switch k {
	case resourceBuffer:
		return "buffer"
	case resourceTexture:
		return "texture"
	case resourceSampler:
		return "sampler"
	case resourceTextureSampler:
		return "texture+sampler"
	default:
		return "unknown"
	}
}

// BoundResource is one resource slotted into a bind group: a buffer range,
// a sampled texture view, a sampler, or a combined texture and sampler.
type BoundResource struct {
	kind    resourceKind
	buffer  *Buffer
	offset  uint64
	size    uint64
	view    *TextureView
	sampler *Sampler
}

// BufferResource binds a byte range of a buffer. A size of zero means the
// rest of the buffer from offset.
func BufferResource(buffer *Buffer, offset, size uint64) BoundResource {
	return BoundResource{kind: resourceBuffer, buffer: buffer, offset: offset, size: size}
}

// TextureResource binds a texture view for sampling.
func TextureResource(view *TextureView) BoundResource {
	return BoundResource{kind: resourceTexture, view: view}
}

// SamplerResource binds a sampler object.
func SamplerResource(sampler *Sampler) BoundResource {
	return BoundResource{kind: resourceSampler, sampler: sampler}
}

// TextureSamplerResource binds a texture view and the sampler used to
// sample it on the same unit.
func TextureSamplerResource(view *TextureView, sampler *Sampler) BoundResource {
	return BoundResource{kind: resourceTextureSampler, view: view, sampler: sampler}
}

// BindGroupEntry pairs a binding number with the resource that fills it.
type BindGroupEntry struct {
	Binding  uint32
	Resource BoundResource
}

// BindGroup is a named set of resources applied together when a render
// pass calls SetBindGroup. There is no GL object behind it; application
// replays the entries onto global GL state.
type BindGroup struct {
	layout  *BindGroupLayout
	entries []BindGroupEntry
}

// CreateBindGroup builds a bind group against a layout. A surface texture
// cannot be sampled, so a group referencing one is created empty and a
// warning is logged.
func (d *Device) CreateBindGroup(layout *BindGroupLayout, entries []BindGroupEntry) *BindGroup {
	for _, e := range entries {
		view := e.Resource.view
		if view != nil && view.texture != nil && view.texture.surface {
			Logger().Warn("surface texture used as sampled texture, bind group will be empty",
				"binding", e.Binding)
			d.stats.bindGroups.Add(1)
			return &BindGroup{layout: layout}
		}
	}
	d.stats.bindGroups.Add(1)
	return &BindGroup{layout: layout, entries: entries}
}

// NewBindGroupWithBuffer builds a layout and group around one uniform
// buffer at binding 0.
func (d *Device) NewBindGroupWithBuffer(buffer *Buffer, offset, size uint64) (*BindGroupLayout, *BindGroup, error) {
	return d.newBufferGroup([]BoundResource{BufferResource(buffer, offset, size)})
}

// NewBindGroupWith2Buffers builds a layout and group around two uniform
// buffers at bindings 0 and 1, each covering its full length.
func (d *Device) NewBindGroupWith2Buffers(a, b *Buffer) (*BindGroupLayout, *BindGroup, error) {
	return d.newBufferGroup([]BoundResource{
		BufferResource(a, 0, 0),
		BufferResource(b, 0, 0),
	})
}

// NewBindGroupWith3Buffers builds a layout and group around three uniform
// buffers at bindings 0, 1 and 2.
func (d *Device) NewBindGroupWith3Buffers(a, b, c *Buffer) (*BindGroupLayout, *BindGroup, error) {
	return d.newBufferGroup([]BoundResource{
		BufferResource(a, 0, 0),
		BufferResource(b, 0, 0),
		BufferResource(c, 0, 0),
	})
}

func (d *Device) newBufferGroup(resources []BoundResource) (*BindGroupLayout, *BindGroup, error) {
	layoutEntries := make([]gputypes.BindGroupLayoutEntry, len(resources))
	groupEntries := make([]BindGroupEntry, len(resources))
	for i, r := range resources {
		if r.buffer == nil {
			return nil, nil, ErrNilBuffer
		}
		layoutEntries[i] = gputypes.BindGroupLayoutEntry{
			Binding:    uint32(i),
			Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		}
		groupEntries[i] = BindGroupEntry{Binding: uint32(i), Resource: r}
	}
	layout, err := d.CreateBindGroupLayout(layoutEntries)
	if err != nil {
		return nil, nil, err
	}
	return layout, d.CreateBindGroup(layout, groupEntries), nil
}

// NewBindGroupWithTexture builds a layout and group around one sampled
// texture at binding 0.
func (d *Device) NewBindGroupWithTexture(view *TextureView) (*BindGroupLayout, *BindGroup, error) {
	layout, err := d.CreateBindGroupLayout([]gputypes.BindGroupLayoutEntry{
		textureLayoutEntry(0),
	})
	if err != nil {
		return nil, nil, err
	}
	group := d.CreateBindGroup(layout, []BindGroupEntry{
		{Binding: 0, Resource: TextureResource(view)},
	})
	return layout, group, nil
}

// NewBindGroupWithSampler builds a layout and group around one sampler at
// binding 0.
func (d *Device) NewBindGroupWithSampler(sampler *Sampler) (*BindGroupLayout, *BindGroup, error) {
	layout, err := d.CreateBindGroupLayout([]gputypes.BindGroupLayoutEntry{
		samplerLayoutEntry(0),
	})
	if err != nil {
		return nil, nil, err
	}
	group := d.CreateBindGroup(layout, []BindGroupEntry{
		{Binding: 0, Resource: SamplerResource(sampler)},
	})
	return layout, group, nil
}

// NewBindGroupWithTextureSampler builds a layout and group with a texture
// at binding 0 and its sampler at binding 1.
func (d *Device) NewBindGroupWithTextureSampler(view *TextureView, sampler *Sampler) (*BindGroupLayout, *BindGroup, error) {
	layout, err := d.CreateBindGroupLayout([]gputypes.BindGroupLayoutEntry{
		textureLayoutEntry(0),
		samplerLayoutEntry(1),
	})
	if err != nil {
		return nil, nil, err
	}
	group := d.CreateBindGroup(layout, []BindGroupEntry{
		{Binding: 0, Resource: TextureResource(view)},
		{Binding: 1, Resource: SamplerResource(sampler)},
	})
	return layout, group, nil
}

// NewBindGroupWithBufferTextureSampler builds a layout and group with a
// uniform buffer at binding 0, a texture at binding 1 and a sampler at
// binding 2.
func (d *Device) NewBindGroupWithBufferTextureSampler(buffer *Buffer, view *TextureView, sampler *Sampler) (*BindGroupLayout, *BindGroup, error) {
	if buffer == nil {
		return nil, nil, ErrNilBuffer
	}
	layout, err := d.CreateBindGroupLayout([]gputypes.BindGroupLayoutEntry{
		uniformLayoutEntry(0),
		textureLayoutEntry(1),
		samplerLayoutEntry(2),
	})
	if err != nil {
		return nil, nil, err
	}
	group := d.CreateBindGroup(layout, []BindGroupEntry{
		{Binding: 0, Resource: BufferResource(buffer, 0, 0)},
		{Binding: 1, Resource: TextureResource(view)},
		{Binding: 2, Resource: SamplerResource(sampler)},
	})
	return layout, group, nil
}

// NewBindGroupWith2BuffersTextureSampler builds a layout and group with
// uniform buffers at bindings 0 and 1, a texture at binding 2 and a
// sampler at binding 3.
func (d *Device) NewBindGroupWith2BuffersTextureSampler(a, b *Buffer, view *TextureView, sampler *Sampler) (*BindGroupLayout, *BindGroup, error) {
	if a == nil || b == nil {
		return nil, nil, ErrNilBuffer
	}
	layout, err := d.CreateBindGroupLayout([]gputypes.BindGroupLayoutEntry{
		uniformLayoutEntry(0),
		uniformLayoutEntry(1),
		textureLayoutEntry(2),
		samplerLayoutEntry(3),
	})
	if err != nil {
		return nil, nil, err
	}
	group := d.CreateBindGroup(layout, []BindGroupEntry{
		{Binding: 0, Resource: BufferResource(a, 0, 0)},
		{Binding: 1, Resource: BufferResource(b, 0, 0)},
		{Binding: 2, Resource: TextureResource(view)},
		{Binding: 3, Resource: SamplerResource(sampler)},
	})
	return layout, group, nil
}

func uniformLayoutEntry(binding uint32) gputypes.BindGroupLayoutEntry {
	return gputypes.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
		Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
	}
}

func textureLayoutEntry(binding uint32) gputypes.BindGroupLayoutEntry {
	return gputypes.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: gputypes.ShaderStageFragment,
		Texture: &gputypes.TextureBindingLayout{
			SampleType:    gputypes.TextureSampleTypeFloat,
			ViewDimension: gputypes.TextureViewDimension2D,
		},
	}
}

func samplerLayoutEntry(binding uint32) gputypes.BindGroupLayoutEntry {
	return gputypes.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: gputypes.ShaderStageFragment,
		Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
	}
}

// apply replays the group's resources onto GL state for a pass using the
// given program. Buffers land on the uniform buffer binding point equal
// to the group index, which is where reflection wired the program's
// blocks. Textures and samplers use the binding number as the unit;
// sampler uniforms are resolved by their generated names, probing the
// fragment-stage suffix before the vertex one.
func (g *BindGroup) apply(gl glx.Context, groupIndex uint32, program glx.Program) {
	for _, e := range g.entries {
		r := e.Resource
		switch r.kind {
		case resourceBuffer:
			if g.isStorageBuffer(e.Binding) {
				Logger().Warn("storage buffers are not supported, skipping binding",
					"group", groupIndex, "binding", e.Binding)
				continue
			}
			size := r.size
			if size == 0 {
				size = r.buffer.size - r.offset
			}
			gl.BindBufferRange(glx.UniformBuffer, groupIndex, r.buffer.raw, int(r.offset), int(size))

		case resourceSampler:
			gl.BindSampler(e.Binding, r.sampler.raw)

		case resourceTexture:
			g.bindTextureUnit(gl, program, groupIndex, e.Binding, r.view)

		case resourceTextureSampler:
			g.bindTextureUnit(gl, program, groupIndex, e.Binding, r.view)
			gl.BindSampler(e.Binding, r.sampler.raw)
		}
	}
}

func (g *BindGroup) isStorageBuffer(binding uint32) bool {
	if g.layout == nil {
		return false
	}
	entry, ok := g.layout.Entry(binding)
	if !ok || entry.Buffer == nil {
		// Unknown bindings are treated as uniform buffers.
		return false
	}
	t := entry.Buffer.Type
	return t == gputypes.BufferBindingTypeStorage || t == gputypes.BufferBindingTypeReadOnlyStorage
}

func (g *BindGroup) bindTextureUnit(gl glx.Context, program glx.Program, groupIndex, binding uint32, view *TextureView) {
	unit := binding
	gl.ActiveTexture(glx.Texture0 + unit)
	gl.BindTexture(view.texture.target, view.texture.raw)

	name := fmt.Sprintf("_group_%d_binding_%d_fs", groupIndex, binding)
	loc := gl.GetUniformLocation(program, name)
	if !loc.Valid() {
		name = fmt.Sprintf("_group_%d_binding_%d_vs", groupIndex, binding)
		loc = gl.GetUniformLocation(program, name)
	}
	if loc.Valid() {
		gl.Uniform1i(loc, int32(unit))
	} else {
		Logger().Debug("no sampler uniform for texture binding",
			"group", groupIndex, "binding", binding)
	}
}
