package gles

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gles/glx"
)

func TestCreateBindGroupLayoutDuplicateBinding(t *testing.T) {
	d, _ := newTestDevice(t)

	_, err := d.CreateBindGroupLayout([]gputypes.BindGroupLayoutEntry{
		uniformLayoutEntry(0),
		uniformLayoutEntry(0),
	})
	if !errors.Is(err, ErrDuplicateBinding) {
		t.Fatalf("err = %v, want ErrDuplicateBinding", err)
	}
}

func TestBindGroupApplySingleBuffer(t *testing.T) {
	d, gl := newTestDevice(t)

	buf, err := d.CreateBuffer(256, gputypes.BufferUsageUniform)
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	_, group, err := d.NewBindGroupWithBuffer(buf, 64, 128)
	if err != nil {
		t.Fatalf("NewBindGroupWithBuffer: %v", err)
	}

	gl.Reset()
	group.apply(gl, 2, glx.Program(9))

	got := gl.CallsOf("BindBufferRange")
	want := fmt.Sprintf("BindBufferRange(%d, 2, %d, 64, 128)", uint32(glx.UniformBuffer), buf.raw)
	if len(got) != 1 || got[0] != want {
		t.Fatalf("BindBufferRange calls = %v, want [%s]", got, want)
	}
}

func TestBindGroupApplyFullBufferSize(t *testing.T) {
	d, gl := newTestDevice(t)

	buf, err := d.CreateBuffer(512, gputypes.BufferUsageUniform)
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	_, group, err := d.NewBindGroupWithBuffer(buf, 0, 0)
	if err != nil {
		t.Fatalf("NewBindGroupWithBuffer: %v", err)
	}

	gl.Reset()
	group.apply(gl, 0, glx.Program(1))

	want := fmt.Sprintf("BindBufferRange(%d, 0, %d, 0, 512)", uint32(glx.UniformBuffer), buf.raw)
	if gl.Index(want) < 0 {
		t.Fatalf("missing %q in %v", want, gl.Calls())
	}
}

func TestBindGroupApplySkipsStorageBuffer(t *testing.T) {
	d, gl := newTestDevice(t)

	buf, err := d.CreateBuffer(64, gputypes.BufferUsageStorage)
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	layout, err := d.CreateBindGroupLayout([]gputypes.BindGroupLayoutEntry{{
		Binding:    0,
		Visibility: gputypes.ShaderStageFragment,
		Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage},
	}})
	if err != nil {
		t.Fatalf("CreateBindGroupLayout: %v", err)
	}
	group := d.CreateBindGroup(layout, []BindGroupEntry{
		{Binding: 0, Resource: BufferResource(buf, 0, 0)},
	})

	gl.Reset()
	group.apply(gl, 0, glx.Program(1))

	if n := gl.Count("BindBufferRange"); n != 0 {
		t.Errorf("BindBufferRange calls = %d, want 0 for storage buffer", n)
	}
}

func TestBindGroupApplyBufferWithoutLayoutEntry(t *testing.T) {
	// An entry absent from the layout is treated as a uniform buffer.
	d, gl := newTestDevice(t)

	buf, err := d.CreateBuffer(64, gputypes.BufferUsageUniform)
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	layout, err := d.CreateBindGroupLayout(nil)
	if err != nil {
		t.Fatalf("CreateBindGroupLayout: %v", err)
	}
	group := d.CreateBindGroup(layout, []BindGroupEntry{
		{Binding: 0, Resource: BufferResource(buf, 0, 0)},
	})

	gl.Reset()
	group.apply(gl, 0, glx.Program(1))

	if n := gl.Count("BindBufferRange"); n != 1 {
		t.Errorf("BindBufferRange calls = %d, want 1", n)
	}
}

func TestBindGroupApplyTexture(t *testing.T) {
	d, gl := newTestDevice(t)
	gl.Locations = map[string]int32{"_group_0_binding_0_fs": 5}

	view := newTestTexture(t, d, 16, 16).CreateView()
	_, group, err := d.NewBindGroupWithTexture(view)
	if err != nil {
		t.Fatalf("NewBindGroupWithTexture: %v", err)
	}

	gl.Reset()
	group.apply(gl, 0, glx.Program(1))

	active := fmt.Sprintf("ActiveTexture(%d)", uint32(glx.Texture0))
	i := gl.Index(active)
	if i < 0 {
		t.Fatalf("missing %q in %v", active, gl.Calls())
	}
	bind := fmt.Sprintf("BindTexture(%d, %d)", uint32(glx.Texture2D), view.texture.raw)
	if gl.IndexAfter(i, bind) < 0 {
		t.Fatalf("missing %q after ActiveTexture in %v", bind, gl.Calls())
	}
	if gl.Index("Uniform1i(5, 0)") < 0 {
		t.Errorf("sampler uniform not set: %v", gl.CallsOf("Uniform1i"))
	}
}

func TestBindGroupApplyTextureVertexStageFallback(t *testing.T) {
	d, gl := newTestDevice(t)
	gl.Locations = map[string]int32{"_group_0_binding_1_vs": 3}

	view := newTestTexture(t, d, 16, 16).CreateView()
	layout, err := d.CreateBindGroupLayout([]gputypes.BindGroupLayoutEntry{textureLayoutEntry(1)})
	if err != nil {
		t.Fatalf("CreateBindGroupLayout: %v", err)
	}
	group := d.CreateBindGroup(layout, []BindGroupEntry{
		{Binding: 1, Resource: TextureResource(view)},
	})

	gl.Reset()
	group.apply(gl, 0, glx.Program(1))

	if gl.Index("Uniform1i(3, 1)") < 0 {
		t.Errorf("vertex stage uniform not probed: %v", gl.Calls())
	}
}

func TestBindGroupApplyTextureSampler(t *testing.T) {
	d, gl := newTestDevice(t)

	view := newTestTexture(t, d, 16, 16).CreateView()
	smp := d.CreateSampler(SamplerDescriptor{})
	layout, err := d.CreateBindGroupLayout([]gputypes.BindGroupLayoutEntry{textureLayoutEntry(0)})
	if err != nil {
		t.Fatalf("CreateBindGroupLayout: %v", err)
	}
	group := d.CreateBindGroup(layout, []BindGroupEntry{
		{Binding: 0, Resource: TextureSamplerResource(view, smp)},
	})

	gl.Reset()
	group.apply(gl, 0, glx.Program(1))

	if n := gl.Count("BindTexture"); n != 1 {
		t.Errorf("BindTexture calls = %d, want 1", n)
	}
	want := fmt.Sprintf("BindSampler(0, %d)", smp.raw)
	if gl.Index(want) < 0 {
		t.Errorf("missing %q in %v", want, gl.Calls())
	}
}

func TestCreateBindGroupSurfaceTextureIsEmpty(t *testing.T) {
	d, gl := newTestDevice(t)

	view := d.SurfaceTexture().CreateView()
	_, group, err := d.NewBindGroupWithTexture(view)
	if err != nil {
		t.Fatalf("NewBindGroupWithTexture: %v", err)
	}
	if len(group.entries) != 0 {
		t.Fatalf("entries = %d, want 0", len(group.entries))
	}

	gl.Reset()
	group.apply(gl, 0, glx.Program(1))
	if len(gl.Calls()) != 0 {
		t.Errorf("apply of empty group issued calls: %v", gl.Calls())
	}
}

func TestBindGroupConstructorsRoundTrip(t *testing.T) {
	d, _ := newTestDevice(t)

	a, err := d.CreateBuffer(64, gputypes.BufferUsageUniform)
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	b, err := d.CreateBuffer(64, gputypes.BufferUsageUniform)
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	view := newTestTexture(t, d, 8, 8).CreateView()
	smp := d.CreateSampler(SamplerDescriptor{})

	layout, group, err := d.NewBindGroupWith2BuffersTextureSampler(a, b, view, smp)
	if err != nil {
		t.Fatalf("NewBindGroupWith2BuffersTextureSampler: %v", err)
	}
	if layout.EntryCount() != 4 {
		t.Errorf("layout entries = %d, want 4", layout.EntryCount())
	}
	if len(group.entries) != 4 {
		t.Errorf("group entries = %d, want 4", len(group.entries))
	}

	entry, ok := layout.Entry(0)
	if !ok || entry.Buffer == nil || entry.Buffer.Type != gputypes.BufferBindingTypeUniform {
		t.Errorf("binding 0 = %+v, want uniform buffer", entry)
	}
	entry, ok = layout.Entry(2)
	if !ok || entry.Texture == nil {
		t.Errorf("binding 2 = %+v, want texture", entry)
	}
	entry, ok = layout.Entry(3)
	if !ok || entry.Sampler == nil {
		t.Errorf("binding 3 = %+v, want sampler", entry)
	}

	kinds := []resourceKind{resourceBuffer, resourceBuffer, resourceTexture, resourceSampler}
	for i, e := range group.entries {
		if e.Resource.kind != kinds[i] {
			t.Errorf("entry %d kind = %v, want %v", i, e.Resource.kind, kinds[i])
		}
	}
}

func TestNewBindGroupNilBuffer(t *testing.T) {
	d, _ := newTestDevice(t)

	if _, _, err := d.NewBindGroupWithBuffer(nil, 0, 0); !errors.Is(err, ErrNilBuffer) {
		t.Errorf("err = %v, want ErrNilBuffer", err)
	}
}
