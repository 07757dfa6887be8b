package gles

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gles/internal/gltest"
)

func TestCreateRenderPipeline(t *testing.T) {
	d, gl := newTestDevice(t)
	module := &ShaderModule{device: d, vertex: 1, fragment: 2}

	p, err := d.CreateRenderPipeline(module, gputypes.PrimitiveTopologyTriangleList)
	if err != nil {
		t.Fatalf("CreateRenderPipeline: %v", err)
	}
	if gl.Count("LinkProgram") != 1 {
		t.Errorf("LinkProgram calls = %d, want 1", gl.Count("LinkProgram"))
	}
	if gl.Count("CreateVertexArray") != 1 {
		t.Errorf("CreateVertexArray calls = %d, want 1", gl.Count("CreateVertexArray"))
	}
	attach := fmt.Sprintf("AttachShader(%d, 1)", p.program)
	if gl.Index(attach) < 0 {
		t.Errorf("vertex shader not attached: %v", gl.Calls())
	}
	if d.Stats().RenderPipelines != 1 {
		t.Errorf("pipelines = %d, want 1", d.Stats().RenderPipelines)
	}
}

func TestCreateRenderPipelineLinkError(t *testing.T) {
	d, gl := newTestDevice(t)
	gl.FailLink = true
	gl.ProgramLog = "varying mismatch"
	module := &ShaderModule{device: d, vertex: 1, fragment: 2}

	_, err := d.CreateRenderPipeline(module, gputypes.PrimitiveTopologyTriangleList)
	if !errors.Is(err, ErrProgramLink) {
		t.Fatalf("err = %v, want ErrProgramLink", err)
	}
	if !strings.Contains(err.Error(), "varying mismatch") {
		t.Errorf("err = %v, want program log included", err)
	}
	if gl.Count("DeleteProgram") != 1 {
		t.Errorf("failed program not deleted: %v", gl.Calls())
	}
	if d.Stats().RenderPipelines != 0 {
		t.Errorf("pipelines = %d, want 0", d.Stats().RenderPipelines)
	}
}

func TestCreateRenderPipelineReflectsBlocks(t *testing.T) {
	d, gl := newTestDevice(t)
	gl.Blocks = []gltest.UniformBlock{
		{Name: "ub", UniformNames: []string{"_group_0_binding_0"}},
	}
	module := &ShaderModule{device: d, vertex: 1, fragment: 2}

	p, err := d.CreateRenderPipeline(module, gputypes.PrimitiveTopologyTriangleList)
	if err != nil {
		t.Fatalf("CreateRenderPipeline: %v", err)
	}
	if _, ok := p.bindings.lookup(0, 0); !ok {
		t.Error("binding map missing reflected block")
	}

	// Reflection runs with the program current and restores it after.
	use := fmt.Sprintf("UseProgram(%d)", p.program)
	i := gl.Index(use)
	if i < 0 {
		t.Fatalf("program not made current for reflection: %v", gl.Calls())
	}
	bind := fmt.Sprintf("UniformBlockBinding(%d, 0, 0)", p.program)
	j := gl.IndexAfter(i, bind)
	if j < 0 {
		t.Fatalf("block not bound during reflection: %v", gl.Calls())
	}
	if gl.IndexAfter(j, "UseProgram(0)") < 0 {
		t.Errorf("program left current after reflection: %v", gl.Calls())
	}
}

func TestRenderPipelineDescriptorBuilder(t *testing.T) {
	desc := NewRenderPipelineDescriptor()

	s0 := desc.AddVertexBufferLayout(16, gputypes.VertexStepModeVertex)
	s1 := desc.AddVertexBufferLayout(64, gputypes.VertexStepModeInstance)
	if s0 != 0 || s1 != 1 {
		t.Fatalf("slots = %d, %d, want 0, 1", s0, s1)
	}
	desc.AddVertexAttribute(s0, 0, gputypes.VertexFormatFloat32x2, 0)
	desc.AddVertexAttribute(s0, 1, gputypes.VertexFormatFloat32x2, 8)
	desc.AddVertexAttribute(s1, 2, gputypes.VertexFormatFloat32x4, 0)

	if len(desc.VertexBuffers[0].Attributes) != 2 {
		t.Errorf("slot 0 attributes = %d, want 2", len(desc.VertexBuffers[0].Attributes))
	}
	if len(desc.VertexBuffers[1].Attributes) != 1 {
		t.Errorf("slot 1 attributes = %d, want 1", len(desc.VertexBuffers[1].Attributes))
	}
	if desc.VertexBuffers[1].StepMode != gputypes.VertexStepModeInstance {
		t.Errorf("slot 1 step mode = %v", desc.VertexBuffers[1].StepMode)
	}

	desc.SetDepthTest(true, false, gputypes.CompareFunctionGreater)
	if !desc.DepthTestEnabled || desc.DepthWriteEnabled || desc.DepthCompare != gputypes.CompareFunctionGreater {
		t.Errorf("depth state = %+v", desc)
	}
}

func TestRenderPipelineDestroyIdempotent(t *testing.T) {
	d, gl := newTestDevice(t)
	p := newTestPipeline(t, d, nil)

	p.Destroy()
	p.Destroy()
	if gl.Count("DeleteProgram") != 1 {
		t.Errorf("DeleteProgram calls = %d, want 1", gl.Count("DeleteProgram"))
	}
	if gl.Count("DeleteVertexArray") != 1 {
		t.Errorf("DeleteVertexArray calls = %d, want 1", gl.Count("DeleteVertexArray"))
	}
}
