package gles

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gles/glx"
)

// RenderPipelineDescriptor collects the fixed-function state and vertex
// layout for a pipeline. The zero value plus a topology describes a
// pipeline with culling off, depth off and blending off; the setters fill
// in the rest incrementally.
type RenderPipelineDescriptor struct {
	Topology  gputypes.PrimitiveTopology
	CullMode  gputypes.CullMode
	FrontFace gputypes.FrontFace

	DepthTestEnabled  bool
	DepthWriteEnabled bool
	DepthCompare      gputypes.CompareFunction
	DepthFormat       gputypes.TextureFormat

	ColorFormat gputypes.TextureFormat
	Blend       *BlendState

	VertexBuffers []VertexBufferLayout
	Layout        *PipelineLayout
}

// NewRenderPipelineDescriptor returns a descriptor for a triangle-list
// pipeline with depth and blending disabled.
func NewRenderPipelineDescriptor() *RenderPipelineDescriptor {
	return &RenderPipelineDescriptor{
		Topology:    gputypes.PrimitiveTopologyTriangleList,
		CullMode:    gputypes.CullModeNone,
		FrontFace:   gputypes.FrontFaceCCW,
		ColorFormat: gputypes.TextureFormatRGBA8Unorm,
	}
}

// SetCullMode selects which faces are culled.
func (d *RenderPipelineDescriptor) SetCullMode(mode gputypes.CullMode) {
	d.CullMode = mode
}

// SetFrontFace selects the winding treated as front-facing.
func (d *RenderPipelineDescriptor) SetFrontFace(face gputypes.FrontFace) {
	d.FrontFace = face
}

// SetDepthTest configures depth testing, depth writes and the compare
// function in one call.
func (d *RenderPipelineDescriptor) SetDepthTest(enabled, writeEnabled bool, compare gputypes.CompareFunction) {
	d.DepthTestEnabled = enabled
	d.DepthWriteEnabled = writeEnabled
	d.DepthCompare = compare
}

// SetDepthFormat records the depth attachment format.
func (d *RenderPipelineDescriptor) SetDepthFormat(format gputypes.TextureFormat) {
	d.DepthFormat = format
}

// SetColorFormat records the color attachment format.
func (d *RenderPipelineDescriptor) SetColorFormat(format gputypes.TextureFormat) {
	d.ColorFormat = format
}

// SetBlendState enables blending with separate color and alpha equations.
func (d *RenderPipelineDescriptor) SetBlendState(color, alpha BlendComponent) {
	d.Blend = &BlendState{Color: color, Alpha: alpha}
}

// AddVertexBufferLayout appends a vertex buffer slot and returns its
// index. Attributes are added to the returned slot afterwards.
func (d *RenderPipelineDescriptor) AddVertexBufferLayout(arrayStride uint64, stepMode gputypes.VertexStepMode) int {
	d.VertexBuffers = append(d.VertexBuffers, VertexBufferLayout{
		ArrayStride: arrayStride,
		StepMode:    stepMode,
	})
	return len(d.VertexBuffers) - 1
}

// AddVertexAttribute appends an attribute to a vertex buffer slot.
func (d *RenderPipelineDescriptor) AddVertexAttribute(slot int, shaderLocation uint32, format gputypes.VertexFormat, offset uint64) {
	d.VertexBuffers[slot].Attributes = append(d.VertexBuffers[slot].Attributes, VertexAttribute{
		ShaderLocation: shaderLocation,
		Format:         format,
		Offset:         offset,
	})
}

// RenderPipeline is a linked program plus the fixed-function state a pass
// applies when the pipeline is set. Uniform block reflection runs once at
// creation and its result travels with the pipeline.
type RenderPipeline struct {
	device    *Device
	program   glx.Program
	vao       glx.VertexArray
	bindings  *pipelineBindingMap
	desc      RenderPipelineDescriptor
	glMode    uint32
	destroyed bool
}

// CreateRenderPipeline links a pipeline from a shader module with default
// fixed-function state and the given topology. Vertex data, depth and
// blending are configured through CreateRenderPipelineFromDescriptor.
func (d *Device) CreateRenderPipeline(shader *ShaderModule, topology gputypes.PrimitiveTopology) (*RenderPipeline, error) {
	desc := NewRenderPipelineDescriptor()
	desc.Topology = topology
	return d.CreateRenderPipelineFromDescriptor(shader, desc)
}

// CreateRenderPipelineFromDescriptor links the shader module's stages into
// a program, creates the pipeline's vertex array object and reflects the
// program's uniform blocks onto their binding points.
func (d *Device) CreateRenderPipelineFromDescriptor(shader *ShaderModule, desc *RenderPipelineDescriptor) (*RenderPipeline, error) {
	gl := d.gl

	program := gl.CreateProgram()
	gl.AttachShader(program, shader.vertex)
	gl.AttachShader(program, shader.fragment)
	gl.LinkProgram(program)
	if !gl.GetProgramLinkStatus(program) {
		log := gl.GetProgramInfoLog(program)
		gl.DeleteProgram(program)
		return nil, fmt.Errorf("%w: %s", ErrProgramLink, log)
	}

	gl.UseProgram(program)
	bindings := reflectProgram(gl, program)
	gl.UseProgram(0)

	p := &RenderPipeline{
		device:   d,
		program:  program,
		vao:      gl.CreateVertexArray(),
		bindings: bindings,
		desc:     *desc,
		glMode:   topologyToGL(desc.Topology),
	}
	d.stats.renderPipelines.Add(1)
	Logger().Info("render pipeline created",
		"topology", desc.Topology, "vertexBuffers", len(desc.VertexBuffers))
	return p, nil
}

// vertexLayout returns the layout for a vertex buffer slot, or nil when
// the slot was never declared.
func (p *RenderPipeline) vertexLayout(slot uint32) *VertexBufferLayout {
	if int(slot) >= len(p.desc.VertexBuffers) {
		return nil
	}
	return &p.desc.VertexBuffers[slot]
}

// Destroy releases the program and vertex array object. Idempotent.
func (p *RenderPipeline) Destroy() {
	if p == nil || p.destroyed {
		return
	}
	p.destroyed = true
	p.device.gl.DeleteProgram(p.program)
	p.device.gl.DeleteVertexArray(p.vao)
	p.device.stats.renderPipelines.Add(-1)
}
