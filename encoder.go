package gles

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gles/glx"
)

// RenderPassColorAttachment names the color target of a pass and how its
// previous contents are treated.
type RenderPassColorAttachment struct {
	View       *TextureView
	LoadOp     gputypes.LoadOp
	ClearValue gputypes.Color
}

// RenderPassDescriptor describes one render pass. A single color
// attachment is supported; rendering to a texture allocates a depth
// renderbuffer alongside it automatically.
type RenderPassDescriptor struct {
	ColorAttachment RenderPassColorAttachment
}

// passState executes pass commands against GL. Both the immediate encoder
// and command buffer replay drive the same state machine, so draw
// ordering and attribute rebinding behave identically in both paths.
type passState struct {
	device   *Device
	pipeline *RenderPipeline
	indexFmt IndexFormat
}

func (s *passState) begin(desc *RenderPassDescriptor) {
	gl := s.device.gl
	att := desc.ColorAttachment
	view := att.View

	if view == nil || view.IsSurface() {
		gl.BindFramebuffer(glx.FramebufferTarget, 0)
		gl.Viewport(0, 0, int32(s.device.width), int32(s.device.height))
	} else {
		fb := s.device.fbos.getOrCreate(view)
		gl.BindFramebuffer(glx.FramebufferTarget, fb.fbo)
		gl.Viewport(0, 0, int32(fb.width), int32(fb.height))
	}

	if att.LoadOp == gputypes.LoadOpClear {
		c := att.ClearValue
		gl.ClearColor(float32(c.R), float32(c.G), float32(c.B), float32(c.A))
		gl.ClearDepth(1)
		gl.Clear(glx.ColorBufferBit | glx.DepthBufferBit)
	}
}

func (s *passState) setPipeline(p *RenderPipeline) {
	gl := s.device.gl
	s.pipeline = p
	gl.UseProgram(p.program)
	gl.BindVertexArray(p.vao)

	desc := &p.desc
	if desc.DepthTestEnabled {
		gl.Enable(glx.DepthTest)
		gl.DepthFunc(compareFuncToGL(desc.DepthCompare))
		gl.DepthMask(desc.DepthWriteEnabled)
	} else {
		gl.Disable(glx.DepthTest)
	}

	if desc.Blend != nil && desc.Blend.enabled() {
		gl.Enable(glx.Blend)
		gl.BlendFuncSeparate(
			blendFactorToGL(desc.Blend.Color.SrcFactor),
			blendFactorToGL(desc.Blend.Color.DstFactor),
			blendFactorToGL(desc.Blend.Alpha.SrcFactor),
			blendFactorToGL(desc.Blend.Alpha.DstFactor))
		gl.BlendEquationSeparate(
			blendOpToGL(desc.Blend.Color.Operation),
			blendOpToGL(desc.Blend.Alpha.Operation))
	} else {
		gl.Disable(glx.Blend)
	}

	switch desc.CullMode {
	case gputypes.CullModeFront:
		gl.Enable(glx.CullFaceTest)
		gl.CullFace(glx.Front)
	case gputypes.CullModeBack:
		gl.Enable(glx.CullFaceTest)
		gl.CullFace(glx.Back)
	default:
		gl.Disable(glx.CullFaceTest)
	}
	if desc.FrontFace == gputypes.FrontFaceCW {
		gl.FrontFace(glx.CW)
	} else {
		gl.FrontFace(glx.CCW)
	}
}

// setVertexBuffer binds the buffer and rewires every attribute of the
// slot's layout. Attribute pointers capture the bound buffer and offset at
// call time, so this runs in full on every call rather than only once per
// pipeline.
func (s *passState) setVertexBuffer(slot uint32, buffer *Buffer, offset uint64) {
	gl := s.device.gl
	gl.BindBuffer(glx.ArrayBuffer, buffer.raw)

	layout := s.pipeline.vertexLayout(slot)
	if layout == nil {
		Logger().Warn("vertex buffer slot not declared by pipeline", "slot", slot)
		return
	}
	for _, attr := range layout.Attributes {
		gl.EnableVertexAttribArray(attr.ShaderLocation)
		gl.VertexAttribPointer(attr.ShaderLocation,
			vertexFormatComponents(attr.Format),
			vertexFormatGLType(attr.Format),
			false,
			int32(layout.ArrayStride),
			int32(attr.Offset+offset))
		if layout.StepMode == gputypes.VertexStepModeInstance {
			gl.VertexAttribDivisor(attr.ShaderLocation, 1)
		} else {
			gl.VertexAttribDivisor(attr.ShaderLocation, 0)
		}
	}
}

func (s *passState) setIndexBuffer(buffer *Buffer, format IndexFormat, offset uint64) {
	s.indexFmt = format
	s.device.gl.BindBuffer(glx.ElementArrayBuffer, buffer.raw)
	// The byte offset is applied at draw time through firstIndex.
	if offset != 0 {
		Logger().Debug("index buffer offset deferred to draw", "offset", offset)
	}
}

func (s *passState) setBindGroup(index uint32, group *BindGroup) {
	group.apply(s.device.gl, index, s.pipeline.program)
}

func (s *passState) setViewport(x, y, width, height, minDepth, maxDepth float32) {
	gl := s.device.gl
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
	gl.DepthRange(minDepth, maxDepth)
}

func (s *passState) setScissorRect(x, y, width, height uint32) {
	gl := s.device.gl
	gl.Enable(glx.ScissorTest)
	gl.Scissor(int32(x), int32(y), int32(width), int32(height))
}

func (s *passState) draw(vertexCount, instanceCount, firstVertex uint32) {
	gl := s.device.gl
	mode := s.pipeline.glMode
	if instanceCount > 1 {
		gl.DrawArraysInstanced(mode, int32(firstVertex), int32(vertexCount), int32(instanceCount))
	} else {
		gl.DrawArrays(mode, int32(firstVertex), int32(vertexCount))
	}
	s.device.stats.drawCalls.Add(1)
}

func (s *passState) drawIndexed(indexCount, instanceCount, firstIndex uint32) {
	gl := s.device.gl
	mode := s.pipeline.glMode
	byteOffset := int(firstIndex * s.indexFmt.byteSize())
	if instanceCount > 1 {
		gl.DrawElementsInstanced(mode, int32(indexCount), s.indexFmt.glType(), byteOffset, int32(instanceCount))
	} else {
		gl.DrawElements(mode, int32(indexCount), s.indexFmt.glType(), byteOffset)
	}
	s.device.stats.drawCalls.Add(1)
}

// end restores neutral state so later uploads and passes do not capture
// this pass's bindings.
func (s *passState) end() {
	gl := s.device.gl
	gl.BindVertexArray(0)
	gl.UseProgram(0)
	gl.Disable(glx.ScissorTest)
}

// CommandEncoder opens render passes that execute immediately against the
// GL context. One pass may be open at a time; Finish closes the encoder.
type CommandEncoder struct {
	device   *Device
	pass     *RenderPassEncoder
	finished bool
}

// CreateCommandEncoder returns an immediate-mode encoder.
func (d *Device) CreateCommandEncoder() *CommandEncoder {
	d.stats.commandEncoders.Add(1)
	return &CommandEncoder{device: d}
}

// BeginRenderPass binds the pass target, clears it if requested and
// returns an encoder whose calls execute immediately.
func (e *CommandEncoder) BeginRenderPass(desc *RenderPassDescriptor) (*RenderPassEncoder, error) {
	if e.finished {
		return nil, ErrEncoderFinished
	}
	if e.pass != nil && !e.pass.ended {
		return nil, ErrPassActive
	}
	state := &passState{device: e.device}
	state.begin(desc)
	pass := &RenderPassEncoder{encoder: e, state: state}
	e.pass = pass
	return pass, nil
}

// BeginRenderPassWithView is shorthand for a pass that clears a texture
// view to a color.
func (e *CommandEncoder) BeginRenderPassWithView(view *TextureView, clear gputypes.Color) (*RenderPassEncoder, error) {
	return e.BeginRenderPass(&RenderPassDescriptor{
		ColorAttachment: RenderPassColorAttachment{
			View:       view,
			LoadOp:     gputypes.LoadOpClear,
			ClearValue: clear,
		},
	})
}

// Finish closes the encoder. Any open pass must be ended first.
func (e *CommandEncoder) Finish() error {
	if e.finished {
		return ErrEncoderFinished
	}
	if e.pass != nil && !e.pass.ended {
		return ErrPassActive
	}
	e.finished = true
	return nil
}

// RenderPassEncoder issues state changes and draws for one pass. All
// methods execute against the GL context at call time and report misuse
// through errors rather than panicking.
type RenderPassEncoder struct {
	encoder *CommandEncoder
	state   *passState
	ended   bool
}

func (p *RenderPassEncoder) checkOpen() error {
	if p.ended {
		return ErrPassEnded
	}
	return nil
}

// SetPipeline makes the pipeline current and applies its program, vertex
// array and fixed-function state.
func (p *RenderPassEncoder) SetPipeline(pipeline *RenderPipeline) error {
	if err := p.checkOpen(); err != nil {
		return err
	}
	if pipeline == nil {
		return ErrNilPipeline
	}
	p.state.setPipeline(pipeline)
	return nil
}

// SetVertexBuffer binds a vertex buffer to a slot, configuring every
// attribute the current pipeline declares for that slot at the given byte
// offset. A pipeline must be set first.
func (p *RenderPassEncoder) SetVertexBuffer(slot uint32, buffer *Buffer, offset uint64) error {
	if err := p.checkOpen(); err != nil {
		return err
	}
	if buffer == nil {
		return ErrNilBuffer
	}
	if p.state.pipeline == nil {
		return ErrNilPipeline
	}
	p.state.setVertexBuffer(slot, buffer, offset)
	return nil
}

// SetIndexBuffer binds the index buffer and records the index format for
// later DrawIndexed calls. The byte offset is folded into DrawIndexed's
// firstIndex rather than applied at bind time.
func (p *RenderPassEncoder) SetIndexBuffer(buffer *Buffer, format IndexFormat, offset uint64) error {
	if err := p.checkOpen(); err != nil {
		return err
	}
	if buffer == nil {
		return ErrNilBuffer
	}
	p.state.setIndexBuffer(buffer, format, offset)
	return nil
}

// SetBindGroup applies a bind group at a group index using the current
// pipeline's program.
func (p *RenderPassEncoder) SetBindGroup(index uint32, group *BindGroup) error {
	if err := p.checkOpen(); err != nil {
		return err
	}
	if group == nil {
		return ErrNilBindGroup
	}
	if p.state.pipeline == nil {
		return ErrNilPipeline
	}
	p.state.setBindGroup(index, group)
	return nil
}

// SetViewport overrides the viewport and depth range set by BeginRenderPass.
func (p *RenderPassEncoder) SetViewport(x, y, width, height, minDepth, maxDepth float32) error {
	if err := p.checkOpen(); err != nil {
		return err
	}
	p.state.setViewport(x, y, width, height, minDepth, maxDepth)
	return nil
}

// SetScissorRect enables scissor testing for the rest of the pass.
func (p *RenderPassEncoder) SetScissorRect(x, y, width, height uint32) error {
	if err := p.checkOpen(); err != nil {
		return err
	}
	p.state.setScissorRect(x, y, width, height)
	return nil
}

// Draw issues a non-indexed draw. Instancing is used only when more than
// one instance is requested.
func (p *RenderPassEncoder) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) error {
	if err := p.checkOpen(); err != nil {
		return err
	}
	if p.state.pipeline == nil {
		return ErrNilPipeline
	}
	_ = firstInstance
	p.state.draw(vertexCount, instanceCount, firstVertex)
	return nil
}

// DrawIndexed issues an indexed draw. The byte offset into the index
// buffer is derived from firstIndex and the format recorded by
// SetIndexBuffer.
func (p *RenderPassEncoder) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) error {
	if err := p.checkOpen(); err != nil {
		return err
	}
	if p.state.pipeline == nil {
		return ErrNilPipeline
	}
	_, _ = baseVertex, firstInstance
	p.state.drawIndexed(indexCount, instanceCount, firstIndex)
	return nil
}

// End closes the pass and restores neutral binding state. End is
// idempotent.
func (p *RenderPassEncoder) End() {
	if p.ended {
		return
	}
	p.ended = true
	p.state.end()
}
