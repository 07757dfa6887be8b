package gles

// CommandType identifies one recorded pass command.
type CommandType uint8

const (
	CmdBeginPass CommandType = iota
	CmdSetPipeline
	CmdSetVertexBuffer
	CmdSetIndexBuffer
	CmdSetBindGroup
	CmdSetViewport
	CmdSetScissorRect
	CmdDraw
	CmdDrawIndexed
	CmdEndPass
)

var commandTypeNames = [...]string{
	CmdBeginPass:       "BeginPass",
	CmdSetPipeline:     "SetPipeline",
	CmdSetVertexBuffer: "SetVertexBuffer",
	CmdSetIndexBuffer:  "SetIndexBuffer",
	CmdSetBindGroup:    "SetBindGroup",
	CmdSetViewport:     "SetViewport",
	CmdSetScissorRect:  "SetScissorRect",
	CmdDraw:            "Draw",
	CmdDrawIndexed:     "DrawIndexed",
	CmdEndPass:         "EndPass",
}

// String returns the name of a command type.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is one recorded pass operation. Only the fields relevant to its
// type are set; resources are held by pointer so the recording stays valid
// until the resources are destroyed.
type Command struct {
	Type CommandType

	Pass      RenderPassDescriptor
	Pipeline  *RenderPipeline
	Buffer    *Buffer
	Group     *BindGroup
	Slot      uint32
	Offset    uint64
	IndexFmt  IndexFormat
	Viewport  [6]float32
	Scissor   [4]uint32
	Counts    [3]uint32
	BaseVert  int32
	FirstInst uint32
}

// CommandBuffer is a finished recording of one or more render passes.
// It holds no GL state; Queue.Submit replays it against the device, which
// is when surface passes resolve the current viewport size.
type CommandBuffer struct {
	commands []Command
}

// Len returns the number of recorded commands.
func (cb *CommandBuffer) Len() int { return len(cb.commands) }

// replay executes every recorded command through the shared pass state
// machine, in recording order.
func (cb *CommandBuffer) replay(d *Device) {
	var state *passState
	for i := range cb.commands {
		cmd := &cb.commands[i]
		switch cmd.Type {
		case CmdBeginPass:
			state = &passState{device: d}
			state.begin(&cmd.Pass)
		case CmdSetPipeline:
			state.setPipeline(cmd.Pipeline)
		case CmdSetVertexBuffer:
			state.setVertexBuffer(cmd.Slot, cmd.Buffer, cmd.Offset)
		case CmdSetIndexBuffer:
			state.setIndexBuffer(cmd.Buffer, cmd.IndexFmt, cmd.Offset)
		case CmdSetBindGroup:
			state.setBindGroup(cmd.Slot, cmd.Group)
		case CmdSetViewport:
			v := cmd.Viewport
			state.setViewport(v[0], v[1], v[2], v[3], v[4], v[5])
		case CmdSetScissorRect:
			s := cmd.Scissor
			state.setScissorRect(s[0], s[1], s[2], s[3])
		case CmdDraw:
			state.draw(cmd.Counts[0], cmd.Counts[1], cmd.Counts[2])
		case CmdDrawIndexed:
			state.drawIndexed(cmd.Counts[0], cmd.Counts[1], cmd.Counts[2])
		case CmdEndPass:
			state.end()
		}
	}
}

// RecordingEncoder builds a CommandBuffer without touching the GL context.
// The recorded commands run later, inside Queue.Submit, through the same
// execution core the immediate encoder uses.
type RecordingEncoder struct {
	device   *Device
	commands []Command
	pass     *RecordingPassEncoder
	finished bool
}

// CreateRecordingEncoder returns a deferred encoder.
func (d *Device) CreateRecordingEncoder() *RecordingEncoder {
	d.stats.commandEncoders.Add(1)
	return &RecordingEncoder{device: d}
}

// BeginRenderPass records the start of a pass and returns the recorder for
// its commands.
func (e *RecordingEncoder) BeginRenderPass(desc *RenderPassDescriptor) (*RecordingPassEncoder, error) {
	if e.finished {
		return nil, ErrEncoderFinished
	}
	if e.pass != nil && !e.pass.ended {
		return nil, ErrPassActive
	}
	e.commands = append(e.commands, Command{Type: CmdBeginPass, Pass: *desc})
	pass := &RecordingPassEncoder{encoder: e}
	e.pass = pass
	return pass, nil
}

// Finish seals the recording into a command buffer. Any open pass must be
// ended first.
func (e *RecordingEncoder) Finish() (*CommandBuffer, error) {
	if e.finished {
		return nil, ErrEncoderFinished
	}
	if e.pass != nil && !e.pass.ended {
		return nil, ErrPassActive
	}
	e.finished = true
	e.device.stats.commandBuffers.Add(1)
	return &CommandBuffer{commands: e.commands}, nil
}

// RecordingPassEncoder records pass commands into its encoder. The method
// set and validation mirror RenderPassEncoder; only the execution time
// differs.
type RecordingPassEncoder struct {
	encoder  *RecordingEncoder
	pipeline *RenderPipeline
	ended    bool
}

func (p *RecordingPassEncoder) record(cmd Command) {
	p.encoder.commands = append(p.encoder.commands, cmd)
}

func (p *RecordingPassEncoder) checkOpen() error {
	if p.ended {
		return ErrPassEnded
	}
	return nil
}

// SetPipeline records the pipeline switch.
func (p *RecordingPassEncoder) SetPipeline(pipeline *RenderPipeline) error {
	if err := p.checkOpen(); err != nil {
		return err
	}
	if pipeline == nil {
		return ErrNilPipeline
	}
	p.pipeline = pipeline
	p.record(Command{Type: CmdSetPipeline, Pipeline: pipeline})
	return nil
}

// SetVertexBuffer records a vertex buffer binding.
func (p *RecordingPassEncoder) SetVertexBuffer(slot uint32, buffer *Buffer, offset uint64) error {
	if err := p.checkOpen(); err != nil {
		return err
	}
	if buffer == nil {
		return ErrNilBuffer
	}
	if p.pipeline == nil {
		return ErrNilPipeline
	}
	p.record(Command{Type: CmdSetVertexBuffer, Slot: slot, Buffer: buffer, Offset: offset})
	return nil
}

// SetIndexBuffer records an index buffer binding.
func (p *RecordingPassEncoder) SetIndexBuffer(buffer *Buffer, format IndexFormat, offset uint64) error {
	if err := p.checkOpen(); err != nil {
		return err
	}
	if buffer == nil {
		return ErrNilBuffer
	}
	p.record(Command{Type: CmdSetIndexBuffer, Buffer: buffer, IndexFmt: format, Offset: offset})
	return nil
}

// SetBindGroup records a bind group application.
func (p *RecordingPassEncoder) SetBindGroup(index uint32, group *BindGroup) error {
	if err := p.checkOpen(); err != nil {
		return err
	}
	if group == nil {
		return ErrNilBindGroup
	}
	if p.pipeline == nil {
		return ErrNilPipeline
	}
	p.record(Command{Type: CmdSetBindGroup, Slot: index, Group: group})
	return nil
}

// SetViewport records a viewport override.
func (p *RecordingPassEncoder) SetViewport(x, y, width, height, minDepth, maxDepth float32) error {
	if err := p.checkOpen(); err != nil {
		return err
	}
	p.record(Command{Type: CmdSetViewport, Viewport: [6]float32{x, y, width, height, minDepth, maxDepth}})
	return nil
}

// SetScissorRect records a scissor rectangle.
func (p *RecordingPassEncoder) SetScissorRect(x, y, width, height uint32) error {
	if err := p.checkOpen(); err != nil {
		return err
	}
	p.record(Command{Type: CmdSetScissorRect, Scissor: [4]uint32{x, y, width, height}})
	return nil
}

// Draw records a non-indexed draw.
func (p *RecordingPassEncoder) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) error {
	if err := p.checkOpen(); err != nil {
		return err
	}
	if p.pipeline == nil {
		return ErrNilPipeline
	}
	p.record(Command{Type: CmdDraw, Counts: [3]uint32{vertexCount, instanceCount, firstVertex}, FirstInst: firstInstance})
	return nil
}

// DrawIndexed records an indexed draw.
func (p *RecordingPassEncoder) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) error {
	if err := p.checkOpen(); err != nil {
		return err
	}
	if p.pipeline == nil {
		return ErrNilPipeline
	}
	p.record(Command{
		Type:      CmdDrawIndexed,
		Counts:    [3]uint32{indexCount, instanceCount, firstIndex},
		BaseVert:  baseVertex,
		FirstInst: firstInstance,
	})
	return nil
}

// End records the end of the pass. Idempotent.
func (p *RecordingPassEncoder) End() {
	if p.ended {
		return
	}
	p.ended = true
	p.record(Command{Type: CmdEndPass})
}
