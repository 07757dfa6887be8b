package gles

import "sync/atomic"

// DeviceStats tracks object counts for a single device. Counters for
// objects with a Destroy method (buffers, textures, samplers, shader
// modules, render pipelines, cached framebuffers) hold live counts, so a
// steady-state application should see them level off and a monotonically
// growing one usually means a leaked resource. The remaining counters
// (views, layouts, bind groups, encoders, command buffers) only count
// creations.
//
// Counters are atomic so they can be read from a monitoring goroutine
// while the render thread is working.
type DeviceStats struct {
	buffers          atomic.Int64
	textures         atomic.Int64
	textureViews     atomic.Int64
	samplers         atomic.Int64
	shaderModules    atomic.Int64
	bindGroupLayouts atomic.Int64
	bindGroups       atomic.Int64
	pipelineLayouts  atomic.Int64
	renderPipelines  atomic.Int64
	commandEncoders  atomic.Int64
	commandBuffers   atomic.Int64
	framebuffers     atomic.Int64
	drawCalls        atomic.Int64
}

// StatsSnapshot is a point-in-time copy of a device's object counters.
type StatsSnapshot struct {
	Buffers          int64
	Textures         int64
	TextureViews     int64
	Samplers         int64
	ShaderModules    int64
	BindGroupLayouts int64
	BindGroups       int64
	PipelineLayouts  int64
	RenderPipelines  int64
	CommandEncoders  int64
	CommandBuffers   int64
	Framebuffers     int64
	DrawCalls        int64
}

// Snapshot returns the current counter values.
func (s *DeviceStats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Buffers:          s.buffers.Load(),
		Textures:         s.textures.Load(),
		TextureViews:     s.textureViews.Load(),
		Samplers:         s.samplers.Load(),
		ShaderModules:    s.shaderModules.Load(),
		BindGroupLayouts: s.bindGroupLayouts.Load(),
		BindGroups:       s.bindGroups.Load(),
		PipelineLayouts:  s.pipelineLayouts.Load(),
		RenderPipelines:  s.renderPipelines.Load(),
		CommandEncoders:  s.commandEncoders.Load(),
		CommandBuffers:   s.commandBuffers.Load(),
		Framebuffers:     s.framebuffers.Load(),
		DrawCalls:        s.drawCalls.Load(),
	}
}

// Reset zeroes every counter.
func (s *DeviceStats) Reset() {
	s.buffers.Store(0)
	s.textures.Store(0)
	s.textureViews.Store(0)
	s.samplers.Store(0)
	s.shaderModules.Store(0)
	s.bindGroupLayouts.Store(0)
	s.bindGroups.Store(0)
	s.pipelineLayouts.Store(0)
	s.renderPipelines.Store(0)
	s.commandEncoders.Store(0)
	s.commandBuffers.Store(0)
	s.framebuffers.Store(0)
	s.drawCalls.Store(0)
}
