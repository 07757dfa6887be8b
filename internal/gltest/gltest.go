// Package gltest provides a recording glx.Context for tests.
//
// The fake hands out sequential handles, records every call as a formatted
// string, and lets tests script the few query paths the emulation layer
// branches on (compile/link status, framebuffer completeness, uniform
// reflection data). Nothing is rasterized; ReadPixels reports the last
// clear color so clear-path tests can observe it.
package gltest

import (
	"fmt"
	"strings"

	"github.com/gogpu/gles/glx"
)

// UniformBlock describes one active uniform block reported by the fake
// program reflection queries.
type UniformBlock struct {
	// Name is the block name as the compiler would emit it.
	Name string

	// UniformNames are the names of the block's member uniforms, in
	// active-uniform-index order.
	UniformNames []string
}

// Context is a recording implementation of glx.Context.
//
// The zero value is ready to use: handles start at 1, shaders compile,
// programs link, and framebuffers are complete. Set the exported fields
// before the call under test to exercise failure paths.
type Context struct {
	calls      []string
	nextHandle uint32

	// FailCompile makes every CompileShader report failure.
	FailCompile bool

	// ShaderLog is returned by GetShaderInfoLog.
	ShaderLog string

	// FailLink makes every LinkProgram report failure.
	FailLink bool

	// ProgramLog is returned by GetProgramInfoLog.
	ProgramLog string

	// Status is returned by CheckFramebufferStatus. Zero means complete.
	Status uint32

	// Blocks is the uniform block reflection data reported for any
	// program. Block index order follows slice order; active uniform
	// indices are assigned globally in listing order.
	Blocks []UniformBlock

	// Locations maps uniform names to locations for GetUniformLocation.
	// Names not present resolve to -1.
	Locations map[string]int32

	clearColor [4]float32
}

var _ glx.Context = (*Context)(nil)

// New returns an empty recording context.
func New() *Context { return &Context{} }

func (c *Context) record(name string, args ...any) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprintf("%v", a)
	}
	c.calls = append(c.calls, name+"("+strings.Join(parts, ", ")+")")
}

func (c *Context) handle() uint32 {
	c.nextHandle++
	return c.nextHandle
}

// Calls returns a copy of every recorded call in order.
func (c *Context) Calls() []string {
	out := make([]string, len(c.calls))
	copy(out, c.calls)
	return out
}

// Reset discards the recorded calls but keeps scripted behavior.
func (c *Context) Reset() { c.calls = nil }

// Count returns how many recorded calls have the given function name.
func (c *Context) Count(name string) int {
	n := 0
	for _, call := range c.calls {
		if strings.HasPrefix(call, name+"(") {
			n++
		}
	}
	return n
}

// CallsOf returns the recorded calls with the given function name.
func (c *Context) CallsOf(name string) []string {
	var out []string
	for _, call := range c.calls {
		if strings.HasPrefix(call, name+"(") {
			out = append(out, call)
		}
	}
	return out
}

// Index returns the position of the first recorded call exactly equal to
// call, or -1.
func (c *Context) Index(call string) int {
	for i, got := range c.calls {
		if got == call {
			return i
		}
	}
	return -1
}

// IndexAfter returns the position of the first call equal to call at or
// after position from, or -1.
func (c *Context) IndexAfter(from int, call string) int {
	if from < 0 {
		return -1
	}
	for i := from; i < len(c.calls); i++ {
		if c.calls[i] == call {
			return i
		}
	}
	return -1
}

func (c *Context) CreateBuffer() glx.Buffer {
	b := glx.Buffer(c.handle())
	c.record("CreateBuffer")
	return b
}

func (c *Context) BindBuffer(target uint32, buffer glx.Buffer) {
	c.record("BindBuffer", target, buffer)
}

func (c *Context) BindBufferRange(target, index uint32, buffer glx.Buffer, offset, size int) {
	c.record("BindBufferRange", target, index, buffer, offset, size)
}

func (c *Context) BufferData(target uint32, size int, data []byte, usage uint32) {
	c.record("BufferData", target, size, usage)
}

func (c *Context) BufferSubData(target uint32, offset int, data []byte) {
	c.record("BufferSubData", target, offset, len(data))
}

func (c *Context) DeleteBuffer(buffer glx.Buffer) {
	c.record("DeleteBuffer", buffer)
}

func (c *Context) CreateTexture() glx.Texture {
	t := glx.Texture(c.handle())
	c.record("CreateTexture")
	return t
}

func (c *Context) BindTexture(target uint32, texture glx.Texture) {
	c.record("BindTexture", target, texture)
}

func (c *Context) ActiveTexture(unit uint32) {
	c.record("ActiveTexture", unit)
}

func (c *Context) TexStorage2D(target uint32, levels int32, internalFormat uint32, width, height int32) {
	c.record("TexStorage2D", target, levels, internalFormat, width, height)
}

func (c *Context) TexStorage3D(target uint32, levels int32, internalFormat uint32, width, height, depth int32) {
	c.record("TexStorage3D", target, levels, internalFormat, width, height, depth)
}

func (c *Context) TexSubImage2D(target uint32, level, x, y, width, height int32, format, xtype uint32, data []byte) {
	c.record("TexSubImage2D", target, level, x, y, width, height, format, xtype, len(data))
}

func (c *Context) TexSubImage3D(target uint32, level, x, y, z, width, height, depth int32, format, xtype uint32, data []byte) {
	c.record("TexSubImage3D", target, level, x, y, z, width, height, depth, format, xtype, len(data))
}

func (c *Context) TexParameteri(target, pname uint32, param int32) {
	c.record("TexParameteri", target, pname, param)
}

func (c *Context) PixelStorei(pname uint32, param int32) {
	c.record("PixelStorei", pname, param)
}

func (c *Context) DeleteTexture(texture glx.Texture) {
	c.record("DeleteTexture", texture)
}

func (c *Context) CreateSampler() glx.Sampler {
	s := glx.Sampler(c.handle())
	c.record("CreateSampler")
	return s
}

func (c *Context) BindSampler(unit uint32, sampler glx.Sampler) {
	c.record("BindSampler", unit, sampler)
}

func (c *Context) SamplerParameteri(sampler glx.Sampler, pname uint32, param int32) {
	c.record("SamplerParameteri", sampler, pname, param)
}

func (c *Context) SamplerParameterf(sampler glx.Sampler, pname uint32, param float32) {
	c.record("SamplerParameterf", sampler, pname, param)
}

func (c *Context) DeleteSampler(sampler glx.Sampler) {
	c.record("DeleteSampler", sampler)
}

func (c *Context) CreateShader(xtype uint32) glx.Shader {
	s := glx.Shader(c.handle())
	c.record("CreateShader", xtype)
	return s
}

func (c *Context) ShaderSource(shader glx.Shader, source string) {
	c.record("ShaderSource", shader, len(source))
}

func (c *Context) CompileShader(shader glx.Shader) {
	c.record("CompileShader", shader)
}

func (c *Context) GetShaderCompileStatus(shader glx.Shader) bool {
	return !c.FailCompile
}

func (c *Context) GetShaderInfoLog(shader glx.Shader) string {
	return c.ShaderLog
}

func (c *Context) DeleteShader(shader glx.Shader) {
	c.record("DeleteShader", shader)
}

func (c *Context) CreateProgram() glx.Program {
	p := glx.Program(c.handle())
	c.record("CreateProgram")
	return p
}

func (c *Context) AttachShader(program glx.Program, shader glx.Shader) {
	c.record("AttachShader", program, shader)
}

func (c *Context) LinkProgram(program glx.Program) {
	c.record("LinkProgram", program)
}

func (c *Context) GetProgramLinkStatus(program glx.Program) bool {
	return !c.FailLink
}

func (c *Context) GetProgramInfoLog(program glx.Program) string {
	return c.ProgramLog
}

func (c *Context) UseProgram(program glx.Program) {
	c.record("UseProgram", program)
}

func (c *Context) DeleteProgram(program glx.Program) {
	c.record("DeleteProgram", program)
}

func (c *Context) GetUniformLocation(program glx.Program, name string) glx.UniformLocation {
	c.record("GetUniformLocation", program, name)
	if loc, ok := c.Locations[name]; ok {
		return glx.UniformLocation(loc)
	}
	return -1
}

func (c *Context) Uniform1i(location glx.UniformLocation, v int32) {
	c.record("Uniform1i", location, v)
}

func (c *Context) GetActiveUniformBlockCount(program glx.Program) int {
	return len(c.Blocks)
}

func (c *Context) GetActiveUniformBlockName(program glx.Program, index uint32) string {
	if int(index) >= len(c.Blocks) {
		return ""
	}
	return c.Blocks[index].Name
}

func (c *Context) GetActiveUniformBlockUniformIndices(program glx.Program, index uint32) []uint32 {
	if int(index) >= len(c.Blocks) {
		return nil
	}
	base := uint32(0)
	for i := 0; i < int(index); i++ {
		base += uint32(len(c.Blocks[i].UniformNames))
	}
	out := make([]uint32, len(c.Blocks[index].UniformNames))
	for i := range out {
		out[i] = base + uint32(i)
	}
	return out
}

func (c *Context) GetActiveUniformName(program glx.Program, index uint32) string {
	for _, b := range c.Blocks {
		if int(index) < len(b.UniformNames) {
			return b.UniformNames[index]
		}
		index -= uint32(len(b.UniformNames))
	}
	return ""
}

func (c *Context) UniformBlockBinding(program glx.Program, index, binding uint32) {
	c.record("UniformBlockBinding", program, index, binding)
}

func (c *Context) CreateVertexArray() glx.VertexArray {
	a := glx.VertexArray(c.handle())
	c.record("CreateVertexArray")
	return a
}

func (c *Context) BindVertexArray(array glx.VertexArray) {
	c.record("BindVertexArray", array)
}

func (c *Context) DeleteVertexArray(array glx.VertexArray) {
	c.record("DeleteVertexArray", array)
}

func (c *Context) EnableVertexAttribArray(index uint32) {
	c.record("EnableVertexAttribArray", index)
}

func (c *Context) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride, offset int32) {
	c.record("VertexAttribPointer", index, size, xtype, normalized, stride, offset)
}

func (c *Context) VertexAttribDivisor(index, divisor uint32) {
	c.record("VertexAttribDivisor", index, divisor)
}

func (c *Context) CreateFramebuffer() glx.Framebuffer {
	f := glx.Framebuffer(c.handle())
	c.record("CreateFramebuffer")
	return f
}

func (c *Context) BindFramebuffer(target uint32, framebuffer glx.Framebuffer) {
	c.record("BindFramebuffer", target, framebuffer)
}

func (c *Context) FramebufferTexture2D(target, attachment, texTarget uint32, texture glx.Texture, level int32) {
	c.record("FramebufferTexture2D", target, attachment, texTarget, texture, level)
}

func (c *Context) FramebufferRenderbuffer(target, attachment, rbTarget uint32, renderbuffer glx.Renderbuffer) {
	c.record("FramebufferRenderbuffer", target, attachment, rbTarget, renderbuffer)
}

func (c *Context) CheckFramebufferStatus(target uint32) uint32 {
	if c.Status == 0 {
		return glx.FramebufferComplete
	}
	return c.Status
}

func (c *Context) DeleteFramebuffer(framebuffer glx.Framebuffer) {
	c.record("DeleteFramebuffer", framebuffer)
}

func (c *Context) CreateRenderbuffer() glx.Renderbuffer {
	r := glx.Renderbuffer(c.handle())
	c.record("CreateRenderbuffer")
	return r
}

func (c *Context) BindRenderbuffer(target uint32, renderbuffer glx.Renderbuffer) {
	c.record("BindRenderbuffer", target, renderbuffer)
}

func (c *Context) RenderbufferStorage(target, internalFormat uint32, width, height int32) {
	c.record("RenderbufferStorage", target, internalFormat, width, height)
}

func (c *Context) DeleteRenderbuffer(renderbuffer glx.Renderbuffer) {
	c.record("DeleteRenderbuffer", renderbuffer)
}

func (c *Context) Viewport(x, y, width, height int32) {
	c.record("Viewport", x, y, width, height)
}

func (c *Context) DepthRange(near, far float32) {
	c.record("DepthRange", near, far)
}

func (c *Context) Scissor(x, y, width, height int32) {
	c.record("Scissor", x, y, width, height)
}

func (c *Context) Enable(capability uint32) {
	c.record("Enable", capability)
}

func (c *Context) Disable(capability uint32) {
	c.record("Disable", capability)
}

func (c *Context) ClearColor(r, g, b, a float32) {
	c.clearColor = [4]float32{r, g, b, a}
	c.record("ClearColor", r, g, b, a)
}

func (c *Context) ClearDepth(depth float32) {
	c.record("ClearDepth", depth)
}

func (c *Context) Clear(mask uint32) {
	c.record("Clear", mask)
}

func (c *Context) DepthMask(enabled bool) {
	c.record("DepthMask", enabled)
}

func (c *Context) DepthFunc(fn uint32) {
	c.record("DepthFunc", fn)
}

func (c *Context) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32) {
	c.record("BlendFuncSeparate", srcRGB, dstRGB, srcAlpha, dstAlpha)
}

func (c *Context) BlendEquationSeparate(modeRGB, modeAlpha uint32) {
	c.record("BlendEquationSeparate", modeRGB, modeAlpha)
}

func (c *Context) CullFace(mode uint32) {
	c.record("CullFace", mode)
}

func (c *Context) FrontFace(mode uint32) {
	c.record("FrontFace", mode)
}

func (c *Context) DrawArrays(mode uint32, first, count int32) {
	c.record("DrawArrays", mode, first, count)
}

func (c *Context) DrawArraysInstanced(mode uint32, first, count, instanceCount int32) {
	c.record("DrawArraysInstanced", mode, first, count, instanceCount)
}

func (c *Context) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	c.record("DrawElements", mode, count, xtype, offset)
}

func (c *Context) DrawElementsInstanced(mode uint32, count int32, xtype uint32, offset int, instanceCount int32) {
	c.record("DrawElementsInstanced", mode, count, xtype, offset, instanceCount)
}

func (c *Context) Flush() {
	c.record("Flush")
}

// ReadPixels fills data with the last clear color converted to RGBA8.
// Draw results are not simulated.
func (c *Context) ReadPixels(x, y, width, height int32, format, xtype uint32, data []byte) {
	c.record("ReadPixels", x, y, width, height, format, xtype)
	px := [4]byte{
		byte(c.clearColor[0] * 255),
		byte(c.clearColor[1] * 255),
		byte(c.clearColor[2] * 255),
		byte(c.clearColor[3] * 255),
	}
	for i := 0; i+3 < len(data); i += 4 {
		copy(data[i:i+4], px[:])
	}
}
