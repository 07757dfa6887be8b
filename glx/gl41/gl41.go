// Package gl41 adapts a desktop OpenGL 4.1 core context to the glx.Context
// interface. Desktop 4.1 carries the ARB_ES2_compatibility entry points and
// accepts ES 3.00 shader sources on all platforms the module targets, which
// makes it the portable desktop stand-in for a true GLES 3.0 context.
//
// The caller owns context creation and thread affinity: gl.Init must have
// been called on the context thread before New, and every glx call must stay
// on that thread.
package gl41

import (
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/gogpu/gles/glx"
)

// Context implements glx.Context over go-gl function pointers.
type Context struct{}

// New returns a glx.Context bound to the current GL context.
func New() *Context { return &Context{} }

var _ glx.Context = (*Context)(nil)

func (*Context) CreateBuffer() glx.Buffer {
	var b uint32
	gl.GenBuffers(1, &b)
	return glx.Buffer(b)
}

func (*Context) BindBuffer(target uint32, buffer glx.Buffer) {
	gl.BindBuffer(target, uint32(buffer))
}

func (*Context) BindBufferRange(target, index uint32, buffer glx.Buffer, offset, size int) {
	gl.BindBufferRange(target, index, uint32(buffer), offset, size)
}

func (*Context) BufferData(target uint32, size int, data []byte, usage uint32) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = gl.Ptr(data)
	}
	gl.BufferData(target, size, ptr, usage)
}

func (*Context) BufferSubData(target uint32, offset int, data []byte) {
	gl.BufferSubData(target, offset, len(data), gl.Ptr(data))
}

func (*Context) DeleteBuffer(buffer glx.Buffer) {
	b := uint32(buffer)
	gl.DeleteBuffers(1, &b)
}

func (*Context) CreateTexture() glx.Texture {
	var t uint32
	gl.GenTextures(1, &t)
	return glx.Texture(t)
}

func (*Context) BindTexture(target uint32, texture glx.Texture) {
	gl.BindTexture(target, uint32(texture))
}

func (*Context) ActiveTexture(unit uint32) { gl.ActiveTexture(unit) }

func (*Context) TexStorage2D(target uint32, levels int32, internalFormat uint32, width, height int32) {
	gl.TexStorage2D(target, levels, internalFormat, width, height)
}

func (*Context) TexStorage3D(target uint32, levels int32, internalFormat uint32, width, height, depth int32) {
	gl.TexStorage3D(target, levels, internalFormat, width, height, depth)
}

func (*Context) TexSubImage2D(target uint32, level, x, y, width, height int32, format, xtype uint32, data []byte) {
	gl.TexSubImage2D(target, level, x, y, width, height, format, xtype, gl.Ptr(data))
}

func (*Context) TexSubImage3D(target uint32, level, x, y, z, width, height, depth int32, format, xtype uint32, data []byte) {
	gl.TexSubImage3D(target, level, x, y, z, width, height, depth, format, xtype, gl.Ptr(data))
}

func (*Context) TexParameteri(target, pname uint32, param int32) {
	gl.TexParameteri(target, pname, param)
}

func (*Context) PixelStorei(pname uint32, param int32) { gl.PixelStorei(pname, param) }

func (*Context) DeleteTexture(texture glx.Texture) {
	t := uint32(texture)
	gl.DeleteTextures(1, &t)
}

func (*Context) CreateSampler() glx.Sampler {
	var s uint32
	gl.GenSamplers(1, &s)
	return glx.Sampler(s)
}

func (*Context) BindSampler(unit uint32, sampler glx.Sampler) {
	gl.BindSampler(unit, uint32(sampler))
}

func (*Context) SamplerParameteri(sampler glx.Sampler, pname uint32, param int32) {
	gl.SamplerParameteri(uint32(sampler), pname, param)
}

func (*Context) SamplerParameterf(sampler glx.Sampler, pname uint32, param float32) {
	gl.SamplerParameterf(uint32(sampler), pname, param)
}

func (*Context) DeleteSampler(sampler glx.Sampler) {
	s := uint32(sampler)
	gl.DeleteSamplers(1, &s)
}

func (*Context) CreateShader(xtype uint32) glx.Shader {
	return glx.Shader(gl.CreateShader(xtype))
}

func (*Context) ShaderSource(shader glx.Shader, source string) {
	csources, free := gl.Strs(source + "\x00")
	defer free()
	gl.ShaderSource(uint32(shader), 1, csources, nil)
}

func (*Context) CompileShader(shader glx.Shader) { gl.CompileShader(uint32(shader)) }

func (*Context) GetShaderCompileStatus(shader glx.Shader) bool {
	var status int32
	gl.GetShaderiv(uint32(shader), gl.COMPILE_STATUS, &status)
	return status == gl.TRUE
}

func (*Context) GetShaderInfoLog(shader glx.Shader) string {
	var length int32
	gl.GetShaderiv(uint32(shader), gl.INFO_LOG_LENGTH, &length)
	if length <= 0 {
		return ""
	}
	log := make([]byte, length+1)
	gl.GetShaderInfoLog(uint32(shader), length, nil, &log[0])
	return strings.TrimRight(string(log[:length]), "\x00")
}

func (*Context) DeleteShader(shader glx.Shader) { gl.DeleteShader(uint32(shader)) }

func (*Context) CreateProgram() glx.Program { return glx.Program(gl.CreateProgram()) }

func (*Context) AttachShader(program glx.Program, shader glx.Shader) {
	gl.AttachShader(uint32(program), uint32(shader))
}

func (*Context) LinkProgram(program glx.Program) { gl.LinkProgram(uint32(program)) }

func (*Context) GetProgramLinkStatus(program glx.Program) bool {
	var status int32
	gl.GetProgramiv(uint32(program), gl.LINK_STATUS, &status)
	return status == gl.TRUE
}

func (*Context) GetProgramInfoLog(program glx.Program) string {
	var length int32
	gl.GetProgramiv(uint32(program), gl.INFO_LOG_LENGTH, &length)
	if length <= 0 {
		return ""
	}
	log := make([]byte, length+1)
	gl.GetProgramInfoLog(uint32(program), length, nil, &log[0])
	return strings.TrimRight(string(log[:length]), "\x00")
}

func (*Context) UseProgram(program glx.Program) { gl.UseProgram(uint32(program)) }

func (*Context) DeleteProgram(program glx.Program) { gl.DeleteProgram(uint32(program)) }

func (*Context) GetUniformLocation(program glx.Program, name string) glx.UniformLocation {
	return glx.UniformLocation(gl.GetUniformLocation(uint32(program), gl.Str(name+"\x00")))
}

func (*Context) Uniform1i(location glx.UniformLocation, v int32) {
	gl.Uniform1i(int32(location), v)
}

func (*Context) GetActiveUniformBlockCount(program glx.Program) int {
	var n int32
	gl.GetProgramiv(uint32(program), gl.ACTIVE_UNIFORM_BLOCKS, &n)
	return int(n)
}

func (*Context) GetActiveUniformBlockName(program glx.Program, index uint32) string {
	var length int32
	gl.GetActiveUniformBlockiv(uint32(program), index, gl.UNIFORM_BLOCK_NAME_LENGTH, &length)
	if length <= 0 {
		return ""
	}
	name := make([]byte, length+1)
	gl.GetActiveUniformBlockName(uint32(program), index, length, nil, &name[0])
	return strings.TrimRight(string(name[:length]), "\x00")
}

func (*Context) GetActiveUniformBlockUniformIndices(program glx.Program, index uint32) []uint32 {
	var count int32
	gl.GetActiveUniformBlockiv(uint32(program), index, gl.UNIFORM_BLOCK_ACTIVE_UNIFORMS, &count)
	if count <= 0 {
		return nil
	}
	indices := make([]int32, count)
	gl.GetActiveUniformBlockiv(uint32(program), index, gl.UNIFORM_BLOCK_ACTIVE_UNIFORM_INDICES, &indices[0])
	out := make([]uint32, count)
	for i, v := range indices {
		out[i] = uint32(v)
	}
	return out
}

func (*Context) GetActiveUniformName(program glx.Program, index uint32) string {
	var buf [256]byte
	var length int32
	var size int32
	var xtype uint32
	gl.GetActiveUniform(uint32(program), index, int32(len(buf)-1), &length, &size, &xtype, &buf[0])
	return strings.TrimRight(string(buf[:length]), "\x00")
}

func (*Context) UniformBlockBinding(program glx.Program, index, binding uint32) {
	gl.UniformBlockBinding(uint32(program), index, binding)
}

func (*Context) CreateVertexArray() glx.VertexArray {
	var a uint32
	gl.GenVertexArrays(1, &a)
	return glx.VertexArray(a)
}

func (*Context) BindVertexArray(array glx.VertexArray) {
	gl.BindVertexArray(uint32(array))
}

func (*Context) DeleteVertexArray(array glx.VertexArray) {
	a := uint32(array)
	gl.DeleteVertexArrays(1, &a)
}

func (*Context) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (*Context) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride, offset int32) {
	gl.VertexAttribPointerWithOffset(index, size, xtype, normalized, stride, uintptr(offset))
}

func (*Context) VertexAttribDivisor(index, divisor uint32) {
	gl.VertexAttribDivisor(index, divisor)
}

func (*Context) CreateFramebuffer() glx.Framebuffer {
	var f uint32
	gl.GenFramebuffers(1, &f)
	return glx.Framebuffer(f)
}

func (*Context) BindFramebuffer(target uint32, framebuffer glx.Framebuffer) {
	gl.BindFramebuffer(target, uint32(framebuffer))
}

func (*Context) FramebufferTexture2D(target, attachment, texTarget uint32, texture glx.Texture, level int32) {
	gl.FramebufferTexture2D(target, attachment, texTarget, uint32(texture), level)
}

func (*Context) FramebufferRenderbuffer(target, attachment, rbTarget uint32, renderbuffer glx.Renderbuffer) {
	gl.FramebufferRenderbuffer(target, attachment, rbTarget, uint32(renderbuffer))
}

func (*Context) CheckFramebufferStatus(target uint32) uint32 {
	return gl.CheckFramebufferStatus(target)
}

func (*Context) DeleteFramebuffer(framebuffer glx.Framebuffer) {
	f := uint32(framebuffer)
	gl.DeleteFramebuffers(1, &f)
}

func (*Context) CreateRenderbuffer() glx.Renderbuffer {
	var r uint32
	gl.GenRenderbuffers(1, &r)
	return glx.Renderbuffer(r)
}

func (*Context) BindRenderbuffer(target uint32, renderbuffer glx.Renderbuffer) {
	gl.BindRenderbuffer(target, uint32(renderbuffer))
}

func (*Context) RenderbufferStorage(target, internalFormat uint32, width, height int32) {
	gl.RenderbufferStorage(target, internalFormat, width, height)
}

func (*Context) DeleteRenderbuffer(renderbuffer glx.Renderbuffer) {
	r := uint32(renderbuffer)
	gl.DeleteRenderbuffers(1, &r)
}

func (*Context) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (*Context) DepthRange(near, far float32) { gl.DepthRangef(near, far) }

func (*Context) Scissor(x, y, width, height int32) { gl.Scissor(x, y, width, height) }

func (*Context) Enable(capability uint32)  { gl.Enable(capability) }
func (*Context) Disable(capability uint32) { gl.Disable(capability) }

func (*Context) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }
func (*Context) ClearDepth(depth float32)      { gl.ClearDepthf(depth) }
func (*Context) Clear(mask uint32)             { gl.Clear(mask) }

func (*Context) DepthMask(enabled bool) { gl.DepthMask(enabled) }
func (*Context) DepthFunc(fn uint32)    { gl.DepthFunc(fn) }

func (*Context) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32) {
	gl.BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha)
}

func (*Context) BlendEquationSeparate(modeRGB, modeAlpha uint32) {
	gl.BlendEquationSeparate(modeRGB, modeAlpha)
}

func (*Context) CullFace(mode uint32)  { gl.CullFace(mode) }
func (*Context) FrontFace(mode uint32) { gl.FrontFace(mode) }

func (*Context) DrawArrays(mode uint32, first, count int32) {
	gl.DrawArrays(mode, first, count)
}

func (*Context) DrawArraysInstanced(mode uint32, first, count, instanceCount int32) {
	gl.DrawArraysInstanced(mode, first, count, instanceCount)
}

func (*Context) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	gl.DrawElementsWithOffset(mode, count, xtype, uintptr(offset))
}

func (*Context) DrawElementsInstanced(mode uint32, count int32, xtype uint32, offset int, instanceCount int32) {
	gl.DrawElementsInstanced(mode, count, xtype, gl.PtrOffset(offset), instanceCount)
}

func (*Context) Flush() { gl.Flush() }

func (*Context) ReadPixels(x, y, width, height int32, format, xtype uint32, data []byte) {
	gl.ReadPixels(x, y, width, height, format, xtype, gl.Ptr(data))
}
