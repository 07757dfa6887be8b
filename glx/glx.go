// Package glx defines the immediate-mode graphics context that the gles
// device drives. The interface mirrors the OpenGL ES 3.0 entry points the
// emulation layer needs, with opaque handle types instead of raw GLuints.
//
// Two implementations ship with the module: glx/gl41 adapts a desktop
// OpenGL 4.1 core context via go-gl, and internal/gltest provides a
// recording fake for tests. The zero value of every handle type means
// "no object", matching GL object zero.
package glx

// Handle types. Each wraps the underlying GL object name.
type (
	// Buffer is a GL buffer object name.
	Buffer uint32

	// Texture is a GL texture object name.
	Texture uint32

	// Sampler is a GL sampler object name.
	Sampler uint32

	// Shader is a GL shader object name.
	Shader uint32

	// Program is a GL program object name.
	Program uint32

	// VertexArray is a GL vertex array object name.
	VertexArray uint32

	// Framebuffer is a GL framebuffer object name.
	Framebuffer uint32

	// Renderbuffer is a GL renderbuffer object name.
	Renderbuffer uint32

	// UniformLocation is a uniform location within a linked program.
	// Unlike object names, -1 (not 0) means "not found"; use the Valid
	// method rather than comparing to zero.
	UniformLocation int32
)

// Valid reports whether the location refers to an active uniform.
func (l UniformLocation) Valid() bool { return l >= 0 }

// Context is the immediate-mode GL surface the device renders through.
//
// Context is NOT safe for concurrent use. All calls must come from the
// thread that owns the underlying GL context; the caller is responsible
// for runtime.LockOSThread discipline where the platform requires it.
type Context interface {
	// Buffers.
	CreateBuffer() Buffer
	BindBuffer(target uint32, buffer Buffer)
	BindBufferRange(target uint32, index uint32, buffer Buffer, offset, size int)
	BufferData(target uint32, size int, data []byte, usage uint32)
	BufferSubData(target uint32, offset int, data []byte)
	DeleteBuffer(buffer Buffer)

	// Textures.
	CreateTexture() Texture
	BindTexture(target uint32, texture Texture)
	ActiveTexture(unit uint32)
	TexStorage2D(target uint32, levels int32, internalFormat uint32, width, height int32)
	TexStorage3D(target uint32, levels int32, internalFormat uint32, width, height, depth int32)
	TexSubImage2D(target uint32, level, x, y, width, height int32, format, xtype uint32, data []byte)
	TexSubImage3D(target uint32, level, x, y, z, width, height, depth int32, format, xtype uint32, data []byte)
	TexParameteri(target, pname uint32, param int32)
	PixelStorei(pname uint32, param int32)
	DeleteTexture(texture Texture)

	// Samplers.
	CreateSampler() Sampler
	BindSampler(unit uint32, sampler Sampler)
	SamplerParameteri(sampler Sampler, pname uint32, param int32)
	SamplerParameterf(sampler Sampler, pname uint32, param float32)
	DeleteSampler(sampler Sampler)

	// Shaders and programs.
	CreateShader(xtype uint32) Shader
	ShaderSource(shader Shader, source string)
	CompileShader(shader Shader)
	GetShaderCompileStatus(shader Shader) bool
	GetShaderInfoLog(shader Shader) string
	DeleteShader(shader Shader)
	CreateProgram() Program
	AttachShader(program Program, shader Shader)
	LinkProgram(program Program)
	GetProgramLinkStatus(program Program) bool
	GetProgramInfoLog(program Program) string
	UseProgram(program Program)
	DeleteProgram(program Program)
	GetUniformLocation(program Program, name string) UniformLocation
	Uniform1i(location UniformLocation, v int32)

	// Uniform block reflection.
	GetActiveUniformBlockCount(program Program) int
	GetActiveUniformBlockName(program Program, index uint32) string
	GetActiveUniformBlockUniformIndices(program Program, index uint32) []uint32
	GetActiveUniformName(program Program, index uint32) string
	UniformBlockBinding(program Program, index, binding uint32)

	// Vertex arrays.
	CreateVertexArray() VertexArray
	BindVertexArray(array VertexArray)
	DeleteVertexArray(array VertexArray)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride, offset int32)
	VertexAttribDivisor(index, divisor uint32)

	// Framebuffers.
	CreateFramebuffer() Framebuffer
	BindFramebuffer(target uint32, framebuffer Framebuffer)
	FramebufferTexture2D(target, attachment, texTarget uint32, texture Texture, level int32)
	FramebufferRenderbuffer(target, attachment, rbTarget uint32, renderbuffer Renderbuffer)
	CheckFramebufferStatus(target uint32) uint32
	DeleteFramebuffer(framebuffer Framebuffer)
	CreateRenderbuffer() Renderbuffer
	BindRenderbuffer(target uint32, renderbuffer Renderbuffer)
	RenderbufferStorage(target, internalFormat uint32, width, height int32)
	DeleteRenderbuffer(renderbuffer Renderbuffer)

	// Rasterizer and per-pass state.
	Viewport(x, y, width, height int32)
	DepthRange(near, far float32)
	Scissor(x, y, width, height int32)
	Enable(capability uint32)
	Disable(capability uint32)
	ClearColor(r, g, b, a float32)
	ClearDepth(depth float32)
	Clear(mask uint32)
	DepthMask(enabled bool)
	DepthFunc(fn uint32)
	BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32)
	BlendEquationSeparate(modeRGB, modeAlpha uint32)
	CullFace(mode uint32)
	FrontFace(mode uint32)

	// Draws.
	DrawArrays(mode uint32, first, count int32)
	DrawArraysInstanced(mode uint32, first, count, instanceCount int32)
	DrawElements(mode uint32, count int32, xtype uint32, offset int)
	DrawElementsInstanced(mode uint32, count int32, xtype uint32, offset int, instanceCount int32)

	// Submission and readback.
	Flush()
	ReadPixels(x, y, width, height int32, format, xtype uint32, data []byte)
}
