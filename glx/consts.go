package glx

// OpenGL ES 3.0 enum values used across the module. Values match the
// Khronos registry so adapters can pass them through untranslated.
const (
	// Buffer targets and usage hints.
	ArrayBuffer        = 0x8892
	ElementArrayBuffer = 0x8893
	UniformBuffer      = 0x8A11
	StaticDraw         = 0x88E4
	DynamicDraw        = 0x88E8

	// Texture targets and units.
	Texture2D      = 0x0DE1
	Texture2DArray = 0x8C1A
	Texture3D      = 0x806F
	TextureCubeMap = 0x8513
	Texture0       = 0x84C0

	// Texture and sampler parameters.
	TextureMinFilter     = 0x2801
	TextureMagFilter     = 0x2800
	TextureWrapS         = 0x2802
	TextureWrapT         = 0x2803
	TextureWrapR         = 0x8072
	TextureMinLOD        = 0x813A
	TextureMaxLOD        = 0x813B
	TextureCompareMode   = 0x884C
	TextureCompareFunc   = 0x884D
	TextureMaxAnisotropy = 0x84FE

	// Filter values.
	Nearest              = 0x2600
	Linear               = 0x2601
	NearestMipmapNearest = 0x2700
	LinearMipmapNearest  = 0x2701
	NearestMipmapLinear  = 0x2702
	LinearMipmapLinear   = 0x2703

	// Wrap values.
	Repeat         = 0x2901
	ClampToEdge    = 0x812F
	MirroredRepeat = 0x8370

	// Compare modes and functions.
	None                = 0
	CompareRefToTexture = 0x884E
	Never               = 0x0200
	Less                = 0x0201
	Equal               = 0x0202
	LEqual              = 0x0203
	Greater             = 0x0204
	NotEqual            = 0x0205
	GEqual              = 0x0206
	Always              = 0x0207

	// Sized internal formats.
	R8               = 0x8229
	RG8              = 0x822B
	RGBA8            = 0x8058
	SRGB8Alpha8      = 0x8C43
	RGBA16F          = 0x881A
	RGBA32F          = 0x8814
	DepthComponent24 = 0x81A6
	Depth24Stencil8  = 0x88F0

	// Pixel transfer formats and types.
	Red            = 0x1903
	RG             = 0x8227
	RGBA           = 0x1908
	DepthComponent = 0x1902
	DepthStencil   = 0x84F9
	UnsignedByte   = 0x1401
	UnsignedShort  = 0x1403
	UnsignedInt    = 0x1405
	Int            = 0x1404
	Float          = 0x1406
	HalfFloat      = 0x140B
	UnsignedInt248 = 0x84FA

	// Pixel store parameters.
	UnpackRowLength = 0x0CF2
	UnpackAlignment = 0x0CF5

	// Shader types and query parameters.
	FragmentShader = 0x8B30
	VertexShader   = 0x8B31

	// Framebuffer targets, attachments and statuses.
	FramebufferTarget                      = 0x8D40
	RenderbufferTarget                     = 0x8D41
	ColorAttachment0                       = 0x8CE0
	DepthAttachment                        = 0x8D00
	DepthStencilAttachment                 = 0x821A
	FramebufferComplete                    = 0x8CD5
	FramebufferIncompleteAttachment        = 0x8CD6
	FramebufferIncompleteMissingAttachment = 0x8CD7
	FramebufferIncompleteDimensions        = 0x8CD9
	FramebufferUnsupported                 = 0x8CDD
	FramebufferIncompleteMultisample       = 0x8D56

	// Capabilities.
	DepthTest    = 0x0B71
	ScissorTest  = 0x0C11
	Blend        = 0x0BE2
	CullFaceTest = 0x0B44

	// Blend factors.
	Zero                  = 0
	One                   = 1
	SrcColor              = 0x0300
	OneMinusSrcColor      = 0x0301
	SrcAlpha              = 0x0302
	OneMinusSrcAlpha      = 0x0303
	DstAlpha              = 0x0304
	OneMinusDstAlpha      = 0x0305
	DstColor              = 0x0306
	OneMinusDstColor      = 0x0307
	SrcAlphaSaturate      = 0x0308
	ConstantColor         = 0x8001
	OneMinusConstantColor = 0x8002
	ConstantAlpha         = 0x8003
	OneMinusConstantAlpha = 0x8004

	// Blend equations.
	FuncAdd             = 0x8006
	FuncSubtract        = 0x800A
	FuncReverseSubtract = 0x800B
	Min                 = 0x8007
	Max                 = 0x8008

	// Face culling and winding.
	Front = 0x0404
	Back  = 0x0405
	CW    = 0x0900
	CCW   = 0x0901

	// Primitive modes.
	Points        = 0x0000
	Lines         = 0x0001
	LineStrip     = 0x0003
	Triangles     = 0x0004
	TriangleStrip = 0x0005

	// Clear masks.
	DepthBufferBit   = 0x00000100
	StencilBufferBit = 0x00000400
	ColorBufferBit   = 0x00004000
)
