package gles

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gles/glx"
)

// IndexFormat selects the element type used by indexed draws.
type IndexFormat int

const (
	// IndexFormatUint16 uses 16-bit indices.
	IndexFormatUint16 IndexFormat = iota

	// IndexFormatUint32 uses 32-bit indices.
	IndexFormatUint32
)

func (f IndexFormat) glType() uint32 {
	if f == IndexFormatUint32 {
		return glx.UnsignedInt
	}
	return glx.UnsignedShort
}

func (f IndexFormat) byteSize() uint32 {
	if f == IndexFormatUint32 {
		return 4
	}
	return 2
}

// VertexBufferLayout describes one vertex buffer slot of a pipeline.
type VertexBufferLayout struct {
	// ArrayStride is the byte stride between consecutive vertices.
	ArrayStride uint64

	// StepMode is the input rate (per vertex or per instance).
	StepMode gputypes.VertexStepMode

	// Attributes describes the vertex attributes in this buffer.
	Attributes []VertexAttribute
}

// VertexAttribute describes a vertex attribute.
type VertexAttribute struct {
	// ShaderLocation is the attribute location in the shader.
	ShaderLocation uint32

	// Format is the attribute data format.
	Format gputypes.VertexFormat

	// Offset is the byte offset from the start of the vertex.
	Offset uint64
}

// BlendState describes the color blending configuration.
type BlendState struct {
	// Color is the color blending configuration.
	Color BlendComponent

	// Alpha is the alpha blending configuration.
	Alpha BlendComponent
}

// BlendComponent describes a blend component (color or alpha).
type BlendComponent struct {
	// SrcFactor is the source blend factor.
	SrcFactor gputypes.BlendFactor

	// DstFactor is the destination blend factor.
	DstFactor gputypes.BlendFactor

	// Operation is the blend operation.
	Operation gputypes.BlendOperation
}

// enabled reports whether the blend state does anything other than
// replace the destination.
func (b *BlendState) enabled() bool {
	if b == nil {
		return false
	}
	ident := BlendComponent{
		SrcFactor: gputypes.BlendFactorOne,
		DstFactor: gputypes.BlendFactorZero,
		Operation: gputypes.BlendOperationAdd,
	}
	return b.Color != ident || b.Alpha != ident
}

func topologyToGL(t gputypes.PrimitiveTopology) uint32 {
	switch t {
	case gputypes.PrimitiveTopologyPointList:
		return glx.Points
	case gputypes.PrimitiveTopologyLineList:
		return glx.Lines
	case gputypes.PrimitiveTopologyLineStrip:
		return glx.LineStrip
	case gputypes.PrimitiveTopologyTriangleStrip:
		return glx.TriangleStrip
	default:
		return glx.Triangles
	}
}

func vertexFormatComponents(f gputypes.VertexFormat) int32 {
	switch f {
	case gputypes.VertexFormatFloat32x2:
		return 2
	case gputypes.VertexFormatFloat32x3:
		return 3
	case gputypes.VertexFormatFloat32x4:
		return 4
	default:
		return 1
	}
}

func vertexFormatGLType(f gputypes.VertexFormat) uint32 {
	switch f {
	case gputypes.VertexFormatUint32:
		return glx.UnsignedInt
	case gputypes.VertexFormatSint32:
		return glx.Int
	default:
		return glx.Float
	}
}

func compareFuncToGL(f gputypes.CompareFunction) uint32 {
	switch f {
	case gputypes.CompareFunctionNever:
		return glx.Never
	case gputypes.CompareFunctionLess:
		return glx.Less
	case gputypes.CompareFunctionEqual:
		return glx.Equal
	case gputypes.CompareFunctionLessEqual:
		return glx.LEqual
	case gputypes.CompareFunctionGreater:
		return glx.Greater
	case gputypes.CompareFunctionNotEqual:
		return glx.NotEqual
	case gputypes.CompareFunctionGreaterEqual:
		return glx.GEqual
	default:
		return glx.Always
	}
}

func blendFactorToGL(f gputypes.BlendFactor) uint32 {
	switch f {
	case gputypes.BlendFactorZero:
		return glx.Zero
	case gputypes.BlendFactorSrc:
		return glx.SrcColor
	case gputypes.BlendFactorOneMinusSrc:
		return glx.OneMinusSrcColor
	case gputypes.BlendFactorSrcAlpha:
		return glx.SrcAlpha
	case gputypes.BlendFactorOneMinusSrcAlpha:
		return glx.OneMinusSrcAlpha
	case gputypes.BlendFactorDst:
		return glx.DstColor
	case gputypes.BlendFactorOneMinusDst:
		return glx.OneMinusDstColor
	case gputypes.BlendFactorDstAlpha:
		return glx.DstAlpha
	case gputypes.BlendFactorOneMinusDstAlpha:
		return glx.OneMinusDstAlpha
	case gputypes.BlendFactorSrcAlphaSaturated:
		return glx.SrcAlphaSaturate
	case gputypes.BlendFactorConstant:
		return glx.ConstantColor
	case gputypes.BlendFactorOneMinusConstant:
		return glx.OneMinusConstantColor
	default:
		return glx.One
	}
}

func blendOpToGL(op gputypes.BlendOperation) uint32 {
	switch op {
	case gputypes.BlendOperationSubtract:
		return glx.FuncSubtract
	case gputypes.BlendOperationReverseSubtract:
		return glx.FuncReverseSubtract
	case gputypes.BlendOperationMin:
		return glx.Min
	case gputypes.BlendOperationMax:
		return glx.Max
	default:
		return glx.FuncAdd
	}
}

func addressModeToGL(m gputypes.AddressMode) int32 {
	switch m {
	case gputypes.AddressModeRepeat:
		return glx.Repeat
	case gputypes.AddressModeMirrorRepeat:
		return glx.MirroredRepeat
	default:
		return glx.ClampToEdge
	}
}

func magFilterToGL(f gputypes.FilterMode) int32 {
	if f == gputypes.FilterModeLinear {
		return glx.Linear
	}
	return glx.Nearest
}

// minFilterToGL folds the mipmap filter into the minification filter,
// which is how GL expresses the pair.
func minFilterToGL(minFilter, mipmapFilter gputypes.FilterMode) int32 {
	switch {
	case minFilter == gputypes.FilterModeLinear && mipmapFilter == gputypes.FilterModeLinear:
		return glx.LinearMipmapLinear
	case minFilter == gputypes.FilterModeLinear:
		return glx.LinearMipmapNearest
	case mipmapFilter == gputypes.FilterModeLinear:
		return glx.NearestMipmapLinear
	default:
		return glx.NearestMipmapNearest
	}
}

// formatInfo carries the GL-side description of a texture format.
type formatInfo struct {
	internal  uint32
	format    uint32
	xtype     uint32
	pixelSize uint32
	depth     bool
}

// formatGL maps a WebGPU texture format onto its GL storage and transfer
// enums. BGRA formats alias the RGBA internal format because GLES has no
// BGRA internal format; callers uploading BGRA data must swizzle.
// Unsupported formats degrade to RGBA8 with a warning.
func formatGL(f gputypes.TextureFormat) formatInfo {
	switch f {
	case gputypes.TextureFormatR8Unorm:
		return formatInfo{glx.R8, glx.Red, glx.UnsignedByte, 1, false}
	case gputypes.TextureFormatRG8Unorm:
		return formatInfo{glx.RG8, glx.RG, glx.UnsignedByte, 2, false}
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm:
		return formatInfo{glx.RGBA8, glx.RGBA, glx.UnsignedByte, 4, false}
	case gputypes.TextureFormatRGBA8UnormSrgb, gputypes.TextureFormatBGRA8UnormSrgb:
		return formatInfo{glx.SRGB8Alpha8, glx.RGBA, glx.UnsignedByte, 4, false}
	case gputypes.TextureFormatDepth24Plus:
		return formatInfo{glx.DepthComponent24, glx.DepthComponent, glx.UnsignedInt, 4, true}
	case gputypes.TextureFormatDepth24PlusStencil8:
		return formatInfo{glx.Depth24Stencil8, glx.DepthStencil, glx.UnsignedInt248, 4, true}
	default:
		Logger().Warn("unsupported texture format, falling back to rgba8unorm", "format", f)
		return formatInfo{glx.RGBA8, glx.RGBA, glx.UnsignedByte, 4, false}
	}
}
