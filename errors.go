package gles

import "errors"

// Creation and encoding errors.
var (
	// ErrShaderCompile is returned when a transpiled shader fails to compile.
	ErrShaderCompile = errors.New("gles: shader compilation failed")

	// ErrProgramLink is returned when program linking fails.
	ErrProgramLink = errors.New("gles: program linking failed")

	// ErrTranspile is returned when WGSL cannot be cross-compiled to GLSL.
	ErrTranspile = errors.New("gles: WGSL transpilation failed")

	// ErrDuplicateBinding is returned when a bind group layout declares the
	// same binding index twice.
	ErrDuplicateBinding = errors.New("gles: duplicate binding in bind group layout")

	// ErrNilBuffer is returned when a buffer operation is given nil.
	ErrNilBuffer = errors.New("gles: buffer is nil")

	// ErrNilTexture is returned when a texture operation is given nil.
	ErrNilTexture = errors.New("gles: texture is nil")

	// ErrNilPipeline is returned when SetPipeline is called with nil.
	ErrNilPipeline = errors.New("gles: pipeline is nil")

	// ErrNilBindGroup is returned when SetBindGroup is called with nil.
	ErrNilBindGroup = errors.New("gles: bind group is nil")

	// ErrPassEnded is returned when commands are recorded on an ended pass.
	ErrPassEnded = errors.New("gles: render pass has already ended")

	// ErrPassActive is returned when a render pass is begun while another
	// pass on the same encoder is still recording.
	ErrPassActive = errors.New("gles: a render pass is already active")

	// ErrEncoderFinished is returned when an encoder is reused after Finish.
	ErrEncoderFinished = errors.New("gles: command encoder has already finished")

	// ErrZeroSize is returned when a buffer or texture is created with a
	// zero dimension.
	ErrZeroSize = errors.New("gles: size must be non-zero")
)
