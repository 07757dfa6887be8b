package gles

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gles/glx"
)

// Queue issues data uploads and submits finished command buffers.
// Uploads happen immediately on the calling thread.
type Queue struct {
	device *Device
}

// Submit replays any recorded command buffers and flushes the GL command
// stream.
func (q *Queue) Submit(buffers ...*CommandBuffer) {
	for _, cb := range buffers {
		cb.replay(q.device)
	}
	q.device.gl.Flush()
}

// WriteBuffer copies data into a buffer at the given byte offset. The
// buffer is bound on the target matching its usage so index buffers are
// not written through ARRAY_BUFFER while a vertex array is bound.
func (q *Queue) WriteBuffer(buffer *Buffer, offset uint64, data []byte) error {
	if buffer == nil {
		return ErrNilBuffer
	}
	gl := q.device.gl
	target := bufferTarget(buffer.usage)
	gl.BindBuffer(target, buffer.raw)
	gl.BufferSubData(target, int(offset), data)
	gl.BindBuffer(target, 0)
	return nil
}

// ImageCopyTexture names the destination of a texture write: a texture,
// a mip level and an origin within that level.
type ImageCopyTexture struct {
	Texture  *Texture
	MipLevel uint32
	Origin   gputypes.Origin3D
}

// WriteTexture copies tightly or loosely packed pixel rows into a region
// of a texture. When layout.BytesPerRow is larger than the row payload,
// the unpack row length is set for the duration of the upload. The
// surface texture has no texture object to write to, so a write against
// it is skipped with a warning.
func (q *Queue) WriteTexture(dst ImageCopyTexture, data []byte, layout gputypes.TextureDataLayout, size gputypes.Extent3D) error {
	tex := dst.Texture
	if tex == nil {
		return ErrNilTexture
	}
	if tex.surface {
		Logger().Warn("cannot write to surface texture")
		return nil
	}
	gl := q.device.gl
	info := formatGL(tex.format)

	rowPixels := uint32(0)
	if layout.BytesPerRow > 0 && layout.BytesPerRow != size.Width*info.pixelSize {
		rowPixels = layout.BytesPerRow / info.pixelSize
	}
	if rowPixels != 0 {
		gl.PixelStorei(glx.UnpackRowLength, int32(rowPixels))
	}

	gl.BindTexture(tex.target, tex.raw)
	if offset := layout.Offset; offset > 0 {
		data = data[offset:]
	}
	if tex.target == glx.Texture2DArray || tex.target == glx.Texture3D {
		depth := size.DepthOrArrayLayers
		if depth == 0 {
			depth = 1
		}
		gl.TexSubImage3D(tex.target, int32(dst.MipLevel),
			int32(dst.Origin.X), int32(dst.Origin.Y), int32(dst.Origin.Z),
			int32(size.Width), int32(size.Height), int32(depth),
			info.format, info.xtype, data)
	} else {
		gl.TexSubImage2D(tex.target, int32(dst.MipLevel),
			int32(dst.Origin.X), int32(dst.Origin.Y),
			int32(size.Width), int32(size.Height),
			info.format, info.xtype, data)
	}
	gl.BindTexture(tex.target, 0)

	if rowPixels != 0 {
		gl.PixelStorei(glx.UnpackRowLength, 0)
	}
	return nil
}

// WriteTextureImage uploads an image to mip level zero of a texture,
// rescaling when the image bounds differ from the texture size. Only
// RGBA8-class texture formats are supported.
func (q *Queue) WriteTextureImage(tex *Texture, img image.Image) error {
	if tex == nil {
		return ErrNilTexture
	}
	w, h := int(tex.width), int(tex.height)
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	if b := img.Bounds(); b.Dx() == w && b.Dy() == h {
		draw.Copy(rgba, image.Point{}, img, b, draw.Src, nil)
	} else {
		draw.ApproxBiLinear.Scale(rgba, rgba.Bounds(), img, b, draw.Src, nil)
	}
	return q.WriteTexture(
		ImageCopyTexture{Texture: tex},
		rgba.Pix,
		gputypes.TextureDataLayout{BytesPerRow: uint32(rgba.Stride)},
		gputypes.Extent3D{Width: tex.width, Height: tex.height, DepthOrArrayLayers: 1},
	)
}
