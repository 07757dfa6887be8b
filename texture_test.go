package gles

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gles/glx"
)

func TestCreateTexture2D(t *testing.T) {
	d, gl := newTestDevice(t)

	tex, err := d.CreateTexture(TextureDescriptor{
		Size:   gputypes.Extent3D{Width: 64, Height: 32, DepthOrArrayLayers: 1},
		Format: gputypes.TextureFormatRGBA8Unorm,
	})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	if tex.target != glx.Texture2D {
		t.Errorf("target = %#x, want TEXTURE_2D", tex.target)
	}

	storage := fmt.Sprintf("TexStorage2D(%d, 1, %d, 64, 32)", uint32(glx.Texture2D), uint32(glx.RGBA8))
	if gl.Index(storage) < 0 {
		t.Fatalf("missing %q in %v", storage, gl.Calls())
	}
	if n := gl.Count("TexParameteri"); n != 4 {
		t.Errorf("TexParameteri calls = %d, want 4 default params", n)
	}
	unbind := fmt.Sprintf("BindTexture(%d, 0)", uint32(glx.Texture2D))
	if gl.Index(unbind) < 0 {
		t.Errorf("texture left bound: %v", gl.Calls())
	}
}

func TestCreateTextureTargets(t *testing.T) {
	tests := []struct {
		name   string
		desc   TextureDescriptor
		target uint32
	}{
		{
			"2d array",
			TextureDescriptor{
				Size:   gputypes.Extent3D{Width: 8, Height: 8, DepthOrArrayLayers: 4},
				Format: gputypes.TextureFormatRGBA8Unorm,
			},
			glx.Texture2DArray,
		},
		{
			"3d",
			TextureDescriptor{
				Size:      gputypes.Extent3D{Width: 8, Height: 8, DepthOrArrayLayers: 8},
				Dimension: gputypes.TextureDimension3D,
				Format:    gputypes.TextureFormatRGBA8Unorm,
			},
			glx.Texture3D,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, gl := newTestDevice(t)
			tex, err := d.CreateTexture(tt.desc)
			if err != nil {
				t.Fatalf("CreateTexture: %v", err)
			}
			if tex.target != tt.target {
				t.Errorf("target = %#x, want %#x", tex.target, tt.target)
			}
			if gl.Count("TexStorage3D") != 1 {
				t.Errorf("TexStorage3D calls = %d, want 1", gl.Count("TexStorage3D"))
			}
		})
	}
}

func TestCreateTextureBGRAMapsToRGBA(t *testing.T) {
	d, gl := newTestDevice(t)

	_, err := d.CreateTexture(TextureDescriptor{
		Size:   gputypes.Extent3D{Width: 4, Height: 4, DepthOrArrayLayers: 1},
		Format: gputypes.TextureFormatBGRA8Unorm,
	})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	storage := fmt.Sprintf("TexStorage2D(%d, 1, %d, 4, 4)", uint32(glx.Texture2D), uint32(glx.RGBA8))
	if gl.Index(storage) < 0 {
		t.Errorf("BGRA not stored as RGBA8: %v", gl.CallsOf("TexStorage2D"))
	}
}

func TestCreateTextureZeroSize(t *testing.T) {
	d, _ := newTestDevice(t)

	_, err := d.CreateTexture(TextureDescriptor{Format: gputypes.TextureFormatRGBA8Unorm})
	if !errors.Is(err, ErrZeroSize) {
		t.Fatalf("err = %v, want ErrZeroSize", err)
	}
}

func TestTextureCreateView(t *testing.T) {
	d, _ := newTestDevice(t)
	tex := newTestTexture(t, d, 16, 16)

	view := tex.CreateView()
	if view.Texture() != tex {
		t.Error("view does not point at its texture")
	}
	if view.format != tex.format {
		t.Errorf("view format = %v, want %v", view.format, tex.format)
	}
	if d.Stats().TextureViews != 1 {
		t.Errorf("texture views = %d, want 1", d.Stats().TextureViews)
	}
}

func TestTextureCreateViewWithDescriptor(t *testing.T) {
	d, _ := newTestDevice(t)
	tex, err := d.CreateTexture(TextureDescriptor{
		Size:          gputypes.Extent3D{Width: 32, Height: 32, DepthOrArrayLayers: 1},
		MipLevelCount: 4,
		Format:        gputypes.TextureFormatRGBA8Unorm,
	})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}

	view := tex.CreateViewWithDescriptor(TextureViewDescriptor{
		BaseMipLevel:  2,
		MipLevelCount: 1,
	})
	if view.baseMipLevel != 2 || view.mipLevelCount != 1 {
		t.Errorf("mip range = %d+%d, want 2+1", view.baseMipLevel, view.mipLevelCount)
	}
	if view.format != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("undefined view format did not inherit: %v", view.format)
	}
}

func TestTextureDestroyIdempotent(t *testing.T) {
	d, gl := newTestDevice(t)
	tex := newTestTexture(t, d, 16, 16)

	tex.Destroy()
	tex.Destroy()
	if n := gl.Count("DeleteTexture"); n != 1 {
		t.Errorf("DeleteTexture calls = %d, want 1", n)
	}
}
