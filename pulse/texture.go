package pulse

import (
	"fmt"
	"image"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/quad/glm"
)

// Texture wraps a wgpu.Texture and an identity wgpu.TextureView.
type Texture struct {
	texture     *wgpu.Texture
	textureView *wgpu.TextureView

	size glm.Vec2u
}

type NewTextureOptions struct {
	Format wgpu.TextureFormat
	Width  uint32
	Height uint32
	Label  string
}

// NewTexture creates a texture that can be sampled from and written to.
func NewTexture(ctx *Context, opts NewTextureOptions) (*Texture, error) {
	desc := &wgpu.TextureDescriptor{
		Label:         opts.Label,
		Format:        opts.Format,
		SampleCount:   1,
		MipLevelCount: 1,

		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              opts.Width,
			Height:             opts.Height,
			DepthOrArrayLayers: 1,
		},

		Usage: wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	}

	return NewTextureFromDesc(ctx, desc)
}

// NewTextureFromDesc gives you full control and creates a texture directly from
// a texture descriptor
func NewTextureFromDesc(ctx *Context, desc *wgpu.TextureDescriptor) (*Texture, error) {
	texture, err := ctx.Device.CreateTexture(desc)
	if err != nil {
		return nil, err
	}

	// now create a default texture view
	textureView, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()

		return nil, err
	}

	t := &Texture{
		texture:     texture,
		textureView: textureView,
		size:        glm.Vec2u{desc.Size.Width, desc.Size.Height},
	}

	return t, nil
}

func (t *Texture) Width() uint32 {
	return t.size[0]
}

func (t *Texture) Height() uint32 {
	return t.size[1]
}

func (t *Texture) View() *wgpu.TextureView {
	return t.textureView
}

// Release releases the texture view and the texture.
// You must be sure to not use the texture after calling release.
func (t *Texture) Release() {
	t.textureView.Release()
	t.texture.Release()
}

// WritePixels uploads tightly packed rgba8 pixels covering the full texture.
func (t *Texture) WritePixels(ctx *Context, pixels []byte) error {
	want := int(t.Width()) * int(t.Height()) * 4
	if len(pixels) != want {
		return fmt.Errorf("expected %d bytes of pixel data, got %d", want, len(pixels))
	}

	layout := &wgpu.TextureDataLayout{
		Offset:       0,
		BytesPerRow:  t.Width() * 4,
		RowsPerImage: t.Height(),
	}

	size := &wgpu.Extent3D{
		Width:              t.Width(),
		Height:             t.Height(),
		DepthOrArrayLayers: 1,
	}

	dest := &wgpu.ImageCopyTexture{
		Texture:  t.texture,
		MipLevel: 0,
		Aspect:   wgpu.TextureAspectAll,
	}

	// send data to the gpu
	err := ctx.WriteTexture(dest, pixels, layout, size)
	if err != nil {
		return fmt.Errorf("copy image data to texture: %w", err)
	}

	return nil
}

// NewTextureFromRGBA creates an srgb texture and uploads the pixels of img.
func NewTextureFromRGBA(ctx *Context, img *image.RGBA, label string) (*Texture, error) {
	iw, ih := img.Bounds().Dx(), img.Bounds().Dy()

	t, err := NewTexture(ctx, NewTextureOptions{
		Format: wgpu.TextureFormatRGBA8UnormSrgb,
		Width:  uint32(iw),
		Height: uint32(ih),
		Label:  label,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture: %w", err)
	}

	err = t.WritePixels(ctx, img.Pix)
	if err != nil {
		t.Release()
		return nil, fmt.Errorf("upload texture: %w", err)
	}

	return t, nil
}
