package quad

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/quad/pulse"
)

var textureSamplerDescriptor = wgpu.SamplerDescriptor{
	Label:         "Quad.TextureSampler",
	AddressModeU:  wgpu.AddressModeClampToEdge,
	AddressModeV:  wgpu.AddressModeClampToEdge,
	AddressModeW:  wgpu.AddressModeClampToEdge,
	MagFilter:     wgpu.FilterModeLinear,
	MinFilter:     wgpu.FilterModeNearest,
	MipmapFilter:  wgpu.MipmapFilterModeNearest,
	LodMinClamp:   0,
	LodMaxClamp:   32,
	MaxAnisotropy: 1,
}

// TextureStore owns the textures supplied by the host together with one
// shared sampler and the bind group exposing them at group 1.
type TextureStore struct {
	Textures []*pulse.Texture

	// owned by the sampler cache of the context
	Sampler *wgpu.Sampler

	Layout    *wgpu.BindGroupLayout
	BindGroup *wgpu.BindGroup
}

// DecodeImages decodes all buffers or none of them.
func DecodeImages(buffers [][]byte) ([]*image.RGBA, error) {
	images := make([]*image.RGBA, 0, len(buffers))

	for idx, buf := range buffers {
		img, err := pulse.DecodeRGBA(buf)
		if err != nil {
			return nil, fmt.Errorf("image %d: %w", idx, err)
		}

		images = append(images, img)
	}

	return images, nil
}

func NewTextureStore(ctx *pulse.Context, buffers [][]byte) (st *TextureStore, err error) {
	images, err := DecodeImages(buffers)
	if err != nil {
		return nil, fmt.Errorf("decode textures: %w", err)
	}

	st = &TextureStore{}

	defer func() {
		if err != nil {
			st.Release()
			st = nil
		}
	}()

	for idx, img := range images {
		label := fmt.Sprintf("Quad.Texture[%d]", idx)

		texture, err := pulse.NewTextureFromRGBA(ctx, img, label)
		if err != nil {
			return st, fmt.Errorf("upload texture %d: %w", idx, err)
		}

		slog.Info("Texture uploaded",
			slog.Int("index", idx),
			slog.Int("width", int(texture.Width())),
			slog.Int("height", int(texture.Height())),
		)

		st.Textures = append(st.Textures, texture)
	}

	st.Sampler, err = ctx.CachedSampler(textureSamplerDescriptor)
	if err != nil {
		return st, err
	}

	st.Layout, err = ctx.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "Quad.TextureLayout",
		Entries: textureLayoutEntries(len(st.Textures)),
	})

	if err != nil {
		return st, fmt.Errorf("create texture layout: %w", err)
	}

	views := make([]*wgpu.TextureView, 0, len(st.Textures))
	for _, texture := range st.Textures {
		views = append(views, texture.View())
	}

	st.BindGroup, err = ctx.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   "Quad.Textures",
		Layout:  st.Layout,
		Entries: textureBindGroupEntries(st.Sampler, views),
	})

	if err != nil {
		return st, fmt.Errorf("create texture bind group: %w", err)
	}

	return st, nil
}

// textureLayoutEntries returns an empty layout without any textures. Otherwise
// binding 0 holds the sampler followed by one binding per texture.
func textureLayoutEntries(textureCount int) []wgpu.BindGroupLayoutEntry {
	if textureCount == 0 {
		return nil
	}

	entries := []wgpu.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: wgpu.ShaderStageFragment,
			Sampler: wgpu.SamplerBindingLayout{
				Type: wgpu.SamplerBindingTypeFiltering,
			},
		},
	}

	for idx := range textureCount {
		entries = append(entries, wgpu.BindGroupLayoutEntry{
			Binding:    uint32(1 + idx),
			Visibility: wgpu.ShaderStageFragment,
			Texture: wgpu.TextureBindingLayout{
				SampleType:    wgpu.TextureSampleTypeFloat,
				ViewDimension: wgpu.TextureViewDimension2D,
				Multisampled:  false,
			},
		})
	}

	return entries
}

func textureBindGroupEntries(sampler *wgpu.Sampler, views []*wgpu.TextureView) []wgpu.BindGroupEntry {
	if len(views) == 0 {
		return nil
	}

	entries := []wgpu.BindGroupEntry{
		{Binding: 0, Sampler: sampler},
	}

	for idx, view := range views {
		entries = append(entries, wgpu.BindGroupEntry{
			Binding:     uint32(1 + idx),
			TextureView: view,
		})
	}

	return entries
}

func (st *TextureStore) Len() int {
	return len(st.Textures)
}

func (st *TextureStore) Release() {
	if st.BindGroup != nil {
		st.BindGroup.Release()
		st.BindGroup = nil
	}

	if st.Layout != nil {
		st.Layout.Release()
		st.Layout = nil
	}

	for _, texture := range st.Textures {
		texture.Release()
	}

	st.Textures = nil
	st.Sampler = nil
}
