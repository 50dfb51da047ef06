package quad

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/quad/pulse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for idx := range img.Pix {
		img.Pix[idx] = 0xff
	}

	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeImagesNone(t *testing.T) {
	images, err := DecodeImages(nil)
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestDecodeImagesAll(t *testing.T) {
	buffers := [][]byte{pngBytes(t, 2, 2), pngBytes(t, 3, 1), pngBytes(t, 1, 5)}

	images, err := DecodeImages(buffers)
	require.NoError(t, err)
	require.Len(t, images, 3)

	assert.Equal(t, image.Rect(0, 0, 2, 2), images[0].Bounds())
	assert.Equal(t, image.Rect(0, 0, 3, 1), images[1].Bounds())
	assert.Equal(t, image.Rect(0, 0, 1, 5), images[2].Bounds())
	assert.Equal(t, color.RGBA{R: 255, A: 255}, images[0].RGBAAt(0, 0))
}

func TestDecodeImagesAllOrNothing(t *testing.T) {
	buffers := [][]byte{pngBytes(t, 2, 2), []byte("garbage"), pngBytes(t, 2, 2)}

	images, err := DecodeImages(buffers)
	require.ErrorIs(t, err, pulse.ErrDecodeImage)
	assert.Contains(t, err.Error(), "image 1")
	assert.Empty(t, images)
}

func TestTextureLayoutWithoutTextures(t *testing.T) {
	assert.Empty(t, textureLayoutEntries(0))
	assert.Empty(t, textureBindGroupEntries(nil, nil))
}

func TestTextureLayoutWithTextures(t *testing.T) {
	entries := textureLayoutEntries(3)
	require.Len(t, entries, 4)

	assert.Equal(t, uint32(0), entries[0].Binding)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, entries[0].Sampler.Type)
	assert.Equal(t, wgpu.TextureSampleTypeUndefined, entries[0].Texture.SampleType)

	for idx, entry := range entries[1:] {
		assert.Equal(t, uint32(idx+1), entry.Binding)
		assert.Equal(t, wgpu.TextureSampleTypeFloat, entry.Texture.SampleType)
		assert.Equal(t, wgpu.TextureViewDimension2D, entry.Texture.ViewDimension)
		assert.Equal(t, wgpu.ShaderStageFragment, entry.Visibility)
	}
}

func TestTextureBindGroupEntries(t *testing.T) {
	sampler := &wgpu.Sampler{}
	views := []*wgpu.TextureView{{}, {}}

	entries := textureBindGroupEntries(sampler, views)
	require.Len(t, entries, 3)

	assert.Same(t, sampler, entries[0].Sampler)
	assert.Same(t, views[0], entries[1].TextureView)
	assert.Same(t, views[1], entries[2].TextureView)
	assert.Equal(t, uint32(2), entries[2].Binding)
}

func TestTextureStoreBindsEveryImage(t *testing.T) {
	ctx := newHeadlessContext(t)

	buffers := [][]byte{pngBytes(t, 2, 2), pngBytes(t, 4, 1), pngBytes(t, 1, 3)}

	st, err := NewTextureStore(ctx, buffers)
	require.NoError(t, err)
	defer st.Release()

	require.Equal(t, 3, st.Len())
	assert.NotNil(t, st.Sampler)
	assert.NotNil(t, st.BindGroup)

	assert.Equal(t, uint32(4), st.Textures[1].Width())
	assert.Equal(t, uint32(1), st.Textures[1].Height())

	for _, texture := range st.Textures {
		assert.NotNil(t, texture.View())
	}

	// a second store shares the one sampler of the context
	other, err := NewTextureStore(ctx, buffers[:1])
	require.NoError(t, err)
	defer other.Release()

	assert.Same(t, st.Sampler, other.Sampler)
}

func TestTextureStoreRejectsBatchWithBadImage(t *testing.T) {
	ctx := newHeadlessContext(t)

	st, err := NewTextureStore(ctx, [][]byte{pngBytes(t, 2, 2), []byte("garbage")})
	require.ErrorIs(t, err, pulse.ErrDecodeImage)
	assert.Nil(t, st)
}
