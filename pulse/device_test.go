package pulse

import (
	"errors"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newHeadlessContext skips the test on machines without a usable adapter.
func newHeadlessContext(t *testing.T) *Context {
	t.Helper()

	ctx, err := New(nil)
	if errors.Is(err, ErrNoAdapter) || errors.Is(err, ErrNoDevice) {
		t.Skipf("no gpu available: %s", err)
	}

	require.NoError(t, err)
	t.Cleanup(ctx.Release)

	return ctx
}

func TestMissingSurfaceIsConfigError(t *testing.T) {
	surface, err := checkSurface(nil)
	require.ErrorIs(t, err, ErrSurfaceConfig)
	assert.NotErrorIs(t, err, ErrNoAdapter)
	assert.Nil(t, surface)
}

func TestHeadlessContext(t *testing.T) {
	ctx := newHeadlessContext(t)

	assert.Nil(t, ctx.Surface)
	assert.NotNil(t, ctx.Device)
	assert.NotNil(t, ctx.Queue)
}

func TestCachedSamplerIsShared(t *testing.T) {
	ctx := newHeadlessContext(t)

	desc := wgpu.SamplerDescriptor{
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeNearest,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	}

	first, err := ctx.CachedSampler(desc)
	require.NoError(t, err)

	second, err := ctx.CachedSampler(desc)
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestFramePresentReleasesView(t *testing.T) {
	ctx := newHeadlessContext(t)

	texture, err := NewTexture(ctx, NewTextureOptions{
		Format: wgpu.TextureFormatRGBA8Unorm,
		Width:  4,
		Height: 4,
		Label:  "Test.Frame",
	})
	require.NoError(t, err)

	defer texture.Release()

	view, err := texture.texture.CreateView(nil)
	require.NoError(t, err)

	var presented int
	frame := NewFrame(texture.texture, view, func() { presented++ })

	frame.Present()
	assert.Equal(t, 1, presented)
}
