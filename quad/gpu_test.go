package quad

import (
	"errors"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/quad/pulse"
	"github.com/stretchr/testify/require"
)

// newHeadlessContext skips the test on machines without a usable adapter.
func newHeadlessContext(t *testing.T) *pulse.Context {
	t.Helper()

	ctx, err := pulse.New(nil)
	if errors.Is(err, pulse.ErrNoAdapter) || errors.Is(err, pulse.ErrNoDevice) {
		t.Skipf("no gpu available: %s", err)
	}

	require.NoError(t, err)
	t.Cleanup(ctx.Release)

	return ctx
}

// offscreenFrames hands out frames rendering into a texture instead of a surface.
type offscreenFrames struct {
	ctx    *pulse.Context
	format wgpu.TextureFormat

	textures  []*wgpu.Texture
	presented int
}

func (f *offscreenFrames) AcquireFrame() (*pulse.Frame, error) {
	texture, err := f.ctx.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Test.Offscreen",
		Format:        f.format,
		SampleCount:   1,
		MipLevelCount: 1,
		Dimension:     wgpu.TextureDimension2D,
		Size:          wgpu.Extent3D{Width: 16, Height: 16, DepthOrArrayLayers: 1},
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return nil, err
	}

	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return nil, err
	}

	present := func() {
		f.presented++
		f.textures = append(f.textures, texture)
	}

	return pulse.NewFrame(texture, view, present), nil
}

func (f *offscreenFrames) Release() {
	for _, texture := range f.textures {
		texture.Release()
	}
}
