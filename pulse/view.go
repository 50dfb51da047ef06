package pulse

import (
	"fmt"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
)

// View holds the configuration of the presentation surface of a Context.
// The surface is configured exactly once, the view never resizes.
type View struct {
	*Context

	surfaceConfig *wgpu.SurfaceConfiguration
}

// NewView configures the surface of the context with the first format the
// surface supports for the adapter.
func NewView(ctx *Context, width, height uint32) (*View, error) {
	caps := ctx.Surface.GetCapabilities(ctx.Adapter)
	slog.Info("Available surface formats", slog.Any("formats", caps.Formats))

	if len(caps.Formats) == 0 || len(caps.AlphaModes) == 0 {
		return nil, fmt.Errorf("surface capabilities: %w", ErrSurfaceConfig)
	}

	if width == 0 || height == 0 {
		return nil, fmt.Errorf("surface size %dx%d: %w", width, height, ErrSurfaceConfig)
	}

	vs := &View{
		Context: ctx,
		surfaceConfig: &wgpu.SurfaceConfiguration{
			Usage:       wgpu.TextureUsageRenderAttachment,
			Format:      caps.Formats[0],
			PresentMode: wgpu.PresentModeFifo,
			AlphaMode:   caps.AlphaModes[0],
			Width:       width,
			Height:      height,
		},
	}

	vs.Surface.Configure(vs.Adapter, vs.Device, vs.surfaceConfig)

	slog.Info("Surface configured",
		slog.Int("width", int(width)),
		slog.Int("height", int(height)),
		slog.Any("format", vs.surfaceConfig.Format),
	)

	return vs, nil
}

func (vs *View) Format() wgpu.TextureFormat {
	return vs.surfaceConfig.Format
}

// Frame is a presentable image together with a default view on it.
type Frame struct {
	Texture *wgpu.Texture
	View    *wgpu.TextureView

	present func()
}

// NewFrame wraps a texture and a view on it. present is called
// when the frame is shown, it takes over ownership of the texture.
func NewFrame(texture *wgpu.Texture, view *wgpu.TextureView, present func()) *Frame {
	return &Frame{Texture: texture, View: view, present: present}
}

// AcquireFrame acquires the next presentable image of the surface.
// The caller must either Present or Release the returned frame.
func (vs *View) AcquireFrame() (*Frame, error) {
	texture, err := vs.Surface.GetCurrentTexture()
	if err != nil {
		return nil, fmt.Errorf("get current texture: %w: %w", ErrNoFrame, err)
	}

	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return nil, fmt.Errorf("create surface view: %w: %w", ErrNoFrame, err)
	}

	present := func() {
		vs.Surface.Present()
	}

	return NewFrame(texture, view, present), nil
}

// Present shows the frame on screen and releases it.
func (f *Frame) Present() {
	f.present()

	// we do not need to release the texture if present was successful
	f.View.Release()
}

// Release drops the frame without presenting it.
func (f *Frame) Release() {
	f.View.Release()
	f.Texture.Release()
}
