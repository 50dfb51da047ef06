package quad

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/quad/pulse"
)

// Surface is the drawable the quad is rendered to. glimpse.Window implements it.
type Surface interface {
	GetSize() (uint32, uint32)
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
}

// App owns every gpu resource of the demo. Update and Render
// must be called from a single frame loop, never concurrently.
type App struct {
	ctx  *pulse.Context
	view *pulse.View

	geometry *Geometry
	uniforms *UniformStore
	textures *TextureStore
	pipeline *Pipeline
	renderer *Renderer
}

// Setup initializes the gpu for the given surface and uploads the
// quad together with the given encoded images. Setup either fully succeeds
// or returns an error without a partially constructed App.
func Setup(win Surface, images [][]byte) (app *App, err error) {
	if win == nil {
		return nil, errors.New("surface must not be nil")
	}

	width, height := win.GetSize()
	slog.Info("Setting up webgpu",
		slog.Int("width", int(width)),
		slog.Int("height", int(height)),
		slog.Int("textures", len(images)),
	)

	app = &App{}

	defer func() {
		if err != nil {
			app.Release()
			app = nil
		}
	}()

	app.ctx, err = pulse.New(win.SurfaceDescriptor())
	if err != nil {
		return app, fmt.Errorf("initializing wgpu: %w", err)
	}

	app.view, err = pulse.NewView(app.ctx, width, height)
	if err != nil {
		return app, fmt.Errorf("configure surface: %w", err)
	}

	app.geometry, err = NewGeometry(app.ctx)
	if err != nil {
		return app, err
	}

	app.uniforms, err = NewUniformStore(app.ctx, width, height)
	if err != nil {
		return app, err
	}

	app.textures, err = NewTextureStore(app.ctx, images)
	if err != nil {
		return app, err
	}

	app.pipeline, err = NewPipeline(app.ctx, app.view.Format(), app.uniforms, app.textures)
	if err != nil {
		return app, err
	}

	app.renderer = NewRenderer(app.ctx, app.view)

	return app, nil
}

// Update merges the specified values into the per frame uniform.
func (app *App) Update(u FrameUpdate) error {
	return app.uniforms.Update(u)
}

// Render draws one frame. A failed frame does not affect later frames.
func (app *App) Render() error {
	return app.renderer.Render(app.geometry, app.pipeline, app.uniforms, app.textures)
}

func (app *App) Program() ProgramUniform {
	return app.uniforms.Program()
}

func (app *App) PerFrame() PerFrameUniform {
	return app.uniforms.PerFrame()
}

func (app *App) TextureCount() int {
	return app.textures.Len()
}

// Release releases all resources in reverse order of creation.
func (app *App) Release() {
	app.renderer = nil

	if app.pipeline != nil {
		app.pipeline.Release()
		app.pipeline = nil
	}

	if app.textures != nil {
		app.textures.Release()
		app.textures = nil
	}

	if app.uniforms != nil {
		app.uniforms.Release()
		app.uniforms = nil
	}

	if app.geometry != nil {
		app.geometry.Release()
		app.geometry = nil
	}

	app.view = nil

	if app.ctx != nil {
		app.ctx.Release()
		app.ctx = nil
	}
}
