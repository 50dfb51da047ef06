//go:build !js

package glimpse

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/profile"
)

func init() {
	// glfw must only be used from the main thread
	runtime.LockOSThread()
}

type glfwWindow struct {
	win   *glfw.Window
	prof  interface{ Stop() }
	input InputState
}

func NewWindow(opts WindowOptions) (Window, error) {
	opts = opts.withDefaults()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	// the surface is configured once and never resized
	glfw.WindowHint(glfw.Resizable, glfw.False)

	window, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}

	w := &glfwWindow{win: window}

	if opts.Profile {
		slog.Info("Recording cpu profile")
		w.prof = profile.Start(profile.CPUProfile, profile.NoShutdownHook)
	}

	configureInput(window, &w.input)

	return w, nil
}

func (g *glfwWindow) GetSize() (uint32, uint32) {
	width, height := g.win.GetFramebufferSize()
	return uint32(width), uint32(height)
}

func (g *glfwWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(g.win)
}

func (g *glfwWindow) Terminate() {
	if g.prof != nil {
		g.prof.Stop()
	}

	g.win.Destroy()
	glfw.Terminate()
}

func (g *glfwWindow) Run(frame func(input InputState) error) error {
	for !g.win.ShouldClose() {
		glfw.PollEvents()

		if err := frame(g.input); err != nil {
			return err
		}
	}

	return nil
}

func configureInput(window *glfw.Window, input *InputState) {
	window.SetCursorPosCallback(func(win *glfw.Window, xpos float64, ypos float64) {
		// cursor positions are reported in screen coordinates,
		// scale them to match the framebuffer on high dpi screens
		winWidth, winHeight := win.GetSize()
		fbWidth, fbHeight := win.GetFramebufferSize()

		scaleX, scaleY := 1.0, 1.0
		if winWidth > 0 && winHeight > 0 {
			scaleX = float64(fbWidth) / float64(winWidth)
			scaleY = float64(fbHeight) / float64(winHeight)
		}

		input.Mouse.position(float32(xpos*scaleX), float32(ypos*scaleY))
	})
}
