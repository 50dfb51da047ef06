package glimpse

import "github.com/cogentcore/webgpu/wgpu"

// Window is something a webgpu surface can be created for, either
// a native window or a canvas element in the browser.
type Window interface {
	// GetSize returns the size of the drawable area in pixels.
	GetSize() (uint32, uint32)
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// Run calls frame once per displayed frame until the window is closed
	// or frame returns an error.
	Run(frame func(input InputState) error) error
	Terminate()
}

type WindowOptions struct {
	Width  int
	Height int
	Title  string

	// record a cpu profile while the window is open. Ignored in the browser.
	Profile bool
}

func (opts WindowOptions) withDefaults() WindowOptions {
	if opts.Width == 0 {
		opts.Width = 800
	}

	if opts.Height == 0 {
		opts.Height = 600
	}

	if opts.Title == "" {
		opts.Title = "Quad"
	}

	return opts
}
