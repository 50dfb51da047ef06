//go:build js

package glimpse

import (
	"syscall/js"

	"github.com/cogentcore/webgpu/wgpu"
)

type jsWindow struct {
	canvas js.Value
	input  InputState

	onPointerMove js.Func
}

// NewWindow creates a new canvas filling the page.
func NewWindow(opts WindowOptions) (Window, error) {
	opts = opts.withDefaults()

	document := js.Global().Get("document")
	canvas := document.Call("createElement", "canvas")
	document.Get("body").Call("appendChild", canvas)

	document.Set("title", opts.Title)

	canvas.Set("style", "width:100vw; height:100vh")

	return WrapCanvas(canvas), nil
}

// WrapCanvas uses an existing canvas element provided by the host page.
// The backing size of the canvas is synced once to its client size.
func WrapCanvas(canvas js.Value) Window {
	canvas.Set("width", canvas.Get("clientWidth"))
	canvas.Set("height", canvas.Get("clientHeight"))

	win := &jsWindow{canvas: canvas}

	win.onPointerMove = js.FuncOf(func(this js.Value, args []js.Value) any {
		event := args[0]
		win.input.Mouse.position(
			float32(event.Get("offsetX").Float()),
			float32(event.Get("offsetY").Float()),
		)

		return nil
	})

	canvas.Call("addEventListener", "pointermove", win.onPointerMove)

	return win
}

func (g *jsWindow) GetSize() (uint32, uint32) {
	return uint32(g.canvas.Get("width").Int()), uint32(g.canvas.Get("height").Int())
}

func (g *jsWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return &wgpu.SurfaceDescriptor{Canvas: g.canvas}
}

func (g *jsWindow) Terminate() {
	g.canvas.Call("removeEventListener", "pointermove", g.onPointerMove)
	g.onPointerMove.Release()
}

func (g *jsWindow) Run(frame func(input InputState) error) error {
	helper := js.Global().Call("eval", `({
        async run(runOnce) {
            while (runOnce()) {
                await new Promise(resolve => requestAnimationFrame(resolve))
            }
        }
	})`)

	errc := make(chan error, 1)

	frameWrapper := func(this js.Value, args []js.Value) any {
		if err := frame(g.input); err != nil {
			errc <- err
			return false
		}

		return true
	}

	fn := js.FuncOf(frameWrapper)
	defer fn.Release()

	helper.Call("run", fn)

	// block until a frame fails
	return <-errc
}
