//go:build js

package main

import (
	"errors"
	"log/slog"
	"syscall/js"

	"github.com/oliverbestmann/quad/glimpse"
	"github.com/oliverbestmann/quad/quad"
)

// throwing wraps a go function so that a returned Error value is thrown
// on the javascript side. Go callbacks can not throw by themselves.
var throwing = js.Global().Call("eval", `
	(fn) => function (...args) {
		const result = fn.apply(this, args)
		if (result instanceof Error) {
			throw result
		}

		return result
	}
`)

func main() {
	api := js.Global().Get("Object").New()
	api.Set("setup", js.FuncOf(setupJS))
	api.Set("run", js.FuncOf(runJS))

	js.Global().Set("quad", api)

	slog.Info("Quad module loaded")

	// keep the exported functions alive
	select {}
}

// setupJS implements quad.setup(canvas, textures?) and returns a promise
// resolving to the app object.
func setupJS(this js.Value, args []js.Value) any {
	canvas, textures := arg(args, 0), arg(args, 1)

	return newPromise(func() (any, error) {
		app, win, err := setup(canvas, textures)
		if err != nil {
			return nil, err
		}

		return wrapApp(app, win), nil
	})
}

// runJS implements quad.run(canvas, textures?). The returned promise settles
// once rendering a frame fails.
func runJS(this js.Value, args []js.Value) any {
	canvas, textures := arg(args, 0), arg(args, 1)

	return newPromise(func() (any, error) {
		app, win, err := setup(canvas, textures)
		if err != nil {
			return nil, err
		}

		defer win.Terminate()
		defer app.Release()

		clock := quad.NewFrameClock()

		err = win.Run(func(input glimpse.InputState) error {
			update := clock.Tick()
			update.Pointer = input.Mouse.Pointer()

			if err := app.Update(update); err != nil {
				return err
			}

			if clock.ShouldReport() {
				slog.Debug("Frame stats",
					slog.Uint64("frames", clock.FrameCount),
					slog.Float64("fps", clock.FPS()),
					slog.Any("pointer", app.PerFrame().Pointer),
				)
			}

			return app.Render()
		})

		return nil, err
	})
}

func setup(canvas, textures js.Value) (*quad.App, glimpse.Window, error) {
	if canvas.IsUndefined() || canvas.IsNull() {
		return nil, nil, errors.New("canvas must be provided")
	}

	images, err := texturesFromJS(textures)
	if err != nil {
		return nil, nil, err
	}

	win := glimpse.WrapCanvas(canvas)

	app, err := quad.Setup(win, images)
	if err != nil {
		win.Terminate()
		return nil, nil, err
	}

	program := app.Program()
	slog.Info("Quad ready",
		slog.Float64("width", float64(program.ScreenWidth)),
		slog.Float64("height", float64(program.ScreenHeight)),
		slog.Int("textures", app.TextureCount()),
	)

	return app, win, nil
}

// wrapApp exposes update, render and release of the app to javascript.
// The exported functions stay alive after release so that later calls throw.
func wrapApp(app *quad.App, win glimpse.Window) js.Value {
	export := func(fn func(args []js.Value) error) js.Value {
		wrapped := js.FuncOf(func(this js.Value, args []js.Value) any {
			if app == nil {
				return jsError(errors.New("app was released"))
			}

			if err := fn(args); err != nil {
				return jsError(err)
			}

			return nil
		})

		return throwing.Invoke(wrapped)
	}

	obj := js.Global().Get("Object").New()

	obj.Set("update", export(func(args []js.Value) error {
		update, err := frameUpdateFromJS(arg(args, 0), arg(args, 1), arg(args, 2))
		if err != nil {
			return err
		}

		return app.Update(update)
	}))

	obj.Set("render", export(func(args []js.Value) error {
		return app.Render()
	}))

	obj.Set("release", js.FuncOf(func(this js.Value, args []js.Value) any {
		if app == nil {
			return nil
		}

		app.Release()
		win.Terminate()
		app = nil

		return nil
	}))

	return obj
}

// newPromise runs fn in a new goroutine, blocking inside a javascript
// callback would deadlock the event loop.
func newPromise(fn func() (any, error)) js.Value {
	var executor js.Func

	executor = js.FuncOf(func(this js.Value, args []js.Value) any {
		resolve, reject := args[0], args[1]

		go func() {
			defer executor.Release()

			value, err := fn()
			if err != nil {
				slog.Error("Operation failed", slog.String("err", err.Error()))
				reject.Invoke(jsError(err))
				return
			}

			resolve.Invoke(value)
		}()

		return nil
	})

	return js.Global().Get("Promise").New(executor)
}

func jsError(err error) js.Value {
	return js.Global().Get("Error").New(err.Error())
}

func arg(args []js.Value, idx int) js.Value {
	if idx < len(args) {
		return args[idx]
	}

	return js.Undefined()
}
