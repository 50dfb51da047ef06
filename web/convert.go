//go:build js

package main

import (
	"errors"
	"fmt"
	"syscall/js"

	"github.com/mokiat/gog/opt"
	"github.com/oliverbestmann/quad/glm"
	"github.com/oliverbestmann/quad/quad"
)

func isAbsent(value js.Value) bool {
	return value.IsUndefined() || value.IsNull()
}

// texturesFromJS copies the encoded images out of javascript. Entries must be
// a Uint8Array or an ArrayBuffer, missing entries are skipped.
func texturesFromJS(value js.Value) ([][]byte, error) {
	if isAbsent(value) {
		return nil, nil
	}

	if !js.Global().Get("Array").Call("isArray", value).Bool() {
		return nil, errors.New("textures must be an array")
	}

	uint8Array := js.Global().Get("Uint8Array")
	arrayBuffer := js.Global().Get("ArrayBuffer")

	var buffers [][]byte

	for idx := range value.Length() {
		entry := value.Index(idx)

		switch {
		case isAbsent(entry):
			continue

		case entry.InstanceOf(uint8Array):

		case entry.InstanceOf(arrayBuffer):
			entry = uint8Array.New(entry)

		default:
			return nil, fmt.Errorf("texture %d: expected Uint8Array or ArrayBuffer, got %s", idx, entry.Type())
		}

		buf := make([]byte, entry.Length())
		js.CopyBytesToGo(buf, entry)

		buffers = append(buffers, buf)
	}

	return buffers, nil
}

func numberFromJS(name string, value js.Value) (opt.T[float32], error) {
	if isAbsent(value) {
		return opt.Unspecified[float32](), nil
	}

	if value.Type() != js.TypeNumber {
		return opt.T[float32]{}, fmt.Errorf("%s: expected number, got %s", name, value.Type())
	}

	return opt.V(float32(value.Float())), nil
}

// pointerFromJS reads a {x, y} object. Anything else, including an object
// missing a coordinate, counts as no pointer.
func pointerFromJS(value js.Value) opt.T[glm.Vec2f] {
	if value.Type() != js.TypeObject {
		return opt.Unspecified[glm.Vec2f]()
	}

	x, y := value.Get("x"), value.Get("y")
	if x.Type() != js.TypeNumber || y.Type() != js.TypeNumber {
		return opt.Unspecified[glm.Vec2f]()
	}

	return opt.V(glm.Vec2f{float32(x.Float()), float32(y.Float())})
}

func frameUpdateFromJS(time, deltaTime, pointer js.Value) (quad.FrameUpdate, error) {
	var update quad.FrameUpdate
	var err error

	update.Time, err = numberFromJS("time", time)
	if err != nil {
		return update, err
	}

	update.DeltaTime, err = numberFromJS("deltaTime", deltaTime)
	if err != nil {
		return update, err
	}

	update.Pointer = pointerFromJS(pointer)

	return update, nil
}
