package glimpse

import (
	"github.com/mokiat/gog/opt"
	"github.com/oliverbestmann/quad/glm"
)

type MouseState struct {
	CursorX, CursorY float32

	// true once the cursor position was reported at least once
	Moved bool
}

func (m *MouseState) position(x, y float32) {
	m.CursorX = x
	m.CursorY = y
	m.Moved = true
}

// Pointer returns the cursor position in pixels, or nothing
// if no cursor position was reported yet.
func (m *MouseState) Pointer() opt.T[glm.Vec2f] {
	if !m.Moved {
		return opt.Unspecified[glm.Vec2f]()
	}

	return opt.V(glm.Vec2f{m.CursorX, m.CursorY})
}

type InputState struct {
	Mouse MouseState
}
