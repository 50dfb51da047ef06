//go:build js

package quad

import "github.com/cogentcore/webgpu/wgpu"

// the browser reports pass errors through the device, End has no result
func endPass(pass *wgpu.RenderPassEncoder) error {
	pass.End()
	return nil
}
