package quad

import (
	"fmt"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/quad/pulse"
)

type frameSource interface {
	AcquireFrame() (*pulse.Frame, error)
}

// quadPass is the subset of wgpu.RenderPassEncoder needed to draw the quad.
type quadPass interface {
	SetPipeline(pipeline *wgpu.RenderPipeline)
	SetBindGroup(groupIndex uint32, group *wgpu.BindGroup, dynamicOffsets []uint32)
	SetVertexBuffer(slot uint32, buffer *wgpu.Buffer, offset uint64, size uint64)
	SetIndexBuffer(buffer *wgpu.Buffer, format wgpu.IndexFormat, offset uint64, size uint64)
	DrawIndexed(indexCount uint32, instanceCount uint32, firstIndex uint32, baseVertex int32, firstInstance uint32)
}

// Renderer records and submits the single draw call of a frame.
type Renderer struct {
	ctx    *pulse.Context
	frames frameSource

	clearColor wgpu.Color

	submit func(cmdBuffer *wgpu.CommandBuffer)
}

func NewRenderer(ctx *pulse.Context, frames frameSource) *Renderer {
	slog.Info("Renderer created")

	r := &Renderer{
		ctx:        ctx,
		frames:     frames,
		clearColor: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
	}

	r.submit = func(cmdBuffer *wgpu.CommandBuffer) {
		ctx.Submit(cmdBuffer)
	}

	return r
}

// Render draws the quad once into the next surface image and presents it.
func (r *Renderer) Render(geometry *Geometry, pipeline *Pipeline, uniforms *UniformStore, textures *TextureStore) error {
	slog.Debug("Rendering frame")

	frame, err := r.frames.AcquireFrame()
	if err != nil {
		return fmt.Errorf("acquire frame: %w", err)
	}

	defer func() {
		if frame != nil {
			frame.Release()
		}
	}()

	cmdBuffer, err := r.record(frame.View, geometry, pipeline, uniforms, textures)
	if err != nil {
		return err
	}

	defer cmdBuffer.Release()

	r.submit(cmdBuffer)

	frame.Present()

	// present released the frame
	frame = nil

	return nil
}

func (r *Renderer) record(target *wgpu.TextureView, geometry *Geometry, pipeline *Pipeline, uniforms *UniformStore, textures *TextureStore) (*wgpu.CommandBuffer, error) {
	encoder, err := r.ctx.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "Quad.Encoder"})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}

	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "Quad.RenderPass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       target,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: r.clearColor,
			},
		},
	})

	defer func() {
		if pass != nil {
			pass.Release()
		}
	}()

	drawQuad(pass, geometry, pipeline, uniforms, textures)

	if err := endPass(pass); err != nil {
		return nil, fmt.Errorf("end render pass: %w", err)
	}

	// must release pass before finishing the encoder
	pass.Release()
	pass = nil

	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		return nil, fmt.Errorf("finish command encoder: %w", err)
	}

	return cmdBuffer, nil
}

func drawQuad(pass quadPass, geometry *Geometry, pipeline *Pipeline, uniforms *UniformStore, textures *TextureStore) {
	pass.SetPipeline(pipeline.Pipeline)
	pass.SetBindGroup(0, uniforms.BindGroup, nil)
	pass.SetBindGroup(1, textures.BindGroup, nil)
	pass.SetVertexBuffer(0, geometry.Vertices, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(geometry.Indices, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
	pass.DrawIndexed(geometry.IndexCount, 1, 0, 0, 0)
}
