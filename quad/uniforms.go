package quad

import (
	"encoding/binary"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/mokiat/gog/opt"
	"github.com/oliverbestmann/quad/glm"
	"github.com/oliverbestmann/quad/pulse"
	"golang.org/x/mobile/exp/f32"
)

// ProgramUniform is written once during setup.
type ProgramUniform struct {
	ScreenWidth  float32
	ScreenHeight float32
}

func (p ProgramUniform) ScreenSize() glm.Vec2f {
	return glm.Vec2f{p.ScreenWidth, p.ScreenHeight}
}

func (p ProgramUniform) Bytes() []byte {
	return f32.Bytes(binary.LittleEndian, p.ScreenWidth, p.ScreenHeight)
}

// PerFrameUniform is rewritten for each update that specifies at least one value.
type PerFrameUniform struct {
	Time      float32
	DeltaTime float32

	// pointer position in pixels, always within the screen
	Pointer glm.Vec2f
}

func (p PerFrameUniform) Bytes() []byte {
	return f32.Bytes(binary.LittleEndian, p.Time, p.DeltaTime, p.Pointer[0], p.Pointer[1])
}

// FrameUpdate carries the values of a single update call. Values
// that are not specified keep their previous value.
type FrameUpdate struct {
	Time      opt.T[float32]
	DeltaTime opt.T[float32]
	Pointer   opt.T[glm.Vec2f]
}

func (u FrameUpdate) IsEmpty() bool {
	return !u.Time.Specified && !u.DeltaTime.Specified && !u.Pointer.Specified
}

// Merge applies the specified values of the update to p. The pointer is
// clamped to the screen size given in program.
func (p PerFrameUniform) Merge(u FrameUpdate, program ProgramUniform) PerFrameUniform {
	if u.Time.Specified {
		p.Time = u.Time.Value
	}

	if u.DeltaTime.Specified {
		p.DeltaTime = u.DeltaTime.Value
	}

	if u.Pointer.Specified {
		p.Pointer = u.Pointer.Value.Clamp(glm.Vec2f{}, program.ScreenSize())
	}

	return p
}

type bufferWriter interface {
	WriteBuffer(buffer *wgpu.Buffer, offset uint64, data []byte) error
}

// UniformStore owns the uniform buffers and the bind group
// exposing them at group 0.
type UniformStore struct {
	program  ProgramUniform
	perFrame PerFrameUniform

	bufProgram  *wgpu.Buffer
	bufPerFrame *wgpu.Buffer

	queue bufferWriter

	Layout    *wgpu.BindGroupLayout
	BindGroup *wgpu.BindGroup
}

func NewUniformStore(ctx *pulse.Context, width, height uint32) (st *UniformStore, err error) {
	st = &UniformStore{
		program: ProgramUniform{
			ScreenWidth:  float32(width),
			ScreenHeight: float32(height),
		},
		queue: ctx.Queue,
	}

	defer func() {
		if err != nil {
			st.Release()
			st = nil
		}
	}()

	st.bufProgram, err = ctx.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Quad.ProgramUniform",
		Contents: st.program.Bytes(),
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})

	if err != nil {
		return st, fmt.Errorf("create program uniform: %w", err)
	}

	st.bufPerFrame, err = ctx.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Quad.PerFrameUniform",
		Contents: st.perFrame.Bytes(),
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})

	if err != nil {
		return st, fmt.Errorf("create per frame uniform: %w", err)
	}

	st.Layout, err = ctx.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "Quad.UniformLayout",
		Entries: uniformLayoutEntries(),
	})

	if err != nil {
		return st, fmt.Errorf("create uniform layout: %w", err)
	}

	st.BindGroup, err = ctx.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Quad.Uniforms",
		Layout: st.Layout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  st.bufProgram,
				Size:    wgpu.WholeSize,
			},
			{
				Binding: 1,
				Buffer:  st.bufPerFrame,
				Size:    wgpu.WholeSize,
			},
		},
	})

	if err != nil {
		return st, fmt.Errorf("create uniform bind group: %w", err)
	}

	return st, nil
}

func uniformLayoutEntries() []wgpu.BindGroupLayoutEntry {
	entry := func(binding uint32) wgpu.BindGroupLayoutEntry {
		return wgpu.BindGroupLayoutEntry{
			Binding:    binding,
			Visibility: wgpu.ShaderStageFragment,
			Buffer: wgpu.BufferBindingLayout{
				Type: wgpu.BufferBindingTypeUniform,
			},
		}
	}

	return []wgpu.BindGroupLayoutEntry{entry(0), entry(1)}
}

// Update merges u into the per frame uniform and schedules a write of the
// complete uniform to the gpu. An empty update does nothing.
func (st *UniformStore) Update(u FrameUpdate) error {
	if u.IsEmpty() {
		return nil
	}

	next := st.perFrame.Merge(u, st.program)

	err := st.queue.WriteBuffer(st.bufPerFrame, 0, next.Bytes())
	if err != nil {
		return fmt.Errorf("update per frame uniform: %w", err)
	}

	st.perFrame = next

	return nil
}

func (st *UniformStore) Program() ProgramUniform {
	return st.program
}

func (st *UniformStore) PerFrame() PerFrameUniform {
	return st.perFrame
}

func (st *UniformStore) Release() {
	if st.BindGroup != nil {
		st.BindGroup.Release()
		st.BindGroup = nil
	}

	if st.Layout != nil {
		st.Layout.Release()
		st.Layout = nil
	}

	if st.bufPerFrame != nil {
		st.bufPerFrame.Release()
		st.bufPerFrame = nil
	}

	if st.bufProgram != nil {
		st.bufProgram.Release()
		st.bufProgram = nil
	}
}
