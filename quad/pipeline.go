package quad

import (
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/quad/pulse"
)

//go:embed quad.wgsl
var quadShaderCode string

const (
	vertexEntryPoint           = "vs_main"
	fragmentEntryPoint         = "fs_main"
	texturedFragmentEntryPoint = "fs_textured"
)

type quadPipelineConfig struct {
	TargetFormat  wgpu.TextureFormat
	Textured      bool
	UniformLayout *wgpu.BindGroupLayout
	TextureLayout *wgpu.BindGroupLayout
	ShaderSource  string
}

func (conf quadPipelineConfig) fragmentEntryPoint() string {
	if conf.Textured {
		return texturedFragmentEntryPoint
	}

	return fragmentEntryPoint
}

func (conf quadPipelineConfig) Specialize(dev *wgpu.Device) (*wgpu.RenderPipeline, error) {
	slog.Info(
		"Create RenderPipeline for quad",
		slog.Any("format", conf.TargetFormat),
		slog.Bool("textured", conf.Textured),
	)

	shader, err := dev.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Quad.ShaderSource",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: conf.ShaderSource},
	})
	if err != nil {
		return nil, fmt.Errorf("compile quad shader: %w", err)
	}

	defer shader.Release()

	layout, err := dev.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label: "Quad.PipelineLayout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{
			conf.UniformLayout,
			conf.TextureLayout,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create pipeline layout: %w", err)
	}

	defer layout.Release()

	desc := &wgpu.RenderPipelineDescriptor{
		Label:  fmt.Sprintf("Quad.%s", conf.TargetFormat),
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: vertexEntryPoint,
			Buffers:    []wgpu.VertexBufferLayout{vertexBufferLayout()},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: conf.fragmentEntryPoint(),
			Targets: []wgpu.ColorTargetState{
				{
					Format:    conf.TargetFormat,
					Blend:     &wgpu.BlendStateReplace,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		DepthStencil: nil,
		Multisample: wgpu.MultisampleState{
			Count:                  1,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	}

	pipeline, err := dev.CreateRenderPipeline(desc)
	if err != nil {
		return nil, fmt.Errorf("build quad pipeline: %w", err)
	}

	slog.Info("Pipeline created")

	return pipeline, nil
}

// Pipeline holds the render pipeline used to draw the quad.
type Pipeline struct {
	cache    *pulse.PipelineCache[quadPipelineConfig]
	Pipeline *wgpu.RenderPipeline
}

func NewPipeline(ctx *pulse.Context, format wgpu.TextureFormat, uniforms *UniformStore, textures *TextureStore) (*Pipeline, error) {
	config := quadPipelineConfig{
		TargetFormat:  format,
		Textured:      textures.Len() > 0,
		UniformLayout: uniforms.Layout,
		TextureLayout: textures.Layout,
		ShaderSource:  quadShaderCode,
	}

	cache := pulse.NewPipelineCache[quadPipelineConfig](ctx)

	pipeline, err := cache.Get(config)
	if err != nil {
		cache.Release()
		return nil, err
	}

	return &Pipeline{cache: cache, Pipeline: pipeline}, nil
}

func (p *Pipeline) Release() {
	p.Pipeline = nil

	// releases the pipeline itself
	p.cache.Release()
}
