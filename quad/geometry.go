package quad

import (
	"fmt"
	"log/slog"
	"structs"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/quad/glm"
	"github.com/oliverbestmann/quad/pulse"
)

type Vertex struct {
	_ structs.HostLayout

	Position glm.Vec3f
	Color    glm.Vec3f
	TexCoord glm.Vec2f
}

// QuadVertices span the full clip space. Texture coordinates
// have their origin in the top left corner.
var QuadVertices = [4]Vertex{
	{Position: glm.Vec3f{-1, -1, 0}, Color: glm.Vec3f{1, 0, 0}, TexCoord: glm.Vec2f{0, 1}},
	{Position: glm.Vec3f{-1, 1, 0}, Color: glm.Vec3f{0, 1, 0}, TexCoord: glm.Vec2f{0, 0}},
	{Position: glm.Vec3f{1, 1, 0}, Color: glm.Vec3f{0, 0, 1}, TexCoord: glm.Vec2f{1, 0}},
	{Position: glm.Vec3f{1, -1, 0}, Color: glm.Vec3f{1, 1, 1}, TexCoord: glm.Vec2f{1, 1}},
}

// QuadIndices describe the two triangles covering the quad.
var QuadIndices = [6]uint16{0, 1, 2, 0, 2, 3}

func vertexBufferLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(unsafe.Sizeof(Vertex{})),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{
				// position
				Format:         wgpu.VertexFormatFloat32x3,
				Offset:         uint64(unsafe.Offsetof(Vertex{}.Position)),
				ShaderLocation: 0,
			},
			{
				// color
				Format:         wgpu.VertexFormatFloat32x3,
				Offset:         uint64(unsafe.Offsetof(Vertex{}.Color)),
				ShaderLocation: 1,
			},
			{
				// texture coordinate
				Format:         wgpu.VertexFormatFloat32x2,
				Offset:         uint64(unsafe.Offsetof(Vertex{}.TexCoord)),
				ShaderLocation: 2,
			},
		},
	}
}

// Geometry holds the static vertex and index buffers of the quad.
type Geometry struct {
	Vertices   *wgpu.Buffer
	Indices    *wgpu.Buffer
	IndexCount uint32
}

func NewGeometry(ctx *pulse.Context) (*Geometry, error) {
	slog.Info("Creating vertex buffer", slog.Int("vertexCount", len(QuadVertices)))

	vertices, err := ctx.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Quad.Vertices",
		Contents: wgpu.ToBytes(QuadVertices[:]),
		Usage:    wgpu.BufferUsageVertex,
	})

	if err != nil {
		return nil, fmt.Errorf("create vertex buffer: %w", err)
	}

	indices, err := ctx.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Quad.Indices",
		Contents: wgpu.ToBytes(QuadIndices[:]),
		Usage:    wgpu.BufferUsageIndex,
	})

	if err != nil {
		vertices.Release()
		return nil, fmt.Errorf("create index buffer: %w", err)
	}

	g := &Geometry{
		Vertices:   vertices,
		Indices:    indices,
		IndexCount: uint32(len(QuadIndices)),
	}

	return g, nil
}

func (g *Geometry) Release() {
	g.Indices.Release()
	g.Vertices.Release()
}
