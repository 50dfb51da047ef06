package quad

import (
	"encoding/binary"
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/mokiat/gog/opt"
	"github.com/oliverbestmann/quad/glm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	writes [][]byte
	err    error
}

func (w *recordingWriter) WriteBuffer(buffer *wgpu.Buffer, offset uint64, data []byte) error {
	if w.err != nil {
		return w.err
	}

	w.writes = append(w.writes, append([]byte(nil), data...))
	return nil
}

func newTestStore(width, height float32) (*UniformStore, *recordingWriter) {
	writer := &recordingWriter{}

	st := &UniformStore{
		program: ProgramUniform{ScreenWidth: width, ScreenHeight: height},
		queue:   writer,
	}

	return st, writer
}

func TestUpdateClampsPointer(t *testing.T) {
	st, _ := newTestStore(800, 600)

	require.NoError(t, st.Update(FrameUpdate{Pointer: opt.V(glm.Vec2f{-10, 900})}))
	assert.Equal(t, glm.Vec2f{0, 600}, st.PerFrame().Pointer)
}

func TestUpdateClampsRandomPointers(t *testing.T) {
	st, _ := newTestStore(800, 600)

	rng := rand.New(rand.NewPCG(1, 2))

	for range 1000 {
		x := float32(rng.NormFloat64() * 1000)
		y := float32(rng.NormFloat64() * 1000)

		require.NoError(t, st.Update(FrameUpdate{Pointer: opt.V(glm.Vec2f{x, y})}))

		want := glm.Vec2f{
			min(max(x, 0), 800),
			min(max(y, 0), 600),
		}

		assert.Equal(t, want, st.PerFrame().Pointer, "pointer (%f, %f)", x, y)
	}
}

func TestUpdateClampsNonFinitePointer(t *testing.T) {
	st, _ := newTestStore(800, 600)

	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	require.NoError(t, st.Update(FrameUpdate{Pointer: opt.V(glm.Vec2f{nan, inf})}))
	assert.Equal(t, glm.Vec2f{0, 600}, st.PerFrame().Pointer)

	require.NoError(t, st.Update(FrameUpdate{Pointer: opt.V(glm.Vec2f{inf, -inf})}))
	assert.Equal(t, glm.Vec2f{800, 0}, st.PerFrame().Pointer)
}

func TestEmptyUpdateIsNoop(t *testing.T) {
	st, writer := newTestStore(800, 600)

	require.NoError(t, st.Update(FrameUpdate{
		Time:      opt.V[float32](3),
		DeltaTime: opt.V[float32](0.5),
		Pointer:   opt.V(glm.Vec2f{12, 34}),
	}))

	before := st.PerFrame().Bytes()
	writesBefore := len(writer.writes)

	require.NoError(t, st.Update(FrameUpdate{}))

	assert.Equal(t, before, st.PerFrame().Bytes())
	assert.Len(t, writer.writes, writesBefore, "empty update must not write to the gpu")
}

func TestTimeOnlyUpdate(t *testing.T) {
	st, _ := newTestStore(800, 600)

	require.NoError(t, st.Update(FrameUpdate{
		DeltaTime: opt.V[float32](0.016),
		Pointer:   opt.V(glm.Vec2f{100, 200}),
	}))

	require.NoError(t, st.Update(FrameUpdate{Time: opt.V[float32](7.25)}))

	assert.Equal(t, PerFrameUniform{
		Time:      7.25,
		DeltaTime: 0.016,
		Pointer:   glm.Vec2f{100, 200},
	}, st.PerFrame())
}

func TestSequentialUpdatesMerge(t *testing.T) {
	st, writer := newTestStore(800, 600)

	require.NoError(t, st.Update(FrameUpdate{Time: opt.V[float32](1.5)}))
	require.NoError(t, st.Update(FrameUpdate{DeltaTime: opt.V[float32](0.02)}))

	assert.Equal(t, float32(1.5), st.PerFrame().Time)
	assert.Equal(t, float32(0.02), st.PerFrame().DeltaTime)
	assert.Equal(t, glm.Vec2f{}, st.PerFrame().Pointer)

	// every update writes the full uniform, the last write matches the stored value
	require.Len(t, writer.writes, 2)
	assert.Equal(t, st.PerFrame().Bytes(), writer.writes[1])
}

func TestFailedWriteKeepsPreviousValue(t *testing.T) {
	st, writer := newTestStore(800, 600)

	require.NoError(t, st.Update(FrameUpdate{Time: opt.V[float32](1)}))

	writer.err = errors.New("device lost")

	err := st.Update(FrameUpdate{Time: opt.V[float32](2)})
	require.ErrorIs(t, err, writer.err)

	assert.Equal(t, float32(1), st.PerFrame().Time)
}

func TestPerFrameUniformBytes(t *testing.T) {
	u := PerFrameUniform{Time: 1.5, DeltaTime: 0.25, Pointer: glm.Vec2f{640, 480}}

	buf := u.Bytes()
	require.Len(t, buf, 16)

	read := func(idx int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[idx*4:]))
	}

	assert.Equal(t, float32(1.5), read(0))
	assert.Equal(t, float32(0.25), read(1))
	assert.Equal(t, float32(640), read(2))
	assert.Equal(t, float32(480), read(3))
}

func TestProgramUniformBytes(t *testing.T) {
	buf := ProgramUniform{ScreenWidth: 800, ScreenHeight: 600}.Bytes()
	require.Len(t, buf, 8)

	assert.Equal(t, float32(800), math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])))
	assert.Equal(t, float32(600), math.Float32frombits(binary.LittleEndian.Uint32(buf[4:])))
}

func TestFrameUpdateIsEmpty(t *testing.T) {
	assert.True(t, FrameUpdate{}.IsEmpty())
	assert.False(t, FrameUpdate{Time: opt.V[float32](0)}.IsEmpty())
	assert.False(t, FrameUpdate{DeltaTime: opt.V[float32](0)}.IsEmpty())
	assert.False(t, FrameUpdate{Pointer: opt.V(glm.Vec2f{})}.IsEmpty())
}

func TestUniformLayoutEntries(t *testing.T) {
	entries := uniformLayoutEntries()
	require.Len(t, entries, 2)

	for idx, entry := range entries {
		assert.Equal(t, uint32(idx), entry.Binding)
		assert.Equal(t, wgpu.BufferBindingTypeUniform, entry.Buffer.Type)
		assert.Equal(t, wgpu.ShaderStageFragment, entry.Visibility)
	}
}
