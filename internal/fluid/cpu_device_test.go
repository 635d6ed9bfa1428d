package fluid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCPUDeviceSurfaces(t *testing.T) {
	dev, err := NewCPUDevice(4, 3)
	require.NoError(t, err)
	defer dev.Close()

	s, err := dev.NewSurface(Vec2)
	require.NoError(t, err)
	assert.True(t, s.Valid())
	assert.Equal(t, Vec2, s.Format())
	assert.False(t, Surface{}.Valid())

	data := make([]float32, 4*3*2)
	for i := range data {
		data[i] = float32(i)
	}
	require.NoError(t, dev.Upload(s, data))

	got := make([]float32, len(data))
	require.NoError(t, dev.Download(s, got))
	assert.Equal(t, data, got)

	require.NoError(t, dev.Clear(s))
	require.NoError(t, dev.Download(s, got))
	assert.Equal(t, make([]float32, len(data)), got)

	assert.ErrorIs(t, dev.Upload(s, data[:3]), ErrSurfaceSize)
	assert.ErrorIs(t, dev.Download(s, got[:3]), ErrSurfaceSize)

	dev.ReleaseSurface(s)
	assert.ErrorIs(t, dev.Download(s, got), ErrUnknownSurface)
}

func TestCPUDeviceRejectsBadSetup(t *testing.T) {
	_, err := NewCPUDevice(0, 4)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	dev, err := NewCPUDevice(2, 2)
	require.NoError(t, err)
	_, err = dev.NewSurface(Format(4))
	assert.Error(t, err)

	_, err = dev.Compile("bogus")
	assert.ErrorIs(t, err, ErrUnknownProgram)

	assert.ErrorIs(t, dev.Dispatch(Program(9), nil), ErrUnknownProgram)
}

func TestCPUDeviceDispatchChecks(t *testing.T) {
	dev, err := NewCPUDevice(2, 2)
	require.NoError(t, err)
	st, err := newStage(dev, "pressure", jacobiLayout)
	require.NoError(t, err)

	p, err := dev.NewSurface(Scalar)
	require.NoError(t, err)
	d, err := dev.NewSurface(Scalar)
	require.NoError(t, err)
	rgb, err := dev.NewSurface(RGB)
	require.NoError(t, err)

	t.Run("aliased", func(t *testing.T) {
		err := st.Bind().
			Set(ParamGridSize, [2]int32{2, 2}).
			Set(ParamPressure, p).
			Set(ParamDivergence, d).
			Set(ParamPressureOut, p).
			Dispatch(dev)
		assert.ErrorIs(t, err, ErrAliasedSurface)
	})

	t.Run("wrong format", func(t *testing.T) {
		err := st.Bind().
			Set(ParamGridSize, [2]int32{2, 2}).
			Set(ParamPressure, p).
			Set(ParamDivergence, d).
			Set(ParamPressureOut, rgb).
			Dispatch(dev)
		assert.ErrorIs(t, err, ErrArgType)
	})

	t.Run("wrong value type", func(t *testing.T) {
		err := st.Bind().
			Set(ParamGridSize, 2).
			Set(ParamPressure, p).
			Set(ParamDivergence, d).
			Set(ParamPressureOut, rgb).
			Dispatch(dev)
		assert.ErrorIs(t, err, ErrArgType)
	})

	t.Run("grid mismatch", func(t *testing.T) {
		out, err := dev.NewSurface(Scalar)
		require.NoError(t, err)
		err = st.Bind().
			Set(ParamGridSize, [2]int32{3, 2}).
			Set(ParamPressure, p).
			Set(ParamDivergence, d).
			Set(ParamPressureOut, out).
			Dispatch(dev)
		assert.Error(t, err)
	})
}
