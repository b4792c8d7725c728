package field

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/VoidMesh/isoline/internal/testutil"
	"github.com/VoidMesh/isoline/services/noise"
)

func TestGenerate_InvalidDimensions(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	tests := []struct {
		name          string
		width, height int
	}{
		{name: "zero width", width: 0, height: 10},
		{name: "zero height", width: 10, height: 0},
		{name: "negative width", width: -1, height: 10},
		{name: "width over limit", width: MaxDimension + 1, height: 10},
		{name: "height over limit", width: 10, height: MaxDimension + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			// no noise call is expected: validation runs before sampling
			gen := noise.NewMockGeneratorInterface(ctrl)

			f, err := Generate(gen, tt.width, tt.height)
			assert.ErrorIs(t, err, ErrInvalidDimensions)
			assert.Nil(t, f)
		})
	}
}

func TestGenerate_NormalizesBothAxesByWidth(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	const width, height = 4, 3
	ctrl := gomock.NewController(t)
	gen := noise.NewMockGeneratorInterface(ctrl)
	gen.EXPECT().GetSeed().Return(int64(9)).AnyTimes()
	gen.EXPECT().Kind().Return(noise.KindPerlin).AnyTimes()

	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			xp := float64(x) / width
			yp := float64(y) / width
			gen.EXPECT().GetNoise(xp, yp).Return(float64(10*x + y)).Times(1)
		}
	}

	f, err := Generate(gen, width, height)
	require.NoError(t, err)
	assert.Equal(t, width, f.Width())
	assert.Equal(t, height, f.Height())

	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			v, err := f.At(x, y)
			require.NoError(t, err)
			assert.Equal(t, float64(10*x+y), v, "sample (%d, %d)", x, y)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	tests := []struct {
		name          string
		kind          noise.Kind
		seed          int64
		width, height int
	}{
		{name: "perlin square", kind: noise.KindPerlin, seed: 50, width: 32, height: 32},
		{name: "perlin wide", kind: noise.KindPerlin, seed: -3, width: 40, height: 7},
		{name: "opensimplex tall", kind: noise.KindOpenSimplex, seed: 50, width: 9, height: 33},
		{name: "opensimplex minimal", kind: noise.KindOpenSimplex, seed: 0, width: 2, height: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen1, err := noise.New(tt.kind, tt.seed)
			require.NoError(t, err)
			gen2, err := noise.New(tt.kind, tt.seed)
			require.NoError(t, err)

			f1, err := Generate(gen1, tt.width, tt.height)
			require.NoError(t, err)
			f2, err := Generate(gen2, tt.width, tt.height)
			require.NoError(t, err)

			require.Len(t, f2.values, len(f1.values))
			for i := range f1.values {
				assert.Equal(t, math.Float64bits(f1.values[i]), math.Float64bits(f2.values[i]), "sample %d", i)
			}
		})
	}
}

func TestScalarField_Accessors(t *testing.T) {
	f, err := NewScalarField([][]float64{
		{-1, 0.5, 2},
		{3, -4, 0},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, f.Width())
	assert.Equal(t, 3, f.Height())

	v, err := f.At(1, 1)
	require.NoError(t, err)
	assert.Equal(t, -4.0, v)

	_, err = f.At(2, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = f.At(0, -1)
	assert.ErrorIs(t, err, ErrOutOfRange)

	v, err = f.ValueAt(1.9, 2.2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
	_, err = f.ValueAt(-0.5, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)

	lo, hi := f.Range()
	assert.Equal(t, -4.0, lo)
	assert.Equal(t, 3.0, hi)
}

func TestNewScalarField_Ragged(t *testing.T) {
	_, err := NewScalarField([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, ErrInvalidDimensions)

	_, err = NewScalarField(nil)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestBinarize(t *testing.T) {
	f, err := NewScalarField([][]float64{
		{-0.5, 0, 0.0001},
		{1, 0.3, -2},
	})
	require.NoError(t, err)

	tests := []struct {
		name      string
		threshold float64
		expected  [][]Flag
	}{
		{
			name:      "default threshold is strict",
			threshold: DefaultThreshold,
			expected:  [][]Flag{{0, 0, 1}, {1, 1, 0}},
		},
		{
			name:      "raised threshold",
			threshold: 0.3,
			expected:  [][]Flag{{0, 0, 0}, {1, 0, 0}},
		},
		{
			name:      "negative threshold",
			threshold: -1,
			expected:  [][]Flag{{1, 1, 1}, {1, 1, 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Binarize(f, tt.threshold)
			assert.Equal(t, f.Dims(), g.Dims())
			assert.Equal(t, tt.expected, g.Columns())
		})
	}
}

func TestNewBinaryGrid(t *testing.T) {
	g, err := NewBinaryGrid([][]Flag{{0, 1}, {1, 1}})
	require.NoError(t, err)
	assert.Equal(t, 3, g.Count())

	v, err := g.At(0, 1)
	require.NoError(t, err)
	assert.Equal(t, Flag(1), v)

	_, err = g.At(0, 2)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = NewBinaryGrid([][]Flag{{0, 2}, {1, 1}})
	assert.Error(t, err)

	_, err = NewBinaryGrid([][]Flag{{0, 1}, {1}})
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestDims(t *testing.T) {
	d := Dims{Width: 4, Height: 3}

	assert.NoError(t, d.CheckPoint(3, 2))
	assert.ErrorIs(t, d.CheckPoint(4, 0), ErrOutOfRange)

	assert.NoError(t, d.CheckCell(2, 1))
	assert.ErrorIs(t, d.CheckCell(3, 0), ErrOutOfRange, "x = width-1 has no right neighbour")
	assert.ErrorIs(t, d.CheckCell(0, 2), ErrOutOfRange, "y = height-1 has no upper neighbour")
	assert.ErrorIs(t, d.CheckCell(-1, 0), ErrOutOfRange)

	assert.Equal(t, 6, d.Cells())
	assert.Equal(t, 0, Dims{Width: 1, Height: 5}.Cells())
}

func BenchmarkGenerate(b *testing.B) {
	gen := noise.NewGenerator(50)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Generate(gen, 256, 256); err != nil {
			b.Fatal(err)
		}
	}
}
