package marching

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/isoline/internal/testutil"
	"github.com/VoidMesh/isoline/services/field"
	"github.com/VoidMesh/isoline/services/noise"
)

func cornersOf(idx CaseIndex) Corners {
	bit := func(n uint) field.Flag { return field.Flag(idx>>n) & 1 }
	return Corners{BL: bit(3), TL: bit(2), TR: bit(1), BR: bit(0)}
}

func cellGrid(t *testing.T, c Corners) *field.BinaryGrid {
	t.Helper()
	g, err := field.NewBinaryGrid([][]field.Flag{
		{c.BL, c.TL},
		{c.BR, c.TR},
	})
	require.NoError(t, err)
	return g
}

func TestSample(t *testing.T) {
	g, err := field.NewBinaryGrid([][]field.Flag{
		{0, 1, 1},
		{1, 0, 0},
		{0, 0, 1},
	})
	require.NoError(t, err)

	tests := []struct {
		name      string
		x, y      int
		expected  Corners
		expectErr bool
	}{
		{name: "origin cell", x: 0, y: 0, expected: Corners{BL: 0, TL: 1, TR: 0, BR: 1}},
		{name: "upper right cell", x: 1, y: 1, expected: Corners{BL: 0, TL: 0, TR: 1, BR: 0}},
		{name: "x at width-1", x: 2, y: 0, expectErr: true},
		{name: "y at height-1", x: 0, y: 2, expectErr: true},
		{name: "negative x", x: -1, y: 0, expectErr: true},
		{name: "far outside", x: 10, y: 10, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Sample(g, tt.x, tt.y)
			if tt.expectErr {
				assert.ErrorIs(t, err, field.ErrOutOfRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, c)
		})
	}
}

func TestClassify_Bijective(t *testing.T) {
	seen := make(map[CaseIndex]Corners)

	for _, bl := range []field.Flag{0, 1} {
		for _, tl := range []field.Flag{0, 1} {
			for _, tr := range []field.Flag{0, 1} {
				for _, br := range []field.Flag{0, 1} {
					c := Corners{BL: bl, TL: tl, TR: tr, BR: br}
					idx, err := Classify(c)
					require.NoError(t, err)
					assert.True(t, idx < 16, "case %d out of range", idx)
					assert.Equal(t, CaseIndex(bl*8+tl*4+tr*2+br), idx)

					prev, dup := seen[idx]
					assert.False(t, dup, "case %d produced by %+v and %+v", idx, prev, c)
					seen[idx] = c
				}
			}
		}
	}
	assert.Len(t, seen, 16)
}

func TestClassify_InvariantViolation(t *testing.T) {
	_, err := Classify(Corners{BL: 2})
	assert.ErrorIs(t, err, ErrInvariantViolation)

	_, err = Classify(Corners{BR: 255})
	assert.ErrorIs(t, err, ErrInvariantViolation)
}

func TestTemplateFor_EmptyCases(t *testing.T) {
	for _, idx := range []CaseIndex{CaseEmpty, CaseFull} {
		tmpl, err := TemplateFor(idx)
		require.NoError(t, err)
		assert.True(t, tmpl.Empty(), "case %d", idx)
		assert.Empty(t, tmpl.Vertices(), "case %d", idx)
		assert.Empty(t, tmpl.Isolines(), "case %d", idx)
	}
}

func TestTemplateFor_VerticesOnBoundary(t *testing.T) {
	for idx := CaseIndex(1); idx < 15; idx++ {
		tmpl, err := TemplateFor(idx)
		require.NoError(t, err)

		vertices := tmpl.Vertices()
		assert.GreaterOrEqual(t, len(vertices), 3, "case %d", idx)
		assert.LessOrEqual(t, len(vertices), 6, "case %d", idx)
		for _, p := range vertices {
			assert.True(t, onBoundary(p), "case %d vertex %+v is not a corner or edge midpoint", idx, p)
		}
	}
}

func TestTemplateFor_OutOfRange(t *testing.T) {
	_, err := TemplateFor(16)
	assert.ErrorIs(t, err, ErrInvariantViolation)
}

func TestTemplateFor_Case4(t *testing.T) {
	tmpl, err := TemplateFor(4)
	require.NoError(t, err)
	assert.Equal(t, []Point{ptB, ptAB, ptBC}, tmpl.Vertices())
}

func TestTemplateFor_Saddles(t *testing.T) {
	for _, idx := range []CaseIndex{CaseSaddle, CaseAlt} {
		assert.True(t, idx.Saddle())

		tmpl, err := TemplateFor(idx)
		require.NoError(t, err)
		assert.Len(t, tmpl.Rings(), 2, "saddle %d is two separate rings", idx)
		assert.Len(t, tmpl.Isolines(), 2, "saddle %d draws two diagonal segments", idx)
		for _, s := range tmpl.Isolines() {
			assert.NotEqual(t, s[0].X, s[1].X, "segment %+v should be diagonal", s)
			assert.NotEqual(t, s[0].Y, s[1].Y, "segment %+v should be diagonal", s)
		}
	}
	assert.False(t, CaseIndex(6).Saddle())
}

func TestTemplate_AccessorsCopy(t *testing.T) {
	tmpl, err := TemplateFor(7)
	require.NoError(t, err)

	v := tmpl.Vertices()
	v[0] = Point{42, 42}
	rings := tmpl.Rings()
	rings[0][0] = Point{42, 42}

	again, err := TemplateFor(7)
	require.NoError(t, err)
	assert.Equal(t, ptB, again.Vertices()[0], "shared table must not be modified through accessors")
}

func TestBuild_EndToEnd(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	tests := []struct {
		name         string
		columns      [][]field.Flag
		expectCase   CaseIndex
		expectPoints []Point
	}{
		{
			name:         "all outside",
			columns:      [][]field.Flag{{0, 0}, {0, 0}},
			expectCase:   0,
			expectPoints: []Point{},
		},
		{
			name:         "all inside",
			columns:      [][]field.Flag{{1, 1}, {1, 1}},
			expectCase:   15,
			expectPoints: []Point{},
		},
		{
			name:       "top-left only",
			columns:    [][]field.Flag{{0, 1}, {0, 0}},
			expectCase: 4,
			// b, ab, bc positioned on the sampled top-left corner
			expectPoints: []Point{{0, 1}, {0, 0.5}, {0.5, 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := field.NewBinaryGrid(tt.columns)
			require.NoError(t, err)

			contours, err := Build(g)
			require.NoError(t, err)
			require.Len(t, contours, 1)

			c := contours[0]
			assert.Equal(t, 0, c.GridX)
			assert.Equal(t, 0, c.GridY)
			assert.Equal(t, tt.expectCase, c.Case)
			assert.Equal(t, tt.expectPoints, c.Vertices())
		})
	}
}

func TestBuild_GeometryMatchesCorners(t *testing.T) {
	cornerPos := map[Point]func(Corners) field.Flag{
		{0, 0}: func(c Corners) field.Flag { return c.BL },
		{0, 1}: func(c Corners) field.Flag { return c.TL },
		{1, 1}: func(c Corners) field.Flag { return c.TR },
		{1, 0}: func(c Corners) field.Flag { return c.BR },
	}

	for idx := CaseIndex(1); idx < 15; idx++ {
		corners := cornersOf(idx)
		contours, err := Build(cellGrid(t, corners))
		require.NoError(t, err)
		require.Len(t, contours, 1)
		c := contours[0]
		require.Equal(t, idx, c.Case)

		// every ring corner is a sampled inside corner, and every inside
		// corner appears in the outline
		inside := 0
		for pos, get := range cornerPos {
			if get(corners) == 1 {
				inside++
				assert.Contains(t, c.Vertices(), pos, "case %d misses inside corner %+v", idx, pos)
			}
		}
		drawn := 0
		for _, p := range c.Vertices() {
			if get, ok := cornerPos[p]; ok {
				drawn++
				assert.Equal(t, field.Flag(1), get(corners), "case %d draws outside corner %+v", idx, p)
			}
		}
		assert.Equal(t, inside, drawn, "case %d", idx)

		// each isoline endpoint sits on an edge whose corners disagree
		for _, s := range c.Isolines() {
			for _, p := range s {
				var a, b Point
				if p.X == 0.5 {
					a, b = Point{0, p.Y}, Point{1, p.Y}
				} else {
					a, b = Point{p.X, 0}, Point{p.X, 1}
				}
				assert.NotEqual(t, cornerPos[a](corners), cornerPos[b](corners),
					"case %d isoline endpoint %+v is on an edge that is not crossed", idx, p)
			}
		}
	}
}

func TestBuild_RecordCountAndOrder(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	tests := []struct {
		name          string
		width, height int
	}{
		{name: "minimal", width: 2, height: 2},
		{name: "wide", width: 17, height: 3},
		{name: "tall", width: 3, height: 21},
		{name: "square", width: 32, height: 32},
		{name: "single column", width: 1, height: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := field.Generate(noise.NewGenerator(50), tt.width, tt.height)
			require.NoError(t, err)
			g := field.Binarize(f, field.DefaultThreshold)

			contours, err := Build(g)
			require.NoError(t, err)
			assert.Len(t, contours, g.Dims().Cells())

			seen := make(map[[2]int]bool, len(contours))
			i := 0
			for x := 0; x < tt.width-1; x++ {
				for y := 0; y < tt.height-1; y++ {
					c := contours[i]
					assert.Equal(t, x, c.GridX)
					assert.Equal(t, y, c.GridY)
					key := [2]int{c.GridX, c.GridY}
					assert.False(t, seen[key], "duplicate record for %v", key)
					seen[key] = true
					i++
				}
			}
		})
	}
}

func TestBuild_VerticesNotAliased(t *testing.T) {
	g, err := field.NewBinaryGrid([][]field.Flag{{0, 1, 0}, {0, 0, 1}, {0, 1, 0}})
	require.NoError(t, err)

	contours, err := Build(g)
	require.NoError(t, err)

	for _, c := range contours {
		for _, ring := range c.Rings {
			for i := range ring {
				ring[i] = Point{-1, -1}
			}
		}
	}

	again, err := Build(g)
	require.NoError(t, err)
	for _, c := range again {
		for _, p := range c.Vertices() {
			assert.NotEqual(t, Point{-1, -1}, p)
		}
	}
}

func TestBuildParallel_MatchesBuild(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	f, err := field.Generate(noise.NewSimplexGenerator(50), 64, 48)
	require.NoError(t, err)
	g := field.Binarize(f, 0)

	serial, err := Build(g)
	require.NoError(t, err)

	for _, workers := range []int{0, 1, 3, 16} {
		parallel, err := BuildParallel(context.Background(), g, workers)
		require.NoError(t, err)
		assert.Equal(t, serial, parallel, "workers=%d", workers)
	}
}

func TestBuildParallel_Cancelled(t *testing.T) {
	f, err := field.Generate(noise.NewGenerator(1), 16, 16)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = BuildParallel(ctx, field.Binarize(f, 0), 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHistogram(t *testing.T) {
	g, err := field.NewBinaryGrid([][]field.Flag{{0, 1, 1}, {0, 1, 1}})
	require.NoError(t, err)

	contours, err := Build(g)
	require.NoError(t, err)

	h := Histogram(contours)
	total := 0
	for _, n := range h {
		total += n
	}
	assert.Equal(t, len(contours), total)
	assert.Equal(t, 1, h[15])
	assert.Equal(t, 1, h[6])
}

func BenchmarkBuild(b *testing.B) {
	f, err := field.Generate(noise.NewGenerator(50), 256, 256)
	if err != nil {
		b.Fatal(err)
	}
	g := field.Binarize(f, 0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Build(g); err != nil {
			b.Fatal(err)
		}
	}
}

func TestTable(t *testing.T) {
	entries := Table()
	require.Len(t, entries, 16)

	for i, e := range entries {
		assert.Equal(t, CaseIndex(i), e.Case)
		assert.Equal(t, i == 5 || i == 10, e.Saddle, "case %d", i)
		assert.NotNil(t, e.Isolines)
	}
	assert.Empty(t, entries[0].Rings)
	assert.Empty(t, entries[15].Rings)
	assert.Equal(t, [][]Point{{ptB, ptAB, ptBC}}, entries[4].Rings)
	assert.Equal(t, []Point{ptB, ptAB, ptBC}, entries[4].Vertices)
	assert.Len(t, entries[10].Vertices, 6)
	assert.Empty(t, entries[15].Vertices)
}

func TestBuildParallel_SingleWorkerHonorsCancel(t *testing.T) {
	g, err := field.NewBinaryGrid([][]field.Flag{{0, 1}, {1, 0}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = BuildParallel(ctx, g, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
