package charts

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"math"
	"testing"

	"github.com/RMahshie/reynolds/internal/processing"
	"github.com/RMahshie/reynolds/pkg/models"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

func renderPass(t *testing.T, mode models.PlotMode) *models.RenderPass {
	t.Helper()
	pass, err := processing.NewProcessingService().RenderPass(context.Background(), models.DefaultInputParameters(), mode)
	require.NoError(t, err)
	require.True(t, pass.Valid)
	return pass
}

func TestRender_AllModes(t *testing.T) {
	r := NewRenderer(DefaultConfig())

	for _, mode := range models.PlotModes {
		t.Run(string(mode), func(t *testing.T) {
			data, err := r.Render(renderPass(t, mode))
			require.NoError(t, err)

			img, err := png.Decode(bytes.NewReader(data))
			require.NoError(t, err)
			assert.Equal(t, 1920, img.Bounds().Dx())
			assert.Equal(t, 1440, img.Bounds().Dy())
		})
	}
}

func TestRender_SmallerFigure(t *testing.T) {
	r := NewRenderer(Config{DPI: 100})

	data, err := r.Render(renderPass(t, models.PlotHeatmap))
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 480, cfg.Height)
}

func TestRender_InvalidPass(t *testing.T) {
	r := NewRenderer(DefaultConfig())

	_, err := r.Render(nil)
	assert.ErrorIs(t, err, ErrNoData)

	_, err = r.Render(&models.RenderPass{Mode: models.PlotVelocity, Warning: "x"})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestRender_GridModeNeedsGrid(t *testing.T) {
	r := NewRenderer(DefaultConfig())
	pass := renderPass(t, models.PlotVelocity)
	pass.Mode = models.PlotContour

	_, err := r.Render(pass)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestIsoline_VerticalLine(t *testing.T) {
	f := field{
		xs: []float64{0, 1},
		ys: []float64{0, 1},
		z:  [][]float64{{0, 1}, {0, 1}},
	}

	segs := f.isoline(0.5)
	require.Len(t, segs, 1)
	assert.InDelta(t, 0.5, segs[0].A.X, 1e-12)
	assert.InDelta(t, 0.5, segs[0].B.X, 1e-12)
	assert.ElementsMatch(t, []float64{0, 1}, []float64{segs[0].A.Y, segs[0].B.Y})

	assert.Empty(t, f.isoline(2))
	assert.Empty(t, f.isoline(-1))
}

func TestIsoline_SkipsNonFiniteCells(t *testing.T) {
	f := field{
		xs: []float64{0, 1, 2},
		ys: []float64{0, 1},
		z:  [][]float64{{0, 1, math.Inf(1)}, {0, 1, 2}},
	}

	segs := f.isoline(0.5)
	assert.Len(t, segs, 1)
}

func TestIsoline_Saddle(t *testing.T) {
	// cut off the two corners below the level, or the two above it
	lowPair := []segment{
		{point{0, 2.0 / 3}, point{1.0 / 3, 1}},
		{point{2.0 / 3, 0}, point{1, 1.0 / 3}},
	}
	highPair := []segment{
		{point{0, 1.0 / 3}, point{1.0 / 3, 0}},
		{point{1, 2.0 / 3}, point{2.0 / 3, 1}},
	}

	tests := []struct {
		name  string
		z     [][]float64
		level float64
		want  []segment
	}{
		// corners 0 and 2 high, centre 1.5
		{"idx 5 centre above", [][]float64{{3, 0}, {0, 3}}, 1, lowPair},
		{"idx 5 centre below", [][]float64{{3, 0}, {0, 3}}, 2, highPair},
		// corners 1 and 3 high
		{"idx 10 centre above", [][]float64{{0, 3}, {3, 0}}, 1, highPair},
		{"idx 10 centre below", [][]float64{{0, 3}, {3, 0}}, 2, lowPair},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := field{xs: []float64{0, 1}, ys: []float64{0, 1}, z: tt.z}
			got := f.isoline(tt.level)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
				t.Errorf("isoline(%v) mismatch (-want +got):\n%s", tt.level, diff)
			}
		})
	}
}

func TestPlaceLabel(t *testing.T) {
	mids := make([]image.Point, 11)
	for i := range mids {
		mids[i] = image.Pt(10*i, 100)
	}
	area := labelBox{0, 0, 200, 200}

	first, ok := placeLabel(mids, 0.5, 16, 10, area, nil)
	require.True(t, ok)
	assert.Equal(t, labelBox{42, 95, 58, 105}, first)

	// same line, same start: moves along the line past the first label
	second, ok := placeLabel(mids, 0.5, 16, 10, area, []labelBox{first})
	require.True(t, ok)
	assert.Equal(t, labelBox{62, 95, 78, 105}, second)
	assert.False(t, second.overlaps(first))

	// a box poking out of the plot area is skipped
	edge, ok := placeLabel(mids, 0, 16, 10, area, nil)
	require.True(t, ok)
	assert.Equal(t, 2, edge.x0)

	_, ok = placeLabel(mids, 0.5, 16, 10, area, []labelBox{area})
	assert.False(t, ok, "no room anywhere on the line")

	_, ok = placeLabel(nil, 0.5, 16, 10, area, nil)
	assert.False(t, ok)
}

func TestField_BoundsAndInterpolation(t *testing.T) {
	f := field{
		xs: []float64{0, 1},
		ys: []float64{0, 2},
		z:  [][]float64{{0, 10}, {20, math.NaN()}},
	}

	lo, hi, ok := f.bounds()
	require.True(t, ok)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 20.0, hi)

	assert.True(t, math.IsNaN(f.at(0.5, 1)))
	assert.True(t, math.IsNaN(f.at(-1, 0)))

	g := field{xs: []float64{0, 1}, ys: []float64{0, 1}, z: [][]float64{{0, 10}, {20, 30}}}
	assert.InDelta(t, 15, g.at(0.5, 0.5), 1e-12)
	assert.InDelta(t, 10, g.at(1, 0), 1e-12)
}

func TestLevels(t *testing.T) {
	assert.Equal(t, []float64{0, 2.5, 5, 7.5, 10}, levelBounds(0, 10, 4))
	assert.Len(t, isoLevels(0, 16, 15), 15)
	assert.Equal(t, 1.0, isoLevels(0, 16, 15)[0])

	assert.Equal(t, 0, bandIndex(-5, 0, 10, 20))
	assert.Equal(t, 19, bandIndex(10, 0, 10, 20))
	assert.Equal(t, 10, bandIndex(5, 0, 10, 20))
	assert.Equal(t, 0, bandIndex(3, 3, 3, 20))
}

func TestNiceTicks(t *testing.T) {
	assert.Equal(t, []float64{0.5, 1, 1.5, 2}, niceTicks(0.01, 2.0, 5))
	assert.Equal(t, []float64{0.2, 0.4, 0.6, 0.8}, niceTicks(0.01, 0.8, 5))
}

func TestColormap(t *testing.T) {
	assert.Equal(t, drawing.ColorFromHex("440154"), viridis.at(0))
	assert.Equal(t, drawing.ColorFromHex("fde725"), viridis.at(1))
	assert.Equal(t, drawing.ColorFromHex("0d0887"), plasma.at(math.NaN()))

	mid := viridis.at(0.5)
	assert.Equal(t, uint8(255), mid.A)
}
