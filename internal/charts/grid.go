package charts

import (
	"bytes"
	"fmt"
	"image"
	"math"
	"strconv"

	"github.com/RMahshie/reynolds/pkg/models"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// plotArea is the pixel rectangle the data is mapped into
type plotArea struct {
	left, top, right, bottom int
	xMin, xMax, yMin, yMax   float64
}

func (a plotArea) px(x float64) int {
	return a.left + int(math.Round((x-a.xMin)/(a.xMax-a.xMin)*float64(a.right-a.left)))
}

func (a plotArea) py(y float64) int {
	return a.bottom - int(math.Round((y-a.yMin)/(a.yMax-a.yMin)*float64(a.bottom-a.top)))
}

// dataX returns the data x at the centre of pixel column px
func (a plotArea) dataX(px int) float64 {
	return a.xMin + (float64(px-a.left)+0.5)/float64(a.right-a.left)*(a.xMax-a.xMin)
}

// dataY returns the data y at the centre of pixel row py
func (a plotArea) dataY(py int) float64 {
	return a.yMax - (float64(py-a.top)+0.5)/float64(a.bottom-a.top)*(a.yMax-a.yMin)
}

// canvas wraps a go-chart raster renderer with the drawing helpers the
// grid charts need
type canvas struct {
	r     chart.Renderer
	scale func(float64) int
}

func (r *renderer) newCanvas() (*canvas, error) {
	w, h := r.size()
	rr, err := chart.PNG(w, h)
	if err != nil {
		return nil, err
	}
	rr.SetDPI(r.cfg.DPI)

	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, err
	}
	rr.SetFont(font)

	c := &canvas{r: rr, scale: r.scale}
	c.fillRect(0, 0, w, h, drawing.ColorWhite)
	return c, nil
}

func (c *canvas) fillRect(x0, y0, x1, y1 int, color drawing.Color) {
	c.r.SetFillColor(color)
	c.r.SetStrokeWidth(0)
	c.r.MoveTo(x0, y0)
	c.r.LineTo(x1, y0)
	c.r.LineTo(x1, y1)
	c.r.LineTo(x0, y1)
	c.r.Close()
	c.r.Fill()
}

func (c *canvas) line(x0, y0, x1, y1 int, color drawing.Color, width float64) {
	c.r.SetStrokeColor(color)
	c.r.SetStrokeWidth(width)
	c.r.MoveTo(x0, y0)
	c.r.LineTo(x1, y1)
	c.r.Stroke()
}

func (c *canvas) rect(x0, y0, x1, y1 int, color drawing.Color, width float64) {
	c.r.SetStrokeColor(color)
	c.r.SetStrokeWidth(width)
	c.r.MoveTo(x0, y0)
	c.r.LineTo(x1, y0)
	c.r.LineTo(x1, y1)
	c.r.LineTo(x0, y1)
	c.r.Close()
	c.r.Stroke()
}

// text draws body with its horizontal centre (align 0), left edge (align -1)
// or right edge (align 1) at x and its baseline at y
func (c *canvas) text(body string, x, y int, size float64, align int) chart.Box {
	c.r.SetFontSize(size)
	c.r.SetFontColor(drawing.ColorBlack)
	box := c.r.MeasureText(body)
	switch align {
	case 0:
		x -= box.Width() / 2
	case 1:
		x -= box.Width()
	}
	c.r.Text(body, x, y)
	return box
}

// verticalText draws body rotated to read bottom-to-top, centred on cy
func (c *canvas) verticalText(body string, x, cy int, size float64) {
	c.r.SetFontSize(size)
	c.r.SetFontColor(drawing.ColorBlack)
	box := c.r.MeasureText(body)
	c.r.SetTextRotation(1.5 * math.Pi)
	c.r.Text(body, x, cy+box.Width()/2)
	c.r.ClearTextRotation()
}

func (c *canvas) png() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.r.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// niceTicks returns round tick positions inside [lo, hi]
func niceTicks(lo, hi float64, target int) []float64 {
	if hi <= lo || target < 1 {
		return []float64{lo}
	}
	raw := (hi - lo) / float64(target)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	step := mag * 10
	for _, m := range []float64{1, 2, 2.5, 5, 10} {
		if raw <= m*mag {
			step = m * mag
			break
		}
	}

	var ticks []float64
	for k := math.Ceil(lo/step - 1e-9); k*step <= hi+step*1e-9; k++ {
		// snap away float drift so labels stay round
		ticks = append(ticks, math.Round(k*step*1e9)/1e9)
	}
	return ticks
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

// gridLayout computes the plot area for a grid dataset on this renderer
func (r *renderer) gridLayout(ds *models.SweepDataset, colorbar bool) plotArea {
	w, h := r.size()
	right := w - r.scale(110)
	if colorbar {
		right = w - r.scale(430)
	}
	return plotArea{
		left:   r.scale(250),
		top:    r.scale(170),
		right:  right,
		bottom: h - r.scale(230),
		xMin:   ds.VelocityAxis[0],
		xMax:   ds.VelocityAxis[len(ds.VelocityAxis)-1],
		yMin:   ds.PorosityAxis[0],
		yMax:   ds.PorosityAxis[len(ds.PorosityAxis)-1],
	}
}

// drawAxes draws the frame, ticks, tick labels, axis labels and title
func (c *canvas) drawAxes(a plotArea, title string) {
	tick := c.scale(18)
	black := drawing.ColorBlack

	c.rect(a.left, a.top, a.right, a.bottom, black, float64(c.scale(3)))

	for _, t := range niceTicks(a.xMin, a.xMax, 5) {
		x := a.px(t)
		c.line(x, a.bottom, x, a.bottom+tick, black, float64(c.scale(3)))
		c.text(formatTick(t), x, a.bottom+tick+c.scale(50), 8, 0)
	}
	for _, t := range niceTicks(a.yMin, a.yMax, 5) {
		y := a.py(t)
		c.line(a.left-tick, y, a.left, y, black, float64(c.scale(3)))
		c.text(formatTick(t), a.left-tick-c.scale(12), y+c.scale(15), 8, 1)
	}

	c.text(LabelVelocity, (a.left+a.right)/2, a.bottom+c.scale(165), 9, 0)
	c.verticalText(LabelPorosity, c.scale(70), (a.top+a.bottom)/2, 9)
	c.text(title, (a.left+a.right)/2, a.top-c.scale(60), 11, 0)
}

func gridField(ds *models.SweepDataset) field {
	return field{xs: ds.VelocityAxis, ys: ds.PorosityAxis, z: ds.Matrix()}
}

// renderHeatmap draws a filled-contour map of a grid sweep with a colour bar
func (r *renderer) renderHeatmap(ds *models.SweepDataset) ([]byte, error) {
	if ds.Kind != models.SweepGrid {
		return nil, fmt.Errorf("%w: heatmap needs a grid sweep", ErrNoData)
	}
	f := gridField(ds)
	lo, hi, ok := f.bounds()
	if !ok {
		return nil, fmt.Errorf("%w: grid has no finite values", ErrNoData)
	}

	c, err := r.newCanvas()
	if err != nil {
		return nil, fmt.Errorf("failed to create canvas: %w", err)
	}
	a := r.gridLayout(ds, true)

	// scanline fill: one rectangle per run of equal band on each pixel row
	for py := a.top; py < a.bottom; py++ {
		y := a.dataY(py)
		runStart, runBand := a.left, -1
		for px := a.left; px <= a.right; px++ {
			band := -1
			if px < a.right {
				if v := f.at(a.dataX(px), y); !math.IsNaN(v) {
					band = bandIndex(v, lo, hi, HeatmapLevels)
				}
			}
			if band == runBand {
				continue
			}
			if runBand >= 0 {
				c.fillRect(runStart, py, px, py+1, viridis.at(float64(runBand)/float64(HeatmapLevels-1)))
			}
			runStart, runBand = px, band
		}
	}

	c.drawAxes(a, TitleHeatmap)
	c.drawColorbar(a, lo, hi)
	return c.png()
}

// drawColorbar draws the band legend to the right of the plot area
func (c *canvas) drawColorbar(a plotArea, lo, hi float64) {
	x0 := a.right + c.scale(80)
	x1 := x0 + c.scale(60)
	height := float64(a.bottom - a.top)

	for i := 0; i < HeatmapLevels; i++ {
		yb := a.bottom - int(math.Round(float64(i)*height/HeatmapLevels))
		yt := a.bottom - int(math.Round(float64(i+1)*height/HeatmapLevels))
		c.fillRect(x0, yt, x1, yb, viridis.at(float64(i)/float64(HeatmapLevels-1)))
	}
	c.rect(x0, a.top, x1, a.bottom, drawing.ColorBlack, float64(c.scale(2)))

	edges := levelBounds(lo, hi, HeatmapLevels)
	for i := 0; i < len(edges); i += 4 {
		y := a.bottom - int(math.Round(float64(i)*height/HeatmapLevels))
		c.line(x1, y, x1+c.scale(14), y, drawing.ColorBlack, float64(c.scale(2)))
		c.text(formatTick(edges[i]), x1+c.scale(22), y+c.scale(13), 7, -1)
	}
	c.verticalText(LabelRe, a.right+c.scale(390), (a.top+a.bottom)/2, 9)
}

// renderContour draws labelled iso-lines of a grid sweep
func (r *renderer) renderContour(ds *models.SweepDataset) ([]byte, error) {
	if ds.Kind != models.SweepGrid {
		return nil, fmt.Errorf("%w: contour needs a grid sweep", ErrNoData)
	}
	f := gridField(ds)
	lo, hi, ok := f.bounds()
	if !ok {
		return nil, fmt.Errorf("%w: grid has no finite values", ErrNoData)
	}

	c, err := r.newCanvas()
	if err != nil {
		return nil, fmt.Errorf("failed to create canvas: %w", err)
	}
	a := r.gridLayout(ds, false)

	levels := isoLevels(lo, hi, ContourLevels)
	width := float64(r.scale(5))
	pad := c.scale(6)
	area := labelBox{a.left, a.top, a.right, a.bottom}
	type label struct {
		text string
		box  labelBox
	}
	var labels []label
	var taken []labelBox

	for k, level := range levels {
		segs := f.isoline(level)
		if len(segs) == 0 {
			continue
		}
		color := plasma.at(float64(k) / float64(len(levels)-1))
		mids := make([]image.Point, len(segs))
		for i, s := range segs {
			x0, y0, x1, y1 := a.px(s.A.X), a.py(s.A.Y), a.px(s.B.X), a.py(s.B.Y)
			c.line(x0, y0, x1, y1, color, width)
			mids[i] = image.Pt((x0+x1)/2, (y0+y1)/2)
		}

		text := formatTick(level)
		c.r.SetFontSize(6)
		tb := c.r.MeasureText(text)
		// stagger levels along their lines so labels do not stack up
		frac := float64(k+1) / float64(len(levels)+1)
		box, ok := placeLabel(mids, frac, tb.Width()+2*pad, tb.Height()+2*pad, area, taken)
		if !ok {
			continue
		}
		taken = append(taken, box)
		labels = append(labels, label{text: text, box: box})
	}

	// labels go on top of every line
	for _, l := range labels {
		c.fillRect(l.box.x0, l.box.y0, l.box.x1, l.box.y1, drawing.ColorWhite)
		c.text(l.text, (l.box.x0+l.box.x1)/2, l.box.y1-pad, 6, 0)
	}

	c.drawAxes(a, TitleContour)
	return c.png()
}

// labelBox is a pixel rectangle [x0, x1) x [y0, y1)
type labelBox struct{ x0, y0, x1, y1 int }

func (b labelBox) overlaps(o labelBox) bool {
	return b.x0 < o.x1 && o.x0 < b.x1 && b.y0 < o.y1 && o.y0 < b.y1
}

func (b labelBox) within(o labelBox) bool {
	return b.x0 >= o.x0 && b.x1 <= o.x1 && b.y0 >= o.y0 && b.y1 <= o.y1
}

// placeLabel picks a w x h box centred on one of the iso-line midpoints.
// Candidates are tried outward from frac of the way along the line; the box
// must sit inside area and clear every taken box.
func placeLabel(mids []image.Point, frac float64, w, h int, area labelBox, taken []labelBox) (labelBox, bool) {
	if len(mids) == 0 {
		return labelBox{}, false
	}
	start := int(frac * float64(len(mids)-1))
	fits := func(i int) (labelBox, bool) {
		if i < 0 || i >= len(mids) {
			return labelBox{}, false
		}
		m := mids[i]
		b := labelBox{m.X - w/2, m.Y - h/2, m.X - w/2 + w, m.Y - h/2 + h}
		if !b.within(area) {
			return labelBox{}, false
		}
		for _, t := range taken {
			if b.overlaps(t) {
				return labelBox{}, false
			}
		}
		return b, true
	}

	for d := 0; d < len(mids); d++ {
		if b, ok := fits(start + d); ok {
			return b, true
		}
		if d == 0 {
			continue
		}
		if b, ok := fits(start - d); ok {
			return b, true
		}
	}
	return labelBox{}, false
}
