package charts

import (
	"bytes"
	"fmt"

	"github.com/RMahshie/reynolds/pkg/models"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	colorVelocity = drawing.ColorFromHex("1f77b4")
	colorPorosity = drawing.ColorFromHex("ffa500")
)

// renderLine draws Re against the varied input of a one-dimensional sweep
func (r *renderer) renderLine(pass *models.RenderPass) ([]byte, error) {
	ds := pass.Dataset
	xs := make([]float64, len(ds.Samples))
	ys := make([]float64, len(ds.Samples))

	var title, xLabel, legend string
	var color drawing.Color
	for i, s := range ds.Samples {
		ys[i] = s.Re
		if pass.Mode == models.PlotVelocity {
			xs[i] = s.Velocity
		} else {
			xs[i] = s.Porosity
		}
	}
	if pass.Mode == models.PlotVelocity {
		title, xLabel, color = TitleVelocity, LabelVelocity, colorVelocity
		legend = fmt.Sprintf("φ = %.2f", pass.Parameters.Porosity)
	} else {
		title, xLabel, color = TitlePorosity, LabelPorosity, colorPorosity
		legend = fmt.Sprintf("v = %.2f", pass.Parameters.Velocity)
	}

	w, h := r.size()
	graph := chart.Chart{
		Title:  title,
		Width:  w,
		Height: h,
		DPI:    r.cfg.DPI,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    r.scale(60),
				Left:   r.scale(40),
				Right:  r.scale(40),
				Bottom: r.scale(30),
			},
		},
		XAxis: chart.XAxis{Name: xLabel},
		YAxis: chart.YAxis{Name: LabelRe},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    legend,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: color,
					StrokeWidth: float64(r.scale(5)),
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render %s chart: %w", pass.Mode, err)
	}
	return buf.Bytes(), nil
}
