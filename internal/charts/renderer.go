package charts

import (
	"errors"
	"fmt"
	"math"

	"github.com/RMahshie/reynolds/pkg/models"
)

// Figure geometry. 6.4 x 4.8 in at 300 DPI gives a 1920 x 1440 PNG.
const (
	DefaultDPI          = 300
	DefaultWidthInches  = 6.4
	DefaultHeightInches = 4.8

	HeatmapLevels = 20
	ContourLevels = 15
)

// Axis and title text
const (
	LabelVelocity = "Seepage velocity v (cm/s)"
	LabelPorosity = "Porosity φ"
	LabelRe       = "Reynolds number Re"

	TitleVelocity = "Re vs v"
	TitlePorosity = "Re vs φ"
	TitleHeatmap  = "Re distribution over v and φ (heatmap)"
	TitleContour  = "Re contours over v and φ"
)

var ErrNoData = errors.New("no chart data")

// Renderer draws the chart of a render pass as a PNG
type Renderer interface {
	Render(pass *models.RenderPass) ([]byte, error)
}

// Config holds the output resolution
type Config struct {
	DPI          float64
	WidthInches  float64
	HeightInches float64
}

// DefaultConfig returns the 300 DPI figure configuration
func DefaultConfig() Config {
	return Config{
		DPI:          DefaultDPI,
		WidthInches:  DefaultWidthInches,
		HeightInches: DefaultHeightInches,
	}
}

type renderer struct {
	cfg Config
}

// NewRenderer creates a chart renderer; zero fields fall back to defaults
func NewRenderer(cfg Config) Renderer {
	def := DefaultConfig()
	if cfg.DPI <= 0 {
		cfg.DPI = def.DPI
	}
	if cfg.WidthInches <= 0 {
		cfg.WidthInches = def.WidthInches
	}
	if cfg.HeightInches <= 0 {
		cfg.HeightInches = def.HeightInches
	}
	return &renderer{cfg: cfg}
}

// size returns the canvas size in pixels
func (r *renderer) size() (int, int) {
	return int(math.Round(r.cfg.WidthInches * r.cfg.DPI)), int(math.Round(r.cfg.HeightInches * r.cfg.DPI))
}

// scale converts a length laid out for the 1920 px reference canvas
func (r *renderer) scale(px float64) int {
	w, _ := r.size()
	return int(px * float64(w) / 1920)
}

// Render implements Renderer
func (r *renderer) Render(pass *models.RenderPass) ([]byte, error) {
	if pass == nil || !pass.Valid || pass.Dataset == nil || len(pass.Dataset.Samples) == 0 {
		return nil, ErrNoData
	}

	switch pass.Mode {
	case models.PlotVelocity, models.PlotPorosity:
		return r.renderLine(pass)
	case models.PlotHeatmap:
		return r.renderHeatmap(pass.Dataset)
	case models.PlotContour:
		return r.renderContour(pass.Dataset)
	}
	return nil, fmt.Errorf("unsupported plot mode %q", pass.Mode)
}
