package models

// InputParameters holds the five physical inputs of the seepage Reynolds number
type InputParameters struct {
	Velocity     float64 `json:"v" minimum:"0" example:"0.1" doc:"Seepage velocity v in cm/s"`
	Permeability float64 `json:"k" minimum:"0" example:"100" doc:"Permeability K in μm²"`
	Density      float64 `json:"rho" minimum:"0" example:"1" doc:"Fluid density ρ in g/cm³"`
	Viscosity    float64 `json:"mu" minimum:"0" example:"1" doc:"Dynamic viscosity μ in mPa·s"`
	Porosity     float64 `json:"phi" minimum:"0" maximum:"0.8" example:"0.25" doc:"Porosity φ as a fraction"`
}

// DefaultInputParameters returns the values a fresh calculator starts with
func DefaultInputParameters() InputParameters {
	return InputParameters{
		Velocity:     0.1,
		Permeability: 100.0,
		Density:      1.0,
		Viscosity:    1.0,
		Porosity:     0.25,
	}
}

// PlotMode selects which chart a render pass produces
type PlotMode string

const (
	PlotVelocity PlotMode = "velocity"
	PlotPorosity PlotMode = "porosity"
	PlotHeatmap  PlotMode = "heatmap"
	PlotContour  PlotMode = "contour"
)

// PlotModes lists every mode in display order
var PlotModes = []PlotMode{PlotVelocity, PlotPorosity, PlotHeatmap, PlotContour}

// Valid reports whether m is a known plot mode
func (m PlotMode) Valid() bool {
	switch m {
	case PlotVelocity, PlotPorosity, PlotHeatmap, PlotContour:
		return true
	}
	return false
}

// Sweep returns the sweep kind that feeds this plot mode
func (m PlotMode) Sweep() SweepKind {
	switch m {
	case PlotVelocity:
		return SweepVelocity
	case PlotPorosity:
		return SweepPorosity
	case PlotHeatmap, PlotContour:
		return SweepGrid
	}
	return ""
}

// Label returns the human-readable name of the mode
func (m PlotMode) Label() string {
	switch m {
	case PlotVelocity:
		return "Seepage velocity v"
	case PlotPorosity:
		return "Porosity φ"
	case PlotHeatmap:
		return "Dual-parameter heatmap (v-φ)"
	case PlotContour:
		return "Dual-parameter contour (v-φ)"
	}
	return string(m)
}

// Calculation is the outcome of a guarded single-point evaluation
type Calculation struct {
	Parameters InputParameters `json:"parameters" doc:"Inputs the result was computed from"`
	Re         float64         `json:"re" doc:"Reynolds number"`
}

// RenderPass is one recomputation of the calculator for the current inputs.
// When Valid is false, Re and Dataset are nil and Warning explains why.
type RenderPass struct {
	Parameters InputParameters
	Mode       PlotMode
	Valid      bool
	Warning    string
	Re         *float64
	Dataset    *SweepDataset
}
