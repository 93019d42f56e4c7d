package processing

import (
	"errors"
	"fmt"

	"github.com/RMahshie/reynolds/pkg/models"
)

// Sweep ranges and resolutions
const (
	VelocityMin = 0.01
	VelocityMax = 2.0
	PorosityMin = 0.01
	PorosityMax = 0.8

	LinePoints = 100
	GridPoints = 50
)

var ErrUnknownSweep = errors.New("unknown sweep kind")

// Linspace returns n evenly spaced values over [start, stop], both inclusive
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	// pin the end point so it is exact
	out[n-1] = stop
	return out
}

// SweepVelocity varies v over [0.01, 2.0] holding the other inputs
func SweepVelocity(p models.InputParameters) *models.SweepDataset {
	vs := Linspace(VelocityMin, VelocityMax, LinePoints)
	samples := make([]models.SweepSample, len(vs))
	for i, v := range vs {
		samples[i] = models.SweepSample{
			Velocity: v,
			Porosity: p.Porosity,
			Re:       Evaluate(v, p.Permeability, p.Density, p.Viscosity, p.Porosity),
		}
	}
	return &models.SweepDataset{Kind: models.SweepVelocity, Samples: samples}
}

// SweepPorosity varies phi over [0.01, 0.8] holding the other inputs
func SweepPorosity(p models.InputParameters) *models.SweepDataset {
	phis := Linspace(PorosityMin, PorosityMax, LinePoints)
	samples := make([]models.SweepSample, len(phis))
	for i, phi := range phis {
		samples[i] = models.SweepSample{
			Velocity: p.Velocity,
			Porosity: phi,
			Re:       Evaluate(p.Velocity, p.Permeability, p.Density, p.Viscosity, phi),
		}
	}
	return &models.SweepDataset{Kind: models.SweepPorosity, Samples: samples}
}

// SweepGrid evaluates the 50x50 outer product of v and phi.
// Samples are row-major with phi outer and v inner.
func SweepGrid(p models.InputParameters) *models.SweepDataset {
	vs := Linspace(VelocityMin, VelocityMax, GridPoints)
	phis := Linspace(PorosityMin, PorosityMax, GridPoints)

	samples := make([]models.SweepSample, 0, len(vs)*len(phis))
	for _, phi := range phis {
		for _, v := range vs {
			samples = append(samples, models.SweepSample{
				Velocity: v,
				Porosity: phi,
				Re:       Evaluate(v, p.Permeability, p.Density, p.Viscosity, phi),
			})
		}
	}
	return &models.SweepDataset{
		Kind:         models.SweepGrid,
		Samples:      samples,
		VelocityAxis: vs,
		PorosityAxis: phis,
	}
}

// Sweep dispatches on kind. Inputs are not validated.
func Sweep(p models.InputParameters, kind models.SweepKind) (*models.SweepDataset, error) {
	switch kind {
	case models.SweepVelocity:
		return SweepVelocity(p), nil
	case models.SweepPorosity:
		return SweepPorosity(p), nil
	case models.SweepGrid:
		return SweepGrid(p), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSweep, kind)
}
