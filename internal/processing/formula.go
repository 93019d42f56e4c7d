package processing

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/RMahshie/reynolds/pkg/models"
)

// ReynoldsCoefficient is the empirical constant of the seepage Reynolds number
const ReynoldsCoefficient = 17.50

// Formula is the plain-text form used in reports
const Formula = "Re = vρ√K / (17.50 μ φ^(3/2))"

// InvalidParametersWarning is shown instead of a result when the guard fails
const InvalidParametersWarning = "Enter valid parameters to compute: v, K, ρ, μ and φ must all be positive."

var ErrInvalidParameters = errors.New("invalid parameters")

// Evaluate computes Re = v·ρ·√K / (17.50·μ·φ^1.5).
// There is no guard: zero or negative inputs yield ±Inf or NaN.
func Evaluate(v, k, rho, mu, phi float64) float64 {
	return (v * rho * math.Sqrt(k)) / (ReynoldsCoefficient * mu * math.Pow(phi, 1.5))
}

// EvaluateParams is Evaluate over an InputParameters value
func EvaluateParams(p models.InputParameters) float64 {
	return Evaluate(p.Velocity, p.Permeability, p.Density, p.Viscosity, p.Porosity)
}

// Validate checks that every input is strictly positive and finite
func Validate(p models.InputParameters) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"v", p.Velocity},
		{"K", p.Permeability},
		{"rho", p.Density},
		{"mu", p.Viscosity},
		{"phi", p.Porosity},
	}

	var bad []string
	for _, f := range fields {
		if !(f.value > 0) || math.IsInf(f.value, 1) {
			bad = append(bad, f.name)
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("%w: %s must be positive", ErrInvalidParameters, strings.Join(bad, ", "))
	}
	return nil
}

// Calculate runs the guard and evaluates the formula
func Calculate(p models.InputParameters) (float64, error) {
	if err := Validate(p); err != nil {
		return 0, err
	}
	return EvaluateParams(p), nil
}
