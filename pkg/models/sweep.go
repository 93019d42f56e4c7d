package models

// SweepKind identifies which inputs a sweep varies
type SweepKind string

const (
	SweepVelocity SweepKind = "v"
	SweepPorosity SweepKind = "phi"
	SweepGrid     SweepKind = "grid"
)

// Column headers used by the table view and every export
const (
	ColumnVelocity = "v (cm/s)"
	ColumnPorosity = "φ"
	ColumnRe       = "Re"
)

// SweepSample is a single evaluation point. For one-dimensional sweeps the
// held input is recorded as well, but only the varied one is tabulated.
type SweepSample struct {
	Velocity float64 `json:"v" doc:"Seepage velocity v in cm/s"`
	Porosity float64 `json:"phi" doc:"Porosity φ"`
	Re       float64 `json:"re" doc:"Reynolds number"`
}

// SweepDataset is the ordered result of a sweep.
// Grid samples are flattened row-major: phi is the row, v the column.
type SweepDataset struct {
	Kind    SweepKind
	Samples []SweepSample

	// Grid axes, only set for SweepGrid
	VelocityAxis []float64
	PorosityAxis []float64
}

// Columns returns the table headers for the dataset kind
func (d *SweepDataset) Columns() []string {
	switch d.Kind {
	case SweepVelocity:
		return []string{ColumnVelocity, ColumnRe}
	case SweepPorosity:
		return []string{ColumnPorosity, ColumnRe}
	default:
		return []string{ColumnVelocity, ColumnPorosity, ColumnRe}
	}
}

// Row returns the tabulated values of sample i
func (d *SweepDataset) Row(i int) []float64 {
	s := d.Samples[i]
	switch d.Kind {
	case SweepVelocity:
		return []float64{s.Velocity, s.Re}
	case SweepPorosity:
		return []float64{s.Porosity, s.Re}
	default:
		return []float64{s.Velocity, s.Porosity, s.Re}
	}
}

// Head returns at most n rows of the table view
func (d *SweepDataset) Head(n int) [][]float64 {
	if n < 0 {
		n = 0
	}
	if n > len(d.Samples) {
		n = len(d.Samples)
	}
	rows := make([][]float64, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, d.Row(i))
	}
	return rows
}

// Matrix reshapes a grid dataset into z[row][col] with rows along phi.
// It returns nil for one-dimensional datasets.
func (d *SweepDataset) Matrix() [][]float64 {
	if d.Kind != SweepGrid {
		return nil
	}
	cols := len(d.VelocityAxis)
	z := make([][]float64, len(d.PorosityAxis))
	for i := range z {
		z[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			z[i][j] = d.Samples[i*cols+j].Re
		}
	}
	return z
}
