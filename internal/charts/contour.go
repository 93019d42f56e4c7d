package charts

import (
	"math"
)

// point is a position in data coordinates (x = v, y = phi)
type point struct{ X, Y float64 }

// segment is one piece of an iso-line inside a grid cell
type segment struct{ A, B point }

// field is a scalar grid z[row][col] over ys (rows) and xs (columns).
// Both axes are evenly spaced and increasing.
type field struct {
	xs, ys []float64
	z      [][]float64
}

// bounds returns the minimum and maximum finite value of the field
func (f field) bounds() (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range f.z {
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
			ok = true
		}
	}
	return lo, hi, ok
}

// at bilinearly interpolates the field; NaN when any corner is not finite
func (f field) at(x, y float64) float64 {
	nx, ny := len(f.xs), len(f.ys)
	if nx < 2 || ny < 2 {
		return math.NaN()
	}
	fx := (x - f.xs[0]) / (f.xs[nx-1] - f.xs[0]) * float64(nx-1)
	fy := (y - f.ys[0]) / (f.ys[ny-1] - f.ys[0]) * float64(ny-1)
	if fx < 0 || fy < 0 || fx > float64(nx-1) || fy > float64(ny-1) {
		return math.NaN()
	}

	j := int(math.Min(math.Floor(fx), float64(nx-2)))
	i := int(math.Min(math.Floor(fy), float64(ny-2)))
	tx, ty := fx-float64(j), fy-float64(i)

	z00, z01 := f.z[i][j], f.z[i][j+1]
	z10, z11 := f.z[i+1][j], f.z[i+1][j+1]
	v := (z00*(1-tx)+z01*tx)*(1-ty) + (z10*(1-tx)+z11*tx)*ty
	if math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}

// levelBounds returns n+1 evenly spaced band edges covering [lo, hi]
func levelBounds(lo, hi float64, n int) []float64 {
	out := make([]float64, n+1)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(n)
	}
	return out
}

// isoLevels returns n levels strictly inside (lo, hi)
func isoLevels(lo, hi float64, n int) []float64 {
	edges := levelBounds(lo, hi, n+1)
	return edges[1 : n+1]
}

// bandIndex maps v to one of n bands over [lo, hi]
func bandIndex(v, lo, hi float64, n int) int {
	if hi <= lo {
		return 0
	}
	i := int((v - lo) / (hi - lo) * float64(n))
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// isoline runs marching squares over the field for one level.
// Cells with a non-finite corner are skipped.
func (f field) isoline(level float64) []segment {
	var segs []segment
	for i := 0; i+1 < len(f.ys); i++ {
		for j := 0; j+1 < len(f.xs); j++ {
			// corners counter-clockwise from bottom-left
			c := [4]float64{f.z[i][j], f.z[i][j+1], f.z[i+1][j+1], f.z[i+1][j]}
			p := [4]point{
				{f.xs[j], f.ys[i]},
				{f.xs[j+1], f.ys[i]},
				{f.xs[j+1], f.ys[i+1]},
				{f.xs[j], f.ys[i+1]},
			}

			finite := true
			idx := 0
			for k, v := range c {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					finite = false
					break
				}
				if v > level {
					idx |= 1 << k
				}
			}
			if !finite || idx == 0 || idx == 15 {
				continue
			}

			// crossing on edge k, between corner k and corner k+1
			edge := func(k int) point {
				a, b := k, (k+1)%4
				t := (level - c[a]) / (c[b] - c[a])
				return point{
					X: p[a].X + t*(p[b].X-p[a].X),
					Y: p[a].Y + t*(p[b].Y-p[a].Y),
				}
			}

			switch idx {
			case 1, 14:
				segs = append(segs, segment{edge(3), edge(0)})
			case 2, 13:
				segs = append(segs, segment{edge(0), edge(1)})
			case 3, 12:
				segs = append(segs, segment{edge(3), edge(1)})
			case 4, 11:
				segs = append(segs, segment{edge(1), edge(2)})
			case 6, 9:
				segs = append(segs, segment{edge(0), edge(2)})
			case 7, 8:
				segs = append(segs, segment{edge(2), edge(3)})
			case 5, 10:
				// saddle: disambiguate with the cell centre
				centre := (c[0] + c[1] + c[2] + c[3]) / 4
				if (centre > level) == (idx == 5) {
					segs = append(segs, segment{edge(3), edge(2)}, segment{edge(0), edge(1)})
				} else {
					segs = append(segs, segment{edge(3), edge(0)}, segment{edge(1), edge(2)})
				}
			}
		}
	}
	return segs
}
