// Package stats computes the sufficient statistics of a K-pairwise model from a
// batch of binary states: the pairwise co-activation matrix and the population
// count distribution.
package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/rcofre/generative-neural-models/sampler"
)

// Statistics are the second moment matrix Cov = B^T B / M (not centered) and the
// population count histogram PK over K = 0..n, normalized by M.
type Statistics struct {
	Units int
	Cov   []float64 // n*n, row-major
	PK    []float64 // n+1
}

// Zero returns all-zero statistics for n units.
func Zero(n int) Statistics {
	return Statistics{Units: n, Cov: make([]float64, n*n), PK: make([]float64, n+1)}
}

// Compute returns the statistics of b. An empty batch gives zero statistics.
func Compute(b *sampler.Batch) Statistics {
	var n, m = b.Units(), b.Rows()
	var s = Zero(n)
	if m == 0 {
		return s
	}
	for i := 0; i < m; i++ {
		s.PK[b.Count(i)]++
	}
	floats.Scale(1/float64(m), s.PK)
	if n == 0 {
		return s
	}

	var data = make([]float64, m*n)
	for i, v := range b.Bytes() {
		data[i] = float64(v)
	}
	var cov mat.SymDense
	cov.SymOuterK(1/float64(m), mat.NewDense(m, n, data).T())
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			s.Cov[i*n+j] = cov.At(i, j)
		}
	}
	return s
}

// Mean averages statistics of equal width, as the reduce step over lanes.
func Mean(list []Statistics) Statistics {
	if len(list) == 0 {
		return Zero(0)
	}
	var out = Zero(list[0].Units)
	for _, s := range list {
		floats.Add(out.Cov, s.Cov)
		floats.Add(out.PK, s.PK)
	}
	var inv = 1 / float64(len(list))
	floats.Scale(inv, out.Cov)
	floats.Scale(inv, out.PK)
	return out
}

// Flatten returns emp - mdl laid out like the model parameter vector:
// the n*n co-activation differences row-major, followed by the n+1 PK differences.
func Flatten(emp, mdl Statistics) []float64 {
	var n = emp.Units
	var out = make([]float64, n*n+n+1)
	floats.SubTo(out[:n*n], emp.Cov, mdl.Cov)
	floats.SubTo(out[n*n:], emp.PK, mdl.PK)
	return out
}

// Distance returns the largest absolute differences between two statistics, for
// the co-activation matrix and for PK separately.
func Distance(a, b Statistics) (cov, pk float64) {
	for i := range a.Cov {
		cov = math.Max(cov, math.Abs(a.Cov[i]-b.Cov[i]))
	}
	for i := range a.PK {
		pk = math.Max(pk, math.Abs(a.PK[i]-b.PK[i]))
	}
	return
}

// Rates returns the diagonal of Cov, the activation rate of every unit.
func (s Statistics) Rates() []float64 {
	var out = make([]float64, s.Units)
	for i := range out {
		out[i] = s.Cov[i*s.Units+i]
	}
	return out
}
