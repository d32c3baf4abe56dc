package model

import (
	"math"

	"github.com/pkg/errors"
)

// ErrShapeMismatch is returned when J, VK or a data matrix do not agree on the number of units.
var ErrShapeMismatch = errors.New("shape mismatch")

// Params are the parameters (J, VK) of a model over Units binary units.
type Params struct {
	Units int
	Vec   []float64
}

// Len returns the length of the flat parameter vector for n units.
func Len(n int) int {
	return n*n + n + 1
}

// New returns zero parameters for n units.
func New(n int) *Params {
	if n < 0 {
		n = 0
	}
	return &Params{Units: n, Vec: make([]float64, Len(n))}
}

// FromJVK builds parameters from a coupling matrix given as rows and a potential vector.
// J must be n by n and VK must have length n+1.
func FromJVK(j [][]float64, vk []float64) (*Params, error) {
	n := len(j)
	for i, row := range j {
		if len(row) != n {
			return nil, errors.Wrapf(ErrShapeMismatch, "J row %d has %d entries, want %d", i, len(row), n)
		}
	}
	if len(vk) != n+1 {
		return nil, errors.Wrapf(ErrShapeMismatch, "VK has length %d, want %d", len(vk), n+1)
	}
	p := New(n)
	for i, row := range j {
		copy(p.Vec[i*n:(i+1)*n], row)
	}
	copy(p.VK(), vk)
	return p, nil
}

// Validate checks that the flat vector matches Units.
func (p *Params) Validate() error {
	if p == nil {
		return errors.Wrap(ErrShapeMismatch, "nil parameters")
	}
	if p.Units < 0 || len(p.Vec) != Len(p.Units) {
		return errors.Wrapf(ErrShapeMismatch, "parameter vector has length %d, want %d for %d units", len(p.Vec), Len(p.Units), p.Units)
	}
	return nil
}

// JAt returns J[i,j].
func (p *Params) JAt(i, j int) float64 {
	return p.Vec[i*p.Units+j]
}

// JRow returns row i of J as a slice sharing the parameter storage.
func (p *Params) JRow(i int) []float64 {
	return p.Vec[i*p.Units : (i+1)*p.Units]
}

// VK returns the population count potential, sharing the parameter storage.
func (p *Params) VK() []float64 {
	return p.Vec[p.Units*p.Units:]
}

// Rows returns a copy of J as rows.
func (p *Params) Rows() [][]float64 {
	var out = make([][]float64, p.Units)
	for i := range out {
		out[i] = append([]float64(nil), p.JRow(i)...)
	}
	return out
}

// Clone returns a deep copy.
func (p *Params) Clone() *Params {
	return &Params{Units: p.Units, Vec: append([]float64(nil), p.Vec...)}
}

// Asymmetry returns the largest |J[i,j] - J[j,i]|.
func (p *Params) Asymmetry() (worst float64) {
	for i := 0; i < p.Units; i++ {
		for j := i + 1; j < p.Units; j++ {
			worst = math.Max(worst, math.Abs(p.JAt(i, j)-p.JAt(j, i)))
		}
	}
	return
}

// ShapeError reports that what has got units where want were expected.
func ShapeError(want, got int, what string) error {
	return errors.Wrapf(ErrShapeMismatch, "%s has %d units, want %d", what, got, want)
}
