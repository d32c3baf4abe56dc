package sampler

import (
	"math"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"github.com/rcofre/generative-neural-models/model"
)

// SpikeProbability returns the conditional probability that a unit is active
// given its energy difference delta (energy if active minus energy if silent).
// Overflow of exp saturates to 0 or 1, NaN propagates.
func SpikeProbability(delta float64) float64 {
	return 1 / (1 + math.Exp(delta))
}

// delta is the local field of unit i plus the change of the K potential:
// J[i,i] + 2*sum_{j!=i} J[i,j]*s_j + VK[others+1] - VK[others].
func delta(jrow, vk []float64, row []byte, i, others int) float64 {
	var coupling float64
	for j, s := range row {
		if s != 0 && j != i {
			coupling += jrow[j]
		}
	}
	return jrow[i] + 2*coupling + vk[others+1] - vk[others]
}

// Advance performs steps single-site Gibbs updates on every row of b in place.
// Each step visits one unit, continuing the cyclic order 0, 1, ..., n-1, 0, ...
// from the batch cursor, and resamples that unit in every row with one uniform
// draw from rng per row. The result is deterministic given rng.
func Advance(b *Batch, p *model.Params, steps int, rng *rand.Rand) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if b.units != p.Units {
		return errors.Wrapf(model.ErrShapeMismatch, "batch has %d units, parameters have %d", b.units, p.Units)
	}
	if steps <= 0 || b.units == 0 {
		return nil
	}
	var vk = p.VK()
	for step := 0; step < steps; step++ {
		var i = b.cursor
		var jrow = p.JRow(i)
		for r := 0; r < b.rows; r++ {
			var row = b.cells[r*b.units : (r+1)*b.units]
			var others = b.counts[r] - int(row[i])

			var spike byte
			if rng.Float64() < SpikeProbability(delta(jrow, vk, row, i, others)) {
				spike = 1
			}
			row[i] = spike
			b.counts[r] = others + int(spike)
		}
		b.cursor++
		if b.cursor == b.units {
			b.cursor = 0
		}
	}
	return nil
}
