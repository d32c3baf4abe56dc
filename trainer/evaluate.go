package trainer

import (
	"github.com/rcofre/generative-neural-models/learning"
	"github.com/rcofre/generative-neural-models/model"
	"github.com/rcofre/generative-neural-models/sampler"
	"github.com/rcofre/generative-neural-models/stats"
)

// Report compares the statistics of freshly sampled chains with a reference.
type Report struct {
	Model       stats.Statistics
	CovDistance float64
	PKDistance  float64
	Samples     *sampler.Batch
}

// Evaluate draws rows independent chains from the all-silent state, advances
// them by steps Gibbs updates under p in lanes parallel lanes, and compares
// their statistics to ref. The chains of the trainer are not touched.
func Evaluate(p *model.Params, ref stats.Statistics, rows, steps, lanes int, seed uint64) (Report, error) {
	if lanes <= 0 {
		lanes = 1
	}
	if lanes > rows && rows > 0 {
		lanes = rows
	}
	var set = learning.NewLanes(sampler.NewBatch(rows, p.Units), lanes, seed)
	if err := set.Advance(p, steps, lanes); err != nil {
		return Report{}, err
	}
	joined, err := sampler.Join(set.Batches)
	if err != nil {
		return Report{}, err
	}
	var r = Report{Model: stats.Compute(joined), Samples: joined}
	if ref.Units == p.Units {
		r.CovDistance, r.PKDistance = stats.Distance(ref, r.Model)
	}
	return r, nil
}
