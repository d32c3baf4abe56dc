package learning

import (
	"github.com/rcofre/generative-neural-models/model"
	"github.com/rcofre/generative-neural-models/parallel"
	"github.com/rcofre/generative-neural-models/stats"
)

// Gradient advances every lane by steps Gibbs updates under p, computes each
// lane's statistics and averages them into the model statistics. It returns
// emp - model laid out like p.Vec, together with the model statistics.
//
// Lanes run in parallel, at most threads at once, and are left in their
// advanced state for the next call. p is only read.
func Gradient(p *model.Params, lanes *Lanes, emp stats.Statistics, steps, threads int) ([]float64, stats.Statistics, error) {
	var perLane = make([]stats.Statistics, lanes.Len())
	err := parallel.ForEachErr(lanes.Len(), threads, func(i int) error {
		if err := lanes.Advance1(i, p, steps); err != nil {
			return err
		}
		perLane[i] = stats.Compute(lanes.Batches[i])
		return nil
	})
	if err != nil {
		return nil, stats.Statistics{}, err
	}
	var mdl = stats.Mean(perLane)
	return stats.Flatten(emp, mdl), mdl, nil
}
