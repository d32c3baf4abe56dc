package trainer

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"

	"github.com/rcofre/generative-neural-models/datasets"
	"github.com/rcofre/generative-neural-models/hash"
	"github.com/rcofre/generative-neural-models/learning"
	"github.com/rcofre/generative-neural-models/model"
	"github.com/rcofre/generative-neural-models/stats"
)

// State is the phase of a Trainer.
type State int

const (
	Uninitialized State = iota
	BurnedIn
	Training
	Done
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case BurnedIn:
		return "burned in"
	case Training:
		return "training"
	case Done:
		return "done"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// bootstrapStream is the random stream of the bootstrap draw; lanes use streams 0..L-1.
const bootstrapStream = math.MaxUint64

// Iteration describes one finished training step.
type Iteration struct {
	Iteration   int
	GradNorm    float64 // euclidean norm of the gradient
	CovDistance float64 // max |empirical - model| over the co-activation matrix
	PKDistance  float64 // max |empirical - model| over the population count histogram
}

// Recorder receives every finished iteration. An error stops training.
type Recorder interface {
	Record(it Iteration) error
}

// Trainer fits a K-pairwise model. It owns the parameters and the persistent
// chain lanes; both are only mutated by BurnIn and Step.
type Trainer struct {
	hp     *learning.HyperParameters
	data   datasets.Dataset
	params *model.Params
	emp    stats.Statistics
	lanes  *learning.Lanes

	state     State
	iteration int

	// Recorder, when set, is called after every Step.
	Recorder Recorder
}

// New validates the shapes of data and init and computes the empirical statistics.
// init is copied; the caller's parameters are never modified.
func New(data datasets.Dataset, init *model.Params, hp *learning.HyperParameters) (*Trainer, error) {
	if err := hp.Validate(); err != nil {
		return nil, err
	}
	if err := init.Validate(); err != nil {
		return nil, err
	}
	if err := data.Validate(init.Units); err != nil {
		return nil, err
	}
	if data.Len() == 0 {
		return nil, errors.New("empty dataset")
	}
	batch, err := data.Batch()
	if err != nil {
		return nil, err
	}
	return &Trainer{
		hp:     hp,
		data:   data,
		params: init.Clone(),
		emp:    stats.Compute(batch),
	}, nil
}

// State returns the current phase.
func (t *Trainer) State() State {
	return t.state
}

// Iterations returns how many steps have been taken.
func (t *Trainer) Iterations() int {
	return t.iteration
}

// Params returns the current parameters. They change with every Step.
func (t *Trainer) Params() *model.Params {
	return t.params
}

// Empirical returns the statistics of the data.
func (t *Trainer) Empirical() stats.Statistics {
	return t.emp
}

// Lanes returns the persistent chains, nil before BurnIn.
func (t *Trainer) Lanes() *learning.Lanes {
	return t.lanes
}

// BurnIn draws Samples rows from the data with replacement, splits them into
// lanes and advances every lane by the burn-in length under the current parameters.
func (t *Trainer) BurnIn() error {
	if t.state != Uninitialized {
		return errors.Errorf("burn in: trainer is %s", t.state)
	}
	var rng = rand.New(rand.NewSource(hash.Mix(t.hp.Seed, bootstrapStream)))
	batch, err := t.data.Bootstrap(t.hp.Samples, rng)
	if err != nil {
		return err
	}
	t.lanes = learning.NewLanes(batch, t.hp.Lanes, t.hp.Seed)
	if t.lanes.Dropped > 0 {
		println("samples not divisible by lanes, dropped", t.lanes.Dropped, "chains")
	}
	if l := t.hp.Logger(); l != nil {
		l.Printf("burn in: %d lanes x %d chains, %d steps", t.lanes.Len(), t.lanes.Rows()/t.lanes.Len(), t.hp.BurnIn())
	}
	if err := t.lanes.Advance(t.params, t.hp.BurnIn(), t.hp.Parallelism()); err != nil {
		return errors.Wrap(err, "burn in")
	}
	t.state = BurnedIn
	return nil
}

// Step runs one training iteration: estimate the gradient from the lanes, then
// move the parameters by -LearningRate times it.
//
// The gradient is empirical minus model statistics. Under P(s) proportional to
// exp(-E(s)) that is the gradient of the negative log-likelihood, so the
// descent step increases the likelihood of the data.
func (t *Trainer) Step() (it Iteration, err error) {
	if t.state != BurnedIn && t.state != Training {
		return it, errors.Errorf("step: trainer is %s", t.state)
	}
	g, mdl, err := learning.Gradient(t.params, t.lanes, t.emp, t.hp.GibbsSteps, t.hp.Parallelism())
	if err != nil {
		return it, errors.Wrapf(err, "iteration %d", t.iteration+1)
	}
	floats.AddScaled(t.params.Vec, -t.hp.LearningRate, g)
	t.iteration++
	t.state = Training

	it.Iteration = t.iteration
	it.GradNorm = floats.Norm(g, 2)
	it.CovDistance, it.PKDistance = stats.Distance(t.emp, mdl)

	if l := t.hp.Logger(); l != nil {
		l.Printf("iteration %d |g| %.6g cov %.6g pk %.6g chains %x", it.Iteration, it.GradNorm, it.CovDistance, it.PKDistance, t.lanes.Fingerprint())
	}
	if t.Recorder != nil {
		if err := t.Recorder.Record(it); err != nil {
			return it, errors.Wrapf(err, "record iteration %d", it.Iteration)
		}
	}
	return it, nil
}

// Run burns in if needed, runs the remaining iterations and returns a copy of the
// fitted parameters. There is no early stopping: exactly Iterations steps are taken.
func (t *Trainer) Run() (*model.Params, error) {
	if t.state == Uninitialized {
		if err := t.BurnIn(); err != nil {
			return nil, err
		}
	}
	var bar = newProgress(t.hp.Iterations, t.hp.DisableProgressBar)
	for t.iteration < t.hp.Iterations {
		it, err := t.Step()
		if err != nil {
			bar.abort()
			return nil, err
		}
		bar.update(it)
	}
	bar.finish()
	t.state = Done
	return t.params.Clone(), nil
}

// Fit is New followed by Run.
func Fit(data datasets.Dataset, init *model.Params, hp *learning.HyperParameters) (*model.Params, error) {
	t, err := New(data, init, hp)
	if err != nil {
		return nil, err
	}
	return t.Run()
}
