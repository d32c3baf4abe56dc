package learning

import (
	"log"
	"math"
	"os"

	"github.com/pkg/errors"
)

// SetLogger sets the output logger file where the per iteration training trace is appended
func (h *HyperParameters) SetLogger(filename string) error {
	outfile, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return err
	}
	h.l = log.New(outfile, "", log.LstdFlags)
	return nil
}

// Logger returns the trace logger, or nil when none was set.
func (h *HyperParameters) Logger() *log.Logger {
	return h.l
}

type HyperParameters struct {
	Lanes   int // number of persistent chain lanes (L), supplied by the environment
	Threads int // number of lanes advanced at once, 0 means all of them

	LearningRate float64 // gradient step size
	Iterations   int     // number of training iterations
	Samples      int     // chains per gradient estimate, split over the lanes
	GibbsSteps   int     // single site updates per lane per iteration

	// BurnInFactor multiplies GibbsSteps to get the burn-in length (default and minimum: 10)
	BurnInFactor int

	Seed uint64 // seed of all random streams

	DisableProgressBar bool // disable progress bar

	l *log.Logger
}

// MinBurnInFactor is the smallest accepted burn-in multiplier.
const MinBurnInFactor = 10

// BurnIn returns the number of Gibbs steps used to burn the lanes in.
func (h *HyperParameters) BurnIn() int {
	var factor = h.BurnInFactor
	if factor < MinBurnInFactor {
		factor = MinBurnInFactor
	}
	return factor * h.GibbsSteps
}

// Parallelism returns how many lanes run at once.
func (h *HyperParameters) Parallelism() int {
	if h.Threads <= 0 || h.Threads > h.Lanes {
		return h.Lanes
	}
	return h.Threads
}

// Validate rejects settings the trainer cannot run with.
func (h *HyperParameters) Validate() error {
	switch {
	case h.Lanes <= 0:
		return errors.Errorf("lanes must be positive, got %d", h.Lanes)
	case h.Samples <= 0:
		return errors.Errorf("samples must be positive, got %d", h.Samples)
	case h.Samples < h.Lanes:
		return errors.Errorf("samples (%d) must be at least the number of lanes (%d), or some lanes would be empty", h.Samples, h.Lanes)
	case h.Iterations < 0:
		return errors.Errorf("iterations must not be negative, got %d", h.Iterations)
	case h.GibbsSteps < 0:
		return errors.Errorf("gibbs steps must not be negative, got %d", h.GibbsSteps)
	case math.IsNaN(h.LearningRate) || math.IsInf(h.LearningRate, 0):
		return errors.Errorf("learning rate must be finite, got %v", h.LearningRate)
	}
	return nil
}
