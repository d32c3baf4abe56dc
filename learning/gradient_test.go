package learning

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/rcofre/generative-neural-models/model"
	"github.com/rcofre/generative-neural-models/sampler"
	"github.com/rcofre/generative-neural-models/stats"
)

func randomBatch(rows, units int, seed uint64) *sampler.Batch {
	var rng = rand.New(rand.NewSource(seed))
	var b = sampler.NewBatch(rows, units)
	for i := 0; i < rows; i++ {
		for j := 0; j < units; j++ {
			b.Set(i, j, byte(rng.Intn(2)))
		}
	}
	return b
}

func TestNewLanesTruncates(t *testing.T) {
	lanes := NewLanes(randomBatch(10, 3, 1), 4, 0)
	require.Equal(t, 4, lanes.Len())
	require.Equal(t, 2, lanes.Dropped)
	require.Equal(t, 8, lanes.Rows())
	for _, b := range lanes.Batches {
		require.Equal(t, 2, b.Rows())
	}
}

func TestNewLanesSequential(t *testing.T) {
	lanes := NewLanes(randomBatch(7, 2, 1), 1, 0)
	require.Equal(t, 1, lanes.Len())
	require.Equal(t, 0, lanes.Dropped)
	require.Equal(t, 7, lanes.Rows())
}

func TestGradientDeterministicAcrossThreads(t *testing.T) {
	var p = model.New(5)
	p.Vec[0] = 0.7
	p.Vec[1], p.Vec[5] = -0.4, -0.4
	p.VK()[2] = 0.3
	var emp = stats.Compute(randomBatch(100, 5, 2))

	var grads [][]float64
	var prints [][32]byte
	for _, threads := range []int{1, 2, 8} {
		lanes := NewLanes(randomBatch(96, 5, 3), 8, 42)
		var g []float64
		var err error
		for call := 0; call < 3; call++ {
			g, _, err = Gradient(p, lanes, emp, 4, threads)
			require.NoError(t, err)
		}
		require.Len(t, g, model.Len(5))
		grads = append(grads, g)
		prints = append(prints, lanes.Fingerprint())
	}
	for i := 1; i < len(grads); i++ {
		require.Equal(t, grads[0], grads[i])
		require.Equal(t, prints[0], prints[i])
	}
}

func TestGradientPersistsLanes(t *testing.T) {
	lanes := NewLanes(randomBatch(64, 4, 5), 2, 7)
	var before = lanes.Fingerprint()
	_, _, err := Gradient(model.New(4), lanes, stats.Zero(4), 5, 2)
	require.NoError(t, err)
	require.NotEqual(t, before, lanes.Fingerprint())
	for _, b := range lanes.Batches {
		require.Equal(t, 1, b.Cursor())
	}
}

func TestGradientVanishesAtFixedPoint(t *testing.T) {
	// a huge negative bias switches every unit on, matching an all-ones dataset
	var p = model.New(3)
	for i := 0; i < 3; i++ {
		p.Vec[i*3+i] = -1e6
	}
	var ones = sampler.NewBatch(20, 3)
	for i := 0; i < 20; i++ {
		for j := 0; j < 3; j++ {
			ones.Set(i, j, 1)
		}
	}
	var emp = stats.Compute(ones)
	lanes := NewLanes(sampler.NewBatch(12, 3), 3, 1)
	g, mdl, err := Gradient(p, lanes, emp, 3, 3)
	require.NoError(t, err)
	require.Equal(t, 1.0, mdl.PK[3])
	for i, v := range g {
		require.InDeltaf(t, 0, v, 1e-12, "gradient entry %d", i)
	}
}

func TestGradientShapeMismatch(t *testing.T) {
	lanes := NewLanes(sampler.NewBatch(4, 3), 2, 1)
	_, _, err := Gradient(model.New(2), lanes, stats.Zero(2), 1, 2)
	require.ErrorIs(t, err, model.ErrShapeMismatch)
}

func TestHyperParameters(t *testing.T) {
	h := HyperParameters{Lanes: 4, Samples: 10, GibbsSteps: 3, LearningRate: 0.05, Iterations: 1}
	require.NoError(t, h.Validate())
	require.Equal(t, 30, h.BurnIn())
	h.BurnInFactor = 25
	require.Equal(t, 75, h.BurnIn())
	h.BurnInFactor = 2
	require.Equal(t, 30, h.BurnIn())
	require.Equal(t, 4, h.Parallelism())
	h.Threads = 2
	require.Equal(t, 2, h.Parallelism())

	bad := h
	bad.Lanes = 0
	require.Error(t, bad.Validate())
	bad = h
	bad.Samples = 0
	require.Error(t, bad.Validate())

	// fewer chains than lanes would leave empty lanes with no statistics
	bad = h
	bad.Samples = 3
	require.ErrorContains(t, bad.Validate(), "lanes")
	bad.Samples = 4
	require.NoError(t, bad.Validate())
}
