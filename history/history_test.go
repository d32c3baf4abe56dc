package history

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/rcofre/generative-neural-models/datasets"
	"github.com/rcofre/generative-neural-models/learning"
	"github.com/rcofre/generative-neural-models/model"
	"github.com/rcofre/generative-neural-models/trainer"
)

func TestRecordIterations(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer store.Close()

	hp := &learning.HyperParameters{Lanes: 2, Samples: 20, GibbsSteps: 2, Iterations: 4, LearningRate: 0.1, Seed: 3, DisableProgressBar: true}
	run, err := store.Begin(2, hp)
	require.NoError(t, err)

	tr, err := trainer.New(datasets.Bernoulli(30, []float64{0.4, 0.6}, rand.NewSource(1)), model.New(2), hp)
	require.NoError(t, err)
	tr.Recorder = run
	_, err = tr.Run()
	require.NoError(t, err)

	its, err := store.Iterations(run.ID)
	require.NoError(t, err)
	require.Len(t, its, 4)
	for i, it := range its {
		require.Equal(t, i+1, it.Iteration)
		require.Greater(t, it.GradNorm, 0.0)
	}

	runs, err := store.Runs()
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{run.ID}, runs)
}

func TestNaNRoundTrip(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer store.Close()
	run, err := store.Begin(1, &learning.HyperParameters{Lanes: 1, Samples: 1})
	require.NoError(t, err)
	require.NoError(t, run.Record(trainer.Iteration{Iteration: 1, GradNorm: math.NaN(), CovDistance: 0.5}))
	require.Error(t, run.Record(trainer.Iteration{Iteration: 1}))

	its, err := store.Iterations(run.ID)
	require.NoError(t, err)
	require.Len(t, its, 1)
	require.True(t, math.IsNaN(its[0].GradNorm))
	require.Equal(t, 0.5, its[0].CovDistance)
}
