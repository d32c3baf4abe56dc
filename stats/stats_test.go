package stats

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"

	"github.com/rcofre/generative-neural-models/sampler"
)

func TestCompute(t *testing.T) {
	b, err := sampler.FromRows([][]byte{
		{1, 0, 1},
		{1, 1, 1},
		{0, 0, 0},
		{0, 1, 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	s := Compute(b)
	var cov = []float64{
		0.50, 0.25, 0.50,
		0.25, 0.50, 0.50,
		0.50, 0.50, 0.75,
	}
	for i, want := range cov {
		if math.Abs(s.Cov[i]-want) > 1e-12 {
			t.Errorf("Cov[%d] = %v, want %v", i, s.Cov[i], want)
		}
	}
	var pk = []float64{0.25, 0, 0.5, 0.25}
	for k, want := range pk {
		if math.Abs(s.PK[k]-want) > 1e-12 {
			t.Errorf("PK[%d] = %v, want %v", k, s.PK[k], want)
		}
	}
	if r := s.Rates(); r[2] != 0.75 {
		t.Errorf("rate of unit 2 = %v", r[2])
	}
}

func TestPKNormalized(t *testing.T) {
	var rng = rand.New(rand.NewSource(5))
	for _, shape := range [][2]int{{1, 0}, {1, 1}, {7, 3}, {100, 12}} {
		var b = sampler.NewBatch(shape[0], shape[1])
		for i := 0; i < shape[0]; i++ {
			for j := 0; j < shape[1]; j++ {
				b.Set(i, j, byte(rng.Intn(2)))
			}
		}
		if sum := floats.Sum(Compute(b).PK); math.Abs(sum-1) > 1e-9 {
			t.Errorf("%dx%d: PK sums to %v", shape[0], shape[1], sum)
		}
	}
}

func TestComputeEmpty(t *testing.T) {
	s := Compute(sampler.NewBatch(0, 3))
	if floats.Sum(s.PK) != 0 || floats.Sum(s.Cov) != 0 || len(s.PK) != 4 {
		t.Errorf("empty batch statistics: %+v", s)
	}
}

func TestMeanFlatten(t *testing.T) {
	a := Statistics{Units: 1, Cov: []float64{0.2}, PK: []float64{0.8, 0.2}}
	b := Statistics{Units: 1, Cov: []float64{0.6}, PK: []float64{0.4, 0.6}}
	m := Mean([]Statistics{a, b})
	if math.Abs(m.Cov[0]-0.4) > 1e-12 || math.Abs(m.PK[0]-0.6) > 1e-12 {
		t.Errorf("Mean = %+v", m)
	}
	g := Flatten(a, b)
	var want = []float64{-0.4, 0.4, -0.4}
	for i := range want {
		if math.Abs(g[i]-want[i]) > 1e-12 {
			t.Errorf("Flatten[%d] = %v, want %v", i, g[i], want[i])
		}
	}
	cov, pk := Distance(a, b)
	if math.Abs(cov-0.4) > 1e-12 || math.Abs(pk-0.4) > 1e-12 {
		t.Errorf("Distance = %v %v", cov, pk)
	}
}
