package hash

import (
	"testing"
)

// performance benchmark
func BenchmarkMix(b *testing.B) {
	var m uint64
	for i := 0; i < b.N; i++ {
		m = Mix(m, uint64(i))
	}
}

// distinct streams test
func TestMixDistinct(t *testing.T) {
	const streams = 1 << 16
	for _, seed := range []uint64{0, 1, 42, 1 << 63} {
		var seen = make(map[uint64]struct{}, streams)
		for s := uint64(0); s < streams; s++ {
			v := Mix(seed, s)
			if _, ok := seen[v]; ok {
				t.Fatalf("Mix(%d, %d) == %d collides with an earlier stream", seed, s, v)
			}
			seen[v] = struct{}{}
		}
	}
}

// bit balance test
func TestMixBits(t *testing.T) {
	const samples = 4096
	var ones [64]int
	for s := uint64(0); s < samples; s++ {
		v := Mix(7, s)
		for b := 0; b < 64; b++ {
			ones[b] += int(v>>b) & 1
		}
	}
	for b, c := range ones {
		if c < samples/2-samples/8 || c > samples/2+samples/8 {
			t.Errorf("bit %d set in %d of %d outputs", b, c, samples)
		}
	}
}

// sanity check fuzz
func FuzzMod(f *testing.F) {
	f.Add(uint64(0), uint64(0), uint32(0))
	f.Fuzz(func(t *testing.T, seed, stream uint64, max uint32) {
		out := Mod(Mix(seed, stream), max)
		if max == 0 && out != 0 {
			t.Errorf("Hard error: Mod(.., 0) == %d (max=0 should be 0)", out)
		}
		if max > 0 && out >= max {
			t.Errorf("Hard error: Mod(.., %d) == %d (output bigger or equal than max)", max, out)
		}
		if Mix(seed, stream) != Mix(seed, stream) {
			t.Errorf("Hard error: Mix(%d, %d) is not deterministic", seed, stream)
		}
	})
}
