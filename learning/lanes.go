package learning

import (
	"crypto/sha256"
	"encoding/binary"

	"golang.org/x/exp/rand"

	"github.com/rcofre/generative-neural-models/hash"
	"github.com/rcofre/generative-neural-models/model"
	"github.com/rcofre/generative-neural-models/parallel"
	"github.com/rcofre/generative-neural-models/sampler"
)

// Lanes is a set of persistent chain lanes: disjoint batches of equal size, each
// with its own random stream. A lane is only ever touched by one goroutine at a time.
type Lanes struct {
	Batches []*sampler.Batch
	Dropped int // rows dropped so that every lane has the same size

	rngs []*rand.Rand
}

// NewLanes partitions b into lanes batches of equal size. The last Rows() % lanes
// rows are dropped. Lane i draws from a stream seeded with hash.Mix(seed, i).
func NewLanes(b *sampler.Batch, lanes int, seed uint64) *Lanes {
	if lanes <= 0 {
		lanes = 1
	}
	var l = &Lanes{
		Batches: b.Split(lanes),
		Dropped: b.Rows() % lanes,
		rngs:    make([]*rand.Rand, lanes),
	}
	for i := range l.rngs {
		l.rngs[i] = rand.New(rand.NewSource(hash.Mix(seed, uint64(i))))
	}
	return l
}

// Len returns the number of lanes.
func (l *Lanes) Len() int {
	return len(l.Batches)
}

// Rows returns the number of chains across all lanes.
func (l *Lanes) Rows() (n int) {
	for _, b := range l.Batches {
		n += b.Rows()
	}
	return
}

// Advance1 runs steps Gibbs updates on lane i only.
func (l *Lanes) Advance1(i int, p *model.Params, steps int) error {
	return sampler.Advance(l.Batches[i], p, steps, l.rngs[i])
}

// Advance runs steps Gibbs updates on every lane, at most threads lanes at once.
func (l *Lanes) Advance(p *model.Params, steps, threads int) error {
	return parallel.ForEachErr(len(l.Batches), threads, func(i int) error {
		return l.Advance1(i, p, steps)
	})
}

// Fingerprint returns a digest of the chain states of all lanes, in lane order.
func (l *Lanes) Fingerprint() [32]byte {
	var h = parallel.NewHasher(len(l.Batches))
	parallel.ForEach(len(l.Batches), len(l.Batches), func(i int) {
		var b = l.Batches[i]
		var buf = make([]byte, 4, len(b.Bytes())+4)
		binary.LittleEndian.PutUint32(buf, uint32(b.Cursor()))
		buf = append(buf, b.Bytes()...)
		h.MustPutHash(i, sha256.Sum256(buf))
	})
	return h.Sum()
}
