package parallel

import (
	"crypto/sha256"
	"hash"
	"sync"
)

// Hasher combines fixed-size digests written concurrently into numbered slots.
// Slots are consumed in index order as soon as they are filled, so Sum does
// not depend on which goroutine finished first.
type Hasher struct {
	mut    sync.Mutex
	sha    hash.Hash
	ate    int
	filled []bool
	data   [][32]byte
}

// NewHasher returns a hasher for n slots.
func NewHasher(n int) *Hasher {
	return &Hasher{
		sha:    sha256.New(),
		filled: make([]bool, n),
		data:   make([][32]byte, n),
	}
}

func (h *Hasher) ready() bool {
	return h.ate < len(h.data) && h.filled[h.ate]
}

func (h *Hasher) eat() {
	h.sha.Write(h.data[h.ate][:])
	h.ate++
}

// MustPutHash stores the digest for slot n. It panics on a duplicate write.
func (h *Hasher) MustPutHash(n int, value [32]byte) {
	h.mut.Lock()
	defer h.mut.Unlock()

	if n < h.ate || h.filled[n] {
		panic("duplicate hash write")
	}
	h.data[n] = value
	h.filled[n] = true

	for h.ready() {
		h.eat()
	}
}

// Sum returns the combined digest. Empty slots hash as zero digests.
func (h *Hasher) Sum() (ret [32]byte) {
	h.mut.Lock()
	defer h.mut.Unlock()
	for h.ate < len(h.data) {
		h.eat()
	}
	copy(ret[:], h.sha.Sum(nil))
	return
}
