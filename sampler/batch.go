package sampler

import (
	"github.com/pkg/errors"

	"github.com/rcofre/generative-neural-models/model"
)

// Batch is an M by n binary matrix, one chain per row, with the population
// count of every row maintained alongside.
type Batch struct {
	rows   int
	units  int
	cells  []byte
	counts []int

	// cursor is the unit visited by the next Gibbs step
	cursor int
}

// NewBatch returns an all-zero batch.
func NewBatch(rows, units int) *Batch {
	if rows < 0 {
		rows = 0
	}
	if units < 0 {
		units = 0
	}
	return &Batch{
		rows:   rows,
		units:  units,
		cells:  make([]byte, rows*units),
		counts: make([]int, rows),
	}
}

// FromRows copies rows of 0/1 entries into a new batch. All rows must have equal length.
func FromRows(rows [][]byte) (*Batch, error) {
	var units int
	if len(rows) > 0 {
		units = len(rows[0])
	}
	b := NewBatch(len(rows), units)
	for i, row := range rows {
		if len(row) != units {
			return nil, errors.Wrapf(model.ErrShapeMismatch, "row %d has %d units, want %d", i, len(row), units)
		}
		for j, v := range row {
			if v > 1 {
				return nil, errors.Errorf("row %d unit %d: value %d is not binary", i, j, v)
			}
			b.Set(i, j, v)
		}
	}
	return b, nil
}

// Rows returns the number of chains.
func (b *Batch) Rows() int {
	return b.rows
}

// Units returns the number of units per chain.
func (b *Batch) Units() int {
	return b.units
}

// Row returns row i sharing the batch storage. Callers must not write to it; use Set.
func (b *Batch) Row(i int) []byte {
	return b.cells[i*b.units : (i+1)*b.units]
}

// At returns the state of unit j in row i.
func (b *Batch) At(i, j int) byte {
	return b.cells[i*b.units+j]
}

// Set sets unit j in row i to v (0 or 1), keeping the population count.
func (b *Batch) Set(i, j int, v byte) {
	v &= 1
	cell := &b.cells[i*b.units+j]
	b.counts[i] += int(v) - int(*cell)
	*cell = v
}

// Count returns the population count K of row i.
func (b *Batch) Count(i int) int {
	return b.counts[i]
}

// Cursor returns the unit the next Gibbs step will visit.
func (b *Batch) Cursor() int {
	return b.cursor
}

// Clone returns a deep copy.
func (b *Batch) Clone() *Batch {
	return &Batch{
		rows:   b.rows,
		units:  b.units,
		cells:  append([]byte(nil), b.cells...),
		counts: append([]int(nil), b.counts...),
		cursor: b.cursor,
	}
}

// Split partitions the batch into parts disjoint batches of equal size, in row
// order. The rows % parts trailing rows are dropped. Each part owns its storage.
func (b *Batch) Split(parts int) []*Batch {
	if parts <= 0 {
		return nil
	}
	var size = b.rows / parts
	var out = make([]*Batch, parts)
	for p := range out {
		out[p] = &Batch{
			rows:   size,
			units:  b.units,
			cells:  append([]byte(nil), b.cells[p*size*b.units:(p+1)*size*b.units]...),
			counts: append([]int(nil), b.counts[p*size:(p+1)*size]...),
			cursor: b.cursor,
		}
	}
	return out
}

// Join concatenates batches of equal width into one batch. The cursor of the first part is kept.
func Join(parts []*Batch) (*Batch, error) {
	if len(parts) == 0 {
		return NewBatch(0, 0), nil
	}
	var rows int
	for i, p := range parts {
		if p.units != parts[0].units {
			return nil, errors.Wrapf(model.ErrShapeMismatch, "part %d has %d units, want %d", i, p.units, parts[0].units)
		}
		rows += p.rows
	}
	out := &Batch{
		rows:   rows,
		units:  parts[0].units,
		cells:  make([]byte, 0, rows*parts[0].units),
		counts: make([]int, 0, rows),
		cursor: parts[0].cursor,
	}
	for _, p := range parts {
		out.cells = append(out.cells, p.cells...)
		out.counts = append(out.counts, p.counts...)
	}
	return out, nil
}

// Equal reports whether two batches hold the same states.
func (b *Batch) Equal(o *Batch) bool {
	if b.rows != o.rows || b.units != o.units {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Bytes returns the raw row-major cells. Callers must not modify them.
func (b *Batch) Bytes() []byte {
	return b.cells
}
