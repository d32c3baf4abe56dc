package datasets

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/rcofre/generative-neural-models/hash"
	"github.com/rcofre/generative-neural-models/model"
	"github.com/rcofre/generative-neural-models/sampler"
)

// Dataset is a binary data matrix, one row per sample and one column per unit.
type Dataset struct {
	Units int
	Rows  [][]byte
}

// Len returns the number of samples.
func (d Dataset) Len() int {
	return len(d.Rows)
}

// Validate checks that every row has units binary entries.
func (d Dataset) Validate(units int) error {
	if d.Units != units {
		return errors.Wrapf(model.ErrShapeMismatch, "data has %d units, want %d", d.Units, units)
	}
	for i, row := range d.Rows {
		if len(row) != units {
			return errors.Wrapf(model.ErrShapeMismatch, "data row %d has %d units, want %d", i, len(row), units)
		}
		for j, v := range row {
			if v > 1 {
				return errors.Errorf("data row %d unit %d: value %d is not binary", i, j, v)
			}
		}
	}
	return nil
}

// Batch copies the dataset into a sampler batch.
func (d Dataset) Batch() (*sampler.Batch, error) {
	if len(d.Rows) == 0 {
		return sampler.NewBatch(0, d.Units), nil
	}
	return sampler.FromRows(d.Rows)
}

// Bootstrap draws m rows with replacement into a new batch.
func (d Dataset) Bootstrap(m int, rng *rand.Rand) (*sampler.Batch, error) {
	if m > 0 && len(d.Rows) == 0 {
		return nil, errors.New("bootstrap from an empty dataset")
	}
	var b = sampler.NewBatch(m, d.Units)
	for i := 0; i < m; i++ {
		row := d.Rows[hash.Mod(rng.Uint64(), uint32(len(d.Rows)))]
		for j, v := range row {
			b.Set(i, j, v)
		}
	}
	return b, nil
}

// ReadText reads a dataset from text. Each non empty line is one sample, written
// either as separate 0/1 tokens (space, tab or comma separated) or as one run of
// 0/1 digits. Lines starting with '#' are comments.
func ReadText(r io.Reader) (d Dataset, err error) {
	var scanner = bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	var line int
	d.Units = -1
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || text[0] == '#' {
			continue
		}
		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ' ' || r == '\t' || r == ','
		})
		if len(fields) == 1 {
			fields = strings.Split(fields[0], "")
		}
		var row = make([]byte, len(fields))
		for j, f := range fields {
			switch f {
			case "0":
			case "1":
				row[j] = 1
			default:
				return Dataset{}, errors.Errorf("line %d: %q is not 0 or 1", line, f)
			}
		}
		if d.Units < 0 {
			d.Units = len(row)
		} else if d.Units != len(row) {
			return Dataset{}, errors.Wrapf(model.ErrShapeMismatch, "line %d has %d units, want %d", line, len(row), d.Units)
		}
		d.Rows = append(d.Rows, row)
	}
	if err = scanner.Err(); err != nil {
		return Dataset{}, errors.Wrap(err, "read dataset")
	}
	if d.Units < 0 {
		d.Units = 0
	}
	return d, nil
}

// ReadFile reads a text dataset from a file.
func ReadFile(name string) (Dataset, error) {
	file, err := os.Open(name)
	if err != nil {
		return Dataset{}, err
	}
	defer file.Close()
	d, err := ReadText(file)
	return d, errors.Wrap(err, name)
}

// WriteText writes the dataset as runs of 0/1 digits, one sample per line.
func (d Dataset) WriteText(w io.Writer) error {
	var bw = bufio.NewWriter(w)
	for _, row := range d.Rows {
		for _, v := range row {
			bw.WriteByte('0' + v)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// FromBatch copies a sampler batch into a dataset.
func FromBatch(b *sampler.Batch) Dataset {
	var d = Dataset{Units: b.Units(), Rows: make([][]byte, b.Rows())}
	for i := range d.Rows {
		d.Rows[i] = append([]byte(nil), b.Row(i)...)
	}
	return d
}

// Bernoulli generates rows samples of independent units, unit j active with probability rates[j].
func Bernoulli(rows int, rates []float64, src rand.Source) Dataset {
	var units = make([]distuv.Bernoulli, len(rates))
	for j, p := range rates {
		units[j] = distuv.Bernoulli{P: p, Src: src}
	}
	var d = Dataset{Units: len(rates), Rows: make([][]byte, rows)}
	for i := range d.Rows {
		d.Rows[i] = make([]byte, len(rates))
		for j := range units {
			d.Rows[i][j] = byte(units[j].Rand())
		}
	}
	return d
}
