package sampler

import "testing"

func TestFromRows(t *testing.T) {
	b, err := FromRows([][]byte{{1, 0, 1}, {0, 0, 0}, {1, 1, 1}})
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range []int{2, 0, 3} {
		if b.Count(i) != want {
			t.Errorf("Count(%d) = %d, want %d", i, b.Count(i), want)
		}
	}
	if _, err := FromRows([][]byte{{1, 0}, {1}}); err == nil {
		t.Error("ragged rows accepted")
	}
	if _, err := FromRows([][]byte{{2}}); err == nil {
		t.Error("non binary value accepted")
	}
}

func TestSplitTruncates(t *testing.T) {
	var b = randomBatch(10, 3, 1)
	var parts = b.Split(4)
	if len(parts) != 4 {
		t.Fatalf("%d parts", len(parts))
	}
	for p, part := range parts {
		if part.Rows() != 2 {
			t.Errorf("part %d has %d rows, want 2", p, part.Rows())
		}
		for i := 0; i < part.Rows(); i++ {
			if string(part.Row(i)) != string(b.Row(p*2+i)) {
				t.Errorf("part %d row %d differs from source row %d", p, i, p*2+i)
			}
		}
		checkCounts(t, part)
	}
	part := parts[0]
	part.Set(0, 0, 1-part.At(0, 0))
	if part.At(0, 0) == b.At(0, 0) {
		t.Errorf("split parts share storage with the source")
	}
	joined, err := Join(b.Split(5))
	if err != nil {
		t.Fatal(err)
	}
	if !joined.Equal(b) {
		t.Errorf("join of split is not the source")
	}
}
