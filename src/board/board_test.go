package board

import (
	"errors"
	"reflect"
	"testing"
)

func newSeeded(t *testing.T, rows int, cols int, cells ...Coord) *Board {
	t.Helper()
	b, err := New(rows, cols)
	if err != nil {
		t.Fatalf("New(%v, %v): %v", rows, cols, err)
	}
	if err := b.Seed(cells); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	return b
}

func assertLive(t *testing.T, b *Board, expected ...Coord) {
	t.Helper()
	got := b.Snapshot().LiveCells
	want := newSeeded(t, b.rows, b.cols, expected...).Snapshot().LiveCells
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("live cells %v, expected %v", got, want)
	}
}

func TestNewInvalidDimension(t *testing.T) {
	for _, d := range [][2]int{{0, 1}, {1, 0}, {-1, 5}, {5, -3}, {0, 0}, {maxInt/2 + 1, 2}, {maxInt, maxInt}} {
		b, err := New(d[0], d[1])
		if b != nil {
			t.Errorf("New(%v, %v) returned a board", d[0], d[1])
		}
		if !errors.Is(err, ErrInvalidDimension) {
			t.Errorf("New(%v, %v) error = %v, expected ErrInvalidDimension", d[0], d[1], err)
		}
		var de *DimensionError
		if !errors.As(err, &de) || de.Rows != d[0] || de.Cols != d[1] {
			t.Errorf("New(%v, %v) error = %#v", d[0], d[1], err)
		}
	}
}

func TestNewIsEmpty(t *testing.T) {
	b, err := New(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	s := b.Snapshot()
	if s.Size != (Size{Rows: 1, Cols: 1}) || len(s.LiveCells) != 0 {
		t.Fatalf("unexpected snapshot %+v", s)
	}
}

func TestSeedCollapsesDuplicates(t *testing.T) {
	b := newSeeded(t, 4, 4, Coord{1, 1}, Coord{1, 1}, Coord{2, 3})
	if b.Len() != 2 {
		t.Fatalf("Len() = %v, expected 2", b.Len())
	}
	assertLive(t, b, Coord{1, 1}, Coord{2, 3})
}

func TestSeedReplaces(t *testing.T) {
	b := newSeeded(t, 4, 4, Coord{0, 0}, Coord{3, 3})
	if err := b.Seed([]Coord{{2, 2}}); err != nil {
		t.Fatal(err)
	}
	assertLive(t, b, Coord{2, 2})
}

func TestSeedOutOfRangeIsAllOrNothing(t *testing.T) {
	b := newSeeded(t, 3, 4, Coord{1, 1})
	err := b.Seed([]Coord{{0, 0}, {3, 0}, {0, 4}, {-1, 2}, {2, 3}})
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("error = %v, expected ErrOutOfRange", err)
	}
	var oe *OutOfRangeError
	if !errors.As(err, &oe) {
		t.Fatalf("error %T is not *OutOfRangeError", err)
	}
	expected := []Coord{{3, 0}, {0, 4}, {-1, 2}}
	if !reflect.DeepEqual(oe.Coords, expected) {
		t.Fatalf("rejected %v, expected %v", oe.Coords, expected)
	}
	assertLive(t, b, Coord{1, 1})
}

func TestToggle(t *testing.T) {
	b := newSeeded(t, 3, 3)
	if err := b.Toggle(1, 2); err != nil {
		t.Fatal(err)
	}
	if !b.IsAlive(1, 2) {
		t.Fatal("cell is not alive after toggle")
	}
	if err := b.Toggle(1, 2); err != nil {
		t.Fatal(err)
	}
	if b.IsAlive(1, 2) {
		t.Fatal("cell is alive after second toggle")
	}
	if err := b.Toggle(3, 0); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("error = %v, expected ErrOutOfRange", err)
	}
}

func TestNeighborsOrder(t *testing.T) {
	b := newSeeded(t, 3, 3)
	got := b.Neighbors(0, 0)
	expected := [8]Coord{
		{2, 2}, {2, 0}, {2, 1},
		{0, 2}, {0, 1},
		{1, 2}, {1, 0}, {1, 1},
	}
	if got != expected {
		t.Fatalf("Neighbors(0, 0) = %v, expected %v", got, expected)
	}
}

func TestNeighborsWrapLargeOffsets(t *testing.T) {
	b := newSeeded(t, 4, 5)
	if b.Neighbors(-4, 12) != b.Neighbors(0, 2) {
		t.Fatal("neighbours of an unwrapped coordinate differ from the wrapped one")
	}
}

func TestNeighborsIntBounds(t *testing.T) {
	b := newSeeded(t, 3, 4)
	minInt := -maxInt - 1
	for _, c := range []Coord{{maxInt, 1}, {minInt, 2}, {0, maxInt}, {1, minInt}, {maxInt, minInt}} {
		r, col := b.wrap(c.Row, c.Col)
		if got, expected := b.Neighbors(c.Row, c.Col), b.Neighbors(r, col); got != expected {
			t.Errorf("Neighbors(%v, %v) = %v, expected %v", c.Row, c.Col, got, expected)
		}
	}
}

func TestLargestBoardKeepsCoordinates(t *testing.T) {
	b := newSeeded(t, maxInt, 1, Coord{maxInt - 1, 0}, Coord{0, 0})
	s := b.Snapshot()
	if !reflect.DeepEqual(s.LiveCells, []Coord{{0, 0}, {maxInt - 1, 0}}) {
		t.Fatalf("live cells %v", s.LiveCells)
	}
	got := b.Neighbors(maxInt-1, 0)
	if got[5] != (Coord{0, 0}) || got[0] != (Coord{maxInt - 2, 0}) {
		t.Fatalf("Neighbors(%v, 0) = %v", maxInt-1, got)
	}
	//a single column sees its own cell twice and the next row three times
	if n := b.CountLiveNeighbors(maxInt-1, 0); n != 5 {
		t.Fatalf("CountLiveNeighbors = %v, expected 5", n)
	}
}

func TestCountLiveNeighborsWrap(t *testing.T) {
	b := newSeeded(t, 3, 3, Coord{2, 2})
	if n := b.CountLiveNeighbors(0, 0); n != 1 {
		t.Fatalf("CountLiveNeighbors(0, 0) = %v, expected 1", n)
	}

	full := make([]Coord, 0, 25)
	for r := 0; r < 5; r++ {
		for c := 0; c < 5; c++ {
			full = append(full, Coord{r, c})
		}
	}
	b = newSeeded(t, 5, 5, full...)
	if n := b.CountLiveNeighbors(0, 0); n != 8 {
		t.Fatalf("CountLiveNeighbors on a full board = %v, expected 8", n)
	}
}

func TestStepRules(t *testing.T) {
	tests := []struct {
		name     string
		rows     int
		cols     int
		seed     []Coord
		expected []Coord
	}{
		{
			name: "empty stays empty",
			rows: 6, cols: 7,
		},
		{
			name: "isolated cell dies",
			rows: 5, cols: 5,
			seed: []Coord{{2, 2}},
		},
		{
			name: "overpopulation",
			rows: 5, cols: 5,
			seed:     []Coord{{2, 2}, {1, 1}, {1, 3}, {3, 1}, {3, 3}},
			expected: []Coord{{1, 2}, {2, 1}, {2, 3}, {3, 2}},
		},
		{
			name: "block still life",
			rows: 4, cols: 4,
			seed:     []Coord{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
			expected: []Coord{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		},
		{
			name: "block across the corner",
			rows: 6, cols: 8,
			seed:     []Coord{{5, 7}, {5, 0}, {0, 7}, {0, 0}},
			expected: []Coord{{5, 7}, {5, 0}, {0, 7}, {0, 0}},
		},
		{
			name: "birth with exactly three",
			rows: 6, cols: 6,
			seed:     []Coord{{0, 0}, {0, 1}, {1, 0}},
			expected: []Coord{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		},
		{
			name: "single cell on 1x1 board sees itself 8 times",
			rows: 1, cols: 1,
			seed: []Coord{{0, 0}},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			b := newSeeded(t, tt.rows, tt.cols, tt.seed...)
			b.Step()
			assertLive(t, b, tt.expected...)
		})
	}
}

func TestSurvival(t *testing.T) {
	b := newSeeded(t, 6, 6, Coord{2, 1}, Coord{2, 2}, Coord{1, 1}, Coord{3, 1})
	if n := b.CountLiveNeighbors(2, 2); n != 3 {
		t.Fatalf("CountLiveNeighbors(2, 2) = %v, expected 3", n)
	}
	b = newSeeded(t, 6, 6, Coord{2, 2}, Coord{1, 1}, Coord{3, 3})
	b.Step()
	if !b.IsAlive(2, 2) {
		t.Fatal("cell with two neighbours died")
	}
	b = newSeeded(t, 6, 6, Coord{2, 2}, Coord{1, 1}, Coord{3, 3}, Coord{1, 3})
	b.Step()
	if !b.IsAlive(2, 2) {
		t.Fatal("cell with three neighbours died")
	}
}

func TestBlinkerOscillation(t *testing.T) {
	b := newSeeded(t, 5, 5, Coord{1, 0}, Coord{1, 1}, Coord{1, 2})

	b.Step()
	assertLive(t, b, Coord{0, 1}, Coord{1, 1}, Coord{2, 1})

	b.Step()
	assertLive(t, b, Coord{1, 0}, Coord{1, 1}, Coord{1, 2})
}

func TestGliderWrapsAround(t *testing.T) {
	glider := []Coord{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}
	b := newSeeded(t, 8, 8, glider...)
	//a glider moves one cell diagonally every 4 generations
	b.Run(4 * 8)
	assertLive(t, b, glider...)
}

func TestAdvanceReportsChange(t *testing.T) {
	b := newSeeded(t, 5, 5, Coord{0, 0}, Coord{0, 1}, Coord{1, 0}, Coord{1, 1})
	if b.Advance() {
		t.Fatal("still life reported as changed")
	}
	b = newSeeded(t, 5, 5, Coord{1, 0}, Coord{1, 1}, Coord{1, 2})
	if !b.Advance() {
		t.Fatal("blinker reported as unchanged")
	}
	b = newSeeded(t, 5, 5)
	if b.Advance() {
		t.Fatal("empty board reported as changed")
	}
}

func TestRunNonPositive(t *testing.T) {
	b := newSeeded(t, 5, 5, Coord{2, 2})
	b.Run(0)
	b.Run(-3)
	assertLive(t, b, Coord{2, 2})
}

func TestDeterminism(t *testing.T) {
	seed := randomCells(42, 20, 30, 150)
	b1 := newSeeded(t, 20, 30, seed...)
	b2 := newSeeded(t, 20, 30, seed...)
	b1.Step()
	b1.Step()
	b2.Step()
	b2.Step()
	if !reflect.DeepEqual(b1.Snapshot(), b2.Snapshot()) {
		t.Fatal("identical boards diverged")
	}
}

func TestSnapshotIsSortedAndDetached(t *testing.T) {
	b := newSeeded(t, 4, 4, Coord{3, 1}, Coord{0, 2}, Coord{3, 0}, Coord{1, 3})
	s := b.Snapshot()
	expected := []Coord{{0, 2}, {1, 3}, {3, 0}, {3, 1}}
	if !reflect.DeepEqual(s.LiveCells, expected) {
		t.Fatalf("LiveCells = %v, expected %v", s.LiveCells, expected)
	}
	s.LiveCells[0] = Coord{2, 2}
	if b.IsAlive(2, 2) {
		t.Fatal("mutating a snapshot changed the board")
	}
	if !reflect.DeepEqual(b.Snapshot().LiveCells, expected) {
		t.Fatal("repeated snapshots differ")
	}
}

func TestMatchesDenseReference(t *testing.T) {
	sizes := [][2]int{{1, 1}, {1, 7}, {2, 3}, {3, 3}, {5, 5}, {9, 4}, {16, 16}, {31, 17}}
	for i, sz := range sizes {
		rows, cols := sz[0], sz[1]
		seed := randomCells(int64(i+1), rows, cols, rows*cols/3+1)

		b := newSeeded(t, rows, cols, seed...)
		ref := newReferenceGrid(rows, cols, seed)
		for gen := 1; gen <= 25; gen++ {
			b.Step()
			ref.step()
			if !reflect.DeepEqual(b.Snapshot().LiveCells, ref.liveCells()) {
				t.Fatalf("%v x %v: diverged from reference at generation %v", rows, cols, gen)
			}
		}
	}
}
