package board

import (
	"sort"
)

const maxInt = int(^uint(0) >> 1)

//Coord is a (row, col) position on the board
type Coord struct {
	Row int
	Col int
}

//Size is the board dimension
type Size struct {
	Rows int
	Cols int
}

//Snapshot is a read-only projection of the board state
//LiveCells is sorted row by row
type Snapshot struct {
	Size      Size
	LiveCells []Coord
}

//Board is the toroidal Game of Life field
//only live cells are stored, every cell absent from the set is dead
//a Board must not be shared between goroutines without external locking
type Board struct {
	rows int
	cols int
	live map[int]struct{} //keys are row*cols+col
}

//New creates an empty board
//every cell must have its own int key, so rows*cols may not exceed the int range
func New(rows int, cols int) (*Board, error) {
	if rows < 1 || cols < 1 || rows > maxInt/cols {
		return nil, &DimensionError{Rows: rows, Cols: cols}
	}
	return &Board{
		rows: rows,
		cols: cols,
		live: make(map[int]struct{}),
	}, nil
}

//Size returns the board dimension
func (b *Board) Size() Size {
	return Size{Rows: b.rows, Cols: b.cols}
}

//Len returns the number of live cells
func (b *Board) Len() int {
	return len(b.live)
}

//Seed replaces all live cells with cells
//duplicates collapse to one cell
//if any coordinate is outside the board nothing is changed and *OutOfRangeError is returned
func (b *Board) Seed(cells []Coord) error {
	var bad []Coord
	for _, c := range cells {
		if !b.contains(c.Row, c.Col) {
			bad = append(bad, c)
		}
	}
	if len(bad) > 0 {
		return &OutOfRangeError{Size: b.Size(), Coords: bad}
	}

	live := make(map[int]struct{}, len(cells))
	for _, c := range cells {
		live[b.key(c.Row, c.Col)] = struct{}{}
	}
	b.live = live
	return nil
}

//Clear kills all cells
func (b *Board) Clear() {
	b.live = make(map[int]struct{})
}

//IsAlive reports whether the cell at row, col is alive
//coordinates are wrapped
func (b *Board) IsAlive(row int, col int) bool {
	r, c := b.wrap(row, col)
	_, ok := b.live[b.key(r, c)]
	return ok
}

//Toggle inverts the state of one cell
func (b *Board) Toggle(row int, col int) error {
	if !b.contains(row, col) {
		return &OutOfRangeError{Size: b.Size(), Coords: []Coord{{row, col}}}
	}
	k := b.key(row, col)
	if _, ok := b.live[k]; ok {
		delete(b.live, k)
	} else {
		b.live[k] = struct{}{}
	}
	return nil
}

//Step advances the board by exactly one generation
func (b *Board) Step() {
	b.Advance()
}

//Run advances the board by n generations
func (b *Board) Run(n int) {
	for i := 0; i < n; i++ {
		b.Step()
	}
}

//Advance advances the board by one generation and reports whether the live set changed
//only live cells and their neighbours are evaluated, everything else stays dead
//all counts are taken against the previous generation
func (b *Board) Advance() (changed bool) {
	candidates := make(map[int]struct{}, len(b.live)*9)
	for k := range b.live {
		candidates[k] = struct{}{}
		row, col := b.unkey(k)
		for _, n := range b.Neighbors(row, col) {
			candidates[b.key(n.Row, n.Col)] = struct{}{}
		}
	}

	next := make(map[int]struct{}, len(b.live))
	for k := range candidates {
		row, col := b.unkey(k)
		_, alive := b.live[k]
		if nextState(alive, b.CountLiveNeighbors(row, col)) {
			next[k] = struct{}{}
		}
	}

	changed = len(next) != len(b.live)
	if !changed {
		for k := range next {
			if _, ok := b.live[k]; !ok {
				changed = true
				break
			}
		}
	}
	b.live = next
	return changed
}

//Neighbors returns the 8 wrapped neighbours of row, col
//order: row offset -1..1, then column offset -1..1
func (b *Board) Neighbors(row int, col int) [8]Coord {
	var res [8]Coord
	row, col = b.wrap(row, col)
	i := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := b.wrap(row+dr, col+dc)
			res[i] = Coord{Row: r, Col: c}
			i++
		}
	}
	return res
}

//CountLiveNeighbors returns the number of live neighbours of row, col
func (b *Board) CountLiveNeighbors(row int, col int) int {
	count := 0
	for _, n := range b.Neighbors(row, col) {
		if _, ok := b.live[b.key(n.Row, n.Col)]; ok {
			count++
		}
	}
	return count
}

//Snapshot returns the dimension and the live cells of the board
func (b *Board) Snapshot() Snapshot {
	keys := make([]int, 0, len(b.live))
	for k := range b.live {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	cells := make([]Coord, len(keys))
	for i, k := range keys {
		row, col := b.unkey(k)
		cells[i] = Coord{Row: row, Col: col}
	}
	return Snapshot{Size: b.Size(), LiveCells: cells}
}

func nextState(alive bool, liveNeighbours int) bool {
	if alive {
		return liveNeighbours == 2 || liveNeighbours == 3
	}
	return liveNeighbours == 3
}

func (b *Board) contains(row int, col int) bool {
	return row >= 0 && row < b.rows && col >= 0 && col < b.cols
}

func (b *Board) wrap(row int, col int) (int, int) {
	if row %= b.rows; row < 0 {
		row += b.rows
	}
	if col %= b.cols; col < 0 {
		col += b.cols
	}
	return row, col
}

func (b *Board) key(row int, col int) int {
	return row*b.cols + col
}

func (b *Board) unkey(k int) (int, int) {
	return k / b.cols, k % b.cols
}
