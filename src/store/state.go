package store

import (
	"errors"
	"fmt"

	"toruslife/src/board"
)

var (
	ErrInvalidSize  = errors.New("cols and rows must be bigger than one")
	ErrInvalidCells = errors.New("liveCells must contain [row, col] pairs")
)

//Size is the JSON form of board.Size
type Size struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

//GameState is the JSON form of a board snapshot
//DateTime is set by Store.Save, unix time in milliseconds
type GameState struct {
	Size      Size    `json:"size"`
	LiveCells [][]int `json:"liveCells"`
	DateTime  int64   `json:"dateTime,omitempty"`
}

//Entry describes one saved game
type Entry struct {
	ID       string `json:"id"`
	DateTime int64  `json:"dateTime"`
}

//FromSnapshot converts a board snapshot
func FromSnapshot(s board.Snapshot) GameState {
	cells := make([][]int, len(s.LiveCells))
	for i, c := range s.LiveCells {
		cells[i] = []int{c.Row, c.Col}
	}
	return GameState{
		Size:      Size{Rows: s.Size.Rows, Cols: s.Size.Cols},
		LiveCells: cells,
	}
}

//Coords validates the live cells and converts them to board coordinates
func Coords(cells [][]int) ([]board.Coord, error) {
	res := make([]board.Coord, len(cells))
	for i, p := range cells {
		if len(p) != 2 {
			return nil, fmt.Errorf("%w: element %d has %d values", ErrInvalidCells, i, len(p))
		}
		res[i] = board.Coord{Row: p[0], Col: p[1]}
	}
	return res, nil
}

//Board builds a board seeded with the state
func (s GameState) Board() (*board.Board, error) {
	if s.Size.Rows < 1 || s.Size.Cols < 1 {
		return nil, ErrInvalidSize
	}
	cells, err := Coords(s.LiveCells)
	if err != nil {
		return nil, err
	}
	b, err := board.New(s.Size.Rows, s.Size.Cols)
	if err != nil {
		return nil, err
	}
	if err := b.Seed(cells); err != nil {
		return nil, err
	}
	return b, nil
}
