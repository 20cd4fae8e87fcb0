package board

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidDimension = errors.New("rows and cols must be at least 1")
	ErrOutOfRange       = errors.New("coordinate is outside the board")
)

//DimensionError is returned by New for a board with rows or cols < 1
//or with more cells than an int can count
type DimensionError struct {
	Rows int
	Cols int
}

func (e *DimensionError) Error() string {
	if e.Rows >= 1 && e.Cols >= 1 {
		return fmt.Sprintf("invalid board dimension %v x %v: the board has too many cells", e.Rows, e.Cols)
	}
	return fmt.Sprintf("invalid board dimension %v x %v: %v", e.Rows, e.Cols, ErrInvalidDimension)
}

func (e *DimensionError) Unwrap() error {
	return ErrInvalidDimension
}

//OutOfRangeError lists every coordinate rejected by the board
type OutOfRangeError struct {
	Size   Size
	Coords []Coord
}

func (e *OutOfRangeError) Error() string {
	parts := make([]string, len(e.Coords))
	for i, c := range e.Coords {
		parts[i] = fmt.Sprintf("[%v, %v]", c.Row, c.Col)
	}
	return fmt.Sprintf("%v (%v x %v): %v", ErrOutOfRange, e.Size.Rows, e.Size.Cols, strings.Join(parts, ", "))
}

func (e *OutOfRangeError) Unwrap() error {
	return ErrOutOfRange
}
