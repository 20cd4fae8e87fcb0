package universe

import "toruslife/src/board"

//BuiltinTemplates returns the templates every new Universe knows
func BuiltinTemplates() []Template {
	return []Template{
		{
			Name:  "block",
			Descr: "2x2 still life",
			Cells: []board.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 1}},
		},
		{
			Name:  "blinker",
			Descr: "period 2 oscillator",
			Cells: []board.Coord{{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}},
		},
		{
			Name:  "glider",
			Descr: "moves one cell down and right every 4 generations",
			Cells: []board.Coord{{Row: 0, Col: 1}, {Row: 1, Col: 2}, {Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2}},
		},
		{
			Name:  "testSample",
			Descr: "the sample pattern used by the benchmarks",
			Cells: []board.Coord{
				{Row: 1, Col: 1}, {Row: 2, Col: 1},
				{Row: 1, Col: 2}, {Row: 2, Col: 2},
				{Row: 3, Col: 3},
				{Row: 2, Col: 4},
				{Row: 3, Col: 4},
				{Row: 3, Col: 5},
			},
		},
	}
}
