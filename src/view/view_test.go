package view

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"toruslife/src/board"
	"toruslife/src/universe"
)

func TestRenderRows(t *testing.T) {
	s := board.Snapshot{
		Size:      board.Size{Rows: 3, Cols: 4},
		LiveCells: []board.Coord{{Row: 0, Col: 0}, {Row: 1, Col: 2}, {Row: 2, Col: 3}},
	}
	got := renderRows(s, 10, 10, "#", ".")
	expected := "#...\n..#.\n...#"
	if got != expected {
		t.Fatalf("rendered\n%v\nexpected\n%v", got, expected)
	}
}

func TestRenderRowsCropped(t *testing.T) {
	s := board.Snapshot{
		Size:      board.Size{Rows: 5, Cols: 6},
		LiveCells: []board.Coord{{Row: 0, Col: 1}, {Row: 4, Col: 5}},
	}
	lines := strings.Split(renderRows(s, 3, 3, "#", "."), "\n")
	if len(lines) != 3 {
		t.Fatalf("%v lines, expected 3", len(lines))
	}
	if lines[0] != ".#." || lines[1] != "..." {
		t.Fatalf("unexpected lines %q", lines)
	}
	if !strings.Contains(lines[2], "larger than the viewing area") {
		t.Fatalf("no crop warning in %q", lines[2])
	}
}

func TestConsoleOut(t *testing.T) {
	o := universe.DefaultOptions
	o.Rows, o.Cols = 6, 6
	o.Interval = 0
	stateCh := make(chan universe.Status, 10)
	u, err := universe.New(&o, stateCh)
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	c := NewConsoleOut(&out)
	u.RegisterViewer(c)
	c.Start()

	if err := u.SettleTemplate("block"); err != nil {
		t.Fatal(err)
	}
	u.Run()
	timeout := time.After(5 * time.Second)
	for finished := false; !finished; {
		select {
		case st := <-stateCh:
			finished = st.RunningMode == universe.RunningStateFinished
		case <-timeout:
			t.Fatal("timeout waiting for the simulation to finish")
		}
	}
	u.Close()
	close(stateCh)

	text := out.String()
	for _, s := range []string{"Running configuration:", "Dimension: 6 x 6", "Simulation started...", "Finished:", "Last generation: 1", "Live cells: 4"} {
		if !strings.Contains(text, s) {
			t.Errorf("output does not contain %q:\n%v", s, text)
		}
	}
}

func TestConsoleOutReportsRandomField(t *testing.T) {
	o := universe.DefaultOptions
	o.Rows, o.Cols = 10, 10
	u, err := universe.New(&o, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer u.Close()

	u.SettleWithRandomData(3)
	var out bytes.Buffer
	u.RegisterViewer(NewConsoleOut(&out))

	live := u.Status().LiveCells
	if live == 0 {
		t.Fatal("random settle produced an empty field")
	}
	if s := fmt.Sprintf("Live cells: %v\n", live); !strings.Contains(out.String(), s) {
		t.Fatalf("output does not contain %q:\n%v", s, out.String())
	}
}
