package view

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/logrusorgru/aurora"

	"toruslife/src/universe"
)

//ConsoleOut prints the simulation progress as plain lines
type ConsoleOut struct {
	u         *universe.Universe
	w         io.Writer
	startTime time.Time
	reported  int //last generation printed
}

func NewConsoleOut(w io.Writer) *ConsoleOut {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleOut{w: w, reported: -1}
}

func (c *ConsoleOut) Refresh() {
	st := c.u.Status()
	if st.Generation == c.reported {
		return
	}
	if st.RunningMode == universe.RunningStateFinished {
		c.reported = st.Generation
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last generation": st.Generation,
			"Total time":      totalTime,
			"Live cells":      st.LiveCells,
		}
		_, _ = fmt.Fprintln(c.w, aurora.Red("\nFinished:"))
		c.printHashData(resultData)
	} else if st.RunningMode == universe.RunningStateRun {
		if st.Generation%10 == 0 {
			c.reported = st.Generation
			_, _ = fmt.Fprintf(c.w, "  Generations done: %v, live cells: %v\n", st.Generation, st.LiveCells)
		}
	}
}

func (c *ConsoleOut) Register(u *universe.Universe) {
	c.u = u
	o := c.u.Options()
	_, _ = fmt.Fprintln(c.w, aurora.Green("Running configuration:"))
	c.printHashData(map[string]interface{}{
		"Dimension":      fmt.Sprintf("%v x %v", o.Rows, o.Cols),
		"Interval":       o.Interval,
		"Max iterations": fmt.Sprintf("%v steps", o.MaxSteps),
		"Live cells":     u.Status().LiveCells,
	})
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	_, _ = fmt.Fprintln(c.w, "\nSimulation started...")
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		_, _ = fmt.Fprintf(c.w, "  %s: %v\n", propName, d[propName])
	}
}
