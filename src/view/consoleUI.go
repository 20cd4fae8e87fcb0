package view

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"toruslife/src/board"
	"toruslife/src/universe"
)

const (
	viewHeader        = "header"
	viewConfiguration = "configuration"
	viewStatus        = "status"
	viewField         = "field"
	viewHelp          = "help"

	leftColumnWidth = 28
	minWindowHeight = 20
)

type keyBinding struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

//ConsoleUI is the interactive terminal view
type ConsoleUI struct {
	u          *universe.Universe
	g          *gocui.Gui
	k          []keyBinding
	template   int //index of the next template settled by the T key
	liveFiller string
	deadFiller string
}

var runningStateDescr = map[universe.RunningState]string{
	universe.RunningStateManual:   aurora.Colorize("waiting", aurora.BlueFg).String(),
	universe.RunningStateStep:     "do the step",
	universe.RunningStateRun:      aurora.Colorize("running", aurora.CyanFg).String(),
	universe.RunningStateFinished: aurora.Colorize("finished", aurora.RedFg).String(),
}

//NewConsoleUI takes over the terminal, Start runs the event loop
func NewConsoleUI() (*ConsoleUI, error) {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}
	t := &ConsoleUI{
		g:          g,
		liveFiller: aurora.Green("█").BgBrightGreen().String(),
		deadFiller: "░",
	}
	t.g.Mouse = true
	t.k = []keyBinding{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{'n', "N", "Next step", t.cmdNextRound, ""},
		{'r', "R", "Run", t.cmdRun, ""},
		{'s', "S", "Stop", t.cmdStop, ""},
		{'c', "C", "Clear", t.cmdClear, ""},
		{'w', "W", "Settle with random", t.cmdSettleWithRandom, ""},
		{'t', "T", "Next template", t.cmdNextTemplate, ""},
		{gocui.MouseLeft, "MOUSE", "Toggle the cell", t.cmdMouseClick, viewField},
	}
	t.g.SetManagerFunc(t.layout)

	for _, kb := range t.k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(_ *gocui.Gui, v *gocui.View) error { return h(v) }); err != nil {
			t.g.Close()
			return nil, fmt.Errorf("bind %v: %w", kb.name, err)
		}
	}
	return t, nil
}

func (t *ConsoleUI) Register(u *universe.Universe) {
	t.u = u
}

//Start blocks until the user quits
func (t *ConsoleUI) Start() {
	err := t.g.MainLoop()
	t.g.Close()
	if err != nil && err != gocui.ErrQuit {
		log.Panicln(err)
	}
}

func (t *ConsoleUI) Refresh() {
	t.renderField(t.u.Snapshot())
	t.renderConfiguration()
	t.renderStatus()
}

func (t *ConsoleUI) renderField(s board.Snapshot) {
	//it needs to call Update when calls from goroutine
	t.g.Update(func(g *gocui.Gui) error {
		v, err := g.View(viewField)
		if err != nil {
			return nil
		}
		//the entire field is redrawn at once
		v.Clear()
		maxW, maxH := v.Size()
		_, _ = fmt.Fprint(v, renderRows(s, maxW, maxH, t.liveFiller, t.deadFiller))
		return nil
	})
}

//renderRows draws the visible part of the field, one line per board row
//the last visible line is replaced with a warning when the field is cropped
func renderRows(s board.Snapshot, maxW int, maxH int, liveFiller string, deadFiller string) string {
	rows, cols := s.Size.Rows, s.Size.Cols
	crop := cols > maxW || rows > maxH
	if rows > maxH {
		rows = maxH
	}
	if cols > maxW {
		cols = maxW
	}

	live := make(map[board.Coord]bool, len(s.LiveCells))
	for _, c := range s.LiveCells {
		live[c] = true
	}

	var b bytes.Buffer
	for i := 0; i < rows; i++ {
		if i != 0 {
			b.WriteByte('\n')
		}
		if crop && i == rows-1 {
			b.WriteString(aurora.Red("The field size is larger than the viewing area").BgBlack().String())
			break
		}
		for j := 0; j < cols; j++ {
			if live[board.Coord{Row: i, Col: j}] {
				b.WriteString(liveFiller)
			} else {
				b.WriteString(deadFiller)
			}
		}
	}
	return b.String()
}

func (t *ConsoleUI) renderStatus() {
	s := t.u.Status()
	t.g.Update(func(g *gocui.Gui) error {
		if v, err := g.View(viewStatus); err == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, renderProp("Generation", "%v", s.Generation))
			_, _ = fmt.Fprintln(v, renderProp("Live Cells", "%v", s.LiveCells))
			_, _ = fmt.Fprintln(v, renderProp("Evaluation time", "%v", s.IterationTime.Round(time.Microsecond)))
			_, _ = fmt.Fprintln(v, renderProp("Mode", "%v", runningStateDescr[s.RunningMode]))
		}
		return nil
	})
}

func (t *ConsoleUI) renderConfiguration() {
	c := t.u.Options()
	templates := t.u.Templates()
	t.g.Update(func(g *gocui.Gui) error {
		if v, err := g.View(viewConfiguration); err == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, renderProp("Dimension", "%v x %v", c.Rows, c.Cols))
			_, _ = fmt.Fprintln(v, renderProp("Interval", "%v", c.Interval))
			_, _ = fmt.Fprintln(v, renderProp("Iterations", "%v steps", c.MaxSteps))
			if len(templates) > 0 {
				next := templates[t.template%len(templates)]
				_, _ = fmt.Fprintln(v, renderProp("Next template", "%v", next.Name))
			}
		}
		return nil
	})
}

func renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	if maxY < minWindowHeight {
		if err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil {
			return err
		}
		for _, name := range []string{viewConfiguration, viewStatus, viewField, viewHelp} {
			_ = g.DeleteView(name)
		}
		return nil
	}
	if err := t.headerLayout(g, 3, "Game of Life on a torus"); err != nil {
		return err
	}

	middle := 3 + (maxY-5-3)/2
	if v, err := g.SetView(viewConfiguration, 0, 3, leftColumnWidth, middle); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Configuration"
		t.renderConfiguration()
	}

	if v, err := g.SetView(viewStatus, 0, middle+1, leftColumnWidth, maxY-5); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Status"
		t.renderStatus()
	}

	//the field is redrawn on every layout as its size may change
	if v, err := g.SetView(viewField, leftColumnWidth+1, 3, maxX-1, maxY-5); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Field"
	}
	t.renderField(t.u.Snapshot())

	if v, err := g.SetView(viewHelp, -1, maxY-5, maxX, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		v.Wrap = true
		_, _ = fmt.Fprintln(v, t.helpLine())
	}
	return nil
}

func (t *ConsoleUI) helpLine() string {
	parts := make([]string, len(t.k))
	for i, k := range t.k {
		parts[i] = aurora.Green(k.name).String() + ": " + k.descr
	}
	return "KEYBINDINGS: " + strings.Join(parts, ", ")
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) error {
	maxX, _ := g.Size()
	v, err := g.SetView(viewHeader, -1, -1, maxX+1, height)
	if err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		v.BgColor = gocui.ColorCyan
		v.FgColor = gocui.ColorBlack
	}
	v.Clear()
	if maxX < len(text) {
		_, _ = fmt.Fprint(v, text)
		return nil
	}
	_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2)+strings.Repeat(" ", (maxX-len(text))/2)+text)
	return nil
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdNextRound(_ *gocui.View) error {
	t.u.Step()
	return nil
}

func (t *ConsoleUI) cmdRun(_ *gocui.View) error {
	t.u.Run()
	return nil
}

func (t *ConsoleUI) cmdStop(_ *gocui.View) error {
	t.u.Stop()
	return nil
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	t.u.Clear()
	return nil
}

func (t *ConsoleUI) cmdSettleWithRandom(_ *gocui.View) error {
	t.u.SettleWithRandomData(time.Now().UnixNano())
	return nil
}

//cmdNextTemplate settles the next template that fits the field
func (t *ConsoleUI) cmdNextTemplate(_ *gocui.View) error {
	templates := t.u.Templates()
	for range templates {
		tmpl := templates[t.template%len(templates)]
		t.template++
		if err := t.u.SettleTemplate(tmpl.Name); err == nil {
			break
		}
	}
	t.renderConfiguration()
	return nil
}

func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	t.u.InverseCell(cy, cx)
	return nil
}
