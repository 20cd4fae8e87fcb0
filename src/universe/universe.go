package universe

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"toruslife/src/board"
)

//Options represents the Universe's configurable options
type Options struct {
	Rows            int
	Cols            int
	Interval        time.Duration
	MaxSteps        int //0 means no limit
	MaxSkippedTicks int
}

//Status represents the status of the Universe at concrete moment
type Status struct {
	Generation    int
	RunningMode   RunningState
	LiveCells     int
	IterationTime time.Duration
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
type Viewer interface {
	Refresh()
	Register(u *Universe)
	Start()
}

//Template represent the seeding template which can used to settle the universe with predefined data
type Template struct {
	Name  string
	Descr string
	Cells []board.Coord
}

//RunningState is the universe running status at the concrete moment
type RunningState int

//default options
const (
	DefSimulationInterval = time.Millisecond * 100
	DefMaxSteps           = 1000
	DefRows               = 15
	DefCols               = 40
	DefMaxSkippedTicks    = 5
)

const (
	RunningStateManual RunningState = iota
	RunningStateStep
	RunningStateRun
	RunningStateFinished
)

var ErrUnknownTemplate = errors.New("unknown template")

var DefaultOptions = Options{
	Rows:            DefRows,
	Cols:            DefCols,
	Interval:        DefSimulationInterval,
	MaxSteps:        DefMaxSteps,
	MaxSkippedTicks: DefMaxSkippedTicks,
}

func (s RunningState) String() string {
	switch s {
	case RunningStateManual:
		return "manual"
	case RunningStateStep:
		return "step"
	case RunningStateRun:
		return "run"
	case RunningStateFinished:
		return "finished"
	}
	return fmt.Sprintf("RunningState(%d)", int(s))
}

//Universe drives one board.Board
//all commands are executed one by one by the main loop goroutine,
//the state and the board are guarded by mu for readers
type Universe struct {
	options Options

	mu     sync.Mutex
	status Status
	board  *board.Board
	runID  int
	views  []Viewer

	stateCh   chan Status
	templates map[string]Template
	controlCh chan func()
	closeCh   chan struct{}
	closeOnce sync.Once
	done      chan struct{}
}

//New creates the Universe and starts its main loop
//stateCh may be nil, otherwise every running state change is written to it
func New(o *Options, stateCh chan Status) (*Universe, error) {
	if o == nil {
		o = &DefaultOptions
	}
	b, err := board.New(o.Rows, o.Cols)
	if err != nil {
		return nil, fmt.Errorf("create universe: %w", err)
	}

	u := &Universe{
		options:   *o,
		board:     b,
		stateCh:   stateCh,
		templates: map[string]Template{},
		controlCh: make(chan func(), 1),
		closeCh:   make(chan struct{}),
		done:      make(chan struct{}),
	}
	for _, tmpl := range BuiltinTemplates() {
		u.AddTemplate(tmpl)
	}
	go u.mainLoop()
	return u, nil
}

//AddTemplate adds the seeding template to the internal storage
//the universe can be populated with this template by call SettleTemplate
func (u *Universe) AddTemplate(tmpl Template) {
	u.mu.Lock()
	u.templates[tmpl.Name] = tmpl
	u.mu.Unlock()
}

//Templates returns all known templates sorted by name
func (u *Universe) Templates() []Template {
	u.mu.Lock()
	defer u.mu.Unlock()
	res := make([]Template, 0, len(u.templates))
	for _, t := range u.templates {
		res = append(res, t)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res
}

//Settle replaces the live cells of the universe
//the universe is left unchanged if any coordinate is outside the field
func (u *Universe) Settle(cells []board.Coord) error {
	u.mu.Lock()
	err := u.board.Seed(cells)
	if err == nil {
		u.status.LiveCells = u.board.Len()
	}
	u.mu.Unlock()
	if err != nil {
		return err
	}
	u.refreshView()
	return nil
}

//SettleTemplate populates the universe with the seeding template
func (u *Universe) SettleTemplate(name string) error {
	u.mu.Lock()
	tmpl, ok := u.templates[name]
	u.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	if err := u.Settle(tmpl.Cells); err != nil {
		return fmt.Errorf("settle template %q: %w", name, err)
	}
	return nil
}

//SettleWithRandomData populates the universe with random data, returns once the field is settled
//it does nothing while the simulation is running
func (u *Universe) SettleWithRandomData(seed int64) {
	done := make(chan struct{})
	u.exec(func() {
		defer close(done)
		mode := u.Status().RunningMode
		if mode != RunningStateManual && mode != RunningStateFinished {
			return
		}
		u.clear()
		u.mu.Lock()
		_ = u.board.Seed(randomCells(seed, u.options.Rows, u.options.Cols))
		u.status.LiveCells = u.board.Len()
		u.mu.Unlock()
		u.refreshView()
	})
	select {
	case <-done:
	case <-u.closeCh:
	}
}

//InverseCell inverses the cell state at row, col
//coordinates outside the field are ignored
func (u *Universe) InverseCell(row int, col int) {
	u.mu.Lock()
	err := u.board.Toggle(row, col)
	u.status.LiveCells = u.board.Len()
	u.mu.Unlock()
	if err == nil {
		u.refreshView()
	}
}

//RegisterViewer registers the viewer - the universe will call the viewer when the state is changed
func (u *Universe) RegisterViewer(v Viewer) {
	u.mu.Lock()
	u.views = append(u.views, v)
	u.mu.Unlock()
	v.Register(u)
}

//StateCh returns the channel with the universe's status updates
func (u *Universe) StateCh() chan Status {
	return u.stateCh
}

//Status returns current universe status represented by Status struct
func (u *Universe) Status() Status {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.status
}

//Options returns current universe configuration represented by Options struct
func (u *Universe) Options() Options {
	return u.options
}

//Snapshot returns the current field
func (u *Universe) Snapshot() board.Snapshot {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.board.Snapshot()
}

//Run starts the universe simulation, returns immediately
func (u *Universe) Run() {
	u.exec(u.run)
}

//Stop stops the universe simulation, returns immediately
//the Status struct will be written the stateCh on finish
func (u *Universe) Stop() {
	u.exec(u.stop)
}

//Step do one simulation step, returns immediately
//the Status struct will be written to the stateCh on start and on finish
func (u *Universe) Step() {
	u.exec(u.step)
}

//Clear clears the universe (kill all cells and reset all counters), returns immediately
//the Status struct will be written to the stateCh on finish
func (u *Universe) Clear() {
	u.exec(u.clear)
}

//Close stops the main loop and waits for it
//commands sent after Close are dropped
func (u *Universe) Close() {
	u.closeOnce.Do(func() {
		close(u.closeCh)
	})
	<-u.done
}
