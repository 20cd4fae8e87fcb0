package universe

import (
	"math/rand"
	"time"

	"toruslife/src/board"
)

//exec sends the command to the main loop
func (u *Universe) exec(cmd func()) {
	select {
	case u.controlCh <- cmd:
	case <-u.closeCh:
	}
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (u *Universe) mainLoop() {
	defer close(u.done)
	for {
		select {
		case cmd := <-u.controlCh:
			cmd()
		case <-u.closeCh:
			return
		}
	}
}

//switchRunningState switch the state of the universe to RunningState
//also writes the new state to the stateCh to signal upper control software
func (u *Universe) switchRunningState(to RunningState) {
	u.mu.Lock()
	u.status.RunningMode = to
	st := u.status
	u.mu.Unlock()
	if u.stateCh != nil {
		select {
		case u.stateCh <- st:
		case <-u.closeCh:
		}
	}
}

//running reports whether the run cycle with this id is still the active one
func (u *Universe) running(id int) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.runID == id && (u.status.RunningMode == RunningStateRun || u.status.RunningMode == RunningStateStep)
}

//run starts the universe simulation
//simulation will stop on Stop() calling or when the boundary conditions are reached
func (u *Universe) run() {
	u.mu.Lock()
	mode := u.status.RunningMode
	if mode == RunningStateRun {
		u.mu.Unlock()
		return
	}
	u.runID++
	id := u.runID
	u.mu.Unlock()

	u.switchRunningState(RunningStateRun)
	go u.runLoop(id)
}

//runLoop schedules one step per interval until the run is stopped or finished
//a tick is skipped when the main loop can not accept the step in time
func (u *Universe) runLoop(id int) {
	done := make(chan struct{}, 1)
	skipped := 0
	for u.running(id) {
		if skipped > u.options.MaxSkippedTicks {
			u.exec(func() {
				if u.running(id) {
					u.switchRunningState(RunningStateFinished)
					u.refreshView()
				}
			})
			return
		}
		select {
		case u.controlCh <- func() {
			if u.running(id) {
				u.step()
			}
			done <- struct{}{}
		}:
			skipped = 0
		case <-u.tick():
			skipped++
			continue
		case <-u.closeCh:
			return
		}

		select {
		case <-done:
		case <-u.closeCh:
			return
		}

		if u.options.Interval > 0 {
			select {
			case <-time.After(u.options.Interval):
			case <-u.closeCh:
				return
			}
		}
	}
}

//tick returns the channel for the skipped tick detection, nil (never fires) without an interval
func (u *Universe) tick() <-chan time.Time {
	if u.options.Interval <= 0 {
		return nil
	}
	return time.After(u.options.Interval)
}

//stop stops the universe running cycle
func (u *Universe) stop() {
	if u.Status().RunningMode == RunningStateRun {
		u.switchRunningState(RunningStateManual)
	}
}

//step calculates the next generation for the entire universe
//the simulation is finished when the field is empty, stable, or MaxSteps is reached
func (u *Universe) step() {
	u.mu.Lock()
	rm := u.status.RunningMode
	u.mu.Unlock()
	u.switchRunningState(RunningStateStep)

	u.mu.Lock()
	start := time.Now()
	changed := u.board.Advance()
	u.status.Generation++
	u.status.LiveCells = u.board.Len()
	u.status.IterationTime = time.Since(start)
	maxSteps := u.options.MaxSteps
	finished := u.status.LiveCells == 0 || !changed || (maxSteps != 0 && u.status.Generation >= maxSteps)
	u.mu.Unlock()

	if finished {
		rm = RunningStateFinished
	}
	u.switchRunningState(rm)
	u.refreshView()
}

//clear clears the universe data, reset all counters
func (u *Universe) clear() {
	u.mu.Lock()
	u.board.Clear()
	u.status = Status{}
	u.runID++
	u.mu.Unlock()
	u.switchRunningState(RunningStateManual)
	u.refreshView()
}

//refreshView calls Refresh event for all registered views
//the views are called without the lock, they read the status back
func (u *Universe) refreshView() {
	u.mu.Lock()
	views := make([]Viewer, len(u.views))
	copy(views, u.views)
	u.mu.Unlock()
	for _, v := range views {
		v.Refresh()
	}
}

//randomCells picks rows*cols random positions, repeated positions collapse into one cell
func randomCells(seed int64, rows int, cols int) []board.Coord {
	rnd := rand.New(rand.NewSource(seed))
	cells := make([]board.Coord, rows*cols)
	for i := range cells {
		cells[i] = board.Coord{Row: rnd.Intn(rows), Col: rnd.Intn(cols)}
	}
	return cells
}
