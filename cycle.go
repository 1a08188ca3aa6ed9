package main

import (
	"dscheirer.com/bcdsegment/ca3161"
)

// cycleState is everything the display sequence remembers between steps
type cycleState struct {
	code         ca3161.Symbol // next code to show
	pointVisible bool
	shown        ca3161.Symbol // what the last tick put on the display
	shownPoint   bool
	cleared      bool // the last tick finished a cycle and blanked
	cycles       int
	ticks        int
}

func initialCycleState() cycleState {
	return cycleState{code: 0, pointVisible: true, shown: ca3161.Blank}
}

// tick shows the current code and advances; after code 14 it wraps to 0,
// flips the point and blanks the display. Errors don't stop the sequence,
// the returned state is always the next one.
func tick(d displayDriver, st cycleState) (cycleState, error) {
	var err error
	if st.code.IsDigit() {
		err = d.ShowDigit(st.code, st.pointVisible)
	} else {
		err = d.ShowSpecial(st.code, st.pointVisible)
	}

	next := st
	next.shown = st.code
	next.shownPoint = st.pointVisible
	next.cleared = false
	next.ticks++
	next.code++

	if next.code == ca3161.Blank {
		next.code = 0
		next.pointVisible = !next.pointVisible
		next.cycles++
		next.cleared = true
		if cerr := d.Clear(); err == nil {
			err = cerr
		}
	}
	return next, err
}
