package main

import (
	"sync"
	"time"

	"dscheirer.com/bcdsegment/ca3161"
)

// displayStatus is what the outside world gets to see after each step
type displayStatus struct {
	Code    int       `json:"code"`
	Glyph   string    `json:"glyph"`
	Point   bool      `json:"point"`
	Cleared bool      `json:"cleared"`
	Port    string    `json:"port"`
	Cycles  int       `json:"cycles"`
	Ticks   int       `json:"ticks"`
	Time    time.Time `json:"time"`
}

func newDisplayStatus(st cycleState, image ca3161.PortImage, now time.Time) displayStatus {
	return displayStatus{
		Code:    int(st.shown),
		Glyph:   st.shown.String(),
		Point:   st.shownPoint,
		Cleared: st.cleared,
		Port:    image.String(),
		Cycles:  st.cycles,
		Ticks:   st.ticks,
		Time:    now,
	}
}

// statusBoard keeps the latest status for readers on other goroutines
type statusBoard struct {
	mu    sync.RWMutex
	cur   displayStatus
	valid bool
}

func (b *statusBoard) publish(st displayStatus) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cur = st
	b.valid = true
	return nil
}

// get returns false until the first step has run
func (b *statusBoard) get() (displayStatus, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cur, b.valid
}
