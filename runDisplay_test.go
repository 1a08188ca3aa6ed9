package main

import (
	"testing"

	"gotest.tools/assert"

	"dscheirer.com/bcdsegment/ca3161"
)

/* things that runDisplayLoop does:

shows 0..9 then the five specials, one per segmentDelay
blanks and flips the point after 14
starts over on a reset request
publishes a status after each step

*/

func TestDisplayFullSequence(t *testing.T) {
	rt, clock, port := testRuntime()
	l := rt.layout

	testStartDisplay(rt)
	// first step is immediate
	clock.BlockUntil(1)
	assert.Equal(t, l.Symbol(port.image()), ca3161.Symbol(0))
	assert.Equal(t, l.Point(port.image()), true)

	// steps 2..10 are the rest of the digits
	for i := 1; i <= 9; i++ {
		testStep(clock, 1)
		assert.Equal(t, l.Symbol(port.image()), ca3161.Symbol(i))
		assert.Equal(t, l.Point(port.image()), true)
	}

	// step 11 is the first special
	testStep(clock, 1)
	assert.Equal(t, l.Symbol(port.image()), ca3161.Minus)

	// up to step 15, after which the display is blanked
	testStep(clock, 4)
	assert.Equal(t, l.Symbol(port.image()), ca3161.Blank)
	assert.Equal(t, l.Point(port.image()), false)
	st, ok := rt.status.get()
	assert.Assert(t, ok)
	assert.Equal(t, st.Code, int(ca3161.CharP))
	assert.Equal(t, st.Cleared, true)
	assert.Equal(t, st.Cycles, 1)

	// and around again, with the point off this time
	testStep(clock, 1)
	assert.Equal(t, l.Symbol(port.image()), ca3161.Symbol(0))
	assert.Equal(t, l.Point(port.image()), false)

	testQuit(rt, clock)
}

func TestDisplayKeepsReservedBit(t *testing.T) {
	rt, clock, port := testRuntime()
	l := rt.layout

	// something outside holds the programming pin and bit 7 high
	port.setInputs(0x81)

	testStartDisplay(rt)
	clock.BlockUntil(1)

	for i := 0; i < 30; i++ {
		assert.Equal(t, l.Other(port.image()), ca3161.PortImage(0x81))
		testStep(clock, 1)
	}

	testQuit(rt, clock)
}

func TestDisplayReset(t *testing.T) {
	rt, clock, port := testRuntime()
	l := rt.layout

	testStartDisplay(rt)
	clock.BlockUntil(1)
	testStep(clock, 5)
	assert.Equal(t, l.Symbol(port.image()), ca3161.Symbol(5))

	rt.comms.requestReset()
	// a second request while one is pending is dropped
	rt.comms.requestReset()

	testStep(clock, 1)
	assert.Equal(t, l.Symbol(port.image()), ca3161.Symbol(0))
	assert.Equal(t, l.Point(port.image()), true)
	st, _ := rt.status.get()
	assert.Equal(t, st.Ticks, 1)

	testStep(clock, 1)
	assert.Equal(t, l.Symbol(port.image()), ca3161.Symbol(1))

	testQuit(rt, clock)
}

func TestDisplayStatusBoard(t *testing.T) {
	rt, clock, _ := testRuntime()

	_, ok := rt.status.get()
	assert.Assert(t, !ok)

	testStartDisplay(rt)
	clock.BlockUntil(1)

	st, ok := rt.status.get()
	assert.Assert(t, ok)
	assert.Equal(t, st.Code, 0)
	assert.Equal(t, st.Glyph, "0")
	assert.Equal(t, st.Point, true)
	assert.Equal(t, st.Port, "0x20")
	assert.Equal(t, st.Ticks, 1)
	assert.Equal(t, st.Time, clock.Now())

	testStep(clock, 11)
	st, _ = rt.status.get()
	assert.Equal(t, st.Code, int(ca3161.CharE))
	assert.Equal(t, st.Glyph, "E")
	assert.Equal(t, st.Ticks, 12)

	testQuit(rt, clock)
}

func TestDisplayQuit(t *testing.T) {
	rt, clock, port := testRuntime()

	testStartDisplay(rt)
	clock.BlockUntil(1)
	testQuit(rt, clock)

	// nothing more is written after the loop exits
	n := port.auditLen()
	clock.Advance(testSettings.GetDuration(sDelay) * 10)
	assert.Equal(t, port.auditLen(), n)
}
