package ca3161

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"gotest.tools/assert"
)

// fakePort latches writes to output bits; input bits read back whatever
// the outside world is driving
type fakePort struct {
	latch     PortImage
	external  PortImage
	direction PortImage
	reads     int
	writes    []PortImage
	failRead  error
}

func (f *fakePort) Read() (PortImage, error) {
	f.reads++
	if f.failRead != nil {
		return 0, f.failRead
	}
	return (f.latch & f.direction) | (f.external &^ f.direction), nil
}

func (f *fakePort) Write(p PortImage) error {
	f.writes = append(f.writes, p)
	f.latch = p
	return nil
}

func (f *fakePort) SetDirection(outputs PortImage) error {
	f.direction = outputs
	return nil
}

func newTestDriver(t *testing.T, seed PortImage) (*Driver, *fakePort) {
	port := &fakePort{latch: seed, external: seed, direction: 0xFF}
	d, err := NewDriver(port, DefaultLayout)
	assert.NilError(t, err)
	return d, port
}

// a spread of values for the bits nobody here owns
var otherSeeds = []PortImage{0x00, 0x01, 0x40, 0x80, 0xC1, 0xFF, 0xA5, 0x5A}

func TestShowDigitKeepsOtherBits(t *testing.T) {
	for _, seed := range otherSeeds {
		for digit := Symbol(0); digit <= MaxDigit; digit++ {
			for _, point := range []bool{false, true} {
				d, port := newTestDriver(t, seed)
				assert.NilError(t, d.ShowDigit(digit, point))

				got := port.latch
				l := d.Layout()
				msg := fmt.Sprintf("seed %v digit %v point %v", seed, digit, point)
				assert.Equal(t, l.Other(got), l.Other(seed), msg)
				assert.Equal(t, l.Symbol(got), digit, msg)
				assert.Equal(t, l.Point(got), point, msg)
			}
		}
	}
}

func TestShowSpecialKeepsOtherBits(t *testing.T) {
	for _, seed := range otherSeeds {
		for code := Minus; code <= CharP; code++ {
			d, port := newTestDriver(t, seed)
			assert.NilError(t, d.ShowSpecial(code, true))

			l := d.Layout()
			assert.Equal(t, l.Other(port.latch), l.Other(seed))
			assert.Equal(t, l.Symbol(port.latch), code)
			assert.Assert(t, l.Point(port.latch))
		}
	}
}

func TestShowDigitExactBits(t *testing.T) {
	d, port := newTestDriver(t, 0xC1)

	assert.NilError(t, d.ShowDigit(7, true))
	// 0xC1 | 7<<1 | 1<<5
	assert.Equal(t, port.latch, PortImage(0xEF))

	assert.NilError(t, d.ShowDigit(2, false))
	assert.Equal(t, port.latch, PortImage(0xC5))
}

func TestShowTwoReadModifyWrites(t *testing.T) {
	d, port := newTestDriver(t, 0x00)

	assert.NilError(t, d.ShowDigit(3, true))
	assert.Equal(t, port.reads, 2)
	assert.Equal(t, len(port.writes), 2)
	// symbol lands first, then the point
	assert.Equal(t, port.writes[0], PortImage(0x06))
	assert.Equal(t, port.writes[1], PortImage(0x26))
}

func TestInvalidCodesDoNothing(t *testing.T) {
	tests := []struct {
		name string
		show func(d *Driver) error
	}{
		{"digit 10", func(d *Driver) error { return d.ShowDigit(10, true) }},
		{"digit 15", func(d *Driver) error { return d.ShowDigit(Blank, false) }},
		{"digit 200", func(d *Driver) error { return d.ShowDigit(200, true) }},
		{"special 9", func(d *Driver) error { return d.ShowSpecial(9, true) }},
		{"special 0", func(d *Driver) error { return d.ShowSpecial(0, false) }},
		{"special 15", func(d *Driver) error { return d.ShowSpecial(Blank, true) }},
		{"special 255", func(d *Driver) error { return d.ShowSpecial(255, false) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, port := newTestDriver(t, 0xA5)
			err := tc.show(d)
			assert.Assert(t, errors.Cause(err) == ErrInvalidSymbol)
			assert.Equal(t, port.latch, PortImage(0xA5))
			assert.Equal(t, port.reads, 0)
			assert.Equal(t, len(port.writes), 0)
		})
	}
}

func TestClear(t *testing.T) {
	for _, seed := range otherSeeds {
		d, port := newTestDriver(t, seed)
		assert.NilError(t, d.ShowDigit(4, true))
		assert.NilError(t, d.Clear())

		l := d.Layout()
		assert.Equal(t, l.Symbol(port.latch), Blank)
		assert.Equal(t, l.Point(port.latch), false)
		assert.Equal(t, l.Other(port.latch), l.Other(seed))
	}
}

func TestClearFromAnything(t *testing.T) {
	for seed := 0; seed < 256; seed++ {
		d, port := newTestDriver(t, PortImage(seed))
		assert.NilError(t, d.Clear())
		assert.Equal(t, port.latch, (PortImage(seed)&0xC1)|0x1E)
	}
}

func TestSetupDirection(t *testing.T) {
	d, port := newTestDriver(t, 0)
	assert.NilError(t, d.Setup())
	// pins 1-5 out, programming pin 0 and 6-7 in
	assert.Equal(t, port.direction, PortImage(0x3E))
}

func TestReservedInputFollowsOutsideWorld(t *testing.T) {
	d, port := newTestDriver(t, 0)
	assert.NilError(t, d.Setup())

	// the programmer drives pin 0 while we update the display
	port.external = 0x01
	assert.NilError(t, d.ShowDigit(9, false))
	assert.Equal(t, port.latch, PortImage(0x13))

	port.external = 0x00
	assert.NilError(t, d.ShowDigit(9, false))
	assert.Equal(t, port.latch, PortImage(0x12))
}

func TestReadErrorIsWrapped(t *testing.T) {
	d, port := newTestDriver(t, 0)
	bad := errors.New("bus gone")
	port.failRead = bad

	err := d.ShowDigit(1, true)
	assert.ErrorContains(t, err, "read port")
	assert.Equal(t, errors.Cause(err), bad)
	assert.Equal(t, len(port.writes), 0)
}

func TestNewDriverBadLayout(t *testing.T) {
	_, err := NewDriver(&fakePort{}, Layout{SymbolOffset: 1, PointBit: 3})
	assert.ErrorContains(t, err, "bad layout")
}
