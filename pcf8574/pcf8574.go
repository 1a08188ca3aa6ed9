// Package pcf8574 exposes a PCF8574 I2C expander as an 8-bit port.
//
// The PCF8574 has no direction register. Its pins are quasi-bidirectional:
// a pin written high is weakly pulled up and can be read as an input, a pin
// written low sinks current. Input pins are therefore always written high.
package pcf8574

import (
	"sync"

	"github.com/pkg/errors"

	"dscheirer.com/bcdsegment/ca3161"
	"dscheirer.com/bcdsegment/i2c"
)

// default address with A0-A2 tied low
const DefaultAddress = 0x20

// Expander is safe for concurrent use; the select-slave ioctl and the
// transfer happen under one lock.
type Expander struct {
	mu      sync.Mutex
	dev     *i2c.I2C
	outputs ca3161.PortImage
}

// Open connects to the expander. Until SetDirection is called every pin
// is an input.
func Open(address uint8, bus int, simulated bool) (*Expander, error) {
	dev, err := i2c.Open(address, bus, simulated)
	if err != nil {
		return nil, err
	}
	this := &Expander{dev: dev}
	// release all pins
	if err := this.Write(0); err != nil {
		dev.Close()
		return nil, err
	}
	return this, nil
}

func (this *Expander) DebugDump(on bool) {
	this.dev.DebugDump(on)
}

func (this *Expander) Read() (ca3161.PortImage, error) {
	this.mu.Lock()
	defer this.mu.Unlock()

	var buf [1]uint8
	if _, err := this.dev.Read(buf[:]); err != nil {
		return 0, errors.Wrapf(err, "pcf8574 0x%02x read", this.dev.Address())
	}
	return ca3161.PortImage(buf[0]), nil
}

func (this *Expander) Write(p ca3161.PortImage) error {
	this.mu.Lock()
	defer this.mu.Unlock()

	out := (p & this.outputs) | ^this.outputs
	if _, err := this.dev.Write([]uint8{uint8(out)}); err != nil {
		return errors.Wrapf(err, "pcf8574 0x%02x write", this.dev.Address())
	}
	return nil
}

// SetDirection records which pins drive. Pins leaving the output set are
// released on the next Write.
func (this *Expander) SetDirection(outputs ca3161.PortImage) error {
	this.mu.Lock()
	defer this.mu.Unlock()
	this.outputs = outputs
	return nil
}

func (this *Expander) Close() error {
	this.mu.Lock()
	defer this.mu.Unlock()
	return this.dev.Close()
}
