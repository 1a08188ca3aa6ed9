// Package ca3161 drives a CA3161 BCD to seven-segment decoder and its
// decimal point from one 8-bit port.
//
// Every update is a read-modify-write against the live port, so bits
// outside the symbol field and the point bit are never disturbed.
package ca3161

import (
	"github.com/pkg/errors"
)

// ErrInvalidSymbol is the cause of any rejected Show call. Nothing is
// written to the port when it is returned.
var ErrInvalidSymbol = errors.New("invalid symbol code")

// Port is the live hardware port
type Port interface {
	// Read samples the pins, inputs included
	Read() (PortImage, error)
	// Write drives the output latch
	Write(p PortImage) error
	// SetDirection makes the bits in outputs drive, the rest float
	SetDirection(outputs PortImage) error
}

type Driver struct {
	port   Port
	layout Layout
}

func NewDriver(port Port, layout Layout) (*Driver, error) {
	if err := layout.Validate(); err != nil {
		return nil, errors.Wrap(err, "bad layout")
	}
	return &Driver{port: port, layout: layout}, nil
}

func (d *Driver) Layout() Layout {
	return d.layout
}

// Setup configures the symbol and point pins as outputs. The reserved
// programming pin and the remaining bits stay inputs.
func (d *Driver) Setup() error {
	err := d.port.SetDirection(d.layout.OutputMask())
	return errors.Wrap(err, "set port direction")
}

// ShowDigit shows 0-9, with the decimal point on when point is set
func (d *Driver) ShowDigit(digit Symbol, point bool) error {
	if !digit.IsDigit() {
		return errors.Wrapf(ErrInvalidSymbol, "digit %d", digit)
	}
	return d.show(digit, point)
}

// ShowSpecial shows one of the glyphs Minus through CharP
func (d *Driver) ShowSpecial(code Symbol, point bool) error {
	if !code.IsSpecial() {
		return errors.Wrapf(ErrInvalidSymbol, "special %d", code)
	}
	return d.show(code, point)
}

// Clear blanks the digit and switches the point off
func (d *Driver) Clear() error {
	return d.update(func(p PortImage) PortImage {
		return d.layout.WithPoint(d.layout.WithSymbol(p, Blank), false)
	})
}

// the symbol and the point are two separate writes, each against a
// fresh read of the port
func (d *Driver) show(s Symbol, point bool) error {
	err := d.update(func(p PortImage) PortImage {
		return d.layout.WithSymbol(p, s)
	})
	if err != nil {
		return err
	}
	return d.update(func(p PortImage) PortImage {
		return d.layout.WithPoint(p, point)
	})
}

func (d *Driver) update(change func(PortImage) PortImage) error {
	cur, err := d.port.Read()
	if err != nil {
		return errors.Wrap(err, "read port")
	}
	return errors.Wrap(d.port.Write(change(cur)), "write port")
}
