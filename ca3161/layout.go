package ca3161

import (
	"fmt"

	"github.com/pkg/errors"
)

// PortImage is the full 8-bit output port
type PortImage uint8

func (p PortImage) String() string {
	return fmt.Sprintf("0x%02x", uint8(p))
}

// width of the BCD field
const symbolBits = 4

// Layout places the symbol field and the point bit on the port.
// Every other bit belongs to somebody else.
type Layout struct {
	SymbolOffset     uint8
	PointBit         uint8
	ReservedInputBit uint8
}

// DefaultLayout is the board wiring: BCD on bits 1-4, point on bit 5,
// bit 0 left alone for the programmer
var DefaultLayout = Layout{SymbolOffset: 1, PointBit: 5, ReservedInputBit: 0}

// Fields is a PortImage split into its three named parts
type Fields struct {
	Symbol Symbol
	Point  bool
	Other  PortImage
}

func (l Layout) Validate() error {
	if int(l.SymbolOffset)+symbolBits > 8 {
		return errors.Errorf("symbol field at offset %d does not fit the port", l.SymbolOffset)
	}
	if l.PointBit >= 8 {
		return errors.Errorf("point bit %d is outside the port", l.PointBit)
	}
	if l.ReservedInputBit >= 8 {
		return errors.Errorf("reserved bit %d is outside the port", l.ReservedInputBit)
	}
	if l.SymbolMask()&l.PointMask() != 0 {
		return errors.Errorf("point bit %d overlaps the symbol field", l.PointBit)
	}
	if l.OutputMask()&l.ReservedMask() != 0 {
		return errors.Errorf("reserved bit %d overlaps an output field", l.ReservedInputBit)
	}
	return nil
}

func (l Layout) SymbolMask() PortImage {
	return PortImage(0x0F << l.SymbolOffset)
}

func (l Layout) PointMask() PortImage {
	return PortImage(1 << l.PointBit)
}

func (l Layout) ReservedMask() PortImage {
	return PortImage(1 << l.ReservedInputBit)
}

// OutputMask is every bit this package drives
func (l Layout) OutputMask() PortImage {
	return l.SymbolMask() | l.PointMask()
}

func (l Layout) Symbol(p PortImage) Symbol {
	return Symbol((p & l.SymbolMask()) >> l.SymbolOffset)
}

func (l Layout) Point(p PortImage) bool {
	return p&l.PointMask() != 0
}

// Other returns p with both owned fields cleared
func (l Layout) Other(p PortImage) PortImage {
	return p &^ l.OutputMask()
}

func (l Layout) WithSymbol(p PortImage, s Symbol) PortImage {
	return (p &^ l.SymbolMask()) | (PortImage(s&0x0F) << l.SymbolOffset)
}

func (l Layout) WithPoint(p PortImage, on bool) PortImage {
	if on {
		return p | l.PointMask()
	}
	return p &^ l.PointMask()
}

func (l Layout) Unpack(p PortImage) Fields {
	return Fields{Symbol: l.Symbol(p), Point: l.Point(p), Other: l.Other(p)}
}

// Pack is the inverse of Unpack; owned bits in f.Other are ignored
func (l Layout) Pack(f Fields) PortImage {
	return l.WithPoint(l.WithSymbol(l.Other(f.Other), f.Symbol), f.Point)
}
