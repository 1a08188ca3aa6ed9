package ca3161

import "fmt"

// Symbol is the 4-bit BCD code latched into the decoder
type Symbol uint8

// codes above 9 decode to the CA3161 special characters
const (
	MaxDigit Symbol = 0x09
	Minus    Symbol = 0x0A
	CharE    Symbol = 0x0B
	CharH    Symbol = 0x0C
	CharL    Symbol = 0x0D
	CharP    Symbol = 0x0E
	Blank    Symbol = 0x0F
)

// positions of segments (bit N of a segment pattern)
const (
	SegA = iota // top
	SegB        // top right
	SegC        // bottom right
	SegD        // bottom
	SegE        // bottom left
	SegF        // top left
	SegG        // middle
)

// what the decoder lights for each code
var segmentValues = [16]byte{
	0x3F, // 0
	0x06, // 1
	0x5B, // 2
	0x4F, // 3
	0x66, // 4
	0x6D, // 5
	0x7D, // 6
	0x07, // 7
	0x7F, // 8
	0x6F, // 9
	0x40, // -
	0x79, // E
	0x76, // H
	0x38, // L
	0x73, // P
	0x00, // blank
}

var glyphs = [16]string{
	"0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
	"-", "E", "H", "L", "P", " ",
}

// IsDigit reports whether s is a decimal digit
func (s Symbol) IsDigit() bool {
	return s <= MaxDigit
}

// IsSpecial reports whether s is one of the five special glyphs
func (s Symbol) IsSpecial() bool {
	return s >= Minus && s <= CharP
}

func (s Symbol) String() string {
	if s > Blank {
		return fmt.Sprintf("Symbol(%d)", uint8(s))
	}
	return glyphs[s]
}

// Segments returns the lit segments for s, SegA in bit 0
func (s Symbol) Segments() byte {
	if s > Blank {
		return 0
	}
	return segmentValues[s]
}
