package main

import (
	"dscheirer.com/bcdsegment/ca3161"
)

// renderDigit draws the decoded digit as three rows of text
//
//	 _
//	|_|
//	|_|.
func renderDigit(s ca3161.Symbol, point bool) [3]string {
	segs := s.Segments()
	on := func(seg uint, c byte) byte {
		if segs&(1<<seg) != 0 {
			return c
		}
		return ' '
	}

	dot := byte(' ')
	if point {
		dot = '.'
	}

	return [3]string{
		string([]byte{' ', on(ca3161.SegA, '_'), ' ', ' '}),
		string([]byte{on(ca3161.SegF, '|'), on(ca3161.SegG, '_'), on(ca3161.SegB, '|'), ' '}),
		string([]byte{on(ca3161.SegE, '|'), on(ca3161.SegD, '_'), on(ca3161.SegC, '|'), dot}),
	}
}
