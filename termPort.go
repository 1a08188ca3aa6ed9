// +build !noterm

package main

import (
	"fmt"

	// terminal display for sim mode
	"github.com/nsf/termbox-go"
	"github.com/pkg/errors"

	"dscheirer.com/bcdsegment/ca3161"
)

func init() {
	features = append(features, "term")
}

// termPort draws the decoder output in the terminal. Ctrl-C or q quits,
// r resets the sequence.
type termPort struct {
	*logPort
	comms commChannels
	done  chan struct{}
}

func openTermPort(layout ca3161.Layout, comms commChannels) (hwPort, error) {
	if err := termbox.Init(); err != nil {
		return nil, errors.Wrap(err, "termbox init")
	}
	termbox.SetInputMode(termbox.InputEsc)

	lp := newLogPort(layout)
	// the terminal is ours, keep the log in the file
	lp.disableLog = true
	tp := &termPort{logPort: lp, comms: comms, done: make(chan struct{})}
	tp.draw(lp.image())
	go tp.watchKeys()
	return tp, nil
}

func (tp *termPort) Write(p ca3161.PortImage) error {
	if err := tp.logPort.Write(p); err != nil {
		return err
	}
	tp.draw(tp.logPort.image())
	return nil
}

func (tp *termPort) draw(p ca3161.PortImage) {
	f := tp.layout.Unpack(p)
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)

	for y, row := range renderDigit(f.Symbol, f.Point) {
		for x, c := range row {
			termbox.SetCell(2+x, 1+y, c, termbox.ColorRed|termbox.AttrBold, termbox.ColorDefault)
		}
	}
	point := "off"
	if f.Point {
		point = "on"
	}
	status := fmt.Sprintf("port %v  code %2d  point %-3s  [r]eset [q]uit", p, uint8(f.Symbol), point)
	for x, c := range status {
		termbox.SetCell(2+x, 5, c, termbox.ColorDefault, termbox.ColorDefault)
	}
	termbox.Flush()
}

func (tp *termPort) watchKeys() {
	defer close(tp.done)
	for true {
		ev := termbox.PollEvent()
		switch ev.Type {
		case termbox.EventInterrupt:
			return
		case termbox.EventKey:
			switch {
			case ev.Key == termbox.KeyCtrlC || ev.Key == termbox.KeyEsc || ev.Ch == 'q':
				tp.comms.stop()
				return
			case ev.Ch == 'r':
				tp.comms.requestReset()
			}
		}
	}
}

func (tp *termPort) Close() error {
	select {
	case <-tp.done:
		// q already stopped the key watcher
	default:
		termbox.Interrupt()
		<-tp.done
	}
	termbox.Close()
	return nil
}
