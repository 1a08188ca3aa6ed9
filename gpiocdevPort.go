package main

import (
	"github.com/pkg/errors"
	"github.com/warthog618/go-gpiocdev"

	"dscheirer.com/bcdsegment/ca3161"
)

// gpiocdevPort uses the GPIO character device, one requested line per
// wired bit. Lines are requested when the direction is set.
type gpiocdevPort struct {
	chip      string
	pins      [8]int
	lines     [8]*gpiocdev.Line
	direction ca3161.PortImage
}

func openGpiocdevPort(chip string, pins [8]int) hwPort {
	return &gpiocdevPort{chip: chip, pins: pins}
}

func (gp *gpiocdevPort) SetDirection(outputs ca3161.PortImage) error {
	gp.release()
	for bit, pinNum := range gp.pins {
		if pinNum == noPin {
			continue
		}
		var opt gpiocdev.LineReqOption = gpiocdev.AsInput
		if outputs&portBit(bit) != 0 {
			opt = gpiocdev.AsOutput(0)
		}
		line, err := gpiocdev.RequestLine(gp.chip, pinNum, opt)
		if err != nil {
			gp.release()
			return errors.Wrapf(err, "request %s line %d", gp.chip, pinNum)
		}
		gp.lines[bit] = line
	}
	gp.direction = outputs
	return nil
}

func (gp *gpiocdevPort) Read() (ca3161.PortImage, error) {
	var p ca3161.PortImage
	for bit, line := range gp.lines {
		if line == nil {
			continue
		}
		v, err := line.Value()
		if err != nil {
			return 0, errors.Wrapf(err, "read bit %d", bit)
		}
		if v != 0 {
			p |= portBit(bit)
		}
	}
	return p, nil
}

func (gp *gpiocdevPort) Write(p ca3161.PortImage) error {
	for bit, line := range gp.lines {
		if line == nil || gp.direction&portBit(bit) == 0 {
			continue
		}
		v := 0
		if p&portBit(bit) != 0 {
			v = 1
		}
		if err := line.SetValue(v); err != nil {
			return errors.Wrapf(err, "write bit %d", bit)
		}
	}
	return nil
}

func (gp *gpiocdevPort) release() {
	for i, line := range gp.lines {
		if line != nil {
			line.Close()
			gp.lines[i] = nil
		}
	}
}

func (gp *gpiocdevPort) Close() error {
	gp.release()
	return nil
}
