package main

import (
	"github.com/pkg/errors"
	"github.com/stianeikeland/go-rpio"

	"dscheirer.com/bcdsegment/ca3161"
)

// rpioPort maps each port bit onto a BCM pin through /dev/gpiomem
type rpioPort struct {
	pins      [8]int
	direction ca3161.PortImage
}

func openRpioPort(pins [8]int) (hwPort, error) {
	err := rpio.Open()
	if err != nil {
		return nil, errors.Wrap(err, "rpio open")
	}
	return &rpioPort{pins: pins}, nil
}

func (rp *rpioPort) SetDirection(outputs ca3161.PortImage) error {
	for bit, pinNum := range rp.pins {
		if pinNum == noPin {
			continue
		}
		pin := rpio.Pin(pinNum)
		if outputs&portBit(bit) != 0 {
			pin.Output()
		} else {
			pin.Input()
		}
	}
	rp.direction = outputs
	return nil
}

func (rp *rpioPort) Read() (ca3161.PortImage, error) {
	var p ca3161.PortImage
	for bit, pinNum := range rp.pins {
		if pinNum == noPin {
			continue
		}
		if rpio.Pin(pinNum).Read() == rpio.High {
			p |= portBit(bit)
		}
	}
	return p, nil
}

// Write only touches output pins, inputs are left floating
func (rp *rpioPort) Write(p ca3161.PortImage) error {
	for bit, pinNum := range rp.pins {
		if pinNum == noPin || rp.direction&portBit(bit) == 0 {
			continue
		}
		pin := rpio.Pin(pinNum)
		if p&portBit(bit) != 0 {
			pin.High()
		} else {
			pin.Low()
		}
	}
	return nil
}

func (rp *rpioPort) Close() error {
	return rpio.Close()
}
