package main

import (
	"strconv"

	"github.com/pkg/errors"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"dscheirer.com/bcdsegment/ca3161"
)

// periphPort looks each pin up in the periph registry by its number
type periphPort struct {
	pins      [8]gpio.PinIO
	direction ca3161.PortImage
}

func openPeriphPort(pins [8]int) (hwPort, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "periph host init")
	}
	pp := &periphPort{}
	for bit, pinNum := range pins {
		if pinNum == noPin {
			continue
		}
		pin := gpioreg.ByName(strconv.Itoa(pinNum))
		if pin == nil {
			return nil, errors.Errorf("no gpio %d for bit %d", pinNum, bit)
		}
		pp.pins[bit] = pin
	}
	return pp, nil
}

func (pp *periphPort) SetDirection(outputs ca3161.PortImage) error {
	for bit, pin := range pp.pins {
		if pin == nil {
			continue
		}
		var err error
		if outputs&portBit(bit) != 0 {
			err = pin.Out(gpio.Low)
		} else {
			err = pin.In(gpio.PullNoChange, gpio.NoEdge)
		}
		if err != nil {
			return errors.Wrapf(err, "direction of %s", pin.Name())
		}
	}
	pp.direction = outputs
	return nil
}

func (pp *periphPort) Read() (ca3161.PortImage, error) {
	var p ca3161.PortImage
	for bit, pin := range pp.pins {
		if pin != nil && pin.Read() == gpio.High {
			p |= portBit(bit)
		}
	}
	return p, nil
}

func (pp *periphPort) Write(p ca3161.PortImage) error {
	for bit, pin := range pp.pins {
		if pin == nil || pp.direction&portBit(bit) == 0 {
			continue
		}
		if err := pin.Out(gpio.Level(p&portBit(bit) != 0)); err != nil {
			return errors.Wrapf(err, "write %s", pin.Name())
		}
	}
	return nil
}

func (pp *periphPort) Close() error {
	for _, pin := range pp.pins {
		if pin != nil {
			pin.Halt()
		}
	}
	return nil
}
