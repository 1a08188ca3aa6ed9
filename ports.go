package main

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"dscheirer.com/bcdsegment/ca3161"
	"dscheirer.com/bcdsegment/pcf8574"
)

// port back ends
const (
	portRPIO     = "rpio"
	portGpiocdev = "gpiocdev"
	portPeriph   = "periph"
	portPCF8574  = "pcf8574"
	portTerm     = "term"
	portLog      = "log"
)

// pin number for a port bit that isn't wired to anything
const noPin = -1

// parsePins reads the pin for each port bit, bit 0 first
func parsePins(s string) ([8]int, error) {
	var pins [8]int
	fields := strings.Split(s, ",")
	if len(fields) != len(pins) {
		return pins, errors.Errorf("need %d pins, got %d in %q", len(pins), len(fields), s)
	}
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return pins, errors.Wrapf(err, "pin for bit %d", i)
		}
		if n < noPin {
			return pins, errors.Errorf("pin for bit %d: %d is not a pin", i, n)
		}
		pins[i] = n
	}
	return pins, nil
}

func openPort(settings configSettings, layout ca3161.Layout, comms commChannels) (hwPort, error) {
	kind := settings.GetString(sPort)
	switch kind {
	case portLog:
		lp := newLogPort(layout)
		lp.dump = settings.GetBool(sDebug)
		return lp, nil
	case portTerm:
		return openTermPort(layout, comms)
	case portPCF8574:
		ex, err := pcf8574.Open(settings.GetByte(sI2CDev), settings.GetInt(sI2CBus), settings.GetBool(sI2CSim))
		if err != nil {
			return nil, err
		}
		ex.DebugDump(settings.GetBool(sDebug))
		return ex, nil
	}

	pins, err := parsePins(settings.GetString(sPortPins))
	if err != nil {
		return nil, err
	}
	switch kind {
	case portRPIO:
		return openRpioPort(pins)
	case portGpiocdev:
		return openGpiocdevPort(settings.GetString(sGpioChip), pins), nil
	case portPeriph:
		return openPeriphPort(pins)
	}
	return nil, errors.Errorf("unknown port type %q", kind)
}

// bit i of the port as an image
func portBit(i int) ca3161.PortImage {
	return ca3161.PortImage(1) << uint(i)
}
