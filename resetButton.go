package main

import (
	"github.com/pkg/errors"
	"github.com/stianeikeland/go-rpio"
)

type buttonReader interface {
	pressed() bool
}

// rpioButton is a push button to ground on a pulled-up input
type rpioButton struct {
	pin rpio.Pin
}

func openRpioButton(pinNum int) (*rpioButton, error) {
	if err := rpio.Open(); err != nil {
		return nil, errors.Wrap(err, "rpio open")
	}
	pin := rpio.Pin(pinNum)
	pin.Input()
	pin.PullUp() // GND => button press
	return &rpioButton{pin: pin}, nil
}

func (rb *rpioButton) pressed() bool {
	return rb.pin.Read() == rpio.Low
}

func startResetButton(rt runtimeConfig) error {
	pinNum := rt.settings.GetInt(sResetButton)
	if pinNum < 0 {
		return nil
	}
	btn, err := openRpioButton(pinNum)
	if err != nil {
		return err
	}
	rt.logger = &ThreadLogger{name: "ResetButton"}
	rt.logger.Printf("Watching pin %d", pinNum)
	rt.wg.Add(1)
	go runResetButton(rt, btn)
	return nil
}

// runResetButton asks for a reset once per press, on the press edge
func runResetButton(rt runtimeConfig, btn buttonReader) {
	defer rt.wg.Done()

	wasPressed := false
	for !rt.comms.stopped() {
		isPressed := btn.pressed()
		if isPressed && !wasPressed {
			rt.logger.Println("reset pressed")
			rt.comms.requestReset()
		}
		wasPressed = isPressed
		rt.clock.Sleep(dButtonPoll)
	}
	rt.logger.Println("quit from runResetButton")
}
