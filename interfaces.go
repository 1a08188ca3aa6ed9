package main

import (
	"dscheirer.com/bcdsegment/ca3161"
)

// hwPort is a port back end that has to be released on exit
type hwPort interface {
	ca3161.Port
	Close() error
}

type displayDriver interface {
	Setup() error
	ShowDigit(digit ca3161.Symbol, point bool) error
	ShowSpecial(code ca3161.Symbol, point bool) error
	Clear() error
}

type statusSink interface {
	publish(st displayStatus) error
}

type statusService interface {
	launch(handler *apiHandler, addr string)
	stop()
}
