// utility functions
package main

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"dscheirer.com/bcdsegment/ca3161"
)

// compiled-in options, filled in by init() in the build-tagged files
var features []string

// poll rate for the reset button
const dButtonPoll = 50 * time.Millisecond

type commChannels struct {
	quit     chan struct{}
	reset    chan struct{}
	quitOnce *sync.Once
}

type runtimeConfig struct {
	comms         commChannels
	clock         clockwork.Clock
	settings      configSettings
	port          hwPort
	layout        ca3161.Layout
	driver        displayDriver
	status        *statusBoard
	sinks         []statusSink
	statusService statusService
	logger        flogger
	wg            *sync.WaitGroup
}

func initCommChannels() commChannels {
	return commChannels{
		quit:     make(chan struct{}),
		reset:    make(chan struct{}, 1),
		quitOnce: &sync.Once{},
	}
}

// stop tells every worker to exit, safe to call more than once
func (c commChannels) stop() {
	c.quitOnce.Do(func() {
		close(c.quit)
	})
}

// requestReset restarts the display sequence; a reset already pending
// absorbs this one
func (c commChannels) requestReset() {
	select {
	case c.reset <- struct{}{}:
	default:
	}
}

func (c commChannels) stopped() bool {
	select {
	case <-c.quit:
		return true
	default:
		return false
	}
}

func initRuntime(settings configSettings, clock clockwork.Clock, port hwPort, comms commChannels) (runtimeConfig, error) {
	layout, err := layoutFromSettings(settings)
	if err != nil {
		return runtimeConfig{}, err
	}
	driver, err := ca3161.NewDriver(port, layout)
	if err != nil {
		return runtimeConfig{}, err
	}

	board := &statusBoard{}
	return runtimeConfig{
		comms:         comms,
		clock:         clock,
		settings:      settings,
		port:          port,
		layout:        layout,
		driver:        driver,
		status:        board,
		sinks:         []statusSink{board},
		statusService: &httpStatusService{},
		logger:        &ThreadLogger{name: "main"},
		wg:            &sync.WaitGroup{},
	}, nil
}
