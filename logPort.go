package main

import (
	"fmt"
	"sync"

	"dscheirer.com/bcdsegment/ca3161"
)

// entries kept in the audit trail
const auditDepth = 256

// logPort is a port in memory: it logs every write and keeps an audit
// trail. Input bits read back whatever setInputs last drove.
type logPort struct {
	mu         sync.Mutex
	layout     ca3161.Layout
	latch      ca3161.PortImage
	direction  ca3161.PortImage
	inputs     ca3161.PortImage
	audit      []string // most recent last, at most maxAudit
	maxAudit   int
	disableLog bool
	dump       bool
	logger     flogger
}

func newLogPort(layout ca3161.Layout) *logPort {
	return &logPort{
		layout:   layout,
		audit:    make([]string, 0),
		maxAudit: auditDepth,
		logger:   &ThreadLogger{name: "Port"},
	}
}

func (lp *logPort) Read() (ca3161.PortImage, error) {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	return lp.live(), nil
}

func (lp *logPort) live() ca3161.PortImage {
	return (lp.latch & lp.direction) | (lp.inputs &^ lp.direction)
}

func (lp *logPort) Write(p ca3161.PortImage) error {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	lp.latch = p
	f := lp.layout.Unpack(lp.live())
	msg := fmt.Sprintf("Set port to %v (symbol %q point %v)", p, f.Symbol.String(), f.Point)
	lp.record(msg)
	if !lp.disableLog {
		lp.logger.Println(msg)
		if lp.dump {
			for _, row := range renderDigit(f.Symbol, f.Point) {
				lp.logger.Println(row)
			}
		}
	}
	return nil
}

func (lp *logPort) SetDirection(outputs ca3161.PortImage) error {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	lp.direction = outputs
	lp.record(fmt.Sprintf("Set direction to %v", outputs))
	return nil
}

// record appends to the audit trail, dropping the oldest entry when full
func (lp *logPort) record(msg string) {
	if len(lp.audit) >= lp.maxAudit {
		n := copy(lp.audit, lp.audit[len(lp.audit)-lp.maxAudit+1:])
		lp.audit = lp.audit[:n]
	}
	lp.audit = append(lp.audit, msg)
}

func (lp *logPort) Close() error {
	return nil
}

// setInputs fakes the levels something outside is driving
func (lp *logPort) setInputs(p ca3161.PortImage) {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	lp.inputs = p
}

func (lp *logPort) image() ca3161.PortImage {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	return lp.live()
}

func (lp *logPort) auditLen() int {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	return len(lp.audit)
}
