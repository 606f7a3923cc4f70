package deadline

import (
	"sync/atomic"
	"time"

	"k8s.io/utils/clock"
)

const (
	stateIdle int32 = iota
	stateArmed
	stateFired
	stateCancelled
)

// Deadline fires at most once, timeout after Arm, unless cancelled first.
//
// A Deadline is single-use: it is armed once and then either fires or is
// cancelled. Cancel and firing are mutually exclusive.
type Deadline struct {
	clock   clock.WithDelayedExecution
	timeout time.Duration

	state atomic.Int32
	timer clock.Timer
	fired chan struct{}
	armed chan struct{}
}

func New(clk clock.WithDelayedExecution, timeout time.Duration) *Deadline {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Deadline{
		clock:   clk,
		timeout: timeout,
		fired:   make(chan struct{}),
		armed:   make(chan struct{}),
	}
}

// Arm starts the timer. Calls after the first are ignored.
func (d *Deadline) Arm() {
	if !d.state.CompareAndSwap(stateIdle, stateArmed) {
		return
	}
	if d.timeout <= 0 {
		d.fire()
		close(d.armed)
		return
	}
	d.timer = d.clock.AfterFunc(d.timeout, d.fire)
	close(d.armed)
}

// Fired is closed when the deadline elapses.
func (d *Deadline) Fired() <-chan struct{} {
	return d.fired
}

// Cancel stops a pending deadline. It returns true only when this call
// prevented the deadline from firing.
func (d *Deadline) Cancel() bool {
	if !d.state.CompareAndSwap(stateArmed, stateCancelled) {
		return false
	}
	<-d.armed
	d.timer.Stop()
	return true
}

func (d *Deadline) Timeout() time.Duration {
	return d.timeout
}

func (d *Deadline) fire() {
	if d.state.CompareAndSwap(stateArmed, stateFired) {
		close(d.fired)
	}
}
