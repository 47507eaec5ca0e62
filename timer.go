// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package clockdispatch

// TimerStatus is a closed bitset describing where a Timer sits in its
// lifecycle. The exact bit values are implementation-defined (per
// design doc §6); only the set of bits is part of the contract.
type TimerStatus uint8

const (
	// Periodic marks a timer that re-arms itself with Interval after
	// every fire (set by Enqueue when interval > 0, cleared by Enqueue
	// otherwise).
	Periodic TimerStatus = 1 << iota
	// Dequeued marks a timer that is not currently linked into any
	// TimerBase queue ("detached"). Exactly one of Dequeued set or
	// "present in a base's queue" holds at any instant.
	Dequeued
	// Running marks a timer whose handler is currently executing.
	Running
	// Fired marks a timer that has been popped off its queue and
	// accounted for by the current dispatch pass.
	Fired
	// Killed marks a timer that must not be re-enqueued even if its
	// handler or the dispatch catch-up loop would otherwise do so.
	Killed
)

func (s TimerStatus) has(bits TimerStatus) bool { return s&bits == bits }
func (s TimerStatus) any(bits TimerStatus) bool { return s&bits != 0 }

// Handler is invoked with the timer that fired. It must not sleep or
// block: dispatch runs it synchronously from DoClockTick, which
// releases the base's lock only for the duration of the call.
type Handler func(t *Timer)

// Timer is one scheduled event: an absolute deadline in its clock's
// time domain, an optional period, and a handler. A Timer is owned by
// whichever TimerBase it is enqueued into; all field mutation happens
// under that base's lock (see TimerBase), so, unlike the teacher's
// tInfo, no field here needs lock-free/atomic access.
type Timer struct {
	date  int64 // absolute firing date, ns, in clock's domain
	start int64 // start date, used for periodic phase accounting

	interval int64 // period in ns; 0 means one-shot

	periodicTicks uint64 // how many periods have elapsed since start
	pexpectTicks  uint64 // periods the caller expects to have observed

	status TimerStatus

	clock *Clock
	f     Handler

	rq *RunQueue // owning run-queue, for OnRQ() migration checks

	next, prev *Timer // TimerBase queue linkage
	base       *TimerBase
}

// NewTimer returns a detached timer bound to rq (the run-queue whose
// CPU will own it once enqueued). Whether it is one-shot or periodic is
// set by the interval passed to Enqueue (0 means one-shot).
func NewTimer(rq *RunQueue, f Handler) *Timer {
	t := &Timer{f: f, rq: rq, status: Dequeued}
	t.next, t.prev = t, t // detached marker, same convention as the teacher's timerLst
	return t
}

func (t *Timer) Date() int64         { return t.date }
func (t *Timer) SetDate(d int64)     { t.date = d }
func (t *Timer) StartDate() int64    { return t.start }
func (t *Timer) SetStartDate(d int64) {
	t.start = d
}
func (t *Timer) Interval() int64    { return t.interval }
func (t *Timer) IsPeriodic() bool   { return t.interval > 0 }
func (t *Timer) PeriodicTicks() uint64     { return t.periodicTicks }
func (t *Timer) SetPeriodicTicks(v uint64) { t.periodicTicks = v }
func (t *Timer) PexpectTicks() uint64      { return t.pexpectTicks }
func (t *Timer) SetPexpectTicks(v uint64)  { t.pexpectTicks = v }

func (t *Timer) Status() TimerStatus          { return t.status }
func (t *Timer) HasStatus(bits TimerStatus) bool { return t.status.has(bits) }
func (t *Timer) AddStatus(bits TimerStatus)   { t.status |= bits }
func (t *Timer) ClearStatus(bits TimerStatus) { t.status &^= bits }

func (t *Timer) Clock() *Clock   { return t.clock }
func (t *Timer) Handler() Handler { return t.f }

// OnRQ reports whether rq is still the timer's owning run-queue. A
// periodic timer whose owner migrated between its fire and the
// catch-up re-arm in do_clock_tick is left detached rather than
// re-enqueued onto the wrong CPU's base.
func (t *Timer) OnRQ(rq *RunQueue) bool {
	return t.rq == rq
}

// detached mirrors the teacher's timerLst convention: a node whose
// next/prev point to itself is not linked into any list.
func (t *Timer) detached() bool {
	return t.next == t || t.next == nil
}

// updateDate recomputes date = start + periodicTicks*interval - gravity.kernel,
// the same formula spec.md §4.3 assigns to the external update_date() helper.
func updateDate(t *Timer) {
	gravity := int64(0)
	if t.clock != nil {
		gravity = int64(t.clock.Gravity().Kernel())
	}
	t.date = t.start + int64(t.periodicTicks)*t.interval - gravity
}

// expiry returns the timer's nominal (gravity-free) expiry, i.e. the
// date it would have fired at absent IRQ/kernel latency compensation.
// This mirrors spec.md §4.3's get_expiry() helper, used by adjust_timer.
func expiry(t *Timer) int64 {
	gravity := int64(0)
	if t.clock != nil {
		gravity = int64(t.clock.Gravity().Kernel())
	}
	return t.date + gravity
}

// deactivate detaches t from whatever base it is linked into, without
// touching Killed/Running (those are dispatch's business). It is the
// bulk-teardown primitive used by StopTimers.
func deactivate(t *Timer) {
	if t.base != nil {
		t.base.remove(t)
	}
	t.AddStatus(Dequeued)
}
