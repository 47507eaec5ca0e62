// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package clockdispatch

// Enqueue arms t on c's timer base for rq's CPU, firing once at date
// (interval==0) or periodically every interval starting at date. It is
// the public face of the "enqueue(timer, base_queue)" helper design
// doc §4.3 treats as external to the core.
//
// t must be detached (freshly built by NewTimer, or previously
// Dequeue()'d); ErrActiveTimer otherwise, the same protocol error the
// teacher's Add()/Reset() report for a timer that is still queued.
func Enqueue(c *Clock, rq *RunQueue, t *Timer, date int64, interval int64) error {
	if !t.HasStatus(Dequeued) {
		WARN("Enqueue: timer %p still active, status %v\n", t, t.Status())
		return ErrActiveTimer
	}
	if DBGon() {
		DBG("Enqueue: timer %p on clock %s cpu %d date=%d interval=%d\n",
			t, c.Name, rq.CPU(), date, interval)
	}

	t.clock = c
	t.rq = rq
	t.start = date
	t.date = date
	t.interval = interval
	t.periodicTicks = 0
	t.pexpectTicks = 0
	t.ClearStatus(Periodic | Fired | Killed)
	if interval > 0 {
		t.AddStatus(Periodic)
	}

	base := c.TimerBaseFor(rq.CPU())
	base.Lock()
	base.InsertOrdered(t)
	base.Unlock()
	return nil
}

// Dequeue removes t from whatever base it is currently queued in.
// ErrInactiveTimer if t is already detached.
func Dequeue(t *Timer) error {
	if t.base == nil {
		return ErrInactiveTimer
	}
	b := t.base
	b.Lock()
	b.remove(t)
	b.Unlock()
	return nil
}

// Kill deactivates t (ignoring ErrInactiveTimer -- killing an already
// detached timer is fine) and marks it Killed, so dispatch's catch-up
// step (§4.6 3f) never re-enqueues it even if it is still mid-flight
// in a handler on another path.
func Kill(t *Timer) {
	if err := Dequeue(t); err != nil && err != ErrInactiveTimer {
		BUG("Kill: unexpected Dequeue error: %v\n", err)
	}
	t.AddStatus(Dequeued)
	t.AddStatus(Killed)
}

// ReadyToFree reports whether t's owner may safely release it: it must
// be fully detached and not mid-handler (design doc §3's lifecycle:
// "freed by their owner after confirming DEQUEUED | ¬RUNNING").
func ReadyToFree(t *Timer) bool {
	return t.HasStatus(Dequeued) && !t.HasStatus(Running)
}

// accountFired marks t as having fired this dispatch pass: the
// account_fired(timer) helper design doc §4.3 names.
func accountFired(t *Timer) {
	t.AddStatus(Fired)
}
