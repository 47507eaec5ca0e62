// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package clockdispatch

// rearmMask is the status pattern design doc §4.6 step 3f tests: a
// timer is a re-arm candidate iff it is periodic, was just dequeued,
// its handler is (still, as far as this pass is concerned) running,
// and it was not killed out from under the dispatch loop.
const rearmMask = Periodic | Dequeued | Running

// DoClockTick drains every timer on c's base for rq's CPU that is due
// at the moment it is called, invoking handlers synchronously and
// re-arming periodics in place. Grounded on clock.rs's do_clock_tick
// and, for the drain/re-arm shape, the teacher's processExpired.
//
// Must be called with the CPU's interrupts effectively disabled with
// respect to this base -- in this port that means: not concurrently
// with another DoClockTick for the same (clock, rq) pair. The base's
// own mutex serializes against Enqueue/Dequeue from other goroutines,
// but is released around each handler invocation (handlers may call
// Enqueue/Dequeue themselves, and a plain sync.Mutex is not
// reentrant; see DESIGN.md).
func DoClockTick(c *Clock, rq *RunQueue) {
	rq.AddLocalFlags(RQTimer)

	base := c.TimerBaseFor(rq.CPU())
	base.Lock()
	now := c.Read()

	for {
		head := base.PeekHead()
		if head == nil || head.Date() > now {
			break
		}
		base.PopHead()
		accountFired(head)

		if head == rq.InbandTimer() {
			// The host kernel's proxy timer: announce, do not invoke
			// a handler, do not re-enqueue (the host re-arms it).
			if DBGon() {
				DBG("DoClockTick: proxy timer due on cpu %d, handing off\n", rq.CPU())
			}
			rq.AddLocalFlags(RQTProxy)
			rq.ChangeLocalFlags(^RQTDefer)
			continue
		}

		if DBGon() {
			DBG("DoClockTick: firing timer %p on cpu %d at %d\n", head, rq.CPU(), now)
		}
		head.AddStatus(Running)
		base.Unlock()
		head.Handler()(head)
		now = c.Read() // the handler may have consumed time
		base.Lock()

		if head.Status()&(Periodic|Dequeued|Running|Killed) == rearmMask {
			for {
				head.SetPeriodicTicks(head.PeriodicTicks() + 1)
				updateDate(head)
				if head.Date() >= now {
					break
				}
			}
			if head.OnRQ(rq) {
				base.InsertOrdered(head)
			}
			// else: migrated since it fired; left detached.
		}
		head.ClearStatus(Running)
	}

	rq.ChangeLocalFlags(^RQTimer)
	base.Unlock()

	c.ProgramLocalShot()
}
