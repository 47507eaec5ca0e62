// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package clockdispatch

// adjustTimer shifts one timer by delta and, for a periodic timer,
// catches its tick counters up (or, on a sufficiently large backward
// jump, rolls them back) so it neither storms nor falls silent across
// the adjustment. Grounded on clock.rs's adjust_timer; t must already
// be dequeued from base when this is called. Re-enqueues t before
// returning.
func adjustTimer(base *TimerBase, t *Timer, delta int64) {
	t.date -= delta

	if !t.IsPeriodic() {
		base.InsertOrdered(t)
		return
	}

	t.start -= delta
	diff := t.clock.Read() - expiry(t)
	period := t.interval

	switch {
	case diff >= period:
		t.periodicTicks += uint64(diff / period)
	case delta < 0 && t.HasStatus(Fired) && diff+period <= 0:
		back := uint64((-diff) / period)
		if back > t.periodicTicks {
			back = t.periodicTicks
		}
		t.periodicTicks -= back
		if back > t.pexpectTicks {
			back = t.pexpectTicks
		}
		t.pexpectTicks -= back
	}

	updateDate(t)
	base.InsertOrdered(t)
}

// AdjustTimers walks every online CPU's base for clock, shifting each
// of its pending timers by delta (design doc §4.7's adjust_timers).
//
// The source this was ported from iterates only CPU 0 despite comment
// text describing all online CPUs -- design doc §9 flags that as a
// bug and mandates the fix, which is what Range below implements.
func AdjustTimers(clock *Clock, delta int64, localCPU int) {
	if DBGon() {
		DBG("AdjustTimers: clock %s delta=%d localCPU=%d\n", clock.Name, delta, localCPU)
	}
	clock.timerBase.Range(func(cpu int, base *TimerBase) {
		base.Lock()
		var toAdjust []*Timer
		base.Iter(func(t *Timer) bool {
			if t.clock == clock {
				toAdjust = append(toAdjust, t)
			}
			return true
		})
		for _, t := range toAdjust {
			base.remove(t)
			adjustTimer(base, t, delta)
		}
		base.Unlock()

		if len(toAdjust) == 0 {
			return
		}
		if cpu == localCPU {
			clock.ProgramLocalShot()
		} else {
			clock.ProgramRemoteShot(CPURQ(cpu))
		}
	})
}

// StopTimers drains every per-CPU base of clock, deactivating every
// timer it finds. Teardown-only (design doc §4.8); never called from
// dispatch or adjust paths.
func StopTimers(clock *Clock) {
	INFO("StopTimers: draining clock %s\n", clock.Name)
	clock.timerBase.Range(func(cpu int, base *TimerBase) {
		base.Lock()
		for {
			head := base.PeekHead()
			if head == nil {
				break
			}
			deactivate(head)
		}
		base.Unlock()
	})
}
