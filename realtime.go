// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package clockdispatch

// realtimeOps backs the realtime slave clock (clock.rs's
// RROS_REALTIME_CLOCK table): a jumpable wall-clock view of the same
// timer base the monotonic master owns, tracked via a signed offset.
// Set is absent for the same reason as monotonicOps.Set -- see design
// doc §6.
type realtimeOps struct {
	noopOps
	coreGravityOps
}

// Read hits the wall clock directly, exactly as read_realtime_clock
// does in clock.rs -- never master.Read()+offset. offset is upkeep
// state consulted only by Adjust; reading through it would leave this
// clock stale between adjustments whenever the wall clock steps (NTP,
// date -s) without an intervening Adjust call.
func (realtimeOps) Read(c *Clock) int64 { return realNow() }

func (realtimeOps) ReadCycles(c *Clock) uint64 { return uint64(realNow()) }

// Adjust recomputes the realtime offset against the wall clock and
// shifts every pending timer sharing this base to preserve periodic
// phase across the jump (clock.rs's adjust_timer/rros_adjust_timers).
func (realtimeOps) Adjust(c *Clock, localCPU int) {
	newOffset := realNow() - c.master.Read()
	delta := newOffset - c.offset
	c.offset = newOffset
	if delta != 0 {
		AdjustTimers(c, delta, localCPU)
	}
}

// RealtimeClockName is the stable device-registration identity the
// realtime clock is known by (design doc §6).
const RealtimeClockName = "RROS_CLOCK_REALTIME_DEV"
