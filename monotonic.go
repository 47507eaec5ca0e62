// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package clockdispatch

// monotonicOps backs the monotonic master clock (clock.rs's
// RROS_MONO_CLOCK table). Set is deliberately absent: per design doc
// §6's second Open Question, the original's set_mono_clock stub
// reported success without touching anything, which this port treats
// as a bug rather than a behavior to preserve -- noopOps.Set's
// ErrNotPermitted is the honest answer.
type monotonicOps struct {
	noopOps
	coreGravityOps
}

func (monotonicOps) Read(c *Clock) int64 { return monoNow() }

// ReadCycles stands in for a raw hardware cycle counter read, which
// this port has no access to; it reports the same reading Read does,
// scaled to an (arbitrary) cycle-to-nanosecond ratio of 1:1.
func (monotonicOps) ReadCycles(c *Clock) uint64 { return uint64(monoNow()) }

func (monotonicOps) ProgramLocalShot(c *Clock) {
	if hostTick != nil {
		hostTick.ProgramProxyTick(c)
	}
}

func (monotonicOps) ProgramRemoteShot(c *Clock, rq *RunQueue) {
	if hostTick != nil {
		hostTick.SendTimerIPI(c, rq)
	}
}

// Adjust is intentionally not overridden: per the component table in
// design doc §4.5, the monotonic clock's adjust op is "none" -- it
// falls back to noopOps.Adjust, a true no-op.

// MonotonicClockName is the stable device-registration identity the
// monotonic clock is known by (design doc §6).
const MonotonicClockName = "RROS_CLOCK_MONOTONIC_DEV"
