// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package clockdispatch

// inBandCheck reports whether the caller is running in a context that
// is allowed to sleep (design doc §4.10: init_slave "require caller is
// in-band"). The real deployment wires this to the scheduler's own
// in-band/out-of-band classifier; it defaults to "always in-band" so
// the package is usable stand-alone and in tests.
var inBandCheck = func() bool { return true }

// SetInBandContextCheck installs the collaborator init.go's in-band
// requirement is checked against.
func SetInBandContextCheck(f func() bool) {
	inBandCheck = f
}

// initClock finishes bringing up c: record its master and link it
// into the global registry (clock.rs's init_clock).
func initClock(c *Clock, master *Clock) error {
	c.master = master
	return registerClock(c)
}

// InitMaster allocates ncpus' worth of timer bases for a brand new
// master clock, wires master == itself and offset == 0, and registers
// it (clock.rs's init_master). Returns ErrNoMemory for a non-positive
// CPU count rather than the panic NewPerCpu would otherwise raise.
func InitMaster(name string, ops ClockOps, ncpus int) (*Clock, error) {
	if ncpus <= 0 {
		return nil, ErrNoMemory
	}
	c := &Clock{
		Name:       name,
		Resolution: 1,
		gravity:    DefaultGravity(),
		ops:        ops,
		Affinity:   AffinityAll(ncpus),
	}
	c.timerBase = NewPerCpu(ncpus, func(cpu int) *TimerBase {
		return newTimerBase(cpu)
	})
	if err := initClock(c, c); err != nil {
		return nil, err
	}
	return c, nil
}

// InitSlave aliases master's timer base array into a new slave clock,
// computes its initial offset, and registers it (clock.rs's
// init_slave). Requires in-band context because, on the original
// target, it may sleep for allocation; this port has nothing left to
// allocate but still enforces the same calling convention.
//
// rawRead is the slave's "read_raw" -- its hardware time source,
// independent of c's own ops.Read (design doc §3: "offset =
// slave.read_raw() − master.read_raw() at init"). realtimeOps.Read
// itself now reads the wall clock directly rather than through offset,
// but InitSlave is written generically for any slave clock ops, so the
// raw source is still supplied explicitly rather than assumed.
func InitSlave(name string, ops ClockOps, master *Clock, rawRead func() int64) (*Clock, error) {
	if !inBandCheck() {
		WARN("InitSlave: %s called from out-of-band context\n", name)
		return nil, ErrBadContext
	}
	c := &Clock{
		Name:       name,
		Resolution: 1,
		gravity:    DefaultGravity(),
		ops:        ops,
		Affinity:   master.Affinity,
		timerBase:  master.timerBase,
	}
	c.offset = rawRead() - master.Read()
	if err := initClock(c, master); err != nil {
		return nil, err
	}
	return c, nil
}
