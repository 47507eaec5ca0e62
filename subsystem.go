// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package clockdispatch

// Monotonic and Realtime are the two built-in clocks, valid once
// SubsystemInit has returned successfully. Lifecycles (design doc §3):
// the master is created once and never destroyed; the realtime slave
// is the only slave this core supports.
var (
	Monotonic *Clock
	Realtime  *Clock
)

// SubsystemInit brings the whole clock/timer-dispatch core up: resets
// both built-in clocks' gravity to build-time defaults, initializes
// monotonic as the out-of-band master over ncpus CPUs, and initializes
// realtime as its slave (clock.rs's subsystem_init). Must be called
// from in-band context before any other entrypoint in this package, and
// not again until Shutdown has run (a second call finds both clock
// names registered and fails with ErrDuplicateClock).
func SubsystemInit(ncpus int) error {
	mono, err := InitMaster(MonotonicClockName, monotonicOps{}, ncpus)
	if err != nil {
		return err
	}
	mono.ResetGravity()

	rt, err := InitSlave(RealtimeClockName, realtimeOps{}, mono, realNow)
	if err != nil {
		unregisterClock(mono)
		return err
	}
	rt.ResetGravity()

	runQueues = NewPerCpu(ncpus, func(cpu int) *RunQueue {
		return newRunQueue(cpu)
	})

	Monotonic = mono
	Realtime = rt
	return nil
}

// Shutdown drains every pending timer on both built-in clocks and
// unregisters them. There is no re-Init after Shutdown: a fresh
// SubsystemInit call is required, exactly as on the source target
// (design doc §3: the master is "never destroyed" in normal operation;
// this exists for orderly process teardown and tests).
func Shutdown() {
	if Monotonic != nil {
		StopTimers(Monotonic)
		unregisterClock(Monotonic)
	}
	if Realtime != nil {
		unregisterClock(Realtime)
	}
	Monotonic = nil
	Realtime = nil
	runQueues = nil
}
