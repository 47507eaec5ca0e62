// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package clockdispatch

// ClockOps is the set of operations a Clock dispatches to. The
// original models each of these as a nullable function pointer
// (RrosClockOps in clock.rs); per design doc §9 this port replaces
// that with an interface plus a no-op default embed, the same
// "vtable-shaped interface" noodlebox-clock's Clock[T] uses for its
// generic time source.
type ClockOps interface {
	Read(c *Clock) int64
	ReadCycles(c *Clock) uint64
	Set(c *Clock, ns int64) error
	ProgramLocalShot(c *Clock)
	ProgramRemoteShot(c *Clock, rq *RunQueue)
	SetGravity(c *Clock, g Gravity)
	ResetGravity(c *Clock)
	Adjust(c *Clock, localCPU int)
}

// noopOps implements every ClockOps method except the gravity pair
// (see coreGravityOps) as an absent op: Read/ReadCycles return zero,
// ProgramLocalShot/ProgramRemoteShot/Adjust do nothing, and Set fails
// with ErrNotPermitted. Concrete clocks embed it (plus coreGravityOps)
// and override only the operations they actually support,
// so an "absent" op is a real method call instead of a nil-checked
// function pointer.
type noopOps struct{}

func (noopOps) Read(c *Clock) int64                    { return 0 }
func (noopOps) ReadCycles(c *Clock) uint64              { return 0 }
func (noopOps) Set(c *Clock, ns int64) error            { return ErrNotPermitted }
func (noopOps) ProgramLocalShot(c *Clock)               {}
func (noopOps) ProgramRemoteShot(c *Clock, rq *RunQueue) {}
func (noopOps) Adjust(c *Clock, localCPU int)           {}

// coreGravityOps implements the gravity set/reset pair shared by both
// built-in clocks (clock.rs's set_coreclk_gravity/reset_coreclk_gravity
// operate identically regardless of which clock table references them).
type coreGravityOps struct{}

func (coreGravityOps) SetGravity(c *Clock, g Gravity) {
	c.gravity = g
}

func (coreGravityOps) ResetGravity(c *Clock) {
	c.gravity.Reset()
}
