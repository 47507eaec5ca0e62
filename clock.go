// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package clockdispatch

// ClockFlags mirrors clock.rs's RROS_CLONE_* visibility flags attached
// to a clock at registration time.
type ClockFlags uint32

const (
	// ClonePublic marks a clock visible to the device-file surface
	// (an external collaborator; this core only carries the bit).
	ClonePublic ClockFlags = 1 << iota
)

// Affinity is a per-clock CPU mask, standing in for clock.rs's
// cpumask::CpumaskT (CONFIG_SMP-gated there; always present here since
// this port targets a fixed, small CPU count). Bit i set means CPU i
// is part of the clock's affinity set.
type Affinity uint64

func (a Affinity) Has(cpu int) bool { return cpu < 64 && a&(1<<uint(cpu)) != 0 }

// AffinityAll returns a mask covering the first n CPUs.
func AffinityAll(n int) Affinity {
	if n >= 64 {
		return ^Affinity(0)
	}
	return Affinity(1<<uint(n)) - 1
}

// Clock is a named time source: an identity, a nominal resolution, a
// gravity triple, an ops vtable, a per-CPU timer base array, and (for
// a slave) a pointer to its master plus the offset between the two.
//
// Invariants (design doc §3): a slave's timerBase equals its master's
// (aliased, not copied); a slave's offset = slave.read_raw() -
// master.read_raw() at init time; a master has master == itself and
// offset == 0; Name is unique across the registry.
type Clock struct {
	Name       string
	Resolution int64 // nominal resolution, ns

	gravity Gravity
	ops     ClockOps

	timerBase *PerCpu[*TimerBase]

	master *Clock
	offset int64 // ns, only meaningful for a slave

	Flags    ClockFlags
	Affinity Affinity

	dispose func(*Clock)

	next *Clock // global registry linkage, see registry.go
}

// IsMaster reports whether c owns its timer base array (c.master == c).
func (c *Clock) IsMaster() bool { return c.master == c }

// Master returns the clock whose timer base array c's timers share.
func (c *Clock) Master() *Clock { return c.master }

// Offset returns the signed nanosecond offset to Master(), meaningful
// only for a slave clock.
func (c *Clock) Offset() int64 { return c.offset }

// Gravity returns the clock's current IRQ/kernel/user latency triple.
func (c *Clock) Gravity() Gravity { return c.gravity }

// TimerBaseFor returns the per-CPU timer base for cpu. For a slave
// this is the very same *TimerBase its master uses.
func (c *Clock) TimerBaseFor(cpu int) *TimerBase {
	return c.timerBase.Get(cpu)
}

// Read returns "now" in the clock's domain. Thin dispatch to the ops
// vtable, per design doc §4.5.
func (c *Clock) Read() int64 { return c.ops.Read(c) }

// ReadCycles returns the raw hardware cycle count backing Read.
func (c *Clock) ReadCycles() uint64 { return c.ops.ReadCycles(c) }

// Set attempts to set the clock to ns. Absent ops (the default)
// report ErrNotPermitted; see design doc §9's Open Question.
func (c *Clock) Set(ns int64) error { return c.ops.Set(c, ns) }

// ProgramLocalShot arms this CPU's hardware event for the next due
// timer on this clock's base. A no-op if the base is empty or the
// clock has no such op (it then cedes to the host kernel's tick).
func (c *Clock) ProgramLocalShot() { c.ops.ProgramLocalShot(c) }

// ProgramRemoteShot asks rq's CPU to reprogram its own shot (SMP IPI).
func (c *Clock) ProgramRemoteShot(rq *RunQueue) { c.ops.ProgramRemoteShot(c, rq) }

// SetGravity replaces the clock's gravity triple.
func (c *Clock) SetGravity(g Gravity) { c.ops.SetGravity(c, g) }

// ResetGravity restores the clock's build-time default gravity.
func (c *Clock) ResetGravity() { c.ops.ResetGravity(c) }

// Adjust reconciles the clock's offset (if any) and shifts every
// pending timer on it to preserve periodic phase across the jump.
// localCPU identifies the caller's own CPU, so the bulk walk knows
// when to program_local_shot versus program_remote_shot (design doc
// §4.7) -- Go has no "current CPU" primitive, so the caller supplies it.
func (c *Clock) Adjust(localCPU int) { c.ops.Adjust(c, localCPU) }
