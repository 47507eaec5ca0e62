// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package clockdispatch

// PerCpu[T] abstracts the per-CPU array the original allocates with
// percpu::alloc_per_cpu (see clock.rs's rros_init_clock). Go has no
// per-CPU storage class and no way to express cache-line padding
// without a hand-rolled layout, so this is a plain slice indexed by
// CPU id; every caller reaches a CPU's slot through an explicit cpu
// argument (design doc: "no current-CPU primitive"), which is the
// property actually relied on here, not memory layout.
type PerCpu[T any] struct {
	cpus []T
}

// NewPerCpu allocates a PerCpu store sized for n CPUs, each slot
// initialised by calling init(cpu).
func NewPerCpu[T any](n int, init func(cpu int) T) *PerCpu[T] {
	if n <= 0 {
		PANIC("NewPerCpu called with non-positive cpu count: %d\n", n)
	}
	p := &PerCpu[T]{cpus: make([]T, n)}
	for i := range p.cpus {
		p.cpus[i] = init(i)
	}
	return p
}

// NumCPU returns the number of CPU slots this store was sized for.
func (p *PerCpu[T]) NumCPU() int { return len(p.cpus) }

// Get returns the slot for the given CPU id.
func (p *PerCpu[T]) Get(cpu int) T {
	return p.cpus[cpu]
}

// Range calls f for every CPU slot, in increasing CPU id order. It is
// the only way AdjustTimers and StopTimers are allowed to reach "every
// online CPU" (design doc §6, resolving spec.md §9's open question).
func (p *PerCpu[T]) Range(f func(cpu int, v T)) {
	for i, v := range p.cpus {
		f(i, v)
	}
}
