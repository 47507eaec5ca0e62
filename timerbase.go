// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package clockdispatch

import "sync"

// TimerBase is one (clock-family, CPU) pair: an ordered queue of
// pending timers plus the lock that must be held, with hard IRQs
// disabled on the real target, during any mutation or iteration (see
// design doc §5; this Go port has no IRQ-disable primitive to call, so
// the mutex alone stands in for the critical section -- see DESIGN.md).
//
// A slave clock and its master alias the very same *TimerBase for a
// given CPU (they share the wheel): timers from either clock coexist
// in one queue, distinguished only by the Clock back-pointer on each
// Timer. This mirrors the teacher's wheel/lists being addressed
// through a single wt.wheels[...] array regardless of which timer's
// Add() populated a slot.
type TimerBase struct {
	mu  sync.Mutex
	cpu int
	q   timerList
}

func newTimerBase(cpu int) *TimerBase {
	b := &TimerBase{cpu: cpu}
	b.q.init()
	return b
}

// Lock/Unlock expose the base's critical section to dispatch/adjust
// code that must hold it across several operations (peek-then-pop,
// drain-while-non-empty, ...). Equivalent to the teacher's
// wt.lock()/wt.unlock() around wt.opLock.
func (b *TimerBase) Lock()   { b.mu.Lock() }
func (b *TimerBase) Unlock() { b.mu.Unlock() }

// PeekHead returns the earliest-deadline timer without removing it, or
// nil if the base is empty. Must be called with the base locked.
func (b *TimerBase) PeekHead() *Timer {
	return b.q.peekHead()
}

// PopHead removes and returns the earliest-deadline timer, or nil if
// the base is empty. Must be called with the base locked.
func (b *TimerBase) PopHead() *Timer {
	t := b.q.peekHead()
	if t == nil {
		return nil
	}
	b.q.rm(t)
	t.base = nil
	t.AddStatus(Dequeued)
	return t
}

// InsertOrdered enqueues t, keeping the queue non-decreasing by date.
// t must be detached. Must be called with the base locked.
func (b *TimerBase) InsertOrdered(t *Timer) {
	if !t.HasStatus(Dequeued) && !t.detached() {
		BUG("InsertOrdered called on an already-queued timer %p\n", t)
		return
	}
	b.q.insertOrdered(t)
	t.base = b
	t.ClearStatus(Dequeued)
}

// Remove unlinks t from the queue if it is present in this base. Must
// be called with the base locked.
func (b *TimerBase) Remove(t *Timer) {
	b.remove(t)
}

func (b *TimerBase) remove(t *Timer) {
	if t.base != b {
		return
	}
	b.q.rm(t)
	t.base = nil
	t.AddStatus(Dequeued)
}

// Len returns the number of timers currently queued. Must be called
// with the base locked.
func (b *TimerBase) Len() int { return b.q.len() }

// IsEmpty reports whether the queue has no pending timers. Must be
// called with the base locked.
func (b *TimerBase) IsEmpty() bool { return b.q.isEmpty() }

// Iter calls f for every queued timer, in date order. Must be called
// with the base locked; f must not mutate the queue (no insert/remove
// of the entry visited, or of any other entry).
func (b *TimerBase) Iter(f func(t *Timer) bool) {
	b.q.forEach(f)
}

// CPU returns the CPU id this base was allocated for.
func (b *TimerBase) CPU() int { return b.cpu }
