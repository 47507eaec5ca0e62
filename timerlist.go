// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package clockdispatch

// timerList is a circular doubly-linked list with a sentinel head node,
// the same shape as the teacher's timerLst. Unlike the teacher's
// per-wheel-slot lists (which only ever need append-at-tail, since the
// wheel itself provides the ordering), this list is kept ordered by
// Timer.date at all times: it backs a single per-CPU TimerBase instead
// of 38 wheel slots, so insertion must find its own place.
type timerList struct {
	head Timer // sentinel; only next/prev are meaningful
}

func (lst *timerList) init() {
	lst.head.next = &lst.head
	lst.head.prev = &lst.head
}

func (lst *timerList) isEmpty() bool {
	return lst.head.next == &lst.head
}

func (lst *timerList) len() int {
	n := 0
	for v := lst.head.next; v != &lst.head; v = v.next {
		n++
	}
	return n
}

// insertOrdered links e into the list at the position that keeps the
// list non-decreasing by date, ties broken by insertion order (i.e.
// inserted after any existing entries with an equal date).
func (lst *timerList) insertOrdered(e *Timer) {
	if !e.detached() {
		PANIC("timerList insertOrdered called on a linked entry: %p\n", e)
	}
	v := lst.head.next
	for v != &lst.head && v.date <= e.date {
		v = v.next
	}
	e.prev = v.prev
	e.next = v
	v.prev.next = e
	v.prev = e
}

// rm unlinks e from the list. e is left "detached" (next/prev == e).
func (lst *timerList) rm(e *Timer) {
	if e == nil || e.next == nil || e.prev == nil {
		PANIC("timerList rm called with a nil-linked entry %p\n", e)
	}
	if e.detached() {
		PANIC("timerList rm called with an already-detached entry %p\n", e)
	}
	e.prev.next = e.next
	e.next.prev = e.prev
	e.next, e.prev = e, e
}

func (lst *timerList) peekHead() *Timer {
	if lst.isEmpty() {
		return nil
	}
	return lst.head.next
}

// forEach calls f for every entry, in date order, stopping early if f
// returns false. It does not support removing the current entry from f.
func (lst *timerList) forEach(f func(t *Timer) bool) {
	for v := lst.head.next; v != &lst.head; v = v.next {
		if !f(v) {
			return
		}
	}
}
