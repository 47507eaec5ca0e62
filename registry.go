// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package clockdispatch

import "sync"

// registry is the global clock list (design doc §3, "Global clock
// registry"): an unordered singly-linked list guarded by one lock,
// mirroring clock.rs's CLOCK_LIST/CLOCKLIST_LOCK pair. Lookup is by
// pointer identity, never by name -- the registry is for teardown and
// "is this clock still live" checks, not name resolution (device-file
// name lookup is an external collaborator's job).
var registry struct {
	mu   sync.Mutex
	head *Clock
}

// registerClock links c into the global list. ErrDuplicateClock if a
// clock with the same Name is already registered (design doc §3:
// "name is unique across the list").
func registerClock(c *Clock) error {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	for p := registry.head; p != nil; p = p.next {
		if p.Name == c.Name {
			WARN("registerClock: name %q already registered\n", c.Name)
			return ErrDuplicateClock
		}
	}
	c.next = registry.head
	registry.head = c
	INFO("registerClock: %s registered\n", c.Name)
	return nil
}

// unregisterClock unlinks c from the global list, if present.
func unregisterClock(c *Clock) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if registry.head == c {
		registry.head = c.next
		c.next = nil
		return
	}
	for p := registry.head; p != nil; p = p.next {
		if p.next == c {
			p.next = c.next
			c.next = nil
			return
		}
	}
}

// lookupClock reports whether c is currently registered, by pointer
// identity (design doc §3: "lookup is by identity comparison, not by
// name hashing at the core level").
func lookupClock(c *Clock) bool {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	for p := registry.head; p != nil; p = p.next {
		if p == c {
			return true
		}
	}
	return false
}

// LookupClock reports ErrNotFound if c is not currently registered
// (design doc §7). The registry's other error, ErrDuplicateClock, comes
// from registerClock.
func LookupClock(c *Clock) error {
	if !lookupClock(c) {
		return ErrNotFound
	}
	return nil
}

// RangeClocks calls f for every registered clock while holding the
// registry lock (design doc §9: "never iterate without holding the
// registry lock"). f must not register or unregister a clock.
func RangeClocks(f func(c *Clock)) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	for p := registry.head; p != nil; p = p.next {
		f(p)
	}
}
