// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package clockdispatch

import (
	"time"

	"github.com/intuitivelabs/timestamp"
)

// bootTS is the reference point the monotonic reading is measured
// from. Using timestamp.Now()'s own Sub() (the same primitive the
// teacher's wtimer_ticker.go uses to track drift against a reference
// timestamp) avoids depending on any particular absolute-value method
// the dependency may or may not expose.
var bootTS = timestamp.Now()

// monoNowFunc and realNowFunc are the two primitives the architecture
// and low-level time source are assumed to provide (design doc §1,
// "out of scope (external collaborators)"). They're package vars,
// swappable in tests, the same mockability noodlebox-clock's
// steppedtime package offers for its generic Clock[T].
var (
	monoNowFunc = defaultMonoNow
	realNowFunc = defaultRealNow
)

func defaultMonoNow() int64 {
	return int64(timestamp.Now().Sub(bootTS))
}

func defaultRealNow() int64 {
	// UnixNano reports the wall-clock reading, so it follows the
	// wall-clock jumps (NTP step, manual date -s, ...) the realtime clock
	// must track. Round(0) strips time.Now()'s monotonic reading, which
	// UnixNano does not use in any case.
	return time.Now().Round(0).UnixNano()
}

// monoNow is a wall-free monotonic-fast read: must not block and must
// be safe from interrupt context. It is non-decreasing.
func monoNow() int64 { return monoNowFunc() }

// realNow is the wall-clock read. Unlike monoNow it is permitted to
// jump (forward or backward) when the system time is adjusted.
func realNow() int64 { return realNowFunc() }
