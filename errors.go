// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package clockdispatch

import (
	"errors"
)

// Error kinds reported by the clock/timer core. Dispatch and adjust
// never fail: they either succeed or no-op silently (e.g. an absent
// optional op). Errors only surface from init and from an explicit Set.
var ErrNotPermitted = errors.New("clock operation not permitted")
var ErrNoMemory = errors.New("per-cpu timer base allocation failed")
var ErrBadContext = errors.New("called from a non in-band context")
var ErrNotFound = errors.New("clock not found in registry")

// Timer enqueue/dequeue protocol errors.
var ErrActiveTimer = errors.New("called on active timer")
var ErrInactiveTimer = errors.New("called on inactive timer")
var ErrDuplicateClock = errors.New("clock name already registered")
