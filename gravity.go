// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package clockdispatch

import "time"

// Build-time default latencies, mirroring the teacher's BuildTags-style
// compile-time knobs and the original CONFIG_RROS_LATENCY_{IRQ,KERNEL,USER}
// constants. They are time.Duration package variables, so a deployment
// for a specific board changes them in source; -ldflags -X, which only
// sets string variables, cannot reach them.
var (
	defaultLatencyIRQ    = 200 * time.Nanosecond
	defaultLatencyKernel = time.Duration(0)
	defaultLatencyUser   = time.Duration(0)
)

// Gravity holds the three nanosecond compensation values subtracted from
// a timer's programmed deadline when re-arming the hardware, to account
// for the expected interrupt-to-handler latency of the context that will
// consume the tick.
type Gravity struct {
	irq    time.Duration
	kernel time.Duration
	user   time.Duration
}

// DefaultGravity returns the build-time configured gravity triple.
func DefaultGravity() Gravity {
	return Gravity{
		irq:    defaultLatencyIRQ,
		kernel: defaultLatencyKernel,
		user:   defaultLatencyUser,
	}
}

func (g Gravity) IRQ() time.Duration    { return g.irq }
func (g Gravity) Kernel() time.Duration { return g.kernel }
func (g Gravity) User() time.Duration   { return g.user }

func (g *Gravity) SetIRQ(d time.Duration)    { g.irq = d }
func (g *Gravity) SetKernel(d time.Duration) { g.kernel = d }
func (g *Gravity) SetUser(d time.Duration)   { g.user = d }

// Set replaces all three gravity fields at once.
func (g *Gravity) Set(irq, kernel, user time.Duration) {
	g.irq = irq
	g.kernel = kernel
	g.user = user
}

// Reset restores the build-time defaults. Calling it twice in a row
// yields the same state as calling it once (idempotent).
func (g *Gravity) Reset() {
	*g = DefaultGravity()
}
