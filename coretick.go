// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package clockdispatch

// CoreTick is the single entrypoint the architecture's clockevent
// callback invokes once per tick on each CPU (design doc §4.9). It is
// the only place the two kernels' tick streams meet: after draining
// the monotonic base, if the proxy timer fired and the CPU is
// currently running the host kernel's own task, the host is told to
// service its own tick.
func CoreTick(mono *Clock, rq *RunQueue) {
	DoClockTick(mono, rq)

	if rq.LocalFlags()&RQTProxy != 0 && rq.Curr().State&TaskRoot != 0 {
		if hostTick != nil {
			hostTick.NotifyProxyTick(rq)
		}
	}
}
