// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package clockdispatch

// HostTickProxy is the host tick layer this core hands ticks off to
// when the running task belongs to the general-purpose kernel (design
// doc §1, external collaborator). It is consumed, never implemented,
// by this package -- a real deployment wires it to the GPOS's
// clockevent proxy and IPI layer; tests wire it to a recorder.
type HostTickProxy interface {
	// ProgramProxyTick arms the next out-of-band shot through the
	// host kernel's clockevent proxy.
	ProgramProxyTick(c *Clock)
	// SendTimerIPI requests cross-CPU reprogramming of rq's shot.
	SendTimerIPI(c *Clock, rq *RunQueue)
	// NotifyProxyTick is called when dispatch concluded and control
	// must return to the host for its own tick.
	NotifyProxyTick(rq *RunQueue)
}

// hostTick is the process-wide HostTickProxy, installed by
// SetHostTickProxy (SubsystemInit does not touch it). A nil value makes ProgramLocalShot/ProgramRemoteShot/
// the core-tick notify step safe no-ops, exactly like an absent
// optional ClockOps entry.
var hostTick HostTickProxy

// SetHostTickProxy installs the host tick layer collaborator. It may be
// called before or after SubsystemInit: every ProgramLocalShot,
// ProgramRemoteShot and CoreTick call reads the installed value afresh.
func SetHostTickProxy(p HostTickProxy) {
	hostTick = p
}
