// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package clockdispatch

// RQFlags are the per-CPU run-queue local flags this core reads and
// writes (design doc §6). Bit values are implementation-defined.
type RQFlags uint32

const (
	// RQTimer is a re-entrancy guard: set for the duration of
	// DoClockTick, observed by downstream subsystems.
	RQTimer RQFlags = 1 << iota
	// RQTProxy is set when the in-band proxy timer fired and the
	// host kernel needs to run its own tick.
	RQTProxy
	// RQTDefer, when set, means the proxy tick has been deferred;
	// DoClockTick clears it the moment it actually fires the proxy.
	RQTDefer
)

// TaskState is the subset of the scheduler's task state bitfield this
// core inspects: only whether the current task is the host kernel's
// root task.
type TaskState uint32

const (
	// TaskRoot marks the host (general-purpose) kernel's own task,
	// i.e. "in-band" execution context.
	TaskRoot TaskState = 1 << iota
)

// Task is the minimal view of a scheduled task this core needs.
type Task struct {
	State TaskState
}

// RunQueue is the opaque per-CPU scheduler structure this core reads
// a flag word and a couple of handles from (design doc §6). It is
// never owned by this package -- the scheduler proper is an external
// collaborator -- but a full, working implementation of that surface
// lives here so the module is self-contained and testable.
type RunQueue struct {
	cpu         int
	localFlags  RQFlags
	curr        *Task
	inbandTimer *Timer
}

func newRunQueue(cpu int) *RunQueue {
	return &RunQueue{cpu: cpu, curr: &Task{}}
}

func (rq *RunQueue) CPU() int { return rq.cpu }

// AddLocalFlags ORs bits into the local flag word.
func (rq *RunQueue) AddLocalFlags(bits RQFlags) { rq.localFlags |= bits }

// ChangeLocalFlags ANDs the local flag word with mask -- the
// "bit mask or mask-out" primitive design doc §6 describes, used to
// clear one or more bits by passing their complement (e.g.
// ChangeLocalFlags(^RQTDefer) clears RQTDefer and leaves the rest).
func (rq *RunQueue) ChangeLocalFlags(mask RQFlags) { rq.localFlags &= mask }

// LocalFlags returns the current local flag word.
func (rq *RunQueue) LocalFlags() RQFlags { return rq.localFlags }

// Curr returns the task currently scheduled on this CPU.
func (rq *RunQueue) Curr() *Task { return rq.curr }

// SetCurr installs the task currently scheduled on this CPU. Exposed
// for the scheduler collaborator (or tests simulating one) to drive;
// this core only ever reads Curr().
func (rq *RunQueue) SetCurr(t *Task) { rq.curr = t }

// InbandTimer returns this CPU's designated proxy timer handle, or
// nil if none has been advertised yet.
func (rq *RunQueue) InbandTimer() *Timer { return rq.inbandTimer }

// SetInbandTimer installs this CPU's proxy timer handle.
func (rq *RunQueue) SetInbandTimer(t *Timer) { rq.inbandTimer = t }

// runQueues is the process-wide per-CPU run-queue array, populated by
// SubsystemInit. Go has no notion of "the CPU this goroutine is
// running on" (goroutines migrate between OS threads freely), so
// unlike current_rq() in the original, callers must say which CPU's
// run-queue they mean -- DoClockTick and CoreTick both take an
// explicit *RunQueue (and use its CPU()) for this reason (see DESIGN.md).
var runQueues *PerCpu[*RunQueue]

// CPURQ returns the run-queue for the given CPU id.
func CPURQ(cpu int) *RunQueue {
	return runQueues.Get(cpu)
}
