package clockdispatch

import "testing"

// testClockOps is a deterministic stand-in for a hardware clock: Read
// returns whatever *now currently holds, and ProgramLocalShot/
// ProgramRemoteShot just count calls, the same "recorder" shape
// noodlebox-clock's mocktime package uses for its Clock[T].
type testClockOps struct {
	noopOps
	coreGravityOps
	now         *int64
	localShots  *int
	remoteShots *int
}

func (o testClockOps) Read(c *Clock) int64 { return *o.now }

func (o testClockOps) ProgramLocalShot(c *Clock) {
	if o.localShots != nil {
		*o.localShots++
	}
}

func (o testClockOps) ProgramRemoteShot(c *Clock, rq *RunQueue) {
	if o.remoteShots != nil {
		*o.remoteShots++
	}
}

func newTestClock(now *int64, localShots, remoteShots *int, ncpus int) *Clock {
	ops := testClockOps{now: now, localShots: localShots, remoteShots: remoteShots}
	c := &Clock{Name: "test", gravity: DefaultGravity(), ops: ops}
	c.master = c
	c.timerBase = NewPerCpu(ncpus, func(cpu int) *TimerBase { return newTimerBase(cpu) })
	return c
}

// S1 -- one-shot fire. Base empty. Enqueue T with date=100, no period;
// dispatch at now=150: handler runs once, base ends empty,
// program_local_shot called once.
func TestDispatchOneShotFire(t *testing.T) {
	now := int64(0)
	shots := 0
	c := newTestClock(&now, &shots, nil, 1)
	rq := newRunQueue(0)

	var log []int64
	tm := NewTimer(rq, func(tm *Timer) { log = append(log, now) })
	if err := Enqueue(c, rq, tm, 100, 0); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	now = 150
	DoClockTick(c, rq)

	if len(log) != 1 || log[0] != 150 {
		t.Fatalf("log = %v, want [150]", log)
	}
	base := c.TimerBaseFor(0)
	base.Lock()
	empty := base.IsEmpty()
	base.Unlock()
	if !empty {
		t.Fatalf("base should be empty after firing a one-shot")
	}
	if shots != 1 {
		t.Fatalf("ProgramLocalShot called %d times, want 1", shots)
	}
	if !tm.HasStatus(Dequeued) || !tm.HasStatus(Fired) {
		t.Fatalf("fired one-shot timer status = %v", tm.Status())
	}
}

// S2 -- periodic catch-up. T with start=0, interval=10, date=0.
// Dispatch at now=35: handler called once, periodic_ticks after
// catch-up = 4, new date = 40, base contains only T.
func TestDispatchPeriodicCatchUp(t *testing.T) {
	now := int64(0)
	shots := 0
	c := newTestClock(&now, &shots, nil, 1)
	rq := newRunQueue(0)

	fires := 0
	tm := NewTimer(rq, func(tm *Timer) { fires++ })
	if err := Enqueue(c, rq, tm, 0, 10); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	now = 35
	DoClockTick(c, rq)

	if fires != 1 {
		t.Fatalf("handler fired %d times, want 1 (one fire per dispatch entry)", fires)
	}
	if tm.PeriodicTicks() != 4 {
		t.Fatalf("PeriodicTicks() = %d, want 4", tm.PeriodicTicks())
	}
	if tm.Date() != 40 {
		t.Fatalf("Date() = %d, want 40", tm.Date())
	}
	base := c.TimerBaseFor(0)
	base.Lock()
	n := base.Len()
	base.Unlock()
	if n != 1 {
		t.Fatalf("base.Len() = %d, want 1", n)
	}
}

// S4 -- proxy handoff. Base has exactly the inband proxy timer with
// date=50. Dispatch at now=60: RQ_TPROXY set, RQ_TDEFER cleared,
// proxy not re-enqueued, program_local_shot still called (it cedes to
// the host internally; this test only checks it was invoked).
func TestDispatchProxyHandoff(t *testing.T) {
	now := int64(0)
	shots := 0
	c := newTestClock(&now, &shots, nil, 1)
	rq := newRunQueue(0)
	rq.AddLocalFlags(RQTDefer)

	proxy := NewTimer(rq, func(tm *Timer) {
		t.Fatalf("proxy timer handler must never be invoked")
	})
	rq.SetInbandTimer(proxy)
	if err := Enqueue(c, rq, proxy, 50, 0); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	now = 60
	DoClockTick(c, rq)

	if rq.LocalFlags()&RQTProxy == 0 {
		t.Fatalf("RQ_TPROXY should be set after proxy handoff")
	}
	if rq.LocalFlags()&RQTDefer != 0 {
		t.Fatalf("RQ_TDEFER should be cleared after proxy handoff")
	}
	base := c.TimerBaseFor(0)
	base.Lock()
	empty := base.IsEmpty()
	base.Unlock()
	if !empty {
		t.Fatalf("proxy timer must not be re-enqueued by dispatch")
	}
	if shots != 1 {
		t.Fatalf("ProgramLocalShot called %d times, want 1", shots)
	}
}

// Regression: a periodic timer whose catch-up date lands exactly on
// now is due again (only date > now stops the drain), so it fires a
// second time in the same dispatch call and must then make forward
// progress rather than spin. start=0, interval=10, dispatch at now=40:
// the first catch-up stops at periodic_ticks=4 (date=40), the re-fire
// advances it to periodic_ticks=5 (date=50 > now).
func TestDispatchPeriodicCatchUpLandsExactlyOnNow(t *testing.T) {
	now := int64(0)
	shots := 0
	c := newTestClock(&now, &shots, nil, 1)
	rq := newRunQueue(0)

	fires := 0
	tm := NewTimer(rq, func(tm *Timer) { fires++ })
	if err := Enqueue(c, rq, tm, 0, 10); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	now = 40
	DoClockTick(c, rq)

	if fires != 2 {
		t.Fatalf("handler fired %d times, want 2 (date == now is due again)", fires)
	}
	if tm.PeriodicTicks() != 5 {
		t.Fatalf("PeriodicTicks() = %d, want 5", tm.PeriodicTicks())
	}
	if tm.Date() != 50 {
		t.Fatalf("Date() = %d, want 50", tm.Date())
	}
	base := c.TimerBaseFor(0)
	base.Lock()
	n := base.Len()
	base.Unlock()
	if n != 1 {
		t.Fatalf("base.Len() = %d, want 1", n)
	}
}

// Dispatch drains (design doc property 7): after DoClockTick returns,
// the base head, if any, is strictly later than "now" at exit.
func TestDispatchDrainsProperty(t *testing.T) {
	now := int64(0)
	shots := 0
	c := newTestClock(&now, &shots, nil, 1)
	rq := newRunQueue(0)

	a := NewTimer(rq, func(tm *Timer) {})
	b := NewTimer(rq, func(tm *Timer) {})
	Enqueue(c, rq, a, 10, 0)
	Enqueue(c, rq, b, 1000, 0)

	now = 50
	DoClockTick(c, rq)

	base := c.TimerBaseFor(0)
	base.Lock()
	head := base.PeekHead()
	base.Unlock()
	if head == nil || head.Date() <= now {
		t.Fatalf("remaining head date should be > now_at_exit (%d)", now)
	}
}
