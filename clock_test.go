package clockdispatch

import "testing"

func TestAffinityHasAndAll(t *testing.T) {
	a := AffinityAll(3)
	for cpu := 0; cpu < 3; cpu++ {
		if !a.Has(cpu) {
			t.Fatalf("AffinityAll(3).Has(%d) should be true", cpu)
		}
	}
	if a.Has(3) {
		t.Fatalf("AffinityAll(3).Has(3) should be false")
	}
}

func TestMonotonicReadTracksMockedSource(t *testing.T) {
	restore := withMockTime(func() int64 { return 42 }, func() int64 { return 0 })
	defer restore()

	c, err := InitMaster("mono-clocktest", monotonicOps{}, 1)
	if err != nil {
		t.Fatalf("InitMaster: %v", err)
	}
	defer unregisterClock(c)

	if !c.IsMaster() || c.Master() != c || c.Offset() != 0 {
		t.Fatalf("master invariants violated: isMaster=%v master=%p offset=%d",
			c.IsMaster(), c.Master(), c.Offset())
	}
	if got := c.Read(); got != 42 {
		t.Fatalf("Read() = %d, want 42", got)
	}
	if err := c.Set(1); err != ErrNotPermitted {
		t.Fatalf("Set() err = %v, want ErrNotPermitted", err)
	}
}

func TestRealtimeReadIsDirectWallRead(t *testing.T) {
	restore := withMockTime(func() int64 { return 1000 }, func() int64 { return 1500 })
	defer restore()

	mono, err := InitMaster("mono-clocktest2", monotonicOps{}, 1)
	if err != nil {
		t.Fatalf("InitMaster: %v", err)
	}
	defer unregisterClock(mono)

	rt, err := InitSlave("rt-clocktest2", realtimeOps{}, mono, realNow)
	if err != nil {
		t.Fatalf("InitSlave: %v", err)
	}
	defer unregisterClock(rt)

	if rt.IsMaster() {
		t.Fatalf("slave clock must not report IsMaster")
	}
	if rt.Offset() != 500 {
		t.Fatalf("initial offset = %d, want 500 (1500 - 1000)", rt.Offset())
	}
	if got := rt.Read(); got != 1500 {
		t.Fatalf("Read() = %d, want 1500", got)
	}
	if rt.TimerBaseFor(0) != mono.TimerBaseFor(0) {
		t.Fatalf("slave and master must share the same per-CPU base")
	}
	if err := rt.Set(1); err != ErrNotPermitted {
		t.Fatalf("Set() err = %v, want ErrNotPermitted", err)
	}
}
