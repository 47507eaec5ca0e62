package clockdispatch

import "testing"

// S6 -- reset gravity. Build-time LATENCY_IRQ=200, others 0;
// SetGravity then ResetGravity must restore exactly the defaults.
func TestGravityResetIdempotent(t *testing.T) {
	var g Gravity
	g.Set(1, 2, 3)
	g.Reset()
	want := DefaultGravity()
	if g != want {
		t.Fatalf("Reset() = %+v, want %+v", g, want)
	}

	// Idempotent: resetting twice yields the same state as once.
	g.Reset()
	if g != want {
		t.Fatalf("second Reset() = %+v, want %+v", g, want)
	}
}

func TestGravityAccessors(t *testing.T) {
	var g Gravity
	g.SetIRQ(1)
	g.SetKernel(2)
	g.SetUser(3)
	if g.IRQ() != 1 || g.Kernel() != 2 || g.User() != 3 {
		t.Fatalf("accessors mismatch: %+v", g)
	}
}

func TestClockSetGravityAndReset(t *testing.T) {
	c := &Clock{ops: monotonicOps{}, gravity: DefaultGravity()}
	c.SetGravity(Gravity{})
	c.SetGravity(func() Gravity {
		var g Gravity
		g.Set(1, 2, 3)
		return g
	}())
	if c.Gravity().IRQ() != 1 || c.Gravity().Kernel() != 2 || c.Gravity().User() != 3 {
		t.Fatalf("SetGravity did not take effect: %+v", c.Gravity())
	}
	c.ResetGravity()
	if c.Gravity() != DefaultGravity() {
		t.Fatalf("ResetGravity() = %+v, want %+v", c.Gravity(), DefaultGravity())
	}
}
