package clock

import "testing"

func TestTickCallsOnTickAndIncrementsCycle(t *testing.T) {
	calls := 0
	d := NewDriver(func() { calls++ })

	d.Tick()
	d.Tick()
	d.Tick()

	if calls != 3 {
		t.Fatalf("OnTick called %d times, want 3", calls)
	}
	if d.Cycle != 3 {
		t.Fatalf("Cycle = %d, want 3", d.Cycle)
	}
}

func TestRunFrameAdvancesExactCount(t *testing.T) {
	calls := 0
	d := NewDriver(func() { calls++ })

	d.RunFrame(133334)

	if calls != 133334 {
		t.Fatalf("OnTick called %d times, want 133334", calls)
	}
	if d.Cycle != 133334 {
		t.Fatalf("Cycle = %d, want 133334", d.Cycle)
	}
}

func TestResetZeroesCycleWithoutCallingOnTick(t *testing.T) {
	calls := 0
	d := NewDriver(func() { calls++ })
	d.RunFrame(10)

	d.Reset()

	if d.Cycle != 0 {
		t.Fatalf("Cycle after Reset = %d, want 0", d.Cycle)
	}
	if calls != 10 {
		t.Fatalf("OnTick called %d times after Reset, want unchanged 10", calls)
	}
}

func TestNilOnTickIsSafe(t *testing.T) {
	d := &Driver{}
	d.Tick() // must not panic
	if d.Cycle != 1 {
		t.Fatalf("Cycle = %d, want 1", d.Cycle)
	}
}
