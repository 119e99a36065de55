package inventory

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nerrad567/gray-logic-components/internal/entity"
)

func TestIterator_VisitsInKindThenRegistrationOrder(t *testing.T) {
	reg := newRegistry(t,
		seed{entity.KindSwitch, "relay", "Relay"},
		seed{entity.KindSensor, "temp1", "Temp 1"},
		seed{entity.KindBinarySensor, "door", "Door"},
		seed{entity.KindSensor, "temp2", "Temp 2"},
	)

	var got []string
	it := NewIterator(reg, func(kind entity.Kind, e entity.Entity) bool {
		got = append(got, kind.String()+"/"+e.ObjectID())
		return true
	})

	if it.State() != StateIdle {
		t.Fatalf("initial State() = %v, want idle", it.State())
	}
	it.Begin()
	for it.State() != StateDone {
		it.Advance()
	}

	want := []string{"sensor/temp1", "sensor/temp2", "binary_sensor/door", "switch/relay"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("visit order mismatch (-want +got):\n%s", diff)
	}
	if it.Visited() != 4 {
		t.Errorf("Visited() = %d, want 4", it.Visited())
	}
}

func TestIterator_EmptyRegistry(t *testing.T) {
	ended := 0
	visits := 0
	it := NewIterator(entity.NewRegistry(), func(entity.Kind, entity.Entity) bool {
		visits++
		return true
	})
	it.OnEnd(func() { ended++ })

	it.Begin()
	if it.State() == StateDone {
		t.Fatal("Begin() alone should not finish the walk")
	}
	it.Advance()

	if it.State() != StateDone {
		t.Fatalf("State() = %v, want done after one Advance", it.State())
	}
	if visits != 0 {
		t.Errorf("visits = %d, want 0", visits)
	}
	if ended != 1 {
		t.Errorf("OnEnd calls = %d, want 1", ended)
	}
}

func TestIterator_OneVisitPerAdvance(t *testing.T) {
	reg := newRegistry(t,
		seed{entity.KindSensor, "a", "A"},
		seed{entity.KindSwitch, "b", "B"},
	)
	visits := 0
	it := NewIterator(reg, func(entity.Kind, entity.Entity) bool {
		visits++
		return true
	})

	it.Begin()
	for i := 1; i <= 2; i++ {
		it.Advance()
		if visits != i {
			t.Fatalf("after Advance #%d visits = %d", i, visits)
		}
	}
	if it.State() == StateDone {
		t.Fatal("walk should still be running until an Advance finds nothing")
	}
	it.Advance()
	if it.State() != StateDone {
		t.Fatalf("State() = %v, want done", it.State())
	}
}

func TestIterator_VisitorStops(t *testing.T) {
	reg := newRegistry(t,
		seed{entity.KindSensor, "a", "A"},
		seed{entity.KindSensor, "b", "B"},
		seed{entity.KindSwitch, "c", "C"},
	)
	var got []string
	ended := 0
	it := NewIterator(reg, func(_ entity.Kind, e entity.Entity) bool {
		got = append(got, e.ObjectID())
		return e.ObjectID() != "b"
	})
	it.OnEnd(func() { ended++ })

	it.Run()

	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Errorf("visited mismatch (-want +got):\n%s", diff)
	}
	if ended != 1 {
		t.Errorf("OnEnd calls = %d, want 1", ended)
	}
}

func TestIterator_TerminalIsFinal(t *testing.T) {
	reg := newRegistry(t, seed{entity.KindSensor, "a", "A"})
	visits := 0
	ended := 0
	it := NewIterator(reg, func(entity.Kind, entity.Entity) bool {
		visits++
		return true
	})
	it.OnEnd(func() { ended++ })

	it.Run()
	it.Advance()
	it.Begin()
	it.Advance()

	if visits != 1 {
		t.Errorf("visits = %d, want 1", visits)
	}
	if ended != 1 {
		t.Errorf("OnEnd calls = %d, want 1", ended)
	}
	if it.State() != StateDone {
		t.Errorf("State() = %v, want done", it.State())
	}
}

func TestIterator_BeginRestartsRunningWalk(t *testing.T) {
	reg := newRegistry(t,
		seed{entity.KindSensor, "a", "A"},
		seed{entity.KindSensor, "b", "B"},
	)
	var got []string
	it := NewIterator(reg, func(_ entity.Kind, e entity.Entity) bool {
		got = append(got, e.ObjectID())
		return true
	})

	it.Begin()
	it.Begin()
	it.Advance()
	it.Begin()
	for it.State() != StateDone {
		it.Advance()
	}

	if diff := cmp.Diff([]string{"a", "a", "b"}, got); diff != "" {
		t.Errorf("visited mismatch (-want +got):\n%s", diff)
	}
}

func TestIterator_AdvanceWithoutBegin(t *testing.T) {
	reg := newRegistry(t, seed{entity.KindSensor, "a", "A"})
	visits := 0
	it := NewIterator(reg, func(entity.Kind, entity.Entity) bool {
		visits++
		return true
	})

	it.Advance()
	if visits != 1 {
		t.Errorf("visits = %d, want 1", visits)
	}
}

func TestIterator_OnlySupportedKindsQueried(t *testing.T) {
	src := &countingSource{inner: entity.NewRegistry()}
	NewIterator(src, nil).Run()

	for _, k := range entity.SupportedKinds() {
		if src.calls[k] != 1 {
			t.Errorf("kind %s queried %d times, want 1", k, src.calls[k])
		}
	}
	if len(src.calls) != len(entity.SupportedKinds()) {
		t.Errorf("queried %d kinds, want %d", len(src.calls), len(entity.SupportedKinds()))
	}
}

func TestIterator_SnapshotPerKind(t *testing.T) {
	reg := newRegistry(t,
		seed{entity.KindSensor, "a", "A"},
		seed{entity.KindSwitch, "s", "S"},
	)
	var got []string
	it := NewIterator(reg, func(_ entity.Kind, e entity.Entity) bool {
		got = append(got, e.ObjectID())
		if e.ObjectID() == "a" {
			// Sensor already snapshotted: not seen. Switch not reached yet: seen.
			_ = reg.Register(entity.KindSensor, entity.New("late", "Late"))
			_ = reg.Register(entity.KindSwitch, entity.New("late_switch", "Late Switch"))
		}
		return true
	})
	it.Run()

	if diff := cmp.Diff([]string{"a", "s", "late_switch"}, got); diff != "" {
		t.Errorf("visited mismatch (-want +got):\n%s", diff)
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		StateIdle:    "idle",
		StateRunning: "running",
		StateDone:    "done",
		State(99):    "unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", s, got, want)
		}
	}
}
