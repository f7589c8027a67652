package domain

import "testing"

func TestEnemyStateTransitions(t *testing.T) {
	arch := DefaultArchetypes()[0]
	e := NewEnemy("e1", arch, Vec2{X: 3, Y: 3}, 10)

	if e.State != StateIdle {
		t.Fatalf("new enemy must start Idle, got %v", e.State)
	}
	if e.Health != arch.MaxHealth {
		t.Errorf("new enemy must have full health, got %f", e.Health)
	}

	e.EnterState(StateChase, 12)

	if e.State != StateChase {
		t.Errorf("expected Chase, got %v", e.State)
	}
	if e.TimeInState(15) != 3 {
		t.Errorf("expected 3 seconds in state, got %f", e.TimeInState(15))
	}
}

func TestEnemyDeathIsRecorded(t *testing.T) {
	e := NewEnemy("e1", DefaultArchetypes()[0], Vec2{}, 0)
	e.Vel = Vec2{X: 1, Y: 1}

	e.EnterState(StateDead, 42)
	if !e.Dead() {
		t.Fatal("Dead state must report dead")
	}
	if e.DiedAt != 42 {
		t.Errorf("death time must be recorded, got %f", e.DiedAt)
	}
	if e.Vel != (Vec2{}) {
		t.Error("a corpse must not keep velocity")
	}
}

func TestEventQueueDrain(t *testing.T) {
	q := &EventQueue{}
	q.Push(SimEvent{Type: EventEnemyDied})
	q.Push(SimEvent{Type: EventWeaponFired})

	if q.Len() != 2 {
		t.Fatalf("expected 2 queued events, got %d", q.Len())
	}

	events := q.Drain()
	if len(events) != 2 {
		t.Fatalf("drain must return everything, got %d", len(events))
	}
	if q.Len() != 0 {
		t.Error("drain must empty the queue")
	}
	if q.Drain() != nil {
		t.Error("draining an empty queue must yield nil")
	}
}

func TestArchetypeValidate(t *testing.T) {
	for _, a := range DefaultArchetypes() {
		if err := a.Validate(); err != nil {
			t.Errorf("built-in archetype %s: %v", a.ID, err)
		}
	}

	bad := Archetype{ID: "bad", MaxHealth: 0, Weight: 1}
	if err := bad.Validate(); err == nil {
		t.Error("zero max health must be rejected")
	}
	if err := (Archetype{}).Validate(); err == nil {
		t.Error("empty archetype must be rejected")
	}
}

func TestGridWorldQueries(t *testing.T) {
	w := &GridWorld{Size: 4, CellUnit: 2.0, Cells: make([][]CellKind, 4)}
	for y := 0; y < 4; y++ {
		w.Cells[y] = make([]CellKind, 4)
	}
	w.Cells[1][2] = CellWall

	if !w.IsWallAt(2, 1) {
		t.Error("wall cell must report wall")
	}
	if w.IsWallAt(1, 1) {
		t.Error("empty cell must not report wall")
	}
	// За границей - неявная стена.
	if !w.IsWallAt(-1, 0) || !w.IsWallAt(0, 4) {
		t.Error("out of bounds must count as wall")
	}

	center := w.CellCenter(Cell{X: 1, Y: 2})
	if center != (Vec2{X: 3, Y: 5}) {
		t.Errorf("cell center wrong: %+v", center)
	}
	if got := w.CellOf(center); got != (Cell{X: 1, Y: 2}) {
		t.Errorf("CellOf(CellCenter) must roundtrip, got %+v", got)
	}
	if got := w.CellOf(Vec2{X: -0.1, Y: 0.1}); got != (Cell{X: -1, Y: 0}) {
		t.Errorf("point left of the grid must map to a negative cell, got %+v", got)
	}
	if w.WorldSide() != 8 {
		t.Errorf("expected world side 8, got %f", w.WorldSide())
	}
}
