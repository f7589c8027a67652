package systems

import (
	"testing"

	"gloomgrid-server/internal/domain"
)

func TestApplyDamageLethal(t *testing.T) {
	q := &domain.EventQueue{}
	e := testEnemy(domain.Vec2{X: 3.5, Y: 3.5})
	e.Health = 10

	killed := ApplyDamage(e, 25, domain.Vec2{X: 5, Y: 5}, 10, q)
	if !killed {
		t.Fatal("lethal damage must report the kill")
	}
	if e.State != domain.StateDead {
		t.Errorf("expected Dead, got %v", e.State)
	}
	if e.Health != 0 {
		t.Errorf("health must clamp to 0, got %f", e.Health)
	}

	events := q.Drain()
	if !hasEvent(events, domain.EventEnemyDamaged) {
		t.Error("damage event missing")
	}
	if !hasEvent(events, domain.EventEnemyDied) {
		t.Error("death event missing")
	}

	// Повторный урон по трупу - no-op.
	if ApplyDamage(e, 25, domain.Vec2{X: 5, Y: 5}, 11, q) {
		t.Error("a corpse cannot die twice")
	}
	if q.Len() != 0 {
		t.Error("a corpse must not emit events")
	}
}

func TestApplyDamageStuns(t *testing.T) {
	q := &domain.EventQueue{}
	e := testEnemy(domain.Vec2{X: 3.5, Y: 3.5}) // stun threshold 15
	e.EnterState(domain.StateChase, 5)

	ApplyDamage(e, 20, domain.Vec2{X: 6, Y: 6}, 10, q)

	if e.State != domain.StateStunned {
		t.Fatalf("damage above the threshold must stun, got %v", e.State)
	}
	if e.LastKnownTargetPos == nil || e.LastKnownTargetPos.X != 6 {
		t.Error("damage must reveal the attacker position")
	}
}

func TestApplyDamageAlertsIdleEnemy(t *testing.T) {
	q := &domain.EventQueue{}
	e := testEnemy(domain.Vec2{X: 3.5, Y: 3.5})

	ApplyDamage(e, 5, domain.Vec2{X: 6, Y: 6}, 10, q)

	if e.State != domain.StateChase {
		t.Fatalf("light damage must send an idle enemy chasing, got %v", e.State)
	}
	if !e.Alerted {
		t.Error("damaged enemy must become alerted")
	}
	if !hasEvent(q.Drain(), domain.EventEnemyAlerted) {
		t.Error("first alert must emit an event")
	}
}

func TestApplyDamageKeepsAttackState(t *testing.T) {
	q := &domain.EventQueue{}
	e := testEnemy(domain.Vec2{X: 3.5, Y: 3.5})
	e.Alerted = true
	e.EnterState(domain.StateAttack, 5)

	ApplyDamage(e, 5, domain.Vec2{X: 6, Y: 6}, 10, q)

	if e.State != domain.StateAttack {
		t.Fatalf("light damage must not interrupt an attack, got %v", e.State)
	}
}

func TestDamagePlayer(t *testing.T) {
	q := &domain.EventQueue{}
	p := &domain.Player{Health: 30, MaxHealth: 100}

	DamagePlayer(p, 12, 10, q)
	if p.Health != 18 {
		t.Errorf("expected 18 health, got %f", p.Health)
	}
	if p.Dead {
		t.Error("player must survive non-lethal damage")
	}

	DamagePlayer(p, 50, 11, q)
	if !p.Dead {
		t.Fatal("lethal damage must kill the player")
	}
	if p.Health != 0 {
		t.Errorf("health must clamp to 0, got %f", p.Health)
	}

	events := q.Drain()
	if !hasEvent(events, domain.EventPlayerDamaged) || !hasEvent(events, domain.EventPlayerDied) {
		t.Error("player damage and death events missing")
	}

	// Мертвый игрок урона не получает.
	DamagePlayer(p, 10, 12, q)
	if q.Len() != 0 {
		t.Error("a dead player must not emit events")
	}
}

func TestFireHitscanPicksNearestInBeam(t *testing.T) {
	w := makeWorld(16)

	near := testEnemy(domain.Vec2{X: 5.5, Y: 5.5})
	far := testEnemy(domain.Vec2{X: 9.5, Y: 5.5})
	offAxis := testEnemy(domain.Vec2{X: 7.5, Y: 8.5})

	origin := domain.Vec2{X: 2.5, Y: 5.5}
	dir := domain.Vec2{X: 1, Y: 0}

	got := FireHitscan(w, origin, dir, 20, 0.2, []*domain.Enemy{far, offAxis, near})
	if got != near {
		t.Fatalf("expected the nearest enemy in the beam, got %+v", got)
	}
}

func TestFireHitscanStoppedByWall(t *testing.T) {
	w := makeWorld(16)
	for y := 1; y < 15; y++ {
		w.Cells[y][4] = domain.CellWall
	}

	hidden := testEnemy(domain.Vec2{X: 7.5, Y: 5.5})

	got := FireHitscan(w, domain.Vec2{X: 2.5, Y: 5.5}, domain.Vec2{X: 1, Y: 0}, 20, 0.2, []*domain.Enemy{hidden})
	if got != nil {
		t.Fatal("an enemy behind a wall cannot be hit")
	}
}

func TestFireHitscanIgnoresCorpsesAndMisses(t *testing.T) {
	w := makeWorld(16)

	corpse := testEnemy(domain.Vec2{X: 5.5, Y: 5.5})
	corpse.EnterState(domain.StateDead, 1)

	wide := testEnemy(domain.Vec2{X: 7.5, Y: 6.8}) // мимо луча

	got := FireHitscan(w, domain.Vec2{X: 2.5, Y: 5.5}, domain.Vec2{X: 1, Y: 0}, 20, 0.2, []*domain.Enemy{corpse, wide})
	if got != nil {
		t.Fatal("corpses and off-beam enemies must not be hit")
	}
}
