package engine

import (
	"testing"

	"gloomgrid-server/internal/domain"
	"gloomgrid-server/pkg/api"
)

func testConfig() Config {
	cfg := NewConfig()
	cfg.Seed = 42
	return cfg
}

func newTestSession(t *testing.T, cfg Config) *SimulationSession {
	t.Helper()
	s, err := NewSession(cfg, domain.DefaultArchetypes())
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func hasEvent(events []domain.SimEvent, typ domain.EventType) bool {
	for _, ev := range events {
		if ev.Type == typ {
			return true
		}
	}
	return false
}

func TestNewSessionDeterministic(t *testing.T) {
	a := newTestSession(t, testConfig())
	b := newTestSession(t, testConfig())

	for y := 0; y < a.World.Size; y++ {
		for x := 0; x < a.World.Size; x++ {
			if a.World.Cells[y][x] != b.World.Cells[y][x] {
				t.Fatalf("same master seed diverged at (%d,%d)", x, y)
			}
		}
	}
	if a.Player.Pos != b.Player.Pos {
		t.Errorf("player spawn diverged: %+v vs %+v", a.Player.Pos, b.Player.Pos)
	}
}

func TestNewSessionEmitsLevelStarted(t *testing.T) {
	s := newTestSession(t, testConfig())
	if !hasEvent(s.DrainEvents(), domain.EventLevelStarted) {
		t.Error("a fresh session must announce the level")
	}
}

func TestUpdateClampsDT(t *testing.T) {
	s := newTestSession(t, testConfig())
	s.DrainEvents()

	// Секундный скачок часов не должен телепортировать время дальше
	// потолка одного шага.
	s.Update(1.0, api.IntentPayload{})
	if s.Time != s.Cfg.MaxDT {
		t.Errorf("expected time %f after clamp, got %f", s.Cfg.MaxDT, s.Time)
	}
}

func TestPlayerMovesWithIntent(t *testing.T) {
	s := newTestSession(t, testConfig())
	start := s.Player.Pos

	for i := 0; i < 10; i++ {
		s.Update(0.05, api.IntentPayload{MoveForward: 1})
	}

	if s.Player.Pos == start {
		t.Error("forward intent must move the player")
	}
}

func TestPlayerTurns(t *testing.T) {
	s := newTestSession(t, testConfig())
	startAngle := s.Player.Dir.Angle()

	s.Update(0.05, api.IntentPayload{Turn: 1})

	if s.Player.Dir.Angle() == startAngle {
		t.Error("turn intent must rotate the view direction")
	}
}

func TestFireConsumesAmmo(t *testing.T) {
	s := newTestSession(t, testConfig())
	s.DrainEvents()

	s.Update(0.05, api.IntentPayload{Fire: true})

	if s.Player.Ammo != s.Cfg.Weapon.ClipSize-1 {
		t.Errorf("expected %d ammo, got %d", s.Cfg.Weapon.ClipSize-1, s.Player.Ammo)
	}
	if !hasEvent(s.DrainEvents(), domain.EventWeaponFired) {
		t.Error("shot must emit a fire event")
	}

	// Кулдаун: немедленный повторный выстрел не проходит.
	s.Update(0.05, api.IntentPayload{Fire: true})
	if s.Player.Ammo != s.Cfg.Weapon.ClipSize-1 {
		t.Error("cooldown must gate the next shot")
	}
}

func TestEmptyClipStartsReload(t *testing.T) {
	s := newTestSession(t, testConfig())
	s.Player.Ammo = 0
	s.DrainEvents()

	s.Update(0.05, api.IntentPayload{Fire: true})

	if !s.Player.Reloading {
		t.Fatal("firing an empty clip must start a reload")
	}

	// Докручиваем время до конца перезарядки.
	for i := 0; i < 20; i++ {
		s.Update(0.1, api.IntentPayload{})
	}

	if s.Player.Reloading {
		t.Fatal("reload must finish")
	}
	if s.Player.Ammo != s.Cfg.Weapon.ClipSize {
		t.Errorf("reload must refill the clip, got %d", s.Player.Ammo)
	}
	if !hasEvent(s.DrainEvents(), domain.EventWeaponReloaded) {
		t.Error("reload completion must emit an event")
	}
}

func TestPickupCollection(t *testing.T) {
	s := newTestSession(t, testConfig())
	s.Player.Health = 50
	s.DrainEvents()

	s.Entities = append(s.Entities, &domain.Entity{
		Kind: domain.KindPickup,
		Pickup: &domain.Pickup{
			ID:     "hp1",
			Kind:   domain.PickupHealth,
			Pos:    s.Player.Pos,
			Amount: 20,
			Radius: 0.3,
		},
	})

	s.Update(0.05, api.IntentPayload{})

	if s.Player.Health != 70 {
		t.Errorf("expected 70 health, got %f", s.Player.Health)
	}
	for _, e := range s.Entities {
		if e.Kind == domain.KindPickup {
			t.Fatal("collected pickup must be removed")
		}
	}
	if !hasEvent(s.DrainEvents(), domain.EventPickupTaken) {
		t.Error("pickup must emit an event")
	}
}

func TestHealthPickupClampsToMax(t *testing.T) {
	s := newTestSession(t, testConfig())
	s.Player.Health = s.Player.MaxHealth - 5

	s.Entities = append(s.Entities, &domain.Entity{
		Kind: domain.KindPickup,
		Pickup: &domain.Pickup{
			ID:     "hp2",
			Kind:   domain.PickupHealth,
			Pos:    s.Player.Pos,
			Amount: 50,
			Radius: 0.3,
		},
	})

	s.Update(0.05, api.IntentPayload{})

	if s.Player.Health != s.Player.MaxHealth {
		t.Errorf("health must clamp to max, got %f", s.Player.Health)
	}
}

func TestDifficultyGrowsMonotonically(t *testing.T) {
	s := newTestSession(t, testConfig())

	d0 := s.Difficulty()
	s.Time += 120
	d1 := s.Difficulty()
	s.Kills += 5
	d2 := s.Difficulty()

	if !(d0 < d1 && d1 < d2) {
		t.Errorf("difficulty must grow: %f, %f, %f", d0, d1, d2)
	}
}

func TestRestartResetsSession(t *testing.T) {
	s := newTestSession(t, testConfig())
	s.Time = 50
	s.Kills = 7
	s.Player.Health = 10

	if err := s.Restart(); err != nil {
		t.Fatalf("Restart: %v", err)
	}

	if s.Time != 0 || s.Kills != 0 || s.Level != 1 {
		t.Error("restart must reset the clock, kills and level")
	}
	if s.Player.Health != s.Cfg.Player.MaxHealth {
		t.Error("restart must respawn a fresh player")
	}

	// Тот же мастер-сид - тот же мир.
	fresh := newTestSession(t, testConfig())
	for y := 0; y < s.World.Size; y++ {
		for x := 0; x < s.World.Size; x++ {
			if s.World.Cells[y][x] != fresh.World.Cells[y][x] {
				t.Fatal("restart must rebuild the identical level")
			}
		}
	}
}

func TestNextLevelKeepsPlayerResources(t *testing.T) {
	s := newTestSession(t, testConfig())
	s.Player.Health = 33
	s.Player.Ammo = 2

	if err := s.NextLevel(); err != nil {
		t.Fatalf("NextLevel: %v", err)
	}

	if s.Level != 2 {
		t.Errorf("expected level 2, got %d", s.Level)
	}
	if s.Player.Health != 33 || s.Player.Ammo != 2 {
		t.Error("level transition must keep player resources")
	}
	if !hasEvent(s.DrainEvents(), domain.EventLevelStarted) {
		t.Error("new level must announce itself")
	}
}

func TestBuildFrameInit(t *testing.T) {
	s := newTestSession(t, testConfig())

	frame := s.BuildFrame(true)
	if frame.Type != "INIT" {
		t.Errorf("expected INIT, got %s", frame.Type)
	}
	if frame.Grid == nil || frame.Grid.Size != s.World.Size {
		t.Error("INIT frame must carry grid metadata")
	}
	if len(frame.Cells) != s.World.Size {
		t.Error("INIT frame must carry the full grid")
	}

	update := s.BuildFrame(false)
	if update.Type != "UPDATE" || update.Grid != nil || update.Cells != nil {
		t.Error("UPDATE frame must not carry the grid")
	}
	if update.Camera.Plane.X == 0 && update.Camera.Plane.Y == 0 {
		t.Error("camera plane must be derived from the view direction")
	}
}
