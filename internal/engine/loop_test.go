package engine

import (
	"testing"

	"gloomgrid-server/internal/network"
	"gloomgrid-server/pkg/api"
)

func TestLoopLatchesIntentAndEdgesFire(t *testing.T) {
	s := newTestSession(t, testConfig())
	hub := network.NewBroadcaster()
	l := NewLoop(s, hub)

	l.applyCommand(api.ClientCommand{
		Type:   "INTENT",
		Intent: &api.IntentPayload{MoveForward: 1, Fire: true},
	})

	start := s.Player.Pos
	l.step(0.05)

	if s.Player.Pos == start {
		t.Error("intent must move the player")
	}
	if s.Player.Ammo != s.Cfg.Weapon.ClipSize-1 {
		t.Errorf("fire must consume one round, ammo %d", s.Player.Ammo)
	}

	// Без новой команды осевой ввод держится, а выстрел не повторяется.
	mid := s.Player.Pos
	for i := 0; i < 20; i++ {
		l.step(0.05)
	}

	if s.Player.Pos == mid {
		t.Error("axis intent must latch between commands")
	}
	if s.Player.Ammo != s.Cfg.Weapon.ClipSize-1 {
		t.Errorf("fire is edge triggered, ammo %d", s.Player.Ammo)
	}
}

func TestLoopServesInitFrames(t *testing.T) {
	s := newTestSession(t, testConfig())
	hub := network.NewBroadcaster()
	l := NewLoop(s, hub)

	ch := hub.Register("c1")
	l.applyCommand(api.ClientCommand{Type: "INIT", Token: "c1"})
	l.step(0.05)

	frame := <-ch
	if frame.Type != "INIT" {
		t.Fatalf("expected INIT frame, got %s", frame.Type)
	}
	if frame.Grid == nil || len(frame.Cells) != s.World.Size {
		t.Fatal("INIT frame must carry the grid")
	}

	// Следующий кадр - обычный UPDATE без сетки.
	<-ch // сопровождающий UPDATE того же тика
	l.step(0.05)
	update := <-ch
	if update.Type != "UPDATE" || update.Cells != nil {
		t.Fatalf("expected a plain UPDATE frame, got %s", update.Type)
	}
}

func TestLoopRestartCommand(t *testing.T) {
	s := newTestSession(t, testConfig())
	hub := network.NewBroadcaster()
	l := NewLoop(s, hub)

	for i := 0; i < 10; i++ {
		l.step(0.1)
	}
	if s.Time == 0 {
		t.Fatal("time must advance")
	}

	l.applyCommand(api.ClientCommand{Type: "RESTART"})
	if s.Time != 0 || s.Level != 1 {
		t.Error("restart command must reset the session")
	}
}
