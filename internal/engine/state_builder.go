package engine

import (
	"gloomgrid-server/internal/domain"
	"gloomgrid-server/pkg/api"
)

// BuildFrame собирает снимок состояния для клиента. init управляет
// включением сетки: она не мутирует после генерации и отправляется
// один раз.
func (s *SimulationSession) BuildFrame(init bool) *api.StateFrame {
	frame := &api.StateFrame{
		Type:       "UPDATE",
		Tick:       s.Tick,
		Time:       s.Time,
		Level:      s.Level,
		Difficulty: s.Difficulty(),
		Camera:     s.buildCamera(),
		Player:     s.buildPlayer(),
		Entities:   s.buildEntities(),
		Events:     toEventViews(s.DrainEvents()),
	}

	if init {
		frame.Type = "INIT"
		frame.Grid = &api.GridMeta{Size: s.World.Size, CellUnit: s.World.CellUnit}
		frame.Cells = s.buildCells()
	}
	return frame
}

// buildCamera считает позу камеры. Plane перпендикулярен взгляду и
// задает веер лучей по колонкам экрана.
func (s *SimulationSession) buildCamera() api.CameraView {
	p := s.Player
	plane := p.Dir.Perp().Scale(0.66)
	return api.CameraView{
		Pos:   api.Vec2View{X: p.Pos.X, Y: p.Pos.Y},
		Dir:   api.Vec2View{X: p.Dir.X, Y: p.Dir.Y},
		Plane: api.Vec2View{X: plane.X, Y: plane.Y},
		Pitch: p.Pitch,
	}
}

func (s *SimulationSession) buildPlayer() api.PlayerView {
	p := s.Player
	return api.PlayerView{
		Health:    p.Health,
		MaxHealth: p.MaxHealth,
		Ammo:      p.Ammo,
		ClipSize:  p.ClipSize,
		Reloading: p.Reloading,
		Dead:      p.Dead,
	}
}

func (s *SimulationSession) buildEntities() []api.EntityView {
	views := make([]api.EntityView, 0, len(s.Entities))
	for _, ent := range s.Entities {
		switch ent.Kind {
		case domain.KindEnemy:
			e := ent.Enemy
			views = append(views, api.EntityView{
				ID:        e.ID,
				Kind:      "ENEMY",
				Pos:       api.Vec2View{X: e.Pos.X, Y: e.Pos.Y},
				Dir:       api.Vec2View{X: e.Dir.X, Y: e.Dir.Y},
				Archetype: e.Archetype.ID,
				State:     e.State.String(),
			})
		case domain.KindPickup:
			pk := ent.Pickup
			views = append(views, api.EntityView{
				ID:         pk.ID,
				Kind:       "PICKUP",
				Pos:        api.Vec2View{X: pk.Pos.X, Y: pk.Pos.Y},
				PickupKind: pk.Kind.String(),
			})
		}
	}
	return views
}

func (s *SimulationSession) buildCells() [][]uint8 {
	cells := make([][]uint8, s.World.Size)
	for y := 0; y < s.World.Size; y++ {
		row := make([]uint8, s.World.Size)
		for x := 0; x < s.World.Size; x++ {
			row[x] = uint8(s.World.Cells[y][x])
		}
		cells[y] = row
	}
	return cells
}

func toEventViews(events []domain.SimEvent) []api.EventView {
	if len(events) == 0 {
		return nil
	}
	views := make([]api.EventView, 0, len(events))
	for _, ev := range events {
		views = append(views, api.EventView{
			Type:     string(ev.Type),
			EntityID: ev.EntityID,
			Pos:      api.Vec2View{X: ev.Pos.X, Y: ev.Pos.Y},
			Amount:   ev.Amount,
		})
	}
	return views
}
