package engine

import (
	"fmt"
	"math"
	"math/rand"

	"gloomgrid-server/internal/domain"
	"gloomgrid-server/internal/systems"
	"gloomgrid-server/pkg/api"
	"gloomgrid-server/pkg/logger"
	"gloomgrid-server/pkg/mapgen"
)

// SimulationSession - одна запущенная симуляция: мир, игрок, сущности
// и режиссер. Все методы вызываются из единственной горутины цикла,
// внутренних блокировок нет.
type SimulationSession struct {
	Cfg Config

	World    *domain.GridWorld
	Player   *domain.Player
	Entities []*domain.Entity

	Archetypes []domain.Archetype
	Director   *Director

	Rng    *rand.Rand
	Events domain.EventQueue

	Time  float64
	Tick  uint64
	Level int
	Kills int

	levelStartKills int

	// Recovered - сработал ли аварийный генератор на текущем уровне.
	Recovered bool
}

// NewSession генерирует первый уровень и размещает игрока.
func NewSession(cfg Config, archetypes []domain.Archetype) (*SimulationSession, error) {
	if len(archetypes) == 0 {
		return nil, fmt.Errorf("no enemy archetypes configured")
	}

	s := &SimulationSession{
		Cfg:        cfg,
		Archetypes: archetypes,
		Rng:        rand.New(rand.NewSource(cfg.Seed)),
		Level:      1,
	}
	s.Director = NewDirector(cfg.Director)

	if err := s.buildLevel(); err != nil {
		return nil, err
	}
	return s, nil
}

// buildLevel генерирует мир текущего уровня и ставит игрока на
// свободную точку. Seed уровня N = мастер-сид + N.
func (s *SimulationSession) buildLevel() error {
	world, recovered, err := mapgen.Generate(s.Cfg.Seed+int64(s.Level), s.Cfg.GridSize, s.Cfg.Map)
	if err != nil {
		return fmt.Errorf("build level %d: %w", s.Level, err)
	}
	s.World = world
	s.Recovered = recovered
	s.Entities = s.Entities[:0]
	s.Director.Reset(s.Time)

	spawn := world.TakeRandomFreeSpace(s.Rng, true)
	if s.Player == nil {
		s.Player = &domain.Player{
			Agent: domain.Agent{
				Pos:    spawn,
				Dir:    domain.Vec2{X: 1, Y: 0},
				Radius: s.Cfg.Player.Radius,
			},
			Health:    s.Cfg.Player.MaxHealth,
			MaxHealth: s.Cfg.Player.MaxHealth,
			Ammo:      s.Cfg.Weapon.ClipSize,
			ClipSize:  s.Cfg.Weapon.ClipSize,
		}
	} else {
		// Переход на следующий уровень: ресурсы сохраняются.
		s.Player.Pos = spawn
		s.Player.Vel = domain.Vec2{}
	}

	if recovered {
		s.Events.Push(domain.SimEvent{Type: domain.EventWorldRecovered})
		logger.Log.WithField("level", s.Level).Warn("Level generation fell back to recovery layout")
	}
	s.Events.Push(domain.SimEvent{Type: domain.EventLevelStarted, Pos: spawn})

	logger.Log.WithFields(map[string]interface{}{
		"level": s.Level,
		"size":  world.Size,
		"free":  len(world.FreeSpaces),
	}).Info("Level built")
	return nil
}

// NextLevel переводит сессию на следующий уровень.
func (s *SimulationSession) NextLevel() error {
	s.Level++
	s.levelStartKills = s.Kills
	return s.buildLevel()
}

// Update продвигает симуляцию на один шаг. dt - реальное время с
// прошлого шага, секунды; обрезается потолком из конфига.
func (s *SimulationSession) Update(dt float64, intent api.IntentPayload) {
	if dt <= 0 {
		return
	}
	if dt > s.Cfg.MaxDT {
		dt = s.Cfg.MaxDT
	}
	s.Time += dt
	s.Tick++

	if !s.Player.Dead {
		s.updatePlayer(dt, intent)
	} else {
		s.Player.Vel = domain.Vec2{}
	}

	s.Director.Update(s, dt)

	// Зачистка уровня открывает следующий.
	if s.Cfg.KillsToAdvance > 0 && s.Kills-s.levelStartKills >= s.Cfg.KillsToAdvance {
		if err := s.NextLevel(); err != nil {
			logger.Log.WithError(err).Error("Failed to build next level")
		}
	}
}

// Restart сбрасывает сессию к первому уровню с тем же мастер-сидом.
func (s *SimulationSession) Restart() error {
	s.Rng = rand.New(rand.NewSource(s.Cfg.Seed))
	s.Player = nil
	s.Time = 0
	s.Tick = 0
	s.Level = 1
	s.Kills = 0
	s.levelStartKills = 0
	s.Events.Drain()
	return s.buildLevel()
}

// updatePlayer применяет намерение игрока: поворот, движение,
// перезарядка, выстрел, подбор предметов.
func (s *SimulationSession) updatePlayer(dt float64, intent api.IntentPayload) {
	p := s.Player

	// Поворот. Turn нормализован клиентом в [-1, 1].
	turn := clamp(intent.Turn, -1, 1) * s.Cfg.Player.TurnSpeed * dt
	if turn != 0 {
		p.Dir = domain.VecFromAngle(p.Dir.Angle() + turn)
	}
	p.Pitch = clamp(intent.Pitch, -math.Pi/2, math.Pi/2)

	// Движение: вперед вдоль взгляда, вбок вдоль перпендикуляра.
	forward := clamp(intent.MoveForward, -1, 1)
	strafe := clamp(intent.MoveStrafe, -1, 1)
	wish := p.Dir.Scale(forward).Add(p.Dir.Perp().Scale(strafe))
	if wish.Len() > 1 {
		wish = wish.NormalizeOr(domain.Vec2{})
	}
	p.Vel = wish.Scale(s.Cfg.Player.MoveSpeed)
	systems.MoveAgent(&p.Agent, p.Vel.Scale(dt), s.World)

	// Перезарядка завершается по таймеру симуляционного времени.
	if p.Reloading && s.Time >= p.ReloadDoneAt {
		p.Reloading = false
		p.Ammo = p.ClipSize
		s.Events.Push(domain.SimEvent{Type: domain.EventWeaponReloaded, Pos: p.Pos})
	}

	if intent.Reload {
		s.startReload()
	}
	if intent.Fire {
		s.fireWeapon()
	}

	s.collectPickups()
}

func (s *SimulationSession) startReload() {
	p := s.Player
	if p.Reloading || p.Ammo >= p.ClipSize {
		return
	}
	p.Reloading = true
	p.ReloadDoneAt = s.Time + s.Cfg.Weapon.ReloadTime
}

// fireWeapon разрешает выстрел хитскан-лучом. Пустой магазин вместо
// выстрела начинает перезарядку.
func (s *SimulationSession) fireWeapon() {
	p := s.Player
	if p.Reloading || s.Time < p.FireReadyAt {
		return
	}
	if p.Ammo <= 0 {
		s.startReload()
		return
	}

	p.Ammo--
	p.FireReadyAt = s.Time + s.Cfg.Weapon.Cooldown
	s.Events.Push(domain.SimEvent{Type: domain.EventWeaponFired, Pos: p.Pos})

	target := systems.FireHitscan(s.World, p.Pos, p.Dir,
		s.Cfg.Weapon.Range, s.Cfg.Weapon.BeamRadius, s.aliveEnemies())
	if target == nil {
		return
	}
	if systems.ApplyDamage(target, s.Cfg.Weapon.Damage, p.Pos, s.Time, &s.Events) {
		s.Kills++
	}
}

// collectPickups подбирает предметы, пересекающиеся с игроком.
func (s *SimulationSession) collectPickups() {
	p := s.Player
	kept := s.Entities[:0]
	for _, e := range s.Entities {
		if e.Kind != domain.KindPickup {
			kept = append(kept, e)
			continue
		}
		pk := e.Pickup
		if p.Pos.DistanceTo(pk.Pos) > p.Radius+pk.Radius {
			kept = append(kept, e)
			continue
		}

		switch pk.Kind {
		case domain.PickupHealth:
			p.Health = math.Min(p.MaxHealth, p.Health+pk.Amount)
		case domain.PickupAmmo:
			p.Ammo = minInt(p.ClipSize, p.Ammo+int(pk.Amount))
		}
		s.Events.Push(domain.SimEvent{
			Type:     domain.EventPickupTaken,
			EntityID: pk.ID,
			Pos:      pk.Pos,
			Amount:   pk.Amount,
		})
	}
	s.Entities = kept
}

// aliveEnemies собирает живых врагов для боевых запросов.
func (s *SimulationSession) aliveEnemies() []*domain.Enemy {
	out := make([]*domain.Enemy, 0, len(s.Entities))
	for _, e := range s.Entities {
		if e.Kind == domain.KindEnemy && !e.Enemy.Dead() {
			out = append(out, e.Enemy)
		}
	}
	return out
}

// DrainEvents забирает накопленные события (для сборки кадра).
func (s *SimulationSession) DrainEvents() []domain.SimEvent {
	return s.Events.Drain()
}

// Difficulty - текущая сложность. Растет монотонно от убийств и
// прошедшего времени, никогда не убывает.
func (s *SimulationSession) Difficulty() float64 {
	d := s.Cfg.Director
	return 1 + float64(s.Kills)*d.DifficultyPerKill + (s.Time/60)*d.DifficultyPerMinute
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
