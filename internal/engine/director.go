package engine

import (
	"gloomgrid-server/internal/domain"
	"gloomgrid-server/internal/systems"
	"gloomgrid-server/pkg/logger"
	"gloomgrid-server/pkg/utils"
)

// Шанс, что с трупа при зачистке выпадет предмет.
const corpseDropChance = 0.3

// Director управляет популяцией врагов: спавн по таймеру с шансом от
// сложности, заморозка дальних, зачистка трупов и расталкивание
// пересекающихся тел.
type Director struct {
	cfg DirectorConfig

	nextSpawnAt float64
}

func NewDirector(cfg DirectorConfig) *Director {
	return &Director{cfg: cfg}
}

// Reset взводит таймер спавна заново (вызывается при смене уровня).
func (d *Director) Reset(now float64) {
	d.nextSpawnAt = now + d.cfg.SpawnInterval
}

// Update - один шаг режиссера. Порядок фиксирован: сначала ИИ живых,
// потом расталкивание, потом зачистка и спавн.
func (d *Director) Update(s *SimulationSession, dt float64) {
	ctx := &systems.AIContext{
		World:  s.World,
		Rng:    s.Rng,
		Tuning: s.Cfg.AI,
		Now:    s.Time,
		DT:     dt,
		Player: s.Player,
		Events: &s.Events,
	}

	active := make([]*domain.Enemy, 0, len(s.Entities))
	for _, ent := range s.Entities {
		if ent.Kind != domain.KindEnemy {
			continue
		}
		e := ent.Enemy
		if e.Dead() {
			continue
		}

		// Дальние враги заморожены: ни чувств, ни движения,
		// ни расталкивания. Позиция не меняется до реактивации.
		if e.Pos.DistanceTo(s.Player.Pos) > d.cfg.ActiveRadius {
			e.Vel = domain.Vec2{}
			continue
		}
		active = append(active, e)
		systems.Advance(e, ctx)
	}

	d.separate(active, s, dt)
	d.purgeCorpses(s)
	d.trySpawn(s)
}

// separate мягко расталкивает пересекающихся активных врагов, чтобы
// они не складывались в одну точку у цели. Замороженные не участвуют.
// Игрока не трогает: его коллизия с врагами разрешается уроном, а не
// физикой.
func (d *Director) separate(active []*domain.Enemy, s *SimulationSession, dt float64) {
	if d.cfg.SeparationStrength <= 0 {
		return
	}
	for i := 0; i < len(active); i++ {
		for j := i + 1; j < len(active); j++ {
			a, b := active[i], active[j]
			minDist := a.Radius + b.Radius
			if a.Pos.DistanceTo(b.Pos) >= minDist {
				continue
			}
			// При полном совпадении позиций ось берется случайной.
			axis := b.Pos.Sub(a.Pos).NormalizeOr(domain.VecFromAngle(s.Rng.Float64() * 6.28318))
			push := axis.Scale(d.cfg.SeparationStrength * dt)
			systems.MoveAgent(&b.Agent, push, s.World)
			systems.MoveAgent(&a.Agent, push.Scale(-1), s.World)
		}
	}
}

// purgeCorpses убирает трупы, отлежавшие льготный период, изредка
// оставляя на их месте предмет.
func (d *Director) purgeCorpses(s *SimulationSession) {
	kept := s.Entities[:0]
	var drops []*domain.Entity
	for _, ent := range s.Entities {
		if ent.Kind == domain.KindEnemy {
			e := ent.Enemy
			if e.Dead() && s.Time-e.DiedAt >= d.cfg.CorpseGracePeriod {
				if s.Rng.Float64() < corpseDropChance {
					drops = append(drops, d.spawnDrop(s, e.Pos))
				}
				continue
			}
		}
		kept = append(kept, ent)
	}
	s.Entities = append(kept, drops...)
}

func (d *Director) spawnDrop(s *SimulationSession, pos domain.Vec2) *domain.Entity {
	pk := &domain.Pickup{
		ID:     utils.GenerateID(),
		Pos:    pos,
		Radius: 0.3,
	}
	if s.Rng.Float64() < 0.5 {
		pk.Kind = domain.PickupHealth
		pk.Amount = 15
	} else {
		pk.Kind = domain.PickupAmmo
		pk.Amount = 4
	}
	return &domain.Entity{Kind: domain.KindPickup, Pickup: pk}
}

// trySpawn - попытка спавна по таймеру. Интервал сжимается с ростом
// сложности, шанс успеха растет.
func (d *Director) trySpawn(s *SimulationSession) {
	if s.Time < d.nextSpawnAt {
		return
	}
	difficulty := s.Difficulty()
	d.nextSpawnAt = s.Time + d.cfg.SpawnInterval/difficulty

	if d.countAlive(s) >= d.cfg.MaxEnemies {
		return
	}
	chance := d.cfg.BaseSpawnChance * difficulty
	if chance > 1 {
		chance = 1
	}
	if s.Rng.Float64() >= chance {
		return
	}

	arch, ok := d.pickArchetype(s, difficulty)
	if !ok {
		return
	}
	pos, ok := d.pickSpawnPoint(s)
	if !ok {
		return
	}

	enemy := domain.NewEnemy(utils.GenerateID(), arch, pos, s.Time)
	s.Entities = append(s.Entities, &domain.Entity{Kind: domain.KindEnemy, Enemy: enemy})

	logger.Log.WithFields(map[string]interface{}{
		"id":         enemy.ID,
		"archetype":  arch.ID,
		"difficulty": difficulty,
	}).Debug("Enemy spawned")
}

func (d *Director) countAlive(s *SimulationSession) int {
	n := 0
	for _, ent := range s.Entities {
		if ent.Kind == domain.KindEnemy && !ent.Enemy.Dead() {
			n++
		}
	}
	return n
}

// pickArchetype выбирает архетип взвешенно среди тех, чей тир не
// превышает текущую сложность. Пока сложность низкая, сильные
// архетипы в пул не попадают.
func (d *Director) pickArchetype(s *SimulationSession, difficulty float64) (domain.Archetype, bool) {
	total := 0
	for _, a := range s.Archetypes {
		if a.Tier <= difficulty {
			total += a.Weight
		}
	}
	if total <= 0 {
		return domain.Archetype{}, false
	}
	roll := s.Rng.Float64() * float64(total)
	for _, a := range s.Archetypes {
		if a.Tier > difficulty {
			continue
		}
		roll -= float64(a.Weight)
		if roll <= 0 {
			return a, true
		}
	}
	return s.Archetypes[0], true
}

// pickSpawnPoint ищет свободную точку не ближе минимальной дистанции
// от игрока. Несколько случайных проб, неудача - спавн откладывается
// до следующего тика таймера.
func (d *Director) pickSpawnPoint(s *SimulationSession) (domain.Vec2, bool) {
	const attempts = 12
	for i := 0; i < attempts; i++ {
		p := s.World.TakeRandomFreeSpace(s.Rng, false)
		if p.DistanceTo(s.Player.Pos) >= d.cfg.MinSpawnDistance {
			return p, true
		}
	}
	return domain.Vec2{}, false
}
