package systems

import (
	"gloomgrid-server/internal/domain"
	"gloomgrid-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// ApplyDamage наносит врагу урон. Возвращает true, если враг погиб.
// По мертвому врагу - no-op. Урон не ниже порога оглушения переводит
// в Stunned (прерывая погоню и атаку), а любой урон по неалертованному
// врагу немедленно отправляет его в погоню: выстрел всегда выдает
// примерное направление на стрелка.
func ApplyDamage(e *domain.Enemy, amount float64, attackerPos domain.Vec2, now float64, q *domain.EventQueue) bool {
	if e.Dead() {
		return false
	}
	if amount < 0 {
		amount = 0
	}

	e.Health -= amount
	q.Push(domain.SimEvent{
		Type:     domain.EventEnemyDamaged,
		EntityID: e.ID,
		Pos:      e.Pos,
		Amount:   amount,
	})

	if e.Health <= 0 {
		e.Health = 0
		e.EnterState(domain.StateDead, now)
		q.Push(domain.SimEvent{
			Type:     domain.EventEnemyDied,
			EntityID: e.ID,
			Pos:      e.Pos,
		})
		logger.Log.WithFields(logrus.Fields{
			"component": "combat_system",
			"enemy_id":  e.ID,
			"archetype": e.Archetype.ID,
		}).Debug("Enemy died")
		return true
	}

	// Урон всегда выдает атакующего.
	pos := attackerPos
	e.LastKnownTargetPos = &pos
	e.LastSensedAt = now

	wasAlerted := e.Alerted
	if !wasAlerted {
		e.Alerted = true
		q.Push(domain.SimEvent{
			Type:     domain.EventEnemyAlerted,
			EntityID: e.ID,
			Pos:      e.Pos,
		})
	}

	if amount >= e.Archetype.StunThreshold {
		e.EnterState(domain.StateStunned, now)
	} else if e.State == domain.StateIdle || e.State == domain.StatePatrol {
		e.EnterState(domain.StateChase, now)
	}

	return false
}

// ResolveEnemyAttack разрешает атаку врага по игроку согласно
// стратегии архетипа.
func ResolveEnemyAttack(e *domain.Enemy, ctx *AIContext) {
	player := ctx.Player
	if player.Dead {
		return
	}

	switch e.Archetype.Style {
	case domain.AttackMelee:
		DamagePlayer(player, e.Archetype.Damage, ctx.Now, ctx.Events)

	case domain.AttackRanged:
		// Стрелку нужна прямая видимость; шанс попадания растет
		// с интеллектом.
		if !HasLineOfSight(ctx.World, e.Pos, player.Pos) {
			return
		}
		chance := ctx.Tuning.RangedBaseHitChance + 0.3*e.Archetype.Intelligence
		if ctx.Rng.Float64() < chance {
			DamagePlayer(player, e.Archetype.Damage, ctx.Now, ctx.Events)
		}
	}
}

// DamagePlayer наносит урон игроку и порождает события для UI/аудио.
func DamagePlayer(p *domain.Player, amount float64, now float64, q *domain.EventQueue) {
	if p.Dead || amount <= 0 {
		return
	}

	p.Health -= amount
	q.Push(domain.SimEvent{
		Type:   domain.EventPlayerDamaged,
		Pos:    p.Pos,
		Amount: amount,
	})

	if p.Health <= 0 {
		p.Health = 0
		p.Dead = true
		q.Push(domain.SimEvent{
			Type: domain.EventPlayerDied,
			Pos:  p.Pos,
		})
	}
}

// FireHitscan разрешает мгновенный выстрел: стена ограничивает
// дальность, из живых врагов в луче берется ближайший.
// beamRadius - полуширина луча (прощает небольшой промах).
func FireHitscan(w *domain.GridWorld, origin, dir domain.Vec2, maxRange, beamRadius float64, enemies []*domain.Enemy) *domain.Enemy {
	dir = dir.NormalizeOr(domain.Vec2{X: 1, Y: 0})

	wallDist := maxRange
	if hit, ok := CastRay(w, origin, dir, maxRange); ok {
		wallDist = hit.Distance
	}

	var best *domain.Enemy
	bestT := wallDist

	for _, e := range enemies {
		if e.Dead() {
			continue
		}
		v := e.Pos.Sub(origin)
		t := v.Dot(dir)
		if t < 0 || t > bestT {
			continue
		}
		perp := v.Sub(dir.Scale(t)).Len()
		if perp <= beamRadius+e.Radius {
			best = e
			bestT = t
		}
	}

	return best
}
