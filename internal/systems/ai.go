package systems

import (
	"gloomgrid-server/internal/domain"
	"gloomgrid-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Advance выполняет один тик конечного автомата врага: чувства ->
// переход -> навигация. Таблица переходов тотальна: любая комбинация
// (состояние, чувства, дистанции) дает ровно одно следующее состояние.
func Advance(e *domain.Enemy, ctx *AIContext) {
	if e.Dead() {
		return
	}

	// Страховка: здоровье могло уйти в ноль вне ApplyDamage.
	if e.Health <= 0 {
		e.EnterState(domain.StateDead, ctx.Now)
		return
	}

	rep := UpdateSenses(e, ctx)
	detected := rep.Detected()
	dist := e.Pos.DistanceTo(ctx.Player.Pos)

	switch e.State {
	case domain.StateIdle:
		if detected {
			enterChase(e, ctx)
			break
		}
		if ctx.Now >= e.NextCheckAt {
			// Агрессивные охотнее уходят в патруль.
			chance := ctx.Tuning.PatrolChance + 0.3*e.Archetype.Aggressiveness
			if ctx.Rng.Float64() < chance {
				startPatrol(e, ctx)
			} else {
				e.NextCheckAt = ctx.Now + ctx.Tuning.IdleCheckInterval
			}
		}
		e.Vel = domain.Vec2{}

	case domain.StatePatrol:
		if detected {
			enterChase(e, ctx)
			break
		}
		if ctx.Now >= e.NextCheckAt {
			if ctx.Rng.Float64() < ctx.Tuning.IdleChance {
				e.EnterState(domain.StateIdle, ctx.Now)
				e.NextCheckAt = ctx.Now + ctx.Tuning.IdleCheckInterval
				e.Vel = domain.Vec2{}
				break
			}
			e.NextCheckAt = ctx.Now + ctx.Tuning.IdleCheckInterval
		}
		reach := ctx.Tuning.ReachRadius * ctx.World.CellUnit
		if !e.HasPatrolTarget || e.Pos.DistanceTo(e.PatrolTarget) < reach {
			pickPatrolTarget(e, ctx)
		}
		Navigate(e, e.PatrolTarget, ctx.Tuning.PatrolSpeedFactor, ctx)

	case domain.StateChase:
		// Дистанции достаточно: цель в радиусе удара атакуется даже
		// без текущего контакта чувств (симметрично выходу из Attack).
		if dist <= e.Archetype.AttackRange {
			e.EnterState(domain.StateAttack, ctx.Now)
			break
		}

		// Потеря цели: контакт отсутствует дольше таймаута И точка
		// последнего контакта проверена (достигнута).
		lost := !detected && ctx.Now-e.LastSensedAt > ctx.Tuning.ChaseTimeout
		reachedLastKnown := e.LastKnownTargetPos == nil ||
			e.Pos.DistanceTo(*e.LastKnownTargetPos) < ctx.Tuning.ReachRadius*ctx.World.CellUnit
		if lost && reachedLastKnown {
			e.LastKnownTargetPos = nil
			logger.Log.WithFields(logrus.Fields{
				"component": "ai_system",
				"enemy_id":  e.ID,
			}).Debug("Target lost, returning to patrol")
			startPatrol(e, ctx)
			break
		}

		goal := ctx.Player.Pos
		if !detected && e.LastKnownTargetPos != nil {
			goal = *e.LastKnownTargetPos
		}
		Navigate(e, goal, chaseSpeedFactor(e), ctx)

	case domain.StateAttack:
		if dist > e.Archetype.AttackRange {
			e.EnterState(domain.StateChase, ctx.Now)
			break
		}
		FaceTarget(e, ctx.Player.Pos, ctx)
		if ctx.Now >= e.AttackReadyAt {
			ResolveEnemyAttack(e, ctx)
			e.AttackReadyAt = ctx.Now + e.Archetype.AttackCooldown
		}

	case domain.StateStunned:
		e.Vel = domain.Vec2{}
		if e.TimeInState(ctx.Now) >= ctx.Tuning.StunDuration {
			enterChase(e, ctx)
		}
	}
}

// enterChase переводит врага в погоню; первый переход помечает его
// алертованным и порождает событие для аудио/UI.
func enterChase(e *domain.Enemy, ctx *AIContext) {
	if !e.Alerted {
		e.Alerted = true
		ctx.Events.Push(domain.SimEvent{
			Type:     domain.EventEnemyAlerted,
			EntityID: e.ID,
			Pos:      e.Pos,
		})
	}
	e.EnterState(domain.StateChase, ctx.Now)
	e.LastSensedAt = ctx.Now
}

// startPatrol выбирает свежую случайную точку патруля и уходит в Patrol.
func startPatrol(e *domain.Enemy, ctx *AIContext) {
	e.EnterState(domain.StatePatrol, ctx.Now)
	e.NextCheckAt = ctx.Now + ctx.Tuning.IdleCheckInterval
	pickPatrolTarget(e, ctx)
}

func pickPatrolTarget(e *domain.Enemy, ctx *AIContext) {
	e.PatrolTarget = ctx.World.TakeRandomFreeSpace(ctx.Rng, false)
	e.HasPatrolTarget = true
}

// chaseSpeedFactor - агрессивные догоняют быстрее.
func chaseSpeedFactor(e *domain.Enemy) float64 {
	return 0.8 + 0.4*e.Archetype.Aggressiveness
}
