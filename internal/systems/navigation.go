package systems

import (
	"gloomgrid-server/internal/domain"
)

// Navigate ведет врага к точке: разворот по кратчайшей дуге с
// ограниченной угловой скоростью, ход вперед, щуп на клетку перед
// носом. Легкая локальная эвристика обхода, не поиск пути -
// для открытой топологии комнат и коридоров этого достаточно.
func Navigate(e *domain.Enemy, target domain.Vec2, speedFactor float64, ctx *AIContext) {
	to := target.Sub(e.Pos)
	if to.Len() < 1e-9 {
		e.Vel = domain.Vec2{}
		return
	}

	// Поворот: знаковая разница углов, нормализованная в [-pi, pi],
	// шаг не больше turnSpeed*dt.
	desired := to.Angle()
	current := e.Dir.Angle()
	diff := domain.NormalizeAngle(desired - current)

	maxTurn := e.Archetype.TurnSpeed * ctx.DT
	if diff > maxTurn {
		diff = maxTurn
	} else if diff < -maxTurn {
		diff = -maxTurn
	}
	e.Dir = domain.VecFromAngle(current + diff)

	speed := e.Archetype.MoveSpeed * speedFactor

	// Щуп перед носом: препятствие ближе дистанции щупа
	// пропорционально гасит скорость, совсем близко - случайный увод
	// курса, чтобы обогнуть угол. Умные увиливают точнее.
	probeDist := ctx.Tuning.ProbeDistance * ctx.World.CellUnit
	if hit, ok := CastRay(ctx.World, e.Pos, e.Dir, probeDist); ok {
		if probeDist > 0 {
			speed *= hit.Distance / probeDist
		}
		if hit.Distance < 0.4*ctx.World.CellUnit {
			nudge := ctx.Tuning.NudgeRadians * (1 - 0.7*e.Archetype.Intelligence)
			angle := e.Dir.Angle() + (ctx.Rng.Float64()*2-1)*nudge
			e.Dir = domain.VecFromAngle(angle)
		}
	}

	e.Vel = e.Dir.Scale(speed)
	MoveAgent(&e.Agent, e.Vel.Scale(ctx.DT), ctx.World)
}

// FaceTarget разворачивает врага к цели без движения (стойка атаки).
func FaceTarget(e *domain.Enemy, target domain.Vec2, ctx *AIContext) {
	to := target.Sub(e.Pos)
	if to.Len() < 1e-9 {
		return
	}
	diff := domain.NormalizeAngle(to.Angle() - e.Dir.Angle())
	maxTurn := e.Archetype.TurnSpeed * ctx.DT
	if diff > maxTurn {
		diff = maxTurn
	} else if diff < -maxTurn {
		diff = -maxTurn
	}
	e.Dir = domain.VecFromAngle(e.Dir.Angle() + diff)
	e.Vel = domain.Vec2{}
}
