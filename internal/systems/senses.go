package systems

import (
	"math/rand"

	"gloomgrid-server/internal/domain"
)

// Tuning - настроечные константы ИИ. Модель слуха и порог конуса
// зрения не имеют выводимого обоснования, поэтому это параметры
// конфигурации, а не зашитые числа.
type Tuning struct {
	// SightConeDot - порог скалярного произведения для конуса зрения.
	// -0.5 соответствует конусу примерно в 120 градусов вперед.
	SightConeDot float64

	// HearingNoiseFactor - коэффициент "скорость цели -> вероятность
	// услышать за тик".
	HearingNoiseFactor float64

	IdleCheckInterval float64 // секунд между проверками смены Idle/Patrol
	PatrolChance      float64
	IdleChance        float64

	ChaseTimeout float64 // секунд без контакта до потери цели
	StunDuration float64

	PatrolSpeedFactor float64

	// ProbeDistance - дальность щупа перед носом в клетках.
	ProbeDistance float64
	// NudgeRadians - амплитуда случайного увода курса при упоре
	// в препятствие.
	NudgeRadians float64

	// ReachRadius - радиус "точка достигнута" в клетках.
	ReachRadius float64

	// RangedBaseHitChance - базовый шанс попадания стрелка,
	// интеллект добавляет до +0.3.
	RangedBaseHitChance float64
}

// DefaultTuning возвращает настройки ИИ по умолчанию.
func DefaultTuning() Tuning {
	return Tuning{
		SightConeDot:        -0.5,
		HearingNoiseFactor:  0.5,
		IdleCheckInterval:   2.0,
		PatrolChance:        0.6,
		IdleChance:          0.3,
		ChaseTimeout:        3.0,
		StunDuration:        1.0,
		PatrolSpeedFactor:   0.5,
		ProbeDistance:       1.0,
		NudgeRadians:        0.8,
		ReachRadius:         1.0,
		RangedBaseHitChance: 0.5,
	}
}

// AIContext - все, что нужно системам ИИ на один тик.
type AIContext struct {
	World  *domain.GridWorld
	Rng    *rand.Rand
	Tuning Tuning

	Now float64 // симуляционное время
	DT  float64

	Player *domain.Player
	Events *domain.EventQueue
}

// SenseReport - результат опроса чувств за один тик.
type SenseReport struct {
	Sight   bool
	Hearing bool
}

// Detected - сработало ли хоть одно чувство.
func (r SenseReport) Detected() bool {
	return r.Sight || r.Hearing
}

// UpdateSenses пересчитывает чувства врага. Вызывается каждый тик и
// никогда не кэшируется между тиками.
func UpdateSenses(e *domain.Enemy, ctx *AIContext) SenseReport {
	var rep SenseReport

	if ctx.Player.Dead {
		return rep
	}

	targetPos := ctx.Player.Pos
	dist := e.Pos.DistanceTo(targetPos)

	// Зрение: дальность, конус вперед, затем луч с допуском в
	// полклетки против ложных отказов на углах.
	if dist <= e.Archetype.SightRange {
		toTarget := targetPos.Sub(e.Pos).NormalizeOr(e.Dir)
		if e.Dir.Dot(toTarget) > ctx.Tuning.SightConeDot {
			if HasLineOfSight(ctx.World, e.Pos, targetPos) {
				rep.Sight = true
			}
		}
	}

	// Слух стохастический: чем быстрее цель, тем она шумнее.
	// Переброс каждый тик, пока цель в радиусе.
	if dist <= e.Archetype.HearingRange {
		noise := ctx.Player.Speed() * ctx.Tuning.HearingNoiseFactor
		if ctx.Rng.Float64() < noise {
			rep.Hearing = true
		}
	}

	if rep.Detected() {
		pos := targetPos
		e.LastKnownTargetPos = &pos
		e.LastSensedAt = ctx.Now
	}

	return rep
}
