package systems

import (
	"gloomgrid-server/internal/domain"
)

// boundaryBuffer - минимальный отступ от края мира в долях клетки.
// Страхует от проскальзывания сквозь внешнее кольцо на больших dt.
const boundaryBuffer = 0.05

// MoveAgent двигает агента на желаемую дельту с поосевым скольжением:
// сначала полная дельта, при блокировке - только X, затем только Y.
// Скорость по заблокированной оси обнуляется. Диагональ в угол дает
// скольжение вдоль стены, а не жесткий стоп.
//
// Возвращает итоговую позицию. Инвариант: позиция агента никогда не
// оставляет его раздутый на радиус бокс внутри клетки-стены.
func MoveAgent(a *domain.Agent, delta domain.Vec2, w *domain.GridWorld) domain.Vec2 {
	target := a.Pos.Add(delta)

	if !IsBlocked(w, target, a.Radius) {
		a.Pos = target
	} else {
		// Только X.
		xOnly := domain.Vec2{X: target.X, Y: a.Pos.Y}
		if delta.X != 0 && !IsBlocked(w, xOnly, a.Radius) {
			a.Pos = xOnly
			a.Vel.Y = 0
		} else {
			// Только Y.
			yOnly := domain.Vec2{X: a.Pos.X, Y: target.Y}
			if delta.Y != 0 && !IsBlocked(w, yOnly, a.Radius) {
				a.Pos = yOnly
				a.Vel.X = 0
			} else {
				a.Vel = domain.Vec2{}
			}
		}
	}

	// Финальный прижим к границам мира.
	buffer := a.Radius + boundaryBuffer*w.CellUnit
	side := w.WorldSide()

	if a.Pos.X < buffer {
		a.Pos.X = buffer
	}
	if a.Pos.X > side-buffer {
		a.Pos.X = side - buffer
	}
	if a.Pos.Y < buffer {
		a.Pos.Y = buffer
	}
	if a.Pos.Y > side-buffer {
		a.Pos.Y = side - buffer
	}

	return a.Pos
}
