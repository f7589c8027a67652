package systems

import (
	"math"

	"gloomgrid-server/internal/domain"
)

// minDirComponent - нижняя граница компоненты направления.
// Нулевая ось дала бы бесконечный deltaDist; подменяем безопасным
// значением локально, наверх такое не репортим.
const minDirComponent = 1e-9

// CastRay трассирует луч через сетку алгоритмом DDA: ровно одна
// клетка на каждое пересечение линии сетки, без туннелирования
// сквозь тонкие стены и с ограниченным числом итераций (<= 2*size).
//
// origin - мировые координаты, dir нормализуется внутри.
// Возвращает (hit, true) при попадании в стену или выходе за границы
// (граница считается неявной стеной); (zero, false), если ничего не
// встречено ближе maxDist.
func CastRay(w *domain.GridWorld, origin, dir domain.Vec2, maxDist float64) (domain.RayHit, bool) {
	unit := w.CellUnit
	if unit <= 0 {
		unit = 1
	}

	// Переходим в координаты клеток.
	ox := origin.X / unit
	oy := origin.Y / unit

	// Нулевое направление - ожидаемый краевой случай: берем "вверх".
	dir = dir.NormalizeOr(domain.Vec2{X: 0, Y: -1})

	dx := clampComponent(dir.X)
	dy := clampComponent(dir.Y)

	start := w.CellOf(origin)
	mapX, mapY := start.X, start.Y

	// Дистанция вдоль луча на одну клетку по каждой оси.
	deltaX := math.Abs(1 / dx)
	deltaY := math.Abs(1 / dy)

	// Начальные дистанции до ближайших линий сетки с учетом знака.
	var stepX, stepY int
	var sideX, sideY float64

	if dx < 0 {
		stepX = -1
		sideX = (ox - float64(mapX)) * deltaX
	} else {
		stepX = 1
		sideX = (float64(mapX) + 1 - ox) * deltaX
	}
	if dy < 0 {
		stepY = -1
		sideY = (oy - float64(mapY)) * deltaY
	} else {
		stepY = 1
		sideY = (float64(mapY) + 1 - oy) * deltaY
	}

	side := domain.SideVertical

	// DDA: шагаем по оси с меньшей накопленной дистанцией.
	maxSteps := 2*w.Size + 2
	for i := 0; i < maxSteps; i++ {
		if sideX < sideY {
			sideX += deltaX
			mapX += stepX
			side = domain.SideVertical
		} else {
			sideY += deltaY
			mapY += stepY
			side = domain.SideHorizontal
		}

		// Перпендикулярная дистанция по последней шагнутой оси
		// (без рыбьего глаза), затем масштаб в мировые единицы.
		var dist float64
		if side == domain.SideVertical {
			dist = sideX - deltaX
		} else {
			dist = sideY - deltaY
		}
		dist *= unit

		if dist >= maxDist {
			return domain.RayHit{}, false
		}

		// Выход за сетку - неявная стена.
		if !w.InBounds(mapX, mapY) {
			return domain.RayHit{
				Distance: dist,
				Side:     side,
				Cell:     domain.Cell{X: mapX, Y: mapY},
			}, true
		}

		// Двери проходимы и для лучей, и для движения; рендер стены -
		// забота вызывающего, не этого слоя.
		if w.Cells[mapY][mapX] == domain.CellWall {
			return domain.RayHit{
				Distance: dist,
				Side:     side,
				Cell:     domain.Cell{X: mapX, Y: mapY},
			}, true
		}
	}

	return domain.RayHit{}, false
}

// IsBlocked проверяет, пересекает ли точка, раздутая на radius,
// хоть одну клетку-стену. Используется движением, не трассировкой.
func IsBlocked(w *domain.GridWorld, p domain.Vec2, radius float64) bool {
	lo := w.CellOf(domain.Vec2{X: p.X - radius, Y: p.Y - radius})
	hi := w.CellOf(domain.Vec2{X: p.X + radius, Y: p.Y + radius})

	for cy := lo.Y; cy <= hi.Y; cy++ {
		for cx := lo.X; cx <= hi.X; cx++ {
			if w.IsWallAt(cx, cy) {
				return true
			}
		}
	}
	return false
}

// HasLineOfSight проверяет прямую видимость между точками с допуском
// в полклетки: луч, уткнувшийся в угол чуть ближе цели, не должен
// давать ложный отказ.
func HasLineOfSight(w *domain.GridWorld, from, to domain.Vec2) bool {
	delta := to.Sub(from)
	dist := delta.Len()
	if dist < 1e-9 {
		return true
	}

	hit, ok := CastRay(w, from, delta, dist+w.CellUnit)
	if !ok {
		return true
	}
	return hit.Distance >= dist-0.5*w.CellUnit
}

func clampComponent(v float64) float64 {
	if math.Abs(v) < minDirComponent {
		return math.Copysign(minDirComponent, v)
	}
	return v
}
