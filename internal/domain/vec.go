package domain

import "math"

// Vec2 - точка или вектор в мировых координатах.
// Ось X направлена вправо, ось Y - вниз (как строки сетки).
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }
func (v Vec2) Scale(k float64) Vec2 { return Vec2{X: v.X * k, Y: v.Y * k} }
func (v Vec2) Dot(o Vec2) float64   { return v.X*o.X + v.Y*o.Y }

func (v Vec2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// DistanceTo возвращает расстояние до другой точки.
func (v Vec2) DistanceTo(o Vec2) float64 {
	return v.Sub(o).Len()
}

// NormalizeOr возвращает единичный вектор того же направления.
// Для вектора почти нулевой длины возвращает fallback - это ожидаемый
// численный краевой случай, а не ошибка.
func (v Vec2) NormalizeOr(fallback Vec2) Vec2 {
	l := v.Len()
	if l < 1e-9 {
		return fallback
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Angle возвращает угол вектора в радианах (atan2).
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// VecFromAngle строит единичный вектор по углу.
func VecFromAngle(a float64) Vec2 {
	return Vec2{X: math.Cos(a), Y: math.Sin(a)}
}

// Perp возвращает перпендикуляр (поворот на 90 градусов по часовой).
func (v Vec2) Perp() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// NormalizeAngle приводит угол к диапазону [-pi, pi].
// Нужен для поворота по кратчайшей дуге.
func NormalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
