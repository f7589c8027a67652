package domain

// RaySide - ось, которую луч пересек последней. Нужна рендереру
// для выбора яркости/ориентации текстуры стены.
type RaySide uint8

const (
	// SideVertical - пересечена вертикальная линия сетки (шаг по X).
	SideVertical RaySide = iota
	// SideHorizontal - пересечена горизонтальная линия сетки (шаг по Y).
	SideHorizontal
)

// RayHit - результат трассировки луча. Значение создается на каждый
// запрос заново и нигде не хранится.
type RayHit struct {
	Distance float64 `json:"distance"` // мировое расстояние до препятствия
	Side     RaySide `json:"side"`
	Cell     Cell    `json:"cell"`
}
