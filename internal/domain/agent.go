package domain

// Agent - общая физическая форма игрока и врага: позиция, скорость,
// направление взгляда и радиус коллизии. Скорость пересчитывается
// каждый тик из намерения, инерция между тиками не накапливается
// (кроме коротких импульсов расталкивания врагов).
type Agent struct {
	Pos    Vec2    `json:"pos"`
	Vel    Vec2    `json:"vel"`
	Dir    Vec2    `json:"dir"` // единичный вектор
	Radius float64 `json:"radius"`
}

// Speed возвращает текущую скорость (длину вектора скорости).
// Используется слухом врагов: кто быстрее, тот шумнее.
func (a *Agent) Speed() float64 {
	return a.Vel.Len()
}

// Player - игрок: агент плюс боевые ресурсы. Вертикальный угол камеры
// (Pitch) существует только для рендера и в физике не участвует.
type Player struct {
	Agent

	Health    float64 `json:"health"`
	MaxHealth float64 `json:"maxHealth"`

	Ammo     int `json:"ammo"`
	ClipSize int `json:"clipSize"`

	Pitch float64 `json:"pitch"`

	// FireReadyAt / ReloadDoneAt - таймеры в симуляционном времени.
	FireReadyAt  float64 `json:"-"`
	ReloadDoneAt float64 `json:"-"`
	Reloading    bool    `json:"-"`

	Dead bool `json:"dead"`
}
