package api

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand - команда от клиента (рендерера/хоста ввода).
// Ядро не разбирает сырые устройства ввода: клиент присылает уже
// нормализованное намерение движения и дискретные флаги действий.
type ClientCommand struct {
	// Type тип команды: "INIT", "INTENT" или "RESTART".
	Type string `json:"type"`

	// Token идентификатор сессии клиента. Проставляется сервером
	// после рукопожатия, присланное клиентом значение игнорируется.
	Token string `json:"token,omitempty"`

	// Intent присутствует только для Type == "INTENT".
	Intent *IntentPayload `json:"intent,omitempty"`
}

// IntentPayload - покадровое намерение игрока. Оси уже нормализованы
// клиентом (deadzone применен, диапазон [-1, 1]).
type IntentPayload struct {
	// MoveForward и MoveStrafe - желаемое движение относительно
	// направления взгляда.
	MoveForward float64 `json:"moveForward"`
	MoveStrafe  float64 `json:"moveStrafe"`

	// Turn - желаемая скорость поворота, [-1, 1].
	Turn float64 `json:"turn"`

	// Pitch - вертикальный угол камеры. Только для рендера,
	// в физике не участвует.
	Pitch float64 `json:"pitch"`

	Fire   bool `json:"fire"`
	Reload bool `json:"reload"`
}

// --- СЕРВЕР -> КЛИЕНТ ---

// StateFrame - снимок состояния симуляции на один тик.
// INIT-кадр дополнительно несет сетку целиком (карта после генерации
// не мутируется, повторять её в каждом кадре незачем).
type StateFrame struct {
	Type string `json:"type"` // "INIT" или "UPDATE"

	Tick uint64  `json:"tick"`
	Time float64 `json:"time"` // симуляционное время, секунды

	Level      int     `json:"level"`
	Difficulty float64 `json:"difficulty"`

	// Grid и Cells заполняются только в INIT-кадре.
	Grid  *GridMeta `json:"grid,omitempty"`
	Cells [][]uint8 `json:"cells,omitempty"`

	Camera   CameraView   `json:"camera"`
	Player   PlayerView   `json:"player"`
	Entities []EntityView `json:"entities,omitempty"`

	// Events - события, накопленные с прошлого кадра (звук, UI).
	Events []EventView `json:"events,omitempty"`
}

// GridMeta - размеры мира для подготовки рендера.
type GridMeta struct {
	Size     int     `json:"size"`
	CellUnit float64 `json:"cellUnit"`
}

// Vec2View - 2D-точка в DTO.
type Vec2View struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CameraView - поза камеры: позиция, направление взгляда и вектор
// плоскости проекции для построения лучей по колонкам экрана.
type CameraView struct {
	Pos   Vec2View `json:"pos"`
	Dir   Vec2View `json:"dir"`
	Plane Vec2View `json:"plane"`
	Pitch float64  `json:"pitch"`
}

// PlayerView - видимые клиенту характеристики игрока.
type PlayerView struct {
	Health    float64 `json:"health"`
	MaxHealth float64 `json:"maxHealth"`
	Ammo      int     `json:"ammo"`
	ClipSize  int     `json:"clipSize"`
	Reloading bool    `json:"reloading"`
	Dead      bool    `json:"dead"`
}

// EntityView - DTO сущности для размещения спрайтов.
type EntityView struct {
	ID   string `json:"id"`
	Kind string `json:"kind"` // "ENEMY" или "PICKUP"

	Pos Vec2View `json:"pos"`
	Dir Vec2View `json:"dir"`

	// Archetype и State заполняются для врагов.
	Archetype string `json:"archetype,omitempty"`
	State     string `json:"state,omitempty"`

	// PickupKind заполняется для предметов.
	PickupKind string `json:"pickupKind,omitempty"`
}

// EventView - событие симуляции в DTO.
type EventView struct {
	Type     string   `json:"type"`
	EntityID string   `json:"entityId,omitempty"`
	Pos      Vec2View `json:"pos"`
	Amount   float64  `json:"amount,omitempty"`
}
