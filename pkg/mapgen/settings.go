package mapgen

import "fmt"

// Settings - параметры генерации уровня. Обычная конфигурация без
// динамического поведения.
type Settings struct {
	MinRoomSize int     `yaml:"minRoomSize"`
	MaxRoomSize int     `yaml:"maxRoomSize"`
	RoomDensity float64 `yaml:"roomDensity"` // доля площади под комнаты, [0,1]

	// ExtraConnections - вероятность дополнительного коридора между
	// несоседними парами комнат.
	ExtraConnections float64 `yaml:"extraConnections"`

	CorridorWidth int `yaml:"corridorWidth"`

	// DecorationDensity - плотность декоративных стен, клеток на клетку
	// карты. Декорации ставятся только вплотную к существующим стенам.
	DecorationDensity float64 `yaml:"decorationDensity"`

	BoundaryWalls bool    `yaml:"boundaryWalls"`
	CellUnit      float64 `yaml:"cellUnit"`

	// PlacementAttempts - бюджет попыток размещения комнат.
	PlacementAttempts int `yaml:"placementAttempts"`
}

// DefaultSettings возвращает настройки по умолчанию.
func DefaultSettings() Settings {
	return Settings{
		MinRoomSize:       4,
		MaxRoomSize:       9,
		RoomDensity:       0.35,
		ExtraConnections:  0.15,
		CorridorWidth:     1,
		DecorationDensity: 0.01,
		BoundaryWalls:     true,
		CellUnit:          1.0,
		PlacementAttempts: 200,
	}
}

// ConfigurationError - недопустимые параметры генерации. Фатальна для
// этой попытки генерации: вызывающий обязан поправить настройки.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "mapgen: invalid configuration: " + e.Reason
}

// Validate проверяет настройки для сетки заданного размера.
func (s Settings) Validate(size int) error {
	if size < 2*s.MaxRoomSize {
		// Молчаливая вырожденная карта хуже явного отказа.
		return &ConfigurationError{Reason: fmt.Sprintf(
			"grid size %d is smaller than 2 x maxRoomSize (%d)", size, 2*s.MaxRoomSize)}
	}
	if s.MinRoomSize < 2 {
		return &ConfigurationError{Reason: "minRoomSize must be at least 2"}
	}
	if s.MinRoomSize > s.MaxRoomSize {
		return &ConfigurationError{Reason: "minRoomSize exceeds maxRoomSize"}
	}
	if s.RoomDensity < 0 || s.RoomDensity > 1 {
		return &ConfigurationError{Reason: "roomDensity outside [0,1]"}
	}
	if s.ExtraConnections < 0 || s.ExtraConnections > 1 {
		return &ConfigurationError{Reason: "extraConnections outside [0,1]"}
	}
	if s.CorridorWidth < 1 {
		return &ConfigurationError{Reason: "corridorWidth must be at least 1"}
	}
	if s.CellUnit <= 0 {
		return &ConfigurationError{Reason: "cellUnit must be positive"}
	}
	if s.PlacementAttempts < 1 {
		return &ConfigurationError{Reason: "placementAttempts must be at least 1"}
	}
	return nil
}
