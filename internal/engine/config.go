package engine

import (
	"time"

	"gloomgrid-server/internal/systems"
	"gloomgrid-server/pkg/mapgen"
)

// Config хранит параметры запуска симуляции
type Config struct {
	// Seed - мастер-зерно. От него зависят все уровни:
	// Level N Seed = MasterSeed + N
	Seed int64

	// GridSize - сторона квадратной карты в клетках.
	GridSize int

	// Map - настройки генератора уровня.
	Map mapgen.Settings

	// TickRate - частота симуляции, тиков в секунду.
	TickRate int

	// MaxDT - потолок дельты времени на один шаг, секунды.
	// Защищает от телепортаций после пауз и GC-пиков.
	MaxDT float64

	Player   PlayerConfig
	Weapon   WeaponConfig
	AI       systems.Tuning
	Director DirectorConfig

	// KillsToAdvance - сколько убийств на уровне открывает переход
	// на следующий.
	KillsToAdvance int

	// ArchetypesPath - путь к YAML с архетипами врагов.
	// Пустая строка означает встроенный набор.
	ArchetypesPath string
}

// PlayerConfig - характеристики игрока и его движения.
type PlayerConfig struct {
	MoveSpeed float64 // мировых единиц в секунду
	TurnSpeed float64 // радиан в секунду при Turn = ±1
	Radius    float64
	MaxHealth float64
}

// WeaponConfig - параметры хитскан-оружия игрока.
type WeaponConfig struct {
	Damage     float64
	Range      float64 // мировых единиц
	BeamRadius float64 // полуширина луча для попадания по спрайтам
	ClipSize   int
	Cooldown   float64 // секунд между выстрелами
	ReloadTime float64 // секунд
}

// DirectorConfig - параметры режиссера популяции врагов.
type DirectorConfig struct {
	// SpawnInterval - базовый интервал между попытками спавна, секунды.
	// Эффективный интервал делится на текущую сложность.
	SpawnInterval float64

	// BaseSpawnChance - базовый шанс успеха попытки, умножается
	// на сложность и обрезается единицей.
	BaseSpawnChance float64

	MaxEnemies int

	// MinSpawnDistance - минимальная дистанция от игрока до точки
	// спавна, мировых единиц.
	MinSpawnDistance float64

	// ActiveRadius - дальше этого радиуса ИИ врага не обновляется.
	ActiveRadius float64

	// CorpseGracePeriod - сколько секунд труп остается в мире.
	CorpseGracePeriod float64

	// SeparationStrength - сила расталкивания пересекающихся врагов,
	// мировых единиц в секунду.
	SeparationStrength float64

	// DifficultyPerKill и DifficultyPerMinute задают монотонный
	// рост сложности. Сложность никогда не убывает.
	DifficultyPerKill   float64
	DifficultyPerMinute float64
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:     time.Now().UnixNano(),
		GridSize: 48,
		Map:      mapgen.DefaultSettings(),
		TickRate: 30,
		MaxDT:    0.1,
		Player: PlayerConfig{
			MoveSpeed: 3.5,
			TurnSpeed: 2.6,
			Radius:    0.3,
			MaxHealth: 100,
		},
		Weapon: WeaponConfig{
			Damage:     25,
			Range:      20,
			BeamRadius: 0.2,
			ClipSize:   8,
			Cooldown:   0.45,
			ReloadTime: 1.6,
		},
		AI:             systems.DefaultTuning(),
		KillsToAdvance: 10,
		Director: DirectorConfig{
			SpawnInterval:       8.0,
			BaseSpawnChance:     0.6,
			MaxEnemies:          12,
			MinSpawnDistance:    6.0,
			ActiveRadius:        18.0,
			CorpseGracePeriod:   10.0,
			SeparationStrength:  1.5,
			DifficultyPerKill:   0.05,
			DifficultyPerMinute: 0.1,
		},
	}
}
