package domain

import "fmt"

// AttackStyle выбирает стратегию разрешения атаки архетипа.
// Вместо наследования - маленький enum плюс неизменяемая таблица статов.
type AttackStyle uint8

const (
	AttackMelee AttackStyle = iota
	AttackRanged
)

func (a AttackStyle) String() string {
	if a == AttackRanged {
		return "ranged"
	}
	return "melee"
}

// Archetype - неизменяемый шаблон статов, общий для всех врагов
// одного типа. Копируется во врага при создании и дальше не меняется.
type Archetype struct {
	ID   string
	Name string

	MaxHealth float64
	Damage    float64

	SightRange   float64
	HearingRange float64
	AttackRange  float64

	MoveSpeed float64 // мировых единиц в секунду
	TurnSpeed float64 // радиан в секунду
	Radius    float64

	// Intelligence и Aggressiveness - коэффициенты [0,1].
	// Intelligence сокращает случайность обхода препятствий,
	// Aggressiveness ускоряет преследование и повышает шанс патруля.
	Intelligence   float64
	Aggressiveness float64

	StunThreshold  float64 // урон за удар, с которого враг оглушается
	AttackCooldown float64 // секунд между атаками

	Style AttackStyle

	// Tier - минимальный уровень сложности, с которого архетип
	// участвует в спавне. Weight - вес при взвешенном выборе.
	Tier   float64
	Weight int
}

// Validate проверяет, что таблица статов пригодна для симуляции.
func (a Archetype) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("archetype without id")
	}
	if a.MaxHealth <= 0 {
		return fmt.Errorf("archetype %q: maxHealth must be positive", a.ID)
	}
	if a.MoveSpeed < 0 || a.TurnSpeed < 0 {
		return fmt.Errorf("archetype %q: negative speed", a.ID)
	}
	if a.Intelligence < 0 || a.Intelligence > 1 {
		return fmt.Errorf("archetype %q: intelligence outside [0,1]", a.ID)
	}
	if a.Aggressiveness < 0 || a.Aggressiveness > 1 {
		return fmt.Errorf("archetype %q: aggressiveness outside [0,1]", a.ID)
	}
	if a.Weight <= 0 {
		return fmt.Errorf("archetype %q: weight must be positive", a.ID)
	}
	return nil
}

// DefaultArchetypes - встроенная таблица врагов. Используется, когда
// внешний YAML не задан.
func DefaultArchetypes() []Archetype {
	return []Archetype{
		{
			ID: "shambler", Name: "Шаркун",
			MaxHealth: 30, Damage: 8,
			SightRange: 9, HearingRange: 5, AttackRange: 1.1,
			MoveSpeed: 1.6, TurnSpeed: 2.5, Radius: 0.3,
			Intelligence: 0.2, Aggressiveness: 0.4,
			StunThreshold: 15, AttackCooldown: 1.2,
			Style: AttackMelee,
			Tier:  1, Weight: 6,
		},
		{
			ID: "stalker", Name: "Ловчий",
			MaxHealth: 45, Damage: 12,
			SightRange: 12, HearingRange: 8, AttackRange: 1.2,
			MoveSpeed: 2.6, TurnSpeed: 4.0, Radius: 0.28,
			Intelligence: 0.7, Aggressiveness: 0.7,
			StunThreshold: 20, AttackCooldown: 0.9,
			Style: AttackMelee,
			Tier:  1.5, Weight: 3,
		},
		{
			ID: "warden", Name: "Страж",
			MaxHealth: 90, Damage: 18,
			SightRange: 11, HearingRange: 6, AttackRange: 6.0,
			MoveSpeed: 1.2, TurnSpeed: 1.8, Radius: 0.38,
			Intelligence: 0.5, Aggressiveness: 0.9,
			StunThreshold: 35, AttackCooldown: 2.0,
			Style: AttackRanged,
			Tier:  2.5, Weight: 1,
		},
	}
}
