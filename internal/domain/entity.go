package domain

// EntityKind - тег варианта сущности. Вместо утиной типизации с
// общими ad-hoc полями каждый вариант несет только свои данные.
type EntityKind uint8

const (
	KindEnemy EntityKind = iota
	KindPickup
)

// PickupKind - тип подбираемого предмета.
type PickupKind uint8

const (
	PickupHealth PickupKind = iota
	PickupAmmo
)

func (p PickupKind) String() string {
	if p == PickupAmmo {
		return "AMMO"
	}
	return "HEALTH"
}

// Pickup - лежащий на полу предмет. Не двигается, не имеет ИИ.
type Pickup struct {
	ID     string     `json:"id"`
	Kind   PickupKind `json:"kind"`
	Pos    Vec2       `json:"pos"`
	Amount float64    `json:"amount"`
	Radius float64    `json:"radius"`
}

// Entity - тегированное объединение всех сущностей уровня.
// Заполнен ровно один вариантный указатель в соответствии с Kind.
type Entity struct {
	Kind   EntityKind
	Enemy  *Enemy
	Pickup *Pickup
}

// Pos возвращает позицию сущности независимо от варианта.
func (e *Entity) Pos() Vec2 {
	switch e.Kind {
	case KindEnemy:
		return e.Enemy.Pos
	case KindPickup:
		return e.Pickup.Pos
	}
	return Vec2{}
}
