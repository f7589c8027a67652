package domain

// Enemy - враг: агент (композиция, не наследование) плюс статы
// архетипа и состояние конечного автомата.
type Enemy struct {
	ID string `json:"id"`

	Agent
	Archetype Archetype `json:"-"`

	Health float64    `json:"health"`
	State  EnemyState `json:"-"`

	// LastKnownTargetPos - последняя точка, где цель была замечена.
	// nil, когда цель считается потерянной.
	LastKnownTargetPos *Vec2 `json:"-"`

	// PatrolTarget - текущая точка патрулирования.
	PatrolTarget    Vec2 `json:"-"`
	HasPatrolTarget bool `json:"-"`

	// Таймеры конечного автомата - симуляционное время, не таймеры
	// планировщика.
	StateEnteredAt float64 `json:"-"`
	NextCheckAt    float64 `json:"-"`
	LastSensedAt   float64 `json:"-"`
	AttackReadyAt  float64 `json:"-"`
	DiedAt         float64 `json:"-"`

	// Alerted - знал ли враг о цели хоть раз. Урон по неалертованному
	// врагу мгновенно переводит его в погоню.
	Alerted bool `json:"-"`
}

// NewEnemy создает врага из архетипа в указанной точке.
func NewEnemy(id string, arch Archetype, pos Vec2, now float64) *Enemy {
	return &Enemy{
		ID: id,
		Agent: Agent{
			Pos:    pos,
			Dir:    Vec2{X: 1, Y: 0},
			Radius: arch.Radius,
		},
		Archetype:      arch,
		Health:         arch.MaxHealth,
		State:          StateIdle,
		StateEnteredAt: now,
	}
}

// EnterState переводит автомат в новое состояние и ставит таймеры.
func (e *Enemy) EnterState(s EnemyState, now float64) {
	e.State = s
	e.StateEnteredAt = now
	e.NextCheckAt = now
	if s == StateDead {
		e.DiedAt = now
		e.Vel = Vec2{}
	}
}

// TimeInState возвращает, сколько симуляционного времени враг
// находится в текущем состоянии.
func (e *Enemy) TimeInState(now float64) float64 {
	return now - e.StateEnteredAt
}

// Dead - мертв ли враг (терминальное состояние).
func (e *Enemy) Dead() bool {
	return e.State == StateDead
}
