package domain

// EnemyState - состояние конечного автомата врага.
// В каждый момент активно ровно одно.
type EnemyState uint8

const (
	StateIdle EnemyState = iota
	StatePatrol
	StateChase
	StateAttack
	StateStunned
	StateDead
)

var stateNames = map[EnemyState]string{
	StateIdle:    "IDLE",
	StatePatrol:  "PATROL",
	StateChase:   "CHASE",
	StateAttack:  "ATTACK",
	StateStunned: "STUNNED",
	StateDead:    "DEAD",
}

func (s EnemyState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}
