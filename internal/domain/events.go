package domain

// EventType - тип события симуляции для внешних подсистем (звук, UI).
// Ядро никогда не блокируется на доставке: события складываются в
// очередь и выгребаются хостом раз в тик.
type EventType string

const (
	EventEnemyAlerted   EventType = "ENEMY_ALERTED"
	EventEnemyDamaged   EventType = "ENEMY_DAMAGED"
	EventEnemyDied      EventType = "ENEMY_DIED"
	EventPlayerDamaged  EventType = "PLAYER_DAMAGED"
	EventPlayerDied     EventType = "PLAYER_DIED"
	EventPickupTaken    EventType = "PICKUP_TAKEN"
	EventWeaponFired    EventType = "WEAPON_FIRED"
	EventWeaponReloaded EventType = "WEAPON_RELOADED"
	EventLevelStarted   EventType = "LEVEL_STARTED"

	// EventWorldRecovered - поиск свободных клеток не нашел ничего и
	// сработала резервная решетка. Предупреждение, не ошибка.
	EventWorldRecovered EventType = "WORLD_RECOVERED"
)

// SimEvent - плоское значение-событие. Никаких колбеков в код
// рендера/аудио из ядра.
type SimEvent struct {
	Type     EventType `json:"type"`
	EntityID string    `json:"entityId,omitempty"`
	Pos      Vec2      `json:"pos"`
	Amount   float64   `json:"amount,omitempty"`
}

// EventQueue - очередь событий одного тика.
type EventQueue struct {
	events []SimEvent
}

// Push добавляет событие в очередь.
func (q *EventQueue) Push(e SimEvent) {
	q.events = append(q.events, e)
}

// Drain возвращает накопленные события и очищает очередь.
func (q *EventQueue) Drain() []SimEvent {
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}

// Len возвращает число накопленных событий.
func (q *EventQueue) Len() int {
	return len(q.events)
}
