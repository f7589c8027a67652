package network

import (
	"sync"

	"gloomgrid-server/pkg/api"
)

// Broadcaster занимается только рассылкой кадров подписчикам
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: ClientID -> Личный канал
	subscribers map[string]chan *api.StateFrame
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan *api.StateFrame),
	}
}

// Register создает личный канал для клиента
func (b *Broadcaster) Register(clientID string) chan *api.StateFrame {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем
	if old, ok := b.subscribers[clientID]; ok {
		close(old)
	}

	ch := make(chan *api.StateFrame, 16)
	b.subscribers[clientID] = ch
	return ch
}

// Unregister удаляет подписчика
func (b *Broadcaster) Unregister(clientID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[clientID]; ok {
		close(ch)
		delete(b.subscribers, clientID)
	}
}

// SendTo отправляет кадр конкретному клиенту (Unicast)
func (b *Broadcaster) SendTo(clientID string, frame *api.StateFrame) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if ch, ok := b.subscribers[clientID]; ok {
		select {
		case ch <- frame:
		default:
			// Медленный клиент теряет кадр, а не тормозит симуляцию.
		}
	}
}

// Broadcast отправляет кадр всем подписчикам
func (b *Broadcaster) Broadcast(frame *api.StateFrame) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- frame:
		default:
		}
	}
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
