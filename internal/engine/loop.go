package engine

import (
	"context"
	"time"

	"gloomgrid-server/internal/network"
	"gloomgrid-server/pkg/api"
	"gloomgrid-server/pkg/logger"
)

// Loop - единственная горутина, владеющая сессией. Ввод приходит
// только через канал команд, состояние наружу уходит только готовыми
// кадрами через Broadcaster. Блокировок на состоянии симуляции нет.
type Loop struct {
	session *SimulationSession
	hub     *network.Broadcaster

	commands chan api.ClientCommand

	// intent - защелка удержания: осевой ввод действует, пока клиент
	// не пришлет новое намерение.
	intent api.IntentPayload

	// fire/reload срабатывают по фронту: один раз на команду,
	// сбрасываются после шага вне зависимости от удержания.
	firePending   bool
	reloadPending bool

	// pendingInit - клиенты, ожидающие INIT-кадр с полной сеткой.
	pendingInit []string
}

func NewLoop(session *SimulationSession, hub *network.Broadcaster) *Loop {
	return &Loop{
		session:  session,
		hub:      hub,
		commands: make(chan api.ClientCommand, 64),
	}
}

// Commands - канал для подачи команд из сетевого слоя.
func (l *Loop) Commands() chan<- api.ClientCommand {
	return l.commands
}

// Run крутит симуляцию до отмены контекста. Дельта времени берется
// из реальных часов, а не из номинала тикера, и обрезается внутри
// Update: после паузы мир догоняет одним ограниченным шагом.
func (l *Loop) Run(ctx context.Context) {
	interval := time.Second / time.Duration(l.session.Cfg.TickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	logger.Log.WithField("tickRate", l.session.Cfg.TickRate).Info("Simulation loop started")

	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("Simulation loop stopped")
			return

		case cmd := <-l.commands:
			l.applyCommand(cmd)

		case now := <-ticker.C:
			// Добираем команды, пришедшие за время сна тикера.
			l.drainCommands()

			dt := now.Sub(last).Seconds()
			last = now

			l.step(dt)
		}
	}
}

func (l *Loop) drainCommands() {
	for {
		select {
		case cmd := <-l.commands:
			l.applyCommand(cmd)
		default:
			return
		}
	}
}

func (l *Loop) applyCommand(cmd api.ClientCommand) {
	switch cmd.Type {
	case "INIT":
		l.pendingInit = append(l.pendingInit, cmd.Token)

	case "INTENT":
		if cmd.Intent == nil {
			return
		}
		l.intent = *cmd.Intent
		if cmd.Intent.Fire {
			l.firePending = true
		}
		if cmd.Intent.Reload {
			l.reloadPending = true
		}

	case "RESTART":
		if err := l.session.Restart(); err != nil {
			logger.Log.WithError(err).Error("Session restart failed")
		}

	default:
		logger.Log.WithField("type", cmd.Type).Warn("Unknown client command")
	}
}

func (l *Loop) step(dt float64) {
	intent := l.intent
	intent.Fire = l.firePending
	intent.Reload = l.reloadPending
	l.firePending = false
	l.reloadPending = false

	l.session.Update(dt, intent)

	if len(l.pendingInit) > 0 {
		// Новички получают кадр с полной сеткой, остальные тот же
		// кадр без нее. События кадра дренируются один раз.
		frame := l.session.BuildFrame(true)
		for _, token := range l.pendingInit {
			l.hub.SendTo(token, frame)
		}
		l.pendingInit = l.pendingInit[:0]

		update := *frame
		update.Type = "UPDATE"
		update.Grid = nil
		update.Cells = nil
		l.hub.Broadcast(&update)
		return
	}
	l.hub.Broadcast(l.session.BuildFrame(false))
}
