package server

import (
	"context"
	"encoding/json"
	"net/http"
	_ "net/http/pprof" // Profiling

	"gloomgrid-server/internal/network"
	"gloomgrid-server/internal/version"
	"gloomgrid-server/pkg/api"
	"gloomgrid-server/pkg/logger"
)

type Server struct {
	Hub      *network.Broadcaster
	Commands chan<- api.ClientCommand
	Addr     string

	httpServer *http.Server
}

func New(hub *network.Broadcaster, commands chan<- api.ClientCommand, addr string) *Server {
	return &Server{
		Hub:      hub,
		Commands: commands,
		Addr:     addr,
	}
}

// Run запускает HTTP сервер
func (s *Server) Run() error {
	mux := http.DefaultServeMux

	// Регистрируем роуты
	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))

	s.httpServer = &http.Server{Addr: s.Addr, Handler: mux}

	logger.Log.Infof("🎯 GloomGrid Server running on %s", s.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown аккуратно гасит HTTP сервер.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Разрешаем запросы с фронтенда
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next(w, r)
	}
}

// handleWS обрабатывает подключение по WebSocket
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Error("Upgrade error:", err)
		return
	}

	client := NewClient(s.Hub, s.Commands, conn)

	// Запускаем пампы
	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(version.Info())
}
