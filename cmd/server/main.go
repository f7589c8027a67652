package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gloomgrid-server/internal/engine"
	"gloomgrid-server/internal/network"
	"gloomgrid-server/internal/server"
	"gloomgrid-server/internal/version"
	"gloomgrid-server/pkg/logger"
	"gloomgrid-server/pkg/utils"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var seed int64
	var seedPhrase string
	var gridSize int
	var archetypesPath string
	// Читаем флаг -seed. По умолчанию 0 (значит сгенерировать случайно).
	flag.Int64Var(&seed, "seed", 0, "Master world seed (0 for random)")
	flag.StringVar(&seedPhrase, "seed-phrase", "", "Derive the master seed from a phrase (overrides -seed)")
	flag.IntVar(&gridSize, "size", 0, "Grid side in cells (0 for default)")
	flag.StringVar(&archetypesPath, "archetypes", "", "Path to YAML enemy archetypes (empty for built-in)")
	flag.Parse()

	if seedPhrase != "" {
		seed = utils.StringToSeed(seedPhrase)
	}

	logger.Log.Info("Starting GloomGrid...")
	logger.Log.Info(version.String())

	// Формируем конфиг
	cfg := engine.NewConfig()
	if seed != 0 {
		cfg.Seed = seed
		logger.Log.Infof("🎲 Using explicit Master Seed: %d", seed)
	} else {
		logger.Log.Infof("🎲 Using random Master Seed: %d", cfg.Seed)
	}
	if gridSize != 0 {
		cfg.GridSize = gridSize
	}
	cfg.ArchetypesPath = archetypesPath

	archetypes, err := engine.LoadArchetypes(cfg.ArchetypesPath)
	if err != nil {
		logger.Log.Fatal("Failed to load archetypes: ", err)
	}

	port := os.Getenv("GG_PORT")
	if port == "" {
		port = "8080"
	}

	// 2. Инициализация ядра
	session, err := engine.NewSession(cfg, archetypes)
	if err != nil {
		logger.Log.Fatal("Failed to build session: ", err)
	}

	hub := network.NewBroadcaster()
	loop := engine.NewLoop(session, hub)

	ctx, cancel := context.WithCancel(context.Background())
	go loop.Run(ctx)

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 3. Запуск сервера
	srv := server.New(hub, loop.Commands(), ":"+port)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error: ", err)
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Warn("HTTP shutdown was not clean")
	}

	logger.Log.Info("Done.")
}
