package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/eastworld-ai/eastworld/internal/config"
	"github.com/eastworld-ai/eastworld/internal/kami"
	"github.com/eastworld-ai/eastworld/internal/miner"
	"github.com/eastworld-ai/eastworld/internal/utils/logger"
)

func main() {
	logger.Init()
	log.Info().Msg("Starting miner...")

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env not loaded; continuing with existing environment")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load environment configuration")
	}

	k, err := kami.NewKami(&cfg.KamiEnvConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init kami client")
	}

	m, err := miner.NewMiner(cfg, k)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init miner")
	}

	if err := m.Run(); err != nil {
		log.Fatal().Err(err).Msg("failed to start miner")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	log.Info().Msg("Miner is running. Press Ctrl+C to shutdown...")
	<-sigChan
	log.Info().Msg("Shutdown signal received, gracefully shutting down...")

	m.Stop()
	log.Info().Msg("Miner shutdown complete")
}
