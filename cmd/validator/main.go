package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/eastworld-ai/eastworld/internal/config"
	"github.com/eastworld-ai/eastworld/internal/eastworld"
	"github.com/eastworld-ai/eastworld/internal/kami"
	"github.com/eastworld-ai/eastworld/internal/llm"
	"github.com/eastworld-ai/eastworld/internal/synapse"
	"github.com/eastworld-ai/eastworld/internal/utils/logger"
	"github.com/eastworld-ai/eastworld/internal/validator"
	"github.com/eastworld-ai/eastworld/pkg/signature"
)

func main() {
	logger.Init()
	log.Info().Msg("Starting validator...")

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

	keypair, err := signature.LoadKeypairFromHotkey(cfg.WalletColdkey, cfg.WalletHotkey)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load wallet hotkey")
	}
	signer, err := signature.NewSigner(keypair)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init signer")
	}

	ew, err := eastworld.NewClient(&cfg.EastworldEnvConfig, signer)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init eastworld client")
	}

	generator, err := llm.NewClient(&cfg.LLMEnvConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init llm client")
	}

	dendrite := synapse.NewClient(synapse.Config{
		ClientTimeout: cfg.ForwardTimeout,
		RetryMax:      2,
		RetryWait:     1 * time.Second,
	}, signer)

	v, err := validator.NewValidator(cfg, k, ew, generator, dendrite)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init validator")
	}

	// setup signal handling for graceful shutdown before starting validator
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// listen for shutdown signal in a separate goroutine so we can start the validator
	go func() {
		<-sigChan
		log.Info().Msg("shutdown signal received, stopping validator")
		v.Stop()
	}()

	v.Start()

	// wait until validator context is cancelled (v.Stop will call Cancel())
	<-v.Ctx.Done()
	log.Info().Msg("validator stopped")
}
