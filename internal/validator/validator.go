package validator

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/eastworld-ai/eastworld/internal/config"
	"github.com/eastworld-ai/eastworld/internal/eastworld"
	"github.com/eastworld-ai/eastworld/internal/kami"
	"github.com/eastworld-ai/eastworld/internal/llm"
	"github.com/eastworld-ai/eastworld/internal/synapse"
)

// Validator coordinates observation rounds and on-chain state for a subnet.
type Validator struct {
	Kami      kami.KamiInterface
	Eastworld eastworld.ClientInterface
	LLM       llm.GeneratorInterface
	Dendrite  *synapse.Client

	// Chain global state
	LatestBlock   int64
	MetagraphData MetagraphData
	Hotkey        string
	ScoresData    ScoresData

	IntervalConfig *config.IntervalConfig
	Config         *config.AppConfig

	Ctx    context.Context
	Cancel context.CancelFunc
	Wg     sync.WaitGroup

	mu               sync.Mutex  // protects MetagraphData, LatestBlock, ScoresData, inactive
	inactive         map[int]inactivityState
	taskRoundRunning atomic.Bool
}

// NewValidator constructs a Validator with intervals based on environment and
// the score state reloaded from disk.
func NewValidator(
	cfg *config.AppConfig,
	k kami.KamiInterface,
	ew eastworld.ClientInterface,
	generator llm.GeneratorInterface,
	dendrite *synapse.Client,
) (*Validator, error) {
	intervalConfig := config.NewIntervalConfig(cfg.Environment)

	hotkey, err := kami.GetHotkey(k)
	if err != nil {
		return nil, fmt.Errorf("get validator hotkey: %w", err)
	}

	scoresData, err := loadScoresData(scoresFileName)
	if err != nil {
		return nil, fmt.Errorf("load scores: %w", err)
	}
	log.Info().Int("step", scoresData.Step).Int("uids", len(scoresData.Scores)).Msg("Loaded latest scores from file")

	ctx, cancel := context.WithCancel(context.Background())

	log.Info().Msgf("Validator hotkey %s loaded!", hotkey)

	return &Validator{
		Kami:      k,
		Eastworld: ew,
		LLM:       generator,
		Dendrite:  dendrite,

		LatestBlock:   0,
		MetagraphData: MetagraphData{},
		Hotkey:        hotkey,
		ScoresData:    scoresData,

		IntervalConfig: intervalConfig,
		Config:         cfg,

		Ctx:    ctx,
		Cancel: cancel,
		Wg:     sync.WaitGroup{},

		mu:       sync.Mutex{},
		inactive: make(map[int]inactivityState),
	}, nil
}

// runTicker runs a function periodically until the provided context is canceled.
// fn is executed in its own goroutine to ensure the ticker loop can exit quickly
// when the context is canceled.
func (v *Validator) runTicker(ctx context.Context, d time.Duration, fn func()) {
	defer v.Wg.Done()
	t := time.NewTicker(d)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			go fn()
		}
	}
}

// Start kicks off the periodic routines: metagraph and block sync, the
// observation task round, and weight emission.
func (v *Validator) Start() {
	v.syncMetagraph()
	v.syncBlock()

	v.Wg.Add(1)
	go v.runTicker(v.Ctx, v.IntervalConfig.TaskRoundInterval, func() {
		v.runTaskRound()
	})

	v.Wg.Add(1)
	go v.runTicker(v.Ctx, v.IntervalConfig.MetagraphInterval, func() {
		v.syncMetagraph()
	})

	v.Wg.Add(1)
	go v.runTicker(v.Ctx, v.IntervalConfig.BlockInterval, func() {
		v.syncBlock()
	})
}

// Stop cancels background routines and waits for them to finish.
func (v *Validator) Stop() {
	if v.Cancel != nil {
		v.Cancel()
	}
	v.Wg.Wait()
}

func (v *Validator) syncMetagraph() {
	log.Info().Msgf("syncing metagraph data for subnet: %d", v.Config.Netuid)

	newMetagraph, err := v.Kami.GetMetagraph(v.Config.Netuid)
	if err != nil {
		log.Error().Err(err).Msg("failed to get metagraph")
		return
	}

	serving := 0
	for _, axon := range newMetagraph.Data.Axons {
		if axon.IsServing() {
			serving++
		}
	}
	log.Info().Msgf("Metagraph synced. %d uids, %d serving axons", len(newMetagraph.Data.Hotkeys), serving)

	v.mu.Lock()
	defer v.mu.Unlock()

	v.MetagraphData.Metagraph = newMetagraph.Data
}

func (v *Validator) syncBlock() {
	newBlockResp, err := v.Kami.GetLatestBlock()
	if err != nil {
		log.Error().Err(err).Msg("failed to get latest block")
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()

	v.LatestBlock = int64(newBlockResp.Data.BlockNumber)
}

// metagraphSnapshot returns a copy of the current metagraph under lock.
func (v *Validator) metagraphSnapshot() kami.SubnetMetagraph {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.MetagraphData.Metagraph
}
