package validator

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/eastworld-ai/eastworld/internal/eastworld"
	"github.com/eastworld-ai/eastworld/internal/perception"
	"github.com/eastworld-ai/eastworld/internal/synapse"
	"github.com/eastworld-ai/eastworld/internal/utils/chainutils"
)

// runTaskRound fans out the configured number of concurrent forward passes,
// waits for all of them, then syncs scores and emits weights when due.
// Overlapping rounds are collapsed by the atomic guard.
func (v *Validator) runTaskRound() {
	if !v.taskRoundRunning.CompareAndSwap(false, true) {
		return
	}
	defer v.taskRoundRunning.Store(false)

	if len(v.metagraphSnapshot().Hotkeys) == 0 {
		log.Info().Msg("metagraph not synced yet, skipping task round")
		return
	}

	forwards := v.Config.NumConcurrentForwards
	if forwards < 1 {
		forwards = 1
	}

	var wg sync.WaitGroup
	for i := 0; i < forwards; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v.forward(v.Ctx)
		}()
	}
	wg.Wait()

	if err := v.syncScores(); err != nil {
		log.Error().Err(err).Msg("failed to sync scores")
		return
	}
	v.setWeights()
}

// forward runs a single observation cycle: fetch the next pending observation,
// build the synapse, query the selected miner, and submit its action back.
// Error paths pause briefly so a failing upstream is not hammered.
func (v *Validator) forward(ctx context.Context) {
	res, err := v.Eastworld.GetObservation()
	if err != nil {
		if isConnectError(err) {
			log.Error().Err(err).Msg("Failed to connect to Eastworld server. Retry after 60s.")
			sleepCtx(ctx, 60*time.Second)
			return
		}
		log.Error().Err(err).Msg("No response from Eastworld API.")
		sleepCtx(ctx, 30*time.Second)
		return
	}

	switch {
	case res.Code == eastworld.CodeRateLimited:
		log.Info().Msg("The next turn is not available yet. Wait for 15s.")
		sleepCtx(ctx, 15*time.Second)
		return
	case res.Code != eastworld.CodeOK:
		log.Error().Int("code", res.Code).Str("message", res.Message).Msg("Failed to get observation from Eastworld.")
		sleepCtx(ctx, 30*time.Second)
		return
	}

	metagraph := v.metagraphSnapshot()
	if !chainutils.CheckUIDAvailability(&metagraph, res.UID, v.Config.VpermitTaoLimit) {
		log.Info().Msgf("UID %d from API is not available for mining.", res.UID)
		sleepCtx(ctx, 1*time.Second)
		return
	}
	if res.Key != metagraph.Hotkeys[res.UID] {
		log.Info().Msgf("UID %d hotkey mismatch API:%s Metagraph:%s", res.UID, res.Key, metagraph.Hotkeys[res.UID])
		sleepCtx(ctx, 5*time.Second)
		return
	}

	if v.trackingInactivity() && v.skipInactive(res.UID) {
		log.Info().Msgf("Skip for inactive miner #%d.", res.UID)
		return
	}

	if res.Context == nil {
		log.Error().Msg("No context from Eastworld API.")
		return
	}

	axon := metagraph.Axons[res.UID]
	log.Info().Msgf("Selected miner UID %d AXON %s:%d", res.UID, axon.IP, axon.Port)

	ob := v.createSynapse(ctx, res.Context)

	queryCtx, cancel := context.WithTimeout(ctx, v.Config.ForwardTimeout)
	defer cancel()

	axonURL := fmt.Sprintf("http://%s:%d/observation", axon.IP, axon.Port)
	reply, err := v.Dendrite.QueryMiner(queryCtx, axonURL, ob)
	failed := err != nil || reply.IsEmpty()

	if v.trackingInactivity() {
		if failed {
			interval := v.markInactive(res.UID)
			log.Info().Msgf("Inactive miner #%d. Skip for %.0f seconds.", res.UID, interval.Seconds())
		} else {
			v.clearInactive(res.UID)
		}
	}

	if failed {
		log.Warn().Err(err).Msgf("Failed to get action from miner #%d.", res.UID)
		return
	}

	if err := v.Eastworld.SubmitAction(res.Turns, res.UID, res.Key, reply.Action); err != nil {
		log.Error().Err(err).Msgf("Failed to submit action (%d) to Eastworld server.", res.UID)
		sleepCtx(ctx, 10*time.Second)
		return
	}
	log.Info().Msgf("Action of miner UID %d in turn %d submitted successfully.", res.UID, res.Turns)
}

// createSynapse assembles the observation synapse from the raw context,
// condensing the sensor readings into a perception summary with the LLM.
// An LLM failure degrades to an empty summary rather than dropping the turn.
func (v *Validator) createSynapse(ctx context.Context, c *eastworld.Context) *synapse.Observation {
	p := synapse.Perception{Interactions: c.Interaction}

	prompt := perception.BuildPrompt(c.Observation)
	content, err := v.LLM.Complete(ctx, prompt)
	if err != nil {
		log.Warn().Err(err).Msg("perception summary failed, sending raw observation")
		content = ""
	}
	p.Environment, p.Objects = perception.ParseContent(content)

	return &synapse.Observation{
		Stats: c.Stats,
		Items: c.Item,
		Sensor: synapse.Sensor{
			Lidar:    c.Observation.Lidar,
			Odometry: c.Observation.Odometry,
		},
		Perception:  p,
		ActionLog:   c.Log,
		ActionSpace: c.Action,
		Action:      []map[string]any{},
		Reward:      c.Reward,
	}
}

// isConnectError reports whether err is a transport-level connection failure
// as opposed to an HTTP-level one.
func isConnectError(err error) bool {
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

// sleepCtx pauses for d or until ctx is canceled, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
