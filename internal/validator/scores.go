package validator

import (
	"fmt"
	"math"
	"os"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"

	"github.com/eastworld-ai/eastworld/internal/eastworld"
	"github.com/eastworld-ai/eastworld/internal/kami"
	"github.com/eastworld-ai/eastworld/internal/utils/chainutils"
)

const scoresFileName = "scores.json"

// loadScoresData reads the persisted score state, creating a zeroed file on
// first run.
func loadScoresData(path string) (ScoresData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return ScoresData{}, fmt.Errorf("read scores file: %w", err)
		}
		log.Info().Msg("scores file not found, initializing with default scores")
		initial := ScoresData{Step: 0, Scores: []float64{}}
		if err := saveScoresData(path, initial); err != nil {
			return ScoresData{}, err
		}
		return initial, nil
	}

	var scoresData ScoresData
	if err := sonic.Unmarshal(data, &scoresData); err != nil {
		return ScoresData{}, fmt.Errorf("unmarshal scores file: %w", err)
	}
	return scoresData, nil
}

func saveScoresData(path string, scoresData ScoresData) error {
	data, err := sonic.Marshal(scoresData)
	if err != nil {
		return fmt.Errorf("marshal scores: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write scores file: %w", err)
	}
	return nil
}

// syncScores fetches the latest aggregate miner scores from the coordination
// server, scatters them into the local score vector, and persists the result.
func (v *Validator) syncScores() error {
	resp, err := v.Eastworld.GetScores()
	if err != nil {
		return fmt.Errorf("get miner scores: %w", err)
	}
	if resp.Code != eastworld.CodeOK {
		return fmt.Errorf("get miner scores: %d %s", resp.Code, resp.Message)
	}

	if err := v.applyScores(resp.Scores); err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if err := saveScoresData(scoresFileName, v.ScoresData); err != nil {
		return err
	}
	log.Debug().Int("step", v.ScoresData.Step).Floats64("scores", v.ScoresData.Scores).Msg("Updated scores")
	return nil
}

// applyScores overwrites the local score vector with the server's aggregate
// values. Every uid not present in the payload drops to zero. An empty
// payload keeps the previous vector untouched.
func (v *Validator) applyScores(entries []eastworld.ScoreEntry) error {
	if len(entries) == 0 {
		log.Warn().Msg("Score payload is empty. No updates will be performed.")
		return nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	size := len(v.MetagraphData.Metagraph.Hotkeys)
	if len(v.ScoresData.Scores) > size {
		size = len(v.ScoresData.Scores)
	}

	scattered := make([]float64, size)
	for _, entry := range entries {
		if entry.UID < 0 || entry.UID >= size {
			return fmt.Errorf("score uid %d out of range for %d slots", entry.UID, size)
		}
		score := entry.Score
		if math.IsNaN(score) {
			log.Warn().Int("uid", entry.UID).Msg("NaN value detected in scores")
			score = 0
		}
		scattered[entry.UID] = score
	}

	v.ScoresData.Scores = scattered
	v.ScoresData.Step++
	return nil
}

// setWeights emits the score vector as on-chain weights every Nth score step,
// where N covers the configured weight interval.
func (v *Validator) setWeights() {
	weightSettingSteps := int(v.IntervalConfig.WeightInterval / v.IntervalConfig.TaskRoundInterval)
	if weightSettingSteps < 1 {
		weightSettingSteps = 1
	}

	v.mu.Lock()
	scoresData := ScoresData{
		Step:   v.ScoresData.Step,
		Scores: append([]float64(nil), v.ScoresData.Scores...),
	}
	versionKey := v.MetagraphData.Metagraph.WeightsVersion
	v.mu.Unlock()

	if scoresData.Step == 0 || scoresData.Step%weightSettingSteps != 0 {
		nextStep := ((scoresData.Step / weightSettingSteps) + 1) * weightSettingSteps
		log.Info().Msgf("Current score step is %d. Next weight setting at step %d", scoresData.Step, nextStep)
		return
	}

	weights := chainutils.ClampNegativeWeights(scoresData.Scores)
	weights = l1Normalize(weights)

	uids := make([]int64, len(weights))
	for i := range uids {
		uids[i] = int64(i)
	}

	convertedUids, convertedWeights, err := chainutils.ConvertWeightsAndUidsForEmit(uids, weights)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert weights for emit")
		return
	}
	if len(convertedUids) == 0 {
		log.Info().Msg("all weights are zero, skipping weight setting")
		return
	}

	res, err := v.Kami.SetWeights(kami.SetWeightsParams{
		Netuid:     v.Config.Netuid,
		Dests:      convertedUids,
		Weights:    convertedWeights,
		VersionKey: versionKey,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to set weights")
		return
	}
	log.Info().Msgf("Successfully set weights with hash: %s", res.Data)
}

func l1Normalize(arr []float64) []float64 {
	result := make([]float64, len(arr))
	copy(result, arr)

	sum := floats.Sum(result)
	if sum > 0 {
		floats.Scale(1.0/sum, result)
	}
	return result
}
