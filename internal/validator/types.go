// Package validator contains the validator orchestration logic: the
// observation polling rounds, metagraph synchronization, score tracking, and
// weight emission.
package validator

import (
	"time"

	"github.com/eastworld-ai/eastworld/internal/kami"
)

// MetagraphData holds the current subnet metagraph snapshot.
type MetagraphData struct {
	Metagraph kami.SubnetMetagraph
}

// ScoresData is the persisted score state: the aggregate score vector indexed
// by uid and a step counter incremented on every score sync.
type ScoresData struct {
	Step   int       `json:"step"`
	Scores []float64 `json:"scores"`
}

// inactivityState tracks a miner that stopped answering: the round skips the
// uid until NotUntil passes. Interval grows on every consecutive failure.
type inactivityState struct {
	NotUntil time.Time
	Interval time.Duration
}
