package synapse

import (
	"time"

	"github.com/eastworld-ai/eastworld/internal/eastworld"
)

// Config groups the knobs of the synapse client and server.
type Config struct {
	Address       string
	BodyLimit     int
	ClientTimeout time.Duration
	RetryMax      int
	RetryWait     time.Duration
}

// Sensor carries the raw odometry readings forwarded to the miner untouched.
type Sensor struct {
	Lidar    [][]string `json:"lidar"`
	Odometry []string   `json:"odometry"`
}

// Perception is the LLM-condensed view of the surroundings.
type Perception struct {
	Environment  string   `json:"environment"`
	Objects      string   `json:"objects"`
	Interactions []string `json:"interactions"`
}

// Observation is the synapse exchanged with a miner: the validator fills in
// everything except Action, the miner answers with its chosen action(s).
type Observation struct {
	Stats       map[string]any   `json:"stats"`
	Items       []eastworld.Item `json:"items"`
	Sensor      Sensor           `json:"sensor"`
	Perception  Perception       `json:"perception"`
	ActionLog   []string         `json:"action_log"`
	ActionSpace []map[string]any `json:"action_space"`
	Action      []map[string]any `json:"action"`
	Reward      float64          `json:"reward"`
}

// IsEmpty reports whether the miner failed to choose any action.
func (o *Observation) IsEmpty() bool {
	return len(o.Action) == 0
}
