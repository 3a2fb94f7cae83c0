package eastworld

// Response codes used by the coordination API inside its JSON envelope.
// 429 signals that the next turn is not available yet.
const (
	CodeOK          = 200
	CodeBadRequest  = 400
	CodeRateLimited = 429
)

// ObservationResponse is the envelope returned by GET /sn/env. Code carries
// the API-level status, independent of the HTTP status line.
type ObservationResponse struct {
	Code    int      `json:"code"`
	Message string   `json:"message,omitempty"`
	Turns   int      `json:"turns"`
	UID     int      `json:"uid"`
	Key     string   `json:"key"`
	Context *Context `json:"context,omitempty"`
}

// Context is the full task context for one miner turn.
type Context struct {
	Stats       map[string]any   `json:"stats"`
	Item        []Item           `json:"item"`
	Observation SensorData       `json:"observation"`
	Interaction []string         `json:"interaction"`
	Action      []map[string]any `json:"action"`
	Log         []string         `json:"log"`
	Reward      float64          `json:"reward"`
}

// Item is a single inventory entry.
type Item struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Count       int    `json:"count"`
}

// SensorData groups the raw sensor readings of a turn. Terrain, weather and
// location rows are short attribute tuples; structure, static and dynamic rows
// carry a free-form detail line as their last element.
type SensorData struct {
	Lidar     [][]string `json:"lidar"`
	Odometry  []string   `json:"odometry"`
	Terrain   [][]string `json:"terrain"`
	Weather   [][]string `json:"weather"`
	Location  [][]string `json:"location"`
	Structure [][]string `json:"structure"`
	Static    [][]string `json:"static"`
	Dynamic   [][]string `json:"dynamic"`
}

// StepRequest is the payload for POST /sn/step.
type StepRequest struct {
	Turns  int              `json:"turns"`
	UID    int              `json:"uid"`
	Key    string           `json:"key"`
	Action []map[string]any `json:"action"`
}

// StepResponse is the envelope returned by POST /sn/step.
type StepResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

// ScoreEntry is one (uid, score) pair from GET /sn/score.
type ScoreEntry struct {
	UID   int     `json:"uid"`
	Score float64 `json:"score"`
}

// ScoresResponse is the envelope returned by GET /sn/score.
type ScoresResponse struct {
	Code    int          `json:"code"`
	Message string       `json:"message,omitempty"`
	Scores  []ScoreEntry `json:"scores"`
}
