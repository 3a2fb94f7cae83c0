package kami

// KamiInterface is the set of chain sidecar methods used by the validator and miner.
type KamiInterface interface {
	GetMetagraph(netuid int) (SubnetMetagraphResponse, error)
	GetLatestBlock() (LatestBlockResponse, error)
	SetWeights(params SetWeightsParams) (ExtrinsicHashResponse, error)
	ServeAxon(params ServeAxonParams) (ExtrinsicHashResponse, error)
	SignMessage(params SignMessageParams) (SignMessageResponse, error)
	VerifyMessage(params VerifyMessageParams) (VerifyMessageResponse, error)
	GetKeyringPair() (KeyringPairInfoResponse, error)
}

// SubtensorResponse is the generic envelope returned by the sidecar.
type SubtensorResponse[T any] struct {
	StatusCode int            `json:"statusCode"`
	Success    bool           `json:"success"`
	Data       T              `json:"data"`
	Error      map[string]any `json:"error"`
}

type (
	SubnetMetagraphResponse = SubtensorResponse[SubnetMetagraph]
	LatestBlockResponse     = SubtensorResponse[LatestBlock]
	KeyringPairInfoResponse = SubtensorResponse[KeyringPairInfo]
	SignMessageResponse     = SubtensorResponse[SignMessage]
	VerifyMessageResponse   = SubtensorResponse[VerifyMessage]
	ExtrinsicHashResponse   = SubtensorResponse[string]
)

// SubnetMetagraph is the local view of subnet membership: which uids exist,
// which hotkeys they carry, and where their axons are served.
type SubnetMetagraph struct {
	Netuid           int        `json:"netuid"`
	Name             string     `json:"name"`
	Block            int        `json:"block"`
	Tempo            int        `json:"tempo"`
	WeightsVersion   int        `json:"weightsVersion"`
	WeightsRateLimit int        `json:"weightsRateLimit"`
	NumUids          int        `json:"numUids"`
	MaxUids          int        `json:"maxUids"`
	Hotkeys          []string   `json:"hotkeys"`
	Coldkeys         []string   `json:"coldkeys"`
	Axons            []AxonInfo `json:"axons"`
	Active           []bool     `json:"active"`
	ValidatorPermit  []bool     `json:"validatorPermit"`
	LastUpdate       []int      `json:"lastUpdate"`
	AlphaStake       []float64  `json:"alphaStake"`
	TaoStake         []float64  `json:"taoStake"`
	TotalStake       []float64  `json:"totalStake"`
}

type AxonInfo struct {
	Block        int    `json:"block"`
	Version      int    `json:"version"`
	IP           string `json:"ip"`
	Port         int    `json:"port"`
	IPType       int    `json:"ipType"`
	Protocol     int    `json:"protocol"`
	Placeholder1 int    `json:"placeholder1"`
	Placeholder2 int    `json:"placeholder2"`
}

// IsServing reports whether the axon has announced a usable endpoint.
func (a AxonInfo) IsServing() bool {
	return a.IP != "" && a.IP != "0.0.0.0" && a.Port != 0
}

type LatestBlock struct {
	ParentHash     string `json:"parentHash"`
	BlockNumber    int    `json:"blockNumber"`
	StateRoot      string `json:"stateRoot"`
	ExtrinsicsRoot string `json:"extrinsicsRoot"`
}

type KeyringPair struct {
	Address    string                 `json:"address"`
	AddressRaw map[string]interface{} `json:"addressRaw"`
	IsLocked   bool                   `json:"isLocked"`
	Meta       map[string]interface{} `json:"meta"`
	PublicKey  map[string]interface{} `json:"publicKey"`
	Type       string                 `json:"type"`
}

type KeyringPairInfo struct {
	KeyringPair   KeyringPair `json:"keyringPair"`
	WalletColdkey string      `json:"walletColdkey"`
}

type SetWeightsParams struct {
	Netuid     int   `json:"netuid"`
	Dests      []int `json:"dests"`
	Weights    []int `json:"weights"`
	VersionKey int   `json:"versionKey"`
}

type ServeAxonParams struct {
	Version      int `json:"version"`
	IP           int `json:"ip"`
	Port         int `json:"port"`
	IPType       int `json:"ipType"`
	Netuid       int `json:"netuid"`
	Protocol     int `json:"protocol"`
	Placeholder1 int `json:"placeholder1"`
	Placeholder2 int `json:"placeholder2"`
}

type SignMessageParams struct {
	Message string `json:"message"`
}

type SignMessage struct {
	Signature string `json:"signature"`
}

type VerifyMessageParams struct {
	Message       string `json:"message"`
	Signature     string `json:"signature"`
	SigneeAddress string `json:"signeeAddress"`
}

type VerifyMessage struct {
	Valid bool `json:"valid"`
}
