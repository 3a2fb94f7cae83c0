package validator

import (
	"context"
	"fmt"
	"sync"

	"github.com/eastworld-ai/eastworld/internal/config"
	"github.com/eastworld-ai/eastworld/internal/eastworld"
	"github.com/eastworld-ai/eastworld/internal/kami"
)

type fakeKami struct {
	mu               sync.Mutex
	metagraph        kami.SubnetMetagraph
	block            int
	setWeightsParams []kami.SetWeightsParams
}

func (f *fakeKami) GetMetagraph(netuid int) (kami.SubnetMetagraphResponse, error) {
	return kami.SubnetMetagraphResponse{StatusCode: 200, Success: true, Data: f.metagraph}, nil
}

func (f *fakeKami) GetLatestBlock() (kami.LatestBlockResponse, error) {
	return kami.LatestBlockResponse{StatusCode: 200, Success: true, Data: kami.LatestBlock{BlockNumber: f.block}}, nil
}

func (f *fakeKami) SetWeights(params kami.SetWeightsParams) (kami.ExtrinsicHashResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setWeightsParams = append(f.setWeightsParams, params)
	return kami.ExtrinsicHashResponse{StatusCode: 200, Success: true, Data: "0xhash"}, nil
}

func (f *fakeKami) ServeAxon(params kami.ServeAxonParams) (kami.ExtrinsicHashResponse, error) {
	return kami.ExtrinsicHashResponse{StatusCode: 200, Success: true, Data: "0xhash"}, nil
}

func (f *fakeKami) SignMessage(params kami.SignMessageParams) (kami.SignMessageResponse, error) {
	return kami.SignMessageResponse{}, nil
}

func (f *fakeKami) VerifyMessage(params kami.VerifyMessageParams) (kami.VerifyMessageResponse, error) {
	return kami.VerifyMessageResponse{}, nil
}

func (f *fakeKami) GetKeyringPair() (kami.KeyringPairInfoResponse, error) {
	return kami.KeyringPairInfoResponse{
		StatusCode: 200,
		Success:    true,
		Data:       kami.KeyringPairInfo{KeyringPair: kami.KeyringPair{Address: "validator-hotkey"}},
	}, nil
}

type fakeEastworld struct {
	mu          sync.Mutex
	observation eastworld.ObservationResponse
	scores      eastworld.ScoresResponse
	submitted   []eastworld.StepRequest
	submitErr   error
}

func (f *fakeEastworld) GetObservation() (eastworld.ObservationResponse, error) {
	return f.observation, nil
}

func (f *fakeEastworld) SubmitAction(turns, uid int, key string, action []map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, eastworld.StepRequest{Turns: turns, UID: uid, Key: key, Action: action})
	return f.submitErr
}

func (f *fakeEastworld) GetScores() (eastworld.ScoresResponse, error) {
	return f.scores, nil
}

type fakeLLM struct {
	content string
	err     error
}

func (f *fakeLLM) Complete(ctx context.Context, prompt string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.content, nil
}

func newTestValidator(k *fakeKami, ew *fakeEastworld) *Validator {
	cfg := &config.AppConfig{}
	cfg.Netuid = 96
	cfg.SubtensorNetwork = "test"
	cfg.NumConcurrentForwards = 1
	cfg.VpermitTaoLimit = 4096

	ctx, cancel := context.WithCancel(context.Background())
	return &Validator{
		Kami:           k,
		Eastworld:      ew,
		LLM:            &fakeLLM{},
		Hotkey:         "validator-hotkey",
		IntervalConfig: config.TestIntervalConfig,
		Config:         cfg,
		Ctx:            ctx,
		Cancel:         cancel,
		inactive:       make(map[int]inactivityState),
	}
}

func kamiAxon(ip string, port int) kami.AxonInfo {
	return kami.AxonInfo{IP: ip, Port: port, IPType: 4, Protocol: 4}
}

func minerMetagraph(n int) kami.SubnetMetagraph {
	mg := kami.SubnetMetagraph{Netuid: 96}
	for i := 0; i < n; i++ {
		mg.Hotkeys = append(mg.Hotkeys, fmt.Sprintf("hk%d", i))
		mg.Coldkeys = append(mg.Coldkeys, fmt.Sprintf("ck%d", i))
		mg.Axons = append(mg.Axons, kami.AxonInfo{IP: "127.0.0.1", Port: 8091})
		mg.ValidatorPermit = append(mg.ValidatorPermit, false)
		mg.TotalStake = append(mg.TotalStake, 0)
	}
	return mg
}
