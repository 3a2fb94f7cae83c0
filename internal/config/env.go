// Package config defines environment configuration structs and loaders.
package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type AppConfig struct {
	ChainEnvConfig
	WalletEnvConfig
	KamiEnvConfig
	EastworldEnvConfig
	LLMEnvConfig
	NeuronEnvConfig
	AxonEnvConfig
}

func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ChainEnvConfig holds chain-specific environment values.
type ChainEnvConfig struct {
	Netuid           int    `env:"NETUID" envDefault:"96"`
	SubtensorNetwork string `env:"SUBTENSOR_NETWORK" envDefault:"finney"`
}

// WalletEnvConfig holds wallet key configuration.
type WalletEnvConfig struct {
	WalletHotkey  string `env:"WALLET_HOTKEY" envDefault:"default"`
	WalletColdkey string `env:"WALLET_COLDKEY" envDefault:"default"`
	BittensorDir  string `env:"BITTENSOR_DIR" envDefault:"~/.bittensor"`
}

// KamiEnvConfig contains the chain sidecar target.
type KamiEnvConfig struct {
	KamiHost string `env:"KAMI_HOST" envDefault:"127.0.0.1"`
	KamiPort string `env:"KAMI_PORT" envDefault:"3000"`
}

// EastworldEnvConfig configures access to the Eastworld coordination API.
type EastworldEnvConfig struct {
	EndpointURL string `env:"EASTWORLD_ENDPOINT_URL" envDefault:"https://api.eastworld.ai"`
}

// LLMEnvConfig configures the text-generation endpoint used for perception summaries.
type LLMEnvConfig struct {
	LLMAPIUrl  string        `env:"LLM_API_URL" envDefault:"https://api.openai.com/v1"`
	LLMAPIKey  string        `env:"LLM_API_KEY"`
	LLMModel   string        `env:"LLM_MODEL" envDefault:"gpt-4.1-mini"`
	LLMTimeout time.Duration `env:"LLM_TIMEOUT" envDefault:"10s"`
}

// NeuronEnvConfig configures the validator runtime.
type NeuronEnvConfig struct {
	Environment           string        `env:"ENVIRONMENT" envDefault:"dev"`
	NumConcurrentForwards int           `env:"NUM_CONCURRENT_FORWARDS" envDefault:"1"`
	ForwardTimeout        time.Duration `env:"NEURON_TIMEOUT" envDefault:"60s"`
	VpermitTaoLimit       float64       `env:"VPERMIT_TAO_LIMIT" envDefault:"4096"`
}

// AxonEnvConfig configures the miner's axon server.
type AxonEnvConfig struct {
	Address       string `env:"AXON_IP" envDefault:"127.0.0.1"`
	Port          int    `env:"AXON_PORT" envDefault:"8091"`
	BodySizeLimit int    `env:"SERVER_BODY_LIMIT" envDefault:"1048576"`
}

type IntervalConfig struct {
	MetagraphInterval time.Duration
	BlockInterval     time.Duration
	TaskRoundInterval time.Duration
	WeightInterval    time.Duration
}

var (
	DevIntervalConfig = &IntervalConfig{
		MetagraphInterval: 5 * time.Second,
		BlockInterval:     2 * time.Second,
		TaskRoundInterval: 10 * time.Second,
		WeightInterval:    30 * time.Second,
	}
	TestIntervalConfig = &IntervalConfig{
		MetagraphInterval: 30 * time.Second,
		BlockInterval:     12 * time.Second,
		TaskRoundInterval: 1 * time.Minute,
		WeightInterval:    20 * time.Minute,
	}
	ProdIntervalConfig = &IntervalConfig{
		MetagraphInterval: 30 * time.Second,
		BlockInterval:     12 * time.Second,
		TaskRoundInterval: 1 * time.Minute,
		WeightInterval:    60 * time.Minute,
	}
)

func NewIntervalConfig(environment string) *IntervalConfig {
	switch strings.ToLower(environment) {
	case "dev":
		return DevIntervalConfig
	case "test":
		return TestIntervalConfig
	case "prod":
		return ProdIntervalConfig
	}

	return DevIntervalConfig
}
