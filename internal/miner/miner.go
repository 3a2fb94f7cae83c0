// Package miner runs the miner neuron: it registers its axon on-chain and
// serves the observation endpoint the validator queries.
package miner

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/eastworld-ai/eastworld/internal/config"
	"github.com/eastworld-ai/eastworld/internal/kami"
	"github.com/eastworld-ai/eastworld/internal/synapse"
	"github.com/eastworld-ai/eastworld/internal/utils/chainutils"
)

type Miner struct {
	cfg  *config.AppConfig
	srv  *synapse.Server
	kami kami.KamiInterface
	axon kami.ServeAxonParams

	ctx    context.Context
	cancel context.CancelFunc
}

func NewMiner(cfg *config.AppConfig, k kami.KamiInterface) (*Miner, error) {
	ipInt, err := resolveAxonIP(cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("resolve axon ip: %w", err)
	}

	axon := kami.ServeAxonParams{
		Version:  1,
		IP:       int(ipInt),
		Port:     cfg.Port,
		IPType:   4,
		Netuid:   cfg.Netuid,
		Protocol: 4,
	}

	srv := synapse.NewServer(synapse.Config{
		Address:   fmt.Sprintf(":%d", cfg.Port),
		BodyLimit: cfg.BodySizeLimit,
	}, chooseAction)

	ctx, cancel := context.WithCancel(context.Background())
	return &Miner{cfg: cfg, srv: srv, kami: k, axon: axon, ctx: ctx, cancel: cancel}, nil
}

// chooseAction answers every observation with the first entry of the action
// space. A real miner plugs its agent in here.
func chooseAction(ob *synapse.Observation) ([]map[string]any, error) {
	if len(ob.ActionSpace) == 0 {
		return []map[string]any{}, nil
	}
	return []map[string]any{ob.ActionSpace[0]}, nil
}

// resolveAxonIP turns the configured address into the u32 the serve-axon
// extrinsic expects, falling back to external IP discovery.
func resolveAxonIP(address string) (uint32, error) {
	if address != "" {
		ip := net.ParseIP(address)
		if ip == nil {
			if addrs, err := net.LookupIP(address); err == nil && len(addrs) > 0 {
				ip = addrs[0]
			}
		}
		if ip != nil {
			v, err := chainutils.IPv4ToInt(ip)
			if err == nil {
				return v, nil
			}
			log.Error().Err(err).Str("address", address).Msg("invalid ipv4 address, falling back to external IP")
		}
	}
	return chainutils.GetExternalIPInt()
}

// Run registers the axon on-chain and starts the observation server.
func (m *Miner) Run() error {
	res, err := m.kami.ServeAxon(m.axon)
	if err != nil {
		return fmt.Errorf("serve axon: %w", err)
	}
	log.Info().Msgf("Axon registered on netuid %d with hash: %s", m.axon.Netuid, res.Data)

	go func() {
		if err := m.srv.Start(m.ctx); err != nil {
			log.Error().Err(err).Msg("failed to start miner server")
		}
	}()
	log.Info().Int("port", m.cfg.Port).Msg("miner server started")
	return nil
}

func (m *Miner) Stop() {
	if m.cancel != nil {
		m.cancel()
		// give some time for shutdown
		time.Sleep(100 * time.Millisecond)
	}
	log.Info().Msg("miner stopped")
}
