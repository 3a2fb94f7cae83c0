// Package synapse implements the observation synapse exchanged between
// validator and miner: the dendrite client on the validator side and the axon
// server on the miner side.
package synapse

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"

	"github.com/eastworld-ai/eastworld/pkg/signature"
)

// VerificationContext is appended to the signed header message so the
// signature cannot be replayed against unrelated services.
const VerificationContext = "eastworld observation synapse"

// Client is the dendrite side of the synapse: it posts observations to miner
// axons and reads back their chosen actions.
type Client struct {
	httpClient *resty.Client
	cfg        Config
	signer     signature.Signer
	hotkey     string
}

// NewClient builds a dendrite client that signs every request with the
// validator's hotkey.
func NewClient(cfg Config, signer *signature.KeypairSigner) *Client {
	cli := resty.New()

	cli.SetRetryCount(cfg.RetryMax)
	cli.SetTimeout(cfg.ClientTimeout)
	cli.SetRetryWaitTime(cfg.RetryWait)
	cli.SetRetryMaxWaitTime(cfg.RetryWait * 2)

	return &Client{httpClient: cli, cfg: cfg, signer: signer, hotkey: signer.Address()}
}

// HeaderMessage is the canonical message signed into the x-signature header.
func HeaderMessage(hotkey, timestamp string) string {
	return fmt.Sprintf("%s.%s.%s", hotkey, timestamp, VerificationContext)
}

// QueryMiner sends the observation synapse to the given axon endpoint and
// returns the miner's response. The returned observation carries the miner's
// chosen action; an empty action list is the caller's signal of a failure.
func (c *Client) QueryMiner(ctx context.Context, url string, ob *Observation) (*Observation, error) {
	b, err := sonic.Marshal(ob)
	if err != nil {
		return nil, fmt.Errorf("marshal observation: %w", err)
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	sig, err := c.signer.Sign(HeaderMessage(c.hotkey, timestamp))
	if err != nil {
		return nil, fmt.Errorf("sign synapse headers: %w", err)
	}

	req := c.httpClient.R().SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept-Encoding", "zstd").
		SetHeader("x-hotkey", c.hotkey).
		SetHeader("x-timestamp", timestamp).
		SetHeader("x-signature", sig).
		SetBody(b)

	restyResp, err := req.Post(url)
	if err != nil {
		log.Error().Err(err).Str("url", url).Msg("query miner failed")
		return nil, err
	}

	if restyResp.StatusCode() >= 400 {
		return nil, fmt.Errorf("bad status %d: %s", restyResp.StatusCode(), string(restyResp.Body()))
	}

	data := restyResp.Body()
	if strings.Contains(strings.ToLower(restyResp.Header().Get("Content-Encoding")), "zstd") {
		r, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("zstd: failed to create reader: %w", err)
		}
		defer r.Close()

		out, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("zstd: failed to decompress response: %w", err)
		}
		data = out
	}

	var resp Observation
	if err := sonic.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &resp, nil
}
