// Package eastworld provides a client for the Eastworld coordination API,
// which issues per-miner observations and aggregates scores for the subnet.
package eastworld

import (
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/eastworld-ai/eastworld/internal/config"
	"github.com/eastworld-ai/eastworld/pkg/signature"
)

// ClientInterface is the set of coordination API methods used by the validator.
type ClientInterface interface {
	GetObservation() (ObservationResponse, error)
	SubmitAction(turns, uid int, key string, action []map[string]any) error
	GetScores() (ScoresResponse, error)
}

// Client is a REST client wrapper for the coordination API. Every request is
// authenticated with a freshly signed basic auth credential.
type Client struct {
	cfg    *config.EastworldEnvConfig
	client *resty.Client
	signer signature.Signer
	hotkey string
}

// NewClient constructs a new coordination API client. The signer's hotkey
// identifies this validator to the API.
func NewClient(cfg *config.EastworldEnvConfig, signer *signature.KeypairSigner) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("eastworld env configuration cannot be nil")
	}
	if signer == nil {
		return nil, fmt.Errorf("signer cannot be nil")
	}

	client := resty.New().
		SetBaseURL(cfg.EndpointURL).
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal).
		SetTimeout(30 * time.Second)

	return &Client{
		cfg:    cfg,
		client: client,
		signer: signer,
		hotkey: signer.Address(),
	}, nil
}

// basicAuth builds the signed credential pair for one request: the username
// is "<ss58>|<unix ts>" and the password is the hex sr25519 signature of
// "<Bytes>Eastworld AI <unix ts></Bytes>".
func (c *Client) basicAuth() (username, password string, err error) {
	timestamp := time.Now().Unix()
	message := fmt.Sprintf("<Bytes>Eastworld AI %d</Bytes>", timestamp)

	sig, err := c.signer.Sign(message)
	if err != nil {
		return "", "", fmt.Errorf("sign auth message: %w", err)
	}

	// The API expects the bare hex digest, without the 0x prefix.
	return fmt.Sprintf("%s|%d", c.hotkey, timestamp), strings.TrimPrefix(sig, "0x"), nil
}

// GetObservation fetches the next task from the coordination API. A Code of
// 429 in the returned envelope means the next turn is not available yet.
func (c *Client) GetObservation() (ObservationResponse, error) {
	username, password, err := c.basicAuth()
	if err != nil {
		return ObservationResponse{}, err
	}

	var out ObservationResponse
	resp, err := c.client.R().
		SetBasicAuth(username, password).
		SetResult(&out).
		Get("/sn/env")
	if err != nil {
		return ObservationResponse{}, fmt.Errorf("get observation: %w", err)
	}
	if resp.IsError() {
		return ObservationResponse{}, fmt.Errorf("get observation returned status %d: %s",
			resp.StatusCode(), resp.String())
	}
	return out, nil
}

// SubmitAction posts the miner's chosen action for the given turn back to the
// coordination API. The API answers 400 for actions it rejects on content
// grounds; that is not treated as a transport failure.
func (c *Client) SubmitAction(turns, uid int, key string, action []map[string]any) error {
	username, password, err := c.basicAuth()
	if err != nil {
		return err
	}

	body := StepRequest{
		Turns:  turns,
		UID:    uid,
		Key:    key,
		Action: action,
	}

	var out StepResponse
	resp, err := c.client.R().
		SetBasicAuth(username, password).
		SetBody(body).
		SetResult(&out).
		Post("/sn/step")
	if err != nil {
		return fmt.Errorf("submit action: %w", err)
	}
	if resp.StatusCode() > 499 {
		return fmt.Errorf("submit action (%d) returned status %d: %s",
			uid, resp.StatusCode(), resp.String())
	}
	if out.Code != CodeOK && out.Code != CodeBadRequest {
		return fmt.Errorf("submit action (%d) rejected: %d %s", uid, out.Code, out.Message)
	}

	log.Info().Int("uid", uid).Int("turns", turns).Msg("Action submitted successfully")
	return nil
}

// GetScores fetches the latest aggregate miner scores.
func (c *Client) GetScores() (ScoresResponse, error) {
	username, password, err := c.basicAuth()
	if err != nil {
		return ScoresResponse{}, err
	}

	var out ScoresResponse
	resp, err := c.client.R().
		SetBasicAuth(username, password).
		SetResult(&out).
		Get("/sn/score")
	if err != nil {
		return ScoresResponse{}, fmt.Errorf("get scores: %w", err)
	}
	if resp.IsError() {
		return ScoresResponse{}, fmt.Errorf("get scores returned status %d: %s",
			resp.StatusCode(), resp.String())
	}
	return out, nil
}
