package synapse

import (
	"bytes"
	"io"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/ChainSafe/gossamer/lib/crypto/sr25519"
	"github.com/bytedance/sonic"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"

	"github.com/eastworld-ai/eastworld/pkg/signature"
)

func newSignedServer(t *testing.T) (*Server, *signature.KeypairSigner) {
	t.Helper()

	keypair, err := sr25519.GenerateKeypair()
	require.NoError(t, err)
	signer, err := signature.NewSigner(keypair)
	require.NoError(t, err)

	srv := NewServer(Config{Address: ":0"}, func(ob *Observation) ([]map[string]any, error) {
		if len(ob.ActionSpace) > 0 {
			return []map[string]any{ob.ActionSpace[0]}, nil
		}
		return nil, nil
	})
	return srv, signer
}

func signedHeaders(t *testing.T, signer *signature.KeypairSigner) map[string]string {
	t.Helper()
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	sig, err := signer.Sign(HeaderMessage(signer.Address(), timestamp))
	require.NoError(t, err)
	return map[string]string{
		"x-hotkey":    signer.Address(),
		"x-timestamp": timestamp,
		"x-signature": sig,
	}
}

func TestHandleObservation_SignedRequest(t *testing.T) {
	srv, signer := newSignedServer(t)

	ob := Observation{
		Stats:       map[string]any{"hp": 10.0},
		ActionSpace: []map[string]any{{"name": "move"}, {"name": "wait"}},
	}
	body, err := sonic.Marshal(&ob)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/observation", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range signedHeaders(t, signer) {
		req.Header.Set(k, v)
	}

	resp, err := srv.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out Observation
	require.NoError(t, sonic.Unmarshal(respBody, &out))
	require.Len(t, out.Action, 1)
	require.Equal(t, "move", out.Action[0]["name"])
	require.False(t, out.IsEmpty())
}

func TestHandleObservation_MissingSignature(t *testing.T) {
	srv, _ := newSignedServer(t)

	req := httptest.NewRequest("POST", "/observation", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 401, resp.StatusCode)
}

func TestHandleObservation_ForgedSignature(t *testing.T) {
	srv, signer := newSignedServer(t)

	headers := signedHeaders(t, signer)
	// Signature over a different timestamp must not verify.
	headers["x-timestamp"] = "0"

	req := httptest.NewRequest("POST", "/observation", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := srv.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 401, resp.StatusCode)
}

func TestHandleObservation_ZstdRoundTrip(t *testing.T) {
	srv, signer := newSignedServer(t)

	ob := Observation{ActionSpace: []map[string]any{{"name": "inspect"}}}
	body, err := sonic.Marshal(&ob)
	require.NoError(t, err)

	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(body)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/observation", bytes.NewReader(buf.Bytes()))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "zstd")
	req.Header.Set("Accept-Encoding", "zstd")
	for k, v := range signedHeaders(t, signer) {
		req.Header.Set(k, v)
	}

	resp, err := srv.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Encoding"), "zstd")

	compressed, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	r, err := zstd.NewReader(bytes.NewReader(compressed))
	require.NoError(t, err)
	defer r.Close()
	plain, err := io.ReadAll(r)
	require.NoError(t, err)

	var out Observation
	require.NoError(t, sonic.Unmarshal(plain, &out))
	require.Len(t, out.Action, 1)
}
