package signature

import (
	"encoding/hex"
	"fmt"

	"github.com/ChainSafe/gossamer/lib/crypto/sr25519"
	"github.com/rs/zerolog/log"
)

// NewSigner creates a signer from a loaded hotkey keypair.
func NewSigner(keypair *sr25519.Keypair) (*KeypairSigner, error) {
	if keypair == nil {
		return nil, fmt.Errorf("keypair cannot be nil")
	}
	return &KeypairSigner{keypair: keypair}, nil
}

// Sign implements the Signer interface. The signature is returned as a
// hex string with a 0x prefix.
func (s *KeypairSigner) Sign(message string) (string, error) {
	if s.keypair == nil {
		return "", fmt.Errorf("private key not initialized")
	}

	sig, err := s.keypair.Sign([]byte(message))
	if err != nil {
		log.Error().Err(err).Msg("Failed to sign message")
		return "", fmt.Errorf("failed to sign message: %w", err)
	}

	return "0x" + hex.EncodeToString(sig), nil
}
