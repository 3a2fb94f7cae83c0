package signature

import "github.com/ChainSafe/gossamer/lib/crypto/sr25519"

const (
	SubstrateNetworkID = 42

	// Default paths
	DefaultBittensorDir = "~/.bittensor"
	DefaultWalletName   = "default"
)

type Verifier interface {
	// Verify checks if the provided signature is valid for the given message and SS58 address.
	Verify(message, signature, ss58Address string) (bool, error)
}

// SS58Verifier is a concrete implementation of Verifier
type SS58Verifier struct{}

type Signer interface {
	// Sign generates a signature for the given message using the hotkey
	Sign(message string) (string, error)
}

// KeypairSigner signs messages with a local sr25519 hotkey.
type KeypairSigner struct {
	keypair *sr25519.Keypair
}

// Address returns the SS58 address of the signing hotkey.
func (s *KeypairSigner) Address() string {
	if s.keypair == nil {
		return ""
	}
	return ToSS58Address(s.keypair)
}
