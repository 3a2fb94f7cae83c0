package signature

import (
	"github.com/ChainSafe/gossamer/lib/crypto/sr25519"
	"github.com/vedhavyas/go-subkey"
)

func ToSS58Address(keypair *sr25519.Keypair) string {
	return subkey.SS58Encode(
		keypair.Public().Encode(),
		SubstrateNetworkID,
	)
}
