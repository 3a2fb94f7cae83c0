package signature

import (
	"testing"

	"github.com/ChainSafe/gossamer/lib/crypto/sr25519"
	"github.com/vedhavyas/go-subkey"
)

func TestSignAndVerifyRoundTrip(t *testing.T) {
	keypair, err := sr25519.GenerateKeypair()
	if err != nil {
		t.Fatalf("Failed to generate keypair: %v", err)
	}

	signer, err := NewSigner(keypair)
	if err != nil {
		t.Fatalf("Failed to create signer: %v", err)
	}

	message := "<Bytes>Eastworld AI 1700000000</Bytes>"

	sig, err := signer.Sign(message)
	if err != nil {
		t.Fatalf("Failed to sign message: %v", err)
	}

	if len(sig) < 2 || sig[:2] != "0x" {
		t.Error("Expected signature to start with '0x'")
	}
	if len(sig) != 130 { // 0x + 128 hex chars (64 bytes)
		t.Errorf("Expected signature length 130, got %d", len(sig))
	}

	ss58Address := subkey.SS58Encode(keypair.Public().Encode(), SubstrateNetworkID)

	ok, err := Verify(message, sig, ss58Address)
	if err != nil {
		t.Fatalf("Verification failed: %v", err)
	}
	if !ok {
		t.Error("Expected signature to be valid, but verification failed")
	}
}

func TestSignWithKnownSeed(t *testing.T) {
	keypair, err := sr25519.NewKeypairFromMnenomic(subkey.DevPhrase, "")
	if err != nil {
		t.Fatalf("Failed to create keypair from seed: %v", err)
	}

	signer, err := NewSigner(keypair)
	if err != nil {
		t.Fatalf("Failed to create signer: %v", err)
	}

	message := "test message for round trip"

	sig, err := signer.Sign(message)
	if err != nil {
		t.Fatalf("Failed to sign message: %v", err)
	}

	ss58Address := subkey.SS58Encode(keypair.Public().Encode(), SubstrateNetworkID)

	ok, err := Verify(message, sig, ss58Address)
	if err != nil {
		t.Fatalf("Verification failed: %v", err)
	}
	if !ok {
		t.Error("Round trip test failed: signature verification failed")
	}
}

func TestSignerErrors(t *testing.T) {
	t.Run("nil keypair", func(t *testing.T) {
		if _, err := NewSigner(nil); err == nil {
			t.Error("Expected error for nil keypair")
		}

		signer := &KeypairSigner{keypair: nil}
		if _, err := signer.Sign("test message"); err == nil {
			t.Error("Expected error for nil keypair")
		}
	})
}

func TestVerifyRejectsMalformedSignatures(t *testing.T) {
	keypair, err := sr25519.GenerateKeypair()
	if err != nil {
		t.Fatalf("Failed to generate keypair: %v", err)
	}
	addr := subkey.SS58Encode(keypair.Public().Encode(), SubstrateNetworkID)

	if _, err := Verify("m", "deadbeef", addr); err == nil {
		t.Error("Expected error for signature without 0x prefix")
	}
	if _, err := Verify("m", "0xzz", addr); err == nil {
		t.Error("Expected error for non-hex signature")
	}
	if _, err := Verify("m", "0xdeadbeef", addr); err == nil {
		t.Error("Expected error for short signature")
	}
}

func TestMultipleSignatures(t *testing.T) {
	// SR25519 signatures are not deterministic, so two signatures over the
	// same message differ but both must verify.
	keypair, err := sr25519.GenerateKeypair()
	if err != nil {
		t.Fatalf("Failed to generate keypair: %v", err)
	}

	signer, err := NewSigner(keypair)
	if err != nil {
		t.Fatalf("Failed to create signer: %v", err)
	}

	message := "consistent message"

	sig1, err := signer.Sign(message)
	if err != nil {
		t.Fatalf("Failed to sign message first time: %v", err)
	}
	sig2, err := signer.Sign(message)
	if err != nil {
		t.Fatalf("Failed to sign message second time: %v", err)
	}

	if sig1 == sig2 {
		t.Error("Expected different signatures for the same message (SR25519 is non-deterministic)")
	}

	ss58Address := subkey.SS58Encode(keypair.Public().Encode(), SubstrateNetworkID)

	ok1, err := Verify(message, sig1, ss58Address)
	if err != nil || !ok1 {
		t.Error("First signature should verify correctly")
	}
	ok2, err := Verify(message, sig2, ss58Address)
	if err != nil || !ok2 {
		t.Error("Second signature should verify correctly")
	}
}
