package cbcrypto

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"golang.org/x/crypto/blake2b"

	"github.com/corebft/corebft/cbconsensus"
)

// Secp256k1PubKey is an alternate PubKey implementation, for hosts that
// prefer a key type shared with other chains instead of Ed25519.
type Secp256k1PubKey struct {
	k *secp256k1.PublicKey
}

// NewSecp256k1PubKey parses a compressed or uncompressed secp256k1 public
// key encoding.
func NewSecp256k1PubKey(raw []byte) (Secp256k1PubKey, error) {
	k, err := secp256k1.ParsePubKey(raw)
	if err != nil {
		return Secp256k1PubKey{}, fmt.Errorf("cbcrypto: parse secp256k1 pubkey: %w", err)
	}
	return Secp256k1PubKey{k: k}, nil
}

func (p Secp256k1PubKey) Bytes() []byte {
	return p.k.SerializeCompressed()
}

func (p Secp256k1PubKey) Address() cbconsensus.Address {
	sum := blake2b.Sum256(p.Bytes())
	return cbconsensus.Address(fmt.Sprintf("%x", sum[:20]))
}

func (p Secp256k1PubKey) Verify(msg, sig []byte) bool {
	s, err := ecdsa.ParseDERSignature(sig)
	if err != nil {
		return false
	}
	h := sha256.Sum256(msg)
	return s.Verify(h[:], p.k)
}

func (p Secp256k1PubKey) Equal(other PubKey) bool {
	o, ok := other.(Secp256k1PubKey)
	if !ok {
		return false
	}
	return bytes.Equal(p.Bytes(), o.Bytes())
}

// Secp256k1Signer signs with an in-memory secp256k1 private key, producing
// deterministic (RFC 6979) ECDSA signatures.
type Secp256k1Signer struct {
	priv *secp256k1.PrivateKey
	pub  Secp256k1PubKey
}

// NewSecp256k1Signer builds a Signer from a raw 32-byte private scalar.
func NewSecp256k1Signer(raw []byte) (Secp256k1Signer, error) {
	if len(raw) != 32 {
		return Secp256k1Signer{}, fmt.Errorf("cbcrypto: secp256k1 private key must be 32 bytes, got %d", len(raw))
	}
	priv := secp256k1.PrivKeyFromBytes(raw)
	return Secp256k1Signer{
		priv: priv,
		pub:  Secp256k1PubKey{k: priv.PubKey()},
	}, nil
}

func (s Secp256k1Signer) PubKey() PubKey { return s.pub }

func (s Secp256k1Signer) Sign(msg []byte) (cbconsensus.Signature, error) {
	h := sha256.Sum256(msg)
	sig := ecdsa.Sign(s.priv, h[:])
	return cbconsensus.Signature(sig.Serialize()), nil
}
