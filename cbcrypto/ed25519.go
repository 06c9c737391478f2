package cbcrypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/corebft/corebft/cbconsensus"
)

// Ed25519PubKey is the default PubKey implementation, backed by the
// standard library's ed25519 package.
type Ed25519PubKey struct {
	k ed25519.PublicKey
}

// NewEd25519PubKey wraps raw as an Ed25519PubKey. raw must be exactly
// ed25519.PublicKeySize bytes.
func NewEd25519PubKey(raw []byte) (Ed25519PubKey, error) {
	if len(raw) != ed25519.PublicKeySize {
		return Ed25519PubKey{}, fmt.Errorf("cbcrypto: ed25519 public key must be %d bytes, got %d", ed25519.PublicKeySize, len(raw))
	}
	k := make(ed25519.PublicKey, ed25519.PublicKeySize)
	copy(k, raw)
	return Ed25519PubKey{k: k}, nil
}

func (p Ed25519PubKey) Bytes() []byte { return append([]byte(nil), p.k...) }

func (p Ed25519PubKey) Address() cbconsensus.Address {
	sum := blake2b.Sum256(p.k)
	return cbconsensus.Address(fmt.Sprintf("%x", sum[:20]))
}

func (p Ed25519PubKey) Verify(msg, sig []byte) bool {
	return ed25519.Verify(p.k, msg, sig)
}

func (p Ed25519PubKey) Equal(other PubKey) bool {
	o, ok := other.(Ed25519PubKey)
	if !ok {
		return false
	}
	return p.k.Equal(o.k)
}

// Ed25519Signer signs with an in-memory ed25519 private key.
type Ed25519Signer struct {
	priv ed25519.PrivateKey
	pub  Ed25519PubKey
}

// NewEd25519Signer builds a Signer from a raw private key of exactly
// ed25519.PrivateKeySize bytes.
func NewEd25519Signer(priv ed25519.PrivateKey) (Ed25519Signer, error) {
	if len(priv) != ed25519.PrivateKeySize {
		return Ed25519Signer{}, errors.New("cbcrypto: malformed ed25519 private key")
	}
	pub, err := NewEd25519PubKey([]byte(priv.Public().(ed25519.PublicKey)))
	if err != nil {
		return Ed25519Signer{}, err
	}
	return Ed25519Signer{priv: priv, pub: pub}, nil
}

// GenerateEd25519Signer creates a fresh random signer, useful outside of
// deterministic test fixtures (see cbcryptotest for those).
func GenerateEd25519Signer() (Ed25519Signer, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return Ed25519Signer{}, err
	}
	return NewEd25519Signer(priv)
}

func (s Ed25519Signer) PubKey() PubKey { return s.pub }

func (s Ed25519Signer) Sign(msg []byte) (cbconsensus.Signature, error) {
	return cbconsensus.Signature(ed25519.Sign(s.priv, msg)), nil
}
