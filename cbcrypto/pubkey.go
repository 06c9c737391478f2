// Package cbcrypto provides the concrete default implementations of the
// signing/verification capability the consensus core treats as abstract
// (spec §6.1). The core itself never imports this package; a host wires a
// cbcrypto.Signer and cbcrypto.SignatureScheme (or its own) into
// cbdriver.New.
package cbcrypto

import "github.com/corebft/corebft/cbconsensus"

// PubKey is a validator public key capable of verifying signatures
// produced by the matching Signer.
type PubKey interface {
	// Bytes returns the canonical encoding of the public key.
	// Satisfies cbconsensus.PubKey.
	Bytes() []byte

	// Address derives the validator address from the public key.
	Address() cbconsensus.Address

	// Verify reports whether sig is a valid signature over msg by this key.
	Verify(msg, sig []byte) bool

	// Equal reports whether other is the same public key.
	Equal(other PubKey) bool
}

// Signer produces signatures on behalf of a single validator.
type Signer interface {
	PubKey() PubKey
	Sign(msg []byte) (cbconsensus.Signature, error)
}
