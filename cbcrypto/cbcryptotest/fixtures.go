// Package cbcryptotest provides deterministic validator fixtures for tests,
// so that runs are reproducible and logs involving addresses or keys don't
// change from one run to the next.
package cbcryptotest

import (
	"crypto/ed25519"
	"crypto/sha256"

	petname "github.com/dustinkirkland/golang-petname"

	"github.com/corebft/corebft/cbconsensus"
	"github.com/corebft/corebft/cbcrypto"
)

// PrivVal pairs a validator record with the signer able to act on its
// behalf, for use in test fixtures that need both.
type PrivVal struct {
	Val    cbconsensus.Validator
	Signer cbcrypto.Signer
	Name   string
}

// PrivVals is a convenience slice of PrivVal with accessors mirroring the
// shapes tests most often need.
type PrivVals []PrivVal

// Validators extracts just the Validator half of each entry.
func (vs PrivVals) Validators() []cbconsensus.Validator {
	out := make([]cbconsensus.Validator, len(vs))
	for i, v := range vs {
		out[i] = v.Val
	}
	return out
}

// ValidatorSet builds a cbconsensus.ValidatorSet from the fixture.
func (vs PrivVals) ValidatorSet() cbconsensus.ValidatorSet {
	return cbconsensus.NewValidatorSet(vs.Validators())
}

// SignerFor returns the Signer belonging to addr, or nil if none matches.
func (vs PrivVals) SignerFor(addr cbconsensus.Address) cbcrypto.Signer {
	for _, v := range vs {
		if v.Val.Address == addr {
			return v.Signer
		}
	}
	return nil
}

// DeterministicEd25519Signers returns n signers derived from a fixed seed
// sequence. Keys are cached per process so repeated calls across a test
// binary are effectively free after the first.
func DeterministicEd25519Signers(n int) []cbcrypto.Ed25519Signer {
	out := make([]cbcrypto.Ed25519Signer, n)
	for i := range out {
		out[i] = deterministicSignerCache.get(i)
	}
	return out
}

// DeterministicValidatorsEd25519 returns n validators with ed25519 keys and
// descending voting power, so their natural array order matches the
// deterministic key order.
//
// Power descends from a large base so that equal-power ties never occur
// for reasonably small n, which keeps validator ordering in fixtures
// stable and predictable.
func DeterministicValidatorsEd25519(n int) PrivVals {
	out := make(PrivVals, n)
	signers := DeterministicEd25519Signers(n)

	for i := range out {
		pub := signers[i].PubKey()
		out[i] = PrivVal{
			Val: cbconsensus.Validator{
				Address:     pub.Address(),
				PubKey:      pub,
				VotingPower: uint64(100_000 - i),
			},
			Signer: signers[i],
			Name:   petname.Generate(2, "-"),
		}
	}

	return out
}

type signerCache struct {
	signers []cbcrypto.Ed25519Signer
}

func (c *signerCache) get(i int) cbcrypto.Ed25519Signer {
	for len(c.signers) <= i {
		seed := sha256.Sum256([]byte{byte(len(c.signers)), byte(len(c.signers) >> 8)})
		priv := ed25519.NewKeyFromSeed(seed[:ed25519.SeedSize])
		signer, err := cbcrypto.NewEd25519Signer(priv)
		if err != nil {
			// Deterministic construction from a fixed-size seed cannot fail.
			panic(err)
		}
		c.signers = append(c.signers, signer)
	}
	return c.signers[i]
}

var deterministicSignerCache signerCache
