package cbconsensus

import (
	"golang.org/x/crypto/blake2b"
)

// Validator is a single member of a ValidatorSet.
type Validator struct {
	Address     Address
	PubKey      PubKey
	VotingPower uint64
}

// PubKey is the subset of signature-verification capability (spec §6.1)
// that the data model needs to reference; concrete schemes live in
// package cbcrypto, which this package does not import, to keep
// cbconsensus free of any particular cryptographic primitive.
type PubKey interface {
	// Bytes returns the canonical encoding of the public key.
	Bytes() []byte
}

// ValidatorSet is an ordered, fixed set of validators for a given height.
type ValidatorSet struct {
	Validators []Validator
}

// NewValidatorSet returns a ValidatorSet over the given validators, in the
// order given. The order is significant: it is used for deterministic
// validator indices (e.g. bitset positions in cbvotekeeper) and must be
// identical across every node observing the same height.
func NewValidatorSet(vs []Validator) ValidatorSet {
	out := make([]Validator, len(vs))
	copy(out, vs)
	return ValidatorSet{Validators: out}
}

// Len returns the number of validators in the set.
func (vs ValidatorSet) Len() int {
	return len(vs.Validators)
}

// GetByAddress returns the validator with the given address, if present.
func (vs ValidatorSet) GetByAddress(addr Address) (Validator, bool) {
	for _, v := range vs.Validators {
		if v.Address == addr {
			return v, true
		}
	}
	return Validator{}, false
}

// IndexOf returns the position of addr within vs.Validators, or -1 if absent.
// Used by cbvotekeeper to map a voter to a bitset position.
func (vs ValidatorSet) IndexOf(addr Address) int {
	for i, v := range vs.Validators {
		if v.Address == addr {
			return i
		}
	}
	return -1
}

// TotalVotingPower returns the sum of every validator's voting power.
func (vs ValidatorSet) TotalVotingPower() uint64 {
	var total uint64
	for _, v := range vs.Validators {
		total += v.VotingPower
	}
	return total
}

// Hash returns a deterministic BLAKE2b-256 digest of the validator set,
// suitable as the PubKeyHash quick-equality check described for
// CommonMessageSignatureProof-shaped signature proofs (spec §6.3).
func (vs ValidatorSet) Hash() [32]byte {
	h, err := blake2b.New256(nil)
	if err != nil {
		// blake2b.New256 only errors for an oversized key, and we pass none.
		panic(err)
	}
	for _, v := range vs.Validators {
		h.Write([]byte(v.Address))
		var powBuf [8]byte
		putUint64(powBuf[:], v.VotingPower)
		h.Write(powBuf[:])
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func putUint64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (56 - 8*i))
	}
}

// Thresholds are the three quorum boundaries the Vote Keeper checks
// against accumulated voting power (spec §3, §4.2).
type Thresholds struct {
	// Quorum is the strict "+2/3" boundary: floor(2*total/3) + 1.
	Quorum uint64
	// Skip is the strict "+1/3" boundary: floor(total/3) + 1.
	Skip uint64
	// Total is the validator set's total voting power.
	Total uint64
}

// ComputeThresholds derives the quorum, skip, and total thresholds for vs.
func ComputeThresholds(vs ValidatorSet) Thresholds {
	total := vs.TotalVotingPower()
	return Thresholds{
		// floor(2*total/3) + 1; Go's integer division already floors for
		// non-negative operands.
		Quorum: (2*total)/3 + 1,
		Skip:   total/3 + 1,
		Total:  total,
	}
}
