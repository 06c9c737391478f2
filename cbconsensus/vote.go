package cbconsensus

//go:generate stringer -type VoteKind -trimprefix VoteKind .

// VoteKind distinguishes a prevote from a precommit.
type VoteKind uint8

const (
	// VoteKindUnknown is the invalid zero value.
	VoteKindUnknown VoteKind = iota
	VoteKindPrevote
	VoteKindPrecommit
)

// Vote is a single validator's signed intent for a height/round: either a
// prevote or a precommit, targeting a value ID or nil.
type Vote struct {
	Kind   VoteKind
	Height Height
	Round  Round
	Value  NilOrVal[ValueID]
	Voter  Address

	// Extension carries an opaque, application-defined payload some
	// deployments attach to precommit votes (spec §9, "Vote extensions").
	// The core never interprets it; it is forwarded only so that it
	// round-trips through signing and certificate construction.
	Extension []byte
}

// Signature is an opaque signature over a Vote's or Proposal's canonical
// sign bytes. Its shape is entirely a capability (cbcrypto) concern; the
// core only ever stores and forwards it.
type Signature []byte

// SignedVote pairs a Vote with the Signature over its sign bytes.
type SignedVote struct {
	Vote      Vote
	Signature Signature
}
