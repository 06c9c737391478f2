package cbconsensus

//go:generate stringer -type RoundCertificateKind -trimprefix RoundCertificateKind .

// CertSignature is one validator's contribution to a certificate: its
// address and the signature it produced over the certified vote.
//
// This mirrors the wire layout given in spec §6.3 exactly -
// "signatures[], where each signature entry is (address, signature_bytes)" -
// deliberately not an aggregated signature, so that the shape a host
// serializes matches the shape the core asks for back on CommitCertificate
// and PolkaCertificate inputs.
type CertSignature struct {
	Address   Address
	Signature Signature
}

// CommitCertificate is sufficient proof that a value was decided: a quorum
// of precommit signatures for (height, round, Val(valueID)).
type CommitCertificate struct {
	Height     Height
	Round      Round
	ValueID    ValueID
	Signatures []CertSignature
}

// PolkaCertificate is proof that a polka (quorum of prevotes for a single
// value) occurred in a round.
type PolkaCertificate struct {
	Height     Height
	Round      Round
	ValueID    ValueID
	Signatures []CertSignature
}

// RoundCertificateKind distinguishes the two reasons a round may be
// entered on justification of other validators' votes rather than this
// node's own round progression.
type RoundCertificateKind uint8

const (
	// RoundCertificateKindUnknown is the invalid zero value.
	RoundCertificateKindUnknown RoundCertificateKind = iota
	// RoundCertificateKindPrecommit justifies moving to SourceRound+1 after
	// observing a precommit quorum (any value) in SourceRound.
	RoundCertificateKindPrecommit
	// RoundCertificateKindSkip justifies skipping ahead to EnterRound after
	// observing f+1 voting power in a future round.
	RoundCertificateKindSkip
)

// EnterRoundCertificate justifies a Driver moving directly to EnterRound
// without having completed every intervening round itself.
type EnterRoundCertificate struct {
	Height      Height
	EnterRound  Round
	SourceRound Round
	Kind        RoundCertificateKind
	Votes       []SignedVote
}
