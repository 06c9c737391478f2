package cbconsensus

import "fmt"

// InvalidCertificateHeight is returned when a caller hands the core a
// CommitCertificate or PolkaCertificate for the wrong height. The input is
// rejected; this is non-fatal to the current height.
type InvalidCertificateHeight struct {
	CertificateHeight Height
	ConsensusHeight   Height
}

func (e InvalidCertificateHeight) Error() string {
	return fmt.Sprintf(
		"certificate height %d does not match consensus height %d",
		e.CertificateHeight, e.ConsensusHeight,
	)
}

// InvalidProposalHeight is returned when a caller hands the core a
// Proposal for the wrong height.
type InvalidProposalHeight struct {
	ProposalHeight  Height
	ConsensusHeight Height
}

func (e InvalidProposalHeight) Error() string {
	return fmt.Sprintf(
		"proposal height %d does not match consensus height %d",
		e.ProposalHeight, e.ConsensusHeight,
	)
}

// InvalidVoteHeight is returned when a caller hands the core a Vote for the
// wrong height.
type InvalidVoteHeight struct {
	VoteHeight      Height
	ConsensusHeight Height
}

func (e InvalidVoteHeight) Error() string {
	return fmt.Sprintf(
		"vote height %d does not match consensus height %d",
		e.VoteHeight, e.ConsensusHeight,
	)
}

// ValidatorNotFound is returned when a vote's voter address is not a member
// of the validator set at the current height.
type ValidatorNotFound struct {
	Address Address
}

func (e ValidatorNotFound) Error() string {
	return fmt.Sprintf("validator %q not found in validator set", e.Address)
}

// ProposerNotFound is returned when a proposer selector returns an address
// that is not a member of the validator set. This is always a caller bug.
type ProposerNotFound struct {
	Address Address
}

func (e ProposerNotFound) Error() string {
	return fmt.Sprintf("proposer %q not found in validator set", e.Address)
}

// NoProposer is returned internally when the Driver must transition a round
// but has no proposer on record for it -- NewRound was not properly routed.
// It is fatal to the current height but recoverable via Driver.MoveToHeight.
type NoProposer struct {
	Height Height
	Round  Round
}

func (e NoProposer) Error() string {
	return fmt.Sprintf("no proposer on record for height %d round %s", e.Height, e.Round)
}
