package cbdriver

import (
	"github.com/corebft/corebft/cbconsensus"
	"github.com/corebft/corebft/cbround"
)

// InputKind discriminates the variants of Input, the Driver's public
// entry points (spec §4.5).
type InputKind uint8

const (
	InputNewRound InputKind = iota
	InputProposeValue
	InputProposal
	InputVote
	InputCommitCertificate
	InputPolkaCertificate
	InputTimeoutElapsed
)

//go:generate stringer -type InputKind -trimprefix Input .

// Input is the tagged union of every event a Driver accepts from its
// host: a new round with its resolved proposer, a freshly built value,
// an incoming proposal or vote, a certificate supplied out of band, or a
// timeout firing back.
type Input struct {
	Kind InputKind

	Height   cbconsensus.Height // NewRound, certificates (for a height mismatch check)
	Round    cbconsensus.Round
	Proposer cbconsensus.Address // NewRound

	Value cbconsensus.Value // ProposeValue

	Proposal cbconsensus.SignedProposal // Proposal
	Validity cbconsensus.Validity       // Proposal

	Vote cbconsensus.SignedVote // Vote

	CommitCertificate cbconsensus.CommitCertificate // CommitCertificate
	PolkaCertificate  cbconsensus.PolkaCertificate   // PolkaCertificate

	Timeout cbround.Timeout // TimeoutElapsed
}

func NewRoundInput(height cbconsensus.Height, round cbconsensus.Round, proposer cbconsensus.Address) Input {
	return Input{Kind: InputNewRound, Height: height, Round: round, Proposer: proposer}
}

func ProposeValueInput(round cbconsensus.Round, v cbconsensus.Value) Input {
	return Input{Kind: InputProposeValue, Round: round, Value: v}
}

func ProposalInput(p cbconsensus.SignedProposal, validity cbconsensus.Validity) Input {
	return Input{Kind: InputProposal, Proposal: p, Validity: validity}
}

func VoteInput(v cbconsensus.SignedVote) Input {
	return Input{Kind: InputVote, Vote: v}
}

func CommitCertificateInput(c cbconsensus.CommitCertificate) Input {
	return Input{Kind: InputCommitCertificate, Height: c.Height, CommitCertificate: c}
}

func PolkaCertificateInput(c cbconsensus.PolkaCertificate) Input {
	return Input{Kind: InputPolkaCertificate, Height: c.Height, PolkaCertificate: c}
}

func TimeoutElapsedInput(t cbround.Timeout) Input {
	return Input{Kind: InputTimeoutElapsed, Timeout: t}
}
