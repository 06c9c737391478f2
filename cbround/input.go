package cbround

import "github.com/corebft/corebft/cbconsensus"

// InputKind discriminates the variants of Input (spec §4.1).
type InputKind uint8

const (
	InputNoInput InputKind = iota
	InputNewRound
	InputProposeValue
	InputProposal
	InputProposalAndPolkaPrevious
	InputProposalAndPolkaCurrent
	InputProposalAndPrecommitValue
	InputInvalidProposal
	InputInvalidProposalAndPolkaPrevious
	InputPolkaValue
	InputPolkaAny
	InputPolkaNil
	InputPrecommitAny
	InputPrecommitValue
	InputSkipRound
	InputTimeoutPropose
	InputTimeoutPrevote
	InputTimeoutPrecommit
)

//go:generate stringer -type InputKind -trimprefix Input .

// Input is the tagged union of every event the RSM consumes. Only the
// fields relevant to Kind are populated; see the per-kind constructors
// below for the canonical way to build one.
type Input struct {
	Kind InputKind

	Round    cbconsensus.Round   // NewRound, SkipRound
	Value    cbconsensus.Value   // ProposeValue
	ValueID  cbconsensus.ValueID // PolkaValue, PrecommitValue
	Proposal cbconsensus.Proposal
}

func NewRoundInput(r cbconsensus.Round) Input { return Input{Kind: InputNewRound, Round: r} }

func ProposeValueInput(v cbconsensus.Value) Input { return Input{Kind: InputProposeValue, Value: v} }

func ProposalInput(p cbconsensus.Proposal) Input { return Input{Kind: InputProposal, Proposal: p} }

func ProposalAndPolkaPreviousInput(p cbconsensus.Proposal) Input {
	return Input{Kind: InputProposalAndPolkaPrevious, Proposal: p}
}

func ProposalAndPolkaCurrentInput(p cbconsensus.Proposal) Input {
	return Input{Kind: InputProposalAndPolkaCurrent, Proposal: p}
}

func ProposalAndPrecommitValueInput(p cbconsensus.Proposal) Input {
	return Input{Kind: InputProposalAndPrecommitValue, Proposal: p}
}

func InvalidProposalInput() Input { return Input{Kind: InputInvalidProposal} }

func InvalidProposalAndPolkaPreviousInput(p cbconsensus.Proposal) Input {
	return Input{Kind: InputInvalidProposalAndPolkaPrevious, Proposal: p}
}

func PolkaValueInput(id cbconsensus.ValueID) Input { return Input{Kind: InputPolkaValue, ValueID: id} }

func PolkaAnyInput() Input { return Input{Kind: InputPolkaAny} }

func PolkaNilInput() Input { return Input{Kind: InputPolkaNil} }

func PrecommitAnyInput() Input { return Input{Kind: InputPrecommitAny} }

func PrecommitValueInput(id cbconsensus.ValueID) Input {
	return Input{Kind: InputPrecommitValue, ValueID: id}
}

func SkipRoundInput(r cbconsensus.Round) Input { return Input{Kind: InputSkipRound, Round: r} }

func TimeoutProposeInput() Input { return Input{Kind: InputTimeoutPropose} }

func TimeoutPrevoteInput() Input { return Input{Kind: InputTimeoutPrevote} }

func TimeoutPrecommitInput() Input { return Input{Kind: InputTimeoutPrecommit} }

// Info carries the per-call context the RSM needs but does not own:
// who is proposing the round under consideration, and which address this
// node is acting as.
type Info struct {
	InputRound      cbconsensus.Round
	Address         cbconsensus.Address
	ProposerAddress cbconsensus.Address
}

func (i Info) isProposer() bool { return i.Address == i.ProposerAddress }
