package cbdriver

import (
	"github.com/corebft/corebft/cbconsensus"
	"github.com/corebft/corebft/cbround"
)

// OutputKind discriminates the variants of Output, lifted from
// cbround.Output per spec §4.5.1.
type OutputKind uint8

const (
	OutputNewRound OutputKind = iota
	OutputPropose
	OutputVote
	OutputScheduleTimeout
	OutputGetValue
	OutputDecide
)

//go:generate stringer -type OutputKind -trimprefix Output .

// Output is the tagged union of every effect a Driver call may request
// of its host (spec §6.2).
type Output struct {
	Kind OutputKind

	Height cbconsensus.Height // NewRound, GetValue
	Round  cbconsensus.Round  // NewRound, GetValue, Decide

	Proposal cbconsensus.SignedProposal // Propose, Decide

	Vote cbconsensus.SignedVote // Vote

	Timeout cbround.Timeout // ScheduleTimeout, GetValue
}

// lift translates a single cbround.Output into zero, one, or two Outputs
// (spec §4.5.1 — GetValueAndScheduleTimeout lifts to two, in timeout-first
// order).
func lift(height cbconsensus.Height, o *cbround.Output) []Output {
	if o == nil {
		return nil
	}
	switch o.Kind {
	case cbround.OutputNewRound:
		return []Output{{Kind: OutputNewRound, Height: height, Round: o.Round}}

	case cbround.OutputProposal:
		return []Output{{Kind: OutputPropose, Proposal: cbconsensus.SignedProposal{Proposal: o.Proposal}}}

	case cbround.OutputVote:
		return []Output{{Kind: OutputVote, Vote: cbconsensus.SignedVote{Vote: o.Vote}}}

	case cbround.OutputScheduleTimeout:
		return []Output{{Kind: OutputScheduleTimeout, Timeout: o.Timeout}}

	case cbround.OutputGetValueAndScheduleTimeout:
		return []Output{
			{Kind: OutputScheduleTimeout, Timeout: o.Timeout},
			{Kind: OutputGetValue, Height: o.GetValueHeight, Round: o.GetValueRound, Timeout: o.Timeout},
		}

	case cbround.OutputDecision:
		return []Output{{Kind: OutputDecide, Round: o.DecisionRound, Proposal: cbconsensus.SignedProposal{Proposal: o.Proposal}}}

	default:
		return nil
	}
}
