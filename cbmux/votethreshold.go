package cbmux

import (
	"github.com/corebft/corebft/cbconsensus"
	"github.com/corebft/corebft/cbround"
	"github.com/corebft/corebft/cbvotekeeper"
)

// MultiplexVoteThreshold implements spec §4.4.2: translate a Vote
// Keeper threshold-crossing event into the RSM input (if any) and the
// round it applies to.
//
// thresholdRound is the round whose PerRound table produced threshold;
// currentRound is the Driver's present round, needed only for the
// PolkaValue lookup table.
func MultiplexVoteThreshold(
	mx *Mux,
	threshold cbvotekeeper.Threshold,
	thresholdRound cbconsensus.Round,
	currentRound cbconsensus.Round,
) *PendingInput {
	switch threshold.Kind {
	case cbvotekeeper.ThresholdPolkaAny:
		return &PendingInput{Round: thresholdRound, Input: cbround.PolkaAnyInput()}

	case cbvotekeeper.ThresholdPolkaNil:
		return &PendingInput{Round: thresholdRound, Input: cbround.PolkaNilInput()}

	case cbvotekeeper.ThresholdPrecommitAny:
		return &PendingInput{Round: thresholdRound, Input: cbround.PrecommitAnyInput()}

	case cbvotekeeper.ThresholdSkipRound:
		return &PendingInput{Round: thresholdRound, Input: cbround.SkipRoundInput(threshold.Round)}

	case cbvotekeeper.ThresholdPrecommitValue:
		return mx.multiplexPrecommitValue(threshold.Value, thresholdRound)

	case cbvotekeeper.ThresholdPolkaValue:
		return mx.multiplexPolkaValue(threshold.Value, thresholdRound, currentRound)

	default:
		return nil
	}
}

func (mx *Mux) multiplexPrecommitValue(v cbconsensus.ValueID, thresholdRound cbconsensus.Round) *PendingInput {
	entry, found := mx.PK.Lookup(thresholdRound, v)
	if found && entry.Validity.IsValid() {
		return &PendingInput{Round: thresholdRound, Input: cbround.ProposalAndPrecommitValueInput(entry.Proposal.Proposal)}
	}
	return &PendingInput{Round: thresholdRound, Input: cbround.PrecommitAnyInput()}
}

func (mx *Mux) multiplexPolkaValue(v cbconsensus.ValueID, thresholdRound, currentRound cbconsensus.Round) *PendingInput {
	entry, found := mx.PK.Lookup(currentRound, v)
	if !found {
		return &PendingInput{Round: thresholdRound, Input: cbround.PolkaAnyInput()}
	}

	p := entry.Proposal.Proposal
	polMatches := p.PolRound == thresholdRound
	proposalRoundMatches := currentRound == thresholdRound

	switch {
	case !entry.Validity.IsValid() && polMatches:
		return &PendingInput{Round: p.Round, Input: cbround.InvalidProposalAndPolkaPreviousInput(p)}
	case entry.Validity.IsValid() && polMatches:
		return &PendingInput{Round: p.Round, Input: cbround.ProposalAndPolkaPreviousInput(p)}
	case entry.Validity.IsValid() && !polMatches && proposalRoundMatches:
		return &PendingInput{Round: thresholdRound, Input: cbround.ProposalAndPolkaCurrentInput(p)}
	default:
		return &PendingInput{Round: thresholdRound, Input: cbround.PolkaAnyInput()}
	}
}
