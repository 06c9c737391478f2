package cbmux

import (
	"github.com/corebft/corebft/cbconsensus"
	"github.com/corebft/corebft/cbround"
	"github.com/corebft/corebft/cbvotekeeper"
)

// MultiplexStepChange implements spec §4.4.3: immediately after a
// transition that changes step to something other than Unstarted, scan
// stored proposals for round and enqueue whatever further inputs the new
// step warrants.
func MultiplexStepChange(
	mx *Mux,
	round cbconsensus.Round,
	step cbround.Step,
	hasDecision bool,
) []PendingInput {
	if step == cbround.StepUnstarted {
		return nil
	}

	var pending []PendingInput

	if step == cbround.StepPropose {
		for _, entry := range mx.PK.AllInRound(round) {
			if in := MultiplexProposal(mx, round, step, hasDecision, entry.Proposal, entry.Validity); in != nil {
				pending = append(pending, PendingInput{Round: round, Input: *in})
			}
		}
	}

	if step == cbround.StepPrevote {
		for _, entry := range mx.PK.AllInRound(round) {
			if !entry.Validity.IsValid() {
				continue
			}
			id := entry.Proposal.Proposal.Value.ID()
			if mx.VK.ThresholdMet(round, cbconsensus.VoteKindPrevote, cbconsensus.Val(id)) {
				threshold := cbvotekeeper.Threshold{Kind: cbvotekeeper.ThresholdPolkaValue, Value: id}
				if pi := MultiplexVoteThreshold(mx, threshold, round, round); pi != nil {
					pending = append(pending, *pi)
				}
				break
			}
		}
	}

	switch {
	case mx.VK.ThresholdAnyMet(round, cbconsensus.VoteKindPrecommit):
		pending = append(pending, PendingInput{Round: round, Input: cbround.PrecommitAnyInput()})
	case mx.VK.ThresholdMet(round, cbconsensus.VoteKindPrevote, cbconsensus.Nil[cbconsensus.ValueID]()):
		pending = append(pending, PendingInput{Round: round, Input: cbround.PolkaNilInput()})
	case mx.VK.ThresholdAnyMet(round, cbconsensus.VoteKindPrevote):
		pending = append(pending, PendingInput{Round: round, Input: cbround.PolkaAnyInput()})
	}

	return pending
}
