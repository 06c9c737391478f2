package cbmux

import (
	"github.com/corebft/corebft/cbconsensus"
	"github.com/corebft/corebft/cbround"
)

// MultiplexProposal implements spec §4.4.1: given a freshly stored
// proposal and the Driver's current round/step/decision status, decide
// which RSM input (if any) to feed.
func MultiplexProposal(
	mx *Mux,
	currentRound cbconsensus.Round,
	step cbround.Step,
	hasDecision bool,
	proposal cbconsensus.SignedProposal,
	validity cbconsensus.Validity,
) *cbround.Input {
	p := proposal.Proposal
	pol := p.PolRound
	pr := p.Round
	id := p.Value.ID()
	cr := currentRound

	if cr.IsNil() {
		return nil
	}

	polNum, polDefined := pol.Number()
	crNum, _ := cr.Number()
	polkaPrevious := polDefined && polNum < crNum && mx.prevoteQuorum(pol, id)

	if !validity.IsValid() {
		if step != cbround.StepPropose {
			return nil
		}
		if pol.IsNil() {
			in := cbround.InvalidProposalInput()
			return &in
		}
		if polkaPrevious {
			in := cbround.InvalidProposalAndPolkaPreviousInput(p)
			return &in
		}
		return nil
	}

	if !hasDecision && mx.precommitMet(pr, id) {
		in := cbround.ProposalAndPrecommitValueInput(p)
		return &in
	}
	if pr != cr {
		return nil
	}

	polkaForCurrent := mx.prevoteQuorum(pr, id)
	polkaCurrent := polkaForCurrent && step >= cbround.StepPrevote

	switch {
	case polkaCurrent:
		in := cbround.ProposalAndPolkaCurrentInput(p)
		return &in
	case step == cbround.StepPropose && polkaPrevious:
		in := cbround.ProposalAndPolkaPreviousInput(p)
		return &in
	case pol.IsNil():
		in := cbround.ProposalInput(p)
		return &in
	default:
		return nil
	}
}
