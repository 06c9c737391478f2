package cbround

import "github.com/corebft/corebft/cbconsensus"

// Apply is the RSM's transition function: given the current state, the
// round's proposer context, and one input, it mutates state in place and
// returns the single Output produced, or nil if the (step, input) pair is
// a no-op.
//
// Apply never errors and never blocks; it is the pure core described by
// invariant I4 (identical state, info, input always yields identical
// state', output).
func Apply(s *State, info Info, in Input) *Output {
	switch in.Kind {
	case InputNewRound:
		return applyNewRound(s, info, in.Round)

	case InputProposeValue:
		return applyProposeValue(s, info, in.Value)

	case InputProposal:
		return applyProposal(s, info, in.Proposal)

	case InputProposalAndPolkaPrevious:
		return applyProposalAndPolkaPrevious(s, info, in.Proposal)

	case InputProposalAndPolkaCurrent:
		return applyProposalAndPolkaCurrent(s, info, in.Proposal)

	case InputProposalAndPrecommitValue:
		return applyProposalAndPrecommitValue(s, in.Proposal)

	case InputInvalidProposal:
		return applyInvalidProposal(s, info)

	case InputInvalidProposalAndPolkaPrevious:
		return applyInvalidProposalAndPolkaPrevious(s, info)

	case InputPolkaValue:
		return applyPolkaValue(s, info)

	case InputPolkaAny:
		return applyPolkaAny(s, info)

	case InputPolkaNil:
		return applyPolkaNil(s, info)

	case InputPrecommitAny:
		return applyPrecommitAny(s, info)

	case InputPrecommitValue:
		return applyPrecommitValue(s, info)

	case InputSkipRound:
		return applySkipRound(s, in.Round)

	case InputTimeoutPropose:
		return applyTimeoutPropose(s, info)

	case InputTimeoutPrevote:
		return applyTimeoutPrevote(s, info)

	case InputTimeoutPrecommit:
		return applyTimeoutPrecommit(s, info)

	default:
		return nil
	}
}

// applyNewRound implements L11-L21: entering a round, as proposer or not.
func applyNewRound(s *State, info Info, r cbconsensus.Round) *Output {
	s.Round = r
	s.Step = StepPropose

	if info.isProposer() {
		if s.Valid != nil {
			p := cbconsensus.Proposal{
				Height:   s.Height,
				Round:    r,
				Value:    s.Valid.Value,
				PolRound: s.Valid.Round,
				Proposer: info.Address,
			}
			return proposalOutput(p)
		}
		return getValueOutput(s.Height, r, Timeout{Kind: TimeoutKindPropose, Round: r})
	}
	return scheduleTimeoutOutput(Timeout{Kind: TimeoutKindPropose, Round: r})
}

// applyProposeValue implements the proposer supplying a freshly built
// value with no proof of lock.
func applyProposeValue(s *State, info Info, v cbconsensus.Value) *Output {
	if s.Step != StepPropose || !info.isProposer() || s.Valid != nil {
		return nil
	}
	p := cbconsensus.Proposal{
		Height:   s.Height,
		Round:    s.Round,
		Value:    v,
		PolRound: cbconsensus.RoundNil,
		Proposer: info.Address,
	}
	return proposalOutput(p)
}

// applyProposal implements L22-L26: a plain proposal with no POL round.
func applyProposal(s *State, info Info, p cbconsensus.Proposal) *Output {
	if s.Step != StepPropose {
		return nil
	}
	v := prevoteFor(s, info, p)
	s.Step = StepPrevote
	return voteOutput(v)
}

// applyProposalAndPolkaPrevious implements L28-L30.
func applyProposalAndPolkaPrevious(s *State, info Info, p cbconsensus.Proposal) *Output {
	if s.Step != StepPropose {
		return nil
	}
	var prevote cbconsensus.NilOrVal[cbconsensus.ValueID]
	if s.Locked == nil || s.Locked.Round <= p.PolRound || lockedMatches(s, p) {
		prevote = cbconsensus.Val(p.Value.ID())
	} else {
		prevote = cbconsensus.Nil[cbconsensus.ValueID]()
	}
	v := cbconsensus.Vote{
		Kind: cbconsensus.VoteKindPrevote, Height: s.Height, Round: s.Round,
		Value: prevote, Voter: info.Address,
	}
	s.Step = StepPrevote
	return voteOutput(v)
}

// applyProposalAndPolkaCurrent implements L36-L43.
func applyProposalAndPolkaCurrent(s *State, info Info, p cbconsensus.Proposal) *Output {
	switch s.Step {
	case StepPrevote:
		s.Locked = &LockedOrValid{Value: p.Value, Round: s.Round}
		s.Valid = &LockedOrValid{Value: p.Value, Round: s.Round}
		v := cbconsensus.Vote{
			Kind: cbconsensus.VoteKindPrecommit, Height: s.Height, Round: s.Round,
			Value: cbconsensus.Val(p.Value.ID()), Voter: info.Address,
		}
		s.Step = StepPrecommit
		return voteOutput(v)

	case StepPrecommit:
		s.Valid = &LockedOrValid{Value: p.Value, Round: s.Round}
		return nil

	default:
		return nil
	}
}

// applyProposalAndPrecommitValue implements L49-L54: a decision may be
// reached regardless of the current round/step, as long as none has been
// made yet.
func applyProposalAndPrecommitValue(s *State, p cbconsensus.Proposal) *Output {
	if s.Decision != nil {
		return nil
	}
	s.Decision = &Decision{Round: p.Round, Proposal: p}
	s.Step = StepCommit
	return decisionOutput(p.Round, p)
}

// applyInvalidProposal implements L26's invalid branch: only actionable
// in Propose.
func applyInvalidProposal(s *State, info Info) *Output {
	if s.Step != StepPropose {
		return nil
	}
	v := cbconsensus.Vote{
		Kind: cbconsensus.VoteKindPrevote, Height: s.Height, Round: s.Round,
		Value: cbconsensus.Nil[cbconsensus.ValueID](), Voter: info.Address,
	}
	s.Step = StepPrevote
	return voteOutput(v)
}

// applyInvalidProposalAndPolkaPrevious implements L32.
func applyInvalidProposalAndPolkaPrevious(s *State, info Info) *Output {
	if s.Step != StepPropose {
		return nil
	}
	v := cbconsensus.Vote{
		Kind: cbconsensus.VoteKindPrevote, Height: s.Height, Round: s.Round,
		Value: cbconsensus.Nil[cbconsensus.ValueID](), Voter: info.Address,
	}
	s.Step = StepPrevote
	return voteOutput(v)
}

// applyPolkaAny implements L34: the once-only prevote timeout.
func applyPolkaAny(s *State, _ Info) *Output {
	if s.Step != StepPrevote {
		return nil
	}
	if s.markPolkaAnyScheduled(s.Round) {
		return nil
	}
	return scheduleTimeoutOutput(Timeout{Kind: TimeoutKindPrevote, Round: s.Round})
}

// applyPolkaValue is reached only when the multiplexer could not resolve
// a matching proposal into ProposalAndPolkaCurrent/Previous; as a bare
// RSM input it behaves like PolkaAny (the once-only prevote timeout).
func applyPolkaValue(s *State, info Info) *Output {
	return applyPolkaAny(s, info)
}

// applyPolkaNil implements L44.
func applyPolkaNil(s *State, info Info) *Output {
	if s.Step != StepPrevote {
		return nil
	}
	v := cbconsensus.Vote{
		Kind: cbconsensus.VoteKindPrecommit, Height: s.Height, Round: s.Round,
		Value: cbconsensus.Nil[cbconsensus.ValueID](), Voter: info.Address,
	}
	s.Step = StepPrecommit
	return voteOutput(v)
}

// applyPrecommitAny implements L47: the once-only precommit timeout, at
// any step.
func applyPrecommitAny(s *State, _ Info) *Output {
	if s.markPrecommitAnyScheduled(s.Round) {
		return nil
	}
	return scheduleTimeoutOutput(Timeout{Kind: TimeoutKindPrecommit, Round: s.Round})
}

// applyPrecommitValue behaves like PrecommitAny as a bare RSM input; the
// multiplexer is responsible for turning a resolved PrecommitValue into
// ProposalAndPrecommitValue when a matching proposal is known.
func applyPrecommitValue(s *State, info Info) *Output {
	return applyPrecommitAny(s, info)
}

// applySkipRound implements L55.
func applySkipRound(s *State, r cbconsensus.Round) *Output {
	cur, _ := s.Round.Number()
	next, ok := r.Number()
	if !ok || (s.Round.IsDefined() && next <= cur) {
		return nil
	}
	s.Step = StepUnstarted
	return newRoundOutput(r)
}

// applyTimeoutPropose implements L57-L59.
func applyTimeoutPropose(s *State, info Info) *Output {
	if s.Step != StepPropose {
		return nil
	}
	v := cbconsensus.Vote{
		Kind: cbconsensus.VoteKindPrevote, Height: s.Height, Round: s.Round,
		Value: cbconsensus.Nil[cbconsensus.ValueID](), Voter: info.Address,
	}
	s.Step = StepPrevote
	return voteOutput(v)
}

// applyTimeoutPrevote implements L61.
func applyTimeoutPrevote(s *State, info Info) *Output {
	if s.Step != StepPrevote {
		return nil
	}
	v := cbconsensus.Vote{
		Kind: cbconsensus.VoteKindPrecommit, Height: s.Height, Round: s.Round,
		Value: cbconsensus.Nil[cbconsensus.ValueID](), Voter: info.Address,
	}
	s.Step = StepPrecommit
	return voteOutput(v)
}

// applyTimeoutPrecommit implements L65.
func applyTimeoutPrecommit(s *State, _ Info) *Output {
	r := s.Round.Next()
	s.Step = StepUnstarted
	return newRoundOutput(r)
}

// prevoteFor implements the plain-proposal prevote rule (L22-L26): prevote
// the value unless we're locked on something else.
func prevoteFor(s *State, info Info, p cbconsensus.Proposal) cbconsensus.Vote {
	var val cbconsensus.NilOrVal[cbconsensus.ValueID]
	if s.Locked == nil || lockedMatches(s, p) {
		val = cbconsensus.Val(p.Value.ID())
	} else {
		val = cbconsensus.Nil[cbconsensus.ValueID]()
	}
	return cbconsensus.Vote{
		Kind: cbconsensus.VoteKindPrevote, Height: s.Height, Round: s.Round,
		Value: val, Voter: info.Address,
	}
}

func lockedMatches(s *State, p cbconsensus.Proposal) bool {
	return s.Locked != nil && s.Locked.Value.ID() == p.Value.ID()
}
