package cbvotekeeper

import "github.com/corebft/corebft/cbconsensus"

// VoteKeeper accumulates signed votes for a single height's rounds and
// reports threshold-crossing events exactly once each (spec §4.2). A
// VoteKeeper is created fresh per height and discarded on
// move_to_height.
type VoteKeeper struct {
	validators cbconsensus.ValidatorSet
	thresholds cbconsensus.Thresholds

	rounds map[int64]*PerRound
}

// New creates a VoteKeeper for a height with the given validator set.
func New(validators cbconsensus.ValidatorSet) *VoteKeeper {
	return &VoteKeeper{
		validators: validators,
		thresholds: cbconsensus.ComputeThresholds(validators),
		rounds:     make(map[int64]*PerRound),
	}
}

// Round returns the PerRound table for r, creating it if necessary.
func (vk *VoteKeeper) Round(r cbconsensus.Round) *PerRound {
	n, ok := r.Number()
	if !ok {
		return nil
	}
	key := int64(n)
	pr, ok := vk.rounds[key]
	if !ok {
		pr = newPerRound()
		vk.rounds[key] = pr
	}
	return pr
}

// Rounds returns every round number with a non-empty PerRound table, in
// no particular order.
func (vk *VoteKeeper) Rounds() []cbconsensus.Round {
	out := make([]cbconsensus.Round, 0, len(vk.rounds))
	for n, pr := range vk.rounds {
		if len(pr.receivedVotes) == 0 {
			continue
		}
		out = append(out, cbconsensus.NewRound(uint32(n)))
	}
	return out
}

// PruneVotes drops every per-round table for rounds strictly below
// minRound (spec §4.2 "Pruning").
func (vk *VoteKeeper) PruneVotes(minRound cbconsensus.Round) {
	min, ok := minRound.Number()
	if !ok {
		return
	}
	for k := range vk.rounds {
		if k < int64(min) {
			delete(vk.rounds, k)
		}
	}
}

// roundReadOnly returns the PerRound table for r without creating one, so
// read-only queries never mutate the keeper.
func (vk *VoteKeeper) roundReadOnly(r cbconsensus.Round) *PerRound {
	n, ok := r.Number()
	if !ok {
		return nil
	}
	return vk.rounds[int64(n)]
}

// ThresholdMet reports whether the accumulated votes of kind for round r
// already reached quorum for the given target, without consuming the
// once-only emission bookkeeping. This backs the multiplexer's
// `votekeeper.threshold_met` lookups (spec §4.4.1-4.4.2).
func (vk *VoteKeeper) ThresholdMet(r cbconsensus.Round, kind cbconsensus.VoteKind, target cbconsensus.NilOrVal[cbconsensus.ValueID]) bool {
	pr := vk.roundReadOnly(r)
	if pr == nil {
		return false
	}
	return pr.PowerForValue(kind, target) >= vk.thresholds.Quorum
}

// ThresholdAnyMet reports whether the accumulated votes of kind for round
// r already reached quorum against any target (value or nil combined).
func (vk *VoteKeeper) ThresholdAnyMet(r cbconsensus.Round, kind cbconsensus.VoteKind) bool {
	pr := vk.roundReadOnly(r)
	if pr == nil {
		return false
	}
	return pr.PowerAny(kind) >= vk.thresholds.Quorum
}

// ApplyVote records vote (already signature-checked by the caller) and
// returns the highest-priority threshold event it causes, or nil if none
// crosses for the first time.
//
// currentRound is the Driver's present round, used only for skip-round
// detection (a vote is "from the future" relative to it).
func (vk *VoteKeeper) ApplyVote(vote cbconsensus.SignedVote, currentRound cbconsensus.Round) (*Threshold, error) {
	v := vote.Vote
	validator, ok := vk.validators.GetByAddress(v.Voter)
	if !ok {
		return nil, cbconsensus.ValidatorNotFound{Address: v.Voter}
	}

	pr := vk.Round(v.Round)
	if pr == nil {
		return nil, nil
	}

	vk_ := voteKey{voter: v.Voter, kind: v.Kind}
	if existing, ok := pr.receivedVotes[vk_]; ok {
		if !existing.Vote.Value.Equal(v.Value) {
			if _, hasEvidence := pr.evidence[v.Voter]; !hasEvidence {
				pr.evidence[v.Voter] = EquivocationPair{First: existing, Second: vote}
			}
		}
		return nil, nil
	}

	pr.receivedVotes[vk_] = vote
	pr.votesByValue[valueKey{kind: v.Kind, value: v.Value}] += validator.VotingPower
	pr.anyVotes[v.Kind] += validator.VotingPower
	if idx := vk.validators.IndexOf(v.Voter); !pr.markVoter(idx) {
		pr.totalVoterPower += validator.VotingPower
	}

	out := vk.computeThresholdOutput(pr, v.Kind)
	if out != nil {
		return out, nil
	}

	return vk.computeSkipRound(pr, v.Round, currentRound), nil
}

// computeThresholdOutput implements the priority order of spec §4.2 step 3,
// for the kind that was just updated.
func (vk *VoteKeeper) computeThresholdOutput(pr *PerRound, kind cbconsensus.VoteKind) *Threshold {
	var valueKind, anyKind ThresholdKind
	switch kind {
	case cbconsensus.VoteKindPrevote:
		valueKind, anyKind = ThresholdPolkaValue, ThresholdPolkaAny
	case cbconsensus.VoteKindPrecommit:
		valueKind, anyKind = ThresholdPrecommitValue, ThresholdPrecommitAny
	default:
		return nil
	}

	// (a)/(d): specific value reaching quorum.
	for vk2, power := range pr.votesByValue {
		if vk2.kind != kind || power < vk.thresholds.Quorum {
			continue
		}
		if val, isVal := vk2.value.Unwrap(); isVal {
			if pr.markEmittedValue(valueKind, val) {
				continue
			}
			t := Threshold{Kind: valueKind, Value: val}
			return &t
		}
	}

	// (b): Nil reaching quorum, prevote only.
	if kind == cbconsensus.VoteKindPrevote {
		nilPower := pr.PowerForValue(kind, cbconsensus.Nil[cbconsensus.ValueID]())
		if nilPower >= vk.thresholds.Quorum {
			if !pr.markEmittedPlain(ThresholdPolkaNil) {
				t := polkaNil()
				return &t
			}
		}
	}

	// (c)/(d fallback): any value of this kind reaching quorum.
	if pr.PowerAny(kind) >= vk.thresholds.Quorum {
		if !pr.markEmittedPlain(anyKind) {
			t := Threshold{Kind: anyKind}
			return &t
		}
	}

	return nil
}

// computeSkipRound implements spec §4.2 step 3(e).
func (vk *VoteKeeper) computeSkipRound(pr *PerRound, voteRound, currentRound cbconsensus.Round) *Threshold {
	cur, hasCur := currentRound.Number()
	vr, hasVr := voteRound.Number()
	if !hasVr || (hasCur && vr <= cur) {
		return nil
	}
	if pr.totalVoterPower < vk.thresholds.Skip {
		return nil
	}
	if pr.markEmittedPlain(ThresholdSkipRound) {
		return nil
	}
	t := skipRound(voteRound)
	return &t
}
