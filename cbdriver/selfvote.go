package cbdriver

import "github.com/corebft/corebft/cbconsensus"

// selfVotePolicy decides whether a candidate Vote the RSM just produced
// for this node's own address should actually be emitted as an Output
// (spec §4.6). The RSM has already advanced its step regardless of the
// outcome; this function only gates whether the vote is broadcast, which
// is what prevents the Driver from self-equivocating (invariant I6).
type selfVotePolicy struct {
	address cbconsensus.Address

	lastPrevote   *cbconsensus.Vote
	lastPrecommit *cbconsensus.Vote
}

// allow reports whether v should be emitted, and if so records it as the
// new "last" vote of its kind.
func (sp *selfVotePolicy) allow(v cbconsensus.Vote, valid *roundValue) bool {
	if v.Voter != sp.address {
		// Not a candidate self-vote; always forwarded.
		return true
	}

	var last *cbconsensus.Vote
	switch v.Kind {
	case cbconsensus.VoteKindPrevote:
		last = sp.lastPrevote
	case cbconsensus.VoteKindPrecommit:
		last = sp.lastPrecommit
	}

	if !monotone(last, v) {
		return false
	}

	if v.Kind == cbconsensus.VoteKindPrecommit && valid != nil {
		id, isVal := v.Value.Unwrap()
		if isVal && id != valid.Value.ID() {
			return false
		}
	}

	switch v.Kind {
	case cbconsensus.VoteKindPrevote:
		sp.lastPrevote = &v
	case cbconsensus.VoteKindPrecommit:
		sp.lastPrecommit = &v
	}
	return true
}

// monotone reports whether v is an acceptable successor to last: a
// strictly later (height, round), or an exact idempotent retry.
func monotone(last *cbconsensus.Vote, v cbconsensus.Vote) bool {
	if last == nil {
		return true
	}
	if v.Height > last.Height {
		return true
	}
	if v.Height == last.Height && v.Round > last.Round {
		return true
	}
	return last.Height == v.Height && last.Round == v.Round && last.Value.Equal(v.Value) && last.Kind == v.Kind
}

// roundValue is the local shape selfVotePolicy needs from cbround's
// locked/valid bookkeeping, to avoid an import cycle with cbround.
type roundValue struct {
	Value cbconsensus.Value
	Round cbconsensus.Round
}
