package cbvotekeeper

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/corebft/corebft/cbconsensus"
)

// voteKey dedups a validator's vote by (voter, kind): a validator may
// cast at most one live vote of each kind per round, with any further
// divergent vote recorded as equivocation instead of tallied again.
type voteKey struct {
	voter cbconsensus.Address
	kind  cbconsensus.VoteKind
}

// valueKey indexes accumulated voting power by kind and target.
type valueKey struct {
	kind  cbconsensus.VoteKind
	value cbconsensus.NilOrVal[cbconsensus.ValueID]
}

// EquivocationPair is the two conflicting signed votes recorded for a
// validator caught voting twice, differently, at the same (round, kind).
type EquivocationPair struct {
	First  cbconsensus.SignedVote
	Second cbconsensus.SignedVote
}

// PerRound holds the vote tallies and emitted-threshold bookkeeping for a
// single round.
type PerRound struct {
	receivedVotes map[voteKey]cbconsensus.SignedVote
	votesByValue  map[valueKey]uint64
	anyVotes      map[cbconsensus.VoteKind]uint64
	emitted       map[ThresholdKind]map[cbconsensus.ValueID]bool // Value-keyed kinds
	emittedPlain  map[ThresholdKind]bool                         // value-less kinds

	evidence map[cbconsensus.Address]EquivocationPair

	// voters is a bitset over validator-set indices, tracking which
	// validators have cast any vote (of either kind) in this round, so
	// skip-round detection can sum voting power once per validator rather
	// than once per vote. Indexed via ValidatorSet.IndexOf, matching the
	// deterministic validator ordering that backs certificate replay.
	voters          *bitset.BitSet
	totalVoterPower uint64
}

func newPerRound() *PerRound {
	return &PerRound{
		receivedVotes: make(map[voteKey]cbconsensus.SignedVote),
		votesByValue:  make(map[valueKey]uint64),
		anyVotes:      make(map[cbconsensus.VoteKind]uint64),
		emitted:       make(map[ThresholdKind]map[cbconsensus.ValueID]bool),
		emittedPlain:  make(map[ThresholdKind]bool),
		evidence:      make(map[cbconsensus.Address]EquivocationPair),
		voters:        bitset.New(0),
	}
}

// markVoter records that the validator at index idx has voted in this
// round, returning whether it was already marked. A negative idx (voter
// not found in the validator set) is never marked and always reports
// false, so callers fall back to crediting voting power unconditionally
// on a keeper internal error -- this should not happen when voteKeeper
// has already validated the voter against the set.
func (pr *PerRound) markVoter(idx int) (alreadyVoted bool) {
	if idx < 0 {
		return false
	}
	u := uint(idx)
	if pr.voters.Test(u) {
		return true
	}
	pr.voters.Set(u)
	return false
}

func (pr *PerRound) markEmittedValue(kind ThresholdKind, v cbconsensus.ValueID) bool {
	set, ok := pr.emitted[kind]
	if !ok {
		set = make(map[cbconsensus.ValueID]bool)
		pr.emitted[kind] = set
	}
	if set[v] {
		return true
	}
	set[v] = true
	return false
}

func (pr *PerRound) markEmittedPlain(kind ThresholdKind) bool {
	if pr.emittedPlain[kind] {
		return true
	}
	pr.emittedPlain[kind] = true
	return false
}

// ReceivedVotes returns the deduplicated votes of kind in this round, for
// certificate construction.
func (pr *PerRound) ReceivedVotes(kind cbconsensus.VoteKind) []cbconsensus.SignedVote {
	out := make([]cbconsensus.SignedVote, 0, len(pr.receivedVotes))
	for k, sv := range pr.receivedVotes {
		if k.kind == kind {
			out = append(out, sv)
		}
	}
	return out
}

// AllReceivedVotes returns one vote per distinct voter recorded in this
// round, arbitrarily preferring a precommit over a prevote when a voter
// cast both -- callers only need proof that the voter was present in the
// round, not which kind.
func (pr *PerRound) AllReceivedVotes() []cbconsensus.SignedVote {
	byVoter := make(map[cbconsensus.Address]cbconsensus.SignedVote, len(pr.receivedVotes))
	for k, sv := range pr.receivedVotes {
		if _, ok := byVoter[k.voter]; !ok || k.kind == cbconsensus.VoteKindPrecommit {
			byVoter[k.voter] = sv
		}
	}
	out := make([]cbconsensus.SignedVote, 0, len(byVoter))
	for _, sv := range byVoter {
		out = append(out, sv)
	}
	return out
}

// Evidence returns the recorded equivocation pairs in this round.
func (pr *PerRound) Evidence() map[cbconsensus.Address]EquivocationPair {
	return pr.evidence
}

// PowerForValue returns the voting power accumulated for kind targeting
// value.
func (pr *PerRound) PowerForValue(kind cbconsensus.VoteKind, value cbconsensus.NilOrVal[cbconsensus.ValueID]) uint64 {
	return pr.votesByValue[valueKey{kind: kind, value: value}]
}

// PowerAny returns the total voting power seen for kind, across every
// target value.
func (pr *PerRound) PowerAny(kind cbconsensus.VoteKind) uint64 {
	return pr.anyVotes[kind]
}
