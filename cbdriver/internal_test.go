package cbdriver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corebft/corebft/cbconsensus"
)

func idOf(data string) cbconsensus.ValueID { return cbconsensus.Value{Data: []byte(data)}.ID() }

func TestSelfVotePolicy_ForwardsVotesFromOtherVoters(t *testing.T) {
	sp := selfVotePolicy{address: "self"}
	v := cbconsensus.Vote{Kind: cbconsensus.VoteKindPrevote, Height: 1, Round: cbconsensus.NewRound(0), Voter: "other"}
	require.True(t, sp.allow(v, nil))
}

func TestSelfVotePolicy_RejectsNonMonotoneRound(t *testing.T) {
	sp := selfVotePolicy{address: "self"}
	first := cbconsensus.Vote{Kind: cbconsensus.VoteKindPrevote, Height: 1, Round: cbconsensus.NewRound(1), Voter: "self"}
	require.True(t, sp.allow(first, nil))

	stale := cbconsensus.Vote{Kind: cbconsensus.VoteKindPrevote, Height: 1, Round: cbconsensus.NewRound(0), Voter: "self"}
	require.False(t, sp.allow(stale, nil), "a vote for an earlier round than the last emitted one must be rejected")
}

func TestSelfVotePolicy_AllowsIdempotentRetry(t *testing.T) {
	sp := selfVotePolicy{address: "self"}
	v := cbconsensus.Vote{
		Kind: cbconsensus.VoteKindPrevote, Height: 1, Round: cbconsensus.NewRound(0),
		Value: cbconsensus.Val(idOf("x")), Voter: "self",
	}
	require.True(t, sp.allow(v, nil))
	require.True(t, sp.allow(v, nil), "an exact repeat of the last vote is an allowed idempotent retry")
}

func TestSelfVotePolicy_RejectsPrecommitDivergingFromValid(t *testing.T) {
	sp := selfVotePolicy{address: "self"}
	valid := &roundValue{Value: cbconsensus.Value{Data: []byte("locked")}, Round: cbconsensus.NewRound(0)}

	diverging := cbconsensus.Vote{
		Kind: cbconsensus.VoteKindPrecommit, Height: 1, Round: cbconsensus.NewRound(0),
		Value: cbconsensus.Val(idOf("other")), Voter: "self",
	}
	require.False(t, sp.allow(diverging, valid), "a self-precommit for a value other than Valid must never be emitted")

	matching := cbconsensus.Vote{
		Kind: cbconsensus.VoteKindPrecommit, Height: 1, Round: cbconsensus.NewRound(0),
		Value: cbconsensus.Val(valid.Value.ID()), Voter: "self",
	}
	require.True(t, sp.allow(matching, valid))
}

func TestSelfVotePolicy_AllowsPrecommitNilRegardlessOfValid(t *testing.T) {
	sp := selfVotePolicy{address: "self"}
	valid := &roundValue{Value: cbconsensus.Value{Data: []byte("locked")}, Round: cbconsensus.NewRound(0)}
	nilVote := cbconsensus.Vote{
		Kind: cbconsensus.VoteKindPrecommit, Height: 1, Round: cbconsensus.NewRound(0),
		Value: cbconsensus.Nil[cbconsensus.ValueID](), Voter: "self",
	}
	require.True(t, sp.allow(nilVote, valid))
}

func TestCertStore_PutAndLookupCommit(t *testing.T) {
	cs := newCertStore()
	c := cbconsensus.CommitCertificate{Height: 1, Round: cbconsensus.NewRound(0), ValueID: idOf("x")}
	require.False(t, cs.hasCommit(c.Round, c.ValueID))

	cs.putCommit(c)
	require.True(t, cs.hasCommit(c.Round, c.ValueID))
	require.Len(t, cs.CommitCertificates(), 1)
}

func TestCertStore_PruneBelow_DropsOldPolkaCertificatesOnly(t *testing.T) {
	cs := newCertStore()
	old := cbconsensus.PolkaCertificate{Height: 1, Round: cbconsensus.NewRound(0), ValueID: idOf("x")}
	recent := cbconsensus.PolkaCertificate{Height: 1, Round: cbconsensus.NewRound(2), ValueID: idOf("y")}
	commit := cbconsensus.CommitCertificate{Height: 1, Round: cbconsensus.NewRound(0), ValueID: idOf("x")}

	cs.putPolka(old)
	cs.putPolka(recent)
	cs.putCommit(commit)

	cs.PruneBelow(cbconsensus.NewRound(2))

	require.False(t, cs.hasPolka(old.Round, old.ValueID))
	require.True(t, cs.hasPolka(recent.Round, recent.ValueID))
	require.True(t, cs.hasCommit(commit.Round, commit.ValueID), "PruneBelow only drops polka certificates, not commit certificates")
}
