package cbcert_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corebft/corebft/cbcert"
	"github.com/corebft/corebft/cbconsensus"
	"github.com/corebft/corebft/cbvotekeeper"
)

func buildValidators(powers ...uint64) (cbconsensus.ValidatorSet, []cbconsensus.Address) {
	vs := make([]cbconsensus.Validator, len(powers))
	addrs := make([]cbconsensus.Address, len(powers))
	for i, p := range powers {
		addr := cbconsensus.Address(string(rune('a' + i)))
		vs[i] = cbconsensus.Validator{Address: addr, VotingPower: p}
		addrs[i] = addr
	}
	return cbconsensus.NewValidatorSet(vs), addrs
}

func sign(kind cbconsensus.VoteKind, round cbconsensus.Round, voter cbconsensus.Address, value cbconsensus.NilOrVal[cbconsensus.ValueID]) cbconsensus.SignedVote {
	return cbconsensus.SignedVote{
		Vote:      cbconsensus.Vote{Kind: kind, Height: 1, Round: round, Value: value, Voter: voter},
		Signature: cbconsensus.Signature(voter),
	}
}

func TestBuildPolkaCertificate_IncludesOnlyMatchingValueVotes(t *testing.T) {
	vs, addrs := buildValidators(1, 1, 1)
	vk := cbvotekeeper.New(vs)
	r := cbconsensus.NewRound(0)
	target := cbconsensus.Value{Data: []byte("9999")}.ID()
	other := cbconsensus.Value{Data: []byte("8888")}.ID()

	vk.ApplyVote(sign(cbconsensus.VoteKindPrevote, r, addrs[0], cbconsensus.Val(target)), r)
	vk.ApplyVote(sign(cbconsensus.VoteKindPrevote, r, addrs[1], cbconsensus.Val(target)), r)
	vk.ApplyVote(sign(cbconsensus.VoteKindPrevote, r, addrs[2], cbconsensus.Val(other)), r)

	cert := cbcert.BuildPolkaCertificate(1, r, target, vk.Round(r))
	require.Equal(t, cbconsensus.Height(1), cert.Height)
	require.Equal(t, target, cert.ValueID)
	require.Len(t, cert.Signatures, 2)
	for _, sig := range cert.Signatures {
		require.NotEqual(t, addrs[2], sig.Address)
	}
}

func TestBuildCommitCertificate_IncludesOnlyPrecommits(t *testing.T) {
	vs, addrs := buildValidators(1, 1, 1)
	vk := cbvotekeeper.New(vs)
	r := cbconsensus.NewRound(0)
	target := cbconsensus.Value{Data: []byte("9999")}.ID()

	vk.ApplyVote(sign(cbconsensus.VoteKindPrevote, r, addrs[0], cbconsensus.Val(target)), r)
	vk.ApplyVote(sign(cbconsensus.VoteKindPrecommit, r, addrs[1], cbconsensus.Val(target)), r)
	vk.ApplyVote(sign(cbconsensus.VoteKindPrecommit, r, addrs[2], cbconsensus.Val(target)), r)

	cert := cbcert.BuildCommitCertificate(1, r, target, vk.Round(r))
	require.Len(t, cert.Signatures, 2)
	for _, sig := range cert.Signatures {
		require.NotEqual(t, addrs[0], sig.Address, "the prevote must not be counted into a commit certificate")
	}
}

func TestBuildPrecommitEnterRoundCertificate_TargetsNextRound(t *testing.T) {
	vs, addrs := buildValidators(1, 1, 1)
	vk := cbvotekeeper.New(vs)
	r := cbconsensus.NewRound(1)
	target := cbconsensus.Value{Data: []byte("9999")}.ID()

	vk.ApplyVote(sign(cbconsensus.VoteKindPrecommit, r, addrs[0], cbconsensus.Val(target)), r)
	vk.ApplyVote(sign(cbconsensus.VoteKindPrecommit, r, addrs[1], cbconsensus.Nil[cbconsensus.ValueID]()), r)

	cert := cbcert.BuildPrecommitEnterRoundCertificate(1, r, vk.Round(r))
	require.Equal(t, cbconsensus.NewRound(2), cert.EnterRound)
	require.Equal(t, r, cert.SourceRound)
	require.Equal(t, cbconsensus.RoundCertificateKindPrecommit, cert.Kind)
	require.Len(t, cert.Votes, 2, "any-value precommits justify the round bump")
}

func TestBuildSkipEnterRoundCertificate_OneVotePerVoter(t *testing.T) {
	vs, addrs := buildValidators(1, 1, 1)
	vk := cbvotekeeper.New(vs)
	future := cbconsensus.NewRound(3)
	target := cbconsensus.Value{Data: []byte("9999")}.ID()

	vk.ApplyVote(sign(cbconsensus.VoteKindPrevote, future, addrs[0], cbconsensus.Val(target)), cbconsensus.NewRound(0))
	vk.ApplyVote(sign(cbconsensus.VoteKindPrecommit, future, addrs[0], cbconsensus.Val(target)), cbconsensus.NewRound(0))
	vk.ApplyVote(sign(cbconsensus.VoteKindPrevote, future, addrs[1], cbconsensus.Val(target)), cbconsensus.NewRound(0))

	cert := cbcert.BuildSkipEnterRoundCertificate(1, future, vk.Round(future))
	require.Equal(t, future, cert.EnterRound)
	require.Equal(t, future, cert.SourceRound)
	require.Equal(t, cbconsensus.RoundCertificateKindSkip, cert.Kind)
	require.Len(t, cert.Votes, 2, "one vote per distinct voter, even though addrs[0] cast two")
}
