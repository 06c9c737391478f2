package cbconsensus_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corebft/corebft/cbconsensus"
)

func mkValidators(powers ...uint64) cbconsensus.ValidatorSet {
	vs := make([]cbconsensus.Validator, len(powers))
	for i, p := range powers {
		vs[i] = cbconsensus.Validator{Address: cbconsensus.Address(string(rune('a' + i))), VotingPower: p}
	}
	return cbconsensus.NewValidatorSet(vs)
}

func TestComputeThresholds(t *testing.T) {
	cases := []struct {
		name   string
		powers []uint64
		quorum uint64
		skip   uint64
	}{
		{"divisible by three", []uint64{2, 2, 2}, 5, 3},
		{"powers 1,2,3", []uint64{1, 2, 3}, 5, 3},
		{"powers 2,3,2", []uint64{2, 3, 2}, 5, 3},
		{"powers 1,1,1", []uint64{1, 1, 1}, 3, 2},
		{"single validator", []uint64{1}, 1, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			th := cbconsensus.ComputeThresholds(mkValidators(c.powers...))
			require.Equal(t, c.quorum, th.Quorum, "quorum")
			require.Equal(t, c.skip, th.Skip, "skip")
		})
	}
}

func TestValidatorSet_GetByAddressAndIndexOf(t *testing.T) {
	vs := mkValidators(1, 2, 3)

	v, ok := vs.GetByAddress("b")
	require.True(t, ok)
	require.Equal(t, uint64(2), v.VotingPower)

	_, ok = vs.GetByAddress("z")
	require.False(t, ok)

	require.Equal(t, 1, vs.IndexOf("b"))
	require.Equal(t, -1, vs.IndexOf("z"))
}

func TestValidatorSet_TotalVotingPower(t *testing.T) {
	vs := mkValidators(1, 2, 3)
	require.Equal(t, uint64(6), vs.TotalVotingPower())
}

func TestValidatorSet_Hash_DependsOnOrderAndPower(t *testing.T) {
	a := mkValidators(1, 2, 3)
	b := mkValidators(1, 2, 3)
	require.Equal(t, a.Hash(), b.Hash(), "same order and powers must hash identically")

	c := cbconsensus.NewValidatorSet([]cbconsensus.Validator{a.Validators[2], a.Validators[1], a.Validators[0]})
	require.NotEqual(t, a.Hash(), c.Hash(), "validator order is significant")

	d := mkValidators(1, 2, 4)
	require.NotEqual(t, a.Hash(), d.Hash(), "voting power is part of the hash")
}

func TestRoundRobinProposerSelector_Deterministic(t *testing.T) {
	vs := mkValidators(1, 2, 3)
	sel := cbconsensus.RoundRobinProposerSelector{}

	v1, err := sel.SelectProposer(vs, 1, cbconsensus.NewRound(0))
	require.NoError(t, err)
	v2, err := sel.SelectProposer(vs, 1, cbconsensus.NewRound(0))
	require.NoError(t, err)
	require.Equal(t, v1, v2, "same (validator set, height, round) must select the same proposer")
}

func TestRoundRobinProposerSelector_EmptySet(t *testing.T) {
	sel := cbconsensus.RoundRobinProposerSelector{}
	_, err := sel.SelectProposer(cbconsensus.NewValidatorSet(nil), 1, cbconsensus.NewRound(0))
	require.ErrorAs(t, err, &cbconsensus.NoProposer{})
}

func TestRoundRobinProposerSelector_NilRound(t *testing.T) {
	sel := cbconsensus.RoundRobinProposerSelector{}
	_, err := sel.SelectProposer(mkValidators(1, 2), 1, cbconsensus.RoundNil)
	require.ErrorAs(t, err, &cbconsensus.NoProposer{})
}

func TestRoundRobinProposerSelector_RotatesAcrossRounds(t *testing.T) {
	vs := mkValidators(1, 1, 1)
	sel := cbconsensus.RoundRobinProposerSelector{}

	seen := make(map[cbconsensus.Address]bool)
	for r := uint32(0); r < 3; r++ {
		v, err := sel.SelectProposer(vs, 1, cbconsensus.NewRound(r))
		require.NoError(t, err)
		seen[v.Address] = true
	}
	require.Len(t, seen, 3, "equal-power validators should each get a turn across three rounds")
}
