package cbproposal_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corebft/corebft/cbconsensus"
	"github.com/corebft/corebft/cbproposal"
)

func mkProposal(round cbconsensus.Round, proposer cbconsensus.Address, data string) cbconsensus.SignedProposal {
	return cbconsensus.SignedProposal{
		Proposal: cbconsensus.Proposal{
			Height: 1, Round: round, Value: cbconsensus.Value{Data: []byte(data)},
			PolRound: cbconsensus.RoundNil, Proposer: proposer,
		},
	}
}

func TestStoreAndLookup(t *testing.T) {
	k := cbproposal.New()
	sp := mkProposal(cbconsensus.NewRound(0), "v1", "9999")
	k.Store(sp, cbconsensus.ValidityValid)

	entry, ok := k.Lookup(cbconsensus.NewRound(0), sp.Proposal.Value.ID())
	require.True(t, ok)
	require.Equal(t, cbconsensus.ValidityValid, entry.Validity)
	require.Equal(t, sp, entry.Proposal)
}

func TestLookup_MissingEntry(t *testing.T) {
	k := cbproposal.New()
	_, ok := k.Lookup(cbconsensus.NewRound(0), cbconsensus.Value{Data: []byte("x")}.ID())
	require.False(t, ok)
}

func TestAllInRound_PreservesInsertionOrder(t *testing.T) {
	k := cbproposal.New()
	first := mkProposal(cbconsensus.NewRound(0), "v1", "aaaa")
	second := mkProposal(cbconsensus.NewRound(0), "v2", "bbbb")
	k.Store(first, cbconsensus.ValidityValid)
	k.Store(second, cbconsensus.ValidityInvalid)

	all := k.AllInRound(cbconsensus.NewRound(0))
	require.Len(t, all, 2)
	require.Equal(t, first.Proposal.Value.ID(), all[0].Proposal.Value.ID())
	require.Equal(t, second.Proposal.Value.ID(), all[1].Proposal.Value.ID())
}

func TestAllInRound_EmptyForUnknownRound(t *testing.T) {
	k := cbproposal.New()
	require.Empty(t, k.AllInRound(cbconsensus.NewRound(5)))
}

func TestStore_ProposerEquivocationRecordedOnce(t *testing.T) {
	k := cbproposal.New()
	first := mkProposal(cbconsensus.NewRound(0), "v1", "9999")
	second := mkProposal(cbconsensus.NewRound(0), "v1", "8888")
	k.Store(first, cbconsensus.ValidityValid)
	k.Store(second, cbconsensus.ValidityValid)

	ev := k.Evidence()
	require.Len(t, ev, 1)
	pair := ev["v1"]
	require.Equal(t, first, pair.First)
	require.Equal(t, second, pair.Second)

	// Both conflicting proposals remain independently retrievable.
	_, ok := k.Lookup(cbconsensus.NewRound(0), first.Proposal.Value.ID())
	require.True(t, ok)
	_, ok = k.Lookup(cbconsensus.NewRound(0), second.Proposal.Value.ID())
	require.True(t, ok)

	// A third conflicting proposal from the same proposer does not replace
	// the already-recorded evidence pair.
	third := mkProposal(cbconsensus.NewRound(0), "v1", "7777")
	k.Store(third, cbconsensus.ValidityValid)
	require.Len(t, k.Evidence(), 1)
	require.Equal(t, first, k.Evidence()["v1"].First)
}

func TestStore_SameValueTwiceIsNotEquivocation(t *testing.T) {
	k := cbproposal.New()
	sp := mkProposal(cbconsensus.NewRound(0), "v1", "9999")
	k.Store(sp, cbconsensus.ValidityValid)
	k.Store(sp, cbconsensus.ValidityValid)
	require.Empty(t, k.Evidence())
}

func TestPrune_DropsEntriesBelowMinRound(t *testing.T) {
	k := cbproposal.New()
	k.Store(mkProposal(cbconsensus.NewRound(0), "v1", "a"), cbconsensus.ValidityValid)
	k.Store(mkProposal(cbconsensus.NewRound(2), "v1", "b"), cbconsensus.ValidityValid)

	k.Prune(cbconsensus.NewRound(2))
	require.Empty(t, k.AllInRound(cbconsensus.NewRound(0)))
	require.Len(t, k.AllInRound(cbconsensus.NewRound(2)), 1)
}
