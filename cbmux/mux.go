// Package cbmux translates raw votes, proposals, and vote-keeper
// thresholds into the compound RSM inputs that encode Tendermint's
// cross-step conditions (spec §4.4). It depends on cbvotekeeper and
// cbproposal for lookups but never mutates either; it only decides which
// cbround.Input, if any, a given event should become.
package cbmux

import (
	"github.com/corebft/corebft/cbconsensus"
	"github.com/corebft/corebft/cbproposal"
	"github.com/corebft/corebft/cbround"
	"github.com/corebft/corebft/cbvotekeeper"
)

// CommitCertificateLookup reports whether a CommitCertificate is already
// known for (round, valueID). The Driver owns certificate storage; the
// multiplexer only ever asks.
type CommitCertificateLookup func(round cbconsensus.Round, valueID cbconsensus.ValueID) bool

// PolkaCertificateLookup reports whether a PolkaCertificate is already
// known for (round, valueID).
type PolkaCertificateLookup func(round cbconsensus.Round, valueID cbconsensus.ValueID) bool

// Mux bundles the read-only dependencies the multiplexer needs: the
// height's Vote Keeper and Proposal Keeper, and the Driver's certificate
// stores.
type Mux struct {
	VK *cbvotekeeper.VoteKeeper
	PK *cbproposal.Keeper

	HasCommitCertificate CommitCertificateLookup
	HasPolkaCertificate  PolkaCertificateLookup
}

// PendingInput is a (round, input) pair enqueued by the multiplexer for
// the Driver to feed back into the RSM during its fixpoint drain (spec
// §4.5).
type PendingInput struct {
	Round cbconsensus.Round
	Input cbround.Input
}

// prevoteQuorum reports whether round has a known polka (quorum of
// prevotes, or an already-built certificate) for id.
func (mx *Mux) prevoteQuorum(round cbconsensus.Round, id cbconsensus.ValueID) bool {
	if mx.HasPolkaCertificate != nil && mx.HasPolkaCertificate(round, id) {
		return true
	}
	return mx.VK.ThresholdMet(round, cbconsensus.VoteKindPrevote, cbconsensus.Val(id))
}

func (mx *Mux) precommitMet(round cbconsensus.Round, id cbconsensus.ValueID) bool {
	if mx.HasCommitCertificate != nil && mx.HasCommitCertificate(round, id) {
		return true
	}
	return mx.VK.ThresholdMet(round, cbconsensus.VoteKindPrecommit, cbconsensus.Val(id))
}
