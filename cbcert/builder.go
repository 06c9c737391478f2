// Package cbcert materializes Commit/Polka/EnterRound certificates from
// the signed votes a cbvotekeeper.VoteKeeper has accumulated (spec
// §4.5.3).
package cbcert

import (
	"github.com/corebft/corebft/cbconsensus"
	"github.com/corebft/corebft/cbvotekeeper"
)

// BuildPolkaCertificate collects every Prevote in round r targeting
// value from pr into a PolkaCertificate.
func BuildPolkaCertificate(height cbconsensus.Height, r cbconsensus.Round, value cbconsensus.ValueID, pr *cbvotekeeper.PerRound) cbconsensus.PolkaCertificate {
	return cbconsensus.PolkaCertificate{
		Height:     height,
		Round:      r,
		ValueID:    value,
		Signatures: signaturesForValue(pr, cbconsensus.VoteKindPrevote, value),
	}
}

// BuildCommitCertificate collects every Precommit in round r targeting
// value from pr into a CommitCertificate.
func BuildCommitCertificate(height cbconsensus.Height, r cbconsensus.Round, value cbconsensus.ValueID, pr *cbvotekeeper.PerRound) cbconsensus.CommitCertificate {
	return cbconsensus.CommitCertificate{
		Height:     height,
		Round:      r,
		ValueID:    value,
		Signatures: signaturesForValue(pr, cbconsensus.VoteKindPrecommit, value),
	}
}

// BuildPrecommitEnterRoundCertificate justifies moving to sourceRound+1
// after observing a precommit quorum for any value in sourceRound.
func BuildPrecommitEnterRoundCertificate(height cbconsensus.Height, sourceRound cbconsensus.Round, pr *cbvotekeeper.PerRound) cbconsensus.EnterRoundCertificate {
	return cbconsensus.EnterRoundCertificate{
		Height:      height,
		EnterRound:  sourceRound.Next(),
		SourceRound: sourceRound,
		Kind:        cbconsensus.RoundCertificateKindPrecommit,
		Votes:       pr.ReceivedVotes(cbconsensus.VoteKindPrecommit),
	}
}

// BuildSkipEnterRoundCertificate justifies skipping directly to
// enterRound after observing f+1 voting power there. One arbitrary vote
// per distinct voter in that round is included.
func BuildSkipEnterRoundCertificate(height cbconsensus.Height, enterRound cbconsensus.Round, pr *cbvotekeeper.PerRound) cbconsensus.EnterRoundCertificate {
	return cbconsensus.EnterRoundCertificate{
		Height:      height,
		EnterRound:  enterRound,
		SourceRound: enterRound,
		Kind:        cbconsensus.RoundCertificateKindSkip,
		Votes:       pr.AllReceivedVotes(),
	}
}

func signaturesForValue(pr *cbvotekeeper.PerRound, kind cbconsensus.VoteKind, value cbconsensus.ValueID) []cbconsensus.CertSignature {
	votes := pr.ReceivedVotes(kind)
	out := make([]cbconsensus.CertSignature, 0, len(votes))
	for _, sv := range votes {
		id, isVal := sv.Vote.Value.Unwrap()
		if !isVal || id != value {
			continue
		}
		out = append(out, cbconsensus.CertSignature{
			Address:   sv.Vote.Voter,
			Signature: sv.Signature,
		})
	}
	return out
}
