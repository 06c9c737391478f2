// Package cbvotekeeper accumulates signed votes per round and reports,
// exactly once each, the threshold-crossing events a round's votes cause
// (spec §4.2).
package cbvotekeeper

import "github.com/corebft/corebft/cbconsensus"

// ThresholdKind discriminates the variants of Threshold.
type ThresholdKind uint8

const (
	ThresholdNone ThresholdKind = iota
	ThresholdPolkaValue
	ThresholdPolkaNil
	ThresholdPolkaAny
	ThresholdPrecommitValue
	ThresholdPrecommitAny
	ThresholdSkipRound
)

//go:generate stringer -type ThresholdKind -trimprefix Threshold .

// Threshold is the tagged union of the quorum-crossing events ApplyVote
// may report.
type Threshold struct {
	Kind  ThresholdKind
	Value cbconsensus.ValueID // PolkaValue, PrecommitValue
	Round cbconsensus.Round   // SkipRound: the round that was skipped to
}

func polkaValue(v cbconsensus.ValueID) Threshold {
	return Threshold{Kind: ThresholdPolkaValue, Value: v}
}

func polkaNil() Threshold { return Threshold{Kind: ThresholdPolkaNil} }

func polkaAny() Threshold { return Threshold{Kind: ThresholdPolkaAny} }

func precommitValue(v cbconsensus.ValueID) Threshold {
	return Threshold{Kind: ThresholdPrecommitValue, Value: v}
}

func precommitAny() Threshold { return Threshold{Kind: ThresholdPrecommitAny} }

func skipRound(r cbconsensus.Round) Threshold {
	return Threshold{Kind: ThresholdSkipRound, Round: r}
}
