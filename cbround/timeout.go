package cbround

import "github.com/corebft/corebft/cbconsensus"

// TimeoutKind names the abstract kinds of timeouts the RSM schedules.
// Commit and Rebroadcast are never scheduled by the RSM and are ignored
// by the Driver (they are host-level concerns), but live here so
// cbtimeout's duration rule can switch on a single type.
type TimeoutKind uint8

const (
	TimeoutKindUnknown TimeoutKind = iota
	TimeoutKindPropose
	TimeoutKindPrevote
	TimeoutKindPrecommit
	TimeoutKindCommit
	TimeoutKindRebroadcast
)

//go:generate stringer -type TimeoutKind -trimprefix TimeoutKind .

// Timeout identifies a scheduled timeout by kind and the round it applies
// to.
type Timeout struct {
	Kind  TimeoutKind
	Round cbconsensus.Round
}
